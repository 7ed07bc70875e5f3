package engine

import (
	"math/rand/v2"

	"coup/internal/rules"
)

// Deck is the court: a shuffled bag of role cards.
type Deck struct {
	cards []rules.Role
	rng   *rand.Rand
}

// NewDeck creates a shuffled deck holding copies of every role.
func NewDeck(copies int, rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	for _, r := range rules.AllRoles() {
		for i := 0; i < copies; i++ {
			d.cards = append(d.cards, r)
		}
	}
	d.Shuffle()
	return d
}

func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top n cards. Returns fewer if deck is short.
func (d *Deck) Draw(n int) []rules.Role {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	drawn := make([]rules.Role, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn
}

// Return puts cards back and reshuffles the deck.
func (d *Deck) Return(cards ...rules.Role) {
	d.cards = append(d.cards, cards...)
	d.Shuffle()
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}
