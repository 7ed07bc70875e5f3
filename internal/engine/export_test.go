package engine

import "coup/internal/rules"

// Take removes one copy of role from the court so tests can fix hands.
func (d *Deck) Take(role rules.Role) bool {
	i := indexOf(d.cards, role)
	if i < 0 {
		return false
	}
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return true
}
