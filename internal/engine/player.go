package engine

import "coup/internal/rules"

// Player holds one seat's hidden and public state.
type Player struct {
	Name   string       `json:"name"`
	Coins  int          `json:"coins"`
	Hand   []rules.Role `json:"-"`
	Active bool         `json:"active"`

	// EliminatedTurn is the turn on which the player lost their last card.
	EliminatedTurn int `json:"eliminated_turn,omitempty"`
}

func NewPlayer(name string) *Player {
	return &Player{Name: name, Active: true}
}

// Has returns true if the player holds the role.
func (p *Player) Has(role rules.Role) bool {
	for _, r := range p.Hand {
		if r == role {
			return true
		}
	}
	return false
}

// HoldsAll reports whether every card is in hand, counting duplicates.
func (p *Player) HoldsAll(cards []rules.Role) bool {
	left := append([]rules.Role(nil), p.Hand...)
	for _, c := range cards {
		i := indexOf(left, c)
		if i < 0 {
			return false
		}
		left = append(left[:i], left[i+1:]...)
	}
	return true
}

// RemoveFromHand removes the first copy of the role, returns true if found.
func (p *Player) RemoveFromHand(role rules.Role) bool {
	i := indexOf(p.Hand, role)
	if i < 0 {
		return false
	}
	p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
	return true
}

// InPlay reports whether the player can still answer tasks.
func (p *Player) InPlay() bool {
	return p.Active && len(p.Hand) > 0
}

func indexOf(cards []rules.Role, role rules.Role) int {
	for i, c := range cards {
		if c == role {
			return i
		}
	}
	return -1
}
