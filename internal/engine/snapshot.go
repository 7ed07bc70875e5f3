package engine

import "coup/internal/rules"

// PlayerView is one row of the table.
type PlayerView struct {
	Name     string       `json:"name"`
	Coins    int          `json:"coins"`
	HandSize int          `json:"hand_size"`
	Hand     []rules.Role `json:"hand,omitempty"`
	Active   bool         `json:"active"`
}

// Snapshot is an immutable copy of the table, hands included.
type Snapshot struct {
	Phase      string       `json:"phase"`
	Turn       int          `json:"turn"`
	TurnIndex  int          `json:"turn_index"`
	NextPlayer string       `json:"next_player,omitempty"`
	Treasury   int          `json:"treasury"`
	DeckSize   int          `json:"deck_size"`
	Winner     string       `json:"winner,omitempty"`
	Players    []PlayerView `json:"players"`
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Phase:     g.Phase.String(),
		Turn:      g.TurnNumber,
		TurnIndex: g.TurnIndex,
		Treasury:  g.Treasury,
		DeckSize:  g.Deck.Len(),
		Winner:    g.Winner,
	}
	if g.Phase != PhaseGameOver && g.TurnIndex < len(g.Players) {
		s.NextPlayer = g.Players[g.TurnIndex].Name
	}
	for _, p := range g.Players {
		s.Players = append(s.Players, PlayerView{
			Name:     p.Name,
			Coins:    p.Coins,
			HandSize: len(p.Hand),
			Hand:     append([]rules.Role(nil), p.Hand...),
			Active:   p.Active,
		})
	}
	return s
}

// Roster is what one actor may know about the table: every player's coins
// and hand size, but only its own cards.
type Roster struct {
	Turn    int          `json:"turn"`
	Self    PlayerView   `json:"self"`
	Players []PlayerView `json:"players"`
}

// Roster returns the view of the snapshot visible to viewer.
func (s Snapshot) Roster(viewer string) Roster {
	r := Roster{Turn: s.Turn}
	for _, p := range s.Players {
		if p.Name == viewer {
			r.Self = p
		}
		p.Hand = nil
		r.Players = append(r.Players, p)
	}
	return r
}

// Names lists the players of the roster.
func (r Roster) Names() []string {
	names := make([]string, len(r.Players))
	for i, p := range r.Players {
		names[i] = p.Name
	}
	return names
}
