package engine

import "sort"

// StandingEntry is one line of the final report.
type StandingEntry struct {
	Place          int    `json:"place"`
	Name           string `json:"name"`
	Coins          int    `json:"coins"`
	EliminatedTurn int    `json:"eliminated_turn,omitempty"`
}

// Standings ranks players: those still active first, then by how long they
// survived. Players knocked out on the same turn share a place.
func (g *Game) Standings() []StandingEntry {
	entries := make([]StandingEntry, len(g.Players))
	for i, p := range g.Players {
		entries[i] = StandingEntry{Name: p.Name, Coins: p.Coins, EliminatedTurn: p.EliminatedTurn}
		if p.Active {
			entries[i].EliminatedTurn = 0
		}
	}

	survived := func(e StandingEntry) int {
		if e.EliminatedTurn == 0 {
			return int(^uint(0) >> 1)
		}
		return e.EliminatedTurn
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return survived(entries[i]) > survived(entries[j])
	})

	for i := range entries {
		entries[i].Place = i + 1
		if i > 0 && survived(entries[i]) == survived(entries[i-1]) {
			entries[i].Place = entries[i-1].Place
		}
	}
	return entries
}
