package engine

import (
	"fmt"

	"coup/internal/rules"
)

// Start deals the starting hands, grants the starting coins from the treasury
// and asks the first player for an action.
func (g *Game) Start() []Event {
	coins := StartingCoins(len(g.Players))
	for _, p := range g.Players {
		g.DrawInto(p, g.Config.HandSize)
		g.Withdraw(p, coins)
	}
	g.TurnIndex = 0
	first := g.Players[0]

	events := []Event{{Type: EventSetup, Player: first.Name, Data: map[string]interface{}{
		"players": len(g.Players), "starting_coins": coins, "treasury": g.Treasury,
	}}}
	return append(events, g.issue(PhaseAction, []*Player{first},
		fmt.Sprintf("Player %s, you are the first player starting the game. Choose an action to perform.", first.Name),
		rules.BaseActions())...)
}
