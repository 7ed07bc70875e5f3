package effects

import (
	"coup/internal/engine"
	"coup/internal/rules"
)

// ForeignAid takes 2 coins from the treasury unless a Duke blocks it.
type ForeignAid struct{}

func (ForeignAid) Action() rules.ActionKind { return rules.ActionForeignAid }

func (ForeignAid) Apply(g *engine.Game, t *engine.TurnRecord, suppressed bool) []engine.Event {
	if suppressed {
		return nil
	}
	return []engine.Event{coinsEvent(t, g.Withdraw(t.Source, 2))}
}
