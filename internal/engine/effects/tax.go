package effects

import (
	"coup/internal/engine"
	"coup/internal/rules"
)

// Tax (Duke) takes 3 coins from the treasury.
type Tax struct{}

func (Tax) Action() rules.ActionKind { return rules.ActionTax }

func (Tax) Apply(g *engine.Game, t *engine.TurnRecord, suppressed bool) []engine.Event {
	if suppressed {
		return nil
	}
	return []engine.Event{coinsEvent(t, g.Withdraw(t.Source, 3))}
}
