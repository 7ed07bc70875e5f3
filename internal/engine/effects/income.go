package effects

import (
	"coup/internal/engine"
	"coup/internal/rules"
)

// Income takes 1 coin from the treasury. It cannot be challenged or countered.
type Income struct{}

func (Income) Action() rules.ActionKind { return rules.ActionIncome }

func (Income) Apply(g *engine.Game, t *engine.TurnRecord, suppressed bool) []engine.Event {
	if suppressed {
		return nil
	}
	return []engine.Event{coinsEvent(t, g.Withdraw(t.Source, 1))}
}
