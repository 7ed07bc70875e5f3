package effects

import (
	"coup/internal/engine"
	"coup/internal/rules"
)

// Steal (Captain) moves up to 2 coins from the target to the source.
type Steal struct{}

func (Steal) Action() rules.ActionKind { return rules.ActionSteal }

func (Steal) Apply(g *engine.Game, t *engine.TurnRecord, suppressed bool) []engine.Event {
	if suppressed || t.Target == nil {
		return nil
	}
	n := g.Transfer(t.Target, t.Source, 2)
	return []engine.Event{{Type: engine.EventExecuted, Player: t.Source.Name, Data: map[string]interface{}{
		"action": t.Action.String(), "coins": n, "from": t.Target.Name,
	}}}
}
