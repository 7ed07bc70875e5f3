package effects

import (
	"coup/internal/engine"
	"coup/internal/rules"
)

// Exchange (Ambassador) draws 2 court cards and returns 2 of the combined hand.
type Exchange struct{}

func (Exchange) Action() rules.ActionKind { return rules.ActionExchange }

func (Exchange) Apply(g *engine.Game, t *engine.TurnRecord, suppressed bool) []engine.Event {
	if suppressed {
		return nil
	}
	drawn := g.DrawInto(t.Source, 2)
	events := []engine.Event{{Type: engine.EventExecuted, Player: t.Source.Name, Data: map[string]interface{}{
		"action": t.Action.String(), "drawn": drawn,
	}}}
	if drawn < 2 {
		return events
	}
	return append(events, g.RequestDiscard(t.Source, rules.ActionDiscardTwo,
		"You are exchanging cards. You received 2 new cards, now you must choose 2 cards to discard.")...)
}
