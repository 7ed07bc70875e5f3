package effects

import (
	"fmt"

	"coup/internal/engine"
	"coup/internal/rules"
)

// Coup costs 7 coins and always makes the target lose a card.
type Coup struct{}

func (Coup) Action() rules.ActionKind { return rules.ActionCoup }

func (Coup) Apply(g *engine.Game, t *engine.TurnRecord, suppressed bool) []engine.Event {
	events := []engine.Event{coinsEvent(t, -g.Deposit(t.Source, rules.Cost(t.Action)))}
	if suppressed || t.Target == nil {
		return events
	}
	return append(events, g.RequestDiscard(t.Target, rules.ActionDiscard,
		fmt.Sprintf("You have been couped by %s. Choose a card to discard.", t.Source.Name))...)
}
