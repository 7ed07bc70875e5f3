package effects

import (
	"fmt"

	"coup/internal/engine"
	"coup/internal/rules"
)

// Assassinate (Assassin) costs 3 coins, paid even when it fails or is
// blocked, and makes the target lose a card.
type Assassinate struct{}

func (Assassinate) Action() rules.ActionKind { return rules.ActionAssassinate }

func (Assassinate) Apply(g *engine.Game, t *engine.TurnRecord, suppressed bool) []engine.Event {
	events := []engine.Event{coinsEvent(t, -g.Deposit(t.Source, rules.Cost(t.Action)))}
	if suppressed || t.Target == nil {
		return events
	}
	return append(events, g.RequestDiscard(t.Target, rules.ActionDiscard,
		fmt.Sprintf("You have been assassinated by %s. Choose a card to discard.", t.Source.Name))...)
}
