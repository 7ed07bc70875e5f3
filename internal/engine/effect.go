package engine

import (
	"fmt"

	"coup/internal/protocol"
	"coup/internal/rules"
)

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventMessage        EventType = "message" // Message addressed to Player
	EventSetup          EventType = "setup"
	EventActionAccepted EventType = "action_accepted"
	EventChallenge      EventType = "challenge"
	EventCounter        EventType = "counter"
	EventCardSwapped    EventType = "card_swapped"
	EventExecuted       EventType = "executed"
	EventDiscarded      EventType = "discarded"
	EventForfeit        EventType = "forfeit"
	EventEliminated     EventType = "eliminated"
	EventTurnEnd        EventType = "turn_end"
	EventGameOver       EventType = "game_over"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type    EventType              `json:"type"`
	Player  string                 `json:"player,omitempty"`
	Message protocol.Message       `json:"-"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// Effect applies the coin and card consequences of one base action.
type Effect interface {
	Action() rules.ActionKind
	// Apply executes the action. suppressed is true when the action failed a
	// challenge or was successfully countered; costs are still charged.
	Apply(g *Game, t *TurnRecord, suppressed bool) []Event
}

// EffectRegistry maps base actions to their effects.
type EffectRegistry struct {
	effects map[rules.ActionKind]Effect
}

func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{effects: make(map[rules.ActionKind]Effect)}
}

func (r *EffectRegistry) Register(e Effect) {
	r.effects[e.Action()] = e
}

func (r *EffectRegistry) Get(action rules.ActionKind) (Effect, error) {
	e, ok := r.effects[action]
	if !ok {
		return nil, fmt.Errorf("no effect registered for action %s", action)
	}
	return e, nil
}
