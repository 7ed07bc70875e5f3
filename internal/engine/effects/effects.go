// Package effects implements the execute step of every base action.
package effects

import "coup/internal/engine"

// Register adds every base-action effect to r.
func Register(r *engine.EffectRegistry) {
	r.Register(Income{})
	r.Register(ForeignAid{})
	r.Register(Tax{})
	r.Register(Steal{})
	r.Register(Assassinate{})
	r.Register(Coup{})
	r.Register(Exchange{})
}

// NewRegistry returns a registry holding every base-action effect.
func NewRegistry() *engine.EffectRegistry {
	r := engine.NewEffectRegistry()
	Register(r)
	return r
}

func coinsEvent(t *engine.TurnRecord, delta int) engine.Event {
	return engine.Event{Type: engine.EventExecuted, Player: t.Source.Name, Data: map[string]interface{}{
		"action": t.Action.String(), "coins": delta,
	}}
}
