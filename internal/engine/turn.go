package engine

import "coup/internal/rules"

type turnStage int

const (
	stageProposed turnStage = iota
	stageChallenge
	stageCounter
	stageCounterChallenge
	stageExecuted
)

// TurnRecord is the base action currently being resolved.
type TurnRecord struct {
	Source    *Player
	Action    rules.ActionKind
	Target    *Player // nil unless rules.RequiresTarget(Action)
	Counterer *Player // set once someone counters

	Failed  bool // a challenge exposed the source's claim
	Blocked bool // the counter stands

	stage turnStage
}

// Suppressed reports whether the action's effect must be skipped.
func (t *TurnRecord) Suppressed() bool {
	return t.Failed || t.Blocked
}
