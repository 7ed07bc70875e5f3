package engine

import (
	"coup/internal/protocol"
	"coup/internal/rules"
)

// PendingTask is a decision the engine is waiting on.
type PendingTask struct {
	Player string
	Phase  GamePhase
	Task   protocol.Task
}

// Ledger is the phase barrier: the set of tasks still awaiting an answer.
// The state machine only moves on when it is empty. Entries are tagged with
// the phase that opened them so a whole window can be withdrawn at once.
type Ledger struct {
	pending []PendingTask
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Open adds tasks to the barrier.
func (l *Ledger) Open(tasks ...PendingTask) {
	l.pending = append(l.pending, tasks...)
}

// Match finds the first task of player that accepts kind.
func (l *Ledger) Match(player string, kind rules.ActionKind) (PendingTask, bool) {
	for _, t := range l.pending {
		if t.Player == player && t.Task.Allows(kind) {
			return t, true
		}
	}
	return PendingTask{}, false
}

// For returns the tasks pending for player.
func (l *Ledger) For(player string) []PendingTask {
	var out []PendingTask
	for _, t := range l.pending {
		if t.Player == player {
			out = append(out, t)
		}
	}
	return out
}

// Resolve removes the task with the given ID. Returns false if it was not pending.
func (l *Ledger) Resolve(taskID string) bool {
	for i, t := range l.pending {
		if t.Task.ID == taskID {
			l.pending = append(l.pending[:i], l.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Cancel withdraws every task opened for phase and returns them.
func (l *Ledger) Cancel(phase GamePhase) []PendingTask {
	var cancelled []PendingTask
	kept := l.pending[:0]
	for _, t := range l.pending {
		if t.Phase == phase {
			cancelled = append(cancelled, t)
			continue
		}
		kept = append(kept, t)
	}
	l.pending = kept
	return cancelled
}

// All returns a copy of the pending tasks in issue order.
func (l *Ledger) All() []PendingTask {
	return append([]PendingTask(nil), l.pending...)
}

func (l *Ledger) Len() int {
	return len(l.pending)
}

// Has reports whether the task is still pending.
func (l *Ledger) Has(taskID string) bool {
	for _, t := range l.pending {
		if t.Task.ID == taskID {
			return true
		}
	}
	return false
}
