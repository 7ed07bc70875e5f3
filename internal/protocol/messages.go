// Package protocol defines the messages exchanged between the engine and the
// actors. Message is a closed set: only the variants in this file implement it.
package protocol

import (
	"strings"

	"coup/internal/rules"
)

// Message is one of Speech, GameEvent, Task, TaskComplete or Action.
type Message interface {
	isMessage()
}

// Speech is something a player says to the table.
type Speech struct {
	Sender string
	Text   string
}

// GameEvent informs an actor about the game or about a rejected action.
type GameEvent struct {
	Text string
}

// Task is a decision the engine is waiting on.
type Task struct {
	ID      string
	Prompt  string
	Allowed []rules.ActionKind
}

// TaskComplete withdraws a Task, answered or superseded.
type TaskComplete struct {
	TaskID string
}

// Action is an actor's decision.
type Action struct {
	Kind   rules.ActionKind
	Sender string
	Target string       // set when rules.RequiresTarget(Kind)
	Cards  []rules.Role // set for discard responses
}

func (Speech) isMessage()       {}
func (GameEvent) isMessage()    {}
func (Task) isMessage()         {}
func (TaskComplete) isMessage() {}
func (Action) isMessage()       {}

// Allows reports whether kind is an accepted answer to the task.
func (t Task) Allows(kind rules.ActionKind) bool {
	for _, a := range t.Allowed {
		if a == kind {
			return true
		}
	}
	return false
}

// AllowedNames lists the allowed actions in reply format.
func (t Task) AllowedNames() []string {
	out := make([]string, len(t.Allowed))
	for i, a := range t.Allowed {
		out[i] = a.Format()
	}
	return out
}

func (a Action) String() string {
	if a.Target != "" {
		return a.Kind.String() + " " + a.Target
	}
	if len(a.Cards) > 0 {
		names := make([]string, len(a.Cards))
		for i, c := range a.Cards {
			names[i] = c.String()
		}
		return a.Kind.String() + " " + strings.Join(names, " ")
	}
	return a.Kind.String()
}
