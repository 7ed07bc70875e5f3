// Package agent implements the player actors. An Actor turns the messages
// the engine sends it into speech and actions by streaming decisions from a
// language model.
package agent

import (
	"context"
	"time"

	"coup/internal/engine"
	"coup/internal/protocol"
)

// Provider opens a response stream for a composed prompt.
type Provider interface {
	Stream(ctx context.Context, prompt string) (Stream, error)
}

// Stream is a lazily produced sequence of text fragments. Close may be
// called from another goroutine to interrupt a blocked Next.
type Stream interface {
	Next() bool
	Current() string
	Err() error
	Close() error
}

// Outbox carries an actor's messages to the engine.
type Outbox interface {
	Send(ctx context.Context, msg protocol.Message) error
}

// RosterSource serves the read-only table view for one player.
type RosterSource interface {
	Roster(viewer string) engine.Roster
}

// Config tunes the decision loop.
type Config struct {
	LogWindow      int           // trailing log entries shown in prompts
	MaxIdleTurns   int           // deliberations without a new task before forcing an action
	InterruptGrace time.Duration // how long a cancelled deliberation may take to stop before it is reported
	Model          string        // recorded on traces
}

func DefaultConfig() Config {
	return Config{
		LogWindow:      20,
		MaxIdleTurns:   4,
		InterruptGrace: time.Second,
	}
}
