package session

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coup/internal/engine"
	"coup/internal/protocol"
)

var tracer = otel.Tracer("coup/internal/session")

// ErrClosed is returned by Send once the hub has stopped.
var ErrClosed = errors.New("hub closed")

// Recipient receives the engine's messages for one player.
type Recipient interface {
	Deliver(msg protocol.Message)
}

// Presenter shows the table at setup, after every turn and at game over.
type Presenter interface {
	Setup(snap engine.Snapshot)
	TurnEnd(snap engine.Snapshot)
	GameOver(snap engine.Snapshot, standings []engine.StandingEntry)
}

// Hub owns the game. Run is the only goroutine that touches it; actors talk
// to it through Send and read the table through Roster.
type Hub struct {
	game      *engine.Game
	presenter Presenter
	timeout   time.Duration

	recipients map[string]Recipient
	incoming   chan protocol.Message
	snapshot   atomic.Pointer[engine.Snapshot]
	done       chan struct{}
}

// NewHub creates a hub for game. A positive timeout forfeits pending tasks
// when no action arrives in time.
func NewHub(game *engine.Game, presenter Presenter, timeout time.Duration) *Hub {
	h := &Hub{
		game:       game,
		presenter:  presenter,
		timeout:    timeout,
		recipients: make(map[string]Recipient),
		incoming:   make(chan protocol.Message, 256),
		done:       make(chan struct{}),
	}
	h.publish()
	return h
}

// Register routes a player's messages to r. Call before Run.
func (h *Hub) Register(name string, r Recipient) {
	h.recipients[name] = r
}

// Send queues a message from an actor.
func (h *Hub) Send(ctx context.Context, msg protocol.Message) error {
	select {
	case h.incoming <- msg:
		return nil
	case <-h.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Roster returns the latest table view for viewer.
func (h *Hub) Roster(viewer string) engine.Roster {
	return h.snapshot.Load().Roster(viewer)
}

// Run starts the game and applies incoming messages until the game is over
// or ctx is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	h.dispatch(h.game.Start())

	var deadline <-chan time.Time
	var timer *time.Timer
	if h.timeout > 0 {
		timer = time.NewTimer(h.timeout)
		defer timer.Stop()
		deadline = timer.C
	}

	for h.game.Phase != engine.PhaseGameOver {
		select {
		case msg := <-h.incoming:
			if h.handleMessage(ctx, msg) && timer != nil {
				timer.Reset(h.timeout)
			}

		case <-deadline:
			log.Printf("hub: no action within %s, forfeiting %d task(s)", h.timeout, len(h.game.Pending()))
			h.dispatch(h.game.Forfeit())
			timer.Reset(h.timeout)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// handleMessage applies one actor message and reports whether the game moved.
func (h *Hub) handleMessage(ctx context.Context, msg protocol.Message) bool {
	switch m := msg.(type) {
	case protocol.Action:
		_, span := tracer.Start(ctx, "hub.apply", trace.WithAttributes(
			attribute.String("coup.player", m.Sender),
			attribute.String("coup.action", m.String()),
			attribute.Int("coup.turn", h.game.TurnNumber),
		))
		defer span.End()

		events, err := h.game.Apply(m)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			log.Printf("hub: rejected %s from %s: %v", m, m.Sender, err)
			h.deliver(m.Sender, protocol.GameEvent{Text: "Your action " + m.String() + " was rejected: " + err.Error()})
			return false
		}
		log.Printf("hub: %s plays %s", m.Sender, m)
		h.dispatch(events)
		return true

	case protocol.Speech:
		log.Printf("%s: %s", m.Sender, m.Text)
		h.dispatch(h.game.Speak(m))

	default:
		log.Printf("hub: unexpected %T from an actor", msg)
	}
	return false
}

// dispatch publishes the new table, then delivers messages and hands table
// events to the presenter.
func (h *Hub) dispatch(events []engine.Event) {
	snap := h.publish()
	for _, ev := range events {
		switch ev.Type {
		case engine.EventMessage:
			h.deliver(ev.Player, ev.Message)
		case engine.EventSetup:
			h.presenter.Setup(snap)
		case engine.EventTurnEnd:
			h.presenter.TurnEnd(snap)
		case engine.EventGameOver:
			h.presenter.GameOver(snap, h.game.Standings())
		case engine.EventActionAccepted:
			// logged by handleMessage
		default:
			log.Printf("hub: %s %s %v", ev.Type, ev.Player, ev.Data)
		}
	}
	if err := h.game.CheckInvariants(); err != nil {
		panic("hub: " + err.Error())
	}
}

func (h *Hub) publish() engine.Snapshot {
	snap := h.game.Snapshot()
	h.snapshot.Store(&snap)
	return snap
}

func (h *Hub) deliver(player string, msg protocol.Message) {
	if r, ok := h.recipients[player]; ok {
		r.Deliver(msg)
	}
}
