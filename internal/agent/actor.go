package agent

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coup/internal/engine"
	"coup/internal/protocol"
	"coup/internal/rules"
)

var tracer = otel.Tracer("coup/internal/agent")

// Actor plays one seat. Messages are queued by Deliver and handled by Run,
// which owns all the fields below the mailbox.
type Actor struct {
	Name        string
	Personality string

	cfg      Config
	provider Provider
	outbox   Outbox
	roster   RosterSource

	mu     sync.Mutex
	inbox  []protocol.Message
	notify chan struct{}

	tasks   []protocol.Task
	log     []string
	idle    int
	current *deliberation
}

func New(p Persona, cfg Config, provider Provider, outbox Outbox, roster RosterSource) *Actor {
	return &Actor{
		Name:        p.Name,
		Personality: p.Personality,
		cfg:         cfg,
		provider:    provider,
		outbox:      outbox,
		roster:      roster,
		notify:      make(chan struct{}, 1),
	}
}

// Deliver queues a message for the actor. It never blocks.
func (a *Actor) Deliver(msg protocol.Message) {
	a.mu.Lock()
	a.inbox = append(a.inbox, msg)
	a.mu.Unlock()

	select {
	case a.notify <- struct{}{}:
	default:
	}
}

// Run handles delivered messages until ctx is cancelled.
func (a *Actor) Run(ctx context.Context) error {
	defer a.interrupt()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-a.notify:
		}

		batch := a.drain()
		if len(batch) == 0 {
			continue
		}
		a.interrupt()

		respond := false
		for _, msg := range batch {
			if a.observe(msg) {
				respond = true
			}
		}
		if respond {
			a.deliberate(ctx)
		}
	}
}

func (a *Actor) drain() []protocol.Message {
	a.mu.Lock()
	defer a.mu.Unlock()
	batch := a.inbox
	a.inbox = nil
	return batch
}

// interrupt stops the live deliberation, if any, and keeps its thoughts.
func (a *Actor) interrupt() {
	d := a.current
	if d == nil {
		return
	}
	a.current = nil
	if d.stop(a.cfg.InterruptGrace) {
		log.Printf("agent %s: deliberation took longer than %s to stop", a.Name, a.cfg.InterruptGrace)
	}
	for _, t := range d.thoughts {
		a.remember(t)
	}
}

// observe updates the actor's state and reports whether the message is
// worth deliberating on.
func (a *Actor) observe(msg protocol.Message) bool {
	switch m := msg.(type) {
	case protocol.TaskComplete:
		for i, t := range a.tasks {
			if t.ID == m.TaskID {
				a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)
				break
			}
		}
		return false
	case protocol.Task:
		a.tasks = append(a.tasks, m)
		a.idle = 0
		return true
	case protocol.Speech:
		a.remember(m.Sender + ": " + m.Text)
		return m.Sender != a.Name
	case protocol.GameEvent:
		a.remember("GAME: " + m.Text)
		return true
	case protocol.Action:
		log.Printf("agent %s: ignoring action addressed to an actor: %s", a.Name, m)
	}
	return false
}

func (a *Actor) remember(entry string) {
	a.log = append(a.log, entry)
	if n := a.cfg.LogWindow; n > 0 && len(a.log) > n {
		a.log = append([]string(nil), a.log[len(a.log)-n:]...)
	}
}

// deliberate starts a new decision process unless the actor has been idle
// too long with nothing to decide.
func (a *Actor) deliberate(ctx context.Context) {
	overdue := a.idle > a.cfg.MaxIdleTurns
	if overdue && len(a.tasks) == 0 {
		return
	}
	a.idle++

	roster := a.roster.Roster(a.Name)
	var allowed []rules.ActionKind
	for _, t := range a.tasks {
		allowed = append(allowed, t.Allowed...)
	}
	prompt := composePrompt(promptData{
		Name:        a.Name,
		Personality: a.Personality,
		Log:         append([]string(nil), a.log...),
		Roster:      roster,
		Tasks:       append([]protocol.Task(nil), a.tasks...),
		Forced:      overdue,
	})

	dctx, cancel := context.WithCancel(ctx)
	d := newDeliberation(cancel)
	a.current = d
	go func() {
		defer close(d.done)
		defer d.closeStream()
		a.stream(dctx, d, prompt, allowed, roster, overdue)
	}()
}

// stream reads the provider's response and dispatches every completed segment.
func (a *Actor) stream(ctx context.Context, d *deliberation, prompt string, allowed []rules.ActionKind, roster engine.Roster, forced bool) {
	ctx, span := tracer.Start(ctx, "agent.deliberate", trace.WithAttributes(
		attribute.String("coup.player", a.Name),
		attribute.String("coup.model", a.cfg.Model),
		attribute.Int("coup.allowed", len(allowed)),
		attribute.Bool("coup.forced", forced),
	))
	defer span.End()

	s, err := a.provider.Stream(ctx, prompt)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("agent %s: provider: %v", a.Name, err)
			span.SetStatus(codes.Error, err.Error())
		}
		return
	}
	if !d.attach(s) {
		s.Close()
		return
	}

	var p SegmentParser
	acted := false
	for s.Next() {
		for _, seg := range p.Feed(s.Current()) {
			acted = a.dispatch(ctx, d, seg, allowed, roster, acted)
		}
	}
	if ctx.Err() != nil {
		return
	}
	if err := s.Err(); err != nil {
		// A failed stream contributes nothing beyond the segments already sent.
		log.Printf("agent %s: stream: %v", a.Name, err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	for _, seg := range p.Flush() {
		acted = a.dispatch(ctx, d, seg, allowed, roster, acted)
	}
}

// dispatch acts on one segment and reports whether an action has been sent
// during this deliberation.
func (a *Actor) dispatch(ctx context.Context, d *deliberation, seg Segment, allowed []rules.ActionKind, roster engine.Roster, acted bool) bool {
	if ctx.Err() != nil {
		return acted
	}
	switch seg.Kind {
	case SegmentThought:
		log.Printf("agent %s: thinking: %s", a.Name, seg.Text)
		d.thoughts = append(d.thoughts, "THOUGHT: "+seg.Text)

	case SegmentSpeech:
		a.send(ctx, protocol.Speech{Sender: a.Name, Text: seg.Text})

	case SegmentAction:
		if acted {
			log.Printf("agent %s: dropping second action %q", a.Name, seg.Text)
			return acted
		}
		action, err := decide(a.Name, seg.Text, allowed, roster)
		if err != nil {
			a.Deliver(protocol.GameEvent{Text: err.Error()})
			return acted
		}
		a.send(ctx, action)
		return true
	}
	return acted
}

func (a *Actor) send(ctx context.Context, msg protocol.Message) {
	if err := a.outbox.Send(ctx, msg); err != nil && ctx.Err() == nil {
		log.Printf("agent %s: send: %v", a.Name, err)
	}
}
