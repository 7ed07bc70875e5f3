// Package session runs a game: the hub that owns the engine and one actor per
// seat, each in its own goroutine.
package session

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"coup/internal/agent"
	"coup/internal/engine"
	"coup/internal/engine/effects"
	"coup/internal/lobby"
)

// Config tunes a session.
type Config struct {
	Game            engine.GameConfig
	Agent           agent.Config
	ResponseTimeout time.Duration // 0 waits for actors forever
}

// Session is one game with its actors.
type Session struct {
	Game   *engine.Game
	Hub    *Hub
	Actors []*agent.Actor
}

// New seats one actor per lobby seat, in seating order.
func New(seats []lobby.Seat, provider agent.Provider, presenter Presenter, cfg Config) *Session {
	names := make([]string, len(seats))
	for i, s := range seats {
		names[i] = s.Name
	}
	game := engine.NewGame(names, cfg.Game, effects.NewRegistry())
	hub := NewHub(game, presenter, cfg.ResponseTimeout)

	s := &Session{Game: game, Hub: hub}
	for _, seat := range seats {
		a := agent.New(agent.Persona{Name: seat.Name, Personality: seat.Personality}, cfg.Agent, provider, hub, hub)
		hub.Register(seat.Name, a)
		s.Actors = append(s.Actors, a)
	}
	return s
}

// Run plays the game to the end. The actors stop once the hub returns.
func (s *Session) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	actorCtx, stopActors := context.WithCancel(gctx)
	defer stopActors()

	for _, a := range s.Actors {
		g.Go(func() error { return a.Run(actorCtx) })
	}
	g.Go(func() error {
		defer stopActors()
		return s.Hub.Run(gctx)
	})
	return g.Wait()
}
