// Package lobby seats the players of a game.
package lobby

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"coup/internal/agent"
)

const (
	MinPlayers = 2
	MaxPlayers = 6
)

var (
	ErrPlayerCount   = fmt.Errorf("player count must be between %d and %d", MinPlayers, MaxPlayers)
	ErrEmptyName     = errors.New("player name is empty")
	ErrDuplicateName = errors.New("player name already taken")
	ErrStarted       = errors.New("game already started")
)

// Seat is one player at the table.
type Seat struct {
	Name        string
	Personality string
}

// Lobby collects players until the game starts.
type Lobby struct {
	mu      sync.Mutex
	Seats   []*Seat
	Started bool
	rng     *rand.Rand
}

// NewLobby creates an empty lobby. rng decides the seating order.
func NewLobby(rng *rand.Rand) *Lobby {
	return &Lobby{rng: rng}
}

// CheckCount validates a requested table size.
func CheckCount(n int) error {
	if n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("%w: got %d", ErrPlayerCount, n)
	}
	return nil
}

// Join adds a player to the lobby.
func (l *Lobby) Join(name, personality string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	name = strings.TrimSpace(name)
	if l.Started {
		return ErrStarted
	}
	if name == "" {
		return ErrEmptyName
	}
	if len(l.Seats) >= MaxPlayers {
		return fmt.Errorf("%w: lobby is full", ErrPlayerCount)
	}
	for _, s := range l.Seats {
		if strings.EqualFold(s.Name, name) {
			return fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
	}
	l.Seats = append(l.Seats, &Seat{Name: name, Personality: personality})
	return nil
}

// Start shuffles the seating order and closes the lobby.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	if err := CheckCount(len(l.Seats)); err != nil {
		return err
	}
	l.rng.Shuffle(len(l.Seats), func(i, j int) {
		l.Seats[i], l.Seats[j] = l.Seats[j], l.Seats[i]
	})
	l.Started = true
	return nil
}

// GetSeats returns a copy of the seating in turn order.
func (l *Lobby) GetSeats() []Seat {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Seat, len(l.Seats))
	for i, s := range l.Seats {
		out[i] = *s
	}
	return out
}

// Seated fills a lobby with n generated personas and starts it.
func Seated(n int, rng *rand.Rand) (*Lobby, error) {
	if err := CheckCount(n); err != nil {
		return nil, err
	}
	if n > agent.MaxPersonas() {
		return nil, fmt.Errorf("%w: only %d personas", ErrPlayerCount, agent.MaxPersonas())
	}
	l := NewLobby(rng)
	for _, p := range agent.Personas(n, rng) {
		if err := l.Join(p.Name, p.Personality); err != nil {
			return nil, err
		}
	}
	if err := l.Start(); err != nil {
		return nil, err
	}
	return l, nil
}
