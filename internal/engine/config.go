package engine

import (
	"math/rand/v2"

	"github.com/google/uuid"
)

// GameConfig holds configuration for creating a new game.
type GameConfig struct {
	CopiesPerRole int // cards of each role in the court (default 3)
	HandSize      int // cards dealt to each player (default 2)
	Treasury      int // coins in the bank at setup (default 50)

	Rand  *rand.Rand    // shuffles the deck; seed it for reproducible games
	NewID func() string // task identifiers
}

func DefaultConfig() GameConfig {
	return GameConfig{
		CopiesPerRole: 3,
		HandSize:      2,
		Treasury:      50,
		Rand:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		NewID:         uuid.NewString,
	}
}

// SeededConfig is DefaultConfig with a deterministic deck.
func SeededConfig(seed uint64) GameConfig {
	cfg := DefaultConfig()
	cfg.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return cfg
}

// StartingCoins is the grant each player receives at setup.
func StartingCoins(numPlayers int) int {
	if numPlayers == 2 {
		return 1
	}
	return 2
}
