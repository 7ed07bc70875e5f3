package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coup/internal/agent"
	"coup/internal/config"
	"coup/internal/engine"
	"coup/internal/lobby"
	"coup/internal/provider"
	"coup/internal/render"
	"coup/internal/session"
	"coup/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("coup: %v", err)
	}
	players := flag.Int("players", cfg.Players, "number of players (2-6)")
	seed := flag.Uint64("seed", cfg.Seed, "random seed, 0 for a random game")
	flag.Parse()

	if err := lobby.CheckCount(*players); err != nil {
		config.Exitf("coup: %v", err)
	}
	if cfg.OpenAIKey == "" && cfg.OpenAIBaseURL == "" {
		config.Exitf("coup: OPENAI_API_KEY is not set")
	}
	if *seed == 0 {
		*seed = rand.Uint64()
	}
	log.Printf("coup: %d players, seed %d, model %s", *players, *seed, cfg.Model)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, "coup", cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		config.Exitf("coup: telemetry: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("coup: otel shutdown: %v", err)
		}
	}()

	if err := run(ctx, cfg, *players, *seed); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println("GAME OVER")
			stop()
			os.Exit(130)
		}
		config.Exitf("coup: %v", err)
	}
}

func run(ctx context.Context, cfg config.Config, players int, seed uint64) error {
	gameCfg := engine.SeededConfig(seed)
	seating, err := lobby.Seated(players, rand.New(rand.NewPCG(seed, ^seed)))
	if err != nil {
		return err
	}
	seats := seating.GetSeats()
	personalities := make(map[string]string, len(seats))
	for _, s := range seats {
		personalities[s.Name] = s.Personality
	}

	agentCfg := agent.Config{
		LogWindow:      cfg.LogWindow,
		MaxIdleTurns:   cfg.MaxIdleTurns,
		InterruptGrace: cfg.InterruptGrace,
		Model:          cfg.Model,
	}
	llm := provider.NewOpenAI(provider.OpenAIConfig{
		APIKey:      cfg.OpenAIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
	})

	s := session.New(seats, llm, render.NewConsole(os.Stdout, personalities), session.Config{
		Game:            gameCfg,
		Agent:           agentCfg,
		ResponseTimeout: cfg.ResponseTimeout,
	})
	return s.Run(ctx)
}
