// Command selfplay pits two bot levels against each other and checks the
// round invariants after every step. With -listen it serves the same runs
// over HTTP instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"jass/internal/bot"
	"jass/internal/config"
	"jass/internal/ports/selfplay"
	"jass/internal/sim"

	"go.uber.org/zap"
)

func main() {
	var (
		seed       = flag.Int64("seed", time.Now().UnixNano(), "rng seed")
		rounds     = flag.Int("rounds", 100, "rounds to play")
		human      = flag.String("human", "greedy", "bot level for the human side")
		cpu        = flag.String("cpu", config.DefaultBotLevel, "bot level for the computer side")
		budgetMs   = flag.Int("budget-ms", config.DefaultSearchBudgetMs, "search budget per decision")
		iterations = flag.Int("iterations", 0, "search iteration cap, 0 for none")
		listen     = flag.String("listen", "", "serve the self-play API on this address")
		dev        = flag.Bool("dev", false, "human readable debug logging")
	)
	flag.Parse()

	log, err := newLogger(*dev)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	var levels [2]bot.BotLevel
	for i, name := range []string{*human, *cpu} {
		if levels[i], err = bot.ParseLevel(name); err != nil {
			log.Fatal("bad level", zap.Error(err))
		}
	}
	budget := time.Duration(*budgetMs) * time.Millisecond

	if *listen != "" {
		e := selfplay.NewServer(selfplay.Defaults{
			Rounds:        *rounds,
			Levels:        levels,
			Budget:        budget,
			MaxIterations: *iterations,
		}, log)
		log.Info("serving self-play", zap.String("addr", *listen))
		if err := e.Start(*listen); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	sum, err := sim.RunRounds(ctx, sim.Config{
		Seed:          *seed,
		Rounds:        *rounds,
		Levels:        levels,
		Budget:        budget,
		MaxIterations: *iterations,
		Logger:        log,
	})
	if err != nil {
		log.Fatal("self-play failed", zap.Int64("seed", *seed), zap.Error(err))
	}

	log.Info("self-play finished",
		zap.Int64("seed", *seed),
		zap.Int("rounds", sum.Rounds),
		zap.Stringer("human", levels[0]),
		zap.Stringer("cpu", levels[1]),
		zap.Ints("wins", sum.Wins[:]),
		zap.Int("draws", sum.Draws),
		zap.Ints("points", sum.Points[:]),
		zap.Ints("exchanges", sum.Exchanges[:]),
		zap.Duration("elapsed", time.Since(start)),
	)
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
