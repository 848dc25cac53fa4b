// Package sim plays complete rounds between two bot agents through the round
// orchestrator and checks the round invariants after every step.
package sim

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"jass/internal/app"
	"jass/internal/bot"
	"jass/internal/domain"

	"go.uber.org/zap"
)

// maxStepsPerRound bounds a round: 18 plays, one exchange and two blind
// switches fit comfortably.
const maxStepsPerRound = 64

type Config struct {
	Seed   int64
	Rounds int
	// Levels holds the strategy for SideHuman and SideCPU.
	Levels [2]bot.BotLevel
	Budget time.Duration
	// MaxIterations makes search decisions reproducible for a seed.
	MaxIterations int
	Logger        *zap.Logger
	// OnRound, when set, is called after every finished round.
	OnRound func(RoundResult)
}

// RoundResult is the outcome of one finished round.
type RoundResult struct {
	Index  int         `json:"index"`
	ID     string      `json:"id"`
	Leader domain.Side `json:"leader"`
	Trump  string      `json:"trump"`
	Scores [2]int      `json:"scores"`
	Draw   bool        `json:"draw"`
	Winner domain.Side `json:"winner"`
}

// Summary aggregates the outcome of a run.
type Summary struct {
	Rounds        int    `json:"rounds"`
	Wins          [2]int `json:"wins"`
	Draws         int    `json:"draws"`
	Points        [2]int `json:"points"`
	Exchanges     [2]int `json:"exchanges"`
	BlindSwitches [2]int `json:"blind_switches"`
}

type StepRecord struct {
	Round int
	Step  int
	Side  domain.Side
	Move  bot.Move
}

func (r StepRecord) String() string {
	switch r.Move.Kind {
	case bot.MovePlay:
		return fmt.Sprintf("[r%d s%d %s] play %v", r.Round, r.Step, r.Side, r.Move.Card)
	case bot.MoveSwitchBlind:
		return fmt.Sprintf("[r%d s%d %s] switch %v", r.Round, r.Step, r.Side, r.Move.Cards)
	default:
		return fmt.Sprintf("[r%d s%d %s] %s", r.Round, r.Step, r.Side, r.Move.Kind)
	}
}

// RunRounds plays cfg.Rounds rounds, alternating the leader and starting
// with SideHuman. The first violated invariant aborts the run with the last
// moves attached.
func RunRounds(ctx context.Context, cfg Config) (Summary, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	var agents [2]*bot.Agent
	for _, side := range []domain.Side{domain.SideHuman, domain.SideCPU} {
		level := cfg.Levels[side]
		brain, err := bot.NewBrain(level, bot.Settings{
			Budget:        cfg.Budget,
			MaxIterations: cfg.MaxIterations,
			Seed:          cfg.Seed + int64(side) + 1,
			Logger:        log.With(zap.Stringer("side", side)),
		})
		if err != nil {
			return Summary{}, fmt.Errorf("side %s: %w", side, err)
		}
		agents[side] = &bot.Agent{ID: side.String(), Name: level.String(), Strategy: brain}
	}

	svc := app.NewService(rand.New(rand.NewSource(cfg.Seed)))
	var sum Summary
	leader := domain.SideHuman

	for r := 0; r < cfg.Rounds; r++ {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		round, _, err := svc.StartRound(leader)
		if err != nil {
			return sum, err
		}
		result := RoundResult{Index: r, ID: round.ID, Leader: leader, Trump: round.TrumpSuit().String()}
		leader = leader.Other()

		if err := playRound(ctx, svc, agents, round, r, cfg.Seed, &sum); err != nil {
			return sum, err
		}

		sum.Rounds++
		for _, side := range []domain.Side{domain.SideHuman, domain.SideCPU} {
			sum.Points[side] += round.Scores[side]
		}
		result.Scores = round.Scores
		switch {
		case round.Scores[domain.SideHuman] > round.Scores[domain.SideCPU]:
			result.Winner = domain.SideHuman
			sum.Wins[domain.SideHuman]++
		case round.Scores[domain.SideCPU] > round.Scores[domain.SideHuman]:
			result.Winner = domain.SideCPU
			sum.Wins[domain.SideCPU]++
		default:
			result.Draw = true
			sum.Draws++
		}
		if cfg.OnRound != nil {
			cfg.OnRound(result)
		}
		log.Debug("round finished",
			zap.Int("round", r),
			zap.String("id", round.ID),
			zap.Int("human", round.Scores[domain.SideHuman]),
			zap.Int("cpu", round.Scores[domain.SideCPU]),
		)
	}
	return sum, nil
}

func playRound(ctx context.Context, svc *app.Service, agents [2]*bot.Agent, round *domain.Round, r int, seed int64, sum *Summary) error {
	records := []StepRecord{}
	for step := 0; round.Phase != domain.PhaseEnded; step++ {
		if step >= maxStepsPerRound {
			return failure(seed, r, step, round, records, "round did not finish")
		}
		side := round.Turn
		move, err := agents[side].Decide(ctx, svc.View(round, side))
		if err != nil {
			return failure(seed, r, step, round, records, fmt.Sprintf("decide error: %v", err))
		}
		records = append(records, StepRecord{Round: r, Step: step, Side: side, Move: move})

		switch move.Kind {
		case bot.MoveExchangeTrump:
			_, err = svc.ExchangeTrump(round, side)
			sum.Exchanges[side]++
		case bot.MoveSwitchBlind:
			_, err = svc.SwitchBlind(round, side, move.Cards)
			sum.BlindSwitches[side]++
		default:
			if _, err = svc.PlayCard(round, side, move.Card); err == nil {
				_, err = svc.Advance(round, nil)
			}
		}
		if err != nil {
			return failure(seed, r, step, round, records, fmt.Sprintf("apply error: %v", err))
		}
		if err := checkInvariants(round); err != nil {
			return failure(seed, r, step, round, records, err.Error())
		}
	}
	return nil
}

// checkInvariants verifies card conservation, per-side card counts, the
// single trump exchange and that scores account for every resolved card.
func checkInvariants(round *domain.Round) error {
	if err := round.CheckPartition(); err != nil {
		return err
	}
	for _, side := range []domain.Side{domain.SideHuman, domain.SideCPU} {
		if n := len(round.Hands[side]) + len(round.Played[side]); n != domain.HandSize {
			return fmt.Errorf("%s holds %d cards in hand and played pile", side, n)
		}
		if len(round.Blinds[side]) != domain.BlindSize {
			return fmt.Errorf("%s blind has %d cards", side, len(round.Blinds[side]))
		}
	}
	if round.Exchanged != (round.TrumpCard != round.OriginalTrumpCard) {
		return fmt.Errorf("trump slot %v inconsistent with exchanged=%v", round.TrumpCard, round.Exchanged)
	}

	trump := round.TrumpSuit()
	var onTable domain.CardSet
	for _, c := range round.Trick {
		if c != nil {
			onTable = onTable.With(*c)
		}
	}
	want := round.PlayedPoints(trump) - domain.SetScore(onTable, trump)
	if got := round.Scores[domain.SideHuman] + round.Scores[domain.SideCPU]; got != want {
		return fmt.Errorf("scores sum %d, resolved points %d", got, want)
	}
	return nil
}

func failure(seed int64, round, step int, state *domain.Round, records []StepRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	var b strings.Builder
	for _, r := range records[start:] {
		b.WriteString(r.String())
		b.WriteByte('\n')
	}
	return fmt.Errorf("seed=%d round=%d step=%d phase=%v turn=%s reason=%s\nlast moves:\n%s",
		seed, round, step, state.Phase, state.Turn, reason, b.String())
}
