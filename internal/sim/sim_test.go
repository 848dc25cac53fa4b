package sim

import (
	"context"
	"strings"
	"testing"
	"time"

	"jass/internal/bot"
	"jass/internal/domain"
)

func fastConfig(seed int64, rounds int, human, cpu bot.BotLevel) Config {
	return Config{
		Seed:          seed,
		Rounds:        rounds,
		Levels:        [2]bot.BotLevel{human, cpu},
		Budget:        time.Second,
		MaxIterations: 200,
	}
}

func TestSelfPlayRoundsManySeeds(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		sum, err := RunRounds(context.Background(), fastConfig(seed, 4, bot.BotLevelRandom, bot.BotLevelGreedy))
		if err != nil {
			t.Fatalf("self-play failed: %v", err)
		}
		if sum.Rounds != 4 || sum.Wins[0]+sum.Wins[1]+sum.Draws != 4 {
			t.Fatalf("seed %d: summary %+v", seed, sum)
		}
	}
}

func TestSelfPlayEveryPairing(t *testing.T) {
	levels := []bot.BotLevel{bot.BotLevelRandom, bot.BotLevelGreedy, bot.BotLevelSearch}
	for _, human := range levels {
		for _, cpu := range levels {
			t.Run(human.String()+"_vs_"+cpu.String(), func(t *testing.T) {
				sum, err := RunRounds(context.Background(), fastConfig(7, 2, human, cpu))
				if err != nil {
					t.Fatalf("self-play failed: %v", err)
				}
				if sum.Exchanges[0]+sum.Exchanges[1] > sum.Rounds {
					t.Errorf("more exchanges (%v) than rounds", sum.Exchanges)
				}
				for side, n := range sum.BlindSwitches {
					if n > sum.Rounds {
						t.Errorf("side %d switched its blind %d times in %d rounds", side, n, sum.Rounds)
					}
				}
			})
		}
	}
}

func TestSelfPlayIsReproducible(t *testing.T) {
	cfg := fastConfig(99, 3, bot.BotLevelGreedy, bot.BotLevelSearch)
	a, err := RunRounds(context.Background(), cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := RunRounds(context.Background(), cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if a != b {
		t.Errorf("same seed gave %+v and %+v", a, b)
	}
}

func TestRunRoundsHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunRounds(ctx, fastConfig(1, 3, bot.BotLevelRandom, bot.BotLevelRandom)); err == nil {
		t.Errorf("expected context error")
	}
}

func TestCheckInvariantsDetectsScoreDrift(t *testing.T) {
	trump := domain.CardFromIndex(domain.DeckSize - 1)
	round := &domain.Round{Phase: domain.PhaseTurn, TrumpCard: trump, OriginalTrumpCard: trump}
	next := 0
	for _, side := range []domain.Side{domain.SideHuman, domain.SideCPU} {
		for i := 0; i < domain.HandSize; i++ {
			round.Hands[side] = append(round.Hands[side], domain.CardFromIndex(next))
			next++
		}
		for i := 0; i < domain.BlindSize; i++ {
			round.Blinds[side] = append(round.Blinds[side], domain.CardFromIndex(next))
			next++
		}
	}
	for ; next < domain.DeckSize; next++ {
		if c := domain.CardFromIndex(next); c != trump {
			round.Stock = append(round.Stock, c)
		}
	}

	if err := checkInvariants(round); err != nil {
		t.Fatalf("fresh round: %v", err)
	}
	round.Scores[domain.SideCPU] = 10
	err := checkInvariants(round)
	if err == nil || !strings.Contains(err.Error(), "scores sum") {
		t.Errorf("err = %v, want score mismatch", err)
	}
}

func FuzzSelfPlayRounds(f *testing.F) {
	f.Add(int64(1))
	f.Add(int64(42))
	f.Add(int64(20250211))
	f.Fuzz(func(t *testing.T, seed int64) {
		if _, err := RunRounds(context.Background(), fastConfig(seed, 2, bot.BotLevelGreedy, bot.BotLevelRandom)); err != nil {
			t.Fatalf("self-play failed: %v", err)
		}
	})
}

func TestOnRoundReportsEveryRound(t *testing.T) {
	cfg := fastConfig(5, 4, bot.BotLevelRandom, bot.BotLevelGreedy)
	var results []RoundResult
	cfg.OnRound = func(r RoundResult) { results = append(results, r) }

	sum, err := RunRounds(context.Background(), cfg)
	if err != nil {
		t.Fatalf("RunRounds: %v", err)
	}
	if len(results) != sum.Rounds {
		t.Fatalf("callbacks = %d, rounds = %d", len(results), sum.Rounds)
	}
	for i, r := range results {
		wantLeader := domain.SideHuman
		if i%2 == 1 {
			wantLeader = domain.SideCPU
		}
		if r.Index != i || r.Leader != wantLeader {
			t.Errorf("round %d: index %d leader %v", i, r.Index, r.Leader)
		}
		if r.Draw != (r.Scores[0] == r.Scores[1]) {
			t.Errorf("round %d: draw flag %v with scores %v", i, r.Draw, r.Scores)
		}
	}
}
