package bot

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"jass/internal/bot/brain"
	botinternal "jass/internal/bot/internal"
	"jass/internal/bot/search"
	"jass/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// SearchBot chooses cards with the determinized search.
type SearchBot struct {
	housePolicy

	Budget time.Duration
	// MaxIterations caps each search; zero leaves only the time budget.
	MaxIterations int

	mu  sync.Mutex
	rng *rand.Rand
	log *zap.Logger
}

func NewSearchBot(budget time.Duration, rng *rand.Rand, logger *zap.Logger) *SearchBot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchBot{Budget: budget, rng: rng, log: logger}
}

func (b *SearchBot) ChooseCard(ctx context.Context, view domain.SideView, legal []domain.Card) (domain.Card, error) {
	phase := botinternal.DetectPhase(view)
	budget := time.Duration(float64(b.Budget) * DefaultTuning.ForPhase(phase).BudgetScale)

	opts := search.Options{
		Budget:        budget,
		MaxIterations: b.MaxIterations,
		Logger:        b.log.With(zap.Stringer("phase", phase), zap.Int("trick", view.Tricks+1)),
	}
	task, err := search.NewTask(brain.DecisionPools(view), opts, b.taskRNG())
	if err != nil {
		return domain.Card{}, fmt.Errorf("search bot: %w", err)
	}
	d, err := task.Run(ctx)
	if err != nil {
		return domain.Card{}, fmt.Errorf("search bot: %w", err)
	}

	if !slices.Contains(legal, d.Card) {
		b.log.Warn("search chose an illegal card", zap.Stringer("card", d.Card))
		return legal[0], nil
	}
	if d.Fallback {
		b.log.Debug("no winning line found, playing a random legal card", zap.Stringer("card", d.Card))
	}
	return d.Card, nil
}

// taskRNG derives an independent generator so concurrent tasks never share one.
func (b *SearchBot) taskRNG() *rand.Rand {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return rand.New(rand.NewSource(b.rng.Int63()))
}
