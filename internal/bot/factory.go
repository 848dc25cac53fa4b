package bot

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"
)

// BotLevel selects the strategy behind the computer side.
type BotLevel int

const (
	BotLevelRandom BotLevel = iota
	BotLevelGreedy
	BotLevelSearch
)

func (l BotLevel) String() string {
	switch l {
	case BotLevelRandom:
		return "random"
	case BotLevelGreedy:
		return "greedy"
	case BotLevelSearch:
		return "search"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// ParseLevel maps a config or flag value to a BotLevel.
func ParseLevel(s string) (BotLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random", "easy":
		return BotLevelRandom, nil
	case "greedy", "medium":
		return BotLevelGreedy, nil
	case "search", "hard", "":
		return BotLevelSearch, nil
	default:
		return 0, fmt.Errorf("unknown bot level: %q", s)
	}
}

// Settings carries what the strategies need besides the view.
type Settings struct {
	Budget time.Duration
	// MaxIterations caps each search decision; zero leaves only Budget.
	MaxIterations int
	Seed          int64
	Logger        *zap.Logger
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel, s Settings) (Brain, error) {
	if s.Seed == 0 {
		s.Seed = time.Now().UnixNano()
	}
	if s.Logger == nil {
		s.Logger = zap.NewNop()
	}
	rng := rand.New(rand.NewSource(s.Seed))

	switch level {
	case BotLevelRandom:
		return NewRandomBot(rng), nil
	case BotLevelGreedy:
		return NewGreedyBot(), nil
	case BotLevelSearch:
		b := NewSearchBot(s.Budget, rng, s.Logger)
		b.MaxIterations = s.MaxIterations
		return b, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
