package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

// Defaults used when the config file omits a value or was never loaded.
const (
	DefaultSearchBudgetMs     = 1500
	DefaultBotLevel           = "search"
	DefaultBotMinDelayTicks   = 2
	DefaultBotMaxDelayTicks   = 5
	DefaultSettleTimeoutTicks = 3
	DefaultTickRate           = 5
	DefaultTicketTTLSeconds   = 60
)

// Nakama runtime env keys that override file values.
const (
	EnvSearchBudgetMs = "jass_search_budget_ms"
	EnvBotLevel       = "jass_bot_level"
	EnvTicketSecret   = "jass_ticket_secret"
)

type GameConfig struct {
	SearchBudgetMs int    `json:"search_budget_ms"`
	BotLevel       string `json:"bot_level"`
	// BotMinDelayTicks and BotMaxDelayTicks bound the pause before the
	// computer side acts, so its moves do not land instantly.
	BotMinDelayTicks   int `json:"bot_min_delay_ticks"`
	BotMaxDelayTicks   int `json:"bot_max_delay_ticks"`
	SettleTimeoutTicks int `json:"settle_timeout_ticks"`
	TickRate           int `json:"tick_rate"`
	TicketTTLSeconds   int `json:"ticket_ttl_seconds"`

	// TicketSecret only comes from the environment.
	TicketSecret string `json:"-"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := Parse(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// Parse decodes a JSON game config.
func Parse(data []byte) (*GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	return &c, nil
}

// GetGameConfig returns the global game configuration. It may be nil; every
// getter falls back to its default.
func GetGameConfig() *GameConfig {
	return cfg
}

// WithEnv returns a copy of c with Nakama env overrides applied.
func (c *GameConfig) WithEnv(env map[string]string) (*GameConfig, error) {
	out := GameConfig{}
	if c != nil {
		out = *c
	}
	if v, ok := env[EnvSearchBudgetMs]; ok && v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvSearchBudgetMs, v, err)
		}
		out.SearchBudgetMs = ms
	}
	if v, ok := env[EnvBotLevel]; ok && v != "" {
		out.BotLevel = v
	}
	if v, ok := env[EnvTicketSecret]; ok {
		out.TicketSecret = v
	}
	return &out, nil
}

// SearchBudget returns the wall-clock budget of one search decision.
func (c *GameConfig) SearchBudget() time.Duration {
	ms := DefaultSearchBudgetMs
	if c != nil && c.SearchBudgetMs > 0 {
		ms = c.SearchBudgetMs
	}
	return time.Duration(ms) * time.Millisecond
}

func (c *GameConfig) BotLevelName() string {
	if c == nil || c.BotLevel == "" {
		return DefaultBotLevel
	}
	return c.BotLevel
}

// BotDelayTicks returns the [min, max] pause in ticks before the bot acts.
func (c *GameConfig) BotDelayTicks() (int, int) {
	lo, hi := DefaultBotMinDelayTicks, DefaultBotMaxDelayTicks
	if c != nil && c.BotMinDelayTicks > 0 {
		lo = c.BotMinDelayTicks
	}
	if c != nil && c.BotMaxDelayTicks > 0 {
		hi = c.BotMaxDelayTicks
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func (c *GameConfig) SettleTimeoutOrDefault() int {
	if c == nil || c.SettleTimeoutTicks <= 0 {
		return DefaultSettleTimeoutTicks
	}
	return c.SettleTimeoutTicks
}

func (c *GameConfig) TickRateOrDefault() int {
	if c == nil || c.TickRate <= 0 {
		return DefaultTickRate
	}
	return c.TickRate
}

func (c *GameConfig) TicketTTL() time.Duration {
	s := DefaultTicketTTLSeconds
	if c != nil && c.TicketTTLSeconds > 0 {
		s = c.TicketTTLSeconds
	}
	return time.Duration(s) * time.Second
}
