package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNilConfigDefaults(t *testing.T) {
	var c *GameConfig
	if got := c.SearchBudget(); got != DefaultSearchBudgetMs*time.Millisecond {
		t.Fatalf("SearchBudget = %v", got)
	}
	if got := c.BotLevelName(); got != DefaultBotLevel {
		t.Fatalf("BotLevelName = %q", got)
	}
	if lo, hi := c.BotDelayTicks(); lo != DefaultBotMinDelayTicks || hi != DefaultBotMaxDelayTicks {
		t.Fatalf("BotDelayTicks = %d, %d", lo, hi)
	}
	if got := c.SettleTimeoutOrDefault(); got != DefaultSettleTimeoutTicks {
		t.Fatalf("SettleTimeoutOrDefault = %d", got)
	}
	if got := c.TickRateOrDefault(); got != DefaultTickRate {
		t.Fatalf("TickRate = %d", got)
	}
	if got := c.TicketTTL(); got != DefaultTicketTTLSeconds*time.Second {
		t.Fatalf("TicketTTL = %v", got)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`{"search_budget_ms": 250, "bot_level": "greedy", "bot_min_delay_ticks": 4, "bot_max_delay_ticks": 1, "tick_rate": 10, "settle_timeout_ticks": 7}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := c.SearchBudget(); got != 250*time.Millisecond {
		t.Fatalf("SearchBudget = %v", got)
	}
	if got := c.BotLevelName(); got != "greedy" {
		t.Fatalf("BotLevelName = %q", got)
	}
	if lo, hi := c.BotDelayTicks(); lo != 4 || hi != 4 {
		t.Fatalf("BotDelayTicks = %d, %d; max below min should clamp", lo, hi)
	}
	if got := c.TickRateOrDefault(); got != 10 {
		t.Fatalf("TickRate = %d", got)
	}
	if got := c.SettleTimeoutOrDefault(); got != 7 {
		t.Fatalf("SettleTimeoutOrDefault = %d", got)
	}

	if _, err := Parse([]byte(`{"search_budget_ms": "fast"}`)); err == nil {
		t.Fatal("expected error for bad json type")
	}
}

func TestWithEnv(t *testing.T) {
	base := &GameConfig{SearchBudgetMs: 100, BotLevel: "random"}

	tests := []struct {
		name       string
		env        map[string]string
		wantBudget time.Duration
		wantLevel  string
		wantSecret string
		wantErr    bool
	}{
		{"no overrides", nil, 100 * time.Millisecond, "random", "", false},
		{"overrides", map[string]string{EnvSearchBudgetMs: "40", EnvBotLevel: "search", EnvTicketSecret: "s3"}, 40 * time.Millisecond, "search", "s3", false},
		{"bad budget", map[string]string{EnvSearchBudgetMs: "soon"}, 0, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := base.WithEnv(tt.env)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("WithEnv: %v", err)
			}
			if got.SearchBudget() != tt.wantBudget || got.BotLevelName() != tt.wantLevel || got.TicketSecret != tt.wantSecret {
				t.Fatalf("WithEnv = %+v", got)
			}
		})
	}
	if base.SearchBudgetMs != 100 {
		t.Fatal("WithEnv mutated its receiver")
	}
}

func TestLoadGameConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game_config.json")
	if err := os.WriteFile(path, []byte(`{"bot_level": "greedy"}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := LoadGameConfig(path); err != nil {
		t.Fatalf("LoadGameConfig: %v", err)
	}
	if got := GetGameConfig().BotLevelName(); got != "greedy" {
		t.Fatalf("BotLevelName = %q", got)
	}
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "game_config.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := c.SearchBudget(); got != DefaultSearchBudgetMs*time.Millisecond {
		t.Errorf("SearchBudget = %v", got)
	}
	if got := c.BotLevelName(); got != DefaultBotLevel {
		t.Errorf("BotLevelName = %q", got)
	}
	if got := c.TickRateOrDefault(); got != DefaultTickRate {
		t.Errorf("TickRate = %d", got)
	}
}
