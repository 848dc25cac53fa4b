package nakama

import (
	"context"
	"database/sql"

	"jass/internal/app"
	"jass/internal/bot"
	"jass/internal/config"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
	"go.uber.org/zap"
)

const (
	gameConfigPath  = "data/game_config.json"
	botIdentityPath = "data/bot_identities.json"
)

// InitModule wires RPCs and match handlers for Nakama runtime.
func InitModule(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, initializer runtime.Initializer) error {
	if err := config.LoadGameConfig(gameConfigPath); err != nil {
		logger.Warn("InitModule: Could not load game config, using defaults: %v", err)
	}
	if err := bot.LoadIdentities(botIdentityPath); err != nil {
		logger.Warn("InitModule: Could not load bot identities: %v", err)
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	cfg, err := config.GetGameConfig().WithEnv(env)
	if err != nil {
		return err
	}
	if _, err := bot.ParseLevel(cfg.BotLevelName()); err != nil {
		return err
	}

	secret := cfg.TicketSecret
	if secret == "" {
		// Tickets then only verify on this node.
		secret = uuid.NewString()
		logger.Warn("InitModule: %s not set, using a per-process ticket secret.", config.EnvTicketSecret)
	}
	tickets := app.NewTicketService(secret, cfg.TicketTTL())

	zl, err := zap.NewProduction()
	if err != nil {
		logger.Warn("InitModule: zap logger unavailable: %v", err)
		zl = zap.NewNop()
	}

	if err := RegisterRPCs(initializer, tickets, cfg.BotLevelName()); err != nil {
		return err
	}

	if err := initializer.RegisterMatch(MatchNameJass, func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return newMatchHandler(tickets, cfg, zl), nil
	}); err != nil {
		return err
	}

	logger.Info("Jass Go module loaded (bot=%s, budget=%v).", cfg.BotLevelName(), cfg.SearchBudget())
	return nil
}
