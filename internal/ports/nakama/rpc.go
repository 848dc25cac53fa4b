package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"jass/internal/app"
	"jass/internal/bot"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gRPC status codes used by runtime.NewError.
const (
	codeInvalidArgument = 3
	codeInternal        = 13
	codeUnauthenticated = 16
)

// SoloMatchRequest is the optional RPC payload.
type SoloMatchRequest struct {
	BotLevel string `json:"bot_level"`
}

// SoloMatchResponse is returned to the client, which joins MatchID with
// Ticket in the join metadata.
type SoloMatchResponse struct {
	MatchID  string `json:"match_id"`
	Ticket   string `json:"ticket"`
	BotLevel string `json:"bot_level"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer, tickets *app.TicketService, defaultLevel string) error {
	return initializer.RegisterRpc(RpcSoloMatch, newSoloMatchRPC(tickets, defaultLevel))
}

func newSoloMatchRPC(tickets *app.TicketService, defaultLevel string) func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
		userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
		if userID == "" {
			return "", runtime.NewError("solo_match requires an authenticated user", codeUnauthenticated)
		}

		req := SoloMatchRequest{BotLevel: defaultLevel}
		if payload != "" {
			if err := json.Unmarshal([]byte(payload), &req); err != nil {
				return "", runtime.NewError("invalid solo_match payload", codeInvalidArgument)
			}
			if req.BotLevel == "" {
				req.BotLevel = defaultLevel
			}
		}
		level, err := bot.ParseLevel(req.BotLevel)
		if err != nil {
			return "", runtime.NewError(err.Error(), codeInvalidArgument)
		}

		matchID, err := nk.MatchCreate(ctx, MatchNameJass, map[string]interface{}{
			"user_id":   userID,
			"bot_level": level.String(),
		})
		if err != nil {
			logger.Error("RpcSoloMatch [User:%s]: MatchCreate error: %v", userID, err)
			return "", runtime.NewError("could not create match", codeInternal)
		}

		ticket, err := tickets.Issue(userID, matchID)
		if err != nil {
			logger.Error("RpcSoloMatch [User:%s]: Ticket error: %v", userID, err)
			return "", runtime.NewError("could not issue ticket", codeInternal)
		}

		logger.Info("RpcSoloMatch [User:%s]: Created match %s (bot=%s)", userID, matchID, level)
		b, _ := json.Marshal(SoloMatchResponse{MatchID: matchID, Ticket: ticket, BotLevel: level.String()})
		return string(b), nil
	}
}
