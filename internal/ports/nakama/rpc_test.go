package nakama

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"jass/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
)

// mockNakama overrides MatchCreate; other module calls are unused.
type mockNakama struct {
	runtime.NakamaModule
	created []map[string]interface{}
}

func (m *mockNakama) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	m.created = append(m.created, params)
	return testMatchID, nil
}

func TestSoloMatchRPC(t *testing.T) {
	tickets := app.NewTicketService("test-secret", time.Minute)
	rpc := newSoloMatchRPC(tickets, "search")
	userCtx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, testHumanID)

	tests := []struct {
		name      string
		ctx       context.Context
		payload   string
		wantErr   bool
		wantLevel string
	}{
		{"DefaultLevel", userCtx, "", false, "search"},
		{"EmptyLevel", userCtx, `{}`, false, "search"},
		{"Alias", userCtx, `{"bot_level":"easy"}`, false, "random"},
		{"UnknownLevel", userCtx, `{"bot_level":"godlike"}`, true, ""},
		{"BadJSON", userCtx, `{`, true, ""},
		{"Anonymous", context.Background(), "", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nk := &mockNakama{}
			out, err := rpc(tt.ctx, noopLogger{}, nil, nk, tt.payload)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %s", out)
				}
				if len(nk.created) != 0 {
					t.Errorf("match created despite error")
				}
				return
			}
			if err != nil {
				t.Fatalf("rpc: %v", err)
			}

			var resp SoloMatchResponse
			if err := json.Unmarshal([]byte(out), &resp); err != nil {
				t.Fatalf("response: %v", err)
			}
			if resp.MatchID != testMatchID || resp.BotLevel != tt.wantLevel {
				t.Errorf("response = %+v", resp)
			}
			if err := tickets.Verify(resp.Ticket, testHumanID, testMatchID); err != nil {
				t.Errorf("ticket does not verify: %v", err)
			}
			if got := nk.created[0]["user_id"]; got != testHumanID {
				t.Errorf("match params user_id = %v", got)
			}
		})
	}
}
