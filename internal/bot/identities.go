package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// BotIdentity is how the computer side presents itself to the client.
type BotIdentity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "random", "greedy", "search"
	AvatarIndex int    `json:"avatar_index"`
}

var (
	botIdentities []BotIdentity
	botIDMap      map[string]bool
	loadOnce      sync.Once
	loadErr       error
	identityMu    sync.RWMutex
)

// LoadIdentities loads the bot profiles from the given path.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var identities []BotIdentity
		if err := json.Unmarshal(data, &identities); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		setIdentities(identities)
	})
	return loadErr
}

func setIdentities(identities []BotIdentity) {
	identityMu.Lock()
	defer identityMu.Unlock()
	botIdentities = identities
	botIDMap = make(map[string]bool, len(identities))
	for _, identity := range identities {
		if identity.UserID != "" {
			botIDMap[identity.UserID] = true
		}
	}
}

// IdentityFor returns the profile matching level, or a generated one when no
// profile file was loaded.
func IdentityFor(level BotLevel) BotIdentity {
	identityMu.RLock()
	defer identityMu.RUnlock()
	for _, identity := range botIdentities {
		if identity.Difficulty == level.String() {
			return identity
		}
	}
	return BotIdentity{
		UserID:      "cpu-" + level.String(),
		Username:    "cpu_" + level.String(),
		DisplayName: "CPU (" + level.String() + ")",
		Difficulty:  level.String(),
	}
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	identityMu.RLock()
	defer identityMu.RUnlock()
	if botIDMap[userID] {
		return true
	}
	for _, level := range []BotLevel{BotLevelRandom, BotLevelGreedy, BotLevelSearch} {
		if userID == "cpu-"+level.String() {
			return true
		}
	}
	return false
}
