package bot

import (
	"context"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jass/internal/domain"
)

func TestHousePolicyBlindSwitch(t *testing.T) {
	hand := []domain.Card{
		card(domain.Heart, domain.Ace), card(domain.Club, domain.Six), card(domain.Spade, domain.Seven),
		card(domain.Diamond, domain.Six), card(domain.Heart, domain.Nine), card(domain.Spade, domain.King),
	}
	got := housePolicy{}.BlindSwitch(domain.SideView{Trump: domain.Club, Hand: hand})
	want := []domain.Card{card(domain.Diamond, domain.Six), card(domain.Spade, domain.Seven), card(domain.Heart, domain.Nine)}
	if len(got) != len(want) {
		t.Fatalf("BlindSwitch = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("BlindSwitch = %v, want %v", got, want)
		}
	}

	short := []domain.Card{card(domain.Club, domain.Six), card(domain.Club, domain.Jack), card(domain.Heart, domain.Ten), card(domain.Spade, domain.Ten)}
	if got := (housePolicy{}).BlindSwitch(domain.SideView{Trump: domain.Club, Hand: short}); got != nil {
		t.Fatalf("only two side-suit cards, BlindSwitch = %v", got)
	}
}

func TestGreedyFollow(t *testing.T) {
	tests := []struct {
		name  string
		lead  domain.Card
		hand  []domain.Card
		hands int
		want  domain.Card
	}{
		{
			name: "cheapest winner in suit",
			lead: card(domain.Heart, domain.Ten),
			hand: []domain.Card{card(domain.Heart, domain.Ace), card(domain.Heart, domain.Queen), card(domain.Heart, domain.Six)},
			want: card(domain.Heart, domain.Queen),
		},
		{
			name: "trump a valuable trick",
			lead: card(domain.Heart, domain.Ace),
			hand: []domain.Card{card(domain.Spade, domain.Six), card(domain.Club, domain.Seven), card(domain.Diamond, domain.King), card(domain.Club, domain.Jack)},
			want: card(domain.Club, domain.Seven),
		},
		{
			name: "keep trumps on a worthless trick",
			lead: card(domain.Heart, domain.Seven),
			hand: []domain.Card{card(domain.Spade, domain.King), card(domain.Club, domain.Seven), card(domain.Diamond, domain.Six), card(domain.Club, domain.Jack)},
			want: card(domain.Diamond, domain.Six),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := tt.lead
			view := domain.SideView{Side: domain.SideCPU, Leader: domain.SideHuman, Trump: domain.Club, Hand: tt.hand, LeadCard: &lead}
			legal := domain.LegalPlays(tt.hand, &lead, domain.Club)
			got, err := NewGreedyBot().ChooseCard(context.Background(), view, legal)
			if err != nil {
				t.Fatalf("ChooseCard: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ChooseCard = %s, want %s", got, tt.want)
			}
		})
	}
}

// endgameView is a synthetic view where only A♥ and 8♠ are unseen.
func endgameView(hand []domain.Card) domain.SideView {
	trumpCard := card(domain.Club, domain.Six)
	hidden := domain.SetOf(card(domain.Heart, domain.Ace), card(domain.Spade, domain.Eight))
	seen := domain.FullDeck.Minus(hidden).Minus(domain.SetOf(hand...)).Without(trumpCard).Cards()
	return domain.SideView{
		Side:      domain.SideCPU,
		Trump:     domain.Club,
		TrumpCard: trumpCard,
		Hand:      hand,
		Blind:     seen[:3],
		Played:    [2][]domain.Card{seen[3:18], seen[18:]},
		Leader:    domain.SideCPU,
	}
}

func TestGreedyLeadsBossCard(t *testing.T) {
	hand := []domain.Card{card(domain.Heart, domain.Seven), card(domain.Club, domain.Nine)}
	view := endgameView(hand)
	got, err := NewGreedyBot().ChooseCard(context.Background(), view, hand)
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if got != card(domain.Club, domain.Nine) {
		t.Fatalf("ChooseCard = %s, want the unbeatable 9♣", got)
	}
}

func TestSearchBotFindsBestLead(t *testing.T) {
	hand := []domain.Card{card(domain.Club, domain.Nine), card(domain.Heart, domain.Seven)}
	bot := NewSearchBot(0, rand.New(rand.NewSource(5)), nil)
	bot.MaxIterations = 300

	got, err := bot.ChooseCard(context.Background(), endgameView(hand), hand)
	if err != nil {
		t.Fatalf("ChooseCard: %v", err)
	}
	if got != card(domain.Club, domain.Nine) {
		t.Fatalf("ChooseCard = %s, want 9♣", got)
	}
}

func TestNewBrain(t *testing.T) {
	for _, name := range []string{"random", "greedy", "search", "hard"} {
		level, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if _, err := NewBrain(level, Settings{Seed: 1}); err != nil {
			t.Fatalf("NewBrain(%s): %v", level, err)
		}
	}
	if _, err := ParseLevel("godlike"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := NewBrain(BotLevel(9), Settings{}); err == nil {
		t.Fatal("expected error for unknown level value")
	}
}

func TestIdentityFor(t *testing.T) {
	id := IdentityFor(BotLevelSearch)
	if id.UserID == "" || !IsBot(id.UserID) {
		t.Fatalf("identity %+v is not recognised as a bot", id)
	}
	if IsBot("some-human") {
		t.Fatal("human reported as bot")
	}
}

func TestShippedIdentities(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "bot_identities.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var identities []BotIdentity
	if err := json.Unmarshal(data, &identities); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	setIdentities(identities)
	t.Cleanup(func() { setIdentities(nil) })

	for _, level := range []BotLevel{BotLevelRandom, BotLevelGreedy, BotLevelSearch} {
		id := IdentityFor(level)
		if id.Difficulty != level.String() || strings.HasPrefix(id.UserID, "cpu-") {
			t.Errorf("%s: no shipped identity, got %+v", level, id)
		}
		if !IsBot(id.UserID) {
			t.Errorf("%s: %s not recognised as a bot", level, id.UserID)
		}
	}
}
