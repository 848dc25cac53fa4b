package bot

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"jass/internal/domain"
)

// housePolicy holds the choices every level shares: always take the trump
// card when allowed, and bury the three weakest side-suit cards in the blind.
type housePolicy struct{}

func (housePolicy) WantsExchange(view domain.SideView) bool {
	return view.CanExchange
}

func (housePolicy) BlindSwitch(view domain.SideView) []domain.Card {
	var plain []domain.Card
	for _, c := range view.Hand {
		if c.Suit != view.Trump {
			plain = append(plain, c)
		}
	}
	if len(plain) < domain.BlindSize {
		return nil
	}
	sort.SliceStable(plain, func(i, j int) bool {
		if plain[i].Rank != plain[j].Rank {
			return plain[i].Rank < plain[j].Rank
		}
		return plain[i].Suit < plain[j].Suit
	})
	return plain[:domain.BlindSize]
}

// RandomBot plays a uniformly random legal card.
type RandomBot struct {
	housePolicy

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomBot(rng *rand.Rand) *RandomBot {
	return &RandomBot{rng: rng}
}

func (b *RandomBot) ChooseCard(_ context.Context, _ domain.SideView, legal []domain.Card) (domain.Card, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return legal[b.rng.Intn(len(legal))], nil
}
