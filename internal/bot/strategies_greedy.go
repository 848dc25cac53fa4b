package bot

import (
	"context"
	"sort"
	"sync"

	"jass/internal/bot/brain"
	botinternal "jass/internal/bot/internal"
	"jass/internal/domain"
)

// GreedyBot plays from card memory alone: it cashes boss cards, leads low
// risk cards otherwise and takes tricks with the cheapest winning card.
type GreedyBot struct {
	housePolicy

	mu     sync.Mutex
	Memory *brain.GameMemory
}

func NewGreedyBot() *GreedyBot {
	return &GreedyBot{Memory: brain.NewMemory()}
}

func (b *GreedyBot) ChooseCard(_ context.Context, view domain.SideView, legal []domain.Card) (domain.Card, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Memory.Observe(view)
	weights := DefaultTuning.ForPhase(botinternal.DetectPhase(view))

	if view.LeadCard == nil {
		return b.lead(legal, view.Trump, weights), nil
	}
	return follow(*view.LeadCard, legal, view.Trump, weights), nil
}

func (b *GreedyBot) lead(legal []domain.Card, trump domain.Suit, weights botinternal.PhaseWeights) domain.Card {
	est := brain.NewEstimator(b.Memory)

	type scoredCard struct {
		card  domain.Card
		score float64
	}
	scored := make([]scoredCard, 0, len(legal))
	for _, c := range legal {
		points := float64(domain.CardScore(c, trump)) / 100
		risk := est.LeadRisk(c)
		var score float64
		if risk == 0 {
			score = weights.BossLeadBonus + points
		} else {
			score = -risk - points
		}
		scored = append(scored, scoredCard{card: c, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return domain.Strength(scored[i].card, trump) < domain.Strength(scored[j].card, trump)
	})
	return scored[0].card
}

func follow(lead domain.Card, legal []domain.Card, trump domain.Suit, weights botinternal.PhaseWeights) domain.Card {
	winners := brain.WinningAnswers(legal, lead, trump)
	sortCheapest(winners, trump)

	if len(winners) > 0 {
		best := winners[0]
		if best.Suit != trump || domain.CardScore(lead, trump) >= weights.TrumpSpendPoints {
			return best
		}
	}

	discards := append([]domain.Card(nil), legal...)
	sort.SliceStable(discards, func(i, j int) bool {
		a, b := discards[i], discards[j]
		if (a.Suit == trump) != (b.Suit == trump) {
			return b.Suit == trump
		}
		if pa, pb := domain.CardScore(a, trump), domain.CardScore(b, trump); pa != pb {
			return pa < pb
		}
		return domain.Strength(a, trump) < domain.Strength(b, trump)
	})
	return discards[0]
}

// sortCheapest orders cards side suits first, then by strength.
func sortCheapest(cards []domain.Card, trump domain.Suit) {
	sort.SliceStable(cards, func(i, j int) bool {
		a, b := cards[i], cards[j]
		if (a.Suit == trump) != (b.Suit == trump) {
			return b.Suit == trump
		}
		return domain.Strength(a, trump) < domain.Strength(b, trump)
	})
}
