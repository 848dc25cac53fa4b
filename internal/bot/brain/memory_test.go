package brain

import (
	"testing"

	"jass/internal/domain"
)

// dealtRound splits the ordered deck into zones: hands of nine, blinds of
// three, the trump card and an eleven card stock.
func dealtRound() *domain.Round {
	deck := domain.NewDeck()
	r := &domain.Round{Phase: domain.PhaseTurn, Turn: domain.SideCPU, Leader: domain.SideCPU, Opener: domain.SideCPU}
	r.Hands[domain.SideHuman] = append([]domain.Card(nil), deck[0:9]...)
	r.Hands[domain.SideCPU] = append([]domain.Card(nil), deck[9:18]...)
	r.Blinds[domain.SideHuman] = append([]domain.Card(nil), deck[18:21]...)
	r.Blinds[domain.SideCPU] = append([]domain.Card(nil), deck[21:24]...)
	r.TrumpCard = deck[24]
	r.OriginalTrumpCard = deck[24]
	r.Stock = append([]domain.Card(nil), deck[25:]...)
	return r
}

func TestGameMemoryObserve(t *testing.T) {
	r := dealtRound()
	m := NewMemory()
	m.Observe(r.ViewFor(domain.SideCPU))

	checks := []struct {
		cards []domain.Card
		want  CardStatus
	}{
		{r.Hands[domain.SideCPU], StatusMine},
		{r.Blinds[domain.SideCPU], StatusMyBlind},
		{[]domain.Card{r.TrumpCard}, StatusTrumpSlot},
		{r.Hands[domain.SideHuman], StatusUnknown},
		{r.Blinds[domain.SideHuman], StatusUnknown},
		{r.Stock, StatusUnknown},
	}
	for _, tt := range checks {
		for _, c := range tt.cards {
			if got := m.DeckStatus[c.Index()]; got != tt.want {
				t.Errorf("status of %s = %d, want %d", c, got, tt.want)
			}
		}
	}
	if got := m.Unknown().Len(); got != 23 {
		t.Fatalf("unknown cards = %d, want 23", got)
	}

	played := r.Hands[domain.SideHuman][0]
	r.Hands[domain.SideHuman] = r.Hands[domain.SideHuman][1:]
	r.Played[domain.SideHuman] = []domain.Card{played}
	m.Observe(r.ViewFor(domain.SideCPU))
	if !m.IsPlayed(played) {
		t.Errorf("IsPlayed(%s) should be true", played)
	}

	m.Reset()
	if m.DeckStatus[played.Index()] != StatusUnknown {
		t.Errorf("after reset %s should be StatusUnknown", played)
	}
}
