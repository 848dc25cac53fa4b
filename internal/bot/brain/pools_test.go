package brain

import (
	"testing"

	"jass/internal/domain"
)

func TestDecisionPoolsHidesOpponentHand(t *testing.T) {
	r := dealtRound()
	in := DecisionPools(r.ViewFor(domain.SideCPU))

	if in.Hand != domain.SetOf(r.Hands[domain.SideCPU]...) {
		t.Fatalf("hand pool = %s", in.Hand)
	}
	if !in.Known.Empty() || in.Lead != nil {
		t.Fatalf("fresh round: known %s lead %v", in.Known, in.Lead)
	}
	hidden := domain.SetOf(r.Hands[domain.SideHuman]...).
		Union(domain.SetOf(r.Blinds[domain.SideHuman]...)).
		Union(domain.SetOf(r.Stock...))
	if in.Unknown != hidden {
		t.Fatalf("unknown pool = %s, want %s", in.Unknown, hidden)
	}
}

func TestDecisionPoolsAnswerLead(t *testing.T) {
	r := dealtRound()
	lead := r.Hands[domain.SideHuman][0]
	r.Hands[domain.SideHuman] = r.Hands[domain.SideHuman][1:]
	r.Played[domain.SideHuman] = []domain.Card{lead}
	r.Trick[domain.SideHuman] = &lead
	r.LeadCard = &lead
	r.Leader = domain.SideHuman
	r.Opener = domain.SideHuman
	r.Scores = [2]int{12, 30}

	in := DecisionPools(r.ViewFor(domain.SideCPU))
	if in.Lead == nil || *in.Lead != lead {
		t.Fatalf("lead = %v, want %s", in.Lead, lead)
	}
	if in.Unknown.Has(lead) {
		t.Fatalf("played lead card still in the unknown pool")
	}
	if in.SelfScore != 30 || in.OppScore != 12 {
		t.Fatalf("scores = %d/%d", in.SelfScore, in.OppScore)
	}
}

func TestDecisionPoolsKnownAfterExchange(t *testing.T) {
	r := dealtRound()
	original := r.TrumpCard
	six := domain.Card{Suit: original.Suit, Rank: domain.Six}

	// move the six into the human hand, then let the human exchange it
	owner := domain.SetOf(r.Hands[domain.SideHuman]...)
	if !owner.Has(six) {
		swapInto(r, six)
	}
	r.Hands[domain.SideHuman] = domain.ReplaceCard(r.Hands[domain.SideHuman], six, original)
	r.TrumpCard = six
	r.Exchanged = true
	r.ExchangedBy = domain.SideHuman
	if err := r.CheckPartition(); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	in := DecisionPools(r.ViewFor(domain.SideCPU))
	if in.Known != domain.SetOf(original) {
		t.Fatalf("known = %s, want %s", in.Known, original)
	}
	if in.Unknown.Has(original) || in.Unknown.Has(six) {
		t.Fatalf("unknown pool %s leaks trump slot cards", in.Unknown)
	}
}

// swapInto exchanges c, wherever it is, with the first card of the human hand.
func swapInto(r *domain.Round, c domain.Card) {
	out := r.Hands[domain.SideHuman][0]
	replace := func(cards []domain.Card) {
		for i := range cards {
			if cards[i] == c {
				cards[i] = out
			}
		}
	}
	replace(r.Hands[domain.SideCPU])
	replace(r.Blinds[domain.SideHuman])
	replace(r.Blinds[domain.SideCPU])
	replace(r.Stock)
	r.Hands[domain.SideHuman][0] = c
}
