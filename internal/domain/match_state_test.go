package domain

import (
	"errors"
	"testing"
)

// dealtRound splits the ordered deck into zones without any shuffle.
func dealtRound() *Round {
	deck := NewDeck()
	r := &Round{Phase: PhaseTurn, Turn: SideHuman, Leader: SideHuman}
	r.Hands[SideHuman] = append([]Card(nil), deck[0:9]...)
	r.Hands[SideCPU] = append([]Card(nil), deck[9:18]...)
	r.Blinds[SideHuman] = append([]Card(nil), deck[18:21]...)
	r.Blinds[SideCPU] = append([]Card(nil), deck[21:24]...)
	r.TrumpCard = deck[24]
	r.OriginalTrumpCard = deck[24]
	r.Stock = append([]Card(nil), deck[25:]...)
	return r
}

func TestCheckPartition(t *testing.T) {
	r := dealtRound()
	if err := r.CheckPartition(); err != nil {
		t.Fatalf("fresh round: %v", err)
	}

	loc, ok := r.ZoneOf(r.TrumpCard)
	if !ok || loc.Zone != ZoneTrumpSlot {
		t.Fatalf("ZoneOf(trump) = %+v, %v", loc, ok)
	}

	dup := dealtRound()
	dup.Played[SideCPU] = append(dup.Played[SideCPU], dup.Hands[SideHuman][0])
	if err := dup.CheckPartition(); !errors.Is(err, ErrPartition) {
		t.Fatalf("duplicate card: err = %v, want ErrPartition", err)
	}

	missing := dealtRound()
	missing.Stock = missing.Stock[1:]
	if err := missing.CheckPartition(); !errors.Is(err, ErrPartition) {
		t.Fatalf("missing card: err = %v, want ErrPartition", err)
	}
}

func TestDisclosedAfterExchange(t *testing.T) {
	r := dealtRound()
	if got := r.Disclosed(SideHuman); got != nil {
		t.Fatalf("Disclosed() before exchange = %v", got)
	}

	r.Exchanged = true
	r.ExchangedBy = SideHuman
	r.Hands[SideHuman] = append(r.Hands[SideHuman], r.OriginalTrumpCard)
	if got := r.Disclosed(SideHuman); len(got) != 1 || got[0] != r.OriginalTrumpCard {
		t.Fatalf("Disclosed() = %v, want [%s]", got, r.OriginalTrumpCard)
	}
	if got := r.Disclosed(SideCPU); got != nil {
		t.Fatalf("Disclosed(cpu) = %v, want none", got)
	}

	view := r.ViewFor(SideCPU)
	if len(view.Disclosed) != 1 {
		t.Fatalf("cpu view should see the exchanged trump, got %v", view.Disclosed)
	}
}

func TestViewForCopiesState(t *testing.T) {
	r := dealtRound()
	view := r.ViewFor(SideHuman)
	view.Hand[0] = Card{Suit: Diamond, Rank: Ace}
	if r.Hands[SideHuman][0] == view.Hand[0] {
		t.Fatalf("view shares the hand slice with the round")
	}
	if view.StockSize != len(r.Stock) {
		t.Fatalf("StockSize = %d, want %d", view.StockSize, len(r.Stock))
	}
	if !view.CanSwitchBlind {
		t.Fatalf("leader should be able to switch blind before the first trick")
	}
}
