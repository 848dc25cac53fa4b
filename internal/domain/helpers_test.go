package domain

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}

	seen := make(map[Card]bool)
	for i, card := range deck {
		if seen[card] {
			t.Fatalf("duplicate card found: %s", card)
		}
		seen[card] = true
		if card.Index() != i {
			t.Fatalf("card %s index = %d, want %d", card, card.Index(), i)
		}
		if CardFromIndex(i) != card {
			t.Fatalf("CardFromIndex(%d) = %s, want %s", i, CardFromIndex(i), card)
		}
	}
}

func TestShuffleDeckKeepsCards(t *testing.T) {
	deck := NewDeck()
	shuffled := ShuffleDeck(deck, rand.New(rand.NewSource(7)))
	if SetOf(shuffled...) != FullDeck {
		t.Fatalf("shuffled deck lost cards: %v", SetOf(shuffled...))
	}
	if !reflect.DeepEqual(deck, NewDeck()) {
		t.Fatalf("ShuffleDeck mutated its input")
	}
}

func TestRemoveCards(t *testing.T) {
	hand := []Card{c(Heart, Six), c(Club, Seven), c(Spade, Eight), c(Heart, Ace)}

	got := RemoveCards(hand, c(Club, Seven), c(Heart, Ace))
	want := []Card{c(Heart, Six), c(Spade, Eight)}

	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RemoveCards() = %v, want %v", got, want)
	}
	if len(hand) != 4 {
		t.Fatalf("RemoveCards mutated its input")
	}
}

func TestReplaceCard(t *testing.T) {
	hand := []Card{c(Heart, Six), c(Club, Six)}
	got := ReplaceCard(hand, c(Club, Six), c(Club, Ace))
	want := []Card{c(Heart, Six), c(Club, Ace)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ReplaceCard() = %v, want %v", got, want)
	}
}

func TestCardSet(t *testing.T) {
	s := SetOf(c(Heart, Six), c(Club, Nine), c(Diamond, Ace))
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if !s.Has(c(Club, Nine)) || s.Has(c(Club, Ten)) {
		t.Fatalf("Has() mismatch for %v", s)
	}

	smaller := s.Without(c(Club, Nine))
	if !s.Has(c(Club, Nine)) {
		t.Fatalf("Without mutated the original set")
	}
	if smaller.Len() != 2 {
		t.Fatalf("Without() len = %d, want 2", smaller.Len())
	}

	if got := s.Nth(1); got != c(Club, Nine) {
		t.Fatalf("Nth(1) = %s, want 9♣", got)
	}
	if got := s.OfSuit(Diamond); got != SetOf(c(Diamond, Ace)) {
		t.Fatalf("OfSuit(Diamond) = %v", got)
	}
	if got := s.Cards(); !reflect.DeepEqual(got, []Card{c(Heart, Six), c(Club, Nine), c(Diamond, Ace)}) {
		t.Fatalf("Cards() = %v", got)
	}
	if FullDeck.Len() != DeckSize {
		t.Fatalf("FullDeck has %d cards", FullDeck.Len())
	}
}

func TestSortHandPutsTrumpsLast(t *testing.T) {
	hand := []Card{c(Club, Jack), c(Heart, Ace), c(Club, Nine), c(Club, Ace), c(Heart, Six)}
	SortHand(hand, Club)
	want := []Card{c(Heart, Six), c(Heart, Ace), c(Club, Ace), c(Club, Nine), c(Club, Jack)}
	if !reflect.DeepEqual(hand, want) {
		t.Fatalf("SortHand() = %v, want %v", hand, want)
	}
}
