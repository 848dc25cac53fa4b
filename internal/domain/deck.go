package domain

import (
	"math/rand"
	"sort"
)

// NewDeck returns the ordered 36-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Heart; s <= Diamond; s++ {
		for r := Six; r <= Ace; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SortHand orders a hand by suit, trumps last, then by trick-taking strength.
func SortHand(cards []Card, trump Suit) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cardPower(cards[i], trump) < cardPower(cards[j], trump)
	})
}

func cardPower(c Card, trump Suit) int {
	suit := int(c.Suit)
	if c.Suit == trump {
		suit = int(Diamond) + 1
	}
	return suit*16 + Strength(c, trump)
}
