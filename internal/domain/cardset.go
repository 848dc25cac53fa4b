package domain

import (
	"math/bits"
	"strings"
)

// CardSet is an immutable set of cards, one bit per card index. Operations
// return new sets; a set held by one owner can be shared freely.
type CardSet uint64

// FullDeck contains all 36 cards.
const FullDeck CardSet = 1<<DeckSize - 1

// SetOf builds a set from cards.
func SetOf(cards ...Card) CardSet {
	var s CardSet
	for _, c := range cards {
		s |= 1 << uint(c.Index())
	}
	return s
}

func (s CardSet) Has(c Card) bool {
	return s&(1<<uint(c.Index())) != 0
}

func (s CardSet) With(c Card) CardSet {
	return s | 1<<uint(c.Index())
}

func (s CardSet) Without(c Card) CardSet {
	return s &^ (1 << uint(c.Index()))
}

func (s CardSet) Union(o CardSet) CardSet {
	return s | o
}

func (s CardSet) Minus(o CardSet) CardSet {
	return s &^ o
}

func (s CardSet) Intersect(o CardSet) CardSet {
	return s & o
}

func (s CardSet) Len() int {
	return bits.OnesCount64(uint64(s))
}

func (s CardSet) Empty() bool {
	return s == 0
}

// Nth returns the n-th card of the set in index order. It panics when n is out
// of range.
func (s CardSet) Nth(n int) Card {
	if n < 0 || n >= s.Len() {
		panic("card set index out of range")
	}
	rest := uint64(s)
	for ; n > 0; n-- {
		rest &= rest - 1
	}
	return CardFromIndex(bits.TrailingZeros64(rest))
}

// Cards lists the set in index order.
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Len())
	for rest := uint64(s); rest != 0; rest &= rest - 1 {
		out = append(out, CardFromIndex(bits.TrailingZeros64(rest)))
	}
	return out
}

// OfSuit keeps the cards of a single suit.
func (s CardSet) OfSuit(suit Suit) CardSet {
	return s & (suitMask << uint(int(suit)*RanksPerSuit))
}

const suitMask CardSet = 1<<RanksPerSuit - 1

func (s CardSet) String() string {
	cards := s.Cards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}
