package domain

import "golang.org/x/exp/slices"

// ContainsCard reports whether cards holds c.
func ContainsCard(cards []Card, c Card) bool {
	return slices.Contains(cards, c)
}

// RemoveCards removes the specified cards from a hand and returns the updated hand.
// The input slice is left untouched.
func RemoveCards(hand []Card, toRemove ...Card) []Card {
	if len(toRemove) == 0 || len(hand) == 0 {
		return hand
	}
	updated := make([]Card, 0, len(hand))
	for _, card := range hand {
		if slices.Contains(toRemove, card) {
			continue
		}
		updated = append(updated, card)
	}
	return updated
}

// ReplaceCard swaps out for in at the same position, keeping hand order.
func ReplaceCard(hand []Card, out, in Card) []Card {
	updated := slices.Clone(hand)
	if i := slices.Index(updated, out); i >= 0 {
		updated[i] = in
	}
	return updated
}

// CloneCard returns a pointer to a copy of c.
func CloneCard(c *Card) *Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// CountOpponentCards returns how many cards the opponent of side still holds.
func CountOpponentCards(r *Round, side Side) int {
	return len(r.Hands[side.Other()])
}
