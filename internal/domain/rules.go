package domain

// TrickWinner resolves a completed trick. The trump suit dominates every other
// suit; inside trumps the Jack beats everything, then the Nine.
func TrickWinner(leadSide, followSide Side, lead, follow Card, trump Suit) Side {
	leadTrump := lead.Suit == trump
	followTrump := follow.Suit == trump

	switch {
	case leadTrump && followTrump:
		switch {
		case lead.Rank == Jack:
			return leadSide
		case follow.Rank == Jack:
			return followSide
		case lead.Rank == Nine:
			return leadSide
		case follow.Rank == Nine:
			return followSide
		}
		return higher(leadSide, followSide, lead, follow)
	case leadTrump:
		return leadSide
	case followTrump:
		return followSide
	case lead.Suit == follow.Suit:
		return higher(leadSide, followSide, lead, follow)
	default:
		// The follower did not contest the led suit.
		return leadSide
	}
}

func higher(leadSide, followSide Side, lead, follow Card) Side {
	if lead.Rank > follow.Rank {
		return leadSide
	}
	return followSide
}

var plainPoints = [RanksPerSuit]int{
	Six: 0, Seven: 0, Eight: 0, Nine: 0,
	Ten: 10, Jack: 2, Queen: 3, King: 4, Ace: 11,
}

// Strength orders cards of one suit by trick-taking power. In the trump suit
// the Jack and the Nine rank above the Ace.
func Strength(c Card, trump Suit) int {
	if c.Suit == trump {
		switch c.Rank {
		case Jack:
			return int(Ace) + 2
		case Nine:
			return int(Ace) + 1
		}
	}
	return int(c.Rank)
}

// CardScore returns the point value of a card under the given trump suit.
func CardScore(c Card, trump Suit) int {
	if !c.Valid() {
		panic("CardScore: invalid card")
	}
	if c.Suit == trump {
		switch c.Rank {
		case Jack:
			return 20
		case Nine:
			return 14
		}
	}
	return plainPoints[c.Rank]
}

// TrickScore sums the two cards of a trick.
func TrickScore(first, second Card, trump Suit) int {
	return CardScore(first, trump) + CardScore(second, trump)
}

// SetScore sums the point value of every card in the set.
func SetScore(s CardSet, trump Suit) int {
	total := 0
	for _, c := range s.Cards() {
		total += CardScore(c, trump)
	}
	return total
}

// LegalPlays filters a hand to the cards that may answer lead. A nil lead means
// the side leads and may play anything. When the hand holds the led suit it
// must play that suit or a trump; a lone trump Jack is never forced.
func LegalPlays(hand []Card, lead *Card, trump Suit) []Card {
	if len(hand) == 0 {
		panic("LegalPlays: empty hand")
	}
	legal := LegalSet(SetOf(hand...), lead, trump)
	out := make([]Card, 0, len(hand))
	for _, c := range hand {
		if legal.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// LegalSet is LegalPlays over card sets.
func LegalSet(hand CardSet, lead *Card, trump Suit) CardSet {
	if hand.Empty() {
		panic("LegalSet: empty hand")
	}
	if lead == nil {
		return hand
	}

	candidates := hand.OfSuit(trump).Union(hand.OfSuit(lead.Suit))
	followsSuit := !hand.OfSuit(lead.Suit).Empty()

	// Buur exception.
	if candidates.Len() == 1 && candidates.Has(Card{Suit: trump, Rank: Jack}) {
		followsSuit = false
	}

	if followsSuit {
		return candidates
	}
	return hand
}

// IsLegal reports whether card is among LegalPlays for the hand.
func IsLegal(hand []Card, card Card, lead *Card, trump Suit) bool {
	if !ContainsCard(hand, card) {
		return false
	}
	return LegalSet(SetOf(hand...), lead, trump).Has(card)
}

// CanExchangeTrump reports whether a side may swap its Six of trump for the
// displayed trump card.
func CanExchangeTrump(hand []Card, trumpCard Card, exchangedGlobally, sideHasPlayed bool) bool {
	if exchangedGlobally || sideHasPlayed {
		return false
	}
	return ContainsCard(hand, Card{Suit: trumpCard.Suit, Rank: Six})
}

// CardToExchange returns the Six of trump from the hand.
func CardToExchange(hand []Card, trump Suit) Card {
	six := Card{Suit: trump, Rank: Six}
	if !ContainsCard(hand, six) {
		panic("CardToExchange: hand has no six of trump")
	}
	return six
}
