package domain

import (
	"errors"
	"fmt"
)

// ErrPartition reports a card missing from, or duplicated across, the zones.
var ErrPartition = errors.New("zone partition violated")

// Locations maps every card to the zone holding it. Cards seen twice or never
// are reported through CheckPartition.
func (r *Round) Locations() map[Card]Location {
	locs := make(map[Card]Location, DeckSize)
	r.eachZone(func(loc Location, c Card) { locs[c] = loc })
	return locs
}

// ZoneOf returns the location of c.
func (r *Round) ZoneOf(c Card) (Location, bool) {
	loc, ok := r.Locations()[c]
	return loc, ok
}

// CheckPartition verifies every card of the deck sits in exactly one zone.
func (r *Round) CheckPartition() error {
	seen := make(map[Card]Location, DeckSize)
	var dup error
	r.eachZone(func(loc Location, c Card) {
		if prev, ok := seen[c]; ok && dup == nil {
			dup = fmt.Errorf("%w: %s in %s/%s and %s/%s", ErrPartition, c, prev.Zone, prev.Side, loc.Zone, loc.Side)
		}
		seen[c] = loc
	})
	if dup != nil {
		return dup
	}
	for _, c := range NewDeck() {
		if _, ok := seen[c]; !ok {
			return fmt.Errorf("%w: %s in no zone", ErrPartition, c)
		}
	}
	if len(seen) != DeckSize {
		return fmt.Errorf("%w: %d distinct cards", ErrPartition, len(seen))
	}
	return nil
}

func (r *Round) eachZone(fn func(Location, Card)) {
	for _, c := range r.Stock {
		fn(Location{Zone: ZoneStock}, c)
	}
	for side := SideHuman; side <= SideCPU; side++ {
		for _, c := range r.Hands[side] {
			fn(Location{Zone: ZoneHand, Side: side}, c)
		}
		for _, c := range r.Blinds[side] {
			fn(Location{Zone: ZoneBlind, Side: side}, c)
		}
		for _, c := range r.Played[side] {
			fn(Location{Zone: ZonePlayed, Side: side}, c)
		}
	}
	if r.Phase != PhaseSetup {
		fn(Location{Zone: ZoneTrumpSlot}, r.TrumpCard)
	}
}

// Disclosed returns the cards of side that its opponent has legitimately seen
// and that are still in side's hand.
func (r *Round) Disclosed(side Side) []Card {
	if !r.Exchanged || r.ExchangedBy != side {
		return nil
	}
	if !ContainsCard(r.Hands[side], r.OriginalTrumpCard) {
		return nil
	}
	return []Card{r.OriginalTrumpCard}
}

// CanExchange reports whether side may exchange the trump card right now.
func (r *Round) CanExchange(side Side) bool {
	if !r.onTurn(side) {
		return false
	}
	return CanExchangeTrump(r.Hands[side], r.TrumpCard, r.Exchanged, r.HasPlayed[side])
}

// CanSwitchBlind reports whether side may swap cards with its blind right now.
func (r *Round) CanSwitchBlind(side Side) bool {
	return r.onTurn(side) && !r.BlindSwaps[side] && !r.HasPlayed[side] && len(r.Blinds[side]) == BlindSize
}

func (r *Round) onTurn(side Side) bool {
	return r.Phase == PhaseTurn && r.Turn == side && r.Pending == nil
}

// ViewFor snapshots what side may know. Slices are copies.
func (r *Round) ViewFor(side Side) SideView {
	return SideView{
		Side:           side,
		Trump:          r.TrumpSuit(),
		TrumpCard:      r.TrumpCard,
		Hand:           append([]Card(nil), r.Hands[side]...),
		Blind:          append([]Card(nil), r.Blinds[side]...),
		Played:         [2][]Card{append([]Card(nil), r.Played[SideHuman]...), append([]Card(nil), r.Played[SideCPU]...)},
		Disclosed:      r.Disclosed(side.Other()),
		Scores:         r.Scores,
		LeadCard:       CloneCard(r.LeadCard),
		Leader:         r.Leader,
		Opener:         r.Opener,
		Tricks:         r.Tricks,
		StockSize:      len(r.Stock),
		CanExchange:    r.CanExchange(side),
		CanSwitchBlind: r.CanSwitchBlind(side),
	}
}

// PlayedPoints sums the card points of every card played so far. Once the
// current trick is resolved it equals the sum of both scores.
func (r *Round) PlayedPoints(trump Suit) int {
	return SetScore(SetOf(r.Played[SideHuman]...).Union(SetOf(r.Played[SideCPU]...)), trump)
}
