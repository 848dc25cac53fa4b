package bot

import (
	"context"

	"jass/internal/domain"
)

// MoveKind distinguishes the actions a bot can take on its turn.
type MoveKind int

const (
	MovePlay MoveKind = iota
	MoveExchangeTrump
	MoveSwitchBlind
)

func (k MoveKind) String() string {
	switch k {
	case MovePlay:
		return "play"
	case MoveExchangeTrump:
		return "exchange_trump"
	case MoveSwitchBlind:
		return "switch_blind"
	default:
		return "unknown"
	}
}

// Move represents the decision made by the AI.
type Move struct {
	Kind  MoveKind
	Card  domain.Card   // MovePlay
	Cards []domain.Card // MoveSwitchBlind
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// ChooseCard picks one of legal, which is never empty.
	ChooseCard(ctx context.Context, view domain.SideView, legal []domain.Card) (domain.Card, error)
	// WantsExchange is asked only while the exchange is allowed.
	WantsExchange(view domain.SideView) bool
	// BlindSwitch returns the three hand cards to swap with the blind, or nil.
	BlindSwitch(view domain.SideView) []domain.Card
}
