package ports

import "jass/internal/domain"

// MotionProbe reports whether the presentation layer is still animating a card.
// The round orchestrator polls it before declaring a play complete.
type MotionProbe interface {
	// IsMoving returns true while card is mid-transition on screen.
	IsMoving(card domain.Card) bool
}

// MotionProbeFunc adapts a function to MotionProbe.
type MotionProbeFunc func(card domain.Card) bool

// IsMoving implements MotionProbe.
func (f MotionProbeFunc) IsMoving(card domain.Card) bool {
	return f(card)
}
