package internal

import "jass/internal/domain"

// GamePhase describes the current strategic stage of a round.
type GamePhase int

const (
	// PhaseOpening indicates no trick has been completed yet.
	PhaseOpening GamePhase = iota
	// PhaseMid covers the tricks between the opening and the endgame.
	PhaseMid
	// PhaseEnd indicates the hand is down to EndgameHandSize cards or fewer.
	PhaseEnd
)

// EndgameHandSize is the hand size at which a round counts as endgame.
const EndgameHandSize = 3

func (p GamePhase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseEnd:
		return "end"
	default:
		return "mid"
	}
}

// DetectPhase infers the phase from the trick counter and hand size.
func DetectPhase(view domain.SideView) GamePhase {
	if len(view.Hand) <= EndgameHandSize {
		return PhaseEnd
	}
	if view.Tricks == 0 {
		return PhaseOpening
	}
	return PhaseMid
}
