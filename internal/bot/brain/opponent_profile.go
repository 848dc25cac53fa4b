package brain

import (
	"jass/internal/domain"
)

// OpponentProfile tracks what the opponent revealed through its plays.
type OpponentProfile struct {
	// voids marks suits the opponent failed to follow. For the trump suit the
	// opponent may still hold a bare Jack.
	voids     [4]bool
	TricksWon int
	PointsWon int
}

func NewOpponentProfile() *OpponentProfile {
	return &OpponentProfile{}
}

func (p *OpponentProfile) Reset() {
	*p = OpponentProfile{}
}

// RecordFollow notes the opponent's answer to a led card.
func (p *OpponentProfile) RecordFollow(lead, follow domain.Card, trump domain.Suit) {
	if follow.Suit == lead.Suit {
		return
	}
	// Trumping in is allowed even when holding the led suit.
	if follow.Suit == trump {
		return
	}
	p.voids[lead.Suit] = true
}

// IsVoid reports whether the opponent is known to hold no card of suit.
func (p *OpponentProfile) IsVoid(suit domain.Suit) bool {
	return p.voids[suit]
}

// CanHold returns false when play history rules c out of the opponent's hand.
func (p *OpponentProfile) CanHold(c domain.Card, trump domain.Suit) bool {
	if !p.voids[c.Suit] {
		return true
	}
	return c.Suit == trump && c.Rank == domain.Jack
}

// Replay walks the completed tricks of view from the opponent's perspective.
func (p *OpponentProfile) Replay(view domain.SideView) {
	opp := view.Side.Other()
	leader := view.Opener
	for k := 0; k < view.Tricks; k++ {
		follower := leader.Other()
		if k >= len(view.Played[leader]) || k >= len(view.Played[follower]) {
			return
		}
		lead, follow := view.Played[leader][k], view.Played[follower][k]
		if follower == opp {
			p.RecordFollow(lead, follow, view.Trump)
		}

		winner := domain.TrickWinner(leader, follower, lead, follow, view.Trump)
		if winner == opp {
			p.TricksWon++
			p.PointsWon += domain.TrickScore(lead, follow, view.Trump)
		}
		leader = winner
	}
}
