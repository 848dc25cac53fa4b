package brain

import (
	"jass/internal/bot/search"
	"jass/internal/domain"
)

// DecisionPools builds the search input for the side owning view. The
// opponent's hidden cards are never read: everything not seen stays in the
// unknown pool.
func DecisionPools(view domain.SideView) search.Input {
	m := NewMemory()
	m.Observe(view)

	in := search.Input{
		Trump:     view.Trump,
		Hand:      domain.SetOf(view.Hand...),
		Unknown:   m.Unknown(),
		Known:     m.Known(),
		SelfScore: view.Scores[view.Side],
		OppScore:  view.Scores[view.Side.Other()],
	}
	if view.LeadCard != nil && view.Leader != view.Side {
		in.Lead = domain.CloneCard(view.LeadCard)
	}
	return in
}
