package brain

import (
	"jass/internal/domain"
)

// Estimator provides card-level insights based on memory.
type Estimator struct {
	Memory *GameMemory
}

// NewEstimator creates a new reasoning engine.
func NewEstimator(m *GameMemory) *Estimator {
	return &Estimator{Memory: m}
}

// Beats reports whether follow takes a trick led with lead.
func Beats(lead, follow domain.Card, trump domain.Suit) bool {
	return domain.TrickWinner(domain.SideHuman, domain.SideCPU, lead, follow, trump) == domain.SideCPU
}

// OpponentPool returns every card the opponent might still play.
func (e *Estimator) OpponentPool() domain.CardSet {
	trump := e.Memory.Trump
	pool := e.Memory.Known()
	for _, c := range e.Memory.Unknown().Cards() {
		if e.Memory.Opponent.CanHold(c, trump) {
			pool = pool.With(c)
		}
	}
	return pool
}

// IsBoss returns true if no card the opponent might hold beats c when led.
func (e *Estimator) IsBoss(c domain.Card) bool {
	for _, o := range e.OpponentPool().Without(c).Cards() {
		if Beats(c, o, e.Memory.Trump) {
			return false
		}
	}
	return true
}

// GetBossCards returns the cards of hand that currently win any trick they lead.
func (e *Estimator) GetBossCards(hand []domain.Card) []domain.Card {
	var boss []domain.Card
	for _, c := range hand {
		if e.IsBoss(c) {
			boss = append(boss, c)
		}
	}
	return boss
}

// LeadRisk returns the share of the opponent pool that beats c when led. Zero
// means c is a boss card.
func (e *Estimator) LeadRisk(c domain.Card) float64 {
	pool := e.OpponentPool().Without(c)
	if pool.Empty() {
		return 0
	}
	beaten := 0
	for _, o := range pool.Cards() {
		if Beats(c, o, e.Memory.Trump) {
			beaten++
		}
	}
	return float64(beaten) / float64(pool.Len())
}

// WinningAnswers filters legal to the cards that beat lead.
func WinningAnswers(legal []domain.Card, lead domain.Card, trump domain.Suit) []domain.Card {
	var out []domain.Card
	for _, c := range legal {
		if Beats(lead, c, trump) {
			out = append(out, c)
		}
	}
	return out
}
