package internal

// PhaseWeights tune decisions for a specific phase.
type PhaseWeights struct {
	// BudgetScale multiplies the configured search budget.
	BudgetScale float64
	// TrumpSpendPoints is the smallest trick value worth taking with a trump
	// when the led suit cannot win it.
	TrumpSpendPoints int
	// BossLeadBonus favours leading a boss card over a low discard.
	BossLeadBonus float64
}

// BotTuning defines phase weights for a bot.
type BotTuning struct {
	Opening PhaseWeights
	Mid     PhaseWeights
	End     PhaseWeights
}

// ForPhase returns the weights that match the supplied phase.
func (t BotTuning) ForPhase(phase GamePhase) PhaseWeights {
	switch phase {
	case PhaseOpening:
		return t.Opening
	case PhaseEnd:
		return t.End
	default:
		return t.Mid
	}
}
