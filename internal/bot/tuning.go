package bot

import botinternal "jass/internal/bot/internal"

// DefaultTuning shrinks the search budget as the round closes and spends
// trumps more freely near the end.
var DefaultTuning = botinternal.BotTuning{
	Opening: botinternal.PhaseWeights{
		BudgetScale:      1.0,
		TrumpSpendPoints: 10,
		BossLeadBonus:    0.5,
	},
	Mid: botinternal.PhaseWeights{
		BudgetScale:      0.8,
		TrumpSpendPoints: 10,
		BossLeadBonus:    1.0,
	},
	End: botinternal.PhaseWeights{
		BudgetScale:      0.4,
		TrumpSpendPoints: 0,
		BossLeadBonus:    1.0,
	},
}
