package domain

const (
	RanksPerSuit = 9
	DeckSize     = 36
	HandSize     = 9
	BlindSize    = 3
	MaxTricks    = 9
	// DeckPoints is the trump-adjusted value of the whole deck for any trump suit.
	DeckPoints = 152
)
