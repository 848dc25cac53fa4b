package brain

import (
	"jass/internal/domain"
)

// CardStatus represents what the bot knows about a specific card.
type CardStatus int

const (
	StatusUnknown   CardStatus = iota // stock, opponent hand or opponent blind
	StatusMine                        // in the bot's hand
	StatusMyBlind                     // in the bot's face-down blind
	StatusPlayed                      // already played by either side
	StatusOpponent                    // disclosed and still in the opponent's hand
	StatusTrumpSlot                   // lying face-up in the trump slot
)

// GameMemory stores the bot's private view of the round.
type GameMemory struct {
	// DeckStatus tracks all 36 cards by Card.Index.
	DeckStatus [domain.DeckSize]CardStatus
	Opponent   *OpponentProfile
	Trump      domain.Suit
}

// NewMemory initializes a fresh memory state.
func NewMemory() *GameMemory {
	return &GameMemory{Opponent: NewOpponentProfile()}
}

// Reset clears the memory for a new round.
func (m *GameMemory) Reset() {
	for i := range m.DeckStatus {
		m.DeckStatus[i] = StatusUnknown
	}
	m.Opponent.Reset()
}

// Observe rebuilds the memory from view. Views are complete snapshots, so the
// previous state is discarded.
func (m *GameMemory) Observe(view domain.SideView) {
	m.Reset()
	m.Trump = view.Trump

	m.mark(view.Hand, StatusMine)
	m.mark(view.Blind, StatusMyBlind)
	m.mark(view.Played[domain.SideHuman], StatusPlayed)
	m.mark(view.Played[domain.SideCPU], StatusPlayed)
	m.mark(view.Disclosed, StatusOpponent)
	m.DeckStatus[view.TrumpCard.Index()] = StatusTrumpSlot

	m.Opponent.Replay(view)
}

func (m *GameMemory) mark(cards []domain.Card, status CardStatus) {
	for _, c := range cards {
		m.DeckStatus[c.Index()] = status
	}
}

// Cards returns every card currently holding status.
func (m *GameMemory) Cards(status CardStatus) domain.CardSet {
	var s domain.CardSet
	for i, st := range m.DeckStatus {
		if st == status {
			s = s.With(domain.CardFromIndex(i))
		}
	}
	return s
}

// Unknown returns the cards whose location is hidden from the bot.
func (m *GameMemory) Unknown() domain.CardSet {
	return m.Cards(StatusUnknown)
}

// Known returns the opponent cards the bot has seen.
func (m *GameMemory) Known() domain.CardSet {
	return m.Cards(StatusOpponent)
}

// IsPlayed returns true if the card is already out of the round.
func (m *GameMemory) IsPlayed(c domain.Card) bool {
	return m.DeckStatus[c.Index()] == StatusPlayed
}
