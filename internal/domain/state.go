package domain

import "fmt"

// Suit is one of the four card suits.
type Suit int8

const (
	Heart Suit = iota
	Club
	Spade
	Diamond
)

// Rank orders cards inside a suit, Six lowest and Ace highest.
type Rank int8

const (
	Six Rank = iota
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Card is a single playing card. Every (suit, rank) pair exists once in the
// deck, so a card value also identifies the physical card.
type Card struct {
	Suit Suit
	Rank Rank
}

// Index maps the card to 0..35 (suit-major).
func (c Card) Index() int {
	if !c.Valid() {
		panic(fmt.Sprintf("invalid card %d/%d", c.Suit, c.Rank))
	}
	return int(c.Suit)*RanksPerSuit + int(c.Rank)
}

// Valid reports whether suit and rank are in range.
func (c Card) Valid() bool {
	return c.Suit >= Heart && c.Suit <= Diamond && c.Rank >= Six && c.Rank <= Ace
}

func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return rankNames[c.Rank] + suitSymbols[c.Suit]
}

// CardFromIndex is the inverse of Card.Index.
func CardFromIndex(i int) Card {
	if i < 0 || i >= DeckSize {
		panic(fmt.Sprintf("card index out of range: %d", i))
	}
	return Card{Suit: Suit(i / RanksPerSuit), Rank: Rank(i % RanksPerSuit)}
}

var (
	rankNames   = [...]string{"6", "7", "8", "9", "10", "J", "Q", "K", "A"}
	suitSymbols = [...]string{"♥", "♣", "♠", "♦"}
	suitNames   = [...]string{"heart", "club", "spade", "diamond"}
)

func (s Suit) String() string {
	if s < Heart || s > Diamond {
		return "unknown"
	}
	return suitNames[s]
}

// Side identifies one of the two hands at the table.
type Side int

const (
	// SideHuman is driven by the input collaborator.
	SideHuman Side = iota
	// SideCPU is driven by a bot brain.
	SideCPU
)

// Other returns the opposing side.
func (s Side) Other() Side {
	return 1 - s
}

func (s Side) String() string {
	switch s {
	case SideHuman:
		return "human"
	case SideCPU:
		return "cpu"
	default:
		return "unknown"
	}
}

// Zone is a place a card can be in during a round.
type Zone int

const (
	ZoneStock Zone = iota
	ZoneHand
	ZoneBlind
	ZonePlayed
	ZoneTrumpSlot
)

func (z Zone) String() string {
	switch z {
	case ZoneStock:
		return "stock"
	case ZoneHand:
		return "hand"
	case ZoneBlind:
		return "blind"
	case ZonePlayed:
		return "played"
	case ZoneTrumpSlot:
		return "trump"
	default:
		return "unknown"
	}
}

// Location pins a card to a zone and, for per-side zones, its owner.
type Location struct {
	Zone Zone
	Side Side // meaningful for hand, blind and played zones
}

// Phase represents the lifecycle stage of a round.
type Phase string

const (
	// PhaseSetup is the state before cards are dealt.
	PhaseSetup Phase = "setup"
	// PhaseTurn waits for the side on turn to play.
	PhaseTurn Phase = "turn"
	// PhaseResolve holds a complete trick that has not been scored yet.
	PhaseResolve Phase = "resolve"
	// PhaseEnded is terminal; scores are final.
	PhaseEnded Phase = "ended"
)

// Round holds the authoritative state of a single round. Only the round
// orchestrator mutates it.
type Round struct {
	ID    string
	Phase Phase

	Turn   Side // side expected to act while in PhaseTurn
	Leader Side // side that leads the current trick
	Opener Side // side that led the first trick

	TrumpCard         Card // card currently in the trump slot
	OriginalTrumpCard Card
	Exchanged         bool
	ExchangedBy       Side

	Stock  []Card
	Hands  [2][]Card
	Blinds [2][]Card
	Played [2][]Card // every card a side played this round, in order

	Trick      [2]*Card // cards on the table for the current trick
	LeadCard   *Card
	Pending    *Card // played card that has not settled yet
	PendingBy  Side
	Scores     [2]int
	Tricks     int
	HasPlayed  [2]bool // side completed at least one trick
	BlindSwaps [2]bool
}

// TrumpSuit derives the trump suit from the card in the trump slot.
func (r *Round) TrumpSuit() Suit {
	return r.TrumpCard.Suit
}

// SideView is the read-only knowledge a side may legitimately use.
type SideView struct {
	Side      Side
	Trump     Suit
	TrumpCard Card
	Hand      []Card
	Blind     []Card
	Played    [2][]Card
	// Disclosed lists opponent cards revealed during play and not yet played.
	Disclosed []Card
	Scores    [2]int
	LeadCard  *Card
	Leader    Side
	Opener    Side
	Tricks    int
	StockSize int
	// CanExchange and CanSwitchBlind mirror the round's current permissions.
	CanExchange    bool
	CanSwitchBlind bool
}
