package app

import "jass/internal/domain"

// EventKind identifies emitted round events for presentation dispatch.
type EventKind string

const (
	EventRoundStarted   EventKind = "round_started"
	EventZoneChanged    EventKind = "zone_changed"
	EventTrumpChanged   EventKind = "trump_changed"
	EventCardPlayed     EventKind = "card_played"
	EventTurnChanged    EventKind = "turn_changed"
	EventTrickResolved  EventKind = "trick_resolved"
	EventTrumpExchanged EventKind = "trump_exchanged"
	EventBlindSwitched  EventKind = "blind_switched"
	EventRoundEnded     EventKind = "round_ended"
)

// Event is a round event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []domain.Side // empty means broadcast
}

type RoundStartedPayload struct {
	RoundID string
	Leader  domain.Side
}

// ZoneChangedPayload carries the new ordered contents of a per-side zone.
type ZoneChangedPayload struct {
	Side  domain.Side
	Zone  domain.Zone
	Cards []domain.Card
}

type TrumpChangedPayload struct {
	Card domain.Card
}

type CardPlayedPayload struct {
	Side domain.Side
	Card domain.Card
	Lead bool
}

type TurnChangedPayload struct {
	Side domain.Side
}

type TrickResolvedPayload struct {
	Trick  int
	Winner domain.Side
	Points int
	Scores [2]int
}

type TrumpExchangedPayload struct {
	Side     domain.Side
	Taken    domain.Card
	Returned domain.Card
}

type BlindSwitchedPayload struct {
	Side domain.Side
}

type RoundEndedPayload struct {
	Scores [2]int
	Winner domain.Side
	Draw   bool
}
