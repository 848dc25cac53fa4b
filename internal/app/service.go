package app

import (
	"errors"
	"math/rand"
	"time"

	"jass/internal/domain"
	"jass/internal/ports"

	"github.com/google/uuid"
)

// Service contains the round use-cases operating on domain state. It is the
// only writer of a domain.Round.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotPlaying            = errors.New("round not in playing phase")
	ErrNotYourTurn           = errors.New("not this side's turn")
	ErrPlayPending           = errors.New("previous play has not settled")
	ErrIllegalPlay           = errors.New("card is not a legal play")
	ErrExchangeNotAllowed    = errors.New("trump exchange not allowed")
	ErrBlindSwitchNotAllowed = errors.New("blind switch not allowed")
	ErrInvalidBlindCards     = errors.New("blind switch needs three distinct hand cards")
)

// StartRound shuffles and deals a new round and hands the turn to leader.
func (s *Service) StartRound(leader domain.Side) (*domain.Round, []Event, error) {
	deck := domain.ShuffleDeck(domain.NewDeck(), s.rng)

	round := &domain.Round{
		ID:     uuid.NewString(),
		Phase:  domain.PhaseSetup,
		Leader: leader,
		Opener: leader,
		Turn:   leader,
	}

	next := 0
	draw := func() domain.Card {
		c := deck[next]
		next++
		return c
	}

	for i := 0; i < domain.HandSize; i++ {
		round.Hands[domain.SideHuman] = append(round.Hands[domain.SideHuman], draw())
		round.Hands[domain.SideCPU] = append(round.Hands[domain.SideCPU], draw())
	}
	for i := 0; i < domain.BlindSize; i++ {
		round.Blinds[domain.SideHuman] = append(round.Blinds[domain.SideHuman], draw())
		round.Blinds[domain.SideCPU] = append(round.Blinds[domain.SideCPU], draw())
	}
	round.TrumpCard = draw()
	round.OriginalTrumpCard = round.TrumpCard
	round.Stock = append([]domain.Card(nil), deck[next:]...)
	round.Phase = domain.PhaseTurn

	events := []Event{
		{Kind: EventRoundStarted, Payload: RoundStartedPayload{RoundID: round.ID, Leader: leader}},
		{Kind: EventTrumpChanged, Payload: TrumpChangedPayload{Card: round.TrumpCard}},
	}
	for _, side := range []domain.Side{domain.SideHuman, domain.SideCPU} {
		events = append(events,
			zoneEvent(round, side, domain.ZoneHand),
			zoneEvent(round, side, domain.ZoneBlind),
		)
	}
	events = append(events, Event{Kind: EventTurnChanged, Payload: TurnChangedPayload{Side: leader}})

	return round, events, nil
}

// LegalPlays returns the cards side may play right now.
func (s *Service) LegalPlays(round *domain.Round, side domain.Side) ([]domain.Card, error) {
	if err := checkTurn(round, side); err != nil {
		return nil, err
	}
	return domain.LegalPlays(round.Hands[side], round.LeadCard, round.TrumpSuit()), nil
}

// PlayCard moves card from side's hand to its played pile. A rejected play
// leaves the round untouched.
func (s *Service) PlayCard(round *domain.Round, side domain.Side, card domain.Card) ([]Event, error) {
	if err := checkTurn(round, side); err != nil {
		return nil, err
	}
	if !card.Valid() || !domain.IsLegal(round.Hands[side], card, round.LeadCard, round.TrumpSuit()) {
		return nil, ErrIllegalPlay
	}

	round.Hands[side] = domain.RemoveCards(round.Hands[side], card)
	round.Played[side] = append(round.Played[side], card)
	round.Trick[side] = &card

	lead := round.LeadCard == nil
	if lead {
		round.LeadCard = domain.CloneCard(&card)
	}
	round.Pending = domain.CloneCard(&card)
	round.PendingBy = side

	return []Event{
		{Kind: EventCardPlayed, Payload: CardPlayedPayload{Side: side, Card: card, Lead: lead}},
		zoneEvent(round, side, domain.ZoneHand),
		zoneEvent(round, side, domain.ZonePlayed),
	}, nil
}

// Advance completes a pending play once the presentation layer reports the
// card at rest. A nil probe settles immediately. It returns no events while
// the card is still moving or when nothing is pending.
func (s *Service) Advance(round *domain.Round, probe ports.MotionProbe) ([]Event, error) {
	if round.Phase != domain.PhaseTurn {
		return nil, ErrNotPlaying
	}
	if round.Pending == nil {
		return nil, nil
	}
	if probe != nil && probe.IsMoving(*round.Pending) {
		return nil, nil
	}

	side := round.PendingBy
	round.Pending = nil

	if round.Trick[side.Other()] == nil {
		round.Turn = side.Other()
		return []Event{{Kind: EventTurnChanged, Payload: TurnChangedPayload{Side: round.Turn}}}, nil
	}

	round.Phase = domain.PhaseResolve
	return s.resolveTrick(round), nil
}

func (s *Service) resolveTrick(round *domain.Round) []Event {
	leader := round.Leader
	follower := leader.Other()
	leadCard, followCard := round.Trick[leader], round.Trick[follower]
	if leadCard == nil || followCard == nil {
		panic("resolveTrick: trick needs two cards")
	}

	trump := round.TrumpSuit()
	winner := domain.TrickWinner(leader, follower, *leadCard, *followCard, trump)
	points := domain.TrickScore(*leadCard, *followCard, trump)

	round.Scores[winner] += points
	round.Tricks++
	round.HasPlayed = [2]bool{true, true}
	round.Trick = [2]*domain.Card{}
	round.LeadCard = nil
	round.Leader = winner
	round.Turn = winner

	events := []Event{{
		Kind: EventTrickResolved,
		Payload: TrickResolvedPayload{
			Trick:  round.Tricks,
			Winner: winner,
			Points: points,
			Scores: round.Scores,
		},
	}}

	if round.Tricks >= domain.MaxTricks {
		round.Phase = domain.PhaseEnded
		return append(events, Event{Kind: EventRoundEnded, Payload: roundResult(round)})
	}

	round.Phase = domain.PhaseTurn
	return append(events, Event{Kind: EventTurnChanged, Payload: TurnChangedPayload{Side: winner}})
}

func roundResult(round *domain.Round) RoundEndedPayload {
	human, cpu := round.Scores[domain.SideHuman], round.Scores[domain.SideCPU]
	result := RoundEndedPayload{Scores: round.Scores}
	switch {
	case human > cpu:
		result.Winner = domain.SideHuman
	case cpu > human:
		result.Winner = domain.SideCPU
	default:
		result.Draw = true
	}
	return result
}

// ExchangeTrump swaps side's Six of trump with the displayed trump card. It
// may happen once per round across both sides.
func (s *Service) ExchangeTrump(round *domain.Round, side domain.Side) ([]Event, error) {
	if !round.CanExchange(side) {
		return nil, ErrExchangeNotAllowed
	}

	six := domain.CardToExchange(round.Hands[side], round.TrumpSuit())
	taken := round.TrumpCard

	round.Hands[side] = domain.ReplaceCard(round.Hands[side], six, taken)
	round.TrumpCard = six
	round.Exchanged = true
	round.ExchangedBy = side

	return []Event{
		{Kind: EventTrumpExchanged, Payload: TrumpExchangedPayload{Side: side, Taken: taken, Returned: six}},
		{Kind: EventTrumpChanged, Payload: TrumpChangedPayload{Card: six}},
		zoneEvent(round, side, domain.ZoneHand),
	}, nil
}

// SwitchBlind swaps three hand cards with side's blind pile, once per side and
// only before it has completed a trick.
func (s *Service) SwitchBlind(round *domain.Round, side domain.Side, cards []domain.Card) ([]Event, error) {
	if !round.CanSwitchBlind(side) {
		return nil, ErrBlindSwitchNotAllowed
	}
	if len(cards) != domain.BlindSize || domain.SetOf(cards...).Len() != domain.BlindSize {
		return nil, ErrInvalidBlindCards
	}
	for _, c := range cards {
		if !domain.ContainsCard(round.Hands[side], c) {
			return nil, ErrInvalidBlindCards
		}
	}

	blind := round.Blinds[side]
	round.Hands[side] = append(domain.RemoveCards(round.Hands[side], cards...), blind...)
	round.Blinds[side] = append([]domain.Card(nil), cards...)
	round.BlindSwaps[side] = true

	return []Event{
		{Kind: EventBlindSwitched, Payload: BlindSwitchedPayload{Side: side}},
		zoneEvent(round, side, domain.ZoneHand),
		zoneEvent(round, side, domain.ZoneBlind),
	}, nil
}

// View returns the read-only snapshot side is allowed to see.
func (s *Service) View(round *domain.Round, side domain.Side) domain.SideView {
	return round.ViewFor(side)
}

func checkTurn(round *domain.Round, side domain.Side) error {
	if round.Phase != domain.PhaseTurn {
		return ErrNotPlaying
	}
	if round.Turn != side {
		return ErrNotYourTurn
	}
	if round.Pending != nil {
		return ErrPlayPending
	}
	return nil
}

// zoneEvent reports the ordered contents of a per-side zone. Hands and blinds
// are private to their owner; played piles are public.
func zoneEvent(round *domain.Round, side domain.Side, zone domain.Zone) Event {
	var cards []domain.Card
	var recipients []domain.Side
	switch zone {
	case domain.ZoneHand:
		cards = round.Hands[side]
		recipients = []domain.Side{side}
	case domain.ZoneBlind:
		cards = round.Blinds[side]
		recipients = []domain.Side{side}
	case domain.ZonePlayed:
		cards = round.Played[side]
	}
	return Event{
		Kind:       EventZoneChanged,
		Payload:    ZoneChangedPayload{Side: side, Zone: zone, Cards: append([]domain.Card(nil), cards...)},
		Recipients: recipients,
	}
}
