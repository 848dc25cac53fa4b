package bot

import (
	"context"
	"errors"

	"jass/internal/domain"
)

// ErrNoCards is returned when the agent is asked to act with an empty hand.
var ErrNoCards = errors.New("bot: hand is empty")

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Result is delivered on the channel returned by Begin.
type Result struct {
	Move Move
	Err  error
}

// Decide returns the next action for the side owning view. Exchanging the
// trump and switching the blind come before the card is played.
func (a *Agent) Decide(ctx context.Context, view domain.SideView) (Move, error) {
	if view.CanExchange && a.Strategy.WantsExchange(view) {
		return Move{Kind: MoveExchangeTrump}, nil
	}
	if view.CanSwitchBlind {
		if cards := a.Strategy.BlindSwitch(view); len(cards) == domain.BlindSize {
			return Move{Kind: MoveSwitchBlind, Cards: cards}, nil
		}
	}

	if len(view.Hand) == 0 {
		return Move{}, ErrNoCards
	}
	legal := domain.LegalPlays(view.Hand, view.LeadCard, view.Trump)
	if len(legal) == 1 {
		return Move{Kind: MovePlay, Card: legal[0]}, nil
	}
	card, err := a.Strategy.ChooseCard(ctx, view, legal)
	if err != nil {
		return Move{}, err
	}
	return Move{Kind: MovePlay, Card: card}, nil
}

// Begin runs Decide on its own goroutine. The channel yields one Result and is
// closed; cancel ctx to abandon the decision.
func (a *Agent) Begin(ctx context.Context, view domain.SideView) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		move, err := a.Decide(ctx, view)
		out <- Result{Move: move, Err: err}
	}()
	return out
}
