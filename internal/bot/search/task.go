package search

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"jass/internal/domain"

	"go.uber.org/zap"
)

var (
	// ErrPoolExhausted means a simulated side had nothing left to draw from.
	// The pools handed to the task were inconsistent.
	ErrPoolExhausted = errors.New("search: determinization pool exhausted")
	ErrEmptyHand     = errors.New("search: hand is empty")
)

// DefaultBudget is used when Options carries neither a budget nor an
// iteration cap.
const DefaultBudget = 1500 * time.Millisecond

// Input is everything a decision may know, copied out of a SideView.
type Input struct {
	Trump domain.Suit
	Hand  domain.CardSet
	// Unknown holds cards whose location is hidden: stock, opponent hand and
	// opponent blind.
	Unknown domain.CardSet
	// Known holds opponent cards that were disclosed and not yet played.
	Known     domain.CardSet
	SelfScore int
	OppScore  int
	// Lead is the card the opponent already led this trick, nil when self leads.
	Lead *domain.Card
}

type Options struct {
	Budget        time.Duration
	MaxIterations int
	Now           func() time.Time
	Logger        *zap.Logger
}

// Decision is the outcome of a search.
type Decision struct {
	Card       domain.Card
	Fallback   bool
	Iterations int
	Nodes      int
	Leaves     int
	BestScore  int
}

// Task is a resumable search. Each Step expands a single node so the caller
// can interleave it with other work.
type Task struct {
	in   Input
	opts Options
	rng  *rand.Rand
	log  *zap.Logger

	tree     *tree
	rootSet  domain.CardSet
	cur      int32
	deadline time.Time

	iterations int
	done       bool
}

// NewTask prepares a search over in. The task owns rng until it finishes.
func NewTask(in Input, opts Options, rng *rand.Rand) (*Task, error) {
	if in.Hand.Empty() {
		return nil, ErrEmptyHand
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Budget <= 0 && opts.MaxIterations <= 0 {
		opts.Budget = DefaultBudget
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(opts.Now().UnixNano()))
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	root := node{
		selfLeads: in.Lead == nil,
		scores:    [2]int{in.SelfScore, in.OppScore},
		hand:      in.Hand,
		unknown:   in.Unknown.Minus(in.Known),
		known:     in.Known,
	}

	t := &Task{
		in:      in,
		opts:    opts,
		rng:     rng,
		log:     log,
		tree:    newTree(root),
		rootSet: domain.LegalSet(in.Hand, in.Lead, in.Trump),
	}
	if opts.Budget > 0 {
		t.deadline = opts.Now().Add(opts.Budget)
	}
	return t, nil
}

// Step performs one node expansion. It reports done once the budget is spent;
// the budget is only checked before a new iteration starts at the root.
func (t *Task) Step() (bool, error) {
	if t.done {
		return true, nil
	}
	if t.cur == 0 {
		if t.exhausted() {
			t.done = true
			return true, nil
		}
		t.iterations++
	}

	self, opp, fromKnown, err := t.draw(t.cur)
	if err != nil {
		t.done = true
		return true, err
	}

	next := t.tree.expand(t.cur, self, opp, fromKnown, t.in.Trump)
	if t.tree.nodes[next].terminal {
		t.cur = 0
	} else {
		t.cur = next
	}
	return false, nil
}

func (t *Task) exhausted() bool {
	if t.opts.MaxIterations > 0 && t.iterations >= t.opts.MaxIterations {
		return true
	}
	if !t.deadline.IsZero() && !t.opts.Now().Before(t.deadline) {
		return true
	}
	return false
}

// draw samples the next trick below idx.
func (t *Task) draw(idx int32) (self, opp domain.Card, fromKnown bool, err error) {
	n := &t.tree.nodes[idx]
	oppPool := n.unknown.Union(n.known)

	switch {
	case idx == 0 && t.in.Lead != nil:
		opp = *t.in.Lead
		self, err = t.pick(domain.LegalSet(n.hand, &opp, t.in.Trump))
		return self, opp, false, err

	case n.selfLeads:
		if self, err = t.pick(n.hand); err != nil {
			return
		}
		if oppPool.Empty() {
			return self, opp, false, ErrPoolExhausted
		}
		opp, err = t.pick(domain.LegalSet(oppPool, &self, t.in.Trump))

	default:
		if opp, err = t.pick(oppPool); err != nil {
			return
		}
		if n.hand.Empty() {
			return self, opp, false, ErrPoolExhausted
		}
		self, err = t.pick(domain.LegalSet(n.hand, &opp, t.in.Trump))
	}
	return self, opp, n.known.Has(opp), err
}

func (t *Task) pick(pool domain.CardSet) (domain.Card, error) {
	if pool.Empty() {
		return domain.Card{}, ErrPoolExhausted
	}
	return pool.Nth(t.rng.Intn(pool.Len())), nil
}

// Run steps the task until the budget is spent or ctx is cancelled.
func (t *Task) Run(ctx context.Context) (Decision, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Decision{}, err
		}
		done, err := t.Step()
		if err != nil {
			t.log.Warn("search aborted", zap.Error(err), zap.Int("iterations", t.iterations))
			return Decision{}, fmt.Errorf("after %d iterations: %w", t.iterations, err)
		}
		if done {
			d := t.Decide()
			t.log.Debug("search finished",
				zap.Stringer("card", d.Card),
				zap.Bool("fallback", d.Fallback),
				zap.Int("iterations", d.Iterations),
				zap.Int("nodes", d.Nodes),
				zap.Int("leaves", d.Leaves),
				zap.Int("best_score", d.BestScore),
			)
			return d, nil
		}
	}
}

// Decide picks the first-ply card of the best winning leaf found so far. With
// no winning leaf it falls back to a random legal card.
func (t *Task) Decide() Decision {
	d := Decision{
		Iterations: t.iterations,
		Nodes:      len(t.tree.nodes),
		Leaves:     len(t.tree.leaves),
	}

	best := int32(-1)
	bestScore := 0
	for _, idx := range t.tree.leaves {
		n := &t.tree.nodes[idx]
		if n.scores[0] <= n.scores[1] {
			continue
		}
		if best < 0 || n.scores[0] > bestScore {
			best, bestScore = idx, n.scores[0]
		}
	}

	if best < 0 {
		d.Card = t.rootSet.Nth(t.rng.Intn(t.rootSet.Len()))
		d.Fallback = true
		return d
	}
	d.Card = t.tree.nodes[best].first
	d.BestScore = bestScore
	return d
}
