package nakama

import (
	"jass/internal/domain"
	"jass/internal/ports"
)

var _ ports.MotionProbe = (*settleTracker)(nil)

// settleTracker is the match's ports.MotionProbe. A played card counts as
// moving until the client acknowledges it with OpCardSettled or the timeout
// in ticks elapses.
type settleTracker struct {
	timeout   int64
	now       int64
	deadlines map[domain.Card]int64
}

func newSettleTracker(timeoutTicks int) *settleTracker {
	return &settleTracker{
		timeout:   int64(timeoutTicks),
		deadlines: make(map[domain.Card]int64),
	}
}

func (t *settleTracker) track(card domain.Card, tick int64) {
	t.deadlines[card] = tick + t.timeout
}

func (t *settleTracker) settle(card domain.Card) {
	delete(t.deadlines, card)
}

func (t *settleTracker) advance(tick int64) {
	t.now = tick
}

func (t *settleTracker) reset() {
	t.deadlines = make(map[domain.Card]int64)
}

// IsMoving implements ports.MotionProbe.
func (t *settleTracker) IsMoving(card domain.Card) bool {
	deadline, ok := t.deadlines[card]
	if !ok {
		return false
	}
	if t.now >= deadline {
		delete(t.deadlines, card)
		return false
	}
	return true
}
