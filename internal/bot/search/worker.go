package search

import "context"

// Outcome is delivered by a worker once its task finishes.
type Outcome struct {
	Decision Decision
	Err      error
}

// Start runs task on its own goroutine. The returned channel yields exactly one
// Outcome and is then closed. Cancel ctx to stop the search early.
func Start(ctx context.Context, task *Task) <-chan Outcome {
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		d, err := task.Run(ctx)
		out <- Outcome{Decision: d, Err: err}
	}()
	return out
}
