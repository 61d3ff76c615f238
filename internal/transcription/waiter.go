package transcription

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned when a job does not reach a terminal state within
// the poll budget.
var ErrTimeout = errors.New("transcription timed out")

type Poller interface {
	Get(ctx context.Context, id string) (*Transcript, error)
}

// Waiter polls a job on a fixed interval until it completes, fails,
// runs out of attempts, passes its deadline, or ctx is cancelled.
type Waiter struct {
	poller   Poller
	interval time.Duration
	maxPolls int
	timeout  time.Duration
}

func NewWaiter(poller Poller, interval time.Duration, maxPolls int, timeout time.Duration) *Waiter {
	return &Waiter{
		poller:   poller,
		interval: interval,
		maxPolls: maxPolls,
		timeout:  timeout,
	}
}

// Wait returns the terminal transcript. A provider-reported failure is
// returned as a transcript with StatusFailed, not as an error.
func (w *Waiter) Wait(ctx context.Context, id string) (*Transcript, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for attempt := 1; w.maxPolls <= 0 || attempt <= w.maxPolls; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctxErr(ctx)
		case <-ticker.C:
		}

		transcript, err := w.poller.Get(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctxErr(ctx)
			}
			return nil, err
		}
		if transcript.Status.Terminal() {
			return transcript, nil
		}
	}
	return nil, ErrTimeout
}

// deadline expiry is a timeout; anything else is the caller cancelling
func ctxErr(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return ctx.Err()
}
