package collapse

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/nlaracuente/personalspace/internal/floor"
)

// ErrNotAcknowledged reports that a tile's terminal hit had not been
// acknowledged before the wait gave up.
var ErrNotAcknowledged = errors.New("collapse: hit not acknowledged")

// ackWaitCeiling bounds how long WaitAcknowledged keeps polling. It sits
// far above any sane AckDelay, so hitting it means the tile was never
// removed.
const ackWaitCeiling = 5 * time.Second

// WaitAcknowledged blocks until the tile reports its terminal hit as
// processed, polling with exponential backoff. It returns nil once the
// acknowledgment deadline passes, the context error on cancellation, and
// ErrNotAcknowledged when the ceiling elapses first.
func WaitAcknowledged(ctx context.Context, t *floor.Tile) error {
	operation := func() (struct{}, error) {
		if t.HitAcknowledged(time.Now()) {
			return struct{}{}, nil
		}
		return struct{}{}, ErrNotAcknowledged
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 50 * time.Millisecond
	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(ackWaitCeiling),
	)
	return err
}
