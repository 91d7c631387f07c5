package counter

import (
	"context"
	"errors"
	"time"
)

// ErrRemoteTimeout reports that a remote store call did not finish inside its
// budget and the caller proceeded with mirrored data.
var ErrRemoteTimeout = errors.New("remote store timed out")

// withTimeout races op against the budget. On timeout the fallback value is
// returned with ErrRemoteTimeout; the operation itself is left to finish in
// the background so a slow success still lands in the remote store.
func withTimeout[T any](ctx context.Context, budget time.Duration, fallback T, op func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		v   T
		err error
	}
	done := make(chan outcome, 1)
	// The op runs on a detached context so that abandoning it here, or the
	// caller's errgroup cancelling after Wait, does not abort an in-flight
	// remote write.
	opCtx := context.WithoutCancel(ctx)
	go func() {
		v, err := op(opCtx)
		done <- outcome{v, err}
	}()

	timer := time.NewTimer(budget)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.v, out.err
	case <-timer.C:
		return fallback, ErrRemoteTimeout
	case <-ctx.Done():
		return fallback, ctx.Err()
	}
}
