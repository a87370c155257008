package retry

import (
	"context"
	"fmt"
	"time"
)

// runWithTimeout races fn against timeout using a child context derived
// from ctx. If fn does not observe ctx.Done() and return promptly, its
// goroutine keeps running in the background until it finishes on its own;
// runWithTimeout itself returns as soon as the timer fires.
func runWithTimeout(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	if timeout <= 0 {
		return fn(ctx)
	}

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(cctx)
	}()

	select {
	case err := <-done:
		return err
	case <-cctx.Done():
		if cctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("retry: attempt exceeded timeout of %s: %w", timeout, context.DeadlineExceeded)
		}
		return cctx.Err()
	}
}
