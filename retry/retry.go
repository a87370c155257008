package retry

import (
	"context"

	"github.com/bjaus/resilient/backoff"
)

// Do runs fn, retrying on failure per the policy's configuration. It
// returns nil on the first success, the (possibly replaced) final error
// once attempts are exhausted or ShouldRetry declines, or a
// *CancelledError if ctx is done before an attempt can run or during the
// inter-attempt sleep.
func (p *Policy) Do(ctx context.Context, fn func(context.Context) error) error {
	prevDelay := p.backoff.InitialDelay

	var lastErr error
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return newCancelledError(err)
		}

		err := p.runAttempt(ctx, fn)
		if err == nil {
			return nil
		}

		cause, terminal := unwrapTerminal(err)
		lastErr = cause

		isLast := attempt == p.maxAttempts-1
		retryable := !terminal && p.shouldRetry(cause, attempt)

		if terminal || !retryable || isLast {
			p.logger.Debugf("retry: giving up after %d attempt(s): %v", attempt+1, cause)
			if p.onFailure != nil {
				if replacement := p.onFailure(cause, attempt+1); replacement != nil {
					lastErr = replacement
				}
			}
			return lastErr
		}

		delay := backoff.Apply(p.jitter, backoff.Compute(attempt, p.backoff), prevDelay, p.backoff, p.rng)
		prevDelay = delay

		p.logger.Debugf("retry: attempt %d failed, retrying in %s: %v", attempt+1, delay, cause)

		if p.onRetry != nil {
			if replacement := p.onRetry(cause, attempt+1, delay); replacement != nil {
				return replacement
			}
		}

		if err := p.clock.Sleep(ctx, delay); err != nil {
			return newCancelledError(err)
		}
	}

	return lastErr
}

func (p *Policy) runAttempt(ctx context.Context, fn func(context.Context) error) error {
	if p.timeout <= 0 {
		return fn(ctx)
	}
	return runWithTimeout(ctx, p.timeout, fn)
}

// Do builds an ephemeral Policy from opts and runs fn once through it. It
// is the convenient one-off form of New(opts...).Do(ctx, fn).
func Do(ctx context.Context, fn func(context.Context) error, opts ...Option) error {
	return New(opts...).Do(ctx, fn)
}

// Wrap adapts fn into a function with the same signature that retries
// itself on every call, per opts. It mirrors wrapping a client method with
// retry behavior once, at construction time, rather than at every call
// site.
func Wrap(fn func(context.Context) error, opts ...Option) func(context.Context) error {
	p := New(opts...)
	return func(ctx context.Context) error {
		return p.Do(ctx, fn)
	}
}

// Result runs fn through p and returns its value alongside the error, for
// operations that produce something besides an error.
func Result[T any](ctx context.Context, p *Policy, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := p.Do(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err == nil {
			out = v
		}
		return err
	})
	return out, err
}
