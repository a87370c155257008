// Package retry executes an operation until it succeeds, is exhausted, or
// is told to stop.
//
// Build a reusable Policy at wire-up time and call it at each call site:
//
//	policy := retry.New(
//	    retry.WithMaxAttempts(5),
//	    retry.WithBackoff(backoff.Config{InitialDelay: 100 * time.Millisecond, MaxDelay: 10 * time.Second, Multiplier: 2}),
//	)
//
//	err := policy.Do(ctx, func(ctx context.Context) error {
//	    return client.Call(ctx)
//	})
//
// Or use the package-level Do for a one-off call:
//
//	err := retry.Do(ctx, func(ctx context.Context) error {
//	    return client.Call(ctx)
//	}, retry.WithMaxAttempts(3))
//
// Use Stop to mark an error as terminal: the loop exits immediately
// without consulting ShouldRetry.
//
//	return retry.Stop(ErrNotFound)
//
// ctx carries cancellation the way the spec's abstract "abort signal"
// would: it is checked before each attempt and honored during the
// inter-attempt sleep, surfacing as ErrCancelled.
//
// A per-attempt Timeout races the operation against a timer using a child
// context. By default any operation error, including the resulting
// DeadlineExceeded, is retried; pass WithShouldRetry to consult
// errclass.DefaultRetryPredicate (or a custom predicate) instead.
//
// Observer callbacks (OnRetry, OnFailure) may return a non-nil error to
// replace the in-flight error and, for OnRetry, to abort the loop
// immediately instead of continuing to the next attempt. This mirrors the
// source library's "a callback exception replaces the in-flight error"
// quirk; Go has no exceptions, so the callback signature carries the
// replacement as a return value instead of a panic.
package retry
