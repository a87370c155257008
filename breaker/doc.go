// Package breaker implements a three-state circuit breaker over a
// bucketed sliding-window failure counter.
//
// Build one per protected dependency and reuse it across calls:
//
//	c := breaker.New("payments-api",
//	    breaker.WithFailureThreshold(50),
//	    breaker.WithMinimumRequests(10),
//	    breaker.WithRollingWindow(60*time.Second),
//	    breaker.WithResetTimeout(30*time.Second),
//	)
//
//	err := c.Execute(ctx, func(ctx context.Context) error {
//	    return client.Call(ctx)
//	})
//	if breaker.IsOpen(err) {
//	    // short-circuit, the breaker rejected the call without invoking it
//	}
//
// Outcomes are recorded into a fixed ring of buckets covering RollingWindow;
// the closed state trips to open once both MinimumRequests and
// FailureThreshold are reached within the window. Open trips to half-open
// once ResetTimeout has elapsed since the last recorded failure; half-open
// admits at most HalfOpenMaxRequests concurrent probes and closes again
// after SuccessThreshold consecutive probe successes, or reopens on the
// first probe failure.
//
// State transitions are evaluated lazily on State() (and lazily as a side
// effect of Execute/RecordSuccess/RecordFailure, which run the same check
// internally) and eagerly right after recording an outcome. A circuit is
// safe for concurrent use.
//
// For deterministic tests, inject a Clock:
//
//	type fakeClock struct{ now time.Time }
//	func (c *fakeClock) Now() time.Time { return c.now }
//
//	clock := &fakeClock{now: time.Now()}
//	c := breaker.New("test", breaker.WithClock(clock))
package breaker
