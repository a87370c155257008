package breaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// Func is the signature of a protected operation.
type Func func(ctx context.Context) error

// Circuit is a bucketed sliding-window circuit breaker. Safe for
// concurrent use.
type Circuit struct {
	name string
	cfg  config

	bucketDuration time.Duration

	mu      sync.Mutex
	state   CircuitState
	buckets []bucket

	lastFailureTime *time.Time
	lastSuccessTime *time.Time

	halfOpenSuccesses int
	halfOpenActive    int
	halfOpenSem       *semaphore.Weighted
}

// New creates a Circuit with the given options layered over the package
// defaults. Invalid numeric options are clamped rather than rejected.
func New(name string, opts ...Option) *Circuit {
	cfg := config{
		failureThreshold:    DefaultFailureThreshold,
		minimumRequests:     DefaultMinimumRequests,
		rollingWindow:       DefaultRollingWindow,
		resetTimeout:        DefaultResetTimeout,
		successThreshold:    DefaultSuccessThreshold,
		halfOpenMaxRequests: DefaultHalfOpenMaxRequests,
		bucketCount:         DefaultBucketCount,
		condition:           defaultCondition,
		clock:               realClock{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.clamp()

	return &Circuit{
		name:           name,
		cfg:            cfg,
		bucketDuration: cfg.rollingWindow / time.Duration(cfg.bucketCount),
		state:          StateClosed,
		buckets:        make([]bucket, cfg.bucketCount),
		halfOpenSem:    semaphore.NewWeighted(int64(cfg.halfOpenMaxRequests)),
	}
}

// Name returns the circuit's name.
func (c *Circuit) Name() string { return c.name }

// Execute admits or rejects fn based on the current state: rejects
// immediately while open, reserves a probe slot (or rejects) while
// half-open, otherwise runs fn and records its outcome. The probe slot,
// if reserved, is released on every exit path.
func (c *Circuit) Execute(ctx context.Context, fn Func) error {
	release, err := c.admit()
	if err != nil {
		return err
	}
	if release != nil {
		defer release()
	}

	fnErr := fn(ctx)
	c.recordOutcome(fnErr)
	return fnErr
}

// admit evaluates deferred transitions, then admits or rejects the caller.
// On half-open it also reserves a probe slot, returning a release func
// that must be called exactly once.
func (c *Circuit) admit() (release func(), err error) {
	c.mu.Lock()
	state := c.evalState(c.cfg.clock.Now())

	switch state {
	case StateOpen:
		c.mu.Unlock()
		return nil, ErrOpen
	case StateHalfOpen:
		if !c.halfOpenSem.TryAcquire(1) {
			c.mu.Unlock()
			return nil, ErrHalfOpenSaturated
		}
		c.halfOpenActive++
		c.mu.Unlock()

		var once sync.Once
		release = func() {
			once.Do(func() {
				c.mu.Lock()
				c.halfOpenActive--
				c.mu.Unlock()
				c.halfOpenSem.Release(1)
			})
		}
		return release, nil
	default:
		c.mu.Unlock()
		return nil, nil
	}
}

// RecordSuccess records a successful outcome for manual integration,
// without the admission check Execute performs.
func (c *Circuit) RecordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.evalState(c.cfg.clock.Now())
	c.recordLocked(state, nil)
}

// RecordFailure records a failed outcome for manual integration. If err is
// nil, a generic failure error is recorded in its place so Condition still
// sees a non-nil error.
func (c *Circuit) RecordFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == nil {
		err = errors.New("breaker: recorded failure")
	}
	state := c.evalState(c.cfg.clock.Now())
	c.recordLocked(state, err)
}

func (c *Circuit) recordOutcome(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.evalState(c.cfg.clock.Now())
	c.recordLocked(state, err)
}

func (c *Circuit) recordLocked(state CircuitState, err error) {
	now := c.cfg.clock.Now()
	isFailure := c.cfg.condition(err)

	switch state {
	case StateClosed:
		recordToBucket(c.buckets, now, c.bucketDuration, isFailure)
		if isFailure {
			c.lastFailureTime = &now
		} else {
			c.lastSuccessTime = &now
		}

		successes, failures := sumBuckets(c.buckets, now, c.cfg.rollingWindow)
		total := successes + failures
		if total >= c.cfg.minimumRequests && failureRate(successes, failures) >= float64(c.cfg.failureThreshold) {
			c.transitionTo(StateOpen, now)
		}

	case StateHalfOpen:
		if isFailure {
			c.lastFailureTime = &now
			c.transitionTo(StateOpen, now)
		} else {
			c.lastSuccessTime = &now
			c.halfOpenSuccesses++
			if c.halfOpenSuccesses >= c.cfg.successThreshold {
				c.transitionTo(StateClosed, now)
			}
		}
	}
}

func failureRate(successes, failures int) float64 {
	total := successes + failures
	if total == 0 {
		return 0
	}
	return float64(failures) / float64(total) * 100
}

// evalState checks whether an open circuit is due to become half-open and,
// if so, performs the transition before returning the (possibly updated)
// state. Callers must hold c.mu.
func (c *Circuit) evalState(now time.Time) CircuitState {
	if c.state == StateOpen && c.lastFailureTime != nil && now.Sub(*c.lastFailureTime) >= c.cfg.resetTimeout {
		c.transitionTo(StateHalfOpen, now)
	}
	return c.state
}

// transitionTo moves to `to` and normalizes, but only if `to` differs from
// the current state; a no-op transition never fires callbacks. Callers
// must hold c.mu.
func (c *Circuit) transitionTo(to CircuitState, now time.Time) {
	if c.state == to {
		return
	}
	from := c.state
	c.state = to
	c.normalize(to, now)
	c.fireCallback(from, to)
}

// normalize applies the side effects of entering `to`, independent of
// whether the state actually changed. ForceState relies on this running
// unconditionally. Callers must hold c.mu.
func (c *Circuit) normalize(to CircuitState, now time.Time) {
	switch to {
	case StateClosed:
		resetBuckets(c.buckets)
		c.halfOpenSuccesses = 0
	case StateOpen:
		c.lastFailureTime = &now
	case StateHalfOpen:
		c.halfOpenSuccesses = 0
	}
}

func resetBuckets(buckets []bucket) {
	for i := range buckets {
		buckets[i] = bucket{}
	}
}

func (c *Circuit) fireCallback(from, to CircuitState) {
	switch to {
	case StateOpen:
		if c.cfg.onOpen != nil {
			c.cfg.onOpen(c.name, from, to)
		}
	case StateClosed:
		if c.cfg.onClose != nil {
			c.cfg.onClose(c.name, from, to)
		}
	case StateHalfOpen:
		if c.cfg.onHalfOpen != nil {
			c.cfg.onHalfOpen(c.name, from, to)
		}
	}
}

// State returns the current state after evaluating any deferred
// open-to-half-open transition.
func (c *Circuit) State() CircuitState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evalState(c.cfg.clock.Now())
}

// Metrics returns a snapshot computed from the live bucket ring.
func (c *Circuit) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.cfg.clock.Now()
	successes, failures := sumBuckets(c.buckets, now, c.cfg.rollingWindow)
	return Metrics{
		State:              c.state,
		TotalRequests:      successes + failures,
		FailedRequests:     failures,
		SuccessfulRequests: successes,
		FailureRate:        failureRate(successes, failures),
		LastFailureTime:    c.lastFailureTime,
		LastSuccessTime:    c.lastSuccessTime,
	}
}

// ForceState sets the circuit to s and applies the same normalization an
// organic transition into s would apply, regardless of whether s equals
// the current state. A callback fires only if the state actually changed.
func (c *Circuit) ForceState(s CircuitState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.cfg.clock.Now()
	from := c.state
	c.state = s
	c.normalize(s, now)
	if from != s {
		c.fireCallback(from, s)
	}
}

// Reset returns the circuit to closed, clears the bucket ring, and zeroes
// every counter and timestamp.
func (c *Circuit) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	from := c.state
	c.state = StateClosed
	resetBuckets(c.buckets)
	c.halfOpenSuccesses = 0
	c.lastFailureTime = nil
	c.lastSuccessTime = nil
	if from != StateClosed {
		c.fireCallback(from, StateClosed)
	}
}

// ExportState returns a deep copy of the circuit's state, suitable for
// handing to a StateStore.
func (c *Circuit) ExportState() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		CircuitState:           c.state,
		Buckets:                append([]bucket(nil), c.buckets...),
		LastFailureTime:        c.lastFailureTime,
		LastSuccessTime:        c.lastSuccessTime,
		HalfOpenSuccesses:      c.halfOpenSuccesses,
		HalfOpenActiveRequests: c.halfOpenActive,
	}.clone()
}

// ImportState replaces the circuit's in-memory state with a deep copy of
// state, resizing the bucket ring if it doesn't match BucketCount.
func (c *Circuit) ImportState(state State) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cloned := state.clone()
	c.state = cloned.CircuitState
	c.lastFailureTime = cloned.LastFailureTime
	c.lastSuccessTime = cloned.LastSuccessTime
	c.halfOpenSuccesses = cloned.HalfOpenSuccesses
	c.halfOpenActive = cloned.HalfOpenActiveRequests

	c.buckets = make([]bucket, c.cfg.bucketCount)
	copy(c.buckets, cloned.Buckets)
}
