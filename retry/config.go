package retry

import (
	"math/rand/v2"
	"time"

	"github.com/bjaus/resilient/backoff"
)

// Policy is a reusable retry configuration built once via New and executed
// at each call site with Do.
type Policy struct {
	maxAttempts int
	backoff     backoff.Config
	jitter      backoff.JitterStrategy
	timeout     time.Duration

	shouldRetry func(err error, attempt int) bool
	onRetry     func(err error, attempt int, delay time.Duration) error
	onFailure   func(err error, attempts int) error

	logger Logger
	clock  Clock
	rng    *rand.Rand
}

// Option configures a Policy built by New.
type Option func(*Policy)

// WithMaxAttempts sets the total number of attempts, including the first.
// Values below 1 are clamped to 1.
func WithMaxAttempts(n int) Option {
	return func(p *Policy) {
		if n < 1 {
			n = 1
		}
		p.maxAttempts = n
	}
}

// WithBackoff sets the delay curve used between attempts.
func WithBackoff(cfg backoff.Config) Option {
	return func(p *Policy) { p.backoff = cfg }
}

// WithJitter sets the jitter strategy applied on top of the computed
// backoff delay.
func WithJitter(j backoff.JitterStrategy) Option {
	return func(p *Policy) { p.jitter = j }
}

// WithTimeout bounds each individual attempt. Zero disables the
// per-attempt timeout; the operation then runs for as long as ctx allows.
func WithTimeout(d time.Duration) Option {
	return func(p *Policy) { p.timeout = d }
}

// WithShouldRetry overrides the predicate consulted after a failed
// attempt. The default retries any non-terminal error; to retry only errors
// a client-error classifier marks as retryable, pass a function that calls
// errclass.DefaultRetryPredicate (or a predicate built on
// errclass.CreateErrorPredicate), which take only the error.
func WithShouldRetry(fn func(err error, attempt int) bool) Option {
	return func(p *Policy) { p.shouldRetry = fn }
}

// WithOnRetry registers a hook invoked right before the inter-attempt
// sleep. A non-nil return value replaces the in-flight error and aborts
// the loop immediately, skipping any remaining attempts.
func WithOnRetry(fn func(err error, attempt int, delay time.Duration) error) Option {
	return func(p *Policy) { p.onRetry = fn }
}

// WithOnFailure registers a hook invoked once, when the loop is about to
// give up. A non-nil return value replaces the error returned to the
// caller.
func WithOnFailure(fn func(err error, attempts int) error) Option {
	return func(p *Policy) { p.onFailure = fn }
}

// WithLogger sets the Logger used to report each retry decision.
func WithLogger(l Logger) Option {
	return func(p *Policy) {
		if l == nil {
			p.logger = noopLogger{}
			return
		}
		p.logger = l
	}
}

// WithClock overrides the Clock used for sleeping between attempts.
// Intended for tests.
func WithClock(c Clock) Option {
	return func(p *Policy) { p.clock = c }
}

// WithRNG overrides the random source used by jitter. Intended for
// deterministic tests.
func WithRNG(r *rand.Rand) Option {
	return func(p *Policy) { p.rng = r }
}

// New builds a Policy with the package defaults applied first, then opts
// in order.
func New(opts ...Option) *Policy {
	p := &Policy{
		maxAttempts: 3,
		backoff: backoff.Config{
			InitialDelay: 1000 * time.Millisecond,
			MaxDelay:     30000 * time.Millisecond,
			Multiplier:   2,
			Strategy:     backoff.Exponential,
		},
		jitter:      backoff.Full,
		shouldRetry: defaultShouldRetry,
		logger:      noopLogger{},
		clock:       realClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// defaultShouldRetry retries any operation error: by the time shouldRetry
// runs, Stop-wrapped terminal errors have already been filtered out by the
// loop, so every error reaching here is a plain operation failure worth
// another attempt.
func defaultShouldRetry(error, int) bool {
	return true
}
