package backoff

import (
	"math/rand/v2"
	"time"
)

// JitterStrategy selects how randomization is applied to a base delay.
type JitterStrategy int

const (
	// None returns the base delay unmodified.
	None JitterStrategy = iota
	// Full returns a uniform value in [0, base].
	Full
	// Equal returns half the base plus a uniform value in [0, base/2].
	Equal
	// Decorrelated returns a uniform value in [initialDelay, prevDelay*3),
	// capped at MaxDelay. Each call's result becomes the next call's prevDelay.
	Decorrelated
)

// String returns the jitter strategy's name.
func (j JitterStrategy) String() string {
	switch j {
	case None:
		return "none"
	case Full:
		return "full"
	case Equal:
		return "equal"
	case Decorrelated:
		return "decorrelated"
	default:
		return "unknown"
	}
}

// Apply randomizes base under strategy. prevDelay is the previous attempt's
// jittered delay (callers pass cfg.InitialDelay for the first attempt).
// Unknown strategies fall back to Full. rng need not be cryptographically
// secure; a nil rng uses the package's shared, auto-seeded source.
func Apply(strategy JitterStrategy, base, prevDelay time.Duration, cfg Config, rng *rand.Rand) time.Duration {
	if base < 0 {
		base = 0
	}

	switch strategy {
	case None:
		return base
	case Equal:
		half := base / 2
		return half + randN(rng, half+1)
	case Decorrelated:
		lo := float64(cfg.InitialDelay)
		hi := float64(prevDelay) * 3
		if hi < lo {
			hi = lo
		}
		d := time.Duration(lo + randFloat64(rng)*(hi-lo))
		if cfg.MaxDelay > 0 && d > cfg.MaxDelay {
			return cfg.MaxDelay
		}
		return d
	default: // Full, and any unrecognized strategy
		return randN(rng, base+1)
	}
}

func randN(rng *rand.Rand, n time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	if rng != nil {
		return time.Duration(rng.Int64N(int64(n)))
	}
	return time.Duration(rand.Int64N(int64(n)))
}

func randFloat64(rng *rand.Rand) float64 {
	if rng != nil {
		return rng.Float64()
	}
	return rand.Float64()
}
