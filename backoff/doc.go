// Package backoff computes retry delays from an attempt index.
//
// It has no notion of retrying, timers, or context: just two pure
// functions: Compute turns an attempt index into a base delay under one of
// three strategies, and Apply randomizes that base delay under one of four
// jitter strategies. Callers (typically package retry) own the sleep.
//
//	cfg := backoff.Config{InitialDelay: time.Second, MaxDelay: 30 * time.Second, Multiplier: 2}
//	base := backoff.Compute(2, cfg) // 4s under Exponential
//	delay := backoff.Apply(backoff.Full, base, prevDelay, cfg, rng)
package backoff
