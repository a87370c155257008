package breaker

import "time"

// Metrics is a snapshot of breaker activity computed from the live bucket
// ring, restricted to the rolling window.
type Metrics struct {
	State              CircuitState
	TotalRequests      int
	FailedRequests     int
	SuccessfulRequests int
	FailureRate        float64 // percent, 0..100
	LastFailureTime    *time.Time
	LastSuccessTime    *time.Time
}
