package breaker

import "time"

// Clock abstracts time so tests can drive state transitions without
// sleeping on real durations.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
