package breaker

import "time"

// bucket tallies successes and failures recorded within one slice of the
// rolling window. BucketStartTime is zero until the bucket is first used.
// Fields are exported so a State value round-trips through a serializing
// StateStore (e.g. breaker/adapter.RedisStore).
type bucket struct {
	SuccessCount    int
	FailureCount    int
	BucketStartTime time.Time
}

// bucketIndex returns the ring slot for now given a fixed bucketDuration
// and bucketCount, as floor(now/bucketDuration) mod bucketCount.
func bucketIndex(now time.Time, bucketDuration time.Duration, bucketCount int) int {
	slot := now.UnixNano() / bucketDuration.Nanoseconds()
	return int(slot % int64(bucketCount))
}

// recordToBucket records one outcome into the bucket for now, resetting
// the bucket first if it has gone stale (its start time is at least one
// bucketDuration behind now).
func recordToBucket(buckets []bucket, now time.Time, bucketDuration time.Duration, isFailure bool) {
	idx := bucketIndex(now, bucketDuration, len(buckets))
	b := &buckets[idx]

	if b.BucketStartTime.IsZero() || now.Sub(b.BucketStartTime) >= bucketDuration {
		b.SuccessCount = 0
		b.FailureCount = 0
		b.BucketStartTime = now
	}

	if isFailure {
		b.FailureCount++
	} else {
		b.SuccessCount++
	}
}

// sumBuckets totals successes and failures across every bucket whose
// BucketStartTime falls within the rolling window ending at now.
func sumBuckets(buckets []bucket, now time.Time, rollingWindow time.Duration) (successes, failures int) {
	cutoff := now.Add(-rollingWindow)
	for _, b := range buckets {
		if b.BucketStartTime.After(cutoff) {
			successes += b.SuccessCount
			failures += b.FailureCount
		}
	}
	return successes, failures
}
