package breaker_test

import (
	"testing"
	"time"

	"github.com/bjaus/resilient/breaker"
	"github.com/stretchr/testify/require"
)

func TestNew_ClampsInvalidOptionsInsteadOfFailing(t *testing.T) {
	require.NotPanics(t, func() {
		c := breaker.New("test",
			breaker.WithFailureThreshold(-5),
			breaker.WithMinimumRequests(0),
			breaker.WithRollingWindow(10*time.Millisecond),
			breaker.WithResetTimeout(time.Millisecond),
			breaker.WithSuccessThreshold(0),
			breaker.WithHalfOpenMaxRequests(0),
			breaker.WithBucketCount(1),
		)
		require.NotNil(t, c)
	})
}

func TestNew_ClampsBucketCountAboveMax(t *testing.T) {
	require.NotPanics(t, func() {
		breaker.New("test", breaker.WithBucketCount(1000))
	})
}

func TestNew_ClampsFailureThresholdAboveMax(t *testing.T) {
	require.NotPanics(t, func() {
		breaker.New("test", breaker.WithFailureThreshold(500))
	})
}
