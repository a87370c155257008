package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bjaus/resilient/retry"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return ctx.Err()
}

func TestDo_SucceedsOnFirstAttempt(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	}, retry.WithClock(&fakeClock{}))

	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestDo_SucceedOnAttempt3(t *testing.T) {
	calls := 0
	clock := &fakeClock{}
	err := retry.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("ECONNRESET")
		}
		return nil
	}, retry.WithMaxAttempts(5), retry.WithClock(clock), retry.WithJitter(0))

	require.NoError(t, err)
	require.Equal(t, 3, calls)
	require.Len(t, clock.sleeps, 2)
}

func TestDo_AlwaysFailsReturnsLastError(t *testing.T) {
	calls := 0
	clock := &fakeClock{}
	sentinel := errors.New("boom")
	err := retry.Do(context.Background(), func(context.Context) error {
		calls++
		return sentinel
	}, retry.WithMaxAttempts(3), retry.WithClock(clock), retry.WithShouldRetry(func(error, int) bool { return true }))

	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 3, calls)
	require.Len(t, clock.sleeps, 2)
}

func TestDo_StopAbortsImmediately(t *testing.T) {
	calls := 0
	sentinel := errors.New("not found")
	err := retry.Do(context.Background(), func(context.Context) error {
		calls++
		return retry.Stop(sentinel)
	}, retry.WithMaxAttempts(5), retry.WithClock(&fakeClock{}))

	require.ErrorIs(t, err, sentinel)
	require.Equal(t, 1, calls)
}

func TestDo_ShouldRetryFalseStopsEarly(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), func(context.Context) error {
		calls++
		return errors.New("nope")
	}, retry.WithMaxAttempts(5), retry.WithClock(&fakeClock{}), retry.WithShouldRetry(func(error, int) bool { return false }))

	require.Error(t, err)
	require.Equal(t, 1, calls)
}

func TestDo_OnFailureReplacesError(t *testing.T) {
	replacement := errors.New("replaced")
	err := retry.Do(context.Background(), func(context.Context) error {
		return errors.New("original")
	}, retry.WithMaxAttempts(1), retry.WithClock(&fakeClock{}), retry.WithOnFailure(func(error, int) error {
		return replacement
	}))

	require.ErrorIs(t, err, replacement)
}

func TestDo_OnRetryReplacesErrorAndAbortsLoop(t *testing.T) {
	calls := 0
	replacement := errors.New("replaced by observer")
	err := retry.Do(context.Background(), func(context.Context) error {
		calls++
		return errors.New("ECONNRESET")
	}, retry.WithMaxAttempts(5), retry.WithClock(&fakeClock{}), retry.WithOnRetry(func(error, int, time.Duration) error {
		return replacement
	}))

	require.ErrorIs(t, err, replacement)
	require.Equal(t, 1, calls, "loop must abort instead of continuing to attempt 2")
}

func TestDo_OnRetryAndOnFailureInvokedWithOneIndexedAttempt(t *testing.T) {
	var retryAttempts []int
	var failureAttempts int
	err := retry.Do(context.Background(), func(context.Context) error {
		return errors.New("ECONNRESET")
	}, retry.WithMaxAttempts(3), retry.WithClock(&fakeClock{}),
		retry.WithOnRetry(func(_ error, attempt int, _ time.Duration) error {
			retryAttempts = append(retryAttempts, attempt)
			return nil
		}),
		retry.WithOnFailure(func(_ error, attempts int) error {
			failureAttempts = attempts
			return nil
		}),
	)

	require.Error(t, err)
	require.Equal(t, []int{1, 2}, retryAttempts)
	require.Equal(t, 3, failureAttempts)
}

func TestDo_CancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := retry.Do(ctx, func(context.Context) error {
		calls++
		return nil
	}, retry.WithClock(&fakeClock{}))

	require.ErrorIs(t, err, retry.ErrCancelled)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 0, calls)
}

func TestDo_CancelledDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retry.Do(ctx, func(context.Context) error {
		calls++
		if calls == 1 {
			cancel()
		}
		return errors.New("ECONNRESET")
	}, retry.WithMaxAttempts(5), retry.WithClock(&fakeClock{}))

	require.ErrorIs(t, err, retry.ErrCancelled)
	require.Equal(t, 1, calls)
}

func TestWrap_RetriesTransparently(t *testing.T) {
	calls := 0
	wrapped := retry.Wrap(func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("ETIMEDOUT")
		}
		return nil
	}, retry.WithClock(&fakeClock{}))

	require.NoError(t, wrapped(context.Background()))
	require.Equal(t, 2, calls)
}

func TestResult_ReturnsValueOnSuccess(t *testing.T) {
	p := retry.New(retry.WithClock(&fakeClock{}))
	v, err := retry.Result(context.Background(), p, func(context.Context) (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	require.Equal(t, 42, v)
}
