package breaker_test

import (
	"context"
	"testing"
	"time"

	"github.com/bjaus/resilient/breaker"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetStateOnMissingKeyReturnsNil(t *testing.T) {
	store := breaker.NewMemoryStore()

	state, err := store.GetState(context.Background(), "absent")

	require.NoError(t, err)
	require.Nil(t, state)
}

func TestMemoryStore_SetStateThenGetStateRoundTrips(t *testing.T) {
	store := breaker.NewMemoryStore()
	now := time.Now()

	want := breaker.State{
		CircuitState:      breaker.StateOpen,
		LastFailureTime:   &now,
		HalfOpenSuccesses: 2,
	}

	require.NoError(t, store.SetState(context.Background(), "payments", want))

	got, err := store.GetState(context.Background(), "payments")
	require.NoError(t, err)
	require.Equal(t, breaker.StateOpen, got.CircuitState)
	require.Equal(t, 2, got.HalfOpenSuccesses)
	require.NotNil(t, got.LastFailureTime)
	require.True(t, got.LastFailureTime.Equal(now))
}

func TestMemoryStore_GetStateMutationDoesNotBleedIntoStore(t *testing.T) {
	store := breaker.NewMemoryStore()
	now := time.Now()

	require.NoError(t, store.SetState(context.Background(), "c1", breaker.State{
		CircuitState:    breaker.StateOpen,
		LastFailureTime: &now,
	}))

	got, err := store.GetState(context.Background(), "c1")
	require.NoError(t, err)
	*got.LastFailureTime = now.Add(time.Hour)
	got.CircuitState = breaker.StateClosed

	again, err := store.GetState(context.Background(), "c1")
	require.NoError(t, err)
	require.Equal(t, breaker.StateOpen, again.CircuitState)
	require.True(t, again.LastFailureTime.Equal(now))
}

func TestMemoryStore_SetStateMutationAfterCallDoesNotBleedIntoStore(t *testing.T) {
	store := breaker.NewMemoryStore()
	now := time.Now()
	lastFailure := now
	state := breaker.State{CircuitState: breaker.StateOpen, LastFailureTime: &lastFailure}

	require.NoError(t, store.SetState(context.Background(), "c1", state))
	*state.LastFailureTime = now.Add(time.Hour)

	got, err := store.GetState(context.Background(), "c1")
	require.NoError(t, err)
	require.True(t, got.LastFailureTime.Equal(now))
}

func TestMemoryStore_DeleteStateRemovesEntry(t *testing.T) {
	store := breaker.NewMemoryStore()
	require.NoError(t, store.SetState(context.Background(), "c1", breaker.State{CircuitState: breaker.StateOpen}))
	require.NoError(t, store.DeleteState(context.Background(), "c1"))

	got, err := store.GetState(context.Background(), "c1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemoryStore_DeleteStateOnMissingKeyIsNotAnError(t *testing.T) {
	store := breaker.NewMemoryStore()
	require.NoError(t, store.DeleteState(context.Background(), "never-existed"))
}
