package adapter_test

import (
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/resilient/errclass"
	"github.com/bjaus/resilient/errclass/adapter"
)

func TestNATSExtractor_CanHandle(t *testing.T) {
	e := adapter.NATSExtractor{}

	require.True(t, e.CanHandle(nats.ErrTimeout))
	require.True(t, e.CanHandle(nats.ErrNoResponders))
	require.False(t, e.CanHandle(nil))
}

func TestNATSExtractor_TimeoutIsRetryable(t *testing.T) {
	e := adapter.NATSExtractor{}

	got := e.Extract(nats.ErrTimeout)

	require.Equal(t, errclass.Timeout, got.Classification)
	require.True(t, got.IsRetryable)
	require.Equal(t, adapter.NATSClientType, got.ClientType)
}

func TestNATSExtractor_NoRespondersClassifiesAsNetwork(t *testing.T) {
	e := adapter.NATSExtractor{}

	got := e.Extract(nats.ErrNoResponders)

	require.Equal(t, errclass.Network, got.Classification)
	require.True(t, got.IsRetryable)
}

func TestNATSExtractor_SlowConsumerClassifiesAsRateLimit(t *testing.T) {
	e := adapter.NATSExtractor{}

	got := e.Extract(nats.ErrSlowConsumer)

	require.Equal(t, errclass.RateLimit, got.Classification)
	require.True(t, got.IsRetryable)
}

func TestNATSExtractor_AuthorizationIsNotRetryable(t *testing.T) {
	e := adapter.NATSExtractor{}

	got := e.Extract(nats.ErrAuthorization)

	require.Equal(t, errclass.Authentication, got.Classification)
	require.False(t, got.IsRetryable)
}

func TestNATSExtractor_MaxPayloadClassifiesAsValidation(t *testing.T) {
	e := adapter.NATSExtractor{}

	got := e.Extract(nats.ErrMaxPayload)

	require.Equal(t, errclass.Validation, got.Classification)
	require.False(t, got.IsRetryable)
}
