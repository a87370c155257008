package adapter

import (
	"errors"

	"github.com/nats-io/nats.go"

	"github.com/bjaus/resilient/errclass"
)

// NATSClientType tags StandardizedError values produced by NATSExtractor.
const NATSClientType errclass.ClientType = "nats"

// NATSExtractor recognizes the sentinel errors github.com/nats-io/nats.go
// returns from request/response calls and connection management.
type NATSExtractor struct{}

func (NATSExtractor) Name() string { return "nats" }

func (NATSExtractor) CanHandle(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, nats.ErrTimeout),
		errors.Is(err, nats.ErrNoResponders),
		errors.Is(err, nats.ErrConnectionClosed),
		errors.Is(err, nats.ErrNoServers),
		errors.Is(err, nats.ErrSlowConsumer),
		errors.Is(err, nats.ErrAuthorization),
		errors.Is(err, nats.ErrAuthExpired),
		errors.Is(err, nats.ErrMaxPayload):
		return true
	}
	return false
}

func (NATSExtractor) Extract(err error) errclass.StandardizedError {
	switch {
	case errors.Is(err, nats.ErrTimeout):
		return natsResult(err, "ETIMEDOUT", errclass.Timeout, true)

	case errors.Is(err, nats.ErrNoResponders), errors.Is(err, nats.ErrNoServers), errors.Is(err, nats.ErrConnectionClosed):
		return natsResult(err, "ECONNREFUSED", errclass.Network, true)

	case errors.Is(err, nats.ErrSlowConsumer):
		return natsResult(err, "ERR_SLOW_CONSUMER", errclass.RateLimit, true)

	case errors.Is(err, nats.ErrAuthorization), errors.Is(err, nats.ErrAuthExpired):
		return natsResult(err, "ERR_AUTHORIZATION", errclass.Authentication, false)

	case errors.Is(err, nats.ErrMaxPayload):
		return natsResult(err, "ERR_MAX_PAYLOAD", errclass.Validation, false)
	}

	return errclass.StandardizedError{
		OriginalError:  err,
		Message:        err.Error(),
		Classification: errclass.Unknown,
		ClientType:     NATSClientType,
	}
}

func natsResult(err error, code string, classification errclass.Classification, retryable bool) errclass.StandardizedError {
	return errclass.StandardizedError{
		OriginalError:  err,
		Message:        err.Error(),
		ErrorCode:      code,
		Classification: classification,
		IsRetryable:    retryable,
		ClientType:     NATSClientType,
	}
}
