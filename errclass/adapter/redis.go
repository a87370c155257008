package adapter

import (
	"context"
	"errors"
	"net"

	"github.com/redis/go-redis/v9"

	"github.com/bjaus/resilient/errclass"
)

// RedisClientType tags StandardizedError values produced by RedisExtractor.
const RedisClientType errclass.ClientType = "redis"

// RedisExtractor recognizes the error shapes github.com/redis/go-redis/v9
// produces: redis.Nil (key miss, not an error condition worth retrying),
// pool/dial failures surfaced as *net.OpError, and context deadlines hit
// while waiting on a command.
type RedisExtractor struct{}

func (RedisExtractor) Name() string { return "redis" }

func (RedisExtractor) CanHandle(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, redis.Nil) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func (RedisExtractor) Extract(err error) errclass.StandardizedError {
	switch {
	case errors.Is(err, redis.Nil):
		return errclass.StandardizedError{
			OriginalError:  err,
			Message:        err.Error(),
			ErrorCode:      "REDIS_NIL",
			Classification: errclass.NotFound,
			IsRetryable:    false,
			ClientType:     RedisClientType,
		}

	case errors.Is(err, context.DeadlineExceeded):
		return errclass.StandardizedError{
			OriginalError:  err,
			Message:        err.Error(),
			ErrorCode:      "ETIMEDOUT",
			Classification: errclass.Timeout,
			IsRetryable:    true,
			ClientType:     RedisClientType,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		code := "ECONNREFUSED"
		if opErr.Timeout() {
			code = "ETIMEDOUT"
		}
		classification := errclass.ClassifyError(nil, code)
		return errclass.StandardizedError{
			OriginalError:  err,
			Message:        err.Error(),
			ErrorCode:      code,
			Classification: classification,
			IsRetryable:    errclass.IsRetryableError(classification, nil),
			ClientType:     RedisClientType,
		}
	}

	return errclass.StandardizedError{
		OriginalError:  err,
		Message:        err.Error(),
		Classification: errclass.Unknown,
		ClientType:     RedisClientType,
	}
}
