// Package adapter wires package breaker into transports and persistence
// backends that the core package deliberately stays agnostic of.
package adapter

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bjaus/resilient/breaker"
)

// InterceptorOption configures UnaryClientInterceptor.
type InterceptorOption func(*interceptorConfig)

type interceptorConfig struct {
	shouldCount func(error) bool
}

// WithShouldCount overrides which gRPC errors count as circuit failures.
// By default, Unavailable, DeadlineExceeded, Internal, and Unknown count, as
// does any error that carries no gRPC status; every other status code
// (including a clean, decoded application error) does not.
func WithShouldCount(fn func(error) bool) InterceptorOption {
	return func(c *interceptorConfig) { c.shouldCount = fn }
}

func defaultShouldCount(err error) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	if !ok {
		return true
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Internal, codes.Unknown:
		return true
	default:
		return false
	}
}

// UnaryClientInterceptor wraps every unary call on the connection with c.
// A rejection from the breaker (c is open, or half-open and saturated) is
// translated into status.Error(codes.Unavailable, ...) so callers see an
// ordinary gRPC status rather than a breaker-specific error type.
func UnaryClientInterceptor(c *breaker.Circuit, opts ...InterceptorOption) grpc.UnaryClientInterceptor {
	cfg := &interceptorConfig{shouldCount: defaultShouldCount}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(
		ctx context.Context,
		method string,
		req, reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		callOpts ...grpc.CallOption,
	) error {
		var invokeErr error
		err := c.Execute(ctx, func(ctx context.Context) error {
			invokeErr = invoker(ctx, method, req, reply, cc, callOpts...)
			if cfg.shouldCount(invokeErr) {
				return invokeErr
			}
			return nil
		})

		if breaker.IsOpen(err) {
			return status.Error(codes.Unavailable, "circuit breaker open for "+extractServiceName(method))
		}
		return invokeErr
	}
}

// extractServiceName pulls the service name out of a gRPC method string:
// "/user.v1.UserService/GetUser" -> "user.v1.UserService".
func extractServiceName(method string) string {
	if len(method) == 0 || method[0] != '/' {
		return method
	}
	method = method[1:]
	if idx := strings.LastIndex(method, "/"); idx != -1 {
		return method[:idx]
	}
	return method
}
