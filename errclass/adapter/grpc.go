// Package adapter supplies errclass.Extractor implementations for the
// client libraries wired into this module (gRPC, Redis, NATS), so callers
// using those clients get the same classification behavior as the
// built-in HTTP extractor without writing their own error-shape detection.
package adapter

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bjaus/resilient/errclass"
)

// GRPCClientType tags StandardizedError values produced by GRPCExtractor.
const GRPCClientType errclass.ClientType = "grpc"

// GRPCExtractor recognizes errors produced by a gRPC client call, any
// error status.FromError can unwrap a *status.Status out of, and maps
// the gRPC status code onto the standard HTTP-status-driven
// classification using the canonical gRPC-to-HTTP code mapping, so a
// gRPC-backed retryer behaves the same as an HTTP-backed one. Canceled and
// DeadlineExceeded are classified as Cancelled and Timeout directly rather
// than by their mapped HTTP status.
type GRPCExtractor struct{}

func (GRPCExtractor) Name() string { return "grpc" }

func (GRPCExtractor) CanHandle(err error) bool {
	if err == nil {
		return false
	}
	_, ok := status.FromError(err)
	return ok
}

func (GRPCExtractor) Extract(err error) errclass.StandardizedError {
	st, ok := status.FromError(err)
	if !ok {
		return errclass.StandardizedError{OriginalError: err, Message: err.Error(), ClientType: GRPCClientType}
	}

	code := st.Code()
	httpStatus := grpcCodeToHTTPStatus(code)
	classification := errclass.ClassifyError(&httpStatus, "")
	switch code {
	case codes.Canceled:
		classification = errclass.Cancelled
	case codes.DeadlineExceeded:
		classification = errclass.Timeout
	}

	return errclass.StandardizedError{
		OriginalError:  err,
		Message:        st.Message(),
		StatusCode:     &httpStatus,
		ErrorCode:      code.String(),
		Classification: classification,
		IsRetryable:    errclass.IsRetryableError(classification, &httpStatus),
		ClientType:     GRPCClientType,
	}
}

// grpcCodeToHTTPStatus follows the mapping gRPC itself documents for its
// gRPC-Gateway transcoding (grpc/grpc § "Status codes and their use in
// gRPC"), so a classification built from it lines up with the same codes
// an equivalent REST client would have seen.
func grpcCodeToHTTPStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return 200
	case codes.Canceled:
		return 499
	case codes.InvalidArgument, codes.FailedPrecondition, codes.OutOfRange:
		return 400
	case codes.Unauthenticated:
		return 401
	case codes.PermissionDenied:
		return 403
	case codes.NotFound:
		return 404
	case codes.AlreadyExists, codes.Aborted:
		return 409
	case codes.ResourceExhausted:
		return 429
	case codes.DeadlineExceeded:
		return 504
	case codes.Unimplemented:
		return 501
	case codes.Unavailable:
		return 503
	case codes.Internal, codes.DataLoss, codes.Unknown:
		return 500
	default:
		return 500
	}
}
