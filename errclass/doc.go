// Package errclass converts heterogeneous client errors into one
// standardized record carrying a coarse Classification and a retryability
// verdict.
//
// Go has no single dominant error shape across HTTP, gRPC, Redis, and
// message-broker clients the way a JS resilience library has to cope with
// axios/fetch/got. errclass still keeps that shape-independence: a fixed
// set of Extractor strategies each know how to recognize and decode one
// client's errors, and Extract tries them in order until one claims the
// error.
//
//	se := errclass.Extract(err)
//	if se.IsRetryable {
//	    // safe to retry
//	}
//
// Classification and retryability are pure functions of a status code and
// an error code string (ClassifyError, IsRetryableError); the extractors'
// only job is mining those two values out of a client-specific error.
//
// Additional client shapes register their own Extractor via Register; see
// errclass/adapter for gRPC, Redis, and NATS strategies.
package errclass
