package errclass

import "net/http"

// ClientType is an open-world tag identifying which Extractor produced a
// StandardizedError. The built-in variants are defined here; adapters and
// callers may register extractors under any other name.
type ClientType string

const (
	Generic ClientType = "generic"
	HTTP    ClientType = "http"
)

// StandardizedError is the canonical record produced by an Extractor,
// independent of the originating client.
type StandardizedError struct {
	OriginalError  error
	Message        string
	StatusCode     *int
	Method         string
	URL            string
	Headers        http.Header
	Body           string
	ErrorCode      string
	Classification Classification
	IsRetryable    bool
	ClientType     ClientType
}

// Extractor is the capability built-in and registered client strategies
// implement: CanHandle recognizes an error shape, Extract decodes it.
// Extract is only ever invoked on an error for which CanHandle returned
// true for the same Extractor.
type Extractor interface {
	Name() string
	CanHandle(err error) bool
	Extract(err error) StandardizedError
}

// Extract converts err into a StandardizedError using DefaultRegistry's
// custom extractors first (in registration order, first match wins), then
// the built-in HTTP-shaped extractor, then a generic fallback.
func Extract(err error) StandardizedError {
	return DefaultRegistry.Extract(err)
}

// DetectClientType reports which client shape err matches, as the
// ClientType that Extract assigns to it. Returns Generic when nothing
// recognizes the error.
func DetectClientType(err error) ClientType {
	return DefaultRegistry.DetectClientType(err)
}

func genericFallback(err error) StandardizedError {
	if err == nil {
		return StandardizedError{ClientType: Generic, Classification: Unknown}
	}
	c := ClassifyError(nil, "")
	return StandardizedError{
		OriginalError:  err,
		Message:        err.Error(),
		Classification: c,
		IsRetryable:    IsRetryableError(c, nil),
		ClientType:     Generic,
	}
}
