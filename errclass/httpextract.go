package errclass

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
)

// HTTPStatusError wraps a completed HTTP round trip that returned a status
// code the caller considers an error. net/http itself never constructs
// this: callers convert a successful round trip into one explicitly (for
// example in a RoundTripper or after checking resp.StatusCode) so that
// Extract can mine the response the way a client library's own error type
// would let it.
type HTTPStatusError struct {
	Request    *http.Request
	Response   *http.Response
	BodyText   string
	BodyFields map[string]any
}

func (e *HTTPStatusError) Error() string {
	status := 0
	if e.Response != nil {
		status = e.Response.StatusCode
	}
	return httpStatusMessage(status, e.BodyText, e.BodyFields)
}

// httpExtractor recognizes the error shapes the standard net/http client
// and transport produce, plus HTTPStatusError. It always claims the error
// (CanHandle never returns false) so it also serves as the final fallback
// for errors no other extractor, built-in or custom, recognizes.
type httpExtractor struct{}

func (httpExtractor) Name() string        { return "http" }
func (httpExtractor) CanHandle(error) bool { return true }

func (httpExtractor) Extract(err error) StandardizedError {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return extractHTTPStatus(statusErr)
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return extractURLError(urlErr)
	}

	code := detectErrorCode(err)
	if code == "" {
		return genericFallback(err)
	}

	classification := ClassifyError(nil, code)
	return StandardizedError{
		OriginalError:  err,
		Message:        err.Error(),
		ErrorCode:      code,
		Classification: classification,
		IsRetryable:    IsRetryableError(classification, nil),
		ClientType:     HTTP,
	}
}

func extractHTTPStatus(e *HTTPStatusError) StandardizedError {
	status := 0
	if e.Response != nil {
		status = e.Response.StatusCode
	}
	statusCode := &status
	classification := ClassifyError(statusCode, "")

	se := StandardizedError{
		OriginalError:  e,
		Message:        httpStatusMessage(status, e.BodyText, e.BodyFields),
		StatusCode:     statusCode,
		Body:           e.BodyText,
		Classification: classification,
		IsRetryable:    IsRetryableError(classification, statusCode),
		ClientType:     HTTP,
	}
	if e.Request != nil {
		se.Method = e.Request.Method
		se.URL = e.Request.URL.String()
	}
	if e.Response != nil {
		se.Headers = e.Response.Header
	}
	return se
}

// httpStatusMessage prefers a message mined from the response body, tried
// in the field order the spec's classifier specifies: message, error,
// detail, msg, errorMessage, then a nested error.message.
func httpStatusMessage(status int, bodyText string, fields map[string]any) string {
	for _, key := range []string{"message", "error", "detail", "msg", "errorMessage"} {
		if v, ok := fields[key].(string); ok && v != "" {
			return v
		}
	}
	if nested, ok := fields["error"].(map[string]any); ok {
		if v, ok := nested["message"].(string); ok && v != "" {
			return v
		}
	}
	if bodyText != "" {
		return bodyText
	}
	return httpStatusText(status)
}

func httpStatusText(status int) string {
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "http error"
}

func extractURLError(e *url.Error) StandardizedError {
	code := detectErrorCode(e)
	if code == "" {
		code = detectErrorCode(e.Err)
	}

	// A request was made but no response was received (dial, read, or
	// write failure, or cancellation). Synthesize a status code from the
	// error code so callers that only branch on StatusCode still work.
	var synthesized *int
	switch code {
	case "ETIMEDOUT", "ECONNABORTED":
		synthesized = intPtr(408)
	case "ECONNREFUSED", "ECONNRESET", "ENETUNREACH", "EHOSTUNREACH", "ENOTFOUND", "EAI_AGAIN":
		synthesized = intPtr(503)
	case "ERR_CANCELED":
		synthesized = intPtr(499)
	}

	classification := ClassifyError(synthesized, code)
	se := StandardizedError{
		OriginalError:  e,
		Message:        e.Error(),
		StatusCode:     synthesized,
		ErrorCode:      code,
		Method:         e.Op,
		URL:            e.URL,
		Classification: classification,
		IsRetryable:    IsRetryableError(classification, synthesized),
		ClientType:     HTTP,
	}
	return se
}

// detectErrorCode inspects err's chain for syscall errnos, DNS errors, and
// context cancellation/deadlines, returning one of the spec's canonical
// code strings, or "" if nothing recognizable is found.
func detectErrorCode(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "ETIMEDOUT"
	}
	if errors.Is(err, context.Canceled) {
		return "ERR_CANCELED"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return "ETIMEDOUT"
		}
		if dnsErr.IsNotFound {
			return "ENOTFOUND"
		}
		return "EAI_AGAIN"
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.ETIMEDOUT:
			return "ETIMEDOUT"
		case syscall.ECONNRESET:
			return "ECONNRESET"
		case syscall.ECONNREFUSED:
			return "ECONNREFUSED"
		case syscall.ENETUNREACH:
			return "ENETUNREACH"
		case syscall.EHOSTUNREACH:
			return "EHOSTUNREACH"
		case syscall.EPIPE:
			return "EPIPE"
		}
	}

	var pathErr *os.SyscallError
	if errors.As(err, &pathErr) {
		return detectErrorCode(pathErr.Err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "ETIMEDOUT"
	}

	return ""
}

func intPtr(v int) *int { return &v }
