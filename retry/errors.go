package retry

import (
	"errors"
	"fmt"
)

// ErrCancelled is the sentinel matched by errors.Is when the loop exits
// because ctx was aborted, either before an attempt started or during the
// inter-attempt sleep.
var ErrCancelled = errors.New("retry: cancelled")

// CancelledError wraps the context error that caused cancellation. It
// satisfies errors.Is(err, ErrCancelled) directly and also unwraps to the
// underlying context.Canceled or context.DeadlineExceeded.
type CancelledError struct {
	cause error
}

func newCancelledError(cause error) *CancelledError {
	return &CancelledError{cause: cause}
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("retry: cancelled: %v", e.cause)
}

func (e *CancelledError) Unwrap() error {
	return e.cause
}

func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}

// terminalError marks an error returned from Stop: the loop treats it as
// final regardless of what ShouldRetry would say.
type terminalError struct {
	err error
}

func (t *terminalError) Error() string {
	return t.err.Error()
}

func (t *terminalError) Unwrap() error {
	return t.err
}

// Stop wraps err so the retry loop treats it as terminal: the current
// attempt's error is returned immediately without consulting ShouldRetry
// or sleeping for another attempt. A nil err returns nil.
func Stop(err error) error {
	if err == nil {
		return nil
	}
	return &terminalError{err: err}
}

// unwrapTerminal reports whether err was produced by Stop, returning the
// wrapped cause either way.
func unwrapTerminal(err error) (cause error, terminal bool) {
	var t *terminalError
	if errors.As(err, &t) {
		return t.err, true
	}
	return err, false
}
