package breaker

import "errors"

// RejectionError is returned by Execute whenever the breaker itself
// refuses to run the operation: the operation was never invoked.
type RejectionError struct {
	msg string
}

func (e *RejectionError) Error() string { return e.msg }

// Is reports whether target is ErrOpen, so errors.Is(err, ErrOpen) works
// against any RejectionError, not just the exact sentinel value.
func (e *RejectionError) Is(target error) bool {
	return target == ErrOpen
}

// ErrOpen is returned when the circuit is open, or when a half-open probe
// finds no free slot. Use IsOpen, or errors.Is(err, ErrOpen), to test for
// it without distinguishing the two cases.
var ErrOpen = &RejectionError{msg: "breaker: circuit open"}

// ErrHalfOpenSaturated is returned in the more specific case: the circuit
// is half-open but every probe slot is already occupied. It also matches
// errors.Is(err, ErrOpen).
var ErrHalfOpenSaturated = &RejectionError{msg: "breaker: half-open probe slots saturated"}

// IsOpen reports whether err is a rejection from the breaker, whether the
// circuit was fully open or half-open and saturated.
func IsOpen(err error) bool {
	return errors.Is(err, ErrOpen)
}
