package errclass

// CreateErrorPredicate builds a retry predicate from a function of the
// standardized error: it extracts err first, then evaluates fn against
// the result.
func CreateErrorPredicate(fn func(StandardizedError) bool) func(error) bool {
	return func(err error) bool {
		return fn(Extract(err))
	}
}

// DefaultRetryPredicate retries whenever the extracted error is marked
// retryable.
var DefaultRetryPredicate = CreateErrorPredicate(func(se StandardizedError) bool {
	return se.IsRetryable
})
