// Package outcome models the result of a resolution step that can succeed,
// fall back to a default, or fail outright.
package outcome

// Status reports how a resolution step produced its value.
type Status int

const (
	// StatusResolved means the value came from the expected input.
	StatusResolved Status = iota
	// StatusDefaulted means the input was missing or unusable and a default was substituted.
	StatusDefaulted
	// StatusFailed means the step hit an error that callers must surface.
	StatusFailed
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusDefaulted:
		return "defaulted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result carries a resolved value together with how it was obtained.
// Reason is a short machine-friendly tag set for defaulted and failed results.
// Err holds the underlying cause. It is always set for failed results and may
// be set on other results when an I/O error was absorbed along the way.
type Result[T any] struct {
	Value  T
	Status Status
	Reason string
	Err    error
}

// Resolved returns a successful result.
func Resolved[T any](value T) Result[T] {
	return Result[T]{Value: value, Status: StatusResolved}
}

// Defaulted returns a result that fell back to value for the given reason.
func Defaulted[T any](value T, reason string, cause error) Result[T] {
	return Result[T]{Value: value, Status: StatusDefaulted, Reason: reason, Err: cause}
}

// Failed returns a fatal result.
func Failed[T any](reason string, err error) Result[T] {
	return Result[T]{Status: StatusFailed, Reason: reason, Err: err}
}

// Degraded reports whether the value is a fallback rather than a resolved input.
func (r Result[T]) Degraded() bool {
	return r.Status == StatusDefaulted
}

// Get returns the value, or the error when the step failed.
// Defaulted results return their value and a nil error.
func (r Result[T]) Get() (T, error) {
	if r.Status == StatusFailed {
		var zero T
		return zero, r.Err
	}
	return r.Value, nil
}
