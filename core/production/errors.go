package production

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFuels is returned when a non-empty fleet comes without fuel data.
	ErrMissingFuels = errors.New("fuels missing")
	// ErrNonFinite is returned when a plant production evaluates to NaN or Inf.
	ErrNonFinite = errors.New("non-finite production")
	// ErrPanic wraps a recovered panic raised while planning.
	ErrPanic = errors.New("planner panicked")
)

// Fault describes why a plan could not be computed. It wraps one of the
// sentinel errors above so callers can match it with errors.Is.
type Fault struct {
	Err    error
	Plant  string
	Detail string
}

func (f *Fault) Error() string {
	msg := "production plan: " + f.Err.Error()
	if f.Plant != "" {
		msg += fmt.Sprintf(" (plant %s)", f.Plant)
	}
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	return msg
}

func (f *Fault) Unwrap() error { return f.Err }

// guard runs fn and converts a panic into an ErrPanic fault.
func guard[T any](fn func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out = zero
			err = &Fault{Err: ErrPanic, Detail: fmt.Sprint(r)}
		}
	}()
	return fn()
}
