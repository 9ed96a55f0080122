package cost

import (
	"terrafin/internal/errors"
)

// errorsFromPanic normalizes a recovered panic value into a domain error
func errorsFromPanic(r interface{}) error {
	if err, ok := r.(error); ok {
		return errors.Internal("handler panicked", err)
	}
	return errors.Newf(errors.TypeInternal, "handler panicked: %v", r)
}
