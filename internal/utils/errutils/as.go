package errutils

import "emperror.dev/errors"

// As is a generic wrapper around errors.As that returns the first error in
// err's chain of type T.
func As[T error](err error) (T, bool) {
	var target T
	if err == nil {
		return target, false
	}
	ok := errors.As(err, &target)
	return target, ok
}
