package scene

import "errors"

var (
	ErrBodyNotFound = errors.New("body not found in scene")
	ErrBundleArity  = errors.New("bundle body count does not match creator arity")
)
