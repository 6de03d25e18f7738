package level

import "errors"

var (
	ErrUnknownObject = errors.New("unknown level object")
	ErrInvalidLevel  = errors.New("invalid level")
	ErrNoSuchLevel   = errors.New("no such level")
)
