package body

import "errors"

// Body construction and composition errors
var (
	ErrInvalidBody        = errors.New("invalid body")
	ErrDegenerateGeometry = errors.New("degenerate body geometry")
	ErrAnchorOwned        = errors.New("anchor already has an owner")
	ErrAnchorCycle        = errors.New("anchor would create a cycle")
)
