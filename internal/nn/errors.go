package nn

import "github.com/pkg/errors"

// Common errors.
var (
	ErrInvalidSizes       = errors.New("invalid layer sizes")
	ErrShapeMismatch      = errors.New("parameter shape does not match layer sizes")
	ErrUnknownActivation  = errors.New("unknown activation")
	ErrUnknownInitializer = errors.New("unknown initializer")
)
