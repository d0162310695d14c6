package serialization

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/matrix"
)

// Common errors.
var (
	ErrMalformed        = matrix.ErrMalformed
	ErrTruncated        = matrix.ErrTruncated
	ErrInvalidShape     = matrix.ErrInvalidShape
	ErrTooManyLayers    = errors.New("too many layers")
	ErrLayerTooLarge    = errors.New("layer exceeds maximum size")
	ErrChecksumMismatch = errors.New("checksum mismatch: file may be corrupted")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // Type of error (e.g., "too_many_layers", "shape_mismatch")
	Field   string // Field involved (e.g., "weights[1]"), may be empty
	Details string // Additional details
	Err     error  // Sentinel matched by errors.Is
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Type, e.Field, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
