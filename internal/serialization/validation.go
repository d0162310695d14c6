package serialization

import (
	"fmt"

	"github.com/born-ml/mlp/internal/matrix"
)

// Validation limits for resource protection.
const (
	MaxLayers    = 1024    // Maximum number of layers in a file
	MaxDimension = 1 << 20 // Maximum width of a single layer
)

// ValidateLayerCount checks the first header token before the sizes are read.
func ValidateLayerCount(n int) error {
	if n < 2 {
		return &ValidationError{
			Type:    "invalid_sizes",
			Details: fmt.Sprintf("need at least 2 layers, got %d", n),
			Err:     ErrInvalidShape,
		}
	}
	if n > MaxLayers {
		return &ValidationError{
			Type:    "too_many_layers",
			Details: fmt.Sprintf("got %d, max %d", n, MaxLayers),
			Err:     ErrTooManyLayers,
		}
	}
	return nil
}

// ValidateSizes checks a complete header. Every layer must be positive and at
// most MaxDimension wide, and no weight matrix may exceed matrix.MaxElements.
func ValidateSizes(sizes []int) error {
	if err := ValidateLayerCount(len(sizes)); err != nil {
		return err
	}
	for i, s := range sizes {
		field := fmt.Sprintf("sizes[%d]", i)
		if s <= 0 {
			return &ValidationError{
				Type:    "invalid_sizes",
				Field:   field,
				Details: fmt.Sprintf("size %d must be positive", s),
				Err:     ErrInvalidShape,
			}
		}
		if s > MaxDimension {
			return &ValidationError{
				Type:    "layer_too_large",
				Field:   field,
				Details: fmt.Sprintf("size %d > max %d", s, MaxDimension),
				Err:     ErrLayerTooLarge,
			}
		}
	}
	for i := 0; i < len(sizes)-1; i++ {
		if sizes[i+1] > matrix.MaxElements/sizes[i] {
			return &ValidationError{
				Type:    "layer_too_large",
				Field:   fmt.Sprintf("weights[%d]", i),
				Details: fmt.Sprintf("%dx%d exceeds %d elements", sizes[i+1], sizes[i], matrix.MaxElements),
				Err:     ErrLayerTooLarge,
			}
		}
	}
	return nil
}

// validateShape checks a decoded parameter matrix against the header.
func validateShape(field string, got, want matrix.Shape) error {
	if got.Equal(want) {
		return nil
	}
	return &ValidationError{
		Type:    "shape_mismatch",
		Field:   field,
		Details: fmt.Sprintf("got %v, header implies %v", got, want),
		Err:     ErrInvalidShape,
	}
}
