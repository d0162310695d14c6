package dataset

import (
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/matrix"
)

// Format errors.
var (
	ErrMalformed = matrix.ErrMalformed
	ErrTruncated = matrix.ErrTruncated
	ErrInvalid   = errors.New("invalid dataset")
)

// LoadFlat reads training examples written as nIn input values followed by
// nOut target values, all whitespace separated.
//
// If n > 0 exactly n examples are read and a short file is an error. If
// n <= 0 examples are read until the input ends on an example boundary.
func LoadFlat(r io.Reader, nIn, nOut, n int) (*Set, error) {
	if nIn <= 0 || nOut <= 0 {
		return nil, errors.Wrapf(ErrInvalid, "flat: widths %d and %d must be positive", nIn, nOut)
	}
	dec := matrix.NewDecoder(r)
	set := &Set{}
	for i := 0; n <= 0 || i < n; i++ {
		in, err := readInput(dec, nIn, i, n <= 0)
		if err != nil {
			return nil, err
		}
		if in == nil {
			break
		}
		target := make([]float32, nOut)
		if err := dec.Floats(fmt.Sprintf("example %d target", i), target); err != nil {
			return nil, errors.Wrap(err, "flat")
		}
		set.Inputs = append(set.Inputs, in)
		set.Targets = append(set.Targets, target)
		set.Labels = append(set.Labels, argMax(target))
	}
	return set, nil
}

// LoadFlatLabeled reads test examples written as nIn input values followed by
// a single value holding the expected class index.
func LoadFlatLabeled(r io.Reader, nIn, n int) (*Set, error) {
	if nIn <= 0 {
		return nil, errors.Wrapf(ErrInvalid, "flat: input width %d must be positive", nIn)
	}
	dec := matrix.NewDecoder(r)
	set := &Set{}
	for i := 0; n <= 0 || i < n; i++ {
		in, err := readInput(dec, nIn, i, n <= 0)
		if err != nil {
			return nil, err
		}
		if in == nil {
			break
		}
		v, err := dec.Float(fmt.Sprintf("example %d label", i))
		if err != nil {
			return nil, errors.Wrap(err, "flat")
		}
		if v < 0 || v != float32(math.Trunc(float64(v))) {
			return nil, errors.Wrapf(ErrMalformed, "flat: example %d label %v is not a class index", i, v)
		}
		set.Inputs = append(set.Inputs, in)
		set.Labels = append(set.Labels, int(v))
	}
	return set, nil
}

// readInput reads one input vector. With untilEOF set, a clean end of input
// before the first value returns nil, nil.
func readInput(dec *matrix.Decoder, nIn, i int, untilEOF bool) ([]float32, error) {
	in := make([]float32, nIn)
	first, err := dec.Float(fmt.Sprintf("example %d input", i))
	if err != nil {
		if untilEOF && errors.Is(err, matrix.ErrTruncated) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "flat")
	}
	in[0] = first
	if err := dec.Floats(fmt.Sprintf("example %d input", i), in[1:]); err != nil {
		return nil, errors.Wrap(err, "flat")
	}
	return in, nil
}
