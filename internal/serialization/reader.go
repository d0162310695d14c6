package serialization

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

// ReadNetwork reads one network from r. Tokens after the last bias matrix are
// left unread.
//
// Short input returns an error wrapping ErrTruncated, unparsable tokens
// ErrMalformed, and headers or matrices that violate the layer invariants
// ErrInvalidShape, ErrTooManyLayers or ErrLayerTooLarge.
func ReadNetwork(r io.Reader) (*nn.Network, error) {
	dec := matrix.NewDecoder(r)

	n, err := dec.Int("layer count")
	if err != nil {
		return nil, errors.Wrap(err, "read network header")
	}
	if err := ValidateLayerCount(n); err != nil {
		return nil, err
	}
	sizes := make([]int, n)
	for i := range sizes {
		if sizes[i], err = dec.Int(fmt.Sprintf("sizes[%d]", i)); err != nil {
			return nil, errors.Wrap(err, "read network header")
		}
	}
	if err := ValidateSizes(sizes); err != nil {
		return nil, err
	}

	weights := make([]*matrix.Matrix, 0, n-1)
	biases := make([]*matrix.Matrix, 0, n-1)
	release := func() {
		for _, m := range weights {
			m.Release()
		}
		for _, m := range biases {
			m.Release()
		}
	}

	for i := 0; i < n-1; i++ {
		w, err := readParameter(dec, fmt.Sprintf("weights[%d]", i), matrix.Shape{Rows: sizes[i+1], Cols: sizes[i]})
		if err != nil {
			release()
			return nil, err
		}
		weights = append(weights, w)

		b, err := readParameter(dec, fmt.Sprintf("biases[%d]", i), matrix.Shape{Rows: sizes[i+1], Cols: 1})
		if err != nil {
			release()
			return nil, err
		}
		biases = append(biases, b)
	}

	net, err := nn.FromParameters(sizes, weights, biases)
	if err != nil {
		release()
		return nil, errors.Wrap(err, "assemble network")
	}
	return net, nil
}

// readParameter checks the matrix header against the shape the layer sizes
// imply before allocating the values.
func readParameter(dec *matrix.Decoder, field string, want matrix.Shape) (*matrix.Matrix, error) {
	shape, err := dec.Header()
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", field)
	}
	if err := validateShape(field, shape, want); err != nil {
		return nil, err
	}
	m, err := dec.Values(shape)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", field)
	}
	return m, nil
}

// LoadNetworkFile reads a network from the file at path.
func LoadNetworkFile(path string) (*nn.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open network file")
	}
	defer f.Close()

	net, err := ReadNetwork(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return net, nil
}
