package serialization

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

// WriteNetwork writes net to w in the network text format.
func WriteNetwork(w io.Writer, net *nn.Network) error {
	enc := matrix.NewEncoder(w)
	sizes := net.Sizes()
	enc.Int(len(sizes))
	for _, s := range sizes {
		enc.Int(s)
	}
	for i := 0; i < net.NumBoundaries(); i++ {
		if err := enc.Matrix(net.Weights(i)); err != nil {
			return errors.Wrapf(err, "write weights[%d]", i)
		}
		if err := enc.Matrix(net.Biases(i)); err != nil {
			return errors.Wrapf(err, "write biases[%d]", i)
		}
	}
	return errors.Wrap(enc.Flush(), "flush network")
}

// SaveNetworkFile writes net to the file at path, replacing any existing file.
func SaveNetworkFile(path string, net *nn.Network) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create network file")
	}
	if err := WriteNetwork(f, net); err != nil {
		f.Close()
		return errors.Wrapf(err, "save %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}
