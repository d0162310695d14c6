package nn

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/matrix"
)

// Network is a fully connected feedforward network.
//
// For a network with layer sizes s[0..L-1], boundary i (0 <= i < L-1) holds a
// weight matrix of shape s[i+1]×s[i] and a bias column of shape s[i+1]×1.
// Layer 0 is the input and has no parameters.
//
// A Network is not safe for concurrent use.
type Network struct {
	sizes   []int
	weights []*matrix.Matrix
	biases  []*matrix.Matrix
}

// ValidateSizes checks that sizes describes at least an input and an output
// layer and that every layer is non-empty.
func ValidateSizes(sizes []int) error {
	if len(sizes) < 2 {
		return errors.Wrapf(ErrInvalidSizes, "need at least 2 layers, got %d", len(sizes))
	}
	for i, s := range sizes {
		if s <= 0 {
			return errors.Wrapf(ErrInvalidSizes, "layer %d has size %d", i, s)
		}
	}
	return nil
}

// NewNetwork creates a network with the given layer sizes, initializing every
// parameter with init and the random source rng. A nil init selects
// LegacyUniform.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	net, err := nn.NewNetwork([]int{784, 100, 10}, rng, nil)
func NewNetwork(sizes []int, rng *rand.Rand, init Initializer) (*Network, error) {
	if err := ValidateSizes(sizes); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("nn: new network: nil random source")
	}
	if init == nil {
		init = LegacyUniform{}
	}

	n := &Network{
		sizes:   append([]int(nil), sizes...),
		weights: make([]*matrix.Matrix, len(sizes)-1),
		biases:  make([]*matrix.Matrix, len(sizes)-1),
	}
	for i := 0; i < len(sizes)-1; i++ {
		fanIn, fanOut := sizes[i], sizes[i+1]
		n.biases[i] = matrix.New(fanOut, 1)
		init.InitBiases(n.biases[i], rng)
		n.weights[i] = matrix.New(fanOut, fanIn)
		init.InitWeights(n.weights[i], fanIn, fanOut, rng)
	}
	return n, nil
}

// FromParameters assembles a network from existing parameter matrices. The
// network takes ownership of the matrices.
func FromParameters(sizes []int, weights, biases []*matrix.Matrix) (*Network, error) {
	if err := ValidateSizes(sizes); err != nil {
		return nil, err
	}
	boundaries := len(sizes) - 1
	if len(weights) != boundaries || len(biases) != boundaries {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d layers need %d weight and bias matrices, got %d and %d",
			len(sizes), boundaries, len(weights), len(biases))
	}
	for i := 0; i < boundaries; i++ {
		wantW := matrix.Shape{Rows: sizes[i+1], Cols: sizes[i]}
		if weights[i] == nil || weights[i].Released() || !weights[i].Shape().Equal(wantW) {
			return nil, errors.Wrapf(ErrShapeMismatch, "weights[%d]: want %v", i, wantW)
		}
		wantB := matrix.Shape{Rows: sizes[i+1], Cols: 1}
		if biases[i] == nil || biases[i].Released() || !biases[i].Shape().Equal(wantB) {
			return nil, errors.Wrapf(ErrShapeMismatch, "biases[%d]: want %v", i, wantB)
		}
	}
	return &Network{
		sizes:   append([]int(nil), sizes...),
		weights: append([]*matrix.Matrix(nil), weights...),
		biases:  append([]*matrix.Matrix(nil), biases...),
	}, nil
}

// Sizes returns a copy of the layer sizes.
func (n *Network) Sizes() []int {
	return append([]int(nil), n.sizes...)
}

// NumLayers returns the number of layers, including the input layer.
func (n *Network) NumLayers() int { return len(n.sizes) }

// NumBoundaries returns the number of weight/bias pairs.
func (n *Network) NumBoundaries() int { return len(n.weights) }

// InputSize returns the width of the input layer.
func (n *Network) InputSize() int {
	n.mustLive("input size")
	return n.sizes[0]
}

// OutputSize returns the width of the output layer.
func (n *Network) OutputSize() int {
	n.mustLive("output size")
	return n.sizes[len(n.sizes)-1]
}

// Weights returns the weight matrix of boundary i (shape sizes[i+1]×sizes[i]).
func (n *Network) Weights(i int) *matrix.Matrix {
	n.checkBoundary("weights", i)
	return n.weights[i]
}

// Biases returns the bias column of boundary i (shape sizes[i+1]×1).
func (n *Network) Biases(i int) *matrix.Matrix {
	n.checkBoundary("biases", i)
	return n.biases[i]
}

// NumParameters returns the total number of trainable scalars.
func (n *Network) NumParameters() int {
	total := 0
	for i := range n.weights {
		total += n.weights[i].Len() + n.biases[i].Len()
	}
	return total
}

// Clone returns a deep copy of the network.
func (n *Network) Clone() *Network {
	n.mustLive("clone")
	c := &Network{
		sizes:   append([]int(nil), n.sizes...),
		weights: make([]*matrix.Matrix, len(n.weights)),
		biases:  make([]*matrix.Matrix, len(n.biases)),
	}
	for i := range n.weights {
		c.weights[i] = n.weights[i].Copy()
		c.biases[i] = n.biases[i].Copy()
	}
	return c
}

// Release frees every parameter. Calling Release twice is safe; any other use
// of a released network panics.
func (n *Network) Release() {
	if n == nil {
		return
	}
	for i := range n.weights {
		n.weights[i].Release()
		n.biases[i].Release()
	}
	n.sizes = nil
	n.weights = nil
	n.biases = nil
}

func (n *Network) mustLive(op string) {
	if n == nil || len(n.sizes) == 0 {
		panic(fmt.Sprintf("nn: %s: network is nil or released", op))
	}
}

func (n *Network) checkBoundary(op string, i int) {
	n.mustLive(op)
	if i < 0 || i >= len(n.weights) {
		panic(fmt.Sprintf("nn: %s: boundary %d out of range [0,%d)", op, i, len(n.weights)))
	}
}

func (n *Network) checkInput(op string, input []float32) {
	n.mustLive(op)
	if len(input) != n.sizes[0] {
		panic(fmt.Sprintf("nn: %s: input has %d values, network expects %d", op, len(input), n.sizes[0]))
	}
}
