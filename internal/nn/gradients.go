package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/matrix"
)

// Gradients accumulates the loss gradient of a network's parameters over a
// batch. It has one matrix per weight and bias, with matching shapes.
//
// Gradients also owns the scratch arena used by Backprop, so the buffers of one
// example are reused by the next.
type Gradients struct {
	weights []*matrix.Matrix
	biases  []*matrix.Matrix
	scratch *matrix.Arena
}

// NewGradients allocates zeroed gradients shaped like n's parameters.
func NewGradients(n *Network) *Gradients {
	n.mustLive("new gradients")
	g := &Gradients{
		weights: make([]*matrix.Matrix, len(n.weights)),
		biases:  make([]*matrix.Matrix, len(n.biases)),
		scratch: matrix.NewArena(),
	}
	for i := range n.weights {
		g.weights[i] = matrix.New(n.weights[i].Rows(), n.weights[i].Cols())
		g.biases[i] = matrix.New(n.biases[i].Rows(), 1)
	}
	return g
}

// Zero resets every gradient to zero.
func (g *Gradients) Zero() {
	for i := range g.weights {
		g.weights[i].Zero()
		g.biases[i].Zero()
	}
}

// NumBoundaries returns the number of weight/bias gradient pairs.
func (g *Gradients) NumBoundaries() int { return len(g.weights) }

// Weights returns the weight gradient of boundary i.
func (g *Gradients) Weights(i int) *matrix.Matrix { return g.weights[i] }

// Biases returns the bias gradient of boundary i.
func (g *Gradients) Biases(i int) *matrix.Matrix { return g.biases[i] }

// Scratch returns the arena Backprop allocates its temporaries from.
func (g *Gradients) Scratch() *matrix.Arena { return g.scratch }

// Add accumulates other into g.
func (g *Gradients) Add(other *Gradients) {
	if len(other.weights) != len(g.weights) {
		panic(fmt.Sprintf("nn: gradients add: %d boundaries vs %d", len(g.weights), len(other.weights)))
	}
	for i := range g.weights {
		matrix.AddInPlace(g.weights[i], other.weights[i])
		matrix.AddInPlace(g.biases[i], other.biases[i])
	}
}

// Release frees every gradient matrix and the scratch buffers.
func (g *Gradients) Release() {
	if g == nil {
		return
	}
	for i := range g.weights {
		g.weights[i].Release()
		g.biases[i].Release()
	}
	g.scratch.Release()
	g.weights = nil
	g.biases = nil
}

func (g *Gradients) mustMatch(n *Network) {
	if g == nil || len(g.weights) != len(n.weights) {
		panic("nn: backprop: gradients were not created for this network")
	}
	for i := range n.weights {
		if !g.weights[i].Shape().Equal(n.weights[i].Shape()) {
			panic(fmt.Sprintf("nn: backprop: weight gradient %d is %v, parameters are %v",
				i, g.weights[i].Shape(), n.weights[i].Shape()))
		}
		if !g.biases[i].Shape().Equal(n.biases[i].Shape()) {
			panic(fmt.Sprintf("nn: backprop: bias gradient %d is %v, parameters are %v",
				i, g.biases[i].Shape(), n.biases[i].Shape()))
		}
	}
}
