package nn

import "github.com/born-ml/mlp/internal/matrix"

// Forward runs input through the network and returns the output column
// (OutputSize()×1), computing a' = f(W·a + b) layer by layer.
//
// The input is wrapped, not copied. Intermediate activations are released as
// soon as the next one is built; the returned matrix belongs to the caller.
func (n *Network) Forward(input []float32, act Activation) *matrix.Matrix {
	n.checkInput("forward", input)
	f := act.Func()

	ar := matrix.NewArena()
	defer ar.Release()

	a := matrix.Wrap(len(input), 1, input)
	for i := range n.weights {
		z := ar.Mul(n.weights[i], a)
		matrix.AddInPlace(z, n.biases[i])
		matrix.ApplyInPlace(z, f)
		a.Release()
		a = z
	}
	return ar.Keep(a)
}

// Predict returns the index of the largest output unit for input.
func (n *Network) Predict(input []float32, act Activation) int {
	out := n.Forward(input, act)
	defer out.Release()
	return matrix.ArgMax(out)
}
