package nn

import "github.com/born-ml/mlp/internal/matrix"

// Backprop computes the gradient of the squared error ½Σ(a_L − target)² for one
// example, adds it into grads and returns the example's error.
//
// The forward sweep keeps every pre-activation z_i and activation a_i; the
// derivative is always taken on z. With δ_L = (a_L − target) ⊙ f'(z_L), each
// boundary i gets ∇b_i += δ_i and ∇W_i += δ_i·a_iᵗ, and the error moves back
// through δ_{i-1} = (W_iᵗ·δ_i) ⊙ f'(z_{i-1}).
//
// Every temporary is allocated in grads' scratch arena and released before
// Backprop returns.
func (n *Network) Backprop(ex Example, act Activation, grads *Gradients) float32 {
	n.checkInput("backprop", ex.Input)
	n.checkTarget("backprop", ex.Target)
	grads.mustMatch(n)
	f, df := act.Func(), act.DerivativeFunc()

	ar := grads.scratch
	defer ar.Release()

	last := len(n.weights) - 1
	zs := make([]*matrix.Matrix, len(n.weights))
	as := make([]*matrix.Matrix, len(n.weights)+1)
	as[0] = matrix.Wrap(len(ex.Input), 1, ex.Input)
	for i := range n.weights {
		z := ar.Mul(n.weights[i], as[i])
		matrix.AddInPlace(z, n.biases[i])
		zs[i] = z
		as[i+1] = ar.Apply(z, f)
	}

	target := matrix.Wrap(len(ex.Target), 1, ex.Target)
	loss := SquaredError(as[last+1], ex.Target)
	delta := ar.Sub(as[last+1], target)
	matrix.HadamardInPlace(delta, ar.Apply(zs[last], df))

	for i := last; i >= 0; i-- {
		if i < last {
			next := ar.Mul(ar.Transpose(n.weights[i+1]), delta)
			matrix.HadamardInPlace(next, ar.Apply(zs[i], df))
			delta = next
		}
		matrix.AddInPlace(grads.biases[i], delta)
		matrix.AddInPlace(grads.weights[i], ar.Mul(delta, ar.Transpose(as[i])))
	}
	return loss
}
