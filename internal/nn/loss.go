package nn

import (
	"fmt"

	"github.com/born-ml/mlp/internal/matrix"
)

// SquaredError returns ½Σ(output − target)², the loss Backprop differentiates.
func SquaredError(output *matrix.Matrix, target []float32) float32 {
	data := output.Data()
	if len(data) != len(target) {
		panic(fmt.Sprintf("nn: squared error: output has %d values, target %d", len(data), len(target)))
	}
	var sum float32
	for i, v := range data {
		d := v - target[i]
		sum += d * d
	}
	return sum / 2
}

// TotalError returns the summed squared error of the network over examples.
func (n *Network) TotalError(examples []Example, act Activation) float32 {
	n.mustLive("total error")
	var total float32
	for _, ex := range examples {
		n.checkTarget("total error", ex.Target)
		out := n.Forward(ex.Input, act)
		total += SquaredError(out, ex.Target)
		out.Release()
	}
	return total
}
