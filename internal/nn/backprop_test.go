package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/born-ml/mlp/internal/matrix"
)

// fixedNetwork returns a {2,3,1} network whose first-layer pre-activations for
// fixedInput all sit well away from zero.
func fixedNetwork(t *testing.T) *Network {
	t.Helper()
	net, err := FromParameters([]int{2, 3, 1},
		[]*matrix.Matrix{
			matrix.FromSlice(3, 2, []float32{0.5, -0.3, 0.8, 0.2, -0.4, 0.9}),
			matrix.FromSlice(1, 3, []float32{0.6, -0.5, 0.7}),
		},
		[]*matrix.Matrix{
			matrix.Column([]float32{0.1, -0.2, 0.3}),
			matrix.Column([]float32{0.05}),
		})
	require.NoError(t, err)
	return net
}

var fixedInput = []float32{0.7, 0.4}

// params flattens every weight then bias, boundary by boundary.
func params(n *Network) []float64 {
	var out []float64
	for i := 0; i < n.NumBoundaries(); i++ {
		for _, v := range n.Weights(i).Data() {
			out = append(out, float64(v))
		}
		for _, v := range n.Biases(i).Data() {
			out = append(out, float64(v))
		}
	}
	return out
}

func setParams(n *Network, x []float64) {
	k := 0
	for i := 0; i < n.NumBoundaries(); i++ {
		for _, m := range []*matrix.Matrix{n.Weights(i), n.Biases(i)} {
			data := m.Data()
			for j := range data {
				data[j] = float32(x[k])
				k++
			}
		}
	}
}

func flatGradients(g *Gradients) []float64 {
	var out []float64
	for i := 0; i < g.NumBoundaries(); i++ {
		for _, v := range g.Weights(i).Data() {
			out = append(out, float64(v))
		}
		for _, v := range g.Biases(i).Data() {
			out = append(out, float64(v))
		}
	}
	return out
}

func checkGradient(t *testing.T, net *Network, ex Example, act Activation) {
	t.Helper()
	grads := NewGradients(net)
	defer grads.Release()
	net.Backprop(ex, act, grads)
	analytic := flatGradients(grads)

	x := params(net)
	loss := func(p []float64) float64 {
		setParams(net, p)
		out := net.Forward(ex.Input, act)
		defer out.Release()
		return float64(SquaredError(out, ex.Target))
	}
	numeric := fd.Gradient(nil, loss, x, &fd.Settings{Formula: fd.Central, Step: 1e-3})
	setParams(net, x)

	require.Len(t, analytic, len(numeric))
	for i := range numeric {
		assert.InDelta(t, numeric[i], analytic[i], 1e-3, "%v: parameter %d", act, i)
	}
}

func TestBackprop_FiniteDifference(t *testing.T) {
	ex := Example{Input: fixedInput, Target: []float32{0.2}}
	for _, act := range []Activation{Sigmoid, Tanh, ReLU} {
		t.Run(act.String(), func(t *testing.T) {
			checkGradient(t, fixedNetwork(t), ex, act)
		})
	}
}

func TestBackprop_FiniteDifferenceRandom(t *testing.T) {
	// Smooth activations only; random weights may put a ReLU unit on its kink.
	rng := rand.New(rand.NewSource(2024))
	for _, act := range []Activation{Sigmoid, Tanh} {
		for trial := 0; trial < 5; trial++ {
			net, err := NewNetwork([]int{2, 3, 1}, rng, Xavier{})
			require.NoError(t, err)
			ex := Example{
				Input:  []float32{rng.Float32(), rng.Float32()},
				Target: []float32{rng.Float32()},
			}
			checkGradient(t, net, ex, act)
		}
	}
}

func TestBackprop_OutputLayerByHand(t *testing.T) {
	// {1,1}: z = w·x + b, a = σ(z), δ = (a − t)σ'(z), ∇W = δ·x, ∇b = δ.
	net, err := FromParameters([]int{1, 1},
		[]*matrix.Matrix{matrix.FromSlice(1, 1, []float32{0.5})},
		[]*matrix.Matrix{matrix.FromSlice(1, 1, []float32{0.25})})
	require.NoError(t, err)

	grads := NewGradients(net)
	loss := net.Backprop(Example{Input: []float32{2}, Target: []float32{0}}, Sigmoid, grads)

	z := float32(0.5*2 + 0.25)
	a := Sigmoid.Apply(z)
	assert.InDelta(t, 0.5*a*a, loss, 1e-7)
	delta := (a - 0) * Sigmoid.Derivative(z)
	assert.InDelta(t, delta, grads.Biases(0).At(0, 0), 1e-7)
	assert.InDelta(t, delta*2, grads.Weights(0).At(0, 0), 1e-7)
}

func TestBackprop_Accumulates(t *testing.T) {
	net := fixedNetwork(t)
	ex := Example{Input: fixedInput, Target: []float32{1}}

	once := NewGradients(net)
	net.Backprop(ex, Tanh, once)
	twice := NewGradients(net)
	net.Backprop(ex, Tanh, twice)
	net.Backprop(ex, Tanh, twice)

	doubled := NewGradients(net)
	doubled.Add(once)
	doubled.Add(once)
	for i := 0; i < net.NumBoundaries(); i++ {
		assert.True(t, twice.Weights(i).EqualApprox(doubled.Weights(i), 1e-6))
		assert.True(t, twice.Biases(i).EqualApprox(doubled.Biases(i), 1e-6))
	}

	twice.Zero()
	for i := 0; i < net.NumBoundaries(); i++ {
		assert.Zero(t, twice.Weights(i).Sum())
		assert.Zero(t, twice.Biases(i).Sum())
	}
}

func TestBackprop_ReleasesTemporaries(t *testing.T) {
	net, err := NewNetwork([]int{4, 6, 5, 3}, rand.New(rand.NewSource(8)), Xavier{})
	require.NoError(t, err)
	grads := NewGradients(net)
	ex := Example{Input: []float32{0.1, 0.2, 0.3, 0.4}, Target: []float32{0, 1, 0}}

	net.Backprop(ex, Sigmoid, grads)
	assert.Zero(t, grads.Scratch().Live())
	allocs, _ := grads.Scratch().Stats()

	net.Backprop(ex, Sigmoid, grads)
	assert.Zero(t, grads.Scratch().Live())
	allocsAgain, reused := grads.Scratch().Stats()
	assert.Equal(t, allocs, allocsAgain, "a second example reuses the first example's buffers")
	assert.Positive(t, reused)

	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, ex.Input, "input is only read")
}

func TestBackprop_Panics(t *testing.T) {
	net := fixedNetwork(t)
	grads := NewGradients(net)
	other, err := NewNetwork([]int{2, 4, 1}, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)

	assert.Panics(t, func() { net.Backprop(Example{Input: []float32{1}, Target: []float32{0}}, Sigmoid, grads) })
	assert.Panics(t, func() { net.Backprop(Example{Input: fixedInput, Target: []float32{0, 1}}, Sigmoid, grads) })
	assert.Panics(t, func() { net.Backprop(Example{Input: fixedInput, Target: []float32{0}}, Sigmoid, NewGradients(other)) })
	assert.Panics(t, func() { net.Backprop(Example{Input: fixedInput, Target: []float32{0}}, Sigmoid, nil) })
}

func TestBackprop_MismatchedBiasGradientPanics(t *testing.T) {
	net := fixedNetwork(t)
	grads := NewGradients(net)
	grads.biases[0].Release()
	grads.biases[0] = matrix.New(1, 1)

	assert.PanicsWithValue(t, "nn: backprop: bias gradient 0 is 1x1, parameters are 3x1", func() {
		net.Backprop(Example{Input: fixedInput, Target: []float32{0}}, Sigmoid, grads)
	})
}
