package nn

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForward_ByHand(t *testing.T) {
	net := fixedNetwork(t)
	out := net.Forward(fixedInput, ReLU)
	defer out.Release()

	// hidden = relu([0.33, 0.44, 0.38]); out = relu(0.6·0.33 − 0.5·0.44 + 0.7·0.38 + 0.05)
	require.Equal(t, 1, out.Rows())
	require.Equal(t, 1, out.Cols())
	assert.InDelta(t, 0.294, out.At(0, 0), 1e-5)
	assert.True(t, out.Owned())
}

func TestForward_Deterministic(t *testing.T) {
	net, err := NewNetwork([]int{5, 8, 3}, rand.New(rand.NewSource(3)), Xavier{})
	require.NoError(t, err)
	in := []float32{0.1, -0.4, 0.9, 0.0, 0.3}

	first := net.Forward(in, Tanh)
	second := net.Forward(in, Tanh)
	assert.True(t, first.Equal(second))
	assert.Equal(t, []float32{0.1, -0.4, 0.9, 0.0, 0.3}, in)
}

func TestForward_WrongInputPanics(t *testing.T) {
	net := fixedNetwork(t)
	assert.Panics(t, func() { net.Forward([]float32{1, 2, 3}, Sigmoid) })
	assert.Panics(t, func() { net.Forward(nil, Sigmoid) })
}

func TestPredict(t *testing.T) {
	net, err := NewNetwork([]int{2, 3}, rand.New(rand.NewSource(1)), nil)
	require.NoError(t, err)
	net.Weights(0).Zero()
	net.Biases(0).Data()[2] = 1

	assert.Equal(t, 2, net.Predict([]float32{0.5, 0.5}, Sigmoid))
}

func TestSquaredError(t *testing.T) {
	net := fixedNetwork(t)
	out := net.Forward(fixedInput, ReLU)
	assert.InDelta(t, 0.5*(0.294-0.2)*(0.294-0.2), SquaredError(out, []float32{0.2}), 1e-6)
	assert.Panics(t, func() { SquaredError(out, []float32{1, 2}) })

	examples := []Example{
		{Input: fixedInput, Target: []float32{0.2}},
		{Input: fixedInput, Target: []float32{0.294}},
	}
	assert.InDelta(t, 0.5*0.094*0.094, net.TotalError(examples, ReLU), 1e-5)
}
