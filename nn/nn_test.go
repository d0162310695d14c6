package nn_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/mlp/nn"
	"github.com/born-ml/mlp/optim"
	"github.com/born-ml/mlp/train"
)

func TestPublicAPI_TrainXOR(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	net, err := nn.NewNetwork([]int{2, 4, 1}, rng, nn.Xavier{})
	require.NoError(t, err)
	defer net.Release()

	examples := []nn.Example{
		{Input: []float32{0, 0}, Target: []float32{0}},
		{Input: []float32{0, 1}, Target: []float32{1}},
		{Input: []float32{1, 0}, Target: []float32{1}},
		{Input: []float32{1, 1}, Target: []float32{0}},
	}
	before := net.TotalError(examples, nn.Sigmoid)

	res, err := train.Run(net, examples, train.Config{
		Epochs:     2000,
		BatchSize:  4,
		Activation: nn.Sigmoid,
		Rand:       rng,
		Optimizer:  optim.NewSGD(optim.SGDConfig{LR: 2}),
	})
	require.NoError(t, err)
	require.Len(t, res.Epochs, 2000)

	after := net.TotalError(examples, nn.Sigmoid)
	assert.Less(t, after, before)
}

func TestPublicAPI_Parse(t *testing.T) {
	act, err := nn.ParseActivation("tanh")
	require.NoError(t, err)
	assert.Equal(t, nn.Tanh, act)

	_, err = nn.ParseActivation("softmax")
	assert.True(t, errors.Is(err, nn.ErrUnknownActivation))

	init, err := nn.ParseInitializer("glorot")
	require.NoError(t, err)
	assert.Equal(t, "xavier", init.Name())
}

func TestPublicAPI_InvalidSizes(t *testing.T) {
	_, err := nn.NewNetwork([]int{3}, rand.New(rand.NewSource(1)), nil)
	assert.ErrorIs(t, err, nn.ErrInvalidSizes)
}
