// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

// Network is a fully connected feedforward network.
type Network = nn.Network

// Gradients accumulates parameter gradients over a batch.
type Gradients = nn.Gradients

// Example is a training example with a full target vector.
type Example = nn.Example

// LabeledExample is an evaluation example with an expected class index.
type LabeledExample = nn.LabeledExample

// Common errors.
var (
	ErrInvalidSizes       = nn.ErrInvalidSizes
	ErrShapeMismatch      = nn.ErrShapeMismatch
	ErrUnknownActivation  = nn.ErrUnknownActivation
	ErrUnknownInitializer = nn.ErrUnknownInitializer
)

// NewNetwork creates a network with the given layer sizes. A nil init
// selects LegacyUniform.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	net, err := nn.NewNetwork([]int{2, 4, 1}, rng, nn.Xavier{})
func NewNetwork(sizes []int, rng *rand.Rand, init Initializer) (*Network, error) {
	return nn.NewNetwork(sizes, rng, init)
}

// FromParameters assembles a network from existing weight and bias matrices.
func FromParameters(sizes []int, weights, biases []*matrix.Matrix) (*Network, error) {
	return nn.FromParameters(sizes, weights, biases)
}

// NewGradients allocates zeroed gradients shaped like net's parameters.
func NewGradients(net *Network) *Gradients { return nn.NewGradients(net) }

// FromTarget converts the single-value target convention into a LabeledExample.
func FromTarget(input, target []float32) LabeledExample { return nn.FromTarget(input, target) }

// SquaredError returns ½Σ(output − target)².
func SquaredError(output *matrix.Matrix, target []float32) float32 {
	return nn.SquaredError(output, target)
}

// Activations

// Activation selects the nonlinearity applied by every layer.
type Activation = nn.Activation

// Supported activations.
const (
	Sigmoid = nn.Sigmoid
	Tanh    = nn.Tanh
	ReLU    = nn.ReLU
)

// ParseActivation returns the activation with the given name.
func ParseActivation(s string) (Activation, error) { return nn.ParseActivation(s) }

// Initialization

// Initializer fills the parameters of a new network.
type Initializer = nn.Initializer

// LegacyUniform draws every parameter from U[0, 1)/100.
type LegacyUniform = nn.LegacyUniform

// Xavier draws weights from the Glorot uniform range and zeroes biases.
type Xavier = nn.Xavier

// ParseInitializer returns the initializer with the given name.
func ParseInitializer(s string) (Initializer, error) { return nn.ParseInitializer(s) }
