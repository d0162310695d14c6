// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train runs mini-batch stochastic gradient descent over a network.
//
// # Basic Usage
//
//	rng := rand.New(rand.NewSource(1))
//	net, _ := nn.NewNetwork([]int{784, 100, 10}, rng, nil)
//
//	res, err := train.Run(net, examples, train.Config{
//	    Epochs:       30,
//	    BatchSize:    10,
//	    LearningRate: 1.0,
//	    Activation:   nn.Sigmoid,
//	    Test:         tests,
//	    Rand:         rng,
//	    Logger:       log.Default(),
//	})
package train

import (
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/train"
)

// Config holds the hyperparameters of a training run.
type Config = train.Config

// EpochReport summarizes one training epoch.
type EpochReport = train.EpochReport

// Result holds the reports of every epoch of a run.
type Result = train.Result

// ShuffleMode selects how the training set is reordered each epoch.
type ShuffleMode = train.ShuffleMode

// Shuffle modes.
const (
	ShuffleFisherYates = train.ShuffleFisherYates
	ShuffleLegacy      = train.ShuffleLegacy
	ShuffleNone        = train.ShuffleNone
)

// Common errors.
var (
	ErrInvalidConfig = train.ErrInvalidConfig
	ErrNoExamples    = train.ErrNoExamples
)

// Run trains net on examples.
func Run(net *nn.Network, examples []nn.Example, cfg Config) (*Result, error) {
	return train.Run(net, examples, cfg)
}

// Evaluate returns how many tests the network classifies correctly.
func Evaluate(net *nn.Network, tests []nn.LabeledExample, act nn.Activation) int {
	return train.Evaluate(net, tests, act)
}

// ParseShuffleMode returns the mode with the given name.
func ParseShuffleMode(s string) (ShuffleMode, error) { return train.ParseShuffleMode(s) }
