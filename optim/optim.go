// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the parameter update rules used during training.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/mlp/nn"
//	    "github.com/born-ml/mlp/optim"
//	)
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 3.0})
//	grads := nn.NewGradients(net)
//
//	grads.Zero()
//	for _, ex := range batch {
//	    net.Backprop(ex, nn.Sigmoid, grads)
//	}
//	opt.Step(net, grads, len(batch))
package optim

import "github.com/born-ml/mlp/internal/optim"

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Config represents the base configuration for optimizers.
type Config = optim.Config

// SGD (Stochastic Gradient Descent)

// SGD represents the plain mini-batch SGD optimizer.
type SGD = optim.SGD

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig = optim.SGDConfig

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.5})
func NewSGD(config SGDConfig) *SGD {
	return optim.NewSGD(config)
}
