// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fully connected feedforward networks.
//
// # Overview
//
// This package contains:
//   - Network: layer sizes plus one weight matrix and bias column per boundary
//   - Activations: Sigmoid, Tanh, ReLU (function and derivative bound together)
//   - Forward inference and hand-derived backpropagation
//   - Initialization: LegacyUniform (default), Xavier
//   - Loss: SquaredError
//
// # Basic Usage
//
//	import (
//	    "math/rand"
//
//	    "github.com/born-ml/mlp/nn"
//	)
//
//	func main() {
//	    rng := rand.New(rand.NewSource(1))
//	    net, err := nn.NewNetwork([]int{784, 100, 10}, rng, nil)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer net.Release()
//
//	    out := net.Forward(pixels, nn.Sigmoid)
//	    defer out.Release()
//	}
//
// # Training
//
// Backprop adds one example's gradient into a Gradients value; the train
// package drives it over mini-batches and applies the optim updates.
package nn
