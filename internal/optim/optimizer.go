// Package optim implements the parameter update rules used by the trainer.
//
// An Optimizer consumes the gradients accumulated by nn.Network.Backprop over
// one mini-batch and applies them to the network in place.
//
// Example usage:
//
//	opt := optim.NewSGD(optim.SGDConfig{LR: 3.0})
//	grads := nn.NewGradients(net)
//
//	for _, batch := range batches {
//	    grads.Zero()
//	    for _, ex := range batch {
//	        net.Backprop(ex, nn.Sigmoid, grads)
//	    }
//	    opt.Step(net, grads, len(batch))
//	}
package optim

import "github.com/born-ml/mlp/internal/nn"

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies the gradients summed over a batch of batchSize examples
	// to every parameter of net.
	Step(net *nn.Network, grads *nn.Gradients, batchSize int)

	// GetLR returns the current learning rate.
	GetLR() float32

	// SetLR updates the learning rate.
	SetLR(lr float32)
}

// Config is the base configuration for all optimizers.
type Config struct {
	LR float32 // Learning rate
}
