package optim

import (
	"fmt"

	"github.com/born-ml/mlp/internal/matrix"
	"github.com/born-ml/mlp/internal/nn"
)

// SGD implements plain mini-batch Stochastic Gradient Descent.
//
// Gradients arrive summed over the batch, so each update uses their mean:
//
//	param = param - (lr / batchSize) * gradient
//
// Example:
//
//	optimizer := optim.NewSGD(optim.SGDConfig{LR: 0.5})
//	optimizer.Step(net, grads, len(batch))
type SGD struct {
	lr float32
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig struct {
	LR float32 // Learning rate (default: 0.01)
}

// NewSGD creates a new SGD optimizer.
func NewSGD(config SGDConfig) *SGD {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD{lr: config.LR}
}

// Step performs a single optimization step for a batch of batchSize examples.
func (s *SGD) Step(net *nn.Network, grads *nn.Gradients, batchSize int) {
	if batchSize <= 0 {
		panic(fmt.Sprintf("optim: sgd step: batch size %d", batchSize))
	}
	if grads.NumBoundaries() != net.NumBoundaries() {
		panic(fmt.Sprintf("optim: sgd step: %d gradient boundaries for %d network boundaries",
			grads.NumBoundaries(), net.NumBoundaries()))
	}

	k := s.lr / float32(batchSize)
	for i := 0; i < net.NumBoundaries(); i++ {
		updateParameter(net.Weights(i), grads.Weights(i), k)
		updateParameter(net.Biases(i), grads.Biases(i), k)
	}
}

// updateParameter performs param -= k * grad in place.
func updateParameter(param, grad *matrix.Matrix, k float32) {
	if !param.Shape().Equal(grad.Shape()) {
		panic(fmt.Sprintf("optim: sgd step: gradient %v for parameter %v", grad.Shape(), param.Shape()))
	}
	p, g := param.Data(), grad.Data()
	for j := range p {
		p[j] -= k * g[j]
	}
}

// GetLR returns the current learning rate.
func (s *SGD) GetLR() float32 {
	return s.lr
}

// SetLR updates the learning rate.
//
// Useful for learning rate scheduling during training.
func (s *SGD) SetLR(lr float32) {
	s.lr = lr
}
