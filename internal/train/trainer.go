// Package train runs mini-batch stochastic gradient descent over a network.
package train

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/metrics"
	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
)

// Run trains net on examples for cfg.Epochs epochs.
//
// Each epoch shuffles a copy of examples, splits it into contiguous batches of
// cfg.BatchSize (the last one may be shorter), accumulates the gradients of
// every example in a batch and applies one optimizer step scaled by the
// batch's real length. The caller's slice is never reordered.
func Run(net *nn.Network, examples []nn.Example, cfg Config) (*Result, error) {
	if net == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "nil network")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(examples) == 0 {
		return nil, ErrNoExamples
	}

	opt := cfg.Optimizer
	if opt == nil {
		opt = optim.NewSGD(optim.SGDConfig{LR: cfg.LearningRate})
	}

	order := append([]nn.Example(nil), examples...)
	grads := nn.NewGradients(net)
	defer grads.Release()

	result := &Result{Epochs: make([]EpochReport, 0, cfg.Epochs)}
	var window metrics.Window

	for epoch := 1; epoch <= cfg.Epochs; epoch++ {
		shuffle(order, cfg.Shuffle, cfg.Rand)

		for start := 0; start < len(order); start += cfg.BatchSize {
			batch := order[start:min(start+cfg.BatchSize, len(order))]
			began := time.Now()

			grads.Zero()
			for _, ex := range batch {
				window.RecordLoss(float64(net.Backprop(ex, cfg.Activation, grads)))
			}
			opt.Step(net, grads, len(batch))

			window.Record(len(batch), time.Since(began))
		}

		snap := window.Snapshot()
		report := EpochReport{
			Epoch:          epoch,
			Total:          len(cfg.Test),
			Loss:           snap.MeanLoss,
			Duration:       snap.Duration,
			ExamplesPerSec: snap.ExamplesPerSec,
		}
		if len(cfg.Test) > 0 {
			report.Passed = Evaluate(net, cfg.Test, cfg.Activation)
			report.Evaluated = true
		}

		if cfg.Logger != nil {
			if report.Evaluated {
				cfg.Logger.Printf("Epoch %d complete. %d/%d passing", epoch, report.Passed, report.Total)
			} else {
				cfg.Logger.Printf("Epoch %d complete", epoch)
			}
		}
		if cfg.OnEpoch != nil {
			cfg.OnEpoch(report)
		}
		result.Epochs = append(result.Epochs, report)
	}

	return result, nil
}

// Evaluate returns how many tests the network classifies correctly.
func Evaluate(net *nn.Network, tests []nn.LabeledExample, act nn.Activation) int {
	passed := 0
	for _, tc := range tests {
		if net.Predict(tc.Input, act) == tc.Label {
			passed++
		}
	}
	return passed
}

func shuffle(examples []nn.Example, mode ShuffleMode, rng *rand.Rand) {
	switch mode {
	case ShuffleFisherYates:
		rng.Shuffle(len(examples), func(i, j int) {
			examples[i], examples[j] = examples[j], examples[i]
		})
	case ShuffleLegacy:
		n := len(examples)
		for i := 0; i < n; i++ {
			j := rng.Intn(n)
			examples[i], examples[j] = examples[j], examples[i]
		}
	case ShuffleNone:
	}
}
