package train

import (
	"log"
	"math/rand"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/nn"
	"github.com/born-ml/mlp/internal/optim"
)

// Common errors.
var (
	ErrInvalidConfig = errors.New("invalid training config")
	ErrNoExamples    = errors.New("no training examples")
)

// ShuffleMode selects how the training set is reordered at the start of each epoch.
type ShuffleMode int

const (
	// ShuffleFisherYates draws a uniformly random permutation.
	ShuffleFisherYates ShuffleMode = iota
	// ShuffleLegacy swaps every position with an index drawn from the whole
	// range. The resulting permutations are not uniform; the mode exists to
	// reproduce runs made with earlier releases.
	ShuffleLegacy
	// ShuffleNone keeps the input order.
	ShuffleNone
)

var shuffleNames = [...]string{
	ShuffleFisherYates: "fisher-yates",
	ShuffleLegacy:      "legacy",
	ShuffleNone:        "none",
}

// String returns the mode name used in config files.
func (m ShuffleMode) String() string {
	if m < 0 || int(m) >= len(shuffleNames) {
		return "unknown"
	}
	return shuffleNames[m]
}

// ParseShuffleMode returns the mode named by s. The empty string selects
// ShuffleFisherYates.
func ParseShuffleMode(s string) (ShuffleMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" || name == "uniform" {
		return ShuffleFisherYates, nil
	}
	for i, n := range shuffleNames {
		if n == name {
			return ShuffleMode(i), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "unknown shuffle mode %q", s)
}

// Config holds the hyperparameters of a training run.
type Config struct {
	Epochs       int
	BatchSize    int
	LearningRate float32
	Activation   nn.Activation

	// Test, when non-empty, is evaluated after every epoch.
	Test []nn.LabeledExample

	// Rand drives the per-epoch shuffle. Required.
	Rand    *rand.Rand
	Shuffle ShuffleMode

	// Optimizer overrides the default plain SGD with LearningRate.
	Optimizer optim.Optimizer

	// Logger receives one line per epoch. Nil means silent.
	Logger *log.Logger

	// OnEpoch, if set, is called with every epoch's report.
	OnEpoch func(EpochReport)
}

// Validate verifies the config is runnable.
func (c *Config) Validate() error {
	if c.Epochs <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.BatchSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "batch size must be > 0 (got %d)", c.BatchSize)
	}
	if c.LearningRate <= 0 && c.Optimizer == nil {
		return errors.Wrapf(ErrInvalidConfig, "learning rate must be > 0 (got %g)", c.LearningRate)
	}
	if !c.Activation.Valid() {
		return errors.Wrapf(ErrInvalidConfig, "unknown activation %d", int(c.Activation))
	}
	if c.Rand == nil && c.Shuffle != ShuffleNone {
		return errors.Wrap(ErrInvalidConfig, "random source is required for shuffling")
	}
	if c.Shuffle < ShuffleFisherYates || c.Shuffle > ShuffleNone {
		return errors.Wrapf(ErrInvalidConfig, "unknown shuffle mode %d", int(c.Shuffle))
	}
	return nil
}
