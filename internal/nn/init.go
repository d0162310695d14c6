package nn

import (
	"math"
	"math/rand"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/mlp/internal/matrix"
)

// Initializer fills the parameters of one layer boundary.
//
// NewNetwork visits the boundaries in order and, within a boundary, initializes
// the biases before the weights, so a given seed always yields the same network.
type Initializer interface {
	InitBiases(b *matrix.Matrix, rng *rand.Rand)
	InitWeights(w *matrix.Matrix, fanIn, fanOut int, rng *rand.Rand)
	Name() string
}

// LegacyUniform draws every weight and bias from U[0, 1)/100.
//
// All values are small and positive. This is the default and reproduces the
// behavior of networks trained by earlier releases of this package.
type LegacyUniform struct{}

// InitBiases implements Initializer.
func (LegacyUniform) InitBiases(b *matrix.Matrix, rng *rand.Rand) {
	fillLegacy(b.Data(), rng)
}

// InitWeights implements Initializer.
func (LegacyUniform) InitWeights(w *matrix.Matrix, _, _ int, rng *rand.Rand) {
	fillLegacy(w.Data(), rng)
}

// Name implements Initializer.
func (LegacyUniform) Name() string { return "legacy" }

func fillLegacy(data []float32, rng *rand.Rand) {
	for i := range data {
		data[i] = rng.Float32() / 100
	}
}

// Xavier (Glorot) initialization for weights.
//
// Weights are drawn from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))),
// which keeps the variance of activations roughly constant across layers.
// Biases start at zero.
type Xavier struct{}

// InitBiases implements Initializer.
func (Xavier) InitBiases(b *matrix.Matrix, _ *rand.Rand) {
	b.Zero()
}

// InitWeights implements Initializer.
func (Xavier) InitWeights(w *matrix.Matrix, fanIn, fanOut int, rng *rand.Rand) {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	data := w.Data()
	for i := range data {
		data[i] = float32((rng.Float64()*2.0 - 1.0) * bound)
	}
}

// Name implements Initializer.
func (Xavier) Name() string { return "xavier" }

// ParseInitializer returns the initializer named by s. The empty string selects
// LegacyUniform.
func ParseInitializer(s string) (Initializer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "legacy", "uniform":
		return LegacyUniform{}, nil
	case "xavier", "glorot":
		return Xavier{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownInitializer, "%q", s)
	}
}
