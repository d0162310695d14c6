package nn

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Activation selects the elementwise nonlinearity of every layer.
//
// Each value binds the function and its derivative together, so the forward
// pass and the backward pass can never disagree about which pair is in use.
// The derivative is always evaluated on the pre-activation z.
type Activation int

// Supported activations.
const (
	Sigmoid Activation = iota // σ(x) = 1 / (1 + exp(-x))
	Tanh                      // tanh(x)
	ReLU                      // max(0, x)
)

type activationPair struct {
	name       string
	fn         func(float32) float32
	derivative func(float32) float32
}

var activations = [...]activationPair{
	Sigmoid: {"sigmoid", sigmoid, sigmoidPrime},
	Tanh:    {"tanh", math32.Tanh, tanhPrime},
	ReLU:    {"relu", relu, reluPrime},
}

func sigmoid(x float32) float32 {
	return 1 / (1 + math32.Exp(-x))
}

// sigmoidPrime is σ(z)(1 − σ(z)).
func sigmoidPrime(z float32) float32 {
	s := sigmoid(z)
	return s * (1 - s)
}

// tanhPrime is 1 − tanh(z)².
func tanhPrime(z float32) float32 {
	t := math32.Tanh(z)
	return 1 - t*t
}

func relu(x float32) float32 {
	if x < 0 {
		return 0
	}
	return x
}

// reluPrime treats the kink at zero as part of the active side: 1 for z >= 0.
func reluPrime(z float32) float32 {
	if z >= 0 {
		return 1
	}
	return 0
}

func (a Activation) pair() activationPair {
	if !a.Valid() {
		panic(fmt.Sprintf("nn: unknown activation %d", int(a)))
	}
	return activations[a]
}

// Valid reports whether a is one of the supported activations.
func (a Activation) Valid() bool {
	return a >= Sigmoid && a <= ReLU
}

// Apply evaluates the activation at x.
func (a Activation) Apply(x float32) float32 {
	return a.pair().fn(x)
}

// Derivative evaluates the activation's derivative at the pre-activation z.
func (a Activation) Derivative(z float32) float32 {
	return a.pair().derivative(z)
}

// Func returns the activation as a plain function, for matrix.Apply.
func (a Activation) Func() func(float32) float32 {
	return a.pair().fn
}

// DerivativeFunc returns the derivative as a plain function, for matrix.Apply.
func (a Activation) DerivativeFunc() func(float32) float32 {
	return a.pair().derivative
}

// String returns the lowercase activation name.
func (a Activation) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Activation(%d)", int(a))
	}
	return activations[a].name
}

// ParseActivation returns the activation named by s (case-insensitive).
func ParseActivation(s string) (Activation, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, p := range activations {
		if p.name == name {
			return Activation(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownActivation, "%q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Activation) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, errors.Wrapf(ErrUnknownActivation, "%d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Activation) UnmarshalText(text []byte) error {
	parsed, err := ParseActivation(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
