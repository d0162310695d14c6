package nn

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Example is a training example: an input vector and the full target vector
// the output layer should produce.
type Example struct {
	Input  []float32
	Target []float32
}

// LabeledExample is an evaluation example: an input vector and the index of
// the output unit expected to be the largest.
type LabeledExample struct {
	Input []float32
	Label int
}

// FromTarget converts an example written in the single-value convention, where
// target[0] holds the class index, into a LabeledExample.
//
// Panics unless target[0] is a non-negative whole number.
func FromTarget(input, target []float32) LabeledExample {
	if len(target) == 0 {
		panic("nn: from target: empty target")
	}
	v := target[0]
	if !(v >= 0) || v != math32.Trunc(v) || v > math32.MaxInt32 {
		panic(fmt.Sprintf("nn: from target: %v is not a class index", v))
	}
	return LabeledExample{Input: input, Label: int(v)}
}

// Labeled converts a training example into an evaluation example whose label is
// the arg-max of its target vector.
func (e Example) Labeled() LabeledExample {
	if len(e.Target) == 0 {
		panic("nn: labeled: empty target")
	}
	best := 0
	for i, v := range e.Target {
		if v > e.Target[best] {
			best = i
		}
	}
	return LabeledExample{Input: e.Input, Label: best}
}

func (n *Network) checkTarget(op string, target []float32) {
	if out := n.sizes[len(n.sizes)-1]; len(target) != out {
		panic(fmt.Sprintf("nn: %s: target has %d values, network outputs %d", op, len(target), out))
	}
}
