// Package dataset loads training and test examples from disk.
//
// Three formats are supported: the flat whitespace-separated float format
// (LoadFlat, LoadFlatLabeled), the MNIST IDX binary format (LoadIDX) and
// Kaggle-style CSV (LoadCSV). Every loader returns a Set whose input slices
// are owned by the Set; the network wraps them without copying.
package dataset

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/born-ml/mlp/internal/nn"
)

// Set holds a loaded dataset.
type Set struct {
	Inputs [][]float32

	// Targets holds full target vectors when the source provides them.
	Targets [][]float32

	// Labels holds class indices. When Targets is set, Labels is derived from it.
	Labels []int
}

// NumSamples returns the total number of samples in the dataset.
func (s *Set) NumSamples() int {
	return len(s.Inputs)
}

// NumClasses returns one more than the largest label.
func (s *Set) NumClasses() int {
	if len(s.Labels) == 0 {
		return 0
	}
	return lo.Max(s.Labels) + 1
}

// Examples returns training examples. Targets are used as-is when present;
// otherwise each label becomes a one-hot vector of width nOut.
func (s *Set) Examples(nOut int) []nn.Example {
	if s.Targets != nil {
		return lo.Map(s.Inputs, func(in []float32, i int) nn.Example {
			return nn.Example{Input: in, Target: s.Targets[i]}
		})
	}
	return lo.Map(s.Inputs, func(in []float32, i int) nn.Example {
		return nn.Example{Input: in, Target: OneHot(s.Labels[i], nOut)}
	})
}

// Labeled returns evaluation examples.
func (s *Set) Labeled() []nn.LabeledExample {
	return lo.Map(s.Inputs, func(in []float32, i int) nn.LabeledExample {
		return nn.LabeledExample{Input: in, Label: s.Labels[i]}
	})
}

// Split splits the dataset into train and validation sets.
//
// The first (1 - validationRatio) of the samples go to the training set. Both
// halves share storage with s.
func (s *Set) Split(validationRatio float32) (*Set, *Set) {
	if validationRatio < 0 || validationRatio > 1 {
		panic(fmt.Sprintf("dataset: split: ratio %v outside [0,1]", validationRatio))
	}
	splitIdx := int(float32(s.NumSamples()) * (1.0 - validationRatio))

	train := &Set{Inputs: s.Inputs[:splitIdx], Labels: s.Labels[:splitIdx]}
	val := &Set{Inputs: s.Inputs[splitIdx:], Labels: s.Labels[splitIdx:]}
	if s.Targets != nil {
		train.Targets = s.Targets[:splitIdx]
		val.Targets = s.Targets[splitIdx:]
	}
	return train, val
}

// Limit returns the first n samples, or s itself when n <= 0 or n covers
// the whole set.
func (s *Set) Limit(n int) *Set {
	if n <= 0 || n >= s.NumSamples() {
		return s
	}
	out := &Set{Inputs: s.Inputs[:n], Labels: s.Labels[:n]}
	if s.Targets != nil {
		out.Targets = s.Targets[:n]
	}
	return out
}

// OneHot returns a vector of width n with a 1 at label.
func OneHot(label, n int) []float32 {
	if label < 0 || label >= n {
		panic(fmt.Sprintf("dataset: one-hot: label %d outside [0,%d)", label, n))
	}
	v := make([]float32, n)
	v[label] = 1
	return v
}

func argMax(v []float32) int {
	best := 0
	for i, x := range v {
		if x > v[best] {
			best = i
		}
	}
	return best
}
