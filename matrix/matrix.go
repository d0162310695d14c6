// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"io"

	"github.com/born-ml/mlp/internal/matrix"
)

// Matrix is a dense row-major float32 matrix.
type Matrix = matrix.Matrix

// Shape holds the dimensions of a matrix.
type Shape = matrix.Shape

// Arena tracks the temporaries of one computation.
type Arena = matrix.Arena

// Encoder writes matrices in the text format.
type Encoder = matrix.Encoder

// Decoder reads matrices in the text format.
type Decoder = matrix.Decoder

// Text format errors.
var (
	ErrMalformed    = matrix.ErrMalformed
	ErrTruncated    = matrix.ErrTruncated
	ErrInvalidShape = matrix.ErrInvalidShape
)

// Creation

// New creates a zero-filled rows×cols matrix.
func New(rows, cols int) *Matrix { return matrix.New(rows, cols) }

// Wrap creates a view over buf without copying.
func Wrap(rows, cols int, buf []float32) *Matrix { return matrix.Wrap(rows, cols, buf) }

// FromSlice creates an owned copy of vals.
func FromSlice(rows, cols int, vals []float32) *Matrix { return matrix.FromSlice(rows, cols, vals) }

// Column creates an owned column vector.
func Column(vals []float32) *Matrix { return matrix.Column(vals) }

// Identity creates an n×n identity matrix.
func Identity(n int) *Matrix { return matrix.Identity(n) }

// NewArena creates an empty arena.
func NewArena() *Arena { return matrix.NewArena() }

// Operations

// Add returns a + b.
func Add(a, b *Matrix) *Matrix { return matrix.Add(a, b) }

// Sub returns a - b.
func Sub(a, b *Matrix) *Matrix { return matrix.Sub(a, b) }

// Hadamard returns the elementwise product a ⊙ b.
func Hadamard(a, b *Matrix) *Matrix { return matrix.Hadamard(a, b) }

// Scale returns k·m.
func Scale(m *Matrix, k float32) *Matrix { return matrix.Scale(m, k) }

// AddInPlace computes dst += src.
func AddInPlace(dst, src *Matrix) { matrix.AddInPlace(dst, src) }

// SubInPlace computes dst -= src.
func SubInPlace(dst, src *Matrix) { matrix.SubInPlace(dst, src) }

// HadamardInPlace computes dst ⊙= src.
func HadamardInPlace(dst, src *Matrix) { matrix.HadamardInPlace(dst, src) }

// ScaleInPlace computes m *= k.
func ScaleInPlace(m *Matrix, k float32) { matrix.ScaleInPlace(m, k) }

// Mul returns the matrix product a·b.
func Mul(a, b *Matrix) *Matrix { return matrix.Mul(a, b) }

// Transpose returns mᵗ.
func Transpose(m *Matrix) *Matrix { return matrix.Transpose(m) }

// Apply returns f applied to every element of m.
func Apply(m *Matrix, f func(float32) float32) *Matrix { return matrix.Apply(m, f) }

// ApplyInPlace applies f to every element of m.
func ApplyInPlace(m *Matrix, f func(float32) float32) { matrix.ApplyInPlace(m, f) }

// ArgMax returns the flat index of the largest element (first on ties).
func ArgMax(m *Matrix) int { return matrix.ArgMax(m) }

// I/O

// WriteText writes m in the text format.
func WriteText(w io.Writer, m *Matrix) error { return matrix.WriteText(w, m) }

// ReadText reads one matrix in the text format.
func ReadText(r io.Reader) (*Matrix, error) { return matrix.ReadText(r) }

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder { return matrix.NewEncoder(w) }

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder { return matrix.NewDecoder(r) }

// Print writes m as a human-readable grid.
func Print(w io.Writer, m *Matrix) error { return matrix.Print(w, m) }
