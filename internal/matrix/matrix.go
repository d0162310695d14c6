// Package matrix implements the dense float32 matrix kernel used by the network,
// its trainer and the text persistence format.
//
// A Matrix either owns its buffer or is a view over caller memory created with
// Wrap. Release gives an owned buffer back (to its Arena when it has one) and
// never touches memory the matrix does not own.
package matrix

import (
	"fmt"
	"math"
	"strings"
)

// Matrix is a row-major dense buffer of float32 values.
type Matrix struct {
	data     []float32
	shape    Shape
	view     bool   // buffer belongs to the caller
	released bool   // Release was called
	arena    *Arena // owning arena, nil for free-standing matrices
}

// New creates a zero-filled matrix that owns its buffer.
//
// Panics if rows or cols is not positive.
func New(rows, cols int) *Matrix {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("matrix: new: %v", err))
	}
	return &Matrix{
		data:  make([]float32, shape.NumElements()),
		shape: shape,
	}
}

// Wrap creates a non-owning view over buf without copying it.
//
// The caller keeps ownership of buf: writes through the view are visible to the
// caller and Release never recycles it. Panics unless len(buf) == rows*cols.
func Wrap(rows, cols int, buf []float32) *Matrix {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("matrix: wrap: %v", err))
	}
	if len(buf) != shape.NumElements() {
		panic(fmt.Sprintf("matrix: wrap: buffer length %d does not match %v", len(buf), shape))
	}
	return &Matrix{
		data:  buf,
		shape: shape,
		view:  true,
	}
}

// FromSlice creates an owned matrix holding a copy of vals.
func FromSlice(rows, cols int, vals []float32) *Matrix {
	m := New(rows, cols)
	if len(vals) != len(m.data) {
		panic(fmt.Sprintf("matrix: from slice: %d values for %v", len(vals), m.shape))
	}
	copy(m.data, vals)
	return m
}

// Column creates an owned n×1 column vector holding a copy of vals.
func Column(vals []float32) *Matrix {
	return FromSlice(len(vals), 1, vals)
}

// Identity creates an n×n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

func (m *Matrix) mustLive(op string) {
	if m == nil {
		panic(fmt.Sprintf("matrix: %s: nil matrix", op))
	}
	if m.released {
		panic(fmt.Sprintf("matrix: %s: use of released matrix", op))
	}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.shape.Rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.shape.Cols }

// Shape returns the matrix dimensions.
func (m *Matrix) Shape() Shape { return m.shape }

// Len returns Rows*Cols.
func (m *Matrix) Len() int { return m.shape.NumElements() }

// Owned reports whether the matrix owns its buffer.
func (m *Matrix) Owned() bool { return !m.view }

// Released reports whether Release has been called.
func (m *Matrix) Released() bool { return m.released }

// Data returns the underlying row-major buffer.
// WARNING: writes go straight to the matrix (and to the caller's memory for views).
func (m *Matrix) Data() []float32 {
	m.mustLive("data")
	return m.data
}

// At returns the element at (row, col).
func (m *Matrix) At(row, col int) float32 {
	m.mustLive("at")
	m.checkIndex("at", row, col)
	return m.data[row*m.shape.Cols+col]
}

// Set stores v at (row, col).
func (m *Matrix) Set(row, col int, v float32) {
	m.mustLive("set")
	m.checkIndex("set", row, col)
	m.data[row*m.shape.Cols+col] = v
}

func (m *Matrix) checkIndex(op string, row, col int) {
	if row < 0 || row >= m.shape.Rows || col < 0 || col >= m.shape.Cols {
		panic(fmt.Sprintf("matrix: %s: index (%d,%d) out of range for %v", op, row, col, m.shape))
	}
}

// Copy returns an owned deep copy, whether m is owned or a view.
func (m *Matrix) Copy() *Matrix {
	m.mustLive("copy")
	out := New(m.shape.Rows, m.shape.Cols)
	copy(out.data, m.data)
	return out
}

// Release drops the matrix buffer.
//
// Owned buffers allocated by an Arena return to its free list. Views only
// forget the caller's buffer. Releasing nil or an already released matrix is a no-op.
func (m *Matrix) Release() {
	if m == nil || m.released {
		return
	}
	if !m.view && m.arena != nil {
		m.arena.recycle(m)
	}
	m.data = nil
	m.released = true
}

// Zero sets every element to 0.
func (m *Matrix) Zero() {
	m.Fill(0)
}

// Fill sets every element to v.
func (m *Matrix) Fill(v float32) {
	m.mustLive("fill")
	for i := range m.data {
		m.data[i] = v
	}
}

// Sum returns the sum of all elements.
func (m *Matrix) Sum() float32 {
	m.mustLive("sum")
	var s float32
	for _, v := range m.data {
		s += v
	}
	return s
}

// Equal reports whether both matrices have the same shape and identical elements.
func (m *Matrix) Equal(other *Matrix) bool {
	m.mustLive("equal")
	other.mustLive("equal")
	if !m.shape.Equal(other.shape) {
		return false
	}
	for i, v := range m.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// EqualApprox is Equal with an absolute tolerance per element.
func (m *Matrix) EqualApprox(other *Matrix, tol float32) bool {
	m.mustLive("equal")
	other.mustLive("equal")
	if !m.shape.Equal(other.shape) {
		return false
	}
	for i, v := range m.data {
		if math.Abs(float64(other.data[i]-v)) > float64(tol) {
			return false
		}
	}
	return true
}

// String renders the matrix the same way Print does.
func (m *Matrix) String() string {
	if m == nil || m.released {
		return "matrix(released)"
	}
	var sb strings.Builder
	if err := Print(&sb, m); err != nil {
		return fmt.Sprintf("matrix(%v): %v", m.shape, err)
	}
	return sb.String()
}
