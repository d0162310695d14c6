package matrix

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func toDense(m *Matrix) *mat.Dense {
	vals := make([]float64, m.Len())
	for i, v := range m.Data() {
		vals[i] = float64(v)
	}
	return mat.NewDense(m.Rows(), m.Cols(), vals)
}

func TestElementwiseOps(t *testing.T) {
	a := FromSlice(2, 2, []float32{1, 2, 3, 4})
	b := FromSlice(2, 2, []float32{0.5, -1, 2, 0})

	assert.Equal(t, []float32{1.5, 1, 5, 4}, Add(a, b).Data())
	assert.Equal(t, []float32{0.5, 3, 1, 4}, Sub(a, b).Data())
	assert.Equal(t, []float32{0.5, -2, 6, 0}, Hadamard(a, b).Data())
	assert.Equal(t, []float32{2, 4, 6, 8}, Scale(a, 2).Data())
	assert.Equal(t, []float32{1, 2, 3, 4}, a.Data(), "allocating ops leave operands untouched")
}

func TestInPlaceOps(t *testing.T) {
	dst := FromSlice(1, 3, []float32{1, 2, 3})
	src := FromSlice(1, 3, []float32{1, 1, 2})

	AddInPlace(dst, src)
	assert.Equal(t, []float32{2, 3, 5}, dst.Data())
	SubInPlace(dst, src)
	assert.Equal(t, []float32{1, 2, 3}, dst.Data())
	HadamardInPlace(dst, src)
	assert.Equal(t, []float32{1, 2, 6}, dst.Data())
	ScaleInPlace(dst, -1)
	assert.Equal(t, []float32{-1, -2, -6}, dst.Data())
	assert.Equal(t, []float32{1, 1, 2}, src.Data())
}

func TestShapeMismatchPanics(t *testing.T) {
	a := New(2, 3)
	b := New(3, 2)
	c := New(2, 2)

	tests := []struct {
		name string
		fn   func()
	}{
		{"add", func() { Add(a, b) }},
		{"sub", func() { Sub(a, b) }},
		{"hadamard", func() { Hadamard(a, b) }},
		{"add in place", func() { AddInPlace(a, b) }},
		{"sub in place", func() { SubInPlace(a, b) }},
		{"hadamard in place", func() { HadamardInPlace(a, b) }},
		{"mul", func() { Mul(a, c) }},
		{"mul into wrong destination", func() { MulTo(New(3, 3), a, b) }},
		{"transpose into wrong destination", func() { TransposeTo(New(2, 3), a) }},
		{"apply into wrong destination", func() { ApplyTo(c, a, func(x float32) float32 { return x }) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, tt.fn)
		})
	}
}

func TestMulTo_AliasPanics(t *testing.T) {
	sq := FromSlice(2, 2, []float32{1, 2, 3, 4})
	id := Identity(2)

	assert.PanicsWithValue(t, "matrix: mul: destination aliases an operand", func() { MulTo(sq, sq, id) })
	assert.PanicsWithValue(t, "matrix: mul: destination aliases an operand", func() { MulTo(sq, id, sq) })

	// A view over the operand's buffer is caught too.
	view := Wrap(2, 2, sq.Data())
	assert.Panics(t, func() { MulTo(view, sq, id) })

	assert.Equal(t, []float32{1, 2, 3, 4}, MulTo(New(2, 2), sq, id).Data())
}

func TestMul_KnownValues(t *testing.T) {
	a := FromSlice(2, 3, []float32{1, 2, 3, 4, 5, 6})
	b := FromSlice(3, 2, []float32{7, 8, 9, 10, 11, 12})

	c := Mul(a, b)
	require.Equal(t, Shape{Rows: 2, Cols: 2}, c.Shape())
	assert.Equal(t, []float32{58, 64, 139, 154}, c.Data())
}

func TestMul_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, dims := range [][3]int{{1, 1, 1}, {3, 4, 2}, {10, 1, 7}, {5, 9, 5}} {
		a := randomMatrix(rng, dims[0], dims[1])
		b := randomMatrix(rng, dims[1], dims[2])

		got := Mul(a, b)
		var want mat.Dense
		want.Mul(toDense(a), toDense(b))

		for i := 0; i < got.Rows(); i++ {
			for j := 0; j < got.Cols(); j++ {
				assert.InDelta(t, want.At(i, j), got.At(i, j), 1e-4, "dims %v cell (%d,%d)", dims, i, j)
			}
		}
	}
}

func TestMul_DirectSummationOrder(t *testing.T) {
	// Values chosen so that a different summation order changes the float32 result.
	a := FromSlice(1, 3, []float32{1e8, 1, -1e8})
	b := FromSlice(3, 1, []float32{1, 1, 1})

	var sum float32
	sum += 1e8
	sum += 1
	sum += -1e8
	assert.Equal(t, sum, Mul(a, b).At(0, 0))
}

func TestMul_TransposeIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := randomMatrix(rng, 4, 3)
	b := randomMatrix(rng, 3, 5)

	lhs := Transpose(Mul(a, b))
	rhs := Mul(Transpose(b), Transpose(a))
	assert.True(t, lhs.Equal(rhs), "(AB)ᵗ must equal BᵗAᵗ")
}

func TestMul_Identity(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := randomMatrix(rng, 4, 6)
	assert.True(t, Mul(a, Identity(6)).Equal(a))
	assert.True(t, Mul(Identity(4), a).Equal(a))
}

func TestTranspose(t *testing.T) {
	m := FromSlice(2, 3, []float32{1, 2, 3, 4, 5, 6})
	tr := Transpose(m)
	assert.Equal(t, Shape{Rows: 3, Cols: 2}, tr.Shape())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, tr.Data())
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			assert.Equal(t, m.At(i, j), tr.At(j, i))
		}
	}
	assert.True(t, Transpose(tr).Equal(m), "transpose is involutive")
}

func TestAddSubInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := randomMatrix(rng, 6, 4)
	b := randomMatrix(rng, 6, 4)
	assert.True(t, Sub(Add(a, b), b).EqualApprox(a, 1e-6))
}

func TestApply(t *testing.T) {
	m := FromSlice(1, 4, []float32{-2, -1, 0, 3})
	sq := func(x float32) float32 { return x * x }

	assert.Equal(t, []float32{4, 1, 0, 9}, Apply(m, sq).Data())
	assert.Equal(t, []float32{-2, -1, 0, 3}, m.Data())

	ApplyInPlace(m, sq)
	assert.Equal(t, []float32{4, 1, 0, 9}, m.Data())
}

func TestArgMax(t *testing.T) {
	tests := []struct {
		name string
		vals []float32
		want int
	}{
		{"single", []float32{3}, 0},
		{"last", []float32{0, 1, 2}, 2},
		{"first of ties", []float32{1, 5, 5, 2}, 1},
		{"negatives", []float32{-3, -1, -2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArgMax(Column(tt.vals)))
		})
	}
}
