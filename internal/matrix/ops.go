package matrix

import "fmt"

func mustMatch(op string, a, b *Matrix) {
	a.mustLive(op)
	b.mustLive(op)
	if !a.shape.Equal(b.shape) {
		panic(fmt.Sprintf("matrix: %s: shape mismatch %v vs %v", op, a.shape, b.shape))
	}
}

func mustShape(op string, dst *Matrix, want Shape) {
	dst.mustLive(op)
	if !dst.shape.Equal(want) {
		panic(fmt.Sprintf("matrix: %s: destination is %v, want %v", op, dst.shape, want))
	}
}

// Add returns a + b as a new owned matrix.
func Add(a, b *Matrix) *Matrix {
	mustMatch("add", a, b)
	return AddTo(New(a.shape.Rows, a.shape.Cols), a, b)
}

// AddTo stores a + b into dst and returns dst. dst may alias a or b.
func AddTo(dst, a, b *Matrix) *Matrix {
	mustMatch("add", a, b)
	mustShape("add", dst, a.shape)
	for i := range dst.data {
		dst.data[i] = a.data[i] + b.data[i]
	}
	return dst
}

// AddInPlace adds src into dst elementwise.
func AddInPlace(dst, src *Matrix) {
	mustMatch("add in place", dst, src)
	for i, v := range src.data {
		dst.data[i] += v
	}
}

// Sub returns a - b as a new owned matrix.
func Sub(a, b *Matrix) *Matrix {
	mustMatch("sub", a, b)
	return SubTo(New(a.shape.Rows, a.shape.Cols), a, b)
}

// SubTo stores a - b into dst and returns dst.
func SubTo(dst, a, b *Matrix) *Matrix {
	mustMatch("sub", a, b)
	mustShape("sub", dst, a.shape)
	for i := range dst.data {
		dst.data[i] = a.data[i] - b.data[i]
	}
	return dst
}

// SubInPlace subtracts src from dst elementwise.
func SubInPlace(dst, src *Matrix) {
	mustMatch("sub in place", dst, src)
	for i, v := range src.data {
		dst.data[i] -= v
	}
}

// Hadamard returns the elementwise product a ⊙ b as a new owned matrix.
func Hadamard(a, b *Matrix) *Matrix {
	mustMatch("hadamard", a, b)
	return HadamardTo(New(a.shape.Rows, a.shape.Cols), a, b)
}

// HadamardTo stores a ⊙ b into dst and returns dst.
func HadamardTo(dst, a, b *Matrix) *Matrix {
	mustMatch("hadamard", a, b)
	mustShape("hadamard", dst, a.shape)
	for i := range dst.data {
		dst.data[i] = a.data[i] * b.data[i]
	}
	return dst
}

// HadamardInPlace multiplies dst by src elementwise.
func HadamardInPlace(dst, src *Matrix) {
	mustMatch("hadamard in place", dst, src)
	for i, v := range src.data {
		dst.data[i] *= v
	}
}

// Scale returns an owned copy of m with every element multiplied by k.
func Scale(m *Matrix, k float32) *Matrix {
	out := m.Copy()
	ScaleInPlace(out, k)
	return out
}

// ScaleInPlace multiplies every element of m by k.
func ScaleInPlace(m *Matrix, k float32) {
	m.mustLive("scale")
	for i := range m.data {
		m.data[i] *= k
	}
}

// Mul returns the matrix product a·b.
//
// Requires a.Cols() == b.Rows(); the result is (a.Rows() × b.Cols()).
func Mul(a, b *Matrix) *Matrix {
	mulCheck(a, b)
	return MulTo(New(a.shape.Rows, b.shape.Cols), a, b)
}

func mulCheck(a, b *Matrix) {
	a.mustLive("mul")
	b.mustLive("mul")
	if a.shape.Cols != b.shape.Rows {
		panic(fmt.Sprintf("matrix: mul: shape mismatch [%d,%d] @ [%d,%d]",
			a.shape.Rows, a.shape.Cols, b.shape.Rows, b.shape.Cols))
	}
}

// MulTo stores a·b into dst and returns dst. Panics if dst aliases a or b.
//
// Each output cell is accumulated over k in ascending order, row-major over the
// output, so results are bit-for-bit reproducible.
func MulTo(dst, a, b *Matrix) *Matrix {
	mulCheck(a, b)
	m, k, n := a.shape.Rows, a.shape.Cols, b.shape.Cols
	mustShape("mul", dst, Shape{Rows: m, Cols: n})
	if &dst.data[0] == &a.data[0] || &dst.data[0] == &b.data[0] {
		panic("matrix: mul: destination aliases an operand")
	}

	ad, bd, cd := a.data, b.data, dst.data
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := float32(0)
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += ad[i*k+kIdx] * bd[kIdx*n+j]
			}
			cd[i*n+j] = sum
		}
	}
	return dst
}

// Transpose returns a new owned matrix with result[j,i] = m[i,j].
func Transpose(m *Matrix) *Matrix {
	m.mustLive("transpose")
	return TransposeTo(New(m.shape.Cols, m.shape.Rows), m)
}

// TransposeTo stores the transpose of m into dst and returns dst.
func TransposeTo(dst, m *Matrix) *Matrix {
	m.mustLive("transpose")
	mustShape("transpose", dst, m.shape.T())
	rows, cols := m.shape.Rows, m.shape.Cols
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst.data[j*rows+i] = m.data[i*cols+j]
		}
	}
	return dst
}

// Apply returns a new owned matrix with f applied to every element.
func Apply(m *Matrix, f func(float32) float32) *Matrix {
	m.mustLive("apply")
	return ApplyTo(New(m.shape.Rows, m.shape.Cols), m, f)
}

// ApplyTo stores f(m) elementwise into dst and returns dst.
func ApplyTo(dst, m *Matrix, f func(float32) float32) *Matrix {
	m.mustLive("apply")
	mustShape("apply", dst, m.shape)
	for i, v := range m.data {
		dst.data[i] = f(v)
	}
	return dst
}

// ApplyInPlace replaces every element x of m with f(x).
func ApplyInPlace(m *Matrix, f func(float32) float32) {
	m.mustLive("apply in place")
	for i, v := range m.data {
		m.data[i] = f(v)
	}
}

// ArgMax returns the flat index of the largest element; ties go to the lowest index.
func ArgMax(m *Matrix) int {
	m.mustLive("argmax")
	best := 0
	for i, v := range m.data {
		if v > m.data[best] {
			best = i
		}
	}
	return best
}
