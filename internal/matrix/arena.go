package matrix

// Arena tracks the temporaries of one computation so they can all be released
// with a single call.
//
// Buffers released into an arena are kept on a free list keyed by length and
// handed out again by later allocations of the same size, so a long training run
// reuses the same few buffers for every example. Views are never recycled.
//
// Example:
//
//	ar := matrix.NewArena()
//	defer ar.Release()
//
//	z := ar.Add(ar.Mul(w, a), b)
//	out := ar.Keep(ar.Apply(z, f)) // out survives ar.Release
type Arena struct {
	live   map[*Matrix]struct{}
	free   map[int][][]float32
	allocs int
	reused int
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{
		live: make(map[*Matrix]struct{}),
		free: make(map[int][][]float32),
	}
}

// New allocates a zero-filled rows×cols matrix owned by the arena.
func (ar *Arena) New(rows, cols int) *Matrix {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		panic("matrix: arena new: " + err.Error())
	}
	n := shape.NumElements()

	var buf []float32
	if list := ar.free[n]; len(list) > 0 {
		buf = list[len(list)-1]
		ar.free[n] = list[:len(list)-1]
		for i := range buf {
			buf[i] = 0
		}
		ar.reused++
	} else {
		buf = make([]float32, n)
		ar.allocs++
	}

	m := &Matrix{data: buf, shape: shape, arena: ar}
	ar.live[m] = struct{}{}
	return m
}

// Copy allocates an arena-owned copy of m.
func (ar *Arena) Copy(m *Matrix) *Matrix {
	m.mustLive("arena copy")
	out := ar.New(m.shape.Rows, m.shape.Cols)
	copy(out.data, m.data)
	return out
}

// Keep detaches m from the arena. The caller becomes its only owner and m is
// left alone by Release.
func (ar *Arena) Keep(m *Matrix) *Matrix {
	if m.arena == ar {
		delete(ar.live, m)
		m.arena = nil
	}
	return m
}

// Add returns a + b allocated in the arena.
func (ar *Arena) Add(a, b *Matrix) *Matrix {
	mustMatch("add", a, b)
	return AddTo(ar.New(a.shape.Rows, a.shape.Cols), a, b)
}

// Sub returns a - b allocated in the arena.
func (ar *Arena) Sub(a, b *Matrix) *Matrix {
	mustMatch("sub", a, b)
	return SubTo(ar.New(a.shape.Rows, a.shape.Cols), a, b)
}

// Hadamard returns a ⊙ b allocated in the arena.
func (ar *Arena) Hadamard(a, b *Matrix) *Matrix {
	mustMatch("hadamard", a, b)
	return HadamardTo(ar.New(a.shape.Rows, a.shape.Cols), a, b)
}

// Mul returns a·b allocated in the arena.
func (ar *Arena) Mul(a, b *Matrix) *Matrix {
	mulCheck(a, b)
	return MulTo(ar.New(a.shape.Rows, b.shape.Cols), a, b)
}

// Transpose returns mᵗ allocated in the arena.
func (ar *Arena) Transpose(m *Matrix) *Matrix {
	m.mustLive("transpose")
	return TransposeTo(ar.New(m.shape.Cols, m.shape.Rows), m)
}

// Apply returns f(m) elementwise, allocated in the arena.
func (ar *Arena) Apply(m *Matrix, f func(float32) float32) *Matrix {
	m.mustLive("apply")
	return ApplyTo(ar.New(m.shape.Rows, m.shape.Cols), m, f)
}

// Live returns the number of arena matrices not yet released.
func (ar *Arena) Live() int {
	return len(ar.live)
}

// Stats returns how many buffers were freshly allocated and how many were reused.
func (ar *Arena) Stats() (allocs, reused int) {
	return ar.allocs, ar.reused
}

// Release releases every live matrix allocated by the arena. The arena stays
// usable and keeps the buffers for reuse.
func (ar *Arena) Release() {
	for m := range ar.live {
		m.Release()
	}
}

// recycle is called by Matrix.Release for arena-owned matrices.
func (ar *Arena) recycle(m *Matrix) {
	if _, ok := ar.live[m]; !ok {
		return
	}
	delete(ar.live, m)
	n := len(m.data)
	ar.free[n] = append(ar.free[n], m.data)
}
