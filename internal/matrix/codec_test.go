package matrix

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteText_Format(t *testing.T) {
	m := FromSlice(2, 2, []float32{1, -2.5, 0, 3.14159265})
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, m))
	assert.Equal(t, "2 2 1.000000 -2.500000 0.000000 3.141593 ", buf.String())
}

func TestTextRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, shape := range []Shape{{1, 1}, {3, 4}, {10, 1}, {1, 7}} {
		m := New(shape.Rows, shape.Cols)
		for i := range m.data {
			m.data[i] = rng.Float32()*20 - 10
		}

		var buf bytes.Buffer
		require.NoError(t, WriteText(&buf, m))
		got, err := ReadText(&buf)
		require.NoError(t, err)

		assert.Equal(t, m.Shape(), got.Shape())
		assert.True(t, got.EqualApprox(m, 1e-5), "round trip of %v within 6-decimal precision", shape)
	}
}

func TestDecoder_SequentialMatrices(t *testing.T) {
	dec := NewDecoder(strings.NewReader("1 2 0.5 0.25\n2 1\n-1\n1e-3 "))
	a, err := dec.Matrix()
	require.NoError(t, err)
	b, err := dec.Matrix()
	require.NoError(t, err)

	assert.Equal(t, []float32{0.5, 0.25}, a.Data())
	assert.Equal(t, []float32{-1, 0.001}, b.Data())
	assert.Equal(t, 8, dec.Tokens())

	_, err = dec.Matrix()
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestDecoder_HeaderThenValues(t *testing.T) {
	dec := NewDecoder(strings.NewReader("2 3 1 2 3 4 5 6"))
	shape, err := dec.Header()
	require.NoError(t, err)
	assert.Equal(t, Shape{Rows: 2, Cols: 3}, shape)
	assert.Equal(t, 2, dec.Tokens())

	m, err := dec.Values(shape)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, m.Data())

	// A header at the element limit is accepted; only Values would allocate it.
	dec = NewDecoder(strings.NewReader("8192 8192 0.5"))
	shape, err = dec.Header()
	require.NoError(t, err)
	assert.Equal(t, MaxElements, shape.NumElements())

	_, err = NewDecoder(strings.NewReader("8193 8192")).Header()
	assert.True(t, errors.Is(err, ErrInvalidShape))
}

func TestReadText_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrTruncated},
		{"missing cols", "3", ErrTruncated},
		{"short values", "2 2 1 2 3", ErrTruncated},
		{"bad rows", "x 2", ErrMalformed},
		{"bad value", "1 2 1.0 abc", ErrMalformed},
		{"zero rows", "0 3", ErrInvalidShape},
		{"negative cols", "2 -1", ErrInvalidShape},
		{"too large", "100000 100000", ErrInvalidShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ReadText(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, FromSlice(2, 2, []float32{1, 0.5, -0.25, 2})))
	assert.Equal(t, "1.000 0.500 \n-0.250 2.000 \n\n", buf.String())
}
