package matrix

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Text format errors.
var (
	ErrMalformed    = errors.New("malformed numeric text")
	ErrTruncated    = errors.New("unexpected end of input")
	ErrInvalidShape = errors.New("invalid matrix shape")
)

// MaxElements bounds rows*cols accepted by a Decoder before it allocates.
const MaxElements = 1 << 26

// Encoder writes matrices in the whitespace-delimited text format:
//
//	rows cols v_0 v_1 ... v_{rows*cols-1}
//
// Every token is followed by a single space and values carry 6 decimals.
type Encoder struct {
	w   *bufio.Writer
	buf []byte
	err error
}

// NewEncoder creates an Encoder writing to w. Call Flush when done.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w), buf: make([]byte, 0, 32)}
}

func (e *Encoder) token(b []byte) {
	if e.err != nil {
		return
	}
	if _, err := e.w.Write(b); err != nil {
		e.err = err
		return
	}
	e.err = e.w.WriteByte(' ')
}

// Int writes an integer token.
func (e *Encoder) Int(v int) error {
	e.token(strconv.AppendInt(e.buf[:0], int64(v), 10))
	return e.err
}

// Float writes a float token with 6 decimals.
func (e *Encoder) Float(v float32) error {
	e.token(strconv.AppendFloat(e.buf[:0], float64(v), 'f', 6, 64))
	return e.err
}

// Matrix writes the header and values of m.
func (e *Encoder) Matrix(m *Matrix) error {
	m.mustLive("encode")
	e.Int(m.shape.Rows)
	e.Int(m.shape.Cols)
	for _, v := range m.data {
		if err := e.Float(v); err != nil {
			return errors.Wrap(err, "write matrix")
		}
	}
	return e.err
}

// Flush writes any buffered data to the underlying writer.
func (e *Encoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

// WriteText writes m to w in the text format.
func WriteText(w io.Writer, m *Matrix) error {
	enc := NewEncoder(w)
	if err := enc.Matrix(m); err != nil {
		return err
	}
	return enc.Flush()
}

// Decoder reads whitespace-delimited numeric tokens.
type Decoder struct {
	sc     *bufio.Scanner
	tokens int
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	return &Decoder{sc: sc}
}

func (d *Decoder) next(what string) (string, error) {
	if !d.sc.Scan() {
		if err := d.sc.Err(); err != nil {
			return "", errors.Wrapf(err, "read %s", what)
		}
		return "", errors.Wrapf(ErrTruncated, "reading %s after %d tokens", what, d.tokens)
	}
	d.tokens++
	return d.sc.Text(), nil
}

// Tokens returns the number of tokens consumed so far.
func (d *Decoder) Tokens() int {
	return d.tokens
}

// Int reads one integer token; what names the field in error messages.
func (d *Decoder) Int(what string) (int, error) {
	tok, err := d.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "%s: token %d %q is not an integer", what, d.tokens, tok)
	}
	return v, nil
}

// Float reads one float32 token.
func (d *Decoder) Float(what string) (float32, error) {
	tok, err := d.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "%s: token %d %q is not a number", what, d.tokens, tok)
	}
	return float32(v), nil
}

// Floats reads len(dst) float tokens into dst.
func (d *Decoder) Floats(what string, dst []float32) error {
	for i := range dst {
		v, err := d.Float(what)
		if err != nil {
			return err
		}
		dst[i] = v
	}
	return nil
}

// Matrix reads one matrix. Short or malformed input returns an error wrapping
// ErrTruncated, ErrMalformed or ErrInvalidShape.
func (d *Decoder) Matrix() (*Matrix, error) {
	shape, err := d.Header()
	if err != nil {
		return nil, err
	}
	return d.Values(shape)
}

// Header reads the rows and cols of the next matrix and validates them
// without allocating anything.
func (d *Decoder) Header() (Shape, error) {
	rows, err := d.Int("matrix rows")
	if err != nil {
		return Shape{}, err
	}
	cols, err := d.Int("matrix cols")
	if err != nil {
		return Shape{}, err
	}
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		return Shape{}, errors.Wrap(ErrInvalidShape, err.Error())
	}
	if rows > MaxElements/cols {
		return Shape{}, errors.Wrapf(ErrInvalidShape, "%v exceeds %d elements", shape, MaxElements)
	}
	return shape, nil
}

// Values allocates a matrix of the given shape and fills it with the next
// rows*cols tokens. The shape usually comes from Header.
func (d *Decoder) Values(shape Shape) (*Matrix, error) {
	m := New(shape.Rows, shape.Cols)
	if err := d.Floats("matrix value", m.data); err != nil {
		m.Release()
		return nil, err
	}
	return m, nil
}

// ReadText reads a single matrix from r.
func ReadText(r io.Reader) (*Matrix, error) {
	return NewDecoder(r).Matrix()
}

// Print writes m as a grid with 3 decimals, one line per row, followed by a blank line.
func Print(w io.Writer, m *Matrix) error {
	m.mustLive("print")
	bw := bufio.NewWriter(w)
	for i, v := range m.data {
		fmt.Fprintf(bw, "%0.3f ", v)
		if (i+1)%m.shape.Cols == 0 {
			bw.WriteByte('\n')
		}
	}
	bw.WriteByte('\n')
	return bw.Flush()
}
