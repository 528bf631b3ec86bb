package mtimes

import (
	"math"

	"github.com/pkg/errors"
)

// Size is a [rows, cols] pair carried alongside a data buffer.
type Size [2]int32

// Rows returns the row count.
func (s Size) Rows() int { return int(s[0]) }

// Cols returns the column count.
func (s Size) Cols() int { return int(s[1]) }

// Numel returns rows*cols.
func (s Size) Numel() int { return int(s[0]) * int(s[1]) }

func (s Size) validate() error {
	if s[0] < 0 || s[1] < 0 {
		return errors.Wrapf(ErrBadShape, "mtimes: size %v", [2]int32(s))
	}
	return nil
}

// Matrix is a dynamically shaped column-major matrix.
type Matrix struct {
	Data []float64
	Size Size
}

// New returns a zero rows x cols matrix.
func New(rows, cols int) (Matrix, error) {
	if rows < 0 || cols < 0 || rows > math.MaxInt32 || cols > math.MaxInt32 {
		return Matrix{}, errors.Wrapf(ErrBadShape, "mtimes: New(%d, %d)", rows, cols)
	}
	return Matrix{
		Data: make([]float64, rows*cols),
		Size: Size{int32(rows), int32(cols)},
	}, nil
}

// FromRowMajor builds a matrix from values listed row by row.
func FromRowMajor(rows, cols int, values []float64) (Matrix, error) {
	m, err := New(rows, cols)
	if err != nil {
		return Matrix{}, err
	}
	if len(values) < rows*cols {
		return Matrix{}, errors.Wrapf(ErrShortBuffer, "mtimes: FromRowMajor got %d values, want %d", len(values), rows*cols)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Data[i+rows*j] = values[i*cols+j]
		}
	}
	return m, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) (Matrix, error) {
	m, err := New(n, n)
	if err != nil {
		return Matrix{}, err
	}
	for i := 0; i < n; i++ {
		m.Data[i+n*i] = 1
	}
	return m, nil
}

// Rows returns the row count.
func (m Matrix) Rows() int { return m.Size.Rows() }

// Cols returns the column count.
func (m Matrix) Cols() int { return m.Size.Cols() }

// Len returns the number of logical elements, rows*cols.
func (m Matrix) Len() int { return m.Size.Numel() }

// Index returns the position of element (i, j) in Data. It does not
// bounds-check; use At for checked access.
func (m Matrix) Index(i, j int) int { return i + m.Rows()*j }

// Validate reports whether the size pair is non-negative and Data holds at
// least rows*cols elements.
func (m Matrix) Validate() error {
	if err := m.Size.validate(); err != nil {
		return err
	}
	if len(m.Data) < m.Len() {
		return errors.Wrapf(ErrShortBuffer, "mtimes: %d elements for size %v", len(m.Data), [2]int32(m.Size))
	}
	return nil
}

// At returns element (i, j).
func (m Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return 0, errors.Wrapf(ErrOutOfRange, "mtimes: At(%d, %d) on %dx%d", i, j, m.Rows(), m.Cols())
	}
	return m.Data[m.Index(i, j)], nil
}

// Set assigns element (i, j).
func (m Matrix) Set(i, j int, v float64) error {
	if i < 0 || i >= m.Rows() || j < 0 || j >= m.Cols() {
		return errors.Wrapf(ErrOutOfRange, "mtimes: Set(%d, %d) on %dx%d", i, j, m.Rows(), m.Cols())
	}
	m.Data[m.Index(i, j)] = v
	return nil
}

// Clone returns a deep copy trimmed to rows*cols elements.
func (m Matrix) Clone() Matrix {
	n := m.Len()
	if n > len(m.Data) {
		n = len(m.Data)
	}
	data := make([]float64, n)
	copy(data, m.Data[:n])
	return Matrix{Data: data, Size: m.Size}
}

// RowMajor returns the elements listed row by row.
func (m Matrix) RowMajor() []float64 {
	rows, cols := m.Rows(), m.Cols()
	out := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[i*cols+j] = m.Data[i+rows*j]
		}
	}
	return out
}

// Equal reports whether m and o have the same size and bitwise-equal
// elements.
func (m Matrix) Equal(o Matrix) bool {
	if m.Size != o.Size {
		return false
	}
	n := m.Len()
	if len(m.Data) < n || len(o.Data) < n {
		return false
	}
	for k := 0; k < n; k++ {
		if m.Data[k] != o.Data[k] {
			return false
		}
	}
	return true
}
