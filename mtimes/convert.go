package mtimes

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dense returns a row-major gonum copy of m. gonum has no empty matrices,
// so a matrix with a zero dimension yields ErrBadShape.
func (m Matrix) Dense() (*mat.Dense, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if m.Rows() == 0 || m.Cols() == 0 {
		return nil, errors.Wrapf(ErrBadShape, "mtimes: no gonum form for %dx%d", m.Rows(), m.Cols())
	}
	return mat.NewDense(m.Rows(), m.Cols(), m.RowMajor()), nil
}

// FromGonum copies any gonum matrix into column-major storage.
func FromGonum(g mat.Matrix) Matrix {
	rows, cols := g.Dims()
	out := Matrix{
		Data: make([]float64, rows*cols),
		Size: Size{int32(rows), int32(cols)},
	}
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			out.Data[i+rows*j] = g.At(i, j)
		}
	}
	return out
}
