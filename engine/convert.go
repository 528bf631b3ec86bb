// convert.go
package engine

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/csotherden/gorgonia-mtimes/mtimes"
)

// ToTensor returns a row-major float64 tensor copy of m. Zero-sized
// matrices are allowed.
func ToTensor(m mtimes.Matrix) (*tensor.Dense, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return tensor.New(
		tensor.WithShape(m.Rows(), m.Cols()),
		tensor.WithBacking(m.RowMajor()),
	), nil
}

// FromTensor copies a 2D float64 tensor into column-major storage,
// honouring any view strides.
func FromTensor(t *tensor.Dense) (mtimes.Matrix, error) {
	if t == nil {
		return mtimes.Matrix{}, mtimes.ErrNilTensor
	}
	if t.Dims() != 2 {
		return mtimes.Matrix{}, errors.Wrapf(mtimes.ErrBadShape, "engine: tensor shape %v is not 2D", t.Shape())
	}
	if t.Dtype() != tensor.Float64 {
		return mtimes.Matrix{}, errors.Errorf("engine: tensor dtype %v, want float64", t.Dtype())
	}
	shape := t.Shape()
	out, err := mtimes.New(shape[0], shape[1])
	if err != nil {
		return mtimes.Matrix{}, err
	}
	for i := 0; i < shape[0]; i++ {
		for j := 0; j < shape[1]; j++ {
			v, err := t.At(i, j)
			if err != nil {
				return mtimes.Matrix{}, errors.Wrapf(err, "engine: tensor At(%d, %d)", i, j)
			}
			out.Data[out.Index(i, j)] = v.(float64)
		}
	}
	return out, nil
}
