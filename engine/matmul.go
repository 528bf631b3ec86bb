// matmul.go
package engine

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/csotherden/gorgonia-mtimes/mtimes"
)

// isRowMajorContiguous2D reports whether d is a 2D dense tensor with the
// standard row-major layout:
//
//	shape = [rows, cols]
//	strides = [cols, 1]
func isRowMajorContiguous2D(d *tensor.Dense) bool {
	if d.Dims() != 2 {
		return false
	}
	shape := d.Shape()
	strides := d.Strides()
	if len(shape) != 2 || len(strides) != 2 {
		return false
	}
	rows, cols := shape[0], shape[1]
	return strides[1] == 1 && strides[0] == cols && rows > 0 && cols > 0
}

// isEmpty2D reports whether d is 2D with a zero dimension. BLAS rejects
// such operands, so they never reach StdEng.
func isEmpty2D(d *tensor.Dense) bool {
	if d.Dims() != 2 {
		return false
	}
	shape := d.Shape()
	return shape[0] == 0 || shape[1] == 0
}

// matMulEmpty handles products where some dimension is zero: after the
// shape checks there is nothing to write unless k == 0, in which case the
// result is all zeros.
func matMulEmpty(da, db, dc *tensor.Dense) error {
	if da.Dims() != 2 || db.Dims() != 2 || dc.Dims() != 2 {
		return errors.Wrapf(mtimes.ErrBadShape, "engine: MatMul needs 2D operands, got %v, %v, %v", da.Shape(), db.Shape(), dc.Shape())
	}
	shapeA, shapeB, shapeC := da.Shape(), db.Shape(), dc.Shape()
	m, k, n := shapeA[0], shapeA[1], shapeB[1]
	if k != shapeB[0] {
		return errors.Wrapf(mtimes.ErrDimensionMismatch, "engine: MatMul shape mismatch: a=%v, b=%v (inner dims %d vs %d)", shapeA, shapeB, k, shapeB[0])
	}
	if shapeC[0] != m || shapeC[1] != n {
		return errors.Wrapf(mtimes.ErrDimensionMismatch, "engine: MatMul prealloc shape mismatch: expected [%d %d], got %v", m, n, shapeC)
	}
	if k == 0 && m*n > 0 {
		cdata, ok := dc.Data().([]float64)
		if !ok || len(cdata) < m*n {
			return errors.Wrapf(mtimes.ErrShortBuffer, "engine: MatMul prealloc backing %T", dc.Data())
		}
		for i := range cdata[:m*n] {
			cdata[i] = 0
		}
	}
	return nil
}

// MatMul computes prealloc = a x b. Dense float64 row-major products of a
// 2x4 a with a 4xn b go through mtimes.MtimesInto, and float64 products
// with a zero dimension are resolved without BLAS; everything else
// (other dtypes or shapes, views, non-dense tensors) is handed to the
// embedded StdEng.
func (e *Eng) MatMul(a, b, prealloc tensor.Tensor) error {
	da, okA := a.(*tensor.Dense)
	db, okB := b.(*tensor.Dense)
	dc, okC := prealloc.(*tensor.Dense)
	if !okA || !okB || !okC {
		return e.fallback("non-dense operand", a, b, prealloc)
	}

	if da.Dtype() != tensor.Float64 || db.Dtype() != tensor.Float64 || dc.Dtype() != tensor.Float64 {
		return e.fallback("dtype", a, b, prealloc)
	}

	if isEmpty2D(da) || isEmpty2D(db) || isEmpty2D(dc) {
		return matMulEmpty(da, db, dc)
	}

	if !isRowMajorContiguous2D(da) || !isRowMajorContiguous2D(db) || !isRowMajorContiguous2D(dc) {
		return e.fallback("layout", a, b, prealloc)
	}

	shapeA := da.Shape()
	shapeB := db.Shape()
	shapeC := dc.Shape()

	m, kA := shapeA[0], shapeA[1]
	kB, n := shapeB[0], shapeB[1]

	if kA != kB {
		return errors.Wrapf(mtimes.ErrDimensionMismatch, "engine: MatMul shape mismatch: a=%v, b=%v (inner dims %d vs %d)", shapeA, shapeB, kA, kB)
	}
	if shapeC[0] != m || shapeC[1] != n {
		return errors.Wrapf(mtimes.ErrDimensionMismatch, "engine: MatMul prealloc shape mismatch: expected [%d %d], got %v", m, n, shapeC)
	}
	if m != mtimes.ARows || kA != mtimes.ACols {
		return e.fallback("shape", a, b, prealloc)
	}

	adata, ok := da.Data().([]float64)
	if !ok {
		return e.fallback("backing", a, b, prealloc)
	}
	bdata, ok := db.Data().([]float64)
	if !ok {
		return e.fallback("backing", a, b, prealloc)
	}
	cdata, ok := dc.Data().([]float64)
	if !ok {
		return e.fallback("backing", a, b, prealloc)
	}

	// Basic length sanity checks in case we're dealing with views.
	if len(adata) < m*kA || len(bdata) < kB*n || len(cdata) < m*n {
		return errors.Wrapf(mtimes.ErrShortBuffer, "engine: MatMul backing slice too small: a=%d, b=%d, c=%d, expected at least %d, %d, %d",
			len(adata), len(bdata), len(cdata), m*kA, kB*n, m*n)
	}

	// Tensors are row-major, the kernel is column-major.
	var fixed mtimes.Fixed2x4
	for i := 0; i < m; i++ {
		for k := 0; k < kA; k++ {
			fixed[i+m*k] = adata[i*kA+k]
		}
	}
	bcol := make([]float64, kB*n)
	for k := 0; k < kB; k++ {
		for j := 0; j < n; j++ {
			bcol[k+kB*j] = bdata[k*n+j]
		}
	}
	ccol := make([]float64, m*n)
	if _, err := mtimes.MtimesInto(ccol, fixed, bcol, mtimes.Size{int32(kB), int32(n)}); err != nil {
		return errors.Wrap(err, "engine: MatMul")
	}
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			cdata[i*n+j] = ccol[i+m*j]
		}
	}
	return nil
}

func (e *Eng) fallback(reason string, a, b, prealloc tensor.Tensor) error {
	e.log.Debug().
		Str("reason", reason).
		Interface("a", shapeOf(a)).
		Interface("b", shapeOf(b)).
		Msg("matmul fallback to StdEng")
	return e.StdEng.MatMul(a, b, prealloc)
}

func shapeOf(t tensor.Tensor) tensor.Shape {
	if t == nil {
		return nil
	}
	return t.Shape()
}

// Multiply allocates a float64 result and computes a x b with MatMul.
func (e *Eng) Multiply(a, b *tensor.Dense) (*tensor.Dense, error) {
	if a == nil || b == nil {
		return nil, mtimes.ErrNilTensor
	}
	if a.Dims() != 2 || b.Dims() != 2 {
		return nil, errors.Wrapf(mtimes.ErrBadShape, "engine: Multiply needs 2D operands, got %v and %v", a.Shape(), b.Shape())
	}
	m, n := a.Shape()[0], b.Shape()[1]
	c := tensor.New(
		tensor.WithShape(m, n),
		tensor.WithBacking(make([]float64, m*n)),
	)
	if err := e.MatMul(a, b, c); err != nil {
		return nil, err
	}
	return c, nil
}
