package mtimes

import "github.com/pkg/errors"

// Shape of the fixed left operand.
const (
	ARows = 2
	ACols = 4
)

// Fixed2x4 is the fixed-shape left operand, column-major: A(i,k) = a[i+2*k].
type Fixed2x4 [ARows * ACols]float64

// Matrix returns a as a dynamic matrix sharing no storage with a.
func (a Fixed2x4) Matrix() Matrix {
	data := make([]float64, len(a))
	copy(data, a[:])
	return Matrix{Data: data, Size: Size{ARows, ACols}}
}

// Mtimes computes C = A*B for the fixed 2x4 A and a 4 x n matrix B given as
// a column-major buffer and its size pair. The returned size is [2, n];
// for n == 0 the returned buffer is empty.
func Mtimes(a Fixed2x4, bData []float64, bSize Size) ([]float64, Size, error) {
	if err := checkB(bData, bSize); err != nil {
		return nil, Size{}, err
	}
	cData := make([]float64, ARows*bSize.Cols())
	cSize, err := MtimesInto(cData, a, bData, bSize)
	if err != nil {
		return nil, Size{}, err
	}
	return cData, cSize, nil
}

// MtimesInto is Mtimes writing into a caller-owned buffer, which must hold
// at least 2*n elements. Elements past 2*n are left untouched.
func MtimesInto(cData []float64, a Fixed2x4, bData []float64, bSize Size) (Size, error) {
	if err := checkB(bData, bSize); err != nil {
		return Size{}, err
	}
	n := bSize.Cols()
	if len(cData) < ARows*n {
		return Size{}, errors.Wrapf(ErrShortBuffer, "mtimes: C buffer holds %d elements, want %d", len(cData), ARows*n)
	}
	gemm(ARows, ACols, n, a[:], bData, cData)
	return Size{ARows, int32(n)}, nil
}

func checkB(bData []float64, bSize Size) error {
	if err := bSize.validate(); err != nil {
		return err
	}
	if bSize.Rows() != ACols {
		return errors.Wrapf(ErrDimensionMismatch, "mtimes: B has %d rows, want %d", bSize.Rows(), ACols)
	}
	if len(bData) < bSize.Numel() {
		return errors.Wrapf(ErrShortBuffer, "mtimes: B buffer holds %d elements, want %d", len(bData), bSize.Numel())
	}
	return nil
}

// Multiply returns a*b for any compatible pair of matrices.
func Multiply(a, b Matrix) (Matrix, error) {
	if err := a.Validate(); err != nil {
		return Matrix{}, err
	}
	if err := b.Validate(); err != nil {
		return Matrix{}, err
	}
	if a.Cols() != b.Rows() {
		return Matrix{}, errors.Wrapf(ErrDimensionMismatch, "mtimes: %dx%d times %dx%d",
			a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}
	c := Matrix{
		Data: make([]float64, a.Rows()*b.Cols()),
		Size: Size{a.Size[0], b.Size[1]},
	}
	gemm(a.Rows(), a.Cols(), b.Cols(), a.Data, b.Data, c.Data)
	return c, nil
}

// gemm computes c = a*b for column-major a (m x k), b (k x n), c (m x n).
// Each element accumulates from 0 with k ascending.
func gemm(m, k, n int, a, b, c []float64) {
	for j := 0; j < n; j++ {
		bcol := b[k*j : k*j+k]
		for i := 0; i < m; i++ {
			var s float64
			for l, bv := range bcol {
				s += a[i+m*l] * bv
			}
			c[i+m*j] = s
		}
	}
}
