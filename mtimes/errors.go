package mtimes

import "github.com/pkg/errors"

var (
	// ErrDimensionMismatch is returned when the inner dimensions of a
	// product disagree, e.g. B has a row count other than 4 in Mtimes.
	ErrDimensionMismatch = errors.New("mtimes: dimension mismatch")

	// ErrBadShape is returned for negative row or column counts.
	ErrBadShape = errors.New("mtimes: invalid shape")

	// ErrShortBuffer is returned when a data buffer holds fewer elements
	// than its size pair requires.
	ErrShortBuffer = errors.New("mtimes: buffer too small")

	// ErrOutOfRange is returned by At and Set for indices outside the matrix.
	ErrOutOfRange = errors.New("mtimes: index out of range")

	// ErrNilTensor is returned when a nil tensor is converted.
	ErrNilTensor = errors.New("mtimes: nil tensor")
)
