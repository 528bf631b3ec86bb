// Package mtimes multiplies a fixed 2x4 matrix by a dynamically shaped
// matrix.
//
// Matrices are stored the way generated numeric code stores them: a flat
// column-major buffer of float64 plus a [rows, cols] size pair. Element
// (i, j) of an r-row matrix lives at Data[i+r*j].
//
// Mtimes and MtimesInto are the fixed-shape entry points; Multiply is the
// general dynamic-shape product they are built on. All functions are pure
// and may be called concurrently on independent buffers.
package mtimes
