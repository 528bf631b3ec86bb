package engine

import (
	"errors"
	"math/rand"
	"testing"

	"gorgonia.org/tensor"

	"github.com/csotherden/gorgonia-mtimes/mtimes"
)

// Test that the expression-graph backend agrees with the kernel-backed
// engine within a small numerical tolerance.
func TestGraphMatMulMatchesEng(t *testing.T) {
	r := rand.New(rand.NewSource(9))

	for _, n := range []int{0, 1, 2, 4, 10} {
		a := newRandomFloat64Matrix(t, 2, 4, r)
		b := newRandomFloat64Matrix(t, 4, n, r)

		want, err := NewEng().Multiply(a, b)
		if err != nil {
			t.Fatalf("Eng.Multiply error: %v", err)
		}
		got, err := GraphMatMul(a, b)
		if err != nil {
			t.Fatalf("GraphMatMul error: %v", err)
		}

		if !got.Shape().Eq(tensor.Shape{2, n}) {
			t.Fatalf("n=%d: unexpected result shape %v", n, got.Shape())
		}
		if n == 0 {
			continue
		}
		if !equalApprox(extractFloat64Backing(t, got), extractFloat64Backing(t, want), 1e-12) {
			t.Fatalf("n=%d: GraphMatMul differs from Eng.Multiply", n)
		}
	}
}

func TestGraphMatMulLeavesInputsUntouched(t *testing.T) {
	r := rand.New(rand.NewSource(10))
	a := newRandomFloat64Matrix(t, 2, 4, r)
	b := newRandomFloat64Matrix(t, 4, 3, r)
	before := append([]float64(nil), extractFloat64Backing(t, a)...)

	if _, err := GraphMatMul(a, b); err != nil {
		t.Fatalf("GraphMatMul error: %v", err)
	}
	after := extractFloat64Backing(t, a)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input mutated at index %d", i)
		}
	}
}

func TestGraphMatMulRejectsMismatch(t *testing.T) {
	a := newZeroFloat64Matrix(2, 4)
	b := newZeroFloat64Matrix(3, 2)

	if _, err := GraphMatMul(a, b); !errors.Is(err, mtimes.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := GraphMatMul(nil, b); !errors.Is(err, mtimes.ErrNilTensor) {
		t.Fatalf("expected ErrNilTensor, got %v", err)
	}
}
