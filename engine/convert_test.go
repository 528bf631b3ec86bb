package engine

import (
	"errors"
	"testing"

	"github.com/csotherden/gorgonia-mtimes/mtimes"
)

func TestTensorRoundTrip(t *testing.T) {
	m, err := mtimes.FromRowMajor(2, 3, []float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("FromRowMajor: %v", err)
	}

	tt, err := ToTensor(m)
	if err != nil {
		t.Fatalf("ToTensor: %v", err)
	}
	want := []float64{1, 2, 3, 4, 5, 6}
	got := extractFloat64Backing(t, tt)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("backing mismatch at index %d: got %v, want %v", i, got[i], want[i])
		}
	}

	back, err := FromTensor(tt)
	if err != nil {
		t.Fatalf("FromTensor: %v", err)
	}
	if !m.Equal(back) {
		t.Fatalf("round trip changed matrix: got %v, want %v", back, m)
	}

	if _, err := FromTensor(nil); !errors.Is(err, mtimes.ErrNilTensor) {
		t.Fatalf("expected ErrNilTensor, got %v", err)
	}
}

func TestTensorRoundTripEmpty(t *testing.T) {
	m, err := mtimes.New(4, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tt, err := ToTensor(m)
	if err != nil {
		t.Fatalf("ToTensor: %v", err)
	}
	back, err := FromTensor(tt)
	if err != nil {
		t.Fatalf("FromTensor: %v", err)
	}
	if back.Size != (mtimes.Size{4, 0}) {
		t.Fatalf("unexpected size %v", back.Size)
	}
}
