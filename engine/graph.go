// graph.go
package engine

import (
	"github.com/pkg/errors"
	"gorgonia.org/gorgonia"
	"gorgonia.org/tensor"

	"github.com/csotherden/gorgonia-mtimes/mtimes"
)

// GraphMatMul evaluates a x b on a gorgonia expression graph with a tape
// machine. It serves as an independent backend to cross-check the kernel.
// The operands are cloned so the graph never aliases caller memory.
func GraphMatMul(a, b *tensor.Dense) (*tensor.Dense, error) {
	if a == nil || b == nil {
		return nil, mtimes.ErrNilTensor
	}
	if a.Dims() != 2 || b.Dims() != 2 {
		return nil, errors.Wrapf(mtimes.ErrBadShape, "engine: GraphMatMul needs 2D operands, got %v and %v", a.Shape(), b.Shape())
	}
	if a.Shape()[1] != b.Shape()[0] {
		return nil, errors.Wrapf(mtimes.ErrDimensionMismatch, "engine: GraphMatMul a=%v, b=%v", a.Shape(), b.Shape())
	}

	m, k, n := a.Shape()[0], a.Shape()[1], b.Shape()[1]
	if m == 0 || k == 0 || n == 0 {
		// Nothing to evaluate; BLAS rejects zero leading dimensions.
		return tensor.New(
			tensor.WithShape(m, n),
			tensor.WithBacking(make([]float64, m*n)),
		), nil
	}

	g := gorgonia.NewGraph()
	x := gorgonia.NodeFromAny(g, a.Clone().(*tensor.Dense), gorgonia.WithName("A"))
	y := gorgonia.NodeFromAny(g, b.Clone().(*tensor.Dense), gorgonia.WithName("B"))

	z, err := gorgonia.Mul(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "engine: GraphMatMul build")
	}

	vm := gorgonia.NewTapeMachine(g)
	defer vm.Close()
	if err := vm.RunAll(); err != nil {
		return nil, errors.Wrap(err, "engine: GraphMatMul run")
	}

	out, ok := z.Value().(*tensor.Dense)
	if !ok {
		return nil, errors.Errorf("engine: GraphMatMul produced %T", z.Value())
	}
	res := out.Clone().(*tensor.Dense)
	// A single-column b is a vector to gorgonia, which then yields a 1D result.
	if res.Dims() != 2 {
		if err := res.Reshape(m, n); err != nil {
			return nil, errors.Wrap(err, "engine: GraphMatMul reshape")
		}
	}
	return res, nil
}
