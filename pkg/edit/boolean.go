package edit

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/philipparndt/gofacet/pkg/clip"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

// Boolean combines two coplanar facets. Both operands are replaced by
// the result facets, which inherit the properties of the subject: a,
// or b for a reversed Difference. An empty result removes both operands
// and sets Result.Empty.
func (e *Engine) Boolean(a, b int, op clip.Op, reverseOrder bool) (Result, error) {
	var res Result
	if a == b {
		return res, fmt.Errorf("%w: boolean needs two distinct facets", ErrInsufficientSelection)
	}
	if err := e.checkIDs([]int{a, b}); err != nil {
		return res, err
	}
	fa, fb := e.g.Facets[a], e.g.Facets[b]
	for _, f := range []*mesh.Facet{fa, fb} {
		if err := f.CheckPlanar(e.g.Vertices, e.opts.PlanarityTolerance); err != nil {
			return res, err
		}
	}

	subject := fa
	if reverseOrder && op == clip.Difference {
		subject = fb
	}
	basis, err := subject.Basis(e.g.Vertices)
	if err != nil {
		return res, err
	}
	for _, idx := range append(append([]int(nil), fa.Indices...), fb.Indices...) {
		if d := math.Abs(basis.DistanceTo(e.g.Vertices[idx].Position)); d > e.opts.PlanarityTolerance {
			return res, fmt.Errorf("%w: facets %d and %d are not coplanar (vertex %d is %.3g off)", mesh.ErrNonPlanar, a, b, idx, d)
		}
	}

	pa, pb := e.project(fa, basis), e.project(fb, basis)
	forest, err := e.clip.Execute([]clip.Loop{clip.Positions(pa)}, []clip.Loop{clip.Positions(pb)}, op, reverseOrder)
	if err != nil {
		return res, fmt.Errorf("failed to compute %s of facets %d and %d: %w", op, a, b, err)
	}

	known := append(append([]clip.ProjectedPoint(nil), pa...), pb...)
	reg := NewRegistry(e.g, e.opts.Tolerance)
	pieces := e.rebuild(forest, basis, known, reg, subject)
	res.Empty = len(pieces) == 0

	// Result facets follow the subject's change, the other operand is consumed
	other := b
	if subject == fb {
		other = a
	}
	subjectID := a + b - other
	res.Record = e.commit([]change{{id: subjectID, pieces: pieces}, {id: other}})

	e.log.WithFields(logrus.Fields{"op": op.String(), "facets": []int{a, b}, "pieces": len(pieces)}).Debug("boolean applied")
	e.progress().ReportProgress(1)
	return res, nil
}
