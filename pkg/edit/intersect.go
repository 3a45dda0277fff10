package edit

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/philipparndt/gofacet/pkg/clip"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

// Intersect reduces every facet in ids to the region it shares with all
// the others, seen in its own plane. Facets with nothing in common are
// removed; facets already inside all others stay untouched. A facet the
// clip engine rejects is skipped without stopping the batch.
func (e *Engine) Intersect(ids []int) (Result, error) {
	var res Result
	if len(ids) < 2 {
		return res, fmt.Errorf("%w: intersect needs at least two facets, got %d", ErrInsufficientSelection, len(ids))
	}
	if err := e.checkIDs(ids); err != nil {
		return res, err
	}

	var operands []int
	for _, id := range ids {
		if err := e.checkOperand(e.g.Facets[id]); err != nil {
			e.log.WithFields(logrus.Fields{"op": "intersect", "facet": id}).WithError(err).Warn("facet skipped")
			res.skip(id, err)
			continue
		}
		operands = append(operands, id)
	}
	if len(operands) < 2 {
		return res, fmt.Errorf("%w: fewer than two valid facets", ErrInsufficientSelection)
	}

	reg := NewRegistry(e.g, e.opts.Tolerance)
	progress := e.progress()
	var changes []change

	for k, id := range operands {
		log := e.log.WithFields(logrus.Fields{"op": "intersect", "facet": id})
		pieces, keep, err := e.intersectFacet(id, operands, reg)
		switch {
		case err != nil:
			log.WithError(err).Warn("facet skipped")
			res.skip(id, err)
		case keep:
			log.Debug("facet unchanged")
		default:
			log.WithField("pieces", len(pieces)).Debug("facet intersected")
			changes = append(changes, change{id: id, pieces: pieces})
		}

		progress.ReportProgress(float64(k+1) / float64(len(operands)))
		if k+1 < len(operands) && progress.ShouldAbort() {
			res.Aborted = true
			e.log.WithField("processed", k+1).Info("intersect aborted")
			break
		}
	}

	res.Record = e.commit(changes)
	return res, nil
}

// checkOperand rejects facets that are not planar or whose loop crosses
// itself in its own plane
func (e *Engine) checkOperand(f *mesh.Facet) error {
	if err := f.CheckPlanar(e.g.Vertices, e.opts.PlanarityTolerance); err != nil {
		return err
	}
	basis, err := f.Basis(e.g.Vertices)
	if err != nil {
		return err
	}
	return clip.ValidateLoop(clip.Positions(e.project(f, basis)))
}

// intersectFacet clips facet id successively against every other
// operand. keep reports a facet whose common region is the facet itself.
func (e *Engine) intersectFacet(id int, operands []int, reg *Registry) ([]*mesh.Facet, bool, error) {
	f := e.g.Facets[id]
	basis, err := f.Basis(e.g.Vertices)
	if err != nil {
		return nil, false, err
	}
	own := e.project(f, basis)
	known := append([]clip.ProjectedPoint(nil), own...)
	current := []clip.Loop{clip.Positions(own)}

	var forest clip.Forest
	for _, other := range operands {
		if other == id {
			continue
		}
		o := e.g.Facets[other]
		loop := make(clip.Loop, len(o.Indices))
		for i, idx := range o.Indices {
			p := e.g.Vertices[idx].Position
			loop[i] = basis.ToPlane2D(p)
			if math.Abs(basis.DistanceTo(p)) <= e.opts.PlanarityTolerance {
				known = append(known, clip.ProjectedPoint{Pos: loop[i], ID: idx})
			}
		}
		forest, err = e.clip.Execute(current, []clip.Loop{loop}, clip.Intersection, false)
		if err != nil {
			return nil, false, fmt.Errorf("failed to intersect with facet %d: %w", other, err)
		}
		if forest.Empty() {
			return nil, false, nil
		}
		current = forest.Loops()
	}

	pieces := e.rebuild(forest, basis, known, reg, f)
	if len(pieces) == 1 && sameLoop(pieces[0].Indices, f.Indices) {
		return nil, true, nil
	}
	return pieces, false, nil
}

// sameLoop reports whether two loops visit the same vertices in the same
// cyclic order
func sameLoop(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for shift := range b {
		match := true
		for i := range a {
			if a[i] != b[(i+shift)%len(b)] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
