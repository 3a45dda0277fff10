package edit

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/philipparndt/gofacet/pkg/clip"
	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

// Split cuts every facet in ids by the plane through point with the
// given normal. Facets the plane misses are left alone. Cut points on
// edges shared by several facets of the batch become one vertex.
func (e *Engine) Split(ids []int, point, normal geometry.Vector3) (Result, error) {
	var res Result
	if len(ids) == 0 {
		return res, fmt.Errorf("%w: split needs at least one facet", ErrInsufficientSelection)
	}
	plane, err := geometry.MakeBasis(point, normal)
	if err != nil {
		return res, err
	}
	if err := e.checkIDs(ids); err != nil {
		return res, err
	}

	arena := clip.NewArena()
	reg := NewRegistry(e.g, e.opts.Tolerance)
	progress := e.progress()
	var changes []change

	for k, id := range ids {
		f := e.g.Facets[id]
		pieces, err := e.splitFacet(f, plane, arena, reg)
		log := e.log.WithFields(logrus.Fields{"op": "split", "facet": id})
		switch {
		case err != nil:
			log.WithError(err).Warn("facet skipped")
			res.skip(id, err)
		case pieces != nil:
			log.WithField("pieces", len(pieces)).Debug("facet split")
			changes = append(changes, change{id: id, pieces: pieces})
		}

		progress.ReportProgress(float64(k+1) / float64(len(ids)))
		if k+1 < len(ids) && progress.ShouldAbort() {
			res.Aborted = true
			e.log.WithField("processed", k+1).Info("split aborted")
			break
		}
	}

	res.Record = e.commit(changes)
	return res, nil
}

// cutLine expresses the intersection of the cutting plane with the
// facet plane as a line in the facet's basis. ok is false when the
// planes are parallel.
func (e *Engine) cutLine(f *mesh.Facet, basis geometry.Basis, plane geometry.Basis) (clip.Line, bool) {
	n := plane.N
	g := geometry.Vector2{X: n.Dot(basis.U), Y: n.Dot(basis.V)}
	glen := g.Length()
	if glen < e.opts.Tolerance {
		return clip.Line{}, false
	}
	// Signed distance of plane point q from the cutting plane is c + g·q
	c := n.Dot(basis.Origin.Sub(plane.Origin))
	foot := basis.ToPlane2D(plane.Origin)
	d := (c + g.Dot(foot)) / (glen * glen)
	line := clip.NewLine(foot.Sub(g.Mul(d)), g)

	// Order cut points by a direction shared by every facet in the plane
	if dir := basis.Direction2D(n.Cross(f.Normal).Canonical()); dir.Length() > 0 {
		line.Dir = dir.Normalize()
	}
	return line, true
}

func (e *Engine) splitFacet(f *mesh.Facet, plane geometry.Basis, arena *clip.Arena, reg *Registry) ([]*mesh.Facet, error) {
	if err := f.CheckPlanar(e.g.Vertices, e.opts.PlanarityTolerance); err != nil {
		return nil, err
	}
	basis, err := f.Basis(e.g.Vertices)
	if err != nil {
		return nil, err
	}
	line, ok := e.cutLine(f, basis, plane)
	if !ok {
		return nil, nil
	}

	loop := e.project(f, basis)
	if err := clip.ValidateLoop(clip.Positions(loop)); err != nil {
		return nil, err
	}
	split := arena.Split(loop, line, e.opts.Tolerance)
	if !split.Cut() {
		return nil, nil
	}

	mark := reg.mark()
	rb := NewRebuilder(e.g, e.opts.Tolerance)
	var pieces []*mesh.Facet
	if split.Simple() {
		subs := append(split.Inside, split.Outside...)
		if e.solidLoops(arena, subs) < 2 {
			arena.Release(split.Loop)
			return nil, nil
		}
		for _, sub := range subs {
			ids := make([]int, len(sub))
			for i, idx := range sub {
				ids[i] = e.resolveNode(arena, idx, basis, reg)
			}
			if p := rb.Build(ids, f); p != nil {
				pieces = append(pieces, p)
			}
		}
	} else {
		known := append([]clip.ProjectedPoint(nil), loop...)
		for _, idx := range split.Loop {
			if n := arena.Node(idx); n.ID < 0 {
				id := e.resolveNode(arena, idx, basis, reg)
				known = append(known, clip.ProjectedPoint{Pos: n.Pos, ID: id})
			}
		}
		outline := clip.Positions(loop)
		for _, side := range []clip.Side{clip.Inside, clip.Outside} {
			forest, err := e.clip.Clip(outline, line, side)
			if err != nil {
				arena.Release(split.Loop)
				reg.forget(mark)
				return nil, err
			}
			pieces = append(pieces, e.rebuild(forest, basis, known, reg, f)...)
		}
	}

	// A cut that only shaved off a degenerate sliver leaves the facet as
	// is. Neighbours must not pick up its cut vertices.
	if len(pieces) < 2 {
		arena.Release(split.Loop)
		reg.forget(mark)
		return nil, nil
	}
	return pieces, nil
}

// solidLoops counts the sub-loops that would not be dropped as slivers
func (e *Engine) solidLoops(arena *clip.Arena, subs [][]int) int {
	n := 0
	for _, sub := range subs {
		if math.Abs(clip.Positions(arena.Points(sub)).Area()) >= e.opts.Tolerance*e.opts.Tolerance {
			n++
		}
	}
	return n
}

// resolveNode assigns a vertex id to an arena node. Cut nodes linked to
// a cut on the same edge of an earlier facet reuse its vertex.
func (e *Engine) resolveNode(arena *clip.Arena, idx int, basis geometry.Basis, reg *Registry) int {
	n := arena.Node(idx)
	if n.ID >= 0 {
		return n.ID
	}
	if n.Link >= 0 {
		if first := arena.Node(n.Link); first.ID >= 0 {
			n.ID = first.ID
			return n.ID
		}
	}
	n.ID = reg.Resolve(n.Pos, basis, nil)
	return n.ID
}
