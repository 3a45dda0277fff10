// Package edit runs the batch facet edits: splitting by a plane,
// intersecting a selection and two-operand booleans. Every operation
// resolves its clip output through a Registry, rebuilds facets that
// inherit their source properties and swaps them in with one
// mesh.Transaction, so the returned Record undoes the whole batch.
package edit

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/philipparndt/gofacet/pkg/clip"
	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

// Result is the outcome of a batch edit. The embedded Record is the
// undo information; Created counts the appended facets.
type Result struct {
	mesh.Record

	// Skipped maps facet ids (as passed in) to the reason they were left
	// untouched
	Skipped map[int]error
	// Aborted is set when the progress sink stopped the batch early
	Aborted bool
	// Empty is set when a boolean left nothing to rebuild
	Empty bool
}

func (r *Result) skip(id int, err error) {
	if r.Skipped == nil {
		r.Skipped = make(map[int]error)
	}
	r.Skipped[id] = err
}

// Engine applies edits to one geometry document
type Engine struct {
	g    *mesh.Geometry
	opts Options
	log  logrus.FieldLogger
	clip *clip.Engine

	// Progress is polled between facets; nil means no reporting
	Progress Progress
}

// NewEngine creates an edit engine for g
func NewEngine(g *mesh.Geometry, opts Options, log logrus.FieldLogger) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{
		g:    g,
		opts: opts,
		log:  log,
		clip: clip.NewEngine(opts.ClipScale),
	}, nil
}

// Geometry returns the edited document
func (e *Engine) Geometry() *mesh.Geometry {
	return e.g
}

func (e *Engine) progress() Progress {
	if e.Progress == nil {
		return noProgress{}
	}
	return e.Progress
}

// change is the computed replacement of one facet
type change struct {
	id     int
	pieces []*mesh.Facet
}

// commit removes the changed facets in descending id order and appends
// their replacements in ascending id order
func (e *Engine) commit(changes []change) mesh.Record {
	if len(changes) == 0 {
		return mesh.Record{}
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].id < changes[j].id })

	tx := e.g.Begin()
	for i := len(changes) - 1; i >= 0; i-- {
		c := changes[i]
		if err := tx.RemoveOriginal(c.id, len(c.pieces) > 0); err != nil {
			// ids were validated before the batch started
			panic(fmt.Sprintf("edit: removing facet %d: %v", c.id, err))
		}
	}
	for _, c := range changes {
		for _, f := range c.pieces {
			tx.InsertNew(f)
		}
	}
	return tx.Commit()
}

// checkIDs rejects unknown and repeated facet ids
func (e *Engine) checkIDs(ids []int) error {
	if e.g.InTransaction() {
		return ErrTransactionOpen
	}
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if _, err := e.g.Facet(id); err != nil {
			return err
		}
		if seen[id] {
			return fmt.Errorf("%w: facet %d selected twice", ErrInsufficientSelection, id)
		}
		seen[id] = true
	}
	return nil
}

// project returns the facet loop in plane coordinates of basis
func (e *Engine) project(f *mesh.Facet, basis geometry.Basis) []clip.ProjectedPoint {
	pts := make([]clip.ProjectedPoint, len(f.Indices))
	for i, idx := range f.Indices {
		pts[i] = clip.ProjectedPoint{Pos: basis.ToPlane2D(e.g.Vertices[idx].Position), ID: idx}
	}
	return pts
}

// rebuild turns a clip forest into facets derived from source. Holes
// are bridged into their outer loop.
func (e *Engine) rebuild(forest clip.Forest, basis geometry.Basis, known []clip.ProjectedPoint, reg *Registry, source *mesh.Facet) []*mesh.Facet {
	rb := NewRebuilder(e.g, e.opts.Tolerance)
	var pieces []*mesh.Facet
	for _, poly := range forest.Polygons {
		ids := reg.ResolveLoop(poly.Bridged(), basis, known)
		if f := rb.Build(ids, source); f != nil {
			pieces = append(pieces, f)
		}
	}
	return pieces
}

// Undo reverts a batch result
func (e *Engine) Undo(r mesh.Record, mode mesh.UndoMode) error {
	if err := e.g.Undo(r, mode); err != nil {
		return fmt.Errorf("failed to undo: %w", err)
	}
	e.log.WithFields(logrus.Fields{"deleted": len(r.Deleted), "created": r.Created, "mode": mode}).Debug("undo")
	return nil
}
