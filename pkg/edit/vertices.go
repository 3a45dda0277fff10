package edit

import (
	"fmt"

	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

// MirrorVertices reflects the vertices in ids across the plane through
// point with the given normal and refreshes the facets using them.
func (e *Engine) MirrorVertices(ids []int, point, normal geometry.Vector3) ([]mesh.UndoPoint, error) {
	return e.moveVertices(ids, point, normal, geometry.Basis.Mirror)
}

// ProjectVertices drops the vertices in ids onto the plane
func (e *Engine) ProjectVertices(ids []int, point, normal geometry.Vector3) ([]mesh.UndoPoint, error) {
	return e.moveVertices(ids, point, normal, geometry.Basis.Project)
}

func (e *Engine) moveVertices(ids []int, point, normal geometry.Vector3, move func(geometry.Basis, geometry.Vector3) geometry.Vector3) ([]mesh.UndoPoint, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no vertices", ErrInsufficientSelection)
	}
	plane, err := geometry.MakeBasis(point, normal)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id < 0 || id >= len(e.g.Vertices) {
			return nil, fmt.Errorf("%w: %d", mesh.ErrVertexNotFound, id)
		}
	}
	undo := make([]mesh.UndoPoint, 0, len(ids))
	for _, id := range ids {
		v := &e.g.Vertices[id]
		undo = append(undo, mesh.UndoPoint{OriginalPosition: v.Position, OriginalVertexID: id})
		v.Position = move(plane, v.Position)
	}
	e.g.RefreshFacets(ids)
	return undo, nil
}

// RestoreVertices reverts a mirror or project
func (e *Engine) RestoreVertices(points []mesh.UndoPoint) error {
	if err := e.g.RestoreVertices(points); err != nil {
		return fmt.Errorf("failed to restore vertices: %w", err)
	}
	return nil
}
