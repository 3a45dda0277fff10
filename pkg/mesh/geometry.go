package mesh

import (
	"fmt"

	"github.com/philipparndt/gofacet/pkg/geometry"
)

// Vertex is a point of the shared vertex array. Its id is its position
// in that array.
type Vertex struct {
	Position geometry.Vector3
	Selected bool
}

// Geometry is the in-memory document: the shared vertex array and the
// facet array indexing into it. It has a single mutator; edits go
// through a Transaction.
type Geometry struct {
	Name     string
	Vertices []Vertex
	Facets   []*Facet

	tx *Transaction
}

// NewGeometry creates an empty document
func NewGeometry() *Geometry {
	return &Geometry{
		Vertices: make([]Vertex, 0),
		Facets:   make([]*Facet, 0),
	}
}

// AddVertex appends a vertex and returns its id
func (g *Geometry) AddVertex(p geometry.Vector3) int {
	g.Vertices = append(g.Vertices, Vertex{Position: p})
	return len(g.Vertices) - 1
}

// AddFacet appends a facet over existing vertex ids and returns it
func (g *Geometry) AddFacet(indices ...int) (*Facet, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= len(g.Vertices) {
			return nil, fmt.Errorf("%w: %d", ErrVertexNotFound, idx)
		}
	}
	f := NewFacet(indices)
	f.Update(g.Vertices)
	g.Facets = append(g.Facets, f)
	return f, nil
}

// Facet returns the facet with the given id
func (g *Geometry) Facet(id int) (*Facet, error) {
	if id < 0 || id >= len(g.Facets) {
		return nil, fmt.Errorf("%w: %d", ErrFacetNotFound, id)
	}
	return g.Facets[id], nil
}

// FacetCount returns the number of facets
func (g *Geometry) FacetCount() int {
	return len(g.Facets)
}

// SelectedFacets returns the ids of selected facets in array order
func (g *Geometry) SelectedFacets() []int {
	var ids []int
	for i, f := range g.Facets {
		if f.Selected {
			ids = append(ids, i)
		}
	}
	return ids
}

// SelectedVertices returns the ids of selected vertices in array order
func (g *Geometry) SelectedVertices() []int {
	var ids []int
	for i, v := range g.Vertices {
		if v.Selected {
			ids = append(ids, i)
		}
	}
	return ids
}

// RefreshFacets recomputes the plane of every facet that references
// one of the given vertices
func (g *Geometry) RefreshFacets(vertexIDs []int) {
	moved := make(map[int]bool, len(vertexIDs))
	for _, id := range vertexIDs {
		moved[id] = true
	}
	for _, f := range g.Facets {
		for _, idx := range f.Indices {
			if moved[idx] {
				f.Update(g.Vertices)
				break
			}
		}
	}
}

// SurfaceArea returns the total area of all facets
func (g *Geometry) SurfaceArea() float64 {
	total := 0.0
	for _, f := range g.Facets {
		total += f.Area
	}
	return total
}

// BoundingBox returns the bounds of all vertices
func (g *Geometry) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, v := range g.Vertices {
		bbox.Extend(v.Position)
	}
	return bbox
}
