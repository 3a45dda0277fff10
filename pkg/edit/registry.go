package edit

import (
	"github.com/philipparndt/gofacet/pkg/clip"
	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

// Registry maps clip results back to global vertex ids. A point is
// looked up in the known projections of the current facet first, then
// among the vertices minted earlier in the batch, and only then appended
// to the vertex array.
type Registry struct {
	g     *mesh.Geometry
	eps   float64
	fresh []int
}

// NewRegistry creates a registry for one batch operation
func NewRegistry(g *mesh.Geometry, eps float64) *Registry {
	return &Registry{g: g, eps: eps}
}

// Resolve returns the id of the vertex at plane point p
func (r *Registry) Resolve(p geometry.Vector2, basis geometry.Basis, known []clip.ProjectedPoint) int {
	best, bestDist := -1, r.eps
	for _, k := range known {
		if k.ID < 0 {
			continue
		}
		if d := k.Pos.Distance(p); d < bestDist {
			best, bestDist = k.ID, d
		}
	}
	if best >= 0 {
		return best
	}

	world := basis.ToWorld3D(p)
	for _, id := range r.fresh {
		if r.g.Vertices[id].Position.Near(world, r.eps) {
			return id
		}
	}
	id := r.g.AddVertex(world)
	r.fresh = append(r.fresh, id)
	return id
}

// ResolveLoop resolves every point of a clip loop
func (r *Registry) ResolveLoop(loop clip.Loop, basis geometry.Basis, known []clip.ProjectedPoint) []int {
	ids := make([]int, len(loop))
	for i, p := range loop {
		ids[i] = r.Resolve(p, basis, known)
	}
	return ids
}

// mark returns a position in the minted list for a later forget
func (r *Registry) mark() int {
	return len(r.fresh)
}

// forget hides the vertices minted since m from later lookups. They stay
// in the vertex array but no facet of the batch will reference them.
func (r *Registry) forget(m int) {
	r.fresh = r.fresh[:m]
}
