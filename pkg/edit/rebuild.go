package edit

import (
	"github.com/philipparndt/gofacet/pkg/mesh"
)

// Rebuilder creates derived facets from resolved vertex loops
type Rebuilder struct {
	g   *mesh.Geometry
	eps float64
}

// NewRebuilder creates a rebuilder over the geometry's vertex array
func NewRebuilder(g *mesh.Geometry, eps float64) *Rebuilder {
	return &Rebuilder{g: g, eps: eps}
}

// Build returns a facet over ids that inherits the properties and
// orientation of source, or nil when the loop is degenerate.
func (b *Rebuilder) Build(ids []int, source *mesh.Facet) *mesh.Facet {
	ids = dedupe(ids)
	if len(ids) < 3 {
		return nil
	}
	f := source.Derive(ids)
	f.Update(b.g.Vertices)
	if f.Area < b.eps*b.eps {
		return nil
	}
	if f.Normal.Dot(source.Normal) < 0 {
		f.Reverse()
		f.Update(b.g.Vertices)
	}
	return f
}

// dedupe drops consecutive repeats, including across the wrap
func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if len(out) > 0 && out[len(out)-1] == id {
			continue
		}
		out = append(out, id)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}
