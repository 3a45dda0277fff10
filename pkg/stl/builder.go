package stl

import (
	"math"

	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

// builder welds triangle corners into a shared vertex array
type builder struct {
	g    *mesh.Geometry
	weld float64
	grid map[[3]int64]int
}

func newBuilder(weld float64) *builder {
	if weld <= 0 {
		weld = DefaultWeldTolerance
	}
	return &builder{g: mesh.NewGeometry(), weld: weld, grid: make(map[[3]int64]int)}
}

func (b *builder) vertex(p geometry.Vector3) int {
	key := [3]int64{
		int64(math.Round(p.X / b.weld)),
		int64(math.Round(p.Y / b.weld)),
		int64(math.Round(p.Z / b.weld)),
	}
	if id, ok := b.grid[key]; ok {
		return id
	}
	id := b.g.AddVertex(p)
	b.grid[key] = id
	return id
}

// addTriangle appends a facet unless welding collapsed it
func (b *builder) addTriangle(v1, v2, v3 geometry.Vector3) {
	i1, i2, i3 := b.vertex(v1), b.vertex(v2), b.vertex(v3)
	if i1 == i2 || i2 == i3 || i1 == i3 {
		return
	}
	// Indices are known to exist
	_, _ = b.g.AddFacet(i1, i2, i3)
}
