package edit

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

func vec(x, y, z float64) geometry.Vector3 {
	return geometry.NewVector3(x, y, z)
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newEngine(t *testing.T, g *mesh.Geometry) *Engine {
	t.Helper()
	e, err := NewEngine(g, DefaultOptions(), quietLogger())
	require.NoError(t, err)
	return e
}

// addPolygon appends fresh vertices and one facet over them
func addPolygon(t *testing.T, g *mesh.Geometry, pts ...geometry.Vector3) int {
	t.Helper()
	ids := make([]int, len(pts))
	for i, p := range pts {
		ids[i] = g.AddVertex(p)
	}
	_, err := g.AddFacet(ids...)
	require.NoError(t, err)
	return g.FacetCount() - 1
}

func addRect(t *testing.T, g *mesh.Geometry, x0, y0, x1, y1, z float64) int {
	t.Helper()
	return addPolygon(t, g, vec(x0, y0, z), vec(x1, y0, z), vec(x1, y1, z), vec(x0, y1, z))
}

// adjacentSquares builds two unit squares sharing the edge x = 1
func adjacentSquares(t *testing.T) *mesh.Geometry {
	t.Helper()
	g := mesh.NewGeometry()
	for _, p := range []geometry.Vector3{
		vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0), vec(0, 1, 0), vec(2, 0, 0), vec(2, 1, 0),
	} {
		g.AddVertex(p)
	}
	_, err := g.AddFacet(0, 1, 2, 3)
	require.NoError(t, err)
	_, err = g.AddFacet(1, 4, 5, 2)
	require.NoError(t, err)
	return g
}

func snapshot(g *mesh.Geometry) []*mesh.Facet {
	return append([]*mesh.Facet(nil), g.Facets...)
}

func requireSameFacets(t *testing.T, want []*mesh.Facet, g *mesh.Geometry) {
	t.Helper()
	require.Len(t, g.Facets, len(want))
	for i := range want {
		require.Same(t, want[i], g.Facets[i], "facet %d", i)
	}
}

func totalArea(facets []*mesh.Facet) float64 {
	a := 0.0
	for _, f := range facets {
		a += f.Area
	}
	return a
}

func vertexNear(g *mesh.Geometry, p geometry.Vector3) []int {
	var ids []int
	for i, v := range g.Vertices {
		if v.Position.Near(p, 1e-9) {
			ids = append(ids, i)
		}
	}
	return ids
}
