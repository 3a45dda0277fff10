package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gofacet/pkg/clip"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

func TestIntersectCommonRegion(t *testing.T) {
	g := mesh.NewGeometry()
	addRect(t, g, 0, 0, 2, 2, 0)
	addRect(t, g, 1, 0, 3, 2, 0)
	addRect(t, g, 1, -1, 2, 3, 0)
	before := snapshot(g)
	e := newEngine(t, g)

	res, err := e.Intersect([]int{0, 1, 2})
	require.NoError(t, err)
	assert.Empty(t, res.Skipped)
	assert.Equal(t, 3, res.Created)
	assert.Len(t, res.Deleted, 3)
	require.Len(t, g.Facets, 3)

	ids := map[int]bool{}
	for _, f := range g.Facets {
		assert.InDelta(t, 2, f.Area, 1e-9)
		for _, idx := range f.Indices {
			ids[idx] = true
		}
	}
	assert.Len(t, ids, 4, "all pieces share the same corners")

	require.NoError(t, e.Undo(res.Record, mesh.ToOriginalPositions))
	requireSameFacets(t, before, g)
}

func TestIntersectLeavesContainedFacet(t *testing.T) {
	g := mesh.NewGeometry()
	inner := addRect(t, g, 0, 0, 1, 1, 0)
	addRect(t, g, -1, -1, 2, 2, 0)
	innerFacet := g.Facets[inner]
	e := newEngine(t, g)

	res, err := e.Intersect([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Deleted, 1)
	assert.Equal(t, 1, res.Deleted[0].OriginalPosition)

	require.Len(t, g.Facets, 2)
	assert.Same(t, innerFacet, g.Facets[0])
	assert.True(t, sameLoop(innerFacet.Indices, g.Facets[1].Indices))
	assert.Len(t, g.Vertices, 8)
}

func TestIntersectDisjointConsumesFacets(t *testing.T) {
	g := mesh.NewGeometry()
	addRect(t, g, 0, 0, 1, 1, 0)
	addRect(t, g, 2, 0, 3, 1, 0)
	e := newEngine(t, g)

	res, err := e.Intersect([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Created)
	require.Len(t, res.Deleted, 2)
	for _, d := range res.Deleted {
		assert.False(t, d.ReplaceOriginal)
	}
	assert.Empty(t, g.Facets)

	require.NoError(t, e.Undo(res.Record, mesh.ToEnd))
	assert.Len(t, g.Facets, 2)
}

func TestIntersectSkipsNonPlanar(t *testing.T) {
	g := mesh.NewGeometry()
	addRect(t, g, 0, 0, 2, 2, 0)
	addRect(t, g, 1, 0, 3, 2, 0)
	addPolygon(t, g, vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0.5), vec(0, 1, 0))
	e := newEngine(t, g)

	res, err := e.Intersect([]int{0, 1, 2})
	require.NoError(t, err)
	require.Contains(t, res.Skipped, 2)
	assert.ErrorIs(t, res.Skipped[2], mesh.ErrNonPlanar)
	assert.Equal(t, 2, res.Created)
	assert.InDelta(t, 2+2+g.Facets[0].Area, totalArea(g.Facets), 1e-9)
}

func TestIntersectSkipsSelfCrossingFacet(t *testing.T) {
	g := mesh.NewGeometry()
	bowtie := addPolygon(t, g, vec(0, 0, 0), vec(2, 1, 0), vec(2, 0, 0), vec(0, 2, 0))
	addRect(t, g, 0, 0, 2, 2, 0)
	addRect(t, g, 1, 0, 3, 2, 0)
	bowtieFacet := g.Facets[bowtie]
	e := newEngine(t, g)

	res, err := e.Intersect([]int{0, 1, 2})
	require.NoError(t, err)
	require.Len(t, res.Skipped, 1)
	assert.ErrorIs(t, res.Skipped[bowtie], clip.ErrInvalidPolygon)

	assert.Equal(t, 2, res.Created)
	assert.Len(t, res.Deleted, 2)
	require.Len(t, g.Facets, 3)
	assert.Same(t, bowtieFacet, g.Facets[0])
	for _, f := range g.Facets[1:] {
		assert.InDelta(t, 2, f.Area, 1e-9)
	}
	assert.True(t, sameLoop(g.Facets[1].Indices, g.Facets[2].Indices), "both become the common square")
}

func TestIntersectNeedsTwoFacets(t *testing.T) {
	g := mesh.NewGeometry()
	addRect(t, g, 0, 0, 1, 1, 0)
	e := newEngine(t, g)

	_, err := e.Intersect([]int{0})
	assert.ErrorIs(t, err, ErrInsufficientSelection)
}
