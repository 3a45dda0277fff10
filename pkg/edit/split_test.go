package edit

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gofacet/pkg/clip"
	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

func TestSplitUnitSquare(t *testing.T) {
	g := mesh.NewGeometry()
	addRect(t, g, 0, 0, 1, 1, 0)
	before := snapshot(g)
	e := newEngine(t, g)

	res, err := e.Split([]int{0}, vec(0.5, 0, 0), vec(1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Deleted, 1)
	assert.Equal(t, 0, res.Deleted[0].OriginalPosition)
	assert.True(t, res.Deleted[0].ReplaceOriginal)
	assert.Empty(t, res.Skipped)

	require.Len(t, g.Facets, 2)
	require.Len(t, g.Vertices, 6)
	bottom := vertexNear(g, vec(0.5, 0, 0))
	top := vertexNear(g, vec(0.5, 1, 0))
	require.Len(t, bottom, 1)
	require.Len(t, top, 1)
	for _, f := range g.Facets {
		assert.InDelta(t, 0.5, f.Area, 1e-12)
		assert.Len(t, f.Indices, 4)
		assert.Contains(t, f.Indices, bottom[0])
		assert.Contains(t, f.Indices, top[0])
		assert.InDelta(t, 1, f.Normal.Z, 1e-12)
	}

	require.NoError(t, e.Undo(res.Record, mesh.ToOriginalPositions))
	requireSameFacets(t, before, g)
}

func TestSplitAdjacentFacetsShareCutVertex(t *testing.T) {
	g := adjacentSquares(t)
	e := newEngine(t, g)

	res, err := e.Split([]int{0, 1}, vec(0, 0.5, 0), vec(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Created)
	assert.Len(t, res.Deleted, 2)
	assert.Len(t, g.Vertices, 9)

	seam := vertexNear(g, vec(1, 0.5, 0))
	require.Len(t, seam, 1, "shared edge must be cut by a single vertex")
	users := 0
	for _, f := range g.Facets {
		for _, idx := range f.Indices {
			if idx == seam[0] {
				users++
			}
		}
	}
	assert.Equal(t, 4, users)
	assert.InDelta(t, 2, totalArea(g.Facets), 1e-12)
}

func TestSplitUndoRestoresOrder(t *testing.T) {
	g := adjacentSquares(t)
	addRect(t, g, 5, 5, 6, 6, 0)
	before := snapshot(g)
	e := newEngine(t, g)

	res, err := e.Split([]int{1, 0}, vec(0, 0.5, 0), vec(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Created)
	assert.Same(t, before[2], g.Facets[0], "unrelated facet moves to the front")

	require.NoError(t, e.Undo(res.Record, mesh.ToOriginalPositions))
	requireSameFacets(t, before, g)
}

func TestSplitMissIsNoop(t *testing.T) {
	g := mesh.NewGeometry()
	addRect(t, g, 0, 0, 1, 1, 0)
	e := newEngine(t, g)

	for name, normal := range map[string]geometry.Vector3{
		"beside":   vec(1, 0, 0),
		"parallel": vec(0, 0, 1),
	} {
		t.Run(name, func(t *testing.T) {
			res, err := e.Split([]int{0}, vec(5, 0, 3), normal)
			require.NoError(t, err)
			assert.True(t, res.IsEmpty())
			assert.Equal(t, 0, res.Created)
			assert.Empty(t, res.Deleted)
			assert.Len(t, g.Facets, 1)
			assert.Len(t, g.Vertices, 4)
		})
	}
}

func TestSplitThroughVertexAddsNoVertex(t *testing.T) {
	g := mesh.NewGeometry()
	addRect(t, g, 0, 0, 1, 1, 0)
	e := newEngine(t, g)

	res, err := e.Split([]int{0}, vec(0, 0, 0), vec(1, -1, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Len(t, g.Vertices, 4)
	for _, f := range g.Facets {
		assert.Len(t, f.Indices, 3)
		assert.InDelta(t, 0.5, f.Area, 1e-12)
	}
}

func TestSplitConservesArea(t *testing.T) {
	g := mesh.NewGeometry()
	addPolygon(t, g, vec(0, 0, 1), vec(4, 0, 1), vec(5, 3, 1), vec(2, 5, 1), vec(-1, 3, 1))
	area := g.Facets[0].Area
	e := newEngine(t, g)

	res, err := e.Split([]int{0}, vec(2, 2, 0), vec(1, 1, 0.3))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.InDelta(t, area, totalArea(g.Facets), 1e-9)
}

func TestSplitConcaveFacet(t *testing.T) {
	g := mesh.NewGeometry()
	addPolygon(t, g,
		vec(0, 0, 0), vec(3, 0, 0), vec(3, 3, 0), vec(2, 3, 0),
		vec(2, 1, 0), vec(1, 1, 0), vec(1, 3, 0), vec(0, 3, 0))
	e := newEngine(t, g)

	res, err := e.Split([]int{0}, vec(0, 2, 0), vec(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)
	assert.Len(t, g.Vertices, 12)
	assert.InDelta(t, 7, totalArea(g.Facets), 1e-6)
	for _, x := range []float64{0, 1, 2, 3} {
		assert.Len(t, vertexNear(g, vec(x, 2, 0)), 1)
	}
}

func TestSplitVertexTouchingCut(t *testing.T) {
	g := mesh.NewGeometry()
	addPolygon(t, g, vec(0, 0, 0), vec(4, 0, 0), vec(4, 2, 0), vec(2, 1, 0), vec(0, 2, 0))
	e := newEngine(t, g)

	res, err := e.Split([]int{0}, vec(0, 1, 0), vec(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)
	assert.Len(t, g.Vertices, 7)
	assert.InDelta(t, 6, totalArea(g.Facets), 1e-9)

	var areas []float64
	for _, f := range g.Facets {
		assert.Contains(t, f.Indices, 3, "every piece meets the touching vertex")
		seen := map[int]bool{}
		for _, idx := range f.Indices {
			assert.False(t, seen[idx], "piece visits vertex %d twice", idx)
			seen[idx] = true
		}
		basis, err := f.Basis(g.Vertices)
		require.NoError(t, err)
		assert.NoError(t, clip.ValidateLoop(clip.Positions(e.project(f, basis))))
		areas = append(areas, f.Area)
	}
	sort.Float64s(areas)
	assert.InDeltaSlice(t, []float64{1, 1, 4}, areas, 1e-9)
}

func TestSplitSkipsSelfCrossingFacet(t *testing.T) {
	g := mesh.NewGeometry()
	addPolygon(t, g, vec(0, 0, 0), vec(2, 1, 0), vec(2, 0, 0), vec(0, 2, 0))
	addRect(t, g, 3, 0, 4, 2, 0)
	e := newEngine(t, g)

	res, err := e.Split([]int{0, 1}, vec(0, 0.5, 0), vec(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, res.Skipped, 1)
	assert.ErrorIs(t, res.Skipped[0], clip.ErrInvalidPolygon)
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Deleted, 1)
	assert.Equal(t, 1, res.Deleted[0].OriginalPosition)
}

func TestSplitSliverLeavesNeighbourAlone(t *testing.T) {
	g := mesh.NewGeometry()
	for _, p := range []geometry.Vector3{
		vec(-1.1e-6, 0, 0), vec(1, 0, 0), vec(1, 1.5, 0), vec(-1, -1, 0),
	} {
		g.AddVertex(p)
	}
	_, err := g.AddFacet(0, 1, 2)
	require.NoError(t, err)
	_, err = g.AddFacet(1, 0, 3)
	require.NoError(t, err)
	sliver := g.Facets[0]
	e := newEngine(t, g)

	// The cut trims a piece thinner than the tolerance off the first facet
	res, err := e.Split([]int{0, 1}, vec(0, 0, 0), vec(1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Deleted, 1)
	assert.Equal(t, 1, res.Deleted[0].OriginalPosition)
	assert.Same(t, sliver, g.Facets[0])

	assert.Len(t, g.Vertices, 6, "the unchanged facet mints no cut vertices")
	used := map[int]bool{}
	for _, f := range g.Facets {
		for _, idx := range f.Indices {
			used[idx] = true
		}
	}
	for id := range g.Vertices {
		assert.True(t, used[id], "vertex %d is unused", id)
	}
}

func TestSplitSkipsNonPlanarFacet(t *testing.T) {
	g := mesh.NewGeometry()
	addPolygon(t, g, vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0.1), vec(0, 1, 0))
	addRect(t, g, 2, 0, 3, 1, 0)
	e := newEngine(t, g)

	res, err := e.Split([]int{0, 1}, vec(0, 0.5, 0), vec(0, 1, 0))
	require.NoError(t, err)
	require.Contains(t, res.Skipped, 0)
	assert.ErrorIs(t, res.Skipped[0], mesh.ErrNonPlanar)
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Deleted, 1)
	assert.Equal(t, 1, res.Deleted[0].OriginalPosition)
}

func TestSplitAbortKeepsProcessedFacets(t *testing.T) {
	g := mesh.NewGeometry()
	for i := 0; i < 3; i++ {
		addRect(t, g, float64(2*i), 0, float64(2*i+1), 1, 0)
	}
	e := newEngine(t, g)
	var fractions []float64
	abort := &AbortFlag{OnProgress: func(f float64) { fractions = append(fractions, f) }}
	abort.Abort()
	e.Progress = abort

	res, err := e.Split([]int{0, 1, 2}, vec(0, 0.5, 0), vec(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, res.Aborted)
	assert.Equal(t, 2, res.Created)
	require.Len(t, res.Deleted, 1)
	assert.Equal(t, 0, res.Deleted[0].OriginalPosition)
	assert.Len(t, g.Facets, 4)
	assert.InDeltaSlice(t, []float64{1.0 / 3}, fractions, 1e-12)
}

func TestSplitRejectsBadInput(t *testing.T) {
	g := mesh.NewGeometry()
	addRect(t, g, 0, 0, 1, 1, 0)
	e := newEngine(t, g)

	_, err := e.Split(nil, vec(0, 0, 0), vec(1, 0, 0))
	assert.ErrorIs(t, err, ErrInsufficientSelection)
	_, err = e.Split([]int{0}, vec(0, 0, 0), vec(0, 0, 0))
	assert.ErrorIs(t, err, geometry.ErrDegeneratePlane)
	_, err = e.Split([]int{3}, vec(0, 0, 0), vec(1, 0, 0))
	assert.ErrorIs(t, err, mesh.ErrFacetNotFound)
	_, err = e.Split([]int{0, 0}, vec(0, 0, 0), vec(1, 0, 0))
	assert.ErrorIs(t, err, ErrInsufficientSelection)

	tx := g.Begin()
	_, err = e.Split([]int{0}, vec(0.5, 0, 0), vec(1, 0, 0))
	assert.ErrorIs(t, err, ErrTransactionOpen)
	tx.Commit()
}

func TestSplitKeepsProperties(t *testing.T) {
	g := mesh.NewGeometry()
	addRect(t, g, 0, 0, 1, 1, 0)
	src := g.Facets[0]
	src.Props.Sticking = 0.7
	src.Props.OutgassingMap = []float64{1, 2}
	src.TextureCells = []float64{3}
	e := newEngine(t, g)

	_, err := e.Split([]int{0}, vec(0.5, 0, 0), vec(1, 0, 0))
	require.NoError(t, err)
	for _, f := range g.Facets {
		assert.Equal(t, 0.7, f.Props.Sticking)
		assert.Equal(t, []float64{1, 2}, f.Props.OutgassingMap)
		assert.Nil(t, f.TextureCells)
		assert.Equal(t, src.U, f.U, "texture frame is inherited")
	}
}
