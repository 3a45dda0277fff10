package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gofacet/pkg/clip"
	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

func TestRegistryResolveTiers(t *testing.T) {
	g := mesh.NewGeometry()
	g.AddVertex(vec(0, 0, 0))
	g.AddVertex(vec(1, 0, 0))
	basis, err := geometry.MakeBasis(vec(0, 0, 0), vec(0, 0, 1))
	require.NoError(t, err)
	reg := NewRegistry(g, 1e-6)

	known := []clip.ProjectedPoint{
		{Pos: basis.ToPlane2D(vec(0, 0, 0)), ID: 0},
		{Pos: basis.ToPlane2D(vec(1, 0, 0)), ID: 1},
	}
	assert.Equal(t, 1, reg.Resolve(known[1].Pos.Add(geometry.NewVector2(1e-7, 0)), basis, known))

	p := basis.ToPlane2D(vec(0.5, 0.5, 0))
	minted := reg.Resolve(p, basis, known)
	assert.Equal(t, 2, minted)
	assert.True(t, g.Vertices[minted].Position.Near(vec(0.5, 0.5, 0), 1e-12))

	// A later facet finds the minted point without knowing it
	assert.Equal(t, minted, reg.Resolve(p.Add(geometry.NewVector2(0, 1e-7)), basis, nil))
	assert.Equal(t, 1, reg.mark())
	assert.Len(t, g.Vertices, 3)
}

func TestRegistryForget(t *testing.T) {
	g := mesh.NewGeometry()
	basis, err := geometry.MakeBasis(vec(0, 0, 0), vec(0, 0, 1))
	require.NoError(t, err)
	reg := NewRegistry(g, 1e-6)

	p := geometry.NewVector2(0.25, 0.25)
	m := reg.mark()
	first := reg.Resolve(p, basis, nil)
	reg.forget(m)

	second := reg.Resolve(p, basis, nil)
	assert.NotEqual(t, first, second, "forgotten vertices are not reused")
	assert.Equal(t, second, reg.Resolve(p, basis, nil))
	assert.Len(t, g.Vertices, 2)
}

func TestRegistryIgnoresUnresolvedKnown(t *testing.T) {
	g := mesh.NewGeometry()
	basis, err := geometry.MakeBasis(vec(0, 0, 0), vec(0, 0, 1))
	require.NoError(t, err)
	reg := NewRegistry(g, 1e-6)

	id := reg.Resolve(geometry.NewVector2(0, 0), basis, []clip.ProjectedPoint{{Pos: geometry.NewVector2(0, 0), ID: -1}})
	assert.Equal(t, 0, id)
	assert.Len(t, g.Vertices, 1)
}

func TestRebuilderBuild(t *testing.T) {
	g := mesh.NewGeometry()
	addRect(t, g, 0, 0, 1, 1, 0)
	src := g.Facets[0]
	src.Props.Opacity = 0.5
	src.AngleMapCells = []uint64{7}
	rb := NewRebuilder(g, 1e-6)

	f := rb.Build([]int{0, 1, 1, 2, 0}, src)
	require.NotNil(t, f)
	assert.Equal(t, []int{0, 1, 2}, f.Indices)
	assert.InDelta(t, 0.5, f.Area, 1e-12)
	assert.Equal(t, 0.5, f.Props.Opacity)
	assert.Nil(t, f.AngleMapCells)

	flipped := rb.Build([]int{2, 1, 0}, src)
	require.NotNil(t, flipped)
	assert.InDelta(t, 1, flipped.Normal.Dot(src.Normal), 1e-12, "orientation follows the source")

	assert.Nil(t, rb.Build([]int{0, 1}, src))
	assert.Nil(t, rb.Build([]int{0, 1, 0, 1}, src))
	collinear := g.AddVertex(vec(2, 0, 0))
	assert.Nil(t, rb.Build([]int{0, 1, collinear}, src))
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	for name, mutate := range map[string]func(*Options){
		"tolerance": func(o *Options) { o.Tolerance = 0 },
		"planarity": func(o *Options) { o.PlanarityTolerance = -1 },
		"scale":     func(o *Options) { o.ClipScale = 0 },
		"coarse":    func(o *Options) { o.ClipScale = 1e3 },
	} {
		t.Run(name, func(t *testing.T) {
			o := DefaultOptions()
			mutate(&o)
			assert.ErrorIs(t, o.Validate(), ErrInvalidOptions)
			_, err := NewEngine(mesh.NewGeometry(), o, quietLogger())
			assert.Error(t, err)
		})
	}
}

func TestMirrorAndRestoreVertices(t *testing.T) {
	g := mesh.NewGeometry()
	addRect(t, g, 0, 0, 1, 1, 0)
	e := newEngine(t, g)

	undo, err := e.MirrorVertices([]int{2}, vec(1.5, 0, 0), vec(1, 0, 0))
	require.NoError(t, err)
	require.Len(t, undo, 1)
	assert.Equal(t, 2, undo[0].OriginalVertexID)
	assert.True(t, g.Vertices[2].Position.Near(vec(2, 1, 0), 1e-12))
	assert.InDelta(t, 1.5, g.Facets[0].Area, 1e-12)

	require.NoError(t, e.RestoreVertices(undo))
	assert.InDelta(t, 1, g.Facets[0].Area, 1e-12)

	_, err = e.MirrorVertices(nil, vec(0, 0, 0), vec(1, 0, 0))
	assert.ErrorIs(t, err, ErrInsufficientSelection)
	_, err = e.MirrorVertices([]int{9}, vec(0, 0, 0), vec(1, 0, 0))
	assert.ErrorIs(t, err, mesh.ErrVertexNotFound)
}

func TestProjectVerticesFlattensFacet(t *testing.T) {
	g := mesh.NewGeometry()
	addPolygon(t, g, vec(0, 0, 0), vec(1, 0, 0), vec(1, 1, 0.5), vec(0, 1, 0))
	e := newEngine(t, g)
	require.Error(t, g.Facets[0].CheckPlanar(g.Vertices, 1e-4))

	undo, err := e.ProjectVertices([]int{2}, vec(0, 0, 0), vec(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, undo, 1)
	assert.NoError(t, g.Facets[0].CheckPlanar(g.Vertices, 1e-4))
	assert.InDelta(t, 1, g.Facets[0].Area, 1e-12)
}
