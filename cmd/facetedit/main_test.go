package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gofacet/pkg/edit"
	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/stl"
)

const triangle = `solid tri
facet normal 0 0 1
outer loop
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
endloop
endfacet
endsolid tri
`

func writeModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, []byte(triangle), 0o644))
	return path
}

func execute(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestVectorValue(t *testing.T) {
	var v geometry.Vector3
	f := newVectorValue(geometry.NewVector3(0, 0, 1), &v)
	assert.Equal(t, "0,0,1", f.String())

	require.NoError(t, f.Set("1, 2.5,-3"))
	assert.Equal(t, geometry.NewVector3(1, 2.5, -3), v)

	assert.ErrorContains(t, f.Set("1,2"), "three comma separated values")
	assert.ErrorContains(t, f.Set("1,x,2"), "invalid coordinate")
}

func TestSplitCommandWritesOutput(t *testing.T) {
	path := writeModel(t)
	out := filepath.Join(t.TempDir(), "out.stl")
	defer func() { outputFile, facetIDs = "", nil }()

	err := execute("split", path, "--facets", "0", "--point", "0.25,0,0", "--normal", "1,0,0", "-o", out, "--log-level", "error")
	require.NoError(t, err)

	g, err := stl.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, 3, g.FacetCount())
	assert.InDelta(t, 0.5, g.SurfaceArea(), 1e-9)
}

func TestInvalidLogLevel(t *testing.T) {
	err := execute("info", writeModel(t), "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestBooleanNeedsTwoFacets(t *testing.T) {
	defer func() { facetIDs = nil; logLevel = "info" }()
	err := execute("boolean", writeModel(t), "--facets", "0", "--log-level", "error")
	assert.ErrorIs(t, err, edit.ErrInsufficientSelection)
}

func TestSplitDryRunLeavesModel(t *testing.T) {
	path := writeModel(t)
	out := filepath.Join(t.TempDir(), "out.stl")
	defer func() { dryRun, outputFile, facetIDs = false, "", nil }()

	err := execute("split", path, "--facets", "0", "--point", "0.25,0,0", "--normal", "1,0,0", "-o", out, "--dry-run", "--log-level", "error")
	require.NoError(t, err)
	assert.NoFileExists(t, out)
}
