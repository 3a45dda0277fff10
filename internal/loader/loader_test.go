package loader

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func quiet() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestLoadSTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, []byte(triangle), 0o644))

	m, err := Load(context.Background(), path, quiet())
	require.NoError(t, err)
	defer m.Close()
	assert.Equal(t, "tri", m.Geometry.Name)
	assert.Equal(t, 1, m.Geometry.FacetCount())
	assert.Equal(t, []string{path}, m.Files)
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load(context.Background(), "model.obj", quiet())
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestWatchReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.stl")
	require.NoError(t, os.WriteFile(path, []byte(triangle), 0o644))
	m, err := Load(context.Background(), path, quiet())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loaded := make(chan int, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, m, 20*time.Millisecond, quiet(), func(next *Model) {
			select {
			case loaded <- next.Geometry.FacetCount():
			default:
			}
		})
	}()

	// Give the watcher time to register before writing
	var count int
	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(triangle), 0o644)
		select {
		case count = <-loaded:
			return true
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, count)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
