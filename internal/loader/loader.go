// Package loader turns the model path given on the command line into a
// geometry, rendering OpenSCAD sources on the way, and reloads it when
// the source files change.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/philipparndt/gofacet/pkg/mesh"
	"github.com/philipparndt/gofacet/pkg/openscad"
	"github.com/philipparndt/gofacet/pkg/stl"
	"github.com/philipparndt/gofacet/pkg/watcher"
)

// Model is a loaded geometry and the files it came from
type Model struct {
	Geometry *mesh.Geometry
	// Source is the path given by the user
	Source string
	// Files are the source and its dependencies, for watching
	Files []string

	temp string
}

// Close removes the intermediate STL of a rendered OpenSCAD model
func (m *Model) Close() error {
	if m.temp == "" {
		return nil
	}
	err := os.Remove(m.temp)
	m.temp = ""
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads an STL file or renders and reads an OpenSCAD file
func Load(ctx context.Context, path string, log logrus.FieldLogger) (*Model, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".stl":
		g, err := stl.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STL file: %w", err)
		}
		return &Model{Geometry: g, Source: path, Files: []string{path}}, nil

	case ".scad":
		workDir := filepath.Dir(path)
		renderer := openscad.NewRenderer(workDir)
		deps, err := renderer.ResolveDependencies(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve dependencies: %w", err)
		}

		temp, err := os.CreateTemp("", "facetedit_*.stl")
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary file: %w", err)
		}
		temp.Close()

		log.WithField("file", path).Info("rendering OpenSCAD model")
		if err := renderer.RenderToSTL(ctx, path, temp.Name()); err != nil {
			os.Remove(temp.Name())
			return nil, fmt.Errorf("failed to render OpenSCAD file: %w", err)
		}
		g, err := stl.Parse(temp.Name())
		if err != nil {
			os.Remove(temp.Name())
			return nil, fmt.Errorf("failed to parse rendered STL: %w", err)
		}
		g.Name = strings.TrimSuffix(filepath.Base(path), ext)
		return &Model{Geometry: g, Source: path, Files: deps, temp: temp.Name()}, nil
	}
	return nil, fmt.Errorf("unsupported file type: %s (expected .stl or .scad)", ext)
}

// Watch reloads the model whenever one of its files changes and hands
// every successfully loaded model to onChange. It blocks until ctx is
// done.
func Watch(ctx context.Context, m *Model, debounce time.Duration, log logrus.FieldLogger, onChange func(*Model)) error {
	fw, err := watcher.NewFileWatcher(debounce, log)
	if err != nil {
		return err
	}
	defer fw.Close()

	reload := make(chan struct{}, 1)
	if err := fw.Watch(m.Files, func(string) {
		select {
		case reload <- struct{}{}:
		default:
		}
	}); err != nil {
		return fmt.Errorf("failed to watch files: %w", err)
	}

	errs := make(chan error, 1)
	go func() { errs <- fw.Run(ctx) }()
	log.WithField("files", len(m.Files)).Info("watching for changes")

	for {
		select {
		case <-ctx.Done():
			<-errs
			return nil
		case err := <-errs:
			if ctx.Err() != nil {
				return nil
			}
			return err
		case <-reload:
			next, err := Load(ctx, m.Source, log)
			if err != nil {
				log.WithError(err).Warn("reload failed")
				continue
			}
			onChange(next)
			if err := next.Close(); err != nil {
				log.WithError(err).Debug("failed to remove temporary file")
			}
		}
	}
}
