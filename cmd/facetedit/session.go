package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/philipparndt/gofacet/internal/loader"
	"github.com/philipparndt/gofacet/pkg/edit"
	"github.com/philipparndt/gofacet/pkg/mesh"
	"github.com/philipparndt/gofacet/pkg/stl"
)

// session is a loaded model with an edit engine whose batches stop when
// the command context is cancelled
type session struct {
	model  *loader.Model
	engine *edit.Engine
	stop   func() bool
}

// watchDebounce is the quiet period before a changed model is reloaded
const watchDebounce = 500 * time.Millisecond

func openSession(ctx context.Context, path string) (*session, error) {
	model, err := loader.Load(ctx, path, log)
	if err != nil {
		return nil, err
	}
	s, err := newSession(ctx, model)
	if err != nil {
		model.Close()
		return nil, err
	}
	return s, nil
}

func newSession(ctx context.Context, model *loader.Model) (*session, error) {
	opts := edit.Options{
		Tolerance:          tolerance,
		PlanarityTolerance: planarity,
		ClipScale:          clipScale,
	}
	engine, err := edit.NewEngine(model.Geometry, opts, log)
	if err != nil {
		return nil, err
	}

	abort := &edit.AbortFlag{
		OnProgress: func(fraction float64) {
			log.WithField("progress", fmt.Sprintf("%.0f%%", fraction*100)).Debug("batch progress")
		},
	}
	engine.Progress = abort
	stop := context.AfterFunc(ctx, func() {
		log.Warn("interrupted, stopping after the current facet")
		abort.Abort()
	})
	return &session{model: model, engine: engine, stop: stop}, nil
}

func (s *session) Close() {
	s.stop()
	if err := s.model.Close(); err != nil {
		log.WithError(err).Debug("failed to remove temporary file")
	}
}

// runSession applies fn to the model at path. With --watch, fn runs
// again on every reloaded model until the command is interrupted.
func runSession(ctx context.Context, path string, fn func(*session) error) error {
	s, err := openSession(ctx, path)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := fn(s); err != nil {
		return err
	}
	if !watchMode {
		return nil
	}

	return loader.Watch(ctx, s.model, watchDebounce, log, func(next *loader.Model) {
		ns, err := newSession(ctx, next)
		if err != nil {
			log.WithError(err).Error("failed to prepare reloaded model")
			return
		}
		defer ns.stop()
		if err := fn(ns); err != nil {
			log.WithError(err).Error("command failed on reloaded model")
		}
	})
}

// selection returns the --facets ids or the facets selected in the model
func (s *session) selection() []int {
	if len(facetIDs) > 0 {
		return facetIDs
	}
	return s.model.Geometry.SelectedFacets()
}

// finish reports a batch result and writes the model when requested
func (s *session) finish(op string, result edit.Result) error {
	fmt.Printf("%s: %d facet(s) replaced, %d created\n", op, len(result.Deleted), result.Created)
	if result.Empty {
		fmt.Println("  result is empty")
	}
	if result.Aborted {
		fmt.Println("  aborted before all facets were processed")
	}
	if len(result.Skipped) > 0 {
		ids := make([]int, 0, len(result.Skipped))
		for id := range result.Skipped {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		fmt.Printf("  skipped %d facet(s):\n", len(ids))
		for _, id := range ids {
			fmt.Printf("    #%d: %v\n", id, result.Skipped[id])
		}
	}
	if dryRun {
		if err := s.engine.Undo(result.Record, mesh.ToOriginalPositions); err != nil {
			return fmt.Errorf("failed to undo dry run: %w", err)
		}
		fmt.Printf("  dry run, undone: %d facet(s) in model\n", s.model.Geometry.FacetCount())
		return nil
	}
	return s.save()
}

func (s *session) save() error {
	if outputFile == "" {
		return nil
	}
	if err := stl.WriteFile(outputFile, s.model.Geometry); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.WithField("file", outputFile).Info("model written")
	return nil
}
