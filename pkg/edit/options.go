package edit

import (
	"errors"
	"fmt"

	"github.com/philipparndt/gofacet/pkg/clip"
)

// ErrInvalidOptions is returned by Options.Validate
var ErrInvalidOptions = errors.New("invalid options")

// Options holds the tolerances of the edit engine
type Options struct {
	// Tolerance is ε: the distance under which two points are the same
	// vertex and a point counts as lying on a cutting line
	Tolerance float64
	// PlanarityTolerance is the largest vertex distance from its facet
	// plane accepted for an operand
	PlanarityTolerance float64
	// ClipScale is the number of integer grid cells per unit used by
	// the clip engine
	ClipScale float64
}

// DefaultOptions returns the stock tolerances
func DefaultOptions() Options {
	return Options{
		Tolerance:          1e-6,
		PlanarityTolerance: 1e-4,
		ClipScale:          clip.DefaultScale,
	}
}

// Validate checks that every tolerance is usable
func (o Options) Validate() error {
	if o.Tolerance <= 0 {
		return fmt.Errorf("%w: tolerance must be positive, got %g", ErrInvalidOptions, o.Tolerance)
	}
	if o.PlanarityTolerance <= 0 {
		return fmt.Errorf("%w: planarity tolerance must be positive, got %g", ErrInvalidOptions, o.PlanarityTolerance)
	}
	if o.ClipScale <= 0 {
		return fmt.Errorf("%w: clip scale must be positive, got %g", ErrInvalidOptions, o.ClipScale)
	}
	if 1/o.ClipScale >= o.Tolerance {
		return fmt.Errorf("%w: clip grid %g is coarser than tolerance %g", ErrInvalidOptions, 1/o.ClipScale, o.Tolerance)
	}
	return nil
}
