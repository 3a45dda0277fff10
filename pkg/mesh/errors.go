package mesh

import "errors"

var (
	// ErrNonPlanar is returned for a facet whose vertices leave its plane
	// by more than the planarity tolerance
	ErrNonPlanar = errors.New("facet is not planar")
	// ErrFacetNotFound is returned for a facet id outside the facet array
	ErrFacetNotFound = errors.New("facet not found")
	// ErrVertexNotFound is returned for a vertex id outside the vertex array
	ErrVertexNotFound = errors.New("vertex not found")
	// ErrStaleRecord is returned when an undo record no longer matches
	// the facet array it was produced for
	ErrStaleRecord = errors.New("undo record does not match the current facet array")
)
