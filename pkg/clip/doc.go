// Package clip implements the 2D side of facet editing: classifying a
// projected facet loop against a cutting line, and boolean operations
// between sets of loops on a scaled integer grid.
//
// All coordinates are plane coordinates produced by geometry.Basis.
// Loops wind counter-clockwise for filled regions and clockwise for holes.
package clip
