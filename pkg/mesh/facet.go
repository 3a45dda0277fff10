package mesh

import (
	"fmt"
	"math"

	"github.com/philipparndt/gofacet/pkg/geometry"
)

// Facet is a planar polygon described by an ordered loop of vertex ids.
// The winding order defines the outward normal.
type Facet struct {
	Indices []int

	// Plane equation Normal·p + D = 0, Normal is unit length
	Normal geometry.Vector3
	D      float64
	Area   float64

	// Texture frame: origin and the two axes spanning the texture
	O, U, V geometry.Vector3

	Selected bool
	Props    Properties

	// Caches tied to the current cell layout
	TextureCells  []float64
	AngleMapCells []uint64
}

// NewFacet creates a facet with default properties
func NewFacet(indices []int) *Facet {
	return &Facet{
		Indices: append([]int(nil), indices...),
		Props:   DefaultProperties(),
	}
}

// Derive creates a facet over new indices that inherits every property
// and the texture frame of f. Caches are left empty.
func (f *Facet) Derive(indices []int) *Facet {
	return &Facet{
		Indices: append([]int(nil), indices...),
		O:       f.O,
		U:       f.U,
		V:       f.V,
		Props:   f.Props.Clone(),
	}
}

// Positions returns the vertex positions of the facet loop
func (f *Facet) Positions(vertices []Vertex) []geometry.Vector3 {
	pts := make([]geometry.Vector3, len(f.Indices))
	for i, idx := range f.Indices {
		pts[i] = vertices[idx].Position
	}
	return pts
}

// newellNormal returns the area-weighted normal of a closed loop
func newellNormal(pts []geometry.Vector3) geometry.Vector3 {
	var n geometry.Vector3
	for i := range pts {
		n = n.Add(pts[i].Cross(pts[(i+1)%len(pts)]))
	}
	return n
}

// Update recomputes the plane equation and area from the vertex
// positions and initialises the texture frame when it is unset
func (f *Facet) Update(vertices []Vertex) {
	pts := f.Positions(vertices)
	n := newellNormal(pts)
	length := n.Length()

	f.Area = length / 2
	if length == 0 {
		f.Normal = geometry.Vector3{}
		f.D = 0
		return
	}
	f.Normal = n.Mul(1 / length)

	// Average offset keeps D stable for slightly non-planar loops
	sum := 0.0
	for _, p := range pts {
		sum += f.Normal.Dot(p)
	}
	f.D = -sum / float64(len(pts))

	if f.U.Length() == 0 || f.V.Length() == 0 {
		f.initFrame(pts)
	}
}

// initFrame fits the texture frame to the bounding rectangle of the loop
func (f *Facet) initFrame(pts []geometry.Vector3) {
	b, err := f.geometricBasis(pts)
	if err != nil {
		return
	}
	minU, minV := math.MaxFloat64, math.MaxFloat64
	maxU, maxV := -math.MaxFloat64, -math.MaxFloat64
	for _, p := range pts {
		q := b.ToPlane2D(p)
		minU, maxU = math.Min(minU, q.X), math.Max(maxU, q.X)
		minV, maxV = math.Min(minV, q.Y), math.Max(maxV, q.Y)
	}
	f.O = b.ToWorld3D(geometry.NewVector2(minU, minV))
	f.U = b.U.Mul(maxU - minU)
	f.V = b.V.Mul(maxV - minV)
}

// geometricBasis derives a frame from the first non-degenerate edge
func (f *Facet) geometricBasis(pts []geometry.Vector3) (geometry.Basis, error) {
	for i := 1; i < len(pts); i++ {
		b, err := geometry.NewBasis(pts[0], pts[i].Sub(pts[0]), f.Normal)
		if err == nil {
			return b, nil
		}
	}
	return geometry.Basis{}, geometry.ErrDegeneratePlane
}

// Basis returns the 2D working frame of the facet. It follows the
// texture frame so UV alignment survives edits.
func (f *Facet) Basis(vertices []Vertex) (geometry.Basis, error) {
	if f.U.Length() > 0 {
		if b, err := geometry.NewBasis(f.O, f.U, f.Normal); err == nil {
			return b, nil
		}
	}
	return f.geometricBasis(f.Positions(vertices))
}

// DistanceTo returns the signed distance of p from the facet plane
func (f *Facet) DistanceTo(p geometry.Vector3) float64 {
	return f.Normal.Dot(p) + f.D
}

// CheckPlanar verifies every vertex lies within tol of the facet plane
func (f *Facet) CheckPlanar(vertices []Vertex, tol float64) error {
	if len(f.Indices) < 3 || f.Normal.Length() == 0 {
		return fmt.Errorf("%w: degenerate loop of %d vertices", ErrNonPlanar, len(f.Indices))
	}
	for _, idx := range f.Indices {
		if d := math.Abs(f.DistanceTo(vertices[idx].Position)); d > tol {
			return fmt.Errorf("%w: vertex %d is %.3g off the plane", ErrNonPlanar, idx, d)
		}
	}
	return nil
}

// Reverse flips the winding order
func (f *Facet) Reverse() {
	for i, j := 0, len(f.Indices)-1; i < j; i, j = i+1, j-1 {
		f.Indices[i], f.Indices[j] = f.Indices[j], f.Indices[i]
	}
}
