package geometry

import (
	"errors"
	"math"
)

// ErrDegeneratePlane is returned when a plane normal has (near) zero length
var ErrDegeneratePlane = errors.New("degenerate plane normal")

// minNormalLength is the shortest normal accepted when building a basis
const minNormalLength = 1e-12

// Basis is an orthonormal frame of a plane. U and V span the plane,
// N is its unit normal and U x V = N, so counter-clockwise 2D loops wind
// positively around N.
type Basis struct {
	Origin Vector3
	U, V   Vector3
	N      Vector3
}

// MakeBasis builds a frame for the plane through point with the given normal
func MakeBasis(point, normal Vector3) (Basis, error) {
	length := normal.Length()
	if length < minNormalLength || math.IsNaN(length) {
		return Basis{}, ErrDegeneratePlane
	}
	n := normal.Mul(1 / length)

	// Seed U with the world axis least aligned with the normal
	axis := NewVector3(1, 0, 0)
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	if ay < ax && ay <= az {
		axis = NewVector3(0, 1, 0)
	} else if az < ax && az < ay {
		axis = NewVector3(0, 0, 1)
	}
	return NewBasis(point, axis, n)
}

// NewBasis builds a frame from an origin, a direction lying (roughly) in
// the plane and the plane normal. The U direction is orthogonalised
// against the normal.
func NewBasis(origin, u, normal Vector3) (Basis, error) {
	length := normal.Length()
	if length < minNormalLength || math.IsNaN(length) {
		return Basis{}, ErrDegeneratePlane
	}
	n := normal.Mul(1 / length)
	inPlane := u.Sub(n.Mul(u.Dot(n)))
	if inPlane.Length() < minNormalLength {
		return Basis{}, ErrDegeneratePlane
	}
	uu := inPlane.Normalize()
	return Basis{
		Origin: origin,
		U:      uu,
		V:      n.Cross(uu),
		N:      n,
	}, nil
}

// ToPlane2D returns the in-plane coordinates of p
func (b Basis) ToPlane2D(p Vector3) Vector2 {
	d := p.Sub(b.Origin)
	return Vector2{X: d.Dot(b.U), Y: d.Dot(b.V)}
}

// ToWorld3D maps plane coordinates back to a point on the plane
func (b Basis) ToWorld3D(p Vector2) Vector3 {
	return b.Origin.Add(b.U.Mul(p.X)).Add(b.V.Mul(p.Y))
}

// DistanceTo returns the signed distance of p from the plane
func (b Basis) DistanceTo(p Vector3) float64 {
	return p.Sub(b.Origin).Dot(b.N)
}

// Project drops p onto the plane along the normal
func (b Basis) Project(p Vector3) Vector3 {
	return p.Sub(b.N.Mul(b.DistanceTo(p)))
}

// Mirror reflects p across the plane
func (b Basis) Mirror(p Vector3) Vector3 {
	return p.Sub(b.N.Mul(2 * b.DistanceTo(p)))
}

// Direction2D expresses an in-plane direction in plane coordinates
func (b Basis) Direction2D(d Vector3) Vector2 {
	return Vector2{X: d.Dot(b.U), Y: d.Dot(b.V)}
}
