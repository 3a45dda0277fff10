package stl

import (
	"github.com/philipparndt/gofacet/pkg/geometry"
)

// Triangulate splits a counter-clockwise loop into triangles by ear
// clipping. ids identify the loop points; repeated ids (bridged holes)
// never block an ear. The result lists positions into the loop.
func Triangulate(loop []geometry.Vector2, ids []int) [][3]int {
	n := len(loop)
	if n < 3 {
		return nil
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if geometry.SignedArea(loop) < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			indices[i], indices[j] = indices[j], indices[i]
		}
	}

	triangles := make([][3]int, 0, n-2)
	for len(indices) > 3 {
		earFound := false
		for i := range indices {
			if isEar(loop, ids, indices, i) {
				m := len(indices)
				triangles = append(triangles, [3]int{indices[(i-1+m)%m], indices[i], indices[(i+1)%m]})
				indices = append(indices[:i], indices[i+1:]...)
				earFound = true
				break
			}
		}
		if !earFound {
			// Fallback: fan out the remainder
			for i := 1; i < len(indices)-1; i++ {
				triangles = append(triangles, [3]int{indices[0], indices[i], indices[i+1]})
			}
			return triangles
		}
	}
	return append(triangles, [3]int{indices[0], indices[1], indices[2]})
}

// isEar checks if a corner can be clipped without creating intersections
func isEar(loop []geometry.Vector2, ids []int, indices []int, ear int) bool {
	m := len(indices)
	prev, curr, next := indices[(ear-1+m)%m], indices[ear], indices[(ear+1)%m]
	a, b, c := loop[prev], loop[curr], loop[next]

	if b.Sub(a).Cross(c.Sub(a)) <= 0 {
		return false
	}
	for _, idx := range indices {
		if idx == prev || idx == curr || idx == next {
			continue
		}
		if id := ids[idx]; id == ids[prev] || id == ids[curr] || id == ids[next] {
			continue
		}
		if pointInTriangle(loop[idx], a, b, c) {
			return false
		}
	}
	return true
}

// pointInTriangle checks if a point is inside or on a triangle
func pointInTriangle(p, a, b, c geometry.Vector2) bool {
	sign := func(p1, p2, p3 geometry.Vector2) float64 {
		return (p1.X-p3.X)*(p2.Y-p3.Y) - (p2.X-p3.X)*(p1.Y-p3.Y)
	}
	d1, d2, d3 := sign(p, a, b), sign(p, b, c), sign(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
