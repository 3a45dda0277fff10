package clip

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/philipparndt/gofacet/pkg/geometry"
)

// ValidateLoop rejects loops that are too short, carry non-finite
// coordinates or cross themselves. Edges that touch or overlap without
// crossing are accepted, which keeps bridged holes valid.
func ValidateLoop(loop Loop) error {
	n := len(loop)
	if n < 3 {
		return fmt.Errorf("%w: loop has %d vertices", ErrInvalidPolygon, n)
	}
	for i, p := range loop {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("%w: vertex %d is not finite", ErrInvalidPolygon, i)
		}
	}
	for i := 0; i < n; i++ {
		a, b := loop[i], loop[(i+1)%n]
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsCross(a, b, loop[j], loop[(j+1)%n]) {
				return fmt.Errorf("%w: edges %d and %d cross", ErrInvalidPolygon, i, j)
			}
		}
	}
	return nil
}

func orient(a, b, c geometry.Vector2) float64 {
	return b.Sub(a).Cross(c.Sub(a))
}

// segmentsCross reports a proper crossing of ab and cd
func segmentsCross(a, b, c, d geometry.Vector2) bool {
	o1, o2 := orient(a, b, c), orient(a, b, d)
	o3, o4 := orient(c, d, a), orient(c, d, b)
	return ((o1 > 0 && o2 < 0) || (o1 < 0 && o2 > 0)) &&
		((o3 > 0 && o4 < 0) || (o3 < 0 && o4 > 0))
}

// Contains reports whether p lies inside the loop or on its boundary
func (l Loop) Contains(p geometry.Vector2) bool {
	if len(l) < 3 {
		return false
	}
	ring := make(orb.Ring, 0, len(l)+1)
	for _, q := range l {
		ring = append(ring, orb.Point{q.X, q.Y})
	}
	ring = append(ring, ring[0])
	return planar.RingContains(ring, orb.Point{p.X, p.Y})
}
