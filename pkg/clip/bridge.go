package clip

import (
	"sort"

	"github.com/philipparndt/gofacet/pkg/geometry"
)

// Bridged merges the holes into the outer loop so the polygon can be
// stored as a single facet. Each hole is joined by the shortest vertex
// pair whose connecting segment crosses no edge; the bridge is walked
// once in each direction.
func (p Polygon) Bridged() Loop {
	out := append(Loop(nil), p.Outer...)
	holes := make([]Loop, 0, len(p.Holes))
	for _, h := range p.Holes {
		if len(h) >= 3 {
			holes = append(holes, h)
		}
	}
	sort.SliceStable(holes, func(i, j int) bool {
		return maxX(holes[i]) > maxX(holes[j])
	})

	for k, h := range holes {
		i, j := findBridge(out, h, holes[k+1:])
		merged := make(Loop, 0, len(out)+len(h)+2)
		merged = append(merged, out[:i+1]...)
		for s := 0; s <= len(h); s++ {
			merged = append(merged, h[(j+s)%len(h)])
		}
		merged = append(merged, out[i:]...)
		out = merged
	}
	return out
}

func maxX(l Loop) float64 {
	m := l[0].X
	for _, p := range l[1:] {
		if p.X > m {
			m = p.X
		}
	}
	return m
}

type bridgeCandidate struct {
	i, j int
	dist float64
}

func findBridge(outer, hole Loop, others []Loop) (int, int) {
	candidates := make([]bridgeCandidate, 0, len(outer)*len(hole))
	for i, a := range outer {
		for j, b := range hole {
			candidates = append(candidates, bridgeCandidate{i: i, j: j, dist: a.Distance(b)})
		}
	}
	sort.SliceStable(candidates, func(x, y int) bool {
		return candidates[x].dist < candidates[y].dist
	})

	for _, c := range candidates {
		a, b := outer[c.i], hole[c.j]
		if crossesAny(a, b, outer) || crossesAny(a, b, hole) {
			continue
		}
		blocked := false
		for _, o := range others {
			if crossesAny(a, b, o) || o.Contains(a.Lerp(b, 0.5)) {
				blocked = true
				break
			}
		}
		if blocked || hole.Contains(a.Lerp(b, 0.5)) {
			continue
		}
		return c.i, c.j
	}
	return candidates[0].i, candidates[0].j
}

func crossesAny(a, b geometry.Vector2, loop Loop) bool {
	for i := range loop {
		if segmentsCross(a, b, loop[i], loop[(i+1)%len(loop)]) {
			return true
		}
	}
	return false
}
