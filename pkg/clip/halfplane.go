package clip

import (
	"math"

	"github.com/philipparndt/gofacet/pkg/geometry"
)

// Side is the position of a point relative to a cutting line
type Side int

const (
	OnLine Side = iota
	Inside
	Outside
)

func (s Side) String() string {
	switch s {
	case Inside:
		return "inside"
	case Outside:
		return "outside"
	}
	return "on-line"
}

// Line is a directed cutting line in plane coordinates. Normal points
// to the Inside half-plane; Dir orders points along the line.
type Line struct {
	Point  geometry.Vector2
	Normal geometry.Vector2
	Dir    geometry.Vector2
}

// NewLine creates a line through point with the given normal. Dir is
// the normal rotated clockwise.
func NewLine(point, normal geometry.Vector2) Line {
	n := normal.Normalize()
	return Line{Point: point, Normal: n, Dir: geometry.Vector2{X: n.Y, Y: -n.X}}
}

// SignedDistance is positive on the Inside half-plane
func (l Line) SignedDistance(p geometry.Vector2) float64 {
	return p.Sub(l.Point).Dot(l.Normal)
}

// Along is the coordinate of p measured along Dir
func (l Line) Along(p geometry.Vector2) float64 {
	return p.Sub(l.Point).Dot(l.Dir)
}

// Classify places p on a side, treating |d| <= eps as on the line
func (l Line) Classify(p geometry.Vector2, eps float64) Side {
	return sideOf(l.SignedDistance(p), eps)
}

func sideOf(d, eps float64) Side {
	switch {
	case d > eps:
		return Inside
	case d < -eps:
		return Outside
	}
	return OnLine
}

// HalfPlane returns a quad covering the Inside half-plane over the
// extent of loop.
func (l Line) HalfPlane(loop Loop) Loop {
	r := 1.0
	for _, p := range loop {
		r = math.Max(r, p.Distance(l.Point))
	}
	r = 2*r + 1
	a := l.Point.Sub(l.Dir.Mul(r))
	b := l.Point.Add(l.Dir.Mul(r))
	return Loop{a, a.Add(l.Normal.Mul(r)), b.Add(l.Normal.Mul(r)), b}
}

// ClippingVertex is a node of an annotated loop. Cut nodes are inserted
// where an edge crosses the line; they carry no vertex id until the
// registry resolves them.
type ClippingVertex struct {
	Pos            geometry.Vector2
	ID             int
	Visited        bool
	Inside         bool
	OnClippingLine bool
	IsLink         bool
	Distance       float64
	// Link is the arena index of the first cut node created on the same
	// edge by a neighbouring facet, or -1.
	Link int
}

// Side returns the classification stored in the node
func (v ClippingVertex) Side() Side {
	switch {
	case v.OnClippingLine:
		return OnLine
	case v.Inside:
		return Inside
	}
	return Outside
}

// Arena owns the clipping vertices of a batch. Cut nodes on a shared
// edge are linked so adjacent facets reuse the same vertex.
type Arena struct {
	Nodes    []ClippingVertex
	edgeCuts map[[2]int]int
}

func NewArena() *Arena {
	return &Arena{edgeCuts: make(map[[2]int]int)}
}

func (a *Arena) push(v ClippingVertex) int {
	a.Nodes = append(a.Nodes, v)
	return len(a.Nodes) - 1
}

// Node returns the arena node at index i
func (a *Arena) Node(i int) *ClippingVertex {
	return &a.Nodes[i]
}

// Release stops later cuts from linking to the nodes of loop. It is
// used for a facet that stays unchanged after all.
func (a *Arena) Release(loop []int) {
	owned := make(map[int]bool, len(loop))
	for _, i := range loop {
		owned[i] = true
	}
	for key, first := range a.edgeCuts {
		if owned[first] {
			delete(a.edgeCuts, key)
		}
	}
}

// Points converts a list of arena indices into projected points
func (a *Arena) Points(indices []int) []ProjectedPoint {
	pts := make([]ProjectedPoint, len(indices))
	for k, i := range indices {
		pts[k] = ProjectedPoint{Pos: a.Nodes[i].Pos, ID: a.Nodes[i].ID}
	}
	return pts
}

// SplitResult lists the arena indices of an annotated loop and the
// sub-loops on each side. Inside and Outside are only filled when the
// loop needs no clip engine (Crossings of 0 or 2).
type SplitResult struct {
	Loop      []int
	Inside    [][]int
	Outside   [][]int
	Crossings int
}

// Cut reports whether the line divides the loop
func (r SplitResult) Cut() bool {
	return r.Crossings > 0
}

// Simple reports a cut the arena resolved on its own
func (r SplitResult) Simple() bool {
	return r.Crossings <= 2
}

// Split annotates loop against line and, when the boundary crosses the
// line at most twice, partitions it into inside and outside sub-loops.
func (a *Arena) Split(loop []ProjectedPoint, line Line, eps float64) SplitResult {
	n := len(loop)
	dists := make([]float64, n)
	sides := make([]Side, n)
	for i, p := range loop {
		dists[i] = line.SignedDistance(p.Pos)
		sides[i] = sideOf(dists[i], eps)
	}

	var res SplitResult
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		res.Loop = append(res.Loop, a.push(vertexNode(loop[i], sides[i], line)))
		if (sides[i] == Inside && sides[j] == Outside) || (sides[i] == Outside && sides[j] == Inside) {
			res.Loop = append(res.Loop, a.cut(loop[i], loop[j], dists[i], dists[j], line))
		}
	}
	res.Crossings = crossings(sides)

	switch res.Crossings {
	case 0:
		whole := append([]int(nil), res.Loop...)
		if hasSide(sides, Outside) {
			res.Outside = [][]int{whole}
		} else if hasSide(sides, Inside) {
			res.Inside = [][]int{whole}
		}
		for _, i := range whole {
			a.Nodes[i].Visited = true
		}
	case 2:
		a.simpleSplit(&res, eps)
	}
	return res
}

func vertexNode(p ProjectedPoint, side Side, line Line) ClippingVertex {
	v := ClippingVertex{Pos: p.Pos, ID: p.ID, Link: -1}
	switch side {
	case Inside:
		v.Inside = true
	case OnLine:
		v.OnClippingLine = true
	}
	v.Distance = line.Along(p.Pos)
	return v
}

// cut inserts the crossing of edge pq. The parameter is measured from
// the endpoint with the lower vertex id so both facets sharing the edge
// compute the same point.
func (a *Arena) cut(p, q ProjectedPoint, dp, dq float64, line Line) int {
	from, to, df, dt := p, q, dp, dq
	if p.ID >= 0 && q.ID >= 0 && q.ID < p.ID {
		from, to, df, dt = q, p, dq, dp
	}
	t := df / (df - dt)
	pos := from.Pos.Lerp(to.Pos, t)
	node := ClippingVertex{Pos: pos, ID: -1, OnClippingLine: true, Distance: line.Along(pos), Link: -1}
	if p.ID >= 0 && q.ID >= 0 {
		key := [2]int{min(p.ID, q.ID), max(p.ID, q.ID)}
		if first, ok := a.edgeCuts[key]; ok {
			node.Link = first
		} else {
			a.edgeCuts[key] = len(a.Nodes)
		}
	}
	return a.push(node)
}

func hasSide(sides []Side, s Side) bool {
	for _, x := range sides {
		if x == s {
			return true
		}
	}
	return false
}

// crossings counts side changes around the loop ignoring on-line points
func crossings(sides []Side) int {
	var strict []Side
	for _, s := range sides {
		if s != OnLine {
			strict = append(strict, s)
		}
	}
	count := 0
	for i := range strict {
		if strict[i] != strict[(i+1)%len(strict)] {
			count++
		}
	}
	return count
}

func (a *Arena) simpleSplit(res *SplitResult, eps float64) {
	m := len(res.Loop)
	sides := make([]Side, m)
	for k, idx := range res.Loop {
		sides[k] = a.Nodes[idx].Side()
	}

	prev := make([]Side, m)
	next := make([]Side, m)
	last := OnLine
	for k := 0; k < 2*m; k++ {
		if k >= m {
			prev[k-m] = last
		}
		if s := sides[k%m]; s != OnLine {
			last = s
		}
	}
	last = OnLine
	for k := 2*m - 1; k >= 0; k-- {
		if k < m {
			next[k] = last
		}
		if s := sides[k%m]; s != OnLine {
			last = s
		}
	}
	for k, idx := range res.Loop {
		if sides[k] == OnLine && prev[k] != next[k] {
			a.Nodes[idx].IsLink = true
		}
	}

	res.Inside = a.sideLoops(res.Loop, sides, prev, next, Inside, eps)
	res.Outside = a.sideLoops(res.Loop, sides, prev, next, Outside, eps)
	for _, subs := range [][][]int{res.Inside, res.Outside} {
		for _, sub := range subs {
			for _, idx := range sub {
				a.Nodes[idx].Visited = true
			}
		}
	}
}

// sideLoops returns the sub-loops on side s of a loop crossing the line
// twice. The chain of s nodes runs between the two transitions and
// closes along the line. Vertices of the chain that touch the line
// inside the closing segment pinch the region, so the chain is cut
// there into separate loops. On-line vertices of the other side that
// lie on a closing segment are kept on it so both sides share them.
func (a *Arena) sideLoops(loop []int, sides, prev, next []Side, s Side, eps float64) [][]int {
	m := len(loop)
	member := func(k int) bool {
		k = (k + m) % m
		return sides[k] == s || (sides[k] == OnLine && (prev[k] == s || next[k] == s))
	}
	start := -1
	for k := 0; k < m; k++ {
		if member(k) && !member(k-1) {
			start = k
			break
		}
	}
	if start < 0 {
		return nil
	}

	var chain, tail []int
	k := start
	for ; len(chain) < m && member(k); k++ {
		chain = append(chain, loop[k%m])
	}
	for ; (k-start) < m; k++ {
		if sides[k%m] == OnLine {
			tail = append(tail, loop[k%m])
		}
	}

	first := a.Nodes[chain[0]].Distance
	end := a.Nodes[chain[len(chain)-1]].Distance
	lo, hi := min(first, end), max(first, end)

	var pieces [][]int
	from := 0
	for i := 1; i < len(chain)-1; i++ {
		n := a.Nodes[chain[i]]
		if n.OnClippingLine && !n.IsLink && n.Distance > lo+eps && n.Distance < hi-eps {
			pieces = append(pieces, chain[from:i+1])
			from = i
		}
	}
	pieces = append(pieces, chain[from:])

	order := make(map[int]int, m)
	for k, idx := range loop {
		order[idx] = k
	}
	var out [][]int
	for _, p := range pieces {
		sub := append([]int(nil), p...)
		a0, a1 := a.Nodes[sub[len(sub)-1]].Distance, a.Nodes[sub[0]].Distance
		for _, idx := range tail {
			if d := a.Nodes[idx].Distance; d > min(a0, a1)+eps && d < max(a0, a1)-eps {
				sub = append(sub, idx)
			}
		}
		sub = a.dropSpikes(sub)
		if len(sub) < 3 {
			continue
		}
		out = append(out, rotateToFirst(sub, order))
	}
	return out
}

// rotateToFirst starts sub at the node that comes first in the loop
func rotateToFirst(sub []int, order map[int]int) []int {
	best := 0
	for i, idx := range sub {
		if order[idx] < order[sub[best]] {
			best = i
		}
	}
	return append(append([]int(nil), sub[best:]...), sub[:best]...)
}

// dropSpikes removes on-line nodes that fold back along the line
func (a *Arena) dropSpikes(sub []int) []int {
	sub = append([]int(nil), sub...)
	for changed := true; changed && len(sub) >= 3; {
		changed = false
		for k := range sub {
			p := a.Nodes[sub[(k-1+len(sub))%len(sub)]]
			c := a.Nodes[sub[k]]
			n := a.Nodes[sub[(k+1)%len(sub)]]
			if !p.OnClippingLine || !c.OnClippingLine || !n.OnClippingLine {
				continue
			}
			if (c.Distance-p.Distance)*(n.Distance-c.Distance) <= 0 {
				sub = append(sub[:k], sub[k+1:]...)
				changed = true
				break
			}
		}
	}
	return sub
}
