package clip

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gofacet/pkg/geometry"
)

// ProjectedPoint pairs a plane coordinate with the id of the vertex it
// was projected from. ID is -1 for points that have no vertex yet.
type ProjectedPoint struct {
	Pos geometry.Vector2
	ID  int
}

// Positions strips the vertex ids of a projected loop
func Positions(pts []ProjectedPoint) Loop {
	loop := make(Loop, len(pts))
	for i, p := range pts {
		loop[i] = p.Pos
	}
	return loop
}

// Loop is a closed polygon ring; the last point connects to the first
type Loop []geometry.Vector2

// Area returns the signed area, positive for counter-clockwise loops
func (l Loop) Area() float64 {
	return geometry.SignedArea(l)
}

// Reversed returns the loop with opposite winding
func (l Loop) Reversed() Loop {
	r := make(Loop, len(l))
	for i, p := range l {
		r[len(l)-1-i] = p
	}
	return r
}

// Polygon is an outer loop with the holes directly inside it
type Polygon struct {
	Outer Loop
	Holes []Loop
}

// Area returns the filled area of the polygon
func (p Polygon) Area() float64 {
	a := p.Outer.Area()
	for _, h := range p.Holes {
		a += h.Area()
	}
	return a
}

// Forest is the result of a clip: polygons whose holes are attached to
// their enclosing outer loop. Islands inside holes are separate polygons.
type Forest struct {
	Polygons []Polygon
}

// Empty reports a clip that left nothing
func (f Forest) Empty() bool {
	return len(f.Polygons) == 0
}

// Area returns the total filled area
func (f Forest) Area() float64 {
	a := 0.0
	for _, p := range f.Polygons {
		a += p.Area()
	}
	return a
}

// Loops flattens the forest into outer and hole loops
func (f Forest) Loops() []Loop {
	var loops []Loop
	for _, p := range f.Polygons {
		loops = append(loops, p.Outer)
		loops = append(loops, p.Holes...)
	}
	return loops
}

// Op is a boolean operator between two loop sets
type Op int

const (
	Intersection Op = iota
	Union
	Difference
	Xor
)

var opNames = map[Op]string{
	Intersection: "intersection",
	Union:        "union",
	Difference:   "difference",
	Xor:          "xor",
}

func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// ParseOp parses an operator name
func ParseOp(s string) (Op, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for op, n := range opNames {
		if n == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown boolean operator %q (expected intersection, union, difference or xor)", s)
}
