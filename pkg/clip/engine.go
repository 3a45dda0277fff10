package clip

import (
	"errors"
	"fmt"
	"math"

	clipper "github.com/ctessum/go.clipper"

	"github.com/philipparndt/gofacet/pkg/geometry"
)

// ErrInvalidPolygon is returned for loops the clip engine cannot accept
var ErrInvalidPolygon = errors.New("invalid polygon")

// DefaultScale maps one plane unit onto the integer grid
const DefaultScale = 1e8

// Engine runs boolean operations on loops by snapping them to an
// integer grid of Scale cells per unit.
type Engine struct {
	Scale float64
}

// NewEngine creates an engine with the given grid scale
func NewEngine(scale float64) *Engine {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Engine{Scale: scale}
}

func (op Op) clipType() (clipper.ClipType, error) {
	switch op {
	case Intersection:
		return clipper.CtIntersection, nil
	case Union:
		return clipper.CtUnion, nil
	case Difference:
		return clipper.CtDifference, nil
	case Xor:
		return clipper.CtXor, nil
	}
	return 0, fmt.Errorf("unsupported boolean operator %v", op)
}

// Execute combines subject loops a with clip loops b. With reverse set
// the operands swap roles, so Difference yields b minus a.
// Both sets are filled with the non-zero rule.
func (e *Engine) Execute(a, b []Loop, op Op, reverse bool) (result Forest, err error) {
	if reverse {
		a, b = b, a
	}
	ct, err := op.clipType()
	if err != nil {
		return Forest{}, err
	}
	for _, loops := range [][]Loop{a, b} {
		for _, l := range loops {
			if err := ValidateLoop(l); err != nil {
				return Forest{}, err
			}
		}
	}

	defer func() {
		if r := recover(); r != nil {
			result = Forest{}
			err = fmt.Errorf("%w: clipper: %v", ErrInvalidPolygon, r)
		}
	}()

	c := clipper.NewClipper(clipper.IoNone)
	c.StrictlySimple = true
	c.PreserveCollinear = true
	if len(a) > 0 {
		c.AddPaths(e.toPaths(a), clipper.PtSubject, true)
	}
	if len(b) > 0 {
		c.AddPaths(e.toPaths(b), clipper.PtClip, true)
	}
	tree, ok := c.Execute2(ct, clipper.PftNonZero, clipper.PftNonZero)
	if !ok || tree == nil {
		return Forest{}, fmt.Errorf("%w: %s failed", ErrInvalidPolygon, op)
	}
	for _, node := range tree.Childs() {
		e.collect(node, &result)
	}
	return result, nil
}

// Clip intersects or subtracts a half-plane from a single loop
func (e *Engine) Clip(loop Loop, line Line, side Side) (Forest, error) {
	half := []Loop{line.HalfPlane(loop)}
	switch side {
	case Inside:
		return e.Execute([]Loop{loop}, half, Intersection, false)
	case Outside:
		return e.Execute([]Loop{loop}, half, Difference, false)
	}
	return Forest{}, fmt.Errorf("cannot clip to side %v", side)
}

// collect walks an outer node of the poly tree. Children of an outer are
// holes; children of a hole are islands and start new polygons.
func (e *Engine) collect(node *clipper.PolyNode, f *Forest) {
	outer := e.fromPath(node.Contour())
	if len(outer) < 3 {
		return
	}
	if outer.Area() < 0 {
		outer = outer.Reversed()
	}
	poly := Polygon{Outer: outer}
	for _, hole := range node.Childs() {
		h := e.fromPath(hole.Contour())
		if len(h) >= 3 {
			if h.Area() > 0 {
				h = h.Reversed()
			}
			poly.Holes = append(poly.Holes, h)
		}
		for _, island := range hole.Childs() {
			e.collect(island, f)
		}
	}
	f.Polygons = append(f.Polygons, poly)
}

func (e *Engine) toPaths(loops []Loop) clipper.Paths {
	paths := make(clipper.Paths, 0, len(loops))
	for _, l := range loops {
		path := make(clipper.Path, 0, len(l))
		for _, p := range l {
			path = append(path, &clipper.IntPoint{
				X: clipper.CInt(math.Round(p.X * e.Scale)),
				Y: clipper.CInt(math.Round(p.Y * e.Scale)),
			})
		}
		paths = append(paths, path)
	}
	return paths
}

func (e *Engine) fromPath(path clipper.Path) Loop {
	loop := make(Loop, 0, len(path))
	for _, p := range path {
		loop = append(loop, geometry.Vector2{X: float64(p.X) / e.Scale, Y: float64(p.Y) / e.Scale})
	}
	return loop
}
