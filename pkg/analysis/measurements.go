package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/gofacet/pkg/geometry"
	"github.com/philipparndt/gofacet/pkg/mesh"
)

// EdgeInfo describes one edge of the facet graph. Facets lists every
// facet whose loop runs along the edge.
type EdgeInfo struct {
	A, B   int
	Start  geometry.Vector3
	End    geometry.Vector3
	Length float64
	Facets []int
}

// MeasurementResult contains measurements and consistency checks of a
// geometry
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	FacetCount    int
	VertexCount   int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	AllEdges      []EdgeInfo

	// OpenEdges are used by a single facet
	OpenEdges []EdgeInfo
	// CoincidentVertices are pairs of distinct vertices closer than the
	// analysis tolerance
	CoincidentVertices [][2]int
	// NonPlanarFacets fail the planarity check
	NonPlanarFacets []int
	// UnusedVertices are referenced by no facet
	UnusedVertices int
}

// Watertight reports a closed mesh without duplicate vertices
func (r *MeasurementResult) Watertight() bool {
	return len(r.OpenEdges) == 0 && len(r.CoincidentVertices) == 0
}

// AnalyzeGeometry measures g. Vertices closer than eps count as
// coincident and facets farther than eps from planar are reported.
func AnalyzeGeometry(g *mesh.Geometry, eps float64) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox: g.BoundingBox(),
		SurfaceArea: g.SurfaceArea(),
		FacetCount:  g.FacetCount(),
		VertexCount: len(g.Vertices),
	}
	if !result.BoundingBox.IsEmpty() {
		result.Dimensions = result.BoundingBox.Size()
	}

	edges := make(map[[2]int]*EdgeInfo)
	var order [][2]int
	used := make([]bool, len(g.Vertices))
	for fi, f := range g.Facets {
		if err := f.CheckPlanar(g.Vertices, eps); err != nil {
			result.NonPlanarFacets = append(result.NonPlanarFacets, fi)
		}
		for i, a := range f.Indices {
			used[a] = true
			b := f.Indices[(i+1)%len(f.Indices)]
			if a == b {
				continue
			}
			key := [2]int{min(a, b), max(a, b)}
			e, ok := edges[key]
			if !ok {
				start, end := g.Vertices[key[0]].Position, g.Vertices[key[1]].Position
				e = &EdgeInfo{A: key[0], B: key[1], Start: start, End: end, Length: start.Distance(end)}
				edges[key] = e
				order = append(order, key)
			}
			e.Facets = append(e.Facets, fi)
		}
	}

	minLength := math.MaxFloat64
	maxLength := 0.0
	totalLength := 0.0
	for _, key := range order {
		e := *edges[key]
		result.AllEdges = append(result.AllEdges, e)
		if len(e.Facets) == 1 {
			result.OpenEdges = append(result.OpenEdges, e)
		}
		totalLength += e.Length
		minLength = math.Min(minLength, e.Length)
		maxLength = math.Max(maxLength, e.Length)
	}
	result.EdgeCount = len(result.AllEdges)
	if result.EdgeCount > 0 {
		result.MinEdgeLength = minLength
		result.MaxEdgeLength = maxLength
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	for _, u := range used {
		if !u {
			result.UnusedVertices++
		}
	}
	result.CoincidentVertices = coincident(g.Vertices, eps)
	return result
}

// coincident finds vertex pairs closer than eps using a hash grid
func coincident(vertices []mesh.Vertex, eps float64) [][2]int {
	if eps <= 0 {
		return nil
	}
	cell := func(p geometry.Vector3) [3]int64 {
		return [3]int64{
			int64(math.Floor(p.X / eps)),
			int64(math.Floor(p.Y / eps)),
			int64(math.Floor(p.Z / eps)),
		}
	}
	grid := make(map[[3]int64][]int)
	var pairs [][2]int
	for id, v := range vertices {
		c := cell(v.Position)
		for dx := int64(-1); dx <= 1; dx++ {
			for dy := int64(-1); dy <= 1; dy++ {
				for dz := int64(-1); dz <= 1; dz++ {
					for _, other := range grid[[3]int64{c[0] + dx, c[1] + dy, c[2] + dz}] {
						if vertices[other].Position.Near(v.Position, eps) {
							pairs = append(pairs, [2]int{other, id})
						}
					}
				}
			}
		}
		grid[c] = append(grid[c], id)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
	return pairs
}

// FindEdgesByLength finds all edges within a length range
func FindEdgesByLength(result *MeasurementResult, minLength, maxLength float64) []EdgeInfo {
	var edges []EdgeInfo
	for _, edge := range result.AllEdges {
		if edge.Length >= minLength && edge.Length <= maxLength {
			edges = append(edges, edge)
		}
	}
	return edges
}

// FindLongestEdges returns the N longest edges
func FindLongestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b float64) bool { return a > b })
}

// FindShortestEdges returns the N shortest edges
func FindShortestEdges(result *MeasurementResult, count int) []EdgeInfo {
	return sortedEdges(result, count, func(a, b float64) bool { return a < b })
}

func sortedEdges(result *MeasurementResult, count int, less func(a, b float64) bool) []EdgeInfo {
	edges := make([]EdgeInfo, len(result.AllEdges))
	copy(edges, result.AllEdges)
	sort.SliceStable(edges, func(i, j int) bool {
		return less(edges[i].Length, edges[j].Length)
	})
	if count > len(edges) {
		count = len(edges)
	}
	return edges[:count]
}

// FindNearestVertex returns the id of the vertex nearest to point and
// its distance, or -1 for an empty geometry
func FindNearestVertex(g *mesh.Geometry, point geometry.Vector3) (int, float64) {
	nearest := -1
	minDistance := math.MaxFloat64
	for id, v := range g.Vertices {
		if d := point.Distance(v.Position); d < minDistance {
			nearest, minDistance = id, d
		}
	}
	return nearest, minDistance
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "units"
	}
	return fmt.Sprintf("%.6f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
