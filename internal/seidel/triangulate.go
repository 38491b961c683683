// Package seidel triangulates polygons with holes by Seidel's randomized
// trapezoidation. The trapezoids are traced into monotone polygons, and each
// monotone polygon is triangulated in linear time.
//
// Point ordering here is tolerance based (see Tolerance), which is a narrower
// robustness guarantee than the Delaunay engine gives. Inputs are expected to
// be resolved contour points, not raw mesh geometry.
package seidel

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/osuushi/meshslice/internal/throw"
	"golang.org/x/exp/slices"
)

type Options struct {
	// Seed for the shuffled segment insertion order. A fixed seed gives
	// predictable results, which are easier to debug. Use a random seed for
	// untrusted input, to avoid adversarial worst cases.
	Seed int64
	// When set, a PNG of the trapezoidation is written to this path before the
	// monotone split.
	DebugImagePath string
}

func (opts Options) rand() *rand.Rand {
	return rand.New(rand.NewSource(opts.Seed))
}

// TriangulateWith triangulates consistently wound rings. It panics with a
// throw error kind on failure; Triangulate is the error returning entry point.
func (list PolygonList) TriangulateWith(opts Options) TriangleList {
	graph := NewQueryGraph()
	graph.AddPolygons(list, opts.rand())
	if opts.DebugImagePath != "" {
		if err := graph.SavePNG(opts.DebugImagePath, 0); err != nil {
			throw.Invalidf("debug image: %v", err)
		}
	}

	var result TriangleList
	for _, monotone := range graph.Monotones() {
		monotone := monotone
		result = append(result, TriangulateMonotone(&monotone)...)
	}
	return result
}

// Triangulate rings given as point lists. Solid rings and holes must wind
// oppositely; if the largest ring is clockwise, every ring is reversed first,
// so either overall orientation is accepted. The output triangles are
// counterclockwise and index the concatenation of the rings in ring order.
func Triangulate(rings [][]r2.Point, opts Options) (triangles [][3]int, err error) {
	defer func() {
		err = throw.Recover(recover(), err)
		if err != nil {
			triangles = nil
		}
	}()

	list, indexOf := buildRings(rings)
	for _, tri := range list.TriangulateWith(opts) {
		triangles = append(triangles, [3]int{indexOf[tri.A], indexOf[tri.B], indexOf[tri.C]})
	}
	return triangles, nil
}

// Convert and validate the input rings, and normalize their orientation.
func buildRings(rings [][]r2.Point) (PolygonList, map[*Point]int) {
	if len(rings) == 0 {
		throw.Invalidf("no rings")
	}
	list := make(PolygonList, 0, len(rings))
	indexOf := make(map[*Point]int)
	var all []*Point
	largest, largestArea := 0, 0.0
	for i, ring := range rings {
		if len(ring) < 3 {
			throw.Invalidf("ring %d has %d points", i, len(ring))
		}
		poly := Polygon{Points: make([]*Point, 0, len(ring))}
		for _, v := range ring {
			if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
				throw.Invalidf("ring %d has non-finite point %v", i, v)
			}
			p := &Point{X: v.X, Y: v.Y}
			indexOf[p] = len(all)
			all = append(all, p)
			poly.Points = append(poly.Points, p)
		}
		area := math.Abs(poly.SignedArea())
		if area < Tolerance*Tolerance {
			throw.Degeneratef("ring %d has no area", i)
		}
		if area > largestArea {
			largest, largestArea = i, area
		}
		list = append(list, poly)
	}

	checkCoincident(all)

	if IsCW(list[largest]) {
		for i := range list {
			list[i] = list[i].Reverse()
		}
	}
	return list, indexOf
}

// Distinct points must be further than Tolerance apart on some axis, or the
// lexicographic order cannot separate them.
func checkCoincident(points []*Point) {
	sorted := slices.Clone(points)
	slices.SortFunc(sorted, func(a, b *Point) bool { return a.X < b.X })
	for i, p := range sorted {
		for _, q := range sorted[i+1:] {
			if q.X-p.X >= Tolerance {
				break
			}
			if Equal(p.Y, q.Y) {
				throw.Invalidf("points (%g, %g) and (%g, %g) coincide", p.X, p.Y, q.X, q.Y)
			}
		}
	}
}
