package seidel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tolerance for area comparisons in tests
const Epsilon = 1e-9

func AssertValidTriangulation(t *testing.T, polygon *Polygon, triangles []*Triangle) {
	AssertValidListTriangulation(t, PolygonList{*polygon}, triangles)
}

// AssertValidListTriangulation checks that the triangles use exactly the
// ring vertices, are strictly counterclockwise, contain every ring edge, and
// add up to the signed area of the list.
func AssertValidListTriangulation(t *testing.T, list PolygonList, triangles []*Triangle) {
	t.Helper()
	require.True(t, IsCCW(list), "rings must have positive total area")

	want := make(PointSet)
	for _, poly := range list {
		for _, p := range poly.Points {
			want.Add(p)
		}
	}
	got := make(PointSet)
	edges := make(edgeSet)
	area := 0.0
	for _, tri := range triangles {
		require.Equal(t, 1, tri.Orientation(), "triangle %v %v %v", *tri.A, *tri.B, *tri.C)
		for _, e := range [][2]*Point{{tri.A, tri.B}, {tri.B, tri.C}, {tri.C, tri.A}} {
			got.Add(e[0])
			edges.add(e[0], e[1])
		}
		area += Area(tri)
	}
	require.True(t, want.Equals(got), "triangles use %d vertices, rings have %d", len(got), len(want))

	for _, poly := range list {
		for i, a := range poly.Points {
			b := poly.Points[CircularIndex(i+1, len(poly.Points))]
			require.True(t, edges.has(a, b), "ring edge %v-%v is missing", *a, *b)
		}
	}
	require.InDelta(t, list.SignedArea(), area, Epsilon*math.Max(1, list.SignedArea()))
}

// Undirected edges, keyed by their lower then upper endpoint.
type edgeSet map[[2]*Point]struct{}

func edgeKey(a, b *Point) [2]*Point {
	if b.Below(a) {
		a, b = b, a
	}
	return [2]*Point{a, b}
}

func (set edgeSet) add(a, b *Point) {
	set[edgeKey(a, b)] = struct{}{}
}

func (set edgeSet) has(a, b *Point) bool {
	_, ok := set[edgeKey(a, b)]
	return ok
}

// Sample a jittered grid over both shapes. Samples inside expected must be
// covered by exactly one polygon of actual, and samples outside by none. The
// irrational offsets keep samples off fixture edges and diagonals.
func validatePolygonsBySampling(t *testing.T, actual, expected PolygonList) {
	box := newBounds()
	for _, list := range []PolygonList{actual, expected} {
		for _, poly := range list {
			for _, p := range poly.Points {
				box.add(p)
			}
		}
	}
	pad := Point{X: (box.max.X - box.min.X) / 10, Y: (box.max.Y - box.min.Y) / 10}
	minX, minY := box.min.X-pad.X, box.min.Y-pad.Y
	maxX, maxY := box.max.X+pad.X, box.max.Y+pad.Y
	step := math.Max(maxX-minX, maxY-minY) / 50

	failures := 0
	for j := 0; minY+float64(j)*step <= maxY; j++ {
		for i := 0; minX+float64(i)*step <= maxX; i++ {
			p := &Point{
				X: minX + (float64(i)+0.3183099)*step,
				Y: minY + (float64(j)+0.2718281)*step,
			}
			want := 0
			if expected.ContainsPointByEvenOdd(p) {
				want = 1
			}
			covered := 0
			for _, poly := range actual {
				if poly.ContainsPointByEvenOdd(p) {
					covered++
				}
			}
			if !assert.Equal(t, want, covered, "coverage of %v", *p) {
				failures++
				if failures > 10 {
					t.FailNow()
				}
			}
		}
	}
}
