package seidel

import "github.com/osuushi/meshslice/internal/predicates"

// ContainsPointByEvenOdd is a brute force containment test. For many queries
// against one shape, ContainsPoint on its QueryGraph is faster.
func (poly Polygon) ContainsPointByEvenOdd(p *Point) bool {
	return poly.CrossingCount(p)%2 == 1
}

// CrossingCount is the number of edges crossed by a ray from p toward +x.
func (poly Polygon) CrossingCount(p *Point) int {
	count := 0
	for i, a := range poly.Points {
		b := poly.Points[CircularIndex(i+1, len(poly.Points))]
		edge := Segment{a, b}
		if a.Below(p) != b.Below(p) && edge.IsRightOf(p) {
			count++
		}
	}
	return count
}

// Reverse returns the ring with opposite winding. Points are shared.
func (poly Polygon) Reverse() Polygon {
	points := make([]*Point, len(poly.Points))
	for i, p := range poly.Points {
		points[len(points)-1-i] = p
	}
	return Polygon{points}
}

// Shoelace area, positive for counterclockwise polygons.
func (poly Polygon) SignedArea() float64 {
	var sum float64
	for i, p := range poly.Points {
		q := poly.Points[CircularIndex(i+1, len(poly.Points))]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func (list PolygonList) ContainsPointByEvenOdd(p *Point) bool {
	count := 0
	for _, poly := range list {
		count += poly.CrossingCount(p)
	}
	return count%2 == 1
}

// Total signed area. With consistent winding this is solids minus holes.
func (list PolygonList) SignedArea() float64 {
	var sum float64
	for _, poly := range list {
		sum += poly.SignedArea()
	}
	return sum
}

func (t *Triangle) SignedArea() float64 {
	return ((t.B.X-t.A.X)*(t.C.Y-t.A.Y) - (t.C.X-t.A.X)*(t.B.Y-t.A.Y)) / 2
}

// Exact orientation of the triangle: 1 for counterclockwise, -1 for clockwise
// and 0 for a degenerate triangle.
func (t *Triangle) Orientation() int {
	return predicates.Orient2D(t.A.Vec(), t.B.Vec(), t.C.Vec())
}

func (list TriangleList) ToPolygonList() PolygonList {
	result := make(PolygonList, 0, len(list))
	for _, t := range list {
		result = append(result, Polygon{[]*Point{t.A, t.B, t.C}})
	}
	return result
}

type signedAreaer interface {
	SignedArea() float64
}

func IsCCW(shape signedAreaer) bool {
	return shape.SignedArea() > 0
}

func IsCW(shape signedAreaer) bool {
	return shape.SignedArea() < 0
}

func Area(shape signedAreaer) float64 {
	a := shape.SignedArea()
	if a < 0 {
		return -a
	}
	return a
}
