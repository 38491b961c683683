package seidel

import "github.com/golang/geo/r2"

// Note that all points involved with the triangulation are pointers. This means
// they can be used as keys, and it is how output triangles are mapped back to
// indices of the input rings. We should never modify a point value from the
// original polygon, since callers require exact equality, and we cannot
// tolerate loss of precision.
type Point struct {
	X float64
	Y float64
}

func (p *Point) Vec() r2.Point {
	return r2.Point{X: p.X, Y: p.Y}
}

type Segment struct {
	Start *Point
	End   *Point
}

type Triangle struct {
	A, B, C *Point
}

type Polygon struct {
	Points []*Point
}

// A list of rings. Counterclockwise rings are solid and clockwise rings are
// holes.
type PolygonList []Polygon

type TriangleList []*Triangle

type PointSet map[*Point]struct{}
