package seidel

import (
	"math"
	"testing"
)

func TestTriangulateMonotone(t *testing.T) {
	fixed := []struct {
		name   string
		points []*Point
	}{
		{"triangle", []*Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}}},
		{"sliver triangle", []*Point{{X: -10, Y: 0}, {X: 43, Y: 2}, {X: 0, Y: 2}}},
		{"triangle with horizontal", []*Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}},
		// Horizontal edges are fine under the Below order.
		{"square", []*Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}},
		{"diamond", []*Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 2}, {X: -1, Y: 1}}},
		// Reflex vertex at (5, 10) on the left chain
		{"chevron", []*Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 20}, {X: 5, Y: 10}}},
		// A straight run on the left chain must not produce zero area triangles.
		{"collinear chain points", []*Point{
			{X: 0, Y: 0}, {X: 4, Y: 1}, {X: 4, Y: 9}, {X: 0, Y: 10},
			{X: 0, Y: 7}, {X: 0, Y: 5}, {X: 0, Y: 3},
		}},
	}
	for _, c := range fixed {
		c := c
		t.Run(c.name, func(t *testing.T) {
			poly := &Polygon{c.points}
			AssertValidTriangulation(t, poly, TriangulateMonotone(poly))
		})
	}

	// Mirroring in one axis flips the winding, so those rings are reversed.
	reflections := []struct {
		name    string
		sx, sy  float64
		reverse bool
	}{
		{"original", 1, 1, false},
		{"x reflected", -1, 1, true},
		{"y reflected", 1, -1, true},
		{"xy reflected", -1, -1, false},
	}
	shapes := map[string]func() *Polygon{
		"zigzag":   zigzagMonotone,
		"sawtooth": sawtoothMonotone,
	}
	for name, shape := range shapes {
		for _, r := range reflections {
			shape, r := shape, r
			t.Run(name+" "+r.name, func(t *testing.T) {
				poly := shape()
				for _, p := range poly.Points {
					p.X *= r.sx
					p.Y *= r.sy
				}
				if r.reverse {
					*poly = poly.Reverse()
				}
				AssertValidTriangulation(t, poly, TriangulateMonotone(poly))
			})
		}
	}
}

// Both chains wiggle in and out, with interleaved heights, so the stack
// alternates between chains and fills up with reflex vertices.
func zigzagMonotone() *Polygon {
	var right, left []*Point
	for i := 0; i <= 10; i++ {
		y := float64(i) * 2
		x := 5 + 2*float64(i%2)
		right = append(right, &Point{X: x, Y: y})
		left = append(left, &Point{X: -5 + 1.5*float64(i%2), Y: y + 1})
	}
	// CCW: up the right chain, then down the left
	points := right
	for i := len(left) - 1; i >= 0; i-- {
		points = append(points, left[i])
	}
	return &Polygon{points}
}

// A straight left side with a deep sawtooth on the right. Every tooth is a
// reflex vertex that must wait on the stack.
func sawtoothMonotone() *Polygon {
	points := []*Point{{X: 0, Y: 0}}
	for i := 0; i < 8; i++ {
		y := float64(i) * 3
		points = append(points,
			&Point{X: 10, Y: y + 1},
			&Point{X: 2 + math.Mod(float64(i), 3), Y: y + 2.5},
		)
	}
	points = append(points, &Point{X: 0, Y: 25})
	return &Polygon{points}
}
