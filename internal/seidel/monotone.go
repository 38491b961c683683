package seidel

import "github.com/osuushi/meshslice/internal/throw"

// A monotone polygon vertex in sweep order, tagged with the chain it lies on.
// The top vertex counts as the right chain.
type sweepVertex struct {
	*Point
	left bool
}

// TriangulateMonotone triangulates a counterclockwise y-monotone polygon by
// sweeping its vertices from top to bottom with a stack of reflex vertices.
//
// Monotonicity is with respect to the Below order, which behaves like a y axis
// rotated by an infinitesimal angle. So a horizontal edge must lie above the
// interior on the left chain, and below it on the right chain. Trapezoidation
// produces monotone pieces under the same convention.
func TriangulateMonotone(polygon *Polygon) []*Triangle {
	n := len(polygon.Points)
	if n < 3 {
		throw.Fatalf("monotone polygon has %d points", n)
	}
	if n == 3 {
		return []*Triangle{{polygon.Points[0], polygon.Points[1], polygon.Points[2]}}
	}

	order, bottom := sweepOrder(polygon)
	triangles := make([]*Triangle, 0, n-2)
	emit := func(a, b, c *Point) {
		tri := &Triangle{a, b, c}
		if tri.Orientation() < 0 {
			throw.Fatalf("monotone sweep emitted clockwise triangle %v", tri)
		}
		triangles = append(triangles, tri)
	}

	stack := Stack[sweepVertex]{order[0], order[1]}
	for i := 2; i < len(order); i++ {
		v := order[i]

		if v.left != stack.Peek().left {
			// v sees every stacked vertex across the polygon.
			for stack.Len() > 1 {
				a := stack.Pop()
				b := stack.Peek()
				if v.left {
					emit(v.Point, a.Point, b.Point)
				} else {
					emit(a.Point, v.Point, b.Point)
				}
			}
			stack = Stack[sweepVertex]{order[i-1], v}
			continue
		}

		// Same chain. Clip ears while v sees past the top of the stack. A
		// collinear run stays stacked until the other chain closes it.
		last := stack.Pop()
		for !stack.Empty() {
			q := stack.Peek()
			tri := &Triangle{v.Point, last.Point, q.Point}
			if v.left {
				tri = &Triangle{v.Point, q.Point, last.Point}
			}
			if tri.Orientation() <= 0 {
				break
			}
			triangles = append(triangles, tri)
			last = stack.Pop()
		}
		stack.Push(last)
		stack.Push(v)
	}

	// Fan what is left from the bottom vertex. This includes the triangle
	// touching the last stacked vertex, so bottom is never dropped.
	for stack.Len() > 1 {
		l := stack.Pop()
		p := stack.Peek()
		if l.left {
			emit(bottom, p.Point, l.Point)
		} else {
			emit(bottom, l.Point, p.Point)
		}
	}
	return triangles
}

// Merge both chains into one top to bottom order. The bottom vertex, where
// the chains meet, is returned separately.
func sweepOrder(polygon *Polygon) ([]sweepVertex, *Point) {
	points := polygon.Points
	n := len(points)
	top := 0
	for i, p := range points {
		if p.Above(points[top]) {
			top = i
		}
	}

	order := make([]sweepVertex, 1, n-1)
	order[0] = sweepVertex{Point: points[top]}
	// Counterclockwise, the left chain follows increasing indices down from
	// the top.
	l, r := top+1, top-1
	for {
		lp := points[CircularIndex(l, n)]
		rp := points[CircularIndex(r, n)]
		if lp == rp {
			return order, lp
		}
		if lp.Above(rp) {
			order = append(order, sweepVertex{lp, true})
			l++
		} else {
			order = append(order, sweepVertex{Point: rp})
			r--
		}
	}
}
