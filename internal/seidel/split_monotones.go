package seidel

import "github.com/osuushi/meshslice/internal/throw"

// ConvertToMonotones trapezoidizes the rings and cuts the interior into
// y-monotone polygons.
func ConvertToMonotones(list PolygonList, opts Options) PolygonList {
	graph := NewQueryGraph()
	graph.AddPolygons(list, opts.rand())
	return graph.Monotones()
}

// Monotones walks the inside trapezoids into monotone polygons. It splits
// trapezoids without updating the query structure, so the graph is unusable
// afterwards.
func (graph *QueryGraph) Monotones() PolygonList {
	var inside []*Trapezoid
	for _, trapezoid := range graph.Trapezoids() {
		if trapezoid.IsInside() {
			inside = append(inside, trapezoid)
		}
	}

	// Diagonal pieces have sides that break the winding rule IsInside relies
	// on, so from here on the remaining set decides membership.
	inside = splitTrapezoidsOnDiagonals(inside)
	remaining := make(map[*Trapezoid]struct{}, len(inside))
	for _, trapezoid := range inside {
		remaining[trapezoid] = struct{}{}
	}

	var result PolygonList
	for _, trapezoid := range inside {
		if _, ok := remaining[trapezoid]; ok {
			result = append(result, traceMonotone(trapezoid, remaining))
		}
	}
	return result
}

// Collect the monotone polygon containing start, removing its trapezoids from
// remaining.
func traceMonotone(start *Trapezoid, remaining map[*Trapezoid]struct{}) Polygon {
	top := start
	for steps := 0; ; steps++ {
		above := insideNeighbor(&top.TrapezoidsAbove, remaining)
		if above == nil {
			break
		}
		if steps > len(remaining) {
			throw.Fatalf("cycle above %s", start)
		}
		top = above
	}

	// The apex goes on the left chain, and so does the final bottom vertex
	// where the chains meet.
	left := []*Point{top.Top}
	var right []*Point
	for t := top; ; {
		delete(remaining, t)
		v := t.Bottom
		onLeft, onRight := v == t.Left.Bottom(), v == t.Right.Bottom()
		if !onLeft && !onRight {
			throw.Fatalf("bottom of %s is on neither chain", t)
		}
		if onLeft {
			left = append(left, v)
		} else {
			right = append(right, v)
		}
		if onLeft && onRight {
			break
		}
		if t = insideNeighbor(&t.TrapezoidsBelow, remaining); t == nil {
			throw.Fatalf("monotone below %s ends open", top)
		}
	}

	// Counterclockwise: down the left chain, then up the right.
	points := left
	for i := len(right) - 1; i >= 0; i-- {
		points = append(points, right[i])
	}
	if len(points) < 3 {
		throw.Fatalf("monotone has only %d points", len(points))
	}
	return Polygon{points}
}

// The single neighbor still in the inside set. Once diagonals are split, a
// monotone's trapezoids form a simple chain.
func insideNeighbor(list *TrapezoidNeighborList, inside map[*Trapezoid]struct{}) *Trapezoid {
	var found *Trapezoid
	for _, neighbor := range list.Neighbors() {
		if _, ok := inside[neighbor]; !ok {
			continue
		}
		if found != nil {
			throw.Fatalf("monotone chain branches into %s and %s", found, neighbor)
		}
		found = neighbor
	}
	return found
}

// Cut each trapezoid whose top and bottom vertices are not joined by a side
// along the diagonal between them, and relink the pieces.
func splitTrapezoidsOnDiagonals(trapezoids []*Trapezoid) []*Trapezoid {
	result := make([]*Trapezoid, 0, len(trapezoids))
	for _, trapezoid := range trapezoids {
		if !trapezoid.HasDiagonal() {
			result = append(result, trapezoid)
			continue
		}
		left, right := trapezoid.SplitBySegment(&Segment{trapezoid.Top, trapezoid.Bottom})
		replaced := []*Trapezoid{trapezoid}
		relink([]*Trapezoid{left, right}, replaced, neighborsOf(replaced))
		result = append(result, left, right)
	}
	return result
}
