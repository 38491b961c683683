package seidel

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/osuushi/meshslice/internal/throw"
)

// QueryGraph is the trapezoid map of Seidel's 1991 algorithm together with its
// point location DAG. Vertices are ordered by Below throughout.
type QueryGraph struct {
	Root *QueryNode
	// Vertices which already have a horizontal split through them
	vertices PointSet
	// Number of segments added, which bounds the length of any walk
	segmentCount int
}

// GraphIterator visits each node reachable from a root once, depth first. The
// graph must not change while iterating.
type GraphIterator struct {
	stack []*QueryNode
	seen  map[*QueryNode]struct{}
}

func NewGraphIterator(root *QueryNode) *GraphIterator {
	return &GraphIterator{[]*QueryNode{root}, map[*QueryNode]struct{}{}}
}

// Next node, or nil when the graph is exhausted.
func (iter *GraphIterator) Next() *QueryNode {
	for len(iter.stack) > 0 {
		node := iter.stack[len(iter.stack)-1]
		iter.stack = iter.stack[:len(iter.stack)-1]
		if _, ok := iter.seen[node]; ok {
			continue
		}
		iter.seen[node] = struct{}{}
		iter.stack = append(iter.stack, node.ChildNodes()...)
		return node
	}
	return nil
}

// Create an empty graph: a single sink for the trapezoid covering the whole
// plane.
func NewQueryGraph() *QueryGraph {
	universe := &Trapezoid{}
	universe.Sink = &QueryNode{SinkNode{Trapezoid: universe}}
	return &QueryGraph{Root: universe.Sink, vertices: make(PointSet)}
}

// Every trapezoid currently in the graph.
func (graph *QueryGraph) Trapezoids() []*Trapezoid {
	var result []*Trapezoid
	iter := NewGraphIterator(graph.Root)
	for node := iter.Next(); node != nil; node = iter.Next() {
		if t := node.Trapezoid(); t != nil {
			result = append(result, t)
		}
	}
	return result
}

func (graph *QueryGraph) String() string {
	var parts []string
	for _, t := range graph.Trapezoids() {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, "\n")
}

func (graph *QueryGraph) FindPoint(dp DirectionalPoint) *QueryNode {
	return graph.Root.FindPoint(dp)
}

// Split the trapezoid containing a new vertex horizontally, unless the vertex
// is already in the graph.
func (graph *QueryGraph) addVertex(p *Point) {
	if graph.vertices.Has(p) {
		return
	}
	graph.vertices.Add(p)
	graph.SplitTrapezoidHorizontally(graph.FindPoint(DirectionalPoint{Point: p, Vertex: true}), p)
}

func (graph *QueryGraph) AddSegment(segment *Segment) {
	if segment == nil {
		throw.Fatalf("nil segment")
	}
	graph.segmentCount++
	top := segment.Top()
	bottom := segment.Bottom()
	graph.addVertex(top)
	graph.addVertex(bottom)

	// Find the trapezoid just below the top point along the segment. The
	// horizontal split through the top point guarantees its top is that point.
	node := graph.FindPoint(DirectionalPoint{Point: top, Toward: bottom, Vertex: true})
	trapezoid := node.Trapezoid()
	if trapezoid.Top != top {
		throw.Fatalf("segment %s starts inside %s", segment, trapezoid)
	}

	// Walk down through every trapezoid the segment crosses. The walk ends at
	// the trapezoid whose bottom is the bottom point.
	var crossed []*Trapezoid
	for {
		crossed = append(crossed, trapezoid)
		if trapezoid.Bottom == bottom {
			break
		}
		if trapezoid.Bottom == nil || trapezoid.Bottom.Below(bottom) {
			throw.Fatalf("segment %s passed its bottom in %s", segment, trapezoid)
		}
		if len(crossed) > 4*graph.segmentCount+4 {
			throw.Fatalf("walk along segment %s did not terminate", segment)
		}
		trapezoid = nextBelow(trapezoid, segment)
	}

	// Split every crossed trapezoid. A wall between two consecutive crossed
	// trapezoids survives only on the side of the segment that holds the
	// wall's vertex, so the pieces on the other side merge into one.
	var lefts, rights []*Trapezoid
	for i, t := range crossed {
		left, right := t.SplitBySegment(segment)
		if i > 0 {
			v := crossed[i-1].Bottom
			switch segment.Side(v) {
			case 1: // The wall vertex is on the left, so the right wall goes away
				right = mergeDown(rights[i-1], right)
			case -1:
				left = mergeDown(lefts[i-1], left)
			default:
				throw.Invalidf("vertex (%g, %g) lies on segment %s", v.X, v.Y, segment)
			}
		}
		lefts = append(lefts, left)
		rights = append(rights, right)
	}

	// The merged chains share pieces. Deduplicate them, and give each its sink.
	var pieces []*Trapezoid
	for _, chain := range [2][]*Trapezoid{lefts, rights} {
		for i, piece := range chain {
			if i > 0 && chain[i-1] == piece {
				continue
			}
			piece.Sink = &QueryNode{SinkNode{Trapezoid: piece}}
			pieces = append(pieces, piece)
		}
	}

	relink(pieces, crossed, neighborsOf(crossed))

	// Every crossed trapezoid's sink becomes an XNode pointing at the pieces
	// that cover it.
	for i, t := range crossed {
		t.Sink.Inner = XNode{
			Key:   segment,
			Left:  lefts[i].Sink,
			Right: rights[i].Sink,
		}
	}
}

// Extend an upper piece downward over the next piece, which has the same
// sides. Returns the upper piece, which now covers both.
func mergeDown(upper, lower *Trapezoid) *Trapezoid {
	if !upper.CanMergeWith(lower) {
		throw.Fatalf("cannot merge %s with %s", upper, lower)
	}
	upper.Bottom = lower.Bottom
	return upper
}

// Find the trapezoid below t that the segment continues into. There are at
// most two candidates, separated by segments hanging down from t's bottom
// point, so the side of that point decides.
func nextBelow(t *Trapezoid, segment *Segment) *Trapezoid {
	below := t.TrapezoidsBelow.Neighbors()
	switch len(below) {
	case 1:
		return below[0]
	case 2:
		v := t.Bottom
		left, right := below[0], below[1]
		if !(left.Right != nil && left.Right.Top() == v) {
			left, right = right, left
		}
		if !(left.Right != nil && left.Right.Top() == v) {
			throw.Fatalf("neighbors below %s are not separated at its bottom", t)
		}
		switch segment.Side(v) {
		case 1:
			return right
		case -1:
			return left
		}
		throw.Invalidf("vertex (%g, %g) lies on segment %s", v.X, v.Y, segment)
	}
	if t.Bottom != nil && segment.Side(t.Bottom) == 0 {
		throw.Invalidf("vertex (%g, %g) lies on segment %s", t.Bottom.X, t.Bottom.Y, segment)
	}
	throw.Fatalf("%s has %d neighbors below", t, len(below))
	return nil
}

// SplitTrapezoidHorizontally cuts the sink's trapezoid with the horizontal
// through point, and turns the sink into a YNode over the two halves.
func (graph *QueryGraph) SplitTrapezoidHorizontally(node *QueryNode, point *Point) {
	sink, ok := node.Inner.(SinkNode)
	if !ok {
		throw.Fatalf("horizontal split of non-sink node")
	}
	orig := sink.Trapezoid
	if orig.Top != nil && orig.Top.Below(point) {
		throw.Fatalf("split point %s is above %s", dbgPoint(point), orig)
	}
	if orig.Bottom != nil && orig.Bottom.Above(point) {
		throw.Fatalf("split point %s is below %s", dbgPoint(point), orig)
	}

	top, bottom := *orig, *orig
	top.Bottom, bottom.Top = point, point
	// Upper neighbors stay with the top half, lower ones with the bottom.
	top.TrapezoidsBelow = TrapezoidNeighborList{&bottom}
	bottom.TrapezoidsAbove = TrapezoidNeighborList{&top}
	top.Sink = &QueryNode{SinkNode{Trapezoid: &top}}
	bottom.Sink = &QueryNode{SinkNode{Trapezoid: &bottom}}
	for _, neighbor := range top.TrapezoidsAbove.Neighbors() {
		neighbor.TrapezoidsBelow.ReplaceOrAdd(orig, &top)
	}
	for _, neighbor := range bottom.TrapezoidsBelow.Neighbors() {
		neighbor.TrapezoidsAbove.ReplaceOrAdd(orig, &bottom)
	}

	node.Inner = YNode{Key: point, Above: top.Sink, Below: bottom.Sink}
}

// AddPolygon adds one ring. Clockwise rings carve holes. The ring must not
// cross segments already in the graph.
func (graph *QueryGraph) AddPolygon(poly Polygon, r *rand.Rand) {
	graph.AddPolygons(PolygonList{poly}, r)
}

// AddPolygons inserts the segments of every ring in an order shuffled by r.
// The shuffle gives the expected O(n log n) bound, and a fixed seed makes runs
// repeatable.
func (graph *QueryGraph) AddPolygons(list PolygonList, r *rand.Rand) {
	var segments []*Segment
	for _, poly := range list {
		for i := range poly.Points {
			segments = append(segments, &Segment{poly.Points[i], poly.Points[CircularIndex(i+1, len(poly.Points))]})
		}
	}

	r.Shuffle(len(segments), func(i, j int) {
		segments[i], segments[j] = segments[j], segments[i]
	})

	for _, segment := range segments {
		graph.AddSegment(segment)
	}
}

// ContainsPoint locates point in the map. Points on a segment may go either
// way.
func (graph *QueryGraph) ContainsPoint(point *Point) bool {
	return graph.FindPoint(DirectionalPoint{Point: point}).Trapezoid().IsInside()
}

func (dp DirectionalPoint) String() string {
	if dp.Toward == nil {
		return dbgPoint(dp.Point)
	}
	return dbgPoint(dp.Point) + "->" + dbgPoint(dp.Toward)
}

func dbgPoint(p *Point) string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
