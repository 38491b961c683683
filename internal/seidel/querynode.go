package seidel

import "github.com/osuushi/meshslice/internal/throw"

// The query structure is a DAG over the trapezoid map. Y nodes split on a
// vertex, X nodes on a segment, and sinks hold the trapezoids. Random segment
// order gives expected O(n log n) construction. Only segments and winding
// matter, so a cross section made of loose rings with holes needs no special
// handling.

// The content of a QueryNode. Splitting a trapezoid swaps a sink for a Y or X
// node in place, so every parent keeps pointing at the right node.
type QueryNodeInner interface {
	// Descend to the sink containing the point.
	FindPoint(DirectionalPoint) *QueryNode
	ChildNodes() []*QueryNode
	// Keeps *QueryNode itself from satisfying the interface.
	isQueryNodeInner()
}

func (SinkNode) isQueryNodeInner() {}
func (YNode) isQueryNodeInner()    {}
func (XNode) isQueryNodeInner()    {}

// A point being located. When the point is a polygon vertex, the query really
// asks for the trapezoid containing a point an infinitesimal step from it
// towards Toward, which disambiguates vertices that already sit on trapezoid
// boundaries. Vertex queries must never land on a segment.
type DirectionalPoint struct {
	Point  *Point
	Toward *Point
	Vertex bool
}

type QueryNode struct {
	Inner QueryNodeInner
}

func (n *QueryNode) FindPoint(dp DirectionalPoint) *QueryNode {
	if _, ok := n.Inner.(SinkNode); ok {
		return n
	}
	return n.Inner.FindPoint(dp)
}

func (n *QueryNode) ChildNodes() []*QueryNode {
	return n.Inner.ChildNodes()
}

// Trapezoid for a sink node, nil for anything else.
func (n *QueryNode) Trapezoid() *Trapezoid {
	if sink, ok := n.Inner.(SinkNode); ok {
		return sink.Trapezoid
	}
	return nil
}

type SinkNode struct {
	Trapezoid *Trapezoid
}

func (node SinkNode) FindPoint(_ DirectionalPoint) *QueryNode {
	throw.Fatalf("point query descended past sink %s", node.Trapezoid.DbgName())
	return nil
}

func (node SinkNode) ChildNodes() []*QueryNode {
	return nil
}

// YNode splits on the horizontal through Key, ordered by Below.
type YNode struct {
	Above, Below *QueryNode
	Key          *Point
}

func (node YNode) FindPoint(dp DirectionalPoint) *QueryNode {
	var below bool
	// Equal points are only ever the same vertex, so pointer comparison is
	// enough. The direction decides which side of the wall we mean.
	if node.Key == dp.Point {
		below = dp.Toward != nil && dp.Toward.Below(node.Key)
	} else {
		below = dp.Point.Below(node.Key)
	}

	if below {
		return node.Below.FindPoint(dp)
	}
	return node.Above.FindPoint(dp)
}

func (node YNode) ChildNodes() []*QueryNode {
	return []*QueryNode{node.Above, node.Below}
}

// XNode splits on the line through Key. Left holds the side that Side
// reports as positive.
type XNode struct {
	Left, Right *QueryNode
	Key         *Segment
}

func (node XNode) FindPoint(dp DirectionalPoint) *QueryNode {
	var side int
	// At an endpoint the query point is on the line, so the direction picks
	// the side.
	if node.Key.HasEndpoint(dp.Point) {
		if dp.Toward != nil {
			side = node.Key.Side(dp.Toward)
		}
		if side == 0 && dp.Vertex && dp.Toward != nil {
			throw.Invalidf("segments %s and %s overlap", node.Key, &Segment{dp.Point, dp.Toward})
		}
	} else {
		side = node.Key.Side(dp.Point)
		if side == 0 && dp.Vertex {
			throw.Invalidf("vertex (%g, %g) lies on segment %s", dp.Point.X, dp.Point.Y, node.Key)
		}
	}

	if side < 0 {
		return node.Right.FindPoint(dp)
	}
	return node.Left.FindPoint(dp)
}

func (node XNode) ChildNodes() []*QueryNode {
	return []*QueryNode{node.Left, node.Right}
}
