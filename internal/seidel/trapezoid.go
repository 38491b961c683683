package seidel

import (
	"fmt"
	"math"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/osuushi/meshslice/dbg"
	"github.com/osuushi/meshslice/internal/throw"
)

// A Trapezoid is a leaf region of the query structure, bounded by up to two
// segments and two horizontal walls.
type Trapezoid struct {
	Left, Right *Segment
	// The walls are stored as the vertices that define them rather than as y
	// values. Every comparison needs the x tiebreak of Below, and the two
	// vertices are exactly the polygon vertices on the trapezoid's boundary,
	// which is what the monotone split reads off. A vertex is either a side
	// endpoint or sits on the wall away from both sides.
	//
	// Nil means unbounded.
	Top, Bottom *Point

	TrapezoidsAbove, TrapezoidsBelow TrapezoidNeighborList
	Sink                             *QueryNode
}

// Up to two neighbors on each wall once settled. A third can appear during a
// split before relinking removes the old entry.
type TrapezoidNeighborList [3]*Trapezoid

// IsInside reports whether the trapezoid is in the polygon interior: both
// sides exist and the left one runs downward. Counterclockwise rings then put
// an upward segment on the right. Under the Below order, a horizontal segment
// running right to left counts as downward.
func (t *Trapezoid) IsInside() bool {
	return t.Left != nil && t.Right != nil && t.Left.PointsDown()
}

// SplitBySegment cuts the trapezoid along a segment that crosses it from wall
// to wall. Neighbors and sinks of the pieces are left to the caller.
func (t *Trapezoid) SplitBySegment(segment *Segment) (left, right *Trapezoid) {
	left = &Trapezoid{Left: t.Left, Right: segment, Top: t.Top, Bottom: t.Bottom}
	right = &Trapezoid{Left: segment, Right: t.Right, Top: t.Top, Bottom: t.Bottom}
	return left, right
}

func (t *Trapezoid) CanMergeWith(other *Trapezoid) bool {
	return t.Left == other.Left && t.Right == other.Right
}

// HasDiagonal is false when Top and Bottom are the ends of one side, so
// joining them would retrace an edge.
func (t *Trapezoid) HasDiagonal() bool {
	if t.Left.Top() == t.Top && t.Left.Bottom() == t.Bottom {
		return false
	}
	if t.Right.Top() == t.Top && t.Right.Bottom() == t.Bottom {
		return false
	}
	return true
}

// The extent of the trapezoid along the horizontal wall through v, which must
// be its top or bottom point.
func (t *Trapezoid) wallInterval(v *Point) (minX, maxX float64) {
	minX, maxX = math.Inf(-1), math.Inf(1)
	if t.Left != nil {
		minX = t.Left.xAtWall(v)
	}
	if t.Right != nil {
		maxX = t.Right.xAtWall(v)
	}
	return minX, maxX
}

// Two trapezoids stacked on the wall through v touch along an interval of
// positive length.
func sharesWall(above, below *Trapezoid, v *Point) bool {
	aMin, aMax := above.wallInterval(v)
	bMin, bMax := below.wallInterval(v)
	return math.Min(aMax, bMax)-math.Max(aMin, bMin) > 0
}

// Rebuild the neighbor relationships of freshly created pieces. Every
// neighbor of a piece is either another piece or a trapezoid in around. The
// replaced trapezoids are unlinked from around first.
func relink(pieces, replaced, around []*Trapezoid) {
	for _, t := range around {
		for _, r := range replaced {
			t.TrapezoidsAbove.Remove(r)
			t.TrapezoidsBelow.Remove(r)
		}
	}
	for _, p := range pieces {
		p.TrapezoidsAbove = TrapezoidNeighborList{}
		p.TrapezoidsBelow = TrapezoidNeighborList{}
	}
	link := func(above, below *Trapezoid) {
		if above.Bottom != nil && above.Bottom == below.Top && sharesWall(above, below, above.Bottom) {
			above.TrapezoidsBelow.Add(below)
			below.TrapezoidsAbove.Add(above)
		}
	}
	for i, p := range pieces {
		for _, q := range pieces[i+1:] {
			link(p, q)
			link(q, p)
		}
		for _, q := range around {
			link(p, q)
			link(q, p)
		}
	}
}

// Collect the distinct neighbors of a set of trapezoids, excluding the set
// itself.
func neighborsOf(trapezoids []*Trapezoid) []*Trapezoid {
	inSet := make(map[*Trapezoid]struct{}, len(trapezoids))
	for _, t := range trapezoids {
		inSet[t] = struct{}{}
	}
	var result []*Trapezoid
	for _, t := range trapezoids {
		for _, list := range []TrapezoidNeighborList{t.TrapezoidsAbove, t.TrapezoidsBelow} {
			for _, n := range list {
				if n == nil {
					continue
				}
				if _, ok := inSet[n]; ok {
					continue
				}
				inSet[n] = struct{}{}
				result = append(result, n)
			}
		}
	}
	return result
}

func (t *Trapezoid) String() string {
	return fmt.Sprintf("Trapezoid %s { ⬆ %s, ⬇ %s } <L: %s, R: %s, T: %s, B: %s>",
		t.DbgName(),
		t.TrapezoidsAbove.String(),
		t.TrapezoidsBelow.String(),
		dbg.Name(t.Left),
		dbg.Name(t.Right),
		dbg.Name(t.Top),
		dbg.Name(t.Bottom),
	)
}

func (t *Trapezoid) DbgName() string {
	name := dbg.Name(t)
	switch {
	case t.Top == nil || t.Bottom == nil || t.Left == nil || t.Right == nil:
		return aurora.Cyan(name).String()
	case Equal(t.Top.Y, t.Bottom.Y):
		// Flat, from a horizontal run
		return aurora.Red(name).String()
	}
	return aurora.Green(name).String()
}

func (tl *TrapezoidNeighborList) String() string {
	names := []string{}
	for _, neighbor := range tl.Neighbors() {
		names = append(names, dbg.Name(neighbor))
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// The non-nil entries, in slot order.
func (tl *TrapezoidNeighborList) Neighbors() []*Trapezoid {
	var result []*Trapezoid
	for _, neighbor := range *tl {
		if neighbor != nil {
			result = append(result, neighbor)
		}
	}
	return result
}

// Add t to a free slot, unless it is already listed.
func (tl *TrapezoidNeighborList) Add(t *Trapezoid) {
	for _, neighbor := range *tl {
		if neighbor == t {
			return
		}
	}
	for i, neighbor := range *tl {
		if neighbor == nil {
			(*tl)[i] = t
			return
		}
	}
	throw.Fatalf("too many neighbors adding %s", t.DbgName())
}

func (tl *TrapezoidNeighborList) Remove(t *Trapezoid) {
	for i, neighbor := range *tl {
		if neighbor == t {
			(*tl)[i] = nil
			return
		}
	}
}

// ReplaceOrAdd puts replacement in orig's slot, or in a free slot when orig
// is not listed.
func (tl *TrapezoidNeighborList) ReplaceOrAdd(orig, replacement *Trapezoid) {
	for i := range tl {
		if tl[i] == orig {
			tl[i] = replacement
			return
		}
	}
	tl.Add(replacement)
}
