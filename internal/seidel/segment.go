package seidel

import (
	"fmt"

	"github.com/osuushi/meshslice/internal/predicates"
)

// The upper endpoint, using the lexicographic convention.
func (s *Segment) Top() *Point {
	if s.Start.Below(s.End) {
		return s.End
	}
	return s.Start
}

func (s *Segment) Bottom() *Point {
	if s.Start.Below(s.End) {
		return s.Start
	}
	return s.End
}

// A segment points down if it runs from its top to its bottom. For a
// horizontal segment, right to left counts as down.
func (s *Segment) PointsDown() bool {
	return s.End.Below(s.Start)
}

func (s *Segment) IsHorizontal() bool {
	return Equal(s.Start.Y, s.End.Y)
}

func (s *Segment) HasEndpoint(p *Point) bool {
	return s.Start == p || s.End == p
}

// Side of the segment's supporting line that p is on, looking from the bottom
// endpoint towards the top: 1 for left, -1 for right, 0 if collinear. Only the
// line matters, not the extent of the segment.
func (s *Segment) Side(p *Point) int {
	return predicates.Orient2D(s.Bottom().Vec(), s.Top().Vec(), p.Vec())
}

// Is the segment to the left of the point? That is, is the point strictly on
// the right of the line through the segment?
func (s *Segment) IsLeftOf(p *Point) bool {
	return s.Side(p) < 0
}

func (s *Segment) IsRightOf(p *Point) bool {
	return s.Side(p) > 0
}

// Solve the line through the segment for x at the given y. Horizontal
// segments have no unique answer, and give the midpoint.
func (s *Segment) SolveForX(y float64) float64 {
	if s.IsHorizontal() {
		return (s.Start.X + s.End.X) / 2
	}
	t := (y - s.Start.Y) / (s.End.Y - s.Start.Y)
	return s.Start.X + t*(s.End.X-s.Start.X)
}

// The x coordinate where the segment meets the horizontal wall through v. In
// the rotated frame a horizontal segment only meets a wall at one of its
// endpoints, or at v itself.
func (s *Segment) xAtWall(v *Point) float64 {
	if s.HasEndpoint(v) || s.IsHorizontal() {
		return v.X
	}
	return s.SolveForX(v.Y)
}

func (s *Segment) String() string {
	return fmt.Sprintf("(%g, %g)->(%g, %g)", s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}
