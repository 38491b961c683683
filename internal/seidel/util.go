package seidel

import "math"

// Tolerance for the lexicographic point ordering. Points handed to this
// package are already resolved contour points, so unlike the Delaunay engine,
// ordering is decided with this epsilon rather than exact arithmetic. Side of
// line tests still use exact predicates.
const Tolerance = 1e-6

// Equal compares coordinates within Tolerance. Exact comparison would turn
// nearly horizontal edges into slivers.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Tolerance
}

// Below orders points by Y, breaking ties by X. Equal Y values then never
// occur, as if the plane were rotated slightly clockwise.
func (p *Point) Below(otherPoint *Point) bool {
	if Equal(p.Y, otherPoint.Y) {
		return p.X < otherPoint.X
	}
	return p.Y < otherPoint.Y
}

func (p *Point) Above(otherPoint *Point) bool {
	return !p.Below(otherPoint)
}

// Two distinct points closer than Tolerance on both axes cannot be ordered
// reliably.
func (p *Point) Coincides(otherPoint *Point) bool {
	return Equal(p.X, otherPoint.X) && Equal(p.Y, otherPoint.Y)
}

// CircularIndex wraps i into [0, n), including negative i.
func CircularIndex(i, n int) int {
	return (i%n + n) % n
}

// Stack is a LIFO. Pop and Peek on an empty stack return the zero value.
type Stack[T any] []T

func (s *Stack[T]) Push(v T) {
	*s = append(*s, v)
}

func (s *Stack[T]) Pop() T {
	var v T
	if len(*s) > 0 {
		v = (*s)[len(*s)-1]
		*s = (*s)[:len(*s)-1]
	}
	return v
}

func (s Stack[T]) Peek() T {
	var v T
	if len(s) > 0 {
		v = s[len(s)-1]
	}
	return v
}

func (s Stack[T]) Len() int {
	return len(s)
}

func (s Stack[T]) Empty() bool {
	return len(s) == 0
}

func (set PointSet) Add(p *Point) {
	set[p] = struct{}{}
}

func (set PointSet) Has(p *Point) bool {
	_, ok := set[p]
	return ok
}

func (set PointSet) Equals(other PointSet) bool {
	if len(set) != len(other) {
		return false
	}
	for p := range set {
		if !other.Has(p) {
			return false
		}
	}
	return true
}
