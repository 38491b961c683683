// Package contour assembles cut edges into loops and nests loops into an
// outer boundary / hole hierarchy.
package contour

import (
	"github.com/golang/geo/r2"

	"github.com/osuushi/meshslice/internal/predicates"
)

// Loops chains directed edges into loops. Each edge is used once. Chains
// that return to their first vertex are closed loops; any that run into a
// dead end are returned as open chains, including both end vertices.
//
// Where several edges leave the same vertex (two loops touching at a point),
// the edges are taken in input order.
func Loops[K comparable](edges [][2]K) (closed, open [][]K) {
	outgoing := map[K][]int{}
	for i, e := range edges {
		outgoing[e[0]] = append(outgoing[e[0]], i)
	}
	used := make([]bool, len(edges))
	take := func(from K) (int, bool) {
		list := outgoing[from]
		for len(list) > 0 && used[list[0]] {
			list = list[1:]
		}
		outgoing[from] = list
		if len(list) == 0 {
			return -1, false
		}
		used[list[0]] = true
		return list[0], true
	}

	for i, e := range edges {
		if used[i] {
			continue
		}
		used[i] = true
		chain := []K{e[0]}
		cur := e[1]
		for cur != e[0] {
			chain = append(chain, cur)
			j, ok := take(cur)
			if !ok {
				break
			}
			cur = edges[j][1]
		}
		if cur == e[0] {
			closed = append(closed, chain)
		} else {
			open = append(open, chain)
		}
	}
	return closed, open
}

// Contains reports whether p is inside the closed polygon loop, by counting
// crossings of a ray from p toward +x. Points exactly on the boundary may go
// either way.
func Contains(loop []r2.Point, p r2.Point) bool {
	inside := false
	n := len(loop)
	for i := 0; i < n; i++ {
		a, b := loop[i], loop[(i+1)%n]
		if (a.Y > p.Y) == (b.Y > p.Y) {
			continue
		}
		o := predicates.Orient2D(a, b, p)
		if (b.Y > a.Y && o > 0) || (b.Y < a.Y && o < 0) {
			inside = !inside
		}
	}
	return inside
}

// SignedArea is positive for counter-clockwise loops.
func SignedArea(loop []r2.Point) float64 {
	sum := 0.0
	n := len(loop)
	for i := 0; i < n; i++ {
		sum += loop[i].Cross(loop[(i+1)%n])
	}
	return sum / 2
}
