// Package cdt computes constrained Delaunay triangulations of planar point
// sets.
//
// A Triangulation runs in three phases: incremental Delaunay insertion with
// edge flips, recovery of every constraint edge by flipping the edges that
// cross it, and a parity flood fill that keeps the triangles inside the
// region bounded by the constraints.
//
// All orientation and circle decisions go through package predicates, so the
// topology never depends on floating point noise.
package cdt

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/osuushi/meshslice/internal/ordset"
	"github.com/osuushi/meshslice/internal/predicates"
	"github.com/osuushi/meshslice/internal/throw"
)

// SeedMode selects how the incremental insertion is started.
type SeedMode int

const (
	// SeedMinCircumcircle starts from the triangle of smallest circumcircle
	// near the center of the points and grows a convex hull outward, ordered
	// by distance from that triangle.
	SeedMinCircumcircle SeedMode = iota
	// SeedGhostTriangle starts from a large triangle enclosing every point.
	// Every insertion is then a point location walk. Triangles touching the
	// ghost vertices are never emitted.
	SeedGhostTriangle
)

func (m SeedMode) String() string {
	switch m {
	case SeedMinCircumcircle:
		return "circumcircle"
	case SeedGhostTriangle:
		return "ghost"
	}
	return "unknown"
}

// Options configure a Triangulation. The zero value is the default.
type Options struct {
	Seed SeedMode
}

// Triangle is three point indices in counter-clockwise order.
type Triangle [3]int

// Edge is a pair of point indices.
type Edge [2]int

// key normalizes an edge so that the lower index comes first.
func (e Edge) key() Edge {
	if e[0] > e[1] {
		return Edge{e[1], e[0]}
	}
	return e
}

// tri is a live triangle. Edge i runs from v[i] to v[(i+1)%3], and n[i] is
// the triangle across it, or -1.
type tri struct {
	v [3]int
	n [3]int
}

// Triangulation is a reusable constrained Delaunay triangulator. It is not
// safe for concurrent use; reuse an instance sequentially by calling Run,
// which resets it.
type Triangulation struct {
	Options

	points []r2.Point
	// real is the number of caller points; ghost vertices follow them.
	real        int
	tris        []tri
	incident    []int
	constraints map[Edge]struct{}
	inDomain    []bool

	hull     *ordset.Set[*hullContext]
	order    []int
	stack    []int
	edgeWork []Edge
}

// New creates an empty triangulation.
func New(opts Options) *Triangulation {
	return &Triangulation{
		Options:     opts,
		constraints: map[Edge]struct{}{},
		hull:        ordset.New(&hullContext{}, compareAngle),
	}
}

// Reset drops all state from the previous run, keeping allocations.
func (t *Triangulation) Reset() {
	t.points = t.points[:0]
	t.real = 0
	t.tris = t.tris[:0]
	t.incident = t.incident[:0]
	for k := range t.constraints {
		delete(t.constraints, k)
	}
	t.inDomain = t.inDomain[:0]
	t.hull.Reset()
	t.order = t.order[:0]
	t.stack = t.stack[:0]
	t.edgeWork = t.edgeWork[:0]
}

// Triangulate is a convenience wrapper that runs a fresh Triangulation with
// default options.
func Triangulate(points []r2.Point, edges []Edge) ([]Triangle, error) {
	return New(Options{}).Run(points, edges)
}

// Run triangulates points, forcing every constraint edge into the result.
// With no constraints the whole convex hull is returned. Otherwise only the
// triangles inside the region bounded by the constraints are returned, where
// crossing a constraint toggles between inside and outside.
//
// Errors wrap throw.ErrInvalidInput, throw.ErrDegenerateGeometry or
// throw.ErrInternalInvariant.
func (t *Triangulation) Run(points []r2.Point, edges []Edge) (result []Triangle, err error) {
	defer func() { err = throw.Recover(recover(), err) }()

	t.Reset()
	if err := validate(points, edges); err != nil {
		return nil, err
	}
	t.points = append(t.points, points...)
	t.real = len(points)
	for _, e := range edges {
		t.constraints[e.key()] = struct{}{}
	}

	if t.Seed == SeedGhostTriangle {
		t.buildGhost()
	} else {
		t.buildSweep()
	}
	for _, e := range edges {
		t.recoverEdge(e[0], e[1])
	}
	if len(edges) > 0 {
		t.legalizeAll()
	}
	t.classify(len(edges) > 0)

	for i, tr := range t.tris {
		if t.inDomain[i] && !t.touchesGhost(i) {
			result = append(result, Triangle(tr.v))
		}
	}
	return result, nil
}

func validate(points []r2.Point, edges []Edge) error {
	if len(points) < 3 {
		return errors.Wrapf(throw.ErrInvalidInput, "need at least 3 points, got %d", len(points))
	}
	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return errors.Wrapf(throw.ErrInvalidInput, "point %d is not finite: %v", i, p)
		}
	}
	sorted := make([]int, len(points))
	for i := range sorted {
		sorted[i] = i
	}
	slices.SortFunc(sorted, func(a, b int) bool {
		pa, pb := points[a], points[b]
		if pa.X != pb.X {
			return pa.X < pb.X
		}
		return pa.Y < pb.Y
	})
	for i := 1; i < len(sorted); i++ {
		if points[sorted[i]] == points[sorted[i-1]] {
			return errors.Wrapf(throw.ErrInvalidInput, "points %d and %d coincide at %v", sorted[i-1], sorted[i], points[sorted[i]])
		}
	}
	collinear := true
	for i := 2; i < len(points) && collinear; i++ {
		collinear = predicates.Orient2D(points[0], points[1], points[i]) == 0
	}
	if collinear {
		return errors.Wrapf(throw.ErrDegenerateGeometry, "all %d points are collinear", len(points))
	}
	for i, e := range edges {
		if e[0] < 0 || e[0] >= len(points) || e[1] < 0 || e[1] >= len(points) {
			return errors.Wrapf(throw.ErrInvalidInput, "constraint %d references a point out of range: %v", i, e)
		}
		if e[0] == e[1] {
			return errors.Wrapf(throw.ErrInvalidInput, "constraint %d is a loop on point %d", i, e[0])
		}
	}
	return nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

func (t *Triangulation) touchesGhost(i int) bool {
	for _, v := range t.tris[i].v {
		if v >= t.real {
			return true
		}
	}
	return false
}

func (t *Triangulation) isConstraint(a, b int) bool {
	_, ok := t.constraints[Edge{a, b}.key()]
	return ok
}

func next(i int) int { return (i + 1) % 3 }
func prev(i int) int { return (i + 2) % 3 }
