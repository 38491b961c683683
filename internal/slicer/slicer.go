// Package slicer splits a triangle mesh by a plane.
//
// Every triangle is classified against the plane with an exact orientation
// test and either kept whole on one side, dropped (when it lies in the
// plane), or split into two or three triangles at newly synthesized
// intersection vertices. Intersection vertices are shared between all
// triangles that meet at the same point on the plane, so the cut edges chain
// into closed loops.
package slicer

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/osuushi/meshslice/internal/ordset"
	"github.com/osuushi/meshslice/internal/predicates"
	"github.com/osuushi/meshslice/internal/throw"
)

// DefaultMergeTolerance is the distance in plane coordinates below which two
// intersection vertices are considered the same point.
const DefaultMergeTolerance = 1e-9

// RefKind tells which table a Ref indexes.
type RefKind uint8

const (
	// Original refers to an input vertex.
	Original RefKind = iota
	// Synthesized refers to an entry of SliceResult.Intersections.
	Synthesized
)

// Ref is a vertex reference in a sliced triangle.
type Ref struct {
	Kind  RefKind
	Index uint32
}

// OriginalRef refers to input vertex i.
func OriginalRef(i uint32) Ref { return Ref{Kind: Original, Index: i} }

// SynthesizedRef refers to intersection vertex i.
func SynthesizedRef(i uint32) Ref { return Ref{Kind: Synthesized, Index: i} }

func (r Ref) String() string {
	if r.Kind == Synthesized {
		return fmt.Sprintf("s%d", r.Index)
	}
	return fmt.Sprintf("o%d", r.Index)
}

// IntersectionVertex is a vertex created where the mesh edge From-To crosses
// the plane, at From + T*(To-From). From is always the lower index.
type IntersectionVertex struct {
	From, To uint32
	T        float64
	Position r3.Vector
}

// Interpolate blends a per-vertex attribute the same way the position was
// blended.
func (iv IntersectionVertex) Interpolate(from, to float64) float64 {
	return from + iv.T*(to-from)
}

// SliceResult is the outcome of cutting one mesh.
type SliceResult struct {
	Top, Bottom   [][3]Ref
	Intersections []IntersectionVertex
	// Boundary holds the cut edges, directed as they appear in the top
	// triangles. Around the plane normal, outer loops run counter-clockwise
	// and holes clockwise.
	Boundary [][2]Ref
	// Cut reports whether the plane actually separated the mesh, i.e. both
	// sides received triangles.
	Cut bool
}

// Position resolves a reference against the input vertices.
func (r *SliceResult) Position(vertices []r3.Vector, ref Ref) r3.Vector {
	if ref.Kind == Synthesized {
		return r.Intersections[ref.Index].Position
	}
	return vertices[ref.Index]
}

// Options configure a Slicer.
type Options struct {
	// MergeTolerance defaults to DefaultMergeTolerance.
	MergeTolerance float64
}

type dedupContext struct {
	points    []r2.Point
	tolerance float64
}

// compareProjected orders projected points lexicographically, treating
// coordinates within the tolerance as equal.
func compareProjected(ctx *dedupContext, a, b int) int {
	pa, pb := ctx.points[a], ctx.points[b]
	switch {
	case pa.X < pb.X-ctx.tolerance:
		return -1
	case pa.X > pb.X+ctx.tolerance:
		return 1
	case pa.Y < pb.Y-ctx.tolerance:
		return -1
	case pa.Y > pb.Y+ctx.tolerance:
		return 1
	}
	return 0
}

// Slicer cuts meshes. It keeps scratch buffers between calls, so reuse one
// instance sequentially; it is not safe for concurrent use.
type Slicer struct {
	Options

	vertices  []r3.Vector
	plane     Plane
	sides     []int8
	edgeCache map[[2]uint32]uint32
	dedup     *ordset.Set[*dedupContext]
	result    *SliceResult
}

// New creates a Slicer.
func New(opts Options) *Slicer {
	if opts.MergeTolerance <= 0 {
		opts.MergeTolerance = DefaultMergeTolerance
	}
	return &Slicer{
		Options:   opts,
		edgeCache: map[[2]uint32]uint32{},
		dedup:     ordset.New(&dedupContext{tolerance: opts.MergeTolerance}, compareProjected),
	}
}

// Reset drops all state from the previous call.
func (s *Slicer) Reset() {
	s.vertices = nil
	s.sides = s.sides[:0]
	for k := range s.edgeCache {
		delete(s.edgeCache, k)
	}
	s.dedup.Reset()
	s.dedup.Context.points = s.dedup.Context.points[:0]
	s.result = nil
}

// Slice is a convenience wrapper running a fresh Slicer with default
// options.
func Slice(vertices []r3.Vector, triangles []uint32, plane Plane) (*SliceResult, error) {
	return New(Options{}).Slice(vertices, triangles, plane)
}

// Slice cuts the mesh given by vertices and a flat triangle index buffer.
func (s *Slicer) Slice(vertices []r3.Vector, triangles []uint32, plane Plane) (result *SliceResult, err error) {
	defer func() { err = throw.Recover(recover(), err) }()

	s.Reset()
	if len(triangles)%3 != 0 {
		return nil, errors.Wrapf(throw.ErrInvalidInput, "triangle buffer length %d is not a multiple of 3", len(triangles))
	}
	for i, idx := range triangles {
		if int(idx) >= len(vertices) {
			return nil, errors.Wrapf(throw.ErrInvalidInput, "triangle index %d at position %d is out of range for %d vertices", idx, i, len(vertices))
		}
	}
	for i, v := range vertices {
		if !finite3(v) {
			return nil, errors.Wrapf(throw.ErrInvalidInput, "vertex %d is not finite: %v", i, v)
		}
	}

	s.vertices = vertices
	s.plane = plane
	s.result = &SliceResult{}
	for _, v := range vertices {
		s.sides = append(s.sides, int8(predicates.Orient3D(plane.A, plane.B, plane.C, v)))
	}
	for i := 0; i < len(triangles); i += 3 {
		s.sliceTriangle(triangles[i], triangles[i+1], triangles[i+2])
	}
	s.collectBoundary()
	s.result.Cut = len(s.result.Top) > 0 && len(s.result.Bottom) > 0
	return s.result, nil
}

func (s *Slicer) emit(side int8, a, b, c Ref) {
	if side > 0 {
		s.result.Top = append(s.result.Top, [3]Ref{a, b, c})
	} else {
		s.result.Bottom = append(s.result.Bottom, [3]Ref{a, b, c})
	}
}

func (s *Slicer) sliceTriangle(i0, i1, i2 uint32) {
	idx := [3]uint32{i0, i1, i2}
	side := [3]int8{s.sides[i0], s.sides[i1], s.sides[i2]}
	var pos, neg, zero int
	for _, sd := range side {
		switch {
		case sd > 0:
			pos++
		case sd < 0:
			neg++
		default:
			zero++
		}
	}
	o := func(k int) Ref { return OriginalRef(idx[k%3]) }

	switch {
	case zero == 3:
		// Lies in the plane.
	case neg == 0:
		s.emit(1, o(0), o(1), o(2))
	case pos == 0:
		s.emit(-1, o(0), o(1), o(2))
	case zero == 1:
		// One vertex on the plane, the opposite edge crosses it.
		k := 0
		for side[k] != 0 {
			k++
		}
		z, a, b := o(k), o(k+1), o(k+2)
		m := s.intersect(idx[(k+1)%3], idx[(k+2)%3])
		s.emit(side[(k+1)%3], z, a, m)
		s.emit(side[(k+2)%3], z, m, b)
	default:
		// The pivot is the only vertex on its side.
		k := 0
		for side[k] == side[(k+1)%3] || side[k] == side[(k+2)%3] {
			k++
		}
		p, q, r := o(k), o(k+1), o(k+2)
		pq := s.intersect(idx[k], idx[(k+1)%3])
		pr := s.intersect(idx[k], idx[(k+2)%3])
		s.emit(side[k], p, pq, pr)
		other := -side[k]
		s.emit(other, pq, q, r)
		s.emit(other, pq, r, pr)
	}
}

// intersect returns the intersection vertex on mesh edge a-b, whose ends are
// strictly on opposite sides.
func (s *Slicer) intersect(a, b uint32) Ref {
	if a > b {
		a, b = b, a
	}
	key := [2]uint32{a, b}
	if i, ok := s.edgeCache[key]; ok {
		return SynthesizedRef(i)
	}

	va, vb := s.vertices[a], s.vertices[b]
	da, db := s.plane.Distance(va), s.plane.Distance(vb)
	t := 0.5
	if denom := da - db; denom != 0 {
		t = math.Max(0, math.Min(1, da/denom))
	}
	position := va.Add(vb.Sub(va).Mul(t))

	ctx := s.dedup.Context
	ctx.points = append(ctx.points, s.plane.Project(position))
	candidate := len(ctx.points) - 1
	if h := s.dedup.Find(candidate); h != ordset.None {
		ctx.points = ctx.points[:candidate]
		i := uint32(s.dedup.Value(h))
		s.edgeCache[key] = i
		return SynthesizedRef(i)
	}
	s.dedup.Insert(candidate)
	i := uint32(len(s.result.Intersections))
	if int(i) != candidate {
		throw.Fatalf("intersection table out of step with dedup table: %d != %d", i, candidate)
	}
	s.result.Intersections = append(s.result.Intersections, IntersectionVertex{
		From: a, To: b, T: t, Position: position,
	})
	s.edgeCache[key] = i
	return SynthesizedRef(i)
}

func (s *Slicer) onPlane(r Ref) bool {
	return r.Kind == Synthesized || s.sides[r.Index] == 0
}

// planeEdges returns the directed edges of tris that lie in the plane and are
// not shared with another triangle of the same side, in order of first
// appearance.
func (s *Slicer) planeEdges(tris [][3]Ref) [][2]Ref {
	present := map[[2]Ref]bool{}
	var candidates [][2]Ref
	for _, tr := range tris {
		for i := 0; i < 3; i++ {
			e := [2]Ref{tr[i], tr[(i+1)%3]}
			if s.onPlane(e[0]) && s.onPlane(e[1]) {
				present[e] = true
				candidates = append(candidates, e)
			}
		}
	}
	var out [][2]Ref
	for _, e := range candidates {
		if !present[[2]Ref{e[1], e[0]}] {
			out = append(out, e)
		}
	}
	return out
}

// collectBoundary merges the open plane edges of both sides. A bottom edge
// runs opposite to the top edge it matches, so it is reversed first.
func (s *Slicer) collectBoundary() {
	seen := map[[2]Ref]bool{}
	add := func(e [2]Ref) {
		if !seen[e] {
			seen[e] = true
			s.result.Boundary = append(s.result.Boundary, e)
		}
	}
	for _, e := range s.planeEdges(s.result.Top) {
		add(e)
	}
	for _, e := range s.planeEdges(s.result.Bottom) {
		add([2]Ref{e[1], e[0]})
	}
}
