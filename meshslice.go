// Cut triangle meshes with a plane, and cap the cut.
//
// Slice classifies every triangle of a mesh against a plane and splits the
// ones that cross it, producing two triangle lists and the cut edges.
// TriangulatePolygon (constrained Delaunay) and TriangulateRings (Seidel
// trapezoidation) fill cross sections. Cut runs the whole pipeline and
// returns two closed fragments.
//
// Errors wrap one of ErrInvalidInput, ErrInternalInvariantViolation or
// ErrDegenerateGeometry, so callers can tell them apart with errors.Is.
package meshslice

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/osuushi/meshslice/internal/cdt"
	"github.com/osuushi/meshslice/internal/seidel"
	"github.com/osuushi/meshslice/internal/slicer"
	"github.com/osuushi/meshslice/internal/throw"
)

var (
	// ErrInvalidInput is malformed input, which the caller can fix.
	ErrInvalidInput = throw.ErrInvalidInput
	// ErrInternalInvariantViolation is a bug in the geometry engine. Retrying
	// the same input will fail the same way.
	ErrInternalInvariantViolation = throw.ErrInternalInvariant
	// ErrDegenerateGeometry is input that is well formed but has nothing to
	// work with, such as collinear points. Callers can usually skip it.
	ErrDegenerateGeometry = throw.ErrDegenerateGeometry
)

type (
	Plane              = slicer.Plane
	Ref                = slicer.Ref
	RefKind            = slicer.RefKind
	IntersectionVertex = slicer.IntersectionVertex
	SliceResult        = slicer.SliceResult
)

const (
	Original    = slicer.Original
	Synthesized = slicer.Synthesized
)

// PlaneFromPoints builds the plane through three points. The normal is
// (b-a)×(c-a), and points on its side end up in SliceResult.Top.
func PlaneFromPoints(a, b, c r3.Vector) (Plane, error) {
	return slicer.PlaneFromPoints(a, b, c)
}

// PlaneFromNormal builds the plane through point with the given normal.
func PlaneFromNormal(point, normal r3.Vector) (Plane, error) {
	return slicer.PlaneFromNormal(point, normal)
}

// Slice splits the mesh given by vertices and a flat index buffer with the
// plane. Triangles in the result use tagged references, either an input vertex
// or an entry of SliceResult.Intersections.
func Slice(vertices []r3.Vector, triangles []uint32, plane Plane) (*SliceResult, error) {
	return slicer.Slice(vertices, triangles, plane)
}

// TriangulatePolygon computes the constrained Delaunay triangulation of
// points. Every constraint edge appears in the output. With constraints, only
// the region they enclose is returned, and nested loops alternate between
// solid and hole. Triangles are counterclockwise and index points directly.
func TriangulatePolygon(points []r2.Point, constraintEdges [][2]uint32) ([][3]uint32, error) {
	edges := make([]cdt.Edge, len(constraintEdges))
	for i, e := range constraintEdges {
		edges[i] = cdt.Edge{int(e[0]), int(e[1])}
	}
	triangles, err := cdt.Triangulate(points, edges)
	if err != nil {
		return nil, err
	}
	result := make([][3]uint32, len(triangles))
	for i, tri := range triangles {
		result[i] = [3]uint32{uint32(tri[0]), uint32(tri[1]), uint32(tri[2])}
	}
	return result, nil
}

// TriangulateRings triangulates simple polygon rings with Seidel's algorithm.
// Solid rings and holes must wind in opposite directions, and rings must not
// touch or cross. The output triangles are counterclockwise and index the
// concatenation of the rings, in ring order.
//
// Point ordering in this path is tolerance based, so the rings should come
// from resolved contours rather than raw, noisy geometry.
func TriangulateRings(rings [][]r2.Point) ([][3]uint32, error) {
	return triangulateRings(rings, seidel.Options{})
}

func triangulateRings(rings [][]r2.Point, opts seidel.Options) ([][3]uint32, error) {
	triangles, err := seidel.Triangulate(rings, opts)
	if err != nil {
		return nil, errors.WithMessage(err, "triangulating rings")
	}
	result := make([][3]uint32, len(triangles))
	for i, tri := range triangles {
		result[i] = [3]uint32{uint32(tri[0]), uint32(tri[1]), uint32(tri[2])}
	}
	return result, nil
}
