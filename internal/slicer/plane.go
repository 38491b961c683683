package slicer

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/osuushi/meshslice/internal/throw"
)

// Plane is a cutting plane. The side its normal points to is "top".
//
// Classification uses the three defining points with an exact orientation
// test. Projection to 2D uses an orthonormal basis (U, V) of the plane with
// U×V equal to the unit normal, so a loop that is counter-clockwise in the
// projection winds counter-clockwise around the normal.
type Plane struct {
	A, B, C r3.Vector
	Normal  r3.Vector
	U, V    r3.Vector
}

// PlaneFromPoints builds the plane through a, b and c, with normal
// (b-a)×(c-a).
func PlaneFromPoints(a, b, c r3.Vector) (Plane, error) {
	for _, v := range []r3.Vector{a, b, c} {
		if !finite3(v) {
			return Plane{}, errors.Wrapf(throw.ErrInvalidInput, "plane point %v is not finite", v)
		}
	}
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Norm2() == 0 {
		return Plane{}, errors.Wrapf(throw.ErrDegenerateGeometry, "plane points %v, %v, %v are collinear", a, b, c)
	}
	n = n.Normalize()
	u := n.Ortho()
	return Plane{A: a, B: b, C: c, Normal: n, U: u, V: n.Cross(u)}, nil
}

// PlaneFromNormal builds the plane through point with the given normal.
func PlaneFromNormal(point, normal r3.Vector) (Plane, error) {
	if !finite3(point) || !finite3(normal) {
		return Plane{}, errors.Wrapf(throw.ErrInvalidInput, "plane %v, %v is not finite", point, normal)
	}
	if normal.Norm2() == 0 {
		return Plane{}, errors.Wrap(throw.ErrDegenerateGeometry, "plane normal is zero")
	}
	n := normal.Normalize()
	u := n.Ortho()
	v := n.Cross(u)
	return Plane{A: point, B: point.Add(u), C: point.Add(v), Normal: n, U: u, V: v}, nil
}

// Project maps p to plane coordinates.
func (p Plane) Project(x r3.Vector) r2.Point {
	d := x.Sub(p.A)
	return r2.Point{X: d.Dot(p.U), Y: d.Dot(p.V)}
}

// Unproject maps plane coordinates back to space.
func (p Plane) Unproject(q r2.Point) r3.Vector {
	return p.A.Add(p.U.Mul(q.X)).Add(p.V.Mul(q.Y))
}

// Distance is the signed distance of x from the plane, positive on top. It
// is used for interpolation only, never for classification.
func (p Plane) Distance(x r3.Vector) float64 {
	return x.Sub(p.A).Dot(p.Normal)
}

func finite3(v r3.Vector) bool {
	return !math.IsNaN(v.X+v.Y+v.Z) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0) && !math.IsInf(v.Z, 0)
}
