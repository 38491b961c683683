// Package predicates implements exact-sign orientation and in-circle tests.
//
// Every test first evaluates its determinant in floating point together with
// a conservative bound on the rounding error. Only when the result is within
// that bound of zero is the determinant recomputed in exact arithmetic, so
// the returned sign is always the sign of the true determinant of the given
// double-precision inputs.
package predicates

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

const (
	// epsilon is half an ulp of 1, i.e. 2^-53.
	epsilon = 1.1102230246251565e-16

	ccwErrBoundA = (3 + 16*epsilon) * epsilon
	o3dErrBoundA = (7 + 56*epsilon) * epsilon
	iccErrBoundA = (10 + 96*epsilon) * epsilon
)

// Orient2D returns +1 if a, b, c are in counter-clockwise order, -1 if they
// are clockwise and 0 if they are collinear.
func Orient2D(a, b, c r2.Point) int {
	left := (a.X - c.X) * (b.Y - c.Y)
	right := (a.Y - c.Y) * (b.X - c.X)
	det := left - right
	errBound := ccwErrBoundA * (math.Abs(left) + math.Abs(right))
	if det > errBound {
		return 1
	}
	if -det > errBound {
		return -1
	}
	return exactOrient2D(a, b, c)
}

func exactOrient2D(a, b, c r2.Point) int {
	pa := precise2(a)
	ab := precise2(b).Sub(pa)
	ac := precise2(c).Sub(pa)
	return ab.Cross(ac).Z.Sign()
}

// Orient3D returns +1 if d lies on the side of the plane through a, b, c that
// the normal (b-a)×(c-a) points to, -1 if it lies on the other side and 0 if
// the four points are coplanar.
func Orient3D(a, b, c, d r3.Vector) int {
	ad := a.Sub(d)
	bd := b.Sub(d)
	cd := c.Sub(d)

	bdxcdy := bd.X * cd.Y
	cdxbdy := cd.X * bd.Y
	cdxady := cd.X * ad.Y
	adxcdy := ad.X * cd.Y
	adxbdy := ad.X * bd.Y
	bdxady := bd.X * ad.Y

	det := ad.Z*(bdxcdy-cdxbdy) + bd.Z*(cdxady-adxcdy) + cd.Z*(adxbdy-bdxady)
	permanent := math.Abs(ad.Z)*(math.Abs(bdxcdy)+math.Abs(cdxbdy)) +
		math.Abs(bd.Z)*(math.Abs(cdxady)+math.Abs(adxcdy)) +
		math.Abs(cd.Z)*(math.Abs(adxbdy)+math.Abs(bdxady))
	errBound := o3dErrBoundA * permanent

	// det is positive when d is below the plane, so the sign is flipped.
	if det > errBound {
		return -1
	}
	if -det > errBound {
		return 1
	}
	return exactOrient3D(a, b, c, d)
}

func exactOrient3D(a, b, c, d r3.Vector) int {
	pd := r3.PreciseVectorFromVector(d)
	ad := r3.PreciseVectorFromVector(a).Sub(pd)
	bd := r3.PreciseVectorFromVector(b).Sub(pd)
	cd := r3.PreciseVectorFromVector(c).Sub(pd)
	return -ad.Dot(bd.Cross(cd)).Sign()
}

// InCircle returns +1 if d lies strictly inside the circumcircle of a, b, c,
// -1 if it lies strictly outside and 0 if it lies on it. a, b, c must be in
// counter-clockwise order; for clockwise input the sign is reversed.
func InCircle(a, b, c, d r2.Point) int {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	bdxcdy := bdx * cdy
	cdxbdy := cdx * bdy
	alift := adx*adx + ady*ady

	cdxady := cdx * ady
	adxcdy := adx * cdy
	blift := bdx*bdx + bdy*bdy

	adxbdy := adx * bdy
	bdxady := bdx * ady
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)
	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift
	errBound := iccErrBoundA * permanent
	if det > errBound {
		return 1
	}
	if -det > errBound {
		return -1
	}
	return exactInCircle(a, b, c, d)
}

func exactInCircle(a, b, c, d r2.Point) int {
	pd := precise2(d)
	lifted := func(p r2.Point) r3.PreciseVector {
		v := precise2(p).Sub(pd)
		return r3.PreciseVector{X: v.X, Y: v.Y, Z: v.Norm2()}
	}
	return lifted(a).Dot(lifted(b).Cross(lifted(c))).Sign()
}

func precise2(p r2.Point) r3.PreciseVector {
	return r3.PreciseVectorFromVector(r3.Vector{X: p.X, Y: p.Y})
}
