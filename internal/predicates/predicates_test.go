package predicates

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func TestOrient2D(t *testing.T) {
	a, b, c := r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 1}
	assert.Equal(t, 1, Orient2D(a, b, c))
	assert.Equal(t, -1, Orient2D(a, c, b))
	assert.Equal(t, 0, Orient2D(a, b, r2.Point{X: 2, Y: 0}))

	t.Run("near-collinear points", func(t *testing.T) {
		// The naive determinant of these rounds to zero or the wrong sign for
		// many of the perturbations.
		p := r2.Point{X: 0.5, Y: 0.5}
		q := r2.Point{X: 12, Y: 12}
		r := r2.Point{X: 24, Y: 24}
		for i := 0; i < 64; i++ {
			x := math.Nextafter(p.X, math.Inf(1))
			moved := r2.Point{X: x, Y: p.Y}
			p = moved
			assert.Equal(t, -Orient2D(moved, r, q), Orient2D(moved, q, r))
			// (x, 0.5) with x > 0.5 is below the diagonal, so q, r, moved turn
			// clockwise.
			assert.Equal(t, -1, Orient2D(q, r, moved))
		}
	})

	t.Run("rotation invariant", func(t *testing.T) {
		p := r2.Point{X: 0.1, Y: 0.1}
		q := r2.Point{X: 0.3, Y: 0.3}
		r := r2.Point{X: 0.7, Y: 0.7}
		s := Orient2D(p, q, r)
		assert.Equal(t, s, Orient2D(q, r, p))
		assert.Equal(t, s, Orient2D(r, p, q))
		assert.Equal(t, -s, Orient2D(q, p, r))
	})
}

func TestOrient3D(t *testing.T) {
	a := r3.Vector{X: 0, Y: 0, Z: 0}
	b := r3.Vector{X: 1, Y: 0, Z: 0}
	c := r3.Vector{X: 0, Y: 1, Z: 0}
	assert.Equal(t, 1, Orient3D(a, b, c, r3.Vector{X: 0.2, Y: 0.2, Z: 1}))
	assert.Equal(t, -1, Orient3D(a, b, c, r3.Vector{X: 0.2, Y: 0.2, Z: -1}))
	assert.Equal(t, 0, Orient3D(a, b, c, r3.Vector{X: 5, Y: -3, Z: 0}))
	assert.Equal(t, -1, Orient3D(a, c, b, r3.Vector{X: 0.2, Y: 0.2, Z: 1}))

	t.Run("tiny offsets are still resolved", func(t *testing.T) {
		d := r3.Vector{X: 0.3, Y: 0.7, Z: 1e-300}
		assert.Equal(t, 1, Orient3D(a, b, c, d))
		d.Z = -1e-300
		assert.Equal(t, -1, Orient3D(a, b, c, d))
	})

	t.Run("tilted plane through exact points", func(t *testing.T) {
		p := r3.Vector{X: 0.25, Y: 0.5, Z: 0.75}
		q := r3.Vector{X: 1.25, Y: 0.5, Z: 1.75}
		r := r3.Vector{X: 0.25, Y: 1.5, Z: 0.75}
		mid := r3.Vector{X: 0.75, Y: 1, Z: 1.25}
		assert.Equal(t, 0, Orient3D(p, q, r, mid))
	})
}

func TestInCircle(t *testing.T) {
	a, b, c := r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 0}, r2.Point{X: 0, Y: 1}
	assert.Equal(t, 1, InCircle(a, b, c, r2.Point{X: 0.5, Y: 0.5}))
	assert.Equal(t, -1, InCircle(a, b, c, r2.Point{X: 2, Y: 2}))
	assert.Equal(t, 0, InCircle(a, b, c, r2.Point{X: 1, Y: 1}))
	// Clockwise input reverses the sign.
	assert.Equal(t, -1, InCircle(a, c, b, r2.Point{X: 0.5, Y: 0.5}))

	t.Run("cocircular octagon", func(t *testing.T) {
		// The axis-aligned points of a circle of radius 2 are exactly
		// representable, so the fourth one is exactly on the circle.
		p := r2.Point{X: 2, Y: 0}
		q := r2.Point{X: 0, Y: 2}
		r := r2.Point{X: -2, Y: 0}
		assert.Equal(t, 0, InCircle(p, q, r, r2.Point{X: 0, Y: -2}))
		assert.Equal(t, 1, InCircle(p, q, r, r2.Point{X: 0, Y: math.Nextafter(-2, 0)}))
		assert.Equal(t, -1, InCircle(p, q, r, r2.Point{X: 0, Y: math.Nextafter(-2, -3)}))
	})
}
