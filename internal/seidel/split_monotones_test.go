package seidel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToMonotones(t *testing.T) {
	// Shear the square so no two vertices share a y value.
	skewed := SquareWithHole()
	for _, poly := range skewed {
		for _, p := range poly.Points {
			p.Y += 0.1 * p.X
		}
	}
	cases := []struct {
		name  string
		shape PolygonList
		seeds int64
	}{
		{"spiral", PolygonList{*LoadFixture(t, "spiral")}, 1},
		{"star", SimpleStar(), 1},
		{"skewed square with hole", skewed, 8},
		{"comb", PolygonList{*LoadFixture(t, "comb")}, 3},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			vertices := 0
			for _, poly := range c.shape {
				vertices += len(poly.Points)
			}
			for seed := int64(0); seed < c.seeds; seed++ {
				list := ConvertToMonotones(c.shape, Options{Seed: seed})
				require.NotEmpty(t, list)
				used := make(PointSet)
				for _, poly := range list {
					for _, p := range poly.Points {
						used.Add(p)
					}
				}
				assert.Equal(t, vertices, len(used), "seed %d", seed)
				assertMonotones(t, list)
				validatePolygonsBySampling(t, list, c.shape)
			}
		})
	}
}

// Each piece must be counterclockwise and monotone under Below, meaning a
// walk from its top vertex changes direction exactly once.
func assertMonotones(t *testing.T, list PolygonList) {
	for _, poly := range list {
		require.GreaterOrEqual(t, len(poly.Points), 3)
		assert.True(t, IsCCW(poly), "monotone %v is not counterclockwise", poly.Points)

		n := len(poly.Points)
		top := 0
		for i, p := range poly.Points {
			if p.Above(poly.Points[top]) {
				top = i
			}
		}
		turns := 0
		descending := true
		for i := 0; i < n; i++ {
			a := poly.Points[CircularIndex(top+i, n)]
			b := poly.Points[CircularIndex(top+i+1, n)]
			if descending != b.Below(a) {
				descending = !descending
				turns++
			}
		}
		assert.Equal(t, 1, turns, "polygon is not monotone: %v", poly.Points)
	}
}
