package seidel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/osuushi/meshslice/internal/throw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangulate_Fixtures(t *testing.T) {
	cases := []struct {
		name  string
		shape func(t *testing.T) PolygonList
		seeds int64
		// Nested stripes are too thin for the exact area sum at Epsilon.
		sampleOnly bool
	}{
		{name: "spiral", shape: func(t *testing.T) PolygonList { return PolygonList{*LoadFixture(t, "spiral")} }},
		// Many horizontal edges share y values.
		{name: "comb", shape: func(t *testing.T) PolygonList { return PolygonList{*LoadFixture(t, "comb")} }, seeds: 4},
		{name: "star", shape: func(*testing.T) PolygonList { return SimpleStar() }},
		{name: "square with hole", shape: func(*testing.T) PolygonList { return SquareWithHole() }},
		{name: "star outline", shape: func(*testing.T) PolygonList { return StarOutline() }},
		{name: "star stripes", shape: func(*testing.T) PolygonList { return StarStripes() }, sampleOnly: true},
		{name: "multi layered holes", shape: func(*testing.T) PolygonList { return MultiLayeredHoles() }},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			list := c.shape(t)
			for seed := int64(0); seed <= c.seeds; seed++ {
				result := list.TriangulateWith(Options{Seed: seed})
				if !c.sampleOnly {
					AssertValidListTriangulation(t, list, result)
				}
				validatePolygonsBySampling(t, result.ToPolygonList(), list)
			}
		})
	}
}

func TestTriangulate_Rings(t *testing.T) {
	outer := []r2.Point{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}}
	hole := []r2.Point{{X: 1, Y: 1}, {X: 1, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 1}}

	assertSquareWithHole := func(t *testing.T, rings [][]r2.Point) {
		triangles, err := Triangulate(rings, Options{Seed: 42})
		require.NoError(t, err)
		// A square annulus needs exactly 8 triangles
		require.Len(t, triangles, 8)

		var all []r2.Point
		for _, ring := range rings {
			all = append(all, ring...)
		}
		var area float64
		for _, tri := range triangles {
			a, b, c := all[tri[0]], all[tri[1]], all[tri[2]]
			signed := b.Sub(a).Cross(c.Sub(a)) / 2
			assert.Greater(t, signed, 0.0, "triangle %v is not counterclockwise", tri)
			area += signed

			// No triangle may sit in the hole
			centroid := a.Add(b).Add(c).Mul(1.0 / 3)
			inHole := centroid.X > 1 && centroid.X < 3 && centroid.Y > 1 && centroid.Y < 3
			assert.False(t, inHole, "triangle %v covers the hole", tri)
		}
		assert.InDelta(t, 12, area, 1e-9)
	}

	t.Run("counterclockwise outer", func(t *testing.T) {
		assertSquareWithHole(t, [][]r2.Point{outer, hole})
	})

	t.Run("clockwise outer", func(t *testing.T) {
		reversed := func(ring []r2.Point) []r2.Point {
			result := make([]r2.Point, len(ring))
			for i, p := range ring {
				result[len(ring)-1-i] = p
			}
			return result
		}
		assertSquareWithHole(t, [][]r2.Point{reversed(outer), reversed(hole)})
	})
}

func TestTriangulate_Errors(t *testing.T) {
	cases := []struct {
		name  string
		rings [][]r2.Point
		kind  error
	}{
		{"no rings", nil, throw.ErrInvalidInput},
		{"short ring", [][]r2.Point{{{X: 0, Y: 0}, {X: 1, Y: 0}}}, throw.ErrInvalidInput},
		{"coincident points", [][]r2.Point{{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 1e-9}}}, throw.ErrInvalidInput},
		{"zero area", [][]r2.Point{{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}}, throw.ErrDegenerateGeometry},
		{"vertex on edge", [][]r2.Point{
			{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4}},
			{{X: 0, Y: 2}, {X: 2, Y: 3}, {X: 2, Y: 1}},
		}, throw.ErrInvalidInput},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			triangles, err := Triangulate(c.rings, Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, c.kind)
			assert.Nil(t, triangles)
		})
	}
}

func TestTriangulate_DebugImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trapezoids.png")
	rings := [][]r2.Point{{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}}}
	triangles, err := Triangulate(rings, Options{DebugImagePath: path})
	require.NoError(t, err)
	require.Len(t, triangles, 1)
	assert.ElementsMatch(t, []int{0, 1, 2}, triangles[0][:])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
