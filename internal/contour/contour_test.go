package contour

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(cx, cy, half float64, ccw bool) Contour {
	pts := []r2.Point{
		{X: cx - half, Y: cy - half},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
	}
	c := Contour{Points: pts, IDs: []int{0, 1, 2, 3}}
	if !ccw {
		c.Reverse()
	}
	return c
}

func TestLoops(t *testing.T) {
	t.Run("two loops out of order", func(t *testing.T) {
		edges := [][2]string{
			{"a", "b"}, {"x", "y"}, {"c", "a"}, {"y", "z"}, {"b", "c"}, {"z", "x"},
		}
		closed, open := Loops(edges)
		assert.Empty(t, open)
		assert.Equal(t, [][]string{{"a", "b", "c"}, {"x", "y", "z"}}, closed)
	})

	t.Run("open chain", func(t *testing.T) {
		closed, open := Loops([][2]int{{1, 2}, {2, 3}})
		assert.Empty(t, closed)
		assert.Equal(t, [][]int{{1, 2, 3}}, open)
	})

	t.Run("loops touching at a vertex", func(t *testing.T) {
		edges := [][2]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {3, 4}, {4, 0}}
		closed, open := Loops(edges)
		assert.Empty(t, open)
		require.Len(t, closed, 2)
		total := 0
		for _, loop := range closed {
			total += len(loop)
		}
		assert.Equal(t, 6, total)
	})
}

func TestContains(t *testing.T) {
	sq := square(0, 0, 1, true).Points
	assert.True(t, Contains(sq, r2.Point{X: 0, Y: 0}))
	assert.True(t, Contains(sq, r2.Point{X: 0.99, Y: -0.99}))
	assert.False(t, Contains(sq, r2.Point{X: 2, Y: 0}))
	assert.False(t, Contains(sq, r2.Point{X: -2, Y: 0}))
	assert.False(t, Contains(sq, r2.Point{X: 0, Y: 5}))

	// Winding does not matter.
	cw := square(0, 0, 1, false).Points
	assert.True(t, Contains(cw, r2.Point{X: 0.5, Y: 0.5}))

	// A ray through a vertex of a concave loop.
	arrow := []r2.Point{{X: 0, Y: 0}, {X: 4, Y: 2}, {X: 0, Y: 4}, {X: 2, Y: 2}}
	assert.False(t, Contains(arrow, r2.Point{X: 1, Y: 2}))
	assert.True(t, Contains(arrow, r2.Point{X: 3, Y: 2}))
}

func TestSignedArea(t *testing.T) {
	assert.InDelta(t, 4.0, SignedArea(square(0, 0, 1, true).Points), 1e-12)
	assert.InDelta(t, -4.0, SignedArea(square(0, 0, 1, false).Points), 1e-12)
}

func TestTreeNesting(t *testing.T) {
	outer := square(0, 0, 10, false)
	hole := square(0, 0, 5, true)
	island := square(0, 0, 2, false)
	separate := square(30, 0, 3, true)

	// Insert inner contours first to exercise re-parenting.
	tree := NewTree()
	tree.AddContour(island)
	tree.AddContour(separate)
	tree.AddContour(hole)
	tree.AddContour(outer)

	require.Len(t, tree.Children, 2)
	assert.Equal(t, 3, tree.Depth())

	groups := tree.Groups()
	require.Len(t, groups, 3)
	var areas []float64
	holeCount := 0
	for _, g := range groups {
		area := SignedArea(g.Outer.Points)
		assert.Greater(t, area, 0.0)
		areas = append(areas, area)
		for _, h := range g.Holes {
			assert.Less(t, SignedArea(h.Points), 0.0)
			holeCount++
		}
	}
	assert.ElementsMatch(t, []float64{400, 16, 36}, areas)
	assert.Equal(t, 1, holeCount)

	// Normalization must not touch the inserted contours.
	assert.Less(t, SignedArea(outer.Points), 0.0)
}

func TestReverseKeepsIDsAligned(t *testing.T) {
	c := square(0, 0, 1, true)
	first := c.Points[1]
	c.Reverse()
	assert.Equal(t, first, c.Points[2])
	assert.Equal(t, 1, c.IDs[2])
}
