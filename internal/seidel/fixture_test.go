package seidel

import (
	"embed"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/stretchr/testify/require"
)

// SVG fixtures, each holding a single <polygon>. Only the points attribute is
// read.
//
//go:embed fixtures
var fixtures embed.FS

// LoadFixture reads fixtures/<name>.svg as a counterclockwise polygon.
func LoadFixture(t testing.TB, name string) *Polygon {
	t.Helper()
	file, err := fixtures.Open("fixtures/" + name + ".svg")
	require.NoError(t, err)
	defer file.Close()

	root, err := svgparser.Parse(file, true)
	require.NoError(t, err, "fixture %s", name)
	elements := root.FindAll("polygon")
	require.Len(t, elements, 1, "fixture %s", name)

	var points []*Point
	for _, field := range strings.Fields(elements[0].Attributes["points"]) {
		coords := strings.Split(field, ",")
		require.Len(t, coords, 2, "point %q", field)
		x, err := strconv.ParseFloat(coords[0], 64)
		require.NoError(t, err)
		y, err := strconv.ParseFloat(coords[1], 64)
		require.NoError(t, err)
		// Flip from SVG's y-down.
		points = append(points, &Point{X: x, Y: -y})
	}
	polygon := Polygon{Points: points}
	if IsCW(&polygon) {
		polygon = polygon.Reverse()
	}
	return &polygon
}

// A counterclockwise star with the given number of tips, alternating between
// the outer and inner radius. The first tip points along +x.
func star(cx, cy, outer, inner float64, tips int) Polygon {
	points := make([]*Point, 2*tips)
	for i := range points {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := math.Pi * float64(i) / float64(tips)
		points[i] = &Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
	}
	return Polygon{points}
}

func SimpleStar() PolygonList {
	return PolygonList{star(0, 0, 5, 2, 5)}
}

func SquareWithHole() PolygonList {
	return PolygonList{
		{[]*Point{{X: -5, Y: -5}, {X: 5, Y: -5}, {X: 5, Y: 5}, {X: -5, Y: 5}}},
		{[]*Point{{X: -2, Y: -2}, {X: -2, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: -2}}},
	}
}

// A star shaped band two units thick.
func StarOutline() PolygonList {
	return PolygonList{
		star(0, 0, 10, 5, 5),
		star(0, 0, 8, 3, 5).Reverse(),
	}
}

// Twenty nested stars of alternating winding, each 0.9 the size of the last.
func StarStripes() PolygonList {
	var list PolygonList
	scale := 1.0
	for i := 0; i < 20; i++ {
		ring := star(0, 0, 10*scale, 7*scale, 5)
		if i%2 == 1 {
			ring = ring.Reverse()
		}
		list = append(list, ring)
		scale *= 0.9
	}
	return list
}

// Three star holes in a star, each with a solid star inside it.
func MultiLayeredHoles() PolygonList {
	return PolygonList{
		star(0, 0, 10, 7, 5),
		star(1.5, 5, 3, 2, 5).Reverse(),
		star(1.5, 5, 2, 1, 5),
		star(1.8, -5, 3, 2, 5).Reverse(),
		star(1.8, -5, 2, 1, 5),
		star(-3, 0, 4, 2, 5).Reverse(),
		star(-3, 0, 3, 1, 5),
	}
}
