package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"github.com/unixpickle/essentials"

	"github.com/osuushi/meshslice"
	"github.com/osuushi/meshslice/internal/preview"
)

// Read rings from stdin, one "x y" point per line, with rings separated by a
// blank line. Solid rings wind counterclockwise and holes clockwise. Prints
// one triangle per line as indices into the concatenated rings.
func runTriangulate() {
	rings, err := readRings(os.Stdin)
	essentials.Must(err)

	var triangles [][3]uint32
	if *triCap == "seidel" {
		triangles, err = meshslice.TriangulateRings(rings)
	} else {
		points, edges := ringConstraints(rings)
		triangles, err = meshslice.TriangulatePolygon(points, edges)
	}
	essentials.Must(err)

	w := bufio.NewWriter(os.Stdout)
	for _, tri := range triangles {
		fmt.Fprintln(w, tri[0], tri[1], tri[2])
	}
	essentials.Must(w.Flush())

	if *triPreview != "" {
		section := ringPreview(rings, triangles)
		essentials.Must(section.SavePNG(*triPreview, previewSize))
		if *triCat {
			essentials.Must(preview.Cat(*triPreview, os.Stdout))
		}
	}
}

func readRings(in io.Reader) ([][]r2.Point, error) {
	var rings [][]r2.Point
	var points []r2.Point
	scanner := bufio.NewScanner(in)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(points) > 0 {
				rings = append(rings, points)
				points = nil
			}
			continue
		}
		point, err := parsePoint(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(points) > 0 {
		rings = append(rings, points)
	}
	return rings, nil
}

func parsePoint(line string) (r2.Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return r2.Point{}, errors.Errorf("expected \"x y\" but got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return r2.Point{}, err
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return r2.Point{}, err
	}
	return r2.Point{X: x, Y: y}, nil
}

// Flatten rings into one point list, with each ring closed by constraint
// edges.
func ringConstraints(rings [][]r2.Point) ([]r2.Point, [][2]uint32) {
	var points []r2.Point
	var edges [][2]uint32
	for _, ring := range rings {
		start := uint32(len(points))
		n := uint32(len(ring))
		points = append(points, ring...)
		for i := uint32(0); i < n; i++ {
			edges = append(edges, [2]uint32{start + i, start + (i+1)%n})
		}
	}
	return points, edges
}

func ringPreview(rings [][]r2.Point, triangles [][3]uint32) *preview.Cap {
	section := &preview.Cap{}
	for _, ring := range rings {
		loop := make([]int, len(ring))
		for i := range ring {
			loop[i] = len(section.Points) + i
		}
		section.Points = append(section.Points, ring...)
		section.Loops = append(section.Loops, loop)
	}
	for _, tri := range triangles {
		section.Triangles = append(section.Triangles, [3]int{int(tri[0]), int(tri[1]), int(tri[2])})
	}
	return section
}
