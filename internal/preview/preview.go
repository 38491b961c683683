// Package preview renders cross sections to PNG, and shows them in terminals
// that understand the iTerm image protocol.
package preview

import (
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r2"
	imgcat "github.com/martinlindhe/imgcat/lib"
	"github.com/pkg/errors"
)

// Padding around the drawing, in pixels
const padding = 40

// Cap is a triangulated cross section in plane coordinates. Loops and
// Triangles index Points.
type Cap struct {
	Points    []r2.Point
	Loops     [][]int
	Triangles [][3]int
}

// Draw renders the cap so that its larger extent is size pixels. Triangles
// are filled and outlined, and loops are drawn on top.
func (cp *Cap) Draw(size int) *gg.Context {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range cp.Points {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if len(cp.Points) == 0 {
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}
	extent := math.Max(math.Max(maxX-minX, maxY-minY), 1e-12)
	scale := float64(size) / extent
	width := int(scale*(maxX-minX)) + padding*2
	height := int(scale*(maxY-minY)) + padding*2

	c := gg.NewContext(width, height)
	c.SetRGB(1, 1, 1)
	c.Clear()

	// Plane coordinates are y-up
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(padding, padding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	for _, tri := range cp.Triangles {
		c.MoveTo(cp.Points[tri[0]].X, cp.Points[tri[0]].Y)
		c.LineTo(cp.Points[tri[1]].X, cp.Points[tri[1]].Y)
		c.LineTo(cp.Points[tri[2]].X, cp.Points[tri[2]].Y)
		c.ClosePath()
		c.SetRGBA(0.2, 0.4, 0.9, 0.4)
		c.FillPreserve()
		c.SetRGB(0.2, 0.3, 0.6)
		c.SetLineWidth(1)
		c.Stroke()
	}

	for _, loop := range cp.Loops {
		if len(loop) == 0 {
			continue
		}
		c.MoveTo(cp.Points[loop[0]].X, cp.Points[loop[0]].Y)
		for _, i := range loop[1:] {
			c.LineTo(cp.Points[i].X, cp.Points[i].Y)
		}
		c.ClosePath()
		c.SetRGB(0.8, 0.1, 0.1)
		c.SetLineWidth(2)
		c.Stroke()
	}
	return c
}

// SavePNG draws the cap and writes it to path.
func (cp *Cap) SavePNG(path string, size int) error {
	return errors.Wrapf(cp.Draw(size).SavePNG(path), "write %s", path)
}

// Cat writes a PNG file to w as an inline terminal image.
func Cat(path string, w io.Writer) error {
	return errors.Wrapf(imgcat.CatFile(path, w), "show %s", path)
}
