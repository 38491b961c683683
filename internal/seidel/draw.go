package seidel

import (
	"math"

	"github.com/fogleman/gg"
	"github.com/osuushi/meshslice/dbg"
)

// Debug drawing of the trapezoid map.

// Room outside the segments, where unbounded trapezoids show up.
const drawPadding = 100

// Size of the larger extent when Draw picks the scale.
const autoScaleSize = 800

// Bounding box of the points seen so far.
type bounds struct {
	min, max Point
}

func newBounds() bounds {
	return bounds{
		min: Point{X: math.Inf(1), Y: math.Inf(1)},
		max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

func (b *bounds) add(p *Point) {
	b.min = Point{X: math.Min(b.min.X, p.X), Y: math.Min(b.min.Y, p.Y)}
	b.max = Point{X: math.Max(b.max.X, p.X), Y: math.Max(b.max.Y, p.Y)}
}

func (b *bounds) empty() bool {
	return b.min.X > b.max.X
}

// Canvas with a y-up transform fitted to the given bounds. It also returns
// the bounds of the whole canvas in shape coordinates, which is where points at
// infinity get drawn.
func newCanvas(minX, minY, maxX, maxY, scale float64) (c *gg.Context, canvasMin, canvasMax *Point) {
	if scale <= 0 {
		scale = autoScaleSize / math.Max(math.Max(maxX-minX, maxY-minY), Tolerance)
	}
	width := int(scale*(maxX-minX)) + drawPadding*2
	height := int(scale*(maxY-minY)) + drawPadding*2
	c = gg.NewContext(width, height)
	c.SetRGB(0, 0, 0)
	c.DrawRectangle(0, 0, float64(width), float64(height))
	c.Fill()

	// y up, with (minX, minY) at the inner bottom left corner
	c.Translate(0, float64(height))
	c.Scale(1, -1)
	c.Translate(drawPadding, drawPadding)
	c.Scale(scale, scale)
	c.Translate(-minX, -minY)

	pad := drawPadding / scale
	canvasMin = &Point{X: minX - pad, Y: minY - pad}
	canvasMax = &Point{X: maxX + pad, Y: maxY + pad}
	return c, canvasMin, canvasMax
}

// Draw renders every trapezoid, inside ones blue and outside ones yellow, with
// its debug name. A scale of zero fits the drawing to autoScaleSize.
func (graph *QueryGraph) Draw(scale float64) *gg.Context {
	box := newBounds()
	trapezoids := graph.Trapezoids()
	for _, t := range trapezoids {
		for _, side := range []*Segment{t.Left, t.Right} {
			if side != nil {
				box.add(side.Start)
				box.add(side.End)
			}
		}
	}
	if box.empty() {
		box = bounds{max: Point{X: 1, Y: 1}}
	}

	c, canvasMin, canvasMax := newCanvas(box.min.X, box.min.Y, box.max.X, box.max.Y, scale)
	c.SetLineWidth(1)
	for _, t := range trapezoids {
		t.draw(c, canvasMin, canvasMax, false)
	}
	for _, t := range trapezoids {
		t.draw(c, canvasMin, canvasMax, true)
	}
	return c
}

func (graph *QueryGraph) SavePNG(path string, scale float64) error {
	return graph.Draw(scale).SavePNG(path)
}

// Corners of the trapezoid, clipped to the canvas for unbounded sides, in the
// order top left, bottom left, bottom right, top right.
func (t *Trapezoid) corners(canvasMin, canvasMax *Point) [4]*Point {
	top, bottom := t.Top, t.Bottom
	if top == nil {
		top = canvasMax
	}
	if bottom == nil {
		bottom = canvasMin
	}
	sideX := func(side *Segment, y float64, fallback float64) float64 {
		if side == nil {
			return fallback
		}
		if side.IsHorizontal() {
			// SolveForX is undefined here. Use the endpoint on this wall.
			if Equal(y, top.Y) {
				return side.Top().X
			}
			return side.Bottom().X
		}
		return side.SolveForX(y)
	}
	return [4]*Point{
		{X: sideX(t.Left, top.Y, canvasMin.X), Y: top.Y},
		{X: sideX(t.Left, bottom.Y, canvasMin.X), Y: bottom.Y},
		{X: sideX(t.Right, bottom.Y, canvasMax.X), Y: bottom.Y},
		{X: sideX(t.Right, top.Y, canvasMax.X), Y: top.Y},
	}
}

func (t *Trapezoid) draw(c *gg.Context, canvasMin, canvasMax *Point, stroke bool) {
	corners := t.corners(canvasMin, canvasMax)
	c.MoveTo(corners[0].X, corners[0].Y)
	for _, p := range corners[1:] {
		c.LineTo(p.X, p.Y)
	}
	c.ClosePath()
	if stroke {
		c.SetRGB(0, 1, 0)
		c.Stroke()
		return
	}
	if t.IsInside() {
		c.SetRGBA(0.3, 0.2, 1, 0.5)
	} else {
		c.SetRGBA(1, 1, 0, 0.5)
	}
	c.Fill()

	// Label in device space so the text reads upright.
	var centerX, centerY float64
	for _, p := range corners {
		centerX += p.X / 4
		centerY += p.Y / 4
	}
	centerX, centerY = c.TransformPoint(centerX, centerY)
	c.Push()
	c.Identity()
	c.SetRGB(1, 1, 1)
	c.DrawStringAnchored(dbg.Name(t), centerX, centerY, 0.5, 0.5)
	c.Pop()
}
