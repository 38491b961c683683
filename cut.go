package meshslice

import (
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/osuushi/meshslice/internal/cdt"
	"github.com/osuushi/meshslice/internal/contour"
	"github.com/osuushi/meshslice/internal/seidel"
	"github.com/osuushi/meshslice/internal/slicer"
	"github.com/osuushi/meshslice/internal/throw"
)

// CapMethod selects the triangulator that fills the cross section.
type CapMethod int

const (
	// CapDelaunay fills caps with a constrained Delaunay triangulation.
	CapDelaunay CapMethod = iota
	// CapSeidel fills caps with Seidel trapezoidation and monotone polygons.
	CapSeidel
)

func (m CapMethod) String() string {
	switch m {
	case CapDelaunay:
		return "delaunay"
	case CapSeidel:
		return "seidel"
	}
	return "unknown"
}

// Options configure a Cutter. The zero value is the default.
type Options struct {
	CapMethod CapMethod
	// MergeTolerance for intersection vertices, in plane units. Defaults to
	// slicer.DefaultMergeTolerance.
	MergeTolerance float64
	// Delaunay seeding, for CapDelaunay.
	DelaunaySeed cdt.SeedMode
	// Shuffle seed, for CapSeidel.
	SeidelSeed int64
}

// Fragment is one side of a cut mesh, with its cap. Vertices are copied from
// the input, followed by any intersection vertices the side uses.
type Fragment struct {
	Vertices  []r3.Vector
	Triangles [][3]uint32
	// Refs maps each fragment vertex back to the slice result, so callers can
	// carry other per-vertex attributes over.
	Refs []Ref
	// CapStart is the index of the first cap triangle in Triangles.
	CapStart int
}

// CutResult is the outcome of Cut.
type CutResult struct {
	Top, Bottom Fragment
	Slice       *SliceResult
	// Loops is the cross section as closed loops of references, in the
	// orientation of SliceResult.Boundary.
	Loops [][]Ref
	// OpenChains are cut edge chains that did not close, which happens when
	// the mesh has holes along the cut. They are not capped.
	OpenChains [][]Ref
	// Cut is false when the plane missed the mesh. Both fragments are then
	// uncapped, and one of them is empty.
	Cut bool
}

// Cutter runs the cut pipeline. It reuses its slicer and triangulator between
// calls, so use one instance per goroutine.
type Cutter struct {
	Options
	slicer *slicer.Slicer
	cdt    *cdt.Triangulation
}

// NewCutter prepares a Cutter with its own slicer and triangulator.
func NewCutter(opts Options) *Cutter {
	return &Cutter{
		Options: opts,
		slicer:  slicer.New(slicer.Options{MergeTolerance: opts.MergeTolerance}),
		cdt:     cdt.New(cdt.Options{Seed: opts.DelaunaySeed}),
	}
}

// Cut is a convenience wrapper running a fresh Cutter with default options.
func Cut(vertices []r3.Vector, triangles []uint32, plane Plane) (*CutResult, error) {
	return NewCutter(Options{}).Cut(vertices, triangles, plane)
}

// Cut slices the mesh, assembles the cut edges into loops, nests the loops
// into solid regions with holes, and caps both fragments. The bottom cap faces
// along the plane normal, and the top cap faces against it, so closed input
// gives closed fragments.
func (c *Cutter) Cut(vertices []r3.Vector, triangles []uint32, plane Plane) (*CutResult, error) {
	sliced, err := c.slicer.Slice(vertices, triangles, plane)
	if err != nil {
		return nil, err
	}
	result := &CutResult{Slice: sliced, Cut: sliced.Cut}
	result.Top = buildFragment(vertices, sliced, sliced.Top)
	result.Bottom = buildFragment(vertices, sliced, sliced.Bottom)
	if !sliced.Cut {
		return result, nil
	}

	result.Loops, result.OpenChains = contour.Loops(sliced.Boundary)
	capTris, err := c.capTriangles(vertices, plane, sliced, result.Loops)
	if err != nil {
		return nil, err
	}
	result.Bottom.addCap(capTris, vertices, sliced, false)
	result.Top.addCap(capTris, vertices, sliced, true)
	return result, nil
}

// Triangulate the cross section, returning triangles over references that
// wind counterclockwise around the plane normal.
func (c *Cutter) capTriangles(vertices []r3.Vector, plane Plane, sliced *SliceResult, loops [][]Ref) ([][3]Ref, error) {
	var refs []Ref
	var points []r2.Point
	index := map[Ref]int{}
	tree := contour.NewTree()
	for _, loop := range loops {
		if len(loop) < 3 {
			continue
		}
		loopContour := contour.Contour{}
		for _, ref := range loop {
			i, ok := index[ref]
			if !ok {
				i = len(refs)
				index[ref] = i
				refs = append(refs, ref)
				points = append(points, plane.Project(sliced.Position(vertices, ref)))
			}
			loopContour.Points = append(loopContour.Points, points[i])
			loopContour.IDs = append(loopContour.IDs, i)
		}
		if contour.SignedArea(loopContour.Points) == 0 {
			continue
		}
		tree.AddContour(loopContour)
	}

	var result [][3]Ref
	for _, group := range tree.Groups() {
		tris, err := c.capGroup(group)
		if err != nil {
			return nil, errors.WithMessagef(err, "capping region with %d holes", len(group.Holes))
		}
		for _, tri := range tris {
			result = append(result, [3]Ref{refs[tri[0]], refs[tri[1]], refs[tri[2]]})
		}
	}
	return result, nil
}

// Triangulate one region with the configured method. Seidel cannot order
// points closer than its tolerance, so such regions go to the exact
// Delaunay triangulator instead.
func (c *Cutter) capGroup(group contour.Group) ([][3]int, error) {
	if c.CapMethod != CapSeidel {
		return c.delaunayCap(group)
	}
	tris, err := c.seidelCap(group)
	if errors.Is(err, throw.ErrInvalidInput) {
		return c.delaunayCap(group)
	}
	return tris, err
}

// Constrained Delaunay over the points of one region. Returned indices are
// contour IDs.
func (c *Cutter) delaunayCap(group contour.Group) ([][3]int, error) {
	var points []r2.Point
	var ids []int
	var edges []cdt.Edge
	for _, ring := range groupRings(group) {
		first := len(points)
		points = append(points, ring.Points...)
		ids = append(ids, ring.IDs...)
		for i := range ring.Points {
			edges = append(edges, cdt.Edge{first + i, first + (i+1)%len(ring.Points)})
		}
	}
	triangles, err := c.cdt.Run(points, edges)
	if err != nil {
		return nil, err
	}
	result := make([][3]int, len(triangles))
	for i, tri := range triangles {
		result[i] = [3]int{ids[tri[0]], ids[tri[1]], ids[tri[2]]}
	}
	return result, nil
}

func (c *Cutter) seidelCap(group contour.Group) ([][3]int, error) {
	var rings [][]r2.Point
	var ids []int
	for _, ring := range groupRings(group) {
		rings = append(rings, ring.Points)
		ids = append(ids, ring.IDs...)
	}
	triangles, err := seidel.Triangulate(rings, seidel.Options{Seed: c.SeidelSeed})
	if err != nil {
		return nil, err
	}
	result := make([][3]int, len(triangles))
	for i, tri := range triangles {
		result[i] = [3]int{ids[tri[0]], ids[tri[1]], ids[tri[2]]}
	}
	return result, nil
}

func groupRings(group contour.Group) []contour.Contour {
	return append([]contour.Contour{group.Outer}, group.Holes...)
}

func buildFragment(vertices []r3.Vector, sliced *SliceResult, tris [][3]Ref) Fragment {
	var f Fragment
	index := map[Ref]uint32{}
	for _, tri := range tris {
		var out [3]uint32
		for k, ref := range tri {
			out[k] = f.vertex(index, vertices, sliced, ref)
		}
		f.Triangles = append(f.Triangles, out)
	}
	f.CapStart = len(f.Triangles)
	return f
}

func (f *Fragment) vertex(index map[Ref]uint32, vertices []r3.Vector, sliced *SliceResult, ref Ref) uint32 {
	if i, ok := index[ref]; ok {
		return i
	}
	i := uint32(len(f.Vertices))
	index[ref] = i
	f.Vertices = append(f.Vertices, sliced.Position(vertices, ref))
	f.Refs = append(f.Refs, ref)
	return i
}

// Append cap triangles, reusing the fragment's own vertices along the cut.
func (f *Fragment) addCap(tris [][3]Ref, vertices []r3.Vector, sliced *SliceResult, reverse bool) {
	index := make(map[Ref]uint32, len(f.Refs))
	for i, ref := range f.Refs {
		index[ref] = uint32(i)
	}
	for _, tri := range tris {
		if reverse {
			tri[1], tri[2] = tri[2], tri[1]
		}
		var out [3]uint32
		for k, ref := range tri {
			out[k] = f.vertex(index, vertices, sliced, ref)
		}
		f.Triangles = append(f.Triangles, out)
	}
}

// Area of the fragment's cap, for diagnostics.
func (f *Fragment) CapArea() float64 {
	area := 0.0
	for _, tri := range f.Triangles[f.CapStart:] {
		a, b, c := f.Vertices[tri[0]], f.Vertices[tri[1]], f.Vertices[tri[2]]
		area += b.Sub(a).Cross(c.Sub(a)).Norm() / 2
	}
	return area
}

// Volume enclosed by a closed fragment, by the divergence theorem. It is
// positive when the triangles face outward.
func (f *Fragment) Volume() float64 {
	volume := 0.0
	for _, tri := range f.Triangles {
		a, b, c := f.Vertices[tri[0]], f.Vertices[tri[1]], f.Vertices[tri[2]]
		volume += a.Dot(b.Cross(c)) / 6
	}
	return volume
}
