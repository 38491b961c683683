package cdt

import (
	"math"

	"github.com/golang/geo/r2"
	"golang.org/x/exp/slices"

	"github.com/osuushi/meshslice/internal/ordset"
	"github.com/osuushi/meshslice/internal/predicates"
	"github.com/osuushi/meshslice/internal/throw"
)

// hullContext is the state the hull ordering depends on.
type hullContext struct {
	points []r2.Point
	center r2.Point
}

// compareAngle orders point indices counter-clockwise by angle around the
// center, starting from the positive x axis.
func compareAngle(ctx *hullContext, a, b int) int {
	if a == b {
		return 0
	}
	pa, pb := ctx.points[a], ctx.points[b]
	ha, hb := half(ctx.center, pa), half(ctx.center, pb)
	if ha != hb {
		return ha - hb
	}
	if o := predicates.Orient2D(ctx.center, pa, pb); o != 0 {
		return -o
	}
	// Same ray from the center.
	return a - b
}

func half(c, p r2.Point) int {
	if p.Y > c.Y || (p.Y == c.Y && p.X > c.X) {
		return 0
	}
	return 1
}

func (t *Triangulation) addTri(a, b, c int, na, nb, nc int) int {
	t.tris = append(t.tris, tri{v: [3]int{a, b, c}, n: [3]int{na, nb, nc}})
	i := len(t.tris) - 1
	t.incident[a], t.incident[b], t.incident[c] = i, i, i
	return i
}

// edgeIndex returns i such that edge i of triangle ti runs from a to b, or
// -1.
func (t *Triangulation) edgeIndex(ti, a, b int) int {
	v := t.tris[ti].v
	for i := 0; i < 3; i++ {
		if v[i] == a && v[next(i)] == b {
			return i
		}
	}
	return -1
}

// setNeighbor records that ti is the triangle across edge a->b of tj, when tj
// exists.
func (t *Triangulation) setNeighbor(tj, a, b, ti int) {
	if tj < 0 {
		return
	}
	i := t.edgeIndex(tj, a, b)
	if i < 0 {
		throw.Fatalf("triangle %d has no edge %d->%d", tj, a, b)
	}
	t.tris[tj].n[i] = ti
}

// fan returns the triangles around vertex a in counter-clockwise order.
func (t *Triangulation) fan(a int) []int {
	start := t.incident[a]
	if start < 0 {
		throw.Fatalf("vertex %d has no incident triangle", a)
	}
	out := []int{start}
	limit := len(t.tris) + 1
	cur := start
	for {
		k := t.vertexIndex(cur, a)
		nb := t.tris[cur].n[prev(k)]
		if nb == start {
			return out
		}
		if nb < 0 {
			break
		}
		out = append(out, nb)
		cur = nb
		if len(out) > limit {
			throw.Fatalf("fan around vertex %d does not close", a)
		}
	}
	// a is on the boundary; collect the clockwise side too.
	var cw []int
	cur = start
	for {
		k := t.vertexIndex(cur, a)
		nb := t.tris[cur].n[k]
		if nb < 0 {
			break
		}
		cw = append(cw, nb)
		cur = nb
		if len(out)+len(cw) > limit {
			throw.Fatalf("fan around vertex %d does not close", a)
		}
	}
	for i, j := 0, len(cw)-1; i < j; i, j = i+1, j-1 {
		cw[i], cw[j] = cw[j], cw[i]
	}
	return append(cw, out...)
}

func (t *Triangulation) vertexIndex(ti, a int) int {
	v := t.tris[ti].v
	for i := 0; i < 3; i++ {
		if v[i] == a {
			return i
		}
	}
	throw.Fatalf("vertex %d is not in triangle %d", a, ti)
	return -1
}

// triangleWithEdge finds the triangle with directed edge a->b. It returns the
// triangle and the edge index, or -1, -1.
func (t *Triangulation) triangleWithEdge(a, b int) (int, int) {
	for _, ti := range t.fan(a) {
		if i := t.edgeIndex(ti, a, b); i >= 0 {
			return ti, i
		}
	}
	return -1, -1
}

func (t *Triangulation) hasEdge(a, b int) bool {
	if ti, _ := t.triangleWithEdge(a, b); ti >= 0 {
		return true
	}
	ti, _ := t.triangleWithEdge(b, a)
	return ti >= 0
}

func circumradius2(a, b, c r2.Point) float64 {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	bl := bx*bx + by*by
	cl := cx*cx + cy*cy
	d := 0.5 / (bx*cy - by*cx)
	x := (cy*bl - by*cl) * d
	y := (bx*cl - cx*bl) * d
	r := x*x + y*y
	if math.IsNaN(r) {
		return math.Inf(1)
	}
	return r
}

// buildSweep seeds with the smallest circumcircle triangle near the center
// and inserts the rest of the points in order of distance from it, keeping
// the convex hull in an angular ordered set.
func (t *Triangulation) buildSweep() {
	pts := t.points
	n := len(pts)
	t.incident = append(t.incident, make([]int, n)...)
	for i := range t.incident {
		t.incident[i] = -1
	}

	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	mid := r2.Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}

	nearest := func(to r2.Point, skip int) int {
		best, bestD := -1, math.Inf(1)
		for i, p := range pts {
			if i == skip {
				continue
			}
			d := p.Sub(to)
			if d2 := d.Dot(d); d2 < bestD {
				best, bestD = i, d2
			}
		}
		return best
	}
	i0 := nearest(mid, -1)
	i1 := nearest(pts[i0], i0)
	i2, bestR := -1, math.Inf(1)
	for i, p := range pts {
		if i == i0 || i == i1 || predicates.Orient2D(pts[i0], pts[i1], p) == 0 {
			continue
		}
		if r := circumradius2(pts[i0], pts[i1], p); i2 < 0 || r < bestR {
			i2, bestR = i, r
		}
	}
	if i2 < 0 {
		throw.Degeneratef("no point off the line through %d and %d", i0, i1)
	}
	if predicates.Orient2D(pts[i0], pts[i1], pts[i2]) < 0 {
		i1, i2 = i2, i1
	}

	center := r2.Point{
		X: (pts[i0].X + pts[i1].X + pts[i2].X) / 3,
		Y: (pts[i0].Y + pts[i1].Y + pts[i2].Y) / 3,
	}
	t.hull.Context.points = pts
	t.hull.Context.center = center

	t.addTri(i0, i1, i2, -1, -1, -1)
	t.hull.Insert(i0)
	t.hull.Insert(i1)
	t.hull.Insert(i2)

	for i := range pts {
		if i != i0 && i != i1 && i != i2 {
			t.order = append(t.order, i)
		}
	}
	dist := make([]float64, n)
	for i, p := range pts {
		d := p.Sub(center)
		dist[i] = d.Dot(d)
	}
	slices.SortFunc(t.order, func(a, b int) bool {
		if dist[a] != dist[b] {
			return dist[a] < dist[b]
		}
		return a < b
	})

	for _, p := range t.order {
		t.insertSweep(p)
	}
}

func (t *Triangulation) hullNext(h ordset.Handle) ordset.Handle {
	if s := t.hull.Successor(h); s != ordset.None {
		return s
	}
	return t.hull.Min()
}

func (t *Triangulation) hullPrev(h ordset.Handle) ordset.Handle {
	if s := t.hull.Predecessor(h); s != ordset.None {
		return s
	}
	return t.hull.Max()
}

func (t *Triangulation) insertSweep(p int) {
	pts := t.points
	h2 := t.hull.LowerBound(p)
	if h2 == ordset.None {
		h2 = t.hull.Min()
	}
	h1 := t.hullPrev(h2)
	p1, p2 := t.hull.Value(h1), t.hull.Value(h2)

	switch predicates.Orient2D(pts[p1], pts[p], pts[p2]) {
	case 1:
		t.extendHull(p, p1, p2)
		t.hull.Insert(p)
	case 0:
		ti, i := t.triangleWithEdge(p1, p2)
		if ti < 0 {
			throw.Fatalf("hull edge %d->%d has no triangle", p1, p2)
		}
		t.splitBoundaryEdge(ti, i, p)
		t.hull.Insert(p)
	default:
		t.insertInterior(p, t.incident[p1])
	}
}

// extendHull fans p onto every hull edge visible from it, starting with the
// edge p1->p2.
func (t *Triangulation) extendHull(p, p1, p2 int) {
	pts := t.points
	inner, _ := t.triangleWithEdge(p1, p2)
	if inner < 0 {
		throw.Fatalf("hull edge %d->%d has no triangle", p1, p2)
	}
	first := t.addTri(p, p2, p1, -1, inner, -1)
	t.setNeighbor(inner, p1, p2, first)
	t.stack = append(t.stack, first)

	// Walk clockwise along the hull.
	left, leftTri := p1, first
	for {
		h := t.hull.Find(left)
		p0 := t.hull.Value(t.hullPrev(h))
		if p0 == p2 || predicates.Orient2D(pts[p0], pts[p], pts[left]) != 1 {
			break
		}
		inner, _ := t.triangleWithEdge(p0, left)
		if inner < 0 {
			throw.Fatalf("hull edge %d->%d has no triangle", p0, left)
		}
		nt := t.addTri(p, left, p0, leftTri, inner, -1)
		t.setNeighbor(leftTri, left, p, nt)
		t.setNeighbor(inner, p0, left, nt)
		t.stack = append(t.stack, nt)
		t.hull.Delete(left)
		left, leftTri = p0, nt
	}

	// And counter-clockwise.
	right, rightTri := p2, first
	for {
		h := t.hull.Find(right)
		p3 := t.hull.Value(t.hullNext(h))
		if p3 == left || predicates.Orient2D(pts[right], pts[p], pts[p3]) != 1 {
			break
		}
		inner, _ := t.triangleWithEdge(right, p3)
		if inner < 0 {
			throw.Fatalf("hull edge %d->%d has no triangle", right, p3)
		}
		nt := t.addTri(p, p3, right, -1, inner, rightTri)
		t.setNeighbor(rightTri, p, right, nt)
		t.setNeighbor(inner, right, p3, nt)
		t.stack = append(t.stack, nt)
		t.hull.Delete(right)
		right, rightTri = p3, nt
	}
	t.legalize(p)
}

// locate walks from triangle start toward point p. It returns the triangle
// containing p and, when p lies on one of its edges, that edge index, or -1.
func (t *Triangulation) locate(p r2.Point, start int) (int, int) {
	cur := start
	limit := 3*len(t.tris) + 16
	for step := 0; step < limit; step++ {
		tr := t.tris[cur]
		moved := false
		onEdge := -1
		// Rotating the first edge tested keeps the walk from cycling.
		for k := 0; k < 3; k++ {
			i := (k + step) % 3
			o := predicates.Orient2D(t.points[tr.v[i]], t.points[tr.v[next(i)]], p)
			if o < 0 {
				if tr.n[i] < 0 {
					throw.Fatalf("walk toward %v left the triangulation at triangle %d", p, cur)
				}
				cur = tr.n[i]
				moved = true
				break
			}
			if o == 0 {
				onEdge = i
			}
		}
		if !moved {
			return cur, onEdge
		}
	}
	throw.Fatalf("point location for %v did not terminate after %d steps", p, limit)
	return -1, -1
}

// insertInterior inserts p, which lies inside the current triangulation.
func (t *Triangulation) insertInterior(p int, start int) {
	ti, edge := t.locate(t.points[p], start)
	switch {
	case edge < 0:
		t.splitTriangle(ti, p)
	case t.tris[ti].n[edge] < 0:
		t.splitBoundaryEdge(ti, edge, p)
	default:
		t.splitEdge(ti, edge, p)
	}
}

// splitTriangle replaces triangle ti with three triangles fanned from p.
func (t *Triangulation) splitTriangle(ti, p int) {
	tr := t.tris[ti]
	a, b, c := tr.v[0], tr.v[1], tr.v[2]
	nab, nbc, nca := tr.n[0], tr.n[1], tr.n[2]
	t1 := len(t.tris)
	t2 := t1 + 1
	t.tris[ti] = tri{v: [3]int{a, b, p}, n: [3]int{nab, t1, t2}}
	t.tris = append(t.tris,
		tri{v: [3]int{b, c, p}, n: [3]int{nbc, t2, ti}},
		tri{v: [3]int{c, a, p}, n: [3]int{nca, ti, t1}},
	)
	t.setNeighbor(nbc, c, b, t1)
	t.setNeighbor(nca, a, c, t2)
	t.incident[a], t.incident[b], t.incident[c], t.incident[p] = ti, ti, t1, ti
	t.stack = append(t.stack, ti, t1, t2)
	t.legalize(p)
}

// splitBoundaryEdge splits triangle ti in two at p, which lies on its edge i
// and that edge has no neighbor.
func (t *Triangulation) splitBoundaryEdge(ti, i, p int) {
	tr := t.tris[ti]
	p1, p2, p3 := tr.v[i], tr.v[next(i)], tr.v[prev(i)]
	n1, n2 := tr.n[next(i)], tr.n[prev(i)]
	tb := len(t.tris)
	t.tris[ti] = tri{v: [3]int{p1, p, p3}, n: [3]int{-1, tb, n2}}
	t.tris = append(t.tris, tri{v: [3]int{p, p2, p3}, n: [3]int{-1, n1, ti}})
	t.setNeighbor(n1, p3, p2, tb)
	t.incident[p1], t.incident[p], t.incident[p3], t.incident[p2] = ti, ti, ti, tb
	t.stack = append(t.stack, ti, tb)
	t.legalize(p)
}

// splitEdge splits the two triangles sharing edge i of triangle ti into four
// triangles fanned from p, which lies on that edge.
func (t *Triangulation) splitEdge(ti, i, p int) {
	tr := t.tris[ti]
	a, b, c := tr.v[i], tr.v[next(i)], tr.v[prev(i)]
	nbc, nca := tr.n[next(i)], tr.n[prev(i)]
	ui := tr.n[i]
	j := t.edgeIndex(ui, b, a)
	if j < 0 {
		throw.Fatalf("triangles %d and %d disagree about edge %d-%d", ti, ui, a, b)
	}
	u := t.tris[ui]
	d := u.v[prev(j)]
	nad, ndb := u.n[next(j)], u.n[prev(j)]

	t1 := len(t.tris)
	u1 := t1 + 1
	t.tris[ti] = tri{v: [3]int{c, a, p}, n: [3]int{nca, u1, t1}}
	t.tris[ui] = tri{v: [3]int{d, b, p}, n: [3]int{ndb, t1, u1}}
	t.tris = append(t.tris,
		tri{v: [3]int{c, p, b}, n: [3]int{ti, ui, nbc}},
		tri{v: [3]int{d, p, a}, n: [3]int{ui, ti, nad}},
	)
	t.setNeighbor(nbc, c, b, t1)
	t.setNeighbor(nad, d, a, u1)
	t.incident[a], t.incident[c], t.incident[p] = ti, ti, ti
	t.incident[b], t.incident[d] = t1, ui
	t.stack = append(t.stack, ti, t1, ui, u1)
	t.legalize(p)
}

// legalize restores the Delaunay property around p for every triangle on the
// stack. Points exactly on a circumcircle are left alone.
func (t *Triangulation) legalize(p int) {
	limit := 4*len(t.tris)*len(t.tris) + 64
	for steps := 0; len(t.stack) > 0; steps++ {
		if steps > limit {
			throw.Fatalf("legalization around vertex %d did not terminate", p)
		}
		ti := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]

		tr := t.tris[ti]
		k := -1
		for i := 0; i < 3; i++ {
			if tr.v[i] == p {
				k = i
			}
		}
		if k < 0 {
			continue
		}
		e := next(k)
		p1, p2 := tr.v[e], tr.v[prev(k)]
		ni := tr.n[e]
		if ni < 0 || t.isConstraint(p1, p2) {
			continue
		}
		j := t.edgeIndex(ni, p2, p1)
		if j < 0 {
			throw.Fatalf("triangles %d and %d disagree about edge %d-%d", ti, ni, p1, p2)
		}
		p3 := t.tris[ni].v[prev(j)]
		if predicates.InCircle(t.points[p], t.points[p1], t.points[p2], t.points[p3]) == 1 {
			a, b := t.flip(ti, e)
			t.stack = append(t.stack, a, b)
		}
	}
}

// flip replaces edge i of triangle ti, and the triangle across it, with the
// other diagonal of their quadrilateral. If edge i runs q0->q1 with r
// opposite in ti and s opposite in the neighbor, ti becomes (r, q0, s) and the
// neighbor becomes (s, q1, r). Both indices are returned in that order.
func (t *Triangulation) flip(ti, i int) (int, int) {
	tr := t.tris[ti]
	q0, q1, r := tr.v[i], tr.v[next(i)], tr.v[prev(i)]
	tA, tB := tr.n[next(i)], tr.n[prev(i)]
	ni := tr.n[i]
	j := t.edgeIndex(ni, q1, q0)
	if j < 0 {
		throw.Fatalf("triangles %d and %d disagree about edge %d-%d", ti, ni, q0, q1)
	}
	nt := t.tris[ni]
	s := nt.v[prev(j)]
	nA, nB := nt.n[next(j)], nt.n[prev(j)]

	t.tris[ti] = tri{v: [3]int{r, q0, s}, n: [3]int{tB, nA, ni}}
	t.tris[ni] = tri{v: [3]int{s, q1, r}, n: [3]int{nB, tA, ti}}
	t.setNeighbor(nA, s, q0, ti)
	t.setNeighbor(tA, r, q1, ni)
	t.incident[q0], t.incident[r] = ti, ti
	t.incident[q1], t.incident[s] = ni, ni
	return ti, ni
}

// buildGhost seeds with a triangle far outside the bounds of the points and
// inserts every point by walking to it.
func (t *Triangulation) buildGhost() {
	minX, minY, maxX, maxY := math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)
	for _, p := range t.points[:t.real] {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	m := math.Max(maxX-minX, maxY-minY)*64 + 1
	g := t.real
	t.points = append(t.points,
		r2.Point{X: cx - 3*m, Y: cy - 2*m},
		r2.Point{X: cx + 3*m, Y: cy - 2*m},
		r2.Point{X: cx, Y: cy + 3*m},
	)
	t.incident = append(t.incident, make([]int, len(t.points))...)
	for i := range t.incident {
		t.incident[i] = -1
	}
	t.addTri(g, g+1, g+2, -1, -1, -1)

	for i := 0; i < t.real; i++ {
		t.order = append(t.order, i)
	}
	// Sorting along x keeps consecutive walks short.
	pts := t.points
	slices.SortFunc(t.order, func(a, b int) bool {
		if pts[a].X != pts[b].X {
			return pts[a].X < pts[b].X
		}
		return pts[a].Y < pts[b].Y
	})
	last := 0
	for _, p := range t.order {
		t.insertInterior(p, last)
		last = t.incident[p]
	}
}
