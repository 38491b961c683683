package cdt

import (
	"github.com/osuushi/meshslice/internal/predicates"
	"github.com/osuushi/meshslice/internal/throw"
)

// recoverEdge forces the segment a-b into the triangulation by flipping the
// edges that cross it. If the segment runs exactly through another vertex,
// the constraint is split at that vertex and each piece is recovered.
func (t *Triangulation) recoverEdge(a, b int) {
	if t.hasEdge(a, b) {
		return
	}
	crossing, through := t.crossingEdges(a, b)
	if through >= 0 {
		delete(t.constraints, Edge{a, b}.key())
		t.constraints[Edge{a, through}.key()] = struct{}{}
		t.constraints[Edge{through, b}.key()] = struct{}{}
		t.recoverEdge(a, through)
		t.recoverEdge(through, b)
		return
	}

	pa, pb := t.points[a], t.points[b]
	var created []Edge
	stalled := 0
	limit := 8*len(t.tris) + 64
	for steps := 0; len(crossing) > 0; steps++ {
		if steps > limit || stalled > len(crossing) {
			throw.Fatalf("could not recover constraint %d-%d: %d crossing edges left", a, b, len(crossing))
		}
		e := crossing[0]
		crossing = crossing[1:]
		ti, i := t.triangleWithEdge(e[0], e[1])
		if ti < 0 {
			throw.Fatalf("crossing edge %d->%d of constraint %d-%d vanished", e[0], e[1], a, b)
		}
		r := t.tris[ti].v[prev(i)]
		ni := t.tris[ti].n[i]
		if ni < 0 {
			throw.Fatalf("crossing edge %d->%d of constraint %d-%d is on the hull", e[0], e[1], a, b)
		}
		s := t.tris[ni].v[prev(t.edgeIndex(ni, e[1], e[0]))]

		// Only a strictly convex quadrilateral can be flipped.
		o0 := predicates.Orient2D(t.points[r], t.points[s], t.points[e[0]])
		o1 := predicates.Orient2D(t.points[r], t.points[s], t.points[e[1]])
		if o0 == 0 || o1 == 0 || o0 == o1 {
			crossing = append(crossing, e)
			stalled++
			continue
		}
		stalled = 0
		t.flip(ti, i)

		sr := predicates.Orient2D(pa, pb, t.points[r])
		ss := predicates.Orient2D(pa, pb, t.points[s])
		switch {
		case sr < 0 && ss > 0:
			crossing = append(crossing, Edge{r, s})
		case sr > 0 && ss < 0:
			crossing = append(crossing, Edge{s, r})
		default:
			created = append(created, Edge{r, s})
		}
	}

	t.edgeWork = append(t.edgeWork[:0], created...)
	t.legalizeEdges()
}

// crossingEdges walks from a toward b and collects the edges the segment
// crosses, each oriented with its first vertex to the right of a->b. If the
// segment passes exactly through a vertex before reaching b, that vertex is
// returned instead.
func (t *Triangulation) crossingEdges(a, b int) ([]Edge, int) {
	pa, pb := t.points[a], t.points[b]
	side := func(v int) int { return predicates.Orient2D(pa, pb, t.points[v]) }
	ahead := func(v int) bool {
		d := t.points[v].Sub(pa)
		return d.Dot(pb.Sub(pa)) > 0
	}

	// Find the wedge at a that contains the segment.
	cur := -1
	var x, y int
	for _, ti := range t.fan(a) {
		k := t.vertexIndex(ti, a)
		vx, vy := t.tris[ti].v[next(k)], t.tris[ti].v[prev(k)]
		sx, sy := side(vx), side(vy)
		if sx == 0 && ahead(vx) {
			return nil, vx
		}
		if sy == 0 && ahead(vy) {
			return nil, vy
		}
		if sx < 0 && sy > 0 {
			cur, x, y = ti, vx, vy
			break
		}
	}
	if cur < 0 {
		throw.Fatalf("no triangle at vertex %d faces toward %d", a, b)
	}

	var out []Edge
	limit := len(t.tris) + 1
	for len(out) <= limit {
		if t.isConstraint(x, y) {
			throw.Invalidf("constraints %d-%d and %d-%d cross", a, b, x, y)
		}
		out = append(out, Edge{x, y})
		i := t.edgeIndex(cur, x, y)
		nb := t.tris[cur].n[i]
		if nb < 0 {
			throw.Fatalf("segment %d-%d leaves the triangulation", a, b)
		}
		j := t.edgeIndex(nb, y, x)
		if j < 0 {
			throw.Fatalf("triangles %d and %d disagree about edge %d-%d", cur, nb, x, y)
		}
		z := t.tris[nb].v[prev(j)]
		if z == b {
			return out, -1
		}
		switch side(z) {
		case 0:
			return nil, z
		case 1:
			y = z
		default:
			x = z
		}
		cur = nb
	}
	throw.Fatalf("walk along segment %d-%d did not terminate", a, b)
	return nil, -1
}

// legalizeEdges flips every non-constraint edge on the edge work list that
// fails the Delaunay test, re-examining the four outer edges of each flipped
// quadrilateral.
func (t *Triangulation) legalizeEdges() {
	limit := 4*len(t.tris)*len(t.tris) + 64
	for steps := 0; len(t.edgeWork) > 0; steps++ {
		if steps > limit {
			throw.Fatalf("edge legalization did not terminate")
		}
		e := t.edgeWork[len(t.edgeWork)-1]
		t.edgeWork = t.edgeWork[:len(t.edgeWork)-1]
		if t.isConstraint(e[0], e[1]) {
			continue
		}
		ti, i := t.triangleWithEdge(e[0], e[1])
		if ti < 0 {
			if ti, i = t.triangleWithEdge(e[1], e[0]); ti < 0 {
				continue
			}
		}
		ni := t.tris[ti].n[i]
		if ni < 0 {
			continue
		}
		q0, q1, r := t.tris[ti].v[i], t.tris[ti].v[next(i)], t.tris[ti].v[prev(i)]
		s := t.tris[ni].v[prev(t.edgeIndex(ni, q1, q0))]
		if predicates.InCircle(t.points[q0], t.points[q1], t.points[r], t.points[s]) != 1 {
			continue
		}
		// A failing edge has a convex quadrilateral, but check anyway rather
		// than produce an inverted triangle.
		if predicates.Orient2D(t.points[r], t.points[q0], t.points[s]) != 1 ||
			predicates.Orient2D(t.points[s], t.points[q1], t.points[r]) != 1 {
			continue
		}
		t.flip(ti, i)
		t.edgeWork = append(t.edgeWork, Edge{r, q0}, Edge{q0, s}, Edge{s, q1}, Edge{q1, r})
	}
}

// legalizeAll runs edge legalization over every interior edge.
func (t *Triangulation) legalizeAll() {
	t.edgeWork = t.edgeWork[:0]
	for ti, tr := range t.tris {
		for i := 0; i < 3; i++ {
			if nb := tr.n[i]; nb > ti {
				t.edgeWork = append(t.edgeWork, Edge{tr.v[i], tr.v[next(i)]})
			}
		}
	}
	t.legalizeEdges()
}
