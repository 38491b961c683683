package cdt

import "github.com/osuushi/meshslice/internal/throw"

// classify marks each triangle as inside or outside the domain. Without
// constraints every triangle is inside. Otherwise a flood fill starts from a
// triangle known to be on the hull and toggles at every constraint edge.
func (t *Triangulation) classify(constrained bool) {
	t.inDomain = t.inDomain[:0]
	for range t.tris {
		t.inDomain = append(t.inDomain, !constrained)
	}
	if !constrained {
		return
	}

	visited := make([]bool, len(t.tris))
	start, inside := t.floodStart()
	queue := []int{start}
	visited[start] = true
	t.inDomain[start] = inside
	for len(queue) > 0 {
		ti := queue[0]
		queue = queue[1:]
		tr := t.tris[ti]
		for i := 0; i < 3; i++ {
			nb := tr.n[i]
			if nb < 0 || visited[nb] {
				continue
			}
			visited[nb] = true
			in := t.inDomain[ti]
			if t.isConstraint(tr.v[i], tr.v[next(i)]) {
				in = !in
			}
			t.inDomain[nb] = in
			queue = append(queue, nb)
		}
	}
}

// floodStart returns a triangle on the outer boundary and whether it lies
// inside the domain.
func (t *Triangulation) floodStart() (int, bool) {
	if t.Seed == SeedGhostTriangle {
		for ti := range t.tris {
			if t.touchesGhost(ti) {
				return ti, false
			}
		}
		throw.Fatalf("no triangle touches the ghost vertices")
	}
	h := t.hull.Min()
	a := t.hull.Value(h)
	b := t.hull.Value(t.hullNext(h))
	ti, _ := t.triangleWithEdge(a, b)
	if ti < 0 {
		throw.Fatalf("hull edge %d->%d has no triangle", a, b)
	}
	// A hull edge that is itself a constraint puts its triangle inside.
	return ti, t.isConstraint(a, b)
}
