package cdt

import (
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/osuushi/meshslice/internal/predicates"
	"github.com/osuushi/meshslice/internal/throw"
)

// Validate checks the topology of the last run: every triangle is
// counter-clockwise and every neighbor link is mirrored across the same edge.
func (t *Triangulation) Validate() error {
	for ti, tr := range t.tris {
		if predicates.Orient2D(t.points[tr.v[0]], t.points[tr.v[1]], t.points[tr.v[2]]) != 1 {
			return errors.Wrapf(throw.ErrInternalInvariant, "triangle %d %v is not counter-clockwise", ti, tr.v)
		}
		for i := 0; i < 3; i++ {
			nb := tr.n[i]
			if nb < 0 {
				continue
			}
			a, b := tr.v[i], tr.v[next(i)]
			j := t.edgeIndex(nb, b, a)
			if j < 0 || t.tris[nb].n[j] != ti {
				return errors.Wrapf(throw.ErrInternalInvariant, "triangle %d and neighbor %d disagree about edge %d-%d", ti, nb, a, b)
			}
		}
	}
	for v, ti := range t.incident {
		if ti < 0 {
			continue
		}
		if !slices.Contains(t.tris[ti].v[:], v) {
			return errors.Wrapf(throw.ErrInternalInvariant, "vertex %d points at triangle %d which does not contain it", v, ti)
		}
	}
	return nil
}

// IsDelaunay reports whether every edge that is not a constraint is locally
// Delaunay: the vertex across it is not strictly inside the circumcircle of
// the triangle on this side.
func (t *Triangulation) IsDelaunay() bool {
	for _, tr := range t.tris {
		for i := 0; i < 3; i++ {
			nb := tr.n[i]
			if nb < 0 || t.isConstraint(tr.v[i], tr.v[next(i)]) {
				continue
			}
			j := t.edgeIndex(nb, tr.v[next(i)], tr.v[i])
			if j < 0 {
				return false
			}
			s := t.tris[nb].v[prev(j)]
			if predicates.InCircle(t.points[tr.v[0]], t.points[tr.v[1]], t.points[tr.v[2]], t.points[s]) == 1 {
				return false
			}
		}
	}
	return true
}

// Constraints returns the constraint edges of the last run, normalized and
// sorted. A constraint that passed through other vertices appears as its
// pieces.
func (t *Triangulation) Constraints() []Edge {
	out := make([]Edge, 0, len(t.constraints))
	for e := range t.constraints {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Edge) bool {
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		return a[1] < b[1]
	})
	return out
}

// HasEdge reports whether a-b is an edge of the triangulation.
func (t *Triangulation) HasEdge(a, b int) bool { return t.hasEdge(a, b) }
