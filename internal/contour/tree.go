package contour

import "github.com/golang/geo/r2"

// Contour is a closed loop with a caller defined ID for each point.
type Contour struct {
	Points []r2.Point
	IDs    []int
}

// Reverse flips the winding in place.
func (c *Contour) Reverse() {
	for i, j := 0, len(c.Points)-1; i < j; i, j = i+1, j-1 {
		c.Points[i], c.Points[j] = c.Points[j], c.Points[i]
		if len(c.IDs) == len(c.Points) {
			c.IDs[i], c.IDs[j] = c.IDs[j], c.IDs[i]
		}
	}
}

// Tree nests contours by containment. The root has no contour and encloses
// everything; its children are outer boundaries, their children are holes,
// and so on alternately.
type Tree struct {
	Contour  *Contour
	Children []*Tree
}

// NewTree returns an empty root.
func NewTree() *Tree { return &Tree{} }

func (t *Tree) contains(p r2.Point) bool {
	return t.Contour == nil || Contains(t.Contour.Points, p)
}

// AddContour inserts c under the smallest already inserted contour that
// contains its first point, and moves any contour that c encloses under c.
// Contours must not cross each other.
func (t *Tree) AddContour(c Contour) {
	if len(c.Points) == 0 {
		return
	}
	node := t
descend:
	for {
		for _, child := range node.Children {
			if child.contains(c.Points[0]) {
				node = child
				continue descend
			}
		}
		break
	}

	added := &Tree{Contour: &c}
	kept := node.Children[:0]
	for _, child := range node.Children {
		if Contains(c.Points, child.Contour.Points[0]) {
			added.Children = append(added.Children, child)
		} else {
			kept = append(kept, child)
		}
	}
	node.Children = append(kept, added)
}

// Group is a solid region: a counter-clockwise outer contour and the
// clockwise holes directly inside it.
type Group struct {
	Outer Contour
	Holes []Contour
}

// Groups flattens the tree into solid regions, normalizing the winding of
// each contour. Islands inside holes become groups of their own.
func (t *Tree) Groups() []Group {
	var out []Group
	var walk func(n *Tree, depth int)
	walk = func(n *Tree, depth int) {
		if depth%2 == 1 {
			g := Group{Outer: cloneContour(*n.Contour)}
			if SignedArea(g.Outer.Points) < 0 {
				g.Outer.Reverse()
			}
			for _, child := range n.Children {
				h := cloneContour(*child.Contour)
				if SignedArea(h.Points) > 0 {
					h.Reverse()
				}
				g.Holes = append(g.Holes, h)
			}
			out = append(out, g)
		}
		for _, child := range n.Children {
			walk(child, depth+1)
		}
	}
	walk(t, 0)
	return out
}

// Depth returns the number of levels below the root.
func (t *Tree) Depth() int {
	deepest := 0
	for _, child := range t.Children {
		if d := child.Depth() + 1; d > deepest {
			deepest = d
		}
	}
	return deepest
}

func cloneContour(c Contour) Contour {
	return Contour{
		Points: append([]r2.Point(nil), c.Points...),
		IDs:    append([]int(nil), c.IDs...),
	}
}
