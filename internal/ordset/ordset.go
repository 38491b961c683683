// Package ordset is a red-black tree of integer values ordered by a caller
// supplied comparator.
//
// Nodes live in an arena and are addressed by Handle. The zero Handle is the
// sentinel "no node": it is a real, always-black leaf, so no operation ever
// has to special case a missing child or parent.
//
// The comparator receives a context value owned by the set. It is called
// every time two values are compared and its result is never cached, so the
// ordering may depend on state the caller mutates between operations (the
// pivot of an angular ordering, say), as long as it is consistent for the
// values currently stored.
package ordset

// Handle addresses a node of a Set. The zero Handle is None.
type Handle int32

// None is the "no such node" handle.
const None Handle = 0

type color uint8

const (
	black color = iota
	red
)

type node struct {
	value               int
	left, right, parent Handle
	color               color
}

// Compare orders two values under a context. It returns a negative number if
// a sorts before b, zero if they are equal, and a positive number otherwise.
type Compare[C any] func(ctx C, a, b int) int

// Set is an ordered set of ints. A Set is not safe for concurrent use.
type Set[C any] struct {
	Context C

	cmp   Compare[C]
	nodes []node
	free  []Handle
	root  Handle
	size  int
}

// New creates an empty set.
func New[C any](ctx C, cmp Compare[C]) *Set[C] {
	s := &Set[C]{Context: ctx, cmp: cmp}
	s.Reset()
	return s
}

// Reset empties the set, keeping its allocated arena.
func (s *Set[C]) Reset() {
	s.nodes = append(s.nodes[:0], node{color: black})
	s.free = s.free[:0]
	s.root = None
	s.size = 0
}

// Len returns the number of values in the set.
func (s *Set[C]) Len() int { return s.size }

// Value returns the value stored at h.
func (s *Set[C]) Value(h Handle) int { return s.nodes[h].value }

func (s *Set[C]) compare(a, b int) int { return s.cmp(s.Context, a, b) }

func (s *Set[C]) alloc(value int) Handle {
	n := node{value: value, color: red}
	if len(s.free) > 0 {
		h := s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		s.nodes[h] = n
		return h
	}
	s.nodes = append(s.nodes, n)
	return Handle(len(s.nodes) - 1)
}

// Find returns the handle of the value equal to v, or None.
func (s *Set[C]) Find(v int) Handle {
	x := s.root
	for x != None {
		c := s.compare(v, s.nodes[x].value)
		switch {
		case c < 0:
			x = s.nodes[x].left
		case c > 0:
			x = s.nodes[x].right
		default:
			return x
		}
	}
	return None
}

// Contains reports whether a value equal to v is in the set.
func (s *Set[C]) Contains(v int) bool { return s.Find(v) != None }

// LowerBound returns the first node whose value is not less than v, or None.
func (s *Set[C]) LowerBound(v int) Handle {
	x, result := s.root, None
	for x != None {
		if s.compare(s.nodes[x].value, v) < 0 {
			x = s.nodes[x].right
		} else {
			result = x
			x = s.nodes[x].left
		}
	}
	return result
}

// Min returns the first node, or None if the set is empty.
func (s *Set[C]) Min() Handle {
	if s.root == None {
		return None
	}
	return s.minimum(s.root)
}

// Max returns the last node, or None if the set is empty.
func (s *Set[C]) Max() Handle {
	if s.root == None {
		return None
	}
	return s.maximum(s.root)
}

func (s *Set[C]) minimum(x Handle) Handle {
	for s.nodes[x].left != None {
		x = s.nodes[x].left
	}
	return x
}

func (s *Set[C]) maximum(x Handle) Handle {
	for s.nodes[x].right != None {
		x = s.nodes[x].right
	}
	return x
}

// Successor returns the node after h, or None.
func (s *Set[C]) Successor(h Handle) Handle {
	if s.nodes[h].right != None {
		return s.minimum(s.nodes[h].right)
	}
	y := s.nodes[h].parent
	for y != None && h == s.nodes[y].right {
		h = y
		y = s.nodes[y].parent
	}
	return y
}

// Predecessor returns the node before h, or None.
func (s *Set[C]) Predecessor(h Handle) Handle {
	if s.nodes[h].left != None {
		return s.maximum(s.nodes[h].left)
	}
	y := s.nodes[h].parent
	for y != None && h == s.nodes[y].left {
		h = y
		y = s.nodes[y].parent
	}
	return y
}

// Insert adds v to the set. It returns the node holding v and whether it was
// newly inserted. If an equal value is already present, the set is unchanged.
func (s *Set[C]) Insert(v int) (Handle, bool) {
	y, x := None, s.root
	c := 0
	for x != None {
		y = x
		c = s.compare(v, s.nodes[x].value)
		switch {
		case c < 0:
			x = s.nodes[x].left
		case c > 0:
			x = s.nodes[x].right
		default:
			return x, false
		}
	}
	z := s.alloc(v)
	s.nodes[z].parent = y
	switch {
	case y == None:
		s.root = z
	case c < 0:
		s.nodes[y].left = z
	default:
		s.nodes[y].right = z
	}
	s.size++
	s.insertFixup(z)
	return z, true
}

func (s *Set[C]) rotateLeft(x Handle) {
	y := s.nodes[x].right
	s.nodes[x].right = s.nodes[y].left
	if s.nodes[y].left != None {
		s.nodes[s.nodes[y].left].parent = x
	}
	s.replaceChild(x, y)
	s.nodes[y].left = x
	s.nodes[x].parent = y
}

func (s *Set[C]) rotateRight(x Handle) {
	y := s.nodes[x].left
	s.nodes[x].left = s.nodes[y].right
	if s.nodes[y].right != None {
		s.nodes[s.nodes[y].right].parent = x
	}
	s.replaceChild(x, y)
	s.nodes[y].right = x
	s.nodes[x].parent = y
}

// replaceChild hooks y into the place x occupies under x's parent.
func (s *Set[C]) replaceChild(x, y Handle) {
	p := s.nodes[x].parent
	s.nodes[y].parent = p
	switch {
	case p == None:
		s.root = y
	case x == s.nodes[p].left:
		s.nodes[p].left = y
	default:
		s.nodes[p].right = y
	}
}

func (s *Set[C]) insertFixup(z Handle) {
	for s.nodes[s.nodes[z].parent].color == red {
		p := s.nodes[z].parent
		g := s.nodes[p].parent
		if p == s.nodes[g].left {
			u := s.nodes[g].right
			if s.nodes[u].color == red {
				s.nodes[p].color = black
				s.nodes[u].color = black
				s.nodes[g].color = red
				z = g
				continue
			}
			if z == s.nodes[p].right {
				z = p
				s.rotateLeft(z)
				p = s.nodes[z].parent
			}
			s.nodes[p].color = black
			s.nodes[g].color = red
			s.rotateRight(g)
		} else {
			u := s.nodes[g].left
			if s.nodes[u].color == red {
				s.nodes[p].color = black
				s.nodes[u].color = black
				s.nodes[g].color = red
				z = g
				continue
			}
			if z == s.nodes[p].left {
				z = p
				s.rotateRight(z)
				p = s.nodes[z].parent
			}
			s.nodes[p].color = black
			s.nodes[g].color = red
			s.rotateLeft(g)
		}
	}
	s.nodes[s.root].color = black
}

// Delete removes the value equal to v. It reports whether a value was
// removed.
func (s *Set[C]) Delete(v int) bool {
	z := s.Find(v)
	if z == None {
		return false
	}
	s.DeleteHandle(z)
	return true
}

// DeleteHandle removes the node z.
//
// When z has two children its successor's value is moved into z and the
// successor's node is unlinked instead, so z stays live and handles to every
// other node stay valid. A handle to that successor, however, now addresses
// a freed node; look it up again by value.
func (s *Set[C]) DeleteHandle(z Handle) {
	y := z
	if s.nodes[z].left != None && s.nodes[z].right != None {
		y = s.minimum(s.nodes[z].right)
		s.nodes[z].value = s.nodes[y].value
	}

	// y has at most one child.
	x := s.nodes[y].left
	if x == None {
		x = s.nodes[y].right
	}
	// The sentinel's parent is scratch space for the fixup walk.
	s.nodes[x].parent = s.nodes[y].parent
	p := s.nodes[y].parent
	switch {
	case p == None:
		s.root = x
	case y == s.nodes[p].left:
		s.nodes[p].left = x
	default:
		s.nodes[p].right = x
	}
	if s.nodes[y].color == black {
		s.deleteFixup(x)
	}
	s.nodes[None] = node{color: black}
	s.free = append(s.free, y)
	s.size--
}

func (s *Set[C]) deleteFixup(x Handle) {
	for x != s.root && s.nodes[x].color == black {
		p := s.nodes[x].parent
		if x == s.nodes[p].left {
			w := s.nodes[p].right
			if s.nodes[w].color == red {
				s.nodes[w].color = black
				s.nodes[p].color = red
				s.rotateLeft(p)
				w = s.nodes[p].right
			}
			if s.nodes[s.nodes[w].left].color == black && s.nodes[s.nodes[w].right].color == black {
				s.nodes[w].color = red
				x = p
				continue
			}
			if s.nodes[s.nodes[w].right].color == black {
				s.nodes[s.nodes[w].left].color = black
				s.nodes[w].color = red
				s.rotateRight(w)
				w = s.nodes[p].right
			}
			s.nodes[w].color = s.nodes[p].color
			s.nodes[p].color = black
			s.nodes[s.nodes[w].right].color = black
			s.rotateLeft(p)
			x = s.root
		} else {
			w := s.nodes[p].left
			if s.nodes[w].color == red {
				s.nodes[w].color = black
				s.nodes[p].color = red
				s.rotateRight(p)
				w = s.nodes[p].left
			}
			if s.nodes[s.nodes[w].right].color == black && s.nodes[s.nodes[w].left].color == black {
				s.nodes[w].color = red
				x = p
				continue
			}
			if s.nodes[s.nodes[w].left].color == black {
				s.nodes[s.nodes[w].right].color = black
				s.nodes[w].color = red
				s.rotateLeft(w)
				w = s.nodes[p].left
			}
			s.nodes[w].color = s.nodes[p].color
			s.nodes[p].color = black
			s.nodes[s.nodes[w].left].color = black
			s.rotateRight(p)
			x = s.root
		}
	}
	s.nodes[x].color = black
}

// Values returns the contents of the set in order.
func (s *Set[C]) Values() []int {
	out := make([]int, 0, s.size)
	for h := s.Min(); h != None; h = s.Successor(h) {
		out = append(out, s.nodes[h].value)
	}
	return out
}
