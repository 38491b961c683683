package ordset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func intCompare(_ struct{}, a, b int) int { return a - b }

func newIntSet() *Set[struct{}] { return New(struct{}{}, intCompare) }

// checkTree verifies the red-black invariants and parent links and returns
// the black height.
func checkTree[C any](t *testing.T, s *Set[C], h Handle) int {
	if h == None {
		return 1
	}
	n := s.nodes[h]
	if n.color == red {
		require.Equal(t, black, s.nodes[n.left].color, "red node with red child")
		require.Equal(t, black, s.nodes[n.right].color, "red node with red child")
	}
	if n.left != None {
		require.Equal(t, h, s.nodes[n.left].parent)
		require.Less(t, s.compare(s.nodes[n.left].value, n.value), 0)
	}
	if n.right != None {
		require.Equal(t, h, s.nodes[n.right].parent)
		require.Greater(t, s.compare(s.nodes[n.right].value, n.value), 0)
	}
	lh := checkTree(t, s, n.left)
	rh := checkTree(t, s, n.right)
	require.Equal(t, lh, rh, "unbalanced black height")
	if n.color == black {
		lh++
	}
	return lh
}

func TestSetBasics(t *testing.T) {
	s := newIntSet()
	assert.Equal(t, None, s.Min())
	assert.Equal(t, None, s.Max())
	assert.Equal(t, None, s.LowerBound(3))

	for _, v := range []int{5, 1, 9, 3, 7} {
		_, inserted := s.Insert(v)
		assert.True(t, inserted)
	}
	_, inserted := s.Insert(3)
	assert.False(t, inserted)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, []int{1, 3, 5, 7, 9}, s.Values())

	assert.Equal(t, 1, s.Value(s.Min()))
	assert.Equal(t, 9, s.Value(s.Max()))
	assert.Equal(t, 5, s.Value(s.LowerBound(4)))
	assert.Equal(t, 5, s.Value(s.LowerBound(5)))
	assert.Equal(t, None, s.LowerBound(10))

	h := s.Find(5)
	assert.Equal(t, 7, s.Value(s.Successor(h)))
	assert.Equal(t, 3, s.Value(s.Predecessor(h)))
	assert.Equal(t, None, s.Successor(s.Max()))
	assert.Equal(t, None, s.Predecessor(s.Min()))

	assert.True(t, s.Contains(7))
	assert.True(t, s.Delete(7))
	assert.False(t, s.Contains(7))
	assert.False(t, s.Delete(7))
	assert.Equal(t, []int{1, 3, 5, 9}, s.Values())

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Values())
}

func TestDeleteKeepsUnrelatedHandles(t *testing.T) {
	s := newIntSet()
	for v := 0; v < 64; v++ {
		s.Insert(v)
	}
	rng := rand.New(rand.NewSource(3))
	alive := map[int]bool{}
	for v := 0; v < 64; v++ {
		alive[v] = true
	}
	for _, v := range rng.Perm(64)[:40] {
		// Only the successor of the deleted value may move to a new node.
		succ := -1
		if h := s.Successor(s.Find(v)); h != None {
			succ = s.Value(h)
		}
		handles := map[int]Handle{}
		for w := range alive {
			if w != v && w != succ {
				handles[w] = s.Find(w)
			}
		}

		require.True(t, s.Delete(v))
		delete(alive, v)
		for w, h := range handles {
			require.Equal(t, w, s.Value(h))
		}
		if succ >= 0 {
			assert.True(t, s.Contains(succ))
		}
		checkTree(t, s, s.root)
	}
	assert.Equal(t, 24, s.Len())
}

func TestRandomAgainstSortedSlice(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := newIntSet()
	model := map[int]bool{}
	for i := 0; i < 3000; i++ {
		v := rng.Intn(500)
		if rng.Intn(3) == 0 {
			assert.Equal(t, model[v], s.Delete(v))
			delete(model, v)
		} else {
			_, inserted := s.Insert(v)
			assert.Equal(t, !model[v], inserted)
			model[v] = true
		}
		if i%100 == 0 {
			checkTree(t, s, s.root)
		}
	}
	checkTree(t, s, s.root)

	var want []int
	for v := range model {
		want = append(want, v)
	}
	slices.Sort(want)
	assert.Equal(t, want, s.Values())
	assert.Equal(t, len(want), s.Len())

	// Walk backwards too.
	var back []int
	for h := s.Max(); h != None; h = s.Predecessor(h) {
		back = append(back, s.Value(h))
	}
	for i, j := 0, len(back)-1; i < j; i, j = i+1, j-1 {
		back[i], back[j] = back[j], back[i]
	}
	assert.Equal(t, want, back)
}

type pivotContext struct {
	pivot int
}

// Orders values by distance from a pivot that the test moves around.
func distanceCompare(ctx *pivotContext, a, b int) int {
	da, db := abs(a-ctx.pivot), abs(b-ctx.pivot)
	if da != db {
		return da - db
	}
	return a - b
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestComparatorContextIsReadLive(t *testing.T) {
	ctx := &pivotContext{pivot: 0}
	s := New(ctx, distanceCompare)
	s.Insert(10)
	s.Insert(20)
	assert.Equal(t, 10, s.Value(s.Min()))

	// Moving the pivot to a position that keeps the stored values in the
	// same relative order must still be honored by new queries.
	ctx.pivot = 14
	assert.Equal(t, 20, s.Value(s.LowerBound(19)))
	s.Reset()
	ctx.pivot = 30
	s.Insert(10)
	s.Insert(20)
	assert.Equal(t, 20, s.Value(s.Min()))
}
