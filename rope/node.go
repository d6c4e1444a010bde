package rope

import (
	"sync/atomic"

	"github.com/clipperhouse/textrope/rope/internal/pool"
)

// node is a rope tree node: either a leaf holding a T, or a branch with
// two children. Nodes are immutable once published; a tree mutation
// always produces new nodes along the path to the change and reuses
// untouched subtrees verbatim (structural sharing).
//
// refs tracks how many live places reference this node: another node's
// child pointer, a Rope's root, or an undo/redo history entry. It only
// ever changes under retain/release, which keep recycling safe even
// though the same node may be shared across many historical versions at
// once.
type node[T Leaf[T]] struct {
	leaf        T
	left, right *node[T]
	m           Metrics
	depth       int
	refs        int32
}

func (n *node[T]) isLeaf() bool {
	return n.left == nil && n.right == nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// poolT is a shorthand for this package's node pool type, specialized to
// a leaf type T.
type poolT[T Leaf[T]] = pool.Pool[*node[T]]

func newLeafNode[T Leaf[T]](v T) *node[T] {
	return &node[T]{leaf: v, m: v.Measure(), refs: 1}
}

func newBranchNode[T Leaf[T]](pl *poolT[T], l, r *node[T]) *node[T] {
	n := pl.Get()
	*n = node[T]{
		left:  l,
		right: r,
		m:     l.m.Add(r.m),
		depth: 1 + maxInt(l.depth, r.depth),
		refs:  1,
	}
	retain(l)
	retain(r)
	return n
}

func retain[T Leaf[T]](n *node[T]) {
	if n == nil {
		return
	}
	atomic.AddInt32(&n.refs, 1)
}

func release[T Leaf[T]](pl *poolT[T], n *node[T]) {
	if n == nil {
		return
	}
	if atomic.AddInt32(&n.refs, -1) != 0 {
		return
	}
	if !n.isLeaf() {
		release(pl, n.left)
		release(pl, n.right)
		n.left, n.right = nil, nil
		pl.Put(n)
	}
}
