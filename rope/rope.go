// Package rope implements a generic, persistent (immutable, copy-on-write)
// rope: a balanced binary tree of leaves supporting O(log n) get, split,
// join, and range mutation, with branching undo/redo history and a
// lazily-rebuilt marker position cache.
//
// The leaf type is a type parameter rather than a runtime vtable — Go
// generics resolve Measure/Weight/optional-capability dispatch at compile
// time. See Leaf, Mergeable, BoundaryRewriter and EndsRewriter.
package rope

import (
	"github.com/clipperhouse/textrope/rope/internal/pool"
)

type undoEntry[T Leaf[T]] struct {
	root     *node[T]
	meta     any
	branches []*undoEntry[T]
}

// Rope is a handle onto a persistent tree of T. The handle itself is
// mutable (its root pointer advances on every edit); the tree nodes it
// points into are not.
type Rope[T Leaf[T]] struct {
	cfg    config
	root   *node[T] // nil means empty
	pool   pool.Pool[*node[T]]
	undo   []*undoEntry[T]
	redo   []*undoEntry[T]
	markers markerCache[T]
}

// New creates an empty Rope.
func New[T Leaf[T]](opts ...Option) *Rope[T] {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	r := &Rope[T]{cfg: cfg}
	r.pool.New = func() *node[T] { return new(node[T]) }
	return r
}

// Len returns the number of leaves in the rope.
func (r *Rope[T]) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.m.Count
}

// Measure returns the aggregate metrics of the whole rope.
func (r *Rope[T]) Measure() Metrics {
	if r.root == nil {
		return Metrics{}
	}
	return r.root.m
}

// Get returns the i-th leaf (0-indexed by leaf count), descending via
// each branch's left.Count.
func (r *Rope[T]) Get(i int) (T, bool) {
	var zero T
	if r.root == nil || i < 0 || i >= r.root.m.Count {
		return zero, false
	}
	n := r.root
	for !n.isLeaf() {
		if i < n.left.m.Count {
			n = n.left
		} else {
			i -= n.left.m.Count
			n = n.right
		}
	}
	return n.leaf, true
}

// WalkFunc is called for each leaf during a walk, with its 0-indexed
// position. Returning false stops the walk early.
type WalkFunc[T any] func(v T, index int) bool

// Walk performs an in-order traversal of every leaf from the start.
func (r *Rope[T]) Walk(f WalkFunc[T]) {
	r.WalkFrom(0, f)
}

// WalkFrom starts an in-order traversal at leaf index i.
func (r *Rope[T]) WalkFrom(i int, f WalkFunc[T]) {
	if r.root == nil || i < 0 {
		return
	}
	idx := i
	walkNode(r.root, i, &idx, f)
}

func walkNode[T Leaf[T]](n *node[T], skip int, idx *int, f WalkFunc[T]) bool {
	if n == nil {
		return true
	}
	if n.isLeaf() {
		if skip > 0 {
			return true
		}
		ok := f(n.leaf, *idx)
		*idx++
		return ok
	}
	leftCount := n.left.m.Count
	if skip >= leftCount {
		return walkNode(n.right, skip-leftCount, idx, f)
	}
	if !walkNode(n.left, skip, idx, f) {
		return false
	}
	return walkNode(n.right, 0, idx, f)
}

// setRoot replaces the live root, retaining the new one and releasing the
// old, keeping refcounts (and therefore pool recycling) correct.
func (r *Rope[T]) setRoot(n *node[T]) {
	retain(n)
	old := r.root
	r.root = n
	release(&r.pool, old)
	r.markers.invalidate()
}

func leavesOf[T Leaf[T]](n *node[T], out *[]T) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		*out = append(*out, n.leaf)
		return
	}
	leavesOf(n.left, out)
	leavesOf(n.right, out)
}

// Rebalance flattens the tree to its leaf sequence and rebuilds it by
// recursive halving, producing a tree of depth ceil(log2 n). Useful after
// pathological append sequences (e.g. streaming ingestion via AddLine)
// leave the tree skewed.
func (r *Rope[T]) Rebalance() {
	if r.root == nil || r.root.isLeaf() {
		return
	}
	var leaves []T
	leavesOf(r.root, &leaves)
	r.setRoot(buildBalanced(&r.pool, leaves))
}

func buildBalanced[T Leaf[T]](pl *pool.Pool[*node[T]], leaves []T) *node[T] {
	if len(leaves) == 0 {
		return nil
	}
	if len(leaves) == 1 {
		return newLeafNode(leaves[0])
	}
	mid := len(leaves) / 2
	left := buildBalanced(pl, leaves[:mid])
	right := buildBalanced(pl, leaves[mid:])
	return newBranchNode(pl, left, right)
}

// Depth returns the current tree depth (0 for an empty or single-leaf
// rope), mainly for diagnostics and tests of the rebalance invariant.
func (r *Rope[T]) Depth() int {
	if r.root == nil {
		return 0
	}
	return r.root.depth
}
