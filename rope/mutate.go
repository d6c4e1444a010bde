package rope

// boundaryEdit resolves what should happen at the seam between two
// leaves that just became adjacent, preferring a leaf's own
// BoundaryRewriter if it declares one and falling back to Mergeable
// (CanMerge/Merge) coalescing otherwise.
func boundaryEdit[T Leaf[T]](before, after T) (BoundaryEdit[T], bool) {
	if br, ok := any(before).(BoundaryRewriter[T]); ok {
		return br.RewriteBoundary(before, after), true
	}
	if m, ok := any(before).(Mergeable[T]); ok && m.CanMerge(after) {
		return BoundaryEdit[T]{
			DeleteLeft:    true,
			DeleteRight:   true,
			InsertBetween: []T{m.Merge(after)},
		}, true
	}
	return BoundaryEdit[T]{}, false
}

// applyBoundaryAt resolves and applies the boundary hook at the seam
// between leaf i-1 and leaf i, a no-op if either side is out of range or
// the leaf type declares no hook.
func (r *Rope[T]) applyBoundaryAt(i int) {
	if i <= 0 || i >= r.Len() {
		return
	}
	before, _ := r.Get(i - 1)
	after, _ := r.Get(i)
	edit, ok := boundaryEdit[T](before, after)
	if !ok || (!edit.DeleteLeft && !edit.DeleteRight && len(edit.InsertBetween) == 0) {
		return
	}

	left, rest := r.SplitAt(i - 1)
	_, rest2 := rest.SplitAt(1)
	_, tail := rest2.SplitAt(1)

	var parts []T
	if !edit.DeleteLeft {
		parts = append(parts, before)
	}
	parts = append(parts, edit.InsertBetween...)
	if !edit.DeleteRight {
		parts = append(parts, after)
	}

	replacement := fromNode[T](r.cfg, buildBalanced(&r.pool, parts))
	combined := JoinBalanced(JoinBalanced(left, replacement), tail)
	r.setRoot(combined.root)
}

// applyEnds resolves and applies the leaf type's start/end invariant, if
// it declares one via EndsRewriter.
func (r *Rope[T]) applyEnds() {
	if r.Len() == 0 {
		return
	}
	first, _ := r.Get(0)
	er, ok := any(first).(EndsRewriter[T])
	if !ok {
		return
	}
	last, _ := r.Get(r.Len() - 1)
	edit := er.RewriteEnds(first, last)

	if len(edit.ReplaceFirst) > 0 {
		_, rest := r.SplitAt(1)
		repl := fromNode[T](r.cfg, buildBalanced(&r.pool, edit.ReplaceFirst))
		combined := JoinBalanced(repl, rest)
		r.setRoot(combined.root)
	}
	if len(edit.ReplaceLast) > 0 {
		n := r.Len()
		left, _ := r.SplitAt(n - 1)
		repl := fromNode[T](r.cfg, buildBalanced(&r.pool, edit.ReplaceLast))
		combined := JoinBalanced(left, repl)
		r.setRoot(combined.root)
	}
}

// InsertSlice inserts items before leaf index i (i may equal Len() to
// append). Boundary hooks fire at both new seams, then the whole-tree
// ends invariant is (re)enforced.
func (r *Rope[T]) InsertSlice(i int, items []T) {
	if len(items) == 0 {
		return
	}
	left, right := r.SplitAt(i)
	mid := fromNode[T](r.cfg, buildBalanced(&r.pool, items))
	combined := JoinBalanced(JoinBalanced(left, mid), right)
	r.setRoot(combined.root)

	r.applyBoundaryAt(i)
	r.applyBoundaryAt(i + len(items))
	r.applyEnds()
}

// Insert inserts a single leaf before index i.
func (r *Rope[T]) Insert(i int, x T) {
	r.InsertSlice(i, []T{x})
}

// DeleteRange removes leaves [l, rEnd).
func (r *Rope[T]) DeleteRange(l, rEnd int) {
	if rEnd <= l {
		return
	}
	left, rest := r.SplitAt(l)
	_, tail := rest.SplitAt(rEnd - l)
	combined := JoinBalanced(left, tail)
	r.setRoot(combined.root)

	r.applyBoundaryAt(l)
	r.applyEnds()
}

// Delete removes the leaf at index i.
func (r *Rope[T]) Delete(i int) {
	r.DeleteRange(i, i+1)
}

// Replace substitutes the leaf at index i with x.
func (r *Rope[T]) Replace(i int, x T) {
	r.DeleteRange(i, i+1)
	r.InsertSlice(i, []T{x})
}

// InsertSliceByWeight is InsertSlice expressed in weight units (e.g.
// display columns) rather than leaf count, the shape the edit façade
// needs to insert at a cursor's visual position. splitLeaf bisects a
// leaf if the cut lands inside one.
func (r *Rope[T]) InsertSliceByWeight(w int, items []T, splitLeaf SplitLeafFunc[T]) {
	left, right := r.SplitAtWeight(w, splitLeaf)
	mid := fromNode[T](r.cfg, buildBalanced(&r.pool, items))
	combined := JoinBalanced(JoinBalanced(left, mid), right)
	r.setRoot(combined.root)

	seam := left.Len()
	r.applyBoundaryAt(seam)
	r.applyBoundaryAt(seam + len(items))
	r.applyEnds()
}

// DeleteRangeByWeight is DeleteRange expressed in weight units.
func (r *Rope[T]) DeleteRangeByWeight(wStart, wEnd int, splitLeaf SplitLeafFunc[T]) {
	if wEnd <= wStart {
		return
	}
	left, rest := r.SplitAtWeight(wStart, splitLeaf)
	_, tail := rest.SplitAtWeight(wEnd-wStart, splitLeaf)
	combined := JoinBalanced(left, tail)
	r.setRoot(combined.root)

	r.applyBoundaryAt(left.Len())
	r.applyEnds()
}
