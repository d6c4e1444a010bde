package rope

// StoreUndo captures the rope's current root, tagged with meta describing
// the edit about to happen, onto the undo list. Call it before mutating,
// not after. If a redo chain exists (from a prior Undo not yet
// superseded), it is stashed into this entry's branches field instead of
// being discarded, so redo history survives as a tree rather than a
// linear list — see Undo/Redo's interaction with meta.
func (r *Rope[T]) StoreUndo(meta any) {
	retain(r.root)
	entry := &undoEntry[T]{root: r.root, meta: meta}
	if len(r.redo) > 0 {
		entry.branches = r.redo
		r.redo = nil
	}
	r.undo = append(r.undo, entry)
	if r.cfg.maxUndoDepth > 0 && len(r.undo) > r.cfg.maxUndoDepth {
		drop := r.undo[0]
		r.undo = r.undo[1:]
		r.releaseEntry(drop)
	}
}

func (r *Rope[T]) releaseEntry(e *undoEntry[T]) {
	release(&r.pool, e.root)
	for _, b := range e.branches {
		r.releaseEntry(b)
	}
}

// Undo restores the most recently stored root, pushing the current root
// onto the redo stack, and returns the meta that was stored alongside it.
// It returns ok=false if there is nothing to undo.
func (r *Rope[T]) Undo() (meta any, ok bool) {
	if len(r.undo) == 0 {
		return nil, false
	}
	entry := r.undo[len(r.undo)-1]
	r.undo = r.undo[:len(r.undo)-1]

	retain(r.root)
	r.redo = append(r.redo, &undoEntry[T]{root: r.root, meta: entry.meta})

	r.setRoot(entry.root)
	release(&r.pool, entry.root)
	return entry.meta, true
}

// Redo re-applies the most recently undone edit. It only ever operates on
// the top of the live redo stack: once a new edit is stored via
// StoreUndo, that stack is cleared (its contents preserved only inside
// the new undo entry's branches field), so Redo correctly fails rather
// than silently replaying a now-divergent future.
func (r *Rope[T]) Redo() (meta any, ok bool) {
	if len(r.redo) == 0 {
		return nil, false
	}
	entry := r.redo[len(r.redo)-1]
	r.redo = r.redo[:len(r.redo)-1]

	retain(r.root)
	r.undo = append(r.undo, &undoEntry[T]{root: r.root, meta: entry.meta})

	r.setRoot(entry.root)
	release(&r.pool, entry.root)
	return entry.meta, true
}

// CanUndo reports whether Undo would succeed.
func (r *Rope[T]) CanUndo() bool { return len(r.undo) > 0 }

// CanRedo reports whether Redo would succeed.
func (r *Rope[T]) CanRedo() bool { return len(r.redo) > 0 }
