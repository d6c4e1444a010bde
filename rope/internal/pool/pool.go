// Package pool provides a generic sync.Pool wrapper used to recycle rope
// branch nodes. Because the rope is persistent and a node can be shared
// by many historical versions at once (undo/redo, concurrent split
// results), a node can only be returned to the pool once nothing in the
// tree or its history references it; the rope package tracks that with a
// refcount and only calls Put once it hits zero. The pool itself exists
// to reduce allocator pressure on hot edit loops, not to enforce that
// invariant.
package pool

import "sync"

// Pool recycles values of type T. New is called to produce a fresh value
// when the pool is empty.
type Pool[T any] struct {
	New func() T
	p   sync.Pool
	one sync.Once
}

func (pl *Pool[T]) init() {
	pl.one.Do(func() {
		pl.p = sync.Pool{New: func() interface{} { return pl.New() }}
	})
}

// Get returns a recycled or freshly constructed value.
func (pl *Pool[T]) Get() T {
	pl.init()
	return pl.p.Get().(T)
}

// Put returns v to the pool for reuse. Callers are responsible for
// resetting any fields that must not leak between uses.
func (pl *Pool[T]) Put(v T) {
	pl.init()
	pl.p.Put(v)
}
