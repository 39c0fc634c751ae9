// Package lazy provides a single-initialization holder for immutable values.
//
// Search index tables are expensive to build and are only needed for the
// direction actually searched, so they are constructed lazily on first use.
// The holder guarantees exactly one initialization no matter how many
// goroutines race on first access, and establishes a happens-before edge on
// the published value, so the value may be deeply immutable without any
// further synchronization.
package lazy

import (
	"sync"
	"sync/atomic"
)

// Lazy holds a value of type T created at most once by a factory function.
//
// The zero Lazy is not usable; construct with New.
//
// Example:
//
//	tables := lazy.New(func() *shiftTable { return buildTable(pattern) })
//	t := tables.Get() // built on first call, cached afterwards
type Lazy[T any] struct {
	once    sync.Once
	created atomic.Bool
	factory func() T
	value   T
}

// New constructs a Lazy holder around the given factory.
// The factory is invoked at most once, on the first call to Get.
func New[T any](factory func() T) *Lazy[T] {
	return &Lazy[T]{factory: factory}
}

// Get returns the held value, creating it on first call.
// Safe for concurrent use; all callers observe the same fully
// constructed value.
func (l *Lazy[T]) Get() T {
	l.once.Do(func() {
		l.value = l.factory()
		l.factory = nil
		l.created.Store(true)
	})
	return l.value
}

// Created reports whether the value has been built yet, without
// triggering creation. Intended for diagnostics such as String methods.
func (l *Lazy[T]) Created() bool {
	return l.created.Load()
}
