package stripeset

import (
	"iter"

	"github.com/thebagchi/stripeset/internal/arena"
)

// Iter is a pull-based iterator over a set's current elements.
// Single-threaded contract: must not run concurrently with a mutation. Next returns
// (zero, false) once exhausted, or as soon as a concurrent mutation is
// observed mid-scan — call Err afterward to tell the two apart.
type Iter[E any] struct {
	set       *Set[E]
	index     int32
	genBefore uint64
	violated  bool
}

// Iter returns a new Iter positioned before the first element.
func (s *Set[E]) Iter() *Iter[E] {
	return &Iter[E]{set: s, index: s.locks.Len(), genBefore: s.generation.Load()}
}

// Next advances the iterator, returning the next element and true, or
// the zero value and false once exhausted or a violation is detected.
func (it *Iter[E]) Next() (E, bool) {
	var zero E
	if it.violated {
		return zero, false
	}
	s := it.set
	if s.signalResize.Load() {
		it.violated = true
		return zero, false
	}

	np := s.arena.NodePointer()
	for it.index < np {
		node := s.arena.Get(arena.Index(it.index))
		it.index++
		if node.Hash == 0 {
			continue
		}
		if s.generation.Load() != it.genBefore || s.signalResize.Load() {
			it.violated = true
			return zero, false
		}
		return node.Data, true
	}

	if s.generation.Load() != it.genBefore || s.signalResize.Load() {
		it.violated = true
	}
	return zero, false
}

// Err reports ErrConcurrentAccessViolation if Next ever observed a
// mutation mid-scan, nil otherwise.
func (it *Iter[E]) Err() error {
	if it.violated {
		return ErrConcurrentAccessViolation
	}
	return nil
}

// All returns a Go 1.23 iter.Seq over the set's current elements. Like
// Iter, it carries the single-threaded contract; unlike Iter it has no
// way to surface a mid-scan violation, so prefer Iter when that matters.
func (s *Set[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		it := s.Iter()
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Snapshot materializes every current element into a plain slice. The
// returned slice is heap-owned and independent of the set. A plain
// slice rather than a map: two distinct elements can share a
// normalized hash under collision, and a hash-keyed map would silently
// collapse them.
func (s *Set[E]) Snapshot() ([]E, error) {
	it := s.Iter()
	out := make([]E, 0, s.Count())
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	return out, it.Err()
}

// Stats is a point-in-time, best-effort view of a set's size and
// structure.
type Stats struct {
	Count       int64
	Slots       uint64
	Stripes     int32
	Resizes     int64
	MaxChainLen int // only populated by ChainStats
}

// Stats returns counters that are safe to read without the
// single-threaded contract: Count, Slots, Stripes, and Resizes are all
// maintained with atomics and are eventually consistent under concurrent
// mutation.
func (s *Set[E]) Stats() Stats {
	tbl := s.tbl.Load()
	return Stats{
		Count:   s.Count(),
		Slots:   tbl.Len(),
		Stripes: s.locks.Len(),
		Resizes: s.resizeN.Load(),
	}
}

// ChainStats augments Stats with MaxChainLen, which requires a full scan
// of the bucket table and therefore carries the same single-threaded
// contract as Contains, Clear, and Iter.
func (s *Set[E]) ChainStats() (Stats, error) {
	st := s.Stats()

	genBefore := s.generation.Load()
	if s.signalResize.Load() {
		return st, ErrConcurrentAccessViolation
	}

	tbl := s.tbl.Load()
	max := 0
	for b := uint64(0); b < tbl.Len(); b++ {
		n := 0
		for cur := tbl.Get(b); cur != arena.Nil; {
			node := s.arena.Get(cur)
			n++
			cur = node.Next
		}
		if n > max {
			max = n
		}
	}
	st.MaxChainLen = max

	if s.generation.Load() != genBefore || s.signalResize.Load() {
		return st, ErrConcurrentAccessViolation
	}
	return st, nil
}
