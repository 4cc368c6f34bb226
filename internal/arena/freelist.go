package arena

// Freelist manages the per-stripe LIFO stacks of freed node indices,
// threaded through each node's Next field and rooted at arena indices
// [0, stripes) — each stripe's freelist head occupies its own reserved
// slot at the front of the arena.
//
// Partitioning the free stacks per stripe keeps allocation and free
// traffic local to whichever stripe lock a caller already holds, so
// recycling a node never needs a second lock.
type Freelist[E any] struct {
	arena *Arena[E]
}

// NewFreelist returns a Freelist operating over a's reserved head slots.
func NewFreelist[E any](a *Arena[E]) *Freelist[E] {
	return &Freelist[E]{arena: a}
}

// Pop removes and returns a free index from stripe s's list, or reports
// false if that stripe currently has nothing to recycle — the caller
// should Bump a fresh node instead.
func (f *Freelist[E]) Pop(s int32) (Index, bool) {
	head := f.arena.Get(Index(s))
	if head.Next == Nil {
		return Nil, false
	}
	i := head.Next
	freed := f.arena.Get(i)
	f.arena.SetNext(Index(s), freed.Next)
	return i, true
}

// Push returns index i to stripe s's free list and clears its hash,
// marking the slot unused (hash 0 otherwise only ever occurs on a
// node that's never been written).
func (f *Freelist[E]) Push(s int32, i Index) {
	head := f.arena.Get(Index(s))
	f.arena.Set(i, Node[E]{Hash: 0, Next: head.Next})
	f.arena.SetNext(Index(s), i)
}

// Reset empties every stripe's free list. Used by Set.Clear; it does not
// by itself reclaim nodes still reachable from bucket chains — the
// caller is expected to have already abandoned those (Set.Clear does so
// by resetting the arena's bump pointer in the same operation).
func (f *Freelist[E]) Reset(stripes int32) {
	for s := int32(0); s < stripes; s++ {
		f.arena.SetNext(Index(s), Nil)
	}
}
