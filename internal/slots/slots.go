// Package slots implements the bucket table: a resizable array of arena
// indices, one per bucket, each the head of a singly linked chain
// through the node arena.
//
// The surface is deliberately narrow: Get/Set/Len/Zero and nothing else. A
// bucket table is never sorted, searched, or iterated by anything but
// the set's own chain walks, so it carries no general-purpose slice
// machinery.
package slots

import "github.com/thebagchi/stripeset/internal/arena"

// Table does not synchronize its own access. The resize barrier holds
// every stripe lock while swapping a whole Table for a bigger one; any
// other read or write of a single slot is already serialized by the
// stripe lock that owns that slot's bucket (stripe = bucket mod L).
type Table struct {
	data []arena.Index
}

// New returns a Table with n buckets, all empty (arena.Nil).
func New(n uint64) *Table {
	return &Table{data: make([]arena.Index, n)}
}

// Len returns the bucket count.
func (t *Table) Len() uint64 { return uint64(len(t.data)) }

// Get returns the chain head stored at bucket b.
func (t *Table) Get(b uint64) arena.Index { return t.data[b] }

// Set overwrites the chain head stored at bucket b.
func (t *Table) Set(b uint64, i arena.Index) { t.data[b] = i }

// Zero resets every bucket to arena.Nil in place, retaining capacity —
// the slot-table half of Set.Clear.
func (t *Table) Zero() {
	for i := range t.data {
		t.data[i] = arena.Nil
	}
}
