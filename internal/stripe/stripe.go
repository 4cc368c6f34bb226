// Package stripe implements lock striping over the bucket table: a
// fixed-size array of mutexes, one per stripe, plus the routing math
// that maps a normalized hash to a bucket and a bucket to its owning
// stripe.
package stripe

import "sync"

// Locks is the fixed-size array of stripe mutexes. The count L is set
// at construction and fixed for the lifetime of a set; only the bucket
// count (and therefore which buckets a given stripe owns) changes
// across resizes.
type Locks struct {
	mu []sync.Mutex
}

// New returns a Locks with n stripes.
func New(n int32) *Locks {
	return &Locks{mu: make([]sync.Mutex, n)}
}

// Len returns the fixed stripe count L.
func (l *Locks) Len() int32 { return int32(len(l.mu)) }

// Lock acquires stripe s's mutex.
func (l *Locks) Lock(s int32) { l.mu[s].Lock() }

// Unlock releases stripe s's mutex.
func (l *Locks) Unlock(s int32) { l.mu[s].Unlock() }

// Bucket maps a normalized hash to a bucket index under the current slot
// count.
func Bucket(hash uint32, slotsLen uint64) uint64 {
	return uint64(hash) % slotsLen
}

// Of returns the stripe that owns bucket b, given the fixed stripe count
// n. Because slotsLen varies across resizes, stripe is NOT resize
// invariant for a given hash — callers must recompute Bucket and Of
// together after (re-)acquiring a lock, never cache the pair across a
// resize boundary.
func Of(bucket uint64, n int32) int32 {
	return int32(bucket % uint64(n))
}
