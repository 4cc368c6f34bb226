// Package stripeset implements a concurrent set of values as a bucketed
// open-hashing table over a contiguous arena of link nodes, protected by
// lock striping: a bounded number of stripe locks, each guarding the
// chains of every bucket that hashes to it and that stripe's own
// freelist.
//
// Add and Remove may be called from any number of goroutines
// concurrently. Contains, Clear, Iter/All, Snapshot and ChainStats
// carry a single-threaded contract: they must not run concurrently
// with a mutation in flight. Stats reads only atomics and may be called
// at any time.
package stripeset
