package stripeset

import "github.com/pkg/errors"

// ErrOutOfCapacity is returned by Add when the fixed bucket-size prime
// progression is exhausted and the load factor is still exceeded.
var ErrOutOfCapacity = errors.New("stripeset: bucket-size progression exhausted")

// ErrConcurrentAccessViolation is returned by Contains, Clear, Iter,
// Snapshot, and ChainStats when a concurrent mutation was observed
// mid-scan. Those operations are documented single-threaded-contract
// only; this error is a best-effort debugging aid, not a correctness
// guarantee the core can fully enforce.
var ErrConcurrentAccessViolation = errors.New("stripeset: concurrent mutation observed during a single-threaded-contract operation")
