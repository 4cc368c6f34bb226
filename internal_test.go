package stripeset

import (
	"testing"

	"github.com/thebagchi/stripeset/internal/primes"
)

// TestGrowNoOpWhenLoadFactorNotExceeded exercises the resize barrier's
// step-4 recheck directly: a coordinator that wins the race but finds
// the predicate no longer holds must release everything and return nil
// without touching the progression at all.
func TestGrowNoOpWhenLoadFactorNotExceeded(t *testing.T) {
	s := New[int](NewSeededHasher[int](), ComparableEqualer[int]{}, WithStripes(4))

	before := s.tbl.Load()
	if err := s.grow(); err != nil {
		t.Fatalf("grow() on an empty set returned %v, want nil", err)
	}
	if s.tbl.Load() != before {
		t.Fatal("grow() must not replace the slot table when the load factor isn't exceeded")
	}
	if s.resizeN.Load() != 0 {
		t.Fatalf("resizeN = %d, want 0", s.resizeN.Load())
	}
}

// Exhausting the real default progression (its last entry is ~2.1
// billion buckets) is not practically reachable in a unit test; see
// internal/primes/primes_test.go's TestNextExhausted for that lookup's
// own exhaustion behavior in isolation, and
// TestAddReturnsOutOfCapacityOnceCustomProgressionExhausted in
// set_test.go for grow() actually returning ErrOutOfCapacity end to
// end against a small custom progression supplied via WithProgression.
var _ = primes.Progression
