package slots

import (
	"testing"

	"github.com/thebagchi/stripeset/internal/arena"
)

func TestNewIsAllEmpty(t *testing.T) {
	tbl := New(16)
	if tbl.Len() != 16 {
		t.Fatalf("Len = %d, want 16", tbl.Len())
	}
	for b := uint64(0); b < tbl.Len(); b++ {
		if tbl.Get(b) != arena.Nil {
			t.Fatalf("bucket %d not empty on construction", b)
		}
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	tbl := New(8)
	tbl.Set(3, arena.Index(42))
	if got := tbl.Get(3); got != 42 {
		t.Fatalf("Get(3) = %d, want 42", got)
	}
}

func TestZeroClearsEveryBucket(t *testing.T) {
	tbl := New(8)
	for b := uint64(0); b < tbl.Len(); b++ {
		tbl.Set(b, arena.Index(b+1))
	}
	tbl.Zero()
	for b := uint64(0); b < tbl.Len(); b++ {
		if tbl.Get(b) != arena.Nil {
			t.Fatalf("bucket %d not cleared by Zero", b)
		}
	}
}
