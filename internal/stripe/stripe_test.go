package stripe

import "testing"

func TestBucket(t *testing.T) {
	if b := Bucket(42, 16); b != 10 {
		t.Fatalf("Bucket(42, 16) = %d, want 10", b)
	}
}

func TestOf(t *testing.T) {
	if s := Of(10, 4); s != 2 {
		t.Fatalf("Of(10, 4) = %d, want 2", s)
	}
}

func TestLockUnlockDoesNotDeadlock(t *testing.T) {
	l := New(4)
	l.Lock(0)
	l.Lock(1)
	l.Unlock(1)
	l.Unlock(0)
}

func TestLenMatchesConstruction(t *testing.T) {
	l := New(997)
	if l.Len() != 997 {
		t.Fatalf("Len() = %d, want 997", l.Len())
	}
}
