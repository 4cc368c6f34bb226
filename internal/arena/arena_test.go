package arena

import (
	"sync"
	"testing"
)

func TestBumpAllocatesDistinctGrowingIndices(t *testing.T) {
	a := New[int](4, 8)
	seen := map[Index]bool{}
	for i := 0; i < 100; i++ {
		idx := a.Bump()
		if idx < Index(a.Heads()) {
			t.Fatalf("Bump returned %d, which is within the reserved head range [0, %d)", idx, a.Heads())
		}
		if seen[idx] {
			t.Fatalf("Bump returned duplicate index %d", idx)
		}
		seen[idx] = true
	}
	if a.NodePointer() != 104 {
		t.Fatalf("NodePointer = %d, want 104", a.NodePointer())
	}
}

func TestBumpConcurrentIsRaceFree(t *testing.T) {
	a := New[int](4, 2)
	const n = 2000
	var wg sync.WaitGroup
	idxCh := make(chan Index, n)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < n/8; i++ {
				idxCh <- a.Bump()
			}
		}()
	}
	wg.Wait()
	close(idxCh)

	seen := map[Index]bool{}
	for idx := range idxCh {
		if seen[idx] {
			t.Fatalf("duplicate bump index %d under concurrency", idx)
		}
		seen[idx] = true
	}
	if len(seen) != n {
		t.Fatalf("got %d distinct indices, want %d", len(seen), n)
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	a := New[string](2, 4)
	i := a.Bump()
	a.Set(i, Node[string]{Hash: 7, Next: Nil, Data: "hello"})
	got := a.Get(i)
	if got.Hash != 7 || got.Data != "hello" || got.Next != Nil {
		t.Fatalf("Get returned %+v", got)
	}
}

func TestSetNextOnlyTouchesLink(t *testing.T) {
	a := New[string](2, 4)
	i := a.Bump()
	a.Set(i, Node[string]{Hash: 9, Next: Nil, Data: "x"})
	a.SetNext(i, Index(41))
	got := a.Get(i)
	if got.Next != 41 || got.Hash != 9 || got.Data != "x" {
		t.Fatalf("SetNext mutated more than Next: %+v", got)
	}
}

func TestResetBumpReturnsToHeads(t *testing.T) {
	a := New[int](3, 8)
	a.Bump()
	a.Bump()
	a.ResetBump()
	if a.NodePointer() != 3 {
		t.Fatalf("NodePointer after ResetBump = %d, want 3", a.NodePointer())
	}
}

func TestGrowPreservesExistingData(t *testing.T) {
	a := New[int](1, 2)
	i := a.Bump()
	a.Set(i, Node[int]{Hash: 5, Data: 99})
	a.Grow(1000)
	got := a.Get(i)
	if got.Hash != 5 || got.Data != 99 {
		t.Fatalf("data lost across Grow: %+v", got)
	}
	if Index(a.NodePointer()) != i+1 {
		t.Fatalf("Grow must not move the bump pointer")
	}
}

func TestFreelistPushPopOrderIsLIFO(t *testing.T) {
	a := New[int](2, 8)
	fl := NewFreelist(a)

	i1 := a.Bump()
	i2 := a.Bump()
	a.Set(i1, Node[int]{Hash: 1, Data: 1})
	a.Set(i2, Node[int]{Hash: 2, Data: 2})

	fl.Push(0, i1)
	fl.Push(0, i2)

	got, ok := fl.Pop(0)
	if !ok || got != i2 {
		t.Fatalf("Pop = (%d, %v), want (%d, true)", got, ok, i2)
	}
	got, ok = fl.Pop(0)
	if !ok || got != i1 {
		t.Fatalf("Pop = (%d, %v), want (%d, true)", got, ok, i1)
	}
	if _, ok := fl.Pop(0); ok {
		t.Fatal("Pop on an empty freelist should report false")
	}
}

func TestFreelistPushClearsHash(t *testing.T) {
	a := New[int](1, 4)
	fl := NewFreelist(a)
	i := a.Bump()
	a.Set(i, Node[int]{Hash: 123, Data: 7})
	fl.Push(0, i)
	if got := a.Get(i).Hash; got != 0 {
		t.Fatalf("freed node hash = %d, want 0", got)
	}
}

func TestFreelistResetEmptiesAllStripes(t *testing.T) {
	a := New[int](3, 8)
	fl := NewFreelist(a)
	for s := int32(0); s < 3; s++ {
		i := a.Bump()
		fl.Push(s, i)
	}
	fl.Reset(3)
	for s := int32(0); s < 3; s++ {
		if _, ok := fl.Pop(s); ok {
			t.Fatalf("stripe %d freelist not emptied by Reset", s)
		}
	}
}
