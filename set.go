package stripeset

import (
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/thebagchi/stripeset/internal/arena"
	"github.com/thebagchi/stripeset/internal/slots"
	"github.com/thebagchi/stripeset/internal/stripe"
)

// Set is a concurrent set of values of type E.
type Set[E any] struct {
	hasher  Hasher[E]
	equaler Equaler[E]
	log     *zap.Logger

	// progression is the bucket-count sequence the resize barrier grows
	// through: internal/primes.Progression unless overridden via
	// WithProgression.
	progression []uint64

	arena *arena.Arena[E]
	free  *arena.Freelist[E]
	locks *stripe.Locks

	// tbl is swapped only by the resize barrier, which holds every
	// stripe lock while doing so. Mutators load it once per attempt and
	// re-validate after taking their stripe lock (see resize.go).
	tbl atomic.Pointer[slots.Table]

	signalResize atomic.Bool
	generation   atomic.Uint64
	resizeMu     sync.Mutex // coordinator lock

	freeCount atomic.Int64
	resizeN   atomic.Int64
}

// New constructs an empty Set using hasher and equaler as E's hash and
// equality capabilities.
func New[E any](hasher Hasher[E], equaler Equaler[E], opts ...Option) *Set[E] {
	o := newOptions(opts)
	n := o.firstSlots()
	a := arena.New[E](o.stripes, int32(n)+o.stripes)
	s := &Set[E]{
		hasher:      hasher,
		equaler:     equaler,
		log:         o.logger,
		progression: o.progression,
		arena:       a,
		free:        arena.NewFreelist(a),
		locks:       stripe.New(o.stripes),
	}
	s.tbl.Store(slots.New(n))
	return s
}

// Add inserts item, returning true if it was inserted and false if an
// equal element was already present.
func (s *Set[E]) Add(item E) (bool, error) {
	h := normalize(s.hasher.Hash(item))

	if err := s.maybeGrow(); err != nil {
		return false, err
	}

	for {
		if s.signalResize.Load() {
			backoff()
			continue
		}
		tbl := s.tbl.Load()
		bucket := stripe.Bucket(h, tbl.Len())
		st := stripe.Of(bucket, s.locks.Len())

		s.locks.Lock(st)
		if s.signalResize.Load() || s.tbl.Load() != tbl {
			s.locks.Unlock(st)
			backoff()
			continue
		}

		head := tbl.Get(bucket)
		for cur := head; cur != arena.Nil; {
			node := s.arena.Get(cur)
			if node.Hash == h && s.equaler.Equal(node.Data, item) {
				s.locks.Unlock(st)
				return false, nil
			}
			cur = node.Next
		}

		idx, reused := s.free.Pop(st)
		if !reused {
			idx = s.arena.Bump()
		} else {
			s.freeCount.Add(-1)
		}
		s.arena.Set(idx, arena.Node[E]{Hash: h, Next: head, Data: item})
		tbl.Set(bucket, idx)

		s.locks.Unlock(st)
		return true, nil
	}
}

// Remove deletes item, returning true if it was present.
func (s *Set[E]) Remove(item E) bool {
	h := normalize(s.hasher.Hash(item))

	for {
		if s.signalResize.Load() {
			backoff()
			continue
		}
		tbl := s.tbl.Load()
		bucket := stripe.Bucket(h, tbl.Len())
		st := stripe.Of(bucket, s.locks.Len())

		s.locks.Lock(st)
		if s.signalResize.Load() || s.tbl.Load() != tbl {
			s.locks.Unlock(st)
			backoff()
			continue
		}

		head := tbl.Get(bucket)
		if head == arena.Nil {
			s.locks.Unlock(st)
			return false
		}

		headNode := s.arena.Get(head)
		if headNode.Hash == h && s.equaler.Equal(headNode.Data, item) {
			// Splice the successor's payload into head and free the
			// now-orphaned successor node. Avoids a slot-table write
			// whenever the chain has >= 2 elements.
			if headNode.Next == arena.Nil {
				tbl.Set(bucket, arena.Nil)
				s.free.Push(st, head)
			} else {
				succ := s.arena.Get(headNode.Next)
				s.arena.Set(head, arena.Node[E]{Hash: succ.Hash, Next: succ.Next, Data: succ.Data})
				s.free.Push(st, headNode.Next)
			}
			s.freeCount.Add(1)
			s.locks.Unlock(st)
			return true
		}

		prev := head
		for cur := headNode.Next; cur != arena.Nil; {
			node := s.arena.Get(cur)
			if node.Hash == h && s.equaler.Equal(node.Data, item) {
				s.arena.SetNext(prev, node.Next)
				s.free.Push(st, cur)
				s.freeCount.Add(1)
				s.locks.Unlock(st)
				return true
			}
			prev = cur
			cur = node.Next
		}

		s.locks.Unlock(st)
		return false
	}
}

// Contains reports whether item is present. Single-threaded contract:
// the caller guarantees no concurrent Add/Remove/Clear is in flight. No
// stripe lock is taken on the hot path; a mismatch against the generation
// counter sampled before and after the scan is reported as
// ErrConcurrentAccessViolation rather than returning an unspecified
// result.
func (s *Set[E]) Contains(item E) (bool, error) {
	genBefore := s.generation.Load()
	if s.signalResize.Load() {
		return false, ErrConcurrentAccessViolation
	}

	h := normalize(s.hasher.Hash(item))
	tbl := s.tbl.Load()
	bucket := stripe.Bucket(h, tbl.Len())

	found := false
	for cur := tbl.Get(bucket); cur != arena.Nil; {
		node := s.arena.Get(cur)
		if node.Hash == h && s.equaler.Equal(node.Data, item) {
			found = true
			break
		}
		cur = node.Next
	}

	if s.generation.Load() != genBefore || s.signalResize.Load() {
		return false, ErrConcurrentAccessViolation
	}
	return found, nil
}

// Count derives the live element count from the arena's bump cursor
// minus the reserved head slots minus the freed-but-not-reused slots,
// rather than tracking a separate counter: exact when quiescent,
// best-effort while a mutation is in flight.
func (s *Set[E]) Count() int64 {
	np := int64(s.arena.NodePointer())
	heads := int64(s.locks.Len())
	return np - heads - s.freeCount.Load()
}

// Clear resets the set's logical contents while retaining physical
// arena and slot-table capacity. Single-threaded contract, like
// Contains.
func (s *Set[E]) Clear() error {
	genBefore := s.generation.Load()
	if s.signalResize.Load() {
		return ErrConcurrentAccessViolation
	}

	s.arena.ResetBump()
	s.free.Reset(s.locks.Len())
	s.tbl.Load().Zero()
	s.freeCount.Store(0)

	if s.generation.Load() != genBefore || s.signalResize.Load() {
		return ErrConcurrentAccessViolation
	}
	return nil
}

func backoff() {
	runtime.Gosched()
}
