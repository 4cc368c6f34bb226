package stripeset

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/thebagchi/stripeset/internal/arena"
	"github.com/thebagchi/stripeset/internal/primes"
	"github.com/thebagchi/stripeset/internal/slots"
	"github.com/thebagchi/stripeset/internal/stripe"
)

// nextSlots returns the next bucket count after cur in this set's
// progression: the custom sequence passed to WithProgression if one was
// given at construction, otherwise the package's built-in fixed primes.
func (s *Set[E]) nextSlots(cur uint64) (uint64, bool) {
	if s.progression != nil {
		return primes.NextIn(s.progression, cur)
	}
	return primes.Next(cur)
}

// maybeGrow is checked at the top of Add: if the load factor exceeds
// 0.7, it runs the resize barrier.
func (s *Set[E]) maybeGrow() error {
	tbl := s.tbl.Load()
	if 10*s.Count() <= 7*int64(tbl.Len()) {
		return nil
	}
	return s.grow()
}

// grow is the resize barrier: a grow-only rehash under exclusive
// access, coordinated by signalResize and a dedicated coordinator lock.
func (s *Set[E]) grow() error {
	// 1. Publish the resize with release semantics.
	s.signalResize.Store(true)

	// 2. Acquire the coordinator lock.
	s.resizeMu.Lock()
	defer s.resizeMu.Unlock()

	if !s.signalResize.Load() {
		// Another goroutine already resized and cleared the flag.
		return nil
	}

	// 3. Acquire every stripe lock in ascending order.
	n := s.locks.Len()
	for st := int32(0); st < n; st++ {
		s.locks.Lock(st)
	}
	unlockAll := func() {
		for st := n - 1; st >= 0; st-- {
			s.locks.Unlock(st)
		}
	}

	// 4. Re-evaluate the load-factor predicate.
	tbl := s.tbl.Load()
	if 10*s.Count() <= 7*int64(tbl.Len()) {
		unlockAll()
		s.signalResize.Store(false)
		return nil
	}

	newLen, ok := s.nextSlots(tbl.Len())
	if !ok {
		unlockAll()
		s.signalResize.Store(false)
		s.log.Warn("stripeset: bucket-size progression exhausted",
			zap.Uint64("slots", tbl.Len()), zap.Int64("count", s.Count()))
		return errors.Wrap(ErrOutOfCapacity, fmt.Sprintf("at %d slots", tbl.Len()))
	}

	start := time.Now()

	// 5. Grow the arena and allocate a new slot array.
	s.arena.Grow(int32(newLen) + n)
	newTbl := slots.New(newLen)

	// 6. Rehash in place: walk every live arena node and prepend it to
	// its new bucket's chain. Stripe freelists are untouched — their
	// indices and contents stay valid because the arena is only
	// extended, never moved or shrunk.
	np := s.arena.NodePointer()
	for i := n; i < np; i++ {
		idx := arena.Index(i)
		node := s.arena.Get(idx)
		if node.Hash == 0 {
			continue
		}
		b := stripe.Bucket(node.Hash, newLen)
		head := newTbl.Get(b)
		s.arena.SetNext(idx, head)
		newTbl.Set(b, idx)
	}

	s.tbl.Store(newTbl)
	s.generation.Add(1)
	s.resizeN.Add(1)

	// 7. Clear signalResize (release) before releasing the stripe locks
	// and the coordinator lock.
	s.signalResize.Store(false)
	unlockAll()

	s.log.Info("stripeset: resized",
		zap.Uint64("slots", newLen), zap.Duration("took", time.Since(start)))
	return nil
}
