package stripeset

import (
	"go.uber.org/zap"

	"github.com/thebagchi/stripeset/internal/primes"
)

// defaultStripes is L, the fixed stripe count, chosen as a small prime
// (997) rather than 1024 so that stripe = bucket mod L doesn't correlate
// with the low bits a power-of-two bucket count would share with it.
const defaultStripes = 997

type options struct {
	stripes     int32
	logger      *zap.Logger
	progression []uint64
}

// Option configures a Set at construction time.
type Option func(*options)

// WithStripes overrides the default stripe count (997). Tests use this
// to shrink L so chains and resizes are cheap to exercise; production
// callers should leave the default alone.
func WithStripes(n int32) Option {
	return func(o *options) {
		if n > 0 {
			o.stripes = n
		}
	}
}

// WithLogger attaches a zap logger used for resize and
// capacity-exhaustion events. Defaults to zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgression overrides the bucket-count progression the resize
// barrier grows through, in place of the package's built-in fixed
// primes (internal/primes.Progression). seq must be non-empty and
// sorted ascending; the Set is constructed at seq[0] buckets and grows
// through seq's later entries, returning ErrOutOfCapacity once seq is
// exhausted. Production callers should leave this alone — it exists so
// a caller (or a test) can reach the progression's exhaustion case
// without actually growing past two billion buckets.
func WithProgression(seq []uint64) Option {
	return func(o *options) {
		if len(seq) > 0 {
			o.progression = seq
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{stripes: defaultStripes, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// firstSlots returns the initial bucket count for a Set built from o:
// seq[0] of a custom progression, or the package default's first entry.
func (o *options) firstSlots() uint64 {
	if o.progression != nil {
		return primes.FirstOf(o.progression)
	}
	return primes.First()
}
