package stripeset

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher supplies the stable hash function a Set needs for its element
// type. Equal elements must hash equally.
type Hasher[E any] interface {
	Hash(v E) uint32
}

// Equaler supplies the total equality predicate a Set needs for its
// element type.
type Equaler[E any] interface {
	Equal(a, b E) bool
}

// HasherFunc adapts a plain function to a Hasher.
type HasherFunc[E any] func(E) uint32

func (f HasherFunc[E]) Hash(v E) uint32 { return f(v) }

// EqualerFunc adapts a plain function to an Equaler.
type EqualerFunc[E any] func(a, b E) bool

func (f EqualerFunc[E]) Equal(a, b E) bool { return f(a, b) }

// zeroSentinel replaces a raw hash of 0: index arithmetic in the arena
// reserves hash == 0 to mark a slot as empty or freed, so a genuine
// user hash of 0 must be remapped to something else entirely.
const zeroSentinel = uint32(1)<<31 - 1

// normalize derives the 31-bit non-negative, non-zero normalized hash
// from a raw user hash: mask to the low 31 bits, then remap a result of
// 0 to zeroSentinel.
func normalize(h uint32) uint32 {
	n := h & 0x7fffffff
	if n == 0 {
		return zeroSentinel
	}
	return n
}

// HashBytes and HashString are xxhash-backed convenience functions,
// handy building blocks for a caller's own Hasher, not a capability the
// core requires.
func HashBytes(b []byte) uint32 {
	return uint32(xxhash.Sum64(b))
}

func HashString(s string) uint32 {
	return uint32(xxhash.Sum64String(s))
}

// StringHasher and StringEqualer are ready-made capabilities for E =
// string.
type StringHasher struct{}

func (StringHasher) Hash(s string) uint32 { return HashString(s) }

type StringEqualer struct{}

func (StringEqualer) Equal(a, b string) bool { return a == b }

// BytesHasher and BytesEqualer are ready-made capabilities for E =
// []byte.
type BytesHasher struct{}

func (BytesHasher) Hash(b []byte) uint32 { return HashBytes(b) }

type BytesEqualer struct{}

func (BytesEqualer) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

// ComparableEqualer is an Equaler for any comparable type, implemented
// with Go's built-in ==.
type ComparableEqualer[E comparable] struct{}

func (ComparableEqualer[E]) Equal(a, b E) bool { return a == b }

// SeededHasher hashes an arbitrary comparable value with a per-instance
// random seed, consistent with ==, defending against
// inputs engineered to collide under a fixed hash function.
type SeededHasher[E comparable] struct {
	seed maphash.Seed
}

// NewSeededHasher returns a SeededHasher with a fresh random seed.
func NewSeededHasher[E comparable]() *SeededHasher[E] {
	return &SeededHasher[E]{seed: maphash.MakeSeed()}
}

func (h *SeededHasher[E]) Hash(v E) uint32 {
	var mh maphash.Hash
	mh.SetSeed(h.seed)
	switch x := any(v).(type) {
	case string:
		mh.WriteString(x)
	case []byte:
		mh.Write(x)
	default:
		writeBinary(&mh, v)
	}
	return uint32(mh.Sum64())
}

// writeBinary writes v to h so that values equal under == write the
// same input, following strings, interfaces and float semantics rather
// than raw memory.
func writeBinary[E comparable](h *maphash.Hash, v E) {
	maphash.WriteComparable(h, v)
}
