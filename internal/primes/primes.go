// Package primes holds the fixed, monotonically increasing bucket-count
// progression used to size the set's slot table.
package primes

// Progression is the fixed sequence of bucket counts a set moves through
// as it grows. Each entry is prime, and the sequence roughly doubles, so
// hash distribution stays good across resizes while growth stays bounded.
var Progression = [...]uint64{
	1367, 2741, 5471, 10937, 19841, 40241, 84463, 174767, 349529,
	699053, 1398107, 2796221, 5592407, 11184829, 22369661, 44739259,
	89478503, 178956983, 357913951, 715827947, 1431655777, 2147483629,
}

// First returns the smallest entry in the progression, the size a fresh
// set is constructed with.
func First() uint64 {
	return FirstOf(Progression[:])
}

// Next returns the smallest progression entry strictly greater than cur,
// and ok == false if the progression is exhausted.
func Next(cur uint64) (uint64, bool) {
	return NextIn(Progression[:], cur)
}

// IndexOf returns the position of n within the progression, or -1 if n is
// not one of the fixed sizes. Used only by tests that need to confirm a
// table's length is always one of the fixed progression entries.
func IndexOf(n uint64) int {
	return IndexOfIn(Progression[:], n)
}

// FirstOf returns the smallest entry in seq, an arbitrary (sorted
// ascending) bucket-count progression. Used when a Set is configured
// with a progression other than the package default, e.g. via
// WithProgression.
func FirstOf(seq []uint64) uint64 {
	return seq[0]
}

// NextIn returns the smallest entry in seq strictly greater than cur,
// and ok == false if seq is exhausted. seq must be sorted ascending.
func NextIn(seq []uint64, cur uint64) (uint64, bool) {
	for _, p := range seq {
		if p > cur {
			return p, true
		}
	}
	return 0, false
}

// IndexOfIn returns the position of n within seq, or -1 if n is not one
// of seq's entries.
func IndexOfIn(seq []uint64, n uint64) int {
	for i, p := range seq {
		if p == n {
			return i
		}
	}
	return -1
}
