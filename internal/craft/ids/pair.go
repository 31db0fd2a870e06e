// Package ids provides the canonical pair-key codec and the name<->id
// registry shared by every other crafting package.
package ids

import (
	"fmt"
	"math"
)

// Nothing and UncertainNothing are the two sentinel element ids reserved by
// the recipe store. Nothing means the oracle has confirmed no result exists
// for a pair; UncertainNothing means a "Nothing" answer was observed but is
// still subject to re-verification.
const (
	Nothing          int64 = -1
	UncertainNothing int64 = -2
)

// NothingName and UncertainNothingName are the literal strings the store and
// oracle use for the two sentinel results.
const (
	NothingName          = "Nothing"
	UncertainNothingName = "Nothing\t"
)

// Encode packs an unordered pair of non-negative ids into a single integer
// key using the Cantor-like pairing key(a,b) = a + b*(b+1)/2 for a <= b.
// The pair is swapped into canonical order first, so Encode(a,b) ==
// Encode(b,a).
func Encode(a, b int64) int64 {
	if b < a {
		a, b = b, a
	}
	return a + (b*(b+1))/2
}

// Decode is the inverse of Encode: it recovers the canonical (a,b) pair,
// a <= b, that produced k. It fails only for k < 0.
func Decode(k int64) (int64, int64, error) {
	if k < 0 {
		return 0, 0, fmt.Errorf("ids: decode: negative pair key %d", k)
	}
	b := int64((math.Sqrt(8*float64(k)+1) - 1) / 2)
	// The floating point sqrt can be off by one at the boundary; nudge it
	// back onto the correct triangular-number band.
	for b > 0 && b*(b+1)/2 > k {
		b--
	}
	for (b+1)*(b+2)/2 <= k {
		b++
	}
	a := k - b*(b+1)/2
	return a, b, nil
}

// Limit returns the exclusive upper bound of pair keys over n items
// (0..n-1), i.e. Encode(n-1, n-1) + 1. search.State.Child uses it to reject
// keys that name an item index past the end of the state.
func Limit(n int64) int64 {
	if n <= 0 {
		return 0
	}
	return Encode(n-1, n-1) + 1
}
