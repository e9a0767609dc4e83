package erat

import "leb.io/primesieve/bucket"

// Medium holds sieving primes in (segmentBytes*ERATSMALL_FACTOR,
// segmentBytes*ERATMEDIUM_FACTOR]: primes that fire only a handful of
// times per segment, so a table-driven single-step loop amortizes well.
// Small and Medium share the same loop (primeList.crossOff); neither is
// unrolled.
type Medium struct {
	list *primeList
}

// NewMedium creates an EratMedium engine backed by arena.
func NewMedium(arena *bucket.Arena) *Medium {
	return &Medium{list: newPrimeList(arena)}
}

// Add registers a sieving prime with its first cross-off position.
func (m *Medium) Add(wp bucket.WheelPrime) { m.list.add(wp) }

// CrossOff clears every composite bit these primes hit within
// [lo, lo+len(segment)*30).
func (m *Medium) CrossOff(segment []byte, lo uint64) {
	hi := lo + uint64(len(segment))*30
	m.list.crossOff(segment, lo, hi)
}

// Len reports how many sieving primes this engine tracks.
func (m *Medium) Len() int { return m.list.Len() }

// Release returns all bucket storage to the arena.
func (m *Medium) Release() { m.list.release() }
