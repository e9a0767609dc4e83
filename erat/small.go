package erat

import "leb.io/primesieve/bucket"

// Small holds sieving primes p <= segmentBytes*ERATSMALL_FACTOR: primes
// that cross off many times per segment.
type Small struct {
	list *primeList
}

// NewSmall creates an EratSmall engine backed by arena.
func NewSmall(arena *bucket.Arena) *Small {
	return &Small{list: newPrimeList(arena)}
}

// Add registers a sieving prime with its first (already computed)
// cross-off position.
func (s *Small) Add(wp bucket.WheelPrime) { s.list.add(wp) }

// CrossOff clears every composite bit these primes hit within
// [lo, lo+len(segment)*30).
func (s *Small) CrossOff(segment []byte, lo uint64) {
	hi := lo + uint64(len(segment))*30
	s.list.crossOff(segment, lo, hi)
}

// Len reports how many sieving primes this engine tracks.
func (s *Small) Len() int { return s.list.Len() }

// Release returns all bucket storage to the arena.
func (s *Small) Release() { s.list.release() }
