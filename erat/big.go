package erat

import (
	"leb.io/primesieve/bucket"
	"leb.io/primesieve/wheel"
)

// Big holds sieving primes p > segmentBytes*ERATMEDIUM_FACTOR: primes
// that cross off less than once per segment on average. Rather than
// scanning every big prime every segment, they are indexed by the
// segment in which they will next hit, in a ring of lists. A prime whose
// next hit lies a full ring turn or more ahead waits in the slot that
// segment maps to and is re-inserted, unfired, each time the slot comes
// round.
type Big struct {
	arena        *bucket.Arena
	segmentBytes uint64
	start        uint64 // sieve-global start, segment index 0's lower bound
	ring         []*primeList
	cur          int
}

// NewBig creates an EratBig engine. maxSievingPrime bounds how many
// segments a single cross-off can skip, sizing the ring per spec
// section 3 ("Engine-specific layout"): ring size = segment_span + 1.
func NewBig(arena *bucket.Arena, segmentBytes, start, maxSievingPrime uint64) *Big {
	segmentSpan := ceilDiv(maxSievingPrime, segmentBytes*wheel.NumbersPerByte) + 1
	ringSize := int(segmentSpan) + 1
	if ringSize < 2 {
		ringSize = 2
	}
	ring := make([]*primeList, ringSize)
	for i := range ring {
		ring[i] = newPrimeList(arena)
	}
	return &Big{arena: arena, segmentBytes: segmentBytes, start: start, ring: ring}
}

func ceilDiv(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// segIndex returns which segment (relative to start) n falls in.
func (b *Big) segIndex(n uint64) uint64 {
	return (n - b.start) / (b.segmentBytes * wheel.NumbersPerByte)
}

func (b *Big) slotOf(segIdx uint64) int {
	return int(segIdx % uint64(len(b.ring)))
}

// Add inserts wp into the ring slot matching the segment containing its
// first cross-off position.
func (b *Big) Add(wp bucket.WheelPrime) {
	slot := b.slotOf(b.segIndex(wp.Next))
	b.ring[slot].add(wp)
}

// CrossOff processes only the ring slot for the segment currently being
// sieved, then advances the ring to the next segment. The slot's list is
// detached first, so re-insertions into the same slot land in a fresh
// list. Each WheelPrime clears every multiple it has in this segment
// (none when its hit is a ring turn or more ahead), and is re-inserted
// into the slot for the segment of its next hit; the detached buckets
// are then returned to the arena.
func (b *Big) CrossOff(segment []byte, lo uint64) {
	hi := lo + b.segmentBytes*wheel.NumbersPerByte
	cur := b.ring[b.cur]
	b.ring[b.cur] = newPrimeList(b.arena)

	for bk := cur.head; bk != nil; bk = bk.Next {
		for i := 0; i < bk.Count; i++ {
			wp := bk.Primes[i]
			for wp.Next < hi {
				if bit, ok := wheel.BitOf(uint8(wp.Next % wheel.NumbersPerByte)); ok {
					byteIdx := (wp.Next - lo) / wheel.NumbersPerByte
					segment[byteIdx] &= wheel.UnsetMask(bit)
				}
				wp.Next += uint64(wheel.Gaps[wp.WheelIndex]) * wp.Prime
				wp.WheelIndex = (wp.WheelIndex + 1) % 8
			}
			b.reinsert(wp)
		}
	}
	cur.release()
	b.cur = (b.cur + 1) % len(b.ring)
}

// reinsert places wp into the slot matching the segment its (already
// advanced) Next now falls in.
func (b *Big) reinsert(wp bucket.WheelPrime) {
	slot := b.slotOf(b.segIndex(wp.Next))
	b.ring[slot].add(wp)
}

// Len reports how many sieving primes are tracked across all slots.
func (b *Big) Len() int {
	n := 0
	for _, l := range b.ring {
		n += l.Len()
	}
	return n
}
