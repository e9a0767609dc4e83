package erat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leb.io/primesieve/bucket"
	"leb.io/primesieve/erat"
	"leb.io/primesieve/wheel"
)

// sieveOfSegment returns every bit still set in segment as its true
// numeric value, given the segment's lower bound lo.
func sieveOfSegment(segment []byte, lo uint64) []uint64 {
	var out []uint64
	for i, b := range segment {
		for bit := uint8(0); bit < 8; bit++ {
			if b&(1<<bit) != 0 {
				out = append(out, wheel.NumberAt(lo, uint64(i), bit))
			}
		}
	}
	return out
}

func newSegment(n int) []byte {
	s := make([]byte, n)
	for i := range s {
		s[i] = 0xFF
	}
	return s
}

// firstMultiple returns p*p and the wheel index of its multiplier p, the
// same start AddSievingPrime computes.
func firstMultiple(p uint64) (uint64, uint8) {
	return wheel.FirstMultiple(p, p*p)
}

func TestSmallCrossesOffAllMultiples(t *testing.T) {
	arena := bucket.NewArena(bucket.Config{SlabBuckets: 4})
	s := erat.NewSmall(arena)

	next, bit := firstMultiple(7)
	s.Add(bucket.WheelPrime{Prime: 7, Next: next, WheelIndex: bit})
	assert.Equal(t, 1, s.Len())

	segment := newSegment(4) // 120 numbers
	s.CrossOff(segment, 0)

	for _, n := range sieveOfSegment(segment, 0) {
		if n != 7 {
			assert.NotZero(t, n%7, "every multiple of 7 except 7 itself must be cleared")
		}
	}
}

func TestMediumCrossesOffAllMultiples(t *testing.T) {
	arena := bucket.NewArena(bucket.Config{SlabBuckets: 4})
	m := erat.NewMedium(arena)

	next, bit := firstMultiple(11)
	m.Add(bucket.WheelPrime{Prime: 11, Next: next, WheelIndex: bit})

	segment := newSegment(10) // 300 numbers
	m.CrossOff(segment, 0)

	// Crossing off starts at 11*11; 11 and 7*11 lie below it and stay
	// set here (in a full sieve 7*11 is crossed off by 7).
	for _, n := range sieveOfSegment(segment, 0) {
		if n >= next {
			assert.NotZero(t, n%11)
		}
	}
	assert.Equal(t, 1, m.Len())
	m.Release()
	assert.Equal(t, 0, m.Len())
}

func TestBigFiresOncePerSegmentAndAdvancesRing(t *testing.T) {
	arena := bucket.NewArena(bucket.Config{SlabBuckets: 4})
	const segmentBytes = 4 // 120 numbers per segment
	const p = 113
	b := erat.NewBig(arena, segmentBytes, 0, p)

	next, bit := firstMultiple(p) // 12769, far beyond the first segment
	b.Add(bucket.WheelPrime{Prime: p, Next: next, WheelIndex: bit})
	assert.Equal(t, 1, b.Len())

	hitSegmentLo := (next / (segmentBytes * 30)) * (segmentBytes * 30)

	segment := newSegment(segmentBytes)
	for lo := uint64(0); lo < hitSegmentLo; lo += segmentBytes * 30 {
		b.CrossOff(segment, lo)
		for _, n := range sieveOfSegment(segment, lo) {
			assert.NotEqual(t, next, n, "the ring must not fire before the prime's real hit")
		}
		segment = newSegment(segmentBytes)
	}

	b.CrossOff(segment, hitSegmentLo)
	found := false
	for _, n := range sieveOfSegment(segment, hitSegmentLo) {
		if n == next {
			found = true
		}
	}
	assert.False(t, found, "the hit position must be cleared once the ring reaches its segment")
}
