// Package erat implements the three cross-off engines (EratSmall,
// EratMedium, EratBig) that clear composite bits in a sieve segment,
// one engine per sieving-prime size class.
package erat

import (
	"leb.io/primesieve/bucket"
	"leb.io/primesieve/wheel"
)

// primeList is the bucket-list storage shared by EratSmall and
// EratMedium: a single linked list of buckets holding every sieving
// prime assigned to that engine, walked once per segment. EratBig keeps
// one primeList per ring slot.
type primeList struct {
	arena      *bucket.Arena
	head, tail *bucket.Bucket
	count      int
}

func newPrimeList(arena *bucket.Arena) *primeList {
	return &primeList{arena: arena}
}

// add appends a WheelPrime to the tail bucket, allocating a new one
// from the arena if the tail is full or absent.
func (l *primeList) add(wp bucket.WheelPrime) {
	if l.tail == nil || l.tail.Full() {
		b := l.arena.Alloc()
		if l.head == nil {
			l.head = b
		} else {
			l.tail.Next = b
		}
		l.tail = b
	}
	l.tail.Add(wp)
	l.count++
}

// crossOff walks every bucket in the list and clears, for each
// WheelPrime, every composite bit that falls in [lo, hi).
func (l *primeList) crossOff(segment []byte, lo, hi uint64) {
	for b := l.head; b != nil; b = b.Next {
		for i := 0; i < b.Count; i++ {
			wp := &b.Primes[i]
			next := wp.Next
			for next < hi {
				bit, ok := wheel.BitOf(uint8(next % wheel.NumbersPerByte))
				if ok {
					byteIdx := (next - lo) / wheel.NumbersPerByte
					segment[byteIdx] &= wheel.UnsetMask(bit)
				}
				next += uint64(wheel.Gaps[wp.WheelIndex]) * wp.Prime
				wp.WheelIndex = (wp.WheelIndex + 1) % 8
			}
			wp.Next = next
		}
	}
}

// release returns every bucket in the list to the arena; the list is
// empty and reusable afterwards.
func (l *primeList) release() {
	if l.head != nil {
		l.arena.Free(l.head)
	}
	l.head, l.tail = nil, nil
	l.count = 0
}

// Len reports how many sieving primes are currently tracked.
func (l *primeList) Len() int { return l.count }
