// Package reftest collects small test-support helpers shared across
// leb.io/primesieve's package tests: a table of known π(x) checkpoints,
// an order-independent fingerprint for comparing prime sets produced
// under different segment sizes or thread counts, a duplicate-prime
// detector for parallel callback streams, and a snapshot encoder for
// golden-style Counters comparisons, in a fill-and-verify style
// adapted to sieve output.
package reftest

import (
	"bytes"

	"github.com/alecthomas/binary"
	"github.com/spaolacci/murmur3"
	"github.com/willf/bitset"

	"leb.io/aeshash"
)

// ReferencePi holds the tabulated prime-counting function at a few
// well-known checkpoints.
var ReferencePi = map[uint64]uint64{
	10:         4,
	1000:       168,
	1000000:    78498,
	1000000000: 50847534,
}

// Fingerprint combines primes into an order-independent digest: each
// value is hashed with murmur3 and XORed into the accumulator, so the
// same set of primes fingerprints identically regardless of the order
// callbacks delivered them in (parallel workers interleave arbitrarily;
// segment-size and presieve-limit changes reorder internal work but must
// not change the reported set).
func Fingerprint(primes []uint64) uint64 {
	var acc uint64
	var buf [8]byte
	for _, p := range primes {
		putUint64(buf[:], p)
		acc ^= murmur3.Sum64(buf[:])
	}
	return acc
}

func putUint64(b []byte, v uint64) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}

// DuplicateDetector flags primes already seen within a bounded [lo, hi)
// range, backed by a bitset rather than a map: callback streams from
// property tests cover ranges known ahead of time, so an offset-indexed
// bitset is both smaller and faster than a set of uint64 keys.
type DuplicateDetector struct {
	lo   uint64
	seen *bitset.BitSet
}

// NewDuplicateDetector prepares a detector for primes expected in [lo, hi).
func NewDuplicateDetector(lo, hi uint64) *DuplicateDetector {
	span := uint(0)
	if hi > lo {
		span = uint(hi - lo)
	}
	return &DuplicateDetector{lo: lo, seen: bitset.New(span + 1)}
}

// Mark records p, reporting whether it had already been seen.
func (d *DuplicateDetector) Mark(p uint64) (duplicate bool) {
	if p < d.lo {
		return false
	}
	idx := uint(p - d.lo)
	if idx >= d.seen.Len() {
		return false
	}
	if d.seen.Test(idx) {
		return true
	}
	d.seen.Set(idx)
	return false
}

// Seed derives a deterministic pseudo-random seed for a named randomized
// property test, so repeated runs probe the same cases without any test
// needing to depend on a global random source.
func Seed(name string) uint64 {
	return aeshash.Hash([]byte(name), 0)
}

// Snapshot is a golden-style capture of counters for regression
// assertions, encoded with alecthomas/binary.
type Snapshot struct {
	Segments    int64
	SmallCount  int64
	MediumCount int64
	BigCount    int64
}

// Encode serializes the snapshot for byte-for-byte comparison across runs.
func Encode(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := binary.NewEncoder(&buf)
	if err := enc.Encode(&s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
