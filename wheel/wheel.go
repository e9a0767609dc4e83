// Package wheel holds the static wheel-30 tables shared by every sieving
// engine in leb.io/primesieve. The tables are generated once at process
// init and are read-only afterwards, so they may be shared freely across
// goroutines.
package wheel

// NumbersPerByte is the count of consecutive integers represented by a
// single byte of a sieve segment.
const NumbersPerByte = 30

// Residues lists, in ascending order, the 8 residues mod 30 that are
// coprime to 2, 3 and 5. Bit i of a sieve byte represents the number
// segmentBase + Residues[i], where segmentBase is a multiple of 30.
var Residues = [8]uint8{1, 7, 11, 13, 17, 19, 23, 29}

// Gaps[i] is the distance from Residues[i] to the next member of the
// infinite sequence 1, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, ... of
// positive integers coprime to 30. Summing one full cycle covers 30.
var Gaps = [8]uint8{6, 4, 2, 4, 2, 4, 6, 2}

// residueBit maps r%30 to its bit index in Residues, or -1 if r is not
// coprime to 30 (a multiple of 2, 3 or 5).
var residueBit [30]int8

func init() {
	for i := range residueBit {
		residueBit[i] = -1
	}
	for i, r := range Residues {
		residueBit[r] = int8(i)
	}
}

// BitOf returns the bit index within a sieve byte for a number whose
// residue mod 30 is r, and whether r is coprime to 30 at all.
func BitOf(r uint8) (bit uint8, ok bool) {
	b := residueBit[r]
	if b < 0 {
		return 0, false
	}
	return uint8(b), true
}

// StartIndex returns the wheel index to use when a sieving prime p
// (itself coprime to 30, i.e. p > 5) begins crossing off at p*p: the
// position of p's own residue within the Gaps cycle, i.e. the index
// whose Gaps entry advances p*p to the next coprime multiple of p.
func StartIndex(p uint64) uint8 {
	bit, ok := BitOf(uint8(p % 30))
	if !ok {
		panic("wheel: StartIndex called with a prime divisible by 2, 3 or 5")
	}
	return bit
}

// UnsetMask clears bit i (0-7) of a sieve byte.
func UnsetMask(bit uint8) uint8 {
	return ^(uint8(1) << bit)
}

// NumberAt reconstructs the integer represented by bit `bit` of the byte
// at byte offset `byteOffset` within a segment starting at `segmentBase`
// (a multiple of 30).
func NumberAt(segmentBase uint64, byteOffset uint64, bit uint8) uint64 {
	return segmentBase + byteOffset*NumbersPerByte + uint64(Residues[bit])
}

// FirstMultiple returns the smallest multiple of p that is both >= base
// and coprime to 30, plus the wheel index of its multiplier's residue
// (the position from which Gaps continues the cycle). p itself must be
// coprime to 30 (p > 5); the multiplier need not be.
func FirstMultiple(p, base uint64) (uint64, uint8) {
	k := base / p
	if k*p < base {
		k++
	}
	if k == 0 {
		k = 1
	}
	for {
		if bit, ok := BitOf(uint8(k % NumbersPerByte)); ok {
			return k * p, bit
		}
		k++
	}
}

// BitValues mirrors the eight residues for callers that reconstruct
// primes from a raw word (see soe.wordsToPrimes); identical to Residues
// but kept as a distinct exported name to match the vocabulary used by
// the wider sieve engine.
var BitValues = Residues
