package soe

import (
	"math/bits"

	"leb.io/primesieve/wheel"
)

// wordsToPrimes reconstructs every number still marked possibly-prime in
// segment (covering [lo, lo+30*len(segment))) and invokes emit for each,
// in ascending order. Bytes are processed four at a time via bit-scan
// forward on the assembled little-endian word, with a tail loop for the
// remaining bytes.
// ForEachPrime exposes wordsToPrimes to other packages in this module
// (nthprime's ordinal search needs the same reconstruction the Finder
// uses, without duplicating the bit-scan loop).
func ForEachPrime(segment []byte, lo uint64, emit func(uint64)) {
	wordsToPrimes(segment, lo, emit)
}

func wordsToPrimes(segment []byte, lo uint64, emit func(uint64)) {
	n := len(segment)
	i := 0
	for ; i+4 <= n; i += 4 {
		word := uint32(segment[i]) | uint32(segment[i+1])<<8 | uint32(segment[i+2])<<16 | uint32(segment[i+3])<<24
		base := lo + uint64(i)*wheel.NumbersPerByte
		for word != 0 {
			b := bits.TrailingZeros32(word)
			byteOffset := uint64(b / 8)
			bit := uint8(b % 8)
			emit(base + byteOffset*wheel.NumbersPerByte + uint64(wheel.Residues[bit]))
			word &= word - 1
		}
	}
	for ; i < n; i++ {
		base := lo + uint64(i)*wheel.NumbersPerByte
		v := segment[i]
		for v != 0 {
			bit := bits.TrailingZeros8(v)
			emit(base + uint64(wheel.Residues[bit]))
			v &= v - 1
		}
	}
}
