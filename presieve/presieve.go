// Package presieve precomputes a byte buffer with the multiples of the
// first few odd primes already crossed off, so every sieve segment can
// start from a memcpy instead of re-deriving the same composites.
package presieve

import (
	"fmt"

	"leb.io/hrff"

	"leb.io/primesieve/wheel"
)

// MinLimit and MaxLimit bound the presieve limit, matching
// PRIMESIEVE_PRESIEVE_LIMIT's documented range.
const (
	MinLimit     = 11
	MaxLimit     = 23
	DefaultLimit = 19
)

// PreSieve is a read-only, process-lifetime template: buf[i] holds the
// sieve byte for the 30 numbers [30i, 30i+29], with every multiple of a
// presieved prime (the prime itself included) already cleared. The
// pattern repeats every len(buf) bytes (len(buf)*30 numbers).
type PreSieve struct {
	Limit  int
	Primes []uint64 // the presieved primes, e.g. [7, 11, 13, 17, 19]
	Period uint64   // len(buf), in bytes
	buf    []byte
}

// New builds a PreSieve for all primes in [7, limit]. limit must be in
// [MinLimit, MaxLimit]; violating that precondition is a programming
// error and panics, matching the "asserted at init" contract in spec
// section 7.
func New(limit int) *PreSieve {
	if limit < MinLimit || limit > MaxLimit {
		panic(fmt.Sprintf("presieve: limit %d out of range [%d, %d]", limit, MinLimit, MaxLimit))
	}
	primes := smallPrimesUpTo(limit)
	period := uint64(1)
	for _, p := range primes {
		period *= p
	}

	ps := &PreSieve{
		Limit:  limit,
		Primes: primes,
		Period: period,
		buf:    make([]byte, period),
	}
	for i := range ps.buf {
		ps.buf[i] = 0xff
	}
	for _, p := range primes {
		ps.crossOff(p)
	}
	return ps
}

// smallPrimesUpTo returns the odd primes in [7, limit] via trial
// division; limit is always small (<= 23) so this runs once and costs
// nothing.
func smallPrimesUpTo(limit int) []uint64 {
	var out []uint64
	for n := 7; n <= limit; n++ {
		isPrime := true
		for d := 2; d*d <= n; d++ {
			if n%d == 0 {
				isPrime = false
				break
			}
		}
		if isPrime {
			out = append(out, uint64(n))
		}
	}
	return out
}

// crossOff clears every bit representing a multiple of p, p itself
// included, within one full period of the buffer. Every period after the
// first holds P*m + p, a multiple of p, at the position of p.
func (ps *PreSieve) crossOff(p uint64) {
	limit := ps.Period * wheel.NumbersPerByte
	for k := uint64(1); k*p < limit; k++ {
		v := k * p
		bit, ok := wheel.BitOf(uint8(v % wheel.NumbersPerByte))
		if !ok {
			continue
		}
		byteIdx := v / wheel.NumbersPerByte
		ps.buf[byteIdx] &= wheel.UnsetMask(bit)
	}
}

// Apply copies the presieve template into segment, rotated so that
// segment[0] aligns with the byte covering [lo, lo+29]. lo must be a
// multiple of 30. When lo is 0 the presieved primes themselves, all in
// byte 0, are marked prime again.
func (ps *PreSieve) Apply(segment []byte, lo uint64) {
	offset := (lo / wheel.NumbersPerByte) % ps.Period
	n := copy(segment, ps.buf[offset:])
	for uint64(n) < uint64(len(segment)) {
		n += copy(segment[n:], ps.buf)
	}
	if lo == 0 {
		for _, p := range ps.Primes {
			bit, _ := wheel.BitOf(uint8(p))
			segment[0] |= 1 << bit
		}
	}
}

// Stats renders a human-readable description of the buffer's memory
// footprint as a human-readable string.
func (ps *PreSieve) Stats() string {
	sz := hrff.Int64{V: int64(len(ps.buf)), U: "B"}
	return fmt.Sprintf("presieve: limit=%d primes=%v size=%v", ps.Limit, ps.Primes, sz)
}
