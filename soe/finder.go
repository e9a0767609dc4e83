package soe

import (
	"fmt"
	"io"
	"math/bits"
	"strconv"
	"strings"

	"leb.io/primesieve/wheel"
)

// Kind selects what a Finder does with each candidate it recognizes.
type Kind int

const (
	KindCount Kind = iota
	KindPrint
	KindCallback
)

// Finder is a Consumer that turns sieve bits into a count, formatted
// output, or user callback invocations, across five modes: K == 0
// selects plain primes (COUNT_PRIMES, PRINT_PRIMES, CALLBACK_PRIMES);
// K in [2,7] selects k-tuplets (COUNT_KTUPLETS, PRINT_KTUPLETS; callback
// tuplets are not part of the public contract).
type Finder struct {
	Kind Kind
	K    int

	Writer         io.Writer
	Callback       func(p uint64)
	ThreadCallback func(p uint64, threadID int)
	ThreadID       int

	Count uint64

	start, stop uint64
	carry       []byte
	err         error
}

// NewCountFinder counts plain primes (k == 0) or k-tuplets (k in [2,7]).
func NewCountFinder(k int) *Finder { return &Finder{Kind: KindCount, K: k} }

// NewPrintFinder writes decimal primes, one per line, or parenthesized
// tuplets, to w.
func NewPrintFinder(w io.Writer, k int) *Finder { return &Finder{Kind: KindPrint, K: k, Writer: w} }

// NewCallbackFinder invokes fn once per prime found, in ascending order.
func NewCallbackFinder(fn func(p uint64)) *Finder {
	return &Finder{Kind: KindCallback, Callback: fn}
}

// NewThreadCallbackFinder is NewCallbackFinder for a single worker of a
// parallel dispatch: fn additionally receives threadID, and primes from
// different workers may interleave arbitrarily.
func NewThreadCallbackFinder(fn func(p uint64, threadID int), threadID int) *Finder {
	return &Finder{Kind: KindCallback, ThreadCallback: fn, ThreadID: threadID}
}

// Err returns the error that stopped this finder early, if any.
func (f *Finder) Err() error { return f.err }

func (f *Finder) Init(start, stop uint64) {
	f.start, f.stop = start, stop
}

func (f *Finder) SmallPrimes(primes []uint64) error {
	if f.err != nil {
		return f.err
	}
	if f.K == 0 {
		for _, p := range primes {
			f.emitPrime(p)
			if f.err != nil {
				break
			}
		}
		return f.err
	}

	// 2, 3 and 5 are never representable in the wheel-30 bitmap, so the
	// handful of constellations with a member among them are special
	// cased here rather than in the segment scan.
	has := make(map[uint64]bool, len(primes))
	for _, p := range primes {
		has[p] = true
	}
	switch f.K {
	case 2:
		if has[3] {
			f.emitTuplet(3, []uint64{0, 2})
		}
		if has[5] {
			f.emitTuplet(5, []uint64{0, 2})
		}
	case 3:
		if has[5] {
			f.emitTuplet(5, []uint64{0, 2, 6})
		}
	case 4:
		if has[5] {
			f.emitTuplet(5, []uint64{0, 2, 6, 8})
		}
	case 5:
		if has[5] {
			f.emitTuplet(5, []uint64{0, 2, 6, 8, 12})
		}
	}
	return f.err
}

func (f *Finder) Segment(segment []byte, lo uint64, isLast bool) error {
	if f.err != nil {
		return f.err
	}
	if f.K == 0 {
		return f.segmentPrimes(segment, lo)
	}
	return f.segmentTuplets(segment, lo, isLast)
}

func (f *Finder) segmentPrimes(segment []byte, lo uint64) error {
	switch f.Kind {
	case KindCount:
		for i, b := range segment {
			byteLo := lo + uint64(i)*wheel.NumbersPerByte
			if byteLo+29 <= f.stop {
				f.Count += uint64(bits.OnesCount8(b))
				continue
			}
			if byteLo > f.stop {
				break
			}
			for bit, r := range wheel.Residues {
				if byteLo+uint64(r) <= f.stop && b&(1<<uint(bit)) != 0 {
					f.Count++
				}
			}
		}
	case KindPrint, KindCallback:
		wordsToPrimes(segment, lo, func(p uint64) {
			if f.err == nil && p <= f.stop {
				f.emitPrime(p)
			}
		})
	}
	return f.err
}

// tupletMargin bounds, in bytes, how far a lookahead window must extend
// past a candidate's own byte to test every offset in tupletOffsets;
// maxTupletOffset (20) always fits within a single extra byte (30
// numbers), so two bytes of margin is generous.
const tupletMargin = 2

func (f *Finder) segmentTuplets(segment []byte, lo uint64, isLast bool) error {
	combined := make([]byte, 0, len(f.carry)+len(segment))
	combined = append(combined, f.carry...)
	combined = append(combined, segment...)
	combinedLo := lo - uint64(len(f.carry))*wheel.NumbersPerByte

	limit := len(combined)
	if !isLast {
		limit -= tupletMargin
		if limit < 0 {
			limit = 0
		}
	}

	patterns := tupletOffsets[f.K]
	for i := 0; i < limit; i++ {
		b := combined[i]
		if b == 0 {
			continue
		}
		byteLo := combinedLo + uint64(i)*wheel.NumbersPerByte
		for bit := 0; bit < 8; bit++ {
			if b&(1<<uint(bit)) == 0 {
				continue
			}
			p := byteLo + uint64(wheel.Residues[bit])
			if p < f.start || p > f.stop {
				continue
			}
			for _, pat := range patterns {
				if f.matches(combined, combinedLo, p, pat) {
					f.emitTuplet(p, pat)
					break
				}
			}
			if f.err != nil {
				return f.err
			}
		}
	}

	if isLast {
		f.carry = nil
	} else {
		tail := len(combined) - tupletMargin
		f.carry = append(f.carry[:0], combined[tail:]...)
	}
	return f.err
}

func (f *Finder) matches(combined []byte, combinedLo, p uint64, pattern []uint64) bool {
	for _, off := range pattern[1:] {
		if !bitSet(combined, combinedLo, p+off) {
			return false
		}
	}
	return true
}

func bitSet(combined []byte, combinedLo, n uint64) bool {
	if n < combinedLo {
		return false
	}
	bit, ok := wheel.BitOf(uint8(n % wheel.NumbersPerByte))
	if !ok {
		return false
	}
	idx := (n - combinedLo) / wheel.NumbersPerByte
	if idx >= uint64(len(combined)) {
		return false
	}
	return combined[idx]&(1<<bit) != 0
}

func (f *Finder) emitPrime(p uint64) {
	switch f.Kind {
	case KindCount:
		f.Count++
	case KindPrint:
		fmt.Fprintln(f.Writer, p)
	case KindCallback:
		f.invokeCallback(p)
	}
}

func (f *Finder) emitTuplet(p uint64, pattern []uint64) {
	switch f.Kind {
	case KindCount:
		f.Count++
	case KindPrint:
		parts := make([]string, len(pattern))
		for i, off := range pattern {
			parts[i] = strconv.FormatUint(p+off, 10)
		}
		fmt.Fprintf(f.Writer, "(%s)\n", strings.Join(parts, ", "))
	}
}

func (f *Finder) invokeCallback(p uint64) {
	defer func() {
		if r := recover(); r != nil {
			f.err = fmt.Errorf("%w: %v", ErrCallback, r)
		}
	}()
	if f.ThreadCallback != nil {
		f.ThreadCallback(p, f.ThreadID)
	} else if f.Callback != nil {
		f.Callback(p)
	}
}
