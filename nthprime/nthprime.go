// Package nthprime locates the n-th prime relative to a starting point,
// estimating the search window with the prime-counting approximation
// pi^-1(n) ~= n*(ln n + ln ln n) before sieving it exactly. Grounded on
// soe's segmented driver: a locator is just another Consumer that counts
// primes in ascending order and stops as soon as it reaches the target
// ordinal.
package nthprime

import (
	"errors"
	"math"

	"leb.io/primesieve/soe"
)

// ErrInvalidRange reports n == 0, or a search that would have to cross
// MaxStop to find its answer.
var ErrInvalidRange = errors.New("nthprime: invalid range")

// errFound unwinds SieveOfEratosthenes.Sieve as soon as the target
// ordinal is reached, so the search never sieves past what it needs.
var errFound = errors.New("nthprime: target ordinal reached")

// MaxStop is the largest stop value any sieve in this module accepts,
// mirroring the public package's ceiling.
const MaxStop = ^uint64(0) - (uint64(^uint32(0)) * 10)

// Locate returns the n-th prime counting forward from start (n > 0,
// strictly greater than start) or backward from start (n < 0, strictly
// less than start). n == 0 is invalid.
func Locate(n int64, start uint64, cfg soe.Config) (uint64, error) {
	if n == 0 {
		return 0, ErrInvalidRange
	}
	if n > 0 {
		return locateForward(uint64(n), start, cfg)
	}
	return locateBackward(uint64(-n), start, cfg)
}

// approxNth upper-bounds the value of the n-th prime (1-indexed, p_1 = 2)
// via pi^-1(n) ~= n*(ln n + ln ln n), inflated to comfortably cover the
// approximation's known undershoot for small and moderate n.
func approxNth(n uint64) uint64 {
	if n <= 6 {
		table := [6]uint64{2, 3, 5, 7, 11, 13}
		return table[n-1] + 10
	}
	fn := float64(n)
	est := fn * (math.Log(fn) + math.Log(math.Log(fn)))
	return uint64(est*1.2) + 20
}

func addClamp(base, span uint64) uint64 {
	if span > MaxStop-base {
		return MaxStop
	}
	return base + span
}

func subClamp(base, span uint64) uint64 {
	if span >= base {
		return 0
	}
	return base - span
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

func locateForward(n, start uint64, cfg soe.Config) (uint64, error) {
	if start >= MaxStop {
		return 0, ErrInvalidRange
	}
	span := approxNth(n)
	windowStop := addClamp(start, span)
	for {
		found, _, err := ordinalSearch(n, start+1, windowStop, cfg)
		if err != nil {
			return 0, err
		}
		if found != 0 {
			return found, nil
		}
		if windowStop >= MaxStop {
			return 0, ErrInvalidRange
		}
		span *= 2
		windowStop = addClamp(start, span)
	}
}

func locateBackward(n, start uint64, cfg soe.Config) (uint64, error) {
	if start < 3 {
		return 0, ErrInvalidRange
	}
	hi := start - 1
	span := approxNth(n)
	lo := maxU64(subClamp(hi, span), 2)
	for {
		total, err := countRange(lo, hi, cfg)
		if err != nil {
			return 0, err
		}
		if total >= n {
			target := total - n + 1
			found, _, err := ordinalSearch(target, lo, hi, cfg)
			if err != nil {
				return 0, err
			}
			if found != 0 {
				return found, nil
			}
			return 0, ErrInvalidRange
		}
		if lo <= 2 {
			return 0, ErrInvalidRange
		}
		span *= 2
		lo = maxU64(subClamp(hi, span), 2)
	}
}

// ordinalConsumer is a soe.Consumer that counts primes in ascending order
// within [start, stop] and aborts the sieve the moment the target-th one
// is reached.
type ordinalConsumer struct {
	stop   uint64
	target uint64
	count  uint64
	found  uint64
}

func (c *ordinalConsumer) Init(start, stop uint64) { c.stop = stop }

func (c *ordinalConsumer) SmallPrimes(primes []uint64) error {
	for _, p := range primes {
		c.count++
		if c.count == c.target {
			c.found = p
			return errFound
		}
	}
	return nil
}

func (c *ordinalConsumer) Segment(segment []byte, lo uint64, isLast bool) error {
	var stopErr error
	soe.ForEachPrime(segment, lo, func(p uint64) {
		if stopErr != nil || p > c.stop {
			return
		}
		c.count++
		if c.count == c.target {
			c.found = p
			stopErr = errFound
		}
	})
	return stopErr
}

// ordinalSearch finds the target-th prime in [lo, hi], or reports 0 found
// with the total count of primes in range if target was never reached.
func ordinalSearch(target, lo, hi uint64, cfg soe.Config) (found, count uint64, err error) {
	c := &ordinalConsumer{target: target}
	s, err := soe.NewSieve(lo, hi, cfg, c)
	if err != nil {
		return 0, 0, err
	}
	gen := soe.NewGenerator(s)
	if err := gen.Run(); err != nil {
		return 0, 0, err
	}
	if err := s.Sieve(); err != nil {
		if errors.Is(err, errFound) {
			return c.found, c.count, nil
		}
		return 0, 0, err
	}
	return 0, c.count, nil
}

// countRange returns the number of primes in [lo, hi].
func countRange(lo, hi uint64, cfg soe.Config) (uint64, error) {
	if lo > hi {
		return 0, nil
	}
	_, count, err := ordinalSearch(^uint64(0), lo, hi, cfg)
	return count, err
}
