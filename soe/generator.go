package soe

import (
	"github.com/willf/bitset"
)

// PrimeGenerator computes every sieving prime up to sqrt(outer's stop)
// using its own, much smaller SieveOfEratosthenes, and feeds each one
// larger than the presieve limit back into outer via AddSievingPrime.
// This is a self-bootstrap loop: outer needs sieving primes up to
// sqrt(stop), which the generator produces by sieving with still
// smaller primes of its own.
type PrimeGenerator struct {
	outer *SieveOfEratosthenes
	inner *SieveOfEratosthenes
	limit uint64
}

// NewGenerator builds the bootstrap sieve for outer. outer must not have
// had Sieve called yet; Run populates outer's sieving-prime engines
// before the caller proceeds to outer.Sieve().
func NewGenerator(outer *SieveOfEratosthenes) *PrimeGenerator {
	g := &PrimeGenerator{outer: outer, limit: uint64(outer.Config.PresieveLimit)}
	genStop := outer.sqrtStop
	if genStop < 7 {
		return g
	}

	cfg := outer.Config
	cfg.SegmentBytes = generatorSegmentBytes(genStop)
	inner, _ := NewSieve(7, genStop, cfg, &generatorConsumer{gen: g})
	g.inner = inner

	for _, p := range bootstrapPrimes(isqrt(genStop)) {
		if p > 5 {
			inner.AddSievingPrime(p)
		}
	}
	return g
}

// Run sieves the inner generator to completion. Every sieving prime it
// finds above the presieve limit is installed into outer as it is found.
func (g *PrimeGenerator) Run() error {
	if g.inner == nil {
		return nil
	}
	return g.inner.Sieve()
}

type generatorConsumer struct{ gen *PrimeGenerator }

func (c *generatorConsumer) Init(start, stop uint64) {}

func (c *generatorConsumer) SmallPrimes(primes []uint64) error {
	for _, p := range primes {
		if p > c.gen.limit {
			c.gen.outer.AddSievingPrime(p)
		}
	}
	return nil
}

func (c *generatorConsumer) Segment(segment []byte, lo uint64, isLast bool) error {
	wordsToPrimes(segment, lo, func(p uint64) {
		if p > c.gen.limit {
			c.gen.outer.AddSievingPrime(p)
		}
	})
	return nil
}

// generatorSegmentBytes picks a segment size for the inner sieve: the
// whole range in one segment when it is tiny (the common case, since
// genStop = sqrt(outer.stop) is usually a few million at most), capped at
// the standard L1 segment size otherwise.
func generatorSegmentBytes(genStop uint64) int {
	n := int(genStop/30) + 64
	if n < 1024 {
		n = 1024
	}
	if n > L1DCacheSize*1024 {
		n = L1DCacheSize * 1024
	}
	return n
}

// bootstrapPrimes returns every prime <= limit via a plain (non-wheel)
// bitset sieve. limit is isqrt(isqrt(outer.stop)) here, always small
// enough (at most 65535 for any stop up to max_stop()) that
// wiring the wheel/bucket machinery for it would cost more than it saves.
func bootstrapPrimes(limit uint64) []uint64 {
	if limit < 2 {
		return nil
	}
	bs := bitset.New(uint(limit) + 1)
	for i := uint(2); i <= uint(limit); i++ {
		bs.Set(i)
	}
	for i := uint(2); i*i <= uint(limit); i++ {
		if !bs.Test(i) {
			continue
		}
		for j := i * i; j <= uint(limit); j += i {
			bs.Clear(j)
		}
	}
	out := make([]uint64, 0, 8)
	for i := uint(2); i <= uint(limit); i++ {
		if bs.Test(i) {
			out = append(out, uint64(i))
		}
	}
	return out
}
