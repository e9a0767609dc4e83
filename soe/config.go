// Package soe implements the per-segment sieve driver (SieveOfEratosthenes),
// its self-bootstrapping sieving-prime generator, and the prime/k-tuplet
// consumer that turns sieve bits into counted or reconstructed output.
package soe

import "leb.io/primesieve/bucket"

// Tunables mirroring the original primesieve's defs.h defaults.
const (
	L1DCacheSize   = 32  // KB
	L2CacheSize    = 256 // KB
	MinPresieve    = 11
	MaxPresieve    = 23
	DefaultPresieve = 19

	MinThreadInterval = 100000000 // 1e8

	ERatSmallFactor  = 1.5
	ERatMediumFactor = 9.0

	ERatBaseBucketSize = 4096
	ERatBigBucketSize  = 1024
	ERatBigMemPerAlloc = 4 << 20
)

// Config carries the tunables a SieveOfEratosthenes is constructed with,
// as exported tunables (see bucket.Config for the same shape).
type Config struct {
	SegmentBytes  int     // sieve segment size in bytes; a multiple of 1024
	PresieveLimit int     // 11..23
	SmallFactor   float64 // EratSmall / EratMedium boundary factor
	MediumFactor  float64
	ArenaConfig   bucket.Config
}

// DefaultConfig returns the primesieve-standard tunables: an L1-sized
// segment, a presieve limit of 19, and the standard Small/Medium factors.
func DefaultConfig() Config {
	return Config{
		SegmentBytes:  L1DCacheSize * 1024,
		PresieveLimit: DefaultPresieve,
		SmallFactor:   ERatSmallFactor,
		MediumFactor:  ERatMediumFactor,
	}
}

func (c Config) normalized() Config {
	if c.SegmentBytes <= 0 {
		c.SegmentBytes = L1DCacheSize * 1024
	}
	if c.PresieveLimit == 0 {
		c.PresieveLimit = DefaultPresieve
	}
	if c.SmallFactor == 0 {
		c.SmallFactor = ERatSmallFactor
	}
	if c.MediumFactor == 0 {
		c.MediumFactor = ERatMediumFactor
	}
	return c
}

// Counters tracks per-sieve statistics, exported like bucket.Counters.
type Counters struct {
	Segments   int // number of segments processed
	SmallCount int // sieving primes routed to EratSmall
	MediumCount int
	BigCount   int
}
