package primesieve

import "leb.io/primesieve/soe"

// Config collects this module's tunables, built with functional
// options over soe's Config/Counters pair rather than a package of global
// mutable vars.
type Config struct {
	soeConfig soe.Config
	threads   int
}

// Option configures a Config produced by NewConfig.
type Option func(*Config)

// WithSegmentBytes sets the per-segment sieve buffer size. Must be a
// multiple of 1024 in [1KB, 8192KB]; any valid choice produces identical
// results, only different performance.
func WithSegmentBytes(n int) Option {
	return func(c *Config) { c.soeConfig.SegmentBytes = n }
}

// WithPresieveLimit sets the presieve limit in soe.MinPresieve..soe.MaxPresieve.
func WithPresieveLimit(limit int) Option {
	return func(c *Config) { c.soeConfig.PresieveLimit = limit }
}

// WithEratFactors overrides the EratSmall/EratMedium boundary factors.
func WithEratFactors(small, medium float64) Option {
	return func(c *Config) {
		c.soeConfig.SmallFactor = small
		c.soeConfig.MediumFactor = medium
	}
}

// WithThreads sets the worker count for parallel operations; 0 means all
// cores.
func WithThreads(n int) Option {
	return func(c *Config) { c.threads = n }
}

// NewConfig builds a Config from the primesieve-standard defaults plus
// any supplied options.
func NewConfig(opts ...Option) Config {
	c := Config{soeConfig: soe.DefaultConfig()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

func (c Config) sieve() soe.Config { return c.soeConfig }
