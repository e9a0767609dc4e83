package soe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leb.io/primesieve/soe"
)

// countPrimes runs a full generator+sieve pass over [start, stop] and
// returns how many primes it found, exercising C5, C6 and the K==0
// Finder path together.
func countPrimes(t *testing.T, start, stop uint64, cfg soe.Config) uint64 {
	t.Helper()
	finder := soe.NewCountFinder(0)
	s, err := soe.NewSieve(start, stop, cfg, finder)
	require.NoError(t, err)

	gen := soe.NewGenerator(s)
	require.NoError(t, gen.Run())
	require.NoError(t, s.Sieve())
	return finder.Count
}

func smallConfig() soe.Config {
	cfg := soe.DefaultConfig()
	cfg.SegmentBytes = 64 // force many small segments to exercise boundaries
	return cfg
}

func TestCountPrimesUpTo100(t *testing.T) {
	assert.EqualValues(t, 25, countPrimes(t, 1, 100, smallConfig()))
}

func TestCountPrimesUpTo10(t *testing.T) {
	assert.EqualValues(t, 4, countPrimes(t, 0, 10, smallConfig()))
}

func TestCountPrimesAdditivity(t *testing.T) {
	cfg := smallConfig()
	a, b, c := uint64(1), uint64(500), uint64(2000)
	whole := countPrimes(t, a, c, cfg)
	left := countPrimes(t, a, b, cfg)
	right := countPrimes(t, b+1, c, cfg)
	assert.Equal(t, whole, left+right)
}

func TestCountPrimesSegmentSizeInvariance(t *testing.T) {
	var results []uint64
	for _, sb := range []int{32, 64, 256, 1024} {
		cfg := soe.DefaultConfig()
		cfg.SegmentBytes = sb
		results = append(results, countPrimes(t, 2, 5000, cfg))
	}
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func TestCountPrimesPresieveLimitInvariance(t *testing.T) {
	var results []uint64
	for _, limit := range []int{11, 13, 19, 23} {
		cfg := smallConfig()
		cfg.PresieveLimit = limit
		results = append(results, countPrimes(t, 2, 5000, cfg))
	}
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func TestCountPrimesEmptyRange(t *testing.T) {
	assert.EqualValues(t, 0, countPrimes(t, 100, 50, smallConfig()))
}

func TestCallbackPrimesYieldsAscendingOrder(t *testing.T) {
	var got []uint64
	finder := soe.NewCallbackFinder(func(p uint64) { got = append(got, p) })
	s, err := soe.NewSieve(1, 30, smallConfig(), finder)
	require.NoError(t, err)
	gen := soe.NewGenerator(s)
	require.NoError(t, gen.Run())
	require.NoError(t, s.Sieve())

	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29}, got)
}

func TestCallbackPanicIsRecoveredAsErrCallback(t *testing.T) {
	finder := soe.NewCallbackFinder(func(p uint64) {
		if p == 7 {
			panic("boom")
		}
	})
	s, err := soe.NewSieve(1, 30, smallConfig(), finder)
	require.NoError(t, err)
	gen := soe.NewGenerator(s)
	require.NoError(t, gen.Run())

	err = s.Sieve()
	assert.ErrorIs(t, err, soe.ErrCallback)
}
