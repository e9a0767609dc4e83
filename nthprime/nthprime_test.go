package nthprime_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leb.io/primesieve/nthprime"
	"leb.io/primesieve/soe"
)

func smallConfig() soe.Config {
	cfg := soe.DefaultConfig()
	cfg.SegmentBytes = 64
	return cfg
}

func countPrimesUpTo(t *testing.T, stop uint64) uint64 {
	t.Helper()
	finder := soe.NewCountFinder(0)
	s, err := soe.NewSieve(0, stop, smallConfig(), finder)
	require.NoError(t, err)
	require.NoError(t, soe.NewGenerator(s).Run())
	require.NoError(t, s.Sieve())
	return finder.Count
}

func TestLocateFirstPrime(t *testing.T) {
	p, err := nthprime.Locate(1, 0, smallConfig())
	require.NoError(t, err)
	assert.EqualValues(t, 2, p)
}

func TestLocateTwentyFifthPrime(t *testing.T) {
	p, err := nthprime.Locate(25, 0, smallConfig())
	require.NoError(t, err)
	assert.EqualValues(t, 97, p)
}

func TestLocateMillionthPrime(t *testing.T) {
	p, err := nthprime.Locate(1000000, 0, soe.DefaultConfig())
	require.NoError(t, err)
	assert.EqualValues(t, 15485863, p)
}

func TestLocateBackwardFromGivenPoint(t *testing.T) {
	p, err := nthprime.Locate(-1, 100, smallConfig())
	require.NoError(t, err)
	assert.EqualValues(t, 97, p)

	p, err = nthprime.Locate(-2, 100, smallConfig())
	require.NoError(t, err)
	assert.EqualValues(t, 89, p)
}

func TestLocateZeroIsInvalid(t *testing.T) {
	_, err := nthprime.Locate(0, 0, smallConfig())
	assert.True(t, errors.Is(err, nthprime.ErrInvalidRange))
}

func TestLocateBackwardBelowSmallestPrimeIsInvalid(t *testing.T) {
	_, err := nthprime.Locate(-1, 2, smallConfig())
	assert.True(t, errors.Is(err, nthprime.ErrInvalidRange))
}

func TestInverseMatchesCountPrimes(t *testing.T) {
	for _, k := range []int64{1, 6, 25, 100} {
		p, err := nthprime.Locate(k, 0, smallConfig())
		require.NoError(t, err)
		assert.EqualValues(t, k, countPrimesUpTo(t, p))
	}
}
