package soe_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leb.io/primesieve/soe"
)

func runKTuplets(t *testing.T, start, stop uint64, k int, cfg soe.Config) uint64 {
	t.Helper()
	finder := soe.NewCountFinder(k)
	s, err := soe.NewSieve(start, stop, cfg, finder)
	require.NoError(t, err)
	gen := soe.NewGenerator(s)
	require.NoError(t, gen.Run())
	require.NoError(t, s.Sieve())
	return finder.Count
}

func TestCountTwinsIncludesBoundaryPairs(t *testing.T) {
	// (3,5) and (5,7) both count as twins even though 2, 3 and 5 are not
	// representable in the wheel-30 bitmap.
	got := runKTuplets(t, 1, 10, 2, smallConfig())
	assert.EqualValues(t, 2, got, "(3,5) and (5,7)")
}

func TestCountTwinsSmallRange(t *testing.T) {
	// twins with smallest member in [1,30]: (3,5) (5,7) (11,13) (17,19) (29,31)
	got := runKTuplets(t, 1, 30, 2, smallConfig())
	assert.EqualValues(t, 5, got)
}

func TestCountTripletsFirstKnown(t *testing.T) {
	// (5,7,11) (7,11,13) (11,13,17) (13,17,19) (17,19,23) all have
	// smallest member <= 20.
	got := runKTuplets(t, 1, 20, 3, smallConfig())
	assert.EqualValues(t, 5, got)
}

func TestPrintPrimesWritesOnePerLine(t *testing.T) {
	var buf bytes.Buffer
	finder := soe.NewPrintFinder(&buf, 0)
	s, err := soe.NewSieve(1, 30, smallConfig(), finder)
	require.NoError(t, err)
	gen := soe.NewGenerator(s)
	require.NoError(t, gen.Run())
	require.NoError(t, s.Sieve())

	lines := strings.Fields(buf.String())
	assert.Equal(t, []string{"2", "3", "5", "7", "11", "13", "17", "19", "23", "29"}, lines)
}

func TestPrintTwinsFormatsParenthesizedPairs(t *testing.T) {
	var buf bytes.Buffer
	finder := soe.NewPrintFinder(&buf, 2)
	s, err := soe.NewSieve(1, 30, smallConfig(), finder)
	require.NoError(t, err)
	gen := soe.NewGenerator(s)
	require.NoError(t, gen.Run())
	require.NoError(t, s.Sieve())

	out := buf.String()
	assert.Contains(t, out, "(3, 5)")
	assert.Contains(t, out, "(5, 7)")
	assert.Contains(t, out, "(11, 13)")
	assert.Contains(t, out, "(17, 19)")
	assert.Contains(t, out, "(29, 31)")
}
