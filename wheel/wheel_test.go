package wheel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leb.io/primesieve/wheel"
)

func TestResiduesAreCoprimeTo30(t *testing.T) {
	for _, r := range wheel.Residues {
		n := int(r)
		assert.NotZero(t, n%2)
		assert.NotZero(t, n%3)
		assert.NotZero(t, n%5)
	}
}

func TestGapsSumToAWheelPeriod(t *testing.T) {
	sum := 0
	for _, g := range wheel.Gaps {
		sum += int(g)
	}
	assert.Equal(t, 30, sum)
}

func TestBitOfRoundTrips(t *testing.T) {
	for i, r := range wheel.Residues {
		bit, ok := wheel.BitOf(r)
		assert.True(t, ok)
		assert.Equal(t, uint8(i), bit)
	}
	for _, r := range []uint8{0, 2, 3, 4, 6, 8, 9, 10, 12, 15} {
		_, ok := wheel.BitOf(r)
		assert.False(t, ok, "residue %d should not be coprime to 30", r)
	}
}

func TestStartIndexMatchesResidue(t *testing.T) {
	for i, r := range wheel.Residues {
		p := uint64(r) + 30 // a number above 30 in this residue class (49 is not prime; StartIndex only reads the residue)
		assert.Equal(t, uint8(i), wheel.StartIndex(p))
	}
}

func TestNumberAtReconstructsByteZeroResidues(t *testing.T) {
	// byte 0 of the segment starting at 0 holds residues 1,7,...,29.
	for bit, r := range wheel.Residues {
		got := wheel.NumberAt(0, 0, uint8(bit))
		assert.Equal(t, uint64(r), got)
	}
}
