package reftest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"leb.io/primesieve/internal/reftest"
)

func TestFingerprintIsOrderIndependent(t *testing.T) {
	a := []uint64{2, 3, 5, 7, 11}
	b := []uint64{11, 7, 2, 5, 3}
	assert.Equal(t, reftest.Fingerprint(a), reftest.Fingerprint(b))
}

func TestFingerprintDiffersOnDifferentSets(t *testing.T) {
	a := reftest.Fingerprint([]uint64{2, 3, 5})
	b := reftest.Fingerprint([]uint64{2, 3, 7})
	assert.NotEqual(t, a, b)
}

func TestDuplicateDetectorFlagsRepeats(t *testing.T) {
	d := reftest.NewDuplicateDetector(1, 100)
	assert.False(t, d.Mark(7))
	assert.True(t, d.Mark(7))
	assert.False(t, d.Mark(11))
}

func TestSeedIsDeterministic(t *testing.T) {
	a := reftest.Seed("count_primes_property")
	b := reftest.Seed("count_primes_property")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, reftest.Seed("other_property"))
}

func TestSnapshotEncodeProducesSameBytes(t *testing.T) {
	s := reftest.Snapshot{Segments: 3, SmallCount: 10, MediumCount: 4, BigCount: 1}
	b1, err := reftest.Encode(s)
	assert.NoError(t, err)
	b2, err := reftest.Encode(s)
	assert.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestReferencePiCheckpoints(t *testing.T) {
	assert.EqualValues(t, 4, reftest.ReferencePi[10])
	assert.EqualValues(t, 78498, reftest.ReferencePi[1000000])
}
