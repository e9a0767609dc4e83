package bucket_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leb.io/primesieve/bucket"
)

func TestArenaAllocGrowsAndRecycles(t *testing.T) {
	a := bucket.NewArena(bucket.Config{SlabBuckets: 4})
	b1 := a.Alloc()
	require.NotNil(t, b1)
	assert.Equal(t, 1, a.Slabs)
	assert.Equal(t, 4, a.BucketsTotal)
	assert.Equal(t, 1, a.BucketsLive)

	b1.Add(bucket.WheelPrime{Prime: 7})
	assert.Equal(t, 1, b1.Count)

	a.Free(b1)
	assert.Equal(t, 0, a.BucketsLive)

	b2 := a.Alloc()
	assert.Equal(t, 0, b2.Count, "recycled buckets must come back zeroed")
	assert.Equal(t, 1, a.Slabs, "recycled bucket must not trigger a new slab")
}

func TestArenaGrowsANewSlabWhenExhausted(t *testing.T) {
	a := bucket.NewArena(bucket.Config{SlabBuckets: 2})
	a.Alloc()
	a.Alloc()
	a.Alloc() // exhausts the first slab of 2
	assert.Equal(t, 2, a.Slabs)
}

func TestBucketFull(t *testing.T) {
	var b bucket.Bucket
	for i := 0; i < bucket.Capacity; i++ {
		assert.False(t, b.Full())
		b.Add(bucket.WheelPrime{Prime: uint64(i)})
	}
	assert.True(t, b.Full())
}
