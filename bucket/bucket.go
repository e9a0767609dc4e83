// Package bucket implements the slab-allocated WheelPrime storage shared
// by the three cross-off engines in package erat: a free list of
// fixed-capacity Buckets, backed by large slabs so that buckets are
// never individually heap-freed.
package bucket

import (
	"fmt"
	"unsafe"

	"leb.io/hrff"
)

// WheelPrime is a sieving prime plus its running cross-off state.
type WheelPrime struct {
	Prime      uint64 // the sieving prime itself
	Next       uint64 // next multiple of Prime to cross off (always coprime to 30)
	WheelIndex uint8  // position in the wheel.Gaps cycle
}

// Bucket is a fixed-capacity array of WheelPrimes plus a link to the
// next bucket in the same (non-owning) list.
type Bucket struct {
	Primes [Capacity]WheelPrime
	Count  int
	Next   *Bucket
}

// Capacity is a compile-time constant shared by every engine and every
// Arena, sized for ERATBASE_BUCKETSIZE (4096). Every engine, EratBig
// included, fills a bucket to this capacity before taking another.
const Capacity = 4096

// Full reports whether the bucket cannot accept another WheelPrime.
func (b *Bucket) Full() bool { return b.Count >= Capacity }

// Add appends a WheelPrime; the caller must have checked Full first.
func (b *Bucket) Add(wp WheelPrime) {
	b.Primes[b.Count] = wp
	b.Count++
}

// Config holds exported tunables, paired with an exported Counters
// snapshot of resource use.
type Config struct {
	SlabBuckets int // buckets per slab allocation; ERATBIG_MEMORY_PER_ALLOC sized
}

// DefaultConfig matches ERATBIG_MEMORY_PER_ALLOC (4 MiB) worth of
// Capacity-sized buckets per slab.
func DefaultConfig() Config {
	const memoryPerAlloc = 4 << 20
	return Config{SlabBuckets: memoryPerAlloc / bucketBytes()}
}

func bucketBytes() int {
	var b Bucket
	return int(unsafe.Sizeof(b))
}

// Counters tracks arena-wide allocation statistics, all exported for
// inspection by callers.
type Counters struct {
	Slabs        int // number of slab allocations made
	BucketsLive  int // buckets currently handed out (not on the free list)
	BucketsTotal int // buckets ever allocated
}

// Arena is a slab allocator of Buckets. It is owned by exactly one
// SieveOfEratosthenes and is never shared across goroutines.
type Arena struct {
	Config
	Counters
	free *Bucket
}

// NewArena creates an arena using cfg, or DefaultConfig() if cfg is the
// zero value.
func NewArena(cfg Config) *Arena {
	if cfg.SlabBuckets <= 0 {
		cfg = DefaultConfig()
	}
	return &Arena{Config: cfg}
}

// Alloc returns a fresh, zeroed bucket, growing the arena with a new
// slab if the free list is empty.
func (a *Arena) Alloc() *Bucket {
	if a.free == nil {
		a.grow()
	}
	b := a.free
	a.free = b.Next
	b.Next = nil
	b.Count = 0
	a.BucketsLive++
	return b
}

// Free returns b (and, transitively, every bucket already linked after
// it) to the arena's free list.
func (a *Arena) Free(b *Bucket) {
	for b != nil {
		next := b.Next
		b.Next = a.free
		a.free = b
		a.BucketsLive--
		b = next
	}
}

// grow allocates one slab of Config.SlabBuckets fresh buckets and links
// them all onto the free list.
func (a *Arena) grow() {
	slab := make([]Bucket, a.SlabBuckets)
	for i := range slab {
		slab[i].Next = a.free
		a.free = &slab[i]
	}
	a.Slabs++
	a.BucketsTotal += a.SlabBuckets
}

// Stats renders the arena's memory footprint as a human-readable string.
func (a *Arena) Stats() string {
	sz := hrff.Int64{V: int64(a.BucketsTotal * bucketBytes()), U: "B"}
	return fmt.Sprintf("bucket.Arena: slabs=%d buckets_total=%d buckets_live=%d size=%v",
		a.Slabs, a.BucketsTotal, a.BucketsLive, sz)
}
