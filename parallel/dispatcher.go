// Package parallel implements the segment dispatcher that splits a sieve
// range into thread-sized, wheel-30-aligned chunks and runs an
// independent soe.SieveOfEratosthenes per chunk, reducing their results
// according to the consumer mode.
package parallel

import (
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/willf/bitset"
	"leb.io/hrff"

	"leb.io/primesieve/soe"
)

// MinThreadInterval is the smallest range, in integers, worth splitting
// across more than one worker.
const MinThreadInterval = soe.MinThreadInterval

// Config carries the dispatcher's tunables.
type Config struct {
	Threads int // 0 means "use all cores"
}

// Counters tracks the shape and throughput of the most recent dispatch.
type Counters struct {
	Workers int
	Chunks  int
	Elapsed time.Duration
	Counted uint64
}

// Dispatcher splits [start, stop] across goroutines, one per chunk.
type Dispatcher struct {
	Config
	Counters
}

// New creates a Dispatcher with the given tunables.
func New(cfg Config) *Dispatcher {
	return &Dispatcher{Config: cfg}
}

type chunk struct {
	start, stop uint64
}

func ceilDiv(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// planChunks divides [start, stop] into n sub-intervals, n being the
// smallest of the requested threads, ceil(interval/MinThreadInterval)
// and the core count. Every chunk but the last is interval/n rounded
// down to a multiple of 30 wide, so chunk boundaries are start plus a
// multiple of 30 and a chunk can be narrower than MinThreadInterval; the
// last chunk absorbs the remainder. A range narrower than
// MinThreadInterval always yields a single chunk (serial execution).
func planChunks(start, stop uint64, requestedThreads int) []chunk {
	if start > stop {
		return []chunk{{start, stop}}
	}
	interval := stop - start + 1
	if interval < MinThreadInterval {
		return []chunk{{start, stop}}
	}

	cores := runtime.NumCPU()
	threads := requestedThreads
	if threads <= 0 {
		threads = cores
	}
	n := threads
	if byInterval := int(ceilDiv(interval, MinThreadInterval)); byInterval < n {
		n = byInterval
	}
	if cores < n {
		n = cores
	}
	if n < 1 {
		n = 1
	}

	base := interval / uint64(n)
	base -= base % 30
	if base == 0 {
		base = interval
	}

	chunks := make([]chunk, 0, n)
	lo := start
	for i := 0; i < n-1; i++ {
		hi := lo + base - 1
		chunks = append(chunks, chunk{lo, hi})
		lo = hi + 1
	}
	chunks = append(chunks, chunk{lo, stop})
	return chunks
}

// Run sieves every chunk of [start, stop] concurrently, each with its own
// sieve, generator and Finder built by newFinder. If any worker fails,
// the first such error is returned; per-chunk finders are still returned
// so a caller can inspect partial results.
func (d *Dispatcher) Run(start, stop uint64, sieveCfg soe.Config, newFinder func(threadID int) *soe.Finder) ([]*soe.Finder, error) {
	chunks := planChunks(start, stop, d.Threads)
	d.Counters.Chunks = len(chunks)
	d.Counters.Workers = len(chunks)

	results := make([]*soe.Finder, len(chunks))
	errs := make([]error, len(chunks))
	failed := bitset.New(uint(len(chunks)))

	var wg sync.WaitGroup
	for i, c := range chunks {
		wg.Add(1)
		go func(i int, c chunk) {
			defer wg.Done()
			finder := newFinder(i)
			s, err := soe.NewSieve(c.start, c.stop, sieveCfg, finder)
			if err != nil {
				errs[i] = err
				failed.Set(uint(i))
				return
			}
			gen := soe.NewGenerator(s)
			if err := gen.Run(); err != nil {
				errs[i] = err
				failed.Set(uint(i))
				return
			}
			if err := s.Sieve(); err != nil {
				errs[i] = err
				failed.Set(uint(i))
				return
			}
			results[i] = finder
		}(i, c)
	}
	wg.Wait()

	for i := uint(0); i < failed.Len(); i++ {
		if failed.Test(i) {
			return results, errs[i]
		}
	}
	return results, nil
}

// Count runs Run with a counting Finder per chunk (k == 0 for plain
// primes, 2..7 for k-tuplets) and sums the per-chunk counts.
func (d *Dispatcher) Count(start, stop uint64, k int, sieveCfg soe.Config) (uint64, error) {
	begin := time.Now()
	results, err := d.Run(start, stop, sieveCfg, func(threadID int) *soe.Finder {
		return soe.NewCountFinder(k)
	})
	d.Counters.Elapsed = time.Since(begin)
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, f := range results {
		if f != nil {
			total += f.Count
		}
	}
	d.Counters.Counted = total
	return total, nil
}

// Print sieves [start, stop] serially: printed output must stay in
// ascending order, so parallel_print is equivalent to serial print (spec
// section 4.10) rather than a real dispatch.
func (d *Dispatcher) Print(w io.Writer, start, stop uint64, k int, sieveCfg soe.Config) error {
	finder := soe.NewPrintFinder(w, k)
	s, err := soe.NewSieve(start, stop, sieveCfg, finder)
	if err != nil {
		return err
	}
	gen := soe.NewGenerator(s)
	if err := gen.Run(); err != nil {
		return err
	}
	return s.Sieve()
}

// CallbackPrimes dispatches across workers, invoking fn with each
// worker's index as thread id. Primes are delivered in ascending order
// within a worker's chunk only; across chunks they may interleave
// arbitrarily, and fn must be safe to call from multiple goroutines.
func (d *Dispatcher) CallbackPrimes(start, stop uint64, fn func(p uint64, threadID int), sieveCfg soe.Config) error {
	_, err := d.Run(start, stop, sieveCfg, func(threadID int) *soe.Finder {
		return soe.NewThreadCallbackFinder(fn, threadID)
	})
	return err
}

// Stats renders a human-readable summary of the last dispatch, reporting
// throughput in primes/sec.
func (d *Dispatcher) Stats() string {
	var ops hrff.Float64
	if d.Counters.Elapsed > 0 {
		ops = hrff.Float64{V: float64(d.Counters.Counted) / d.Counters.Elapsed.Seconds(), U: "primes/sec"}
	}
	return fmt.Sprintf("parallel.Dispatcher: workers=%d chunks=%d %v",
		d.Counters.Workers, d.Counters.Chunks, ops)
}
