// This program exercises leb.io/primesieve's public API from the
// command line: count, print or enumerate primes and prime k-tuplets
// over a range, serially or in parallel, and locate the n-th prime.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"time"

	primesieve "leb.io/primesieve"
	"leb.io/primesieve/siginfo"

	"leb.io/hrff"
)

var (
	start   = flag.Uint64("start", 0, "start of range")
	stop    = flag.Uint64("stop", 1000000, "end of range")
	mode    = flag.String("mode", "count", "count, print, callback or nth")
	k       = flag.Int("k", 0, "0 for primes, 2..7 for k-tuplets")
	nth     = flag.Int64("n", 1, "n for -mode=nth (negative searches backward from start)")
	threads = flag.Int("threads", 0, "worker count for parallel modes, 0 = all cores")
	serial  = flag.Bool("serial", false, "force serial execution instead of parallel")

	segmentKB = flag.Int("segkb", 32, "segment size in KB")
	presieve  = flag.Int("presieve", 19, "presieve limit, 11..23")

	cpuProfile = flag.String("cp", "", "write CPU profile to file")
	progress   = flag.Bool("progress", false, "log a line on SIGINFO/SIGUSR1")
)

func countFuncs(k int) func(uint64, uint64, ...primesieve.Option) (uint64, error) {
	switch k {
	case 2:
		return primesieve.CountTwins
	case 3:
		return primesieve.CountTriplets
	case 4:
		return primesieve.CountQuadruplets
	case 5:
		return primesieve.CountQuintuplets
	case 6:
		return primesieve.CountSextuplets
	case 7:
		return primesieve.CountSeptuplets
	default:
		return primesieve.CountPrimes
	}
}

func parallelCountFuncs(k int) func(uint64, uint64, ...primesieve.Option) (uint64, error) {
	switch k {
	case 2:
		return primesieve.ParallelCountTwins
	case 3:
		return primesieve.ParallelCountTriplets
	case 4:
		return primesieve.ParallelCountQuadruplets
	case 5:
		return primesieve.ParallelCountQuintuplets
	case 6:
		return primesieve.ParallelCountSextuplets
	case 7:
		return primesieve.ParallelCountSeptuplets
	default:
		return primesieve.ParallelCountPrimes
	}
}

func printFuncs(k int) func(io.Writer, uint64, uint64, ...primesieve.Option) error {
	switch k {
	case 2:
		return primesieve.PrintTwins
	case 3:
		return primesieve.PrintTriplets
	case 4:
		return primesieve.PrintQuadruplets
	case 5:
		return primesieve.PrintQuintuplets
	case 6:
		return primesieve.PrintSextuplets
	case 7:
		return primesieve.PrintSeptuplets
	default:
		return primesieve.PrintPrimes
	}
}

func hu(v uint64, u string) hrff.Int64 { return hrff.Int64{V: int64(v), U: u} }

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *progress {
		stopHandler := siginfo.SetHandler(func() {
			log.Printf("still working: range=[%d, %d] mode=%s", *start, *stop, *mode)
		})
		defer stopHandler()
	}

	opts := []primesieve.Option{
		primesieve.WithSegmentBytes(*segmentKB * 1024),
		primesieve.WithPresieveLimit(*presieve),
		primesieve.WithThreads(*threads),
	}

	begin := time.Now()
	switch *mode {
	case "count":
		var (
			count uint64
			err   error
		)
		if *serial {
			count, err = countFuncs(*k)(*start, *stop, opts...)
		} else {
			count, err = parallelCountFuncs(*k)(*start, *stop, opts...)
		}
		if err != nil {
			log.Fatal(err)
		}
		elapsed := time.Since(begin)
		fmt.Printf("count=%v in %v\n", hu(count, ""), elapsed)

	case "print":
		w := bufio.NewWriter(os.Stdout)
		if err := printFuncs(*k)(w, *start, *stop, opts...); err != nil {
			log.Fatal(err)
		}
		w.Flush()

	case "callback":
		var count uint64
		cb := func(p uint64) { count++ }
		if err := primesieve.CallbackPrimes(*start, *stop, cb, opts...); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("callback saw %v primes in %v\n", hu(count, ""), time.Since(begin))

	case "nth":
		p, err := primesieve.NthPrime(*nth, *start, opts...)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("nth_prime(%d, %d) = %d (%v)\n", *nth, *start, p, time.Since(begin))

	default:
		log.Fatalf("unknown -mode %q: want count, print, callback or nth", *mode)
	}
}
