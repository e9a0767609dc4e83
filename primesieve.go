// Package primesieve implements a segmented, wheel-30 sieve of
// Eratosthenes for counting, printing and enumerating primes and prime
// k-tuplets over arbitrary 64-bit ranges, serially or across a pool of
// goroutines, plus locating the n-th prime relative to a starting point.
package primesieve

import (
	"io"

	"leb.io/primesieve/nthprime"
	"leb.io/primesieve/parallel"
	"leb.io/primesieve/soe"
)

// MaxStop returns the largest value any operation in this package accepts
// as stop: (2^64 - 1) - (2^32 - 1)*10.
func MaxStop() uint64 {
	return ^uint64(0) - (uint64(^uint32(0)) * 10)
}

func validateRange(stop uint64) error {
	if stop > MaxStop() {
		return ErrInvalidRange
	}
	return nil
}

// CountPrimes returns the number of primes in [start, stop].
func CountPrimes(start, stop uint64, opts ...Option) (uint64, error) {
	return countGeneric(0, start, stop, NewConfig(opts...))
}

// CountTwins, CountTriplets, CountQuadruplets, CountQuintuplets,
// CountSextuplets and CountSeptuplets count prime k-tuplets whose
// smallest member lies in [start, stop].
func CountTwins(start, stop uint64, opts ...Option) (uint64, error) {
	return countGeneric(2, start, stop, NewConfig(opts...))
}
func CountTriplets(start, stop uint64, opts ...Option) (uint64, error) {
	return countGeneric(3, start, stop, NewConfig(opts...))
}
func CountQuadruplets(start, stop uint64, opts ...Option) (uint64, error) {
	return countGeneric(4, start, stop, NewConfig(opts...))
}
func CountQuintuplets(start, stop uint64, opts ...Option) (uint64, error) {
	return countGeneric(5, start, stop, NewConfig(opts...))
}
func CountSextuplets(start, stop uint64, opts ...Option) (uint64, error) {
	return countGeneric(6, start, stop, NewConfig(opts...))
}
func CountSeptuplets(start, stop uint64, opts ...Option) (uint64, error) {
	return countGeneric(7, start, stop, NewConfig(opts...))
}

// ParallelCountPrimes and its k-tuplet siblings split [start, stop] across
// WithThreads(n) workers (0 = all cores) and sum the per-worker counts;
// the result always equals the serial count.
func ParallelCountPrimes(start, stop uint64, opts ...Option) (uint64, error) {
	return parallelCountGeneric(0, start, stop, NewConfig(opts...))
}
func ParallelCountTwins(start, stop uint64, opts ...Option) (uint64, error) {
	return parallelCountGeneric(2, start, stop, NewConfig(opts...))
}
func ParallelCountTriplets(start, stop uint64, opts ...Option) (uint64, error) {
	return parallelCountGeneric(3, start, stop, NewConfig(opts...))
}
func ParallelCountQuadruplets(start, stop uint64, opts ...Option) (uint64, error) {
	return parallelCountGeneric(4, start, stop, NewConfig(opts...))
}
func ParallelCountQuintuplets(start, stop uint64, opts ...Option) (uint64, error) {
	return parallelCountGeneric(5, start, stop, NewConfig(opts...))
}
func ParallelCountSextuplets(start, stop uint64, opts ...Option) (uint64, error) {
	return parallelCountGeneric(6, start, stop, NewConfig(opts...))
}
func ParallelCountSeptuplets(start, stop uint64, opts ...Option) (uint64, error) {
	return parallelCountGeneric(7, start, stop, NewConfig(opts...))
}

// PrintPrimes and its k-tuplet siblings write one decimal number per line
// (or one parenthesized, comma-separated tuplet per line) to w, in
// ascending order.
func PrintPrimes(w io.Writer, start, stop uint64, opts ...Option) error {
	return printGeneric(w, 0, start, stop, NewConfig(opts...))
}
func PrintTwins(w io.Writer, start, stop uint64, opts ...Option) error {
	return printGeneric(w, 2, start, stop, NewConfig(opts...))
}
func PrintTriplets(w io.Writer, start, stop uint64, opts ...Option) error {
	return printGeneric(w, 3, start, stop, NewConfig(opts...))
}
func PrintQuadruplets(w io.Writer, start, stop uint64, opts ...Option) error {
	return printGeneric(w, 4, start, stop, NewConfig(opts...))
}
func PrintQuintuplets(w io.Writer, start, stop uint64, opts ...Option) error {
	return printGeneric(w, 5, start, stop, NewConfig(opts...))
}
func PrintSextuplets(w io.Writer, start, stop uint64, opts ...Option) error {
	return printGeneric(w, 6, start, stop, NewConfig(opts...))
}
func PrintSeptuplets(w io.Writer, start, stop uint64, opts ...Option) error {
	return printGeneric(w, 7, start, stop, NewConfig(opts...))
}

// ParallelPrintPrimes is equivalent to PrintPrimes: printed output must
// stay in ascending order, so a parallel dispatch buys nothing here. The
// k-tuplet print functions have no parallel variant.
func ParallelPrintPrimes(w io.Writer, start, stop uint64, opts ...Option) error {
	return PrintPrimes(w, start, stop, opts...)
}

// CallbackPrimes invokes fn once per prime in [start, stop], in ascending
// order. If fn panics, the sieve stops and CallbackPrimes returns
// ErrCallback.
func CallbackPrimes(start, stop uint64, fn func(p uint64), opts ...Option) error {
	return callbackGeneric(start, stop, fn, NewConfig(opts...))
}

// ParallelCallbackPrimes splits [start, stop] across WithThreads(n)
// workers and invokes fn with each prime plus the worker's thread id.
// Primes are in ascending order within one worker's sub-interval only;
// across workers they may interleave arbitrarily, and fn must be safe to
// call concurrently.
func ParallelCallbackPrimes(start, stop uint64, fn func(p uint64, threadID int), opts ...Option) error {
	cfg := NewConfig(opts...)
	if err := validateRange(stop); err != nil {
		return err
	}
	if start > stop {
		return nil
	}
	d := parallel.New(parallel.Config{Threads: cfg.threads})
	return d.CallbackPrimes(start, stop, fn, cfg.sieve())
}

// NthPrime returns the n-th prime strictly greater than start (n > 0) or
// strictly less than start (n < 0). n == 0 is ErrInvalidRange.
func NthPrime(n int64, start uint64, opts ...Option) (uint64, error) {
	cfg := NewConfig(opts...)
	p, err := nthprime.Locate(n, start, cfg.sieve())
	return p, wrapRangeErr(err)
}

// ParallelNthPrime is NthPrime: locating the n-th prime is an inherently
// sequential expanding-window search, so there is no independent
// sub-interval decomposition to parallelize the way counting and
// callback operations have. Kept as a distinct name to complete the
// public surface complete and explicit about what it does.
func ParallelNthPrime(n int64, start uint64, opts ...Option) (uint64, error) {
	return NthPrime(n, start, opts...)
}

func countGeneric(k int, start, stop uint64, cfg Config) (uint64, error) {
	if err := validateRange(stop); err != nil {
		return 0, err
	}
	if start > stop {
		return 0, nil
	}
	finder := soe.NewCountFinder(k)
	s, err := soe.NewSieve(start, stop, cfg.sieve(), finder)
	if err != nil {
		return 0, err
	}
	if err := soe.NewGenerator(s).Run(); err != nil {
		return 0, err
	}
	if err := s.Sieve(); err != nil {
		return 0, err
	}
	return finder.Count, nil
}

func parallelCountGeneric(k int, start, stop uint64, cfg Config) (uint64, error) {
	if err := validateRange(stop); err != nil {
		return 0, err
	}
	if start > stop {
		return 0, nil
	}
	d := parallel.New(parallel.Config{Threads: cfg.threads})
	return d.Count(start, stop, k, cfg.sieve())
}

func printGeneric(w io.Writer, k int, start, stop uint64, cfg Config) error {
	if err := validateRange(stop); err != nil {
		return err
	}
	if start > stop {
		return nil
	}
	finder := soe.NewPrintFinder(w, k)
	s, err := soe.NewSieve(start, stop, cfg.sieve(), finder)
	if err != nil {
		return err
	}
	if err := soe.NewGenerator(s).Run(); err != nil {
		return err
	}
	return s.Sieve()
}

func callbackGeneric(start, stop uint64, fn func(uint64), cfg Config) error {
	if err := validateRange(stop); err != nil {
		return err
	}
	if start > stop {
		return nil
	}
	finder := soe.NewCallbackFinder(fn)
	s, err := soe.NewSieve(start, stop, cfg.sieve(), finder)
	if err != nil {
		return err
	}
	if err := soe.NewGenerator(s).Run(); err != nil {
		return err
	}
	return s.Sieve()
}
