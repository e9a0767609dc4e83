package soe

import (
	"math"

	"leb.io/primesieve/bucket"
	"leb.io/primesieve/erat"
	"leb.io/primesieve/presieve"
	"leb.io/primesieve/wheel"
)

// Consumer receives each sieved segment plus the hard-coded small primes,
// in ascending order, as a SieveOfEratosthenes advances across [start, stop].
type Consumer interface {
	// Init is called once, before SmallPrimes or Segment, with the
	// sieve's bounds. A tuplet consumer needs stop to know which
	// candidates' smallest member still counts, since a segment's tail
	// may legitimately hold correctly-sieved bits past stop (kept
	// there only so a tuplet pattern can look beyond stop for a
	// qualifying candidate near the boundary).
	Init(start, stop uint64)
	// SmallPrimes is called once, before the first segment, with 2, 3
	// and 5 filtered down to those lying in [start, stop].
	SmallPrimes(primes []uint64) error
	// Segment is called once per sieved segment with the finished
	// wheel-30 bitmap covering [lo, lo+30*len(segment)); bits for
	// numbers below start are already cleared. Bits past stop are left
	// correctly sieved rather than cleared, since the last segment's
	// tail commonly extends past stop and a tuplet pattern may need to
	// look past stop to resolve a candidate whose smallest member does
	// not. isLast reports whether this is the final segment.
	Segment(segment []byte, lo uint64, isLast bool) error
}

// SieveOfEratosthenes drives a segmented, wheel-30 sieve of [start, stop],
// dispatching each sieving prime to the size-appropriate erat engine and
// delivering finished segments to a Consumer.
type SieveOfEratosthenes struct {
	Config
	Counters

	start, stop uint64
	sqrtStop    uint64
	segLo0      uint64

	smallBoundary  uint64
	mediumBoundary uint64

	arena *bucket.Arena
	pre   *presieve.PreSieve

	small  *erat.Small
	medium *erat.Medium
	big    *erat.Big

	consumer     Consumer
	segment      []byte
	smallEmitted bool
}

// NewSieve constructs a sieve over [start, stop] that reports to consumer.
// Every sieving prime the caller intends to use must be added via
// AddSievingPrime before calling Sieve.
func NewSieve(start, stop uint64, cfg Config, consumer Consumer) (*SieveOfEratosthenes, error) {
	cfg = cfg.normalized()
	if start > stop {
		start = stop + 1 // empty range; Sieve becomes a no-op
	}

	segLo0 := (start / wheel.NumbersPerByte) * wheel.NumbersPerByte
	sqrtStop := isqrt(stop)

	arena := bucket.NewArena(cfg.ArenaConfig)
	s := &SieveOfEratosthenes{
		Config:         cfg,
		start:          start,
		stop:           stop,
		sqrtStop:       sqrtStop,
		segLo0:         segLo0,
		smallBoundary:  uint64(cfg.SmallFactor * float64(cfg.SegmentBytes)),
		mediumBoundary: uint64(cfg.MediumFactor * float64(cfg.SegmentBytes)),
		arena:          arena,
		pre:            presieve.New(cfg.PresieveLimit),
		small:          erat.NewSmall(arena),
		medium:         erat.NewMedium(arena),
		big:            erat.NewBig(arena, uint64(cfg.SegmentBytes), segLo0, sqrtStop),
		consumer:       consumer,
		segment:        make([]byte, cfg.SegmentBytes),
	}
	return s, nil
}

func isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	x := uint64(math.Sqrt(float64(n)))
	for x > 0 && x*x > n {
		x--
	}
	for (x+1)*(x+1) <= n {
		x++
	}
	return x
}

func maxUint64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// SqrtStop returns floor(sqrt(stop)), the upper bound on sieving primes
// this sieve needs.
func (s *SieveOfEratosthenes) SqrtStop() uint64 { return s.sqrtStop }

// Start and Stop return the sieve's configured bounds.
func (s *SieveOfEratosthenes) Start() uint64 { return s.start }
func (s *SieveOfEratosthenes) Stop() uint64   { return s.stop }

// AddSievingPrime registers p (p > 5) as a sieving prime: its first
// cross-off position is the smallest coprime-to-30 multiple of p that is
// both >= p*p and >= the sieve's first segment boundary, and it is routed
// to EratSmall, EratMedium or EratBig by the configured size factors.
func (s *SieveOfEratosthenes) AddSievingPrime(p uint64) {
	base := maxUint64(p*p, s.segLo0)
	next, idx := wheel.FirstMultiple(p, base)
	wp := bucket.WheelPrime{Prime: p, Next: next, WheelIndex: idx}
	switch {
	case p <= s.smallBoundary:
		s.small.Add(wp)
		s.Counters.SmallCount++
	case p <= s.mediumBoundary:
		s.medium.Add(wp)
		s.Counters.MediumCount++
	default:
		s.big.Add(wp)
		s.Counters.BigCount++
	}
}

// Sieve runs every segment from the first covering start through the one
// covering stop+maxTupletOffset, calling back into the Consumer after
// each, so that a tuplet consumer can confirm a candidate near stop
// whose larger members lie past stop.
func (s *SieveOfEratosthenes) Sieve() error {
	s.consumer.Init(s.start, s.stop)
	if s.start > s.stop {
		return s.emitSmallPrimes()
	}
	if err := s.emitSmallPrimes(); err != nil {
		return err
	}

	span := uint64(s.Config.SegmentBytes) * wheel.NumbersPerByte
	last := s.stop + maxTupletOffset
	for lo := s.segLo0; lo <= last; lo += span {
		hi := lo + span // exclusive
		isLast := hi > last

		s.pre.Apply(s.segment, lo)
		if lo == s.segLo0 {
			clearBelow(s.segment, lo, maxUint64(s.start, 7))
		}
		s.small.CrossOff(s.segment, lo)
		s.medium.CrossOff(s.segment, lo)
		s.big.CrossOff(s.segment, lo)

		s.Counters.Segments++
		if err := s.consumer.Segment(s.segment, lo, isLast); err != nil {
			return err
		}
	}
	return nil
}

func (s *SieveOfEratosthenes) emitSmallPrimes() error {
	if s.smallEmitted {
		return nil
	}
	s.smallEmitted = true
	var primes []uint64
	for _, p := range [3]uint64{2, 3, 5} {
		if p >= s.start && p <= s.stop {
			primes = append(primes, p)
		}
	}
	return s.consumer.SmallPrimes(primes)
}

// clearBelow clears every bit in segment (based at lo) whose represented
// number is below threshold.
func clearBelow(segment []byte, lo, threshold uint64) {
	for i := range segment {
		byteLo := lo + uint64(i)*wheel.NumbersPerByte
		if byteLo+29 < threshold {
			segment[i] = 0
			continue
		}
		if byteLo >= threshold {
			continue
		}
		for bit, r := range wheel.Residues {
			if byteLo+uint64(r) < threshold {
				segment[i] &= wheel.UnsetMask(uint8(bit))
			}
		}
	}
}
