package primesieve

import (
	"errors"

	"leb.io/primesieve/nthprime"
	"leb.io/primesieve/soe"
)

// Sentinel error kinds. ErrCallback wraps soe.ErrCallback
// so callers can errors.Is against either.
var (
	ErrInvalidRange = errors.New("primesieve: invalid range")
	ErrOutOfMemory  = errors.New("primesieve: out of memory")
	ErrCallback     = soe.ErrCallback
)

// Sentinel is the historical C-API error value. The counting and
// nth-prime functions of this package return a Go error instead; a
// caller converts their result with ToSentinel.
const Sentinel = ^uint64(0)

// ToSentinel adapts a (uint64, error) result to the historical
// sentinel-on-error contract: n is returned unchanged on success, or
// Sentinel if err is non-nil. No function of this package calls it;
// internal code always threads a real error.
func ToSentinel(n uint64, err error) uint64 {
	if err != nil {
		return Sentinel
	}
	return n
}

func wrapRangeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, nthprime.ErrInvalidRange) {
		return ErrInvalidRange
	}
	return err
}
