package soe

import "errors"

// ErrCallback indicates a user-supplied callback panicked. The Finder
// recovers at the call site, stops emitting further primes, and returns
// this error (wrapped with the recovered value) from Sieve.
var ErrCallback = errors.New("soe: user callback panicked")
