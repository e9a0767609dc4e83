// Package siginfo lets a long-running parallel count or nth-prime search
// register a cooperative progress callback, fired on SIGINFO (BSD/macOS,
// bound to ^T at the terminal) or SIGUSR1 (everywhere else). This is
// optional and non-contractual: nothing in this module depends on it
// firing.
package siginfo

import (
	"os"
	"os/signal"
	"syscall"
)

// SIGINFO isn't part of the stdlib's syscall constants, but it's 29 on
// most BSD-derived systems including macOS.
const SIGINFO = syscall.Signal(29)

// SetHandler runs f every time the process receives SIGINFO or SIGUSR1,
// until the returned stop function is called.
func SetHandler(f func()) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, SIGINFO, syscall.SIGUSR1)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				f()
			case <-done:
				signal.Stop(ch)
				return
			}
		}
	}()
	return func() { close(done) }
}
