//go:build linux

package core

import "golang.org/x/sys/unix"

// ThreadID returns the OS thread id of the calling thread. Goroutines
// migrate between threads, so the value identifies where the record was
// produced, not a stable per-goroutine identity.
func ThreadID() uint64 {
	return uint64(unix.Gettid())
}
