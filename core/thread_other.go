//go:build !linux

package core

// ThreadID returns the goroutine id on platforms without a cheap way to
// query the OS thread id.
func ThreadID() uint64 {
	return GoroutineID()
}
