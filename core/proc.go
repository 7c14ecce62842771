package core

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// pid is cached once per process; fork is not a concern for a logging
// core, and querying it on every record would be wasted work.
var pid = os.Getpid()

// PID returns the cached OS process id.
func PID() int { return pid }

var processName = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		return strconv.Itoa(pid)
	}
	return filepath.Base(exe)
})

// ProcessName returns the short name of the current executable, cached
// on first use. When the executable path cannot be resolved it falls
// back to the decimal process id.
func ProcessName() string { return processName() }
