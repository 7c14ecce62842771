package logger

import (
	"sync"

	"github.com/sablelog/sable/core"
	"github.com/sablelog/sable/formatter"
	"github.com/sablelog/sable/handler"
)

var (
	defaultLogger *Logger
	defaultMu     sync.RWMutex
)

func init() {
	f, err := formatter.NewPattern(
		"{timestamp} [{severity:d}] {message}{...}",
		formatter.WithLeftover("", formatter.LeftoverOptions{
			Prefix: " [",
			Suffix: "]",
		}),
	)
	if err != nil {
		panic(err)
	}
	defaultLogger = New(handler.NewBlocking(f, handler.Console()))
}

// Default returns the default logger.
func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the default logger.
func SetDefault(l *Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// Log dispatches through the default logger.
func Log(severity int, pattern string) {
	Default().Log(severity, pattern)
}

// LogAttrs dispatches through the default logger.
func LogAttrs(severity int, pattern string, pack *core.Pack) {
	Default().LogAttrs(severity, pattern, pack)
}

// LogFunc dispatches through the default logger.
func LogFunc(severity int, pattern string, pack *core.Pack, fn func(*core.Writer)) {
	Default().LogFunc(severity, pattern, pack, fn)
}

// Scoped pushes a scope frame on the default logger.
func Scoped(attrs core.List) *Scope {
	return Default().Scoped(attrs)
}
