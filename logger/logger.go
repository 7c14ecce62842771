package logger

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/sablelog/sable/core"
	"github.com/sablelog/sable/handler"
)

// Filter decides whether a record is dispatched. A nil filter accepts
// every record. Filters must be pure predicates and safe for
// concurrent use.
type Filter func(*core.Record) bool

// MinSeverity returns a filter accepting records at or above the given
// severity.
func MinSeverity(min int) Filter {
	return func(r *core.Record) bool {
		return r.Severity >= min
	}
}

// inner is the immutable filter-and-handlers bundle. It is never
// mutated after publication; SetFilter and SetHandlers build a fresh
// one and swap the pointer.
type inner struct {
	filter   Filter
	handlers []handler.Handler
}

// Logger fans records out to a set of handlers. All methods are safe
// for concurrent use.
type Logger struct {
	inner  atomic.Pointer[inner]
	mu     sync.Mutex
	scopes registry
}

// New creates a logger with no filter and the given handlers.
func New(handlers ...handler.Handler) *Logger {
	return NewFiltered(nil, handlers...)
}

// NewFiltered creates a logger with the given filter and handlers.
func NewFiltered(filter Filter, handlers ...handler.Handler) *Logger {
	l := &Logger{}
	l.inner.Store(&inner{filter: filter, handlers: handlers})
	return l
}

// SetFilter atomically replaces the filter. Log calls in flight keep
// the bundle they already loaded.
func (l *Logger) SetFilter(filter Filter) {
	l.mu.Lock()
	defer l.mu.Unlock()
	old := l.inner.Load()
	l.inner.Store(&inner{filter: filter, handlers: old.handlers})
}

// SetHandlers atomically replaces the handler set.
func (l *Logger) SetHandlers(handlers ...handler.Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	old := l.inner.Load()
	l.inner.Store(&inner{filter: old.filter, handlers: handlers})
}

// Scoped pushes a frame of attributes onto the calling goroutine's
// scope stack. Every record logged by this goroutine while the frame
// is open sees the attributes; the returned Scope's Close pops the
// frame and must run on this goroutine, in LIFO order.
func (l *Logger) Scoped(attrs core.List) *Scope {
	return l.scopes.push(l, attrs)
}

// Log dispatches a record with no call-site attributes.
func (l *Logger) Log(severity int, pattern string) {
	var pack core.Pack
	l.consume(severity, pattern, &pack, nil)
}

// LogAttrs dispatches a record with the caller's attribute pack. The
// goroutine's scope frames are appended to the pack, which therefore
// mutates; the pack and every list it references must stay alive for
// the duration of the call. A nil pack is treated as empty.
func (l *Logger) LogAttrs(severity int, pattern string, pack *core.Pack) {
	l.consume(severity, pattern, pack, nil)
}

// LogFunc dispatches a record whose message body is produced by fn.
// fn writes the interpolated message into the writer after the filter
// accepts the record; a filtered-out record costs no interpolation.
func (l *Logger) LogFunc(severity int, pattern string, pack *core.Pack, fn func(*core.Writer)) {
	l.consume(severity, pattern, pack, fn)
}

// consume runs the dispatch sequence: load the bundle, collect scoped
// attributes, build and filter the record, interpolate, fan out.
func (l *Logger) consume(severity int, pattern string, pack *core.Pack, fn func(*core.Writer)) {
	in := l.inner.Load()

	if pack == nil {
		pack = new(core.Pack)
	}
	l.scopes.collect(pack)
	record := core.NewRecord(severity, pattern, pack)

	if in.filter != nil && !in.filter(&record) {
		return
	}

	if fn != nil {
		w := core.GetWriter()
		defer core.PutWriter(w)
		fn(w)
		record.Activate(w.Bytes())
	} else {
		record.Activate(nil)
	}

	for _, h := range in.handlers {
		execute(h, &record)
	}
}

// execute shields the dispatch loop from a failing handler. An error
// or panic is reported once on standard error and the record moves on
// to the next handler.
func execute(h handler.Handler, record *core.Record) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "sable: handler panicked while consuming a record: %v\n", r)
		}
	}()
	if err := h.Execute(record); err != nil {
		fmt.Fprintf(os.Stderr, "sable: failed to consume a record: %v\n", err)
	}
}
