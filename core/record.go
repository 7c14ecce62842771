package core

import "time"

// Record is an immutable snapshot of a single log event. It captures
// the severity, the uninterpolated message pattern, the visible
// attribute pack and the timestamp, process id and thread id at
// construction time.
//
// Records are handed to handlers by pointer but must be treated as
// read-only; the only permitted mutation is the one-shot Activate.
type Record struct {
	Severity   int
	Message    string
	Attributes *Pack
	Timestamp  time.Time
	PID        int
	TID        uint64

	formatted []byte
	activated bool
}

// NewRecord assembles a record, capturing the current wall-clock time,
// the process id and the calling thread's id. The pack is borrowed and
// must outlive the record's exposure to handlers.
func NewRecord(severity int, message string, pack *Pack) Record {
	return Record{
		Severity:   severity,
		Message:    message,
		Attributes: pack,
		Timestamp:  time.Now(),
		PID:        pid,
		TID:        ThreadID(),
	}
}

// Activate installs the interpolated message produced by the caller's
// format callback. An empty slice leaves the raw pattern as the
// formatted message. Activating a record twice is a programming error
// and panics.
func (r *Record) Activate(formatted []byte) {
	if r.activated {
		panic("core: record activated twice")
	}
	r.activated = true
	if len(formatted) > 0 {
		r.formatted = formatted
	}
}

// Activated reports whether Activate has been called.
func (r *Record) Activated() bool { return r.activated }

// Formatted returns the interpolated message if one was installed, or
// nil otherwise. Formatters fall back to the raw Message pattern when
// this returns nil.
func (r *Record) Formatted() []byte { return r.formatted }
