package handler

import (
	"go.uber.org/multierr"

	"github.com/sablelog/sable/core"
	"github.com/sablelog/sable/formatter"
)

// Handler consumes formatted log records.
type Handler interface {
	// Execute formats the record and delivers the bytes to the
	// handler's destinations. It is called concurrently from multiple
	// goroutines.
	Execute(record *core.Record) error
}

// Blocking is the default handler: one formatter, one or more sinks,
// synchronous delivery. A sink failure does not stop delivery to the
// remaining sinks; all failures are combined into the returned error.
type Blocking struct {
	formatter formatter.Formatter
	sinks     []Sink
	stats     Stats
}

// NewBlocking creates a handler that renders with the given formatter
// and emits to the given sinks in order.
func NewBlocking(f formatter.Formatter, sinks ...Sink) *Blocking {
	return &Blocking{formatter: f, sinks: sinks}
}

// Execute renders the record and emits the bytes to every sink.
func (h *Blocking) Execute(record *core.Record) error {
	w := core.GetWriter()
	defer core.PutWriter(w)

	if err := h.formatter.Format(record, w); err != nil {
		h.stats.failed.Add(1)
		return err
	}

	var err error
	for _, sink := range h.sinks {
		err = multierr.Append(err, sink.Emit(w.Bytes()))
	}
	if err != nil {
		h.stats.failed.Add(1)
		return err
	}
	h.stats.processed.Add(1)
	return nil
}

// Stats returns a snapshot of the handler's counters.
func (h *Blocking) Stats() StatsSnapshot {
	return h.stats.snapshot()
}
