// Package handler connects formatters to sinks.
//
// A Handler consumes one record at a time: the built-in Blocking
// handler renders the record through its formatter into a pooled writer
// and pushes the resulting bytes to each of its sinks in order. Sinks
// are byte-level destinations behind a two-method interface (Emit,
// Flush); they may block, and the handler blocks with them.
//
// Handlers must be safe to invoke concurrently: the logger fans a
// record out to every handler without serializing them. The Blocking
// handler itself holds no mutable state on the execute path beyond its
// atomic counters, and WriterSink serializes writes to the underlying
// io.Writer with a mutex.
//
// SlogHandler adapts a Handler to the standard library's log/slog
// Handler interface so the library can serve as a slog backend.
package handler
