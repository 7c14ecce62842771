// Package logger provides the root logger and scoped attributes.
//
// A Logger owns an immutable bundle of filter and handlers published
// through an atomic pointer. Log calls load the bundle once, collect
// the calling goroutine's scoped attributes into the record's pack and
// fan the record out to every handler. SetFilter and SetHandlers never
// mutate the bundle in place: they build a new one and swap the
// pointer, so calls already in flight keep working against the bundle
// they loaded.
//
// Scoped attributes are per goroutine. Scoped pushes a frame onto the
// calling goroutine's stack and returns a Scope whose Close pops it.
// Frames must be closed in LIFO order on the goroutine that opened
// them; violating that is a programming error and panics after a
// diagnostic line on standard error.
//
// Handler failures never reach the caller. A handler that returns an
// error or panics produces one diagnostic line on standard error and
// the remaining handlers still run.
package logger
