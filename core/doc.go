// Package core defines the data model shared by every part of the
// library: typed attribute values, attribute lists and packs, the
// immutable Record snapshot, and the small-buffer Writer used on the
// formatting hot path.
//
// A Record is assembled once per log call and never mutated afterwards.
// Handlers and formatters observe it through read-only accessors; the
// only post-construction transition is Activate, which installs the
// interpolated message exactly once.
//
// Attribute storage is borrowed, not owned. A Pack holds references to
// caller- and scope-provided attribute lists, so the caller must keep
// those lists alive for the duration of the log call. This keeps the
// hot path free of per-attribute copies.
package core
