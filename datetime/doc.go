// Package datetime compiles strftime-like timestamp patterns into a
// token stream that can be rendered many times without re-parsing.
//
// The pattern language is the standard strftime conversion set plus one
// extension: %f renders six-digit zero-padded microseconds. Compilation
// splits the pattern into literal runs (which may themselves contain
// ordinary strftime conversions) and microsecond markers; adjacent
// literals are merged so the common case renders in a single pass.
package datetime
