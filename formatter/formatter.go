package formatter

import (
	"fmt"

	"github.com/sablelog/sable/core"
)

// Formatter renders a record into bytes.
type Formatter interface {
	// Format renders the record into the writer. A failure aborts
	// formatting of this record; the writer may contain partial output.
	Format(record *core.Record, w *core.Writer) error
}

// KeyNotFoundError reports that a required placeholder had no matching
// attribute in the record.
type KeyNotFoundError struct {
	Name string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("formatter: key %q not found", e.Name)
}

// PatternError reports a malformed template: an unclosed placeholder,
// an unknown format specifier or an invalid option bundle.
type PatternError struct {
	Pos    int
	Reason string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("formatter: invalid pattern at %d: %s", e.Pos, e.Reason)
}

// PointerError reports a route path that fails RFC 6901 parsing.
type PointerError struct {
	Reason string
}

func (e *PointerError) Error() string {
	return fmt.Sprintf("formatter: invalid JSON pointer: %s", e.Reason)
}
