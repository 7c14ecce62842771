// Package formatter defines how log records are serialized into bytes.
//
// It exposes a single Formatter interface: Format renders one record
// into a caller-provided core.Writer. Two implementations are built in.
//
// Pattern compiles a brace-delimited template ("{severity:d} {message}")
// exactly once into a token list and replays that list for every
// record. Placeholders carry printf-like format specifications (fill,
// align, sign, width, precision, type) and five reserved names
// (message, severity, timestamp, process, thread) have fixed semantics
// that user attributes cannot override. A leftover placeholder "{...}"
// emits every user attribute the rest of the template did not mention.
//
// JSON builds a routed and optionally renamed JSON tree and serializes
// it compactly. Routing destinations are RFC 6901 JSON pointers
// resolved at construction time; when uniqueness is requested each
// object level additionally carries an index map so later writes to a
// key overwrite in place.
//
// All construction-time problems (malformed templates, unknown
// specifiers, bad pointers) fail the constructor; render-time problems
// (a required attribute missing from the record) abort formatting of
// that record only.
package formatter
