package formatter

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/sablelog/sable/core"
)

// JSON is the structured JSON formatter. It builds a routed and
// optionally renamed JSON tree for every record and serializes it in
// compact form.
type JSON struct {
	defaultRoute []string
	routes       map[string][]string
	renames      map[string]string
	unique       bool
	newline      bool

	warnOnce sync.Once
}

// JSONBuilder configures and creates a JSON formatter. The zero value
// produces plain zero-depth trees with duplicates allowed and no
// trailing newline.
type JSONBuilder struct {
	defaultPath string
	routes      []jsonRoute
	renames     map[string]string
	unique      bool
	newline     bool
}

type jsonRoute struct {
	path  string
	names []string
}

// NewJSONBuilder returns a builder with the default configuration.
func NewJSONBuilder() *JSONBuilder {
	return &JSONBuilder{renames: make(map[string]string)}
}

// Route declares a JSON pointer destination. With names it attaches the
// listed attributes to the path; without names it sets the default
// destination for otherwise-unrouted attributes, where the last call
// wins.
func (b *JSONBuilder) Route(path string, names ...string) *JSONBuilder {
	if len(names) == 0 {
		b.defaultPath = path
		return b
	}
	b.routes = append(b.routes, jsonRoute{path: path, names: names})
	return b
}

// Rename renames an attribute after routing. The new name may collide
// with another attribute.
func (b *JSONBuilder) Rename(from, to string) *JSONBuilder {
	b.renames[from] = to
	return b
}

// Unique enforces name uniqueness within each object: later writes to
// the same key overwrite earlier ones, retaining the original position.
func (b *JSONBuilder) Unique() *JSONBuilder {
	b.unique = true
	return b
}

// Newline appends a single newline after the root object.
func (b *JSONBuilder) Newline() *JSONBuilder {
	b.newline = true
	return b
}

// Build parses all route pointers and creates the formatter. A pointer
// that fails RFC 6901 parsing fails construction.
func (b *JSONBuilder) Build() (*JSON, error) {
	defaultRoute, err := parsePointer(b.defaultPath)
	if err != nil {
		return nil, err
	}
	f := &JSON{
		defaultRoute: defaultRoute,
		routes:       make(map[string][]string),
		renames:      make(map[string]string),
		unique:       b.unique,
		newline:      b.newline,
	}
	for _, route := range b.routes {
		tokens, err := parsePointer(route.path)
		if err != nil {
			return nil, err
		}
		for _, name := range route.names {
			f.routes[name] = tokens
		}
	}
	for from, to := range b.renames {
		f.renames[from] = to
	}
	return f, nil
}

// NewJSON returns a JSON formatter with the default configuration.
func NewJSON() *JSON {
	f, _ := NewJSONBuilder().Build()
	return f
}

// parsePointer parses an RFC 6901 JSON pointer into reference tokens.
// Both "" and "/" address the root object.
func parsePointer(path string) ([]string, error) {
	if path == "" || path == "/" {
		return nil, nil
	}
	if path[0] != '/' {
		return nil, &PointerError{Reason: fmt.Sprintf("%q does not start with '/'", path)}
	}
	raw := strings.Split(path[1:], "/")
	tokens := make([]string, 0, len(raw))
	for _, tok := range raw {
		for i := 0; i < len(tok); i++ {
			if tok[i] != '~' {
				continue
			}
			if i+1 >= len(tok) || (tok[i+1] != '0' && tok[i+1] != '1') {
				return nil, &PointerError{Reason: fmt.Sprintf("dangling '~' escape in %q", path)}
			}
		}
		tok = strings.ReplaceAll(tok, "~1", "/")
		tok = strings.ReplaceAll(tok, "~0", "~")
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Format renders the record as a compact JSON tree.
func (f *JSON) Format(record *core.Record, w *core.Writer) error {
	root := &jsonObject{}
	if f.unique {
		root.index = make(map[string]int)
	}

	f.add(root, "message", core.StringValue(messageOf(record)))
	f.add(root, "severity", core.Int64Value(int64(record.Severity)))
	f.add(root, "timestamp", core.Int64Value(record.Timestamp.Unix()))
	f.add(root, "process", core.Int64Value(int64(record.PID)))
	f.add(root, "thread", core.Uint64Value(record.TID))
	for attr := range record.Attributes.All() {
		f.add(root, attr.Name, attr.Value)
	}

	root.write(w)
	if f.newline {
		w.WriteByte('\n')
	}
	return nil
}

func messageOf(record *core.Record) string {
	if formatted := record.Formatted(); formatted != nil {
		return string(formatted)
	}
	return record.Message
}

// add routes the attribute to its destination object and writes it
// there under its post-routing name.
func (f *JSON) add(root *jsonObject, name string, value core.Value) {
	route, ok := f.routes[name]
	if !ok {
		route = f.defaultRoute
	}
	node := root
	for _, token := range route {
		node = f.child(node, token)
	}
	if to, ok := f.renames[name]; ok {
		name = to
	}
	node.put(name, value, f.unique)
}

// child finds or creates the nested object for one reference token.
// In unique mode, when a value entry already occupies the token the
// object replaces it and a diagnostic is reported once per formatter.
// Without unique mode a new object entry is appended next to the value,
// producing a duplicate key.
func (f *JSON) child(node *jsonObject, token string) *jsonObject {
	if node.index != nil {
		if i, ok := node.index[token]; ok {
			if node.entries[i].child != nil {
				return node.entries[i].child
			}
			f.warnOnce.Do(func() {
				fmt.Fprintf(os.Stderr, "sable: json route overwrites non-object value at %q\n", token)
			})
			child := &jsonObject{index: make(map[string]int)}
			node.entries[i].child = child
			return child
		}
	} else {
		for i := range node.entries {
			if node.entries[i].name == token && node.entries[i].child != nil {
				return node.entries[i].child
			}
		}
	}
	child := &jsonObject{}
	if node.index != nil {
		child.index = make(map[string]int)
		node.index[token] = len(node.entries)
	}
	node.entries = append(node.entries, jsonEntry{name: token, child: child})
	return child
}

// jsonObject is one object level of the tree under construction.
// Entries keep emission order; the index exists only in unique mode.
type jsonObject struct {
	entries []jsonEntry
	index   map[string]int
}

type jsonEntry struct {
	name  string
	value core.Value
	child *jsonObject
}

func (o *jsonObject) put(name string, value core.Value, unique bool) {
	if unique {
		if i, ok := o.index[name]; ok {
			o.entries[i].value = value
			o.entries[i].child = nil
			return
		}
		o.index[name] = len(o.entries)
	}
	o.entries = append(o.entries, jsonEntry{name: name, value: value})
}

func (o *jsonObject) write(w *core.Writer) {
	w.WriteByte('{')
	for i := range o.entries {
		if i > 0 {
			w.WriteByte(',')
		}
		writeJSONString(w, o.entries[i].name)
		w.WriteByte(':')
		if child := o.entries[i].child; child != nil {
			child.write(w)
		} else {
			writeJSONValue(w, o.entries[i].value)
		}
	}
	w.WriteByte('}')
}

func writeJSONValue(w *core.Writer, v core.Value) {
	switch v.Kind() {
	case core.KindInt64:
		w.WriteString(strconv.FormatInt(v.Int64(), 10))
	case core.KindUint64:
		w.WriteString(strconv.FormatUint(v.Uint64(), 10))
	case core.KindFloat64:
		w.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case core.KindBool:
		if v.Bool() {
			w.WriteString("true")
		} else {
			w.WriteString("false")
		}
	case core.KindString:
		writeJSONString(w, v.Str())
	default:
		w.WriteString("null")
	}
}

const hexDigits = "0123456789abcdef"

// writeJSONString escapes per RFC 8259 and replaces invalid UTF-8
// sequences with U+FFFD.
func writeJSONString(w *core.Writer, s string) {
	w.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"':
				w.WriteString(`\"`)
			case c == '\\':
				w.WriteString(`\\`)
			case c == '\n':
				w.WriteString(`\n`)
			case c == '\r':
				w.WriteString(`\r`)
			case c == '\t':
				w.WriteString(`\t`)
			case c < 0x20:
				w.WriteString(`\u00`)
				w.WriteByte(hexDigits[c>>4])
				w.WriteByte(hexDigits[c&0x0f])
			default:
				w.WriteByte(c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			w.WriteString("�")
			i++
			continue
		}
		w.WriteString(s[i : i+size])
		i += size
	}
	w.WriteByte('"')
}
