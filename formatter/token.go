package formatter

import (
	"github.com/sablelog/sable/core"
	"github.com/sablelog/sable/datetime"
)

// patternToken is one element of a compiled template.
type patternToken interface {
	render(p *Pattern, record *core.Record, w *core.Writer) error
}

type literalToken []byte

func (t literalToken) render(_ *Pattern, _ *core.Record, w *core.Writer) error {
	w.Write(t)
	return nil
}

type messageToken struct {
	spec Spec
}

func (t *messageToken) render(_ *Pattern, record *core.Record, w *core.Writer) error {
	if formatted := record.Formatted(); formatted != nil {
		if t.spec.isDefault() {
			w.Write(formatted)
		} else {
			t.spec.writeString(w, string(formatted))
		}
		return nil
	}
	t.spec.writeString(w, record.Message)
	return nil
}

type severityToken struct {
	spec Spec
	raw  string
}

func (t *severityToken) render(p *Pattern, record *core.Record, w *core.Writer) error {
	if p.sevmap != nil && t.spec.Type != 'd' {
		p.sevmap(record.Severity, t.raw, w)
		return nil
	}
	t.spec.writeInt(w, int64(record.Severity))
	return nil
}

// timestampNumToken renders microseconds since epoch ({timestamp:d}).
type timestampNumToken struct {
	spec Spec
}

func (t *timestampNumToken) render(_ *Pattern, record *core.Record, w *core.Writer) error {
	t.spec.writeInt(w, record.Timestamp.UnixMicro())
	return nil
}

// timestampUserToken renders the timestamp through a compiled datetime
// pattern.
type timestampUserToken struct {
	gen  *datetime.Generator
	spec Spec
}

func (t *timestampUserToken) render(_ *Pattern, record *core.Record, w *core.Writer) error {
	if t.spec.isDefault() {
		t.gen.Render(w, record.Timestamp)
		return nil
	}
	scratch := core.GetWriter()
	t.gen.Render(scratch, record.Timestamp)
	t.spec.writeString(w, string(scratch.Bytes()))
	core.PutWriter(scratch)
	return nil
}

type processToken struct {
	spec Spec
	name bool
}

func (t *processToken) render(_ *Pattern, record *core.Record, w *core.Writer) error {
	if t.name {
		t.spec.writeString(w, core.ProcessName())
		return nil
	}
	t.spec.writeInt(w, int64(record.PID))
	return nil
}

type threadToken struct {
	spec Spec
}

func (t *threadToken) render(_ *Pattern, record *core.Record, w *core.Writer) error {
	switch t.spec.Type {
	case 's':
		// Goroutines carry no names; "none" stands in.
		t.spec.writeString(w, "none")
	case 'd':
		t.spec.writeUint(w, record.TID)
	default:
		// Platform-independent hex representation by default.
		spec := t.spec
		spec.Type = 'x'
		spec.Alt = true
		spec.writeUint(w, record.TID)
	}
	return nil
}

type genericToken struct {
	name     string
	spec     Spec
	optional bool
	prefix   string
	suffix   string
}

func (t *genericToken) render(_ *Pattern, record *core.Record, w *core.Writer) error {
	value, ok := record.Attributes.Lookup(t.name)
	if !ok {
		if t.optional {
			return nil
		}
		return &KeyNotFoundError{Name: t.name}
	}
	if t.optional {
		w.WriteString(t.prefix)
		t.spec.writeValue(w, value)
		w.WriteString(t.suffix)
		return nil
	}
	t.spec.writeValue(w, value)
	return nil
}

// leftoverToken emits all user attributes not referenced by any other
// placeholder, in reverse insertion order.
type leftoverToken struct {
	opts LeftoverOptions
	segs []leftoverSeg
	skip map[string]bool
}

func (t *leftoverToken) render(_ *Pattern, record *core.Record, w *core.Writer) error {
	var attrs []core.Attr
	for attr := range record.Attributes.All() {
		if t.skip[attr.Name] {
			continue
		}
		attrs = append(attrs, attr)
	}
	if len(attrs) == 0 {
		return nil
	}

	var seen map[string]bool
	if t.opts.Unique {
		seen = make(map[string]bool, len(attrs))
	}

	w.WriteString(t.opts.Prefix)
	first := true
	for i := len(attrs) - 1; i >= 0; i-- {
		attr := attrs[i]
		if seen != nil {
			if seen[attr.Name] {
				continue
			}
			seen[attr.Name] = true
		}
		if !first {
			w.WriteString(t.opts.Separator)
		}
		first = false
		for _, seg := range t.segs {
			switch seg.kind {
			case segLiteral:
				w.WriteString(seg.text)
			case segName:
				w.WriteString(attr.Name)
			case segValue:
				w.WriteString(attr.Value.String())
			}
		}
	}
	w.WriteString(t.opts.Suffix)
	return nil
}
