package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/sablelog/sable/core"
)

// Severity values used by the slog bridge. The library itself treats
// severity as an opaque integer; these are the conventional mappings
// for the four standard slog levels.
const (
	SeverityDebug = 0
	SeverityInfo  = 1
	SeverityWarn  = 2
	SeverityError = 3
)

// SlogHandler adapts a Handler to the standard library's slog.Handler
// interface, letting the library serve as a log/slog backend.
type SlogHandler struct {
	handler  Handler
	severity int
	attrs    core.List
	group    string
}

// NewSlogHandler wraps the given handler. Records below the minimum
// severity are dropped by Enabled.
func NewSlogHandler(h Handler, minSeverity int) *SlogHandler {
	return &SlogHandler{handler: h, severity: minSeverity}
}

// Enabled reports whether records at the given level are handled.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogSeverity(level) >= s.severity
}

// Handle converts the slog record and passes it to the wrapped handler.
// Pre-configured attributes come before the record's own.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	attrs := make(core.List, 0, len(s.attrs)+record.NumAttrs())
	attrs = append(attrs, s.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		attrs = appendSlogAttr(attrs, s.group, a)
		return true
	})

	pack := core.Pack{&attrs}
	rec := core.NewRecord(slogSeverity(record.Level), record.Message, &pack)
	if !record.Time.IsZero() {
		rec.Timestamp = record.Time
	}
	return s.handler.Execute(&rec)
}

// WithAttrs returns a handler with additional pre-configured
// attributes. The receiver is not modified.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make(core.List, len(s.attrs), len(s.attrs)+len(attrs))
	copy(merged, s.attrs)
	for _, a := range attrs {
		merged = appendSlogAttr(merged, s.group, a)
	}
	return &SlogHandler{
		handler:  s.handler,
		severity: s.severity,
		attrs:    merged,
		group:    s.group,
	}
}

// WithGroup returns a handler that prefixes subsequent attribute names
// with the group name. Groups nest with dots.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	group := name
	if s.group != "" {
		group = s.group + "." + name
	}
	return &SlogHandler{
		handler:  s.handler,
		severity: s.severity,
		attrs:    s.attrs,
		group:    group,
	}
}

// slogSeverity maps a slog level onto the bridge's severity scale.
func slogSeverity(level slog.Level) int {
	switch {
	case level >= slog.LevelError:
		return SeverityError
	case level >= slog.LevelWarn:
		return SeverityWarn
	case level >= slog.LevelInfo:
		return SeverityInfo
	default:
		return SeverityDebug
	}
}

// appendSlogAttr converts one slog attribute, prefixing its key with
// the group path. Group attributes flatten into dotted names.
func appendSlogAttr(list core.List, group string, a slog.Attr) core.List {
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return append(list, core.String(key, v.String()))
	case slog.KindInt64:
		return append(list, core.Int(key, v.Int64()))
	case slog.KindUint64:
		return append(list, core.Uint(key, v.Uint64()))
	case slog.KindFloat64:
		return append(list, core.Float64(key, v.Float64()))
	case slog.KindBool:
		return append(list, core.Bool(key, v.Bool()))
	case slog.KindTime:
		return append(list, core.String(key, v.Time().Format(time.RFC3339Nano)))
	case slog.KindDuration:
		return append(list, core.String(key, v.Duration().String()))
	case slog.KindGroup:
		for _, ga := range v.Group() {
			list = appendSlogAttr(list, key, ga)
		}
		return list
	default:
		return append(list, core.String(key, v.String()))
	}
}
