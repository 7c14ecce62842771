package benchmark

import (
	"io"
	"testing"

	"github.com/sablelog/sable/core"
	"github.com/sablelog/sable/formatter"
	"github.com/sablelog/sable/handler"
	"github.com/sablelog/sable/logger"
)

func newPatternLogger(w io.Writer) *logger.Logger {
	f, err := formatter.NewPattern("{timestamp} [{severity:d}] {message}")
	if err != nil {
		panic(err)
	}
	return logger.New(handler.NewBlocking(f, handler.NewWriterSink(w)))
}

func newJSONLogger(w io.Writer) *logger.Logger {
	f, err := formatter.NewJSONBuilder().Newline().Build()
	if err != nil {
		panic(err)
	}
	return logger.New(handler.NewBlocking(f, handler.NewWriterSink(w)))
}

// Benchmark the dispatch path with a handler that formats nothing.
func BenchmarkLogNoopHandler(b *testing.B) {
	l := logger.New(newNoopHandler())
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Log(1, "plain message")
	}
}

func BenchmarkLogPattern(b *testing.B) {
	l := newPatternLogger(io.Discard)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Log(1, "plain message")
	}
}

func BenchmarkLogJSON(b *testing.B) {
	l := newJSONLogger(io.Discard)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Log(1, "plain message")
	}
}

func BenchmarkLogAttrs(b *testing.B) {
	l := newJSONLogger(io.Discard)
	attrs := core.List{
		core.String("method", "GET"),
		core.String("path", "/api/users"),
		core.Int("status", 200),
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pack := core.Pack{&attrs}
		l.LogAttrs(1, "request handled", &pack)
	}
}

// Benchmark a record rejected by the filter. The interpolation
// callback must not run.
func BenchmarkLogFiltered(b *testing.B) {
	l := logger.NewFiltered(logger.MinSeverity(3), newNoopHandler())
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.LogFunc(0, "skipped", nil, func(w *core.Writer) {
			b.Fatal("interpolated a filtered record")
		})
	}
}

func BenchmarkScoped(b *testing.B) {
	l := logger.New(newNoopHandler())
	attrs := core.List{core.String("request_id", "12345")}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := l.Scoped(attrs)
		l.Log(1, "inside scope")
		s.Close()
	}
}

func BenchmarkLeftoverPattern(b *testing.B) {
	f, err := formatter.NewPattern("{message}{...}", formatter.WithLeftover("", formatter.LeftoverOptions{
		Prefix: " [", Suffix: "]",
	}))
	if err != nil {
		b.Fatal(err)
	}
	l := logger.New(handler.NewBlocking(f, handler.NewWriterSink(io.Discard)))
	attrs := core.List{
		core.String("method", "GET"),
		core.Int("status", 200),
	}
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		pack := core.Pack{&attrs}
		l.LogAttrs(1, "request handled", &pack)
	}
}
