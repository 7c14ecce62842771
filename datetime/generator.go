package datetime

import (
	"strconv"
	"strings"
	"time"

	"github.com/sablelog/sable/core"
)

// DefaultPattern is the timestamp pattern used when none is specified.
const DefaultPattern = "%Y-%m-%d %H:%M:%S.%f"

// tokenKind discriminates generator tokens.
type tokenKind uint8

const (
	tokenLiteral tokenKind = iota
	tokenMicroseconds
)

// token is either a literal strftime sub-pattern or the %f marker.
type token struct {
	kind    tokenKind
	literal string
}

// Generator renders timestamps using a pattern compiled exactly once.
type Generator struct {
	tokens []token
}

// Make compiles the given pattern. Adjacent literal runs are merged;
// only the %f extension is split into its own token.
func Make(pattern string) *Generator {
	g := &Generator{}
	var literal strings.Builder
	for i := 0; i < len(pattern); {
		if strings.HasPrefix(pattern[i:], "%f") {
			g.tokens = append(g.tokens, token{kind: tokenLiteral, literal: literal.String()})
			g.tokens = append(g.tokens, token{kind: tokenMicroseconds})
			literal.Reset()
			i += 2
		} else {
			literal.WriteByte(pattern[i])
			i++
		}
	}
	if literal.Len() > 0 {
		g.tokens = append(g.tokens, token{kind: tokenLiteral, literal: literal.String()})
	}
	return g
}

// Render writes t, in its own location, into the writer; t is not
// converted to local time first. Microseconds are taken from the
// sub-second part of t.
func (g *Generator) Render(w *core.Writer, t time.Time) {
	usec := t.Nanosecond() / 1000
	for _, tok := range g.tokens {
		switch tok.kind {
		case tokenLiteral:
			renderLiteral(w, tok.literal, t)
		case tokenMicroseconds:
			writePadded(w, usec, 6)
		}
	}
}

// renderLiteral interprets the strftime conversions inside a literal
// run.
func renderLiteral(w *core.Writer, literal string, t time.Time) {
	for i := 0; i < len(literal); i++ {
		c := literal[i]
		if c != '%' || i+1 >= len(literal) {
			w.WriteByte(c)
			continue
		}
		i++
		renderConversion(w, literal[i], t)
	}
}

func renderConversion(w *core.Writer, spec byte, t time.Time) {
	switch spec {
	case 'Y':
		w.WriteString(strconv.Itoa(t.Year()))
	case 'y':
		writePadded(w, t.Year()%100, 2)
	case 'm':
		writePadded(w, int(t.Month()), 2)
	case 'd':
		writePadded(w, t.Day(), 2)
	case 'e':
		if t.Day() < 10 {
			w.WriteByte(' ')
		}
		w.WriteString(strconv.Itoa(t.Day()))
	case 'H':
		writePadded(w, t.Hour(), 2)
	case 'I':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		writePadded(w, h, 2)
	case 'M':
		writePadded(w, t.Minute(), 2)
	case 'S':
		writePadded(w, t.Second(), 2)
	case 'p':
		if t.Hour() < 12 {
			w.WriteString("AM")
		} else {
			w.WriteString("PM")
		}
	case 'a':
		w.WriteString(t.Weekday().String()[:3])
	case 'A':
		w.WriteString(t.Weekday().String())
	case 'b', 'h':
		w.WriteString(t.Month().String()[:3])
	case 'B':
		w.WriteString(t.Month().String())
	case 'j':
		writePadded(w, t.YearDay(), 3)
	case 'D':
		renderLiteral(w, "%m/%d/%y", t)
	case 'F':
		renderLiteral(w, "%Y-%m-%d", t)
	case 'T':
		renderLiteral(w, "%H:%M:%S", t)
	case 'R':
		renderLiteral(w, "%H:%M", t)
	case 'c':
		w.WriteString(t.Format("Mon Jan  2 15:04:05 2006"))
	case 's':
		w.WriteString(strconv.FormatInt(t.Unix(), 10))
	case 'z':
		_, off := t.Zone()
		if off < 0 {
			w.WriteByte('-')
			off = -off
		} else {
			w.WriteByte('+')
		}
		writePadded(w, off/3600, 2)
		writePadded(w, (off%3600)/60, 2)
	case 'Z':
		name, _ := t.Zone()
		w.WriteString(name)
	case 'n':
		w.WriteByte('\n')
	case 't':
		w.WriteByte('\t')
	case '%':
		w.WriteByte('%')
	default:
		// Unknown conversions pass through verbatim, mirroring the
		// tolerant behavior of platform strftime implementations.
		w.WriteByte('%')
		w.WriteByte(spec)
	}
}

func writePadded(w *core.Writer, v, width int) {
	var digits [10]byte
	n := len(strconv.AppendInt(digits[:0], int64(v), 10))
	for i := n; i < width; i++ {
		w.WriteByte('0')
	}
	w.Write(digits[:n])
}
