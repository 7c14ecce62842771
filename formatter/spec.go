package formatter

import (
	"strconv"

	"github.com/sablelog/sable/core"
)

// Spec is a parsed printf-like format specification:
//
//	[[fill]align][sign][#][width][.precision][type]
//
// Align is one of '<', '>', '^'; sign is '+', '-' or ' '; type is one
// of 'd', 'x', 'o', 'b', 's', 'f', 'e'. Zero fields mean "absent",
// except Precision, which is -1 when absent.
type Spec struct {
	Fill      byte
	Align     byte
	Sign      byte
	Alt       bool
	Width     int
	Precision int
	Type      byte
}

// isDefault reports whether the spec carries no formatting directives
// at all, which lets render paths skip scratch buffers.
func (spec Spec) isDefault() bool {
	return spec == Spec{Precision: -1}
}

func isAlign(c byte) bool { return c == '<' || c == '>' || c == '^' }

func isSpecType(c byte) bool {
	switch c {
	case 'd', 'x', 'o', 'b', 's', 'f', 'e':
		return true
	}
	return false
}

// parseSpec parses a specification string. The empty string yields the
// default Spec.
func parseSpec(s string) (Spec, error) {
	spec := Spec{Precision: -1}
	i := 0

	// Fill is any character immediately followed by an align marker.
	if len(s) >= 2 && isAlign(s[1]) {
		spec.Fill = s[0]
		spec.Align = s[1]
		i = 2
	} else if len(s) >= 1 && isAlign(s[0]) {
		spec.Align = s[0]
		i = 1
	}

	if i < len(s) && (s[i] == '+' || s[i] == '-' || s[i] == ' ') {
		spec.Sign = s[i]
		i++
	}
	if i < len(s) && s[i] == '#' {
		spec.Alt = true
		i++
	}
	if i < len(s) && s[i] == '0' && spec.Fill == 0 {
		spec.Fill = '0'
		if spec.Align == 0 {
			spec.Align = '>'
		}
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		spec.Width = spec.Width*10 + int(s[i]-'0')
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		if i >= len(s) || s[i] < '0' || s[i] > '9' {
			return Spec{}, &PatternError{Pos: i, Reason: "precision requires digits"}
		}
		spec.Precision = 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			spec.Precision = spec.Precision*10 + int(s[i]-'0')
			i++
		}
	}
	if i < len(s) {
		if !isSpecType(s[i]) {
			return Spec{}, &PatternError{Pos: i, Reason: "unknown format specifier " + strconv.QuoteRune(rune(s[i]))}
		}
		spec.Type = s[i]
		i++
	}
	if i != len(s) {
		return Spec{}, &PatternError{Pos: i, Reason: "trailing characters in format specification"}
	}
	return spec, nil
}

// writeAligned pads body to the spec width using fill and align. The
// defaultAlign applies when the spec carries no explicit alignment.
func (spec Spec) writeAligned(w *core.Writer, body []byte, defaultAlign byte) {
	pad := spec.Width - len(body)
	if pad <= 0 {
		w.Write(body)
		return
	}
	fill := spec.Fill
	if fill == 0 {
		fill = ' '
	}
	align := spec.Align
	if align == 0 {
		align = defaultAlign
	}
	switch align {
	case '>':
		writeFill(w, fill, pad)
		w.Write(body)
	case '^':
		writeFill(w, fill, pad/2)
		w.Write(body)
		writeFill(w, fill, pad-pad/2)
	default:
		w.Write(body)
		writeFill(w, fill, pad)
	}
}

func writeFill(w *core.Writer, fill byte, n int) {
	for range n {
		w.WriteByte(fill)
	}
}

// writeString renders a string under the spec: precision truncates,
// width pads, default alignment is left.
func (spec Spec) writeString(w *core.Writer, s string) {
	if spec.Precision >= 0 && spec.Precision < len(s) {
		s = s[:spec.Precision]
	}
	spec.writeAligned(w, []byte(s), '<')
}

// writeInt renders a signed integer under the spec. The type selects
// the base: d (default) decimal, x hex, o octal, b binary. Default
// alignment is right.
func (spec Spec) writeInt(w *core.Writer, v int64) {
	neg := v < 0
	var mag uint64
	if neg {
		mag = uint64(-v)
	} else {
		mag = uint64(v)
	}
	spec.writeUintBody(w, mag, neg)
}

// writeUint renders an unsigned integer under the spec.
func (spec Spec) writeUint(w *core.Writer, v uint64) {
	spec.writeUintBody(w, v, false)
}

func (spec Spec) writeUintBody(w *core.Writer, mag uint64, neg bool) {
	base := 10
	var prefix string
	switch spec.Type {
	case 'x':
		base = 16
		if spec.Alt {
			prefix = "0x"
		}
	case 'o':
		base = 8
		if spec.Alt {
			prefix = "0o"
		}
	case 'b':
		base = 2
		if spec.Alt {
			prefix = "0b"
		}
	}

	var scratch [72]byte
	body := scratch[:0]
	switch {
	case neg:
		body = append(body, '-')
	case spec.Sign == '+':
		body = append(body, '+')
	case spec.Sign == ' ':
		body = append(body, ' ')
	}
	body = append(body, prefix...)
	body = strconv.AppendUint(body, mag, base)
	spec.writeAligned(w, body, '>')
}

// writeFloat renders a double under the spec. Type f is fixed-point
// with a default precision of 6, e is scientific, absent means the
// shortest representation that round-trips.
func (spec Spec) writeFloat(w *core.Writer, v float64) {
	format := byte('f')
	prec := spec.Precision
	switch spec.Type {
	case 'e':
		format = 'e'
		if prec < 0 {
			prec = 6
		}
	case 'f':
		if prec < 0 {
			prec = 6
		}
	default:
		if prec < 0 {
			prec = -1
		}
	}

	var scratch [32]byte
	body := scratch[:0]
	if spec.Sign == '+' && v >= 0 {
		body = append(body, '+')
	} else if spec.Sign == ' ' && v >= 0 {
		body = append(body, ' ')
	}
	body = strconv.AppendFloat(body, v, format, prec, 64)
	spec.writeAligned(w, body, '>')
}

// writeValue renders an attribute value under the spec, honoring an
// explicit type where it is meaningful for the value's kind and falling
// back to the value's natural rendering otherwise.
func (spec Spec) writeValue(w *core.Writer, v core.Value) {
	switch v.Kind() {
	case core.KindInt64:
		if spec.Type == 's' {
			spec.writeString(w, v.String())
			return
		}
		spec.writeInt(w, v.Int64())
	case core.KindUint64:
		if spec.Type == 's' {
			spec.writeString(w, v.String())
			return
		}
		spec.writeUint(w, v.Uint64())
	case core.KindFloat64:
		if spec.Type == 'd' {
			spec.writeInt(w, int64(v.Float64()))
			return
		}
		spec.writeFloat(w, v.Float64())
	case core.KindBool:
		if spec.Type == 'd' {
			var n int64
			if v.Bool() {
				n = 1
			}
			spec.writeInt(w, n)
			return
		}
		spec.writeString(w, v.String())
	case core.KindString:
		spec.writeString(w, v.Str())
	default:
		spec.writeString(w, "none")
	}
}
