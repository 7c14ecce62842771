package formatter

import (
	"strings"

	"github.com/sablelog/sable/core"
	"github.com/sablelog/sable/datetime"
)

// SeverityMap converts an integer severity into bytes. The spec
// argument is the format specification exactly as it appeared in the
// placeholder, so a mapping can honor widths or alignment on its own
// terms.
type SeverityMap func(severity int, spec string, w *core.Writer)

// LeftoverOptions configures a leftover ("{...}") placeholder.
type LeftoverOptions struct {
	// Unique deduplicates attributes by name; the first occurrence in
	// emission order wins.
	Unique bool
	// Prefix and Suffix are written only when at least one attribute is
	// emitted.
	Prefix string
	Suffix string
	// Pattern is the per-attribute sub-format with {name} and {value}
	// placeholders. Empty means `"{name}": {value}`.
	Pattern string
	// Separator is written between consecutive attributes. Empty means
	// ", ".
	Separator string
}

type patternConfig struct {
	optionals map[string]optionalOption
	leftovers map[string]LeftoverOptions
	sevmap    SeverityMap
}

type optionalOption struct {
	prefix string
	suffix string
}

// PatternOption configures a Pattern at construction time.
type PatternOption func(*patternConfig)

// WithOptional marks the named placeholder as optional: when the
// attribute is missing nothing is emitted, and when present the value
// is wrapped in prefix and suffix.
func WithOptional(name, prefix, suffix string) PatternOption {
	return func(cfg *patternConfig) {
		cfg.optionals[name] = optionalOption{prefix: prefix, suffix: suffix}
	}
}

// WithLeftover attaches options to the leftover placeholder with the
// given name. The anonymous "{...}" placeholder has the empty name.
func WithLeftover(name string, opts LeftoverOptions) PatternOption {
	return func(cfg *patternConfig) {
		cfg.leftovers[name] = opts
	}
}

// WithSeverityMap installs a custom severity renderer. Placeholders
// that force ":d" keep the integer rendering regardless.
func WithSeverityMap(m SeverityMap) PatternOption {
	return func(cfg *patternConfig) {
		cfg.sevmap = m
	}
}

// Pattern is the pattern-string formatter. The template is compiled
// into a token list exactly once at construction; Format replays the
// list for every record.
type Pattern struct {
	pattern string
	sevmap  SeverityMap
	tokens  []patternToken
}

// NewPattern compiles the template. Unknown specifier characters,
// unclosed placeholders and malformed option bundles fail construction.
func NewPattern(pattern string, opts ...PatternOption) (*Pattern, error) {
	cfg := &patternConfig{
		optionals: make(map[string]optionalOption),
		leftovers: make(map[string]LeftoverOptions),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	p := &Pattern{pattern: pattern, sevmap: cfg.sevmap}
	if err := p.compile(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

// Format renders the record through the compiled token list.
func (p *Pattern) Format(record *core.Record, w *core.Writer) error {
	for _, tok := range p.tokens {
		if err := tok.render(p, record, w); err != nil {
			return err
		}
	}
	return nil
}

// compile parses the template into tokens and resolves which attribute
// names the leftover placeholders must skip.
func (p *Pattern) compile(cfg *patternConfig) error {
	referenced := make(map[string]bool)
	var literal []byte

	flush := func() {
		if len(literal) > 0 {
			p.tokens = append(p.tokens, literalToken(literal))
			literal = nil
		}
	}

	s := p.pattern
	i := 0
	for i < len(s) {
		switch c := s[i]; c {
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				literal = append(literal, '{')
				i += 2
				continue
			}
			flush()
			next, err := p.parsePlaceholder(s, i, cfg, referenced)
			if err != nil {
				return err
			}
			i = next
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				literal = append(literal, '}')
				i += 2
				continue
			}
			return &PatternError{Pos: i, Reason: "single '}' in pattern"}
		default:
			literal = append(literal, c)
			i++
		}
	}
	flush()

	for _, tok := range p.tokens {
		if lt, ok := tok.(*leftoverToken); ok {
			lt.skip = referenced
		}
	}
	return nil
}

// parsePlaceholder parses one placeholder starting at the opening brace
// and appends its token. It returns the index just past the closing
// brace.
func (p *Pattern) parsePlaceholder(s string, start int, cfg *patternConfig, referenced map[string]bool) (int, error) {
	i := start + 1
	if strings.HasPrefix(s[i:], "...") {
		return p.parseLeftover(s, start, cfg)
	}

	nameStart := i
	for i < len(s) && s[i] != ':' && s[i] != '}' && s[i] != '{' {
		i++
	}
	if i >= len(s) {
		return 0, &PatternError{Pos: start, Reason: "unclosed placeholder"}
	}
	if s[i] == '{' {
		return 0, &PatternError{Pos: i, Reason: "unexpected '{' in placeholder name"}
	}
	name := s[nameStart:i]
	if name == "" {
		return 0, &PatternError{Pos: nameStart, Reason: "empty placeholder name"}
	}

	var rawSpec, subPattern string
	hasSubPattern := false
	if s[i] == ':' {
		i++
		if i < len(s) && s[i] == '{' {
			// Timestamp user-pattern form: {timestamp:{%H:%M}s}.
			end := strings.IndexByte(s[i+1:], '}')
			if end < 0 {
				return 0, &PatternError{Pos: i, Reason: "unclosed timestamp pattern"}
			}
			subPattern = s[i+1 : i+1+end]
			hasSubPattern = true
			i += end + 2
		}
		specStart := i
		for i < len(s) && s[i] != '}' {
			i++
		}
		if i >= len(s) {
			return 0, &PatternError{Pos: start, Reason: "unclosed placeholder"}
		}
		rawSpec = s[specStart:i]
	}
	i++ // consume '}'

	spec, err := parseSpec(rawSpec)
	if err != nil {
		return 0, err
	}
	if hasSubPattern && name != "timestamp" {
		return 0, &PatternError{Pos: start, Reason: "sub-pattern is only valid for the timestamp placeholder"}
	}

	referenced[name] = true

	switch name {
	case "message":
		p.tokens = append(p.tokens, &messageToken{spec: spec})
	case "severity":
		p.tokens = append(p.tokens, &severityToken{spec: spec, raw: rawSpec})
	case "timestamp":
		if spec.Type == 'd' {
			p.tokens = append(p.tokens, &timestampNumToken{spec: spec})
		} else {
			pattern := subPattern
			if pattern == "" {
				pattern = datetime.DefaultPattern
			}
			p.tokens = append(p.tokens, &timestampUserToken{gen: datetime.Make(pattern), spec: spec})
		}
	case "process":
		p.tokens = append(p.tokens, &processToken{spec: spec, name: spec.Type == 's'})
	case "thread":
		p.tokens = append(p.tokens, &threadToken{spec: spec})
	default:
		tok := &genericToken{name: name, spec: spec}
		if opt, ok := cfg.optionals[name]; ok {
			tok.optional = true
			tok.prefix = opt.prefix
			tok.suffix = opt.suffix
		}
		p.tokens = append(p.tokens, tok)
	}
	return i, nil
}

// parseLeftover parses "{...}", "{...name}" and the inline option form
// "{...name:(prefix|suffix|pattern|separator)}".
func (p *Pattern) parseLeftover(s string, start int, cfg *patternConfig) (int, error) {
	i := start + 4 // skip "{..."
	nameStart := i
	for i < len(s) && s[i] != ':' && s[i] != '}' {
		i++
	}
	if i >= len(s) {
		return 0, &PatternError{Pos: start, Reason: "unclosed leftover placeholder"}
	}
	name := s[nameStart:i]

	opts := cfg.leftovers[name]
	if s[i] == ':' {
		i++
		if i >= len(s) || s[i] != '(' {
			return 0, &PatternError{Pos: i, Reason: "leftover options must be parenthesized"}
		}
		end := strings.IndexByte(s[i:], ')')
		if end < 0 {
			return 0, &PatternError{Pos: i, Reason: "unclosed leftover options"}
		}
		fields := strings.Split(s[i+1:i+end], "|")
		if len(fields) != 4 {
			return 0, &PatternError{Pos: i, Reason: "leftover options require prefix|suffix|pattern|separator"}
		}
		opts.Prefix, opts.Suffix, opts.Pattern, opts.Separator = fields[0], fields[1], fields[2], fields[3]
		i += end + 1
	}
	if i >= len(s) || s[i] != '}' {
		return 0, &PatternError{Pos: i, Reason: "unclosed leftover placeholder"}
	}
	i++

	if opts.Pattern == "" {
		opts.Pattern = `"{name}": {value}`
	}
	if opts.Separator == "" {
		opts.Separator = ", "
	}
	segs, err := compileLeftoverPattern(opts.Pattern, start)
	if err != nil {
		return 0, err
	}
	p.tokens = append(p.tokens, &leftoverToken{opts: opts, segs: segs})
	return i, nil
}

type leftoverSegKind uint8

const (
	segLiteral leftoverSegKind = iota
	segName
	segValue
)

type leftoverSeg struct {
	kind leftoverSegKind
	text string
}

func compileLeftoverPattern(pattern string, pos int) ([]leftoverSeg, error) {
	var segs []leftoverSeg
	var literal []byte
	i := 0
	for i < len(pattern) {
		if pattern[i] != '{' {
			literal = append(literal, pattern[i])
			i++
			continue
		}
		end := strings.IndexByte(pattern[i:], '}')
		if end < 0 {
			return nil, &PatternError{Pos: pos, Reason: "unclosed placeholder in leftover pattern"}
		}
		var kind leftoverSegKind
		switch pattern[i+1 : i+end] {
		case "name":
			kind = segName
		case "value":
			kind = segValue
		default:
			return nil, &PatternError{Pos: pos, Reason: "leftover pattern allows only {name} and {value}"}
		}
		if len(literal) > 0 {
			segs = append(segs, leftoverSeg{kind: segLiteral, text: string(literal)})
			literal = nil
		}
		segs = append(segs, leftoverSeg{kind: kind})
		i += end + 1
	}
	if len(literal) > 0 {
		segs = append(segs, leftoverSeg{kind: segLiteral, text: string(literal)})
	}
	return segs, nil
}
