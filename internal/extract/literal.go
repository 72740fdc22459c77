package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// maxLiteralDepth bounds nesting so hostile input cannot exhaust the stack
const maxLiteralDepth = 64

var errNotLiteral = errors.New("not a literal")

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokString
	tokNumber
	tokIdent
	tokPunct
	tokNewline
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// lexer tokenizes the literal subset shared by JSON and Python:
// strings in single, double or triple quotes, numbers, bare words and punctuation.
// Newlines are reported only outside brackets and only when statements matter.
type lexer struct {
	src           string
	pos           int
	nesting       int
	newlines      bool
	slashComments bool
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\n':
			l.pos++
			if l.newlines && l.nesting == 0 {
				return token{kind: tokNewline, text: "\n", pos: l.pos - 1}, nil
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\f':
			l.pos++
		case c == '\\' && strings.HasPrefix(l.src[l.pos:], "\\\n"):
			l.pos += 2
		case c == '#':
			l.skipLine()
		case c == '/' && l.slashComments && strings.HasPrefix(l.src[l.pos:], "//"):
			l.skipLine()
		default:
			return l.scan()
		}
	}
	return token{kind: tokEOF, pos: l.pos}, nil
}

func (l *lexer) skipLine() {
	if idx := strings.IndexByte(l.src[l.pos:], '\n'); idx >= 0 {
		l.pos += idx
		return
	}
	l.pos = len(l.src)
}

func (l *lexer) scan() (token, error) {
	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == '"' || c == '\'':
		s, err := l.scanString()
		if err != nil {
			return token{}, err
		}
		return token{kind: tokString, text: s, pos: start}, nil
	case c == '-' || c == '+' || c == '.' || isDigit(c):
		return l.scanNumber()
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], pos: start}, nil
	case strings.IndexByte("[]{}(),:=;", c) >= 0:
		l.pos++
		switch c {
		case '[', '{', '(':
			l.nesting++
		case ']', '}', ')':
			l.nesting--
		}
		return token{kind: tokPunct, text: string(c), pos: start}, nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.pos:])
	return token{}, fmt.Errorf("%w: unexpected %q at offset %d", errNotLiteral, r, start)
}

func (l *lexer) scanNumber() (token, error) {
	start := l.pos
	if c := l.src[l.pos]; c == '-' || c == '+' {
		l.pos++
	}
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if isDigit(c) || c == '.' || c == '_' {
			l.pos++
			continue
		}
		if (c == 'e' || c == 'E') && l.pos+1 < len(l.src) {
			l.pos++
			if n := l.src[l.pos]; n == '-' || n == '+' {
				l.pos++
			}
			continue
		}
		break
	}
	text := l.src[start:l.pos]
	if _, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64); err != nil {
		return token{}, fmt.Errorf("%w: bad number %q at offset %d", errNotLiteral, text, start)
	}
	return token{kind: tokNumber, text: text, pos: start}, nil
}

func (l *lexer) scanString() (string, error) {
	start := l.pos
	quote := l.src[l.pos]
	delim := string(quote)
	if strings.HasPrefix(l.src[l.pos:], strings.Repeat(delim, 3)) {
		delim = strings.Repeat(delim, 3)
	}
	l.pos += len(delim)

	var sb strings.Builder
	for l.pos < len(l.src) {
		if strings.HasPrefix(l.src[l.pos:], delim) {
			l.pos += len(delim)
			return sb.String(), nil
		}

		c := l.src[l.pos]
		if c == '\n' && len(delim) == 1 {
			break
		}
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(l.src[l.pos:])
			sb.WriteRune(r)
			l.pos += size
			continue
		}

		if l.pos+1 >= len(l.src) {
			break
		}
		if err := l.scanEscape(&sb); err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: unterminated string at offset %d", errNotLiteral, start)
}

func (l *lexer) scanEscape(sb *strings.Builder) error {
	esc := l.src[l.pos+1]
	l.pos += 2

	switch esc {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case '0':
		sb.WriteByte(0)
	case '\\', '\'', '"', '/':
		sb.WriteByte(esc)
	case '\n':
		// line continuation inside a string
	case 'x', 'u', 'U':
		width := 2
		switch esc {
		case 'u':
			width = 4
		case 'U':
			width = 8
		}
		r, err := l.scanHex(width)
		if err != nil {
			return err
		}
		// \uD83D\uDE00 style pairs encode one rune
		if esc == 'u' && utf16.IsSurrogate(r) && strings.HasPrefix(l.src[l.pos:], `\u`) {
			l.pos += 2
			low, err := l.scanHex(4)
			if err != nil {
				return err
			}
			if pair := utf16.DecodeRune(r, low); pair != utf8.RuneError {
				sb.WriteRune(pair)
				return nil
			}
			sb.WriteRune(utf8.RuneError)
			r = low
		}
		if r < 0 || r > utf8.MaxRune {
			return fmt.Errorf("%w: escape out of range at offset %d", errNotLiteral, l.pos)
		}
		sb.WriteRune(r)
	default:
		sb.WriteByte('\\')
		sb.WriteByte(esc)
	}
	return nil
}

// scanHex reads width hex digits as a code point
func (l *lexer) scanHex(width int) (rune, error) {
	if l.pos+width > len(l.src) {
		return 0, fmt.Errorf("%w: short escape at offset %d", errNotLiteral, l.pos)
	}
	code, err := strconv.ParseUint(l.src[l.pos:l.pos+width], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: bad escape at offset %d", errNotLiteral, l.pos)
	}
	l.pos += width
	return rune(code), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

// literalParser builds Go values from tokens. Lists become []any, mappings
// map[string]any, numbers float64 and None/null nil. Bare words other than
// the literal keywords are rejected, so calls, imports and expressions fail.
type literalParser struct {
	lex   *lexer
	tok   token
	depth int
}

func newLiteralParser(src string, statements bool) (*literalParser, error) {
	p := &literalParser{lex: &lexer{src: src, newlines: statements, slashComments: !statements}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *literalParser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *literalParser) isPunct(s string) bool {
	return p.tok.kind == tokPunct && p.tok.text == s
}

func (p *literalParser) expect(s string) error {
	if !p.isPunct(s) {
		return p.unexpected()
	}
	return p.advance()
}

func (p *literalParser) unexpected() error {
	if p.tok.kind == tokEOF {
		return fmt.Errorf("%w: unexpected end of input", errNotLiteral)
	}
	return fmt.Errorf("%w: unexpected %q at offset %d", errNotLiteral, p.tok.text, p.tok.pos)
}

func (p *literalParser) value() (any, error) {
	switch p.tok.kind {
	case tokString:
		s := p.tok.text
		return s, p.advance()
	case tokNumber:
		f, _ := strconv.ParseFloat(strings.ReplaceAll(p.tok.text, "_", ""), 64)
		return f, p.advance()
	case tokIdent:
		var v any
		switch p.tok.text {
		case "None", "null":
			v = nil
		case "True", "true":
			v = true
		case "False", "false":
			v = false
		default:
			return nil, p.unexpected()
		}
		return v, p.advance()
	case tokPunct:
		switch p.tok.text {
		case "[":
			return p.list()
		case "{":
			return p.mapping()
		}
	}
	return nil, p.unexpected()
}

func (p *literalParser) enter() error {
	p.depth++
	if p.depth > maxLiteralDepth {
		return fmt.Errorf("%w: nesting deeper than %d", errNotLiteral, maxLiteralDepth)
	}
	return p.advance()
}

func (p *literalParser) list() (any, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	items := []any{}
	for !p.isPunct("]") {
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
		if !p.isPunct(",") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.expect("]"); err != nil {
		return nil, err
	}
	p.depth--
	return items, nil
}

func (p *literalParser) mapping() (any, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	obj := map[string]any{}
	for !p.isPunct("}") {
		if p.tok.kind != tokString {
			return nil, p.unexpected()
		}
		key := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		obj[key] = v
		if !p.isPunct(",") {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	p.depth--
	return obj, nil
}

// parseLiteral parses src as exactly one literal value
func parseLiteral(src string) (any, error) {
	p, err := newLiteralParser(src, false)
	if err != nil {
		return nil, err
	}
	v, err := p.value()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	return v, nil
}

// parseAssignments parses a block of `name = literal` statements separated by
// newlines or semicolons. Any other statement rejects the whole block.
func parseAssignments(src string) (map[string]any, error) {
	p, err := newLiteralParser(src, true)
	if err != nil {
		return nil, err
	}

	vars := map[string]any{}
	for {
		for p.tok.kind == tokNewline || p.isPunct(";") {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		if p.tok.kind == tokEOF {
			return vars, nil
		}

		if p.tok.kind != tokIdent || isLiteralKeyword(p.tok.text) {
			return nil, p.unexpected()
		}
		name := p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.expect("="); err != nil {
			return nil, err
		}

		v, err := p.value()
		if err != nil {
			return nil, err
		}
		vars[name] = v

		if p.tok.kind != tokNewline && p.tok.kind != tokEOF && !p.isPunct(";") {
			return nil, p.unexpected()
		}
	}
}

func isLiteralKeyword(s string) bool {
	switch s {
	case "None", "True", "False", "null", "true", "false":
		return true
	}
	return false
}
