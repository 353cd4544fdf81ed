// Package lexer turns GraphQL source text into a stream of tokens.
//
// Every token the lexer produces, including comments, is kept in a single
// slice and linked to its neighbours by index; Advance only ever returns
// significant tokens.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/language/source"
)

const bom = "\uFEFF"

// Lexer is a single-pass cursor over a Source. It is not safe for
// concurrent use.
type Lexer struct {
	src  *source.Source
	body string

	tokens []Token
	cur    int

	// line bookkeeping for the next token to be read
	line      int
	lineStart int
}

// New creates a lexer positioned on the start-of-file token.
func New(src *source.Source) *Lexer {
	l := &Lexer{src: src, body: src.Body, line: 1}
	l.tokens = append(l.tokens, Token{Kind: SOF, Prev: -1, Next: -1})
	return l
}

// Source returns the source being lexed.
func (l *Lexer) Source() *source.Source { return l.src }

// Token returns the most recently advanced-to token.
func (l *Lexer) Token() Token { return l.tokens[l.cur] }

// Tokens returns every token read so far in document order.
func (l *Lexer) Tokens() []Token { return l.tokens }

// At returns the token with the given stream index.
func (l *Lexer) At(i int) Token { return l.tokens[i] }

// Advance moves to the next significant token and returns it.
func (l *Lexer) Advance() (Token, error) {
	tok, err := l.Lookahead()
	if err != nil {
		return Token{}, err
	}
	l.cur = tok.Index
	return tok, nil
}

// Lookahead returns the next significant token without moving to it.
func (l *Lexer) Lookahead() (Token, error) {
	tok := l.tokens[l.cur]
	if tok.Kind == EOF {
		return tok, nil
	}
	for {
		if tok.Next >= 0 {
			tok = l.tokens[tok.Next]
		} else {
			next, err := l.readToken(tok.End)
			if err != nil {
				return Token{}, err
			}
			tok = next
		}
		if tok.Kind != COMMENT {
			return tok, nil
		}
	}
}

// Tokenize lexes the whole source and returns the full token stream,
// comments included.
func Tokenize(src *source.Source) ([]Token, error) {
	l := New(src)
	for {
		tok, err := l.Advance()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return l.Tokens(), nil
		}
	}
}

func (l *Lexer) errorf(pos int, format string, args ...any) error {
	return gqlerror.Syntaxf(l.src, pos, format, args...)
}

func (l *Lexer) push(kind Kind, start, end int, value string) Token {
	prev := len(l.tokens) - 1
	tok := Token{
		Kind:   kind,
		Start:  start,
		End:    end,
		Line:   l.line,
		Column: utf8.RuneCountInString(l.body[l.lineStart:start]) + 1,
		Value:  value,
		Index:  len(l.tokens),
		Prev:   prev,
		Next:   -1,
	}
	l.tokens[prev].Next = tok.Index
	l.tokens = append(l.tokens, tok)
	return tok
}

// readToken reads the token starting at or after pos.
func (l *Lexer) readToken(pos int) (Token, error) {
	pos = l.skipIgnored(pos)
	body := l.body
	if pos >= len(body) {
		return l.push(EOF, len(body), len(body), ""), nil
	}

	c := body[pos]
	switch c {
	case '!':
		return l.push(BANG, pos, pos+1, ""), nil
	case '#':
		return l.readComment(pos), nil
	case '$':
		return l.push(DOLLAR, pos, pos+1, ""), nil
	case '&':
		return l.push(AMP, pos, pos+1, ""), nil
	case '(':
		return l.push(PAREN_L, pos, pos+1, ""), nil
	case ')':
		return l.push(PAREN_R, pos, pos+1, ""), nil
	case '.':
		if strings.HasPrefix(body[pos:], "...") {
			return l.push(SPREAD, pos, pos+3, ""), nil
		}
	case ':':
		return l.push(COLON, pos, pos+1, ""), nil
	case '=':
		return l.push(EQUALS, pos, pos+1, ""), nil
	case '@':
		return l.push(AT, pos, pos+1, ""), nil
	case '[':
		return l.push(BRACKET_L, pos, pos+1, ""), nil
	case ']':
		return l.push(BRACKET_R, pos, pos+1, ""), nil
	case '{':
		return l.push(BRACE_L, pos, pos+1, ""), nil
	case '|':
		return l.push(PIPE, pos, pos+1, ""), nil
	case '}':
		return l.push(BRACE_R, pos, pos+1, ""), nil
	case '"':
		if strings.HasPrefix(body[pos:], `"""`) {
			return l.readBlockString(pos)
		}
		return l.readString(pos)
	case '\'':
		return Token{}, l.errorf(pos, `Unexpected single quote character ('), did you mean to use a double quote (")?`)
	}

	switch {
	case c == '-' || isDigit(c):
		return l.readNumber(pos)
	case isNameStart(c):
		return l.readName(pos), nil
	case c < 0x20 && c != '\t' && c != '\n' && c != '\r':
		return Token{}, l.errorf(pos, `Cannot contain the invalid character %s`, printChar(body, pos))
	}
	return Token{}, l.errorf(pos, `Cannot parse the unexpected character %s.`, printChar(body, pos))
}

// skipIgnored skips whitespace, line terminators, commas and byte order
// marks, keeping the line counters current.
func (l *Lexer) skipIgnored(pos int) int {
	body := l.body
	for pos < len(body) {
		switch c := body[pos]; {
		case c == ' ' || c == '\t' || c == ',':
			pos++
		case c == '\n':
			pos++
			l.newline(pos)
		case c == '\r':
			pos++
			if pos < len(body) && body[pos] == '\n' {
				pos++
			}
			l.newline(pos)
		case strings.HasPrefix(body[pos:], bom):
			pos += len(bom)
		default:
			return pos
		}
	}
	return pos
}

func (l *Lexer) newline(lineStart int) {
	l.line++
	l.lineStart = lineStart
}

func (l *Lexer) readComment(start int) Token {
	body := l.body
	pos := start + 1
	for pos < len(body) {
		c := body[pos]
		if c < 0x20 && c != '\t' {
			break
		}
		pos++
	}
	return l.push(COMMENT, start, pos, body[start+1:pos])
}

func (l *Lexer) readName(start int) Token {
	body := l.body
	pos := start + 1
	for pos < len(body) && isNameContinue(body[pos]) {
		pos++
	}
	return l.push(NAME, start, pos, body[start:pos])
}

// readNumber reads an Int or Float token:
//
//	-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func (l *Lexer) readNumber(start int) (Token, error) {
	body := l.body
	pos := start
	isFloat := false

	if body[pos] == '-' {
		pos++
	}
	if pos < len(body) && body[pos] == '0' {
		pos++
		if pos < len(body) && isDigit(body[pos]) {
			return Token{}, l.errorf(pos, `Invalid number, unexpected digit after 0: %s`, printChar(body, pos))
		}
	} else {
		var err error
		if pos, err = l.readDigits(pos); err != nil {
			return Token{}, err
		}
	}

	if pos < len(body) && body[pos] == '.' {
		isFloat = true
		var err error
		if pos, err = l.readDigits(pos + 1); err != nil {
			return Token{}, err
		}
	}

	if pos < len(body) && (body[pos] == 'e' || body[pos] == 'E') {
		isFloat = true
		pos++
		if pos < len(body) && (body[pos] == '+' || body[pos] == '-') {
			pos++
		}
		var err error
		if pos, err = l.readDigits(pos); err != nil {
			return Token{}, err
		}
	}

	kind := INT
	if isFloat {
		kind = FLOAT
	}
	return l.push(kind, start, pos, body[start:pos]), nil
}

// readDigits consumes one or more digits starting at pos.
func (l *Lexer) readDigits(pos int) (int, error) {
	body := l.body
	if pos >= len(body) || !isDigit(body[pos]) {
		return pos, l.errorf(pos, `Invalid number, expected digit but got: %s`, printChar(body, pos))
	}
	for pos < len(body) && isDigit(body[pos]) {
		pos++
	}
	return pos, nil
}

func (l *Lexer) readString(start int) (Token, error) {
	body := l.body
	pos := start + 1
	chunkStart := pos
	var value strings.Builder

	for pos < len(body) {
		c := body[pos]
		switch {
		case c == '"':
			value.WriteString(body[chunkStart:pos])
			return l.push(STRING, start, pos+1, value.String()), nil
		case c == '\n' || c == '\r':
			return Token{}, l.errorf(pos, `Unterminated string.`)
		case c < 0x20 && c != '\t':
			return Token{}, l.errorf(pos, `Invalid character within String: %s`, printChar(body, pos))
		case c == '\\':
			value.WriteString(body[chunkStart:pos])
			if pos+1 >= len(body) {
				return Token{}, l.errorf(pos+1, `Unterminated string.`)
			}
			n, err := l.readEscape(pos, &value)
			if err != nil {
				return Token{}, err
			}
			pos += n
			chunkStart = pos
		default:
			pos++
		}
	}
	return Token{}, l.errorf(pos, `Unterminated string.`)
}

// readEscape decodes the escape sequence starting at the backslash at pos
// and returns its length in bytes.
func (l *Lexer) readEscape(pos int, value *strings.Builder) (int, error) {
	body := l.body
	switch body[pos+1] {
	case '"':
		value.WriteByte('"')
	case '/':
		value.WriteByte('/')
	case '\\':
		value.WriteByte('\\')
	case 'b':
		value.WriteByte('\b')
	case 'f':
		value.WriteByte('\f')
	case 'n':
		value.WriteByte('\n')
	case 'r':
		value.WriteByte('\r')
	case 't':
		value.WriteByte('\t')
	case 'u':
		r, ok := hexRune(body, pos+2)
		if !ok {
			end := min(pos+6, len(body))
			return 0, l.errorf(pos+1, `Invalid character escape sequence: \u%s`, body[pos+2:end])
		}
		if utf16.IsSurrogate(r) {
			if strings.HasPrefix(body[pos+6:], `\u`) {
				if lo, ok := hexRune(body, pos+8); ok {
					if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
						value.WriteRune(pair)
						return 12, nil
					}
				}
			}
		}
		value.WriteRune(r)
		return 6, nil
	default:
		r, _ := utf8.DecodeRuneInString(body[pos+1:])
		return 0, l.errorf(pos+1, `Invalid character escape sequence: \%s`, string(r))
	}
	return 2, nil
}

func (l *Lexer) readBlockString(start int) (Token, error) {
	body := l.body
	pos := start + 3
	chunkStart := pos
	line, lineStart := l.line, l.lineStart
	var raw strings.Builder

	for pos < len(body) {
		c := body[pos]
		switch {
		case c == '"' && strings.HasPrefix(body[pos:], `"""`):
			raw.WriteString(body[chunkStart:pos])
			tok := l.push(BLOCK_STRING, start, pos+3, DedentBlockStringValue(raw.String()))
			l.line, l.lineStart = line, lineStart
			return tok, nil
		case c < 0x20 && c != '\t' && c != '\n' && c != '\r':
			return Token{}, l.errorf(pos, `Invalid character within String: %s`, printChar(body, pos))
		case c == '\n':
			pos++
			line, lineStart = line+1, pos
		case c == '\r':
			pos++
			if pos < len(body) && body[pos] == '\n' {
				pos++
			}
			line, lineStart = line+1, pos
		case c == '\\' && strings.HasPrefix(body[pos+1:], `"""`):
			raw.WriteString(body[chunkStart:pos])
			raw.WriteString(`"""`)
			pos += 4
			chunkStart = pos
		default:
			pos++
		}
	}
	return Token{}, l.errorf(pos, `Unterminated string.`)
}

func hexRune(body string, pos int) (rune, bool) {
	if pos+4 > len(body) {
		return 0, false
	}
	var r rune
	for i := pos; i < pos+4; i++ {
		c := body[i]
		var v byte
		switch {
		case c >= '0' && c <= '9':
			v = c - '0'
		case c >= 'a' && c <= 'f':
			v = c - 'a' + 10
		case c >= 'A' && c <= 'F':
			v = c - 'A' + 10
		default:
			return 0, false
		}
		r = r<<4 | rune(v)
	}
	return r, true
}

// printChar renders the character at pos for error messages: `<EOF>` past
// the end, the quoted character when printable ASCII, otherwise a quoted
// \uXXXX escape.
func printChar(body string, pos int) string {
	if pos >= len(body) {
		return "<EOF>"
	}
	r, _ := utf8.DecodeRuneInString(body[pos:])
	switch {
	case r == '"':
		return `"\""`
	case r == '\\':
		return `"\\"`
	case r >= 0x20 && r < 0x7F:
		return `"` + string(r) + `"`
	}
	if r > 0xFFFF {
		hi, lo := utf16.EncodeRune(r)
		return fmt.Sprintf(`"\u%04x\u%04x"`, hi, lo)
	}
	return fmt.Sprintf(`"\u%04x"`, r)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isNameContinue(c byte) bool { return isNameStart(c) || isDigit(c) }
