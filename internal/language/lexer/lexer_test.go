package lexer

import (
	"errors"
	"testing"

	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/language/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexOne(t *testing.T, body string) Token {
	t.Helper()
	tok, err := New(source.New(body)).Advance()
	require.NoError(t, err)
	return tok
}

func lexErr(t *testing.T, body string) *gqlerror.Error {
	t.Helper()
	_, err := New(source.New(body)).Advance()
	require.Error(t, err, "expected a syntax error for %q", body)
	var gerr *gqlerror.Error
	require.True(t, errors.As(err, &gerr))
	require.True(t, gerr.IsSyntax())
	return gerr
}

type tokenWant struct {
	kind       Kind
	start, end int
	value      string
}

func assertToken(t *testing.T, want tokenWant, got Token) {
	t.Helper()
	assert.Equal(t, want.kind, got.Kind, "kind")
	assert.Equal(t, want.start, got.Start, "start")
	assert.Equal(t, want.end, got.End, "end")
	assert.Equal(t, want.value, got.Value, "value")
}

func TestDisallowsUncommonControlCharacters(t *testing.T) {
	err := lexErr(t, "\u0007")
	assert.Equal(t, `Cannot contain the invalid character "\u0007"`, err.Message)
	assert.Equal(t, []source.Location{{Line: 1, Column: 1}}, err.Locations)
}

func TestAcceptsBOMHeader(t *testing.T) {
	tok := lexOne(t, "\uFEFF foo")
	assertToken(t, tokenWant{NAME, 4, 7, "foo"}, tok)
	assert.Equal(t, 3, tok.Column)
}

func TestRecordsLineAndColumn(t *testing.T) {
	tok := lexOne(t, "\n \r\n \r  foo\n")
	assertToken(t, tokenWant{NAME, 8, 11, "foo"}, tok)
	assert.Equal(t, 4, tok.Line)
	assert.Equal(t, 3, tok.Column)
}

func TestSkipsWhitespaceAndComments(t *testing.T) {
	tests := []struct {
		body string
		want tokenWant
	}{
		{"\n\n    foo\n\n\n", tokenWant{NAME, 6, 9, "foo"}},
		{"\n    #comment\n    foo#comment\n", tokenWant{NAME, 18, 21, "foo"}},
		{",,,foo,,,", tokenWant{NAME, 3, 6, "foo"}},
	}
	for _, tt := range tests {
		assertToken(t, tt.want, lexOne(t, tt.body))
	}
}

func TestErrorsRespectWhitespace(t *testing.T) {
	err := lexErr(t, "\n\n    ?\n\n")
	assert.Equal(t,
		"Syntax Error: Cannot parse the unexpected character \"?\".\n"+
			"\n"+
			"GraphQL request (3:5)\n"+
			"2: \n"+
			"3:     ?\n"+
			"       ^\n"+
			"4: \n",
		err.Error())
}

func TestUpdatesLineNumbersInErrorForFileContext(t *testing.T) {
	src := source.New("\n\n     ?\n\n", source.WithName("foo.js"), source.WithLocationOffset(11, 12))
	_, err := New(src).Advance()
	require.Error(t, err)
	assert.Equal(t,
		"Syntax Error: Cannot parse the unexpected character \"?\".\n"+
			"\n"+
			"foo.js (13:6)\n"+
			"12: \n"+
			"13:      ?\n"+
			"         ^\n"+
			"14: \n",
		err.Error())
}

func TestUpdatesColumnNumbersInErrorForFileContext(t *testing.T) {
	src := source.New("?", source.WithName("foo.js"), source.WithLocationOffset(1, 5))
	_, err := New(src).Advance()
	require.Error(t, err)
	assert.Equal(t,
		"Syntax Error: Cannot parse the unexpected character \"?\".\n"+
			"\n"+
			"foo.js (1:5)\n"+
			"1:     ?\n"+
			"       ^\n",
		err.Error())
}

func TestLexesStrings(t *testing.T) {
	tests := []struct {
		body string
		want tokenWant
	}{
		{`"simple"`, tokenWant{STRING, 0, 8, "simple"}},
		{`" white space "`, tokenWant{STRING, 0, 15, " white space "}},
		{`"quote \""`, tokenWant{STRING, 0, 10, `quote "`}},
		{`"escaped \\n\\r\\b\\t\\f"`, tokenWant{STRING, 0, 25, `escaped \n\r\b\t\f`}},
		{`"slashes \\ \/"`, tokenWant{STRING, 0, 15, `slashes \ /`}},
		{`"unicode яуц"`, tokenWant{STRING, 0, 16, "unicode яуц"}},
		{`"unicode \u1234\u5678\u90AB\uCDEF"`, tokenWant{STRING, 0, 34, "unicode \u1234\u5678\u90AB\uCDEF"}},
		{`"\u1234\u5678\u90AB\uCDEF"`, tokenWant{STRING, 0, 26, "\u1234\u5678\u90AB\uCDEF"}},
		{`"escapes \n\t"`, tokenWant{STRING, 0, 14, "escapes \n\t"}},
		{`"\uD83D\uDE00"`, tokenWant{STRING, 0, 14, "\U0001F600"}},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assertToken(t, tt.want, lexOne(t, tt.body))
		})
	}
}

func TestLexesBlockStrings(t *testing.T) {
	tests := []struct {
		body string
		want tokenWant
	}{
		{`"""simple"""`, tokenWant{BLOCK_STRING, 0, 12, "simple"}},
		{`""" white space """`, tokenWant{BLOCK_STRING, 0, 19, " white space "}},
		{`"""contains " quote"""`, tokenWant{BLOCK_STRING, 0, 22, `contains " quote`}},
		{`"""contains \""" triplequote"""`, tokenWant{BLOCK_STRING, 0, 31, `contains """ triplequote`}},
		{"\"\"\"multi\nline\"\"\"", tokenWant{BLOCK_STRING, 0, 16, "multi\nline"}},
		{"\"\"\"multi\rline\r\nnormalized\"\"\"", tokenWant{BLOCK_STRING, 0, 28, "multi\nline\nnormalized"}},
		{`"""unescaped \n\r\b\t\f\u1234"""`, tokenWant{BLOCK_STRING, 0, 32, `unescaped \n\r\b\t\f\u1234`}},
		{`"""slashes \\ \/"""`, tokenWant{BLOCK_STRING, 0, 19, `slashes \\ \/`}},
		{"\"\"\"\n\n        spans\n          multiple\n            lines\n\n        \"\"\"",
			tokenWant{BLOCK_STRING, 0, 68, "spans\n  multiple\n    lines"}},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assertToken(t, tt.want, lexOne(t, tt.body))
		})
	}
}

func TestBlockStringAdvancesLineCount(t *testing.T) {
	l := New(source.New("\"\"\"a\nb\nc\"\"\" foo"))
	_, err := l.Advance()
	require.NoError(t, err)
	tok, err := l.Advance()
	require.NoError(t, err)
	assert.Equal(t, 3, tok.Line)
	assert.Equal(t, 6, tok.Column)
}

type errorCase struct {
	body    string
	message string
	line    int
	column  int
}

func runErrorCases(t *testing.T, cases []errorCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.body, func(t *testing.T) {
			err := lexErr(t, tt.body)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, []source.Location{{Line: tt.line, Column: tt.column}}, err.Locations)
		})
	}
}

func TestReportsUsefulStringErrors(t *testing.T) {
	runErrorCases(t, []errorCase{
		{`"`, "Unterminated string.", 1, 2},
		{`"no end quote`, "Unterminated string.", 1, 14},
		{`'single quotes'`, `Unexpected single quote character ('), did you mean to use a double quote (")?`, 1, 1},
		{"\"contains unescaped \u0007 control char\"", `Invalid character within String: "\u0007"`, 1, 21},
		{"\"null-byte is not \u0000 end of file\"", `Invalid character within String: "\u0000"`, 1, 19},
		{"\"multi\nline\"", "Unterminated string.", 1, 7},
		{"\"multi\rline\"", "Unterminated string.", 1, 7},
		{`"bad \z esc"`, `Invalid character escape sequence: \z`, 1, 7},
		{`"bad \x esc"`, `Invalid character escape sequence: \x`, 1, 7},
		{`"bad \u1 esc"`, `Invalid character escape sequence: \u1 es`, 1, 7},
		{`"bad \u0XX1 esc"`, `Invalid character escape sequence: \u0XX1`, 1, 7},
		{`"bad \uXXXX esc"`, `Invalid character escape sequence: \uXXXX`, 1, 7},
		{`"bad \uFXXX esc"`, `Invalid character escape sequence: \uFXXX`, 1, 7},
		{`"bad \uXXXF esc"`, `Invalid character escape sequence: \uXXXF`, 1, 7},
	})
}

func TestReportsUsefulBlockStringErrors(t *testing.T) {
	runErrorCases(t, []errorCase{
		{`"""`, "Unterminated string.", 1, 4},
		{`"""no end quote`, "Unterminated string.", 1, 16},
		{"\"\"\"contains unescaped \u0007 control char\"\"\"", `Invalid character within String: "\u0007"`, 1, 23},
		{"\"\"\"null-byte is not \u0000 end of file\"\"\"", `Invalid character within String: "\u0000"`, 1, 21},
	})
}

func TestLexesNumbers(t *testing.T) {
	tests := []tokenWant{
		{INT, 0, 1, "4"},
		{FLOAT, 0, 5, "4.123"},
		{INT, 0, 2, "-4"},
		{INT, 0, 1, "9"},
		{INT, 0, 1, "0"},
		{FLOAT, 0, 6, "-4.123"},
		{FLOAT, 0, 5, "0.123"},
		{FLOAT, 0, 5, "123e4"},
		{FLOAT, 0, 5, "123E4"},
		{FLOAT, 0, 6, "123e-4"},
		{FLOAT, 0, 6, "123e+4"},
		{FLOAT, 0, 8, "-1.123e4"},
		{FLOAT, 0, 8, "-1.123E4"},
		{FLOAT, 0, 9, "-1.123e-4"},
		{FLOAT, 0, 9, "-1.123e+4"},
		{FLOAT, 0, 11, "-1.123e4567"},
	}
	for _, want := range tests {
		t.Run(want.value, func(t *testing.T) {
			assertToken(t, want, lexOne(t, want.value))
		})
	}
}

func TestReportsUsefulNumberErrors(t *testing.T) {
	runErrorCases(t, []errorCase{
		{"00", `Invalid number, unexpected digit after 0: "0"`, 1, 2},
		{"+1", `Cannot parse the unexpected character "+".`, 1, 1},
		{"1.", `Invalid number, expected digit but got: <EOF>`, 1, 3},
		{"1.e1", `Invalid number, expected digit but got: "e"`, 1, 3},
		{".123", `Cannot parse the unexpected character ".".`, 1, 1},
		{"1.A", `Invalid number, expected digit but got: "A"`, 1, 3},
		{"-A", `Invalid number, expected digit but got: "A"`, 1, 2},
		{"1.0e", `Invalid number, expected digit but got: <EOF>`, 1, 5},
		{"1.0eA", `Invalid number, expected digit but got: "A"`, 1, 5},
	})
}

func TestLexesPunctuation(t *testing.T) {
	tests := []struct {
		body string
		kind Kind
		end  int
	}{
		{"!", BANG, 1},
		{"$", DOLLAR, 1},
		{"&", AMP, 1},
		{"(", PAREN_L, 1},
		{")", PAREN_R, 1},
		{"...", SPREAD, 3},
		{":", COLON, 1},
		{"=", EQUALS, 1},
		{"@", AT, 1},
		{"[", BRACKET_L, 1},
		{"]", BRACKET_R, 1},
		{"{", BRACE_L, 1},
		{"|", PIPE, 1},
		{"}", BRACE_R, 1},
	}
	for _, tt := range tests {
		assertToken(t, tokenWant{tt.kind, 0, tt.end, ""}, lexOne(t, tt.body))
	}
}

func TestReportsUsefulUnknownCharErrors(t *testing.T) {
	runErrorCases(t, []errorCase{
		{"..", `Cannot parse the unexpected character ".".`, 1, 1},
		{"?", `Cannot parse the unexpected character "?".`, 1, 1},
		{"\u200b", `Cannot parse the unexpected character "\u200b".`, 1, 1},
		{"\u203b", `Cannot parse the unexpected character "\u203b".`, 1, 1},
		{"\U0001F600", `Cannot parse the unexpected character "\ud83d\ude00".`, 1, 1},
	})
}

func TestReportsUsefulInformationForDashesInNames(t *testing.T) {
	l := New(source.New("a-b"))
	tok, err := l.Advance()
	require.NoError(t, err)
	assertToken(t, tokenWant{NAME, 0, 1, "a"}, tok)

	_, err = l.Advance()
	require.Error(t, err)
	var gerr *gqlerror.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, `Invalid number, expected digit but got: "b"`, gerr.Message)
	assert.Equal(t, []source.Location{{Line: 1, Column: 3}}, gerr.Locations)
}

func TestProducesDoubleLinkedListOfTokensIncludingComments(t *testing.T) {
	l := New(source.New("{\n      #comment\n      field\n    }"))
	start := l.Token()
	var end Token
	for {
		tok, err := l.Advance()
		require.NoError(t, err)
		// comments are linked into the stream but never returned
		require.NotEqual(t, COMMENT, tok.Kind)
		if tok.Kind == EOF {
			end = tok
			break
		}
	}

	assert.Equal(t, -1, start.Prev)
	assert.Equal(t, -1, end.Next)

	var kinds []Kind
	prev := -1
	for i := start.Index; i >= 0; i = l.At(i).Next {
		tok := l.At(i)
		assert.Equal(t, prev, tok.Prev)
		prev = i
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{SOF, BRACE_L, COMMENT, NAME, BRACE_R, EOF}, kinds)
}

func TestAdvancePastEOFIsStable(t *testing.T) {
	l := New(source.New("a"))
	for i := 0; i < 3; i++ {
		_, err := l.Advance()
		require.NoError(t, err)
	}
	assert.Equal(t, EOF, l.Token().Kind)
	assert.Len(t, l.Tokens(), 3)
}

func TestTokenize(t *testing.T) {
	toks, err := Tokenize(source.New("query Q($a: Int = 1) { f(a: $a) @skip(if: false) } # tail"))
	require.NoError(t, err)
	assert.Equal(t, SOF, toks[0].Kind)
	assert.Equal(t, EOF, toks[len(toks)-1].Kind)
	assert.Equal(t, COMMENT, toks[len(toks)-2].Kind)
	assert.Equal(t, " tail", toks[len(toks)-2].Value)
	for i := 1; i < len(toks); i++ {
		assert.Equal(t, i-1, toks[i].Prev)
		assert.Equal(t, i, toks[i-1].Next)
	}
}

func TestTokenDescription(t *testing.T) {
	assert.Equal(t, "<EOF>", Token{Kind: EOF}.Description())
	assert.Equal(t, "{", Token{Kind: BRACE_L}.Description())
	assert.Equal(t, `Name "foo"`, Token{Kind: NAME, Value: "foo"}.Description())
}
