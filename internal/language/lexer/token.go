package lexer

import (
	"strconv"
)

// Kind identifies the lexical category of a Token.
type Kind int

const (
	SOF Kind = iota
	EOF
	BANG
	DOLLAR
	AMP
	PAREN_L
	PAREN_R
	SPREAD
	COLON
	EQUALS
	AT
	BRACKET_L
	BRACKET_R
	BRACE_L
	PIPE
	BRACE_R
	NAME
	INT
	FLOAT
	STRING
	BLOCK_STRING
	COMMENT
)

var kindNames = [...]string{
	SOF:          "<SOF>",
	EOF:          "<EOF>",
	BANG:         "!",
	DOLLAR:       "$",
	AMP:          "&",
	PAREN_L:      "(",
	PAREN_R:      ")",
	SPREAD:       "...",
	COLON:        ":",
	EQUALS:       "=",
	AT:           "@",
	BRACKET_L:    "[",
	BRACKET_R:    "]",
	BRACE_L:      "{",
	PIPE:         "|",
	BRACE_R:      "}",
	NAME:         "Name",
	INT:          "Int",
	FLOAT:        "Float",
	STRING:       "String",
	BLOCK_STRING: "BlockString",
	COMMENT:      "Comment",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsPunctuator reports whether tokens of this kind carry no value.
func (k Kind) IsPunctuator() bool {
	switch k {
	case BANG, DOLLAR, AMP, PAREN_L, PAREN_R, SPREAD, COLON, EQUALS, AT,
		BRACKET_L, BRACKET_R, BRACE_L, PIPE, BRACE_R:
		return true
	}
	return false
}

// Token is one lexical unit. Start and End are byte offsets into the
// source body (End exclusive); Line and Column are 1-based and relative to
// the body. Prev and Next index the lexer's token stream, -1 meaning none.
type Token struct {
	Kind   Kind
	Start  int
	End    int
	Line   int
	Column int
	Value  string

	Index int
	Prev  int
	Next  int
}

// Description renders the token for parser error messages, e.g.
// `Name "foo"`, `{` or `<EOF>`.
func (t Token) Description() string {
	if t.Value == "" {
		return t.Kind.String()
	}
	return t.Kind.String() + ` "` + t.Value + `"`
}
