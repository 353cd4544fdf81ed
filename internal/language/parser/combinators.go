package parser

import (
	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/language/lexer"
)

func (p *parser) advance() error {
	p.last = p.tok
	tok, err := p.lex.Advance()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// loc returns the span from start to the last consumed token.
func (p *parser) loc(start lexer.Token) *ast.Location {
	if p.noLocation {
		return nil
	}
	return &ast.Location{
		Start:      start.Start,
		End:        p.last.End,
		StartToken: start.Index,
		EndToken:   p.last.Index,
		Source:     p.src,
	}
}

func (p *parser) peek(kind lexer.Kind) bool {
	return p.tok.Kind == kind
}

// skip consumes the current token if it has the given kind.
func (p *parser) skip(kind lexer.Kind) (bool, error) {
	if p.tok.Kind != kind {
		return false, nil
	}
	return true, p.advance()
}

// expect consumes and returns the current token if it has the given kind.
func (p *parser) expect(kind lexer.Kind) (lexer.Token, error) {
	tok := p.tok
	if tok.Kind != kind {
		return tok, gqlerror.Syntaxf(p.src, tok.Start, "Expected %s, found %s", kind, tok.Description())
	}
	return tok, p.advance()
}

// expectKeyword consumes the current token if it is the given name.
func (p *parser) expectKeyword(value string) (lexer.Token, error) {
	tok := p.tok
	if tok.Kind != lexer.NAME || tok.Value != value {
		return tok, gqlerror.Syntaxf(p.src, tok.Start, "Expected %q, found %s", value, tok.Description())
	}
	return tok, p.advance()
}

func (p *parser) expectOptionalKeyword(value string) (bool, error) {
	if p.tok.Kind != lexer.NAME || p.tok.Value != value {
		return false, nil
	}
	return true, p.advance()
}

func (p *parser) unexpected(tok lexer.Token) error {
	return gqlerror.Syntaxf(p.src, tok.Start, "Unexpected %s", tok.Description())
}

func (p *parser) nest() error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return gqlerror.Syntaxf(p.src, p.tok.Start, "Document exceeds the maximum nesting depth of %d.", p.maxDepth)
	}
	return nil
}

func (p *parser) unnest() { p.depth-- }

// many parses a non-empty list of fn's nodes delimited by openKind and closeKind,
// consuming both delimiters.
func many[T any](p *parser, openKind lexer.Kind, fn func() (T, error), closeKind lexer.Kind) ([]T, error) {
	if _, err := p.expect(openKind); err != nil {
		return nil, err
	}
	var nodes []T
	for {
		n, err := fn()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		if done, err := p.skip(closeKind); err != nil {
			return nil, err
		} else if done {
			return nodes, nil
		}
	}
}

// anyList is many but allows the list to be empty.
func anyList[T any](p *parser, openKind lexer.Kind, fn func() (T, error), closeKind lexer.Kind) ([]T, error) {
	if _, err := p.expect(openKind); err != nil {
		return nil, err
	}
	var nodes []T
	for {
		if done, err := p.skip(closeKind); err != nil {
			return nil, err
		} else if done {
			return nodes, nil
		}
		n, err := fn()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
}
