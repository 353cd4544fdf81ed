// Package parser is a recursive-descent parser for GraphQL documents. It
// stops at the first syntax error and never returns a partial tree.
package parser

import (
	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/language/lexer"
	"github.com/hanpama/gqlfront/internal/language/source"
)

// DefaultMaxDepth bounds the nesting of selection sets, list and object
// values and list types.
const DefaultMaxDepth = 256

type Option func(*parser)

// WithNoLocation omits Loc on every node and the token stream on the
// document.
func WithNoLocation() Option {
	return func(p *parser) { p.noLocation = true }
}

// WithMaxDepth overrides DefaultMaxDepth. A value <= 0 disables the limit.
func WithMaxDepth(n int) Option {
	return func(p *parser) { p.maxDepth = n }
}

type parser struct {
	lex *lexer.Lexer
	src *source.Source

	tok  lexer.Token // current token
	last lexer.Token // last consumed token

	noLocation bool
	maxDepth   int
	depth      int
}

func newParser(src *source.Source, opts []Option) *parser {
	l := lexer.New(src)
	p := &parser{lex: l, src: src, tok: l.Token(), last: l.Token(), maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse parses a complete document.
func Parse(src *source.Source, opts ...Option) (*ast.Document, error) {
	p := newParser(src, opts)
	doc, err := p.parseDocument()
	if err != nil {
		return nil, err
	}
	if !p.noLocation {
		doc.Tokens = p.lex.Tokens()
	}
	return doc, nil
}

// ParseValue parses a single value literal, variables allowed.
func ParseValue(src *source.Source, opts ...Option) (ast.Value, error) {
	return parseStandalone(src, opts, func(p *parser) (ast.Value, error) { return p.parseValueLiteral(false) })
}

// ParseConstValue parses a single value literal that may not reference
// variables.
func ParseConstValue(src *source.Source, opts ...Option) (ast.Value, error) {
	return parseStandalone(src, opts, func(p *parser) (ast.Value, error) { return p.parseValueLiteral(true) })
}

// ParseType parses a single type reference such as `[String!]`.
func ParseType(src *source.Source, opts ...Option) (ast.Type, error) {
	return parseStandalone(src, opts, (*parser).parseTypeReference)
}

func parseStandalone[T any](src *source.Source, opts []Option, fn func(*parser) (T, error)) (T, error) {
	var zero T
	p := newParser(src, opts)
	if _, err := p.expect(lexer.SOF); err != nil {
		return zero, err
	}
	n, err := fn(p)
	if err != nil {
		return zero, err
	}
	if _, err := p.expect(lexer.EOF); err != nil {
		return zero, err
	}
	return n, nil
}

func (p *parser) parseDocument() (*ast.Document, error) {
	start := p.tok
	defs, err := many(p, lexer.SOF, p.parseDefinition, lexer.EOF)
	if err != nil {
		return nil, err
	}
	return &ast.Document{Loc: p.loc(start), Definitions: defs}, nil
}

func (p *parser) parseDefinition() (ast.Definition, error) {
	if p.peek(lexer.NAME) {
		switch p.tok.Value {
		case "query", "mutation", "subscription", "fragment":
			return p.parseExecutableDefinition()
		case "schema", "scalar", "type", "interface", "union", "enum", "input", "directive":
			return p.parseTypeSystemDefinition()
		case "extend":
			return p.parseTypeSystemExtension()
		}
	} else if p.peek(lexer.BRACE_L) {
		return p.parseExecutableDefinition()
	} else if p.peekDescription() {
		return p.parseTypeSystemDefinition()
	}
	return nil, p.unexpected(p.tok)
}

func (p *parser) parseExecutableDefinition() (ast.Definition, error) {
	if p.peek(lexer.NAME) && p.tok.Value == "fragment" {
		return p.parseFragmentDefinition()
	}
	return p.parseOperationDefinition()
}

func (p *parser) parseOperationDefinition() (*ast.OperationDefinition, error) {
	start := p.tok
	if p.peek(lexer.BRACE_L) {
		sel, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		return &ast.OperationDefinition{Loc: p.loc(start), Operation: ast.Query, SelectionSet: sel}, nil
	}

	op, err := p.parseOperationType()
	if err != nil {
		return nil, err
	}
	def := &ast.OperationDefinition{Operation: op}
	if p.peek(lexer.NAME) {
		if def.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}
	if def.VariableDefinitions, err = p.parseVariableDefinitions(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if def.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseOperationType() (ast.Operation, error) {
	tok, err := p.expect(lexer.NAME)
	if err != nil {
		return "", err
	}
	switch tok.Value {
	case "query":
		return ast.Query, nil
	case "mutation":
		return ast.Mutation, nil
	case "subscription":
		return ast.Subscription, nil
	}
	return "", p.unexpected(tok)
}

func (p *parser) parseVariableDefinitions() ([]*ast.VariableDefinition, error) {
	if !p.peek(lexer.PAREN_L) {
		return nil, nil
	}
	return many(p, lexer.PAREN_L, p.parseVariableDefinition, lexer.PAREN_R)
}

func (p *parser) parseVariableDefinition() (*ast.VariableDefinition, error) {
	start := p.tok
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	def := &ast.VariableDefinition{Variable: v}
	if def.Type, err = p.parseTypeReference(); err != nil {
		return nil, err
	}
	if ok, err := p.skip(lexer.EQUALS); err != nil {
		return nil, err
	} else if ok {
		if def.DefaultValue, err = p.parseValueLiteral(true); err != nil {
			return nil, err
		}
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseVariable() (*ast.Variable, error) {
	start := p.tok
	if _, err := p.expect(lexer.DOLLAR); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.Variable{Loc: p.loc(start), Name: name}, nil
}

func (p *parser) parseSelectionSet() (*ast.SelectionSet, error) {
	if err := p.nest(); err != nil {
		return nil, err
	}
	defer p.unnest()

	start := p.tok
	sels, err := many(p, lexer.BRACE_L, p.parseSelection, lexer.BRACE_R)
	if err != nil {
		return nil, err
	}
	return &ast.SelectionSet{Loc: p.loc(start), Selections: sels}, nil
}

func (p *parser) parseSelection() (ast.Selection, error) {
	if p.peek(lexer.SPREAD) {
		return p.parseFragment()
	}
	return p.parseField()
}

func (p *parser) parseField() (*ast.Field, error) {
	start := p.tok
	nameOrAlias, err := p.parseName()
	if err != nil {
		return nil, err
	}
	f := &ast.Field{Name: nameOrAlias}
	if ok, err := p.skip(lexer.COLON); err != nil {
		return nil, err
	} else if ok {
		f.Alias = nameOrAlias
		if f.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}
	if f.Arguments, err = p.parseArguments(false); err != nil {
		return nil, err
	}
	if f.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if p.peek(lexer.BRACE_L) {
		if f.SelectionSet, err = p.parseSelectionSet(); err != nil {
			return nil, err
		}
	}
	f.Loc = p.loc(start)
	return f, nil
}

func (p *parser) parseArguments(isConst bool) ([]*ast.Argument, error) {
	if !p.peek(lexer.PAREN_L) {
		return nil, nil
	}
	return many(p, lexer.PAREN_L, func() (*ast.Argument, error) { return p.parseArgument(isConst) }, lexer.PAREN_R)
}

func (p *parser) parseArgument(isConst bool) (*ast.Argument, error) {
	start := p.tok
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	value, err := p.parseValueLiteral(isConst)
	if err != nil {
		return nil, err
	}
	return &ast.Argument{Loc: p.loc(start), Name: name, Value: value}, nil
}

// parseFragment parses a fragment spread or an inline fragment; both begin
// with `...`.
func (p *parser) parseFragment() (ast.Selection, error) {
	start := p.tok
	if _, err := p.expect(lexer.SPREAD); err != nil {
		return nil, err
	}
	hasTypeCondition, err := p.expectOptionalKeyword("on")
	if err != nil {
		return nil, err
	}

	if !hasTypeCondition && p.peek(lexer.NAME) {
		spread := &ast.FragmentSpread{}
		if spread.Name, err = p.parseFragmentName(); err != nil {
			return nil, err
		}
		if spread.Directives, err = p.parseDirectives(false); err != nil {
			return nil, err
		}
		spread.Loc = p.loc(start)
		return spread, nil
	}

	frag := &ast.InlineFragment{}
	if hasTypeCondition {
		if frag.TypeCondition, err = p.parseNamedType(); err != nil {
			return nil, err
		}
	}
	if frag.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if frag.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}
	frag.Loc = p.loc(start)
	return frag, nil
}

func (p *parser) parseFragmentDefinition() (*ast.FragmentDefinition, error) {
	start := p.tok
	if _, err := p.expectKeyword("fragment"); err != nil {
		return nil, err
	}
	def := &ast.FragmentDefinition{}
	var err error
	if def.Name, err = p.parseFragmentName(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	if def.TypeCondition, err = p.parseNamedType(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if def.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseFragmentName() (*ast.Name, error) {
	if p.tok.Kind == lexer.NAME && p.tok.Value == "on" {
		return nil, p.unexpected(p.tok)
	}
	return p.parseName()
}

func (p *parser) parseName() (*ast.Name, error) {
	tok, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	return &ast.Name{Loc: p.loc(tok), Value: tok.Value}, nil
}

func (p *parser) parseDirectives(isConst bool) ([]*ast.Directive, error) {
	var dirs []*ast.Directive
	for p.peek(lexer.AT) {
		d, err := p.parseDirective(isConst)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}

func (p *parser) parseDirective(isConst bool) (*ast.Directive, error) {
	start := p.tok
	if _, err := p.expect(lexer.AT); err != nil {
		return nil, err
	}
	d := &ast.Directive{}
	var err error
	if d.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if d.Arguments, err = p.parseArguments(isConst); err != nil {
		return nil, err
	}
	d.Loc = p.loc(start)
	return d, nil
}

// Type references

func (p *parser) parseTypeReference() (ast.Type, error) {
	start := p.tok
	var typ ast.Type
	if ok, err := p.skip(lexer.BRACKET_L); err != nil {
		return nil, err
	} else if ok {
		if err := p.nest(); err != nil {
			return nil, err
		}
		inner, err := p.parseTypeReference()
		p.unnest()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.BRACKET_R); err != nil {
			return nil, err
		}
		typ = &ast.ListType{Loc: p.loc(start), Type: inner}
	} else {
		named, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		typ = named
	}

	if ok, err := p.skip(lexer.BANG); err != nil {
		return nil, err
	} else if ok {
		return &ast.NonNullType{Loc: p.loc(start), Type: typ}, nil
	}
	return typ, nil
}

func (p *parser) parseNamedType() (*ast.NamedType, error) {
	start := p.tok
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.NamedType{Loc: p.loc(start), Name: name}, nil
}
