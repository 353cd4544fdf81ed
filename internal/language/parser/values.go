package parser

import (
	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/language/lexer"
)

// parseValueLiteral parses any value. When isConst is set, variables are
// rejected as unexpected tokens.
func (p *parser) parseValueLiteral(isConst bool) (ast.Value, error) {
	tok := p.tok
	switch tok.Kind {
	case lexer.BRACKET_L:
		return p.parseList(isConst)
	case lexer.BRACE_L:
		return p.parseObject(isConst)
	case lexer.INT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.IntValue{Loc: p.loc(tok), Value: tok.Value}, nil
	case lexer.FLOAT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &ast.FloatValue{Loc: p.loc(tok), Value: tok.Value}, nil
	case lexer.STRING, lexer.BLOCK_STRING:
		return p.parseStringLiteral()
	case lexer.NAME:
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch tok.Value {
		case "true", "false":
			return &ast.BooleanValue{Loc: p.loc(tok), Value: tok.Value == "true"}, nil
		case "null":
			return &ast.NullValue{Loc: p.loc(tok)}, nil
		}
		return &ast.EnumValue{Loc: p.loc(tok), Value: tok.Value}, nil
	case lexer.DOLLAR:
		if !isConst {
			return p.parseVariable()
		}
	}
	return nil, p.unexpected(tok)
}

func (p *parser) parseStringLiteral() (*ast.StringValue, error) {
	tok := p.tok
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &ast.StringValue{Loc: p.loc(tok), Value: tok.Value, Block: tok.Kind == lexer.BLOCK_STRING}, nil
}

func (p *parser) parseList(isConst bool) (*ast.ListValue, error) {
	if err := p.nest(); err != nil {
		return nil, err
	}
	defer p.unnest()

	start := p.tok
	values, err := anyList(p, lexer.BRACKET_L, func() (ast.Value, error) { return p.parseValueLiteral(isConst) }, lexer.BRACKET_R)
	if err != nil {
		return nil, err
	}
	return &ast.ListValue{Loc: p.loc(start), Values: values}, nil
}

func (p *parser) parseObject(isConst bool) (*ast.ObjectValue, error) {
	if err := p.nest(); err != nil {
		return nil, err
	}
	defer p.unnest()

	start := p.tok
	fields, err := anyList(p, lexer.BRACE_L, func() (*ast.ObjectField, error) { return p.parseObjectField(isConst) }, lexer.BRACE_R)
	if err != nil {
		return nil, err
	}
	return &ast.ObjectValue{Loc: p.loc(start), Fields: fields}, nil
}

func (p *parser) parseObjectField(isConst bool) (*ast.ObjectField, error) {
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
	return &ast.ObjectField{Loc: p.loc(start), Name: name, Value: value}, nil
}
