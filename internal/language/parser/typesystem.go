package parser

import (
	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/language/lexer"
)

func (p *parser) peekDescription() bool {
	return p.peek(lexer.STRING) || p.peek(lexer.BLOCK_STRING)
}

func (p *parser) parseDescription() (*ast.StringValue, error) {
	if !p.peekDescription() {
		return nil, nil
	}
	return p.parseStringLiteral()
}

func (p *parser) parseTypeSystemDefinition() (ast.Definition, error) {
	// A leading description belongs to the definition after it.
	keyword := p.tok
	if p.peekDescription() {
		var err error
		if keyword, err = p.lex.Lookahead(); err != nil {
			return nil, err
		}
	}
	if keyword.Kind == lexer.NAME {
		switch keyword.Value {
		case "schema":
			return p.parseSchemaDefinition()
		case "scalar":
			return p.parseScalarTypeDefinition()
		case "type":
			return p.parseObjectTypeDefinition()
		case "interface":
			return p.parseInterfaceTypeDefinition()
		case "union":
			return p.parseUnionTypeDefinition()
		case "enum":
			return p.parseEnumTypeDefinition()
		case "input":
			return p.parseInputObjectTypeDefinition()
		case "directive":
			return p.parseDirectiveDefinition()
		}
	}
	return nil, p.unexpected(keyword)
}

func (p *parser) parseSchemaDefinition() (*ast.SchemaDefinition, error) {
	start := p.tok
	if _, err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}
	def := &ast.SchemaDefinition{}
	var err error
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.OperationTypes, err = many(p, lexer.BRACE_L, p.parseOperationTypeDefinition, lexer.BRACE_R); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseOperationTypeDefinition() (*ast.OperationTypeDefinition, error) {
	start := p.tok
	op, err := p.parseOperationType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	typ, err := p.parseNamedType()
	if err != nil {
		return nil, err
	}
	return &ast.OperationTypeDefinition{Loc: p.loc(start), Operation: op, Type: typ}, nil
}

func (p *parser) parseScalarTypeDefinition() (*ast.ScalarTypeDefinition, error) {
	start := p.tok
	def := &ast.ScalarTypeDefinition{}
	var err error
	if def.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("scalar"); err != nil {
		return nil, err
	}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseObjectTypeDefinition() (*ast.ObjectTypeDefinition, error) {
	start := p.tok
	def := &ast.ObjectTypeDefinition{}
	var err error
	if def.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("type"); err != nil {
		return nil, err
	}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Interfaces, err = p.parseImplementsInterfaces(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Fields, err = p.parseFieldsDefinition(); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

// parseImplementsInterfaces parses `implements A & B`; a leading `&` is
// allowed.
func (p *parser) parseImplementsInterfaces() ([]*ast.NamedType, error) {
	ok, err := p.expectOptionalKeyword("implements")
	if err != nil || !ok {
		return nil, err
	}
	if _, err := p.skip(lexer.AMP); err != nil {
		return nil, err
	}
	var types []*ast.NamedType
	for {
		t, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if more, err := p.skip(lexer.AMP); err != nil {
			return nil, err
		} else if !more {
			return types, nil
		}
	}
}

func (p *parser) parseFieldsDefinition() ([]*ast.FieldDefinition, error) {
	if !p.peek(lexer.BRACE_L) {
		return nil, nil
	}
	return many(p, lexer.BRACE_L, p.parseFieldDefinition, lexer.BRACE_R)
}

func (p *parser) parseFieldDefinition() (*ast.FieldDefinition, error) {
	start := p.tok
	def := &ast.FieldDefinition{}
	var err error
	if def.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Arguments, err = p.parseArgumentDefs(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
	if def.Type, err = p.parseTypeReference(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseArgumentDefs() ([]*ast.InputValueDefinition, error) {
	if !p.peek(lexer.PAREN_L) {
		return nil, nil
	}
	return many(p, lexer.PAREN_L, p.parseInputValueDef, lexer.PAREN_R)
}

func (p *parser) parseInputValueDef() (*ast.InputValueDefinition, error) {
	start := p.tok
	def := &ast.InputValueDefinition{}
	var err error
	if def.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.COLON); err != nil {
		return nil, err
	}
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

func (p *parser) parseInterfaceTypeDefinition() (*ast.InterfaceTypeDefinition, error) {
	start := p.tok
	def := &ast.InterfaceTypeDefinition{}
	var err error
	if def.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("interface"); err != nil {
		return nil, err
	}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Interfaces, err = p.parseImplementsInterfaces(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Fields, err = p.parseFieldsDefinition(); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseUnionTypeDefinition() (*ast.UnionTypeDefinition, error) {
	start := p.tok
	def := &ast.UnionTypeDefinition{}
	var err error
	if def.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("union"); err != nil {
		return nil, err
	}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Types, err = p.parseUnionMemberTypes(); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

// parseUnionMemberTypes parses `= A | B`; a leading `|` is allowed.
func (p *parser) parseUnionMemberTypes() ([]*ast.NamedType, error) {
	ok, err := p.skip(lexer.EQUALS)
	if err != nil || !ok {
		return nil, err
	}
	if _, err := p.skip(lexer.PIPE); err != nil {
		return nil, err
	}
	var types []*ast.NamedType
	for {
		t, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		types = append(types, t)
		if more, err := p.skip(lexer.PIPE); err != nil {
			return nil, err
		} else if !more {
			return types, nil
		}
	}
}

func (p *parser) parseEnumTypeDefinition() (*ast.EnumTypeDefinition, error) {
	start := p.tok
	def := &ast.EnumTypeDefinition{}
	var err error
	if def.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("enum"); err != nil {
		return nil, err
	}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Values, err = p.parseEnumValuesDefinition(); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseEnumValuesDefinition() ([]*ast.EnumValueDefinition, error) {
	if !p.peek(lexer.BRACE_L) {
		return nil, nil
	}
	return many(p, lexer.BRACE_L, p.parseEnumValueDefinition, lexer.BRACE_R)
}

func (p *parser) parseEnumValueDefinition() (*ast.EnumValueDefinition, error) {
	start := p.tok
	def := &ast.EnumValueDefinition{}
	var err error
	if def.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if p.peek(lexer.NAME) {
		switch p.tok.Value {
		case "true", "false", "null":
			return nil, gqlerror.Syntaxf(p.src, p.tok.Start,
				"%s is reserved and cannot be used for an enum value.", p.tok.Description())
		}
	}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseInputObjectTypeDefinition() (*ast.InputObjectTypeDefinition, error) {
	start := p.tok
	def := &ast.InputObjectTypeDefinition{}
	var err error
	if def.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("input"); err != nil {
		return nil, err
	}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Fields, err = p.parseInputFieldsDefinition(); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseInputFieldsDefinition() ([]*ast.InputValueDefinition, error) {
	if !p.peek(lexer.BRACE_L) {
		return nil, nil
	}
	return many(p, lexer.BRACE_L, p.parseInputValueDef, lexer.BRACE_R)
}

func (p *parser) parseDirectiveDefinition() (*ast.DirectiveDefinition, error) {
	start := p.tok
	def := &ast.DirectiveDefinition{}
	var err error
	if def.Description, err = p.parseDescription(); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("directive"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.AT); err != nil {
		return nil, err
	}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Arguments, err = p.parseArgumentDefs(); err != nil {
		return nil, err
	}
	if def.Repeatable, err = p.expectOptionalKeyword("repeatable"); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	if def.Locations, err = p.parseDirectiveLocations(); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseDirectiveLocations() ([]*ast.Name, error) {
	if _, err := p.skip(lexer.PIPE); err != nil {
		return nil, err
	}
	var locs []*ast.Name
	for {
		start := p.tok
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		if !ast.IsDirectiveLocation(name.Value) {
			return nil, p.unexpected(start)
		}
		locs = append(locs, name)
		if more, err := p.skip(lexer.PIPE); err != nil {
			return nil, err
		} else if !more {
			return locs, nil
		}
	}
}

// Type extensions

func (p *parser) parseTypeSystemExtension() (ast.Definition, error) {
	keyword, err := p.lex.Lookahead()
	if err != nil {
		return nil, err
	}
	if keyword.Kind == lexer.NAME {
		switch keyword.Value {
		case "scalar":
			return p.parseScalarTypeExtension()
		case "type":
			return p.parseObjectTypeExtension()
		case "interface":
			return p.parseInterfaceTypeExtension()
		case "union":
			return p.parseUnionTypeExtension()
		case "enum":
			return p.parseEnumTypeExtension()
		case "input":
			return p.parseInputObjectTypeExtension()
		}
	}
	return nil, p.unexpected(keyword)
}

// expectExtend consumes `extend <keyword>` and the extended type's name.
func (p *parser) expectExtend(keyword string) (*ast.Name, error) {
	if _, err := p.expectKeyword("extend"); err != nil {
		return nil, err
	}
	if _, err := p.expectKeyword(keyword); err != nil {
		return nil, err
	}
	return p.parseName()
}

func (p *parser) parseScalarTypeExtension() (*ast.ScalarTypeExtension, error) {
	start := p.tok
	ext := &ast.ScalarTypeExtension{}
	var err error
	if ext.Name, err = p.expectExtend("scalar"); err != nil {
		return nil, err
	}
	if ext.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if len(ext.Directives) == 0 {
		return nil, p.unexpected(p.tok)
	}
	ext.Loc = p.loc(start)
	return ext, nil
}

func (p *parser) parseObjectTypeExtension() (*ast.ObjectTypeExtension, error) {
	start := p.tok
	ext := &ast.ObjectTypeExtension{}
	var err error
	if ext.Name, err = p.expectExtend("type"); err != nil {
		return nil, err
	}
	if ext.Interfaces, err = p.parseImplementsInterfaces(); err != nil {
		return nil, err
	}
	if ext.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if ext.Fields, err = p.parseFieldsDefinition(); err != nil {
		return nil, err
	}
	if len(ext.Interfaces) == 0 && len(ext.Directives) == 0 && len(ext.Fields) == 0 {
		return nil, p.unexpected(p.tok)
	}
	ext.Loc = p.loc(start)
	return ext, nil
}

func (p *parser) parseInterfaceTypeExtension() (*ast.InterfaceTypeExtension, error) {
	start := p.tok
	ext := &ast.InterfaceTypeExtension{}
	var err error
	if ext.Name, err = p.expectExtend("interface"); err != nil {
		return nil, err
	}
	if ext.Interfaces, err = p.parseImplementsInterfaces(); err != nil {
		return nil, err
	}
	if ext.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if ext.Fields, err = p.parseFieldsDefinition(); err != nil {
		return nil, err
	}
	if len(ext.Interfaces) == 0 && len(ext.Directives) == 0 && len(ext.Fields) == 0 {
		return nil, p.unexpected(p.tok)
	}
	ext.Loc = p.loc(start)
	return ext, nil
}

func (p *parser) parseUnionTypeExtension() (*ast.UnionTypeExtension, error) {
	start := p.tok
	ext := &ast.UnionTypeExtension{}
	var err error
	if ext.Name, err = p.expectExtend("union"); err != nil {
		return nil, err
	}
	if ext.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if ext.Types, err = p.parseUnionMemberTypes(); err != nil {
		return nil, err
	}
	if len(ext.Directives) == 0 && len(ext.Types) == 0 {
		return nil, p.unexpected(p.tok)
	}
	ext.Loc = p.loc(start)
	return ext, nil
}

func (p *parser) parseEnumTypeExtension() (*ast.EnumTypeExtension, error) {
	start := p.tok
	ext := &ast.EnumTypeExtension{}
	var err error
	if ext.Name, err = p.expectExtend("enum"); err != nil {
		return nil, err
	}
	if ext.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if ext.Values, err = p.parseEnumValuesDefinition(); err != nil {
		return nil, err
	}
	if len(ext.Directives) == 0 && len(ext.Values) == 0 {
		return nil, p.unexpected(p.tok)
	}
	ext.Loc = p.loc(start)
	return ext, nil
}

func (p *parser) parseInputObjectTypeExtension() (*ast.InputObjectTypeExtension, error) {
	start := p.tok
	ext := &ast.InputObjectTypeExtension{}
	var err error
	if ext.Name, err = p.expectExtend("input"); err != nil {
		return nil, err
	}
	if ext.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if ext.Fields, err = p.parseInputFieldsDefinition(); err != nil {
		return nil, err
	}
	if len(ext.Directives) == 0 && len(ext.Fields) == 0 {
		return nil, p.unexpected(p.tok)
	}
	ext.Loc = p.loc(start)
	return ext, nil
}
