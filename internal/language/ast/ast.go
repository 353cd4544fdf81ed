// Package ast defines the syntax tree produced by the parser.
//
// Nodes are plain structs behind a small set of sealed interfaces. A tree is
// never mutated after the parser returns it; tools that transform documents
// build new nodes.
package ast

import (
	"github.com/hanpama/gqlfront/internal/language/lexer"
	"github.com/hanpama/gqlfront/internal/language/source"
)

// Location is the span of a node within its source. StartToken and EndToken
// index the owning Document's token stream; they are -1 when the document
// was parsed without keeping tokens.
type Location struct {
	Start      int
	End        int
	StartToken int
	EndToken   int
	Source     *source.Source
}

// StartLocation returns the line and column where the span begins.
func (l *Location) StartLocation() source.Location {
	return l.Source.OffsetToLocation(l.Start)
}

// Node is implemented by every syntax tree node.
type Node interface {
	Kind() Kind
	// Location returns nil for nodes built without location information.
	Location() *Location
}

// Definition is a top level item of a Document.
type Definition interface {
	Node
	isDefinition()
}

// ExecutableDefinition is an operation or fragment definition.
type ExecutableDefinition interface {
	Definition
	isExecutableDefinition()
}

// TypeSystemDefinition is a schema, type or directive definition, or a
// type extension.
type TypeSystemDefinition interface {
	Definition
	isTypeSystemDefinition()
}

// TypeDefinition is one of the six named type definitions.
type TypeDefinition interface {
	TypeSystemDefinition
	TypeName() string
	isTypeDefinition()
}

// TypeExtension is one of the six type extensions.
type TypeExtension interface {
	TypeSystemDefinition
	TypeName() string
	isTypeExtension()
}

type Selection interface {
	Node
	isSelection()
}

type Value interface {
	Node
	isValue()
}

// Type is a type reference: a named type, a list or a non-null wrapper.
type Type interface {
	Node
	String() string
	isType()
}

type Name struct {
	Loc   *Location
	Value string
}

type Document struct {
	Loc         *Location
	Definitions []Definition

	// Tokens is the full token stream the document was parsed from,
	// including comments. Nil when locations were not recorded.
	Tokens []lexer.Token
}

type OperationDefinition struct {
	Loc                 *Location
	Operation           Operation
	Name                *Name
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        *SelectionSet
}

type VariableDefinition struct {
	Loc          *Location
	Variable     *Variable
	Type         Type
	DefaultValue Value
	Directives   []*Directive
}

type Variable struct {
	Loc  *Location
	Name *Name
}

type SelectionSet struct {
	Loc        *Location
	Selections []Selection
}

type Field struct {
	Loc          *Location
	Alias        *Name
	Name         *Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet
}

// ResponseKey is the alias if present, otherwise the field name.
func (f *Field) ResponseKey() string {
	if f.Alias != nil {
		return f.Alias.Value
	}
	return f.Name.Value
}

type Argument struct {
	Loc   *Location
	Name  *Name
	Value Value
}

type FragmentSpread struct {
	Loc        *Location
	Name       *Name
	Directives []*Directive
}

type InlineFragment struct {
	Loc           *Location
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

type FragmentDefinition struct {
	Loc           *Location
	Name          *Name
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
}

type IntValue struct {
	Loc   *Location
	Value string
}

type FloatValue struct {
	Loc   *Location
	Value string
}

type StringValue struct {
	Loc   *Location
	Value string
	Block bool
}

type BooleanValue struct {
	Loc   *Location
	Value bool
}

type EnumValue struct {
	Loc   *Location
	Value string
}

type NullValue struct {
	Loc *Location
}

type ListValue struct {
	Loc    *Location
	Values []Value
}

type ObjectValue struct {
	Loc    *Location
	Fields []*ObjectField
}

type ObjectField struct {
	Loc   *Location
	Name  *Name
	Value Value
}

type Directive struct {
	Loc       *Location
	Name      *Name
	Arguments []*Argument
}

type NamedType struct {
	Loc  *Location
	Name *Name
}

type ListType struct {
	Loc  *Location
	Type Type
}

// NonNullType wraps a NamedType or a ListType, never another NonNullType.
type NonNullType struct {
	Loc  *Location
	Type Type
}

type SchemaDefinition struct {
	Loc            *Location
	Directives     []*Directive
	OperationTypes []*OperationTypeDefinition
}

type OperationTypeDefinition struct {
	Loc       *Location
	Operation Operation
	Type      *NamedType
}

type ScalarTypeDefinition struct {
	Loc         *Location
	Description *StringValue
	Name        *Name
	Directives  []*Directive
}

type ObjectTypeDefinition struct {
	Loc         *Location
	Description *StringValue
	Name        *Name
	Interfaces  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
}

type FieldDefinition struct {
	Loc         *Location
	Description *StringValue
	Name        *Name
	Arguments   []*InputValueDefinition
	Type        Type
	Directives  []*Directive
}

type InputValueDefinition struct {
	Loc          *Location
	Description  *StringValue
	Name         *Name
	Type         Type
	DefaultValue Value
	Directives   []*Directive
}

type InterfaceTypeDefinition struct {
	Loc         *Location
	Description *StringValue
	Name        *Name
	Interfaces  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
}

type UnionTypeDefinition struct {
	Loc         *Location
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Types       []*NamedType
}

type EnumTypeDefinition struct {
	Loc         *Location
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Values      []*EnumValueDefinition
}

type EnumValueDefinition struct {
	Loc         *Location
	Description *StringValue
	Name        *Name
	Directives  []*Directive
}

type InputObjectTypeDefinition struct {
	Loc         *Location
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Fields      []*InputValueDefinition
}

type ScalarTypeExtension struct {
	Loc        *Location
	Name       *Name
	Directives []*Directive
}

type ObjectTypeExtension struct {
	Loc        *Location
	Name       *Name
	Interfaces []*NamedType
	Directives []*Directive
	Fields     []*FieldDefinition
}

type InterfaceTypeExtension struct {
	Loc        *Location
	Name       *Name
	Interfaces []*NamedType
	Directives []*Directive
	Fields     []*FieldDefinition
}

type UnionTypeExtension struct {
	Loc        *Location
	Name       *Name
	Directives []*Directive
	Types      []*NamedType
}

type EnumTypeExtension struct {
	Loc        *Location
	Name       *Name
	Directives []*Directive
	Values     []*EnumValueDefinition
}

type InputObjectTypeExtension struct {
	Loc        *Location
	Name       *Name
	Directives []*Directive
	Fields     []*InputValueDefinition
}

type DirectiveDefinition struct {
	Loc         *Location
	Description *StringValue
	Name        *Name
	Arguments   []*InputValueDefinition
	Repeatable  bool
	Locations   []*Name
}
