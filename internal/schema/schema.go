package schema

import (
	"slices"
	"sort"

	"github.com/hanpama/gqlfront/internal/language/ast"
)

// Schema represents the complete GraphQL schema
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            map[string]*Type // All named types keyed by name
	Directives       map[string]*Directive
	Description      string

	// implementations maps an interface name to the object types that
	// implement it, in type-name order. Filled by Finish.
	implementations map[string][]string
}

// GetQueryType returns the root query type (may be nil if absent)
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent)
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// GetSubscriptionType returns the root subscription type (may be nil if absent)
func (s *Schema) GetSubscriptionType() *Type { return s.Types[s.SubscriptionType] }

// Type returns the named type or nil.
func (s *Schema) Type(name string) *Type { return s.Types[name] }

// TypeNames returns every type name in lexical order.
func (s *Schema) TypeNames() []string {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Directive returns the named directive or nil.
func (s *Schema) Directive(name string) *Directive { return s.Directives[name] }

// DirectiveNames returns every directive name in lexical order.
func (s *Schema) DirectiveNames() []string {
	names := make([]string, 0, len(s.Directives))
	for name := range s.Directives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RootType returns the root type for an operation, or nil when the schema
// does not support it.
func (s *Schema) RootType(op ast.Operation) *Type {
	switch op {
	case ast.Query:
		return s.GetQueryType()
	case ast.Mutation:
		return s.GetMutationType()
	case ast.Subscription:
		return s.GetSubscriptionType()
	}
	return nil
}

// PossibleTypes returns the object types an abstract type may resolve to.
// For an object type it is the type itself.
func (s *Schema) PossibleTypes(t *Type) []*Type {
	if t == nil {
		return nil
	}
	var names []string
	switch t.Kind {
	case TypeKindObject:
		return []*Type{t}
	case TypeKindUnion:
		names = t.PossibleTypes
	case TypeKindInterface:
		names = s.implementationsOf(t.Name)
	}
	out := make([]*Type, 0, len(names))
	for _, name := range names {
		if pt := s.Types[name]; pt != nil {
			out = append(out, pt)
		}
	}
	return out
}

// IsPossibleType reports whether obj is one of abstract's possible types.
func (s *Schema) IsPossibleType(abstract, obj *Type) bool {
	for _, pt := range s.PossibleTypes(abstract) {
		if pt.Name == obj.Name {
			return true
		}
	}
	return false
}

// Finish computes derived data (interface implementations). Builders call
// it once all types are added; call it again after further changes.
func (s *Schema) Finish() *Schema {
	s.implementations = make(map[string][]string)
	for _, name := range s.TypeNames() {
		t := s.Types[name]
		if t.Kind != TypeKindObject {
			continue
		}
		for _, iface := range t.Interfaces {
			s.implementations[iface] = append(s.implementations[iface], t.Name)
		}
	}
	return s
}

func (s *Schema) implementationsOf(iface string) []string {
	if s.implementations != nil {
		return s.implementations[iface]
	}
	var names []string
	for _, name := range s.TypeNames() {
		t := s.Types[name]
		if t.Kind == TypeKindObject && slices.Contains(t.Interfaces, iface) {
			names = append(names, name)
		}
	}
	return names
}

// Type is a named GraphQL type (object, interface, union, scalar, enum, input)
type Type struct {
	Name           string
	Kind           TypeKind
	Description    string
	Fields         []*Field      // For OBJECT and INTERFACE
	Interfaces     []string      // For OBJECT and INTERFACE (implemented/extended)
	PossibleTypes  []string      // For UNION
	EnumValues     []*EnumValue  // For ENUM
	InputFields    []*InputValue // For INPUT_OBJECT
	SpecifiedByURL *string
	OneOf          bool

	// LiteralValidator checks literals of a custom scalar. A non-nil error
	// makes the literal invalid; its message is appended to the
	// validation error.
	LiteralValidator func(ast.Value) error `json:"-"`
}

// Field returns the named field of an object or interface type.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// InputField returns the named field of an input object type.
func (t *Type) InputField(name string) *InputValue {
	for _, f := range t.InputFields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// EnumValue returns the named value of an enum type.
func (t *Type) EnumValue(name string) *EnumValue {
	for _, v := range t.EnumValues {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// IsLeaf reports whether values of the type are scalars or enums.
func (t *Type) IsLeaf() bool { return t.Kind == TypeKindScalar || t.Kind == TypeKindEnum }

// IsComposite reports whether the type has a selection set.
func (t *Type) IsComposite() bool {
	return t.Kind == TypeKindObject || t.Kind == TypeKindInterface || t.Kind == TypeKindUnion
}

// IsAbstract reports whether the type is an interface or union.
func (t *Type) IsAbstract() bool { return t.Kind == TypeKindInterface || t.Kind == TypeKindUnion }

// IsInputType reports whether the type may be used for arguments and
// variables.
func (t *Type) IsInputType() bool { return t.IsLeaf() || t.Kind == TypeKindInputObject }

// IsOutputType reports whether the type may be used as a field type.
func (t *Type) IsOutputType() bool { return t.Kind != TypeKindInputObject }

// Field represents a field on an object or interface
type Field struct {
	Name              string
	Description       string
	Type              *TypeRef
	Arguments         []*InputValue
	IsDeprecated      bool
	DeprecationReason string
}

// Argument returns the named argument definition.
func (f *Field) Argument(name string) *InputValue { return findInputValue(f.Arguments, name) }

// TypeKind represents the kind of GraphQL type
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

// Helper functions for TypeRef
func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

func (t *TypeRef) IsList() bool {
	if t.Kind == TypeRefKindList {
		return true
	}
	if t.Kind == TypeRefKindNonNull && t.OfType != nil {
		return t.OfType.Kind == TypeRefKindList
	}
	return false
}

func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

// Nullable strips a Non-Null wrapper if present.
func (t *TypeRef) Nullable() *TypeRef {
	if t.IsNonNull() {
		return t.OfType
	}
	return t
}

func (t *TypeRef) GetNamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

// String renders the reference in SDL notation, e.g. `[String!]!`.
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	}
	return t.Named
}

// Equal reports whether two references denote the same type.
func (t *TypeRef) Equal(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind == TypeRefKindNamed {
		return t.Named == o.Named
	}
	return t.OfType.Equal(o.OfType)
}

// FromAST converts a syntax tree type reference.
func FromAST(t ast.Type) *TypeRef {
	switch t := t.(type) {
	case *ast.NamedType:
		return NamedType(t.Name.Value)
	case *ast.ListType:
		return ListType(FromAST(t.Type))
	case *ast.NonNullType:
		return NonNullType(FromAST(t.Type))
	}
	return nil
}

type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

type InputValue struct {
	Name              string
	Description       string
	Type              *TypeRef
	DefaultValue      ast.Value `json:"-"`
	IsDeprecated      bool
	DeprecationReason string
}

type Directive struct {
	Name         string
	Description  string
	Locations    []string
	Arguments    []*InputValue
	IsRepeatable bool
}

// Argument returns the named argument definition.
func (d *Directive) Argument(name string) *InputValue { return findInputValue(d.Arguments, name) }

// HasLocation reports whether the directive may appear at loc.
func (d *Directive) HasLocation(loc ast.DirectiveLocation) bool {
	for _, l := range d.Locations {
		if l == string(loc) {
			return true
		}
	}
	return false
}

func findInputValue(values []*InputValue, name string) *InputValue {
	for _, v := range values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// IsNonNull reports whether the type is wrapped with Non-Null.
func IsNonNull(t *TypeRef) bool { return t != nil && t.IsNonNull() }

// IsList reports whether the type is (or is wrapped by) a list type.
func IsList(t *TypeRef) bool { return t != nil && t.IsList() }

// Unwrap removes one layer of Non-Null or List wrapping and returns the inner type.
func Unwrap(t *TypeRef) *TypeRef { return t.Unwrap() }

// GetNamedType returns the innermost named type for the given reference.
func GetNamedType(t *TypeRef) string { return t.GetNamedType() }
