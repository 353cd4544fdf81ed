package schema

import (
	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/language/parser"
	"github.com/hanpama/gqlfront/internal/language/source"
)

// NewSchema returns an empty schema with the builtin scalars and directives.
func NewSchema(description string) *Schema {
	s := &Schema{
		Types:       make(map[string]*Type),
		Directives:  make(map[string]*Directive),
		Description: description,
	}
	for _, t := range builtinTypes {
		cp := *t
		s.AddType(&cp)
	}
	for _, d := range builtinDirectives {
		s.AddDirective(d)
	}
	return s
}

func (s *Schema) SetQueryType(name string) *Schema        { s.QueryType = name; return s }
func (s *Schema) SetMutationType(name string) *Schema     { s.MutationType = name; return s }
func (s *Schema) SetSubscriptionType(name string) *Schema { s.SubscriptionType = name; return s }

func (s *Schema) AddType(t *Type) *Schema {
	s.Types[t.Name] = t
	return s
}

func (s *Schema) AddDirective(d *Directive) *Schema {
	s.Directives[d.Name] = d
	return s
}

func NewType(name string, kind TypeKind, description string) *Type {
	return &Type{Name: name, Kind: kind, Description: description}
}

func (t *Type) AddField(f *Field) *Type        { t.Fields = append(t.Fields, f); return t }
func (t *Type) AddInterface(name string) *Type { t.Interfaces = append(t.Interfaces, name); return t }
func (t *Type) AddPossibleType(name string) *Type {
	t.PossibleTypes = append(t.PossibleTypes, name)
	return t
}
func (t *Type) AddEnumValue(v *EnumValue) *Type   { t.EnumValues = append(t.EnumValues, v); return t }
func (t *Type) AddInputField(v *InputValue) *Type { t.InputFields = append(t.InputFields, v); return t }
func (t *Type) SetOneOf(oneOf bool) *Type         { t.OneOf = oneOf; return t }
func (t *Type) SetSpecifiedBy(url string) *Type   { t.SpecifiedByURL = &url; return t }
func (t *Type) SetLiteralValidator(fn func(ast.Value) error) *Type {
	t.LiteralValidator = fn
	return t
}

func NewField(name, description string, typ *TypeRef) *Field {
	return &Field{Name: name, Description: description, Type: typ}
}

func (f *Field) AddArgument(v *InputValue) *Field { f.Arguments = append(f.Arguments, v); return f }

func (f *Field) Deprecate(reason string) *Field {
	f.IsDeprecated, f.DeprecationReason = true, reason
	return f
}

func NewEnumValue(name, description string) *EnumValue {
	return &EnumValue{Name: name, Description: description}
}

func (v *EnumValue) Deprecate(reason string) *EnumValue {
	v.IsDeprecated, v.DeprecationReason = true, reason
	return v
}

func NewInputValue(name, description string, typ *TypeRef) *InputValue {
	return &InputValue{Name: name, Description: description, Type: typ}
}

func (v *InputValue) SetDefault(value ast.Value) *InputValue { v.DefaultValue = value; return v }

func (v *InputValue) Deprecate(reason string) *InputValue {
	v.IsDeprecated, v.DeprecationReason = true, reason
	return v
}

func NewDirective(name, description string) *Directive {
	return &Directive{Name: name, Description: description}
}

func (d *Directive) SetRepeatable(repeatable bool) *Directive { d.IsRepeatable = repeatable; return d }
func (d *Directive) AddArgument(v *InputValue) *Directive {
	d.Arguments = append(d.Arguments, v)
	return d
}
func (d *Directive) AddLocation(loc string) *Directive {
	d.Locations = append(d.Locations, loc)
	return d
}

// BuildFromSDL parses a single SDL document and builds a schema from it.
func BuildFromSDL(name, sdl string) (*Schema, error) {
	return BuildFromSources(source.New(sdl, source.WithName(name)))
}

// BuildFromSources parses every source and builds one schema from their
// combined definitions, so a type may be extended in a different file
// than the one defining it.
func BuildFromSources(srcs ...*source.Source) (*Schema, error) {
	combined := &ast.Document{}
	for _, src := range srcs {
		doc, err := parser.Parse(src)
		if err != nil {
			return nil, err
		}
		combined.Definitions = append(combined.Definitions, doc.Definitions...)
	}
	return BuildFromDocument(combined)
}

// BuildFromDocument builds a schema from type system definitions. It merges
// all extensions into their base definitions. Every problem found is
// reported in the returned gqlerror.List.
func BuildFromDocument(doc *ast.Document) (*Schema, error) {
	b := &builder{s: NewSchema("")}
	var schemaDef *ast.SchemaDefinition
	var extensions []ast.TypeExtension

	for _, def := range doc.Definitions {
		switch def := def.(type) {
		case *ast.SchemaDefinition:
			if schemaDef != nil {
				b.errorf(def, "Must provide only one schema definition.")
				continue
			}
			schemaDef = def
		case ast.TypeDefinition:
			name := def.TypeName()
			if _, exists := b.s.Types[name]; exists && !IsBuiltinType(name) {
				b.errorf(def, "There can be only one type named %q.", name)
				continue
			}
			b.s.AddType(b.buildType(def))
		case ast.TypeExtension:
			extensions = append(extensions, def)
		case *ast.DirectiveDefinition:
			name := def.Name.Value
			if _, exists := b.s.Directives[name]; exists && !IsBuiltinDirective(name) {
				b.errorf(def, "There can be only one directive named %q.", name)
				continue
			}
			b.s.AddDirective(b.buildDirective(def))
		default:
			b.errorf(def, "The %s definition is not allowed in a schema document.", def.Kind())
		}
	}

	for _, ext := range extensions {
		b.extend(ext)
	}

	if schemaDef != nil {
		b.applySchemaDefinition(schemaDef)
	} else {
		for _, op := range []ast.Operation{ast.Query, ast.Mutation, ast.Subscription} {
			name := defaultRootTypeName(op)
			if _, ok := b.s.Types[name]; ok {
				b.setRoot(op, name)
			}
		}
	}

	b.checkReferences()
	if len(b.errs) > 0 {
		return nil, b.errs
	}
	return b.s.Finish(), nil
}

type builder struct {
	s    *Schema
	errs gqlerror.List
}

func (b *builder) errorf(node ast.Node, format string, args ...any) {
	var src *source.Source
	var offsets []int
	if loc := node.Location(); loc != nil {
		src, offsets = loc.Source, []int{loc.Start}
	}
	b.errs = append(b.errs, gqlerror.Errorf(src, offsets, format, args...))
}

func defaultRootTypeName(op ast.Operation) string {
	switch op {
	case ast.Mutation:
		return "Mutation"
	case ast.Subscription:
		return "Subscription"
	}
	return "Query"
}

func (b *builder) setRoot(op ast.Operation, name string) {
	switch op {
	case ast.Query:
		b.s.SetQueryType(name)
	case ast.Mutation:
		b.s.SetMutationType(name)
	case ast.Subscription:
		b.s.SetSubscriptionType(name)
	}
}

func (b *builder) applySchemaDefinition(def *ast.SchemaDefinition) {
	seen := map[ast.Operation]bool{}
	for _, opType := range def.OperationTypes {
		if seen[opType.Operation] {
			b.errorf(opType, "Must provide only one %s type in schema.", opType.Operation)
			continue
		}
		seen[opType.Operation] = true
		name := opType.Type.Name.Value
		t, ok := b.s.Types[name]
		if !ok {
			b.errorf(opType.Type, "Specified %s type %q not found in document.", opType.Operation, name)
			continue
		}
		if t.Kind != TypeKindObject {
			b.errorf(opType.Type, "%s root type must be Object type, it cannot be %s.", rootLabel(opType.Operation), name)
			continue
		}
		b.setRoot(opType.Operation, name)
	}
	if !seen[ast.Query] {
		b.errorf(def, "Must provide schema definition with query type or a type named Query.")
	}
}

func rootLabel(op ast.Operation) string {
	switch op {
	case ast.Mutation:
		return "Mutation"
	case ast.Subscription:
		return "Subscription"
	}
	return "Query"
}

func (b *builder) buildType(def ast.TypeDefinition) *Type {
	switch def := def.(type) {
	case *ast.ScalarTypeDefinition:
		t := NewType(def.Name.Value, TypeKindScalar, description(def.Description))
		if url, ok := specifiedBy(def.Directives); ok {
			t.SetSpecifiedBy(url)
		}
		return t
	case *ast.ObjectTypeDefinition:
		t := NewType(def.Name.Value, TypeKindObject, description(def.Description))
		b.addInterfaces(t, def.Interfaces)
		b.addFields(t, def.Fields)
		return t
	case *ast.InterfaceTypeDefinition:
		t := NewType(def.Name.Value, TypeKindInterface, description(def.Description))
		b.addInterfaces(t, def.Interfaces)
		b.addFields(t, def.Fields)
		return t
	case *ast.UnionTypeDefinition:
		t := NewType(def.Name.Value, TypeKindUnion, description(def.Description))
		b.addPossibleTypes(t, def.Types)
		return t
	case *ast.EnumTypeDefinition:
		t := NewType(def.Name.Value, TypeKindEnum, description(def.Description))
		b.addEnumValues(t, def.Values)
		return t
	case *ast.InputObjectTypeDefinition:
		t := NewType(def.Name.Value, TypeKindInputObject, description(def.Description)).
			SetOneOf(hasDirective(def.Directives, "oneOf"))
		b.addInputFields(t, def.Fields)
		return t
	}
	panic("unreachable")
}

func (b *builder) extend(ext ast.TypeExtension) {
	name := ext.TypeName()
	t, ok := b.s.Types[name]
	if !ok {
		b.errorf(ext, "Cannot extend type %q because it is not defined.", name)
		return
	}
	want := extensionKind(ext)
	if t.Kind != want {
		b.errorf(ext, "Cannot extend non-%s type %q.", kindLabel(want), name)
		return
	}
	switch ext := ext.(type) {
	case *ast.ScalarTypeExtension:
		if url, ok := specifiedBy(ext.Directives); ok {
			t.SetSpecifiedBy(url)
		}
	case *ast.ObjectTypeExtension:
		b.addInterfaces(t, ext.Interfaces)
		b.addFields(t, ext.Fields)
	case *ast.InterfaceTypeExtension:
		b.addInterfaces(t, ext.Interfaces)
		b.addFields(t, ext.Fields)
	case *ast.UnionTypeExtension:
		b.addPossibleTypes(t, ext.Types)
	case *ast.EnumTypeExtension:
		b.addEnumValues(t, ext.Values)
	case *ast.InputObjectTypeExtension:
		if hasDirective(ext.Directives, "oneOf") {
			t.SetOneOf(true)
		}
		b.addInputFields(t, ext.Fields)
	}
}

func extensionKind(ext ast.TypeExtension) TypeKind {
	switch ext.(type) {
	case *ast.ScalarTypeExtension:
		return TypeKindScalar
	case *ast.ObjectTypeExtension:
		return TypeKindObject
	case *ast.InterfaceTypeExtension:
		return TypeKindInterface
	case *ast.UnionTypeExtension:
		return TypeKindUnion
	case *ast.EnumTypeExtension:
		return TypeKindEnum
	case *ast.InputObjectTypeExtension:
		return TypeKindInputObject
	}
	panic("unreachable")
}

func kindLabel(k TypeKind) string {
	switch k {
	case TypeKindScalar:
		return "scalar"
	case TypeKindObject:
		return "object"
	case TypeKindInterface:
		return "interface"
	case TypeKindUnion:
		return "union"
	case TypeKindEnum:
		return "enum"
	}
	return "input object"
}

func (b *builder) addInterfaces(t *Type, ifaces []*ast.NamedType) {
	for _, iface := range ifaces {
		t.AddInterface(iface.Name.Value)
	}
}

func (b *builder) addPossibleTypes(t *Type, members []*ast.NamedType) {
	for _, m := range members {
		t.AddPossibleType(m.Name.Value)
	}
}

func (b *builder) addFields(t *Type, defs []*ast.FieldDefinition) {
	for _, def := range defs {
		if t.Field(def.Name.Value) != nil {
			b.errorf(def, "Field %q of type %q was defined more than once.", def.Name.Value, t.Name)
			continue
		}
		f := NewField(def.Name.Value, description(def.Description), FromAST(def.Type))
		if reason, ok := deprecation(def.Directives); ok {
			f.Deprecate(reason)
		}
		for _, arg := range def.Arguments {
			f.AddArgument(buildInputValue(arg))
		}
		t.AddField(f)
	}
}

func (b *builder) addEnumValues(t *Type, defs []*ast.EnumValueDefinition) {
	for _, def := range defs {
		if t.EnumValue(def.Name.Value) != nil {
			b.errorf(def, "Enum value \"%s.%s\" can only be defined once.", t.Name, def.Name.Value)
			continue
		}
		v := NewEnumValue(def.Name.Value, description(def.Description))
		if reason, ok := deprecation(def.Directives); ok {
			v.Deprecate(reason)
		}
		t.AddEnumValue(v)
	}
}

func (b *builder) addInputFields(t *Type, defs []*ast.InputValueDefinition) {
	for _, def := range defs {
		if t.InputField(def.Name.Value) != nil {
			b.errorf(def, "Field %q of type %q was defined more than once.", def.Name.Value, t.Name)
			continue
		}
		t.AddInputField(buildInputValue(def))
	}
}

func buildInputValue(def *ast.InputValueDefinition) *InputValue {
	in := NewInputValue(def.Name.Value, description(def.Description), FromAST(def.Type)).
		SetDefault(def.DefaultValue)
	if reason, ok := deprecation(def.Directives); ok {
		in.Deprecate(reason)
	}
	return in
}

func (b *builder) buildDirective(def *ast.DirectiveDefinition) *Directive {
	d := NewDirective(def.Name.Value, description(def.Description)).SetRepeatable(def.Repeatable)
	for _, loc := range def.Locations {
		d.AddLocation(loc.Value)
	}
	for _, arg := range def.Arguments {
		d.AddArgument(buildInputValue(arg))
	}
	return d
}

// checkReferences reports type references that name no type, and
// references of the wrong kind.
func (b *builder) checkReferences() {
	for _, name := range b.s.TypeNames() {
		t := b.s.Types[name]
		for _, iface := range t.Interfaces {
			if it := b.s.Types[iface]; it == nil {
				b.errs = append(b.errs, gqlerror.New(nil, "Unknown type \""+iface+"\"."))
			} else if it.Kind != TypeKindInterface {
				b.errs = append(b.errs, gqlerror.New(nil, "Type "+name+" must only implement Interface types, it cannot implement "+iface+"."))
			}
		}
		for _, member := range t.PossibleTypes {
			if mt := b.s.Types[member]; mt == nil {
				b.errs = append(b.errs, gqlerror.New(nil, "Unknown type \""+member+"\"."))
			} else if mt.Kind != TypeKindObject {
				b.errs = append(b.errs, gqlerror.New(nil, "Union type "+name+" can only include Object types, it cannot include "+member+"."))
			}
		}
		for _, f := range t.Fields {
			b.checkTypeRef(f.Type)
			for _, arg := range f.Arguments {
				b.checkTypeRef(arg.Type)
			}
		}
		for _, f := range t.InputFields {
			b.checkTypeRef(f.Type)
		}
	}
	for _, name := range b.s.DirectiveNames() {
		for _, arg := range b.s.Directives[name].Arguments {
			b.checkTypeRef(arg.Type)
		}
	}
}

func (b *builder) checkTypeRef(ref *TypeRef) {
	name := ref.GetNamedType()
	if _, ok := b.s.Types[name]; !ok {
		b.errs = append(b.errs, gqlerror.New(nil, "Unknown type \""+name+"\"."))
	}
}

func description(sv *ast.StringValue) string {
	if sv == nil {
		return ""
	}
	return sv.Value
}

func findDirective(dirs []*ast.Directive, name string) *ast.Directive {
	for _, d := range dirs {
		if d.Name.Value == name {
			return d
		}
	}
	return nil
}

func hasDirective(dirs []*ast.Directive, name string) bool {
	return findDirective(dirs, name) != nil
}

func stringArgument(d *ast.Directive, name string) (string, bool) {
	for _, arg := range d.Arguments {
		if arg.Name.Value != name {
			continue
		}
		if sv, ok := arg.Value.(*ast.StringValue); ok {
			return sv.Value, true
		}
	}
	return "", false
}

func deprecation(dirs []*ast.Directive) (string, bool) {
	d := findDirective(dirs, "deprecated")
	if d == nil {
		return "", false
	}
	if reason, ok := stringArgument(d, "reason"); ok {
		return reason, true
	}
	return DefaultDeprecationReason, true
}

func specifiedBy(dirs []*ast.Directive) (string, bool) {
	d := findDirective(dirs, "specifiedBy")
	if d == nil {
		return "", false
	}
	return stringArgument(d, "url")
}
