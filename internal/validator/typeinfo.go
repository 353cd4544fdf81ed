package validator

import (
	"github.com/hanpama/gqlfront/internal/introspection"
	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/schema"
)

// TypeInfo tracks the schema types that apply at the current point of a
// walk. Call Enter before visiting a node and Leave after.
type TypeInfo struct {
	schema Schema

	typeStack         []*schema.TypeRef
	parentTypeStack   []*schema.Type
	inputTypeStack    []*schema.TypeRef
	fieldDefStack     []*schema.Field
	defaultValueStack []ast.Value

	directive *schema.Directive
	argument  *schema.InputValue
	enumValue *schema.EnumValue
}

func NewTypeInfo(s Schema) *TypeInfo {
	return &TypeInfo{schema: s}
}

// Type is the output type of the current field, fragment or operation.
func (ti *TypeInfo) Type() *schema.TypeRef { return top(ti.typeStack) }

// ParentType is the composite type whose selection set is being visited.
func (ti *TypeInfo) ParentType() *schema.Type { return top(ti.parentTypeStack) }

// InputType is the expected type of the current argument or value.
func (ti *TypeInfo) InputType() *schema.TypeRef { return top(ti.inputTypeStack) }

// ParentInputType is the expected type of the value enclosing the current
// one.
func (ti *TypeInfo) ParentInputType() *schema.TypeRef {
	if n := len(ti.inputTypeStack); n > 1 {
		return ti.inputTypeStack[n-2]
	}
	return nil
}

func (ti *TypeInfo) FieldDef() *schema.Field      { return top(ti.fieldDefStack) }
func (ti *TypeInfo) DefaultValue() ast.Value      { return top(ti.defaultValueStack) }
func (ti *TypeInfo) Directive() *schema.Directive { return ti.directive }
func (ti *TypeInfo) Argument() *schema.InputValue { return ti.argument }
func (ti *TypeInfo) EnumValue() *schema.EnumValue { return ti.enumValue }

func (ti *TypeInfo) Enter(node ast.Node) {
	switch n := node.(type) {
	case *ast.SelectionSet:
		named := ti.named(ti.Type())
		if named != nil && !named.IsComposite() {
			named = nil
		}
		ti.parentTypeStack = append(ti.parentTypeStack, named)

	case *ast.Field:
		var def *schema.Field
		var typ *schema.TypeRef
		if parent := ti.ParentType(); parent != nil {
			def = FieldDef(ti.schema, parent, n.Name.Value)
			if def != nil {
				typ = def.Type
			}
		}
		ti.fieldDefStack = append(ti.fieldDefStack, def)
		ti.typeStack = append(ti.typeStack, ti.outputOrNil(typ))

	case *ast.Directive:
		ti.directive = ti.schema.Directive(n.Name.Value)

	case *ast.OperationDefinition:
		var typ *schema.TypeRef
		if root := ti.schema.RootType(n.Operation); root != nil {
			typ = schema.NamedType(root.Name)
		}
		ti.typeStack = append(ti.typeStack, typ)

	case *ast.InlineFragment:
		typ := ti.Type()
		if n.TypeCondition != nil {
			typ = TypeFromAST(ti.schema, n.TypeCondition)
		} else if typ != nil {
			typ = schema.NamedType(typ.GetNamedType())
		}
		ti.typeStack = append(ti.typeStack, ti.outputOrNil(typ))

	case *ast.FragmentDefinition:
		ti.typeStack = append(ti.typeStack, ti.outputOrNil(TypeFromAST(ti.schema, n.TypeCondition)))

	case *ast.VariableDefinition:
		ti.inputTypeStack = append(ti.inputTypeStack, ti.inputOrNil(TypeFromAST(ti.schema, n.Type)))

	case *ast.Argument:
		var def *schema.InputValue
		var typ *schema.TypeRef
		if ti.directive != nil {
			def = ti.directive.Argument(n.Name.Value)
		} else if f := ti.FieldDef(); f != nil {
			def = f.Argument(n.Name.Value)
		}
		var dflt ast.Value
		if def != nil {
			typ, dflt = def.Type, def.DefaultValue
		}
		ti.argument = def
		ti.defaultValueStack = append(ti.defaultValueStack, dflt)
		ti.inputTypeStack = append(ti.inputTypeStack, ti.inputOrNil(typ))

	case *ast.ListValue:
		var item *schema.TypeRef
		if list := ti.InputType().Nullable(); list != nil {
			item = list
			if list.Kind == schema.TypeRefKindList {
				item = list.OfType
			}
		}
		ti.defaultValueStack = append(ti.defaultValueStack, nil)
		ti.inputTypeStack = append(ti.inputTypeStack, ti.inputOrNil(item))

	case *ast.ObjectField:
		var typ *schema.TypeRef
		var dflt ast.Value
		if obj := ti.named(ti.InputType()); obj != nil && obj.Kind == schema.TypeKindInputObject {
			if f := obj.InputField(n.Name.Value); f != nil {
				typ, dflt = f.Type, f.DefaultValue
			}
		}
		ti.defaultValueStack = append(ti.defaultValueStack, dflt)
		ti.inputTypeStack = append(ti.inputTypeStack, ti.inputOrNil(typ))

	case *ast.EnumValue:
		ti.enumValue = nil
		if enum := ti.named(ti.InputType()); enum != nil && enum.Kind == schema.TypeKindEnum {
			ti.enumValue = enum.EnumValue(n.Value)
		}
	}
}

func (ti *TypeInfo) Leave(node ast.Node) {
	switch node.(type) {
	case *ast.SelectionSet:
		ti.parentTypeStack = pop(ti.parentTypeStack)
	case *ast.Field:
		ti.fieldDefStack = pop(ti.fieldDefStack)
		ti.typeStack = pop(ti.typeStack)
	case *ast.Directive:
		ti.directive = nil
	case *ast.OperationDefinition, *ast.InlineFragment, *ast.FragmentDefinition:
		ti.typeStack = pop(ti.typeStack)
	case *ast.VariableDefinition:
		ti.inputTypeStack = pop(ti.inputTypeStack)
	case *ast.Argument:
		ti.argument = nil
		ti.defaultValueStack = pop(ti.defaultValueStack)
		ti.inputTypeStack = pop(ti.inputTypeStack)
	case *ast.ListValue, *ast.ObjectField:
		ti.defaultValueStack = pop(ti.defaultValueStack)
		ti.inputTypeStack = pop(ti.inputTypeStack)
	case *ast.EnumValue:
		ti.enumValue = nil
	}
}

func (ti *TypeInfo) named(ref *schema.TypeRef) *schema.Type {
	if ref == nil {
		return nil
	}
	return ti.schema.Type(ref.GetNamedType())
}

func (ti *TypeInfo) outputOrNil(ref *schema.TypeRef) *schema.TypeRef {
	if t := ti.named(ref); t != nil && t.IsOutputType() {
		return ref
	}
	return nil
}

func (ti *TypeInfo) inputOrNil(ref *schema.TypeRef) *schema.TypeRef {
	if t := ti.named(ref); t != nil && t.IsInputType() {
		return ref
	}
	return nil
}

// FieldDef looks up a field on parent, including the meta fields.
func FieldDef(s Schema, parent *schema.Type, name string) *schema.Field {
	if f := introspection.MetaField(s.RootType(ast.Query), parent, name); f != nil {
		return f
	}
	if parent.Kind != schema.TypeKindObject && parent.Kind != schema.TypeKindInterface {
		return nil
	}
	return parent.Field(name)
}

// TypeFromAST resolves a type reference, or returns nil when the named
// type is not in the schema.
func TypeFromAST(s Schema, t ast.Type) *schema.TypeRef {
	if t == nil || s.Type(ast.NamedTypeName(t)) == nil {
		return nil
	}
	return schema.FromAST(t)
}

func top[T any](stack []T) T {
	var zero T
	if len(stack) == 0 {
		return zero
	}
	return stack[len(stack)-1]
}

func pop[T any](stack []T) []T {
	if len(stack) == 0 {
		return stack
	}
	return stack[:len(stack)-1]
}
