package rules

import (
	"fmt"
	"sort"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/schema"
	"github.com/hanpama/gqlfront/internal/validator"
)

// ScalarLeafs requires selections on composite fields and forbids them on
// leaf fields.
var ScalarLeafs = validator.NewRule("ScalarLeafs", func(ctx *validator.Context) validator.Visitor {
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		field, ok := n.(*ast.Field)
		if !ok {
			return ast.Continue
		}
		ref := ctx.Type()
		t := ctx.NamedType(ref)
		if t == nil {
			return ast.Continue
		}
		name := field.Name.Value
		switch {
		case t.IsLeaf() && field.SelectionSet != nil:
			ctx.Report(fmt.Sprintf("Field %q must not have a selection since type %q has no subfields.", name, ref.String()), field.SelectionSet)
		case !t.IsLeaf() && field.SelectionSet == nil:
			ctx.Report(fmt.Sprintf("Field %q of type %q must have a selection of subfields. Did you mean \"%s { ... }\"?", name, ref.String(), name), field)
		}
		return ast.Continue
	}}
})

// FieldsOnCorrectType reports fields the parent type does not define and
// suggests where they might be found.
var FieldsOnCorrectType = validator.NewRule("FieldsOnCorrectType", func(ctx *validator.Context) validator.Visitor {
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		field, ok := n.(*ast.Field)
		if !ok {
			return ast.Continue
		}
		parent := ctx.ParentType()
		if parent == nil || ctx.FieldDef() != nil {
			return ast.Continue
		}
		name := field.Name.Value
		msg := fmt.Sprintf("Cannot query field %q on type %q.", name, parent.Name)
		if types := suggestedTypeNames(ctx.Schema(), parent, name); len(types) > 0 {
			msg += fmt.Sprintf(" Did you mean to use an inline fragment on %s?", validator.QuotedOrList(types))
		} else if fields := suggestedFieldNames(parent, name); len(fields) > 0 {
			msg += fmt.Sprintf(" Did you mean %s?", validator.QuotedOrList(fields))
		}
		ctx.Report(msg, field)
		return ast.Continue
	}}
})

// suggestedTypeNames lists the types within an abstract type that define
// field: interfaces first, by how many possible types share them, then
// object types.
func suggestedTypeNames(s validator.Schema, t *schema.Type, field string) []string {
	if !t.IsAbstract() {
		return nil
	}
	var objects, interfaces []string
	usage := map[string]int{}
	for _, pt := range s.PossibleTypes(t) {
		if pt.Field(field) == nil {
			continue
		}
		objects = append(objects, pt.Name)
		for _, name := range pt.Interfaces {
			iface := s.Type(name)
			if iface == nil || iface.Field(field) == nil {
				continue
			}
			if usage[name] == 0 {
				interfaces = append(interfaces, name)
			}
			usage[name]++
		}
	}
	sort.SliceStable(interfaces, func(i, j int) bool { return usage[interfaces[i]] > usage[interfaces[j]] })
	return append(interfaces, objects...)
}

func suggestedFieldNames(t *schema.Type, field string) []string {
	if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
		return nil
	}
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return validator.SuggestionList(field, names)
}
