package rules

import (
	"fmt"
	"slices"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/validator"
)

// KnownDirectives checks that directives exist and are used where their
// definition allows. Directives defined in the document itself count.
var KnownDirectives = validator.NewRule("KnownDirectives", func(ctx *validator.Context) validator.Visitor {
	locations := map[string][]string{}
	for _, name := range ctx.Schema().DirectiveNames() {
		locations[name] = ctx.Schema().Directive(name).Locations
	}
	for _, def := range ctx.Document().Definitions {
		if d, ok := def.(*ast.DirectiveDefinition); ok {
			var locs []string
			for _, l := range d.Locations {
				locs = append(locs, l.Value)
			}
			locations[d.Name.Value] = locs
		}
	}

	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		dir, ok := n.(*ast.Directive)
		if !ok {
			return ast.Continue
		}
		name := dir.Name.Value
		locs, known := locations[name]
		if !known {
			ctx.Report(fmt.Sprintf("Unknown directive %q.", name), dir)
			return ast.Continue
		}
		loc, ok := directiveLocation(ctx.Ancestors())
		if ok && !slices.Contains(locs, string(loc)) {
			ctx.Report(fmt.Sprintf("Directive %q may not be used on %s.", name, loc), dir)
		}
		return ast.Continue
	}}
})

// directiveLocation derives where a directive is applied from the nodes
// enclosing it.
func directiveLocation(ancestors []ast.Node) (ast.DirectiveLocation, bool) {
	if len(ancestors) == 0 {
		return "", false
	}
	switch n := ancestors[len(ancestors)-1].(type) {
	case *ast.OperationDefinition:
		switch n.Operation {
		case ast.Mutation:
			return ast.LocationMutation, true
		case ast.Subscription:
			return ast.LocationSubscription, true
		}
		return ast.LocationQuery, true
	case *ast.Field:
		return ast.LocationField, true
	case *ast.FragmentSpread:
		return ast.LocationFragmentSpread, true
	case *ast.InlineFragment:
		return ast.LocationInlineFragment, true
	case *ast.FragmentDefinition:
		return ast.LocationFragmentDefinition, true
	case *ast.VariableDefinition:
		return ast.LocationVariableDefinition, true
	case *ast.SchemaDefinition:
		return ast.LocationSchema, true
	case *ast.ScalarTypeDefinition, *ast.ScalarTypeExtension:
		return ast.LocationScalar, true
	case *ast.ObjectTypeDefinition, *ast.ObjectTypeExtension:
		return ast.LocationObject, true
	case *ast.FieldDefinition:
		return ast.LocationFieldDefinition, true
	case *ast.InterfaceTypeDefinition, *ast.InterfaceTypeExtension:
		return ast.LocationInterface, true
	case *ast.UnionTypeDefinition, *ast.UnionTypeExtension:
		return ast.LocationUnion, true
	case *ast.EnumTypeDefinition, *ast.EnumTypeExtension:
		return ast.LocationEnum, true
	case *ast.EnumValueDefinition:
		return ast.LocationEnumValue, true
	case *ast.InputObjectTypeDefinition, *ast.InputObjectTypeExtension:
		return ast.LocationInputObject, true
	case *ast.InputValueDefinition:
		if len(ancestors) > 1 {
			switch ancestors[len(ancestors)-2].(type) {
			case *ast.InputObjectTypeDefinition, *ast.InputObjectTypeExtension:
				return ast.LocationInputFieldDefinition, true
			}
		}
		return ast.LocationArgumentDefinition, true
	}
	return "", false
}

// UniqueDirectivesPerLocation rejects a non-repeatable directive applied
// twice to the same node.
var UniqueDirectivesPerLocation = validator.NewRule("UniqueDirectivesPerLocation", func(ctx *validator.Context) validator.Visitor {
	repeatable := map[string]bool{}
	for _, name := range ctx.Schema().DirectiveNames() {
		repeatable[name] = ctx.Schema().Directive(name).IsRepeatable
	}
	for _, def := range ctx.Document().Definitions {
		if d, ok := def.(*ast.DirectiveDefinition); ok {
			repeatable[d.Name.Value] = d.Repeatable
		}
	}

	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		seen := map[string]*ast.Directive{}
		for _, dir := range directivesOf(n) {
			name := dir.Name.Value
			if repeatable[name] {
				continue
			}
			if first, dup := seen[name]; dup {
				ctx.Report(fmt.Sprintf("The directive %q can only be used once at this location.", name), first, dir)
			} else {
				seen[name] = dir
			}
		}
		return ast.Continue
	}}
})

func directivesOf(n ast.Node) []*ast.Directive {
	switch n := n.(type) {
	case *ast.OperationDefinition:
		return n.Directives
	case *ast.VariableDefinition:
		return n.Directives
	case *ast.Field:
		return n.Directives
	case *ast.FragmentSpread:
		return n.Directives
	case *ast.InlineFragment:
		return n.Directives
	case *ast.FragmentDefinition:
		return n.Directives
	case *ast.SchemaDefinition:
		return n.Directives
	case *ast.ScalarTypeDefinition:
		return n.Directives
	case *ast.ObjectTypeDefinition:
		return n.Directives
	case *ast.FieldDefinition:
		return n.Directives
	case *ast.InputValueDefinition:
		return n.Directives
	case *ast.InterfaceTypeDefinition:
		return n.Directives
	case *ast.UnionTypeDefinition:
		return n.Directives
	case *ast.EnumTypeDefinition:
		return n.Directives
	case *ast.EnumValueDefinition:
		return n.Directives
	case *ast.InputObjectTypeDefinition:
		return n.Directives
	case *ast.ScalarTypeExtension:
		return n.Directives
	case *ast.ObjectTypeExtension:
		return n.Directives
	case *ast.InterfaceTypeExtension:
		return n.Directives
	case *ast.UnionTypeExtension:
		return n.Directives
	case *ast.EnumTypeExtension:
		return n.Directives
	case *ast.InputObjectTypeExtension:
		return n.Directives
	}
	return nil
}
