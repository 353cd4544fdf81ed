package rules

import (
	"fmt"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/validator"
)

// KnownTypeNames checks type references of executable definitions.
// References inside type system definitions are left to the schema
// builder.
var KnownTypeNames = validator.NewRule("KnownTypeNames", func(ctx *validator.Context) validator.Visitor {
	var typeSystem ast.Node
	return validator.Funcs{
		EnterFunc: func(n ast.Node) ast.Action {
			switch n := n.(type) {
			case ast.TypeSystemDefinition:
				if typeSystem == nil {
					typeSystem = n
				}
			case *ast.NamedType:
				if typeSystem != nil {
					break
				}
				name := n.Name.Value
				if ctx.Schema().Type(name) != nil {
					break
				}
				msg := fmt.Sprintf("Unknown type %q.", name)
				if suggestions := validator.SuggestionList(name, ctx.Schema().TypeNames()); len(suggestions) > 0 {
					msg += fmt.Sprintf(" Did you mean %s?", validator.QuotedOrList(suggestions))
				}
				ctx.Report(msg, n)
			}
			return ast.Continue
		},
		LeaveFunc: func(n ast.Node) {
			if n == typeSystem {
				typeSystem = nil
			}
		},
	}
})

var FragmentsOnCompositeTypes = validator.NewRule("FragmentsOnCompositeTypes", func(ctx *validator.Context) validator.Visitor {
	check := func(cond *ast.NamedType, fragment *ast.Name) {
		if cond == nil {
			return
		}
		t := ctx.Schema().Type(cond.Name.Value)
		if t == nil || t.IsComposite() {
			return
		}
		if fragment == nil {
			ctx.Report(fmt.Sprintf("Fragment cannot condition on non composite type %q.", t.Name), cond)
			return
		}
		ctx.Report(fmt.Sprintf("Fragment %q cannot condition on non composite type %q.", fragment.Value, t.Name), cond)
	}
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		switch n := n.(type) {
		case *ast.InlineFragment:
			check(n.TypeCondition, nil)
		case *ast.FragmentDefinition:
			check(n.TypeCondition, n.Name)
		}
		return ast.Continue
	}}
})

var VariablesAreInputTypes = validator.NewRule("VariablesAreInputTypes", func(ctx *validator.Context) validator.Visitor {
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		def, ok := n.(*ast.VariableDefinition)
		if !ok {
			return ast.Continue
		}
		t := ctx.Schema().Type(ast.NamedTypeName(def.Type))
		if t != nil && !t.IsInputType() {
			ctx.Report(fmt.Sprintf("Variable \"$%s\" cannot be non-input type %q.", def.Variable.Name.Value, def.Type.String()), def.Type)
		}
		return ast.Continue
	}}
})
