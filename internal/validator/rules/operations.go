package rules

import (
	"fmt"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/validator"
)

// ExecutableDefinitions rejects type system definitions in a request.
var ExecutableDefinitions = validator.NewRule("ExecutableDefinitions", func(ctx *validator.Context) validator.Visitor {
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		doc, ok := n.(*ast.Document)
		if !ok {
			return ast.Continue
		}
		for _, def := range doc.Definitions {
			if _, ok := def.(ast.ExecutableDefinition); ok {
				continue
			}
			name := "schema"
			switch def := def.(type) {
			case ast.TypeDefinition:
				name = def.TypeName()
			case ast.TypeExtension:
				name = def.TypeName()
			case *ast.DirectiveDefinition:
				name = def.Name.Value
			}
			ctx.Report(fmt.Sprintf("The %s definition is not executable.", name), def)
		}
		return ast.Continue
	}}
})

var UniqueOperationNames = validator.NewRule("UniqueOperationNames", func(ctx *validator.Context) validator.Visitor {
	known := map[string]*ast.Name{}
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		op, ok := n.(*ast.OperationDefinition)
		if !ok || op.Name == nil {
			return ast.Continue
		}
		name := op.Name.Value
		if first, dup := known[name]; dup {
			ctx.Report(fmt.Sprintf("There can be only one operation named %q.", name), first, op.Name)
		} else {
			known[name] = op.Name
		}
		return ast.Continue
	}}
})

var LoneAnonymousOperation = validator.NewRule("LoneAnonymousOperation", func(ctx *validator.Context) validator.Visitor {
	operations := 0
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		switch n := n.(type) {
		case *ast.Document:
			operations = len(n.Operations())
		case *ast.OperationDefinition:
			if n.Name == nil && operations > 1 {
				ctx.Report("This anonymous operation must be the only defined operation.", n)
			}
		}
		return ast.Continue
	}}
})

var SingleFieldSubscriptions = validator.NewRule("SingleFieldSubscriptions", func(ctx *validator.Context) validator.Visitor {
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		op, ok := n.(*ast.OperationDefinition)
		if !ok || op.Operation != ast.Subscription || len(op.SelectionSet.Selections) == 1 {
			return ast.Continue
		}
		msg := "Anonymous Subscription must select only one top level field."
		if op.Name != nil {
			msg = fmt.Sprintf("Subscription %q must select only one top level field.", op.Name.Value)
		}
		var extra []ast.Node
		for _, sel := range op.SelectionSet.Selections[1:] {
			extra = append(extra, sel)
		}
		ctx.Report(msg, extra...)
		return ast.Continue
	}}
})
