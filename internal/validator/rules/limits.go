package rules

import (
	"fmt"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/validator"
)

// QueryDepth limits how deeply fields of one operation nest. Top-level
// fields are at depth 1; fragments count at the depth they are spread.
func QueryDepth(limit int) validator.Rule {
	return validator.NewRule("QueryDepth", func(ctx *validator.Context) validator.Visitor {
		return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
			op, ok := n.(*ast.OperationDefinition)
			if !ok {
				return ast.Continue
			}
			if depth := selectionDepth(ctx, op.SelectionSet, map[string]bool{}); depth > limit {
				ctx.Report(fmt.Sprintf("Max query depth should be %d but got %d.", limit, depth), op)
			}
			return ast.Continue
		}}
	})
}

func selectionDepth(ctx *validator.Context, set *ast.SelectionSet, visiting map[string]bool) int {
	if set == nil {
		return 0
	}
	deepest := 0
	for _, sel := range set.Selections {
		var d int
		switch sel := sel.(type) {
		case *ast.Field:
			d = 1 + selectionDepth(ctx, sel.SelectionSet, visiting)
		case *ast.InlineFragment:
			d = selectionDepth(ctx, sel.SelectionSet, visiting)
		case *ast.FragmentSpread:
			name := sel.Name.Value
			frag := ctx.Fragment(name)
			if frag == nil || visiting[name] {
				continue
			}
			visiting[name] = true
			d = selectionDepth(ctx, frag.SelectionSet, visiting)
			delete(visiting, name)
		}
		deepest = max(deepest, d)
	}
	return deepest
}

// DisableIntrospection rejects the __schema and __type meta fields.
// __typename stays allowed.
func DisableIntrospection() validator.Rule {
	return validator.NewRule("DisableIntrospection", func(ctx *validator.Context) validator.Visitor {
		return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
			if f, ok := n.(*ast.Field); ok {
				switch f.Name.Value {
				case "__schema", "__type":
					ctx.Report("GraphQL introspection is not allowed, but the query contained __schema or __type", f)
				}
			}
			return ast.Continue
		}}
	})
}
