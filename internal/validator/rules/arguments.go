package rules

import (
	"fmt"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/schema"
	"github.com/hanpama/gqlfront/internal/validator"
)

// KnownArgumentNames reports arguments the field or directive does not
// define.
var KnownArgumentNames = validator.NewRule("KnownArgumentNames", func(ctx *validator.Context) validator.Visitor {
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		arg, ok := n.(*ast.Argument)
		if !ok || ctx.Argument() != nil {
			return ast.Continue
		}
		name := arg.Name.Value
		if _, onDirective := ctx.Parent().(*ast.Directive); onDirective {
			dir := ctx.Directive()
			if dir == nil {
				return ast.Continue
			}
			msg := fmt.Sprintf("Unknown argument %q on directive \"@%s\".", name, dir.Name)
			ctx.Report(msg+didYouMean(name, dir.Arguments), arg)
			return ast.Continue
		}
		field, parent := ctx.FieldDef(), ctx.ParentType()
		if field == nil || parent == nil {
			return ast.Continue
		}
		msg := fmt.Sprintf("Unknown argument %q on field %q of type %q.", name, field.Name, parent.Name)
		ctx.Report(msg+didYouMean(name, field.Arguments), arg)
		return ast.Continue
	}}
})

func didYouMean(name string, defs []*schema.InputValue) string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	suggestions := validator.SuggestionList(name, names)
	if len(suggestions) == 0 {
		return ""
	}
	return fmt.Sprintf(" Did you mean %s?", validator.QuotedOrList(suggestions))
}

var UniqueArgumentNames = validator.NewRule("UniqueArgumentNames", func(ctx *validator.Context) validator.Visitor {
	check := func(args []*ast.Argument) {
		seen := map[string]*ast.Name{}
		for _, arg := range args {
			name := arg.Name.Value
			if first, dup := seen[name]; dup {
				ctx.Report(fmt.Sprintf("There can be only one argument named %q.", name), first, arg.Name)
			} else {
				seen[name] = arg.Name
			}
		}
	}
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		switch n := n.(type) {
		case *ast.Field:
			check(n.Arguments)
		case *ast.Directive:
			check(n.Arguments)
		}
		return ast.Continue
	}}
})

// ProvidedRequiredArguments reports non-null arguments without a default
// that were left out.
var ProvidedRequiredArguments = validator.NewRule("ProvidedRequiredArguments", func(ctx *validator.Context) validator.Visitor {
	return validator.Funcs{
		EnterFunc: func(n ast.Node) ast.Action {
			dir, ok := n.(*ast.Directive)
			if !ok {
				return ast.Continue
			}
			def := ctx.Directive()
			if def == nil {
				return ast.Continue
			}
			for _, arg := range missingArguments(def.Arguments, dir.Arguments) {
				ctx.Report(fmt.Sprintf("Directive \"@%s\" argument %q of type %q is required, but it was not provided.",
					def.Name, arg.Name, arg.Type.String()), dir)
			}
			return ast.Continue
		},
		LeaveFunc: func(n ast.Node) {
			field, ok := n.(*ast.Field)
			if !ok {
				return
			}
			def := ctx.FieldDef()
			if def == nil {
				return
			}
			for _, arg := range missingArguments(def.Arguments, field.Arguments) {
				ctx.Report(fmt.Sprintf("Field %q argument %q of type %q is required, but it was not provided.",
					def.Name, arg.Name, arg.Type.String()), field)
			}
		},
	}
})

func missingArguments(defs []*schema.InputValue, given []*ast.Argument) []*schema.InputValue {
	var missing []*schema.InputValue
	for _, def := range defs {
		if !def.Type.IsNonNull() || def.DefaultValue != nil {
			continue
		}
		found := false
		for _, arg := range given {
			if arg.Name.Value == def.Name {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, def)
		}
	}
	return missing
}
