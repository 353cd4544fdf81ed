package rules

import (
	"fmt"
	"math"
	"strconv"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/schema"
	"github.com/hanpama/gqlfront/internal/validator"
)

// ValuesOfCorrectType checks literal values against the input type
// expected where they appear. Custom scalars are checked by their
// LiteralValidator; its error message is appended to the report.
var ValuesOfCorrectType = validator.NewRule("ValuesOfCorrectType", func(ctx *validator.Context) validator.Visitor {
	// skipping is set while inside a list or object literal that was
	// already reported as a whole.
	var skipping ast.Node

	badValue := func(typ string, v ast.Value, detail string) string {
		msg := fmt.Sprintf("Expected type %s, found %s", typ, ast.ValueString(v))
		if detail == "" {
			return msg + "."
		}
		return msg + "; " + detail
	}

	checkScalar := func(v ast.Value) {
		loc := ctx.InputType()
		if loc == nil {
			return
		}
		t := ctx.NamedType(loc)
		if t == nil {
			return
		}
		if t.Kind != schema.TypeKindScalar {
			ctx.Report(badValue(loc.String(), v, enumSuggestion(t, ast.ValueString(v))), v)
			return
		}
		if ok, detail := scalarAccepts(t, v); !ok {
			ctx.Report(badValue(loc.String(), v, detail), v)
		}
	}

	return validator.Funcs{
		EnterFunc: func(n ast.Node) ast.Action {
			if skipping != nil {
				return ast.Continue
			}
			switch n := n.(type) {
			case *ast.NullValue:
				if t := ctx.InputType(); t.IsNonNull() {
					ctx.Report(badValue(t.String(), n, ""), n)
				}
			case *ast.ListValue:
				if list := ctx.ParentInputType().Nullable(); list == nil || list.Kind != schema.TypeRefKindList {
					checkScalar(n)
					skipping = n
				}
			case *ast.ObjectValue:
				t := ctx.NamedType(ctx.InputType())
				if t == nil || t.Kind != schema.TypeKindInputObject {
					checkScalar(n)
					skipping = n
					break
				}
				checkObject(ctx, t, n)
			case *ast.ObjectField:
				parent := ctx.NamedType(ctx.ParentInputType())
				if ctx.InputType() == nil && parent != nil && parent.Kind == schema.TypeKindInputObject {
					msg := fmt.Sprintf("Field %q is not defined by type %s", n.Name.Value, parent.Name)
					names := make([]string, len(parent.InputFields))
					for i, f := range parent.InputFields {
						names[i] = f.Name
					}
					if suggestions := validator.SuggestionList(n.Name.Value, names); len(suggestions) > 0 {
						msg += fmt.Sprintf("; Did you mean %s?", validator.OrList(suggestions))
					} else {
						msg += "."
					}
					ctx.Report(msg, n)
				}
			case *ast.EnumValue:
				t := ctx.NamedType(ctx.InputType())
				switch {
				case t == nil:
				case t.Kind != schema.TypeKindEnum:
					checkScalar(n)
				case t.EnumValue(n.Value) == nil:
					ctx.Report(badValue(t.Name, n, enumSuggestion(t, n.Value)), n)
				}
			case *ast.IntValue, *ast.FloatValue, *ast.StringValue, *ast.BooleanValue:
				checkScalar(n.(ast.Value))
			}
			return ast.Continue
		},
		LeaveFunc: func(n ast.Node) {
			if n == skipping {
				skipping = nil
			}
		},
	}
})

// checkObject reports required fields missing from an input object
// literal, and the exactly-one-field rule of @oneOf inputs.
func checkObject(ctx *validator.Context, t *schema.Type, obj *ast.ObjectValue) {
	given := make(map[string]*ast.ObjectField, len(obj.Fields))
	for _, f := range obj.Fields {
		given[f.Name.Value] = f
	}
	for _, def := range t.InputFields {
		if _, ok := given[def.Name]; !ok && def.Type.IsNonNull() && def.DefaultValue == nil {
			ctx.Report(fmt.Sprintf("Field %s.%s of required type %s was not provided.", t.Name, def.Name, def.Type.String()), obj)
		}
	}
	if !t.OneOf {
		return
	}
	if len(obj.Fields) != 1 {
		ctx.Report(fmt.Sprintf("OneOf Input Object %q must specify exactly one key.", t.Name), obj)
		return
	}
	if _, isNull := obj.Fields[0].Value.(*ast.NullValue); isNull {
		ctx.Report(fmt.Sprintf("Field \"%s.%s\" must be non-null.", t.Name, obj.Fields[0].Name.Value), obj)
	}
}

func enumSuggestion(t *schema.Type, printed string) string {
	if t.Kind != schema.TypeKindEnum {
		return ""
	}
	names := make([]string, len(t.EnumValues))
	for i, v := range t.EnumValues {
		names[i] = v.Name
	}
	suggestions := validator.SuggestionList(printed, names)
	if len(suggestions) == 0 {
		return ""
	}
	return fmt.Sprintf("Did you mean the enum value %s?", validator.OrList(suggestions))
}

// scalarAccepts reports whether scalar t accepts literal v, with an
// explanation when a custom validator rejected it.
func scalarAccepts(t *schema.Type, v ast.Value) (bool, string) {
	if t.LiteralValidator != nil {
		if err := t.LiteralValidator(v); err != nil {
			return false, err.Error()
		}
		return true, ""
	}
	switch t.Name {
	case "Int":
		iv, ok := v.(*ast.IntValue)
		if !ok {
			return false, ""
		}
		n, err := strconv.ParseInt(iv.Value, 10, 64)
		return err == nil && n >= math.MinInt32 && n <= math.MaxInt32, ""
	case "Float":
		switch v.(type) {
		case *ast.IntValue, *ast.FloatValue:
			return true, ""
		}
		return false, ""
	case "String":
		_, ok := v.(*ast.StringValue)
		return ok, ""
	case "Boolean":
		_, ok := v.(*ast.BooleanValue)
		return ok, ""
	case "ID":
		switch v.(type) {
		case *ast.StringValue, *ast.IntValue:
			return true, ""
		}
		return false, ""
	}
	return true, ""
}

var UniqueInputFieldNames = validator.NewRule("UniqueInputFieldNames", func(ctx *validator.Context) validator.Visitor {
	var stack []map[string]*ast.Name
	return validator.Funcs{
		EnterFunc: func(n ast.Node) ast.Action {
			switch n := n.(type) {
			case *ast.ObjectValue:
				stack = append(stack, map[string]*ast.Name{})
			case *ast.ObjectField:
				if len(stack) == 0 {
					break
				}
				known := stack[len(stack)-1]
				if first, dup := known[n.Name.Value]; dup {
					ctx.Report(fmt.Sprintf("There can be only one input field named %q.", n.Name.Value), first, n.Name)
				} else {
					known[n.Name.Value] = n.Name
				}
			}
			return ast.Continue
		},
		LeaveFunc: func(n ast.Node) {
			if _, ok := n.(*ast.ObjectValue); ok && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		},
	}
})
