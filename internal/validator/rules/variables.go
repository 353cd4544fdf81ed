package rules

import (
	"fmt"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/schema"
	"github.com/hanpama/gqlfront/internal/validator"
)

var UniqueVariableNames = validator.NewRule("UniqueVariableNames", func(ctx *validator.Context) validator.Visitor {
	var known map[string]*ast.Name
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		switch n := n.(type) {
		case *ast.OperationDefinition:
			known = map[string]*ast.Name{}
		case *ast.VariableDefinition:
			name := n.Variable.Name
			if first, dup := known[name.Value]; dup {
				ctx.Report(fmt.Sprintf("There can be only one variable named %q.", name.Value), first, name)
			} else {
				known[name.Value] = name
			}
		}
		return ast.Continue
	}}
})

// NoUndefinedVariables checks every variable used by an operation, through
// any fragment, is defined by it.
var NoUndefinedVariables = validator.NewRule("NoUndefinedVariables", func(ctx *validator.Context) validator.Visitor {
	return validator.Funcs{LeaveFunc: func(n ast.Node) {
		op, ok := n.(*ast.OperationDefinition)
		if !ok {
			return
		}
		defined := definedVariables(op)
		for _, usage := range ctx.RecursiveVariableUsages(op) {
			name := usage.Node.Name.Value
			if _, ok := defined[name]; ok {
				continue
			}
			if op.Name != nil {
				ctx.Report(fmt.Sprintf("Variable \"$%s\" is not defined by operation %q.", name, op.Name.Value), usage.Node, op)
			} else {
				ctx.Report(fmt.Sprintf("Variable \"$%s\" is not defined.", name), usage.Node, op)
			}
		}
	}}
})

var NoUnusedVariables = validator.NewRule("NoUnusedVariables", func(ctx *validator.Context) validator.Visitor {
	return validator.Funcs{LeaveFunc: func(n ast.Node) {
		op, ok := n.(*ast.OperationDefinition)
		if !ok {
			return
		}
		used := map[string]bool{}
		for _, usage := range ctx.RecursiveVariableUsages(op) {
			used[usage.Node.Name.Value] = true
		}
		for _, def := range op.VariableDefinitions {
			name := def.Variable.Name.Value
			if used[name] {
				continue
			}
			if op.Name != nil {
				ctx.Report(fmt.Sprintf("Variable \"$%s\" is never used in operation %q.", name, op.Name.Value), def)
			} else {
				ctx.Report(fmt.Sprintf("Variable \"$%s\" is never used.", name), def)
			}
		}
	}}
})

// VariablesInAllowedPosition checks each variable's type fits every
// position it is used in.
var VariablesInAllowedPosition = validator.NewRule("VariablesInAllowedPosition", func(ctx *validator.Context) validator.Visitor {
	s := ctx.Schema()
	return validator.Funcs{LeaveFunc: func(n ast.Node) {
		op, ok := n.(*ast.OperationDefinition)
		if !ok {
			return
		}
		defined := definedVariables(op)
		for _, usage := range ctx.RecursiveVariableUsages(op) {
			def := defined[usage.Node.Name.Value]
			if def == nil || usage.Type == nil {
				continue
			}
			varType := validator.TypeFromAST(s, def.Type)
			if varType == nil || allowedVariableUsage(s, varType, def.DefaultValue, usage.Type, usage.DefaultValue) {
				continue
			}
			ctx.Report(fmt.Sprintf("Variable \"$%s\" of type %q used in position expecting type %q.",
				usage.Node.Name.Value, varType.String(), usage.Type.String()), def, usage.Node)
		}
	}}
})

// allowedVariableUsage lets a nullable variable fill a non-null position
// when either side provides a non-null default.
func allowedVariableUsage(s validator.Schema, varType *schema.TypeRef, varDefault ast.Value, locType *schema.TypeRef, locDefault ast.Value) bool {
	if locType.IsNonNull() && !varType.IsNonNull() {
		_, isNull := varDefault.(*ast.NullValue)
		hasVarDefault := varDefault != nil && !isNull
		if !hasVarDefault && locDefault == nil {
			return false
		}
		return validator.IsTypeSubTypeOf(s, varType, locType.OfType)
	}
	return validator.IsTypeSubTypeOf(s, varType, locType)
}

func definedVariables(op *ast.OperationDefinition) map[string]*ast.VariableDefinition {
	defined := make(map[string]*ast.VariableDefinition, len(op.VariableDefinitions))
	for _, def := range op.VariableDefinitions {
		if _, dup := defined[def.Variable.Name.Value]; !dup {
			defined[def.Variable.Name.Value] = def
		}
	}
	return defined
}
