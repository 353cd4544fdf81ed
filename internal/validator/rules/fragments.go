package rules

import (
	"fmt"
	"strings"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/validator"
)

var UniqueFragmentNames = validator.NewRule("UniqueFragmentNames", func(ctx *validator.Context) validator.Visitor {
	known := map[string]*ast.Name{}
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		frag, ok := n.(*ast.FragmentDefinition)
		if !ok {
			return ast.Continue
		}
		name := frag.Name.Value
		if first, dup := known[name]; dup {
			ctx.Report(fmt.Sprintf("There can be only one fragment named %q.", name), first, frag.Name)
		} else {
			known[name] = frag.Name
		}
		return ast.Continue
	}}
})

var KnownFragmentNames = validator.NewRule("KnownFragmentNames", func(ctx *validator.Context) validator.Visitor {
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		spread, ok := n.(*ast.FragmentSpread)
		if ok && ctx.Fragment(spread.Name.Value) == nil {
			ctx.Report(fmt.Sprintf("Unknown fragment %q.", spread.Name.Value), spread.Name)
		}
		return ast.Continue
	}}
})

var NoUnusedFragments = validator.NewRule("NoUnusedFragments", func(ctx *validator.Context) validator.Visitor {
	return validator.Funcs{LeaveFunc: func(n ast.Node) {
		doc, ok := n.(*ast.Document)
		if !ok {
			return
		}
		used := map[string]bool{}
		for _, op := range doc.Operations() {
			for _, frag := range ctx.RecursivelyReferencedFragments(op) {
				used[frag.Name.Value] = true
			}
		}
		for _, frag := range doc.Fragments() {
			if !used[frag.Name.Value] {
				ctx.Report(fmt.Sprintf("Fragment %q is never used.", frag.Name.Value), frag)
			}
		}
	}}
})

// PossibleFragmentSpreads reports spreads whose type condition can never
// match the enclosing type.
var PossibleFragmentSpreads = validator.NewRule("PossibleFragmentSpreads", func(ctx *validator.Context) validator.Visitor {
	s := ctx.Schema()
	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		switch n := n.(type) {
		case *ast.InlineFragment:
			fragType := ctx.NamedType(ctx.Type())
			parent := ctx.ParentType()
			if fragType != nil && parent != nil && fragType.IsComposite() &&
				!validator.DoTypesOverlap(s, fragType, parent) {
				ctx.Report(fmt.Sprintf("Fragment cannot be spread here as objects of type %q can never be of type %q.",
					parent.Name, fragType.Name), n)
			}
		case *ast.FragmentSpread:
			frag := ctx.Fragment(n.Name.Value)
			if frag == nil {
				break
			}
			fragType := s.Type(frag.TypeCondition.Name.Value)
			parent := ctx.ParentType()
			if fragType != nil && parent != nil && fragType.IsComposite() &&
				!validator.DoTypesOverlap(s, fragType, parent) {
				ctx.Report(fmt.Sprintf("Fragment %q cannot be spread here as objects of type %q can never be of type %q.",
					n.Name.Value, parent.Name, fragType.Name), n)
			}
		}
		return ast.Continue
	}}
})

// NoFragmentCycles reports fragments that spread themselves, directly or
// through other fragments. Each cycle is reported once.
var NoFragmentCycles = validator.NewRule("NoFragmentCycles", func(ctx *validator.Context) validator.Visitor {
	visited := map[string]bool{}
	var path []*ast.FragmentSpread
	pathIndex := map[string]int{}

	var detect func(frag *ast.FragmentDefinition)
	detect = func(frag *ast.FragmentDefinition) {
		name := frag.Name.Value
		if visited[name] {
			return
		}
		visited[name] = true

		spreads := ctx.FragmentSpreads(frag.SelectionSet)
		if len(spreads) == 0 {
			return
		}
		pathIndex[name] = len(path)
		for _, spread := range spreads {
			spreadName := spread.Name.Value
			cycleIndex, inPath := pathIndex[spreadName]
			path = append(path, spread)
			if !inPath {
				if next := ctx.Fragment(spreadName); next != nil {
					detect(next)
				}
			} else {
				cycle := path[cycleIndex:]
				var via []string
				nodes := make([]ast.Node, len(cycle))
				for i, s := range cycle {
					nodes[i] = s
					if i < len(cycle)-1 {
						via = append(via, s.Name.Value)
					}
				}
				msg := fmt.Sprintf("Cannot spread fragment %q within itself", spreadName)
				if len(via) > 0 {
					msg += " via " + strings.Join(via, ", ")
				}
				ctx.Report(msg+".", nodes...)
			}
			path = path[:len(path)-1]
		}
		delete(pathIndex, name)
	}

	return validator.Funcs{EnterFunc: func(n ast.Node) ast.Action {
		if frag, ok := n.(*ast.FragmentDefinition); ok {
			detect(frag)
		}
		return ast.Continue
	}}
})
