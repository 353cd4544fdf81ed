package validator

import (
	"fmt"

	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/language/source"
	"github.com/hanpama/gqlfront/internal/schema"
)

// Context is shared by all rules of one Validate call. It collects errors
// and exposes the TypeInfo and document lookups rules need.
type Context struct {
	schema    Schema
	doc       *ast.Document
	info      *TypeInfo
	ancestors []ast.Node

	errs      gqlerror.List
	maxErrors int
	aborted   bool
	rule      string

	fragments          map[string]*ast.FragmentDefinition
	fragmentSpreads    map[*ast.SelectionSet][]*ast.FragmentSpread
	recursiveFragments map[*ast.OperationDefinition][]*ast.FragmentDefinition
	variableUsages     map[ast.Node][]VariableUsage
	recursiveUsages    map[*ast.OperationDefinition][]VariableUsage
}

// VariableUsage is a variable reference together with the type and
// default value expected where it appears.
type VariableUsage struct {
	Node         *ast.Variable
	Type         *schema.TypeRef
	DefaultValue ast.Value
}

func newContext(s Schema, doc *ast.Document, maxErrors int) *Context {
	return &Context{
		schema:             s,
		doc:                doc,
		info:               NewTypeInfo(s),
		maxErrors:          maxErrors,
		fragmentSpreads:    make(map[*ast.SelectionSet][]*ast.FragmentSpread),
		recursiveFragments: make(map[*ast.OperationDefinition][]*ast.FragmentDefinition),
		variableUsages:     make(map[ast.Node][]VariableUsage),
		recursiveUsages:    make(map[*ast.OperationDefinition][]VariableUsage),
	}
}

func (c *Context) Schema() Schema          { return c.schema }
func (c *Context) Document() *ast.Document { return c.doc }

// Errors returns what has been reported so far.
func (c *Context) Errors() gqlerror.List { return c.errs }

// ReportError records err on behalf of the rule being dispatched.
func (c *Context) ReportError(err *gqlerror.Error) {
	if c.aborted {
		return
	}
	if c.maxErrors > 0 && len(c.errs) >= c.maxErrors {
		c.errs = append(c.errs, gqlerror.New(nil, TooManyErrorsMessage))
		c.aborted = true
		return
	}
	if err.Rule == "" {
		err.Rule = c.rule
	}
	c.errs = append(c.errs, err)
}

// Report records message located at each of nodes.
func (c *Context) Report(message string, nodes ...ast.Node) {
	var src *source.Source
	var offsets []int
	for _, n := range nodes {
		loc := n.Location()
		if loc == nil {
			continue
		}
		if src == nil {
			src = loc.Source
		}
		offsets = append(offsets, loc.Start)
	}
	c.ReportError(gqlerror.New(src, message, offsets...))
}

// Reportf is Report with a format string.
func (c *Context) Reportf(nodes []ast.Node, format string, args ...any) {
	c.Report(fmt.Sprintf(format, args...), nodes...)
}

// Aborted reports whether the error limit stopped validation.
func (c *Context) Aborted() bool { return c.aborted }

func (c *Context) TypeInfo() *TypeInfo              { return c.info }
func (c *Context) Type() *schema.TypeRef            { return c.info.Type() }
func (c *Context) ParentType() *schema.Type         { return c.info.ParentType() }
func (c *Context) InputType() *schema.TypeRef       { return c.info.InputType() }
func (c *Context) ParentInputType() *schema.TypeRef { return c.info.ParentInputType() }
func (c *Context) FieldDef() *schema.Field          { return c.info.FieldDef() }
func (c *Context) DefaultValue() ast.Value          { return c.info.DefaultValue() }
func (c *Context) Directive() *schema.Directive     { return c.info.Directive() }
func (c *Context) Argument() *schema.InputValue     { return c.info.Argument() }
func (c *Context) EnumValue() *schema.EnumValue     { return c.info.EnumValue() }

// Ancestors returns the nodes enclosing the one being visited, outermost
// first. The slice is only valid during the current event.
func (c *Context) Ancestors() []ast.Node { return c.ancestors }

// Parent returns the node directly enclosing the one being visited.
func (c *Context) Parent() ast.Node { return top(c.ancestors) }

// NamedType resolves the innermost named type of ref.
func (c *Context) NamedType(ref *schema.TypeRef) *schema.Type {
	if ref == nil {
		return nil
	}
	return c.schema.Type(ref.GetNamedType())
}

// Fragment returns the fragment definition with the given name.
func (c *Context) Fragment(name string) *ast.FragmentDefinition {
	if c.fragments == nil {
		c.fragments = make(map[string]*ast.FragmentDefinition)
		for _, f := range c.doc.Fragments() {
			if _, dup := c.fragments[f.Name.Value]; !dup {
				c.fragments[f.Name.Value] = f
			}
		}
	}
	return c.fragments[name]
}

// FragmentSpreads returns the fragment spreads in set, including those in
// nested fields and inline fragments but not those inside spread
// fragments.
func (c *Context) FragmentSpreads(set *ast.SelectionSet) []*ast.FragmentSpread {
	if spreads, ok := c.fragmentSpreads[set]; ok {
		return spreads
	}
	var spreads []*ast.FragmentSpread
	pending := []*ast.SelectionSet{set}
	for len(pending) > 0 {
		cur := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if cur == nil {
			continue
		}
		for _, sel := range cur.Selections {
			switch sel := sel.(type) {
			case *ast.FragmentSpread:
				spreads = append(spreads, sel)
			case *ast.Field:
				pending = append(pending, sel.SelectionSet)
			case *ast.InlineFragment:
				pending = append(pending, sel.SelectionSet)
			}
		}
	}
	c.fragmentSpreads[set] = spreads
	return spreads
}

// RecursivelyReferencedFragments returns every fragment op reaches through
// spreads, each once, in discovery order.
func (c *Context) RecursivelyReferencedFragments(op *ast.OperationDefinition) []*ast.FragmentDefinition {
	if frags, ok := c.recursiveFragments[op]; ok {
		return frags
	}
	var frags []*ast.FragmentDefinition
	collected := map[string]bool{}
	pending := []*ast.SelectionSet{op.SelectionSet}
	for len(pending) > 0 {
		set := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		for _, spread := range c.FragmentSpreads(set) {
			name := spread.Name.Value
			if collected[name] {
				continue
			}
			collected[name] = true
			if frag := c.Fragment(name); frag != nil {
				frags = append(frags, frag)
				pending = append(pending, frag.SelectionSet)
			}
		}
	}
	c.recursiveFragments[op] = frags
	return frags
}

// VariableUsages returns the variables used within node, which must be an
// operation or fragment definition, with their expected input types.
func (c *Context) VariableUsages(node ast.Node) []VariableUsage {
	if usages, ok := c.variableUsages[node]; ok {
		return usages
	}
	var usages []VariableUsage
	ti := NewTypeInfo(c.schema)
	ast.Walk(node, Funcs{
		EnterFunc: func(n ast.Node) ast.Action {
			if _, ok := n.(*ast.VariableDefinition); ok {
				return ast.Skip
			}
			ti.Enter(n)
			if v, ok := n.(*ast.Variable); ok {
				usages = append(usages, VariableUsage{Node: v, Type: ti.InputType(), DefaultValue: ti.DefaultValue()})
			}
			return ast.Continue
		},
		LeaveFunc: func(n ast.Node) {
			if _, ok := n.(*ast.VariableDefinition); !ok {
				ti.Leave(n)
			}
		},
	})
	c.variableUsages[node] = usages
	return usages
}

// RecursiveVariableUsages returns the variable usages of op and of every
// fragment it references.
func (c *Context) RecursiveVariableUsages(op *ast.OperationDefinition) []VariableUsage {
	if usages, ok := c.recursiveUsages[op]; ok {
		return usages
	}
	usages := append([]VariableUsage(nil), c.VariableUsages(op)...)
	for _, frag := range c.RecursivelyReferencedFragments(op) {
		usages = append(usages, c.VariableUsages(frag)...)
	}
	c.recursiveUsages[op] = usages
	return usages
}
