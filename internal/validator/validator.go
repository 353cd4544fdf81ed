// Package validator checks executable GraphQL documents against a schema.
//
// Validate walks the document once. Every rule gets a fresh Visitor for the
// walk and receives enter and leave events for each node in document order,
// after the shared TypeInfo has been updated for the node. Rules report
// problems through the Context; the walk keeps going after a report unless
// a rule asks it to stop.
package validator

import (
	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/schema"
)

// Schema is the read-only type lookup the validator needs.
// *schema.Schema implements it.
type Schema interface {
	Type(name string) *schema.Type
	TypeNames() []string
	Directive(name string) *schema.Directive
	DirectiveNames() []string
	RootType(op ast.Operation) *schema.Type
	PossibleTypes(t *schema.Type) []*schema.Type
	IsPossibleType(abstract, obj *schema.Type) bool
}

var _ Schema = (*schema.Schema)(nil)

// Visitor receives traversal events. Enter's result controls the walk for
// all rules: Skip leaves the node's children unvisited, Break ends the
// walk. When rules disagree, Break wins over Skip and Skip over Continue.
type Visitor = ast.Visitor

// Funcs adapts functions to a Visitor. Either may be nil.
type Funcs struct {
	EnterFunc func(ast.Node) ast.Action
	LeaveFunc func(ast.Node)
}

func (f Funcs) Enter(n ast.Node) ast.Action {
	if f.EnterFunc == nil {
		return ast.Continue
	}
	return f.EnterFunc(n)
}

func (f Funcs) Leave(n ast.Node) {
	if f.LeaveFunc != nil {
		f.LeaveFunc(n)
	}
}

// Rule is a validation rule. NewVisitor is called once per validated
// document, so visitor state never outlives a single walk.
type Rule interface {
	Name() string
	NewVisitor(ctx *Context) Visitor
}

type ruleFunc struct {
	name string
	fn   func(*Context) Visitor
}

func (r ruleFunc) Name() string                    { return r.name }
func (r ruleFunc) NewVisitor(ctx *Context) Visitor { return r.fn(ctx) }

// NewRule builds a Rule from a visitor constructor.
func NewRule(name string, fn func(*Context) Visitor) Rule {
	return ruleFunc{name: name, fn: fn}
}

// DefaultMaxErrors is the error limit used unless WithMaxErrors is given.
const DefaultMaxErrors = 100

// TooManyErrorsMessage is appended when the error limit is reached.
const TooManyErrorsMessage = "Too many validation errors, error limit reached. Validation aborted."

type options struct {
	maxErrors int
}

// Option configures Validate.
type Option func(*options)

// WithMaxErrors stops validation once n errors were reported. n <= 0
// removes the limit.
func WithMaxErrors(n int) Option {
	return func(o *options) { o.maxErrors = n }
}

// Validate runs rules over doc and returns every reported error in
// traversal order. An empty rule set reports nothing.
func Validate(s Schema, doc *ast.Document, rules []Rule, opts ...Option) gqlerror.List {
	o := options{maxErrors: DefaultMaxErrors}
	for _, opt := range opts {
		opt(&o)
	}
	if len(rules) == 0 {
		return nil
	}

	ctx := newContext(s, doc, o.maxErrors)
	e := &engine{ctx: ctx}
	for _, r := range rules {
		e.names = append(e.names, r.Name())
		e.visitors = append(e.visitors, r.NewVisitor(ctx))
	}
	ast.Walk(doc, e)
	return ctx.errs
}

type engine struct {
	ctx      *Context
	names    []string
	visitors []Visitor
}

func (e *engine) Enter(n ast.Node) ast.Action {
	if e.ctx.aborted {
		return ast.Break
	}
	e.ctx.info.Enter(n)
	result := ast.Continue
	for i, v := range e.visitors {
		e.ctx.rule = e.names[i]
		switch v.Enter(n) {
		case ast.Break:
			return ast.Break
		case ast.Skip:
			result = ast.Skip
		}
		if e.ctx.aborted {
			return ast.Break
		}
	}
	e.ctx.ancestors = append(e.ctx.ancestors, n)
	return result
}

func (e *engine) Leave(n ast.Node) {
	e.ctx.ancestors = e.ctx.ancestors[:len(e.ctx.ancestors)-1]
	for i, v := range e.visitors {
		if e.ctx.aborted {
			break
		}
		e.ctx.rule = e.names[i]
		v.Leave(n)
	}
	e.ctx.info.Leave(n)
}
