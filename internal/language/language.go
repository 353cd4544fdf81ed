// Package language ties the front-end together: it parses requests, loads
// schemas from SDL and validates documents, publishing an event around each
// step.
package language

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hanpama/gqlfront/internal/eventbus"
	"github.com/hanpama/gqlfront/internal/events"
	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/introspection"
	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/language/parser"
	"github.com/hanpama/gqlfront/internal/language/source"
	"github.com/hanpama/gqlfront/internal/schema"
	"github.com/hanpama/gqlfront/internal/validator"
	"github.com/hanpama/gqlfront/internal/validator/rules"
)

// Parse parses an executable or type system document.
func Parse(ctx context.Context, src *source.Source, opts ...parser.Option) (*ast.Document, error) {
	start := time.Now()
	eventbus.Publish(ctx, events.ParseStart{Source: src.Name, Bytes: len(src.Body)})
	doc, err := parser.Parse(src, opts...)
	finish := events.ParseFinish{Source: src.Name, Err: err, Duration: time.Since(start)}
	if doc != nil {
		finish.Definitions = len(doc.Definitions)
	}
	eventbus.Publish(ctx, finish)
	return doc, err
}

// ParseQuery parses body as a request document named name.
func ParseQuery(ctx context.Context, name, body string, opts ...parser.Option) (*ast.Document, error) {
	return Parse(ctx, source.New(body, source.WithName(name)), opts...)
}

// LoadSchema builds a schema from SDL sources and adds the introspection
// types.
func LoadSchema(ctx context.Context, srcs ...*source.Source) (*schema.Schema, error) {
	names := make([]string, len(srcs))
	for i, src := range srcs {
		names[i] = src.Name
	}
	s, err := schema.BuildFromSources(srcs...)
	loaded := events.SchemaLoaded{Sources: names, Err: err}
	if err == nil {
		s = introspection.Extend(s)
		loaded.Types = len(s.Types)
	}
	eventbus.Publish(ctx, loaded)
	return s, err
}

// LoadSchemaFiles reads SDL files and builds a schema from them. Each
// pattern may be a glob.
func LoadSchemaFiles(ctx context.Context, patterns ...string) (*schema.Schema, error) {
	var srcs []*source.Source
	for _, pattern := range patterns {
		paths, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("schema pattern %q: %w", pattern, err)
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("schema pattern %q: %w", pattern, os.ErrNotExist)
		}
		for _, path := range paths {
			body, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read schema: %w", err)
			}
			srcs = append(srcs, source.New(string(body), source.WithName(path)))
		}
	}
	if len(srcs) == 0 {
		return nil, errors.New("no schema files given")
	}
	return LoadSchema(ctx, srcs...)
}

type options struct {
	rules     []validator.Rule
	maxErrors int
	parse     []parser.Option
}

// Option configures Validate and Check.
type Option func(*options)

// WithRules replaces the specified rule set.
func WithRules(rs ...validator.Rule) Option {
	return func(o *options) { o.rules = rs }
}

// WithMaxErrors sets the validation error limit. n <= 0 removes it.
func WithMaxErrors(n int) Option {
	return func(o *options) { o.maxErrors = n }
}

// WithParserOptions passes options to the parser used by Check.
func WithParserOptions(opts ...parser.Option) Option {
	return func(o *options) { o.parse = append(o.parse, opts...) }
}

func newOptions(opts []Option) options {
	o := options{rules: rules.Specified(), maxErrors: validator.DefaultMaxErrors}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Validate checks doc against s with the specified rules unless WithRules
// says otherwise.
func Validate(ctx context.Context, s *schema.Schema, doc *ast.Document, opts ...Option) gqlerror.List {
	name := source.DefaultName
	if doc.Loc != nil && doc.Loc.Source != nil {
		name = doc.Loc.Source.Name
	}
	return validate(ctx, s, doc, name, newOptions(opts))
}

func validate(ctx context.Context, s *schema.Schema, doc *ast.Document, name string, o options) gqlerror.List {
	ops := operationNames(doc)
	start := time.Now()
	eventbus.Publish(ctx, events.ValidateStart{Source: name, Operations: ops, Rules: len(o.rules)})
	errs := validator.Validate(s, doc, o.rules, validator.WithMaxErrors(o.maxErrors))
	finish := events.ValidateFinish{Source: name, Operations: ops, Duration: time.Since(start)}
	for _, e := range errs {
		finish.Errors = append(finish.Errors, e)
	}
	eventbus.Publish(ctx, finish)
	return errs
}

func operationNames(doc *ast.Document) []string {
	var names []string
	for _, op := range doc.Operations() {
		names = append(names, op.OperationName())
	}
	return names
}

// Operation describes an operation of a checked document.
type Operation struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Result is the outcome of Check.
type Result struct {
	Document   *ast.Document `json:"-" yaml:"-"`
	Valid      bool          `json:"valid" yaml:"valid"`
	Errors     gqlerror.List `json:"errors,omitempty" yaml:"errors,omitempty"`
	Operations []Operation   `json:"operations,omitempty" yaml:"operations,omitempty"`
}

// Check parses src and validates it against s. A syntax error is reported
// as the only error of the result.
func Check(ctx context.Context, s *schema.Schema, src *source.Source, opts ...Option) *Result {
	o := newOptions(opts)
	doc, err := Parse(ctx, src, o.parse...)
	if err != nil {
		return &Result{Errors: asList(err)}
	}
	res := &Result{Document: doc}
	for _, op := range doc.Operations() {
		res.Operations = append(res.Operations, Operation{Name: op.OperationName(), Type: string(op.Operation)})
	}
	res.Errors = validate(ctx, s, doc, src.Name, o)
	res.Valid = len(res.Errors) == 0
	return res
}

func asList(err error) gqlerror.List {
	var list gqlerror.List
	if errors.As(err, &list) {
		return list
	}
	var ge *gqlerror.Error
	if errors.As(err, &ge) {
		return gqlerror.List{ge}
	}
	return gqlerror.List{gqlerror.New(nil, err.Error())}
}
