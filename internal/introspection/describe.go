package introspection

import (
	"sort"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/schema"
)

// Result has the shape of the response to the standard introspection
// query, so it can be consumed by tools that load schemas that way.
type Result struct {
	Schema SchemaDesc `json:"__schema" yaml:"__schema"`
}

type SchemaDesc struct {
	Description      *string         `json:"description" yaml:"description"`
	QueryType        *TypeName       `json:"queryType" yaml:"queryType"`
	MutationType     *TypeName       `json:"mutationType" yaml:"mutationType"`
	SubscriptionType *TypeName       `json:"subscriptionType" yaml:"subscriptionType"`
	Types            []TypeDesc      `json:"types" yaml:"types"`
	Directives       []DirectiveDesc `json:"directives" yaml:"directives"`
}

type TypeName struct {
	Name string `json:"name" yaml:"name"`
}

type TypeDesc struct {
	Kind           string          `json:"kind" yaml:"kind"`
	Name           string          `json:"name" yaml:"name"`
	Description    *string         `json:"description" yaml:"description"`
	SpecifiedByURL *string         `json:"specifiedByURL" yaml:"specifiedByURL"`
	Fields         []FieldDesc     `json:"fields" yaml:"fields"`
	InputFields    []InputDesc     `json:"inputFields" yaml:"inputFields"`
	Interfaces     []TypeRefDesc   `json:"interfaces" yaml:"interfaces"`
	EnumValues     []EnumValueDesc `json:"enumValues" yaml:"enumValues"`
	PossibleTypes  []TypeRefDesc   `json:"possibleTypes" yaml:"possibleTypes"`
	IsOneOf        *bool           `json:"isOneOf" yaml:"isOneOf"`
}

// TypeRefDesc is a possibly wrapped type reference. Name is nil for LIST
// and NON_NULL.
type TypeRefDesc struct {
	Kind   string       `json:"kind" yaml:"kind"`
	Name   *string      `json:"name" yaml:"name"`
	OfType *TypeRefDesc `json:"ofType" yaml:"ofType"`
}

type FieldDesc struct {
	Name              string      `json:"name" yaml:"name"`
	Description       *string     `json:"description" yaml:"description"`
	Args              []InputDesc `json:"args" yaml:"args"`
	Type              TypeRefDesc `json:"type" yaml:"type"`
	IsDeprecated      bool        `json:"isDeprecated" yaml:"isDeprecated"`
	DeprecationReason *string     `json:"deprecationReason" yaml:"deprecationReason"`
}

type InputDesc struct {
	Name              string      `json:"name" yaml:"name"`
	Description       *string     `json:"description" yaml:"description"`
	Type              TypeRefDesc `json:"type" yaml:"type"`
	DefaultValue      *string     `json:"defaultValue" yaml:"defaultValue"`
	IsDeprecated      bool        `json:"isDeprecated" yaml:"isDeprecated"`
	DeprecationReason *string     `json:"deprecationReason" yaml:"deprecationReason"`
}

type EnumValueDesc struct {
	Name              string  `json:"name" yaml:"name"`
	Description       *string `json:"description" yaml:"description"`
	IsDeprecated      bool    `json:"isDeprecated" yaml:"isDeprecated"`
	DeprecationReason *string `json:"deprecationReason" yaml:"deprecationReason"`
}

type DirectiveDesc struct {
	Name         string      `json:"name" yaml:"name"`
	Description  *string     `json:"description" yaml:"description"`
	IsRepeatable bool        `json:"isRepeatable" yaml:"isRepeatable"`
	Locations    []string    `json:"locations" yaml:"locations"`
	Args         []InputDesc `json:"args" yaml:"args"`
}

// Describe resolves the standard introspection query against sch with
// includeDeprecated set everywhere. Types and directives are ordered by
// name; fields, arguments and values keep definition order.
func Describe(sch *schema.Schema) *Result {
	d := describer{sch: sch}
	out := SchemaDesc{
		Description:      optional(sch.Description),
		QueryType:        typeName(sch.GetQueryType()),
		MutationType:     typeName(sch.GetMutationType()),
		SubscriptionType: typeName(sch.GetSubscriptionType()),
		Types:            []TypeDesc{},
		Directives:       []DirectiveDesc{},
	}
	for _, name := range sch.TypeNames() {
		out.Types = append(out.Types, d.describeType(sch.Types[name]))
	}
	for _, name := range sch.DirectiveNames() {
		out.Directives = append(out.Directives, d.describeDirective(sch.Directives[name]))
	}
	return &Result{Schema: out}
}

type describer struct {
	sch *schema.Schema
}

func (d describer) describeType(t *schema.Type) TypeDesc {
	out := TypeDesc{
		Kind:           string(t.Kind),
		Name:           t.Name,
		Description:    optional(t.Description),
		SpecifiedByURL: t.SpecifiedByURL,
	}
	switch t.Kind {
	case schema.TypeKindObject, schema.TypeKindInterface:
		out.Fields = []FieldDesc{}
		for _, f := range t.Fields {
			out.Fields = append(out.Fields, d.describeField(f))
		}
		out.Interfaces = d.namedRefs(t.Interfaces)
		if t.Kind == schema.TypeKindInterface {
			out.PossibleTypes = d.possibleTypes(t)
		}
	case schema.TypeKindUnion:
		out.PossibleTypes = d.possibleTypes(t)
	case schema.TypeKindEnum:
		out.EnumValues = []EnumValueDesc{}
		for _, v := range t.EnumValues {
			out.EnumValues = append(out.EnumValues, EnumValueDesc{
				Name:              v.Name,
				Description:       optional(v.Description),
				IsDeprecated:      v.IsDeprecated,
				DeprecationReason: deprecationReason(v.IsDeprecated, v.DeprecationReason),
			})
		}
	case schema.TypeKindInputObject:
		out.InputFields = d.describeInputs(t.InputFields)
		oneOf := t.OneOf
		out.IsOneOf = &oneOf
	}
	return out
}

func (d describer) describeField(f *schema.Field) FieldDesc {
	return FieldDesc{
		Name:              f.Name,
		Description:       optional(f.Description),
		Args:              d.describeInputs(f.Arguments),
		Type:              d.describeTypeRef(f.Type),
		IsDeprecated:      f.IsDeprecated,
		DeprecationReason: deprecationReason(f.IsDeprecated, f.DeprecationReason),
	}
}

func (d describer) describeDirective(dir *schema.Directive) DirectiveDesc {
	locs := append([]string(nil), dir.Locations...)
	sort.Strings(locs)
	return DirectiveDesc{
		Name:         dir.Name,
		Description:  optional(dir.Description),
		IsRepeatable: dir.IsRepeatable,
		Locations:    locs,
		Args:         d.describeInputs(dir.Arguments),
	}
}

func (d describer) namedRefs(names []string) []TypeRefDesc {
	out := []TypeRefDesc{}
	for _, name := range names {
		if t := d.sch.Types[name]; t != nil {
			out = append(out, TypeRefDesc{Kind: string(t.Kind), Name: optional(t.Name)})
		}
	}
	return out
}

func (d describer) possibleTypes(t *schema.Type) []TypeRefDesc {
	var names []string
	for _, pt := range d.sch.PossibleTypes(t) {
		names = append(names, pt.Name)
	}
	sort.Strings(names)
	return d.namedRefs(names)
}

func (d describer) describeInputs(values []*schema.InputValue) []InputDesc {
	out := []InputDesc{}
	for _, v := range values {
		in := InputDesc{
			Name:              v.Name,
			Description:       optional(v.Description),
			Type:              d.describeTypeRef(v.Type),
			IsDeprecated:      v.IsDeprecated,
			DeprecationReason: deprecationReason(v.IsDeprecated, v.DeprecationReason),
		}
		if v.DefaultValue != nil {
			in.DefaultValue = optional(ast.ValueString(v.DefaultValue))
		}
		out = append(out, in)
	}
	return out
}

func (d describer) describeTypeRef(ref *schema.TypeRef) TypeRefDesc {
	switch ref.Kind {
	case schema.TypeRefKindList, schema.TypeRefKindNonNull:
		inner := d.describeTypeRef(ref.OfType)
		return TypeRefDesc{Kind: string(ref.Kind), OfType: &inner}
	}
	kind := ""
	if t := d.sch.Types[ref.Named]; t != nil {
		kind = string(t.Kind)
	}
	return TypeRefDesc{Kind: kind, Name: optional(ref.Named)}
}

func typeName(t *schema.Type) *TypeName {
	if t == nil {
		return nil
	}
	return &TypeName{Name: t.Name}
}

func deprecationReason(deprecated bool, reason string) *string {
	if !deprecated {
		return nil
	}
	return &reason
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
