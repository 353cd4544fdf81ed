package schema

import (
	"sort"
	"strings"

	"github.com/hanpama/gqlfront/internal/language/ast"
)

// Render prints s as SDL. Types come first, then directives, each sorted
// by name. Builtin scalars, builtin directives and introspection types are
// left out, and a schema block is printed only for non-default root names.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	p := &printer{}
	p.schemaBlock(s)
	for _, name := range sortedKeys(s.Types, func(n string) bool { return IsBuiltinType(n) || strings.HasPrefix(n, "__") }) {
		p.typeDef(s.Types[name])
	}
	for _, name := range sortedKeys(s.Directives, IsBuiltinDirective) {
		p.directiveDef(s.Directives[name])
	}
	return strings.TrimRight(p.String(), "\n") + "\n"
}

func sortedKeys[V any](m map[string]V, skip func(string) bool) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		if !skip(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

type printer struct {
	strings.Builder
}

// block ends a top-level definition.
func (p *printer) block() { p.WriteString("\n\n") }

func (p *printer) schemaBlock(s *Schema) {
	roots := []struct{ op, name, def string }{
		{"query", s.QueryType, "Query"},
		{"mutation", s.MutationType, "Mutation"},
		{"subscription", s.SubscriptionType, "Subscription"},
	}
	custom := false
	for _, r := range roots {
		custom = custom || (r.name != "" && r.name != r.def)
	}
	if !custom {
		return
	}
	p.description("", s.Description)
	p.WriteString("schema {\n")
	for _, r := range roots {
		if r.name != "" {
			p.WriteString("  " + r.op + ": " + r.name + "\n")
		}
	}
	p.WriteString("}")
	p.block()
}

func (p *printer) description(indent, desc string) {
	if desc == "" {
		return
	}
	p.WriteString(indent + `"""` + "\n")
	for _, line := range strings.Split(strings.ReplaceAll(desc, `"""`, `\"""`), "\n") {
		p.WriteString(indent + line + "\n")
	}
	p.WriteString(indent + `"""` + "\n")
}

func (p *printer) typeDef(t *Type) {
	p.description("", t.Description)
	switch t.Kind {
	case TypeKindScalar:
		p.WriteString("scalar " + t.Name)
		if t.SpecifiedByURL != nil {
			p.WriteString(` @specifiedBy(url: ` + quote(*t.SpecifiedByURL) + `)`)
		}
	case TypeKindObject, TypeKindInterface:
		keyword := "type "
		if t.Kind == TypeKindInterface {
			keyword = "interface "
		}
		p.WriteString(keyword + t.Name)
		if len(t.Interfaces) > 0 {
			p.WriteString(" implements " + strings.Join(t.Interfaces, " & "))
		}
		p.WriteString(" {\n")
		for _, f := range t.Fields {
			p.description("  ", f.Description)
			p.WriteString("  " + f.Name + p.arguments(f.Arguments) + ": " + f.Type.String() + sdlDeprecation(f.IsDeprecated, f.DeprecationReason) + "\n")
		}
		p.WriteString("}")
	case TypeKindUnion:
		p.WriteString("union " + t.Name + " = " + strings.Join(t.PossibleTypes, " | "))
	case TypeKindEnum:
		p.WriteString("enum " + t.Name + " {\n")
		for _, v := range t.EnumValues {
			p.description("  ", v.Description)
			p.WriteString("  " + v.Name + sdlDeprecation(v.IsDeprecated, v.DeprecationReason) + "\n")
		}
		p.WriteString("}")
	case TypeKindInputObject:
		p.WriteString("input " + t.Name)
		if t.OneOf {
			p.WriteString(" @oneOf")
		}
		p.WriteString(" {\n")
		for _, f := range t.InputFields {
			p.description("  ", f.Description)
			p.WriteString("  " + inputValue(f) + "\n")
		}
		p.WriteString("}")
	default:
		panic("unreachable")
	}
	p.block()
}

func (p *printer) directiveDef(d *Directive) {
	p.description("", d.Description)
	p.WriteString("directive @" + d.Name + p.arguments(d.Arguments))
	if d.IsRepeatable {
		p.WriteString(" repeatable")
	}
	p.WriteString(" on " + strings.Join(d.Locations, " | "))
	p.block()
}

// arguments prints an argument list on one line. Argument descriptions
// are not kept in this form.
func (p *printer) arguments(args []*InputValue) string {
	if len(args) == 0 {
		return ""
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = inputValue(arg)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func inputValue(v *InputValue) string {
	s := v.Name + ": " + v.Type.String()
	if v.DefaultValue != nil {
		s += " = " + ast.ValueString(v.DefaultValue)
	}
	return s + sdlDeprecation(v.IsDeprecated, v.DeprecationReason)
}

func sdlDeprecation(deprecated bool, reason string) string {
	switch {
	case !deprecated:
		return ""
	case reason == DefaultDeprecationReason:
		return " @deprecated"
	default:
		return " @deprecated(reason: " + quote(reason) + ")"
	}
}

func quote(s string) string { return ast.ValueString(&ast.StringValue{Value: s}) }
