package ast

import (
	"strconv"
	"strings"
)

func (t *NamedType) String() string   { return t.Name.Value }
func (t *ListType) String() string    { return "[" + t.Type.String() + "]" }
func (t *NonNullType) String() string { return t.Type.String() + "!" }

// NamedTypeName returns the name of the innermost named type of t.
func NamedTypeName(t Type) string {
	for {
		switch tt := t.(type) {
		case *NamedType:
			return tt.Name.Value
		case *ListType:
			t = tt.Type
		case *NonNullType:
			t = tt.Type
		default:
			return ""
		}
	}
}

// ValueString renders a value literal compactly, the way it would appear
// in a document: `[1, 2]`, `{a: "b"}`, `$var`.
func ValueString(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v := v.(type) {
	case *Variable:
		b.WriteString("$" + v.Name.Value)
	case *IntValue:
		b.WriteString(v.Value)
	case *FloatValue:
		b.WriteString(v.Value)
	case *StringValue:
		if v.Block {
			b.WriteString(`"""` + strings.ReplaceAll(v.Value, `"""`, `\"""`) + `"""`)
			return
		}
		b.WriteString(quoteString(v.Value))
	case *BooleanValue:
		b.WriteString(strconv.FormatBool(v.Value))
	case *NullValue:
		b.WriteString("null")
	case *EnumValue:
		b.WriteString(v.Value)
	case *ListValue:
		b.WriteByte('[')
		for i, item := range v.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, item)
		}
		b.WriteByte(']')
	case *ObjectValue:
		b.WriteByte('{')
		for i, f := range v.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Name.Value + ": ")
			writeValue(b, f.Value)
		}
		b.WriteByte('}')
	}
}

// quoteString produces a GraphQL string literal, escaping the characters
// the lexer would reject or reinterpret.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte("0123456789ABCDEF"[r>>4])
				b.WriteByte("0123456789ABCDEF"[r&0xF])
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
