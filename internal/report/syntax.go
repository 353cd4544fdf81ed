package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/hanpama/gqlfront/internal/language/ast"
	"github.com/hanpama/gqlfront/internal/language/lexer"
)

// Token is a lexed token as reported by the lex command.
type Token struct {
	Kind   string `json:"kind" yaml:"kind"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Start  int    `json:"start" yaml:"start"`
	End    int    `json:"end" yaml:"end"`
}

// Tokens writes a token stream in format.
func Tokens(w io.Writer, format string, toks []lexer.Token) error {
	out := make([]Token, len(toks))
	for i, t := range toks {
		out[i] = Token{Kind: t.Kind.String(), Value: t.Value, Line: t.Line, Column: t.Column, Start: t.Start, End: t.End}
	}
	if format != "text" {
		return Encode(w, format, out)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, t := range out {
		value := ""
		if t.Value != "" {
			value = strconv.Quote(t.Value)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", lineStyle.Sprintf("%d:%d", t.Line, t.Column), ruleStyle.Sprint(t.Kind), value)
	}
	return tw.Flush()
}

// Definition summarizes one top-level definition of a parsed document.
type Definition struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Location Location `json:"location" yaml:"location"`
}

// Definitions lists the definitions of doc.
func Definitions(doc *ast.Document) []Definition {
	out := make([]Definition, 0, len(doc.Definitions))
	for _, def := range doc.Definitions {
		d := Definition{Kind: def.Kind().String(), Name: definitionName(def)}
		if loc := def.Location(); loc != nil {
			d.Location = loc.StartLocation()
		}
		out = append(out, d)
	}
	return out
}

func definitionName(def ast.Definition) string {
	switch def := def.(type) {
	case *ast.OperationDefinition:
		return def.OperationName()
	case *ast.FragmentDefinition:
		return def.Name.Value
	case *ast.DirectiveDefinition:
		return "@" + def.Name.Value
	case ast.TypeDefinition:
		return def.TypeName()
	case ast.TypeExtension:
		return def.TypeName()
	}
	return ""
}

// Parsed writes the definitions of a parsed file in format.
func Parsed(w io.Writer, format, file string, doc *ast.Document) error {
	defs := Definitions(doc)
	if format != "text" {
		return Encode(w, format, struct {
			File        string       `json:"file" yaml:"file"`
			Definitions []Definition `json:"definitions" yaml:"definitions"`
		}{file, defs})
	}
	var b strings.Builder
	b.WriteString(fileStyle.Sprint(file) + "\n")
	for _, d := range defs {
		b.WriteString("  " + lineStyle.Sprintf("%d:%d", d.Location.Line, d.Location.Column) + " " + ruleStyle.Sprint(d.Kind))
		if d.Name != "" {
			b.WriteString(" " + d.Name)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// SyntaxError writes err, which is usually a *gqlerror.Error carrying an
// excerpt, in text form.
func SyntaxError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Sprint("error")+": "+err.Error())
}

// Names writes a plain list, one per line, marking the ones in marked.
func Names(w io.Writer, names []string, marked map[string]bool) {
	for _, n := range names {
		if marked[n] {
			fmt.Fprintln(w, n+" "+dimStyle.Sprint("(disabled)"))
			continue
		}
		fmt.Fprintln(w, n)
	}
}
