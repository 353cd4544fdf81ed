// Package report renders command results as colored text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/hanpama/gqlfront/internal/gqlerror"
	"github.com/hanpama/gqlfront/internal/language"
	"github.com/hanpama/gqlfront/internal/language/source"
)

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	okStyle      = color.New(color.FgGreen, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	dimStyle     = color.New(color.Faint)
)

// Location is a line and column pair.
type Location = source.Location

// Error is a reported error.
type Error struct {
	Message   string     `json:"message" yaml:"message"`
	Locations []Location `json:"locations,omitempty" yaml:"locations,omitempty"`
	Rule      string     `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// Document is the validation outcome of one file.
type Document struct {
	File       string               `json:"file" yaml:"file"`
	Valid      bool                 `json:"valid" yaml:"valid"`
	Errors     []Error              `json:"errors" yaml:"errors"`
	Operations []language.Operation `json:"operations,omitempty" yaml:"operations,omitempty"`

	errs gqlerror.List
}

// FromResult converts a check result for file.
func FromResult(file string, res *language.Result) Document {
	return Document{
		File:       file,
		Valid:      res.Valid,
		Errors:     Errors(res.Errors),
		Operations: res.Operations,
		errs:       res.Errors,
	}
}

// Errors converts gqlerror values.
func Errors(list gqlerror.List) []Error {
	out := make([]Error, len(list))
	for i, e := range list {
		out[i] = Error{Message: e.Message, Locations: e.Locations, Rule: e.Rule}
	}
	return out
}

// Encode writes v as JSON or YAML.
func Encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// Validation writes the documents in format. Text output points at every
// error with a source excerpt and ends with a summary line.
func Validation(w io.Writer, format string, docs []Document) error {
	if format != "text" {
		return Encode(w, format, docs)
	}
	var b strings.Builder
	failed, total := 0, 0
	for _, doc := range docs {
		if doc.Valid {
			b.WriteString(okStyle.Sprint("ok") + "   " + fileStyle.Sprint(doc.File) + "\n")
			continue
		}
		failed++
		for i, e := range doc.Errors {
			total++
			var src *source.Source
			if i < len(doc.errs) {
				src = doc.errs[i].Source
			}
			writeError(&b, doc.File, e, src)
		}
	}
	switch {
	case failed == 0:
		b.WriteString(okStyle.Sprintf("%d document(s) valid\n", len(docs)))
	default:
		b.WriteString(errorStyle.Sprintf("%d error(s) in %d of %d document(s)\n", total, failed, len(docs)))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeError(b *strings.Builder, file string, e Error, src *source.Source) {
	b.WriteString(errorStyle.Sprint("error"))
	if e.Rule != "" {
		b.WriteString(ruleStyle.Sprintf("[%s]", e.Rule))
	}
	b.WriteString(": " + e.Message + "\n")
	if len(e.Locations) == 0 {
		b.WriteString(lineStyle.Sprint(" --> ") + fileStyle.Sprint(file) + "\n\n")
		return
	}
	for _, loc := range e.Locations {
		b.WriteString(lineStyle.Sprint(" --> ") + fileStyle.Sprintf("%s:%d:%d", file, loc.Line, loc.Column) + "\n")
		if src != nil {
			writeSnippet(b, src, loc)
		}
	}
	b.WriteString("\n")
}

// writeSnippet prints the line loc points at with a caret under the column.
func writeSnippet(b *strings.Builder, src *source.Source, loc Location) {
	lines := splitLines(src.Body)
	i := loc.Line - src.LocationOffset.Line
	if i < 0 || i >= len(lines) {
		return
	}
	line := lines[i]
	col := loc.Column
	if i == 0 {
		col -= src.LocationOffset.Column - 1
	}
	num := fmt.Sprintf("%d", loc.Line)
	pad := strings.Repeat(" ", len(num))
	b.WriteString(lineStyle.Sprintf("%s |\n", pad))
	b.WriteString(lineStyle.Sprintf("%s | ", num) + line + "\n")
	b.WriteString(lineStyle.Sprintf("%s | ", pad))
	b.WriteString(messageStyle.Sprint(strings.Repeat(" ", caretIndent(line, col))+"^") + "\n")
}

// caretIndent counts the display cells before column col, expanding tabs.
func caretIndent(line string, col int) int {
	n := 0
	for i, r := range []rune(line) {
		if i >= col-1 {
			break
		}
		if r == '\t' {
			n += 4
			continue
		}
		n++
	}
	return n
}

func splitLines(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	body = strings.ReplaceAll(body, "\r", "\n")
	return strings.Split(body, "\n")
}
