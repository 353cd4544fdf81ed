// Package gqlerror defines the error values produced by the GraphQL
// front-end: syntax errors from the lexer and parser, and validation errors
// collected by the validator.
package gqlerror

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hanpama/gqlfront/internal/language/source"
)

// Error is a single GraphQL error with the locations it refers to and an
// optional response path.
type Error struct {
	Message   string            `json:"message"`
	Locations []source.Location `json:"locations,omitempty"`
	Path      []any             `json:"path,omitempty"`

	// Rule names the validation rule that reported the error, if any.
	Rule string `json:"-"`

	// Source and Positions are set for errors that point into a document.
	Source    *source.Source `json:"-"`
	Positions []int          `json:"-"`

	syntax bool
}

func (e *Error) Error() string {
	if e.syntax {
		return e.String()
	}
	return e.Message
}

// String renders the error. Syntax errors include a source excerpt:
//
//	Syntax Error: Unexpected Name "foo"
//
//	GraphQL request (1:3)
//	1: { foo
//	     ^
func (e *Error) String() string {
	var b strings.Builder
	if e.syntax {
		b.WriteString("Syntax Error: ")
	}
	b.WriteString(e.Message)
	if e.Source != nil && len(e.Locations) > 0 {
		b.WriteString("\n")
		for _, loc := range e.Locations {
			b.WriteString("\n")
			b.WriteString(e.Source.RenderExcerpt(loc))
		}
	}
	return b.String()
}

// IsSyntax reports whether the error was raised by the lexer or parser.
func (e *Error) IsSyntax() bool { return e.syntax }

// Syntax creates a syntax error at the given byte offset of src.
func Syntax(src *source.Source, offset int, message string) *Error {
	return &Error{
		Message:   message,
		Locations: []source.Location{src.OffsetToLocation(offset)},
		Source:    src,
		Positions: []int{offset},
		syntax:    true,
	}
}

// Syntaxf is Syntax with formatting.
func Syntaxf(src *source.Source, offset int, format string, args ...any) *Error {
	return Syntax(src, offset, fmt.Sprintf(format, args...))
}

// New creates a validation error pointing at the given byte offsets.
// src may be nil for errors on synthetic nodes.
func New(src *source.Source, message string, offsets ...int) *Error {
	e := &Error{Message: message, Source: src}
	if src == nil {
		return e
	}
	for _, off := range offsets {
		e.Positions = append(e.Positions, off)
		e.Locations = append(e.Locations, src.OffsetToLocation(off))
	}
	return e
}

// Errorf is New with formatting.
func Errorf(src *source.Source, offsets []int, format string, args ...any) *Error {
	return New(src, fmt.Sprintf(format, args...), offsets...)
}

// List is an ordered collection of errors.
type List []*Error

func (l List) Error() string {
	var buf bytes.Buffer
	for i, err := range l {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(err.Error())
	}
	return buf.String()
}

// Messages returns the message of every error in order.
func (l List) Messages() []string {
	out := make([]string, len(l))
	for i, err := range l {
		out[i] = err.Message
	}
	return out
}

func (l List) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]*Error(l))
}
