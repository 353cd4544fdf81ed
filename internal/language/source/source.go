// Package source holds GraphQL source text and translates byte offsets
// into line/column locations for error reporting.
package source

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultName is used when a Source is created without a name.
const DefaultName = "GraphQL request"

// Location is a 1-based line/column pair.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Source is a GraphQL document body plus the metadata needed to point at
// positions within it. LocationOffset shifts reported locations for
// documents embedded inside larger files.
type Source struct {
	Body           string
	Name           string
	LocationOffset Location
}

type Option func(*Source)

func WithName(name string) Option { return func(s *Source) { s.Name = name } }

func WithLocationOffset(line, column int) Option {
	return func(s *Source) { s.LocationOffset = Location{Line: line, Column: column} }
}

// New creates a Source. Offsets below 1 are clamped to 1.
func New(body string, opts ...Option) *Source {
	s := &Source{Body: body, Name: DefaultName, LocationOffset: Location{Line: 1, Column: 1}}
	for _, o := range opts {
		o(s)
	}
	if s.Name == "" {
		s.Name = DefaultName
	}
	if s.LocationOffset.Line < 1 {
		s.LocationOffset.Line = 1
	}
	if s.LocationOffset.Column < 1 {
		s.LocationOffset.Column = 1
	}
	return s
}

// NewChecked is like New but rejects invalid location offsets.
func NewChecked(body string, opts ...Option) (*Source, error) {
	probe := &Source{LocationOffset: Location{Line: 1, Column: 1}}
	for _, o := range opts {
		o(probe)
	}
	if probe.LocationOffset.Line < 1 {
		return nil, fmt.Errorf("line in locationOffset is 1-indexed and must be positive, got %d", probe.LocationOffset.Line)
	}
	if probe.LocationOffset.Column < 1 {
		return nil, fmt.Errorf("column in locationOffset is 1-indexed and must be positive, got %d", probe.LocationOffset.Column)
	}
	return New(body, opts...), nil
}

// bodyLocation returns the location of offset relative to the body alone.
// Columns count characters, not bytes.
func (s *Source) bodyLocation(offset int) Location {
	if offset > len(s.Body) {
		offset = len(s.Body)
	}
	line, lineStart := 1, 0
	for i := 0; i < offset; i++ {
		switch s.Body[i] {
		case '\n':
			line++
			lineStart = i + 1
		case '\r':
			if i+1 < len(s.Body) && s.Body[i+1] == '\n' {
				if i+1 == offset {
					// offset sits between \r and \n; still on the \r's line
					return Location{Line: line, Column: utf8.RuneCountInString(s.Body[lineStart:offset]) + 1}
				}
				i++
			}
			line++
			lineStart = i + 1
		}
	}
	return Location{Line: line, Column: utf8.RuneCountInString(s.Body[lineStart:offset]) + 1}
}

// OffsetToLocation converts a byte offset into a location with the
// source's LocationOffset applied. The column shift only applies to the
// first line of the body.
func (s *Source) OffsetToLocation(offset int) Location {
	loc := s.bodyLocation(offset)
	return s.applyOffset(loc)
}

func (s *Source) applyOffset(loc Location) Location {
	out := Location{Line: loc.Line + s.LocationOffset.Line - 1, Column: loc.Column}
	if loc.Line == 1 {
		out.Column += s.LocationOffset.Column - 1
	}
	return out
}

// RenderExcerpt renders the header and the surrounding lines of loc, which
// must be a location previously produced by OffsetToLocation.
//
//	foo.graphql (3:5)
//	2: query {
//	3:   ?
//	       ^
//	4: }
func (s *Source) RenderExcerpt(loc Location) string {
	lineOffset := s.LocationOffset.Line - 1
	columnOffset := s.LocationOffset.Column - 1
	bodyLine := loc.Line - lineOffset

	lines := splitLines(s.Body)
	lines[0] = strings.Repeat(" ", columnOffset) + lines[0]

	prevNum := strconv.Itoa(loc.Line - 1)
	lineNum := strconv.Itoa(loc.Line)
	nextNum := strconv.Itoa(loc.Line + 1)
	pad := len(nextNum)

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d:%d)\n", s.Name, loc.Line, loc.Column)
	if bodyLine >= 2 && bodyLine-2 < len(lines) {
		b.WriteString(lpad(pad, prevNum) + ": " + lines[bodyLine-2] + "\n")
	}
	if bodyLine >= 1 && bodyLine-1 < len(lines) {
		b.WriteString(lpad(pad, lineNum) + ": " + lines[bodyLine-1] + "\n")
	}
	b.WriteString(strings.Repeat(" ", 1+pad+loc.Column) + "^\n")
	if bodyLine >= 1 && bodyLine < len(lines) {
		b.WriteString(lpad(pad, nextNum) + ": " + lines[bodyLine] + "\n")
	}
	return b.String()
}

func splitLines(body string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '\n':
			lines = append(lines, body[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, body[start:i])
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, body[start:])
}

func lpad(n int, s string) string {
	if len(s) >= n {
		return s
	}
	return strings.Repeat(" ", n-len(s)) + s
}
