// Package events defines the payloads published on the event bus by the
// front-end and the HTTP server.
package events

import "time"

// ParseStart is emitted before a document is parsed.
type ParseStart struct {
	Source string
	Bytes  int
}

// ParseFinish is emitted after parsing. Err is the syntax error, if any.
type ParseFinish struct {
	Source      string
	Definitions int
	Err         error
	Duration    time.Duration
}

// ValidateStart is emitted before a document is validated.
type ValidateStart struct {
	Source     string
	Operations []string
	Rules      int
}

// ValidateFinish is emitted after validation.
type ValidateFinish struct {
	Source     string
	Operations []string
	Errors     []error
	Duration   time.Duration
}

// SchemaLoaded is emitted when a schema was built from SDL sources.
type SchemaLoaded struct {
	Sources []string
	Types   int
	Err     error
}
