// ABOUTME: Typed load errors for schema violations and malformed cells.
// ABOUTME: Both identify the source and file so startup failures are actionable.
package storage

import "fmt"

// SchemaError reports a required column missing from an input file.
type SchemaError struct {
	Source SourceID
	File   string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source %s (%s): missing required column %q", e.Source, e.File, e.Column)
}

// ParseError reports a cell that could not be converted to its column type.
type ParseError struct {
	Source SourceID
	File   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("source %s (%s) line %d column %q value %q: %v",
		e.Source, e.File, e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
