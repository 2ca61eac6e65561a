package pipeline

import "fmt"

// SchemaError reports an expected column that is absent from an input dataset.
type SchemaError struct {
	Dataset string
	Column  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s dataset: missing column %q", e.Dataset, e.Column)
}

// ParseError reports a cell that could not be parsed. Row is the 1-based data row.
type ParseError struct {
	Dataset string
	Row     int
	Column  string
	Value   string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s dataset: row %d: column %q: cannot parse %q: %v", e.Dataset, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
