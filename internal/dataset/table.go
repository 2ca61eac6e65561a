// Package dataset decodes tabular exports into in-memory tables.
package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoHeader is returned when the payload has no header row.
var ErrNoHeader = errors.New("dataset: missing header row")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a fully materialized dataset: a header and rows of the same width.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of name in the header.
func (t Table) Column(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	return -1, false
}

// ReadCSV reads a whole CSV payload. Header cells are trimmed, a leading BOM is
// dropped and every row is padded or truncated to the header width.
func ReadCSV(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("read payload: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Table{}, ErrNoHeader
	}
	if err != nil {
		return Table{}, fmt.Errorf("parse header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := Table{Header: header, Rows: make([][]string, 0, 256)}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("parse row %d: %w", len(t.Rows)+1, err)
		}
		if isBlank(rec) {
			continue
		}
		t.Rows = append(t.Rows, fitWidth(rec, len(header)))
	}
	return t, nil
}

// FromValues builds a table from a header row followed by data rows, as returned by
// spreadsheet APIs where trailing empty cells are omitted.
func FromValues(values [][]string) Table {
	if len(values) == 0 {
		return Table{}
	}
	header := make([]string, len(values[0]))
	for i, h := range values[0] {
		header[i] = strings.TrimSpace(h)
	}
	t := Table{Header: header, Rows: make([][]string, 0, len(values)-1)}
	for _, rec := range values[1:] {
		if isBlank(rec) {
			continue
		}
		t.Rows = append(t.Rows, fitWidth(rec, len(header)))
	}
	return t
}

func fitWidth(rec []string, width int) []string {
	if len(rec) == width {
		return rec
	}
	out := make([]string, width)
	copy(out, rec)
	return out
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
