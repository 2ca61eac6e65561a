package pipeline

import (
	"math"
	"strconv"
	"strings"
	"time"

	"solarac_dashboard/internal/dataset"
	"solarac_dashboard/internal/models"
)

// column resolves name (or one of its aliases) in t.
func column(t dataset.Table, ds, name string, aliases ...string) (int, error) {
	for _, n := range append([]string{name}, aliases...) {
		if idx, ok := t.Column(n); ok {
			return idx, nil
		}
	}
	return -1, &SchemaError{Dataset: ds, Column: name}
}

// ProjectRaw selects the daily time series columns and parses each row.
// Rows without a Topic are skipped; a malformed date or number fails the batch.
func ProjectRaw(t dataset.Table) ([]models.RawRecord, error) {
	topicIdx, err := column(t, DatasetRaw, colTopic)
	if err != nil {
		return nil, err
	}
	dateIdx, err := column(t, DatasetRaw, colTimestamp)
	if err != nil {
		return nil, err
	}
	// selected but never computed on; only its presence is required
	if _, err := column(t, DatasetRaw, colBattVMin); err != nil {
		return nil, err
	}
	readingIdx := make([]int, len(readingFields))
	for i, f := range readingFields {
		if readingIdx[i], err = column(t, DatasetRaw, f.source, f.aliases...); err != nil {
			return nil, err
		}
	}

	out := make([]models.RawRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		topic := strings.TrimSpace(row[topicIdx])
		if dataset.IsMissing(topic) {
			continue
		}
		rec := models.RawRecord{Topic: topic}

		if rec.Date, err = parseDate(row[dateIdx]); err != nil {
			return nil, &ParseError{Dataset: DatasetRaw, Row: i + 1, Column: colTimestamp, Value: row[dateIdx], Err: err}
		}
		for j, f := range readingFields {
			v, err := parseNumber(row[readingIdx[j]])
			if err != nil {
				return nil, &ParseError{Dataset: DatasetRaw, Row: i + 1, Column: f.source, Value: row[readingIdx[j]], Err: err}
			}
			*f.ref(&rec.Readings) = v
		}
		out = append(out, rec)
	}
	return out, nil
}

// ProjectLatest selects the latest status columns. Values are kept as text.
func ProjectLatest(t dataset.Table) ([]models.StatusRecord, error) {
	topicIdx, err := column(t, DatasetLatest, colTopic)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(statusFields))
	for i, f := range statusFields {
		if idx[i], err = column(t, DatasetLatest, f.source); err != nil {
			return nil, err
		}
	}

	out := make([]models.StatusRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		topic := strings.TrimSpace(row[topicIdx])
		if dataset.IsMissing(topic) {
			continue
		}
		rec := models.StatusRecord{Topic: topic}
		for i, f := range statusFields {
			*f.ref(&rec) = dataset.Cell(row[idx[i]])
		}
		out = append(out, rec)
	}
	return out, nil
}

// parseDate parses a D-M-YYYY cell; padded days and months are accepted too. A missing cell yields the zero time.
func parseDate(v string) (time.Time, error) {
	if dataset.IsMissing(v) {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, strings.TrimSpace(v))
}

// parseNumber parses a numeric cell. Missing cells and NaN yield nil.
func parseNumber(v string) (*float64, error) {
	if dataset.IsMissing(v) {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) {
		return nil, nil
	}
	return &f, nil
}
