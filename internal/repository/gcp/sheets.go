package gcp

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"
)

const (
	valueInputRaw   = "RAW"
	insertRows      = "INSERT_ROWS"
	renderFormatted = "FORMATTED_VALUE"
)

// SheetLog reads and appends rows of one worksheet used as an append-only log.
type SheetLog struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

func NewSheetLog(svc *sheets.Service, spreadsheetID, sheetName string) *SheetLog {
	return &SheetLog{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}
}

// a1Range addresses the whole worksheet, quoting the name.
func (l *SheetLog) a1Range() string {
	return "'" + strings.ReplaceAll(l.sheetName, "'", "''") + "'"
}

// Rows returns every non-empty row of the worksheet, header first.
func (l *SheetLog) Rows(ctx context.Context) ([][]string, error) {
	resp, err := l.svc.Spreadsheets.Values.Get(l.spreadsheetID, l.a1Range()).
		ValueRenderOption(renderFormatted).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets get %s: %w", l.a1Range(), err)
	}
	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		out = append(out, cells)
	}
	return out, nil
}

// Append adds one row after the last row of the worksheet.
func (l *SheetLog) Append(ctx context.Context, row []string) error {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{cells}}
	_, err := l.svc.Spreadsheets.Values.Append(l.spreadsheetID, l.a1Range(), vr).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertRows).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append %s: %w", l.a1Range(), err)
	}
	return nil
}
