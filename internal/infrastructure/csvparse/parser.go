// Package csvparse reads loosely formatted vendor CSV exports into records.
//
// The export endpoints emit quoted fields with embedded newlines, stray quotes
// inside unquoted cells and ragged rows, so parsing is a small state machine
// rather than encoding/csv.
package csvparse

import (
	"strings"

	"github.com/stockview/backend/internal/domain"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Parse converts CSV text into records keyed by the trimmed header row
func Parse(text string) []domain.RawRecord {
	return Records(splitRows(lineEndings.Replace(text)))
}

// Records zips rows against the first non-blank row used as header.
// Missing trailing cells map to "", cells beyond the header are dropped.
func Records(rows [][]string) []domain.RawRecord {
	var header []string
	records := make([]domain.RawRecord, 0, len(rows))

	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		if header == nil {
			header = make([]string, len(row))
			for i, h := range row {
				header[i] = strings.TrimSpace(h)
			}
			continue
		}

		rec := make(domain.RawRecord, len(header))
		for i, key := range header {
			value := ""
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			rec[key] = value
		}
		records = append(records, rec)
	}
	return records
}

// splitRows tokenizes text into rows of raw cells
func splitRows(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(text) && text[i+1] == '"' {
				field.WriteByte('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			endField()
		case c == '\n' && !inQuotes:
			endRow()
		default:
			field.WriteByte(c)
		}
	}

	// no trailing newline
	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}

	return rows
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
