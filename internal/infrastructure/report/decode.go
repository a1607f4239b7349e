package report

import (
	"bytes"
	"encoding/json"
	"log"

	"github.com/stockview/backend/internal/domain"
	"github.com/stockview/backend/internal/infrastructure/csvparse"
	"github.com/xuri/excelize/v2"
)

var (
	utf8BOM  = []byte("\xef\xbb\xbf")
	zipMagic = []byte("PK\x03\x04")
)

// Decode parses an export body. JSON arrays of objects are tried first,
// then XLSX workbooks, and anything else is read as CSV. Parse failures
// only move on to the next format.
func Decode(body []byte) []domain.RawRecord {
	body = bytes.TrimPrefix(body, utf8BOM)

	if records, ok := decodeJSON(body); ok {
		return records
	}

	if bytes.HasPrefix(body, zipMagic) {
		records, err := decodeXLSX(body)
		if err == nil {
			return records
		}
		log.Printf("[Report] XLSX decode failed, falling back to CSV: %v", err)
	}

	return csvparse.Parse(string(body))
}

func decodeJSON(body []byte) ([]domain.RawRecord, bool) {
	trimmed := bytes.TrimSpace(body)
	if !bytes.HasPrefix(trimmed, []byte("[")) {
		return nil, false
	}

	var records []domain.RawRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, false
	}
	if records == nil {
		records = []domain.RawRecord{}
	}
	return records, true
}

// decodeXLSX reads the first sheet of a workbook, first row as header
func decodeXLSX(body []byte) ([]domain.RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []domain.RawRecord{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return csvparse.Records(rows), nil
}
