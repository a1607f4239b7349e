package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stockview/backend/internal/domain"
)

var numberNoise = strings.NewReplacer(",", "", " ", "")

// NormalizeRecord maps a report record onto the fixed output shape
func NormalizeRecord(rec domain.RawRecord) domain.NormalizedRow {
	row := domain.NormalizedRow{
		Item:       FirstString(rec, ItemAliases),
		Serial:     FirstString(rec, SerialAliases),
		Expiration: FirstString(rec, ExpirationAliases),
		Bin:        FirstString(rec, BinAliases),
	}

	if v, ok := FirstValue(rec, QtyAliases); ok {
		row.Qty = ToNumber(v)
	}
	if v, ok := FirstValue(rec, CostAliases); ok {
		cost := ToNumber(v)
		row.Cost = &cost
	}

	return row
}

// NormalizeRecords normalizes every record, preserving order
func NormalizeRecords(records []domain.RawRecord) []domain.NormalizedRow {
	rows := make([]domain.NormalizedRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, NormalizeRecord(rec))
	}
	return rows
}

// FirstValue returns the value of the first alias holding a truthy value
func FirstValue(rec domain.RawRecord, aliases []string) (any, bool) {
	if rec == nil {
		return nil, false
	}
	for _, key := range aliases {
		if v, ok := rec[key]; ok && Truthy(v) {
			return v, true
		}
	}
	return nil, false
}

// FirstString is FirstValue rendered as a string, "" when no alias matches
func FirstString(rec domain.RawRecord, aliases []string) string {
	v, ok := FirstValue(rec, aliases)
	if !ok {
		return ""
	}
	return Stringify(v)
}

// Truthy reports whether v counts as present: nil, "", 0, NaN and false do not
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		return t != "" && ToNumber(t) != 0
	default:
		return true
	}
}

// Stringify renders scalar values the way they appear in the export
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// ToNumber coerces v to a float. Commas and spaces are stripped first.
// Anything unparseable or non-finite yields 0; it never fails.
func ToNumber(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return finite(t)
	case float32:
		return finite(float64(t))
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case json.Number:
		return parseNumber(t.String())
	case string:
		return parseNumber(t)
	default:
		return parseNumber(fmt.Sprint(t))
	}
}

func parseNumber(s string) float64 {
	s = numberNoise.Replace(strings.TrimSpace(s))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return finite(d.InexactFloat64())
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
