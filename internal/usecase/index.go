package usecase

import (
	"github.com/stockview/backend/internal/domain"
	"github.com/stockview/backend/internal/normalize"
)

var idKeys = []string{"Id", "ID", "id"}

// BuildIndex maps each record's id to the record. Records without an id are skipped;
// on duplicate ids the last record wins.
func BuildIndex(records []domain.RawRecord) domain.EntityIndex {
	idx := make(domain.EntityIndex, len(records))
	for _, rec := range records {
		id := normalize.FirstString(rec, idKeys)
		if id == "" {
			continue
		}
		idx[id] = rec
	}
	return idx
}

// refID resolves a foreign key, preferring the nested reference object
// (e.g. ItemRef.Id) over the flat field (e.g. ItemId).
func refID(rec domain.RawRecord, nestedKey, flatKey string) string {
	if ref := asRecord(rec[nestedKey]); ref != nil {
		if id := normalize.FirstString(ref, idKeys); id != "" {
			return id
		}
	}
	return normalize.FirstString(rec, []string{flatKey})
}

// refName reads the Name carried on a nested reference object
func refName(rec domain.RawRecord, nestedKey string) string {
	return normalize.FirstString(asRecord(rec[nestedKey]), []string{"Name"})
}

func asRecord(v any) domain.RawRecord {
	switch t := v.(type) {
	case domain.RawRecord:
		return t
	case map[string]any:
		return domain.RawRecord(t)
	default:
		return nil
	}
}
