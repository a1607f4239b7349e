package usecase

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/stockview/backend/internal/domain"
	"github.com/stockview/backend/internal/normalize"
)

// Field names on OrderTime entities, in lookup order
var (
	balanceQtyKeys      = []string{"Quantity", "QtyOnHand", "OnHand", "Qty"}
	balanceLocationKeys = []string{"LocationRef", "LocationName", "Location"}
	itemNameKeys        = []string{"Name", "ItemName", "Description"}
	lotNumberKeys       = []string{"Name", "LotOrSerialNo", "Number"}
	lotExpirationKeys   = []string{"ExpirationDate", "ExpDate"}
	binNameKeys         = []string{"Name", "BinName"}
	itemCostKeys        = []string{"StdCost", "AvgCost", "AverageCost", "Cost", "UnitCost", "LastCost"}
)

// Indices holds the per-request entity lookups used by the join
type Indices struct {
	Lots  domain.EntityIndex
	Items domain.EntityIndex
	Bins  domain.EntityIndex
}

// BuildRows joins inventory balances against the lot, item and bin indices.
// A balance whose referenced entity is missing still produces a row; the
// fields contributed by that entity are left empty.
func BuildRows(balances []domain.RawRecord, idx Indices, q domain.LiveQuery) []domain.NormalizedRow {
	rows := make([]domain.NormalizedRow, 0, len(balances))

	for _, bal := range balances {
		qty := normalize.ToNumber(firstPresent(bal, balanceQtyKeys))
		if !(qty > q.QtyGT) {
			continue
		}

		if q.Location != "" {
			if loc := balanceLocation(bal); loc != "" && loc != q.Location {
				continue
			}
		}

		lot := idx.Lots[refID(bal, "LotOrSerialRef", "LotOrSerialId")]
		item := idx.Items[refID(bal, "ItemRef", "ItemId")]
		bin := idx.Bins[refID(bal, "BinRef", "BinId")]

		binName := normalize.FirstString(bin, binNameKeys)
		if q.BinPrefix != "" && !strings.HasPrefix(binName, q.BinPrefix) {
			continue
		}

		rows = append(rows, domain.NormalizedRow{
			Item:       normalize.FirstString(item, itemNameKeys),
			Serial:     normalize.FirstString(lot, lotNumberKeys),
			Expiration: normalize.FirstString(lot, lotExpirationKeys),
			Qty:        qty,
			Cost:       resolveCost(item),
			Bin:        binName,
		})
	}

	return rows
}

// balanceLocation reads the location name from a reference object or a flat field
func balanceLocation(bal domain.RawRecord) string {
	for _, key := range balanceLocationKeys {
		if asRecord(bal[key]) != nil {
			if name := refName(bal, key); name != "" {
				return name
			}
			continue
		}
		if name := normalize.FirstString(bal, []string{key}); name != "" {
			return name
		}
	}
	return ""
}

// firstPresent returns the value of the first key that is set. Unlike
// FirstValue a zero counts as set, so Quantity: 0 does not fall through.
func firstPresent(rec domain.RawRecord, keys []string) any {
	for _, key := range keys {
		v, ok := rec[key]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return nil
}

// resolveCost returns the first cost candidate on the item holding a number.
// Zero counts as present.
func resolveCost(item domain.RawRecord) *float64 {
	for _, key := range itemCostKeys {
		var cost float64
		switch v := item[key].(type) {
		case float64:
			cost = v
		case int:
			cost = float64(v)
		case int64:
			cost = float64(v)
		case json.Number:
			f, err := v.Float64()
			if err != nil {
				continue
			}
			cost = f
		default:
			continue
		}
		if math.IsNaN(cost) || math.IsInf(cost, 0) {
			continue
		}
		return &cost
	}
	return nil
}
