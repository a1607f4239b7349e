package usecase

import (
	"encoding/json"
	"testing"

	"github.com/stockview/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureIndices() Indices {
	return Indices{
		Lots: BuildIndex([]domain.RawRecord{
			{"Id": 10.0, "Name": "LOT-10", "ExpirationDate": "2027-03-01T00:00:00"},
		}),
		Items: BuildIndex([]domain.RawRecord{
			{"Id": 20.0, "Name": "Widget", "StdCost": 4.5},
			{"Id": 21.0, "Name": "Gadget"},
		}),
		Bins: BuildIndex([]domain.RawRecord{
			{"Id": 30.0, "Name": "A-01"},
			{"Id": 31.0, "Name": "B-07"},
		}),
	}
}

func balance(qty float64, lot, item, bin float64) domain.RawRecord {
	return domain.RawRecord{
		"Quantity":       qty,
		"LotOrSerialRef": map[string]any{"Id": lot},
		"ItemRef":        map[string]any{"Id": item},
		"BinRef":         map[string]any{"Id": bin},
	}
}

func TestBuildRows_FullJoin(t *testing.T) {
	rows := BuildRows([]domain.RawRecord{balance(3, 10, 20, 30)}, fixtureIndices(), domain.LiveQuery{})

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "Widget", row.Item)
	assert.Equal(t, "LOT-10", row.Serial)
	assert.Equal(t, "2027-03-01T00:00:00", row.Expiration)
	assert.Equal(t, 3.0, row.Qty)
	require.NotNil(t, row.Cost)
	assert.Equal(t, 4.5, *row.Cost)
	assert.Equal(t, "A-01", row.Bin)
}

func TestBuildRows_MissingLot(t *testing.T) {
	rows := BuildRows([]domain.RawRecord{balance(3, 999, 20, 30)}, fixtureIndices(), domain.LiveQuery{})

	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Serial)
	assert.Equal(t, "", rows[0].Expiration)
	assert.Equal(t, "Widget", rows[0].Item)
	assert.Equal(t, "A-01", rows[0].Bin)
	assert.Equal(t, 3.0, rows[0].Qty)
}

func TestBuildRows_MissingItemLeavesCostNull(t *testing.T) {
	rows := BuildRows([]domain.RawRecord{balance(1, 10, 999, 30)}, fixtureIndices(), domain.LiveQuery{})

	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Item)
	assert.Nil(t, rows[0].Cost)

	raw, err := json.Marshal(rows[0])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"cost":null`)
}

func TestBuildRows_FlatForeignKeys(t *testing.T) {
	bal := domain.RawRecord{"QtyOnHand": "2", "LotOrSerialId": 10.0, "ItemId": 21.0, "BinId": "31"}

	rows := BuildRows([]domain.RawRecord{bal}, fixtureIndices(), domain.LiveQuery{})

	require.Len(t, rows, 1)
	assert.Equal(t, "Gadget", rows[0].Item)
	assert.Equal(t, "LOT-10", rows[0].Serial)
	assert.Equal(t, "B-07", rows[0].Bin)
	assert.Nil(t, rows[0].Cost)
}

func TestBuildRows_NestedRefWinsOverFlat(t *testing.T) {
	bal := balance(1, 10, 20, 30)
	bal["BinId"] = 31.0

	rows := BuildRows([]domain.RawRecord{bal}, fixtureIndices(), domain.LiveQuery{})

	require.Len(t, rows, 1)
	assert.Equal(t, "A-01", rows[0].Bin)
}

func TestBuildRows_QtyThreshold(t *testing.T) {
	balances := []domain.RawRecord{
		balance(5, 10, 20, 30),
		balance(6, 10, 20, 30),
	}

	rows := BuildRows(balances, fixtureIndices(), domain.LiveQuery{QtyGT: 5})

	require.Len(t, rows, 1)
	assert.Equal(t, 6.0, rows[0].Qty)
}

func TestBuildRows_ZeroQtyExcludedByDefault(t *testing.T) {
	balances := []domain.RawRecord{
		balance(0, 10, 20, 30),
		{"ItemRef": map[string]any{"Id": 20.0}},
		balance(-2, 10, 20, 30),
	}

	assert.Empty(t, BuildRows(balances, fixtureIndices(), domain.LiveQuery{}))
}

func TestBuildRows_BinPrefix(t *testing.T) {
	balances := []domain.RawRecord{
		balance(1, 10, 20, 30),
		balance(1, 10, 20, 31),
		balance(1, 10, 20, 999),
	}

	rows := BuildRows(balances, fixtureIndices(), domain.LiveQuery{BinPrefix: "B-"})
	require.Len(t, rows, 1)
	assert.Equal(t, "B-07", rows[0].Bin)

	assert.Empty(t, BuildRows(balances, fixtureIndices(), domain.LiveQuery{BinPrefix: "b-"}))
}

func TestBuildRows_Location(t *testing.T) {
	mainLoc := balance(1, 10, 20, 30)
	mainLoc["LocationRef"] = map[string]any{"Id": 1.0, "Name": "Main"}
	annex := balance(2, 10, 20, 30)
	annex["LocationName"] = "Annex"
	unknown := balance(3, 10, 20, 30)

	rows := BuildRows([]domain.RawRecord{mainLoc, annex, unknown}, fixtureIndices(), domain.LiveQuery{Location: "Main"})

	require.Len(t, rows, 2)
	assert.Equal(t, 1.0, rows[0].Qty)
	assert.Equal(t, 3.0, rows[1].Qty)
}

func TestBuildRows_NestedLocationObject(t *testing.T) {
	mainLoc := balance(1, 10, 20, 30)
	mainLoc["Location"] = map[string]any{"Id": 1.0, "Name": "Main"}
	annex := balance(2, 10, 20, 30)
	annex["Location"] = map[string]any{"Id": 2.0, "Name": "Annex"}
	flat := balance(3, 10, 20, 30)
	flat["Location"] = "Main"

	rows := BuildRows([]domain.RawRecord{mainLoc, annex, flat}, fixtureIndices(), domain.LiveQuery{Location: "Main"})

	require.Len(t, rows, 2)
	assert.Equal(t, 1.0, rows[0].Qty)
	assert.Equal(t, 3.0, rows[1].Qty)
}

func TestBuildRows_ZeroQuantityDoesNotFallThrough(t *testing.T) {
	zero := balance(0, 10, 20, 30)
	zero["QtyOnHand"] = 4.0
	missing := domain.RawRecord{"QtyOnHand": 4.0, "BinRef": map[string]any{"Id": 30.0}}
	blank := domain.RawRecord{"Quantity": " ", "OnHand": "7", "BinRef": map[string]any{"Id": 31.0}}

	rows := BuildRows([]domain.RawRecord{zero, missing, blank}, fixtureIndices(), domain.LiveQuery{})

	require.Len(t, rows, 2)
	assert.Equal(t, 4.0, rows[0].Qty)
	assert.Equal(t, "A-01", rows[0].Bin)
	assert.Equal(t, 7.0, rows[1].Qty)
	assert.Equal(t, "B-07", rows[1].Bin)
}

func TestResolveCost(t *testing.T) {
	tests := []struct {
		name string
		item domain.RawRecord
		want *float64
	}{
		{"nil item", nil, nil},
		{"no cost fields", domain.RawRecord{"Name": "x"}, nil},
		{"first candidate", domain.RawRecord{"StdCost": 1.0, "AvgCost": 2.0}, ptr(1)},
		{"zero is present", domain.RawRecord{"StdCost": 0.0, "AvgCost": 2.0}, ptr(0)},
		{"skips non-numeric", domain.RawRecord{"StdCost": "n/a", "LastCost": 9.0}, ptr(9)},
		{"skips null", domain.RawRecord{"StdCost": nil, "UnitCost": 3.0}, ptr(3)},
		{"json number", domain.RawRecord{"Cost": json.Number("7.5")}, ptr(7.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveCost(tt.item))
		})
	}
}

func ptr(f float64) *float64 { return &f }
