package domain

// RawRecord is one row of vendor data. Field names vary per source and per tenant.
type RawRecord map[string]any

// NormalizedRow is the stable output shape returned to the frontend
type NormalizedRow struct {
	Item       string   `json:"item"`
	Serial     string   `json:"serial"`
	Expiration string   `json:"expiration"`
	Qty        float64  `json:"qty"`
	Cost       *float64 `json:"cost"` // nil when the source carries no cost
	Bin        string   `json:"bin"`
}

// RowsResponse is the success body of both inventory endpoints
type RowsResponse struct {
	Rows []NormalizedRow `json:"rows"`
}

// EntityIndex maps a stringified entity id to its record. Built once per request.
type EntityIndex map[string]RawRecord

// LiveQuery holds the optional filters of the live inventory endpoint
type LiveQuery struct {
	Location  string
	BinPrefix string
	QtyGT     float64
}

// ListFilter is a single filter clause sent to the OrderTime list API
type ListFilter struct {
	PropertyName     string `json:"PropertyName"`
	Operator         int    `json:"Operator"`
	FilterValueArray []any  `json:"FilterValueArray"`
}

// Sortation orders list API results
type Sortation struct {
	PropertyName string `json:"PropertyName"`
	Direction    int    `json:"Direction"` // 1 = ascending
}

// ListRequest is the body POSTed for every page of an OrderTime list call
type ListRequest struct {
	Type            string       `json:"Type"`
	PageNumber      int          `json:"PageNumber"`
	NumberOfRecords int          `json:"NumberOfRecords"`
	Filters         []ListFilter `json:"Filters,omitempty"`
	Sortation       Sortation    `json:"Sortation"`
}

// ListResponse is the wrapped page payload. Some tenants return a bare array instead.
type ListResponse struct {
	Records []RawRecord `json:"Records"`
}
