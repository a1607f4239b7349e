package domain

import "context"

// ReportSource fetches a single inventory export and parses it into records
type ReportSource interface {
	Fetch(ctx context.Context) ([]RawRecord, error)
}

// ListClient pages through every record of an OrderTime entity type
type ListClient interface {
	ListAll(ctx context.Context, entityType string, filters []ListFilter) ([]RawRecord, error)
}
