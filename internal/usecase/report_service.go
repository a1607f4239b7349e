package usecase

import (
	"context"

	"github.com/stockview/backend/internal/domain"
	"github.com/stockview/backend/internal/normalize"
)

// ReportService turns a vendor export into normalized inventory rows
type ReportService struct {
	source domain.ReportSource
}

// NewReportService creates a new report service
func NewReportService(source domain.ReportSource) *ReportService {
	return &ReportService{source: source}
}

// Rows fetches the export and normalizes every record
func (s *ReportService) Rows(ctx context.Context) ([]domain.NormalizedRow, error) {
	records, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return normalize.NormalizeRecords(records), nil
}
