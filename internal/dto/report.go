package dto

import "github.com/hammamsawalma/edusystem/internal/core/domain"

// GenerateReportRequest is the payload for persisting an aggregation
// snapshot. Both dates are required; the handler rejects the request
// before the engine runs when either is missing.
type GenerateReportRequest struct {
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
	ReportType string `json:"reportType" binding:"required"`
}

// ArchiveReportRequest toggles a report's archival flag.
type ArchiveReportRequest struct {
	Archived bool `json:"archived"`
}

// ListReportsResponse wraps a page of reports with the cursor for the
// next page, nil on the last page.
type ListReportsResponse struct {
	Reports   []domain.FinancialReport `json:"reports"`
	NextToken *string                  `json:"nextToken,omitempty"`
}
