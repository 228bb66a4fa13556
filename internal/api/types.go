package api

import (
	"time"
)

// ReportSummary contains summary information about a report definition.
type ReportSummary struct {
	ID              string `json:"id"`
	Title           string `json:"title,omitempty"`
	View            string `json:"view"`
	RefreshInterval string `json:"refreshInterval"`
	ReferenceDate   string `json:"referenceDate,omitempty"`
}

// ReportListResponse represents a list of report definitions.
type ReportListResponse struct {
	Reports []ReportSummary `json:"reports"`
}

// SnapshotResponse wraps a built report snapshot with cache metadata.
type SnapshotResponse struct {
	ID            string      `json:"id"`
	View          string      `json:"view"`
	ReferenceDate time.Time   `json:"referenceDate"`
	BuiltAt       time.Time   `json:"builtAt"`
	RowCount      int         `json:"rowCount"`
	TotalSales    float64     `json:"totalSales"`
	Stale         bool        `json:"stale"`
	Rows          interface{} `json:"rows"`
}

// RunRecordResponse represents one run history entry.
type RunRecordResponse struct {
	ID            int64     `json:"id"`
	ReportID      string    `json:"reportID"`
	View          string    `json:"view"`
	ReferenceDate time.Time `json:"referenceDate"`
	BuiltAt       time.Time `json:"builtAt"`
	RowCount      int       `json:"rowCount"`
	TotalSales    float64   `json:"totalSales"`
	CreatedAt     time.Time `json:"createdAt"`
}

// HistoryResponse represents a run history query result.
type HistoryResponse struct {
	Records []RunRecordResponse `json:"records"`
	Total   int                 `json:"total"`
}

// HealthResponse represents health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse represents readiness check response.
type ReadyResponse struct {
	Ready         bool     `json:"ready"`
	ReportsLoaded int      `json:"reportsLoaded"`
	Reasons       []string `json:"reasons,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
