package storage

import (
	"time"

	"salescope/internal/report"
	"salescope/internal/reportdef"
)

// HistoryStore defines the interface for persisting report run history.
// Only run metadata is persisted; source data and view rows are always
// recomputed from the warehouse.
type HistoryStore interface {
	// StoreDefinition persists a report definition
	StoreDefinition(def *reportdef.Report) error

	// StoreRun appends a run record for a built snapshot
	StoreRun(reportID string, snap *report.Snapshot) error

	// UpdateLatestRun updates the latest run for a report
	UpdateLatestRun(reportID string, snap *report.Snapshot) error

	// QueryRuns retrieves run records with optional filtering
	QueryRuns(filter RunFilter) ([]RunRecord, error)

	// GetLatestRun retrieves the latest run for a report
	GetLatestRun(reportID string) (*LatestRun, error)

	// Close closes the storage connection
	Close() error
}

// RunFilter defines filtering options for run queries.
type RunFilter struct {
	ReportID  string
	View      string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Offset    int
}

// RunRecord represents a single report run.
type RunRecord struct {
	ID            int64
	ReportID      string
	View          string
	ReferenceDate time.Time
	BuiltAt       time.Time
	RowCount      int
	TotalSales    float64
	CreatedAt     time.Time
}

// LatestRun represents the most recent run for a report.
type LatestRun struct {
	ReportID      string
	View          string
	ReferenceDate time.Time
	BuiltAt       time.Time
	RowCount      int
	TotalSales    float64
	UpdatedAt     time.Time
}
