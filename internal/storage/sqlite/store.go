package sqlite

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"salescope/internal/report"
	"salescope/internal/reportdef"
	"salescope/internal/storage"
)

// Store implements HistoryStore using SQLite
type Store struct {
	db *sql.DB
}

// NewStore creates a new SQLite history store with the given database path
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Run migrations
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// StoreDefinition persists a report definition
func (s *Store) StoreDefinition(def *reportdef.Report) error {
	query := `
		INSERT INTO report_definitions (id, title, view, refresh_interval, reference_date)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			view = excluded.view,
			refresh_interval = excluded.refresh_interval,
			reference_date = excluded.reference_date,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := s.db.Exec(query,
		def.Metadata.ID,
		def.Metadata.Title,
		def.Spec.View,
		def.Spec.RefreshInterval,
		def.Spec.ReferenceDate,
	)
	if err != nil {
		return fmt.Errorf("failed to store report definition: %w", err)
	}

	return nil
}

// StoreRun appends a run record for a built snapshot
func (s *Store) StoreRun(reportID string, snap *report.Snapshot) error {
	query := `
		INSERT INTO report_runs (report_id, view, reference_date, built_at, row_count, total_sales)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		reportID,
		string(snap.View),
		snap.ReferenceDate,
		snap.BuiltAt,
		snap.RowCount,
		snap.TotalSales,
	)
	if err != nil {
		return fmt.Errorf("failed to store run: %w", err)
	}

	return nil
}

// UpdateLatestRun updates the latest run for a report
func (s *Store) UpdateLatestRun(reportID string, snap *report.Snapshot) error {
	query := `
		INSERT INTO latest_run (report_id, view, reference_date, built_at, row_count, total_sales)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(report_id) DO UPDATE SET
			view = excluded.view,
			reference_date = excluded.reference_date,
			built_at = excluded.built_at,
			row_count = excluded.row_count,
			total_sales = excluded.total_sales,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := s.db.Exec(query,
		reportID,
		string(snap.View),
		snap.ReferenceDate,
		snap.BuiltAt,
		snap.RowCount,
		snap.TotalSales,
	)
	if err != nil {
		return fmt.Errorf("failed to update latest run: %w", err)
	}

	return nil
}

// QueryRuns retrieves run records with optional filtering
func (s *Store) QueryRuns(filter storage.RunFilter) ([]storage.RunRecord, error) {
	query := `
		SELECT id, report_id, view, reference_date, built_at, row_count, total_sales, created_at
		FROM report_runs
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.ReportID != "" {
		query += " AND report_id = ?"
		args = append(args, filter.ReportID)
	}

	if filter.View != "" {
		query += " AND view = ?"
		args = append(args, filter.View)
	}

	if filter.StartTime != nil {
		query += " AND built_at >= ?"
		args = append(args, filter.StartTime)
	}

	if filter.EndTime != nil {
		query += " AND built_at <= ?"
		args = append(args, filter.EndTime)
	}

	query += " ORDER BY built_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else {
		query += " LIMIT 100" // Default limit
	}

	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []storage.RunRecord
	for rows.Next() {
		var record storage.RunRecord

		err := rows.Scan(
			&record.ID,
			&record.ReportID,
			&record.View,
			&record.ReferenceDate,
			&record.BuiltAt,
			&record.RowCount,
			&record.TotalSales,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// GetLatestRun retrieves the latest run for a report
func (s *Store) GetLatestRun(reportID string) (*storage.LatestRun, error) {
	query := `
		SELECT report_id, view, reference_date, built_at, row_count, total_sales, updated_at
		FROM latest_run
		WHERE report_id = ?
	`

	var run storage.LatestRun

	err := s.db.QueryRow(query, reportID).Scan(
		&run.ReportID,
		&run.View,
		&run.ReferenceDate,
		&run.BuiltAt,
		&run.RowCount,
		&run.TotalSales,
		&run.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	return &run, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
