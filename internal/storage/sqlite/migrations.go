package sqlite

// Schema defines the SQLite database schema for run history
const Schema = `
-- Report definitions table
CREATE TABLE IF NOT EXISTS report_definitions (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL DEFAULT '',
	view TEXT NOT NULL,
	refresh_interval TEXT NOT NULL,
	reference_date TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_report_definitions_view ON report_definitions(view);

-- Report runs table
CREATE TABLE IF NOT EXISTS report_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	report_id TEXT NOT NULL,
	view TEXT NOT NULL,
	reference_date TIMESTAMP NOT NULL,
	built_at TIMESTAMP NOT NULL,
	row_count INTEGER NOT NULL,
	total_sales REAL NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (report_id) REFERENCES report_definitions(id)
);

CREATE INDEX IF NOT EXISTS idx_report_runs_report_id ON report_runs(report_id);
CREATE INDEX IF NOT EXISTS idx_report_runs_view ON report_runs(view);
CREATE INDEX IF NOT EXISTS idx_report_runs_built_at ON report_runs(built_at DESC);

-- Latest run table (one row per report)
CREATE TABLE IF NOT EXISTS latest_run (
	report_id TEXT PRIMARY KEY,
	view TEXT NOT NULL,
	reference_date TIMESTAMP NOT NULL,
	built_at TIMESTAMP NOT NULL,
	row_count INTEGER NOT NULL,
	total_sales REAL NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (report_id) REFERENCES report_definitions(id)
);
`
