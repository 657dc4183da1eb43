package sqlite

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// schema is bootstrapped on connect; the embedded driver targets local
// single-user deployments with no external migration step.
const schema = `
CREATE TABLE IF NOT EXISTS codebase_analyses (
  id TEXT PRIMARY KEY,
  codebase_path TEXT NOT NULL,
  project_id TEXT,
  analysis_timestamp TEXT NOT NULL,
  total_files INTEGER NOT NULL,
  total_lines INTEGER NOT NULL,
  languages TEXT NOT NULL,
  entry_points TEXT NOT NULL,
  directory_structure TEXT NOT NULL,
  tech_stack TEXT NOT NULL,
  architecture_summary TEXT NOT NULL,
  report_url TEXT
);
CREATE INDEX IF NOT EXISTS idx_analyses_project ON codebase_analyses(project_id, analysis_timestamp);
CREATE INDEX IF NOT EXISTS idx_analyses_path ON codebase_analyses(codebase_path, analysis_timestamp);

CREATE TABLE IF NOT EXISTS codebase_insights (
  id TEXT PRIMARY KEY,
  analysis_id TEXT NOT NULL,
  model TEXT,
  result_json TEXT NOT NULL,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_insights_analysis ON codebase_insights(analysis_id, created_at);
`

func Connect(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// single writer; the driver serializes access
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
