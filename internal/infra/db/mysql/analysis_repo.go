package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
)

type AnalysisRepository struct{ db *sql.DB }

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository { return &AnalysisRepository{db: db} }

const analysisColumns = `id, codebase_path, project_id, analysis_timestamp,
       total_files, total_lines, languages, entry_points,
       directory_structure, tech_stack, architecture_summary, report_url`

// Save inserts one analysis row. Every scan is a fresh record, never an
// update.
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO codebase_analyses
(id, codebase_path, project_id, analysis_timestamp,
 total_files, total_lines, languages, entry_points,
 directory_structure, tech_stack, architecture_summary, report_url)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?);`

	ts := a.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	res, err := r.db.ExecContext(ctx, q,
		a.ID, a.CodebasePath, nullable(a.ProjectID), ts,
		a.TotalFiles, a.TotalLines,
		toJSON(a.Languages), toJSON(a.EntryPoints),
		toJSON(a.DirectoryStructure), toJSON(a.TechStack),
		a.ArchitectureSummary, nullable(a.ReportURL),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotStored
	}
	return nil
}

// Get by ID
func (r *AnalysisRepository) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT ` + analysisColumns + `
FROM codebase_analyses
WHERE id=?
LIMIT 1;`
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

// ByProject returns every analysis for a project, newest first
func (r *AnalysisRepository) ByProject(ctx context.Context, projectID string) ([]*domain.Analysis, error) {
	const q = `
SELECT ` + analysisColumns + `
FROM codebase_analyses
WHERE project_id=?
ORDER BY analysis_timestamp DESC, id DESC;`
	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// LatestByPath returns the most recent analysis for an exact codebase path
func (r *AnalysisRepository) LatestByPath(ctx context.Context, codebasePath string) (*domain.Analysis, error) {
	const q = `
SELECT ` + analysisColumns + `
FROM codebase_analyses
WHERE codebase_path=?
ORDER BY analysis_timestamp DESC, id DESC
LIMIT 1;`
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, q, codebasePath))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var (
		a         domain.Analysis
		projectID sql.NullString
		reportURL sql.NullString
		languages string
		entries   string
		structure string
		stack     string
	)
	if err := row.Scan(
		&a.ID, &a.CodebasePath, &projectID, &a.Timestamp,
		&a.TotalFiles, &a.TotalLines, &languages, &entries,
		&structure, &stack, &a.ArchitectureSummary, &reportURL,
	); err != nil {
		return nil, err
	}
	a.ProjectID = projectID.String
	a.ReportURL = reportURL.String
	fromJSON(languages, &a.Languages)
	fromJSON(entries, &a.EntryPoints)
	fromJSON(structure, &a.DirectoryStructure)
	fromJSON(stack, &a.TechStack)
	return &a, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
