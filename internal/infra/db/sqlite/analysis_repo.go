package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
)

type AnalysisRepository struct{ db *sql.DB }

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository { return &AnalysisRepository{db: db} }

const analysisColumns = `id, codebase_path, project_id, analysis_timestamp,
       total_files, total_lines, languages, entry_points,
       directory_structure, tech_stack, architecture_summary, report_url`

// Save inserts one analysis row; timestamps are stored as RFC3339 text.
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
		a.ID, a.CodebasePath, a.ProjectID, ts.UTC().Format(time.RFC3339Nano),
		a.TotalFiles, a.TotalLines,
		marshal(a.Languages), marshal(a.EntryPoints),
		marshal(a.DirectoryStructure), marshal(a.TechStack),
		a.ArchitectureSummary, a.ReportURL,
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
		ts        string
		languages string
		entries   string
		structure string
		stack     string
	)
	if err := row.Scan(
		&a.ID, &a.CodebasePath, &projectID, &ts,
		&a.TotalFiles, &a.TotalLines, &languages, &entries,
		&structure, &stack, &a.ArchitectureSummary, &reportURL,
	); err != nil {
		return nil, err
	}
	a.ProjectID = projectID.String
	a.ReportURL = reportURL.String
	if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		a.Timestamp = parsed
	}
	unmarshal(languages, &a.Languages)
	unmarshal(entries, &a.EntryPoints)
	unmarshal(structure, &a.DirectoryStructure)
	unmarshal(stack, &a.TechStack)
	return &a, nil
}

func marshal(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("sqlite: could not marshal column value: %v", err)
		return "{}"
	}
	return string(b)
}

func unmarshal(raw string, out any) {
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("sqlite: could not unmarshal column value: %v", err)
	}
}
