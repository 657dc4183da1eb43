package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/insight"
)

type InsightRepository struct {
	db *sql.DB
}

func NewInsightRepository(db *sql.DB) *InsightRepository {
	return &InsightRepository{db: db}
}

// Save inserts an insight record
func (r *InsightRepository) Save(ctx context.Context, i *domain.Insight) error {
	const q = `
INSERT INTO codebase_insights
  (id, analysis_id, model, result_json, created_at)
VALUES (?,?,?,?,?)
ON CONFLICT (id) DO UPDATE SET
  analysis_id=excluded.analysis_id, model=excluded.model, result_json=excluded.result_json;`

	result := i.Result
	if strings.TrimSpace(result) == "" {
		result = "{}"
	}
	createdAt := i.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q, i.ID, i.AnalysisID, i.Model, result,
		createdAt.UTC().Format(time.RFC3339Nano))
	return err
}

// Paginate returns a page of insight records ordered by created_at desc
func (r *InsightRepository) Paginate(ctx context.Context, page, pageSize int) ([]*domain.Insight, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, analysis_id, model, result_json, created_at
FROM codebase_insights
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?;`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Insight
	for rows.Next() {
		i, err := scanInsight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// LatestByAnalysis returns the newest insight for one analysis
func (r *InsightRepository) LatestByAnalysis(ctx context.Context, analysisID string) (*domain.Insight, error) {
	const q = `
SELECT id, analysis_id, model, result_json, created_at
FROM codebase_insights
WHERE analysis_id=?
ORDER BY created_at DESC, id DESC
LIMIT 1;`
	i, err := scanInsight(r.db.QueryRowContext(ctx, q, analysisID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

func scanInsight(row rowScanner) (*domain.Insight, error) {
	var i domain.Insight
	var created string
	if err := row.Scan(&i.ID, &i.AnalysisID, &i.Model, &i.Result, &created); err != nil {
		return nil, err
	}
	if parsed, err := time.Parse(time.RFC3339Nano, created); err == nil {
		i.CreatedAt = parsed
	}
	return &i, nil
}
