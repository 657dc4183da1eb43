package postgres

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
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET
  analysis_id=EXCLUDED.analysis_id, model=EXCLUDED.model, result_json=EXCLUDED.result_json;`

	result := i.Result
	if strings.TrimSpace(result) == "" {
		// result_json column requires valid JSON; use empty object
		result = "{}"
	}
	createdAt := i.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q, i.ID, i.AnalysisID, i.Model, result, createdAt)
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
LIMIT $1 OFFSET $2;`
	rows, err := r.db.QueryContext(ctx, q, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Insight
	for rows.Next() {
		var i domain.Insight
		if err := rows.Scan(&i.ID, &i.AnalysisID, &i.Model, &i.Result, &i.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &i)
	}
	return out, rows.Err()
}

// LatestByAnalysis returns the newest insight for one analysis
func (r *InsightRepository) LatestByAnalysis(ctx context.Context, analysisID string) (*domain.Insight, error) {
	const q = `
SELECT id, analysis_id, model, result_json, created_at
FROM codebase_insights
WHERE analysis_id=$1
ORDER BY created_at DESC, id DESC
LIMIT 1;`
	var i domain.Insight
	err := r.db.QueryRowContext(ctx, q, analysisID).Scan(&i.ID, &i.AnalysisID, &i.Model, &i.Result, &i.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}
