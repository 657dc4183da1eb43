package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/scanlog"
)

type ScanLogRepository struct {
	db *sql.DB
}

func NewScanLogRepository(db *sql.DB) *ScanLogRepository {
	return &ScanLogRepository{db: db}
}

// Save inserts a failed-operation entry
func (r *ScanLogRepository) Save(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO codebase_scan_errors
  (codebase_path, project_id, phase, message, created_at)
VALUES ($1,$2,$3,$4,$5);`
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, e.CodebasePath, e.ProjectID, e.Phase, e.Message, createdAt)
	return err
}

// ListByPath returns recent entries for one codebase path
func (r *ScanLogRepository) ListByPath(ctx context.Context, codebasePath string, limit int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, codebase_path, project_id, phase, message, created_at
FROM codebase_scan_errors
WHERE codebase_path=$1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, codebasePath, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Entry
	for rows.Next() {
		var e domain.Entry
		var projectID sql.NullString
		if err := rows.Scan(&e.ID, &e.CodebasePath, &projectID, &e.Phase, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ProjectID = projectID.String
		out = append(out, &e)
	}
	return out, rows.Err()
}
