package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
)

// AnalysisRepository keeps records in process memory. Used by the one-shot
// CLI when no database is configured, and by tests.
type AnalysisRepository struct {
	mu      sync.RWMutex
	records []*domain.Analysis
}

func NewAnalysisRepository() *AnalysisRepository {
	return &AnalysisRepository{}
}

func (r *AnalysisRepository) Save(_ context.Context, a *domain.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *a
	r.records = append(r.records, &copied)
	return nil
}

func (r *AnalysisRepository) Get(_ context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.records {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *AnalysisRepository) ByProject(_ context.Context, projectID string) ([]*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Analysis
	for _, a := range r.records {
		if a.ProjectID == projectID {
			copied := *a
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *AnalysisRepository) LatestByPath(_ context.Context, codebasePath string) (*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *domain.Analysis
	for _, a := range r.records {
		if a.CodebasePath != codebasePath {
			continue
		}
		if latest == nil || a.Timestamp.After(latest.Timestamp) {
			latest = a
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}
