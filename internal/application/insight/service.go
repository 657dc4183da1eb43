package insight

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mikemcg87/archon-codebase-intelligence/internal/application"
	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
	insights "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/insight"
)

// Service runs the AI review over a stored analysis and persists the result.
type Service struct {
	Repo   insights.Repository
	Client insights.Client
	Model  string
	Clock  application.Clock
}

func NewService(repo insights.Repository, client insights.Client, model string) *Service {
	return &Service{Repo: repo, Client: client, Model: model, Clock: application.SystemClock{}}
}

// ReviewAndStore encodes the analysis, asks the client for a structured
// review, and stores the resulting insight.
func (s *Service) ReviewAndStore(ctx context.Context, a *domain.Analysis) (*insights.Insight, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encoding analysis %s: %w", a.ID, err)
	}

	result, err := s.Client.Review(ctx, string(payload))
	if err != nil {
		return nil, err
	}

	i := &insights.Insight{
		ID:         insights.InsightID(uuid.New().String()),
		AnalysisID: string(a.ID),
		Model:      s.Model,
		Result:     result,
		CreatedAt:  s.Clock.Now(),
	}
	if err := s.Repo.Save(ctx, i); err != nil {
		return nil, fmt.Errorf("storing insight: %w", err)
	}
	return i, nil
}

// List returns a page of stored insights, newest first.
func (s *Service) List(ctx context.Context, page, pageSize int) ([]*insights.Insight, error) {
	return s.Repo.Paginate(ctx, page, pageSize)
}

// LatestForAnalysis returns the newest insight for one analysis.
func (s *Service) LatestForAnalysis(ctx context.Context, analysisID string) (*insights.Insight, error) {
	return s.Repo.LatestByAnalysis(ctx, analysisID)
}
