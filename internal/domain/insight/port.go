package insight

import "context"

// Repository port for persisting and querying insights
type Repository interface {
	Save(ctx context.Context, i *Insight) error
	Paginate(ctx context.Context, page, pageSize int) ([]*Insight, error)
	LatestByAnalysis(ctx context.Context, analysisID string) (*Insight, error)
}

// Client produces a structured review from an analysis record encoded as JSON.
type Client interface {
	Review(ctx context.Context, analysisJSON string) (string, error)
}
