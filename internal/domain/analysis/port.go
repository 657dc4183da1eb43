package analysis

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, id AnalysisID) (*Analysis, error)
	ByProject(ctx context.Context, projectID string) ([]*Analysis, error)
	LatestByPath(ctx context.Context, codebasePath string) (*Analysis, error)
}

// ReportStore port (interface untuk penyimpanan report artefak)
type ReportStore interface {
	UploadReport(ctx context.Context, key string, data []byte) (string, error)
}
