package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/mikemcg87/archon-codebase-intelligence/internal/application"
	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
	"github.com/mikemcg87/archon-codebase-intelligence/internal/domain/scanlog"
	"github.com/mikemcg87/archon-codebase-intelligence/internal/scanner"
)

// Service implements the codebase-analysis use-cases. One scan runs to
// completion per call; there is no coordination between concurrent scans of
// the same path, each invocation persists its own record.
type Service struct {
	Repo     domain.Repository
	Reports  domain.ReportStore // optional
	ErrorLog scanlog.Repository // optional
	Clock    application.Clock
}

// AnalyzeCommand carries the inputs of one scan.
type AnalyzeCommand struct {
	CodebasePath string
	ProjectID    string
}

// Analyze validates the target path, runs the scan pipeline, assembles the
// record and persists it. When the repository reports no stored row the
// in-memory record is returned with a warning; any other persistence failure
// propagates.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*domain.Analysis, error) {
	log.Printf("starting codebase analysis for: %s", cmd.CodebasePath)

	root, err := filepath.Abs(cmd.CodebasePath)
	if err != nil {
		root = cmd.CodebasePath
	}

	info, err := os.Stat(root)
	if err != nil {
		perr := domain.NewPathNotFoundError(cmd.CodebasePath, scanner.InContainer())
		s.recordFailure(cmd, "validate", perr.Error())
		return nil, perr
	}
	if !info.IsDir() {
		perr := domain.NewNotDirectoryError(cmd.CodebasePath)
		s.recordFailure(cmd, "validate", perr.Error())
		return nil, perr
	}

	files := scanner.CollectFiles(root)
	log.Printf("found %d source files under %s", len(files), root)

	a := &domain.Analysis{
		ID:           domain.AnalysisID(uuid.New().String()),
		CodebasePath: root,
		ProjectID:    cmd.ProjectID,
		Timestamp:    s.Clock.Now(),
		TotalFiles:   len(files),
		Languages:    map[string]int{scanner.Language: len(files)},
		TotalLines:   scanner.CountLines(files),
		EntryPoints:  scanner.FindEntryPoints(files, root),
	}
	a.DirectoryStructure = scanner.AnalyzeStructure(root)
	a.TechStack = scanner.DetectTechStack(root)
	a.ArchitectureSummary = scanner.Summary(a)

	s.uploadReport(ctx, a)

	if err := s.Repo.Save(ctx, a); err != nil {
		if errors.Is(err, domain.ErrNotStored) {
			log.Printf("warning: analysis completed but not stored in database")
			return a, nil
		}
		s.recordFailure(cmd, "persist", err.Error())
		return nil, fmt.Errorf("storing analysis: %w", err)
	}

	log.Printf("codebase analysis complete and stored with ID: %s", a.ID)
	return a, nil
}

// ProjectAnalyses returns every analysis for a project, newest first.
func (s *Service) ProjectAnalyses(ctx context.Context, projectID string) ([]*domain.Analysis, error) {
	return s.Repo.ByProject(ctx, projectID)
}

// LatestAnalysis returns the most recent analysis for an exact codebase path,
// or domain.ErrNotFound.
func (s *Service) LatestAnalysis(ctx context.Context, codebasePath string) (*domain.Analysis, error) {
	return s.Repo.LatestByPath(ctx, codebasePath)
}

// Get fetches one analysis by ID.
func (s *Service) Get(ctx context.Context, id domain.AnalysisID) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, id)
}

// uploadReport exports the record as a JSON artifact when a report store is
// configured. Failure only logs; the scan result stands on its own.
func (s *Service) uploadReport(ctx context.Context, a *domain.Analysis) {
	if s.Reports == nil {
		return
	}
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		log.Printf("warning: could not marshal report for %s: %v", a.ID, err)
		return
	}
	key := fmt.Sprintf("reports/%s/%s.json", a.Timestamp.Format("2006-01-02"), a.ID)
	url, err := s.Reports.UploadReport(ctx, key, data)
	if err != nil {
		log.Printf("warning: report upload failed for %s: %v", a.ID, err)
		return
	}
	a.ReportURL = url
}

// recordFailure persists a failed operation for audit when an error log is
// wired. Best effort only.
func (s *Service) recordFailure(cmd AnalyzeCommand, phase, message string) {
	if s.ErrorLog == nil {
		return
	}
	entry := &scanlog.Entry{
		CodebasePath: cmd.CodebasePath,
		ProjectID:    cmd.ProjectID,
		Phase:        phase,
		Message:      message,
		CreatedAt:    s.Clock.Now(),
	}
	if err := s.ErrorLog.Save(context.Background(), entry); err != nil {
		log.Printf("warning: could not record scan failure: %v", err)
	}
}
