package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mikemcg87/archon-codebase-intelligence/internal/application"
	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
	"github.com/mikemcg87/archon-codebase-intelligence/internal/domain/scanlog"
	"github.com/mikemcg87/archon-codebase-intelligence/internal/infra/db/memory"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestService() *Service {
	return &Service{
		Repo:  memory.NewAnalysisRepository(),
		Clock: fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestAnalyzePipeline(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"),
		"import lib.utils\n\nif __name__ == \"__main__\":\n    lib.utils.run()")
	writeFile(t, filepath.Join(root, "lib", "utils.py"),
		"def run():\n    pass\n\n\ndef helper():\n    pass\n")

	svc := newTestService()
	a, err := svc.Analyze(context.Background(), AnalyzeCommand{
		CodebasePath: root,
		ProjectID:    "proj-1",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if a.TotalFiles != 2 {
		t.Errorf("total files = %d, want 2", a.TotalFiles)
	}
	if a.TotalLines != 10 {
		t.Errorf("total lines = %d, want 10", a.TotalLines)
	}
	if got := a.Languages["Python"]; got != 2 {
		t.Errorf("Python file count = %d, want 2", got)
	}
	if len(a.EntryPoints) != 1 || a.EntryPoints[0].Path != "app.py" {
		t.Errorf("entry points = %v, want app.py only", a.EntryPoints)
	}
	if lib := a.DirectoryStructure["lib"]; lib.FileCount != 1 {
		t.Errorf("lib file count = %d, want 1", lib.FileCount)
	}
	if !a.Timestamp.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("timestamp = %v, want fixed clock value", a.Timestamp)
	}
	if a.ArchitectureSummary == "" {
		t.Error("expected non-empty architecture summary")
	}

	// record is retrievable through the repo
	stored, err := svc.Get(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.CodebasePath != a.CodebasePath {
		t.Errorf("stored path = %q, want %q", stored.CodebasePath, a.CodebasePath)
	}
}

func TestAnalyzeEmptySectionsSerializeAsArrays(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "lib.py"), "def helper():\n    pass\n")

	svc := newTestService()
	a, err := svc.Analyze(context.Background(), AnalyzeCommand{CodebasePath: root})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	body, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(body), `"entry_points":null`) {
		t.Fatalf("entry_points serialized as null: %s", body)
	}
	if !strings.Contains(string(body), `"entry_points":[]`) {
		t.Errorf("expected empty entry_points array: %s", body)
	}
	for _, bucket := range []string{"frameworks", "databases", "tools"} {
		if !strings.Contains(string(body), `"`+bucket+`":[]`) {
			t.Errorf("expected empty %s array: %s", bucket, body)
		}
	}
}

func TestAnalyzePathNotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.Analyze(context.Background(), AnalyzeCommand{
		CodebasePath: filepath.Join(t.TempDir(), "nope"),
	})

	var perr *domain.InvalidPathError
	if !errors.As(err, &perr) {
		t.Fatalf("expected InvalidPathError, got %v", err)
	}
	if perr.Hint == "" {
		t.Error("expected a hint on the path error")
	}
}

func TestAnalyzePathNotDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "single.py")
	writeFile(t, file, "x = 1\n")

	svc := newTestService()
	_, err := svc.Analyze(context.Background(), AnalyzeCommand{CodebasePath: file})

	var perr *domain.InvalidPathError
	if !errors.As(err, &perr) {
		t.Fatalf("expected InvalidPathError, got %v", err)
	}
}

type notStoringRepo struct {
	domain.Repository
}

func (notStoringRepo) Save(ctx context.Context, a *domain.Analysis) error {
	return domain.ErrNotStored
}

func TestAnalyzeReturnsRecordWhenNotStored(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "x = 1\n")

	svc := &Service{Repo: notStoringRepo{}, Clock: application.SystemClock{}}
	a, err := svc.Analyze(context.Background(), AnalyzeCommand{CodebasePath: root})
	if err != nil {
		t.Fatalf("expected in-memory record despite ErrNotStored, got %v", err)
	}
	if a.TotalFiles != 1 {
		t.Errorf("total files = %d, want 1", a.TotalFiles)
	}
}

type failingRepo struct {
	domain.Repository
}

func (failingRepo) Save(ctx context.Context, a *domain.Analysis) error {
	return errors.New("connection refused")
}

type capturingLog struct {
	entries []*scanlog.Entry
}

func (l *capturingLog) Save(ctx context.Context, e *scanlog.Entry) error {
	l.entries = append(l.entries, e)
	return nil
}

func (l *capturingLog) ListByPath(ctx context.Context, path string, limit int) ([]*scanlog.Entry, error) {
	return l.entries, nil
}

func TestAnalyzeRecordsPersistFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "x = 1\n")

	errLog := &capturingLog{}
	svc := &Service{Repo: failingRepo{}, ErrorLog: errLog, Clock: application.SystemClock{}}

	_, err := svc.Analyze(context.Background(), AnalyzeCommand{CodebasePath: root})
	if err == nil {
		t.Fatal("expected persistence error")
	}
	if len(errLog.entries) != 1 {
		t.Fatalf("expected 1 error log entry, got %d", len(errLog.entries))
	}
	if errLog.entries[0].Phase != "persist" {
		t.Errorf("phase = %q, want persist", errLog.entries[0].Phase)
	}
}

type fakeReports struct {
	key string
}

func (f *fakeReports) UploadReport(ctx context.Context, key string, data []byte) (string, error) {
	f.key = key
	return "http://store.local/" + key, nil
}

func TestAnalyzeUploadsReport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app.py"), "x = 1\n")

	reports := &fakeReports{}
	svc := newTestService()
	svc.Reports = reports

	a, err := svc.Analyze(context.Background(), AnalyzeCommand{CodebasePath: root})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if a.ReportURL == "" {
		t.Fatal("expected report URL to be set")
	}
	if want := "reports/2025-06-01/" + string(a.ID) + ".json"; reports.key != want {
		t.Errorf("report key = %q, want %q", reports.key, want)
	}
}
