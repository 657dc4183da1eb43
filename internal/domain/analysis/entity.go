package analysis

import (
	"time"
)

// ID tipe untuk Analysis
type AnalysisID string

// EntryPoint is a source file carrying a run-as-script guard.
type EntryPoint struct {
	Path        string `json:"path"`
	Kind        string `json:"type"`
	Description string `json:"description"`
}

// KindCLIEntry is the only entry-point kind emitted by the scanner.
const KindCLIEntry = "cli_entry"

// DirectoryInfo describes one top-level directory of the scanned tree.
type DirectoryInfo struct {
	Kind      string `json:"type"`
	FileCount int    `json:"file_count"`
}

// TechStack buckets keyword matches from manifest files.
// Lists may contain repeated tags; nothing deduplicates them.
type TechStack struct {
	Frameworks []string `json:"frameworks"`
	Databases  []string `json:"databases"`
	Tools      []string `json:"tools"`
}

// Aggregate Root: Analysis. Immutable once assembled; one record per scan.
type Analysis struct {
	ID                  AnalysisID               `json:"id,omitempty"`
	CodebasePath        string                   `json:"codebase_path"`
	ProjectID           string                   `json:"project_id,omitempty"`
	Timestamp           time.Time                `json:"analysis_timestamp"`
	TotalFiles          int                      `json:"total_files"`
	TotalLines          int                      `json:"total_lines"`
	Languages           map[string]int           `json:"languages"`
	EntryPoints         []EntryPoint             `json:"entry_points"`
	DirectoryStructure  map[string]DirectoryInfo `json:"directory_structure"`
	TechStack           TechStack                `json:"tech_stack"`
	ArchitectureSummary string                   `json:"architecture_summary"`
	ReportURL           string                   `json:"report_url,omitempty"`
}
