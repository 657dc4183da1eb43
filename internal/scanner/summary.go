package scanner

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
)

// Summary composes the deterministic architecture digest: fixed-order
// sentences joined with ". " and a trailing period. Absent sections are
// omitted.
func Summary(a *domain.Analysis) string {
	parts := []string{
		fmt.Sprintf("%s project with %d files (%s lines of code)",
			Language, a.TotalFiles, humanize.Comma(int64(a.TotalLines))),
	}

	if len(a.TechStack.Frameworks) > 0 {
		parts = append(parts, fmt.Sprintf("Uses %s framework", strings.Join(a.TechStack.Frameworks, ", ")))
	}
	if len(a.TechStack.Databases) > 0 {
		parts = append(parts, fmt.Sprintf("Databases: %s", strings.Join(a.TechStack.Databases, ", ")))
	}
	if len(a.EntryPoints) > 0 {
		parts = append(parts, fmt.Sprintf("Found %d entry point(s)", len(a.EntryPoints)))
	}
	if len(a.DirectoryStructure) > 0 {
		parts = append(parts, fmt.Sprintf("%d top-level directories", len(a.DirectoryStructure)))
	}

	return strings.Join(parts, ". ") + "."
}
