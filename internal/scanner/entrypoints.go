package scanner

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
)

const (
	mainGuardDouble = `if __name__ == "__main__"`
	mainGuardSingle = `if __name__ == '__main__'`
)

// FindEntryPoints records every file whose text contains the run-as-script
// guard in either quote style. Paths are relative to root; order follows the
// (sorted) file list. Unreadable files are skipped.
func FindEntryPoints(files []string, root string) []domain.EntryPoint {
	// non-nil so a guard-less tree serializes as [] rather than null
	entries := []domain.EntryPoint{}

	for _, f := range files {
		content, ok := readText(f)
		if !ok {
			continue
		}
		text := string(content)
		if !strings.Contains(text, mainGuardDouble) && !strings.Contains(text, mainGuardSingle) {
			continue
		}

		rel, err := filepath.Rel(root, f)
		if err != nil {
			log.Printf("scanner: could not relativize %s under %s: %v", f, root, err)
			rel = f
		}
		entries = append(entries, domain.EntryPoint{
			Path:        rel,
			Kind:        domain.KindCLIEntry,
			Description: fmt.Sprintf("Entry point in %s", filepath.Base(f)),
		})
	}

	return entries
}
