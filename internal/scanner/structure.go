package scanner

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
)

// AnalyzeStructure maps each non-hidden top-level directory to its recursive
// source-file count. Enumeration failure returns whatever was accumulated;
// it never aborts the scan. Note the per-directory count intentionally does
// not apply the ignore set, matching the collection heuristics' asymmetry.
func AnalyzeStructure(root string) map[string]domain.DirectoryInfo {
	structure := make(map[string]domain.DirectoryInfo)

	entries, err := os.ReadDir(root)
	if err != nil {
		log.Printf("scanner: error analyzing directory structure of %s: %v", root, err)
		return structure
	}

	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		structure[entry.Name()] = domain.DirectoryInfo{
			Kind:      "directory",
			FileCount: countSourceFiles(filepath.Join(root, entry.Name())),
		}
	}

	return structure
}

func countSourceFiles(dir string) int {
	count := 0
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("scanner: skipping %s: %v", path, err)
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), sourceExt) {
			count++
		}
		return nil
	})
	return count
}
