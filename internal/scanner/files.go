package scanner

import (
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
)

// sourceExt is the only extension the scanner recognizes.
const sourceExt = ".py"

// Language is the label used for the single recognized extension.
const Language = "Python"

// ignoreDirs are directory names excluded from file collection wherever they
// appear below the scanned root.
var ignoreDirs = map[string]bool{
	".venv":         true,
	"venv":          true,
	"env":           true,
	"__pycache__":   true,
	".git":          true,
	"node_modules":  true,
	".pytest_cache": true,
	".mypy_cache":   true,
	"dist":          true,
	"build":         true,
	".tox":          true,
}

// CollectFiles walks root and returns every recognized source file, sorted by
// path. Directories from the ignore set are pruned. Unreadable subtrees are
// skipped, never fatal.
func CollectFiles(root string) []string {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("scanner: skipping %s: %v", path, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && ignoreDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), sourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		log.Printf("scanner: walk aborted for %s: %v", root, err)
	}

	sort.Strings(files)
	return files
}
