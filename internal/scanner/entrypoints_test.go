package scanner

import (
	"path/filepath"
	"testing"

	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
)

func TestFindEntryPointsBothQuoteStyles(t *testing.T) {
	root := t.TempDir()
	double := filepath.Join(root, "app.py")
	single := filepath.Join(root, "cli.py")
	plain := filepath.Join(root, "lib.py")
	writeFile(t, double, "if __name__ == \"__main__\":\n    main()\n")
	writeFile(t, single, "if __name__ == '__main__':\n    run()\n")
	writeFile(t, plain, "def helper():\n    pass\n")

	entries := FindEntryPoints([]string{double, single, plain}, root)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entry points, got %d: %v", len(entries), entries)
	}
	for _, e := range entries {
		if e.Kind != domain.KindCLIEntry {
			t.Errorf("entry %s: kind = %q, want %q", e.Path, e.Kind, domain.KindCLIEntry)
		}
	}
}

func TestFindEntryPointsOncePerFile(t *testing.T) {
	root := t.TempDir()
	both := filepath.Join(root, "both.py")
	writeFile(t, both,
		"if __name__ == \"__main__\":\n    main()\n# if __name__ == '__main__':\n")

	entries := FindEntryPoints([]string{both}, root)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry point, got %d", len(entries))
	}
}

func TestFindEntryPointsEmptyResultIsNotNil(t *testing.T) {
	root := t.TempDir()
	plain := filepath.Join(root, "lib.py")
	writeFile(t, plain, "def helper():\n    pass\n")

	entries := FindEntryPoints([]string{plain}, root)
	if entries == nil {
		t.Fatal("expected initialized empty slice")
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entry points, got %v", entries)
	}
}

func TestFindEntryPointsRelativePaths(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "tools", "run.py")
	writeFile(t, nested, "if __name__ == '__main__':\n    pass\n")

	entries := FindEntryPoints([]string{nested}, root)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry point, got %d", len(entries))
	}
	if want := filepath.Join("tools", "run.py"); entries[0].Path != want {
		t.Errorf("path = %q, want %q", entries[0].Path, want)
	}
	if want := "Entry point in run.py"; entries[0].Description != want {
		t.Errorf("description = %q, want %q", entries[0].Description, want)
	}
}
