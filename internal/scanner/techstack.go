package scanner

import (
	"os"
	"path/filepath"
	"strings"

	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
)

// keyword→tag tables for the dependency-list manifest. Pure substring
// heuristics; matched tags are appended as-is, duplicates included.
var (
	requirementsFrameworks = []struct{ keyword, tag string }{
		{"fastapi", "FastAPI"},
		{"flask", "Flask"},
		{"django", "Django"},
	}
	requirementsDatabases = []struct{ keyword, tag string }{
		{"chromadb", "ChromaDB"},
		{"sqlite", "SQLite"},
	}
	pyprojectTools = []struct{ keyword, tag string }{
		{"poetry", "Poetry"},
		{"uv", "uv"},
	}
)

// DetectTechStack reads the well-known manifest files under root and buckets
// keyword matches into frameworks, databases, and tools. Missing or
// unreadable manifests are skipped without error.
func DetectTechStack(root string) domain.TechStack {
	stack := domain.TechStack{
		Frameworks: []string{},
		Databases:  []string{},
		Tools:      []string{},
	}

	if content, ok := readManifest(filepath.Join(root, "requirements.txt")); ok {
		for _, m := range requirementsFrameworks {
			if strings.Contains(content, m.keyword) {
				stack.Frameworks = append(stack.Frameworks, m.tag)
			}
		}
		if strings.Contains(content, "postgresql") || strings.Contains(content, "psycopg") {
			stack.Databases = append(stack.Databases, "PostgreSQL")
		}
		for _, m := range requirementsDatabases {
			if strings.Contains(content, m.keyword) {
				stack.Databases = append(stack.Databases, m.tag)
			}
		}
		if strings.Contains(content, "pytest") {
			stack.Tools = append(stack.Tools, "pytest")
		}
	}

	if content, ok := readManifest(filepath.Join(root, "pyproject.toml")); ok {
		for _, m := range pyprojectTools {
			if strings.Contains(content, m.keyword) {
				stack.Tools = append(stack.Tools, m.tag)
			}
		}
	}

	if fileExists(filepath.Join(root, "Dockerfile")) || fileExists(filepath.Join(root, "docker-compose.yml")) {
		stack.Tools = append(stack.Tools, "Docker")
	}

	return stack
}

// readManifest returns the lowercased file content for case-insensitive
// keyword matching. Absent manifests are not an error.
func readManifest(path string) (string, bool) {
	if !fileExists(path) {
		return "", false
	}
	content, ok := readText(path)
	if !ok {
		return "", false
	}
	return strings.ToLower(string(content)), true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
