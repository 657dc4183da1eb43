package scanner

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestDetectTechStackRequirements(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "requirements.txt"),
		"fastapi==0.110.0\npsycopg2-binary\npytest\n")

	stack := DetectTechStack(root)
	if !reflect.DeepEqual(stack.Frameworks, []string{"FastAPI"}) {
		t.Errorf("frameworks = %v, want [FastAPI]", stack.Frameworks)
	}
	if !reflect.DeepEqual(stack.Databases, []string{"PostgreSQL"}) {
		t.Errorf("databases = %v, want [PostgreSQL]", stack.Databases)
	}
	if !reflect.DeepEqual(stack.Tools, []string{"pytest"}) {
		t.Errorf("tools = %v, want [pytest]", stack.Tools)
	}
}

func TestDetectTechStackCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "requirements.txt"), "FastAPI\nFlask\nDjango\n")

	stack := DetectTechStack(root)
	want := []string{"FastAPI", "Flask", "Django"}
	if !reflect.DeepEqual(stack.Frameworks, want) {
		t.Errorf("frameworks = %v, want %v", stack.Frameworks, want)
	}
}

// sqlite in requirements and Poetry in pyproject land in separate buckets;
// the Docker tag comes from file presence alone.
func TestDetectTechStackManifestsAndDocker(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "requirements.txt"), "aiosqlite\nchromadb\n")
	writeFile(t, filepath.Join(root, "pyproject.toml"), "[tool.poetry]\nname = \"x\"\n")
	writeFile(t, filepath.Join(root, "Dockerfile"), "FROM python:3.12\n")

	stack := DetectTechStack(root)
	if !reflect.DeepEqual(stack.Databases, []string{"ChromaDB", "SQLite"}) {
		t.Errorf("databases = %v, want [ChromaDB SQLite]", stack.Databases)
	}
	if !reflect.DeepEqual(stack.Tools, []string{"Poetry", "Docker"}) {
		t.Errorf("tools = %v, want [Poetry Docker]", stack.Tools)
	}
}

func TestDetectTechStackNoManifests(t *testing.T) {
	stack := DetectTechStack(t.TempDir())
	if len(stack.Frameworks) != 0 || len(stack.Databases) != 0 || len(stack.Tools) != 0 {
		t.Fatalf("expected empty stack, got %+v", stack)
	}
	// slices stay non-nil so they serialize as [] rather than null
	if stack.Frameworks == nil || stack.Databases == nil || stack.Tools == nil {
		t.Fatal("expected initialized empty slices")
	}
}
