package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9090
database:
  driver: postgres
  host: db.local
  port: 5432
  user: archon
  password: secret
  name: codebase
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" {
		t.Errorf("driver = %s", cfg.Database.Driver)
	}
	if want := "host=db.local port=5432 user=archon password=secret dbname=codebase sslmode=disable"; cfg.PostgresDSN() != want {
		t.Errorf("dsn = %q, want %q", cfg.PostgresDSN(), want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8181 {
		t.Errorf("default port = %d, want 8181", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("default driver = %s, want sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Path != "codebase.db" {
		t.Errorf("default sqlite path = %s", cfg.Database.Path)
	}
	if cfg.MCP.APIURL != "http://localhost:8181" {
		t.Errorf("default MCP API URL = %s", cfg.MCP.APIURL)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg := Default()
	if cfg.Database.Password != "from-env" {
		t.Errorf("password = %q, want env value", cfg.Database.Password)
	}
	if cfg.AI.APIKey != "sk-test" {
		t.Errorf("api key = %q, want env value", cfg.AI.APIKey)
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg := &Config{}
	cfg.Database.User = "u"
	cfg.Database.Password = "p"
	cfg.Database.Host = "h"
	cfg.Database.Port = 3306
	cfg.Database.Name = "d"

	want := "u:p@tcp(h:3306)/d?parseTime=true&charset=utf8mb4&loc=UTC"
	if got := cfg.MySQLDSN(); got != want {
		t.Fatalf("dsn = %q, want %q", got, want)
	}
}
