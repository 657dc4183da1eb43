package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mikemcg87/archon-codebase-intelligence/internal/config"
)

const version = "0.2.0"

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "archon-codebase",
	Short: "Heuristic codebase analysis service",
	Long: `archon-codebase scans Python codebases and produces a structured
architecture analysis: entry points, tech stack, directory layout,
file and line counts, and a human-readable summary.

It runs as an HTTP API (serve), as an MCP stdio server for AI
assistants (mcp), or as a one-shot scanner (analyze).`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// secrets come from .env in development; missing file is fine
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Path to config.yaml (default: ./config.yaml or CONFIG_PATH)")
}

// loadConfig resolves the config file path from the flag, the CONFIG_PATH
// env var, then ./config.yaml. When no file exists anywhere it falls back
// to env-driven defaults so the CLI works without any setup.
func loadConfig() (*config.Config, error) {
	path := configFlag
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config.yaml"
		if _, err := os.Stat(path); err != nil {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}
