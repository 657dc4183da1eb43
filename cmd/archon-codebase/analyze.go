package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikemcg87/archon-codebase-intelligence/internal/application"
	appanalysis "github.com/mikemcg87/archon-codebase-intelligence/internal/application/analysis"
	"github.com/mikemcg87/archon-codebase-intelligence/internal/infra/db/memory"
)

var analyzeProject string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <path>",
	Short: "Analyze a codebase once and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeProject, "project", "",
		"Project ID to associate the analysis with")
}

// runAnalyze runs the scan pipeline against an in-memory repository; nothing
// is persisted. Useful for inspecting a tree without a running server.
func runAnalyze(cmd *cobra.Command, args []string) error {
	svc := &appanalysis.Service{
		Repo:  memory.NewAnalysisRepository(),
		Clock: application.SystemClock{},
	}

	result, err := svc.Analyze(cmd.Context(), appanalysis.AnalyzeCommand{
		CodebasePath: args[0],
		ProjectID:    analyzeProject,
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
