package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikemcg87/archon-codebase-intelligence/internal/infra/apiclient"
	"github.com/mikemcg87/archon-codebase-intelligence/internal/infra/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP stdio server for AI assistant integration",
	Long: `Start the Model Context Protocol (MCP) server.

The server communicates over stdio using JSON-RPC 2.0 and proxies tool
calls to the analysis HTTP API. It exposes:

  - codebase_analyze:              run a new analysis of a codebase
  - codebase_get_project_analyses: list past analyses for a project
  - codebase_get_latest:           fetch the latest analysis for a path

This command is typically invoked by an MCP client, not directly.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// stdout carries the protocol, so logs go to stderr
	logger := log.New(os.Stderr, "[mcp] ", log.LstdFlags)
	api := apiclient.New(cfg.MCP.APIURL)

	logger.Printf("starting MCP server, API at %s", cfg.MCP.APIURL)
	return mcp.NewServer(version, api, logger).Start()
}
