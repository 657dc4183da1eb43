package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mikemcg87/archon-codebase-intelligence/internal/infra/apiclient"
)

// Tool represents one callable tool exposed via MCP
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolHandler handles a tool call and returns the JSON text payload.
type ToolHandler func(params map[string]interface{}) (string, error)

func (s *Server) registerTools() {
	s.tools["codebase_analyze"] = s.handleAnalyze
	s.tools["codebase_get_project_analyses"] = s.handleProjectAnalyses
	s.tools["codebase_get_latest"] = s.handleGetLatest
}

func (s *Server) toolDefinitions() []Tool {
	return []Tool{
		{
			Name: "codebase_analyze",
			Description: "Analyze a codebase to understand its architecture and structure: " +
				"entry points, tech stack, directory layout, file and line counts, and a " +
				"human-readable summary. Useful before making changes to a brownfield project.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"codebase_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute filesystem path to the codebase root directory",
					},
					"project_id": map[string]interface{}{
						"type":        "string",
						"description": "Optional project UUID to associate the analysis with",
					},
				},
				"required": []string{"codebase_path"},
			},
		},
		{
			Name: "codebase_get_project_analyses",
			Description: "Get all previous codebase analyses for a project, newest first. " +
				"Useful for tracking how a codebase has evolved over time.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"project_id": map[string]interface{}{
						"type":        "string",
						"description": "Project UUID",
					},
				},
				"required": []string{"project_id"},
			},
		},
		{
			Name: "codebase_get_latest",
			Description: "Get the most recent analysis for a codebase path without " +
				"triggering a new (potentially slow) scan.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"codebase_path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute filesystem path to the codebase root directory",
					},
				},
				"required": []string{"codebase_path"},
			},
		},
	}
}

func (s *Server) handleAnalyze(params map[string]interface{}) (string, error) {
	codebasePath, _ := params["codebase_path"].(string)
	projectID, _ := params["project_id"].(string)
	if codebasePath == "" {
		return errorPayload("codebase_path is required",
			"Pass the absolute path of the project root directory")
	}

	s.logger.Printf("analyzing codebase at %s", codebasePath)

	result, err := s.api.Analyze(context.Background(), codebasePath, projectID)
	if err != nil {
		return s.classifyAnalyzeError(err)
	}
	return indent(result)
}

func (s *Server) handleProjectAnalyses(params map[string]interface{}) (string, error) {
	projectID, _ := params["project_id"].(string)
	if projectID == "" {
		return errorPayload("project_id is required", "")
	}

	result, err := s.api.ProjectAnalyses(context.Background(), projectID)
	if err != nil {
		return s.classifyQueryError(err, "")
	}
	return indent(result)
}

func (s *Server) handleGetLatest(params map[string]interface{}) (string, error) {
	codebasePath, _ := params["codebase_path"].(string)
	if codebasePath == "" {
		return errorPayload("codebase_path is required",
			"Pass the absolute path of the project root directory")
	}

	result, err := s.api.LatestAnalysis(context.Background(), codebasePath)
	if err != nil {
		return s.classifyQueryError(err,
			"Use codebase_analyze to create a new analysis")
	}
	return indent(result)
}

// classifyAnalyzeError maps API failures onto the distinct payloads the
// assistant surface expects: client errors, timeouts, and server errors each
// carry their own hint.
func (s *Server) classifyAnalyzeError(err error) (string, error) {
	if errors.Is(err, apiclient.ErrTimeout) {
		s.logger.Printf("analysis timeout")
		return errorPayload("Analysis timeout - codebase may be too large or complex",
			"Try analyzing a subdirectory instead of the entire project")
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
		s.logger.Printf("invalid request: %s", apiErr.Detail)
		return errorPayload(apiErr.Detail,
			"Ensure codebase_path is an absolute path to an existing directory")
	}

	s.logger.Printf("analysis failed: %v", err)
	return errorPayload(err.Error(), "")
}

func (s *Server) classifyQueryError(err error, notFoundHint string) (string, error) {
	if errors.Is(err, apiclient.ErrTimeout) {
		return errorPayload("Request timeout", "")
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound && notFoundHint != "" {
		s.logger.Printf("no analysis found")
		return errorPayload("No analysis found for this codebase path", notFoundHint)
	}

	s.logger.Printf("query failed: %v", err)
	return errorPayload(err.Error(), "")
}

func errorPayload(msg, hint string) (string, error) {
	payload := map[string]interface{}{
		"success": false,
		"error":   msg,
	}
	if hint != "" {
		payload["hint"] = hint
	}
	return indent(payload)
}

func indent(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
