package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mikemcg87/archon-codebase-intelligence/internal/infra/apiclient"
)

func newTestServer(apiURL string) *Server {
	logger := log.New(io.Discard, "", 0)
	return NewServer("test", apiclient.New(apiURL), logger)
}

// runSession feeds newline-delimited requests through the server and returns
// the decoded responses.
func runSession(t *testing.T, s *Server, requests ...string) []Message {
	t.Helper()
	var out bytes.Buffer
	s.SetStdin(strings.NewReader(strings.Join(requests, "\n") + "\n"))
	s.SetStdout(&out)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	var responses []Message
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var msg Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			t.Fatalf("decoding response %q: %v", line, err)
		}
		responses = append(responses, msg)
	}
	return responses
}

func TestInitialize(t *testing.T) {
	s := newTestServer("http://localhost:0")
	responses := runSession(t, s,
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`)

	if len(responses) != 1 {
		t.Fatalf("expected 1 response, got %d", len(responses))
	}
	resp := responses[0]
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result type %T", resp.Result)
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion = %v", result["protocolVersion"])
	}
	info, _ := result["serverInfo"].(map[string]interface{})
	if info["name"] != "archon-codebase" {
		t.Errorf("server name = %v", info["name"])
	}
}

func TestToolsList(t *testing.T) {
	s := newTestServer("http://localhost:0")
	responses := runSession(t, s,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)

	result, ok := responses[0].Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result type %T", responses[0].Result)
	}
	tools, ok := result["tools"].([]interface{})
	if !ok {
		t.Fatalf("tools type %T", result["tools"])
	}
	if len(tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(tools))
	}

	names := map[string]bool{}
	for _, raw := range tools {
		tool := raw.(map[string]interface{})
		names[tool["name"].(string)] = true
		if tool["inputSchema"] == nil {
			t.Errorf("tool %v missing input schema", tool["name"])
		}
	}
	for _, want := range []string{"codebase_analyze", "codebase_get_project_analyses", "codebase_get_latest"} {
		if !names[want] {
			t.Errorf("missing tool %s", want)
		}
	}
}

func TestNotificationsProduceNoResponse(t *testing.T) {
	s := newTestServer("http://localhost:0")
	responses := runSession(t, s,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/list"}`)

	if len(responses) != 1 {
		t.Fatalf("expected 1 response (notification skipped), got %d", len(responses))
	}
	if responses[0].Id != float64(3) {
		t.Errorf("response id = %v, want 3", responses[0].Id)
	}
}

func TestUnknownMethod(t *testing.T) {
	s := newTestServer("http://localhost:0")
	responses := runSession(t, s,
		`{"jsonrpc":"2.0","id":4,"method":"resources/list"}`)

	if responses[0].Error == nil {
		t.Fatal("expected error response")
	}
	if responses[0].Error.Code != MethodNotFound {
		t.Errorf("code = %d, want %d", responses[0].Error.Code, MethodNotFound)
	}
}

func TestCallUnknownTool(t *testing.T) {
	s := newTestServer("http://localhost:0")
	responses := runSession(t, s,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"nope","arguments":{}}}`)

	if responses[0].Error == nil || responses[0].Error.Code != MethodNotFound {
		t.Fatalf("expected MethodNotFound, got %+v", responses[0].Error)
	}
}

// toolText extracts the text payload from a tools/call result.
func toolText(t *testing.T, msg Message) string {
	t.Helper()
	result, ok := msg.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result type %T (error: %+v)", msg.Result, msg.Error)
	}
	content := result["content"].([]interface{})
	first := content[0].(map[string]interface{})
	if first["type"] != "text" {
		t.Fatalf("content type = %v", first["type"])
	}
	return first["text"].(string)
}

func TestCallAnalyzeTool(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"Analyzed 2 files"}`))
	}))
	defer api.Close()

	s := newTestServer(api.URL)
	responses := runSession(t, s,
		`{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"codebase_analyze","arguments":{"codebase_path":"/proj"}}}`)

	text := toolText(t, responses[0])
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("tool payload not JSON: %v", err)
	}
	if payload["success"] != true {
		t.Errorf("success = %v", payload["success"])
	}
}

func TestCallAnalyzeToolBadPath(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"error":"Path does not exist: /nope"}`))
	}))
	defer api.Close()

	s := newTestServer(api.URL)
	responses := runSession(t, s,
		`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"codebase_analyze","arguments":{"codebase_path":"/nope"}}}`)

	text := toolText(t, responses[0])
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("tool payload not JSON: %v", err)
	}
	if payload["success"] != false {
		t.Errorf("success = %v", payload["success"])
	}
	if payload["error"] != "Path does not exist: /nope" {
		t.Errorf("error = %v", payload["error"])
	}
	if hint, _ := payload["hint"].(string); !strings.Contains(hint, "absolute path") {
		t.Errorf("hint = %v", payload["hint"])
	}
}

func TestCallGetLatestNotFound(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"No analysis found for path: /proj"}`))
	}))
	defer api.Close()

	s := newTestServer(api.URL)
	responses := runSession(t, s,
		`{"jsonrpc":"2.0","id":8,"method":"tools/call","params":{"name":"codebase_get_latest","arguments":{"codebase_path":"/proj"}}}`)

	text := toolText(t, responses[0])
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("tool payload not JSON: %v", err)
	}
	if hint, _ := payload["hint"].(string); !strings.Contains(hint, "codebase_analyze") {
		t.Errorf("hint = %v", payload["hint"])
	}
}

func TestCallToolMissingArgument(t *testing.T) {
	s := newTestServer("http://localhost:0")
	responses := runSession(t, s,
		`{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"codebase_analyze"}}`)

	text := toolText(t, responses[0])
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		t.Fatalf("tool payload not JSON: %v", err)
	}
	if payload["success"] != false {
		t.Errorf("success = %v", payload["success"])
	}
	if payload["error"] != "codebase_path is required" {
		t.Errorf("error = %v", payload["error"])
	}
}
