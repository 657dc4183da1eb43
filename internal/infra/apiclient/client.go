package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrTimeout marks a request that exceeded its deadline; the tool surface
// turns it into its own hint.
var ErrTimeout = errors.New("request timed out")

// APIError carries a non-2xx response from the analysis API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Detail)
}

// Client talks to the analysis HTTP API. Analyze gets an extended timeout
// since large trees take a while; the read endpoints use a short one.
type Client struct {
	baseURL string
	http    *http.Client
	analyze *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		analyze: &http.Client{Timeout: 120 * time.Second},
	}
}

// Analyze triggers a new scan.
func (c *Client) Analyze(ctx context.Context, codebasePath, projectID string) (map[string]any, error) {
	body, _ := json.Marshal(map[string]any{
		"codebase_path": codebasePath,
		"project_id":    projectID,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/codebase/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(c.analyze, req)
}

// ProjectAnalyses lists every analysis of a project.
func (c *Client) ProjectAnalyses(ctx context.Context, projectID string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/codebase/analyses/project/"+url.PathEscape(projectID), nil)
	if err != nil {
		return nil, err
	}
	return c.do(c.http, req)
}

// LatestAnalysis fetches the most recent analysis for a path.
func (c *Client) LatestAnalysis(ctx context.Context, codebasePath string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/codebase/analyses/latest?codebase_path="+url.QueryEscape(codebasePath), nil)
	if err != nil {
		return nil, err
	}
	return c.do(c.http, req)
}

func (c *Client) do(hc *http.Client, req *http.Request) (map[string]any, error) {
	resp, err := hc.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Detail: errorDetail(raw)}
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return out, nil
}

// errorDetail extracts the error field from a JSON error body, falling back
// to the raw text.
func errorDetail(raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
