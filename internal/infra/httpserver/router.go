package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/mikemcg87/archon-codebase-intelligence/internal/application/analysis"
	appinsight "github.com/mikemcg87/archon-codebase-intelligence/internal/application/insight"
	domain "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/analysis"
	dominsight "github.com/mikemcg87/archon-codebase-intelligence/internal/domain/insight"
	"github.com/mikemcg87/archon-codebase-intelligence/internal/middleware"
)

type Router struct {
	analysisSvc *appanalysis.Service
	insightSvc  *appinsight.Service
}

// NewRouter wires the codebase API. insightSvc may be nil; the insight
// endpoints are only mounted when it is configured.
func NewRouter(analysisSvc *appanalysis.Service, insightSvc *appinsight.Service) http.Handler {
	r := &Router{analysisSvc: analysisSvc, insightSvc: insightSvc}
	mux := chi.NewRouter()

	mux.Route("/api/codebase", func(rt chi.Router) {
		rt.Post("/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/analyses/project/{projectID}", r.wrap(r.handleProjectAnalyses))
		rt.Get("/analyses/latest", r.wrap(r.handleLatest))

		if insightSvc != nil {
			rt.Post("/analyses/{id}/insight", r.wrap(r.handleCreateInsight))
			rt.Get("/insights", r.wrap(r.handleListInsights))
		}
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps domain errors onto the API's error shapes: invalid path → 400
// with hint, missing record → 404 with hint, AI quota → 429, anything
// else → 500.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var pathErr *domain.InvalidPathError
		switch {
		case errors.As(err, &pathErr):
			log.Printf("invalid codebase path: %v", pathErr)
			writeError(w, http.StatusBadRequest, pathErr.Error(), pathErr.Hint)
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error(),
				"Run a new analysis with POST /api/codebase/analyze")
		case errors.Is(err, dominsight.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, err.Error(), "")
		default:
			log.Printf("request failed: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error(), "")
		}
	}
}

// POST /api/codebase/analyze
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		CodebasePath string `json:"codebase_path"`
		ProjectID    string `json:"project_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error(), "")
		return nil
	}
	if err := middleware.ValidateCodebasePath(body.CodebasePath); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(),
			"Ensure codebase_path is an absolute path to an existing directory")
		return nil
	}

	middleware.IncrementAnalyses()
	result, err := r.analysisSvc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		CodebasePath: body.CodebasePath,
		ProjectID:    body.ProjectID,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	return writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"analysis": result,
		"message":  fmt.Sprintf("Analyzed %d files", result.TotalFiles),
	})
}

// GET /api/codebase/analyses/project/{projectID}
func (r *Router) handleProjectAnalyses(w http.ResponseWriter, req *http.Request) error {
	projectID := chi.URLParam(req, "projectID")
	if err := middleware.ValidateProjectID(projectID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "")
		return nil
	}

	analyses, err := r.analysisSvc.ProjectAnalyses(req.Context(), projectID)
	if err != nil {
		return err
	}
	if analyses == nil {
		analyses = []*domain.Analysis{}
	}

	return writeConditionalJSON(w, req, map[string]any{
		"success":  true,
		"analyses": analyses,
		"count":    len(analyses),
	})
}

// GET /api/codebase/analyses/latest?codebase_path=...
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	codebasePath := req.URL.Query().Get("codebase_path")
	if codebasePath == "" {
		writeError(w, http.StatusBadRequest, "codebase_path query parameter is required", "")
		return nil
	}

	a, err := r.analysisSvc.LatestAnalysis(req.Context(), codebasePath)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound,
				fmt.Sprintf("No analysis found for path: %s", codebasePath),
				"Use POST /api/codebase/analyze to create a new analysis")
			return nil
		}
		return err
	}

	return writeConditionalJSON(w, req, map[string]any{
		"success":  true,
		"analysis": a,
		"message":  "Latest analysis retrieved",
	})
}

// POST /api/codebase/analyses/{id}/insight
func (r *Router) handleCreateInsight(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")

	a, err := r.analysisSvc.Get(req.Context(), domain.AnalysisID(id))
	if err != nil {
		return err
	}

	i, err := r.insightSvc.ReviewAndStore(req.Context(), a)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"insight": i,
	})
}

// GET /api/codebase/insights?page=&page_size=
func (r *Router) handleListInsights(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.insightSvc.List(req.Context(), page, middleware.ClampPageSize(size))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*dominsight.Insight{}
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"insights": list,
		"count":    len(list),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// writeConditionalJSON serves the payload with an entity tag; a matching
// If-None-Match yields 304 with no body.
func writeConditionalJSON(w http.ResponseWriter, req *http.Request, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	etag := GenerateETag(body)
	if ETagMatches(req.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(body)
	return err
}

func writeError(w http.ResponseWriter, status int, msg, hint string) {
	resp := map[string]any{
		"success": false,
		"error":   msg,
	}
	if hint != "" {
		resp["hint"] = hint
	}
	_ = writeJSON(w, status, resp)
}
