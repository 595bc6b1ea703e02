// Package service exposes the matching engine over HTTP: ranked matching
// against the in-memory catalog, and ad-hoc matching against an inline
// candidate table.
package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/brucee63/namematch/internal/catalog"
	"github.com/brucee63/namematch/internal/dictionary"
	"github.com/brucee63/namematch/internal/match"
	"github.com/brucee63/namematch/internal/table"
	"github.com/brucee63/namematch/pkg/config"
	apperrors "github.com/brucee63/namematch/pkg/errors"
	"github.com/brucee63/namematch/pkg/logger"
	"github.com/brucee63/namematch/pkg/metrics"
	"github.com/brucee63/namematch/pkg/middleware"
	"github.com/brucee63/namematch/pkg/tracing"
)

// Handler serves the matching endpoints.
type Handler struct {
	store   *catalog.Store
	dict    dictionary.Provider
	metrics *metrics.Metrics
	cfg     config.MatchingConfig
	logger  *slog.Logger
}

// New creates a Handler. m may be nil to disable metric recording.
func New(store *catalog.Store, dict dictionary.Provider, m *metrics.Metrics, cfg config.MatchingConfig) *Handler {
	if dict == nil {
		dict = dictionary.Static(nil)
	}
	return &Handler{
		store:   store,
		dict:    dict,
		metrics: m,
		cfg:     cfg,
		logger:  slog.Default().With("component", "match-handler"),
	}
}

// Match handles GET /api/v1/match: ranked matching of the q parameter
// against the catalog's match column.
func (h *Handler) Match(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	log := logger.FromContext(ctx)

	query := r.URL.Query().Get("q")
	if query == "" {
		h.writeError(w, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	methodParam := r.URL.Query().Get("method")
	if methodParam == "" {
		methodParam = h.cfg.DefaultMethod
	}
	method, err := match.ParseMethod(methodParam)
	if err != nil {
		h.recordOutcome(methodParam, "invalid")
		h.writeError(w, apperrors.HTTPStatusCode(err), err.Error())
		return
	}

	topN := h.cfg.DefaultTopN
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			h.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		if h.cfg.MaxTopN > 0 && parsed > h.cfg.MaxTopN {
			parsed = h.cfg.MaxTopN
		}
		topN = parsed
	}

	column := h.cfg.Column
	if c := r.URL.Query().Get("column"); c != "" {
		column = c
	}

	result, err := h.rank(r, query, h.store.Snapshot(), column, h.dict.Dict(), topN, method)
	if err != nil {
		status := apperrors.HTTPStatusCode(err)
		outcome := "error"
		if status == http.StatusBadRequest {
			outcome = "invalid"
		}
		h.recordOutcome(string(method), outcome)
		log.Error("match failed", "query", query, "match_method", method, "error", err)
		h.writeError(w, status, err.Error())
		return
	}

	h.recordResult(result, time.Since(start))
	log.Info("match completed",
		"query", query,
		"match_method", method,
		"evaluated", result.Evaluated,
		"returned", len(result.Matches),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, buildResponse(result))
}

// inlineRequest is the JSON body of POST /api/v1/match.
type inlineRequest struct {
	Query      string              `json:"query"`
	Column     string              `json:"column"`
	Method     string              `json:"method,omitempty"`
	TopN       int                 `json:"top_n,omitempty"`
	Acronyms   map[string]string   `json:"acronyms,omitempty"`
	Candidates []map[string]string `json:"candidates"`
}

// MatchInline handles POST /api/v1/match: ranked matching against a
// candidate table supplied in the request body instead of the catalog.
func (h *Handler) MatchInline(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := logger.FromContext(r.Context())

	var req inlineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Query == "" {
		h.writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	if req.Column == "" {
		h.writeError(w, http.StatusBadRequest, "column is required")
		return
	}

	method, err := match.ParseMethod(req.Method)
	if err != nil {
		h.recordOutcome(req.Method, "invalid")
		h.writeError(w, apperrors.HTTPStatusCode(err), err.Error())
		return
	}

	topN := req.TopN
	if topN == 0 {
		topN = h.cfg.DefaultTopN
	}
	if topN < 0 {
		h.writeError(w, http.StatusBadRequest, "top_n must be a positive integer")
		return
	}
	if h.cfg.MaxTopN > 0 && topN > h.cfg.MaxTopN {
		topN = h.cfg.MaxTopN
	}

	rows := make([]table.Row, len(req.Candidates))
	for i, fields := range req.Candidates {
		rows[i] = table.Row(fields)
	}

	result, err := h.rank(r, req.Query, table.New(rows), req.Column, req.Acronyms, topN, method)
	if err != nil {
		status := apperrors.HTTPStatusCode(err)
		outcome := "error"
		if status == http.StatusBadRequest {
			outcome = "invalid"
		}
		h.recordOutcome(string(method), outcome)
		log.Error("inline match failed", "query", req.Query, "match_method", method, "error", err)
		h.writeError(w, status, err.Error())
		return
	}

	h.recordResult(result, time.Since(start))
	log.Info("inline match completed",
		"query", req.Query,
		"match_method", method,
		"evaluated", result.Evaluated,
		"returned", len(result.Matches),
		"latency_ms", time.Since(start).Milliseconds(),
	)
	h.writeJSON(w, http.StatusOK, buildResponse(result))
}

// rank runs TopN inside a tracing span.
func (h *Handler) rank(r *http.Request, query string, tbl *table.Table, column string, acronyms map[string]string, topN int, method match.Method) (*match.Result, error) {
	_, span := tracing.StartSpan(r.Context(), "match.rank", middleware.GetRequestID(r.Context()))
	span.SetAttr("match_method", string(method))
	span.SetAttr("candidates", tbl.Len())
	result, err := match.TopN(query, tbl, column, acronyms, topN, method)
	if err == nil {
		span.SetAttr("returned", len(result.Matches))
	}
	span.End()
	span.Log()
	return result, err
}

type matchResponse struct {
	Query   string           `json:"query"`
	Method  string           `json:"method"`
	Total   int              `json:"total_candidates"`
	Results []map[string]any `json:"results"`
}

// buildResponse serialises ranked matches, adding the scorer-scoped score and
// best-form fields next to each row's own fields.
func buildResponse(result *match.Result) matchResponse {
	resp := matchResponse{
		Query:   result.Query,
		Method:  string(result.Method),
		Total:   result.Evaluated,
		Results: make([]map[string]any, 0, len(result.Matches)),
	}
	for _, m := range result.Matches {
		row := make(map[string]any, len(m.Row)+3)
		for k, v := range m.Row {
			row[k] = v
		}
		switch result.Method {
		case match.MethodNGram:
			row["ngram_score"] = m.Score
			row["best_ngram_form"] = m.BestForm
		case match.MethodPhonetic:
			row["phonetic_match"] = int(m.Score)
			row["best_phonetic_form"] = m.BestForm
		case match.MethodLevenshtein:
			row["levenshtein_score"] = m.Score
			row["best_levenshtein_form"] = m.BestForm
		case match.MethodHybrid:
			row["ngram_score"] = m.Score
			row["best_ngram_form"] = m.BestForm
			row["phonetic_match"] = 1
		}
		resp.Results = append(resp.Results, row)
	}
	return resp
}

func (h *Handler) recordOutcome(method, outcome string) {
	if h.metrics == nil {
		return
	}
	h.metrics.MatchRequestsTotal.WithLabelValues(method, outcome).Inc()
}

func (h *Handler) recordResult(result *match.Result, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}
	method := string(result.Method)
	h.metrics.MatchRequestsTotal.WithLabelValues(method, "ok").Inc()
	h.metrics.MatchLatency.WithLabelValues(method).Observe(elapsed.Seconds())
	h.metrics.MatchResultsCount.Observe(float64(len(result.Matches)))
	h.metrics.CandidatesScored.Add(float64(result.Evaluated))
	if result.Method == match.MethodHybrid {
		h.metrics.PhoneticGatePassed.Add(float64(result.Evaluated - result.Gated))
		h.metrics.PhoneticGateRejected.Add(float64(result.Gated))
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
