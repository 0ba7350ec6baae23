package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/Triage/internal/scoring"
	"github.com/MikeSquared-Agency/Triage/internal/store"
)

const (
	maxRequestBytes     = 1 << 20
	defaultSuggestLimit = 3
)

type TasksHandler struct {
	svc *Service
}

func NewTasksHandler(svc *Service) *TasksHandler {
	return &TasksHandler{svc: svc}
}

// AnalyzeRequest is the wire form of an analysis request, shared by HTTP
// and NATS callers.
type AnalyzeRequest struct {
	Tasks          []scoring.TaskInput `json:"tasks"`
	Strategy       string              `json:"strategy,omitempty"`
	Weights        *scoring.WeightSet  `json:"weights,omitempty"`
	IncludeFactors bool                `json:"include_factors,omitempty"`
}

type AnalyzeResponse struct {
	Tasks []scoring.ScoredTask `json:"tasks"`
}

var errEmptyTasks = errors.New("tasks must be a non-empty list")

// Validate applies the boundary checks the engine leaves to callers.
func (r *AnalyzeRequest) Validate() error {
	if len(r.Tasks) == 0 {
		return errEmptyTasks
	}
	for i, t := range r.Tasks {
		if t.Importance == nil {
			continue
		}
		if *t.Importance < scoring.MinImportance || *t.Importance > scoring.MaxImportance {
			return &scoring.ValidationError{
				Index: i,
				Field: "importance",
				Msg:   fmt.Sprintf("must be between %d and %d", scoring.MinImportance, scoring.MaxImportance),
			}
		}
	}
	return nil
}

func (r *AnalyzeRequest) engineRequest() scoring.AnalyzeRequest {
	return scoring.AnalyzeRequest{
		Tasks:          r.Tasks,
		Strategy:       r.Strategy,
		Weights:        r.Weights,
		IncludeFactors: r.IncludeFactors,
	}
}

func decodeAnalyzeRequest(body io.Reader) (*AnalyzeRequest, error) {
	var req AnalyzeRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *TasksHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAnalyzeRequest(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.svc.Analyze(r.Context(), req.engineRequest(), RunMeta{
		Source:    store.SourceHTTP,
		RequestID: chiMiddleware.GetReqID(r.Context()),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, scoring.ErrValidation) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{Tasks: result.Tasks})
}

type SuggestResponse struct {
	Detail   string               `json:"detail"`
	Strategy string               `json:"strategy"`
	Limit    int                  `json:"limit"`
	Tasks    []scoring.ScoredTask `json:"tasks"`
}

// Suggest echoes its parameters. Tasks are not persisted, so there is
// nothing to suggest from yet.
func (h *TasksHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	strategy := r.URL.Query().Get("strategy")
	if strategy == "" {
		strategy = h.svc.DefaultStrategy()
	}
	limit := defaultSuggestLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be an integer"})
			return
		}
		limit = n
	}

	writeJSON(w, http.StatusOK, SuggestResponse{
		Detail:   "Suggestions need stored tasks; submit a batch to /api/v1/tasks/analyze instead.",
		Strategy: strategy,
		Limit:    limit,
		Tasks:    []scoring.ScoredTask{},
	})
}

func (h *TasksHandler) Strategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Strategies())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
