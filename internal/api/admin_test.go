package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/MikeSquared-Agency/Triage/internal/store"
)

func TestAdminListRunsPassesLimit(t *testing.T) {
	mockStore := &MockStore{}
	mockStore.On("ListRuns", mock.Anything, 7).Return([]*store.AnalysisRun{{TaskCount: 3}}, nil)

	handler := NewAdminHandler(mockStore)
	req := httptest.NewRequest("GET", "/api/v1/runs?limit=7", nil)
	w := httptest.NewRecorder()
	handler.ListRuns(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var runs []store.AnalysisRun
	if err := json.NewDecoder(w.Body).Decode(&runs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	assert.Len(t, runs, 1)
	mockStore.AssertExpectations(t)
}

func TestAdminListRunsStoreError(t *testing.T) {
	mockStore := &MockStore{}
	mockStore.On("ListRuns", mock.Anything, 0).Return(nil, errors.New("connection refused"))

	handler := NewAdminHandler(mockStore)
	req := httptest.NewRequest("GET", "/api/v1/runs", nil)
	w := httptest.NewRecorder()
	handler.ListRuns(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestAdminGetRunStoreError(t *testing.T) {
	mockStore := &MockStore{}
	id := uuid.New()
	mockStore.On("GetRun", mock.Anything, id).Return(nil, errors.New("timeout"))

	handler := NewAdminHandler(mockStore)
	req := httptest.NewRequest("GET", "/api/v1/runs/"+id.String(), nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	handler.GetRun(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockStore.AssertExpectations(t)
}
