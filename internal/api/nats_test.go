package api

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Triage/internal/hermes"
	"github.com/MikeSquared-Agency/Triage/internal/store"
)

func registerTestHandler(t *testing.T) (hermes.Handler, *store.MemoryStore) {
	t.Helper()
	runs := store.NewMemoryStore(10)
	mockHermes := &MockHermes{}
	mockHermes.On("Subscribe", hermes.SubjectAnalyzeRequest, mock.Anything).Return(nil)
	mockHermes.On("Publish", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(testEngine(), runs, mockHermes, "", discardLogger())
	require.NoError(t, RegisterNATSHandlers(mockHermes, svc, "", discardLogger()))
	mockHermes.AssertCalled(t, "Subscribe", hermes.SubjectAnalyzeRequest, mock.Anything)

	handler := mockHermes.handlers[hermes.SubjectAnalyzeRequest]
	require.NotNil(t, handler)
	return handler, runs
}

func TestNATSAnalyzeReply(t *testing.T) {
	handler, runs := registerTestHandler(t)

	payload, err := json.Marshal(AnalyzeRequest{Tasks: sampleTasks(), Strategy: "high_impact"})
	require.NoError(t, err)

	reply := handler(hermes.SubjectAnalyzeRequest, payload)

	var resp analyzeResponseBody
	require.NoError(t, json.Unmarshal(reply, &resp))
	require.Len(t, resp.Tasks, 2)
	assert.Equal(t, "t1", resp.Tasks[0].ID)
	assert.Equal(t, "high_impact", resp.Tasks[0].StrategyUsed)

	recorded, err := runs.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, store.SourceNATS, recorded[0].Source)
	assert.NotEmpty(t, recorded[0].RequestID)
}

func TestNATSAnalyzeErrorReplies(t *testing.T) {
	handler, _ := registerTestHandler(t)

	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"malformed", `not json`, "invalid request body"},
		{"empty", `{"tasks": []}`, "tasks must be a non-empty list"},
		{"importance out of range", `{"tasks": [{"title": "a", "importance": 42}]}`, "tasks[0].importance"},
		{"blank title", `{"tasks": [{"title": ""}]}`, "tasks[0].title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := handler(hermes.SubjectAnalyzeRequest, []byte(tt.payload))

			var resp map[string]string
			require.NoError(t, json.Unmarshal(reply, &resp))
			assert.Contains(t, resp["error"], tt.wantErr)
		})
	}
}

func TestRegisterNATSHandlersCustomSubject(t *testing.T) {
	mockHermes := &MockHermes{}
	mockHermes.On("Subscribe", "custom.analyze", mock.Anything).Return(nil)

	svc := NewService(testEngine(), nil, nil, "", discardLogger())
	require.NoError(t, RegisterNATSHandlers(mockHermes, svc, "custom.analyze", discardLogger()))
	mockHermes.AssertExpectations(t)
}
