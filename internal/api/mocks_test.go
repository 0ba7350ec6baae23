package api

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/MikeSquared-Agency/Triage/internal/hermes"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
	"github.com/MikeSquared-Agency/Triage/internal/store"
)

// MockStore implements store.Store for testing
type MockStore struct {
	mock.Mock
}

func (m *MockStore) RecordRun(ctx context.Context, run *store.AnalysisRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockStore) ListRuns(ctx context.Context, limit int) ([]*store.AnalysisRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.AnalysisRun), args.Error(1)
}

func (m *MockStore) GetRun(ctx context.Context, id uuid.UUID) (*store.AnalysisRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.AnalysisRun), args.Error(1)
}

func (m *MockStore) Close() error { return nil }

// MockHermes implements hermes.Client for testing
type MockHermes struct {
	mock.Mock
	handlers map[string]hermes.Handler
}

func (m *MockHermes) Publish(subject string, data interface{}) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func (m *MockHermes) Subscribe(subject string, handler hermes.Handler) error {
	args := m.Called(subject, handler)
	if m.handlers == nil {
		m.handlers = make(map[string]hermes.Handler)
	}
	m.handlers[subject] = handler
	return args.Error(0)
}

func (m *MockHermes) Close() {
	// No-op for mock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine() *scoring.Engine {
	clock := func() time.Time { return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC) }
	return scoring.NewEngine(scoring.DefaultWeights(), discardLogger(), scoring.WithClock(clock))
}

func intPtr(v int) *int { return &v }

func float64Ptr(v float64) *float64 { return &v }

// sampleTasks is a clock-independent batch in which t1 unblocks t2 and
// ranks first under every strategy.
func sampleTasks() []scoring.TaskInput {
	return []scoring.TaskInput{
		{ID: "t2", Title: "Write release notes", Importance: intPtr(2), EstimatedHours: float64Ptr(6), Dependencies: []string{"t1"}},
		{ID: "t1", Title: "Fix login bug", Importance: intPtr(10), EstimatedHours: float64Ptr(1)},
	}
}
