package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RunSource identifies the surface that requested an analysis.
type RunSource string

const (
	SourceHTTP RunSource = "http"
	SourceNATS RunSource = "nats"
	SourceCLI  RunSource = "cli"
)

// AnalysisRun is the audit record of one engine invocation. It carries batch
// metadata only; task contents are never stored.
type AnalysisRun struct {
	ID                uuid.UUID `json:"run_id"`
	Source            RunSource `json:"source"`
	RequestID         string    `json:"request_id,omitempty"`
	StrategyRequested string    `json:"strategy_requested"`
	StrategyApplied   string    `json:"strategy_applied"`
	CustomWeights     bool      `json:"custom_weights"`
	TaskCount         int       `json:"task_count"`
	CycleNodeCount    int       `json:"cycle_node_count"`
	PhantomCount      int       `json:"phantom_count"`
	TopTaskID         string    `json:"top_task_id,omitempty"`
	TopScore          float64   `json:"top_score"`
	DurationMs        float64   `json:"duration_ms"`
	Error             string    `json:"error,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type Store interface {
	RecordRun(ctx context.Context, run *AnalysisRun) error
	ListRuns(ctx context.Context, limit int) ([]*AnalysisRun, error)
	// GetRun returns nil, nil when no run has the id.
	GetRun(ctx context.Context, id uuid.UUID) (*AnalysisRun, error)
	Close() error
}

const defaultListLimit = 50

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}
