package hermes

import "time"

// AnalysisCompletedEvent summarizes a finished analysis. Task contents are
// not included.
type AnalysisCompletedEvent struct {
	RunID             string    `json:"run_id"`
	Source            string    `json:"source"`
	StrategyRequested string    `json:"strategy_requested"`
	StrategyApplied   string    `json:"strategy_applied"`
	TaskCount         int       `json:"task_count"`
	CycleNodes        []string  `json:"cycle_nodes,omitempty"`
	PhantomCount      int       `json:"phantom_count"`
	TopTaskID         string    `json:"top_task_id,omitempty"`
	TopScore          float64   `json:"top_score"`
	DurationMs        float64   `json:"duration_ms"`
	Timestamp         time.Time `json:"timestamp"`
}

type AnalysisFailedEvent struct {
	RunID     string    `json:"run_id"`
	Source    string    `json:"source"`
	TaskCount int       `json:"task_count"`
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}
