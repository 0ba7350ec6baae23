package scoring

// TaskInput is a raw task as handed over by a caller. Zero values mark absent
// optional fields: an empty ID is synthesized, a nil Importance defaults and a
// nil Dependencies slice becomes empty.
type TaskInput struct {
	ID             string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title          string   `json:"title" yaml:"title"`
	DueDate        *Date    `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty" yaml:"estimated_hours,omitempty"`
	Importance     *int     `json:"importance,omitempty" yaml:"importance,omitempty"`
	Dependencies   []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
}

// TaskRecord is a normalized task: id assigned and defaults filled.
type TaskRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	DueDate        *Date    `json:"due_date"`
	EstimatedHours *float64 `json:"estimated_hours"`
	Importance     int      `json:"importance"`
	Dependencies   []string `json:"dependencies"`
}

// ScoredTask is one ranked entry of an analysis result.
type ScoredTask struct {
	TaskRecord
	Score        float64        `json:"score"`
	StrategyUsed string         `json:"strategy_used"`
	Explanation  string         `json:"explanation"`
	Warnings     []string       `json:"warnings"`
	Factors      []FactorResult `json:"factors,omitempty"`
}
