package scoring

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"
)

// AnalyzeRequest is one batch to rank.
type AnalyzeRequest struct {
	Tasks []TaskInput
	// Strategy is echoed back on every result. Empty means smart_balance;
	// unknown names are scored as smart_balance.
	Strategy string
	// Weights overrides the engine's smart_balance weights when non-nil.
	Weights        *WeightSet
	IncludeFactors bool
}

// Result is the ranked batch plus the graph facts gathered on the way.
type Result struct {
	Tasks []ScoredTask
	// Strategy is the variant actually applied.
	Strategy            Strategy
	CycleNodes          []string
	PhantomDependencies []string
}

// Engine ranks task batches. It holds only immutable configuration and is
// safe for concurrent use.
type Engine struct {
	weights WeightSet
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used to determine "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine whose smart_balance strategy uses weights.
func NewEngine(weights WeightSet, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		weights: weights,
		now:     time.Now,
		logger:  logger,
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultWeights returns the smart_balance weights the engine was built with.
func (e *Engine) DefaultWeights() WeightSet {
	return e.weights
}

type normalizedTask struct {
	record   TaskRecord
	warnings []string
}

// Analyze scores and ranks a batch. The returned tasks are sorted by score,
// highest first; ties keep their input order.
func (e *Engine) Analyze(req AnalyzeRequest) (*Result, error) {
	normalized, err := normalize(req.Tasks)
	if err != nil {
		return nil, err
	}

	name := req.Strategy
	if name == "" {
		name = DefaultStrategyName
	}
	strategy, ok := ParseStrategy(name)
	if !ok {
		e.logger.Debug("unknown strategy, using default", "requested", name, "default", DefaultStrategyName)
	}

	weights := e.weights
	if req.Weights != nil {
		if err := req.Weights.Validate(); err != nil {
			return nil, &ValidationError{Index: -1, Field: "weights", Msg: err.Error()}
		}
		weights = *req.Weights
	}
	effective := strategy.Weights(weights)

	records := make([]TaskRecord, len(normalized))
	for i := range normalized {
		records[i] = normalized[i].record
	}
	graph := NewGraph(records)
	hasCycle, cycleNodes := graph.DetectCycles()
	depFactors := graph.DependencyFactor()

	today := DateOf(e.now())
	type ranked struct {
		task ScoredTask
		raw  float64
	}
	out := make([]ranked, 0, len(normalized))
	for _, nt := range normalized {
		rec := nt.record
		f := Factors{
			Urgency:    Urgency(rec.DueDate, today),
			Importance: NormalizedImportance(rec.Importance),
			Effort:     Effort(rec.EstimatedHours),
			Dependency: depFactors[rec.ID],
		}
		raw := effective.Apply(f)

		warnings := nt.warnings
		if hasCycle && cycleNodes[rec.ID] {
			warnings = append(warnings, WarningCircularDependency)
		}
		if warnings == nil {
			warnings = []string{}
		}

		st := ScoredTask{
			TaskRecord:   rec,
			Score:        roundScore(raw),
			StrategyUsed: name,
			Explanation:  Explain(f),
			Warnings:     warnings,
		}
		if req.IncludeFactors {
			st.Factors = breakdown(&rec, f, effective, today)
		}
		out = append(out, ranked{task: st, raw: raw})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].raw > out[j].raw
	})

	result := &Result{
		Tasks:               make([]ScoredTask, len(out)),
		Strategy:            strategy,
		PhantomDependencies: graph.Phantoms(),
	}
	for i := range out {
		result.Tasks[i] = out[i].task
	}
	for _, id := range graph.order {
		if cycleNodes[id] {
			result.CycleNodes = append(result.CycleNodes, id)
		}
	}

	e.logger.Debug("batch analyzed",
		"tasks", len(result.Tasks),
		"strategy", strategy.String(),
		"cycle_nodes", len(result.CycleNodes),
		"phantom_dependencies", len(result.PhantomDependencies),
	)
	return result, nil
}

// normalize assigns ids and fills defaults without touching the caller's
// inputs.
func normalize(inputs []TaskInput) ([]normalizedTask, error) {
	if len(inputs) == 0 {
		return nil, &ValidationError{Index: -1, Field: "tasks", Msg: "tasks must be a non-empty list"}
	}

	seen := make(map[string]int, len(inputs))
	out := make([]normalizedTask, 0, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Title) == "" {
			return nil, &ValidationError{Index: i, Field: "title", Msg: "title is required"}
		}

		id := in.ID
		if id == "" {
			id = fmt.Sprintf("task_%d", i)
		}
		if prev, dup := seen[id]; dup {
			return nil, &ValidationError{Index: i, Field: "id", Msg: fmt.Sprintf("duplicate id %q (also used by tasks[%d])", id, prev)}
		}
		seen[id] = i

		deps := make([]string, len(in.Dependencies))
		for j, dep := range in.Dependencies {
			if dep == "" {
				return nil, &ValidationError{Index: i, Field: fmt.Sprintf("dependencies[%d]", j), Msg: "dependency id must not be blank"}
			}
			deps[j] = dep
		}

		nt := normalizedTask{
			record: TaskRecord{
				ID:             id,
				Title:          in.Title,
				DueDate:        copyDate(in.DueDate),
				EstimatedHours: copyFloat(in.EstimatedHours),
				Importance:     DefaultImportance,
				Dependencies:   deps,
			},
		}
		if in.Importance != nil {
			nt.record.Importance = *in.Importance
		} else {
			nt.warnings = append(nt.warnings, WarningImportanceDefaulted)
		}
		out = append(out, nt)
	}
	return out, nil
}

func roundScore(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func copyDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
