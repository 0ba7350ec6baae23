package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Triage/internal/hermes"
	"github.com/MikeSquared-Agency/Triage/internal/scoring"
	"github.com/MikeSquared-Agency/Triage/internal/store"
)

// RunMeta describes where an analysis request came from.
type RunMeta struct {
	Source    store.RunSource
	RequestID string
}

// Service runs analyses for every surface and takes care of the side
// effects: metrics, the run audit log and completion events.
type Service struct {
	engine          *scoring.Engine
	runs            store.Store
	hermes          hermes.Client
	defaultStrategy string
	logger          *slog.Logger
}

// NewService wires the engine to its side effects. runs and h may be nil.
func NewService(engine *scoring.Engine, runs store.Store, h hermes.Client, defaultStrategy string, logger *slog.Logger) *Service {
	if defaultStrategy == "" {
		defaultStrategy = scoring.DefaultStrategyName
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		engine:          engine,
		runs:            runs,
		hermes:          h,
		defaultStrategy: defaultStrategy,
		logger:          logger,
	}
}

func (s *Service) DefaultStrategy() string { return s.defaultStrategy }

func (s *Service) Analyze(ctx context.Context, req scoring.AnalyzeRequest, meta RunMeta) (*scoring.Result, error) {
	if req.Strategy == "" {
		req.Strategy = s.defaultStrategy
	}

	start := time.Now()
	result, err := s.engine.Analyze(req)
	elapsed := time.Since(start)

	applied, _ := scoring.ParseStrategy(req.Strategy)
	run := &store.AnalysisRun{
		ID:                uuid.New(),
		CreatedAt:         time.Now().UTC(),
		Source:            meta.Source,
		RequestID:         meta.RequestID,
		StrategyRequested: req.Strategy,
		StrategyApplied:   applied.String(),
		CustomWeights:     req.Weights != nil,
		TaskCount:         len(req.Tasks),
		DurationMs:        float64(elapsed.Microseconds()) / 1000,
	}

	analysisDuration.WithLabelValues(string(meta.Source)).Observe(elapsed.Seconds())

	if err != nil {
		outcome := outcomeError
		if errors.Is(err, scoring.ErrValidation) {
			outcome = outcomeInvalid
		}
		analysesTotal.WithLabelValues(string(meta.Source), applied.String(), outcome).Inc()
		run.Error = err.Error()
		s.record(ctx, run)
		s.publish(hermes.SubjectAnalysisFailed(run.ID.String()), hermes.AnalysisFailedEvent{
			RunID:     run.ID.String(),
			Source:    string(run.Source),
			TaskCount: run.TaskCount,
			Error:     run.Error,
			Timestamp: run.CreatedAt,
		})
		return nil, err
	}

	analysesTotal.WithLabelValues(string(meta.Source), result.Strategy.String(), outcomeOK).Inc()
	batchSize.Observe(float64(len(result.Tasks)))
	cycleNodesTotal.Add(float64(len(result.CycleNodes)))
	phantomDependenciesTotal.Add(float64(len(result.PhantomDependencies)))

	run.StrategyApplied = result.Strategy.String()
	run.CycleNodeCount = len(result.CycleNodes)
	run.PhantomCount = len(result.PhantomDependencies)
	if len(result.Tasks) > 0 {
		run.TopTaskID = result.Tasks[0].ID
		run.TopScore = result.Tasks[0].Score
	}
	s.record(ctx, run)

	if len(result.CycleNodes) > 0 {
		s.logger.Info("circular dependency detected",
			"run_id", run.ID,
			"request_id", meta.RequestID,
			"cycle_nodes", result.CycleNodes,
		)
	}

	s.publish(hermes.SubjectAnalysisCompleted(run.ID.String()), hermes.AnalysisCompletedEvent{
		RunID:             run.ID.String(),
		Source:            string(run.Source),
		StrategyRequested: run.StrategyRequested,
		StrategyApplied:   run.StrategyApplied,
		TaskCount:         run.TaskCount,
		CycleNodes:        result.CycleNodes,
		PhantomCount:      run.PhantomCount,
		TopTaskID:         run.TopTaskID,
		TopScore:          run.TopScore,
		DurationMs:        run.DurationMs,
		Timestamp:         run.CreatedAt,
	})

	return result, nil
}

// StrategyInfo describes one entry of the strategy catalogue.
type StrategyInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Weights     scoring.WeightSet `json:"weights"`
	Default     bool              `json:"default"`
}

// Strategies lists every strategy with the weights it would apply.
func (s *Service) Strategies() []StrategyInfo {
	out := make([]StrategyInfo, 0, len(scoring.Strategies()))
	for _, st := range scoring.Strategies() {
		out = append(out, StrategyInfo{
			Name:        st.String(),
			Description: st.Description(),
			Weights:     st.Weights(s.engine.DefaultWeights()),
			Default:     st.String() == s.defaultStrategy,
		})
	}
	return out
}

func (s *Service) record(ctx context.Context, run *store.AnalysisRun) {
	if s.runs == nil {
		return
	}
	if err := s.runs.RecordRun(ctx, run); err != nil {
		s.logger.Warn("failed to record analysis run", "run_id", run.ID, "error", err)
	}
}

func (s *Service) publish(subject string, event interface{}) {
	if s.hermes == nil {
		return
	}
	if err := s.hermes.Publish(subject, event); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
