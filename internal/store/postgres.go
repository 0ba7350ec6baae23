package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS triage_analysis_runs (
	run_id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	source             TEXT NOT NULL,
	request_id         TEXT,
	strategy_requested TEXT NOT NULL,
	strategy_applied   TEXT NOT NULL,
	custom_weights     BOOLEAN NOT NULL DEFAULT FALSE,
	task_count         INTEGER NOT NULL,
	cycle_node_count   INTEGER NOT NULL DEFAULT 0,
	phantom_count      INTEGER NOT NULL DEFAULT 0,
	top_task_id        TEXT,
	top_score          DOUBLE PRECISION NOT NULL DEFAULT 0,
	duration_ms        DOUBLE PRECISION NOT NULL DEFAULT 0,
	error              TEXT,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS triage_analysis_runs_created_at_idx
	ON triage_analysis_runs (created_at DESC);`

// EnsureSchema creates the runs table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

const runColumns = `run_id, source, request_id, strategy_requested, strategy_applied,
	custom_weights, task_count, cycle_node_count, phantom_count,
	top_task_id, top_score, duration_ms, error, created_at`

func (s *PostgresStore) RecordRun(ctx context.Context, run *AnalysisRun) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO triage_analysis_runs (`+runColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		run.ID, run.Source, nullable(run.RequestID), run.StrategyRequested, run.StrategyApplied,
		run.CustomWeights, run.TaskCount, run.CycleNodeCount, run.PhantomCount,
		nullable(run.TopTaskID), run.TopScore, run.DurationMs, nullable(run.Error), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis run: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]*AnalysisRun, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+runColumns+`
		FROM triage_analysis_runs
		ORDER BY created_at DESC
		LIMIT $1`, normalizeLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*AnalysisRun
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*AnalysisRun, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+runColumns+`
		FROM triage_analysis_runs WHERE run_id = $1`, id)
	r, err := scanRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func scanRun(row pgx.Row) (*AnalysisRun, error) {
	r := &AnalysisRun{}
	var requestID, topTaskID, runError sql.NullString
	err := row.Scan(
		&r.ID, &r.Source, &requestID, &r.StrategyRequested, &r.StrategyApplied,
		&r.CustomWeights, &r.TaskCount, &r.CycleNodeCount, &r.PhantomCount,
		&topTaskID, &r.TopScore, &r.DurationMs, &runError, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.RequestID = requestID.String
	r.TopTaskID = topTaskID.String
	r.Error = runError.String
	return r, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
