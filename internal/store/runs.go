package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one persisted build run.
// Tables: persona_runs.
type Run struct {
	ID               uuid.UUID
	Target           string
	ContextSize      int
	Seed             int64
	Conversations    int
	Messages         int
	ResponseExamples int
	TimingExamples   int
	StartedAt        time.Time
	FinishedAt       time.Time
}

// WriteRun inserts the run row. Example rows reference it by id.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO persona_runs (id, target, context_size, seed, conversations, messages, response_examples, timing_examples, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		run.ID, run.Target, run.ContextSize, run.Seed,
		run.Conversations, run.Messages, run.ResponseExamples, run.TimingExamples,
		run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// GetRun fetches a persisted run by id.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (Run, error) {
	var run Run
	err := s.pool.QueryRow(ctx, `
		SELECT id, target, context_size, seed, conversations, messages, response_examples, timing_examples, started_at, finished_at
		FROM persona_runs WHERE id = $1`, id,
	).Scan(
		&run.ID, &run.Target, &run.ContextSize, &run.Seed,
		&run.Conversations, &run.Messages, &run.ResponseExamples, &run.TimingExamples,
		&run.StartedAt, &run.FinishedAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("select run: %w", err)
	}
	return run, nil
}
