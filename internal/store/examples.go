package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/instapersona/dmcorpus/internal/dataset"
)

// WriteResponseExamples bulk-inserts the response dataset for a run in one
// transaction, so a failed write never leaves a partially stored dataset.
// Tables: response_examples.
func (s *Store) WriteResponseExamples(ctx context.Context, runID uuid.UUID, examples []dataset.ContextExample) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, ex := range examples {
		_, err := tx.Exec(ctx, `
			INSERT INTO response_examples (id, run_id, position, context, response)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), runID, i, ex.Context, ex.Response,
		)
		if err != nil {
			return fmt.Errorf("insert response example %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// WriteTimingExamples bulk-inserts the timing dataset for a run in one
// transaction.
// Tables: timing_examples.
func (s *Store) WriteTimingExamples(ctx context.Context, runID uuid.UUID, examples []dataset.TimingExample) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, ex := range examples {
		_, err := tx.Exec(ctx, `
			INSERT INTO timing_examples (id, run_id, position, context, label)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), runID, i, ex.Context, ex.Label,
		)
		if err != nil {
			return fmt.Errorf("insert timing example %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// CountExamples returns the stored row counts for a run.
func (s *Store) CountExamples(ctx context.Context, runID uuid.UUID) (responses, timings int, err error) {
	err = s.pool.QueryRow(ctx,
		`SELECT count(*) FROM response_examples WHERE run_id = $1`, runID,
	).Scan(&responses)
	if err != nil {
		return 0, 0, fmt.Errorf("count response examples: %w", err)
	}
	err = s.pool.QueryRow(ctx,
		`SELECT count(*) FROM timing_examples WHERE run_id = $1`, runID,
	).Scan(&timings)
	if err != nil {
		return 0, 0, fmt.Errorf("count timing examples: %w", err)
	}
	return responses, timings, nil
}
