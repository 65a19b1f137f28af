// Package runner orchestrates one end-to-end dataset build: ingest the
// archive, emit both datasets and the reply-probability table as JSON
// artifacts, write the run manifest, and notify the optional collaborators.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/instapersona/dmcorpus/internal/archive"
	"github.com/instapersona/dmcorpus/internal/dataset"
	"github.com/instapersona/dmcorpus/internal/events"
	"github.com/instapersona/dmcorpus/internal/stats"
	"github.com/instapersona/dmcorpus/internal/store"
)

// Config holds one build's parameters.
type Config struct {
	ArchiveDir   string
	OutDir       string
	Target       string
	ContextSize  int
	Seed         int64
	RelativeTime bool
}

// Runner executes build runs. Store and events are optional; a nil store
// skips persistence, a nil events client skips announcements — the artifact
// files alone are a complete result.
type Runner struct {
	cfg    Config
	store  *store.Store
	events *events.Client
	logger *slog.Logger
}

func New(cfg Config, s *store.Store, ev *events.Client, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		store:  s,
		events: ev,
		logger: logger,
	}
}

// Run executes a single batch build. Runs are idempotent: the same archive
// and seed produce byte-identical artifacts, so a failed run is safely
// re-runnable from scratch.
func (r *Runner) Run(ctx context.Context) (*Manifest, error) {
	if r.cfg.Target == "" {
		return nil, fmt.Errorf("target participant is required")
	}
	if r.cfg.ArchiveDir == "" {
		return nil, fmt.Errorf("archive dir is required")
	}
	if r.cfg.ContextSize <= 0 {
		return nil, fmt.Errorf("context size must be positive, got %d", r.cfg.ContextSize)
	}

	manifest := &Manifest{
		RunID:        uuid.New(),
		Target:       r.cfg.Target,
		ContextSize:  r.cfg.ContextSize,
		Seed:         r.cfg.Seed,
		RelativeTime: r.cfg.RelativeTime,
		StartedAt:    time.Now().UTC(),
	}

	r.logger.Info("build starting",
		"run_id", manifest.RunID,
		"target", r.cfg.Target,
		"archive", r.cfg.ArchiveDir,
		"context_size", r.cfg.ContextSize,
		"seed", r.cfg.Seed,
	)

	inbox, err := archive.LoadInbox(r.cfg.ArchiveDir, archive.Options{Logger: r.logger})
	if err != nil {
		return nil, fmt.Errorf("load archive: %w", err)
	}

	manifest.Conversations = inbox.Len()
	for _, conv := range inbox.Conversations() {
		manifest.Messages += len(conv.Messages)
		if conv.HasParticipant(r.cfg.Target) {
			manifest.TargetConvos++
		}
	}
	r.logger.Info("archive loaded",
		"conversations", manifest.Conversations,
		"target_conversations", manifest.TargetConvos,
		"messages", manifest.Messages,
	)
	if manifest.TargetConvos == 0 {
		manifest.AddWarning("target participates in no conversations")
	}

	format := dataset.Formatter(dataset.AbsoluteTime)
	if r.cfg.RelativeTime {
		format = dataset.RelativeTime
	}

	// Response dataset.
	responses := dataset.BuildResponseDataset(inbox, r.cfg.Target, r.cfg.ContextSize, format)
	manifest.ResponseExamples = len(responses)
	if len(responses) == 0 {
		manifest.AddWarning("response dataset is empty")
	}
	path, err := dataset.WriteArtifact(r.cfg.OutDir, dataset.ResponseArtifactName(r.cfg.Target), emptyAsList(responses))
	if err != nil {
		return nil, fmt.Errorf("response dataset: %w", err)
	}
	manifest.Artifacts = append(manifest.Artifacts, path)
	r.logger.Info("response dataset written", "examples", len(responses), "path", path)

	// Timing dataset. The generator is seeded here and threaded through the
	// sampler, so reproducibility depends only on archive + seed.
	rng := rand.New(rand.NewSource(r.cfg.Seed))
	timings := dataset.BuildTimingDataset(inbox, r.cfg.Target, r.cfg.ContextSize, format, rng)
	manifest.TimingExamples = len(timings)
	if len(timings) == 0 {
		manifest.AddWarning("timing dataset is empty: no balanced high-density windows")
	}
	path, err = dataset.WriteArtifact(r.cfg.OutDir, dataset.TimingArtifactName(r.cfg.Target), emptyAsList(timings))
	if err != nil {
		return nil, fmt.Errorf("timing dataset: %w", err)
	}
	manifest.Artifacts = append(manifest.Artifacts, path)
	r.logger.Info("timing dataset written", "examples", len(timings), "path", path)

	// Reply probabilities, consumed downstream as an hour-indexed table.
	probs := stats.ReplyProbabilityByHour(inbox, r.cfg.Target)
	path, err = dataset.WriteArtifact(r.cfg.OutDir, dataset.ReplyProbabilitiesArtifactName(r.cfg.Target), probs[:])
	if err != nil {
		return nil, fmt.Errorf("reply probabilities: %w", err)
	}
	manifest.Artifacts = append(manifest.Artifacts, path)

	active := stats.ActiveHours(inbox, r.cfg.Target)
	r.logger.Info("activity summary",
		"active_messages", sum(active[:]),
		"peak_hour", peakHour(active),
	)

	manifest.FinishedAt = time.Now().UTC()
	manifestPath, err := manifest.Save(r.cfg.OutDir)
	if err != nil {
		return nil, err
	}
	r.logger.Info("run manifest written", "path", manifestPath)

	if err := r.persist(ctx, manifest, responses, timings); err != nil {
		return nil, err
	}
	r.announce(manifest)

	r.logger.Info("build complete",
		"run_id", manifest.RunID,
		"response_examples", manifest.ResponseExamples,
		"timing_examples", manifest.TimingExamples,
		"warnings", len(manifest.Warnings),
	)

	return manifest, nil
}

func (r *Runner) persist(ctx context.Context, m *Manifest, responses []dataset.ContextExample, timings []dataset.TimingExample) error {
	if r.store == nil {
		return nil
	}

	run := store.Run{
		ID:               m.RunID,
		Target:           m.Target,
		ContextSize:      m.ContextSize,
		Seed:             m.Seed,
		Conversations:    m.Conversations,
		Messages:         m.Messages,
		ResponseExamples: m.ResponseExamples,
		TimingExamples:   m.TimingExamples,
		StartedAt:        m.StartedAt,
		FinishedAt:       m.FinishedAt,
	}
	if err := r.store.WriteRun(ctx, run); err != nil {
		return fmt.Errorf("persist run: %w", err)
	}
	if err := r.store.WriteResponseExamples(ctx, m.RunID, responses); err != nil {
		return fmt.Errorf("persist response examples: %w", err)
	}
	if err := r.store.WriteTimingExamples(ctx, m.RunID, timings); err != nil {
		return fmt.Errorf("persist timing examples: %w", err)
	}
	r.logger.Info("run persisted", "run_id", m.RunID)
	return nil
}

// announce publishes the run-completed event. Failures are logged, not
// fatal: the artifacts on disk are the source of truth.
func (r *Runner) announce(m *Manifest) {
	if r.events == nil {
		return
	}

	err := r.events.Publish(events.SubjectRunCompleted, events.RunCompleted{
		RunID:            m.RunID.String(),
		Target:           m.Target,
		ResponseExamples: m.ResponseExamples,
		TimingExamples:   m.TimingExamples,
		Artifacts:        m.Artifacts,
		CompletedAt:      m.FinishedAt.Format(time.RFC3339),
	})
	if err != nil {
		r.logger.Warn("failed to publish run-completed event", "error", err)
	}
}

// emptyAsList keeps empty datasets encoding as [] rather than null.
func emptyAsList[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func peakHour(hours [24]int) int {
	peak := 0
	for h, n := range hours {
		if n > hours[peak] {
			peak = h
		}
	}
	return peak
}
