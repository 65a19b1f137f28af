package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Manifest is the audit record of one build run, written next to the
// artifacts. It is how empty-result conditions stay observable: a run that
// found no windows or no target messages still writes its zero counts.
type Manifest struct {
	RunID            uuid.UUID `json:"run_id"`
	Target           string    `json:"target"`
	ContextSize      int       `json:"context_size"`
	Seed             int64     `json:"seed"`
	RelativeTime     bool      `json:"relative_time"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	Conversations    int       `json:"conversations"`
	TargetConvos     int       `json:"target_conversations"`
	Messages         int       `json:"messages"`
	ResponseExamples int       `json:"response_examples"`
	TimingExamples   int       `json:"timing_examples"`
	Artifacts        []string  `json:"artifacts"`
	Warnings         []string  `json:"warnings,omitempty"`
}

// ManifestName returns the manifest file name for a target.
func ManifestName(target string) string {
	return target + "_run_manifest.json"
}

// Save writes the manifest under dir and returns its path.
func (m *Manifest) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}

	path := filepath.Join(dir, ManifestName(m.Target))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// AddWarning records a non-fatal condition worth auditing.
func (m *Manifest) AddWarning(msg string) {
	m.Warnings = append(m.Warnings, msg)
}
