package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names, keyed by target participant. Downstream training
// reads these paths directly, so they are part of the output contract.
func ResponseArtifactName(target string) string {
	return target + "_dataset.json"
}

func TimingArtifactName(target string) string {
	return target + "_timing_dataset.json"
}

func ReplyProbabilitiesArtifactName(target string) string {
	return target + "_reply_probabilities.json"
}

// WriteArtifact persists v as a single JSON document under dir, creating the
// directory if needed. Encoding is json.Marshal, so a given value always
// produces identical bytes.
func WriteArtifact(dir, name string, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal artifact: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact: %w", err)
	}
	return path, nil
}
