package evolve

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/crewkit-dev/crewkit/internal/analyzer"
)

const (
	snapshotDir     = ".crewkit"
	snapshotFile    = "snapshot.json"
	SnapshotVersion = "1"
)

// Snapshot is the persisted analysis from the last configuration run,
// diffed against a fresh analysis at evolve time.
type Snapshot struct {
	Version  string                     `json:"version"`
	SavedAt  time.Time                  `json:"savedAt"`
	Analysis *analyzer.CodebaseAnalysis `json:"analysis"`
}

func snapshotPath(projectRoot string) string {
	return filepath.Join(projectRoot, snapshotDir, snapshotFile)
}

// LoadSnapshot reads the stored snapshot for a project. An absent file or
// a version mismatch returns (nil, nil): there is nothing to evolve from,
// which is not an error.
func LoadSnapshot(projectRoot string) (*Snapshot, error) {
	data, err := os.ReadFile(snapshotPath(projectRoot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion || snap.Analysis == nil {
		return nil, nil
	}
	snap.Analysis.ProjectRoot = projectRoot
	return &snap, nil
}

// SaveSnapshot records the analysis as the new baseline for future evolve
// runs.
func SaveSnapshot(projectRoot string, analysis *analyzer.CodebaseAnalysis) error {
	snap := Snapshot{
		Version:  SnapshotVersion,
		SavedAt:  time.Now().UTC(),
		Analysis: analysis,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(projectRoot, snapshotDir), 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", snapshotDir, err)
	}
	if err := os.WriteFile(snapshotPath(projectRoot), data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
