package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Settings holds runtime configuration loaded from environment variables.
// All values have defaults; crewkit never requires environment setup.
type Settings struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`

	// CacheDir overrides the default cache location (~/.crewkit/cache).
	CacheDir string `envconfig:"CACHE_DIR"`

	// TTLs for the two cache record kinds.
	AnalysisTTL   time.Duration `envconfig:"ANALYSIS_TTL" default:"24h"`
	GenerationTTL time.Duration `envconfig:"GENERATION_TTL" default:"168h"`
}

// Load reads settings from CREWKIT_* environment variables and resolves
// the cache directory to an absolute path.
func Load() (*Settings, error) {
	var s Settings
	if err := envconfig.Process("crewkit", &s); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	if s.CacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		s.CacheDir = filepath.Join(home, ".crewkit", "cache")
	}

	abs, err := filepath.Abs(s.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory %q: %w", s.CacheDir, err)
	}
	s.CacheDir = abs

	return &s, nil
}
