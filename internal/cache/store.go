// Package cache persists analysis results and generation artifacts keyed
// by a structural fingerprint of the project. Reads degrade to a miss on
// any failure; writes propagate their errors so callers can decide how
// loudly to fail.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/crewkit-dev/crewkit/internal/analyzer"
	"github.com/crewkit-dev/crewkit/internal/fileutil"
)

// FormatVersion gates every read: a record written by any other format
// version is a miss regardless of age.
const FormatVersion = "3"

const (
	DefaultAnalysisTTL   = 24 * time.Hour
	DefaultGenerationTTL = 7 * 24 * time.Hour
)

// record is the on-disk envelope for every cache entry. Timestamp is Unix
// milliseconds. Data is null for generation metadata records; the artifact
// text lives in the sibling .txt file.
type record struct {
	Version   string          `json:"version"`
	Hash      string          `json:"hash"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Store is a set of independent files under one directory. Two concurrent
// writers under the same fingerprint produce equivalent content, so last
// write wins is benign.
type Store struct {
	dir           string
	analysisTTL   time.Duration
	generationTTL time.Duration
	log           zerolog.Logger

	// now is swappable in tests to pin TTL boundaries.
	now func() time.Time
}

func NewStore(dir string, analysisTTL, generationTTL time.Duration, log zerolog.Logger) *Store {
	if analysisTTL <= 0 {
		analysisTTL = DefaultAnalysisTTL
	}
	if generationTTL <= 0 {
		generationTTL = DefaultGenerationTTL
	}
	return &Store{
		dir:           dir,
		analysisTTL:   analysisTTL,
		generationTTL: generationTTL,
		log:           log,
		now:           time.Now,
	}
}

// GetAnalysis returns the cached analysis for fingerprint, or (nil, false)
// on any miss: absent file, unparsable record, version mismatch, or
// expiry. A miss is always safe and identical to "never cached".
func (s *Store) GetAnalysis(fingerprint string) (*analyzer.CodebaseAnalysis, bool) {
	rec, ok := s.readRecord(s.analysisPath(fingerprint), s.analysisTTL)
	if !ok || len(rec.Data) == 0 {
		return nil, false
	}

	var analysis analyzer.CodebaseAnalysis
	if err := json.Unmarshal(rec.Data, &analysis); err != nil {
		s.log.Debug().Err(err).Str("fingerprint", fingerprint).Msg("cached analysis unparsable, treating as miss")
		return nil, false
	}
	return &analysis, true
}

// SetAnalysis writes the analysis under fingerprint, stamped with the
// current format version and timestamp. Last write wins.
func (s *Store) SetAnalysis(fingerprint string, analysis *analyzer.CodebaseAnalysis) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}
	return s.writeRecord(s.analysisPath(fingerprint), fingerprint, data)
}

// GetGeneration returns the cached artifact text for key, or ("", false)
// on a miss. The metadata record and the content file must both be
// readable and the record unexpired.
func (s *Store) GetGeneration(key GenerationKey) (string, bool) {
	hash := key.hash()
	if _, ok := s.readRecord(s.generationMetaPath(hash), s.generationTTL); !ok {
		return "", false
	}

	text, err := os.ReadFile(s.generationTextPath(hash))
	if err != nil {
		return "", false
	}
	return string(text), true
}

// SetGeneration writes the artifact text and its sibling metadata record.
func (s *Store) SetGeneration(key GenerationKey, text string) error {
	hash := key.hash()
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(s.generationTextPath(hash), []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write generation artifact: %w", err)
	}
	return s.writeRecord(s.generationMetaPath(hash), hash, json.RawMessage("null"))
}

// Stats reports record counts by filename convention plus aggregate size.
// It never modifies state.
type Stats struct {
	AnalysisEntries   int   `json:"analysisEntries"`
	GenerationEntries int   `json:"generationEntries"`
	TotalBytes        int64 `json:"totalBytes"`
}

func (s *Store) Stats() (Stats, error) {
	var stats Stats

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return stats, nil
		}
		return stats, fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch {
		case strings.HasPrefix(name, "analysis-") && strings.HasSuffix(name, ".json"):
			stats.AnalysisEntries++
		case strings.HasPrefix(name, "gen-") && strings.HasSuffix(name, ".meta.json"):
			stats.GenerationEntries++
		}
		if info, err := entry.Info(); err == nil {
			stats.TotalBytes += info.Size()
		}
	}
	return stats, nil
}

// Clear removes all cache records unconditionally.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "analysis-") && !strings.HasPrefix(name, "gen-") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
			return fmt.Errorf("failed to remove cache entry %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) analysisPath(fingerprint string) string {
	return filepath.Join(s.dir, "analysis-"+fingerprint+".json")
}

func (s *Store) generationMetaPath(hash string) string {
	return filepath.Join(s.dir, "gen-"+hash+".meta.json")
}

func (s *Store) generationTextPath(hash string) string {
	return filepath.Join(s.dir, "gen-"+hash+".txt")
}

// readRecord loads and validates one record. Disk and parse errors degrade
// to a miss, never an error. An entry whose age has reached the TTL is
// expired.
func (s *Store) readRecord(path string, ttl time.Duration) (*record, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.Debug().Err(err).Str("path", path).Msg("cache record unparsable, treating as miss")
		return nil, false
	}
	if rec.Version != FormatVersion {
		return nil, false
	}

	age := s.now().UnixMilli() - rec.Timestamp
	if age >= ttl.Milliseconds() {
		return nil, false
	}
	return &rec, true
}

func (s *Store) writeRecord(path, hash string, data json.RawMessage) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	rec := record{
		Version:   FormatVersion,
		Hash:      hash,
		Timestamp: s.now().UnixMilli(),
		Data:      data,
	}
	encoded, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode cache record: %w", err)
	}
	if err := fileutil.WriteIfChanged(path, encoded); err != nil {
		return fmt.Errorf("failed to write cache record %s: %w", filepath.Base(path), err)
	}
	return nil
}
