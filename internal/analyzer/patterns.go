package analyzer

import (
	"os"
	"path/filepath"

	"github.com/crewkit-dev/crewkit/internal/ignore"
)

// detectPatterns scans the fixed conventional-directory rules in order.
// For each rule, every existing non-empty candidate directory contributes
// sampled paths; one Pattern is emitted per rule that matched anywhere.
// Paths excluded by the ignore matcher are never counted or sampled.
func detectPatterns(root string, matcher *ignore.Matcher) []Pattern {
	patterns := make([]Pattern, 0)

	for _, rule := range patternRules {
		paths := make([]string, 0, maxPatternPaths)
		for _, name := range rule.files {
			if len(paths) >= maxPatternPaths {
				break
			}
			if matcher.ShouldIgnore(name, false) {
				continue
			}
			if info, err := os.Stat(filepath.Join(root, name)); err == nil && !info.IsDir() {
				paths = append(paths, name)
			}
		}
		for _, dir := range rule.dirs {
			if len(paths) >= maxPatternPaths {
				break
			}
			if matcher.ShouldIgnore(dir, true) {
				continue
			}
			paths = sampleDir(root, dir, matcher, paths)
		}
		if len(paths) == 0 {
			continue
		}
		patterns = append(patterns, Pattern{
			Type:        rule.patternType,
			Paths:       paths,
			Confidence:  rule.confidence,
			Description: rule.description,
		})
	}

	return patterns
}

// sampleDir appends up to the pattern path cap of entries found directly
// under <root>/<dir>, as root-relative slash paths.
func sampleDir(root, dir string, matcher *ignore.Matcher, paths []string) []string {
	entries, err := os.ReadDir(filepath.Join(root, dir))
	if err != nil {
		return paths
	}

	for _, entry := range entries {
		if len(paths) >= maxPatternPaths {
			break
		}
		rel := dir + "/" + entry.Name()
		if matcher.ShouldIgnore(rel, entry.IsDir()) {
			continue
		}
		paths = append(paths, rel)
	}
	return paths
}
