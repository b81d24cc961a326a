package analyzer

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/crewkit-dev/crewkit/internal/fileutil"
	"github.com/crewkit-dev/crewkit/internal/ignore"
)

// maxSampleFiles caps the representative files recorded for downstream
// consumers.
const maxSampleFiles = 20

// sourceExtensions are the file types that count toward line totals and
// sampling. Everything else still counts toward totalFiles.
var sourceExtensions = map[string]bool{
	".ts": true, ".tsx": true, ".js": true, ".jsx": true, ".mjs": true,
	".go": true, ".rs": true, ".py": true, ".rb": true,
	".vue": true, ".svelte": true,
}

type projectStats struct {
	totalFiles int
	totalLines int
	samples    []string
}

// collectStats counts files and lines under the project root, honoring the
// ignore matcher, and samples representative source files in sorted path
// order.
func collectStats(root string, matcher *ignore.Matcher) (projectStats, error) {
	stats := projectStats{samples: make([]string, 0, maxSampleFiles)}

	paths, err := fileutil.ListFilePaths(root, matcher.ShouldIgnore)
	if err != nil {
		return stats, err
	}

	for _, rel := range paths {
		stats.totalFiles++
		if !sourceExtensions[strings.ToLower(filepath.Ext(rel))] {
			continue
		}

		lines, err := countLines(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			continue
		}
		stats.totalLines += lines

		if len(stats.samples) < maxSampleFiles {
			stats.samples = append(stats.samples, rel)
		}
	}

	return stats, nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
