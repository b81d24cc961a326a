package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/crewkit-dev/crewkit/internal/analyzer"
	"github.com/crewkit-dev/crewkit/internal/cache"
	"github.com/crewkit-dev/crewkit/internal/evolve"
)

// IgnoreFile is the project-local exclusion list honored by analysis.
const IgnoreFile = ".crewkitignore"

func resolveProjectRoot(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	root, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", path, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("failed to access path %q: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path %q is not a directory", root)
	}
	return root, nil
}

// LoadIgnoreRules reads the project's ignore file. Absent means no rules.
func LoadIgnoreRules(rootPath string) ([]string, error) {
	f, err := os.Open(filepath.Join(rootPath, IgnoreFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", IgnoreFile, err)
	}
	defer f.Close()

	rules := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", IgnoreFile, err)
	}
	return rules, nil
}

// loadOrAnalyze produces the project profile, consulting the cache first.
// A cache write failure is logged and swallowed: caching is best effort,
// analysis results are not.
func (app *App) loadOrAnalyze(ctx context.Context, root string, noCache bool) (*analyzer.CodebaseAnalysis, bool, error) {
	fingerprint, err := cache.ComputeFingerprint(ctx, root)
	if err != nil {
		return nil, false, err
	}

	if !noCache {
		if cached, ok := app.Store.GetAnalysis(fingerprint); ok {
			cached.ProjectRoot = root
			return cached, true, nil
		}
	}

	rules, err := LoadIgnoreRules(root)
	if err != nil {
		return nil, false, err
	}

	analysis, err := analyzer.New(app.Log).Analyze(root, rules)
	if err != nil {
		return nil, false, err
	}

	if err := app.Store.SetAnalysis(fingerprint, analysis); err != nil {
		app.Log.Warn().Err(err).Msg("analysis cache write failed, continuing")
	}
	return analysis, false, nil
}

// readInstalled lists the agent and skill names currently configured under
// the project's .claude directory. Only entry names are read, never
// content; this stands in for the external configuration reader.
func readInstalled(root string) evolve.Installed {
	return evolve.Installed{
		Agents: entryNames(filepath.Join(root, ".claude", "agents")),
		Skills: entryNames(filepath.Join(root, ".claude", "skills")),
	}
}

func entryNames(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".md"))
	}
	sort.Strings(names)
	return names
}
