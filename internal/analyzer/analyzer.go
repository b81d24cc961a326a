// Package analyzer turns a project directory into a CodebaseAnalysis
// profile. It is a heuristic signal extractor: it reads filenames,
// manifests, and lockfiles, never source-code semantics. Missing files are
// treated as "signal absent", so analysis always succeeds on a readable
// directory.
package analyzer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/crewkit-dev/crewkit/internal/ignore"
	"github.com/crewkit-dev/crewkit/internal/manifest"
)

// Analyzer inspects project directories. The zero value is not usable;
// construct with New.
type Analyzer struct {
	log zerolog.Logger
}

func New(log zerolog.Logger) *Analyzer {
	return &Analyzer{log: log}
}

// Analyze profiles the project rooted at projectRoot. The root must be an
// absolute path to an existing directory; everything else degrades to
// absent signals rather than errors.
func (a *Analyzer) Analyze(projectRoot string, ignoreRules []string) (*CodebaseAnalysis, error) {
	if strings.TrimSpace(projectRoot) == "" {
		return nil, fmt.Errorf("project root must not be empty")
	}
	if !filepath.IsAbs(projectRoot) {
		return nil, fmt.Errorf("project root %q must be an absolute path", projectRoot)
	}

	start := time.Now()
	matcher := ignore.NewMatcher(ignoreRules)

	pkg, err := manifest.LoadPackageJSON(projectRoot)
	if err != nil {
		a.log.Warn().Err(err).Msg("package.json unreadable, continuing without it")
		pkg = nil
	}
	cargo, err := manifest.LoadCargoManifest(projectRoot)
	if err != nil {
		a.log.Warn().Err(err).Msg("Cargo.toml unreadable, continuing without it")
		cargo = nil
	}
	pyproject, err := manifest.LoadPyProject(projectRoot)
	if err != nil {
		a.log.Warn().Err(err).Msg("pyproject.toml unreadable, continuing without it")
		pyproject = nil
	}

	analysis := &CodebaseAnalysis{
		ProjectRoot: projectRoot,
		ProjectType: detectProjectType(projectRoot, pkg),
		Framework:   detectFramework(projectRoot, pkg, cargo, pyproject),
		Language:    detectLanguage(projectRoot, pkg),
	}
	analysis.PackageManager = detectPackageManager(projectRoot, pkg)
	analysis.Dependencies, analysis.DevDependencies = extractDependencies(pkg, cargo, pyproject)
	analysis.DetectedPatterns = detectPatterns(projectRoot, matcher)
	analysis.NegativeConstraints = negativeConstraints(analysis)
	analysis.SuggestedAgents, analysis.SuggestedSkills = inferAgentsAndSkills(analysis)
	analysis.Monorepo = detectMonorepo(projectRoot, pkg)
	fillCommands(analysis, pkg)

	stats, err := collectStats(projectRoot, matcher)
	if err != nil {
		return nil, fmt.Errorf("failed to scan project files: %w", err)
	}
	analysis.TotalFiles = stats.totalFiles
	analysis.TotalLines = stats.totalLines
	analysis.SampleFiles = stats.samples

	analysis.AnalyzedAt = time.Now().UTC()
	analysis.AnalysisTimeMs = time.Since(start).Milliseconds()

	a.log.Debug().
		Str("project_type", analysis.ProjectType).
		Str("framework", analysis.Framework).
		Str("language", analysis.Language).
		Int("dependencies", len(analysis.Dependencies)+len(analysis.DevDependencies)).
		Int("patterns", len(analysis.DetectedPatterns)).
		Int64("elapsed_ms", analysis.AnalysisTimeMs).
		Msg("analysis complete")

	return analysis, nil
}

// detectProjectType checks markers in order: framework config files first,
// then manifest dependency sets, then bare language manifests.
func detectProjectType(root string, pkg *manifest.PackageJSON) string {
	for _, name := range []string{"next.config.js", "next.config.mjs", "next.config.ts"} {
		if manifest.Exists(root, name) {
			return "nextjs"
		}
	}
	if manifest.Exists(root, "vue.config.js") {
		return "vue"
	}
	if pkg.HasDependency("next") {
		return "nextjs"
	}
	if pkg.HasDependency("react") {
		return "react"
	}
	if pkg.HasDependency("vue") {
		return "vue"
	}
	if pkg != nil {
		return "node"
	}
	if manifest.Exists(root, "go.mod") {
		return "go"
	}
	if manifest.Exists(root, "Cargo.toml") {
		return "rust"
	}
	if manifest.Exists(root, "pyproject.toml") || manifest.Exists(root, "requirements.txt") {
		return "python"
	}
	return Unknown
}

// detectFramework is an ordered first-match scan independent of project
// type: a "node" project can still carry framework "express".
func detectFramework(root string, pkg *manifest.PackageJSON, cargo *manifest.CargoManifest, pyproject *manifest.PyProject) string {
	switch {
	case manifest.Exists(root, "next.config.js"),
		manifest.Exists(root, "next.config.mjs"),
		manifest.Exists(root, "next.config.ts"),
		pkg.HasDependency("next"):
		return "nextjs"
	case pkg.HasDependency("express"):
		return "express"
	case pkg.HasDependency("fastify"):
		return "fastify"
	case pkg.HasDependency("react"):
		return "react"
	case pkg.HasDependency("vue"):
		return "vue"
	}

	if manifest.Exists(root, "manage.py") || pythonDependsOn(pyproject, root, "django") {
		return "django"
	}
	if pythonDependsOn(pyproject, root, "flask") {
		return "flask"
	}
	if cargo != nil {
		if _, ok := cargo.Dependencies["actix-web"]; ok {
			return "actix"
		}
	}
	if goModRequires(root, "github.com/gin-gonic/gin") {
		return "gin"
	}
	return ""
}

func detectLanguage(root string, pkg *manifest.PackageJSON) string {
	if manifest.Exists(root, "tsconfig.json") || pkg.HasDependency("typescript") {
		return "typescript"
	}
	if pkg != nil {
		return "javascript"
	}
	if manifest.Exists(root, "go.mod") {
		return "go"
	}
	if manifest.Exists(root, "Cargo.toml") {
		return "rust"
	}
	if manifest.Exists(root, "pyproject.toml") || manifest.Exists(root, "requirements.txt") {
		return "python"
	}
	return Unknown
}

// detectPackageManager prefers lockfile evidence, defaulting to npm when a
// package.json exists without any lockfile.
func detectPackageManager(root string, pkg *manifest.PackageJSON) string {
	switch {
	case manifest.Exists(root, "pnpm-lock.yaml"):
		return "pnpm"
	case manifest.Exists(root, "yarn.lock"):
		return "yarn"
	case manifest.Exists(root, "bun.lockb"):
		return "bun"
	case manifest.Exists(root, "package-lock.json"):
		return "npm"
	case pkg != nil:
		return "npm"
	case manifest.Exists(root, "go.mod"):
		return "go"
	case manifest.Exists(root, "Cargo.toml"):
		return "cargo"
	case manifest.Exists(root, "pyproject.toml"), manifest.Exists(root, "requirements.txt"):
		return "pip"
	}
	return ""
}

// extractDependencies reads the manifest dependency groups in sorted name
// order and assigns each a category from the static lookup table.
func extractDependencies(pkg *manifest.PackageJSON, cargo *manifest.CargoManifest, pyproject *manifest.PyProject) (deps, devDeps []Dependency) {
	if pkg != nil {
		deps = categorize(pkg.Dependencies)
		devDeps = categorize(pkg.DevDependencies)
		return deps, devDeps
	}

	if cargo != nil {
		names := make(map[string]string, len(cargo.Dependencies))
		for name := range cargo.Dependencies {
			names[name] = ""
		}
		deps = categorize(names)

		devNames := make(map[string]string, len(cargo.DevDependencies))
		for name := range cargo.DevDependencies {
			devNames[name] = ""
		}
		devDeps = categorize(devNames)
		return deps, devDeps
	}

	if pyproject != nil {
		names := make(map[string]string, len(pyproject.Project.Dependencies))
		for _, spec := range pyproject.Project.Dependencies {
			name, version := splitRequirement(spec)
			names[name] = version
		}
		deps = categorize(names)
	}
	return deps, devDeps
}

func categorize(group map[string]string) []Dependency {
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)

	deps := make([]Dependency, 0, len(names))
	for _, name := range names {
		category, ok := dependencyCategories[name]
		if !ok {
			category = defaultCategory
		}
		deps = append(deps, Dependency{Name: name, Version: group[name], Category: category})
	}
	return deps
}

// splitRequirement separates a PEP 508-ish requirement like "django>=4.2"
// into name and version remainder.
func splitRequirement(spec string) (name, version string) {
	spec = strings.TrimSpace(spec)
	for i, r := range spec {
		if strings.ContainsRune("<>=!~ ;[", r) {
			return strings.TrimSpace(spec[:i]), strings.TrimSpace(spec[i:])
		}
	}
	return spec, ""
}

// negativeConstraints emits "Use A, NOT B" for each competing pair where
// the project depends on A but not B. Both directions of a pair are listed
// in the table, so only the detected side ever yields a rule.
func negativeConstraints(a *CodebaseAnalysis) []string {
	rules := make([]string, 0)
	for _, pair := range constraintPairs {
		if a.HasDependency(pair.keep) && !a.HasDependency(pair.avoid) {
			rules = append(rules, fmt.Sprintf("Use %s, NOT %s", pair.keep, pair.avoid))
		}
	}
	return rules
}

// inferAgentsAndSkills applies the static inference tables plus the fixed
// baseline set. Order is deterministic: baseline, then framework, then
// pattern (agents); framework, language, then dependency (skills).
func inferAgentsAndSkills(a *CodebaseAnalysis) (agents, skills []string) {
	agents = appendUnique(agents, baselineAgents...)
	agents = appendUnique(agents, frameworkAgents[a.Framework]...)
	for _, p := range a.DetectedPatterns {
		agents = appendUnique(agents, patternAgents[p.Type]...)
	}

	skills = appendUnique(skills, frameworkSkills[a.Framework]...)
	skills = appendUnique(skills, languageSkills[a.Language]...)
	for _, d := range a.Dependencies {
		if skill, ok := dependencySkills[d.Name]; ok {
			skills = appendUnique(skills, skill)
		}
	}
	for _, d := range a.DevDependencies {
		if skill, ok := dependencySkills[d.Name]; ok {
			skills = appendUnique(skills, skill)
		}
	}
	return agents, skills
}

func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, existing := range list {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}

// fillCommands derives the four project command strings from package.json
// scripts, prefixed by the detected package manager runner, or from
// language-toolchain defaults for non-node projects.
func fillCommands(a *CodebaseAnalysis, pkg *manifest.PackageJSON) {
	if pkg != nil {
		runner := scriptRunner(a.PackageManager)
		if _, ok := pkg.Scripts["dev"]; ok {
			a.DevCommand = runner + " dev"
		}
		if _, ok := pkg.Scripts["build"]; ok {
			a.BuildCommand = runner + " build"
		}
		if _, ok := pkg.Scripts["test"]; ok {
			a.TestCommand = runner + " test"
		}
		if _, ok := pkg.Scripts["lint"]; ok {
			a.LintCommand = runner + " lint"
		}
		return
	}

	switch a.ProjectType {
	case "go":
		a.BuildCommand = "go build ./..."
		a.TestCommand = "go test ./..."
		a.LintCommand = "go vet ./..."
	case "rust":
		a.BuildCommand = "cargo build"
		a.TestCommand = "cargo test"
		a.LintCommand = "cargo clippy"
	case "python":
		a.TestCommand = "pytest"
	}
}

func scriptRunner(packageManager string) string {
	switch packageManager {
	case "pnpm":
		return "pnpm"
	case "yarn":
		return "yarn"
	case "bun":
		return "bun run"
	default:
		return "npm run"
	}
}

func goModRequires(root, modulePath string) bool {
	data, err := manifest.ReadRoot(root, "go.mod")
	if err != nil {
		return false
	}
	return strings.Contains(string(data), modulePath)
}

func pythonDependsOn(pyproject *manifest.PyProject, root, name string) bool {
	if pyproject != nil {
		for _, spec := range pyproject.Project.Dependencies {
			depName, _ := splitRequirement(spec)
			if strings.EqualFold(depName, name) {
				return true
			}
		}
	}
	data, err := manifest.ReadRoot(root, "requirements.txt")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(string(data), "\n") {
		depName, _ := splitRequirement(line)
		if strings.EqualFold(depName, name) {
			return true
		}
	}
	return false
}
