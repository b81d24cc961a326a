package analyzer

import "time"

// Classification values fall back to Unknown rather than erroring; the
// analyzer always produces a usable profile.
const Unknown = "unknown"

// Dependency is one declared dependency with its inferred category.
type Dependency struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Category string `json:"category"`
}

// Pattern is a structural signal detected from directory conventions.
type Pattern struct {
	Type        string   `json:"type"`
	Paths       []string `json:"paths"`
	Confidence  float64  `json:"confidence"`
	Description string   `json:"description"`
}

// Monorepo describes workspace layout when one is declared.
type Monorepo struct {
	IsMonorepo bool     `json:"isMonorepo"`
	Tool       string   `json:"tool"`
	Packages   []string `json:"packages"`
}

// CodebaseAnalysis is an immutable snapshot of a project at a point in
// time. It is a pure function of the project root and filesystem state,
// which makes it safely cacheable by a fingerprint of its inputs.
type CodebaseAnalysis struct {
	// ProjectRoot is the identity key; it is not persisted in the body.
	ProjectRoot string `json:"-"`

	ProjectType    string `json:"projectType"`
	Framework      string `json:"framework,omitempty"`
	Language       string `json:"language"`
	PackageManager string `json:"packageManager,omitempty"`

	Dependencies    []Dependency `json:"dependencies"`
	DevDependencies []Dependency `json:"devDependencies"`

	DetectedPatterns    []Pattern `json:"detectedPatterns"`
	NegativeConstraints []string  `json:"negativeConstraints"`

	// Suggested names inferred purely from the codebase, independent of
	// any stated goal.
	SuggestedAgents []string `json:"suggestedAgents"`
	SuggestedSkills []string `json:"suggestedSkills"`

	Monorepo *Monorepo `json:"monorepo,omitempty"`

	DevCommand   string `json:"devCommand,omitempty"`
	BuildCommand string `json:"buildCommand,omitempty"`
	TestCommand  string `json:"testCommand,omitempty"`
	LintCommand  string `json:"lintCommand,omitempty"`

	SampleFiles []string `json:"sampleFiles,omitempty"`

	TotalFiles     int       `json:"totalFiles"`
	TotalLines     int       `json:"totalLines"`
	AnalyzedAt     time.Time `json:"analyzedAt"`
	AnalysisTimeMs int64     `json:"analysisTimeMs"`
}

// DependencyNames returns the names in deps, preserving order.
func DependencyNames(deps []Dependency) []string {
	names := make([]string, 0, len(deps))
	for _, d := range deps {
		names = append(names, d.Name)
	}
	return names
}

// HasDependency reports whether name appears in either dependency group.
func (a *CodebaseAnalysis) HasDependency(name string) bool {
	for _, d := range a.Dependencies {
		if d.Name == name {
			return true
		}
	}
	for _, d := range a.DevDependencies {
		if d.Name == name {
			return true
		}
	}
	return false
}

// PatternTypes returns the detected pattern types, preserving order.
func (a *CodebaseAnalysis) PatternTypes() []string {
	types := make([]string, 0, len(a.DetectedPatterns))
	for _, p := range a.DetectedPatterns {
		types = append(types, p.Type)
	}
	return types
}
