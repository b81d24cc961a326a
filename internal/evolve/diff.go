// Package evolve detects how a project has drifted since its last
// recorded analysis and proposes incremental configuration updates. The
// proposer is a rule table, not an AI: every proposal is derivable from a
// delta plus a static lookup.
package evolve

import (
	"sort"
	"strings"

	"github.com/crewkit-dev/crewkit/internal/analyzer"
)

// Sentinel strings denote absence in delta output; they are display
// values, never domain values.
const (
	noneSentinel    = "(none)"
	noneNewSentinel = "(none new)"
)

// Delta records one changed facet of the profile as stringified
// before/after values.
type Delta struct {
	Field  string `json:"field"`
	Label  string `json:"label"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Diff compares two analysis snapshots field by field. Unchanged fields
// emit nothing: the output length is exactly the number of changed facets.
// Diffing a snapshot against itself returns an empty list.
func Diff(before, after *analyzer.CodebaseAnalysis) []Delta {
	deltas := make([]Delta, 0)

	deltas = appendSetDelta(deltas, "dependencies", "Dependencies",
		analyzer.DependencyNames(before.Dependencies), analyzer.DependencyNames(after.Dependencies))
	deltas = appendSetDelta(deltas, "devDependencies", "Dev dependencies",
		analyzer.DependencyNames(before.DevDependencies), analyzer.DependencyNames(after.DevDependencies))
	deltas = appendSetDelta(deltas, "detectedPatterns", "Detected patterns",
		before.PatternTypes(), after.PatternTypes())
	deltas = appendSetDelta(deltas, "negativeConstraints", "Constraints",
		before.NegativeConstraints, after.NegativeConstraints)

	deltas = appendValueDelta(deltas, "framework", "Framework", before.Framework, after.Framework, "none")
	deltas = appendValueDelta(deltas, "devCommand", "Dev command", before.DevCommand, after.DevCommand, noneSentinel)
	deltas = appendValueDelta(deltas, "buildCommand", "Build command", before.BuildCommand, after.BuildCommand, noneSentinel)
	deltas = appendValueDelta(deltas, "testCommand", "Test command", before.TestCommand, after.TestCommand, noneSentinel)
	deltas = appendValueDelta(deltas, "lintCommand", "Lint command", before.LintCommand, after.LintCommand, noneSentinel)

	return deltas
}

// appendSetDelta diffs two name sets on a derived key and emits one delta
// only when something was added or removed. Removed names render in
// Before, added names in After.
func appendSetDelta(deltas []Delta, field, label string, before, after []string) []Delta {
	added, removed := setDifference(before, after)
	if len(added) == 0 && len(removed) == 0 {
		return deltas
	}

	delta := Delta{Field: field, Label: label, Before: noneSentinel, After: noneNewSentinel}
	if len(removed) > 0 {
		delta.Before = strings.Join(removed, ", ")
	}
	if len(added) > 0 {
		delta.After = strings.Join(added, ", ")
	}
	return append(deltas, delta)
}

func appendValueDelta(deltas []Delta, field, label, before, after, absent string) []Delta {
	if before == after {
		return deltas
	}
	if before == "" {
		before = absent
	}
	if after == "" {
		after = absent
	}
	return append(deltas, Delta{Field: field, Label: label, Before: before, After: after})
}

// setDifference returns the names present only in after (added) and only
// in before (removed), each sorted for stable output.
func setDifference(before, after []string) (added, removed []string) {
	beforeSet := make(map[string]bool, len(before))
	for _, name := range before {
		beforeSet[name] = true
	}
	afterSet := make(map[string]bool, len(after))
	for _, name := range after {
		afterSet[name] = true
	}

	for name := range afterSet {
		if !beforeSet[name] {
			added = append(added, name)
		}
	}
	for name := range beforeSet {
		if !afterSet[name] {
			removed = append(removed, name)
		}
	}

	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}
