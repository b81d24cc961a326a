// Package recommend ranks agents and skills for a project given a stated
// goal. Scoring is deterministic and explainable: every point added to a
// candidate carries a reason, and identical inputs always produce
// identical output.
package recommend

import (
	"regexp"
	"sort"
	"strings"

	"github.com/crewkit-dev/crewkit/internal/analyzer"
)

const (
	keywordSkillReason = "Mentioned in your goal"
	keywordAgentReason = "Relevant to your tech stack"
	codebaseReason     = "Detected in your codebase"
)

// Recommend scores candidates from four weighted signal sources, in a
// fixed order where each source only ever adds:
//
//  1. goal-category presets (priority × 10 base score)
//  2. technology keywords found in the goal description
//  3. explicit requirement flags
//  4. codebase-detected suggestions (weakest signal, +15)
//
// Keyword and requirement reasons are inserted at the front of the reason
// list; codebase reasons are appended at the end. The asymmetry is
// deliberate: explicit user signals outrank passive detection in the
// displayed explanation.
//
// The analysis may be nil (no codebase available); recommendations then
// fall back to presets and keywords alone.
func Recommend(goal Goal, analysis *analyzer.CodebaseAnalysis, tables *Tables) *Recommendations {
	agents := newScoreSet()
	skills := newScoreSet()

	applyPresets(goal, tables, agents, skills)
	applyKeywords(goal, tables, agents, skills)
	applyRequirements(goal, tables, agents, skills)
	applyCodebase(analysis, agents, skills)
	substituteReasons(analysis, tables, agents)

	return &Recommendations{
		Agents:          agents.ranked(),
		Skills:          skills.ranked(),
		DefaultAgents:   defaultAgents(agents, tables),
		DefaultSkills:   defaultSkills(skills),
		AgentSkillLinks: tables.AgentSkillLinks,
	}
}

func applyPresets(goal Goal, tables *Tables, agents, skills *scoreSet) {
	preset, ok := tables.Presets[goal.Category]
	if !ok {
		return
	}
	for _, p := range preset.Agents {
		agents.add(p.Name, p.Priority*presetWeight, p.Reason, false)
	}
	for _, p := range preset.Skills {
		skills.add(p.Name, p.Priority*presetWeight, p.Reason, false)
	}
}

var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9.+-]*`)

func applyKeywords(goal Goal, tables *Tables, agents, skills *scoreSet) {
	tokens := make(map[string]bool)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(goal.Description), -1) {
		tokens[strings.Trim(tok, ".")] = true
	}
	if len(tokens) == 0 {
		return
	}

	for _, rule := range tables.Keywords {
		if !tokens[strings.Trim(rule.Keyword, ".")] {
			continue
		}
		for _, name := range rule.Skills {
			skills.seedOrBoost(name, keywordSkillSeed, keywordSkillBoost, keywordSkillReason)
		}
		for _, name := range rule.Agents {
			agents.seedOrBoost(name, keywordAgentSeed, keywordAgentBoost, keywordAgentReason)
		}
	}
}

func applyRequirements(goal Goal, tables *Tables, agents, skills *scoreSet) {
	for _, req := range goal.Requirements {
		rule, ok := tables.Requirements[req]
		if !ok {
			continue
		}
		for _, name := range rule.Agents {
			agents.seedOrBoost(name, requirementAgentSeed, requirementAgentBoost, rule.Reason)
		}
		for _, name := range rule.Skills {
			skills.seedOrBoost(name, requirementSkillSeed, requirementSkillBoost, rule.Reason)
		}
	}
}

// applyCodebase is the weakest source: +15 with the reason appended, not
// prepended, so passive detection never displaces a user-intent reason.
func applyCodebase(analysis *analyzer.CodebaseAnalysis, agents, skills *scoreSet) {
	if analysis == nil {
		return
	}
	for _, name := range analysis.SuggestedAgents {
		agents.add(name, codebaseBoost, codebaseReason, false)
	}
	for _, name := range analysis.SuggestedSkills {
		skills.add(name, codebaseBoost, codebaseReason, false)
	}
}

// substituteReasons replaces an agent's first reason with a
// project-specific sentence when a substitution rule fires. Presentation
// only: no score or ranking effect.
func substituteReasons(analysis *analyzer.CodebaseAnalysis, tables *Tables, agents *scoreSet) {
	if analysis == nil {
		return
	}
	for _, score := range agents.order {
		rule, ok := tables.Substitutions[score.Name]
		if !ok || len(score.Reasons) == 0 {
			continue
		}
		if sentence, ok := rule(analysis); ok {
			score.Reasons[0] = sentence
		}
	}
}

func defaultAgents(agents *scoreSet, tables *Tables) []string {
	suppressed := make(map[string]bool, len(tables.Suppressed))
	for _, name := range tables.Suppressed {
		suppressed[name] = true
	}

	candidates := make([]Score, 0)
	for _, s := range agents.ranked() {
		if s.Score >= defaultAgentThreshold && !suppressed[s.Name] {
			candidates = append(candidates, s)
		}
	}

	// Cap before resolving overlaps: a group collision inside the top
	// ranks shrinks the defaults rather than backfilling from below.
	if len(candidates) > maxDefaultAgents {
		candidates = candidates[:maxDefaultAgents]
	}
	candidates = suppressOverlap(candidates, tables.OverlapGroups)

	names := make([]string, 0, len(candidates))
	for _, s := range candidates {
		names = append(names, s.Name)
	}
	return names
}

// suppressOverlap keeps only the highest-scored member of each
// mutually-redundant group, breaking score ties by group table order.
func suppressOverlap(candidates []Score, groups [][]string) []Score {
	drop := make(map[string]bool)

	for _, group := range groups {
		best := ""
		bestScore := 0
		for _, member := range group {
			for _, c := range candidates {
				if c.Name != member {
					continue
				}
				// Strict > keeps the earlier table entry on ties.
				if best == "" || c.Score > bestScore {
					best = c.Name
					bestScore = c.Score
				}
			}
		}
		if best == "" {
			continue
		}
		for _, member := range group {
			if member != best {
				drop[member] = true
			}
		}
	}

	if len(drop) == 0 {
		return candidates
	}
	kept := candidates[:0]
	for _, c := range candidates {
		if !drop[c.Name] {
			kept = append(kept, c)
		}
	}
	return kept
}

func defaultSkills(skills *scoreSet) []string {
	names := make([]string, 0, maxDefaultSkills)
	for _, s := range skills.ranked() {
		if s.Score < defaultSkillThreshold {
			continue
		}
		if len(names) == maxDefaultSkills {
			break
		}
		names = append(names, s.Name)
	}
	return names
}

// scoreSet is the per-call accumulator: a keyed map plus insertion order,
// scoped strictly to one recommendation call.
type scoreSet struct {
	order []*Score
	index map[string]*Score
}

func newScoreSet() *scoreSet {
	return &scoreSet{index: make(map[string]*Score)}
}

// add accumulates points onto name, seeding it when absent. The reason is
// prepended when prepend is set, appended otherwise; exact-duplicate
// reasons are never added twice.
func (s *scoreSet) add(name string, points int, reason string, prepend bool) {
	entry, ok := s.index[name]
	if !ok {
		entry = &Score{Name: name, Reasons: []string{reason}, Score: points}
		s.index[name] = entry
		s.order = append(s.order, entry)
		return
	}

	entry.Score += points
	for _, existing := range entry.Reasons {
		if existing == reason {
			return
		}
	}
	if prepend {
		entry.Reasons = append([]string{reason}, entry.Reasons...)
	} else {
		entry.Reasons = append(entry.Reasons, reason)
	}
}

// seedOrBoost seeds a new entry at seed points, or adds boost points to an
// entry already present from another source. Either way the reason goes to
// the front of the list.
func (s *scoreSet) seedOrBoost(name string, seed, boost int, reason string) {
	if _, ok := s.index[name]; ok {
		s.add(name, boost, reason, true)
		return
	}
	s.add(name, seed, reason, true)
}

// ranked returns the entries sorted by descending score. The sort is
// stable: ties preserve insertion order, which reflects preset-table
// order, so output is reproducible for identical inputs.
func (s *scoreSet) ranked() []Score {
	out := make([]Score, len(s.order))
	for i, entry := range s.order {
		reasons := make([]string, len(entry.Reasons))
		copy(reasons, entry.Reasons)
		out[i] = Score{Name: entry.Name, Score: entry.Score, Reasons: reasons}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
