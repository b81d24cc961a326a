package evolve

import (
	"fmt"
	"strings"

	"github.com/crewkit-dev/crewkit/internal/recommend"
)

// ProposalType enumerates the configuration changes evolve can suggest.
type ProposalType string

const (
	AddAgent       ProposalType = "add-agent"
	RemoveAgent    ProposalType = "remove-agent"
	AddSkill       ProposalType = "add-skill"
	RemoveSkill    ProposalType = "remove-skill"
	UpdateClaudeMD ProposalType = "update-claude-md"
)

// Proposal is one suggested configuration change.
type Proposal struct {
	Type   ProposalType `json:"type"`
	Name   string       `json:"name"`
	Reason string       `json:"reason"`
}

// Installed lists the agent and skill names currently configured for the
// project, as supplied by the configuration reader.
type Installed struct {
	Agents []string
	Skills []string
}

// proposalSkills maps dependency names to the skill that supports them.
var proposalSkills = map[string]string{
	"prisma":            "prisma",
	"@prisma/client":    "prisma",
	"drizzle-orm":       "drizzle",
	"stripe":            "stripe",
	"@stripe/stripe-js": "stripe",
	"tailwindcss":       "tailwind",
	"vitest":            "vitest",
	"jest":              "jest",
	"playwright":        "playwright",
	"@playwright/test":  "playwright",
	"next-auth":         "auth",
	"socket.io":         "websockets",
	"graphql":           "graphql",
	"redis":             "caching",
	"zod":               "validation",
}

// proposalAgents maps newly-detected pattern types to the agent that
// covers them.
var proposalAgents = map[string]string{
	"api-routes": "backend-engineer",
	"components": "frontend-engineer",
	"tests":      "test-engineer",
	"database":   "database-architect",
	"auth":       "security-analyst",
	"ci":         "devops-engineer",
	"docker":     "devops-engineer",
}

// Propose maps deltas to configuration proposals via the static lookup
// tables. The result is deduplicated on (type, name) with first occurrence
// winning, which guarantees at most one update-claude-md proposal no
// matter how many command or framework deltas fired.
func Propose(deltas []Delta, installed Installed) []Proposal {
	proposals := make([]Proposal, 0)
	installedAgents := toSet(installed.Agents)
	installedSkills := toSet(installed.Skills)

	for _, delta := range deltas {
		switch {
		case delta.Field == "dependencies" || delta.Field == "devDependencies":
			for _, name := range splitNames(delta.After, noneNewSentinel) {
				skill, ok := proposalSkills[name]
				if !ok || installedSkills[skill] {
					continue
				}
				proposals = append(proposals, Proposal{
					Type:   AddSkill,
					Name:   skill,
					Reason: fmt.Sprintf("New dependency %s detected", name),
				})
			}
			for _, name := range splitNames(delta.Before, noneSentinel) {
				skill, ok := proposalSkills[name]
				if !ok || !installedSkills[skill] {
					continue
				}
				proposals = append(proposals, Proposal{
					Type:   RemoveSkill,
					Name:   skill,
					Reason: fmt.Sprintf("Dependency %s was removed", name),
				})
			}

		case delta.Field == "detectedPatterns":
			for _, patternType := range splitNames(delta.After, noneNewSentinel) {
				agent, ok := proposalAgents[patternType]
				if !ok || installedAgents[agent] {
					continue
				}
				proposals = append(proposals, Proposal{
					Type:   AddAgent,
					Name:   agent,
					Reason: fmt.Sprintf("New %s structure detected", patternType),
				})
			}

		case delta.Field == "framework" || strings.HasSuffix(delta.Field, "Command"):
			proposals = append(proposals, Proposal{
				Type:   UpdateClaudeMD,
				Name:   "CLAUDE.md",
				Reason: fmt.Sprintf("%s changed from %s to %s", delta.Label, delta.Before, delta.After),
			})
		}
	}

	return dedupe(proposals)
}

// MergeRecommended appends add proposals for engine defaults that are not
// yet installed, then re-deduplicates. This is the evolve-time composition
// described by the pipeline: the rule-table proposer stays independent,
// and the recommendation engine contributes "what would be recommended
// today" as one more signal.
func MergeRecommended(proposals []Proposal, recs *recommend.Recommendations, installed Installed) []Proposal {
	if recs == nil {
		return dedupe(proposals)
	}

	installedAgents := toSet(installed.Agents)
	installedSkills := toSet(installed.Skills)

	for _, name := range recs.DefaultAgents {
		if installedAgents[name] {
			continue
		}
		proposals = append(proposals, Proposal{
			Type:   AddAgent,
			Name:   name,
			Reason: "Recommended for your project today",
		})
	}
	for _, name := range recs.DefaultSkills {
		if installedSkills[name] {
			continue
		}
		proposals = append(proposals, Proposal{
			Type:   AddSkill,
			Name:   name,
			Reason: "Recommended for your project today",
		})
	}

	return dedupe(proposals)
}

// dedupe keeps the first proposal for each (type, name) pair.
func dedupe(proposals []Proposal) []Proposal {
	seen := make(map[string]bool, len(proposals))
	out := make([]Proposal, 0, len(proposals))
	for _, p := range proposals {
		key := string(p.Type) + "\x00" + p.Name
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// splitNames parses a joined delta value back into names, treating the
// sentinel as empty.
func splitNames(joined, sentinel string) []string {
	if joined == "" || joined == sentinel {
		return nil
	}
	parts := strings.Split(joined, ", ")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
