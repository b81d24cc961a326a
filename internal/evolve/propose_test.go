package evolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewkit-dev/crewkit/internal/recommend"
)

func TestPropose_AddSkillForNewDependency(t *testing.T) {
	deltas := []Delta{
		{Field: "devDependencies", Label: "Dev dependencies", Before: "(none)", After: "vitest"},
	}

	proposals := Propose(deltas, Installed{})
	require.Len(t, proposals, 1)
	assert.Equal(t, AddSkill, proposals[0].Type)
	assert.Equal(t, "vitest", proposals[0].Name)
}

func TestPropose_SkipsInstalledSkill(t *testing.T) {
	deltas := []Delta{
		{Field: "dependencies", Before: "(none)", After: "stripe"},
	}

	proposals := Propose(deltas, Installed{Skills: []string{"stripe"}})
	assert.Empty(t, proposals)
}

func TestPropose_RemoveSkillForRemovedDependency(t *testing.T) {
	deltas := []Delta{
		{Field: "dependencies", Before: "stripe", After: "(none new)"},
	}

	// Removal only proposes when the skill is actually installed.
	proposals := Propose(deltas, Installed{Skills: []string{"stripe"}})
	require.Len(t, proposals, 1)
	assert.Equal(t, RemoveSkill, proposals[0].Type)
	assert.Equal(t, "stripe", proposals[0].Name)

	assert.Empty(t, Propose(deltas, Installed{}))
}

func TestPropose_AddAgentForNewPattern(t *testing.T) {
	deltas := []Delta{
		{Field: "detectedPatterns", Before: "(none)", After: "api-routes, tests"},
	}

	proposals := Propose(deltas, Installed{Agents: []string{"test-engineer"}})
	require.Len(t, proposals, 1)
	assert.Equal(t, AddAgent, proposals[0].Type)
	assert.Equal(t, "backend-engineer", proposals[0].Name)
}

func TestPropose_NewDockerPatternProposesDevopsAgent(t *testing.T) {
	deltas := []Delta{
		{Field: "detectedPatterns", Before: "(none)", After: "docker"},
	}

	proposals := Propose(deltas, Installed{})
	require.Len(t, proposals, 1)
	assert.Equal(t, AddAgent, proposals[0].Type)
	assert.Equal(t, "devops-engineer", proposals[0].Name)
}

func TestPropose_UpdateClaudeMDDedupedAcrossDeltas(t *testing.T) {
	deltas := []Delta{
		{Field: "framework", Label: "Framework", Before: "none", After: "nextjs"},
		{Field: "devCommand", Label: "Dev command", Before: "(none)", After: "pnpm dev"},
		{Field: "buildCommand", Label: "Build command", Before: "(none)", After: "pnpm build"},
	}

	proposals := Propose(deltas, Installed{})
	require.Len(t, proposals, 1, "at most one update-claude-md regardless of how many deltas fired")
	assert.Equal(t, UpdateClaudeMD, proposals[0].Type)
	assert.Equal(t, "CLAUDE.md", proposals[0].Name)
}

func TestPropose_DedupOnTypeAndName(t *testing.T) {
	// The same skill surfacing from both dependency groups.
	deltas := []Delta{
		{Field: "dependencies", Before: "(none)", After: "prisma"},
		{Field: "devDependencies", Before: "(none)", After: "@prisma/client"},
	}

	proposals := Propose(deltas, Installed{})
	require.Len(t, proposals, 1)
	assert.Equal(t, AddSkill, proposals[0].Type)
	assert.Equal(t, "prisma", proposals[0].Name)
}

func TestPropose_NeverDuplicates(t *testing.T) {
	deltas := []Delta{
		{Field: "dependencies", Before: "jest", After: "vitest, stripe"},
		{Field: "detectedPatterns", Before: "(none)", After: "api-routes, database"},
		{Field: "framework", Before: "none", After: "express"},
		{Field: "testCommand", Before: "(none)", After: "npm run test"},
	}

	proposals := Propose(deltas, Installed{Skills: []string{"jest"}})

	seen := make(map[string]bool)
	for _, p := range proposals {
		key := string(p.Type) + "/" + p.Name
		assert.False(t, seen[key], "duplicate proposal %s", key)
		seen[key] = true
	}
}

func TestMergeRecommended_AddsMissingDefaults(t *testing.T) {
	recs := &recommend.Recommendations{
		DefaultAgents: []string{"backend-engineer", "frontend-engineer"},
		DefaultSkills: []string{"stripe"},
	}
	installed := Installed{Agents: []string{"frontend-engineer"}}

	base := []Proposal{{Type: AddAgent, Name: "backend-engineer", Reason: "New api-routes structure detected"}}
	merged := MergeRecommended(base, recs, installed)

	require.Len(t, merged, 2)
	// The rule-table proposal wins the dedup for backend-engineer.
	assert.Equal(t, "New api-routes structure detected", merged[0].Reason)
	assert.Equal(t, AddSkill, merged[1].Type)
	assert.Equal(t, "stripe", merged[1].Name)
}

func TestMergeRecommended_NilRecommendations(t *testing.T) {
	base := []Proposal{{Type: AddSkill, Name: "vitest"}, {Type: AddSkill, Name: "vitest"}}
	merged := MergeRecommended(base, nil, Installed{})
	assert.Len(t, merged, 1, "merge still deduplicates")
}
