package recommend

import (
	"fmt"

	"github.com/crewkit-dev/crewkit/internal/analyzer"
)

// Scoring weights. Each accumulation source only ever adds; see Recommend
// for the pass order.
const (
	presetWeight = 10 // multiplied by preset priority (1-10)

	keywordSkillSeed  = 80
	keywordAgentSeed  = 60
	keywordSkillBoost = 50
	keywordAgentBoost = 30

	requirementAgentSeed  = 70
	requirementSkillSeed  = 60
	requirementAgentBoost = 40
	requirementSkillBoost = 30

	codebaseBoost = 15

	defaultAgentThreshold = 80
	defaultSkillThreshold = 70
	maxDefaultAgents      = 3
	maxDefaultSkills      = 5
)

// Preset is one goal-category table entry.
type Preset struct {
	Name     string
	Priority int // 1-10
	Reason   string
}

// CategoryPreset lists the agents and skills seeded for one goal category.
type CategoryPreset struct {
	Agents []Preset
	Skills []Preset
}

// KeywordRule associates one technology token, matched as a whole word in
// the goal description, with agents and skills.
type KeywordRule struct {
	Keyword string
	Agents  []string
	Skills  []string
}

// RequirementRule maps one structured requirement flag to boosts.
type RequirementRule struct {
	Agents []string
	Skills []string
	Reason string
}

// Tables is the immutable configuration for one recommendation pass. All
// scoring functions take it as a parameter; nothing here is mutated.
type Tables struct {
	Presets      map[string]CategoryPreset
	Keywords     []KeywordRule
	Requirements map[string]RequirementRule

	// Suppressed agents are supplementary-only: they rank but are never
	// promoted into DefaultAgents.
	Suppressed []string

	// OverlapGroups list mutually-redundant agent names; at most one
	// member of each group survives in DefaultAgents. Ties break by
	// group order.
	OverlapGroups [][]string

	AgentSkillLinks map[string][]string

	// Substitutions optionally replace an agent's first reason with a
	// sentence derived from codebase facts. Presentation only: scores
	// and ranking are unaffected.
	Substitutions map[string]func(*analyzer.CodebaseAnalysis) (string, bool)
}

// DefaultTables returns the built-in configuration. The result is shared;
// callers must treat it as read-only.
func DefaultTables() *Tables {
	return defaultTables
}

var defaultTables = &Tables{
	Presets: map[string]CategoryPreset{
		"saas-dashboard": {
			Agents: []Preset{
				{Name: "frontend-engineer", Priority: 9, Reason: "Dashboards are UI-heavy"},
				{Name: "backend-engineer", Priority: 8, Reason: "Dashboards need data APIs"},
				{Name: "database-architect", Priority: 7, Reason: "Multi-tenant data modeling"},
				{Name: "performance-optimizer", Priority: 5, Reason: "Dashboard rendering performance"},
			},
			Skills: []Preset{
				{Name: "react", Priority: 8, Reason: "Standard dashboard stack"},
				{Name: "charts", Priority: 7, Reason: "Dashboards visualize data"},
				{Name: "auth", Priority: 7, Reason: "SaaS needs user accounts"},
				{Name: "caching", Priority: 5, Reason: "Dashboard query caching"},
			},
		},
		"e-commerce": {
			Agents: []Preset{
				{Name: "backend-engineer", Priority: 9, Reason: "Checkout and order flows"},
				{Name: "frontend-engineer", Priority: 8, Reason: "Product and cart UI"},
				{Name: "security-analyst", Priority: 8, Reason: "Payment flows need review"},
			},
			Skills: []Preset{
				{Name: "stripe", Priority: 9, Reason: "Payment processing"},
				{Name: "auth", Priority: 7, Reason: "Customer accounts"},
				{Name: "seo", Priority: 6, Reason: "Product page discoverability"},
			},
		},
		"api-service": {
			Agents: []Preset{
				{Name: "backend-engineer", Priority: 10, Reason: "API design and implementation"},
				{Name: "test-engineer", Priority: 8, Reason: "Contract test coverage"},
				{Name: "security-analyst", Priority: 7, Reason: "Input validation and auth"},
				{Name: "docs-writer", Priority: 5, Reason: "API reference documentation"},
			},
			Skills: []Preset{
				{Name: "openapi", Priority: 8, Reason: "API schema definitions"},
				{Name: "validation", Priority: 7, Reason: "Request validation"},
				{Name: "caching", Priority: 6, Reason: "Response caching"},
			},
		},
		"content-site": {
			Agents: []Preset{
				{Name: "frontend-engineer", Priority: 9, Reason: "Content presentation"},
				{Name: "accessibility-auditor", Priority: 6, Reason: "Content must be accessible"},
			},
			Skills: []Preset{
				{Name: "nextjs", Priority: 8, Reason: "Static and server rendering"},
				{Name: "seo", Priority: 8, Reason: "Content discoverability"},
				{Name: "markdown", Priority: 7, Reason: "Content authoring"},
			},
		},
		"realtime-app": {
			Agents: []Preset{
				{Name: "backend-engineer", Priority: 9, Reason: "Event delivery infrastructure"},
				{Name: "frontend-engineer", Priority: 8, Reason: "Live UI updates"},
				{Name: "performance-optimizer", Priority: 7, Reason: "Latency budgets"},
			},
			Skills: []Preset{
				{Name: "websockets", Priority: 9, Reason: "Bidirectional messaging"},
				{Name: "caching", Priority: 6, Reason: "Hot-path state"},
			},
		},
		"cli-tool": {
			Agents: []Preset{
				{Name: "backend-engineer", Priority: 9, Reason: "Command and I/O design"},
				{Name: "test-engineer", Priority: 7, Reason: "CLI behavior coverage"},
				{Name: "docs-writer", Priority: 6, Reason: "Usage documentation"},
			},
			Skills: []Preset{
				{Name: "golang", Priority: 7, Reason: "Common CLI implementation language"},
				{Name: "packaging", Priority: 6, Reason: "Distribution builds"},
			},
		},
		"automation": {
			Agents: []Preset{
				{Name: "backend-engineer", Priority: 8, Reason: "Workflow orchestration"},
				{Name: "devops-engineer", Priority: 8, Reason: "Scheduling and deployment"},
			},
			Skills: []Preset{
				{Name: "github-actions", Priority: 7, Reason: "Pipeline automation"},
				{Name: "scripting", Priority: 6, Reason: "Glue tasks"},
			},
		},
		"custom": {
			Agents: []Preset{
				{Name: "backend-engineer", Priority: 6, Reason: "General implementation work"},
				{Name: "frontend-engineer", Priority: 6, Reason: "General UI work"},
			},
			Skills: nil,
		},
	},

	Keywords: []KeywordRule{
		{Keyword: "stripe", Skills: []string{"stripe"}, Agents: []string{"backend-engineer", "security-analyst"}},
		{Keyword: "payment", Skills: []string{"stripe"}, Agents: []string{"backend-engineer", "security-analyst"}},
		{Keyword: "payments", Skills: []string{"stripe"}, Agents: []string{"backend-engineer", "security-analyst"}},
		{Keyword: "auth", Skills: []string{"auth"}, Agents: []string{"security-analyst"}},
		{Keyword: "authentication", Skills: []string{"auth"}, Agents: []string{"security-analyst"}},
		{Keyword: "login", Skills: []string{"auth"}, Agents: []string{"security-analyst"}},
		{Keyword: "nextjs", Skills: []string{"nextjs"}, Agents: []string{"frontend-engineer"}},
		{Keyword: "next.js", Skills: []string{"nextjs"}, Agents: []string{"frontend-engineer"}},
		{Keyword: "react", Skills: []string{"react"}, Agents: []string{"frontend-engineer"}},
		{Keyword: "vue", Skills: []string{"vue"}, Agents: []string{"frontend-engineer"}},
		{Keyword: "prisma", Skills: []string{"prisma"}, Agents: []string{"database-architect"}},
		{Keyword: "postgres", Skills: []string{"prisma"}, Agents: []string{"database-architect"}},
		{Keyword: "database", Skills: []string{"prisma"}, Agents: []string{"database-architect"}},
		{Keyword: "graphql", Skills: []string{"graphql"}, Agents: []string{"backend-engineer"}},
		{Keyword: "websocket", Skills: []string{"websockets"}, Agents: []string{"backend-engineer"}},
		{Keyword: "websockets", Skills: []string{"websockets"}, Agents: []string{"backend-engineer"}},
		{Keyword: "realtime", Skills: []string{"websockets"}, Agents: []string{"backend-engineer"}},
		{Keyword: "tailwind", Skills: []string{"tailwind"}, Agents: []string{"frontend-engineer"}},
		{Keyword: "tests", Skills: []string{"vitest"}, Agents: []string{"test-engineer"}},
		{Keyword: "testing", Skills: []string{"vitest"}, Agents: []string{"test-engineer"}},
		{Keyword: "docker", Skills: []string{"docker"}, Agents: []string{"devops-engineer"}},
		{Keyword: "kubernetes", Skills: []string{"kubernetes"}, Agents: []string{"devops-engineer"}},
		{Keyword: "seo", Skills: []string{"seo"}, Agents: []string{"frontend-engineer"}},
	},

	Requirements: map[string]RequirementRule{
		"auth": {
			Agents: []string{"security-analyst"},
			Skills: []string{"auth"},
			Reason: "You need authentication",
		},
		"payments": {
			Agents: []string{"backend-engineer", "security-analyst"},
			Skills: []string{"stripe"},
			Reason: "You need payment processing",
		},
		"database": {
			Agents: []string{"database-architect"},
			Skills: []string{"prisma"},
			Reason: "You need persistent storage",
		},
		"realtime": {
			Agents: []string{"backend-engineer"},
			Skills: []string{"websockets"},
			Reason: "You need realtime updates",
		},
		"api": {
			Agents: []string{"backend-engineer"},
			Skills: []string{"openapi"},
			Reason: "You need an API surface",
		},
	},

	Suppressed: []string{"performance-optimizer", "docs-writer", "accessibility-auditor"},

	OverlapGroups: [][]string{
		{"tech-lead", "staff-engineer"},
		{"frontend-engineer", "ui-engineer"},
	},

	AgentSkillLinks: map[string][]string{
		"frontend-engineer":  {"react", "tailwind"},
		"backend-engineer":   {"openapi", "validation"},
		"database-architect": {"prisma"},
		"security-analyst":   {"auth"},
		"test-engineer":      {"vitest", "playwright"},
		"devops-engineer":    {"docker", "github-actions"},
	},

	Substitutions: map[string]func(*analyzer.CodebaseAnalysis) (string, bool){
		"frontend-engineer": func(a *analyzer.CodebaseAnalysis) (string, bool) {
			for _, p := range a.DetectedPatterns {
				if p.Type == "components" {
					return fmt.Sprintf("Your project already has a component library under %s", p.Paths[0]), true
				}
			}
			return "", false
		},
		"backend-engineer": func(a *analyzer.CodebaseAnalysis) (string, bool) {
			for _, p := range a.DetectedPatterns {
				if p.Type == "api-routes" {
					return fmt.Sprintf("Your project serves API routes from %s", p.Paths[0]), true
				}
			}
			return "", false
		},
		"test-engineer": func(a *analyzer.CodebaseAnalysis) (string, bool) {
			for _, p := range a.DetectedPatterns {
				if p.Type == "tests" {
					return "Your project has an existing test suite to extend", true
				}
			}
			return "", false
		},
		"code-reviewer": func(a *analyzer.CodebaseAnalysis) (string, bool) {
			if a.TotalFiles > 0 {
				return fmt.Sprintf("Reviews changes across %d files", a.TotalFiles), true
			}
			return "", false
		},
	},
}
