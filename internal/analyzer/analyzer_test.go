package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func analyze(t *testing.T, root string) *CodebaseAnalysis {
	t.Helper()
	analysis, err := New(zerolog.Nop()).Analyze(root, nil)
	require.NoError(t, err)
	return analysis
}

func TestAnalyze_InputValidation(t *testing.T) {
	a := New(zerolog.Nop())

	_, err := a.Analyze("", nil)
	assert.Error(t, err)

	_, err = a.Analyze("relative/path", nil)
	assert.Error(t, err)
}

func TestAnalyze_NextJSProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{
		"name": "demo",
		"scripts": {"dev": "next dev", "build": "next build", "test": "vitest", "lint": "eslint ."},
		"dependencies": {"next": "14.0.0", "react": "18.2.0", "prisma": "5.0.0"},
		"devDependencies": {"vitest": "1.0.0", "typescript": "5.3.0"}
	}`)
	writeFile(t, root, "next.config.js", "module.exports = {}\n")
	writeFile(t, root, "pnpm-lock.yaml", "lockfileVersion: 9\n")
	writeFile(t, root, "src/app/api/users/route.ts", "export async function GET() {}\n")
	writeFile(t, root, "src/components/Button.tsx", "export const Button = () => null\n")

	a := analyze(t, root)

	assert.Equal(t, "nextjs", a.ProjectType)
	assert.Equal(t, "nextjs", a.Framework)
	assert.Equal(t, "typescript", a.Language)
	assert.Equal(t, "pnpm", a.PackageManager)

	// Dependencies are sorted by name with inferred categories.
	require.Len(t, a.Dependencies, 3)
	assert.Equal(t, "next", a.Dependencies[0].Name)
	assert.Equal(t, "prisma", a.Dependencies[1].Name)
	assert.Equal(t, "orm", a.Dependencies[1].Category)
	assert.Equal(t, "react", a.Dependencies[2].Name)
	assert.Equal(t, "ui", a.Dependencies[2].Category)

	require.Len(t, a.DevDependencies, 2)
	assert.Equal(t, "testing", a.DevDependencies[1].Category)

	// Commands use the detected package manager runner.
	assert.Equal(t, "pnpm dev", a.DevCommand)
	assert.Equal(t, "pnpm build", a.BuildCommand)
	assert.Equal(t, "pnpm test", a.TestCommand)
	assert.Equal(t, "pnpm lint", a.LintCommand)

	assert.Contains(t, a.PatternTypes(), "api-routes")
	assert.Contains(t, a.PatternTypes(), "components")

	// Prisma present, drizzle and typeorm absent.
	assert.Contains(t, a.NegativeConstraints, "Use prisma, NOT drizzle-orm")
	assert.Contains(t, a.NegativeConstraints, "Use prisma, NOT typeorm")
	// Vitest present, jest absent.
	assert.Contains(t, a.NegativeConstraints, "Use vitest, NOT jest")
	assert.NotContains(t, a.NegativeConstraints, "Use jest, NOT vitest")

	// Baseline agents always lead the suggestions.
	require.GreaterOrEqual(t, len(a.SuggestedAgents), 2)
	assert.Equal(t, "code-reviewer", a.SuggestedAgents[0])
	assert.Equal(t, "debugger", a.SuggestedAgents[1])
	assert.Contains(t, a.SuggestedAgents, "frontend-engineer")
	assert.Contains(t, a.SuggestedAgents, "backend-engineer")

	assert.Contains(t, a.SuggestedSkills, "nextjs")
	assert.Contains(t, a.SuggestedSkills, "typescript")
	assert.Contains(t, a.SuggestedSkills, "prisma")
	assert.Contains(t, a.SuggestedSkills, "vitest")

	assert.Greater(t, a.TotalFiles, 0)
	assert.Greater(t, a.TotalLines, 0)
	assert.False(t, a.AnalyzedAt.IsZero())
}

func TestAnalyze_ExpressOnNode(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies": {"express": "4.18.0"}}`)

	a := analyze(t, root)

	assert.Equal(t, "node", a.ProjectType)
	assert.Equal(t, "express", a.Framework)
	assert.Equal(t, "javascript", a.Language)
	assert.Equal(t, "npm", a.PackageManager, "manifest without lockfile defaults to npm")
	assert.Contains(t, a.SuggestedAgents, "backend-engineer")
}

func TestAnalyze_GoProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "go.mod", "module example.com/tool\n\ngo 1.22\n")

	a := analyze(t, root)

	assert.Equal(t, "go", a.ProjectType)
	assert.Equal(t, "go", a.Language)
	assert.Equal(t, "go", a.PackageManager)
	assert.Equal(t, "go test ./...", a.TestCommand)
	assert.Contains(t, a.SuggestedSkills, "golang")
}

func TestAnalyze_RustProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", "[package]\nname = \"svc\"\n\n[dependencies]\nactix-web = \"4\"\nserde = \"1\"\n")

	a := analyze(t, root)

	assert.Equal(t, "rust", a.ProjectType)
	assert.Equal(t, "actix", a.Framework)
	assert.Equal(t, "rust", a.Language)
	assert.Equal(t, "cargo", a.PackageManager)

	names := DependencyNames(a.Dependencies)
	assert.Contains(t, names, "actix-web")
	assert.Contains(t, names, "serde")
}

func TestAnalyze_PythonProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", "[project]\nname = \"svc\"\ndependencies = [\"django>=4.2\", \"requests\"]\n")

	a := analyze(t, root)

	assert.Equal(t, "python", a.ProjectType)
	assert.Equal(t, "django", a.Framework)
	assert.Equal(t, "python", a.Language)
	assert.Equal(t, "pip", a.PackageManager)

	names := DependencyNames(a.Dependencies)
	assert.Contains(t, names, "django")
	assert.Contains(t, names, "requests")
}

func TestAnalyze_EmptyDirectoryFallsBackToUnknown(t *testing.T) {
	a := analyze(t, t.TempDir())

	assert.Equal(t, Unknown, a.ProjectType)
	assert.Equal(t, Unknown, a.Language)
	assert.Empty(t, a.Framework)
	assert.Empty(t, a.DetectedPatterns)
	// Baseline agents survive the absence of every other signal.
	assert.Equal(t, []string{"code-reviewer", "debugger"}, a.SuggestedAgents)
}

func TestAnalyze_IgnoreRulesExcludePatternPaths(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"demo"}`)
	writeFile(t, root, "tests/generated/huge_test.js", "test()\n")

	withRule, err := New(zerolog.Nop()).Analyze(root, []string{"tests/"})
	require.NoError(t, err)
	assert.NotContains(t, withRule.PatternTypes(), "tests")

	without := analyze(t, root)
	assert.Contains(t, without.PatternTypes(), "tests")
}

func TestDetectProjectType_SpecificDependencyWins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies": {"vue": "3.4.0", "next": "14.0.0"}}`)

	a := analyze(t, root)
	assert.Equal(t, "nextjs", a.ProjectType, "next outranks vue when only dependencies disagree")

	writeFile(t, root, "vue.config.js", "module.exports = {}\n")
	a = analyze(t, root)
	assert.Equal(t, "vue", a.ProjectType, "a framework config file outranks any dependency")
}

func TestDetectProjectType_VueDependencyAlone(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies": {"vue": "3.4.0"}}`)

	a := analyze(t, root)
	assert.Equal(t, "vue", a.ProjectType)
}

func TestAnalyze_DockerPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies": {"express": "4.18.0"}}`)
	writeFile(t, root, "Dockerfile", "FROM node:20-alpine\n")
	writeFile(t, root, "docker-compose.yml", "services:\n  app:\n    build: .\n")

	a := analyze(t, root)

	require.Contains(t, a.PatternTypes(), "docker")
	for _, p := range a.DetectedPatterns {
		if p.Type == "docker" {
			assert.Equal(t, []string{"Dockerfile", "docker-compose.yml"}, p.Paths)
		}
	}
	assert.Contains(t, a.SuggestedAgents, "devops-engineer")
}

func TestDetectMonorepo_PnpmWorkspace(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"root"}`)
	writeFile(t, root, "pnpm-workspace.yaml", "packages:\n  - \"packages/*\"\n")
	writeFile(t, root, "packages/web/package.json", `{"name":"@demo/web"}`)
	writeFile(t, root, "packages/api/package.json", `{"name":"@demo/api"}`)

	a := analyze(t, root)

	require.NotNil(t, a.Monorepo)
	assert.True(t, a.Monorepo.IsMonorepo)
	assert.Equal(t, "pnpm", a.Monorepo.Tool)
	assert.Equal(t, []string{"@demo/api", "@demo/web"}, a.Monorepo.Packages)
}

func TestDetectMonorepo_NpmWorkspacesWithTurbo(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"root","workspaces":["apps/*"]}`)
	writeFile(t, root, "turbo.json", `{}`)
	writeFile(t, root, "apps/site/package.json", `{"name":"site"}`)

	a := analyze(t, root)

	require.NotNil(t, a.Monorepo)
	assert.Equal(t, "turborepo", a.Monorepo.Tool)
	assert.Equal(t, []string{"site"}, a.Monorepo.Packages)
}

func TestDetectMonorepo_AbsentForPlainProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"plain"}`)

	a := analyze(t, root)
	assert.Nil(t, a.Monorepo)
}

func TestSplitRequirement(t *testing.T) {
	cases := []struct {
		spec    string
		name    string
		version string
	}{
		{spec: "django>=4.2", name: "django", version: ">=4.2"},
		{spec: "requests", name: "requests", version: ""},
		{spec: "uvicorn[standard]==0.27", name: "uvicorn", version: "[standard]==0.27"},
	}

	for _, tc := range cases {
		name, version := splitRequirement(tc.spec)
		assert.Equal(t, tc.name, name, tc.spec)
		assert.Equal(t, tc.version, version, tc.spec)
	}
}
