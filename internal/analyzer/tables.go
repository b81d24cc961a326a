package analyzer

// Static detection tables. All of these are data-only configuration: the
// detection functions read them but never mutate them.

// dependencyCategories maps well-known dependency names to a category.
// Names not listed fall back to defaultCategory.
const defaultCategory = "library"

var dependencyCategories = map[string]string{
	// ORMs and query builders
	"prisma":         "orm",
	"@prisma/client": "orm",
	"drizzle-orm":    "orm",
	"typeorm":        "orm",
	"sequelize":      "orm",
	"mongoose":       "orm",
	"knex":           "orm",

	// Testing
	"jest":                   "testing",
	"vitest":                 "testing",
	"mocha":                  "testing",
	"cypress":                "testing",
	"playwright":             "testing",
	"@playwright/test":       "testing",
	"@testing-library/react": "testing",

	// UI
	"react":     "ui",
	"react-dom": "ui",
	"vue":       "ui",
	"svelte":    "ui",
	"next":      "ui",

	// Styling
	"tailwindcss":       "styling",
	"styled-components": "styling",
	"sass":              "styling",
	"@emotion/react":    "styling",

	// Auth
	"next-auth":     "auth",
	"passport":      "auth",
	"@clerk/nextjs": "auth",
	"jsonwebtoken":  "auth",
	"bcrypt":        "auth",

	// Payments
	"stripe":            "payments",
	"@stripe/stripe-js": "payments",
	"braintree":         "payments",

	// Databases and caches
	"pg":             "database",
	"mysql2":         "database",
	"sqlite3":        "database",
	"better-sqlite3": "database",
	"mongodb":        "database",
	"redis":          "database",
	"ioredis":        "database",

	// API and transport
	"express": "api",
	"fastify": "api",
	"koa":     "api",
	"hono":    "api",
	"axios":   "api",
	"graphql": "api",
	"trpc":    "api",

	// State management
	"zustand":          "state",
	"redux":            "state",
	"@reduxjs/toolkit": "state",
	"jotai":            "state",

	// Build tooling
	"webpack": "build",
	"vite":    "build",
	"esbuild": "build",
	"rollup":  "build",
	"turbo":   "build",

	// Realtime
	"socket.io":        "realtime",
	"socket.io-client": "realtime",
	"ws":               "realtime",
	"pusher":           "realtime",

	// Validation
	"zod": "validation",
	"yup": "validation",
	"joi": "validation",
}

// patternRule declares one conventional signal: directories sampled for
// contents, plus root files whose mere presence counts.
type patternRule struct {
	patternType string
	dirs        []string
	files       []string
	confidence  float64
	description string
}

// patternRules is scanned in order; the first existing non-empty directory
// per rule produces the signal.
var patternRules = []patternRule{
	{
		patternType: "api-routes",
		dirs:        []string{"src/app/api", "src/pages/api", "app/api", "pages/api", "src/routes", "routes", "src/api", "api"},
		confidence:  0.9,
		description: "HTTP API route handlers",
	},
	{
		patternType: "components",
		dirs:        []string{"src/components", "components", "src/app/components"},
		confidence:  0.9,
		description: "Reusable UI components",
	},
	{
		patternType: "tests",
		dirs:        []string{"tests", "test", "__tests__", "src/__tests__", "spec"},
		confidence:  0.85,
		description: "Dedicated test suites",
	},
	{
		patternType: "database",
		dirs:        []string{"prisma", "src/db", "db", "migrations", "src/models"},
		confidence:  0.8,
		description: "Database schema or migrations",
	},
	{
		patternType: "auth",
		dirs:        []string{"src/auth", "src/app/auth", "auth"},
		confidence:  0.7,
		description: "Authentication modules",
	},
	{
		patternType: "ci",
		dirs:        []string{".github/workflows"},
		confidence:  0.9,
		description: "Continuous integration workflows",
	},
	{
		patternType: "docker",
		dirs:        []string{"docker"},
		files:       []string{"Dockerfile", "docker-compose.yml", "docker-compose.yaml", "compose.yaml"},
		confidence:  0.9,
		description: "Container build and compose configuration",
	},
	{
		patternType: "docs",
		dirs:        []string{"docs", "doc"},
		confidence:  0.6,
		description: "Project documentation",
	},
}

// maxPatternPaths caps the sampled paths recorded per pattern.
const maxPatternPaths = 10

// constraintPair declares two competing technologies. When the project
// depends on keep but not avoid, the analyzer emits "Use keep, NOT avoid".
type constraintPair struct {
	keep  string
	avoid string
}

var constraintPairs = []constraintPair{
	{keep: "prisma", avoid: "drizzle-orm"},
	{keep: "drizzle-orm", avoid: "prisma"},
	{keep: "prisma", avoid: "typeorm"},
	{keep: "vitest", avoid: "jest"},
	{keep: "jest", avoid: "vitest"},
	{keep: "tailwindcss", avoid: "styled-components"},
	{keep: "styled-components", avoid: "tailwindcss"},
	{keep: "zustand", avoid: "redux"},
	{keep: "redux", avoid: "zustand"},
	{keep: "mongoose", avoid: "prisma"},
}

// baselineAgents are always suggested regardless of detected signals.
var baselineAgents = []string{"code-reviewer", "debugger"}

// frameworkAgents maps a detected framework to codebase-suggested agents.
var frameworkAgents = map[string][]string{
	"nextjs":  {"frontend-engineer", "backend-engineer"},
	"react":   {"frontend-engineer"},
	"vue":     {"frontend-engineer"},
	"express": {"backend-engineer"},
	"fastify": {"backend-engineer"},
	"django":  {"backend-engineer"},
	"flask":   {"backend-engineer"},
	"gin":     {"backend-engineer"},
	"actix":   {"backend-engineer"},
}

// patternAgents maps a detected pattern type to codebase-suggested agents.
var patternAgents = map[string][]string{
	"api-routes": {"backend-engineer"},
	"components": {"frontend-engineer"},
	"tests":      {"test-engineer"},
	"database":   {"database-architect"},
	"auth":       {"security-analyst"},
	"ci":         {"devops-engineer"},
	"docker":     {"devops-engineer"},
}

// dependencySkills maps dependency names to codebase-suggested skills.
var dependencySkills = map[string]string{
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
	"@clerk/nextjs":     "auth",
	"socket.io":         "websockets",
	"ws":                "websockets",
	"graphql":           "graphql",
	"redis":             "caching",
	"ioredis":           "caching",
	"zod":               "validation",
	"trpc":              "trpc",
}

// frameworkSkills maps a detected framework to codebase-suggested skills.
var frameworkSkills = map[string][]string{
	"nextjs":  {"nextjs"},
	"react":   {"react"},
	"vue":     {"vue"},
	"express": {"express"},
	"fastify": {"express"},
	"django":  {"django"},
	"flask":   {"flask"},
}

// languageSkills maps the detected language to codebase-suggested skills.
var languageSkills = map[string][]string{
	"typescript": {"typescript"},
	"go":         {"golang"},
	"rust":       {"rust"},
	"python":     {"python"},
}
