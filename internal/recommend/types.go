package recommend

// Goal captures user intent for a recommendation pass.
type Goal struct {
	// Description is the user's free-text statement of what they want to
	// build or improve.
	Description string `json:"description"`

	// Category is one of the closed goal-category set (see Categories).
	Category string `json:"category"`

	// Requirements are optional structured flags from the closed
	// requirement enum (auth, payments, database, realtime, api).
	Requirements []string `json:"requirements,omitempty"`

	Confidence float64 `json:"confidence,omitempty"`
}

// Categories is the closed goal-category vocabulary.
var Categories = []string{
	"saas-dashboard",
	"e-commerce",
	"api-service",
	"content-site",
	"realtime-app",
	"cli-tool",
	"automation",
	"custom",
}

// Score is one ranked candidate. The score is an accumulator, not a
// probability; reasons are ordered with the most specific signal first.
// Scores live only for the duration of one recommendation call.
type Score struct {
	Name    string   `json:"name"`
	Score   int      `json:"score"`
	Reasons []string `json:"reasons"`
}

// Recommendations is the full ranked output of one call. DefaultAgents and
// DefaultSkills are derived from the scored lists, never set directly.
type Recommendations struct {
	Agents        []Score  `json:"agents"`
	Skills        []Score  `json:"skills"`
	DefaultAgents []string `json:"defaultAgents"`
	DefaultSkills []string `json:"defaultSkills"`

	// AgentSkillLinks is the static agent→skills attachment map, passed
	// through unchanged for downstream consumers.
	AgentSkillLinks map[string][]string `json:"agentSkillLinks"`
}
