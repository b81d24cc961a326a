package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crewkit-dev/crewkit/internal/analyzer"
	"github.com/crewkit-dev/crewkit/internal/evolve"
	"github.com/crewkit-dev/crewkit/internal/fileutil"
	"github.com/crewkit-dev/crewkit/internal/recommend"
)

func (app *App) runEvolve(cmd *cobra.Command, args []string) error {
	root, err := resolveProjectRoot(args)
	if err != nil {
		return err
	}

	updateSnapshot, _ := cmd.Flags().GetBool("update-snapshot")
	asJSON, _ := cmd.Flags().GetBool("json")

	snap, err := evolve.LoadSnapshot(root)
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("no baseline snapshot for %s; run 'crewkit analyze --save-snapshot' first", root)
	}

	current, _, err := app.loadOrAnalyze(cmd.Context(), root, false)
	if err != nil {
		return err
	}

	deltas := evolve.Diff(snap.Analysis, current)
	installed := readInstalled(root)
	proposals := evolve.Propose(deltas, installed)

	// The rule-table proposer runs first; the recommendation engine then
	// contributes what it would recommend for the project as it stands
	// today.
	recs := recommend.Recommend(goalFromAnalysis(current), current, recommend.DefaultTables())
	proposals = evolve.MergeRecommended(proposals, recs, installed)

	if updateSnapshot {
		if err := evolve.SaveSnapshot(root, current); err != nil {
			return err
		}
	}

	if asJSON {
		return fileutil.PrintJSON(struct {
			Deltas    []evolve.Delta    `json:"deltas"`
			Proposals []evolve.Proposal `json:"proposals"`
		}{deltas, proposals})
	}

	if len(deltas) == 0 {
		fmt.Println("No changes detected since the last snapshot.")
	}
	for _, d := range deltas {
		fmt.Printf("Changed:  %-18s %s -> %s\n", d.Label, d.Before, d.After)
	}
	for _, p := range proposals {
		fmt.Printf("Propose:  %-16s %-20s %s\n", p.Type, p.Name, p.Reason)
	}
	return nil
}

// goalFromAnalysis derives a neutral goal so the engine can report what it
// would recommend for the codebase as-is, without user intent.
func goalFromAnalysis(a *analyzer.CodebaseAnalysis) recommend.Goal {
	category := "custom"
	hasAPI := false
	hasUI := false
	for _, p := range a.DetectedPatterns {
		switch p.Type {
		case "api-routes":
			hasAPI = true
		case "components":
			hasUI = true
		}
	}
	switch {
	case hasUI:
		category = "saas-dashboard"
	case hasAPI:
		category = "api-service"
	}
	return recommend.Goal{Category: category}
}
