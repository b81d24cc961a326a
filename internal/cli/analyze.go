package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crewkit-dev/crewkit/internal/analyzer"
	"github.com/crewkit-dev/crewkit/internal/evolve"
	"github.com/crewkit-dev/crewkit/internal/fileutil"
)

func (app *App) runAnalyze(cmd *cobra.Command, args []string) error {
	root, err := resolveProjectRoot(args)
	if err != nil {
		return err
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	saveSnapshot, _ := cmd.Flags().GetBool("save-snapshot")
	asJSON, _ := cmd.Flags().GetBool("json")

	analysis, fromCache, err := app.loadOrAnalyze(cmd.Context(), root, noCache)
	if err != nil {
		return err
	}

	if saveSnapshot {
		if err := evolve.SaveSnapshot(root, analysis); err != nil {
			return err
		}
	}

	if asJSON {
		return fileutil.PrintJSON(analysis)
	}
	printAnalysisSummary(analysis, fromCache)
	return nil
}

func printAnalysisSummary(a *analyzer.CodebaseAnalysis, fromCache bool) {
	source := "fresh scan"
	if fromCache {
		source = "cache"
	}
	fmt.Printf("Project:  %s (%s)\n", a.ProjectRoot, source)
	fmt.Printf("Type:     %s\n", a.ProjectType)
	if a.Framework != "" {
		fmt.Printf("Framework: %s\n", a.Framework)
	}
	fmt.Printf("Language: %s\n", a.Language)
	if a.PackageManager != "" {
		fmt.Printf("Manager:  %s\n", a.PackageManager)
	}
	fmt.Printf("Files:    %d (%d source lines)\n", a.TotalFiles, a.TotalLines)

	if len(a.Dependencies)+len(a.DevDependencies) > 0 {
		fmt.Printf("Deps:     %d runtime, %d dev\n", len(a.Dependencies), len(a.DevDependencies))
	}
	if len(a.DetectedPatterns) > 0 {
		types := make([]string, 0, len(a.DetectedPatterns))
		for _, p := range a.DetectedPatterns {
			types = append(types, p.Type)
		}
		fmt.Printf("Patterns: %s\n", strings.Join(types, ", "))
	}
	for _, rule := range a.NegativeConstraints {
		fmt.Printf("Rule:     %s\n", rule)
	}
	if a.Monorepo != nil && a.Monorepo.IsMonorepo {
		fmt.Printf("Monorepo: %s (%d packages)\n", a.Monorepo.Tool, len(a.Monorepo.Packages))
	}
	if len(a.SuggestedAgents) > 0 {
		fmt.Printf("Agents:   %s\n", strings.Join(a.SuggestedAgents, ", "))
	}
	if len(a.SuggestedSkills) > 0 {
		fmt.Printf("Skills:   %s\n", strings.Join(a.SuggestedSkills, ", "))
	}
}
