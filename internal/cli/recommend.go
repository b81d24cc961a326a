package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/crewkit-dev/crewkit/internal/fileutil"
	"github.com/crewkit-dev/crewkit/internal/recommend"
)

func (app *App) runRecommend(cmd *cobra.Command, args []string) error {
	root, err := resolveProjectRoot(args)
	if err != nil {
		return err
	}

	description, _ := cmd.Flags().GetString("goal")
	category, _ := cmd.Flags().GetString("category")
	requirements, _ := cmd.Flags().GetStringSlice("require")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	asJSON, _ := cmd.Flags().GetBool("json")

	if !validCategory(category) {
		return fmt.Errorf("unknown category %q (one of: %s)", category, strings.Join(recommend.Categories, ", "))
	}

	analysis, _, err := app.loadOrAnalyze(cmd.Context(), root, noCache)
	if err != nil {
		return err
	}

	goal := recommend.Goal{
		Description:  description,
		Category:     category,
		Requirements: requirements,
	}
	recs := recommend.Recommend(goal, analysis, recommend.DefaultTables())

	if asJSON {
		return fileutil.PrintJSON(recs)
	}
	printRecommendations(recs)
	return nil
}

func validCategory(category string) bool {
	for _, c := range recommend.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func printRecommendations(recs *recommend.Recommendations) {
	fmt.Println("Agents:")
	for _, s := range recs.Agents {
		marker := " "
		if contains(recs.DefaultAgents, s.Name) {
			marker = "*"
		}
		fmt.Printf("  %s %-22s %4d  %s\n", marker, s.Name, s.Score, firstReason(s.Reasons))
	}

	fmt.Println("Skills:")
	for _, s := range recs.Skills {
		marker := " "
		if contains(recs.DefaultSkills, s.Name) {
			marker = "*"
		}
		fmt.Printf("  %s %-22s %4d  %s\n", marker, s.Name, s.Score, firstReason(s.Reasons))
	}

	fmt.Println("(* = selected by default)")
}

func firstReason(reasons []string) string {
	if len(reasons) == 0 {
		return ""
	}
	return reasons[0]
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
