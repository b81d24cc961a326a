package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/crewkit-dev/crewkit/internal/cache"
	"github.com/crewkit-dev/crewkit/internal/config"
)

// App carries the long-lived objects every command needs. The cache store
// is constructed once at the composition root and passed down explicitly;
// no command reaches for package-level state.
type App struct {
	Settings *config.Settings
	Store    *cache.Store
	Log      zerolog.Logger
}

func NewRootCommand(version string, app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crewkit",
		Short: "Recommend and maintain agent/skill configuration for a project",
		Long: `Crewkit inspects a project - its manifests, lockfiles, and directory
shape - and recommends which specialized agents and skills to configure
for it. The evolve command detects how the project drifted since the
last run and proposes incremental configuration updates.`,
		Version: version,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Profile a project's type, framework, dependencies, and structure",
		Args:  cobra.MaximumNArgs(1),
		RunE:  app.runAnalyze,
	}
	analyzeCmd.Flags().Bool("no-cache", false, "Skip the analysis cache and re-scan")
	analyzeCmd.Flags().Bool("save-snapshot", false, "Record this analysis as the evolve baseline")
	analyzeCmd.Flags().Bool("json", false, "Print the full analysis as JSON")

	recommendCmd := &cobra.Command{
		Use:   "recommend [path]",
		Short: "Rank agents and skills for a stated goal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  app.runRecommend,
	}
	recommendCmd.Flags().String("goal", "", "Free-text description of what you want to build")
	recommendCmd.Flags().String("category", "custom", "Goal category (e.g. saas-dashboard, api-service)")
	recommendCmd.Flags().StringSlice("require", nil, "Requirement flags: auth, payments, database, realtime, api")
	recommendCmd.Flags().Bool("no-cache", false, "Skip the analysis cache and re-scan")
	recommendCmd.Flags().Bool("json", false, "Print recommendations as JSON")

	evolveCmd := &cobra.Command{
		Use:   "evolve [path]",
		Short: "Propose configuration updates for a project that changed",
		Args:  cobra.MaximumNArgs(1),
		RunE:  app.runEvolve,
	}
	evolveCmd.Flags().Bool("update-snapshot", false, "Record the current analysis as the new baseline")
	evolveCmd.Flags().Bool("json", false, "Print proposals as JSON")

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the analysis cache",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show cache entry counts and size",
		Args:  cobra.NoArgs,
		RunE:  app.runCacheStats,
	})
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove all cache entries",
		Args:  cobra.NoArgs,
		RunE:  app.runCacheClear,
	})

	rootCmd.AddCommand(analyzeCmd, recommendCmd, evolveCmd, cacheCmd)
	return rootCmd
}
