package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (app *App) runCacheStats(cmd *cobra.Command, args []string) error {
	stats, err := app.Store.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("Analysis entries:   %d\n", stats.AnalysisEntries)
	fmt.Printf("Generation entries: %d\n", stats.GenerationEntries)
	fmt.Printf("Total size:         %d bytes\n", stats.TotalBytes)
	return nil
}

func (app *App) runCacheClear(cmd *cobra.Command, args []string) error {
	if err := app.Store.Clear(); err != nil {
		return err
	}
	fmt.Println("Cache cleared.")
	return nil
}
