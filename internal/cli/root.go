package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rapport",
	Short: "Relationship intelligence from your connection-data export",
	Long: "Rapport analyzes a personal connection-data export and reports relationship " +
		"strength, likely advocates, reciprocity balances, dormant conversations worth " +
		"reviving, and warm introduction paths. Single Go binary, runs entirely offline.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(sampleCmd)
}
