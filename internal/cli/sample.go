package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lazypower/rapport/internal/export"
)

var sampleOut string

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a sample export directory",
	Long:  "Sample writes a small, realistic connection-data export for trying rapport without your own data.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := export.WriteSample(sampleOut); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "sample export written to %s\n", sampleOut)
		return nil
	},
}

func init() {
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "sample_export", "Output directory")
}
