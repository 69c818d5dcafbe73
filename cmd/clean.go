package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Removes the output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.RemoveAll(appConfig.OutputDir); err != nil {
			return fmt.Errorf("removing output directory %s: %w", appConfig.OutputDir, err)
		}
		fmt.Printf("Removed %s\n", appConfig.OutputDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
