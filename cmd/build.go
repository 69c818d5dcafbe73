package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsdtsdtsd/stasis/internal/site"
)

var checkLinks bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from content, theme, and static assets",
	Long: `The build command processes Markdown files from './content/', extracts
front matter, applies the theme's layouts, copies static assets, writes
syndication feeds, and generates the site in the configured output
directory (default './public/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkLinks {
			appConfig.CheckLinks = true
		}
		return runBuild()
	},
}

func runBuild() error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	b := &site.Builder{
		Config:  appConfig,
		WorkDir: wd,
		Logger:  slog.Default(),
	}
	return b.Build()
}

func init() {
	buildCmd.Flags().BoolVar(&checkLinks, "check-links", false, "verify internal links after the build")
	rootCmd.AddCommand(buildCmd)
}
