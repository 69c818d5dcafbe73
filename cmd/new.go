package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsdtsdtsd/stasis/internal/content"
	"github.com/tsdtsdtsd/stasis/internal/site"
)

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Scaffolds a new draft post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]
		slug := content.Slugify(title)
		if slug == "" {
			return fmt.Errorf("cannot derive a slug from title %q", title)
		}

		path := filepath.Join(site.ContentDir, "posts", slug+".md")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating posts directory: %w", err)
		}

		doc := fmt.Sprintf(`---
title: %s
date: %s
draft: true
---

`, title, time.Now().Format("2006-01-02 15:04"))

		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Printf("Created %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
