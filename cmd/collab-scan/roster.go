// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/collab-scan/internal/roster"
)

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "Scrape a department staff page into a faculty_names fragment",
	Long: `Roster fetches a department's staff listing page, extracts person names with
a CSS selector, and prints a faculty_names YAML fragment ready to paste into
the profiles file.`,
	RunE: runRoster,
}

func init() {
	rosterCmd.Flags().String("url", "", "staff page URL (required)")
	rosterCmd.Flags().String("selector", ".person-name", "CSS selector matching one element per person")
	rosterCmd.MarkFlagRequired("url")

	rootCmd.AddCommand(rosterCmd)
}

func runRoster(cmd *cobra.Command, args []string) error {
	pageURL, _ := cmd.Flags().GetString("url")
	selector, _ := cmd.Flags().GetString("selector")

	cfg := entrezConfig(false)
	client := &http.Client{Timeout: cfg.Timeout}

	names, err := roster.Fetch(cmd.Context(), client, pageURL, selector, cfg.UserAgent)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no names matched selector %q at %s", selector, pageURL)
	}

	fmt.Fprintf(os.Stderr, "Extracted %d names\n", len(names))
	return roster.WriteYAML(os.Stdout, names)
}
