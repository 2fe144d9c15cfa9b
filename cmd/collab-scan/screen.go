// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/collab-scan/internal/entrez"
	"github.com/pdiddy/collab-scan/internal/profile"
	"github.com/pdiddy/collab-scan/internal/screen"
	"github.com/pdiddy/collab-scan/pkg/types"
)

var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "Survey affiliation string variants for each department",
	Long: `Screen runs each profile's reconnaissance queries and tallies the raw
affiliation strings PubMed returns for them, grouped by variant. The output is
the evidence base for tuning the affiliation patterns in the profiles file.`,
	RunE: runScreen,
}

func init() {
	screenCmd.Flags().Int("max-results", 100, "identifiers retrieved per screening query")
	screenCmd.Flags().String("output", "affiliation_screening_results.txt", "path for the full screening report")

	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	profilesPath, _ := rootCmd.PersistentFlags().GetString("profiles")
	profiles, err := profile.Load(profilesPath)
	if err != nil {
		return err
	}

	maxResults, _ := cmd.Flags().GetInt("max-results")
	outputPath, _ := cmd.Flags().GetString("output")

	cfg := entrezConfig(false)
	client := entrez.NewClient(&http.Client{Timeout: cfg.Timeout}, cfg, os.Stdout)

	fmt.Println("AFFILIATION SCREENING")

	surveys := make([]screen.Survey, 0, 2)
	for _, dp := range []types.DepartmentProfile{profiles.First, profiles.Second} {
		s := screen.Run(cmd.Context(), client, dp, profiles.LocationTokens, maxResults, os.Stdout)
		screen.WriteConsole(os.Stdout, s, 30)
		surveys = append(surveys, s)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating screening report: %w", err)
	}
	defer f.Close()
	screen.WriteReport(f, surveys)

	fmt.Printf("\nFull results saved to: %s\n", outputPath)
	return nil
}
