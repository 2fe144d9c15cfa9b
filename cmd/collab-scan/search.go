// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/collab-scan/internal/archive"
	"github.com/pdiddy/collab-scan/internal/entrez"
	"github.com/pdiddy/collab-scan/internal/profile"
	"github.com/pdiddy/collab-scan/internal/report"
	"github.com/pdiddy/collab-scan/internal/sweep"
	"github.com/pdiddy/collab-scan/pkg/types"
)

const (
	defaultTimeout        = 60 * time.Second
	defaultUserAgent      = "collab-scan/0.1"
	defaultTool           = "collab-scan"
	defaultSearchDelay    = 500 * time.Millisecond
	defaultFetchDelay     = 400 * time.Millisecond
	defaultNameDelay      = 300 * time.Millisecond
	defaultMaxResults     = 300
	defaultNameMaxResults = 50
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search PubMed for cross-department collaborations",
	Long: `Search runs the collaboration sweep: broad affiliation queries crossing the
two department profiles (plus, with --names, an author query per key faculty
member), then fetches the discovered records, filters them locally with the
profiles' affiliation patterns, and writes the timestamped report pair.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("names", false, "also cross-search key faculty names")
	searchCmd.Flags().Int("max-results", defaultMaxResults, "identifiers retrieved per affiliation query")
	searchCmd.Flags().String("output-dir", ".", "directory for report files")
	searchCmd.Flags().String("run-file", "", "also save run telemetry as YAML to this path")
	searchCmd.Flags().String("archive", "", "append the run to a SQLite archive at this path")
	searchCmd.Flags().String("s3-bucket", "", "upload reports to this S3 bucket")
	searchCmd.Flags().String("s3-prefix", "", "key prefix for uploaded reports (default collab-scan)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	profilesPath, _ := rootCmd.PersistentFlags().GetString("profiles")
	profiles, err := profile.Load(profilesPath)
	if err != nil {
		return err
	}

	useNames, _ := cmd.Flags().GetBool("names")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	runFile, _ := cmd.Flags().GetString("run-file")
	archivePath, _ := cmd.Flags().GetString("archive")
	s3Bucket, _ := cmd.Flags().GetString("s3-bucket")
	s3Prefix, _ := cmd.Flags().GetString("s3-prefix")

	entrezCfg := entrezConfig(useNames)
	sweepCfg := types.SweepConfig{
		MaxResults:     maxResults,
		NameMaxResults: defaultNameMaxResults,
		NameDelay:      defaultNameDelay,
		UseNames:       useNames,
	}

	client := entrez.NewClient(&http.Client{Timeout: entrezCfg.Timeout}, entrezCfg, os.Stdout)

	fmt.Printf("PUBMED COLLABORATION SEARCH: %s x %s\n\n",
		strings.ToUpper(profiles.First.Abbrev), strings.ToUpper(profiles.Second.Abbrev))

	run, err := sweep.Execute(cmd.Context(), client, profiles, sweepCfg, os.Stdout)
	if err != nil {
		return err
	}

	report.Summary(os.Stdout, run)
	if run.Empty() {
		return nil
	}

	txtPath, jsonPath, err := report.Files(outputDir, run)
	if err != nil {
		return err
	}
	fmt.Printf("\nResults saved to: %s\n", txtPath)
	fmt.Printf("JSON data saved to: %s\n", jsonPath)

	if runFile != "" {
		if err := sweep.WriteRunFile(runFile, run); err != nil {
			return err
		}
		fmt.Printf("Run telemetry saved to: %s\n", runFile)
	}

	if archivePath != "" {
		if err := archiveRun(archivePath, run); err != nil {
			return err
		}
	}

	if s3Bucket != "" {
		up, err := report.NewUploader(types.ReportConfig{
			S3Bucket: s3Bucket,
			S3Prefix: s3Prefix,
			S3Region: viper.GetString("report.s3_region"),
		})
		if err != nil {
			return err
		}
		if err := up.Upload(run, []string{txtPath, jsonPath}, os.Stdout); err != nil {
			return err
		}
	}

	return nil
}

func archiveRun(path string, run sweep.Run) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating archive directory: %w", err)
	}
	store, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.Save(run)
	if err != nil {
		return err
	}
	fmt.Printf("Run archived: %s (%s)\n", runID, path)
	return nil
}

// entrezConfig assembles the client configuration from the shared root
// flags, the config file, and loaded secrets. The faculty sweep fetches in
// smaller batches than the affiliation-only sweep.
func entrezConfig(useNames bool) types.EntrezConfig {
	flags := rootCmd.PersistentFlags()
	timeout, _ := flags.GetDuration("timeout")
	searchDelay, _ := flags.GetDuration("search-delay")
	fetchDelay, _ := flags.GetDuration("fetch-delay")

	batch := 100
	if useNames {
		batch = 50
	}

	return types.EntrezConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Tool:           defaultTool,
		Email:          secretDefault("entrez-email", viper.GetString("entrez.email")),
		APIKey:         secretDefault("ncbi-api-key", viper.GetString("entrez.api_key")),
		SearchDelay:    searchDelay,
		FetchDelay:     fetchDelay,
		FetchBatchSize: batch,
	}
}
