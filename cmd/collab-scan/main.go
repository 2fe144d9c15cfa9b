// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the collab-scan CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/collab-scan/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the collab-scan CLI.
var rootCmd = &cobra.Command{
	Use:   "collab-scan",
	Short: "Screen PubMed for cross-department research collaborations",
	Long: `collab-scan discovers joint publications between two academic departments
by sweeping the PubMed E-utilities API: affiliation-variant screening, broad
cross-department queries, optional faculty-name cross-search, and local
filtering with per-department affiliation patterns.

Each stage is a subcommand: screen surveys how the departments appear in
affiliation strings, search runs the collaboration sweep, and roster scrapes
faculty name lists for the profile configuration. Output is a candidate list
for manual verification, not ground truth.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./collab-scan.yaml or ~/.config/collab-scan/config.yaml)")
	rootCmd.PersistentFlags().String("profiles", "", "department profiles file (default: built-in DCTV/DSF profiles)")
	rootCmd.PersistentFlags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	rootCmd.PersistentFlags().Duration("search-delay", defaultSearchDelay, "minimum delay between search calls")
	rootCmd.PersistentFlags().Duration("fetch-delay", defaultFetchDelay, "minimum delay between fetch batches")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("collab-scan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "collab-scan"))
		}
	}

	viper.SetEnvPrefix("COLLAB_SCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
