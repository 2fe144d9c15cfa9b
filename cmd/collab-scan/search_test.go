// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"
)

func TestEntrezConfigDefaults(t *testing.T) {
	cfg := entrezConfig(false)
	if cfg.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, defaultTimeout)
	}
	if cfg.SearchDelay != defaultSearchDelay {
		t.Errorf("SearchDelay = %v, want %v", cfg.SearchDelay, defaultSearchDelay)
	}
	if cfg.FetchDelay != defaultFetchDelay {
		t.Errorf("FetchDelay = %v, want %v", cfg.FetchDelay, defaultFetchDelay)
	}
	if cfg.FetchBatchSize != 100 {
		t.Errorf("FetchBatchSize = %d, want 100", cfg.FetchBatchSize)
	}
	if got := entrezConfig(true).FetchBatchSize; got != 50 {
		t.Errorf("FetchBatchSize with names = %d, want 50", got)
	}
}

// The pacing flags live on the root command so every subcommand that makes
// E-utilities calls honors them, not just search.
func TestEntrezConfigReadsSharedFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	set := func(name, value string) {
		t.Helper()
		if err := flags.Set(name, value); err != nil {
			t.Fatalf("setting --%s: %v", name, err)
		}
	}

	set("timeout", "5s")
	set("search-delay", "50ms")
	set("fetch-delay", "60ms")
	t.Cleanup(func() {
		set("timeout", defaultTimeout.String())
		set("search-delay", defaultSearchDelay.String())
		set("fetch-delay", defaultFetchDelay.String())
	})

	cfg := entrezConfig(false)
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.SearchDelay != 50*time.Millisecond {
		t.Errorf("SearchDelay = %v, want 50ms", cfg.SearchDelay)
	}
	if cfg.FetchDelay != 60*time.Millisecond {
		t.Errorf("FetchDelay = %v, want 60ms", cfg.FetchDelay)
	}
}
