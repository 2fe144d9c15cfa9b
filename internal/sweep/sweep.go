// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sweep orchestrates one collaboration search run: query fan-out,
// identifier accumulation, record fetch, and the collaboration filter.
//
// Execution is strictly sequential. Each query is issued and awaited before
// the next, with the Entrez client pacing every outbound call; upstream
// fair-use policy rules out concurrent fan-out here. State is limited to an
// append-only identifier set and the final result slice, both owned by the
// run.
package sweep

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/collab-scan/internal/entrez"
	"github.com/pdiddy/collab-scan/internal/match"
	"github.com/pdiddy/collab-scan/internal/profile"
	"github.com/pdiddy/collab-scan/pkg/types"
)

// QueryStat records what one query contributed to the run.
type QueryStat struct {
	// Phase is "affiliation" or "names".
	Phase string `yaml:"phase"`

	// Term is the query expression as sent.
	Term string `yaml:"term"`

	// Count is the server-reported total match count, which may exceed
	// Retrieved.
	Count int `yaml:"count"`

	// Retrieved is the number of identifiers actually returned.
	Retrieved int `yaml:"retrieved"`

	// New is how many of the retrieved identifiers were first seen here.
	New int `yaml:"new"`
}

// Run is the outcome of one sweep: the collaborations plus enough telemetry
// to audit which queries earned them.
type Run struct {
	First     string    `yaml:"first"`
	Second    string    `yaml:"second"`
	Timestamp time.Time `yaml:"timestamp"`

	Queries []QueryStat `yaml:"queries"`

	// UniqueIDs is the size of the accumulated identifier set.
	UniqueIDs int `yaml:"unique_ids"`

	// Fetched is the number of articles parsed from the fetch phase.
	Fetched int `yaml:"fetched"`

	Collaborations []types.Collaboration `yaml:"collaborations"`
}

// Empty reports whether the query phase discovered nothing. An empty run
// is a clean completion, not an error.
func (r Run) Empty() bool { return r.UniqueIDs == 0 }

// Execute runs the full sweep against the given profiles. Individual query
// and batch failures degrade to empty results and the sweep continues; the
// only errors returned are unusable profile configuration.
func Execute(ctx context.Context, client *entrez.Client, profiles profile.File, cfg types.SweepConfig, w io.Writer) (Run, error) {
	first, err := match.Compile(profiles.First)
	if err != nil {
		return Run{}, err
	}
	second, err := match.Compile(profiles.Second)
	if err != nil {
		return Run{}, err
	}

	run := Run{
		First:     first.Abbrev,
		Second:    second.Abbrev,
		Timestamp: time.Now(),
	}

	// Append-only accumulation: first-seen order, so first-wins dedup
	// downstream is deterministic across strategies.
	var ids []string
	seen := make(map[string]bool)
	add := func(found []string) (fresh int) {
		for _, id := range found {
			if seen[id] {
				continue
			}
			seen[id] = true
			ids = append(ids, id)
			fresh++
		}
		return fresh
	}

	fmt.Fprintln(w, "Phase 1: affiliation-based search")
	for _, term := range AffiliationQueries(profiles) {
		fmt.Fprintf(w, "\nQuery: %s\n", truncateTerm(term))
		found, count := client.Search(ctx, term, cfg.MaxResults)
		fmt.Fprintf(w, "  found: %d total, retrieved %d\n", count, len(found))
		run.Queries = append(run.Queries, QueryStat{
			Phase:     "affiliation",
			Term:      term,
			Count:     count,
			Retrieved: len(found),
			New:       add(found),
		})
	}

	if cfg.UseNames {
		fmt.Fprintln(w, "\nPhase 2: faculty name cross-search")
		nameClient := client.WithSearchDelay(cfg.NameDelay)

		queries := NameQueries(profiles.First, profiles.Second, profiles.LocationTerms)
		queries = append(queries, NameQueries(profiles.Second, profiles.First, profiles.LocationTerms)...)

		for _, nq := range queries {
			found, count := nameClient.Search(ctx, nq.Term, cfg.NameMaxResults)
			if len(found) > 0 {
				fmt.Fprintf(w, "  %s: %d potential\n", nq.Faculty, len(found))
			}
			run.Queries = append(run.Queries, QueryStat{
				Phase:     "names",
				Term:      nq.Term,
				Count:     count,
				Retrieved: len(found),
				New:       add(found),
			})
		}
	}

	run.UniqueIDs = len(ids)
	fmt.Fprintf(w, "\nTotal unique identifiers to analyze: %d\n", len(ids))
	if len(ids) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return run, nil
	}

	fmt.Fprintln(w, "\nPhase 3: fetching and analyzing articles")
	articles := client.FetchArticles(ctx, ids)
	run.Fetched = len(articles)
	fmt.Fprintf(w, "Fetched %d articles\n", len(articles))

	run.Collaborations = match.Collaborations(articles, first, second, profiles.LocationTokens)
	fmt.Fprintf(w, "Found %d collaborative publications\n", len(run.Collaborations))

	return run, nil
}

// truncateTerm keeps progress lines readable; full terms go to the run file.
func truncateTerm(term string) string {
	if len(term) <= 80 {
		return term
	}
	return term[:80] + "..."
}
