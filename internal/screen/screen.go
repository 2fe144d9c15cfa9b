// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package screen surveys how a department's name actually appears in
// affiliation strings. The probe queries cast a wide net; the survey tallies
// every distinct institution-anchored affiliation string found, with the
// records that carried it. Its output is what the affiliation patterns in a
// department profile are curated from.
package screen

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/collab-scan/internal/entrez"
	"github.com/pdiddy/collab-scan/internal/match"
	"github.com/pdiddy/collab-scan/pkg/types"
)

// Variant is one distinct affiliation string and the records it appeared on.
type Variant struct {
	Affiliation string   `yaml:"affiliation"`
	PMIDs       []string `yaml:"pmids"`
}

// Survey is the screening result for one department profile.
type Survey struct {
	Profile  string    `yaml:"profile"`
	Name     string    `yaml:"name"`
	Variants []Variant `yaml:"variants"`
}

// Run executes the profile's probe queries and tallies affiliation variants
// whose text contains a location token. Query failures degrade to empty
// results and the screening continues. Variants are ordered by article
// count descending, then alphabetically for determinism.
func Run(ctx context.Context, client *entrez.Client, p types.DepartmentProfile, locationTokens []string, retMax int, w io.Writer) Survey {
	tally := make(map[string][]string)

	for _, term := range p.ScreenQueries {
		fmt.Fprintf(w, "\nSearching: %s\n", term)
		ids, _ := client.Search(ctx, term, retMax)
		fmt.Fprintf(w, "  found %d results\n", len(ids))
		if len(ids) == 0 {
			continue
		}

		for _, article := range client.FetchArticles(ctx, ids) {
			for _, aff := range article.Affiliations {
				if match.ContainsLocation([]string{aff}, locationTokens) {
					tally[aff] = append(tally[aff], article.PMID)
				}
			}
		}
	}

	survey := Survey{Profile: p.Abbrev, Name: p.Name}
	for aff, pmids := range tally {
		survey.Variants = append(survey.Variants, Variant{Affiliation: aff, PMIDs: pmids})
	}
	sort.Slice(survey.Variants, func(i, j int) bool {
		vi, vj := survey.Variants[i], survey.Variants[j]
		if len(vi.PMIDs) != len(vj.PMIDs) {
			return len(vi.PMIDs) > len(vj.PMIDs)
		}
		return vi.Affiliation < vj.Affiliation
	})
	return survey
}

// Top returns at most n leading variants.
func (s Survey) Top(n int) []Variant {
	if len(s.Variants) <= n {
		return s.Variants
	}
	return s.Variants[:n]
}

// WriteConsole prints the leading variants in the screening's console style.
func WriteConsole(w io.Writer, s Survey, top int) {
	fmt.Fprintf(w, "\nUNIQUE %s-RELATED AFFILIATIONS FOUND:\n", strings.ToUpper(s.Profile))
	for i, v := range s.Top(top) {
		fmt.Fprintf(w, "\n%d. [%d articles] Example PMID: %s\n", i+1, len(v.PMIDs), v.PMIDs[0])
		fmt.Fprintf(w, "   %s\n", clip(v.Affiliation, 200))
	}
}

// WriteReport writes the full screening results file.
func WriteReport(w io.Writer, surveys []Survey) {
	fmt.Fprintln(w, "AFFILIATION SCREENING RESULTS")
	fmt.Fprintln(w, divider)

	for _, s := range surveys {
		fmt.Fprintf(w, "\n%s DEPARTMENT VARIATIONS (%s):\n", strings.ToUpper(s.Profile), s.Name)
		fmt.Fprintln(w, subDivider)
		for _, v := range s.Variants {
			fmt.Fprintf(w, "\n[%d articles] PMIDs: %s\n", len(v.PMIDs), joinLimited(v.PMIDs, 5))
			fmt.Fprintln(w, v.Affiliation)
		}
	}
}

const (
	divider    = "================================================================================"
	subDivider = "----------------------------------------"
)

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func joinLimited(items []string, max int) string {
	if len(items) > max {
		return strings.Join(items[:max], ", ") + "..."
	}
	return strings.Join(items, ", ")
}
