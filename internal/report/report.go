// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders a completed sweep to its three derived views: a
// plain-text report, a machine-parseable JSON file, and a console summary.
// No further computation happens here; all three views read the same
// in-memory sequence, and files are written only after the sweep completes.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/collab-scan/internal/sweep"
	"github.com/pdiddy/collab-scan/pkg/types"
)

const timestampLayout = "20060102_150405"

// Filenames returns the timestamped report file pair for a run.
func Filenames(run sweep.Run) (txt, jsonName string) {
	stamp := run.Timestamp.Format(timestampLayout)
	base := fmt.Sprintf("collaborations_%s_%s_%s", run.First, run.Second, stamp)
	return base + ".txt", base + ".json"
}

// WriteText renders the human-readable report.
func WriteText(w io.Writer, run sweep.Run) {
	fmt.Fprintf(w, "COLLABORATIVE PUBLICATIONS: %s x %s\n", strings.ToUpper(run.First), strings.ToUpper(run.Second))
	fmt.Fprintf(w, "Search date: %s\n", run.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Total collaborations found: %d\n", len(run.Collaborations))
	fmt.Fprintln(w, strings.Repeat("=", 80))

	for i, c := range run.Collaborations {
		fmt.Fprintf(w, "\n[%d] PMID: %s\n", i+1, c.PMID)
		fmt.Fprintf(w, "Year: %s\n", c.Year)
		fmt.Fprintf(w, "Title: %s\n", c.Title)
		fmt.Fprintf(w, "Journal: %s\n", c.Journal)
		fmt.Fprintf(w, "Authors: %s\n", strings.Join(c.Authors, ", "))

		for _, m := range c.Matches {
			fmt.Fprintf(w, "\n%s authors matched: %s\n", strings.ToUpper(m.Profile), orNone(m.Authors))
			fmt.Fprintf(w, "%s affiliations matched:\n", strings.ToUpper(m.Profile))
			for _, aff := range m.Affiliations {
				fmt.Fprintf(w, "  * %s\n", aff)
			}
		}

		fmt.Fprintln(w, "\nAll affiliations:")
		for _, aff := range c.Affiliations {
			fmt.Fprintf(w, "  - %s\n", aff)
		}
		fmt.Fprintf(w, "\nPubMed: %s\n", c.Permalink)
		fmt.Fprintln(w, strings.Repeat("-", 80))
	}
}

// WriteJSON renders the collaborations as an indented JSON array with
// stable field ordering. Non-ASCII text (Italian department names,
// accented author names) is written as-is, not escaped.
func WriteJSON(w io.Writer, run sweep.Run) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	collabs := run.Collaborations
	if collabs == nil {
		collabs = []types.Collaboration{}
	}
	return enc.Encode(collabs)
}

// Summary prints the console wrap-up: totals and the PMID list for manual
// verification on PubMed. The screening output is a candidate list, not
// ground truth, so the permalink batch matters.
func Summary(w io.Writer, run sweep.Run) {
	fmt.Fprintf(w, "\nFound %d collaborative publications\n", len(run.Collaborations))
	if len(run.Collaborations) == 0 {
		return
	}

	pmids := make([]string, len(run.Collaborations))
	for i, c := range run.Collaborations {
		pmids[i] = c.PMID
	}

	fmt.Fprintln(w, "\nPMIDs for manual verification on PubMed:")
	fmt.Fprintln(w, strings.Join(pmids, ", "))

	linked := pmids
	if len(linked) > 20 {
		linked = linked[:20]
	}
	fmt.Fprintln(w, "\nDirect PubMed search link:")
	fmt.Fprintf(w, "https://pubmed.ncbi.nlm.nih.gov/?term=%s\n", strings.Join(linked, "+OR+"))
}

// Files writes the report pair into dir and returns their paths. Both files
// carry the run timestamp so successive sweeps never clobber each other.
func Files(dir string, run sweep.Run) (txtPath, jsonPath string, err error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("creating output directory: %w", err)
	}

	txtName, jsonName := Filenames(run)
	txtPath = filepath.Join(dir, txtName)
	jsonPath = filepath.Join(dir, jsonName)

	var txt strings.Builder
	WriteText(&txt, run)
	if err := os.WriteFile(txtPath, []byte(txt.String()), 0o644); err != nil {
		return "", "", fmt.Errorf("writing text report: %w", err)
	}

	f, err := os.Create(jsonPath)
	if err != nil {
		return "", "", fmt.Errorf("creating JSON report: %w", err)
	}
	defer f.Close()
	if err := WriteJSON(f, run); err != nil {
		return "", "", fmt.Errorf("writing JSON report: %w", err)
	}

	return txtPath, jsonPath, nil
}

func orNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
