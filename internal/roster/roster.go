// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roster extracts faculty name lists from department staff pages.
// Rosters feed the profile configuration as corroborating author evidence;
// scraping them beats hand-copying a hundred names whenever a staff page
// changes.
package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.yaml.in/yaml/v3"
)

// Fetch downloads a staff page and returns the text of every node matching
// selector, normalized to single-spaced "Lastname Firstname" display names
// in page order. Duplicate names are dropped.
func Fetch(ctx context.Context, client *http.Client, pageURL, selector, userAgent string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching staff page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("staff page returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing staff page: %w", err)
	}

	return Extract(doc, selector), nil
}

// Extract pulls normalized names out of a parsed document.
func Extract(doc *goquery.Document, selector string) []string {
	var names []string
	seen := make(map[string]bool)

	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		name := Normalize(sel.Text())
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	})
	return names
}

// Normalize collapses whitespace and strips the trailing role qualifiers
// some staff pages append after a dash or comma.
func Normalize(raw string) string {
	name := raw
	for _, sep := range []string{" - ", " – ", ","} {
		if idx := strings.Index(name, sep); idx >= 0 {
			name = name[:idx]
		}
	}
	return strings.Join(strings.Fields(name), " ")
}

// WriteYAML emits the names as a faculty_names fragment pasteable into a
// profiles file.
func WriteYAML(w io.Writer, names []string) error {
	fragment := struct {
		FacultyNames []string `yaml:"faculty_names"`
	}{FacultyNames: names}

	data, err := yaml.Marshal(&fragment)
	if err != nil {
		return fmt.Errorf("marshaling roster: %w", err)
	}
	_, err = w.Write(data)
	return err
}
