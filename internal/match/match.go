// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match decides whether an article's affiliations and authors tie
// it to a department profile, and whether two profiles together make the
// article a cross-department collaboration.
//
// The inclusion predicate scans the affiliation strings joined into one
// text, so a department name in one author's affiliation and the
// institution qualifier in another's can still satisfy a spanning pattern.
// The cost is the occasional spurious match when unrelated co-author
// affiliations concatenate; results feed a manual screening step, so recall
// wins over precision here. The per-string extractor used for reporting
// intentionally does NOT join.
package match

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/collab-scan/pkg/types"
)

// Profile is a compiled department identity: immutable matcher input built
// once per run from a DepartmentProfile.
type Profile struct {
	Name     string
	Abbrev   string
	Patterns []*regexp.Regexp
	Roster   []string
}

// Compile builds a Profile, compiling each affiliation pattern
// case-insensitively. Pattern order is preserved.
func Compile(cfg types.DepartmentProfile) (Profile, error) {
	p := Profile{
		Name:   cfg.Name,
		Abbrev: cfg.Abbrev,
		Roster: cfg.FacultyNames,
	}
	for _, pat := range cfg.AffiliationPatterns {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			return Profile{}, fmt.Errorf("profile %s: pattern %q: %w", cfg.Abbrev, pat, err)
		}
		p.Patterns = append(p.Patterns, re)
	}
	return p, nil
}

// JoinAffiliations lowercases and concatenates the affiliation strings into
// the text the inclusion predicates scan.
func JoinAffiliations(affiliations []string) string {
	return strings.ToLower(strings.Join(affiliations, " "))
}

// Affiliations reports whether any pattern matches anywhere in the joined,
// lowercased affiliation text.
func Affiliations(affiliations []string, patterns []*regexp.Regexp) bool {
	joined := JoinAffiliations(affiliations)
	for _, re := range patterns {
		if re.MatchString(joined) {
			return true
		}
	}
	return false
}

// ExtractAffiliations returns the affiliation strings that individually
// match at least one pattern, preserving order and dropping duplicates.
// Unlike the boolean check it matches per string, so the result names the
// concrete evidence for a report.
func ExtractAffiliations(affiliations []string, patterns []*regexp.Regexp) []string {
	var matches []string
	seen := make(map[string]bool)
	for _, aff := range affiliations {
		if seen[aff] {
			continue
		}
		for _, re := range patterns {
			if re.MatchString(aff) {
				seen[aff] = true
				matches = append(matches, aff)
				break
			}
		}
	}
	return matches
}

// Faculty returns the authors found on the roster. A roster entry
// ("Lastname[ Lastname2...] Firstname") matches an author iff the compound
// lastnames are equal case-insensitively and both firstnames agree on their
// first 5 characters, each being at least 5 characters long. Lengths and the
// prefix are counted in runes: Italian names carry accented letters, and a
// byte count would let a 4-letter name like "José" through. The prefix rule
// tolerates truncated first-name forms in bibliographic records while still
// rejecting distinct short names. Each author takes its first roster hit;
// several authors may hit the same roster entry.
func Faculty(authors, roster []string) []string {
	var matches []string
	for _, author := range authors {
		aLast, aFirst, ok := splitName(author)
		if !ok {
			continue
		}
		for _, entry := range roster {
			rLast, rFirst, ok := splitName(entry)
			if !ok {
				continue
			}
			if aLast == rLast && firstNamesAgree(aFirst, rFirst) {
				matches = append(matches, author)
				break
			}
		}
	}
	return matches
}

// firstNamesAgree applies the 5-character prefix rule in runes.
func firstNamesAgree(a, b string) bool {
	ar, br := []rune(a), []rune(b)
	if len(ar) < 5 || len(br) < 5 {
		return false
	}
	return string(ar[:5]) == string(br[:5])
}

// splitName lowercases a display name and splits it into a compound
// lastname (all but the final token) and a firstname (the final token).
func splitName(name string) (last, first string, ok bool) {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(parts) < 2 {
		return "", "", false
	}
	return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1], true
}

// ContainsLocation reports whether the joined affiliation text contains one
// of the institution's known name spellings.
func ContainsLocation(affiliations []string, tokens []string) bool {
	joined := JoinAffiliations(affiliations)
	for _, tok := range tokens {
		if tok != "" && strings.Contains(joined, strings.ToLower(tok)) {
			return true
		}
	}
	return false
}

// Collaborations filters articles down to cross-department collaborations:
// both profiles' joined-affiliation predicates must hold and the joined text
// must contain a location token. Faculty matches are attached as audit
// evidence only; they never gate inclusion, to avoid false positives from
// common-surname collisions. The result is deduplicated by PMID (first
// occurrence wins, since several query strategies can discover the same
// record) and sorted by year descending with empty years last.
func Collaborations(articles []types.Article, a, b Profile, locationTokens []string) []types.Collaboration {
	var collabs []types.Collaboration
	seen := make(map[string]bool)

	for _, art := range articles {
		if seen[art.PMID] {
			continue
		}
		if !Affiliations(art.Affiliations, a.Patterns) ||
			!Affiliations(art.Affiliations, b.Patterns) ||
			!ContainsLocation(art.Affiliations, locationTokens) {
			continue
		}
		seen[art.PMID] = true

		collabs = append(collabs, types.Collaboration{
			Article: art,
			Matches: []types.ProfileMatch{
				{
					Profile:      a.Abbrev,
					Affiliations: ExtractAffiliations(art.Affiliations, a.Patterns),
					Authors:      Faculty(art.Authors, a.Roster),
				},
				{
					Profile:      b.Abbrev,
					Affiliations: ExtractAffiliations(art.Affiliations, b.Patterns),
					Authors:      Faculty(art.Authors, b.Roster),
				},
			},
			Permalink: Permalink(art.PMID),
		})
	}

	sort.SliceStable(collabs, func(i, j int) bool {
		return sortYear(collabs[i].Year) > sortYear(collabs[j].Year)
	})
	return collabs
}

// Permalink builds the PubMed URL for a record identifier.
func Permalink(pmid string) string {
	return "https://pubmed.ncbi.nlm.nih.gov/" + pmid + "/"
}

// sortYear floors the empty year so records without a date sort last.
// Lexicographic comparison is sound: Year is always empty or 4 digits.
func sortYear(y string) string {
	if y == "" {
		return "0000"
	}
	return y
}
