// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the collab-scan pipeline.
package types

// Article is one bibliographic record fetched from PubMed. An Article is
// immutable once parsed; filtering annotates a Collaboration view around it
// and never modifies the record itself.
type Article struct {
	// PMID is the PubMed record identifier, the unique key for the article.
	PMID string `json:"pmid" yaml:"pmid"`

	// Title is the article title, or "No title" when the record has none.
	Title string `json:"title" yaml:"title"`

	// Journal is the full journal title. May be empty.
	Journal string `json:"journal" yaml:"journal"`

	// Year is the 4-digit publication year, or "" when the record carries
	// no usable date. Derived from PubDate/Year with a MedlineDate fallback.
	Year string `json:"year" yaml:"year"`

	// Authors lists display names ("Lastname Firstname") in document order.
	// Duplicates are possible when the record repeats an author.
	Authors []string `json:"authors" yaml:"authors"`

	// Affiliations lists free-text affiliation strings, deduplicated by
	// exact match across the per-author and legacy locations, preserving
	// first-seen order.
	Affiliations []string `json:"affiliations" yaml:"affiliations"`
}

// ProfileMatch holds the evidence that tied one department profile to an
// article: the affiliation strings that matched the profile's patterns and
// the authors reconciled against its faculty roster.
type ProfileMatch struct {
	// Profile is the department abbreviation (e.g. "dctv").
	Profile string `json:"profile" yaml:"profile"`

	// Affiliations is the subset of the article's affiliation strings that
	// matched at least one of the profile's patterns, in article order.
	Affiliations []string `json:"affiliations" yaml:"affiliations"`

	// Authors is the subset of the article's authors found on the profile's
	// faculty roster. Display/audit evidence only; it never gates inclusion.
	Authors []string `json:"authors" yaml:"authors"`
}

// Collaboration is an article classified as jointly affiliated with both
// department profiles at the same institution. It is a view computed once
// per run, never persisted as pipeline state.
type Collaboration struct {
	Article `yaml:",inline"`

	// Matches holds the per-profile match evidence, ordered [first profile,
	// second profile] as configured for the run.
	Matches []ProfileMatch `json:"matches" yaml:"matches"`

	// Permalink is the PubMed URL for the record.
	Permalink string `json:"permalink" yaml:"permalink"`
}

// MatchFor returns the match evidence for the named profile and whether it
// was found.
func (c Collaboration) MatchFor(profile string) (ProfileMatch, bool) {
	for _, m := range c.Matches {
		if m.Profile == profile {
			return m, true
		}
	}
	return ProfileMatch{}, false
}
