// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sweep

import (
	"strings"

	"github.com/pdiddy/collab-scan/internal/entrez"
	"github.com/pdiddy/collab-scan/internal/profile"
	"github.com/pdiddy/collab-scan/pkg/types"
)

// AffiliationQueries builds the cross-department search expressions: each
// profile's department-name variants, anchored to the institution, crossed
// with the other profile's hint terms. Recall comes from running several
// broad queries and filtering locally, not from one precise query.
func AffiliationQueries(f profile.File) []string {
	loc := entrez.AnyAffiliation(f.LocationTerms...)
	return []string{
		entrez.And(
			entrez.AnyAffiliation(f.Second.SearchTerms...),
			loc,
			entrez.AnyAffiliation(f.First.HintTerms...),
		),
		entrez.And(
			entrez.AnyAffiliation(f.First.SearchTerms...),
			loc,
			entrez.AnyAffiliation(f.Second.HintTerms...),
		),
	}
}

// NameQueries builds one author query per key faculty member of owner,
// crossed with the other department's hint terms: a member of A appearing
// on a paper with B-flavored affiliations is a collaboration candidate.
// Only the first two name tokens are searched, matching how PubMed indexes
// "Lastname Firstname" author terms.
func NameQueries(owner, other types.DepartmentProfile, locationTerms []string) []NameQuery {
	loc := entrez.AnyAffiliation(locationTerms...)
	hints := entrez.AnyAffiliation(other.HintTerms...)

	var queries []NameQuery
	for _, name := range profile.KeyFaculty(owner) {
		parts := strings.Fields(name)
		if len(parts) < 2 {
			continue
		}
		term := entrez.And(
			entrez.Author(parts[0]+" "+parts[1]),
			loc,
			hints,
		)
		queries = append(queries, NameQuery{Faculty: name, Profile: owner.Abbrev, Term: term})
	}
	return queries
}

// NameQuery pairs a faculty member with the search expression probing their
// cross-department publications.
type NameQuery struct {
	Faculty string
	Profile string
	Term    string
}
