// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import "strings"

// Helpers for assembling PubMed boolean field-tag expressions. They only
// build syntax; callers own the well-formedness of the terms they pass in,
// and Search never validates the result.

// Affiliation tags a term with the [Affiliation] field, quoting multi-word
// terms the way the web interface does.
func Affiliation(term string) string {
	return quoteIfSpaced(term) + "[Affiliation]"
}

// Author tags a "Lastname Firstname" display name with the [Author] field.
func Author(name string) string {
	return name + "[Author]"
}

// AnyAffiliation builds an OR-group of [Affiliation] terms.
func AnyAffiliation(terms ...string) string {
	tagged := make([]string, len(terms))
	for i, t := range terms {
		tagged[i] = Affiliation(t)
	}
	return Or(tagged...)
}

// Or joins expressions with OR inside parentheses. A single expression is
// returned as-is.
func Or(exprs ...string) string {
	if len(exprs) == 1 {
		return exprs[0]
	}
	return "(" + strings.Join(exprs, " OR ") + ")"
}

// And joins expressions with AND.
func And(exprs ...string) string {
	return strings.Join(exprs, " AND ")
}

func quoteIfSpaced(term string) string {
	if strings.ContainsRune(term, ' ') && !strings.HasPrefix(term, `"`) {
		return `"` + term + `"`
	}
	return term
}
