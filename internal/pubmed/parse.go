// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed parses PubMed efetch XML into Article records.
//
// Fetch batches are naively concatenated upstream, so the raw payload may
// hold several complete XML documents back to back. Parse re-delimits them
// on the document prolog and decodes each one independently: a malformed or
// truncated document is skipped without disturbing its well-formed
// neighbors.
package pubmed

import (
	"encoding/xml"
	"strings"

	"github.com/pdiddy/collab-scan/pkg/types"
)

const (
	xmlProlog = `<?xml version="1.0"`

	placeholderPMID  = "Unknown"
	placeholderTitle = "No title"
)

// articleSet mirrors the subset of the PubmedArticleSet document the
// pipeline needs.
type articleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	PMID    string `xml:"MedlineCitation>PMID"`
	Article struct {
		Title   string `xml:"ArticleTitle"`
		Journal struct {
			Title        string `xml:"Title"`
			JournalIssue struct {
				PubDate pubDate `xml:"PubDate"`
			} `xml:"JournalIssue"`
		} `xml:"Journal"`
		Authors []author `xml:"AuthorList>Author"`
		// Legacy single-affiliation location used by older records.
		Affiliation string `xml:"Affiliation"`
	} `xml:"MedlineCitation>Article"`
}

type pubDate struct {
	Year        string `xml:"Year"`
	MedlineDate string `xml:"MedlineDate"`
}

type author struct {
	LastName     string `xml:"LastName"`
	ForeName     string `xml:"ForeName"`
	Affiliations []struct {
		Affiliation string `xml:"Affiliation"`
	} `xml:"AffiliationInfo"`
	// Legacy per-author affiliation (pre-2014 records).
	Affiliation string `xml:"Affiliation"`
}

// Split re-delimits naively concatenated XML documents. Each fragment after
// the first lost its prolog in the split, so it is restored before decoding.
func Split(raw string) []string {
	chunks := strings.Split(raw, xmlProlog)
	var docs []string
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		if i > 0 || strings.HasPrefix(raw, xmlProlog) {
			chunk = xmlProlog + chunk
		}
		docs = append(docs, chunk)
	}
	return docs
}

// Parse converts raw efetch output into Articles. Parsing the same payload
// twice yields structurally identical results; decode failures skip the
// offending document only.
func Parse(raw string) []types.Article {
	var articles []types.Article
	for _, doc := range Split(raw) {
		var set articleSet
		if err := xml.Unmarshal([]byte(doc), &set); err != nil {
			continue
		}
		for _, pa := range set.Articles {
			articles = append(articles, toArticle(pa))
		}
	}
	return articles
}

func toArticle(pa pubmedArticle) types.Article {
	a := types.Article{
		PMID:    strings.TrimSpace(pa.PMID),
		Title:   strings.TrimSpace(pa.Article.Title),
		Journal: strings.TrimSpace(pa.Article.Journal.Title),
		Year:    year(pa.Article.Journal.JournalIssue.PubDate),
	}
	if a.PMID == "" {
		a.PMID = placeholderPMID
	}
	if a.Title == "" {
		a.Title = placeholderTitle
	}

	seen := make(map[string]bool)
	addAff := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		a.Affiliations = append(a.Affiliations, s)
	}

	// Modern per-author location first, then legacy locations not already
	// present (string-identical dedup, order-preserving).
	for _, au := range pa.Article.Authors {
		for _, ai := range au.Affiliations {
			addAff(ai.Affiliation)
		}
	}
	for _, au := range pa.Article.Authors {
		addAff(au.Affiliation)
	}
	addAff(pa.Article.Affiliation)

	for _, au := range pa.Article.Authors {
		last := strings.TrimSpace(au.LastName)
		if last == "" {
			continue
		}
		name := last
		if fore := strings.TrimSpace(au.ForeName); fore != "" {
			name += " " + fore
		}
		a.Authors = append(a.Authors, name)
	}

	return a
}

// year applies the date policy: the structured Year field when present,
// otherwise the first 4 characters of the loosely formatted MedlineDate.
func year(pd pubDate) string {
	if y := strings.TrimSpace(pd.Year); y != "" {
		return y
	}
	md := strings.TrimSpace(pd.MedlineDate)
	if len(md) >= 4 {
		return md[:4]
	}
	return md
}
