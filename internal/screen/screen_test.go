// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package screen

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/pdiddy/collab-scan/internal/entrez"
	"github.com/pdiddy/collab-scan/pkg/types"
)

type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	req.URL.Path = strings.TrimPrefix(req.URL.Path, "/entrez/eutils")
	return http.DefaultTransport.RoundTrip(req)
}

const screeningXML = `<?xml version="1.0" ?>
<PubmedArticleSet>
<PubmedArticle>
  <MedlineCitation>
    <PMID Version="1">111</PMID>
    <Article>
      <Journal><JournalIssue><PubDate><Year>2024</Year></PubDate></JournalIssue><Title>J1</Title></Journal>
      <ArticleTitle>First</ArticleTitle>
      <AuthorList>
        <Author>
          <LastName>Rossi</LastName><ForeName>Maria</ForeName>
          <AffiliationInfo><Affiliation>Department of Cardiac Sciences, University of Padova, Italy.</Affiliation></AffiliationInfo>
          <AffiliationInfo><Affiliation>Department of Biology, University of Bologna, Italy.</Affiliation></AffiliationInfo>
        </Author>
      </AuthorList>
    </Article>
  </MedlineCitation>
</PubmedArticle>
<PubmedArticle>
  <MedlineCitation>
    <PMID Version="1">222</PMID>
    <Article>
      <Journal><JournalIssue><PubDate><Year>2023</Year></PubDate></JournalIssue><Title>J2</Title></Journal>
      <ArticleTitle>Second</ArticleTitle>
      <AuthorList>
        <Author>
          <LastName>Bianchi</LastName><ForeName>Luca</ForeName>
          <AffiliationInfo><Affiliation>Department of Cardiac Sciences, University of Padova, Italy.</Affiliation></AffiliationInfo>
        </Author>
      </AuthorList>
    </Article>
  </MedlineCitation>
</PubmedArticle>
</PubmedArticleSet>`

func screenTestClient(t *testing.T, handler http.HandlerFunc) *entrez.Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	target, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}
	httpClient := &http.Client{Transport: rewriteTransport{target: target}}
	return entrez.NewClient(httpClient, types.EntrezConfig{}, &strings.Builder{})
}

// --- Run ---

func TestRun(t *testing.T) {
	client := screenTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/esearch.fcgi") {
			fmt.Fprint(w, `{"esearchresult": {"count": "2", "idlist": ["111", "222"]}}`)
			return
		}
		fmt.Fprint(w, screeningXML)
	})

	p := types.DepartmentProfile{
		Name:          "Department of Cardiac Sciences",
		Abbrev:        "dctv",
		ScreenQueries: []string{`"Cardiac"[Affiliation] AND Padova[Affiliation]`},
	}

	var out strings.Builder
	s := Run(context.Background(), client, p, []string{"padov"}, 100, &out)

	if s.Profile != "dctv" || s.Name != p.Name {
		t.Errorf("survey identity = %q, %q", s.Profile, s.Name)
	}
	// The Bologna affiliation fails the location gate; the Padova one is
	// shared by both records.
	if len(s.Variants) != 1 {
		t.Fatalf("len(Variants) = %d, want 1: %+v", len(s.Variants), s.Variants)
	}
	v := s.Variants[0]
	if v.Affiliation != "Department of Cardiac Sciences, University of Padova, Italy." {
		t.Errorf("Affiliation = %q", v.Affiliation)
	}
	if len(v.PMIDs) != 2 || v.PMIDs[0] != "111" || v.PMIDs[1] != "222" {
		t.Errorf("PMIDs = %v", v.PMIDs)
	}
	if !strings.Contains(out.String(), "found 2 results") {
		t.Errorf("progress = %q", out.String())
	}
}

func TestRunQueryFailureDegrades(t *testing.T) {
	client := screenTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	p := types.DepartmentProfile{Abbrev: "dctv", ScreenQueries: []string{"q1", "q2"}}
	s := Run(context.Background(), client, p, []string{"padov"}, 100, &strings.Builder{})
	if len(s.Variants) != 0 {
		t.Errorf("Variants = %+v, want none", s.Variants)
	}
}

// --- ordering and Top ---

func sampleSurvey() Survey {
	return Survey{
		Profile: "dctv",
		Name:    "Department of Cardiac Sciences",
		Variants: []Variant{
			{Affiliation: "Most common variant, Padova.", PMIDs: []string{"1", "2", "3"}},
			{Affiliation: "Another variant, Padova.", PMIDs: []string{"4"}},
			{Affiliation: "Rare variant, Padova.", PMIDs: []string{"5"}},
		},
	}
}

func TestTop(t *testing.T) {
	s := sampleSurvey()
	if got := s.Top(2); len(got) != 2 || got[0].Affiliation != "Most common variant, Padova." {
		t.Errorf("Top(2) = %+v", got)
	}
	if got := s.Top(10); len(got) != 3 {
		t.Errorf("Top(10) = %d variants, want all 3", len(got))
	}
}

// --- rendering ---

func TestWriteConsole(t *testing.T) {
	var b strings.Builder
	WriteConsole(&b, sampleSurvey(), 2)
	out := b.String()

	if !strings.Contains(out, "UNIQUE DCTV-RELATED AFFILIATIONS FOUND:") {
		t.Errorf("console = %q", out)
	}
	if !strings.Contains(out, "1. [3 articles] Example PMID: 1") {
		t.Error("console missing leading variant line")
	}
	if strings.Contains(out, "Rare variant") {
		t.Error("console must honor the top cap")
	}
}

func TestWriteReport(t *testing.T) {
	var b strings.Builder
	WriteReport(&b, []Survey{sampleSurvey()})
	out := b.String()

	for _, want := range []string{
		"AFFILIATION SCREENING RESULTS",
		"DCTV DEPARTMENT VARIATIONS (Department of Cardiac Sciences):",
		"[3 articles] PMIDs: 1, 2, 3",
		"Rare variant, Padova.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

// --- helpers ---

func TestClip(t *testing.T) {
	if got := clip("short", 10); got != "short" {
		t.Errorf("clip = %q", got)
	}
	if got := clip("abcdefghij", 4); got != "abcd..." {
		t.Errorf("clip = %q", got)
	}
}

func TestJoinLimited(t *testing.T) {
	if got := joinLimited([]string{"1", "2"}, 5); got != "1, 2" {
		t.Errorf("joinLimited = %q", got)
	}
	if got := joinLimited([]string{"1", "2", "3"}, 2); got != "1, 2..." {
		t.Errorf("joinLimited = %q", got)
	}
}
