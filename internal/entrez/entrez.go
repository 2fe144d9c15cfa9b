// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entrez queries the NCBI E-utilities endpoints used by the
// pipeline: esearch for identifier discovery and efetch for record bodies.
//
// Every call is best-effort and attempted exactly once. A failed search
// degrades to an empty identifier list and a failed fetch batch is skipped,
// with a diagnostic written to the client's writer; a single bad query must
// not abort a multi-query sweep. Rate discipline is cooperative: calls are
// paced through httputil.Pacer instead of retried.
package entrez

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/collab-scan/internal/httputil"
	"github.com/pdiddy/collab-scan/internal/pubmed"
	"github.com/pdiddy/collab-scan/pkg/types"
)

// eutilsBase is the E-utilities endpoint root. Declared as a var so tests
// can substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

const (
	db                    = "pubmed"
	defaultFetchBatchSize = 100
)

// Client issues paced, single-attempt requests against the E-utilities API.
// It is owned by one sequential run and is not safe for concurrent use.
type Client struct {
	http  *http.Client
	cfg   types.EntrezConfig
	out   io.Writer
	pacer *httputil.Pacer
}

// NewClient builds a Client. Progress and warnings go to w.
func NewClient(httpClient *http.Client, cfg types.EntrezConfig, w io.Writer) *Client {
	return &Client{
		http:  httpClient,
		cfg:   cfg,
		out:   w,
		pacer: httputil.NewPacer(),
	}
}

// WithSearchDelay returns a view of the client whose searches use a
// different minimum delay, sharing the underlying pacer so the overall call
// rhythm is preserved. The faculty cross-search runs on a shorter delay
// than the broad affiliation queries.
func (c *Client) WithSearchDelay(d time.Duration) *Client {
	dup := *c
	dup.cfg.SearchDelay = d
	return &dup
}

// esearchEnvelope mirrors the JSON envelope returned by esearch.fcgi.
type esearchEnvelope struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// Search runs one esearch query and returns the retrieved identifiers and
// the server-reported total count. The count may exceed len(ids); callers
// must not assume completeness. On any transport or decode failure Search
// logs a diagnostic and returns (nil, 0).
func (c *Client) Search(ctx context.Context, term string, retMax int) (ids []string, count int) {
	if err := c.pacer.Wait(ctx, c.cfg.SearchDelay); err != nil {
		fmt.Fprintf(c.out, "  search error: %v\n", err)
		return nil, 0
	}

	params := url.Values{
		"db":      {db},
		"term":    {term},
		"retmax":  {strconv.Itoa(retMax)},
		"retmode": {"json"},
	}
	c.etiquette(params)

	var env esearchEnvelope
	if err := c.getJSON(ctx, "esearch.fcgi", params, &env); err != nil {
		fmt.Fprintf(c.out, "  search error: %v\n", err)
		return nil, 0
	}

	n, err := strconv.Atoi(env.Result.Count)
	if err != nil {
		n = len(env.Result.IDList)
	}
	return env.Result.IDList, n
}

// Fetch retrieves raw efetch XML for the given identifiers, batched to
// respect upstream request-size limits, and returns the concatenated
// bodies. A failed batch is logged and skipped; the remainder of the sweep
// continues with partial results.
func (c *Client) Fetch(ctx context.Context, ids []string) string {
	if len(ids) == 0 {
		return ""
	}

	size := c.cfg.FetchBatchSize
	if size <= 0 {
		size = defaultFetchBatchSize
	}

	var b strings.Builder
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}

		if err := c.pacer.Wait(ctx, c.cfg.FetchDelay); err != nil {
			fmt.Fprintf(c.out, "  fetch error: %v\n", err)
			return b.String()
		}

		params := url.Values{
			"db":      {db},
			"id":      {strings.Join(ids[start:end], ",")},
			"retmode": {"xml"},
		}
		c.etiquette(params)

		body, err := c.get(ctx, "efetch.fcgi", params)
		if err != nil {
			fmt.Fprintf(c.out, "  fetch error: %v\n", err)
			continue
		}
		b.WriteString(body)
	}
	return b.String()
}

// FetchArticles fetches and parses records in one step. Concatenated
// documents are re-delimited before parsing; malformed documents are
// skipped by the parser.
func (c *Client) FetchArticles(ctx context.Context, ids []string) []types.Article {
	return pubmed.Parse(c.Fetch(ctx, ids))
}

// etiquette appends the identification parameters NCBI asks callers to send.
func (c *Client) etiquette(params url.Values) {
	if c.cfg.Tool != "" {
		params.Set("tool", c.cfg.Tool)
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (string, error) {
	reqURL := eutilsBase + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s returned HTTP %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s response: %w", endpoint, err)
	}
	return string(body), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, v any) error {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("parsing %s response: %w", endpoint, err)
	}
	return nil
}
