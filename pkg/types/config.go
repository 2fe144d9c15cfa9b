// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "collab-scan/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EntrezConfig holds settings for the NCBI E-utilities client.
type EntrezConfig struct {
	HTTPConfig `yaml:",inline"`

	// Tool is the tool name sent with every request, per E-utilities etiquette.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`

	// Email identifies the caller to NCBI. Loaded from .secrets/entrez-email.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// APIKey raises the request-rate allowance. Loaded from .secrets/ncbi-api-key.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// SearchDelay is the minimum delay before each esearch call (default 500ms).
	SearchDelay time.Duration `json:"search_delay" yaml:"search_delay"`

	// FetchDelay is the minimum delay between efetch batches (default 400ms).
	FetchDelay time.Duration `json:"fetch_delay" yaml:"fetch_delay"`

	// FetchBatchSize is the number of identifiers per efetch request
	// (default 100). The faculty cross-search uses 50.
	FetchBatchSize int `json:"fetch_batch_size" yaml:"fetch_batch_size"`
}

// SweepConfig holds settings for the collaboration sweep stage.
type SweepConfig struct {
	// MaxResults bounds the identifiers retrieved per affiliation query
	// (default 300). The server-reported count may exceed it.
	MaxResults int `json:"max_results" yaml:"max_results"`

	// NameMaxResults bounds the identifiers per faculty cross-search query
	// (default 50).
	NameMaxResults int `json:"name_max_results" yaml:"name_max_results"`

	// NameDelay is the minimum delay between faculty cross-search queries
	// (default 300ms).
	NameDelay time.Duration `json:"name_delay" yaml:"name_delay"`

	// UseNames enables the faculty cross-search phase.
	UseNames bool `json:"use_names" yaml:"use_names"`
}

// ReportConfig holds settings for the reporter.
type ReportConfig struct {
	// OutputDir is the directory for report files (default ".").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// S3Bucket enables report upload when non-empty.
	S3Bucket string `json:"s3_bucket,omitempty" yaml:"s3_bucket,omitempty"`

	// S3Prefix is the key prefix for uploaded reports (default "collab-scan").
	S3Prefix string `json:"s3_prefix,omitempty" yaml:"s3_prefix,omitempty"`

	// S3Region is the AWS region for uploads (default "us-east-1").
	S3Region string `json:"s3_region,omitempty" yaml:"s3_region,omitempty"`
}

// ArchiveConfig holds settings for the optional SQLite run archive.
type ArchiveConfig struct {
	// Path is the archive database file. Empty disables archiving.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// DepartmentProfile is the matching configuration for one organizational
// unit: affiliation regex patterns plus a faculty roster. Profiles are
// constructed once per run and treated as immutable inputs to the matcher.
type DepartmentProfile struct {
	// Name is the full department name, used in report headers.
	Name string `json:"name" yaml:"name"`

	// Abbrev is the short identifier (e.g. "dctv") used in filenames and
	// match records.
	Abbrev string `json:"abbrev" yaml:"abbrev"`

	// AffiliationPatterns are case-insensitive regular expressions matched
	// against affiliation text, covering language, naming-era, and
	// abbreviation variants. Order is preserved.
	AffiliationPatterns []string `json:"affiliation_patterns" yaml:"affiliation_patterns"`

	// FacultyNames are canonical "Lastname Firstname" entries for current
	// members. Corroborating evidence only, never the primary filter.
	FacultyNames []string `json:"faculty_names" yaml:"faculty_names"`

	// KeyFaculty is the subset cross-searched by author name. When empty
	// the first entries of FacultyNames are used, capped at 12.
	KeyFaculty []string `json:"key_faculty,omitempty" yaml:"key_faculty,omitempty"`

	// SearchTerms are quoted department-name variants used to build
	// [Affiliation] search expressions (e.g. "Scienze del Farmaco").
	SearchTerms []string `json:"search_terms" yaml:"search_terms"`

	// HintTerms are short affiliation words that indicate this department
	// when crossed with the other profile's search terms (e.g. "Cardiac").
	HintTerms []string `json:"hint_terms" yaml:"hint_terms"`

	// ScreenQueries are raw probe queries for the affiliation-variant
	// screening stage.
	ScreenQueries []string `json:"screen_queries,omitempty" yaml:"screen_queries,omitempty"`
}

// RunConfig groups all stage configurations for one pipeline run.
type RunConfig struct {
	Entrez  EntrezConfig  `json:"entrez" yaml:"entrez"`
	Sweep   SweepConfig   `json:"sweep" yaml:"sweep"`
	Report  ReportConfig  `json:"report" yaml:"report"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}
