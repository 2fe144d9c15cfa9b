// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/collab-scan/internal/match"
	"github.com/pdiddy/collab-scan/pkg/types"
)

// --- Defaults ---

func TestDefaultsCompile(t *testing.T) {
	f := Defaults()
	for _, p := range []types.DepartmentProfile{f.First, f.Second} {
		if _, err := match.Compile(p); err != nil {
			t.Errorf("default profile %s must compile: %v", p.Abbrev, err)
		}
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := Defaults().validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestDefaultsMatchKnownAffiliations(t *testing.T) {
	f := Defaults()
	dctv, err := match.Compile(f.First)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	dsf, err := match.Compile(f.Second)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	tests := []struct {
		name        string
		affiliation string
		profile     match.Profile
		want        bool
	}{
		{"dctv full english name", "Department of Cardiac, Thoracic and Vascular Sciences and Public Health, University of Padova, Padova, Italy.", dctv, true},
		{"dctv older naming", "Department of Cardiac, Thoracic and Vascular Sciences, University of Padua, Italy.", dctv, true},
		{"dctv legal medicine unit", "Legal Medicine and Toxicology Unit, University of Padova, Italy.", dctv, true},
		{"dctv abbreviation", "DCTV, Università degli Studi di Padova.", dctv, true},
		{"dctv misses dsf", "Department of Pharmaceutical and Pharmacological Sciences, University of Padova, Italy.", dctv, false},
		{"dsf english name", "Department of Pharmaceutical and Pharmacological Sciences, University of Padova, Padova, Italy.", dsf, true},
		{"dsf ampersand form", "Department of Pharmaceutical & Pharmacological Sciences, University of Padua, Italy.", dsf, true},
		{"dsf italian name", "Dipartimento di Scienze del Farmaco, Università di Padova, Italy.", dsf, true},
		{"dsf misses dctv", "Department of Cardiac, Thoracic and Vascular Sciences, Padova.", dsf, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := match.Affiliations([]string{tt.affiliation}, tt.profile.Patterns)
			if got != tt.want {
				t.Errorf("Affiliations(%q) = %v, want %v", tt.affiliation, got, tt.want)
			}
		})
	}
}

func TestDefaultsSearchTermsCoverSubUnits(t *testing.T) {
	terms := Defaults().First.SearchTerms
	for _, want := range []string{"Legal Medicine", "Medicina Legale"} {
		found := false
		for _, term := range terms {
			if term == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("DCTV search terms %v missing sub-unit variant %q", terms, want)
		}
	}
}

func TestDefaultsLocation(t *testing.T) {
	f := Defaults()
	if len(f.LocationTokens) != 2 || f.LocationTokens[0] != "padov" || f.LocationTokens[1] != "padua" {
		t.Errorf("LocationTokens = %v", f.LocationTokens)
	}
	if len(f.LocationTerms) != 2 {
		t.Errorf("LocationTerms = %v", f.LocationTerms)
	}
}

// --- KeyFaculty ---

func TestKeyFaculty(t *testing.T) {
	configured := types.DepartmentProfile{
		FacultyNames: []string{"A One", "B Two"},
		KeyFaculty:   []string{"C Three"},
	}
	if got := KeyFaculty(configured); len(got) != 1 || got[0] != "C Three" {
		t.Errorf("KeyFaculty = %v, want the configured list", got)
	}

	small := types.DepartmentProfile{FacultyNames: []string{"A One", "B Two"}}
	if got := KeyFaculty(small); len(got) != 2 {
		t.Errorf("KeyFaculty = %v, want the whole small roster", got)
	}

	var names []string
	for i := 0; i < 20; i++ {
		names = append(names, "Name "+string(rune('A'+i)))
	}
	large := types.DepartmentProfile{FacultyNames: names}
	if got := KeyFaculty(large); len(got) != keyFacultyCap {
		t.Errorf("len(KeyFaculty) = %d, want capped at %d", len(got), keyFacultyCap)
	}
}

// --- Load ---

const sampleProfilesYAML = `first:
  name: Department of Alpha Studies
  abbrev: alpha
  affiliation_patterns:
    - alpha\s+studies
  faculty_names:
    - Rossi Maria
  search_terms:
    - Alpha Studies
  hint_terms:
    - Alpha
second:
  name: Department of Beta Research
  abbrev: beta
  affiliation_patterns:
    - beta\s+research
location_tokens:
  - exampletown
location_terms:
  - Exampletown
`

func writeProfiles(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing profiles file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	f, err := Load(writeProfiles(t, sampleProfilesYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.First.Abbrev != "alpha" || f.Second.Abbrev != "beta" {
		t.Errorf("abbrevs = %q, %q", f.First.Abbrev, f.Second.Abbrev)
	}
	if len(f.First.AffiliationPatterns) != 1 {
		t.Errorf("First patterns = %v", f.First.AffiliationPatterns)
	}
	if len(f.LocationTokens) != 1 || f.LocationTokens[0] != "exampletown" {
		t.Errorf("LocationTokens = %v", f.LocationTokens)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	f, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.First.Abbrev != "dctv" || f.Second.Abbrev != "dsf" {
		t.Errorf("abbrevs = %q, %q, want built-in defaults", f.First.Abbrev, f.Second.Abbrev)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load must fail on a missing file")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		mangle  func(string) string
		wantErr string
	}{
		{
			name:    "missing abbrev",
			mangle:  func(s string) string { return strings.Replace(s, "  abbrev: alpha\n", "", 1) },
			wantErr: "abbrev is required",
		},
		{
			name: "missing patterns",
			mangle: func(s string) string {
				return strings.Replace(s, "  affiliation_patterns:\n    - beta\\s+research\n", "", 1)
			},
			wantErr: "affiliation pattern",
		},
		{
			name:    "missing location tokens",
			mangle:  func(s string) string { return strings.Replace(s, "location_tokens:\n  - exampletown\n", "", 1) },
			wantErr: "location_tokens",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeProfiles(t, tt.mangle(sampleProfilesYAML)))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadBadYAML(t *testing.T) {
	if _, err := Load(writeProfiles(t, "first: [not a mapping")); err == nil {
		t.Fatal("Load must fail on malformed YAML")
	}
}
