// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import "testing"

func TestAffiliation(t *testing.T) {
	tests := []struct {
		name string
		term string
		want string
	}{
		{"single word", "dctv", "dctv[Affiliation]"},
		{"multi word gets quoted", "cardio-thoraco-vascular sciences", `"cardio-thoraco-vascular sciences"[Affiliation]`},
		{"already quoted left alone", `"department of pharmaceutical sciences"`, `"department of pharmaceutical sciences"[Affiliation]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Affiliation(tt.term); got != tt.want {
				t.Errorf("Affiliation(%q) = %q, want %q", tt.term, got, tt.want)
			}
		})
	}
}

func TestAuthor(t *testing.T) {
	if got := Author("Rossi Maria"); got != "Rossi Maria[Author]" {
		t.Errorf("Author = %q", got)
	}
}

func TestAnyAffiliation(t *testing.T) {
	got := AnyAffiliation("pharmaceutical sciences", "dsf")
	want := `("pharmaceutical sciences"[Affiliation] OR dsf[Affiliation])`
	if got != want {
		t.Errorf("AnyAffiliation = %q, want %q", got, want)
	}

	if got := AnyAffiliation("dsf"); got != "dsf[Affiliation]" {
		t.Errorf("single-term AnyAffiliation = %q, want no parentheses", got)
	}
}

func TestOrAnd(t *testing.T) {
	if got := Or("a", "b", "c"); got != "(a OR b OR c)" {
		t.Errorf("Or = %q", got)
	}
	if got := Or("a"); got != "a" {
		t.Errorf("Or single = %q, want unwrapped", got)
	}
	if got := And("a", "b"); got != "a AND b" {
		t.Errorf("And = %q", got)
	}
}

func TestQueryComposition(t *testing.T) {
	got := And(
		AnyAffiliation("pharmaceutical sciences"),
		AnyAffiliation("Padova", "Padua"),
		AnyAffiliation("cardiac", "thoracic"),
	)
	want := `"pharmaceutical sciences"[Affiliation] AND ` +
		`(Padova[Affiliation] OR Padua[Affiliation]) AND ` +
		`(cardiac[Affiliation] OR thoracic[Affiliation])`
	if got != want {
		t.Errorf("composed term = %q, want %q", got, want)
	}
}
