package ingredient

import (
	"testing"
)

func TestNormalizeKnownVariants(t *testing.T) {
	// GIVEN raw spellings seen in real sheets
	// WHEN normalized
	// THEN each resolves to its curated canonical name
	cases := map[string]string{
		"Braised Beef(g)":       "Beef",
		"braised beef used (g)": "Beef",
		"beef (g)":              "Beef",
		"Boychoy(g)":            "Bokchoy",
		"Wings":                 "Chicken Wings",
		"Ramen Noodles":         "Ramen",
		"eggs":                  "Egg",
	}
	for raw, want := range cases {
		if got := Normalize(raw); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeUnknownNamesAreCleaned(t *testing.T) {
	cases := map[string]string{
		"rice (kg)":        "Rice",
		"SOY SAUCE used":   "Soy Sauce",
		"  tofu  ":         "Tofu",
		"pork belly (lb)":  "Pork Belly",
		"shrimp (oz)":      "Shrimp",
		"napa cabbage(g)":  "Napa Cabbage",
	}
	for raw, want := range cases {
		if got := Normalize(raw); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	// Normalize(Normalize(x)) must equal Normalize(x) for any input.
	inputs := []string{
		"Braised Beef(g)", "beef (g)", "Wings", "rice (kg)", "Peas + Carrot",
		"eggs", "Ramen Noodles", "unknown thing (pcs)", "", "   ",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", raw, once, twice)
		}
	}
}

func TestNormalizeIsTotal(t *testing.T) {
	// GIVEN a name that is nothing but strippable suffixes
	// THEN normalization still returns a non-empty cleaned form
	if got := Normalize("used (g)"); got == "" {
		t.Error("Normalize must never return empty for non-empty input")
	}
}

func TestSplitCompound(t *testing.T) {
	got := SplitCompound("Peas + Carrot")
	if len(got) != 2 || got[0] != "Peas" || got[1] != "Carrot" {
		t.Errorf("SplitCompound(\"Peas + Carrot\") = %v, want [Peas Carrot]", got)
	}

	got = SplitCompound("salt and pepper")
	if len(got) != 2 || got[0] != "Salt" || got[1] != "Pepper" {
		t.Errorf("SplitCompound(\"salt and pepper\") = %v, want [Salt Pepper]", got)
	}

	// Non-compound names come back as a single canonical element.
	got = SplitCompound("Beef (g)")
	if len(got) != 1 || got[0] != "Beef" {
		t.Errorf("SplitCompound(\"Beef (g)\") = %v, want [Beef]", got)
	}
}

func TestIsCompound(t *testing.T) {
	if !IsCompound("Peas + Carrot") {
		t.Error("expected compound for plus-joined name")
	}
	if !IsCompound("salt and pepper") {
		t.Error("expected compound for and-joined name")
	}
	if IsCompound("Grand Marnier") {
		t.Error("'and' inside a word must not mark a compound")
	}
}
