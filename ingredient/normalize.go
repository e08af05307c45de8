/*
Package ingredient resolves ingredient identity across inconsistent naming
and unit conventions.

PURPOSE:
  Real source sheets name the same ingredient many ways ("Braised Beef(g)",
  "beef (g)", "braised beef used (g)"). Every component that joins two
  ledgers on ingredient identity goes through this package, so the whole
  pipeline agrees on one canonical name per ingredient.

KEY CONCEPTS IN THIS FILE (normalize.go):
  - Normalize: total, deterministic raw name -> canonical name
  - SplitCompound: "Peas + Carrot" -> ["Peas", "Carrot"]

DESIGN PRINCIPLES:
  1. Totality: unmatched names canonicalize to a cleaned form of themselves,
     never to an empty string
  2. Idempotence: Normalize(Normalize(x)) == Normalize(x)
  3. Determinism: no randomness, no ordering dependence

SEE ALSO:
  - match.go: fuzzy matching cascade built on top of Normalize
  - units.go: count/weight classification and unit conversion
*/
package ingredient

import (
	"sort"
	"strings"
)

// =============================================================================
// CURATED VARIANT TABLE - Known raw spellings and their canonical names
// =============================================================================

// variantTable maps lowercased raw spellings seen in real sheets to their
// canonical ingredient. Checked before any mechanical cleanup.
var variantTable = map[string]string{
	"braised beef used (g)": "Beef",
	"braised beef used(g)":  "Beef",
	"braised beef(g)":       "Beef",
	"braised beef (g)":      "Beef",
	"beef (g)":              "Beef",
	"beef(g)":               "Beef",
	"boychoy":               "Bokchoy",
	"boychoy(g)":            "Bokchoy",
	"boychoy (g)":           "Bokchoy",
	"bok choy":              "Bokchoy",
	"wings":                 "Chicken Wings",
	"chicken wing":          "Chicken Wings",
	"ramen noodles":         "Ramen",
	"ramen noodle":          "Ramen",
	"eggs":                  "Egg",
	"green onions":          "Green Onion",
	"scallion":              "Green Onion",
}

// orderedVariants fixes the tier-2 scan order: longest variants first, ties
// broken alphabetically.
var orderedVariants = func() []string {
	keys := make([]string, 0, len(variantTable))
	for k := range variantTable {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// suffixes stripped during mechanical cleanup, longest first so "(count)"
// wins over "(c...)" style partial hits.
var strippedSuffixes = []string{
	"(count)",
	"(pcs)",
	"(kg)",
	"(lb)",
	"(oz)",
	"(g)",
	"used",
	"braised",
}

// =============================================================================
// NORMALIZE
// =============================================================================

// Normalize maps a raw ingredient name to its canonical form. Total and
// deterministic: unknown names come back cleaned and title-cased, never empty
// (a fully stripped name canonicalizes to its trimmed original).
func Normalize(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if lowered == "" {
		return ""
	}

	// Tier 1: exact hit in the curated table.
	if canonical, ok := variantTable[lowered]; ok {
		return canonical
	}

	// Tier 2: a curated variant embedded in the raw name, length-guarded so
	// short keys cannot hijack unrelated names. Ordered iteration keeps the
	// result deterministic when multiple variants embed. Compound names are
	// exempt: they must be split into constituents, not collapsed onto
	// whichever constituent happens to be in the table.
	if !IsCompound(lowered) {
		for _, variant := range orderedVariants {
			if len(variant) >= 5 && strings.Contains(lowered, variant) {
				return variantTable[variant]
			}
		}
	}

	// Tier 3: mechanical cleanup.
	cleaned := lowered
	for _, suffix := range strippedSuffixes {
		cleaned = strings.ReplaceAll(cleaned, suffix, " ")
	}
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		return titleCase(strings.Join(strings.Fields(lowered), " "))
	}
	return titleCase(cleaned)
}

// titleCase uppercases the first letter of each space-separated word.
// strings.Title is deprecated and locale-aware cases are not a concern for
// ingredient names.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// =============================================================================
// COMPOUND NAMES
// =============================================================================

// IsCompound reports whether a raw name denotes multiple ingredients joined
// by "+" or "and".
func IsCompound(raw string) bool {
	lowered := strings.ToLower(raw)
	return strings.Contains(lowered, "+") || strings.Contains(lowered, " and ")
}

// SplitCompound splits a compound name into canonical constituents.
// "Peas + Carrot" becomes ["Peas", "Carrot"]. Non-compound names come back
// as a single-element slice. Callers divide quantity and cost evenly across
// constituents; the even split is a stated assumption, no measured
// proportions exist in the source data.
func SplitCompound(raw string) []string {
	lowered := strings.ToLower(raw)
	lowered = strings.ReplaceAll(lowered, " and ", "+")
	parts := strings.Split(lowered, "+")

	out := make([]string, 0, len(parts))
	for _, part := range parts {
		canonical := Normalize(part)
		if canonical != "" {
			out = append(out, canonical)
		}
	}
	if len(out) == 0 {
		return []string{Normalize(raw)}
	}
	return out
}
