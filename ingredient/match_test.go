package ingredient

import (
	"testing"
)

func TestMatchCascadeTiers(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		a, b     string
		strategy string
	}{
		// Canonical equality through the variant table.
		{"Braised Beef(g)", "beef (g)", "exact"},
		// Containment after normalization.
		{"Beef", "Braised Beef Noodle", "substring"},
		// Plain containment also covers compound constituents.
		{"Peas + Carrot", "Carrot", "substring"},
		// Compound whose constituent only unifies through the variant table.
		{"scallion + beef", "Green Onion", "compound"},
		// Shared token.
		{"Green Onion", "Onion Powder", "tokens"},
		{"Chicken Breast", "Wings Chicken", "tokens"},
	}
	for _, tc := range cases {
		strategy, ok := m.MatchStrategy(tc.a, tc.b)
		if !ok {
			t.Errorf("Match(%q, %q) = false, want true", tc.a, tc.b)
			continue
		}
		if strategy != tc.strategy {
			t.Errorf("Match(%q, %q) hit %q tier, want %q", tc.a, tc.b, strategy, tc.strategy)
		}
	}
}

func TestMatchRejectsUnrelated(t *testing.T) {
	m := NewMatcher()
	pairs := [][2]string{
		{"Beef", "Rice"},
		{"Egg", "Soy Sauce"},
		{"Shrimp", "Carrot"},
		{"", "Beef"},
		{"Beef", "   "},
	}
	for _, p := range pairs {
		if m.Match(p[0], p[1]) {
			t.Errorf("Match(%q, %q) = true, want false", p[0], p[1])
		}
	}
}

func TestMatchIsSymmetric(t *testing.T) {
	// Match(a, b) == Match(b, a) for every strategy tier.
	m := NewMatcher()
	pairs := [][2]string{
		{"Beef", "Braised Beef(g)"},
		{"Peas + Carrot", "Carrot"},
		{"Chicken Wings", "wing"},
		{"Rice", "Fried Rice"},
		{"Beef", "Rice"},
		{"Egg", "Eggs"},
	}
	for _, p := range pairs {
		ab := m.Match(p[0], p[1])
		ba := m.Match(p[1], p[0])
		if ab != ba {
			t.Errorf("asymmetric match: Match(%q,%q)=%v but Match(%q,%q)=%v",
				p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestMatchShortFragmentsGated(t *testing.T) {
	m := NewMatcher()
	// Two-character fragments must not join unrelated names through the
	// containment tiers.
	if m.Match("g", "Egg") {
		t.Error("single-letter fragment matched through containment")
	}
}

func TestFindMatchDeterministic(t *testing.T) {
	m := NewMatcher()
	candidates := []string{"Rice", "Beef", "Chicken Wings"}

	got, ok := m.FindMatch("braised beef used (g)", candidates)
	if !ok || got != "Beef" {
		t.Fatalf("FindMatch = %q, %v; want Beef, true", got, ok)
	}

	// Earlier strategy tiers win over earlier slice positions: an exact hit
	// beats a substring hit even when the substring candidate comes first.
	got, ok = m.FindMatch("Wings", []string{"Wing Sauce", "Chicken Wings"})
	if !ok || got != "Chicken Wings" {
		t.Fatalf("FindMatch = %q, %v; want Chicken Wings, true", got, ok)
	}
}
