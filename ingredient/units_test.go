package ingredient

import (
	"math"
	"testing"
)

func TestIsCountBased(t *testing.T) {
	c := NewDefaultConverter()

	countBased := []struct{ name, unit string }{
		{"Egg", ""},
		{"Chicken Wings", ""},
		{"Ramen", ""},
		{"Spring Roll", ""},
		{"Rice", "pcs"},
		{"Tofu", "count"},
	}
	for _, tc := range countBased {
		if !c.IsCountBased(tc.name, tc.unit) {
			t.Errorf("IsCountBased(%q, %q) = false, want true", tc.name, tc.unit)
		}
	}

	weightBased := []struct{ name, unit string }{
		{"Beef", "lb"},
		{"Rice", "kg"},
		{"Soy Sauce", ""},
	}
	for _, tc := range weightBased {
		if c.IsCountBased(tc.name, tc.unit) {
			t.Errorf("IsCountBased(%q, %q) = true, want false", tc.name, tc.unit)
		}
	}
}

func TestToGramsWeightUnits(t *testing.T) {
	c := NewDefaultConverter()

	cases := []struct {
		qty  float64
		name string
		unit string
		want float64
	}{
		{1, "Beef", "lb", 453.592},
		{2, "Rice", "kg", 2000},
		{4, "Shrimp", "oz", 113.398},
		{500, "Soy Sauce", "g", 500},
	}
	for _, tc := range cases {
		got := c.ToGrams(tc.qty, tc.name, tc.unit)
		if math.Abs(got-tc.want) > 0.001 {
			t.Errorf("ToGrams(%v, %q, %q) = %v, want %v", tc.qty, tc.name, tc.unit, got, tc.want)
		}
	}
}

func TestToGramsCountBasedPassThrough(t *testing.T) {
	// Count-based ingredients never convert: 50 wings stay 50.
	c := NewDefaultConverter()
	if got := c.ToGrams(50, "Chicken Wings", ""); got != 50 {
		t.Errorf("ToGrams(50, wings) = %v, want 50", got)
	}
	if got := c.ToGrams(12, "Egg", "count"); got != 12 {
		t.Errorf("ToGrams(12, egg) = %v, want 12", got)
	}
}

func TestToGramsMissingUnitHeuristic(t *testing.T) {
	c := NewDefaultConverter()
	// Meats with no unit hint are assumed pounds.
	if got := c.ToGrams(1, "Beef", ""); math.Abs(got-453.592) > 0.001 {
		t.Errorf("ToGrams(1, Beef, no unit) = %v, want 453.592", got)
	}
	// Dry staples likewise.
	if got := c.ToGrams(1, "Flour", ""); math.Abs(got-453.592) > 0.001 {
		t.Errorf("ToGrams(1, Flour, no unit) = %v, want 453.592", got)
	}
	// Everything else is assumed to already be grams.
	if got := c.ToGrams(100, "Soy Sauce", ""); got != 100 {
		t.Errorf("ToGrams(100, Soy Sauce, no unit) = %v, want 100", got)
	}
}

func TestGramsPerUnit(t *testing.T) {
	c := NewDefaultConverter()
	cases := map[string]float64{
		"Ramen":         100,
		"Egg":           50,
		"Chicken Wings": 30,
		"Mystery Item":  50,
	}
	for name, want := range cases {
		if got := c.GramsPerUnit(name); got != want {
			t.Errorf("GramsPerUnit(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestGramsToUnits(t *testing.T) {
	c := NewDefaultConverter()
	// GIVEN 5000g of recipe-math usage for a count-based ingredient
	// WHEN converted to purchase units
	// THEN it lands near 50 packs (5000 / 100g per pack)
	if got := c.GramsToUnits(5000, "Ramen", ""); got != 50 {
		t.Errorf("GramsToUnits(5000, Ramen) = %v, want 50", got)
	}
	// Weight-based ingredients stay in grams.
	if got := c.GramsToUnits(750, "Beef", "lb"); got != 750 {
		t.Errorf("GramsToUnits(750, Beef) = %v, want 750", got)
	}
}

func TestCategoryAndUnitCost(t *testing.T) {
	c := NewDefaultConverter()
	cases := []struct {
		name     string
		category string
		cost     float64
	}{
		{"Beef", "meat", 8.0},
		{"Salmon", "seafood", 12.0},
		{"Carrot", "vegetable", 2.0},
		{"Rice", "staple", 1.5},
		{"Egg", "egg_dairy", 0.5},
		{"Soy Sauce", "sauce", 3.0},
		{"Mystery Item", "other", 2.5},
	}
	for _, tc := range cases {
		if got := c.Category(tc.name); got != tc.category {
			t.Errorf("Category(%q) = %q, want %q", tc.name, got, tc.category)
		}
		if got := c.CategoryUnitCost(tc.name); got != tc.cost {
			t.Errorf("CategoryUnitCost(%q) = %v, want %v", tc.name, got, tc.cost)
		}
	}
}

func TestClassificationIsStable(t *testing.T) {
	// The same name + hint must classify identically on every call.
	c := NewDefaultConverter()
	first := c.Classify("Ramen", "")
	for i := 0; i < 100; i++ {
		if got := c.Classify("Ramen", ""); got != first {
			t.Fatalf("classification drifted on call %d: %v -> %v", i, first, got)
		}
	}
}
