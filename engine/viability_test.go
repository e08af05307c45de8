package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/inventory-engine/ledger"
)

func TestViabilityFromRecipeMatrix(t *testing.T) {
	// GIVEN an explicit recipe and stock for both ingredients
	// THEN servings = min over ingredients of floor(stock / per-serving)
	recipes := ledger.RecipeMatrix{}
	recipes.Set("Beef Bowl", "Beef", 200)
	recipes.Set("Beef Bowl", "Rice", 150)

	ds := &ledger.Dataset{Purchases: []ledger.Purchase{
		purchase(1, "Beef", 1000, 0),
		purchase(1, "Rice", 600, 0),
	}}
	report := NewDefault().MenuViability(ds, recipes, march(30))

	require.Len(t, report.Dishes, 1)
	dish := report.Dishes[0]
	assert.Equal(t, 4, dish.ServingsPossible, "rice bounds at floor(600/150)")
	assert.Equal(t, "Rice", dish.LimitingFactor)
	assert.Equal(t, "Low Viability", dish.Status)
	assert.InDelta(t, 100, report.Score, 1e-9)

	for _, req := range dish.Ingredients {
		assert.Equal(t, "recipe", req.Source)
	}
}

func TestViabilityMissingIngredientForcesZero(t *testing.T) {
	recipes := ledger.RecipeMatrix{}
	recipes.Set("Soup", "Tofu", 100)
	recipes.Set("Beef Bowl", "Beef", 200)

	ds := &ledger.Dataset{Purchases: []ledger.Purchase{purchase(1, "Beef", 1000, 0)}}
	report := NewDefault().MenuViability(ds, recipes, march(30))

	require.Len(t, report.Dishes, 2)
	byItem := map[string]DishViability{}
	for _, d := range report.Dishes {
		byItem[d.MenuItem] = d
	}

	soup := byItem["Soup"]
	assert.Equal(t, 0, soup.ServingsPossible)
	assert.Equal(t, "Cannot Make", soup.Status)
	assert.Contains(t, soup.Missing, "Tofu")

	assert.Equal(t, 5, byItem["Beef Bowl"].ServingsPossible)
	assert.InDelta(t, 50, report.Score, 1e-9, "one of two dishes viable")
}

func TestPerServingFromSalesRatio(t *testing.T) {
	// No recipe: usage/sold joined by date gives 400/2 = 200 per serving.
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{purchase(1, "Beef", 1000, 0)},
		Usage:     []ledger.Usage{usageFor(5, "Beef", 400, "Beef Bowl")},
		Sales:     []ledger.Sale{sale(5, "Beef Bowl", 2)},
	}
	report := NewDefault().MenuViability(ds, nil, march(30))

	require.Len(t, report.Dishes, 1)
	dish := report.Dishes[0]
	require.Len(t, dish.Ingredients, 1)
	assert.Equal(t, "sales_ratio", dish.Ingredients[0].Source)
	assert.InDelta(t, 200, dish.Ingredients[0].Quantity, 1e-9)

	// Stock after usage: 1000 - 400 = 600; servings = floor(600/200) = 3.
	assert.Equal(t, 3, dish.ServingsPossible)
}

func TestPerServingFromMinUsage(t *testing.T) {
	// No recipe and no sales: the smallest observed transaction stands in
	// for a single serving.
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{purchase(1, "Beef", 1100, 0)},
		Usage: []ledger.Usage{
			usageFor(5, "Beef", 300, "Beef Bowl"),
			usageFor(6, "Beef", 500, "Beef Bowl"),
		},
	}
	report := NewDefault().MenuViability(ds, nil, march(30))

	dish := report.Dishes[0]
	require.Len(t, dish.Ingredients, 1)
	assert.Equal(t, "min_usage", dish.Ingredients[0].Source)
	assert.InDelta(t, 300, dish.Ingredients[0].Quantity, 1e-9)
	// Stock 1100 - 800 = 300; servings = floor(300/300) = 1.
	assert.Equal(t, 1, dish.ServingsPossible)
}

func TestPerServingCountConversion(t *testing.T) {
	// A count-based ingredient with a gram-looking recipe value converts
	// through grams-per-unit: 100 g of ramen is one pack per serving.
	recipes := ledger.RecipeMatrix{}
	recipes.Set("Ramen Bowl", "Ramen", 100)

	ds := &ledger.Dataset{Purchases: []ledger.Purchase{{Date: march(1), Ingredient: "Ramen", Quantity: 50, Unit: "count"}}}
	report := NewDefault().MenuViability(ds, recipes, march(30))

	dish := report.Dishes[0]
	require.Len(t, dish.Ingredients, 1)
	assert.InDelta(t, 1, dish.Ingredients[0].Quantity, 1e-9)
	assert.Equal(t, 50, dish.ServingsPossible)
	assert.Equal(t, "High Viability", dish.Status)
}

func TestViabilityStatusBuckets(t *testing.T) {
	cases := []struct {
		servings int
		want     string
	}{
		{0, "Cannot Make"},
		{1, "Low Viability"},
		{19, "Low Viability"},
		{20, "Medium Viability"},
		{49, "Medium Viability"},
		{50, "High Viability"},
	}
	for _, tc := range cases {
		if got := viabilityStatus(tc.servings); got != tc.want {
			t.Errorf("viabilityStatus(%d) = %q, want %q", tc.servings, got, tc.want)
		}
	}
}

func TestViabilityMonotonicInStock(t *testing.T) {
	// Increasing stock of a required ingredient never decreases servings.
	recipes := ledger.RecipeMatrix{}
	recipes.Set("Beef Bowl", "Beef", 200)
	recipes.Set("Beef Bowl", "Rice", 150)

	base := &ledger.Dataset{Purchases: []ledger.Purchase{
		purchase(1, "Beef", 1000, 0),
		purchase(1, "Rice", 600, 0),
	}}
	before := NewDefault().MenuViability(base, recipes, march(30)).Dishes[0].ServingsPossible

	more := base.Clone()
	more.Purchases = append(more.Purchases, purchase(2, "Rice", 300, 0))
	after := NewDefault().MenuViability(more, recipes, march(30)).Dishes[0].ServingsPossible

	assert.GreaterOrEqual(t, after, before)
}

func TestViabilityEmptyInputs(t *testing.T) {
	report := NewDefault().MenuViability(ledger.NewDataset(), nil, march(30))
	assert.Empty(t, report.Dishes)
	assert.Zero(t, report.Score)
}
