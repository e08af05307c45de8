package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/inventory-engine/ledger"
)

func TestUnitCostFromLedger(t *testing.T) {
	// GIVEN one costed row and one zero-cost row for the same ingredient
	// THEN the unit cost is the average over the costed rows only
	ds := &ledger.Dataset{Purchases: []ledger.Purchase{
		purchase(1, "Beef", 10, 80),
		purchase(2, "Beef", 10, 0),
		purchase(3, "Rice", 100, 50),
	}}
	cost, source := NewDefault().UnitCost(ds, "Beef")

	assert.Equal(t, CostFromLedger, source)
	assert.InDelta(t, 8.0, cost.Float64(), 1e-9)
}

func TestUnitCostCategoryFallback(t *testing.T) {
	// No costed rows at all: the category table answers.
	ds := &ledger.Dataset{Purchases: []ledger.Purchase{purchase(1, "Beef", 10, 0)}}
	cost, source := NewDefault().UnitCost(ds, "Beef")

	assert.Equal(t, CostFromCategory, source)
	assert.InDelta(t, 8.0, cost.Float64(), 1e-9, "meat category estimate")

	cost, _ = NewDefault().UnitCost(ds, "Mystery Item")
	assert.InDelta(t, 2.5, cost.Float64(), 1e-9, "default category estimate")
}

func TestFillMissingCostsIsPure(t *testing.T) {
	ds := &ledger.Dataset{Purchases: []ledger.Purchase{
		purchase(1, "Beef", 10, 80),
		purchase(2, "Beef", 5, 0),
	}}
	filled := NewDefault().FillMissingCosts(ds)

	// The copy is backfilled at the ledger unit cost.
	require.Len(t, filled.Purchases, 2)
	assert.InDelta(t, 40, filled.Purchases[1].TotalCost.Float64(), 1e-9)

	// The input is untouched.
	assert.True(t, ds.Purchases[1].TotalCost.IsZero())
}

func TestCostReportAggregates(t *testing.T) {
	ds := &ledger.Dataset{Purchases: []ledger.Purchase{
		purchase(1, "Beef", 10, 80),
		purchase(2, "Rice", 100, 60),
		purchase(3, "Rice", 50, 30),
	}}
	summary := NewDefault().CostReport(ds, march(30))

	assert.InDelta(t, 170, summary.Total.Float64(), 1e-9)

	require.Len(t, summary.ByIngredient, 2)
	assert.Equal(t, "Rice", summary.ByIngredient[0].Ingredient, "largest spend first")
	assert.InDelta(t, 90, summary.ByIngredient[0].Total.Float64(), 1e-9)
	assert.InDelta(t, 0.6, summary.ByIngredient[0].UnitCost.Float64(), 1e-9)

	require.Len(t, summary.ByCategory, 2)
	var meatShare float64
	for _, c := range summary.ByCategory {
		if c.Category == "meat" {
			meatShare = c.Share
		}
	}
	assert.InDelta(t, 80.0/170*100, meatShare, 1e-9)
}

func TestCostReportSplitsCompounds(t *testing.T) {
	// A compound purchase splits cost evenly across constituents.
	ds := &ledger.Dataset{Purchases: []ledger.Purchase{purchase(1, "Peas + Carrot", 10, 20)}}
	summary := NewDefault().CostReport(ds, march(30))

	require.Len(t, summary.ByIngredient, 2)
	for _, row := range summary.ByIngredient {
		assert.InDelta(t, 10, row.Total.Float64(), 1e-9, row.Ingredient)
		assert.InDelta(t, 5, row.Quantity, 1e-9, row.Ingredient)
	}
}

func TestCostReportEmptyDataset(t *testing.T) {
	summary := NewDefault().CostReport(ledger.NewDataset(), march(30))
	assert.True(t, summary.Total.IsZero())
	assert.Empty(t, summary.ByIngredient)
}
