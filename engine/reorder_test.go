package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/inventory-engine/ledger"
)

func TestReorderCriticalUrgency(t *testing.T) {
	// GIVEN min stock 20, current stock 5, and roughly one day of cover
	// THEN the recommendation is Critical
	var rows []ledger.Usage
	for d := 28; d <= 30; d++ {
		rows = append(rows, usage(d, "Beef", 40))
	}
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{purchase(1, "Beef", 125, 0)},
		Usage:     rows,
		Master:    []ledger.IngredientInfo{{Name: "Beef", MinStock: 20, MaxStock: 200}},
	}
	recs, err := NewDefault().ReorderReport(context.Background(), ds, march(30))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, UrgencyCritical, r.Urgency)
	assert.InDelta(t, 5, r.CurrentStock, 1e-9)
	assert.GreaterOrEqual(t, r.RecommendedQty, 15.0, "at least back up to min stock")
	assert.Equal(t, march(30).String(), r.ReorderDate.String(), "order immediately")
}

func TestReorderQuantityBounds(t *testing.T) {
	// GIVEN moderate usage and plausible demand
	// THEN order = demand + min - stock, capped at max - stock
	var rows []ledger.Usage
	for d := 26; d <= 30; d++ {
		rows = append(rows, usage(d, "Beef", 2))
	}
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{purchase(1, "Beef", 15, 0)},
		Usage:     rows,
		Master:    []ledger.IngredientInfo{{Name: "Beef", MinStock: 20, MaxStock: 200}},
	}
	recs, err := NewDefault().ReorderReport(context.Background(), ds, march(30))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	// Flat 2/day forecast over 30 days = 60; target 80; stock 5.
	assert.InDelta(t, 60, r.ForecastedDemand30d, 1e-6)
	assert.InDelta(t, 75, r.RecommendedQty, 1e-6)
	assert.Equal(t, QualityGood, r.DataQuality)
	assert.GreaterOrEqual(t, r.RecommendedQty, 0.0)
}

func TestReorderImplausibleDemandDowngrades(t *testing.T) {
	// Demand far past capacity signals a unit mismatch: fall back to the
	// conservative target and flag Limited quality.
	var rows []ledger.Usage
	for d := 28; d <= 30; d++ {
		rows = append(rows, usage(d, "Beef", 40))
	}
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{purchase(1, "Beef", 125, 0)},
		Usage:     rows,
		Master:    []ledger.IngredientInfo{{Name: "Beef", MinStock: 20, MaxStock: 200}},
	}
	recs, err := NewDefault().ReorderReport(context.Background(), ds, march(30))
	require.NoError(t, err)

	r := recs[0]
	// 40/day forecast * 30 days = 1200 > 2*max: target drops to 2*min.
	assert.Equal(t, QualityLimited, r.DataQuality)
	assert.InDelta(t, 35, r.RecommendedQty, 1e-6, "2*min - stock")
}

func TestReorderSkipsHealthyStock(t *testing.T) {
	// Plenty of stock, slow usage: no recommendation.
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{purchase(1, "Rice", 1000, 0)},
		Usage:     []ledger.Usage{usage(29, "Rice", 1)},
	}
	recs, err := NewDefault().ReorderReport(context.Background(), ds, march(30))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReorderSkipsUnmatchedUsage(t *testing.T) {
	// The no-match stockout default must not flood the report with every
	// ingredient that merely lacks usage history.
	ds := &ledger.Dataset{Purchases: []ledger.Purchase{purchase(1, "Rice", 100, 0)}}
	recs, err := NewDefault().ReorderReport(context.Background(), ds, march(30))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestReorderLeadTimeFromShipments(t *testing.T) {
	var rows []ledger.Usage
	for d := 11; d <= 30; d++ {
		rows = append(rows, usage(d, "Beef", 2))
	}
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{purchase(1, "Beef", 70, 0)},
		Usage:     rows,
		Shipments: []ledger.Shipment{{Ingredient: "Beef", Frequency: "Biweekly", Supplier: "Acme Foods"}},
	}
	recs, err := NewDefault().ReorderReport(context.Background(), ds, march(30))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, 14, r.LeadTimeDays, "biweekly frequency maps to 14 days")
	assert.Equal(t, "Acme Foods", r.Supplier)

	// reorder_date = ref + max(0, days_until_stockout - lead - 2)
	wantWait := r.DaysUntilStockout - 14 - 2
	if wantWait < 0 {
		wantWait = 0
	}
	assert.Equal(t, march(30).AddDays(wantWait).String(), r.ReorderDate.String())
}

func TestReorderUrgencyLadder(t *testing.T) {
	cases := []struct {
		stock float64
		days  int
		want  Urgency
	}{
		{0, 10, UrgencyCritical},
		{5, 2, UrgencyCritical},
		{5, 5, UrgencyHigh},
		{5, 10, UrgencyMedium},
		{5, 20, UrgencyLow},
	}
	for _, tc := range cases {
		if got := urgencyFor(tc.stock, tc.days); got != tc.want {
			t.Errorf("urgencyFor(%v, %d) = %s, want %s", tc.stock, tc.days, got, tc.want)
		}
	}
}
