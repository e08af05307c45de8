package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/inventory-engine/ledger"
)

func TestRiskCriticalShortageWithSpike(t *testing.T) {
	// GIVEN stock nearly exhausted by a week of heavy usage
	// THEN the shortage tier and the velocity spike both contribute
	var rows []ledger.Usage
	for d := 24; d <= 30; d++ {
		rows = append(rows, usage(d, "Beef", 4))
	}
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{purchase(1, "Beef", 30, 0)},
		Usage:     rows,
		Master:    []ledger.IngredientInfo{{Name: "Beef", MinStock: 1, MaxStock: 200}},
	}
	alerts, err := NewDefault().RiskReport(context.Background(), ds, march(30))
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Contains(t, a.Factors, "Critical Shortage")
	assert.Contains(t, a.Factors, "Velocity Spike")
	assert.InDelta(t, 60, a.Score, 1e-9, "40 shortage + 20 spike")
	assert.Equal(t, "Medium", a.Level)
	assert.True(t, a.NeedsReorder)
}

func TestRiskBelowMinOverride(t *testing.T) {
	// Below minimum stock overrides weaker shortage tiers at 50 points.
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{purchase(1, "Beef", 10, 0)},
		Usage:     []ledger.Usage{usage(2, "Beef", 1)},
	}
	alerts, err := NewDefault().RiskReport(context.Background(), ds, march(30))
	require.NoError(t, err)

	a := alerts[0]
	assert.Contains(t, a.Factors, "Shortage Risk")
	assert.GreaterOrEqual(t, a.Score, 50.0)
}

func TestRiskOverstockTiers(t *testing.T) {
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{purchase(1, "Rice", 20, 0)},
		Master:    []ledger.IngredientInfo{{Name: "Rice", MinStock: 1, MaxStock: 10}},
	}
	alerts, err := NewDefault().RiskReport(context.Background(), ds, march(30))
	require.NoError(t, err)

	a := alerts[0]
	assert.Contains(t, a.Factors, "Severe Overstock")
	assert.InDelta(t, 30, a.Score, 1e-9)
	assert.Equal(t, "Low", a.Level)
	assert.False(t, a.NeedsReorder)
}

func TestRiskScoreCapped(t *testing.T) {
	// Every signal at once still caps at 100.
	var rows []ledger.Usage
	for d := 24; d <= 30; d++ {
		rows = append(rows, usage(d, "Beef", 50))
	}
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{purchase(1, "Beef", 360, 0)},
		Usage:     rows,
		Master:    []ledger.IngredientInfo{{Name: "Beef", MinStock: 300, MaxStock: 5, ShelfLifeDays: 0}},
	}
	alerts, err := NewDefault().RiskReport(context.Background(), ds, march(30))
	require.NoError(t, err)

	for _, a := range alerts {
		assert.LessOrEqual(t, a.Score, 100.0)
		assert.GreaterOrEqual(t, a.Score, 0.0)
	}
}

func TestRiskReportEmptyDataset(t *testing.T) {
	alerts, err := NewDefault().RiskReport(context.Background(), ledger.NewDataset(), march(30))
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestRiskSortedByScore(t *testing.T) {
	ds := &ledger.Dataset{
		Purchases: []ledger.Purchase{
			purchase(1, "Beef", 5, 0),    // below default min: shortage
			purchase(1, "Rice", 100, 0),  // comfortable
		},
	}
	alerts, err := NewDefault().RiskReport(context.Background(), ds, march(30))
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Beef", alerts[0].Ingredient)
	assert.GreaterOrEqual(t, alerts[0].Score, alerts[1].Score)
}
