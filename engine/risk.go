/*
risk.go - Additive risk scoring per ingredient

PURPOSE:
  Scores each ingredient 0-100 from three independent signals: projected
  shortage, overstock, and a recent velocity spike. Scores are additive and
  capped; each contributing signal is named in the Factors list so callers
  can explain an alert.
*/
package engine

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/warp/inventory-engine/ledger"
)

type RiskAlert struct {
	Ingredient        string
	Score             float64
	Level             string // High / Medium / Low
	Factors           []string
	CurrentStock      float64
	MinStock          float64
	MaxStock          float64
	Velocity7d        float64 // avg daily usage, trailing 7 days
	Velocity30d       float64 // avg daily usage, trailing 30 days
	DaysUntilStockout int     // velocity-based estimate
	NeedsReorder      bool
}

// RiskReport scores every ingredient in the inventory snapshot. Rows are
// computed in parallel and returned score-descending.
func (e *Engine) RiskReport(ctx context.Context, ds *ledger.Dataset, ref ledger.TimePoint) ([]RiskAlert, error) {
	snapshots := e.InventorySnapshot(ds, ref)
	if len(snapshots) == 0 {
		return nil, nil
	}

	alerts := make([]RiskAlert, len(snapshots))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Parallelism)
	for i, snap := range snapshots {
		i, snap := i, snap
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			alerts[i] = e.riskAlert(ds, ref, snap)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Score == alerts[j].Score {
			return alerts[i].Ingredient < alerts[j].Ingredient
		}
		return alerts[i].Score > alerts[j].Score
	})
	return alerts, nil
}

func (e *Engine) riskAlert(ds *ledger.Dataset, ref ledger.TimePoint, snap Snapshot) RiskAlert {
	alert := RiskAlert{
		Ingredient:   snap.Ingredient,
		CurrentStock: snap.CurrentStock,
		MinStock:     snap.MinStock,
		MaxStock:     snap.MaxStock,
	}

	v7, _ := e.avgDailyUsage(ds, snap.Ingredient, ref, 7)
	v30, _ := e.avgDailyUsage(ds, snap.Ingredient, ref, 30)
	alert.Velocity7d = v7
	alert.Velocity30d = v30
	alert.DaysUntilStockout = stockoutByVelocity(snap.CurrentStock, v7, v30, e.cfg.StockoutClampDays)

	var score float64

	// Shortage tiers by velocity-projected stockout, overridden by the
	// below-minimum condition when it is worse.
	shortage := 0.0
	shortageTag := ""
	switch {
	case alert.DaysUntilStockout < 7:
		shortage, shortageTag = 40, "Critical Shortage"
	case alert.DaysUntilStockout < 14:
		shortage, shortageTag = 25, "High Shortage"
	case alert.DaysUntilStockout < 30:
		shortage, shortageTag = 10, "Moderate Shortage"
	}
	if snap.CurrentStock < snap.MinStock && shortage < 50 {
		shortage, shortageTag = 50, "Shortage Risk"
	}
	if shortage > 0 {
		score += shortage
		alert.Factors = append(alert.Factors, shortageTag)
	}

	switch {
	case snap.MaxStock > 0 && snap.CurrentStock > 1.2*snap.MaxStock:
		score += 30
		alert.Factors = append(alert.Factors, "Severe Overstock")
	case snap.MaxStock > 0 && snap.CurrentStock > snap.MaxStock:
		score += 15
		alert.Factors = append(alert.Factors, "Overstock")
	}

	if v30 > 0 && v7 > 1.5*v30 {
		score += 20
		alert.Factors = append(alert.Factors, "Velocity Spike")
	}

	alert.Score = clampFloat(score, 0, 100)
	alert.Level = riskLevel(alert.Score)
	alert.NeedsReorder = alert.DaysUntilStockout < 14 || snap.CurrentStock < snap.MinStock
	return alert
}

// stockoutByVelocity projects days of cover from the recent velocity,
// falling back to the monthly rate when the week was quiet.
func stockoutByVelocity(stock, v7, v30 float64, clampDays int) int {
	if stock <= 0 {
		return 0
	}
	rate := v7
	if rate <= 0 {
		rate = v30
	}
	if rate <= 0 {
		return clampDays
	}
	return clampInt(int(stock/rate), 0, clampDays)
}

func riskLevel(score float64) string {
	switch {
	case score >= 70:
		return "High"
	case score >= 40:
		return "Medium"
	default:
		return "Low"
	}
}
