/*
reorder.go - Order recommendations for at-risk ingredients

PURPOSE:
  Emits a recommendation for every ingredient below its minimum stock or
  projected to stock out within the horizon. Demand comes from the seasonal
  forecast when plausible, from trailing usage when not, and from a
  conservative multiple of minimum stock as the last resort; each downgrade
  is reflected in the data_quality flag, which callers must surface.

IMPLAUSIBILITY:
  A 30-day demand exceeding 10x max stock is a unit-mismatch symptom, not
  real demand. The gates are empirically tuned and configurable.
*/
package engine

import (
	"context"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/warp/inventory-engine/ledger"
)

type Urgency string

const (
	UrgencyCritical Urgency = "Critical"
	UrgencyHigh     Urgency = "High"
	UrgencyMedium   Urgency = "Medium"
	UrgencyLow      Urgency = "Low"
)

type DataQuality string

const (
	QualityGood    DataQuality = "Good"
	QualityLimited DataQuality = "Limited"
)

type Recommendation struct {
	Ingredient          string
	CurrentStock        float64
	MinStock            float64
	MaxStock            float64
	ForecastedDemand30d float64 // in the ingredient's purchase units
	RecommendedQty      float64
	Urgency             Urgency
	LeadTimeDays        int
	ReorderDate         ledger.TimePoint
	DaysUntilStockout   int
	DataQuality         DataQuality
	Supplier            string
}

// ReorderReport recommends order quantities for at-risk ingredients,
// urgency-descending then name-ascending.
func (e *Engine) ReorderReport(ctx context.Context, ds *ledger.Dataset, ref ledger.TimePoint) ([]Recommendation, error) {
	snapshots := e.InventorySnapshot(ds, ref)
	if len(snapshots) == 0 {
		return nil, nil
	}

	var atRisk []Snapshot
	for _, snap := range snapshots {
		if snap.CurrentStock < snap.MinStock || snap.DaysUntilStockout < e.cfg.ReorderHorizonDays {
			atRisk = append(atRisk, snap)
		}
	}
	if len(atRisk) == 0 {
		return nil, nil
	}

	recs := make([]Recommendation, len(atRisk))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Parallelism)
	for i, snap := range atRisk {
		i, snap := i, snap
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			recs[i] = e.recommend(ds, ref, snap)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	order := map[Urgency]int{UrgencyCritical: 0, UrgencyHigh: 1, UrgencyMedium: 2, UrgencyLow: 3}
	sort.Slice(recs, func(i, j int) bool {
		if order[recs[i].Urgency] != order[recs[j].Urgency] {
			return order[recs[i].Urgency] < order[recs[j].Urgency]
		}
		return recs[i].Ingredient < recs[j].Ingredient
	})
	return recs, nil
}

func (e *Engine) recommend(ds *ledger.Dataset, ref ledger.TimePoint, snap Snapshot) Recommendation {
	rec := Recommendation{
		Ingredient:        snap.Ingredient,
		CurrentStock:      snap.CurrentStock,
		MinStock:          snap.MinStock,
		MaxStock:          snap.MaxStock,
		DaysUntilStockout: snap.DaysUntilStockout,
	}

	demand, quality := e.demand30d(ds, ref, snap)
	rec.ForecastedDemand30d = demand
	rec.DataQuality = quality

	target := demand + snap.MinStock
	if snap.MaxStock > 0 && demand > 2*snap.MaxStock {
		// Demand this far past capacity cannot be ordered against; fall back
		// to topping up toward a conservative target.
		target = 2 * snap.MinStock
		rec.DataQuality = QualityLimited
	}

	qty := target - snap.CurrentStock
	ceiling := snap.MaxStock - snap.CurrentStock
	if ceiling < 0 {
		ceiling = 0
	}
	qty = clampFloat(qty, 0, ceiling)
	if snap.CurrentStock < snap.MinStock {
		qty = math.Max(qty, snap.MinStock-snap.CurrentStock)
	}
	rec.RecommendedQty = finite(qty, 0)

	rec.Urgency = urgencyFor(snap.CurrentStock, snap.DaysUntilStockout)

	lead, supplier := e.leadTime(ds, snap.Ingredient)
	rec.LeadTimeDays = lead
	rec.Supplier = supplier

	wait := snap.DaysUntilStockout - lead - e.cfg.ReorderBufferDays
	if wait < 0 {
		wait = 0
	}
	rec.ReorderDate = ref.AddDays(wait)
	return rec
}

// demand30d resolves forecasted 30-day demand in purchase units through the
// provider chain: seasonal forecast, trailing historical usage, conservative
// floor. Each fallback downgrades quality.
func (e *Engine) demand30d(ds *ledger.Dataset, ref ledger.TimePoint, snap Snapshot) (float64, DataQuality) {
	forecast, err := e.ForecastUsage(ds, snap.Ingredient, ref, ForecastOptions{
		Method:   MethodMovingAverage,
		Days:     e.cfg.ReorderHorizonDays,
		Seasonal: true,
	})
	if err == nil && len(forecast.Points) > 0 {
		var grams float64
		for _, p := range forecast.Points {
			grams += p.Usage
		}
		demand := e.conv.GramsToUnits(grams, snap.Ingredient, snap.Unit)
		if snap.MaxStock <= 0 || demand <= e.cfg.ForecastImplausibleFactor*snap.MaxStock {
			return finite(demand, 0), QualityGood
		}
		e.log.Warn().Str("ingredient", snap.Ingredient).Float64("demand", demand).
			Float64("max_stock", snap.MaxStock).
			Msg("forecast demand implausible, using historical fallback")
	}

	rate, matched := e.avgDailyUsage(ds, snap.Ingredient, ref, 30)
	if matched && rate > 0 {
		demand := e.conv.GramsToUnits(rate*float64(e.cfg.ReorderHorizonDays), snap.Ingredient, snap.Unit)
		if snap.MaxStock <= 0 || demand <= e.cfg.HistoricalImplausibleFactor*snap.MaxStock {
			return finite(demand, 0), QualityGood
		}
	}

	return math.Max(3*snap.MinStock, 20), QualityLimited
}

func urgencyFor(stock float64, daysUntilStockout int) Urgency {
	switch {
	case stock <= 0 || daysUntilStockout < 3:
		return UrgencyCritical
	case daysUntilStockout < 7:
		return UrgencyHigh
	case daysUntilStockout < 14:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// leadTime infers delivery lead time from matched shipment frequency
// metadata. "biweekly" is checked before "weekly" since it contains it.
func (e *Engine) leadTime(ds *ledger.Dataset, name string) (int, string) {
	for _, s := range ds.Shipments {
		if !e.matcher.Match(name, s.Ingredient) {
			continue
		}
		freq := strings.ToLower(s.Frequency)
		switch {
		case strings.Contains(freq, "biweekly") || strings.Contains(freq, "bi-weekly"):
			return 14, s.Supplier
		case strings.Contains(freq, "weekly"):
			return 7, s.Supplier
		case strings.Contains(freq, "monthly"):
			return 30, s.Supplier
		default:
			return 7, s.Supplier
		}
	}
	return 7, ""
}
