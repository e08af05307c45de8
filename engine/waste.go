/*
waste.go - Purchased-vs-consumed reconciliation per ingredient

PURPOSE:
  Joins the purchase and usage ledgers through the matching cascade, lands
  both sides on one unit axis, and reports what was bought but never used.
  Usage is authored in grams by recipe math while purchases arrive in sheet
  units, so the join is only valid after conversion; skipping it is how a
  50-pack ramen purchase ends up looking like 4950 units of waste.

RISK BUCKETING:
  Cost-at-risk and waste quantity are normalized 0-100 against the report
  maxima. Both above 50 is High Risk, either above 30 is Medium Risk,
  otherwise Low Risk.
*/
package engine

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/warp/inventory-engine/ingredient"
	"github.com/warp/inventory-engine/ledger"
)

type WasteRow struct {
	Ingredient     string
	TotalPurchased float64 // converted axis: grams for weight, units for count
	TotalUsed      float64
	Waste          float64
	WastePct       float64
	Unit           string // axis label: "g" or "count"
	TotalCost      ledger.Money
	WasteCost      ledger.Money
	CostScore      float64 // 0-100 vs report max
	WasteScore     float64 // 0-100 vs report max
	Risk           string
	MatchStrategy  string // cascade tier that joined usage, "" if none
}

// WasteReport reconciles every purchased ingredient against matched usage
// through ref. Rows are independent and computed in parallel, then sorted
// by waste cost descending.
func (e *Engine) WasteReport(ctx context.Context, ds *ledger.Dataset, ref ledger.TimePoint) ([]WasteRow, error) {
	filled := e.FillMissingCosts(ds)

	type purchaseAgg struct {
		qty  float64
		unit string
		cost ledger.Money
	}
	byName := make(map[string]*purchaseAgg)
	for _, p := range filled.PurchasesThrough(ref) {
		parts := ingredient.SplitCompound(p.Ingredient)
		qtyShare := p.Quantity / float64(len(parts))
		costShare := p.TotalCost.DivFloat(float64(len(parts)))
		for _, part := range parts {
			agg, ok := byName[part]
			if !ok {
				agg = &purchaseAgg{}
				byName[part] = agg
			}
			agg.qty += qtyShare
			agg.cost = agg.cost.Add(costShare)
			if agg.unit == "" && p.Unit != "" {
				agg.unit = p.Unit
			}
		}
	}
	if len(byName) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	usageTotals := usageTotalsByName(ds, ref)

	rows := make([]WasteRow, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Parallelism)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			agg := byName[name]
			rows[i] = e.wasteRow(name, agg.qty, agg.unit, agg.cost, usageTotals)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var maxWaste, maxWasteCost float64
	for _, r := range rows {
		if r.Waste > maxWaste {
			maxWaste = r.Waste
		}
		if c := r.WasteCost.Float64(); c > maxWasteCost {
			maxWasteCost = c
		}
	}
	for i := range rows {
		if maxWaste > 0 {
			rows[i].WasteScore = finite(rows[i].Waste/maxWaste*100, 0)
		}
		if maxWasteCost > 0 {
			rows[i].CostScore = finite(rows[i].WasteCost.Float64()/maxWasteCost*100, 0)
		}
		rows[i].Risk = wasteRisk(rows[i].CostScore, rows[i].WasteScore)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WasteCost.Value.Equal(rows[j].WasteCost.Value) {
			return rows[i].Ingredient < rows[j].Ingredient
		}
		return rows[i].WasteCost.GreaterThan(rows[j].WasteCost)
	})
	return rows, nil
}

// wasteRow reconciles one ingredient. All slices read here are immutable
// snapshots, so rows can run concurrently.
func (e *Engine) wasteRow(name string, purchasedQty float64, unit string, cost ledger.Money, usageTotals map[string]float64) WasteRow {
	row := WasteRow{Ingredient: name, TotalCost: cost}

	countBased := e.conv.IsCountBased(name, unit)
	if countBased {
		row.TotalPurchased = purchasedQty
		row.Unit = "count"
	} else {
		row.TotalPurchased = e.conv.ToGrams(purchasedQty, name, unit)
		row.Unit = "g"
	}

	// Join usage through the cascade; usage quantities are grams.
	var usedGrams float64
	usageNames := make([]string, 0, len(usageTotals))
	for uname := range usageTotals {
		usageNames = append(usageNames, uname)
	}
	sort.Strings(usageNames)
	for _, uname := range usageNames {
		strategy, ok := e.matcher.MatchStrategy(name, uname)
		if !ok {
			continue
		}
		usedGrams += usageTotals[uname]
		if row.MatchStrategy == "" {
			row.MatchStrategy = strategy
		}
	}
	if countBased {
		row.TotalUsed = e.conv.GramsToUnits(usedGrams, name, unit)
	} else {
		row.TotalUsed = usedGrams
	}

	row.Waste = row.TotalPurchased - row.TotalUsed
	if row.Waste < 0 {
		row.Waste = 0
	}
	if row.TotalPurchased > 0 {
		row.WastePct = clampFloat(row.Waste/row.TotalPurchased*100, 0, 100)
	}
	row.WasteCost = cost.MulFloat(row.WastePct / 100)
	return row
}

func wasteRisk(costScore, wasteScore float64) string {
	switch {
	case costScore > 50 && wasteScore > 50:
		return "High Risk"
	case costScore > 30 || wasteScore > 30:
		return "Medium Risk"
	default:
		return "Low Risk"
	}
}

// usageTotalsByName sums usage quantities per raw ledger name through ref.
func usageTotalsByName(ds *ledger.Dataset, ref ledger.TimePoint) map[string]float64 {
	totals := make(map[string]float64)
	for _, u := range ds.UsageThrough(ref) {
		totals[u.Ingredient] += u.QuantityUsed
	}
	return totals
}
