/*
simulate.go - Counterfactual what-if runs against perturbed ledgers

PURPOSE:
  Applies a scenario to a deep copy of the dataset, reruns the inventory
  calculator, and diffs simulated state against baseline. The baseline
  ledgers are never touched; percentage change over a zero base reports 0,
  never infinity.
*/
package engine

import (
	"sort"

	"github.com/warp/inventory-engine/ledger"
)

// Scenario perturbs the ledgers multiplicatively.
type Scenario struct {
	// SalesMultiplier scales all sales and derived usage. Zero means "leave
	// unchanged".
	SalesMultiplier float64

	// MenuItemChanges scales usage and sales of specific menu items, applied
	// on top of SalesMultiplier.
	MenuItemChanges map[string]float64

	// SupplierDelayDays shifts future shipment dates.
	SupplierDelayDays int
}

// SimRow diffs one ingredient between baseline and simulated state.
type SimRow struct {
	Ingredient   string
	StockBase    float64
	StockSim     float64
	Change       float64
	ChangePct    float64
	DaysBase     int
	DaysSim      int
	DaysChange   int
}

// Simulate runs the scenario against a clone of the dataset and returns a
// per-ingredient diff, name-sorted. The input dataset is left unchanged.
func (e *Engine) Simulate(ds *ledger.Dataset, scenario Scenario, ref ledger.TimePoint) []SimRow {
	base := e.InventorySnapshot(ds, ref)

	perturbed := applyScenario(ds, scenario, ref)
	sim := e.InventorySnapshot(perturbed, ref)

	baseByName := make(map[string]Snapshot, len(base))
	for _, s := range base {
		baseByName[s.Ingredient] = s
	}
	simByName := make(map[string]Snapshot, len(sim))
	for _, s := range sim {
		simByName[s.Ingredient] = s
	}

	names := make(map[string]bool, len(base))
	for name := range baseByName {
		names[name] = true
	}
	for name := range simByName {
		names[name] = true
	}

	out := make([]SimRow, 0, len(names))
	for name := range names {
		b := baseByName[name]
		s := simByName[name]
		row := SimRow{
			Ingredient: name,
			StockBase:  b.CurrentStock,
			StockSim:   s.CurrentStock,
			Change:     s.CurrentStock - b.CurrentStock,
			DaysBase:   b.DaysUntilStockout,
			DaysSim:    s.DaysUntilStockout,
			DaysChange: s.DaysUntilStockout - b.DaysUntilStockout,
		}
		if b.CurrentStock != 0 {
			row.ChangePct = finite(row.Change/b.CurrentStock*100, 0)
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ingredient < out[j].Ingredient })
	return out
}

// applyScenario builds the perturbed dataset. Works entirely on a clone.
func applyScenario(ds *ledger.Dataset, scenario Scenario, ref ledger.TimePoint) *ledger.Dataset {
	out := ds.Clone()

	global := scenario.SalesMultiplier
	if global <= 0 {
		global = 1
	}

	for i := range out.Sales {
		factor := global
		if f, ok := scenario.MenuItemChanges[out.Sales[i].MenuItem]; ok && f > 0 {
			factor *= f
		}
		if factor == 1 {
			continue
		}
		out.Sales[i].QuantitySold *= factor
		out.Sales[i].Revenue = out.Sales[i].Revenue.MulFloat(factor)
	}

	for i := range out.Usage {
		factor := global
		if f, ok := scenario.MenuItemChanges[out.Usage[i].MenuItem]; ok && f > 0 {
			factor *= f
		}
		if factor == 1 {
			continue
		}
		out.Usage[i].QuantityUsed *= factor
	}

	if scenario.SupplierDelayDays > 0 {
		for i := range out.Shipments {
			if out.Shipments[i].Date.IsZero() || out.Shipments[i].Date.Before(ref) {
				continue
			}
			out.Shipments[i].Date = out.Shipments[i].Date.AddDays(scenario.SupplierDelayDays)
			out.Shipments[i].Status = ledger.ShipmentDelayed
			out.Shipments[i].DelayDays += scenario.SupplierDelayDays
		}
	}
	return out
}
