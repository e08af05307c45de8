/*
cost.go - Cost estimation and spend summaries

PURPOSE:
  Real purchase ledgers frequently carry zero-filled cost fields. Before any
  spend or waste-cost number is produced, zero-cost rows are backfilled:
  first from the ingredient's own nonzero rows (average unit cost), then
  from a per-category unit-cost table. Money never leaves decimal space.
*/
package engine

import (
	"sort"

	"github.com/warp/inventory-engine/ingredient"
	"github.com/warp/inventory-engine/ledger"
)

// CostSource tags where an estimated cost came from.
type CostSource string

const (
	CostFromLedger   CostSource = "ledger"
	CostFromCategory CostSource = "category"
)

// UnitCost estimates dollars per purchase unit for an ingredient: the
// average over its nonzero purchase rows when any exist, else the category
// table. The source tag lets callers surface estimate quality.
func (e *Engine) UnitCost(ds *ledger.Dataset, name string) (ledger.Money, CostSource) {
	var totalCost ledger.Money
	var totalQty float64
	for _, p := range ds.Purchases {
		if !p.TotalCost.IsPositive() || p.Quantity <= 0 {
			continue
		}
		if !e.matcher.Match(name, p.Ingredient) {
			continue
		}
		totalCost = totalCost.Add(p.TotalCost)
		totalQty += p.Quantity
	}
	if totalQty > 0 {
		return totalCost.DivFloat(totalQty), CostFromLedger
	}
	return ledger.NewMoney(e.conv.CategoryUnitCost(name)), CostFromCategory
}

// FillMissingCosts returns a copy of the dataset with zero-cost purchase
// rows backfilled from UnitCost. The input is never mutated.
func (e *Engine) FillMissingCosts(ds *ledger.Dataset) *ledger.Dataset {
	out := ds.Clone()
	cache := make(map[string]ledger.Money)
	for i, p := range out.Purchases {
		if p.TotalCost.IsPositive() || p.Quantity <= 0 {
			continue
		}
		unitCost, ok := cache[p.Ingredient]
		if !ok {
			unitCost, _ = e.UnitCost(ds, p.Ingredient)
			cache[p.Ingredient] = unitCost
		}
		out.Purchases[i].TotalCost = unitCost.MulFloat(p.Quantity)
	}
	return out
}

// =============================================================================
// SPEND SUMMARY
// =============================================================================

type CategorySpend struct {
	Category string
	Total    ledger.Money
	Share    float64 // percent of overall spend
}

type IngredientSpend struct {
	Ingredient string
	Total      ledger.Money
	Quantity   float64
	UnitCost   ledger.Money
}

type CostSummary struct {
	Total        ledger.Money
	ByCategory   []CategorySpend
	ByIngredient []IngredientSpend
}

// CostReport aggregates purchase spend through ref, after missing-cost
// backfill. Compound rows split cost evenly across constituents.
func (e *Engine) CostReport(ds *ledger.Dataset, ref ledger.TimePoint) CostSummary {
	filled := e.FillMissingCosts(ds)

	byIngredient := make(map[string]*IngredientSpend)
	byCategory := make(map[string]ledger.Money)
	total := ledger.ZeroMoney()

	for _, p := range filled.PurchasesThrough(ref) {
		parts := ingredient.SplitCompound(p.Ingredient)
		costShare := p.TotalCost.DivFloat(float64(len(parts)))
		qtyShare := p.Quantity / float64(len(parts))
		for _, part := range parts {
			row, ok := byIngredient[part]
			if !ok {
				row = &IngredientSpend{Ingredient: part}
				byIngredient[part] = row
			}
			row.Total = row.Total.Add(costShare)
			row.Quantity += qtyShare

			cat := e.conv.Category(part)
			byCategory[cat] = byCategory[cat].Add(costShare)
			total = total.Add(costShare)
		}
	}

	summary := CostSummary{Total: total}
	for _, row := range byIngredient {
		if row.Quantity > 0 {
			row.UnitCost = row.Total.DivFloat(row.Quantity)
		}
		summary.ByIngredient = append(summary.ByIngredient, *row)
	}
	sort.Slice(summary.ByIngredient, func(i, j int) bool {
		if summary.ByIngredient[i].Total.Value.Equal(summary.ByIngredient[j].Total.Value) {
			return summary.ByIngredient[i].Ingredient < summary.ByIngredient[j].Ingredient
		}
		return summary.ByIngredient[i].Total.GreaterThan(summary.ByIngredient[j].Total)
	})

	totalFloat := total.Float64()
	for cat, spend := range byCategory {
		share := 0.0
		if totalFloat > 0 {
			share = spend.Float64() / totalFloat * 100
		}
		summary.ByCategory = append(summary.ByCategory, CategorySpend{
			Category: cat,
			Total:    spend,
			Share:    finite(share, 0),
		})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		if summary.ByCategory[i].Total.Value.Equal(summary.ByCategory[j].Total.Value) {
			return summary.ByCategory[i].Category < summary.ByCategory[j].Category
		}
		return summary.ByCategory[i].Total.GreaterThan(summary.ByCategory[j].Total)
	})
	return summary
}
