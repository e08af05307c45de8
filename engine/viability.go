/*
viability.go - "What can the kitchen make" from recipes, usage, and stock

PURPOSE:
  Derives per-serving ingredient consumption for every menu item, then
  divides current stock by it to answer how many servings are possible.

PER-SERVING PROVIDER CHAIN (first valid wins):
  1. recipe     - explicit recipe matrix entry, authoritative
  2. sales_ratio- average usage/sold joined by date, range-filtered to
                  reject division artifacts
  3. min_usage  - minimum observed per-transaction usage as a single-serving
                  proxy, scaled down by typical transaction size while
                  implausible

Count-based ingredients whose derived value reads like grams (>5 per
serving) convert through the per-unit weight constants.
*/
package engine

import (
	"math"
	"sort"

	"github.com/warp/inventory-engine/ingredient"
	"github.com/warp/inventory-engine/ledger"
)

const (
	perServingMin = 0.001
	perServingMax = 10000
)

type PerServing struct {
	Ingredient string
	Quantity   float64
	Source     string // "recipe", "sales_ratio", "min_usage"
}

type DishViability struct {
	MenuItem         string
	ServingsPossible int
	Status           string
	LimitingFactor   string   // ingredient that bounds servings
	Missing          []string // unmatched or out-of-stock ingredients
	Invalid          []string // ingredients with unusable per-serving values
	Ingredients      []PerServing
}

type MenuReport struct {
	Dishes []DishViability
	Score  float64 // percent of dishes with at least one possible serving
}

// MenuViability maps every menu item seen in sales or the recipe matrix to
// its viability against current stock. recipes may be nil.
func (e *Engine) MenuViability(ds *ledger.Dataset, recipes ledger.RecipeMatrix, ref ledger.TimePoint) MenuReport {
	items := make(map[string]bool)
	for _, s := range ds.SalesThrough(ref) {
		items[s.MenuItem] = true
	}
	for item := range recipes {
		items[item] = true
	}
	if len(items) == 0 {
		return MenuReport{}
	}

	snapshots := e.InventorySnapshot(ds, ref)
	stock := make(map[string]float64, len(snapshots))
	stockNames := make([]string, 0, len(snapshots))
	for _, snap := range snapshots {
		stock[snap.Ingredient] = snap.CurrentStock
		stockNames = append(stockNames, snap.Ingredient)
	}
	sort.Strings(stockNames)

	report := MenuReport{}
	viable := 0
	names := make([]string, 0, len(items))
	for item := range items {
		names = append(names, item)
	}
	sort.Strings(names)

	for _, item := range names {
		dish := e.dishViability(ds, recipes, item, ref, stock, stockNames)
		if dish.ServingsPossible > 0 {
			viable++
		}
		report.Dishes = append(report.Dishes, dish)
	}
	report.Score = finite(float64(viable)/float64(len(names))*100, 0)
	return report
}

func (e *Engine) dishViability(ds *ledger.Dataset, recipes ledger.RecipeMatrix, item string, ref ledger.TimePoint, stock map[string]float64, stockNames []string) DishViability {
	dish := DishViability{MenuItem: item}
	required := e.perServings(ds, recipes, item, ref)
	dish.Ingredients = required

	if len(required) == 0 {
		dish.Status = viabilityStatus(0)
		return dish
	}

	servings := math.MaxInt32
	forcedZero := false
	for _, req := range required {
		if req.Quantity <= 0 || req.Quantity != req.Quantity {
			dish.Invalid = append(dish.Invalid, req.Ingredient)
			continue
		}

		available, ok := stock[req.Ingredient]
		if !ok {
			if matched, found := e.matcher.FindMatch(req.Ingredient, stockNames); found {
				available, ok = stock[matched], true
			}
		}
		if !ok || available <= 0 {
			dish.Missing = append(dish.Missing, req.Ingredient)
			forcedZero = true
			continue
		}

		possible := int(available / req.Quantity)
		if possible < servings {
			servings = possible
			dish.LimitingFactor = req.Ingredient
		}
	}

	if forcedZero || servings == math.MaxInt32 {
		servings = 0
	}
	dish.ServingsPossible = servings
	dish.Status = viabilityStatus(servings)
	return dish
}

// perServings resolves the per-serving quantity for every ingredient the
// menu item consumes, walking the provider chain per ingredient.
func (e *Engine) perServings(ds *ledger.Dataset, recipes ledger.RecipeMatrix, item string, ref ledger.TimePoint) []PerServing {
	ingredients := make(map[string]bool)
	for ing := range recipes[item] {
		ingredients[ingredient.Normalize(ing)] = true
	}
	for _, u := range ds.UsageThrough(ref) {
		if u.MenuItem == item {
			ingredients[ingredient.Normalize(u.Ingredient)] = true
		}
	}
	if len(ingredients) == 0 {
		return nil
	}

	names := make([]string, 0, len(ingredients))
	for ing := range ingredients {
		names = append(names, ing)
	}
	sort.Strings(names)

	out := make([]PerServing, 0, len(names))
	for _, name := range names {
		qty, source := e.perServing(ds, recipes, item, name, ref)
		qty = e.countAdjust(name, qty)
		out = append(out, PerServing{Ingredient: name, Quantity: qty, Source: source})
	}
	return out
}

func (e *Engine) perServing(ds *ledger.Dataset, recipes ledger.RecipeMatrix, item, name string, ref ledger.TimePoint) (float64, string) {
	// Tier 1: explicit recipe entry. The matrix stores only positive values.
	for ing, qty := range recipes[item] {
		if ingredient.Normalize(ing) == name && qty > 0 {
			return qty, "recipe"
		}
	}

	soldByDate := make(map[ledger.TimePoint]float64)
	for _, s := range ds.SalesThrough(ref) {
		if s.MenuItem == item && s.QuantitySold > 0 {
			soldByDate[s.Date] += s.QuantitySold
		}
	}

	usedByDate := make(map[ledger.TimePoint]float64)
	for _, u := range ds.UsageThrough(ref) {
		if u.MenuItem == item && ingredient.Normalize(u.Ingredient) == name && u.QuantityUsed > 0 {
			usedByDate[u.Date] += u.QuantityUsed
		}
	}

	// Tier 2: average usage/sold over dates where both sides exist.
	var ratioSum float64
	ratios := 0
	for date, used := range usedByDate {
		sold := soldByDate[date]
		if sold <= 0 {
			continue
		}
		ratio := used / sold
		if ratio > perServingMin && ratio < perServingMax {
			ratioSum += ratio
			ratios++
		}
	}
	if ratios > 0 {
		return ratioSum / float64(ratios), "sales_ratio"
	}

	// Tier 3: smallest observed transaction as a single-serving proxy.
	minUsed := math.Inf(1)
	for _, used := range usedByDate {
		if used < minUsed {
			minUsed = used
		}
	}
	if math.IsInf(minUsed, 1) {
		return 0, ""
	}
	if minUsed >= perServingMax {
		typical := typicalDailySold(soldByDate)
		minUsed /= typical
	}
	if minUsed <= perServingMin || minUsed >= perServingMax {
		return 0, ""
	}
	return minUsed, "min_usage"
}

// countAdjust converts a gram-looking per-serving value of a count-based
// ingredient into count units.
func (e *Engine) countAdjust(name string, qty float64) float64 {
	if qty > 5 && e.conv.IsCountBased(name, "") {
		per := e.conv.GramsPerUnit(name)
		if per > 0 {
			return qty / per
		}
	}
	return qty
}

func typicalDailySold(soldByDate map[ledger.TimePoint]float64) float64 {
	if len(soldByDate) == 0 {
		return 1
	}
	var total float64
	for _, sold := range soldByDate {
		total += sold
	}
	typical := total / float64(len(soldByDate))
	if typical < 1 {
		return 1
	}
	return typical
}

func viabilityStatus(servings int) string {
	switch {
	case servings <= 0:
		return "Cannot Make"
	case servings < 20:
		return "Low Viability"
	case servings < 50:
		return "Medium Viability"
	default:
		return "High Viability"
	}
}
