/*
inventory.go - Current stock derived from the purchase and usage ledgers

PURPOSE:
  Stock is never stored; it is replayed from the ledgers up to a reference
  date on every call. Compound purchase rows ("Peas + Carrot") are split
  into constituents with quantity divided evenly before aggregation.

EDGE CASES:
  - Empty ledgers produce an empty snapshot, which callers must read as
    "no data", not "zero stock everywhere"
  - Usage exceeding purchases floors stock at zero, never negative
*/
package engine

import (
	"sort"

	"github.com/warp/inventory-engine/ingredient"
	"github.com/warp/inventory-engine/ledger"
)

type StockStatus string

const (
	StatusLow    StockStatus = "Low"
	StatusNormal StockStatus = "Normal"
	StatusHigh   StockStatus = "High"
)

// Snapshot is the derived inventory state for one canonical ingredient.
type Snapshot struct {
	Ingredient        string
	CurrentStock      float64
	TotalPurchased    float64
	TotalUsed         float64
	MinStock          float64
	MaxStock          float64
	Status            StockStatus
	DaysUntilStockout int
	ReorderNeeded     bool
	Unit              string
}

// InventorySnapshot replays both ledgers through ref and emits one row per
// canonical ingredient seen in either. Rows are name-sorted.
func (e *Engine) InventorySnapshot(ds *ledger.Dataset, ref ledger.TimePoint) []Snapshot {
	purchased := make(map[string]float64)
	used := make(map[string]float64)
	units := make(map[string]string)

	for _, p := range ds.PurchasesThrough(ref) {
		parts := ingredient.SplitCompound(p.Ingredient)
		share := p.Quantity / float64(len(parts))
		for _, part := range parts {
			purchased[part] += share
			if units[part] == "" && p.Unit != "" {
				units[part] = p.Unit
			}
		}
	}
	for _, u := range ds.UsageThrough(ref) {
		used[ingredient.Normalize(u.Ingredient)] += u.QuantityUsed
	}

	names := make(map[string]bool, len(purchased)+len(used))
	for name := range purchased {
		names[name] = true
	}
	for name := range used {
		names[name] = true
	}
	if len(names) == 0 {
		return nil
	}

	master := ds.MasterByName()
	masterNames := make([]string, 0, len(master))
	for name := range master {
		masterNames = append(masterNames, name)
	}
	sort.Strings(masterNames)

	out := make([]Snapshot, 0, len(names))
	for name := range names {
		stock := purchased[name] - used[name]
		if stock < 0 {
			stock = 0
		}

		minStock, maxStock, unit := e.thresholds(name, master, masterNames)
		if unit == "" {
			unit = units[name]
		}

		status := StatusNormal
		switch {
		case stock < minStock:
			status = StatusLow
		case stock > maxStock:
			status = StatusHigh
		}

		dts := e.daysUntilStockout(ds, name, ref, stock)

		out = append(out, Snapshot{
			Ingredient:        name,
			CurrentStock:      stock,
			TotalPurchased:    purchased[name],
			TotalUsed:         used[name],
			MinStock:          minStock,
			MaxStock:          maxStock,
			Status:            status,
			DaysUntilStockout: dts,
			ReorderNeeded:     dts < 14 || stock < minStock,
			Unit:              unit,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ingredient < out[j].Ingredient })
	return out
}

// thresholds looks up min/max stock from the master, exact canonical name
// first, then through the matching cascade. Absent entries get defaults.
func (e *Engine) thresholds(name string, master map[string]ledger.IngredientInfo, masterNames []string) (minStock, maxStock float64, unit string) {
	info, ok := master[name]
	if !ok {
		if matched, found := e.matcher.FindMatch(name, masterNames); found {
			info, ok = master[matched], true
		}
	}
	minStock, maxStock = e.cfg.DefaultMinStock, e.cfg.DefaultMaxStock
	if ok {
		if info.MinStock > 0 {
			minStock = info.MinStock
		}
		if info.MaxStock > 0 {
			maxStock = info.MaxStock
		}
		unit = info.Unit
	}
	return minStock, maxStock, unit
}

// daysUntilStockout estimates calendar days of cover from trailing-30-day
// matched usage. No usage match at all reports the no-match default; a
// matched ingredient that is currently idle reports the zero-rate marker.
func (e *Engine) daysUntilStockout(ds *ledger.Dataset, name string, ref ledger.TimePoint, stock float64) int {
	if stock <= 0 {
		return 0
	}
	rate, matched := e.avgDailyUsage(ds, name, ref, 30)
	if !matched {
		return e.cfg.StockoutNoMatchDays
	}
	if rate <= 0 {
		return e.cfg.StockoutZeroRateDays
	}
	return clampInt(int(stock/rate), 0, e.cfg.StockoutClampDays)
}
