/*
trends.go - Usage trend, supplier, and shelf-life reporting

PURPOSE:
  Secondary analytics layered on the same ledgers: which ingredients move
  the most, how reliable each supplier is, and which stock should be used
  first because its shelf life runs out before its projected consumption.
*/
package engine

import (
	"sort"

	"github.com/warp/inventory-engine/ingredient"
	"github.com/warp/inventory-engine/ledger"
)

// =============================================================================
// USAGE TRENDS
// =============================================================================

type DailyUsage struct {
	Date     ledger.TimePoint
	Quantity float64
}

type UsageTrend struct {
	Ingredient  string
	TotalUsed   float64
	Velocity7d  float64
	Velocity30d float64
	Trend       string // "rising", "falling", "steady"
	Daily       []DailyUsage
}

// TopIngredients ranks ingredients by total usage through ref and returns
// the top n with their daily series and velocities.
func (e *Engine) TopIngredients(ds *ledger.Dataset, ref ledger.TimePoint, n int) []UsageTrend {
	totals := make(map[string]float64)
	for _, u := range ds.UsageThrough(ref) {
		totals[ingredient.Normalize(u.Ingredient)] += u.QuantityUsed
	}
	if len(totals) == 0 {
		return nil
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] == totals[names[j]] {
			return names[i] < names[j]
		}
		return totals[names[i]] > totals[names[j]]
	})
	if n > 0 && len(names) > n {
		names = names[:n]
	}

	out := make([]UsageTrend, 0, len(names))
	for _, name := range names {
		v7, _ := e.avgDailyUsage(ds, name, ref, 7)
		v30, _ := e.avgDailyUsage(ds, name, ref, 30)

		trend := UsageTrend{
			Ingredient:  name,
			TotalUsed:   totals[name],
			Velocity7d:  v7,
			Velocity30d: v30,
			Trend:       trendLabel(v7, v30),
		}
		for _, p := range e.matchedUsageSeries(ds, name, ref) {
			trend.Daily = append(trend.Daily, DailyUsage{Date: p.date, Quantity: p.qty})
		}
		out = append(out, trend)
	}
	return out
}

func trendLabel(v7, v30 float64) string {
	switch {
	case v30 <= 0:
		return "steady"
	case v7 > 1.1*v30:
		return "rising"
	case v7 < 0.9*v30:
		return "falling"
	default:
		return "steady"
	}
}

// =============================================================================
// SUPPLIER RELIABILITY
// =============================================================================

type SupplierReliability struct {
	Supplier        string
	Shipments       int
	OnTimeRate      float64 // 0-1
	FulfillmentRate float64 // received/ordered, 0-1
	Reliability     float64 // 0.5*on_time + 0.5*fulfillment
	AvgDelayDays    float64
}

// SupplierReport scores each supplier from shipment outcomes, reliability
// descending. Suppliers with no attributable shipments are omitted.
func (e *Engine) SupplierReport(ds *ledger.Dataset) []SupplierReliability {
	type agg struct {
		total, onTime     int
		ordered, received float64
		delaySum          int
	}
	bySupplier := make(map[string]*agg)
	for _, s := range ds.Shipments {
		if s.Supplier == "" {
			continue
		}
		a, ok := bySupplier[s.Supplier]
		if !ok {
			a = &agg{}
			bySupplier[s.Supplier] = a
		}
		a.total++
		if s.Status != ledger.ShipmentDelayed && s.DelayDays <= 0 {
			a.onTime++
		}
		a.delaySum += s.DelayDays
		if s.OrderedQty > 0 {
			a.ordered += s.OrderedQty
			a.received += s.ReceivedQty
		}
	}
	if len(bySupplier) == 0 {
		return nil
	}

	out := make([]SupplierReliability, 0, len(bySupplier))
	for supplier, a := range bySupplier {
		onTime := float64(a.onTime) / float64(a.total)
		fulfillment := 1.0
		if a.ordered > 0 {
			fulfillment = clampFloat(a.received/a.ordered, 0, 1)
		}
		out = append(out, SupplierReliability{
			Supplier:        supplier,
			Shipments:       a.total,
			OnTimeRate:      finite(onTime, 0),
			FulfillmentRate: finite(fulfillment, 0),
			Reliability:     finite(0.5*onTime+0.5*fulfillment, 0),
			AvgDelayDays:    finite(float64(a.delaySum)/float64(a.total), 0),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Reliability == out[j].Reliability {
			return out[i].Supplier < out[j].Supplier
		}
		return out[i].Reliability > out[j].Reliability
	})
	return out
}

// DelayedShipments lists shipments marked or measured late, worst first.
func (e *Engine) DelayedShipments(ds *ledger.Dataset) []ledger.Shipment {
	var out []ledger.Shipment
	for _, s := range ds.Shipments {
		if s.Status == ledger.ShipmentDelayed || s.DelayDays > 0 {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DelayDays == out[j].DelayDays {
			return out[i].Ingredient < out[j].Ingredient
		}
		return out[i].DelayDays > out[j].DelayDays
	})
	return out
}

// =============================================================================
// EXPIRING STOCK
// =============================================================================

type ExpiringStock struct {
	Ingredient        string
	CurrentStock      float64
	ShelfLifeDays     int
	DaysUntilStockout int
	UseFirst          bool // shelf life runs out before projected consumption
}

// ExpiringReport flags ingredients whose master shelf life falls inside the
// horizon, with UseFirst set when stock will spoil before it is consumed.
func (e *Engine) ExpiringReport(ds *ledger.Dataset, ref ledger.TimePoint, horizonDays int) []ExpiringStock {
	if horizonDays <= 0 {
		horizonDays = 7
	}
	var out []ExpiringStock
	for _, snap := range e.InventorySnapshot(ds, ref) {
		shelf := shelfLifeFor(ds, snap.Ingredient)
		if shelf <= 0 || shelf > horizonDays || snap.CurrentStock <= 0 {
			continue
		}
		out = append(out, ExpiringStock{
			Ingredient:        snap.Ingredient,
			CurrentStock:      snap.CurrentStock,
			ShelfLifeDays:     shelf,
			DaysUntilStockout: snap.DaysUntilStockout,
			UseFirst:          snap.DaysUntilStockout > shelf,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ShelfLifeDays == out[j].ShelfLifeDays {
			return out[i].Ingredient < out[j].Ingredient
		}
		return out[i].ShelfLifeDays < out[j].ShelfLifeDays
	})
	return out
}

func shelfLifeFor(ds *ledger.Dataset, name string) int {
	for _, info := range ds.Master {
		if info.Name == name {
			return info.ShelfLifeDays
		}
	}
	return 0
}
