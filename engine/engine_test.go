package engine

import (
	"time"

	"github.com/warp/inventory-engine/ledger"
)

// Shared fixture helpers. Tests anchor on March 2024 so trailing windows
// stay inside one month unless a test says otherwise.

func march(day int) ledger.TimePoint {
	return ledger.NewTimePoint(2024, time.March, day)
}

func purchase(day int, name string, qty float64, cost float64) ledger.Purchase {
	return ledger.Purchase{Date: march(day), Ingredient: name, Quantity: qty, TotalCost: ledger.NewMoney(cost)}
}

func usage(day int, name string, qty float64) ledger.Usage {
	return ledger.Usage{Date: march(day), Ingredient: name, QuantityUsed: qty}
}

func usageFor(day int, name string, qty float64, menuItem string) ledger.Usage {
	return ledger.Usage{Date: march(day), Ingredient: name, QuantityUsed: qty, MenuItem: menuItem}
}

func sale(day int, menuItem string, qty float64) ledger.Sale {
	return ledger.Sale{Date: march(day), MenuItem: menuItem, QuantitySold: qty}
}
