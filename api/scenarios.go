/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the store with realistic
	data for testing and demos. Each scenario creates a master sheet,
	ledger rows, and a recipe matrix that demonstrate specific features.

AVAILABLE SCENARIOS:

	ramen-shop:     Steady noodle shop with a full quarter of history
	holiday-rush:   December demand spike for seasonality and forecasting
	supply-crunch:  Delayed shipments and depleted stock for risk/reorder

HOW SCENARIOS WORK:
 1. Reset store (clear all data)
 2. Replace the ingredient master
 3. Append purchase, usage, sales, shipment rows
 4. Install the recipe matrix

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "ramen-shop"}

ADDING NEW SCENARIOS:
 1. Add to 'scenarios' slice with ID, name, description
 2. Create loader function: loadXxxScenario(ctx, h)
 3. Add case to LoadScenario handler

NOTE:

	Scenarios reset the store. Only use in development/demo environments.
	Generation is deterministic so reports are reproducible across loads.

SEE ALSO:
  - handlers.go: writeJSON, writeError helpers
  - engine package: consumes the generated ledgers
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warp/inventory-engine/ledger"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "ramen-shop",
		Name:        "Ramen Shop",
		Description: "Steady noodle shop with a quarter of purchase/usage/sales history",
	},
	{
		ID:          "holiday-rush",
		Name:        "Holiday Rush",
		Description: "December demand spike exercising seasonality and holiday uplift",
	},
	{
		ID:          "supply-crunch",
		Name:        "Supply Crunch",
		Description: "Delayed shipments and depleted stock exercising risk and reorder reports",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	current := h.currentScenario
	h.mu.RUnlock()

	if current == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          current,
		Name:        current,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	var err error
	switch req.ScenarioID {
	case "ramen-shop":
		err = h.loadRamenShopScenario(ctx)
	case "holiday-rush":
		err = h.loadHolidayRushScenario(ctx)
	case "supply-crunch":
		err = h.loadSupplyCrunchScenario(ctx)
	default:
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown scenario %q", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.mu.Lock()
	h.currentScenario = req.ScenarioID
	h.mu.Unlock()

	h.Log.Info().Str("scenario", req.ScenarioID).Msg("demo scenario loaded")
	writeJSON(w, http.StatusOK, map[string]string{"loaded": req.ScenarioID})
}

// ResetStore clears all ledger data and the recipe matrix.
func (h *Handler) ResetStore(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset store", err)
		return
	}

	h.mu.Lock()
	h.recipes = ledger.RecipeMatrix{}
	h.currentScenario = ""
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO BUILDERS
// =============================================================================

func day(year, month, dayOfMonth int) ledger.TimePoint {
	tp, _ := ledger.ParseDate(fmt.Sprintf("%04d-%02d-%02d", year, month, dayOfMonth))
	return tp
}

// ramenShopMaster is shared by all scenarios.
func ramenShopMaster() []ledger.IngredientInfo {
	return []ledger.IngredientInfo{
		{Name: "Beef", MinStock: 20, MaxStock: 120, Unit: "lb", Category: "meat", ShelfLifeDays: 5},
		{Name: "Chicken Wings", MinStock: 50, MaxStock: 400, Unit: "count", Category: "meat", ShelfLifeDays: 4},
		{Name: "Ramen", MinStock: 100, MaxStock: 600, Unit: "count", Category: "staple", ShelfLifeDays: 180},
		{Name: "Rice", MinStock: 30, MaxStock: 200, Unit: "lb", Category: "staple", ShelfLifeDays: 365},
		{Name: "Egg", MinStock: 60, MaxStock: 360, Unit: "count", Category: "egg_dairy", ShelfLifeDays: 21},
		{Name: "Bokchoy", MinStock: 10, MaxStock: 60, Unit: "lb", Category: "vegetable", ShelfLifeDays: 4},
		{Name: "Green Onion", MinStock: 5, MaxStock: 30, Unit: "lb", Category: "vegetable", ShelfLifeDays: 6},
		{Name: "Tonkotsu Broth", MinStock: 15, MaxStock: 80, Unit: "lb", Category: "sauce", ShelfLifeDays: 7},
	}
}

func ramenShopRecipes() ledger.RecipeMatrix {
	return ledger.RecipeMatrix{
		"Tonkotsu Ramen": {
			"Ramen":          1,
			"Egg":            1,
			"Tonkotsu Broth": 0.8,
			"Green Onion":    0.05,
		},
		"Beef Rice Bowl": {
			"Beef":    0.4,
			"Rice":    0.5,
			"Egg":     1,
			"Bokchoy": 0.1,
		},
		"Fried Wings": {
			"Chicken Wings": 6,
		},
	}
}

// loadRamenShopScenario seeds thirteen weeks of steady operation ending
// 2024-03-31. Weekly purchases, daily usage and sales, biweekly shipments.
func (h *Handler) loadRamenShopScenario(ctx context.Context) error {
	if err := h.Store.Reset(ctx); err != nil {
		return err
	}
	if err := h.Store.ReplaceMaster(ctx, ramenShopMaster()); err != nil {
		return err
	}

	var purchases []ledger.Purchase
	var usage []ledger.Usage
	var sales []ledger.Sale
	var shipments []ledger.Shipment

	start := day(2024, 1, 1)
	for week := 0; week < 13; week++ {
		monday := start.AddDays(week * 7)

		purchases = append(purchases,
			ledger.Purchase{Date: monday, Ingredient: "Beef", Quantity: 30, TotalCost: ledger.NewMoney(240), Supplier: "Pacific Meats", Unit: "lb"},
			ledger.Purchase{Date: monday, Ingredient: "Chicken Wings", Quantity: 120, TotalCost: ledger.NewMoney(96), Supplier: "Pacific Meats", Unit: "count"},
			ledger.Purchase{Date: monday, Ingredient: "Ramen", Quantity: 180, TotalCost: ledger.NewMoney(90), Supplier: "Golden Noodle Co", Unit: "count"},
			ledger.Purchase{Date: monday, Ingredient: "Rice", Quantity: 40, TotalCost: ledger.NewMoney(32), Supplier: "Golden Noodle Co", Unit: "lb"},
			ledger.Purchase{Date: monday, Ingredient: "Egg", Quantity: 150, TotalCost: ledger.NewMoney(30), Supplier: "Sunrise Farms", Unit: "count"},
			ledger.Purchase{Date: monday, Ingredient: "Bokchoy + Green Onion", Quantity: 16, TotalCost: ledger.NewMoney(28), Supplier: "Sunrise Farms", Unit: "lb"},
			ledger.Purchase{Date: monday, Ingredient: "Tonkotsu Broth", Quantity: 20, TotalCost: ledger.NewMoney(60), Supplier: "Golden Noodle Co", Unit: "lb"},
		)

		for d := 0; d < 7; d++ {
			date := monday.AddDays(d)
			// Weekend bump: Fri/Sat run about 30% hotter.
			bowls := 20.0
			if d == 4 || d == 5 {
				bowls = 26
			}

			usage = append(usage,
				ledger.Usage{Date: date, Ingredient: "Ramen", QuantityUsed: bowls, MenuItem: "Tonkotsu Ramen"},
				ledger.Usage{Date: date, Ingredient: "Egg", QuantityUsed: bowls + 8, MenuItem: "Tonkotsu Ramen"},
				ledger.Usage{Date: date, Ingredient: "Tonkotsu Broth", QuantityUsed: bowls * 0.8 * 453.592, MenuItem: "Tonkotsu Ramen"},
				ledger.Usage{Date: date, Ingredient: "Beef", QuantityUsed: 8 * 0.4 * 453.592, MenuItem: "Beef Rice Bowl"},
				ledger.Usage{Date: date, Ingredient: "Rice", QuantityUsed: 8 * 0.5 * 453.592, MenuItem: "Beef Rice Bowl"},
				ledger.Usage{Date: date, Ingredient: "Wings", QuantityUsed: 60, MenuItem: "Fried Wings"},
				ledger.Usage{Date: date, Ingredient: "Bokchoy", QuantityUsed: 0.8 * 453.592, MenuItem: "Beef Rice Bowl"},
				ledger.Usage{Date: date, Ingredient: "Scallion", QuantityUsed: bowls * 0.05 * 453.592, MenuItem: "Tonkotsu Ramen"},
			)

			sales = append(sales,
				ledger.Sale{Date: date, MenuItem: "Tonkotsu Ramen", QuantitySold: bowls, Revenue: ledger.NewMoney(bowls * 14.5), Price: ledger.NewMoney(14.5)},
				ledger.Sale{Date: date, MenuItem: "Beef Rice Bowl", QuantitySold: 8, Revenue: ledger.NewMoney(8 * 12), Price: ledger.NewMoney(12)},
				ledger.Sale{Date: date, MenuItem: "Fried Wings", QuantitySold: 10, Revenue: ledger.NewMoney(10 * 9), Price: ledger.NewMoney(9)},
			)
		}

		if week%2 == 0 {
			shipments = append(shipments,
				ledger.Shipment{Ingredient: "Beef", Supplier: "Pacific Meats", Quantity: 30, Date: monday, Frequency: "biweekly", Status: ledger.ShipmentOnTime, OrderedQty: 30, ReceivedQty: 30},
				ledger.Shipment{Ingredient: "Ramen", Supplier: "Golden Noodle Co", Quantity: 180, Date: monday, Frequency: "weekly", Status: ledger.ShipmentOnTime, OrderedQty: 180, ReceivedQty: 180},
			)
		}
	}

	return h.appendAll(ctx, purchases, usage, sales, shipments, ramenShopRecipes())
}

// loadHolidayRushScenario seeds October through December with usage that
// climbs toward the holidays, ending 2024-12-31.
func (h *Handler) loadHolidayRushScenario(ctx context.Context) error {
	if err := h.Store.Reset(ctx); err != nil {
		return err
	}
	if err := h.Store.ReplaceMaster(ctx, ramenShopMaster()); err != nil {
		return err
	}

	var purchases []ledger.Purchase
	var usage []ledger.Usage
	var sales []ledger.Sale

	start := day(2024, 10, 1)
	for week := 0; week < 13; week++ {
		monday := start.AddDays(week * 7)
		// Demand ramps roughly 4% per week into December.
		scale := 1.0 + 0.04*float64(week)

		purchases = append(purchases,
			ledger.Purchase{Date: monday, Ingredient: "Ramen", Quantity: 200 * scale, TotalCost: ledger.NewMoney(100 * scale), Supplier: "Golden Noodle Co", Unit: "count"},
			ledger.Purchase{Date: monday, Ingredient: "Egg", Quantity: 180 * scale, TotalCost: ledger.NewMoney(36 * scale), Supplier: "Sunrise Farms", Unit: "count"},
			ledger.Purchase{Date: monday, Ingredient: "Tonkotsu Broth", Quantity: 24 * scale, TotalCost: ledger.NewMoney(72 * scale), Supplier: "Golden Noodle Co", Unit: "lb"},
		)

		for d := 0; d < 7; d++ {
			date := monday.AddDays(d)
			bowls := 22 * scale

			usage = append(usage,
				ledger.Usage{Date: date, Ingredient: "Ramen", QuantityUsed: bowls, MenuItem: "Tonkotsu Ramen"},
				ledger.Usage{Date: date, Ingredient: "Egg", QuantityUsed: bowls, MenuItem: "Tonkotsu Ramen"},
				ledger.Usage{Date: date, Ingredient: "Tonkotsu Broth", QuantityUsed: bowls * 0.8 * 453.592, MenuItem: "Tonkotsu Ramen"},
			)
			sales = append(sales,
				ledger.Sale{Date: date, MenuItem: "Tonkotsu Ramen", QuantitySold: bowls, Revenue: ledger.NewMoney(bowls * 14.5), Price: ledger.NewMoney(14.5)},
			)
		}
	}

	return h.appendAll(ctx, purchases, usage, sales, nil, ramenShopRecipes())
}

// loadSupplyCrunchScenario seeds a short window where stock is nearly
// exhausted and the meat supplier keeps slipping.
func (h *Handler) loadSupplyCrunchScenario(ctx context.Context) error {
	if err := h.Store.Reset(ctx); err != nil {
		return err
	}
	if err := h.Store.ReplaceMaster(ctx, ramenShopMaster()); err != nil {
		return err
	}

	start := day(2024, 6, 1)

	purchases := []ledger.Purchase{
		{Date: start, Ingredient: "Beef", Quantity: 40, TotalCost: ledger.NewMoney(320), Supplier: "Pacific Meats", Unit: "lb"},
		{Date: start, Ingredient: "Ramen", Quantity: 150, TotalCost: ledger.NewMoney(75), Supplier: "Golden Noodle Co", Unit: "count"},
		{Date: start, Ingredient: "Egg", Quantity: 90, TotalCost: ledger.NewMoney(18), Supplier: "Sunrise Farms", Unit: "count"},
	}

	var usage []ledger.Usage
	var sales []ledger.Sale
	for d := 0; d < 14; d++ {
		date := start.AddDays(d)
		usage = append(usage,
			ledger.Usage{Date: date, Ingredient: "Beef", QuantityUsed: 2.5 * 453.592, MenuItem: "Beef Rice Bowl"},
			ledger.Usage{Date: date, Ingredient: "Ramen", QuantityUsed: 10, MenuItem: "Tonkotsu Ramen"},
			ledger.Usage{Date: date, Ingredient: "Egg", QuantityUsed: 6, MenuItem: "Tonkotsu Ramen"},
		)
		sales = append(sales,
			ledger.Sale{Date: date, MenuItem: "Beef Rice Bowl", QuantitySold: 6, Revenue: ledger.NewMoney(72), Price: ledger.NewMoney(12)},
			ledger.Sale{Date: date, MenuItem: "Tonkotsu Ramen", QuantitySold: 10, Revenue: ledger.NewMoney(145), Price: ledger.NewMoney(14.5)},
		)
	}

	shipments := []ledger.Shipment{
		{Ingredient: "Beef", Supplier: "Pacific Meats", Quantity: 40, Date: start, Frequency: "weekly", Status: ledger.ShipmentDelayed, DelayDays: 4, OrderedQty: 40, ReceivedQty: 32},
		{Ingredient: "Beef", Supplier: "Pacific Meats", Quantity: 40, Date: start.AddDays(7), Frequency: "weekly", Status: ledger.ShipmentDelayed, DelayDays: 6, OrderedQty: 40, ReceivedQty: 28},
		{Ingredient: "Beef", Supplier: "Pacific Meats", Quantity: 40, Date: start.AddDays(16), Frequency: "weekly", Status: ledger.ShipmentPending, OrderedQty: 40},
		{Ingredient: "Ramen", Supplier: "Golden Noodle Co", Quantity: 150, Date: start, Frequency: "weekly", Status: ledger.ShipmentOnTime, OrderedQty: 150, ReceivedQty: 150},
	}

	return h.appendAll(ctx, purchases, usage, sales, shipments, ramenShopRecipes())
}

func (h *Handler) appendAll(ctx context.Context, purchases []ledger.Purchase, usage []ledger.Usage, sales []ledger.Sale, shipments []ledger.Shipment, recipes ledger.RecipeMatrix) error {
	if err := h.Store.AppendPurchases(ctx, purchases); err != nil {
		return err
	}
	if err := h.Store.AppendUsage(ctx, usage); err != nil {
		return err
	}
	if err := h.Store.AppendSales(ctx, sales); err != nil {
		return err
	}
	if len(shipments) > 0 {
		if err := h.Store.AppendShipments(ctx, shipments); err != nil {
			return err
		}
	}

	h.mu.Lock()
	h.recipes = recipes
	h.mu.Unlock()
	return nil
}
