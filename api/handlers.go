/*
handlers.go - HTTP API handlers for the inventory analytics engine

PURPOSE:
  Exposes the analytics engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Inventory:
    GET    /api/inventory              Current stock snapshot
    GET    /api/inventory/expiring     Stock at risk of spoiling

  Forecasts:
    GET    /api/forecast/{ingredient}  Demand forecast for one ingredient

  Reports:
    GET    /api/reports/waste          Purchase vs usage reconciliation
    GET    /api/reports/risks          Scored risk alerts
    GET    /api/reports/reorders       Reorder recommendations
    GET    /api/reports/costs          Spend breakdown
    GET    /api/reports/viability      Menu viability against stock
    GET    /api/reports/trends         Top ingredients by usage
    GET    /api/reports/suppliers      Supplier reliability scores
    GET    /api/reports/suppliers/delayed  Delayed shipments

  Simulation:
    POST   /api/simulate               What-if scenario diff

  Ledger:
    POST   /api/ledger/purchases       Append purchase rows
    POST   /api/ledger/usage           Append usage rows
    POST   /api/ledger/sales           Append sales rows
    POST   /api/ledger/shipments       Append shipment rows
    PUT    /api/ledger/master          Replace ingredient master

  Recipes:
    GET    /api/recipes                Current recipe matrix
    PUT    /api/recipes                Replace recipe matrix

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Load a demo scenario

REFERENCE DATE:
  Every report accepts ?as_of=YYYY-MM-DD. Without it, the latest ledger
  date is used so that replaying a historical dataset "today" does not
  make every ingredient look stale.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/warp/inventory-engine/engine"
	"github.com/warp/inventory-engine/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  ledger.Store
	Engine *engine.Engine
	Log    zerolog.Logger

	mu              sync.RWMutex
	recipes         ledger.RecipeMatrix
	currentScenario string
}

// NewHandler creates a new handler over the given store and engine.
func NewHandler(store ledger.Store, eng *engine.Engine, log zerolog.Logger) *Handler {
	return &Handler{
		Store:   store,
		Engine:  eng,
		Log:     log,
		recipes: ledger.RecipeMatrix{},
	}
}

// load fetches a snapshot and resolves the report reference date.
func (h *Handler) load(r *http.Request) (*ledger.Dataset, ledger.TimePoint, error) {
	ds, err := h.Store.Load(r.Context())
	if err != nil {
		return nil, ledger.TimePoint{}, err
	}

	if raw := r.URL.Query().Get("as_of"); raw != "" {
		tp, ok := ledger.ParseDate(raw)
		if !ok {
			return nil, ledger.TimePoint{}, fmt.Errorf("%w: bad as_of date %q (use YYYY-MM-DD)", ledger.ErrInvalidPeriod, raw)
		}
		return ds, tp, nil
	}

	ref := ds.LatestDate()
	if ref.IsZero() {
		ref = ledger.Today()
	}
	return ds, ref, nil
}

func (h *Handler) snapshotRecipes() ledger.RecipeMatrix {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(ledger.RecipeMatrix, len(h.recipes))
	for item, lines := range h.recipes {
		copied := make(map[string]float64, len(lines))
		for ing, qty := range lines {
			copied[ing] = qty
		}
		out[item] = copied
	}
	return out
}

// =============================================================================
// INVENTORY HANDLERS
// =============================================================================

// GetInventory returns the current stock snapshot.
func (h *Handler) GetInventory(w http.ResponseWriter, r *http.Request) {
	ds, ref, err := h.load(r)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	snapshots := h.Engine.InventorySnapshot(ds, ref)
	dtos := make([]SnapshotDTO, len(snapshots))
	for i, s := range snapshots {
		dtos[i] = toSnapshotDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetExpiringStock returns ingredients whose shelf life falls inside the
// horizon (?days=, default 7).
func (h *Handler) GetExpiringStock(w http.ResponseWriter, r *http.Request) {
	ds, ref, err := h.load(r)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	horizon := intQuery(r, "days", 7)
	rows := h.Engine.ExpiringReport(ds, ref, horizon)
	dtos := make([]ExpiringStockDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toExpiringStockDTO(row)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// FORECAST HANDLERS
// =============================================================================

// GetForecast returns a demand forecast for one ingredient.
// Query params: method, days, seasonal, holidays.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "ingredient")
	if name == "" {
		writeError(w, http.StatusBadRequest, "Missing ingredient name", nil)
		return
	}

	ds, ref, err := h.load(r)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	opts := engine.ForecastOptions{
		Method:   r.URL.Query().Get("method"),
		Days:     intQuery(r, "days", 7),
		Seasonal: boolQuery(r, "seasonal"),
		Holidays: boolQuery(r, "holidays"),
	}

	forecast, err := h.Engine.ForecastUsage(ds, name, ref, opts)
	if err != nil {
		if ledger.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid forecast options", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Forecast failed", err)
		return
	}

	writeJSON(w, http.StatusOK, toForecastDTO(forecast))
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetWasteReport reconciles purchases against usage.
func (h *Handler) GetWasteReport(w http.ResponseWriter, r *http.Request) {
	ds, ref, err := h.load(r)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	rows, err := h.Engine.WasteReport(r.Context(), ds, ref)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Waste report failed", err)
		return
	}

	dtos := make([]WasteRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toWasteRowDTO(row)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRiskReport returns scored risk alerts, highest first.
func (h *Handler) GetRiskReport(w http.ResponseWriter, r *http.Request) {
	ds, ref, err := h.load(r)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	alerts, err := h.Engine.RiskReport(r.Context(), ds, ref)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Risk report failed", err)
		return
	}

	dtos := make([]RiskAlertDTO, len(alerts))
	for i, a := range alerts {
		dtos[i] = toRiskAlertDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetReorderReport returns reorder recommendations for at-risk ingredients.
func (h *Handler) GetReorderReport(w http.ResponseWriter, r *http.Request) {
	ds, ref, err := h.load(r)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	recs, err := h.Engine.ReorderReport(r.Context(), ds, ref)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Reorder report failed", err)
		return
	}

	dtos := make([]RecommendationDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = toRecommendationDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetCostReport returns the spend breakdown by category and ingredient.
func (h *Handler) GetCostReport(w http.ResponseWriter, r *http.Request) {
	ds, ref, err := h.load(r)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCostReportDTO(h.Engine.CostReport(ds, ref)))
}

// GetMenuViability maps every menu item to its viability against stock.
func (h *Handler) GetMenuViability(w http.ResponseWriter, r *http.Request) {
	ds, ref, err := h.load(r)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	report := h.Engine.MenuViability(ds, h.snapshotRecipes(), ref)
	writeJSON(w, http.StatusOK, toViabilityDTO(report))
}

// GetUsageTrends returns the top ingredients by total usage (?top=, default 10).
func (h *Handler) GetUsageTrends(w http.ResponseWriter, r *http.Request) {
	ds, ref, err := h.load(r)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	trends := h.Engine.TopIngredients(ds, ref, intQuery(r, "top", 10))
	dtos := make([]UsageTrendDTO, len(trends))
	for i, t := range trends {
		dtos[i] = toUsageTrendDTO(t)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSupplierReport scores suppliers from shipment outcomes.
func (h *Handler) GetSupplierReport(w http.ResponseWriter, r *http.Request) {
	ds, _, err := h.load(r)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	suppliers := h.Engine.SupplierReport(ds)
	dtos := make([]SupplierDTO, len(suppliers))
	for i, s := range suppliers {
		dtos[i] = toSupplierDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetDelayedShipments lists delayed shipments, worst first.
func (h *Handler) GetDelayedShipments(w http.ResponseWriter, r *http.Request) {
	ds, _, err := h.load(r)
	if err != nil {
		writeLoadError(w, err)
		return
	}

	shipments := h.Engine.DelayedShipments(ds)
	dtos := make([]ShipmentDTO, len(shipments))
	for i, s := range shipments {
		dtos[i] = toShipmentDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// SIMULATION HANDLER
// =============================================================================

// RunSimulation diffs inventory between baseline and a what-if scenario.
func (h *Handler) RunSimulation(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ds, err := h.Store.Load(r.Context())
	if err != nil {
		writeLoadError(w, err)
		return
	}

	ref := ds.LatestDate()
	if req.AsOf != "" {
		tp, ok := ledger.ParseDate(req.AsOf)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid as_of date (use YYYY-MM-DD)", nil)
			return
		}
		ref = tp
	}
	if ref.IsZero() {
		ref = ledger.Today()
	}

	scenario := engine.Scenario{
		SalesMultiplier:   req.SalesMultiplier,
		MenuItemChanges:   req.MenuItemChanges,
		SupplierDelayDays: req.SupplierDelayDays,
	}

	rows := h.Engine.Simulate(ds, scenario, ref)
	dtos := make([]SimRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toSimRowDTO(row)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// LEDGER INGESTION HANDLERS
// =============================================================================

// AppendPurchases ingests purchase rows.
func (h *Handler) AppendPurchases(w http.ResponseWriter, r *http.Request) {
	var req []PurchaseRowDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rows := make([]ledger.Purchase, 0, len(req))
	for i, row := range req {
		date, ok := ledger.ParseDate(row.Date)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Row %d: invalid date %q", i, row.Date), nil)
			return
		}
		if row.Ingredient == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Row %d: missing ingredient", i), nil)
			return
		}
		rows = append(rows, ledger.Purchase{
			Date:       date,
			Ingredient: row.Ingredient,
			Quantity:   row.Quantity,
			TotalCost:  ledger.NewMoney(row.TotalCost),
			Supplier:   row.Supplier,
			Unit:       row.Unit,
		})
	}

	if err := h.Store.AppendPurchases(r.Context(), rows); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to append purchases", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"appended": len(rows)})
}

// AppendUsage ingests usage rows.
func (h *Handler) AppendUsage(w http.ResponseWriter, r *http.Request) {
	var req []UsageRowDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rows := make([]ledger.Usage, 0, len(req))
	for i, row := range req {
		date, ok := ledger.ParseDate(row.Date)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Row %d: invalid date %q", i, row.Date), nil)
			return
		}
		if row.Ingredient == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Row %d: missing ingredient", i), nil)
			return
		}
		rows = append(rows, ledger.Usage{
			Date:         date,
			Ingredient:   row.Ingredient,
			QuantityUsed: row.Quantity,
			MenuItem:     row.MenuItem,
		})
	}

	if err := h.Store.AppendUsage(r.Context(), rows); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to append usage", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"appended": len(rows)})
}

// AppendSales ingests sales rows.
func (h *Handler) AppendSales(w http.ResponseWriter, r *http.Request) {
	var req []SaleRowDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rows := make([]ledger.Sale, 0, len(req))
	for i, row := range req {
		date, ok := ledger.ParseDate(row.Date)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Row %d: invalid date %q", i, row.Date), nil)
			return
		}
		if row.MenuItem == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Row %d: missing menu_item", i), nil)
			return
		}
		rows = append(rows, ledger.Sale{
			Date:         date,
			MenuItem:     row.MenuItem,
			QuantitySold: row.Quantity,
			Revenue:      ledger.NewMoney(row.Revenue),
			Price:        ledger.NewMoney(row.Price),
		})
	}

	if err := h.Store.AppendSales(r.Context(), rows); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to append sales", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"appended": len(rows)})
}

// AppendShipments ingests shipment rows. Dateless rows are legal here:
// frequency-only schedules still feed lead time estimation.
func (h *Handler) AppendShipments(w http.ResponseWriter, r *http.Request) {
	var req []ShipmentDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rows := make([]ledger.Shipment, 0, len(req))
	for i, row := range req {
		if row.Ingredient == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Row %d: missing ingredient", i), nil)
			return
		}
		var date ledger.TimePoint
		if row.Date != "" {
			tp, ok := ledger.ParseDate(row.Date)
			if !ok {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("Row %d: invalid date %q", i, row.Date), nil)
				return
			}
			date = tp
		}
		rows = append(rows, ledger.Shipment{
			Ingredient:  row.Ingredient,
			Supplier:    row.Supplier,
			Quantity:    row.Quantity,
			Date:        date,
			Frequency:   row.Frequency,
			Status:      ledger.ShipmentStatus(row.Status),
			DelayDays:   row.DelayDays,
			OrderedQty:  row.OrderedQty,
			ReceivedQty: row.ReceivedQty,
		})
	}

	if err := h.Store.AppendShipments(r.Context(), rows); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to append shipments", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int{"appended": len(rows)})
}

// ReplaceMaster swaps the ingredient master sheet wholesale.
func (h *Handler) ReplaceMaster(w http.ResponseWriter, r *http.Request) {
	var req []MasterRowDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rows := make([]ledger.IngredientInfo, 0, len(req))
	for i, row := range req {
		if row.Name == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Row %d: missing name", i), nil)
			return
		}
		rows = append(rows, ledger.IngredientInfo{
			Name:          row.Name,
			MinStock:      row.MinStock,
			MaxStock:      row.MaxStock,
			Unit:          row.Unit,
			Category:      row.Category,
			ShelfLifeDays: row.ShelfLifeDays,
		})
	}

	if err := h.Store.ReplaceMaster(r.Context(), rows); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to replace master", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"rows": len(rows)})
}

// =============================================================================
// RECIPE HANDLERS
// =============================================================================

// GetRecipes returns the current recipe matrix.
func (h *Handler) GetRecipes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snapshotRecipes())
}

// ReplaceRecipes swaps the recipe matrix wholesale.
func (h *Handler) ReplaceRecipes(w http.ResponseWriter, r *http.Request) {
	var req ledger.RecipeMatrix
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	for item, lines := range req {
		for ing, qty := range lines {
			if qty <= 0 {
				writeError(w, http.StatusBadRequest,
					fmt.Sprintf("Recipe %q: non-positive quantity for %q", item, ing), nil)
				return
			}
		}
	}

	h.mu.Lock()
	h.recipes = req
	h.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]int{"menu_items": len(req)})
}

// =============================================================================
// HELPERS
// =============================================================================

func intQuery(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func boolQuery(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}

func writeLoadError(w http.ResponseWriter, err error) {
	if ledger.IsClientError(err) {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "Failed to load ledgers", err)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
