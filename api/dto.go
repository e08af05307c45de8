/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

TYPES:
  Inventory:
    SnapshotDTO, ExpiringStockDTO

  Forecast:
    ForecastDTO, ForecastPointDTO, SeasonalityDTO

  Reports:
    WasteRowDTO, RiskAlertDTO, RecommendationDTO, CostReportDTO,
    ViabilityDTO, UsageTrendDTO, SupplierDTO

  Simulation:
    SimulateRequest, SimRowDTO

  Ledger ingestion:
    PurchaseRowDTO, UsageRowDTO, SaleRowDTO, ShipmentRowDTO, MasterRowDTO

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

NUMERIC SAFETY:
  All float fields pass through jsonFloat before serialization. Clients
  never see NaN or Inf; those collapse to 0.

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - engine package: Source of the report rows these wrap
*/
package api

import (
	"math"
	"strconv"

	"github.com/warp/inventory-engine/engine"
	"github.com/warp/inventory-engine/ledger"
)

// =============================================================================
// INVENTORY TYPES
// =============================================================================

// SnapshotDTO represents one ingredient's stock position.
type SnapshotDTO struct {
	Ingredient        string  `json:"ingredient"`
	CurrentStock      float64 `json:"current_stock"`
	TotalPurchased    float64 `json:"total_purchased"`
	TotalUsed         float64 `json:"total_used"`
	MinStock          float64 `json:"min_stock"`
	MaxStock          float64 `json:"max_stock"`
	Status            string  `json:"status"`
	DaysUntilStockout int     `json:"days_until_stockout"`
	ReorderNeeded     bool    `json:"reorder_needed"`
	Unit              string  `json:"unit,omitempty"`
}

// ExpiringStockDTO flags stock at risk of spoiling.
type ExpiringStockDTO struct {
	Ingredient        string  `json:"ingredient"`
	CurrentStock      float64 `json:"current_stock"`
	ShelfLifeDays     int     `json:"shelf_life_days"`
	DaysUntilStockout int     `json:"days_until_stockout"`
	UseFirst          bool    `json:"use_first"`
}

// =============================================================================
// FORECAST TYPES
// =============================================================================

// ForecastPointDTO is one forecast day.
type ForecastPointDTO struct {
	Date    string  `json:"date"`
	Usage   float64 `json:"usage"`
	Low     float64 `json:"low"`
	High    float64 `json:"high"`
	Holiday bool    `json:"holiday,omitempty"`
}

// SeasonalityDTO summarizes detected monthly seasonality.
type SeasonalityDTO struct {
	HasSeasonality bool               `json:"has_seasonality"`
	PeakMonth      int                `json:"peak_month,omitempty"`
	LowMonth       int                `json:"low_month,omitempty"`
	Factors        map[string]float64 `json:"factors,omitempty"` // month number -> factor
}

// ForecastDTO represents a full forecast series.
type ForecastDTO struct {
	Ingredient  string             `json:"ingredient"`
	Method      string             `json:"method"`
	HistoryDays int                `json:"history_days"`
	Points      []ForecastPointDTO `json:"points"`
	Seasonality *SeasonalityDTO    `json:"seasonality,omitempty"`
}

// =============================================================================
// REPORT TYPES
// =============================================================================

// WasteRowDTO represents one ingredient in the waste report.
type WasteRowDTO struct {
	Ingredient     string  `json:"ingredient"`
	TotalPurchased float64 `json:"total_purchased"`
	TotalUsed      float64 `json:"total_used"`
	Waste          float64 `json:"waste"`
	WastePct       float64 `json:"waste_pct"`
	Unit           string  `json:"unit"`
	TotalCost      float64 `json:"total_cost"`
	WasteCost      float64 `json:"waste_cost"`
	CostScore      float64 `json:"cost_score"`
	WasteScore     float64 `json:"waste_score"`
	Risk           string  `json:"risk"`
	MatchStrategy  string  `json:"match_strategy,omitempty"`
}

// RiskAlertDTO represents one scored risk row.
type RiskAlertDTO struct {
	Ingredient        string   `json:"ingredient"`
	Score             float64  `json:"score"`
	Level             string   `json:"level"`
	Factors           []string `json:"factors"`
	CurrentStock      float64  `json:"current_stock"`
	MinStock          float64  `json:"min_stock"`
	MaxStock          float64  `json:"max_stock"`
	Velocity7d        float64  `json:"velocity_7d"`
	Velocity30d       float64  `json:"velocity_30d"`
	DaysUntilStockout int      `json:"days_until_stockout"`
	NeedsReorder      bool     `json:"needs_reorder"`
}

// RecommendationDTO represents one reorder recommendation.
type RecommendationDTO struct {
	Ingredient          string  `json:"ingredient"`
	CurrentStock        float64 `json:"current_stock"`
	MinStock            float64 `json:"min_stock"`
	MaxStock            float64 `json:"max_stock"`
	ForecastedDemand30d float64 `json:"forecasted_demand_30d"`
	RecommendedQty      float64 `json:"recommended_qty"`
	Urgency             string  `json:"urgency"`
	LeadTimeDays        int     `json:"lead_time_days"`
	ReorderDate         string  `json:"reorder_date"`
	DaysUntilStockout   int     `json:"days_until_stockout"`
	DataQuality         string  `json:"data_quality"`
	Supplier            string  `json:"supplier,omitempty"`
}

// CategorySpendDTO is spend aggregated by category.
type CategorySpendDTO struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Share    float64 `json:"share"`
}

// IngredientSpendDTO is spend aggregated by ingredient.
type IngredientSpendDTO struct {
	Ingredient string  `json:"ingredient"`
	Total      float64 `json:"total"`
	Quantity   float64 `json:"quantity"`
	UnitCost   float64 `json:"unit_cost"`
}

// CostReportDTO is the full spend breakdown.
type CostReportDTO struct {
	Total        float64              `json:"total"`
	ByCategory   []CategorySpendDTO   `json:"by_category"`
	ByIngredient []IngredientSpendDTO `json:"by_ingredient"`
}

// PerServingDTO is one recipe line with its provenance.
type PerServingDTO struct {
	Ingredient string  `json:"ingredient"`
	Quantity   float64 `json:"quantity"`
	Source     string  `json:"source"`
}

// DishViabilityDTO represents one menu item's viability.
type DishViabilityDTO struct {
	MenuItem         string          `json:"menu_item"`
	ServingsPossible int             `json:"servings_possible"`
	Status           string          `json:"status"`
	LimitingFactor   string          `json:"limiting_factor,omitempty"`
	Missing          []string        `json:"missing,omitempty"`
	Invalid          []string        `json:"invalid,omitempty"`
	Ingredients      []PerServingDTO `json:"ingredients"`
}

// ViabilityDTO is the menu-wide report.
type ViabilityDTO struct {
	Dishes []DishViabilityDTO `json:"dishes"`
	Score  float64            `json:"score"`
}

// DailyUsageDTO is one day of usage history.
type DailyUsageDTO struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// UsageTrendDTO represents one top ingredient's usage series.
type UsageTrendDTO struct {
	Ingredient  string          `json:"ingredient"`
	TotalUsed   float64         `json:"total_used"`
	Velocity7d  float64         `json:"velocity_7d"`
	Velocity30d float64         `json:"velocity_30d"`
	Trend       string          `json:"trend"`
	Daily       []DailyUsageDTO `json:"daily"`
}

// SupplierDTO represents one supplier's reliability score.
type SupplierDTO struct {
	Supplier        string  `json:"supplier"`
	Shipments       int     `json:"shipments"`
	OnTimeRate      float64 `json:"on_time_rate"`
	FulfillmentRate float64 `json:"fulfillment_rate"`
	Reliability     float64 `json:"reliability"`
	AvgDelayDays    float64 `json:"avg_delay_days"`
}

// ShipmentDTO represents one shipment row.
type ShipmentDTO struct {
	Ingredient  string  `json:"ingredient"`
	Supplier    string  `json:"supplier,omitempty"`
	Quantity    float64 `json:"quantity"`
	Date        string  `json:"date,omitempty"`
	Frequency   string  `json:"frequency,omitempty"`
	Status      string  `json:"status,omitempty"`
	DelayDays   int     `json:"delay_days,omitempty"`
	OrderedQty  float64 `json:"ordered_qty,omitempty"`
	ReceivedQty float64 `json:"received_qty,omitempty"`
}

// =============================================================================
// SIMULATION TYPES
// =============================================================================

// SimulateRequest describes a what-if scenario.
type SimulateRequest struct {
	SalesMultiplier   float64            `json:"sales_multiplier,omitempty"`
	MenuItemChanges   map[string]float64 `json:"menu_item_changes,omitempty"`
	SupplierDelayDays int                `json:"supplier_delay_days,omitempty"`
	AsOf              string             `json:"as_of,omitempty"`
}

// SimRowDTO diffs one ingredient between baseline and scenario.
type SimRowDTO struct {
	Ingredient string  `json:"ingredient"`
	StockBase  float64 `json:"stock_base"`
	StockSim   float64 `json:"stock_sim"`
	Change     float64 `json:"change"`
	ChangePct  float64 `json:"change_pct"`
	DaysBase   int     `json:"days_base"`
	DaysSim    int     `json:"days_sim"`
	DaysChange int     `json:"days_change"`
}

// =============================================================================
// LEDGER INGESTION TYPES
// =============================================================================

// PurchaseRowDTO is one purchase ledger row for ingestion.
type PurchaseRowDTO struct {
	Date       string  `json:"date"`
	Ingredient string  `json:"ingredient"`
	Quantity   float64 `json:"quantity"`
	TotalCost  float64 `json:"total_cost"`
	Supplier   string  `json:"supplier,omitempty"`
	Unit       string  `json:"unit,omitempty"`
}

// UsageRowDTO is one usage ledger row for ingestion.
type UsageRowDTO struct {
	Date       string  `json:"date"`
	Ingredient string  `json:"ingredient"`
	Quantity   float64 `json:"quantity"`
	MenuItem   string  `json:"menu_item,omitempty"`
}

// SaleRowDTO is one sales ledger row for ingestion.
type SaleRowDTO struct {
	Date     string  `json:"date"`
	MenuItem string  `json:"menu_item"`
	Quantity float64 `json:"quantity"`
	Revenue  float64 `json:"revenue,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

// MasterRowDTO is one ingredient master row.
type MasterRowDTO struct {
	Name          string  `json:"name"`
	MinStock      float64 `json:"min_stock"`
	MaxStock      float64 `json:"max_stock"`
	Unit          string  `json:"unit,omitempty"`
	Category      string  `json:"category,omitempty"`
	ShelfLifeDays int     `json:"shelf_life_days,omitempty"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

// jsonFloat scrubs non-finite values so they never reach a JSON encoder,
// which would otherwise fail the whole response.
func jsonFloat(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func toSnapshotDTO(s engine.Snapshot) SnapshotDTO {
	return SnapshotDTO{
		Ingredient:        s.Ingredient,
		CurrentStock:      jsonFloat(s.CurrentStock),
		TotalPurchased:    jsonFloat(s.TotalPurchased),
		TotalUsed:         jsonFloat(s.TotalUsed),
		MinStock:          jsonFloat(s.MinStock),
		MaxStock:          jsonFloat(s.MaxStock),
		Status:            string(s.Status),
		DaysUntilStockout: s.DaysUntilStockout,
		ReorderNeeded:     s.ReorderNeeded,
		Unit:              s.Unit,
	}
}

func toForecastDTO(f *engine.Forecast) ForecastDTO {
	dto := ForecastDTO{
		Ingredient:  f.Ingredient,
		Method:      f.Method,
		HistoryDays: f.HistoryDays,
		Points:      make([]ForecastPointDTO, len(f.Points)),
	}
	for i, p := range f.Points {
		dto.Points[i] = ForecastPointDTO{
			Date:    p.Date.String(),
			Usage:   jsonFloat(p.Usage),
			Low:     jsonFloat(p.Low),
			High:    jsonFloat(p.High),
			Holiday: p.Holiday,
		}
	}
	if f.Seasonality != nil {
		dto.Seasonality = toSeasonalityDTO(f.Seasonality)
	}
	return dto
}

func toSeasonalityDTO(s *engine.SeasonalityProfile) *SeasonalityDTO {
	dto := &SeasonalityDTO{
		HasSeasonality: s.HasSeasonality,
		PeakMonth:      int(s.PeakMonth),
		LowMonth:       int(s.LowMonth),
	}
	if len(s.Factors) > 0 {
		dto.Factors = make(map[string]float64, len(s.Factors))
		for month, factor := range s.Factors {
			dto.Factors[strconv.Itoa(int(month))] = jsonFloat(factor)
		}
	}
	return dto
}

func toWasteRowDTO(w engine.WasteRow) WasteRowDTO {
	return WasteRowDTO{
		Ingredient:     w.Ingredient,
		TotalPurchased: jsonFloat(w.TotalPurchased),
		TotalUsed:      jsonFloat(w.TotalUsed),
		Waste:          jsonFloat(w.Waste),
		WastePct:       jsonFloat(w.WastePct),
		Unit:           w.Unit,
		TotalCost:      jsonFloat(w.TotalCost.Float64()),
		WasteCost:      jsonFloat(w.WasteCost.Float64()),
		CostScore:      jsonFloat(w.CostScore),
		WasteScore:     jsonFloat(w.WasteScore),
		Risk:           w.Risk,
		MatchStrategy:  w.MatchStrategy,
	}
}

func toRiskAlertDTO(a engine.RiskAlert) RiskAlertDTO {
	factors := a.Factors
	if factors == nil {
		factors = []string{}
	}
	return RiskAlertDTO{
		Ingredient:        a.Ingredient,
		Score:             jsonFloat(a.Score),
		Level:             a.Level,
		Factors:           factors,
		CurrentStock:      jsonFloat(a.CurrentStock),
		MinStock:          jsonFloat(a.MinStock),
		MaxStock:          jsonFloat(a.MaxStock),
		Velocity7d:        jsonFloat(a.Velocity7d),
		Velocity30d:       jsonFloat(a.Velocity30d),
		DaysUntilStockout: a.DaysUntilStockout,
		NeedsReorder:      a.NeedsReorder,
	}
}

func toRecommendationDTO(rec engine.Recommendation) RecommendationDTO {
	return RecommendationDTO{
		Ingredient:          rec.Ingredient,
		CurrentStock:        jsonFloat(rec.CurrentStock),
		MinStock:            jsonFloat(rec.MinStock),
		MaxStock:            jsonFloat(rec.MaxStock),
		ForecastedDemand30d: jsonFloat(rec.ForecastedDemand30d),
		RecommendedQty:      jsonFloat(rec.RecommendedQty),
		Urgency:             string(rec.Urgency),
		LeadTimeDays:        rec.LeadTimeDays,
		ReorderDate:         rec.ReorderDate.String(),
		DaysUntilStockout:   rec.DaysUntilStockout,
		DataQuality:         string(rec.DataQuality),
		Supplier:            rec.Supplier,
	}
}

func toCostReportDTO(c engine.CostSummary) CostReportDTO {
	dto := CostReportDTO{
		Total:        jsonFloat(c.Total.Float64()),
		ByCategory:   make([]CategorySpendDTO, len(c.ByCategory)),
		ByIngredient: make([]IngredientSpendDTO, len(c.ByIngredient)),
	}
	for i, cs := range c.ByCategory {
		dto.ByCategory[i] = CategorySpendDTO{
			Category: cs.Category,
			Total:    jsonFloat(cs.Total.Float64()),
			Share:    jsonFloat(cs.Share),
		}
	}
	for i, is := range c.ByIngredient {
		dto.ByIngredient[i] = IngredientSpendDTO{
			Ingredient: is.Ingredient,
			Total:      jsonFloat(is.Total.Float64()),
			Quantity:   jsonFloat(is.Quantity),
			UnitCost:   jsonFloat(is.UnitCost.Float64()),
		}
	}
	return dto
}

func toViabilityDTO(m engine.MenuReport) ViabilityDTO {
	dto := ViabilityDTO{
		Dishes: make([]DishViabilityDTO, len(m.Dishes)),
		Score:  jsonFloat(m.Score),
	}
	for i, d := range m.Dishes {
		ingredients := make([]PerServingDTO, len(d.Ingredients))
		for j, ps := range d.Ingredients {
			ingredients[j] = PerServingDTO{
				Ingredient: ps.Ingredient,
				Quantity:   jsonFloat(ps.Quantity),
				Source:     ps.Source,
			}
		}
		dto.Dishes[i] = DishViabilityDTO{
			MenuItem:         d.MenuItem,
			ServingsPossible: d.ServingsPossible,
			Status:           d.Status,
			LimitingFactor:   d.LimitingFactor,
			Missing:          d.Missing,
			Invalid:          d.Invalid,
			Ingredients:      ingredients,
		}
	}
	return dto
}

func toUsageTrendDTO(t engine.UsageTrend) UsageTrendDTO {
	daily := make([]DailyUsageDTO, len(t.Daily))
	for i, d := range t.Daily {
		daily[i] = DailyUsageDTO{Date: d.Date.String(), Quantity: jsonFloat(d.Quantity)}
	}
	return UsageTrendDTO{
		Ingredient:  t.Ingredient,
		TotalUsed:   jsonFloat(t.TotalUsed),
		Velocity7d:  jsonFloat(t.Velocity7d),
		Velocity30d: jsonFloat(t.Velocity30d),
		Trend:       t.Trend,
		Daily:       daily,
	}
}

func toSupplierDTO(s engine.SupplierReliability) SupplierDTO {
	return SupplierDTO{
		Supplier:        s.Supplier,
		Shipments:       s.Shipments,
		OnTimeRate:      jsonFloat(s.OnTimeRate),
		FulfillmentRate: jsonFloat(s.FulfillmentRate),
		Reliability:     jsonFloat(s.Reliability),
		AvgDelayDays:    jsonFloat(s.AvgDelayDays),
	}
}

func toShipmentDTO(s ledger.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		Ingredient:  s.Ingredient,
		Supplier:    s.Supplier,
		Quantity:    jsonFloat(s.Quantity),
		Frequency:   s.Frequency,
		Status:      string(s.Status),
		DelayDays:   s.DelayDays,
		OrderedQty:  jsonFloat(s.OrderedQty),
		ReceivedQty: jsonFloat(s.ReceivedQty),
	}
	if !s.Date.IsZero() {
		dto.Date = s.Date.String()
	}
	return dto
}

func toSimRowDTO(r engine.SimRow) SimRowDTO {
	return SimRowDTO{
		Ingredient: r.Ingredient,
		StockBase:  jsonFloat(r.StockBase),
		StockSim:   jsonFloat(r.StockSim),
		Change:     jsonFloat(r.Change),
		ChangePct:  jsonFloat(r.ChangePct),
		DaysBase:   r.DaysBase,
		DaysSim:    r.DaysSim,
		DaysChange: r.DaysChange,
	}
}

func toExpiringStockDTO(e engine.ExpiringStock) ExpiringStockDTO {
	return ExpiringStockDTO{
		Ingredient:        e.Ingredient,
		CurrentStock:      jsonFloat(e.CurrentStock),
		ShelfLifeDays:     e.ShelfLifeDays,
		DaysUntilStockout: e.DaysUntilStockout,
		UseFirst:          e.UseFirst,
	}
}
