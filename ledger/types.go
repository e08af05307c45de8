/*
Package ledger defines the raw transaction records the analytics engine
consumes and the Dataset bundle that carries them.

PURPOSE:
  The four ledgers (purchases, usage, sales, shipments) plus the ingredient
  master are the only source of truth. Every derived number in the engine
  package is recomputed from these rows on demand; nothing derived is ever
  persisted back.

KEY CONCEPTS IN THIS FILE (types.go):
  - Purchase/Usage/Sale/Shipment: immutable ledger rows
  - IngredientInfo: master data (thresholds, unit, category, shelf life)
  - Money: decimal-backed currency amount, never float

DESIGN PRINCIPLES:
  1. Immutability: rows are appended, never edited in place
  2. Precision: currency uses decimal.Decimal, physical quantities float64
  3. Tolerance: rows with invalid dates are dropped at load, not errored

SEE ALSO:
  - dataset.go: Dataset bundle, deep copy, date filtering
  - store.go: persistence interface
  - time.go: day-granular TimePoint used as the date axis
*/
package ledger

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Currency amount backed by decimal
// =============================================================================

type Money struct {
	Value decimal.Decimal
}

func NewMoney(value float64) Money   { return Money{Value: decimal.NewFromFloat(value)} }
func MoneyFromInt(value int64) Money { return Money{Value: decimal.NewFromInt(value)} }
func ZeroMoney() Money               { return Money{Value: decimal.Zero} }

func (m Money) Add(other Money) Money  { return Money{Value: m.Value.Add(other.Value)} }
func (m Money) Sub(other Money) Money  { return Money{Value: m.Value.Sub(other.Value)} }
func (m Money) MulFloat(f float64) Money {
	return Money{Value: m.Value.Mul(decimal.NewFromFloat(f))}
}
func (m Money) DivFloat(f float64) Money {
	if f == 0 {
		return ZeroMoney()
	}
	return Money{Value: m.Value.Div(decimal.NewFromFloat(f))}
}
func (m Money) IsZero() bool              { return m.Value.IsZero() }
func (m Money) IsPositive() bool          { return m.Value.IsPositive() }
func (m Money) GreaterThan(o Money) bool  { return m.Value.GreaterThan(o.Value) }
func (m Money) Float64() float64          { f, _ := m.Value.Float64(); return f }
func (m Money) String() string            { return m.Value.StringFixed(2) }

// =============================================================================
// LEDGER ROWS
// =============================================================================

// Purchase records stock arriving. Quantity is in the supplier's unit
// (lb, kg, count, ...); Unit may be empty when the source sheet omitted it.
type Purchase struct {
	Date       TimePoint
	Ingredient string
	Quantity   float64
	TotalCost  Money
	Supplier   string
	Unit       string
}

// Usage records stock leaving through the kitchen. QuantityUsed is authored
// in grams by recipe math for weight-based ingredients.
type Usage struct {
	Date         TimePoint
	Ingredient   string
	QuantityUsed float64
	MenuItem     string
}

// Sale records a menu item sold.
type Sale struct {
	Date         TimePoint
	MenuItem     string
	QuantitySold float64
	Revenue      Money
	Price        Money
}

type ShipmentStatus string

const (
	ShipmentOnTime  ShipmentStatus = "on_time"
	ShipmentDelayed ShipmentStatus = "delayed"
	ShipmentPending ShipmentStatus = "pending"
)

// Shipment records supplier delivery metadata. Date may be zero when only a
// recurring frequency is known.
type Shipment struct {
	Ingredient  string
	Quantity    float64
	Date        TimePoint
	Frequency   string // "weekly", "biweekly", "monthly", or free text
	Unit        string
	Supplier    string
	Status      ShipmentStatus
	DelayDays   int
	OrderedQty  float64
	ReceivedQty float64
}

// IngredientInfo is master data for one ingredient. Zero thresholds mean
// "not configured"; consumers apply defaults.
type IngredientInfo struct {
	Name          string
	MinStock      float64
	MaxStock      float64
	Unit          string
	Category      string
	ShelfLifeDays int
}

// =============================================================================
// RECIPE MAP - menu item -> ingredient -> quantity per serving
// =============================================================================

// RecipeMatrix is the authoritative per-serving source when available.
// Entries with non-positive quantities are excluded at construction.
type RecipeMatrix map[string]map[string]float64

// Get returns the per-serving quantity, or 0 when absent.
func (r RecipeMatrix) Get(menuItem, ingredient string) float64 {
	if row, ok := r[menuItem]; ok {
		return row[ingredient]
	}
	return 0
}

// Set stores a per-serving quantity, ignoring non-positive values.
func (r RecipeMatrix) Set(menuItem, ingredient string, qty float64) {
	if qty <= 0 || qty != qty {
		return
	}
	row, ok := r[menuItem]
	if !ok {
		row = make(map[string]float64)
		r[menuItem] = row
	}
	row[ingredient] = qty
}
