/*
Package engine derives analytics from raw ledger snapshots.

PURPOSE:
  Everything here is a pure recomputation: take a Dataset, a reference date,
  and configuration, and produce inventory snapshots, forecasts, waste and
  cost diagnostics, risk alerts, reorder recommendations, menu viability,
  and what-if simulation diffs. No derived state is ever written back; the
  ledgers stay the single source of truth.

KEY CONCEPTS:
  - Engine: bundles the identity resolver, unit converter, holiday calendar,
    tunables, and logger that every computation shares
  - usageSeries: per-ingredient daily usage history, the substrate for
    velocity, forecasting, and seasonality

DESIGN PRINCIPLES:
  1. Purity: inputs are never mutated; the simulator clones first
  2. Tolerance: missing data yields empty results, not errors; implausible
     values downgrade data quality instead of failing
  3. Isolation: one ingredient's bad rows never abort the whole report

SEE ALSO:
  - inventory.go: stock snapshot calculator
  - forecast.go, seasonality.go: demand forecasting
  - cost.go, waste.go: spend and waste diagnostics
  - risk.go, reorder.go: urgency scoring and order recommendations
  - viability.go: recipe viability mapping
  - simulate.go: scenario simulation
*/
package engine

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/warp/inventory-engine/holiday"
	"github.com/warp/inventory-engine/ingredient"
	"github.com/warp/inventory-engine/ledger"
)

// =============================================================================
// CONFIG - Tunables with production defaults
// =============================================================================

type Config struct {
	// Stock thresholds applied when the ingredient master has none.
	DefaultMinStock float64
	DefaultMaxStock float64

	// Days-until-stockout handling.
	StockoutClampDays    int // upper clamp on the estimate
	StockoutNoMatchDays  int // reported when no usage can be matched
	StockoutZeroRateDays int // reported when matched usage has zero rate

	// HolidayFactor scales forecasted usage on calendar holidays.
	HolidayFactor float64

	// Implausibility gates for reorder demand, as multiples of max stock.
	// Empirically tuned; a breach signals a unit mismatch, not real demand.
	ForecastImplausibleFactor   float64
	HistoricalImplausibleFactor float64

	// ReorderHorizonDays is the demand window a recommendation covers.
	ReorderHorizonDays int
	// ReorderBufferDays is subtracted from the stockout estimate together
	// with lead time when picking the order date.
	ReorderBufferDays int

	// Parallelism bounds report fan-out across ingredients.
	Parallelism int
}

func DefaultConfig() Config {
	return Config{
		DefaultMinStock:             20,
		DefaultMaxStock:             200,
		StockoutClampDays:           365,
		StockoutNoMatchDays:         30,
		StockoutZeroRateDays:        999,
		HolidayFactor:               holiday.UsageFactor,
		ForecastImplausibleFactor:   10,
		HistoricalImplausibleFactor: 5,
		ReorderHorizonDays:          30,
		ReorderBufferDays:           2,
		Parallelism:                 8,
	}
}

// =============================================================================
// ENGINE
// =============================================================================

type Engine struct {
	cfg     Config
	conv    *ingredient.Converter
	matcher *ingredient.Matcher
	cal     holiday.Calendar
	log     zerolog.Logger
}

func New(cfg Config, conv *ingredient.Converter, matcher *ingredient.Matcher, cal holiday.Calendar, log zerolog.Logger) *Engine {
	if conv == nil {
		conv = ingredient.NewDefaultConverter()
	}
	if matcher == nil {
		matcher = ingredient.NewMatcher()
	}
	if cal == nil {
		cal = holiday.Default{}
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}
	return &Engine{cfg: cfg, conv: conv, matcher: matcher, cal: cal, log: log}
}

// NewDefault builds an engine with production constants, the standard
// matching cascade, and no holiday calendar.
func NewDefault() *Engine {
	return New(DefaultConfig(), nil, nil, nil, zerolog.Nop())
}

// =============================================================================
// USAGE SERIES - Shared substrate for velocity, forecast, seasonality
// =============================================================================

type usagePoint struct {
	date ledger.TimePoint
	qty  float64
}

// usageSeries is one ingredient's daily usage history, date-ascending, one
// point per recorded day.
type usageSeries []usagePoint

func (s usageSeries) total() float64 {
	var sum float64
	for _, p := range s {
		sum += p.qty
	}
	return sum
}

// matchedUsageSeries aggregates usage rows that the cascade matches to the
// target name, summed per day, through the reference date.
func (e *Engine) matchedUsageSeries(ds *ledger.Dataset, name string, ref ledger.TimePoint) usageSeries {
	byDay := make(map[ledger.TimePoint]float64)
	for _, u := range ds.UsageThrough(ref) {
		if !e.matcher.Match(name, u.Ingredient) {
			continue
		}
		byDay[u.Date] += u.QuantityUsed
	}
	if len(byDay) == 0 {
		return nil
	}
	series := make(usageSeries, 0, len(byDay))
	for d, q := range byDay {
		series = append(series, usagePoint{date: d, qty: q})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].date.Before(series[j].date) })
	return series
}

// avgDailyUsage returns the average daily quantity over the trailing window
// ending at ref, counting calendar days, and whether any rows matched at all.
func (e *Engine) avgDailyUsage(ds *ledger.Dataset, name string, ref ledger.TimePoint, windowDays int) (float64, bool) {
	from := ref.AddDays(-windowDays)
	var total float64
	matched := false
	for _, u := range ds.Usage {
		if !u.Date.After(from) || u.Date.After(ref) {
			continue
		}
		if !e.matcher.Match(name, u.Ingredient) {
			continue
		}
		matched = true
		total += u.QuantityUsed
	}
	if !matched {
		// The window may simply be quiet; check the full history so "never
		// seen" and "seen but idle" stay distinguishable.
		for _, u := range ds.Usage {
			if e.matcher.Match(name, u.Ingredient) {
				matched = true
				break
			}
		}
		return 0, matched
	}
	return total / float64(windowDays), true
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// finite replaces NaN and infinities with a fallback so no report leaks
// non-finite numbers to callers.
func finite(v, fallback float64) float64 {
	if v != v || v > maxFinite || v < -maxFinite {
		return fallback
	}
	return v
}

const maxFinite = 1e308

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
