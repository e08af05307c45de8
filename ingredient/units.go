/*
units.go - Count/weight classification and unit conversion

PURPOSE:
  Usage quantities are authored in grams by recipe math; purchase and
  shipment quantities arrive in whatever unit the source sheet used (lb, kg,
  count, or nothing). Before any subtraction between the two ledgers is
  valid, both sides must land on one axis. The Converter owns that axis.

RULES:
  - Count-based ingredients (eggs, wings, ramen packs, ...) never convert;
    their quantities are discrete units on both sides.
  - Weight-based ingredients convert to grams through unit multipliers.
  - Missing unit hints fall back to a per-category assumption (meats and dry
    staples ship by the pound, eggs by count).

Classification is a pure function of name + unit hint, so it cannot drift
mid-pipeline.
*/
package ingredient

import (
	"sort"
	"strings"
)

type UnitClass int

const (
	WeightBased UnitClass = iota
	CountBased
)

func (c UnitClass) String() string {
	if c == CountBased {
		return "count"
	}
	return "weight"
}

// =============================================================================
// CONVERTER
// =============================================================================

type Converter struct {
	cfg Config
}

func NewConverter(cfg Config) *Converter {
	return &Converter{cfg: cfg}
}

func NewDefaultConverter() *Converter {
	return NewConverter(DefaultConfig())
}

// Classify returns the unit class for a name plus optional unit hint.
func (c *Converter) Classify(name, unit string) UnitClass {
	if c.IsCountBased(name, unit) {
		return CountBased
	}
	return WeightBased
}

// IsCountBased reports whether quantities for this ingredient are discrete
// units rather than mass.
func (c *Converter) IsCountBased(name, unit string) bool {
	haystack := strings.ToLower(name + " " + unit)
	for _, kw := range c.cfg.CountKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// ToGrams converts a quantity to grams. Count-based ingredients pass through
// unchanged. Unknown or missing units route through the category heuristic.
func (c *Converter) ToGrams(qty float64, name, unit string) float64 {
	if c.IsCountBased(name, unit) {
		return qty
	}
	u := strings.ToLower(strings.TrimSpace(unit))
	if factor, ok := c.cfg.UnitToGrams[u]; ok {
		return qty * factor
	}
	return qty * c.assumedGrams(name)
}

// assumedGrams guesses a per-unit gram factor from the ingredient name when
// the source sheet gave no unit. Meats and dry staples are bought by the
// pound; anything else is assumed to already be grams.
func (c *Converter) assumedGrams(name string) float64 {
	lowered := strings.ToLower(name)
	for _, kw := range meatKeywords {
		if strings.Contains(lowered, kw) {
			return c.cfg.UnitToGrams["lb"]
		}
	}
	for _, kw := range stapleKeywords {
		if strings.Contains(lowered, kw) {
			return c.cfg.UnitToGrams["lb"]
		}
	}
	return 1
}

// GramsPerUnit estimates the weight of one count unit, used to convert
// gram-denominated forecasts back into purchase/count units. Keys are tried
// in sorted order so overlapping keywords resolve the same way every run.
func (c *Converter) GramsPerUnit(name string) float64 {
	lowered := strings.ToLower(name)
	keys := make([]string, 0, len(c.cfg.GramsPerUnit))
	for kw := range c.cfg.GramsPerUnit {
		keys = append(keys, kw)
	}
	sort.Strings(keys)
	for _, kw := range keys {
		if strings.Contains(lowered, kw) {
			return c.cfg.GramsPerUnit[kw]
		}
	}
	return c.cfg.DefaultGramsPerUnit
}

// GramsToUnits converts a gram quantity into the ingredient's native
// purchase units: count units for count-based ingredients, grams otherwise.
func (c *Converter) GramsToUnits(grams float64, name, unit string) float64 {
	if !c.IsCountBased(name, unit) {
		return grams
	}
	per := c.GramsPerUnit(name)
	if per <= 0 {
		return grams
	}
	return grams / per
}

// =============================================================================
// CATEGORY - Name-keyword classification used for cost fallbacks
// =============================================================================

var (
	meatKeywords    = []string{"beef", "chicken", "pork", "wing", "duck", "lamb"}
	seafoodKeywords = []string{"salmon", "shrimp", "fish", "prawn", "squid", "crab"}
	vegKeywords     = []string{"bokchoy", "boychoy", "pea", "carrot", "cabbage", "onion", "vegetable", "mushroom", "spinach"}
	stapleKeywords  = []string{"rice", "flour", "sugar", "noodle", "ramen"}
	dairyKeywords   = []string{"egg", "milk", "cheese", "butter", "cream"}
	sauceKeywords   = []string{"sauce", "oil", "paste", "vinegar", "soy"}
)

// Category buckets an ingredient by name keywords. Order matters: meats win
// over staples so "Beef Noodle" costs like meat.
func (c *Converter) Category(name string) string {
	lowered := strings.ToLower(name)
	switch {
	case containsAny(lowered, seafoodKeywords):
		return "seafood"
	case containsAny(lowered, meatKeywords):
		return "meat"
	case containsAny(lowered, dairyKeywords):
		return "egg_dairy"
	case containsAny(lowered, sauceKeywords):
		return "sauce"
	case containsAny(lowered, vegKeywords):
		return "vegetable"
	case containsAny(lowered, stapleKeywords):
		return "staple"
	default:
		return "other"
	}
}

// CategoryUnitCost returns the fallback dollars-per-unit estimate for an
// ingredient with no usable ledger cost data.
func (c *Converter) CategoryUnitCost(name string) float64 {
	if cost, ok := c.cfg.CategoryUnitCost[c.Category(name)]; ok {
		return cost
	}
	return c.cfg.DefaultUnitCost
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
