package ingredient

// Config carries the unit and cost constants the converter works from.
// Lifted into an explicit object so tests can inject deterministic fixtures
// instead of relying on package-level literals.
type Config struct {
	// CountKeywords classify an ingredient as count-based when any keyword
	// appears in its name or unit hint.
	CountKeywords []string

	// UnitToGrams converts weight units to grams.
	UnitToGrams map[string]float64

	// GramsPerUnit estimates one count unit's weight, keyed on name keyword.
	GramsPerUnit        map[string]float64
	DefaultGramsPerUnit float64

	// CategoryUnitCost estimates dollars per purchase unit when a ledger has
	// no usable cost data, keyed on category.
	CategoryUnitCost map[string]float64
	DefaultUnitCost  float64
}

// DefaultConfig returns the production constants.
func DefaultConfig() Config {
	return Config{
		CountKeywords: []string{
			"wing", "ramen", "egg", "count", "pcs", "piece", "roll", "whole", "noodle",
		},
		UnitToGrams: map[string]float64{
			"g":      1,
			"gram":   1,
			"grams":  1,
			"kg":     1000,
			"oz":     28.3495,
			"ounce":  28.3495,
			"ounces": 28.3495,
			"lb":     453.592,
			"lbs":    453.592,
			"pound":  453.592,
			"pounds": 453.592,
		},
		GramsPerUnit: map[string]float64{
			"ramen":  100,
			"noodle": 100,
			"egg":    50,
			"wing":   30,
		},
		DefaultGramsPerUnit: 50,
		CategoryUnitCost: map[string]float64{
			"meat":      8.0,
			"seafood":   12.0,
			"vegetable": 2.0,
			"staple":    1.5,
			"egg_dairy": 0.5,
			"sauce":     3.0,
		},
		DefaultUnitCost: 2.5,
	}
}
