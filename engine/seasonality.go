package engine

import (
	"time"

	"github.com/warp/inventory-engine/ledger"
)

// =============================================================================
// SEASONALITY - Monthly usage profile relative to the overall mean
// =============================================================================

// SeasonalityProfile captures how an ingredient's usage varies by calendar
// month. A factor of 1.3 for July means July days run 30% above the overall
// daily mean.
type SeasonalityProfile struct {
	Factors        map[time.Month]float64
	HasSeasonality bool
	PeakMonth      time.Month
	LowMonth       time.Month
}

// Factor returns the month's seasonal factor, 1 for months with no history.
func (p *SeasonalityProfile) Factor(m time.Month) float64 {
	if p == nil {
		return 1
	}
	if f, ok := p.Factors[m]; ok && f > 0 {
		return f
	}
	return 1
}

// minSeasonalSpread is the peak-minus-low factor gap below which monthly
// variation is treated as noise.
const minSeasonalSpread = 0.2

// Seasonality profiles the matched usage history of one ingredient. Returns
// nil when there is no history.
func (e *Engine) Seasonality(ds *ledger.Dataset, name string, ref ledger.TimePoint) *SeasonalityProfile {
	series := e.matchedUsageSeries(ds, name, ref)
	if len(series) == 0 {
		return nil
	}

	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)
	var total float64
	for _, p := range series {
		m := p.date.Month()
		sums[m] += p.qty
		counts[m]++
		total += p.qty
	}
	overall := total / float64(len(series))
	if overall <= 0 {
		return nil
	}

	profile := &SeasonalityProfile{Factors: make(map[time.Month]float64, len(sums))}
	peak, low := 0.0, 0.0
	first := true
	for m, sum := range sums {
		factor := (sum / float64(counts[m])) / overall
		profile.Factors[m] = factor
		if first || factor > peak {
			peak = factor
			profile.PeakMonth = m
		}
		if first || factor < low {
			low = factor
			profile.LowMonth = m
		}
		first = false
	}
	profile.HasSeasonality = peak-low > minSeasonalSpread
	return profile
}
