/*
forecast.go - Per-ingredient demand forecasting

PURPOSE:
  Produces a daily forecast series with confidence bands from matched usage
  history. Two interchangeable point strategies, an optional seasonal
  adjustment, and an optional holiday uplift layered on top.

STRATEGIES:
  - moving_average: 0.6 * trailing-7-day mean + 0.4 * trailing-30-day mean,
    flat forward series, band at +/-20%
  - linear_trend: least-squares fit of daily usage against elapsed days,
    band at +/-1.96 residual standard deviations; falls back to the moving
    average below 7 days of history

INVARIANTS:
  - confidence_low <= forecasted_usage <= confidence_high on every row
  - zero matched history yields an empty series, never an error
  - holiday lookup failures degrade to "no adjustment" and are logged
*/
package engine

import (
	"fmt"
	"math"

	"github.com/warp/inventory-engine/ledger"
)

const (
	MethodMovingAverage = "moving_average"
	MethodLinearTrend   = "linear_trend"
)

// minTrendDays is the history floor below which the trend model falls back
// to the moving average.
const minTrendDays = 7

// ForecastOptions selects the strategy and adjustments.
type ForecastOptions struct {
	Method       string // MethodMovingAverage (default) or MethodLinearTrend
	Days         int    // horizon, default 7
	Seasonal     bool   // scale by monthly seasonal factors when detected
	Holidays     bool   // apply the holiday uplift
}

// ForecastPoint is one future day.
type ForecastPoint struct {
	Date    ledger.TimePoint
	Usage   float64
	Low     float64
	High    float64
	Holiday bool
}

// Forecast is the full series plus the context it was built from.
type Forecast struct {
	Ingredient  string
	Method      string // method actually used, after any fallback
	Points      []ForecastPoint
	Seasonality *SeasonalityProfile
	HistoryDays int
}

// ForecastUsage forecasts daily usage in the ingredient's usage units
// (grams for weight-based ingredients). An ingredient with no matched
// history returns an empty series.
func (e *Engine) ForecastUsage(ds *ledger.Dataset, name string, ref ledger.TimePoint, opts ForecastOptions) (*Forecast, error) {
	if opts.Days <= 0 {
		opts.Days = 7
	}
	if opts.Method == "" {
		opts.Method = MethodMovingAverage
	}
	if opts.Method != MethodMovingAverage && opts.Method != MethodLinearTrend {
		return nil, fmt.Errorf("%w: %q", ledger.ErrUnknownStrategy, opts.Method)
	}

	series := e.matchedUsageSeries(ds, name, ref)
	out := &Forecast{Ingredient: name, Method: opts.Method, HistoryDays: len(series)}
	if len(series) == 0 {
		return out, nil
	}

	var points []ForecastPoint
	switch {
	case opts.Method == MethodLinearTrend && len(series) >= minTrendDays:
		points = linearTrend(series, ref, opts.Days)
	default:
		if opts.Method == MethodLinearTrend {
			out.Method = MethodMovingAverage
		}
		points = movingAverage(series, ref, opts.Days)
	}

	if opts.Seasonal {
		out.Seasonality = e.Seasonality(ds, name, ref)
		if out.Seasonality != nil && out.Seasonality.HasSeasonality {
			for i := range points {
				f := out.Seasonality.Factor(points[i].Date.Month())
				points[i].Usage *= f
				points[i].Low *= f
				points[i].High *= f
			}
		}
	}

	if opts.Holidays {
		for i := range points {
			if e.isHoliday(points[i].Date) {
				points[i].Holiday = true
				points[i].Usage *= e.cfg.HolidayFactor
				points[i].High *= e.cfg.HolidayFactor
			}
		}
	}

	for i := range points {
		points[i].Usage = finite(math.Max(points[i].Usage, 0), 0)
		points[i].Low = finite(clampFloat(points[i].Low, 0, points[i].Usage), 0)
		points[i].High = finite(math.Max(points[i].High, points[i].Usage), points[i].Usage)
	}
	out.Points = points
	return out, nil
}

// isHoliday shields the forecast from a misbehaving calendar provider: a
// panic downgrades to "not a holiday" with a log line.
func (e *Engine) isHoliday(date ledger.TimePoint) (result bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Warn().Str("date", date.String()).Interface("panic", r).
				Msg("holiday lookup failed, skipping adjustment")
			result = false
		}
	}()
	return e.cal.IsHoliday(date)
}

// =============================================================================
// MOVING AVERAGE
// =============================================================================

func movingAverage(series usageSeries, ref ledger.TimePoint, days int) []ForecastPoint {
	ma7 := trailingMean(series, 7)
	ma30 := trailingMean(series, 30)
	point := 0.6*ma7 + 0.4*ma30

	out := make([]ForecastPoint, days)
	for i := 0; i < days; i++ {
		out[i] = ForecastPoint{
			Date:  ref.AddDays(i + 1),
			Usage: point,
			Low:   point * 0.8,
			High:  point * 1.2,
		}
	}
	return out
}

// trailingMean averages the last up-to-n recorded days.
func trailingMean(series usageSeries, n int) float64 {
	if len(series) == 0 {
		return 0
	}
	start := len(series) - n
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, p := range series[start:] {
		sum += p.qty
	}
	return sum / float64(len(series)-start)
}

// =============================================================================
// LINEAR TREND
// =============================================================================

// linearTrend fits usage against days elapsed since the first recorded day
// and projects forward from the reference date.
func linearTrend(series usageSeries, ref ledger.TimePoint, days int) []ForecastPoint {
	first := series[0].date
	n := float64(len(series))

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range series {
		x := float64(ledger.DaysBetween(first, p.date))
		sumX += x
		sumY += p.qty
		sumXY += x * p.qty
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	var slope, intercept float64
	if denom != 0 {
		slope = (n*sumXY - sumX*sumY) / denom
		intercept = (sumY - slope*sumX) / n
	} else {
		intercept = sumY / n
	}

	// Population residual standard deviation.
	var ssr float64
	for _, p := range series {
		x := float64(ledger.DaysBetween(first, p.date))
		e := p.qty - (intercept + slope*x)
		ssr += e * e
	}
	std := math.Sqrt(ssr / n)

	out := make([]ForecastPoint, days)
	for i := 0; i < days; i++ {
		date := ref.AddDays(i + 1)
		x := float64(ledger.DaysBetween(first, date))
		point := math.Max(intercept+slope*x, 0)
		out[i] = ForecastPoint{
			Date:  date,
			Usage: point,
			Low:   math.Max(point-1.96*std, 0),
			High:  point + 1.96*std,
		}
	}
	return out
}
