package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/warp/inventory-engine/holiday"
	"github.com/warp/inventory-engine/ledger"
)

func flatUsage(name string, fromDay, toDay int, qty float64) []ledger.Usage {
	var rows []ledger.Usage
	for d := fromDay; d <= toDay; d++ {
		rows = append(rows, usage(d, name, qty))
	}
	return rows
}

func TestForecastEmptyHistory(t *testing.T) {
	// GIVEN an ingredient with no usage rows
	// THEN the forecast is an empty series, not an error
	e := NewDefault()
	f, err := e.ForecastUsage(ledger.NewDataset(), "Beef", march(30), ForecastOptions{})
	require.NoError(t, err)
	require.Empty(t, f.Points)
}

func TestForecastUnknownMethod(t *testing.T) {
	e := NewDefault()
	_, err := e.ForecastUsage(ledger.NewDataset(), "Beef", march(30), ForecastOptions{Method: "prophet"})
	require.Error(t, err)
	require.True(t, errors.Is(err, ledger.ErrUnknownStrategy))
}

func TestMovingAverageFlatSeries(t *testing.T) {
	// Constant 10/day history forecasts a flat 10 with a +/-20% band.
	ds := &ledger.Dataset{Usage: flatUsage("Beef", 1, 10, 10)}
	e := NewDefault()

	f, err := e.ForecastUsage(ds, "Beef", march(10), ForecastOptions{Days: 5})
	require.NoError(t, err)
	require.Len(t, f.Points, 5)
	for _, p := range f.Points {
		require.InDelta(t, 10, p.Usage, 1e-9)
		require.InDelta(t, 8, p.Low, 1e-9)
		require.InDelta(t, 12, p.High, 1e-9)
	}
	require.Equal(t, MethodMovingAverage, f.Method)
}

func TestMovingAverageBlends7And30(t *testing.T) {
	// GIVEN 3 early days at 10 and 7 recent days at 20
	// THEN the point is 0.6*MA7 + 0.4*MA30 = 0.6*20 + 0.4*17 = 18.8
	rows := append(flatUsage("Beef", 1, 3, 10), flatUsage("Beef", 4, 10, 20)...)
	ds := &ledger.Dataset{Usage: rows}

	f, err := NewDefault().ForecastUsage(ds, "Beef", march(10), ForecastOptions{Days: 1})
	require.NoError(t, err)
	require.InDelta(t, 18.8, f.Points[0].Usage, 1e-9)
}

func TestLinearTrendFitsSlope(t *testing.T) {
	// Usage growing 1, 2, ..., 10 over ten days projects 11, 12, ... with a
	// zero-width band (perfect fit).
	var rows []ledger.Usage
	for d := 1; d <= 10; d++ {
		rows = append(rows, usage(d, "Beef", float64(d)))
	}
	ds := &ledger.Dataset{Usage: rows}

	f, err := NewDefault().ForecastUsage(ds, "Beef", march(10), ForecastOptions{Method: MethodLinearTrend, Days: 3})
	require.NoError(t, err)
	require.Equal(t, MethodLinearTrend, f.Method)
	for i, p := range f.Points {
		require.InDelta(t, float64(11+i), p.Usage, 1e-6)
		require.InDelta(t, p.Usage, p.Low, 1e-6)
		require.InDelta(t, p.Usage, p.High, 1e-6)
	}
}

func TestLinearTrendFallsBackOnShortHistory(t *testing.T) {
	ds := &ledger.Dataset{Usage: flatUsage("Beef", 1, 5, 10)}
	f, err := NewDefault().ForecastUsage(ds, "Beef", march(5), ForecastOptions{Method: MethodLinearTrend, Days: 2})
	require.NoError(t, err)
	require.Equal(t, MethodMovingAverage, f.Method, "under 7 days of history must fall back")
}

func TestForecastConfidenceContainment(t *testing.T) {
	// low <= point <= high on every row, across methods and adjustments.
	var rows []ledger.Usage
	for d := 1; d <= 20; d++ {
		rows = append(rows, usage(d, "Beef", float64(5+d%7)))
	}
	ds := &ledger.Dataset{Usage: rows}
	cal := holiday.NewStatic(march(22))
	e := New(DefaultConfig(), nil, nil, cal, zerolog.Nop())

	for _, method := range []string{MethodMovingAverage, MethodLinearTrend} {
		f, err := e.ForecastUsage(ds, "Beef", march(20), ForecastOptions{
			Method: method, Days: 10, Seasonal: true, Holidays: true,
		})
		require.NoError(t, err)
		for _, p := range f.Points {
			require.LessOrEqual(t, p.Low, p.Usage, "method %s at %s", method, p.Date)
			require.LessOrEqual(t, p.Usage, p.High, "method %s at %s", method, p.Date)
			require.GreaterOrEqual(t, p.Low, 0.0)
		}
	}
}

func TestHolidayUplift(t *testing.T) {
	// GIVEN a flat 10/day forecast and a holiday on the second forecast day
	// THEN that day's point is scaled 1.2x and flagged
	ds := &ledger.Dataset{Usage: flatUsage("Beef", 1, 10, 10)}
	cal := holiday.NewStatic(march(12))
	e := New(DefaultConfig(), nil, nil, cal, zerolog.Nop())

	f, err := e.ForecastUsage(ds, "Beef", march(10), ForecastOptions{Days: 3, Holidays: true})
	require.NoError(t, err)

	require.False(t, f.Points[0].Holiday)
	require.InDelta(t, 10, f.Points[0].Usage, 1e-9)

	require.True(t, f.Points[1].Holiday)
	require.InDelta(t, 12, f.Points[1].Usage, 1e-9)
	require.InDelta(t, 14.4, f.Points[1].High, 1e-9)
}

func TestHolidayAdjustmentOffByDefault(t *testing.T) {
	ds := &ledger.Dataset{Usage: flatUsage("Beef", 1, 10, 10)}
	cal := holiday.NewStatic(march(12))
	e := New(DefaultConfig(), nil, nil, cal, zerolog.Nop())

	f, err := e.ForecastUsage(ds, "Beef", march(10), ForecastOptions{Days: 3})
	require.NoError(t, err)
	require.InDelta(t, 10, f.Points[1].Usage, 1e-9, "holiday uplift must be opt-in")
}

type panickyCalendar struct{}

func (panickyCalendar) IsHoliday(ledger.TimePoint) bool   { panic("provider down") }
func (panickyCalendar) HolidaysIn(int) []ledger.TimePoint { return nil }

func TestHolidayProviderFailureDegrades(t *testing.T) {
	// A failing provider must mean "no adjustment", never a crash.
	ds := &ledger.Dataset{Usage: flatUsage("Beef", 1, 10, 10)}
	e := New(DefaultConfig(), nil, nil, panickyCalendar{}, zerolog.Nop())

	f, err := e.ForecastUsage(ds, "Beef", march(10), ForecastOptions{Days: 2, Holidays: true})
	require.NoError(t, err)
	for _, p := range f.Points {
		require.False(t, p.Holiday)
		require.InDelta(t, 10, p.Usage, 1e-9)
	}
}

func TestSeasonalityProfile(t *testing.T) {
	// GIVEN January days at 10 and July days at 30
	// THEN factors land at 0.5 and 1.5 and seasonality is detected
	var rows []ledger.Usage
	for d := 1; d <= 10; d++ {
		rows = append(rows, ledger.Usage{Date: ledger.NewTimePoint(2024, time.January, d), Ingredient: "Beef", QuantityUsed: 10})
		rows = append(rows, ledger.Usage{Date: ledger.NewTimePoint(2024, time.July, d), Ingredient: "Beef", QuantityUsed: 30})
	}
	ds := &ledger.Dataset{Usage: rows}

	p := NewDefault().Seasonality(ds, "Beef", ledger.NewTimePoint(2024, time.December, 31))
	require.NotNil(t, p)
	require.True(t, p.HasSeasonality)
	require.InDelta(t, 0.5, p.Factors[time.January], 1e-9)
	require.InDelta(t, 1.5, p.Factors[time.July], 1e-9)
	require.Equal(t, time.July, p.PeakMonth)
	require.Equal(t, time.January, p.LowMonth)
	require.InDelta(t, 1.0, p.Factor(time.February), 1e-9, "unseen months are neutral")
}

func TestSeasonalityNoHistory(t *testing.T) {
	p := NewDefault().Seasonality(ledger.NewDataset(), "Beef", march(30))
	require.Nil(t, p)
}

func TestSeasonalAdjustmentAppliedToForecast(t *testing.T) {
	// History split between March at 10/day and April at 20/day gives April
	// a factor above 1; forecasting into April must scale up.
	var rows []ledger.Usage
	for d := 1; d <= 15; d++ {
		rows = append(rows, ledger.Usage{Date: ledger.NewTimePoint(2024, time.March, d), Ingredient: "Beef", QuantityUsed: 10})
		rows = append(rows, ledger.Usage{Date: ledger.NewTimePoint(2024, time.April, d), Ingredient: "Beef", QuantityUsed: 20})
	}
	ds := &ledger.Dataset{Usage: rows}
	e := NewDefault()

	ref := ledger.NewTimePoint(2024, time.April, 15)
	plain, err := e.ForecastUsage(ds, "Beef", ref, ForecastOptions{Days: 1})
	require.NoError(t, err)
	seasonal, err := e.ForecastUsage(ds, "Beef", ref, ForecastOptions{Days: 1, Seasonal: true})
	require.NoError(t, err)

	require.NotNil(t, seasonal.Seasonality)
	require.True(t, seasonal.Seasonality.HasSeasonality)
	factor := seasonal.Seasonality.Factor(time.April)
	require.Greater(t, factor, 1.0)
	require.InDelta(t, plain.Points[0].Usage*factor, seasonal.Points[0].Usage, 1e-9)
	require.False(t, math.IsNaN(seasonal.Points[0].Usage))
}
