/*
Package holiday provides the calendar-holiday lookup used by the demand
forecaster's event adjustment.

PURPOSE:
  Restaurant demand spikes on government holidays. The forecaster asks a
  Calendar whether a date is a holiday and scales its numbers accordingly.
  The provider is an external concern, so it sits behind an interface with
  a no-op default.

IMPLEMENTATIONS:
  - Default: no holidays (adjustment disabled)
  - Static: fixed date set, for tests and custom closures
  - US: United States government holidays via rickar/cal

Lookup failures must degrade to "not a holiday", never propagate.
*/
package holiday

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"

	"github.com/warp/inventory-engine/ledger"
)

// UsageFactor is the multiplier applied to forecasted usage on holidays.
const UsageFactor = 1.2

// Calendar answers holiday lookups for the forecaster.
type Calendar interface {
	// IsHoliday reports whether the date is a calendar holiday.
	IsHoliday(date ledger.TimePoint) bool

	// HolidaysIn returns the holiday dates within a year, for reporting.
	HolidaysIn(year int) []ledger.TimePoint
}

// =============================================================================
// DEFAULT - No holidays
// =============================================================================

type Default struct{}

func (Default) IsHoliday(ledger.TimePoint) bool        { return false }
func (Default) HolidaysIn(int) []ledger.TimePoint      { return nil }

// =============================================================================
// STATIC - Fixed date set
// =============================================================================

type Static struct {
	dates map[string]bool
}

func NewStatic(dates ...ledger.TimePoint) *Static {
	s := &Static{dates: make(map[string]bool, len(dates))}
	for _, d := range dates {
		s.dates[d.String()] = true
	}
	return s
}

func (s *Static) IsHoliday(date ledger.TimePoint) bool {
	return s.dates[date.String()]
}

func (s *Static) HolidaysIn(year int) []ledger.TimePoint {
	var out []ledger.TimePoint
	for d := ledger.NewTimePoint(year, time.January, 1); d.Year() == year; d = d.AddDays(1) {
		if s.dates[d.String()] {
			out = append(out, d)
		}
	}
	return out
}

// =============================================================================
// US - United States government holidays
// =============================================================================

type US struct {
	cal *cal.Calendar
}

func NewUS() *US {
	c := &cal.Calendar{}
	c.AddHoliday(us.Holidays...)
	return &US{cal: c}
}

func (u *US) IsHoliday(date ledger.TimePoint) bool {
	actual, observed, _ := u.cal.IsHoliday(date.Time)
	return actual || observed
}

func (u *US) HolidaysIn(year int) []ledger.TimePoint {
	var out []ledger.TimePoint
	for d := ledger.NewTimePoint(year, time.January, 1); d.Year() == year; d = d.AddDays(1) {
		if u.IsHoliday(d) {
			out = append(out, d)
		}
	}
	return out
}
