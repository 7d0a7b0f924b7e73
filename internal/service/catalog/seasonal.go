package catalog

import "github.com/mamadbah2/cafepos/internal/domain/models"

// IsAvailable reports whether an item with the given season sells on date.
// Only month and day are compared.
//
// The wrap test looks at months alone: a window such as Mar 20 - Mar 5 is not
// treated as wrapping and therefore never matches. IsAvailableDayAware is the
// variant that wraps on month+day.
func IsAvailable(window *models.SeasonalWindow, date models.EffectiveDate) bool {
	if window == nil {
		return true
	}

	afterStart, beforeEnd := bounds(window, date.MonthDay())
	if window.End.Month < window.Start.Month {
		return afterStart || beforeEnd
	}
	return afterStart && beforeEnd
}

// IsAvailableDayAware is IsAvailable except that any window ending before it
// starts (by month, then day) wraps the year boundary.
func IsAvailableDayAware(window *models.SeasonalWindow, date models.EffectiveDate) bool {
	if window == nil {
		return true
	}

	afterStart, beforeEnd := bounds(window, date.MonthDay())
	if before(window.End, window.Start) {
		return afterStart || beforeEnd
	}
	return afterStart && beforeEnd
}

func bounds(window *models.SeasonalWindow, today models.MonthDay) (afterStart, beforeEnd bool) {
	afterStart = today.Month > window.Start.Month ||
		(today.Month == window.Start.Month && today.Day >= window.Start.Day)
	beforeEnd = today.Month < window.End.Month ||
		(today.Month == window.End.Month && today.Day <= window.End.Day)
	return afterStart, beforeEnd
}

func before(a, b models.MonthDay) bool {
	if a.Month != b.Month {
		return a.Month < b.Month
	}
	return a.Day < b.Day
}
