package finance

import (
	"errors"
	"sort"
	"time"
)

// UncategorizedLabel is the sentinel category for expenses without one.
const UncategorizedLabel = "Sin categoría"

var ErrInvalidDateRange = errors.New("invalid date range")

// Entry is the minimal expense view the aggregator works on. The storage
// layer converts its records into entries before calling Aggregate, so
// this package stays free of persistence concerns.
type Entry struct {
	Amount      float64
	Frequency   Frequency
	Category    string
	StartDate   time.Time
	EndDate     time.Time // zero value means open-ended
	IsRecurring bool
	OccurredAt  time.Time // event date for one-off expenses
}

// CategoryShare is one category's slice of a period total.
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Summary is the result of aggregating expenses over one period.
type Summary struct {
	Total      float64         `json:"total"`
	Count      int             `json:"count"`
	ByCategory []CategoryShare `json:"by_category"`
}

// Aggregate computes the recurring cost plus one-off spend for the period
// [periodStart, periodEnd]. Recurring entries whose active window
// intersects the period contribute their frequency-converted amount;
// windows spanning more than one calendar month convert at yearly scale,
// otherwise monthly. One-off entries contribute their raw amount when
// their event date falls inside the period.
func Aggregate(entries []Entry, periodStart, periodEnd time.Time) (Summary, error) {
	if periodStart.IsZero() || periodEnd.IsZero() || periodEnd.Before(periodStart) {
		return Summary{}, ErrInvalidDateRange
	}

	yearly := spansMultipleMonths(periodStart, periodEnd)

	totals := make(map[string]float64)
	var summary Summary

	for _, e := range entries {
		var contribution float64

		if e.IsRecurring {
			if !activeDuring(e, periodStart, periodEnd) {
				continue
			}
			if yearly {
				contribution = YearlyAmount(e.Amount, e.Frequency)
			} else {
				contribution = MonthlyAmount(e.Amount, e.Frequency)
			}
		} else {
			if e.OccurredAt.Before(periodStart) || e.OccurredAt.After(periodEnd) {
				continue
			}
			contribution = e.Amount
		}

		category := e.Category
		if category == "" {
			category = UncategorizedLabel
		}

		totals[category] += contribution
		summary.Total += contribution
		summary.Count++
	}

	summary.ByCategory = make([]CategoryShare, 0, len(totals))
	for category, amount := range totals {
		share := CategoryShare{Category: category, Amount: amount}
		// percentage of zero total is defined as zero, never a division by zero
		if summary.Total > 0 {
			share.Percentage = amount / summary.Total * 100
		}
		summary.ByCategory = append(summary.ByCategory, share)
	}

	sort.Slice(summary.ByCategory, func(i, j int) bool {
		if summary.ByCategory[i].Amount != summary.ByCategory[j].Amount {
			return summary.ByCategory[i].Amount > summary.ByCategory[j].Amount
		}
		return summary.ByCategory[i].Category < summary.ByCategory[j].Category
	})

	return summary, nil
}

// activeDuring reports whether a recurring entry's window
// [StartDate, EndDate] intersects [periodStart, periodEnd].
// A zero EndDate means the expense is open-ended.
func activeDuring(e Entry, periodStart, periodEnd time.Time) bool {
	if !e.StartDate.IsZero() && e.StartDate.After(periodEnd) {
		return false
	}
	if !e.EndDate.IsZero() && e.EndDate.Before(periodStart) {
		return false
	}
	return true
}

func spansMultipleMonths(start, end time.Time) bool {
	return start.Year() != end.Year() || start.Month() != end.Month()
}

// MonthWindow returns the inclusive bounds of a calendar month.
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// YearWindow returns the inclusive bounds of a calendar year.
func YearWindow(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)
	return start, end
}
