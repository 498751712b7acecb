package finance

import "time"

// Frequency is how often a recurring expense repeats.
type Frequency string

const (
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Fixed conversion constants. These are deliberate approximations
// (4.33 weeks per month, 30.44 days per month); callers accept the drift.
const (
	WeeksPerMonth   = 4.33
	WeeksPerYear    = 52
	MonthsPerYear   = 12
	QuartersPerYear = 4
	AvgDaysPerMonth = 30.44
)

// IsValid reports whether f is one of the supported frequencies.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// MonthlyAmount converts an amount at the given frequency into its
// equivalent cost for one month. Yearly amounts are spread flat across
// the twelve months. Unknown frequencies contribute 0.
func MonthlyAmount(amount float64, freq Frequency) float64 {
	switch freq {
	case FrequencyWeekly:
		return amount * WeeksPerMonth
	case FrequencyMonthly:
		return amount
	case FrequencyQuarterly:
		return amount / 3
	case FrequencyYearly:
		return amount / MonthsPerYear
	default:
		return 0
	}
}

// YearlyAmount converts an amount at the given frequency into its
// equivalent cost for one year. Unknown frequencies contribute 0.
func YearlyAmount(amount float64, freq Frequency) float64 {
	switch freq {
	case FrequencyWeekly:
		return amount * WeeksPerYear
	case FrequencyMonthly:
		return amount * MonthsPerYear
	case FrequencyQuarterly:
		return amount * QuartersPerYear
	case FrequencyYearly:
		return amount
	default:
		return 0
	}
}

// MonthlyAmountAt is the anniversary-gated variant of MonthlyAmount used
// by the per-month prediction breakdown: quarterly expenses land on
// January, April, July and October, yearly expenses on January only.
// For running totals use MonthlyAmount, which spreads them flat.
func MonthlyAmountAt(amount float64, freq Frequency, month time.Month) float64 {
	switch freq {
	case FrequencyWeekly:
		return amount * WeeksPerMonth
	case FrequencyMonthly:
		return amount
	case FrequencyQuarterly:
		if (int(month)-1)%3 == 0 {
			return amount
		}
		return 0
	case FrequencyYearly:
		if month == time.January {
			return amount
		}
		return 0
	default:
		return 0
	}
}
