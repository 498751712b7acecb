package summary

import (
	"time"

	"github.com/jortega/finanzas/internal/finance"
)

// MonthlySummary is the aggregation of one calendar month.
type MonthlySummary struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Summary finance.Summary `json:"summary"`
}

// MonthTotal is one month's raw spend inside an annual summary.
type MonthTotal struct {
	Month    int     `json:"month"`
	Total    float64 `json:"total"`
	Expenses int     `json:"expenses"`
}

// AnnualSummary groups a year's expenses by the month they were recorded.
type AnnualSummary struct {
	Year         int          `json:"year"`
	Months       []MonthTotal `json:"months"`
	TotalYear    float64      `json:"total_year"`
	AverageMonth float64      `json:"average_month"`
	MaxMonth     float64      `json:"max_month"`
}

// UpcomingExpense is a recurring expense scheduled inside the selected
// month, with its due day clamped to the month length.
type UpcomingExpense struct {
	Name       string            `json:"name"`
	Amount     float64           `json:"amount"`
	Category   string            `json:"category"`
	DayOfMonth int               `json:"day_of_month"`
	Frequency  finance.Frequency `json:"frequency"`
}

// MonthlyPrediction is the confirmed recurring load of one month.
type MonthlyPrediction struct {
	Year           int                     `json:"year"`
	Month          int                     `json:"month"`
	RecurringTotal float64                 `json:"recurring_total"`
	Breakdown      []finance.CategoryShare `json:"breakdown"`
	Upcoming       []UpcomingExpense       `json:"upcoming"`
	UpcomingTotal  float64                 `json:"upcoming_total"`
}

// MonthBreakdown is one month's slice of an annual prediction.
type MonthBreakdown struct {
	Month            int           `json:"month"`
	Recurring        float64       `json:"recurring"`
	EstimatedOneTime float64       `json:"estimated_one_time"`
	Total            float64       `json:"total"`
	Confidence       int           `json:"confidence"`
	Trend            finance.Trend `json:"trend"`
}

// CategoryYearly is a category's projected yearly recurring spend.
type CategoryYearly struct {
	Category       string  `json:"category"`
	YearlyAmount   float64 `json:"yearly_amount"`
	MonthlyAverage float64 `json:"monthly_average"`
	Percentage     float64 `json:"percentage"`
}

// BudgetComparison relates a yearly budget to the predicted total.
type BudgetComparison struct {
	Budget     float64 `json:"budget"`
	Predicted  float64 `json:"predicted"`
	Difference float64 `json:"difference"`
	Percentage float64 `json:"percentage"`
}

// AnnualPrediction is the projected spend for one year.
type AnnualPrediction struct {
	Year              int               `json:"year"`
	TotalRecurring    float64           `json:"total_recurring"`
	TotalEstimated    float64           `json:"total_estimated"`
	TotalYear         float64           `json:"total_year"`
	AverageMonth      float64           `json:"average_month"`
	Confidence        int               `json:"confidence"`
	Trend             finance.Trend     `json:"trend"`
	MonthlyBreakdown  []MonthBreakdown  `json:"monthly_breakdown"`
	CategoryBreakdown []CategoryYearly  `json:"category_breakdown"`
	BudgetComparison  *BudgetComparison `json:"budget_comparison,omitempty"`
}

func clampDay(day int, year int, month time.Month) int {
	lastDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
	if day > lastDay {
		return lastDay
	}
	return day
}
