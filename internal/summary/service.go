package summary

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/jortega/finanzas/internal"
	"github.com/jortega/finanzas/internal/expense"
	"github.com/jortega/finanzas/internal/finance"
)

// How far back the annual prediction looks for one-off history.
const historyYears = 2

// ExpenseReader is the slice of the expense repository the summary
// calculations need. expense.Repository satisfies it.
type ExpenseReader interface {
	GetRecurring(userID int64) ([]*expense.Expense, error)
	GetInWindow(userID int64, from, to time.Time) ([]*expense.Expense, error)
}

type Service struct {
	expenses ExpenseReader
	logger   *slog.Logger
}

func NewService(expenses ExpenseReader, logger *slog.Logger) *Service {
	return &Service{
		expenses: expenses,
		logger:   logger,
	}
}

// MonthlySummary aggregates one calendar month: recurring expenses active
// in the month at their monthly-converted amount plus one-offs recorded
// inside it.
func (s *Service) MonthlySummary(userID int64, year int, month time.Month) (*MonthlySummary, error) {
	from, to := finance.MonthWindow(year, month)

	entries, err := s.collectEntries(userID, from, to)
	if err != nil {
		return nil, err
	}

	result, err := finance.Aggregate(entries, from, to)
	if err != nil {
		return nil, err
	}

	return &MonthlySummary{
		Year:    year,
		Month:   int(month),
		Summary: result,
	}, nil
}

// AnnualSummary groups a year's recorded expenses by month. Amounts are
// raw, not frequency-converted: the view answers "what was written down
// each month", not "what does the month cost".
func (s *Service) AnnualSummary(userID int64, year int) (*AnnualSummary, error) {
	from, to := finance.YearWindow(year)

	expenses, err := s.expenses.GetInWindow(userID, from, to)
	if err != nil {
		s.logger.Error("failed to load annual expenses", "error", err, "user_id", userID, "year", year)
		return nil, internal.NewStorageError("could not load expenses", err)
	}

	result := &AnnualSummary{
		Year:   year,
		Months: make([]MonthTotal, 12),
	}
	for i := range result.Months {
		result.Months[i].Month = i + 1
	}

	for _, e := range expenses {
		idx := int(e.CreatedAt.Month()) - 1
		result.Months[idx].Total += e.Amount
		result.Months[idx].Expenses++
		result.TotalYear += e.Amount
	}

	result.AverageMonth = result.TotalYear / 12
	for _, m := range result.Months {
		if m.Total > result.MaxMonth {
			result.MaxMonth = m.Total
		}
	}

	return result, nil
}

// MonthlyPrediction reports the confirmed recurring load of one month:
// the converted monthly total, its category breakdown, and the list of
// recurring expenses scheduled inside the month.
func (s *Service) MonthlyPrediction(userID int64, year int, month time.Month) (*MonthlyPrediction, error) {
	recurring, err := s.expenses.GetRecurring(userID)
	if err != nil {
		s.logger.Error("failed to load recurring expenses", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("could not load expenses", err)
	}

	_, monthEnd := finance.MonthWindow(year, month)

	var total float64
	byCategory := make(map[string]float64)
	upcoming := make([]UpcomingExpense, 0, len(recurring))
	var upcomingTotal float64

	for _, e := range recurring {
		monthly := finance.MonthlyAmount(e.Amount, e.Frequency)
		total += monthly

		category := e.Category
		if category == "" {
			category = finance.UncategorizedLabel
		}
		byCategory[category] += monthly

		// scheduled in this month once the expense has started
		if e.StartDate.After(monthEnd) {
			continue
		}
		day := e.StartDate.Day()
		if e.Frequency == finance.FrequencyMonthly {
			day = clampDay(day, year, month)
		}
		upcoming = append(upcoming, UpcomingExpense{
			Name:       e.Name,
			Amount:     e.Amount,
			Category:   category,
			DayOfMonth: day,
			Frequency:  e.Frequency,
		})
		upcomingTotal += e.Amount
	}

	breakdown := make([]finance.CategoryShare, 0, len(byCategory))
	for category, amount := range byCategory {
		share := finance.CategoryShare{Category: category, Amount: amount}
		if total > 0 {
			share.Percentage = amount / total * 100
		}
		breakdown = append(breakdown, share)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Amount != breakdown[j].Amount {
			return breakdown[i].Amount > breakdown[j].Amount
		}
		return breakdown[i].Category < breakdown[j].Category
	})

	sort.Slice(upcoming, func(i, j int) bool {
		if upcoming[i].DayOfMonth != upcoming[j].DayOfMonth {
			return upcoming[i].DayOfMonth < upcoming[j].DayOfMonth
		}
		return upcoming[i].Name < upcoming[j].Name
	})

	return &MonthlyPrediction{
		Year:           year,
		Month:          int(month),
		RecurringTotal: total,
		Breakdown:      breakdown,
		Upcoming:       upcoming,
		UpcomingTotal:  upcomingTotal,
	}, nil
}

// AnnualPrediction projects a year's spend: the recurring yearly total
// plus a one-off estimate scaled from up to two prior years of history,
// with a per-month calendar breakdown and category projection. budget,
// when non-nil, adds a budget comparison.
func (s *Service) AnnualPrediction(userID int64, year int, budget *float64) (*AnnualPrediction, error) {
	recurring, err := s.expenses.GetRecurring(userID)
	if err != nil {
		s.logger.Error("failed to load recurring expenses", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("could not load expenses", err)
	}

	histFrom := time.Date(year-historyYears, time.January, 1, 0, 0, 0, 0, time.UTC)
	histTo := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	historical, err := s.expenses.GetInWindow(userID, histFrom, histTo)
	if err != nil {
		s.logger.Error("failed to load historical expenses", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("could not load expenses", err)
	}

	var yearlyRecurring float64
	for _, e := range recurring {
		yearlyRecurring += finance.YearlyAmount(e.Amount, e.Frequency)
	}

	// one-off totals grouped by the year they were recorded
	oneTimeByYear := make(map[int]float64)
	for _, e := range historical {
		if e.IsRecurring {
			continue
		}
		oneTimeByYear[e.CreatedAt.Year()] += e.Amount
	}
	perYearTotals := make([]float64, 0, len(oneTimeByYear))
	for _, t := range oneTimeByYear {
		perYearTotals = append(perYearTotals, t)
	}

	pred := finance.Predict(yearlyRecurring, perYearTotals, len(recurring))

	result := &AnnualPrediction{
		Year:              year,
		TotalRecurring:    yearlyRecurring,
		TotalEstimated:    pred.EstimatedOneTime,
		TotalYear:         pred.Total,
		AverageMonth:      pred.Total / 12,
		Confidence:        pred.Confidence,
		Trend:             pred.Trend,
		MonthlyBreakdown:  s.monthlyBreakdown(recurring, historical, pred.Confidence),
		CategoryBreakdown: categoryBreakdown(recurring),
	}

	if budget != nil {
		comparison := &BudgetComparison{
			Budget:     *budget,
			Predicted:  result.TotalYear,
			Difference: *budget - result.TotalYear,
		}
		if *budget > 0 {
			comparison.Percentage = comparison.Difference / *budget * 100
		}
		result.BudgetComparison = comparison
	}

	return result, nil
}

// monthlyBreakdown spreads the prediction over the calendar: quarterly
// and yearly expenses land on their anniversary months instead of being
// flattened, so the per-month totals show the real payment spikes.
func (s *Service) monthlyBreakdown(recurring, historical []*expense.Expense, confidence int) []MonthBreakdown {
	histYears := historicalYearCount(historical)

	breakdown := make([]MonthBreakdown, 12)
	for i := range breakdown {
		month := time.Month(i + 1)

		var monthRecurring float64
		for _, e := range recurring {
			monthRecurring += finance.MonthlyAmountAt(e.Amount, e.Frequency, month)
		}

		var histForMonth float64
		for _, e := range historical {
			if !e.IsRecurring && e.CreatedAt.Month() == month {
				histForMonth += e.Amount
			}
		}

		avgHistorical := histForMonth / float64(histYears)
		monthOneTime := math.Max(avgHistorical, monthRecurring*0.2)
		total := monthRecurring + monthOneTime

		trend := finance.TrendStable
		if avgHistorical > 0 {
			change := (total - avgHistorical) / avgHistorical
			if change > 0.10 {
				trend = finance.TrendUp
			} else if change < -0.10 {
				trend = finance.TrendDown
			}
		}

		breakdown[i] = MonthBreakdown{
			Month:            i + 1,
			Recurring:        monthRecurring,
			EstimatedOneTime: monthOneTime,
			Total:            total,
			Confidence:       confidence,
			Trend:            trend,
		}
	}
	return breakdown
}

func categoryBreakdown(recurring []*expense.Expense) []CategoryYearly {
	totals := make(map[string]float64)
	var grandTotal float64

	for _, e := range recurring {
		category := e.Category
		if category == "" {
			category = finance.UncategorizedLabel
		}
		yearly := finance.YearlyAmount(e.Amount, e.Frequency)
		totals[category] += yearly
		grandTotal += yearly
	}

	breakdown := make([]CategoryYearly, 0, len(totals))
	for category, yearly := range totals {
		entry := CategoryYearly{
			Category:       category,
			YearlyAmount:   yearly,
			MonthlyAverage: yearly / 12,
		}
		if grandTotal > 0 {
			entry.Percentage = yearly / grandTotal * 100
		}
		breakdown = append(breakdown, entry)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].YearlyAmount != breakdown[j].YearlyAmount {
			return breakdown[i].YearlyAmount > breakdown[j].YearlyAmount
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

func historicalYearCount(historical []*expense.Expense) int {
	years := make(map[int]struct{})
	for _, e := range historical {
		years[e.CreatedAt.Year()] = struct{}{}
	}
	if len(years) == 0 {
		return 1
	}
	return len(years)
}

func (s *Service) collectEntries(userID int64, from, to time.Time) ([]finance.Entry, error) {
	recurring, err := s.expenses.GetRecurring(userID)
	if err != nil {
		s.logger.Error("failed to load recurring expenses", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("could not load expenses", err)
	}

	inWindow, err := s.expenses.GetInWindow(userID, from, to)
	if err != nil {
		s.logger.Error("failed to load window expenses", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("could not load expenses", err)
	}

	entries := expense.ToEntries(recurring)
	for _, e := range inWindow {
		if !e.IsRecurring {
			entries = append(entries, e.ToEntry())
		}
	}
	return entries, nil
}
