package summary_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jortega/finanzas/internal/expense"
	"github.com/jortega/finanzas/internal/finance"
	"github.com/jortega/finanzas/internal/summary"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSummaryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Summary Service Suite")
}

// MockExpenseReader implements summary.ExpenseReader over a fixed slice
type MockExpenseReader struct {
	expenses []*expense.Expense
}

func (m *MockExpenseReader) GetRecurring(userID int64) ([]*expense.Expense, error) {
	var result []*expense.Expense
	for _, e := range m.expenses {
		if e.UserID == userID && e.IsRecurring {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *MockExpenseReader) GetInWindow(userID int64, from, to time.Time) ([]*expense.Expense, error) {
	var result []*expense.Expense
	for _, e := range m.expenses {
		if e.UserID == userID && !e.CreatedAt.Before(from) && !e.CreatedAt.After(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("Summary Service", func() {
	var (
		reader  *MockExpenseReader
		service *summary.Service
	)

	newService := func(expenses ...*expense.Expense) *summary.Service {
		reader = &MockExpenseReader{expenses: expenses}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		return summary.NewService(reader, logger)
	}

	recurringExpense := func(name string, amount float64, freq finance.Frequency, start time.Time) *expense.Expense {
		return &expense.Expense{
			UserID:      1,
			Name:        name,
			Amount:      amount,
			Frequency:   freq,
			Category:    "hogar",
			StartDate:   start,
			IsRecurring: true,
			CreatedAt:   start,
		}
	}

	oneOffExpense := func(name string, amount float64, createdAt time.Time) *expense.Expense {
		return &expense.Expense{
			UserID:    1,
			Name:      name,
			Amount:    amount,
			Category:  "otros",
			CreatedAt: createdAt,
		}
	}

	Describe("MonthlySummary", func() {
		It("combines converted recurring amounts with in-window one-offs", func() {
			service = newService(
				recurringExpense("Alquiler", 100, finance.FrequencyMonthly, date(2024, time.January, 1)),
				oneOffExpense("Cena", 50, date(2025, time.February, 10)),
				oneOffExpense("Viaje", 70, date(2025, time.March, 5)),
			)

			result, err := service.MonthlySummary(1, 2025, time.February)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Summary.Total).To(BeNumerically("~", 150, 1e-9))
			Expect(result.Summary.Count).To(Equal(2))
		})

		It("excludes recurring expenses that ended before the month", func() {
			ended := date(2024, time.June, 30)
			e := recurringExpense("Gimnasio", 45, finance.FrequencyMonthly, date(2024, time.January, 1))
			e.EndDate = &ended
			service = newService(e)

			result, err := service.MonthlySummary(1, 2025, time.February)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Summary.Total).To(BeZero())
			Expect(result.Summary.Count).To(BeZero())
		})
	})

	Describe("AnnualSummary", func() {
		It("groups raw amounts by the month they were recorded", func() {
			service = newService(
				oneOffExpense("A", 100, date(2025, time.January, 5)),
				oneOffExpense("B", 50, date(2025, time.January, 20)),
				oneOffExpense("C", 200, date(2025, time.March, 1)),
				oneOffExpense("other year", 999, date(2024, time.March, 1)),
			)

			result, err := service.AnnualSummary(1, 2025)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Months).To(HaveLen(12))
			Expect(result.Months[0].Total).To(Equal(150.0))
			Expect(result.Months[0].Expenses).To(Equal(2))
			Expect(result.Months[2].Total).To(Equal(200.0))
			Expect(result.TotalYear).To(Equal(350.0))
			Expect(result.AverageMonth).To(BeNumerically("~", 350.0/12, 1e-9))
			Expect(result.MaxMonth).To(Equal(200.0))
		})
	})

	Describe("MonthlyPrediction", func() {
		It("totals recurring expenses at monthly scale with a category breakdown", func() {
			quarterly := recurringExpense("Seguro", 300, finance.FrequencyQuarterly, date(2024, time.January, 1))
			quarterly.Category = "transporte"
			service = newService(
				recurringExpense("Alquiler", 800, finance.FrequencyMonthly, date(2024, time.January, 15)),
				quarterly,
			)

			result, err := service.MonthlyPrediction(1, 2025, time.May)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.RecurringTotal).To(BeNumerically("~", 900, 1e-9))
			Expect(result.Breakdown).To(HaveLen(2))
			Expect(result.Breakdown[0].Category).To(Equal("hogar"))
			Expect(result.Breakdown[0].Amount).To(BeNumerically("~", 800, 1e-9))
		})

		It("clamps the due day to the month length", func() {
			service = newService(
				recurringExpense("Alquiler", 800, finance.FrequencyMonthly, date(2024, time.January, 31)),
			)

			result, err := service.MonthlyPrediction(1, 2025, time.February)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Upcoming).To(HaveLen(1))
			Expect(result.Upcoming[0].DayOfMonth).To(Equal(28))
		})

		It("omits expenses that have not started by the end of the month", func() {
			service = newService(
				recurringExpense("Futuro", 100, finance.FrequencyMonthly, date(2026, time.January, 1)),
			)

			result, err := service.MonthlyPrediction(1, 2025, time.June)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Upcoming).To(BeEmpty())
			// conversion total still counts every recurring expense
			Expect(result.RecurringTotal).To(BeNumerically("~", 100, 1e-9))
		})
	})

	Describe("AnnualPrediction", func() {
		It("combines the recurring total with a history-scaled one-off estimate", func() {
			service = newService(
				recurringExpense("Alquiler", 100, finance.FrequencyMonthly, date(2023, time.January, 1)),
				oneOffExpense("Reforma", 1000, date(2024, time.June, 10)),
			)

			result, err := service.AnnualPrediction(1, 2025, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.TotalRecurring).To(BeNumerically("~", 1200, 1e-9))
			// max(1000*1.1, 1200*0.2)
			Expect(result.TotalEstimated).To(BeNumerically("~", 1100, 1e-9))
			Expect(result.TotalYear).To(BeNumerically("~", 2300, 1e-9))
			Expect(result.Confidence).To(Equal(65))
			Expect(result.Trend).To(Equal(finance.TrendUp))
		})

		It("places quarterly expenses on anniversary months in the breakdown", func() {
			service = newService(
				recurringExpense("Seguro", 300, finance.FrequencyQuarterly, date(2023, time.January, 1)),
			)

			result, err := service.AnnualPrediction(1, 2025, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.MonthlyBreakdown).To(HaveLen(12))
			// January, April, July, October carry the full amount
			Expect(result.MonthlyBreakdown[0].Recurring).To(BeNumerically("~", 300, 1e-9))
			Expect(result.MonthlyBreakdown[1].Recurring).To(BeZero())
			Expect(result.MonthlyBreakdown[3].Recurring).To(BeNumerically("~", 300, 1e-9))
			Expect(result.MonthlyBreakdown[6].Recurring).To(BeNumerically("~", 300, 1e-9))
			Expect(result.MonthlyBreakdown[9].Recurring).To(BeNumerically("~", 300, 1e-9))
		})

		It("builds the category projection at yearly scale", func() {
			transporte := recurringExpense("Seguro", 300, finance.FrequencyQuarterly, date(2023, time.January, 1))
			transporte.Category = "transporte"
			service = newService(
				recurringExpense("Alquiler", 100, finance.FrequencyMonthly, date(2023, time.January, 1)),
				transporte,
			)

			result, err := service.AnnualPrediction(1, 2025, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.CategoryBreakdown).To(HaveLen(2))
			// hogar 1200/year vs transporte 1200/year, tie broken by name
			Expect(result.CategoryBreakdown[0].Category).To(Equal("hogar"))
			Expect(result.CategoryBreakdown[0].YearlyAmount).To(BeNumerically("~", 1200, 1e-9))
			Expect(result.CategoryBreakdown[0].Percentage).To(BeNumerically("~", 50, 1e-9))
		})

		It("compares against a budget when one is given", func() {
			service = newService(
				recurringExpense("Alquiler", 100, finance.FrequencyMonthly, date(2023, time.January, 1)),
				oneOffExpense("Reforma", 1000, date(2024, time.June, 10)),
			)

			budget := 3000.0
			result, err := service.AnnualPrediction(1, 2025, &budget)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.BudgetComparison).NotTo(BeNil())
			Expect(result.BudgetComparison.Difference).To(BeNumerically("~", 700, 1e-9))
			Expect(result.BudgetComparison.Percentage).To(BeNumerically("~", 700.0/3000*100, 1e-9))
		})

		It("guards the budget percentage against a zero budget", func() {
			service = newService()

			budget := 0.0
			result, err := service.AnnualPrediction(1, 2025, &budget)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.BudgetComparison.Percentage).To(BeZero())
		})
	})
})
