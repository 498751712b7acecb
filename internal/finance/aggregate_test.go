package finance_test

import (
	"time"

	"github.com/jortega/finanzas/internal/finance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Expense Aggregator", func() {
	var monthStart, monthEnd, yearStart, yearEnd time.Time

	BeforeEach(func() {
		monthStart, monthEnd = finance.MonthWindow(2025, time.March)
		yearStart, yearEnd = finance.YearWindow(2025)
	})

	recurring := func(amount float64, freq finance.Frequency, category string) finance.Entry {
		return finance.Entry{
			Amount:      amount,
			Frequency:   freq,
			Category:    category,
			StartDate:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			IsRecurring: true,
		}
	}

	Context("with no expenses", func() {
		It("returns an empty summary", func() {
			summary, err := finance.Aggregate(nil, monthStart, monthEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Total).To(BeZero())
			Expect(summary.Count).To(BeZero())
			Expect(summary.ByCategory).To(BeEmpty())
		})
	})

	Context("with an inverted or zero date range", func() {
		It("fails instead of silently producing garbage", func() {
			_, err := finance.Aggregate(nil, monthEnd, monthStart)
			Expect(err).To(MatchError(finance.ErrInvalidDateRange))

			_, err = finance.Aggregate(nil, time.Time{}, monthEnd)
			Expect(err).To(MatchError(finance.ErrInvalidDateRange))

			_, err = finance.Aggregate(nil, monthStart, time.Time{})
			Expect(err).To(MatchError(finance.ErrInvalidDateRange))
		})
	})

	Context("with recurring expenses", func() {
		It("contributes the raw amount over a single month", func() {
			summary, err := finance.Aggregate([]finance.Entry{
				recurring(12, finance.FrequencyMonthly, "hogar"),
			}, monthStart, monthEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Total).To(BeNumerically("~", 12, 1e-9))
			Expect(summary.Count).To(Equal(1))
		})

		It("contributes twelve times the amount over a year", func() {
			summary, err := finance.Aggregate([]finance.Entry{
				recurring(12, finance.FrequencyMonthly, "hogar"),
			}, yearStart, yearEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Total).To(BeNumerically("~", 144, 1e-9))
		})

		// Flat-divide policy: a yearly expense contributes total/12 to any
		// month, not just its anniversary month. The anniversary-gated
		// variant lives in MonthlyAmountAt and is only used for the
		// prediction breakdown.
		It("spreads yearly expenses flat across months", func() {
			summary, err := finance.Aggregate([]finance.Entry{
				recurring(120, finance.FrequencyYearly, "servicios"),
			}, monthStart, monthEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Total).To(BeNumerically("~", 10, 1e-9))
		})

		It("excludes expenses whose window ended before the period", func() {
			e := recurring(50, finance.FrequencyMonthly, "ocio")
			e.EndDate = time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
			summary, err := finance.Aggregate([]finance.Entry{e}, monthStart, monthEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Count).To(BeZero())
		})

		It("excludes expenses that start after the period", func() {
			e := recurring(50, finance.FrequencyMonthly, "ocio")
			e.StartDate = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
			summary, err := finance.Aggregate([]finance.Entry{e}, monthStart, monthEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Count).To(BeZero())
		})

		It("treats a zero end date as open-ended", func() {
			summary, err := finance.Aggregate([]finance.Entry{
				recurring(50, finance.FrequencyMonthly, "ocio"),
			}, monthStart, monthEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Count).To(Equal(1))
		})
	})

	Context("with one-off expenses", func() {
		It("includes them only when the event date falls inside the period", func() {
			inside := finance.Entry{
				Amount:     65,
				Category:   "transporte",
				OccurredAt: time.Date(2025, time.March, 8, 0, 0, 0, 0, time.UTC),
			}
			outside := finance.Entry{
				Amount:     120,
				Category:   "alimentación",
				OccurredAt: time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC),
			}
			summary, err := finance.Aggregate([]finance.Entry{inside, outside}, monthStart, monthEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Total).To(BeNumerically("~", 65, 1e-9))
			Expect(summary.Count).To(Equal(1))
		})
	})

	Context("category breakdown", func() {
		It("groups contributions and computes percentages summing to 100", func() {
			summary, err := finance.Aggregate([]finance.Entry{
				recurring(800, finance.FrequencyMonthly, "hogar"),
				recurring(15.99, finance.FrequencyMonthly, "ocio"),
				recurring(45, finance.FrequencyMonthly, "ocio"),
				recurring(39.99, finance.FrequencyMonthly, "servicios"),
			}, monthStart, monthEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.ByCategory).To(HaveLen(3))

			var pctSum float64
			for _, share := range summary.ByCategory {
				pctSum += share.Percentage
			}
			Expect(pctSum).To(BeNumerically("~", 100, 1e-6))
		})

		It("orders categories by descending amount", func() {
			summary, err := finance.Aggregate([]finance.Entry{
				recurring(10, finance.FrequencyMonthly, "ocio"),
				recurring(800, finance.FrequencyMonthly, "hogar"),
			}, monthStart, monthEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.ByCategory[0].Category).To(Equal("hogar"))
			Expect(summary.ByCategory[1].Category).To(Equal("ocio"))
		})

		It("labels missing categories with the sentinel", func() {
			summary, err := finance.Aggregate([]finance.Entry{
				recurring(20, finance.FrequencyMonthly, ""),
			}, monthStart, monthEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.ByCategory[0].Category).To(Equal(finance.UncategorizedLabel))
		})

		It("reports zero percentages when the total is zero", func() {
			summary, err := finance.Aggregate([]finance.Entry{
				recurring(0, finance.FrequencyMonthly, "hogar"),
			}, monthStart, monthEnd)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Total).To(BeZero())
			for _, share := range summary.ByCategory {
				Expect(share.Percentage).To(BeZero())
			}
		})
	})
})
