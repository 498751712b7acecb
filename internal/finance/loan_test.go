package finance_test

import (
	"time"

	"github.com/jortega/finanzas/internal/finance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Loan Amortization Estimator", func() {
	var terms finance.LoanTerms

	BeforeEach(func() {
		terms = finance.LoanTerms{
			TotalAmount:    1200,
			MonthlyPayment: 100,
			StartDate:      time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		}
	})

	It("rejects a non-positive monthly payment", func() {
		terms.MonthlyPayment = 0
		_, err := finance.EstimateLoan(terms, nil, time.Now())
		Expect(err).To(MatchError(finance.ErrInvalidLoanTerms))

		terms.MonthlyPayment = -50
		_, err = finance.EstimateLoan(terms, nil, time.Now())
		Expect(err).To(MatchError(finance.ErrInvalidLoanTerms))
	})

	It("reports a fresh loan as fully unpaid at its start date", func() {
		est, err := finance.EstimateLoan(terms, nil, terms.StartDate)
		Expect(err).NotTo(HaveOccurred())
		Expect(est.ElapsedMonths).To(Equal(0))
		Expect(est.RemainingMonths).To(Equal(est.TotalMonths))
		Expect(est.TotalPaid).To(BeZero())
		Expect(est.RemainingAmount).To(Equal(terms.TotalAmount))
	})

	It("estimates a half-paid loan six months in", func() {
		asOf := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
		est, err := finance.EstimateLoan(terms, nil, asOf)
		Expect(err).NotTo(HaveOccurred())
		Expect(est.TotalMonths).To(Equal(12))
		Expect(est.ElapsedMonths).To(Equal(6))
		Expect(est.RemainingMonths).To(Equal(6))
		Expect(est.TotalPaid).To(BeNumerically("~", 600, 1e-9))
		Expect(est.RemainingAmount).To(BeNumerically("~", 600, 1e-9))
	})

	It("rounds a non-divisible total up to a final partial month", func() {
		terms.TotalAmount = 1250
		est, err := finance.EstimateLoan(terms, nil, terms.StartDate)
		Expect(err).NotTo(HaveOccurred())
		Expect(est.TotalMonths).To(Equal(13))
	})

	It("subtracts extra payments from the remaining balance", func() {
		asOf := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
		extras := []finance.ExtraPayment{
			{Amount: 200, Date: time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)},
			{Amount: 100, Date: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)},
		}
		est, err := finance.EstimateLoan(terms, extras, asOf)
		Expect(err).NotTo(HaveOccurred())
		Expect(est.TotalPaid).To(BeNumerically("~", 900, 1e-9))
		Expect(est.RemainingAmount).To(BeNumerically("~", 300, 1e-9))
	})

	It("caps total paid at the loan total and floors the remainder at zero", func() {
		asOf := terms.StartDate.AddDate(5, 0, 0)
		extras := []finance.ExtraPayment{{Amount: 5000, Date: terms.StartDate}}
		est, err := finance.EstimateLoan(terms, extras, asOf)
		Expect(err).NotTo(HaveOccurred())
		Expect(est.TotalPaid).To(Equal(terms.TotalAmount))
		Expect(est.RemainingAmount).To(BeZero())
		Expect(est.RemainingMonths).To(BeZero())
	})

	It("clamps elapsed months to zero before the start date", func() {
		asOf := terms.StartDate.AddDate(0, -2, 0)
		est, err := finance.EstimateLoan(terms, nil, asOf)
		Expect(err).NotTo(HaveOccurred())
		Expect(est.ElapsedMonths).To(Equal(0))
		Expect(est.TotalPaid).To(BeZero())
	})

	It("is monotonic in the as-of date", func() {
		previous := finance.Amortization{}
		for monthOffset := 0; monthOffset <= 15; monthOffset++ {
			asOf := terms.StartDate.AddDate(0, monthOffset, 0)
			est, err := finance.EstimateLoan(terms, nil, asOf)
			Expect(err).NotTo(HaveOccurred())
			Expect(est.ElapsedMonths).To(BeNumerically(">=", previous.ElapsedMonths))
			Expect(est.TotalPaid).To(BeNumerically(">=", previous.TotalPaid))
			previous = est
		}
	})

	Describe("LoanEndDate", func() {
		It("derives the payoff date from total, payment and start", func() {
			end, err := finance.LoanEndDate(1200, 100, terms.StartDate)
			Expect(err).NotTo(HaveOccurred())
			Expect(end).To(Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
		})

		It("rounds partial months up", func() {
			end, err := finance.LoanEndDate(1250, 100, terms.StartDate)
			Expect(err).NotTo(HaveOccurred())
			Expect(end).To(Equal(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)))
		})

		It("rejects a non-positive monthly payment", func() {
			_, err := finance.LoanEndDate(1200, 0, terms.StartDate)
			Expect(err).To(MatchError(finance.ErrInvalidLoanTerms))
		})
	})
})
