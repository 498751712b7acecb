package finance

import (
	"errors"
	"math"
	"time"
)

var ErrInvalidLoanTerms = errors.New("invalid loan terms: monthly payment must be positive")

// LoanTerms are the fixed parameters of an interest-free loan.
type LoanTerms struct {
	TotalAmount    float64
	MonthlyPayment float64
	StartDate      time.Time
}

// ExtraPayment is a lump-sum contribution outside the monthly schedule.
type ExtraPayment struct {
	Amount float64
	Date   time.Time
}

// Amortization is the estimated state of a loan at a point in time.
type Amortization struct {
	TotalMonths     int     `json:"total_months"`
	ElapsedMonths   int     `json:"elapsed_months"`
	RemainingMonths int     `json:"remaining_months"`
	TotalPaid       float64 `json:"total_paid"`
	RemainingAmount float64 `json:"remaining_amount"`
}

// EstimateLoan computes how far along a loan is as of the given date.
// Elapsed time uses the 30.44 average-days-per-month constant rather than
// calendar month arithmetic, so results drift slightly around month
// boundaries. Scheduled payments are capped at the loan total, and extra
// payments reduce the remaining balance on top of the schedule.
func EstimateLoan(terms LoanTerms, extras []ExtraPayment, asOf time.Time) (Amortization, error) {
	if terms.MonthlyPayment <= 0 {
		return Amortization{}, ErrInvalidLoanTerms
	}

	totalMonths := int(math.Ceil(terms.TotalAmount / terms.MonthlyPayment))

	elapsedDays := asOf.Sub(terms.StartDate).Hours() / 24
	elapsedMonths := int(math.Ceil(elapsedDays / AvgDaysPerMonth))
	if elapsedMonths < 0 {
		elapsedMonths = 0
	}

	remainingMonths := totalMonths - elapsedMonths
	if remainingMonths < 0 {
		remainingMonths = 0
	}

	paidBySchedule := math.Min(terms.TotalAmount, float64(elapsedMonths)*terms.MonthlyPayment)

	var totalExtra float64
	for _, p := range extras {
		totalExtra += p.Amount
	}

	totalPaid := math.Min(terms.TotalAmount, paidBySchedule+totalExtra)
	remaining := math.Max(0, terms.TotalAmount-totalPaid)

	return Amortization{
		TotalMonths:     totalMonths,
		ElapsedMonths:   elapsedMonths,
		RemainingMonths: remainingMonths,
		TotalPaid:       totalPaid,
		RemainingAmount: remaining,
	}, nil
}

// LoanEndDate derives the scheduled payoff date from the loan terms:
// start date plus ceil(total / monthly) calendar months. It is computed
// when the loan is created or edited and is not re-derived after extra
// payments.
func LoanEndDate(totalAmount, monthlyPayment float64, start time.Time) (time.Time, error) {
	if monthlyPayment <= 0 {
		return time.Time{}, ErrInvalidLoanTerms
	}
	months := int(math.Ceil(totalAmount / monthlyPayment))
	return start.AddDate(0, months, 0), nil
}
