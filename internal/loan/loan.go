package loan

import (
	"time"

	"github.com/jortega/finanzas/internal/finance"
)

// Loan is a zero-interest repayment plan: a total amount paid back in
// fixed monthly installments, optionally shortened by extra payments.
type Loan struct {
	ID             int64     `json:"id" gorm:"primaryKey"`
	UserID         int64     `json:"user_id" gorm:"not null;index"`
	Name           string    `json:"name" gorm:"not null"`
	TotalAmount    float64   `json:"total_amount" gorm:"not null"`
	MonthlyPayment float64   `json:"monthly_payment" gorm:"not null"`
	StartDate      time.Time `json:"start_date" gorm:"not null"`
	EndDate        time.Time `json:"end_date" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Loan) TableName() string {
	return "loans"
}

func (l *Loan) BelongsTo(userID int64) bool {
	return l.UserID == userID
}

// Terms maps the stored loan onto the calculation input.
func (l *Loan) Terms() finance.LoanTerms {
	return finance.LoanTerms{
		TotalAmount:    l.TotalAmount,
		MonthlyPayment: l.MonthlyPayment,
		StartDate:      l.StartDate,
	}
}

// RecalculateEndDate keeps the stored end date consistent with the terms.
// Called whenever total or monthly payment change. Fails with
// finance.ErrInvalidLoanTerms when the monthly payment is not positive.
func (l *Loan) RecalculateEndDate() error {
	end, err := finance.LoanEndDate(l.TotalAmount, l.MonthlyPayment, l.StartDate)
	if err != nil {
		return err
	}
	l.EndDate = end
	return nil
}

// LoanPayment records one extra payment against a loan. Payments are
// immutable: they are created and deleted, never edited.
type LoanPayment struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	LoanID      int64     `json:"loan_id" gorm:"not null;index"`
	Amount      float64   `json:"amount" gorm:"not null"`
	PaymentDate time.Time `json:"payment_date" gorm:"not null"`
	PaymentType string    `json:"payment_type" gorm:"not null;default:extra"`
	Note        string    `json:"note"`
	CreatedAt   time.Time `json:"created_at"`
}

func (LoanPayment) TableName() string {
	return "loan_payments"
}

const PaymentTypeExtra = "extra"

func New(userID int64, dto CreateLoanDTO) (*Loan, error) {
	now := time.Now()
	l := &Loan{
		UserID:         userID,
		Name:           dto.Name,
		TotalAmount:    dto.TotalAmount,
		MonthlyPayment: dto.MonthlyPayment,
		StartDate:      dto.StartDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := l.RecalculateEndDate(); err != nil {
		return nil, err
	}
	return l, nil
}

// ExtraPayments converts stored payments to the calculation input.
func ExtraPayments(payments []*LoanPayment) []finance.ExtraPayment {
	extras := make([]finance.ExtraPayment, 0, len(payments))
	for _, p := range payments {
		extras = append(extras, finance.ExtraPayment{
			Amount: p.Amount,
			Date:   p.PaymentDate,
		})
	}
	return extras
}
