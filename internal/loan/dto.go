package loan

import (
	"time"

	"github.com/jortega/finanzas/internal"
	"github.com/jortega/finanzas/internal/finance"
)

type CreateLoanDTO struct {
	Name           string    `json:"name"`
	TotalAmount    float64   `json:"total_amount"`
	MonthlyPayment float64   `json:"monthly_payment"`
	StartDate      time.Time `json:"start_date"`
}

func (dto CreateLoanDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.TotalAmount <= 0 {
		return internal.NewValidationError("total amount must be positive", internal.ErrCodeInvalidLoanTerms)
	}
	if dto.MonthlyPayment <= 0 {
		return internal.NewValidationError("monthly payment must be positive", internal.ErrCodeInvalidLoanTerms)
	}
	if dto.StartDate.IsZero() {
		return internal.NewValidationError("start date is required", internal.ErrCodeInvalidLoanTerms)
	}
	return nil
}

type UpdateLoanDTO struct {
	Name           *string    `json:"name,omitempty"`
	TotalAmount    *float64   `json:"total_amount,omitempty"`
	MonthlyPayment *float64   `json:"monthly_payment,omitempty"`
	StartDate      *time.Time `json:"start_date,omitempty"`
}

func (dto UpdateLoanDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.TotalAmount != nil && *dto.TotalAmount <= 0 {
		return internal.NewValidationError("total amount must be positive", internal.ErrCodeInvalidLoanTerms)
	}
	if dto.MonthlyPayment != nil && *dto.MonthlyPayment <= 0 {
		return internal.NewValidationError("monthly payment must be positive", internal.ErrCodeInvalidLoanTerms)
	}
	return nil
}

// Apply copies the present fields and recomputes the end date when any
// term changed.
func (dto UpdateLoanDTO) Apply(l *Loan) error {
	termsChanged := false
	if dto.Name != nil {
		l.Name = *dto.Name
	}
	if dto.TotalAmount != nil {
		l.TotalAmount = *dto.TotalAmount
		termsChanged = true
	}
	if dto.MonthlyPayment != nil {
		l.MonthlyPayment = *dto.MonthlyPayment
		termsChanged = true
	}
	if dto.StartDate != nil {
		l.StartDate = *dto.StartDate
		termsChanged = true
	}
	if termsChanged {
		if err := l.RecalculateEndDate(); err != nil {
			return err
		}
	}
	l.UpdatedAt = time.Now()
	return nil
}

type CreatePaymentDTO struct {
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Note        string    `json:"note"`
}

func (dto CreatePaymentDTO) Validate() error {
	if dto.Amount <= 0 {
		return internal.NewValidationError("payment amount must be positive", internal.ErrCodeInvalidAmount)
	}
	if dto.PaymentDate.IsZero() {
		return internal.NewValidationError("payment date is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// LoanDetail is a loan with its live repayment state.
type LoanDetail struct {
	*Loan
	Amortization finance.Amortization `json:"amortization"`
	Payments     []*LoanPayment       `json:"payments"`
}
