package expense

import (
	"time"

	"github.com/jortega/finanzas/internal"
	"github.com/jortega/finanzas/internal/finance"
)

// CreateExpenseDTO is the request payload for creating an expense.
type CreateExpenseDTO struct {
	Name        string            `json:"name"`
	Amount      float64           `json:"amount"`
	Frequency   finance.Frequency `json:"frequency"`
	Category    string            `json:"category"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     *time.Time        `json:"end_date,omitempty"`
	IsRecurring bool              `json:"is_recurring"`
	LoanID      *int64            `json:"loan_id,omitempty"`
}

func (dto CreateExpenseDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if dto.Amount < 0 {
		return internal.NewValidationError("amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	if dto.IsRecurring && !dto.Frequency.IsValid() {
		return internal.NewValidationError("frequency must be weekly, monthly, quarterly or yearly", internal.ErrCodeInvalidFrequency)
	}
	if dto.IsRecurring && dto.StartDate.IsZero() {
		return internal.NewValidationError("start date is required for recurring expenses", internal.ErrCodeValidationFailed)
	}
	if dto.EndDate != nil && dto.EndDate.Before(dto.StartDate) {
		return internal.NewValidationError("end date cannot be before start date", internal.ErrCodeInvalidDateRange)
	}
	return nil
}

// UpdateExpenseDTO carries a partial update; nil fields are left unchanged.
type UpdateExpenseDTO struct {
	Name        *string            `json:"name,omitempty"`
	Amount      *float64           `json:"amount,omitempty"`
	Frequency   *finance.Frequency `json:"frequency,omitempty"`
	Category    *string            `json:"category,omitempty"`
	StartDate   *time.Time         `json:"start_date,omitempty"`
	EndDate     *time.Time         `json:"end_date,omitempty"`
	IsRecurring *bool              `json:"is_recurring,omitempty"`
	LoanID      *int64             `json:"loan_id,omitempty"`
}

func (dto UpdateExpenseDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.Amount != nil && *dto.Amount < 0 {
		return internal.NewValidationError("amount cannot be negative", internal.ErrCodeInvalidAmount)
	}
	if dto.Frequency != nil && !dto.Frequency.IsValid() {
		return internal.NewValidationError("frequency must be weekly, monthly, quarterly or yearly", internal.ErrCodeInvalidFrequency)
	}
	return nil
}

// Apply copies the present fields onto the expense and re-checks the
// date-window invariant against the merged result.
func (dto UpdateExpenseDTO) Apply(e *Expense) error {
	if dto.Name != nil {
		e.Name = *dto.Name
	}
	if dto.Amount != nil {
		e.Amount = *dto.Amount
	}
	if dto.Frequency != nil {
		e.Frequency = *dto.Frequency
	}
	if dto.Category != nil {
		e.Category = *dto.Category
	}
	if dto.StartDate != nil {
		e.StartDate = *dto.StartDate
	}
	if dto.EndDate != nil {
		e.EndDate = dto.EndDate
	}
	if dto.IsRecurring != nil {
		e.IsRecurring = *dto.IsRecurring
	}
	if dto.LoanID != nil {
		e.LoanID = dto.LoanID
	}

	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return internal.NewValidationError("end date cannot be before start date", internal.ErrCodeInvalidDateRange)
	}
	e.UpdatedAt = time.Now()
	return nil
}
