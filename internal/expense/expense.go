package expense

import (
	"time"

	"github.com/jortega/finanzas/internal/finance"
)

// Expense is a user-owned spending record. Recurring expenses repeat at
// a fixed frequency inside their [StartDate, EndDate] window; one-off
// expenses are single events dated by CreatedAt.
type Expense struct {
	ID          int64             `json:"id" gorm:"primaryKey"`
	UserID      int64             `json:"user_id" gorm:"column:user_id;not null"`
	Name        string            `json:"name" gorm:"not null"`
	Amount      float64           `json:"amount" gorm:"not null"`
	Frequency   finance.Frequency `json:"frequency" gorm:"type:varchar(16)"`
	Category    string            `json:"category"`
	StartDate   time.Time         `json:"start_date" gorm:"column:start_date;type:date"`
	EndDate     *time.Time        `json:"end_date,omitempty" gorm:"column:end_date;type:date"`
	IsRecurring bool              `json:"is_recurring" gorm:"column:is_recurring"`
	LoanID      *int64            `json:"loan_id,omitempty" gorm:"column:loan_id"`
	CreatedAt   time.Time         `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"column:updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

func (e *Expense) BelongsTo(userID int64) bool {
	return e.UserID == userID
}

// ToEntry converts the stored record into the aggregator's input shape.
func (e *Expense) ToEntry() finance.Entry {
	entry := finance.Entry{
		Amount:      e.Amount,
		Frequency:   e.Frequency,
		Category:    e.Category,
		StartDate:   e.StartDate,
		IsRecurring: e.IsRecurring,
		OccurredAt:  e.CreatedAt,
	}
	if e.EndDate != nil {
		entry.EndDate = *e.EndDate
	}
	return entry
}

// ToEntries converts a slice of records for aggregation.
func ToEntries(expenses []*Expense) []finance.Entry {
	entries := make([]finance.Entry, len(expenses))
	for i, e := range expenses {
		entries[i] = e.ToEntry()
	}
	return entries
}

func New(userID int64, dto CreateExpenseDTO) *Expense {
	now := time.Now()
	return &Expense{
		UserID:      userID,
		Name:        dto.Name,
		Amount:      dto.Amount,
		Frequency:   dto.Frequency,
		Category:    dto.Category,
		StartDate:   dto.StartDate,
		EndDate:     dto.EndDate,
		IsRecurring: dto.IsRecurring,
		LoanID:      dto.LoanID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
