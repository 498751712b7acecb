package expense

import (
	"log/slog"
	"time"

	"github.com/jortega/finanzas/internal"
)

// Repository defines the data access methods for expenses. Every query
// that can cross user boundaries takes the owner id explicitly.
type Repository interface {
	Create(expense *Expense) error
	GetByID(id int64) (*Expense, error)
	GetByUserID(userID int64, limit, offset int) ([]*Expense, error)
	GetRecurring(userID int64) ([]*Expense, error)
	GetInWindow(userID int64, from, to time.Time) ([]*Expense, error)
	Update(expense *Expense) error
	Delete(id int64) error
}

// Service handles expense business logic
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateExpense(userID int64, dto CreateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	expense := New(userID, dto)
	if err := s.repo.Create(expense); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("could not save expense", err)
	}

	s.logger.Info("expense created",
		"expense_id", expense.ID,
		"user_id", userID,
		"amount", expense.Amount,
		"recurring", expense.IsRecurring)

	return expense, nil
}

// GetExpense retrieves one expense, enforcing ownership.
func (s *Service) GetExpense(id, userID int64) (*Expense, error) {
	expense, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, internal.ErrExpenseNotFound
	}

	if !expense.BelongsTo(userID) {
		s.logger.Warn("cross-user expense access denied", "expense_id", id, "user_id", userID)
		return nil, internal.ErrUnauthorizedAccess
	}

	return expense, nil
}

func (s *Service) ListExpenses(userID int64, limit, offset int) ([]*Expense, error) {
	expenses, err := s.repo.GetByUserID(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("could not load expenses", err)
	}

	return expenses, nil
}

func (s *Service) UpdateExpense(id, userID int64, dto UpdateExpenseDTO) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	expense, err := s.GetExpense(id, userID)
	if err != nil {
		return nil, err
	}

	if err := dto.Apply(expense); err != nil {
		return nil, err
	}

	if err := s.repo.Update(expense); err != nil {
		s.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, internal.NewStorageError("could not update expense", err)
	}

	s.logger.Info("expense updated", "expense_id", id, "user_id", userID)
	return expense, nil
}

func (s *Service) DeleteExpense(id, userID int64) error {
	if _, err := s.GetExpense(id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return internal.NewStorageError("could not delete expense", err)
	}

	s.logger.Info("expense deleted", "expense_id", id, "user_id", userID)
	return nil
}
