package loan

import (
	"log/slog"
	"time"

	"github.com/jortega/finanzas/internal"
	"github.com/jortega/finanzas/internal/finance"
)

// Repository defines the data access methods for loans and their payments.
type Repository interface {
	Create(loan *Loan) error
	GetByID(id int64) (*Loan, error)
	GetByUserID(userID int64) ([]*Loan, error)
	Update(loan *Loan) error
	Delete(id int64) error

	CreatePayment(payment *LoanPayment) error
	GetPayment(id int64) (*LoanPayment, error)
	GetPaymentsByLoanID(loanID int64) ([]*LoanPayment, error)
	DeletePayment(id int64) error
}

// Clock lets tests pin the reference date for amortization.
type Clock func() time.Time

type Service struct {
	repo   Repository
	logger *slog.Logger
	now    Clock
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the reference-time source, used in tests.
func (s *Service) WithClock(clock Clock) *Service {
	s.now = clock
	return s
}

func (s *Service) CreateLoan(userID int64, dto CreateLoanDTO) (*Loan, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	loan, err := New(userID, dto)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(loan); err != nil {
		s.logger.Error("failed to create loan", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("could not save loan", err)
	}

	s.logger.Info("loan created",
		"loan_id", loan.ID,
		"user_id", userID,
		"total", loan.TotalAmount,
		"monthly", loan.MonthlyPayment)

	return loan, nil
}

// GetLoan retrieves one loan with its payments and current amortization
// state, enforcing ownership.
func (s *Service) GetLoan(id, userID int64) (*LoanDetail, error) {
	loan, err := s.getOwned(id, userID)
	if err != nil {
		return nil, err
	}

	return s.detail(loan)
}

func (s *Service) ListLoans(userID int64) ([]*LoanDetail, error) {
	loans, err := s.repo.GetByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list loans", "error", err, "user_id", userID)
		return nil, internal.NewStorageError("could not load loans", err)
	}

	details := make([]*LoanDetail, 0, len(loans))
	for _, loan := range loans {
		d, err := s.detail(loan)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *Service) UpdateLoan(id, userID int64, dto UpdateLoanDTO) (*Loan, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	loan, err := s.getOwned(id, userID)
	if err != nil {
		return nil, err
	}

	if err := dto.Apply(loan); err != nil {
		return nil, err
	}

	if err := s.repo.Update(loan); err != nil {
		s.logger.Error("failed to update loan", "error", err, "loan_id", id)
		return nil, internal.NewStorageError("could not update loan", err)
	}

	s.logger.Info("loan updated", "loan_id", id, "user_id", userID)
	return loan, nil
}

// DeleteLoan removes the loan together with its payments.
func (s *Service) DeleteLoan(id, userID int64) error {
	if _, err := s.getOwned(id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete loan", "error", err, "loan_id", id)
		return internal.NewStorageError("could not delete loan", err)
	}

	s.logger.Info("loan deleted", "loan_id", id, "user_id", userID)
	return nil
}

// AddPayment registers an extra payment against the loan.
func (s *Service) AddPayment(loanID, userID int64, dto CreatePaymentDTO) (*LoanPayment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.getOwned(loanID, userID); err != nil {
		return nil, err
	}

	payment := &LoanPayment{
		LoanID:      loanID,
		Amount:      dto.Amount,
		PaymentDate: dto.PaymentDate,
		PaymentType: PaymentTypeExtra,
		Note:        dto.Note,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.CreatePayment(payment); err != nil {
		s.logger.Error("failed to create loan payment", "error", err, "loan_id", loanID)
		return nil, internal.NewStorageError("could not save loan payment", err)
	}

	s.logger.Info("loan payment created", "payment_id", payment.ID, "loan_id", loanID, "amount", payment.Amount)
	return payment, nil
}

func (s *Service) ListPayments(loanID, userID int64) ([]*LoanPayment, error) {
	if _, err := s.getOwned(loanID, userID); err != nil {
		return nil, err
	}

	payments, err := s.repo.GetPaymentsByLoanID(loanID)
	if err != nil {
		s.logger.Error("failed to list loan payments", "error", err, "loan_id", loanID)
		return nil, internal.NewStorageError("could not load loan payments", err)
	}

	return payments, nil
}

func (s *Service) DeletePayment(loanID, paymentID, userID int64) error {
	if _, err := s.getOwned(loanID, userID); err != nil {
		return err
	}

	payment, err := s.repo.GetPayment(paymentID)
	if err != nil {
		return internal.ErrLoanPaymentNotFound
	}
	if payment.LoanID != loanID {
		return internal.ErrLoanPaymentNotFound
	}

	if err := s.repo.DeletePayment(paymentID); err != nil {
		s.logger.Error("failed to delete loan payment", "error", err, "payment_id", paymentID)
		return internal.NewStorageError("could not delete loan payment", err)
	}

	s.logger.Info("loan payment deleted", "payment_id", paymentID, "loan_id", loanID)
	return nil
}

func (s *Service) getOwned(id, userID int64) (*Loan, error) {
	loan, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrLoanNotFound
	}

	if !loan.BelongsTo(userID) {
		s.logger.Warn("cross-user loan access denied", "loan_id", id, "user_id", userID)
		return nil, internal.ErrUnauthorizedAccess
	}

	return loan, nil
}

func (s *Service) detail(loan *Loan) (*LoanDetail, error) {
	payments, err := s.repo.GetPaymentsByLoanID(loan.ID)
	if err != nil {
		s.logger.Error("failed to load loan payments", "error", err, "loan_id", loan.ID)
		return nil, internal.NewStorageError("could not load loan payments", err)
	}

	amort, err := finance.EstimateLoan(loan.Terms(), ExtraPayments(payments), s.now())
	if err != nil {
		return nil, err
	}

	return &LoanDetail{
		Loan:         loan,
		Amortization: amort,
		Payments:     payments,
	}, nil
}
