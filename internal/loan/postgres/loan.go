package postgres

import (
	"time"

	"github.com/jortega/finanzas/internal"
	"github.com/jortega/finanzas/internal/loan"
	"gorm.io/gorm"
)

// LoanRepository implements the loan.Repository interface using GORM
type LoanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &LoanRepository{db: db}
}

func (r *LoanRepository) Create(l *loan.Loan) error {
	return r.db.Create(l).Error
}

func (r *LoanRepository) GetByID(id int64) (*loan.Loan, error) {
	var l loan.Loan
	err := r.db.Where("id = ?", id).First(&l).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrLoanNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *LoanRepository) GetByUserID(userID int64) ([]*loan.Loan, error) {
	var loans []*loan.Loan
	err := r.db.Where("user_id = ?", userID).
		Order("start_date ASC").
		Find(&loans).Error
	return loans, err
}

func (r *LoanRepository) Update(l *loan.Loan) error {
	l.UpdatedAt = time.Now()
	return r.db.Save(l).Error
}

// Delete removes the loan and its payments in one transaction.
func (r *LoanRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("loan_id = ?", id).Delete(&loan.LoanPayment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&loan.Loan{}, id).Error
	})
}

func (r *LoanRepository) CreatePayment(p *loan.LoanPayment) error {
	return r.db.Create(p).Error
}

func (r *LoanRepository) GetPayment(id int64) (*loan.LoanPayment, error) {
	var p loan.LoanPayment
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrLoanPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *LoanRepository) GetPaymentsByLoanID(loanID int64) ([]*loan.LoanPayment, error) {
	var payments []*loan.LoanPayment
	err := r.db.Where("loan_id = ?", loanID).
		Order("payment_date ASC").
		Find(&payments).Error
	return payments, err
}

func (r *LoanRepository) DeletePayment(id int64) error {
	return r.db.Delete(&loan.LoanPayment{}, id).Error
}
