package postgres_test

import (
	"testing"
	"time"

	"github.com/jortega/finanzas/internal"
	"github.com/jortega/finanzas/internal/expense"
	expensePostgres "github.com/jortega/finanzas/internal/expense/postgres"
	"github.com/jortega/finanzas/internal/finance"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestExpenseRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Expense Repository Suite")
}

var _ = Describe("ExpenseRepository", func() {
	var (
		db   *gorm.DB
		repo expense.Repository
	)

	newExpense := func(userID int64, name string, recurring bool, createdAt time.Time) *expense.Expense {
		return &expense.Expense{
			UserID:      userID,
			Name:        name,
			Amount:      100,
			Frequency:   finance.FrequencyMonthly,
			Category:    "hogar",
			StartDate:   createdAt,
			IsRecurring: recurring,
			CreatedAt:   createdAt,
			UpdatedAt:   createdAt,
		}
	}

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&expense.Expense{})
		Expect(err).NotTo(HaveOccurred())

		repo = expensePostgres.NewExpenseRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("persists and reads back an expense", func() {
			e := newExpense(1, "Alquiler", true, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
			Expect(repo.Create(e)).To(Succeed())
			Expect(e.ID).To(BeNumerically(">", 0))

			found, err := repo.GetByID(e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Alquiler"))
			Expect(found.IsRecurring).To(BeTrue())
		})

		It("returns a not-found error for a missing id", func() {
			_, err := repo.GetByID(404)
			Expect(err).To(MatchError(internal.ErrExpenseNotFound))
		})
	})

	Describe("GetByUserID", func() {
		It("scopes results to the user and honors limit and offset", func() {
			base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
			for i := 0; i < 3; i++ {
				Expect(repo.Create(newExpense(1, "mine", false, base.AddDate(0, 0, i)))).To(Succeed())
			}
			Expect(repo.Create(newExpense(2, "theirs", false, base))).To(Succeed())

			all, err := repo.GetByUserID(1, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(all).To(HaveLen(3))

			page, err := repo.GetByUserID(1, 2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(1))
		})
	})

	Describe("GetRecurring", func() {
		It("returns only the user's recurring expenses", func() {
			base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
			Expect(repo.Create(newExpense(1, "Alquiler", true, base))).To(Succeed())
			Expect(repo.Create(newExpense(1, "Cena", false, base))).To(Succeed())
			Expect(repo.Create(newExpense(2, "Gimnasio", true, base))).To(Succeed())

			recurring, err := repo.GetRecurring(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(recurring).To(HaveLen(1))
			Expect(recurring[0].Name).To(Equal("Alquiler"))
		})
	})

	Describe("GetInWindow", func() {
		It("returns expenses created inside the window, oldest first", func() {
			jan := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
			feb := time.Date(2025, time.February, 15, 0, 0, 0, 0, time.UTC)
			mar := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
			Expect(repo.Create(newExpense(1, "enero", false, jan))).To(Succeed())
			Expect(repo.Create(newExpense(1, "marzo", false, mar))).To(Succeed())
			Expect(repo.Create(newExpense(1, "febrero", false, feb))).To(Succeed())

			from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
			to := time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC)

			result, err := repo.GetInWindow(1, from, to)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(2))
			Expect(result[0].Name).To(Equal("enero"))
			Expect(result[1].Name).To(Equal("febrero"))
		})
	})

	Describe("Update and Delete", func() {
		It("updates fields in place", func() {
			e := newExpense(1, "Luz", true, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
			Expect(repo.Create(e)).To(Succeed())

			e.Amount = 80
			Expect(repo.Update(e)).To(Succeed())

			found, err := repo.GetByID(e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Amount).To(Equal(80.0))
		})

		It("deletes a row", func() {
			e := newExpense(1, "Luz", true, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
			Expect(repo.Create(e)).To(Succeed())

			Expect(repo.Delete(e.ID)).To(Succeed())

			_, err := repo.GetByID(e.ID)
			Expect(err).To(MatchError(internal.ErrExpenseNotFound))
		})
	})
})
