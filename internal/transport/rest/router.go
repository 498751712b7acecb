package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/jortega/finanzas/internal/auth"
	"github.com/jortega/finanzas/internal/category"
	"github.com/jortega/finanzas/internal/expense"
	"github.com/jortega/finanzas/internal/loan"
	"github.com/jortega/finanzas/internal/summary"
	"github.com/jortega/finanzas/internal/transport/middleware"
	"github.com/jortega/finanzas/internal/transport/swagger"
	"github.com/jortega/finanzas/internal/user"
)

// Handlers bundles the per-domain HTTP handlers for registration.
type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Expense  *expense.Handler
	Category *category.Handler
	Loan     *loan.Handler
	Summary  *summary.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything below is per-user data
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/users/me", h.User.GetCurrentUser)

			pr.Route("/expenses", func(er chi.Router) {
				er.Get("/", h.Expense.ListExpenses)
				er.Post("/", h.Expense.CreateExpense)
				er.Get("/{id}", h.Expense.GetExpense)
				er.Patch("/{id}", h.Expense.UpdateExpense)
				er.Delete("/{id}", h.Expense.DeleteExpense)
			})

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", h.Category.ListCategories)
				cr.Post("/", h.Category.CreateCategory)
				cr.Get("/{id}", h.Category.GetCategory)
				cr.Patch("/{id}", h.Category.UpdateCategory)
				cr.Delete("/{id}", h.Category.DeleteCategory)
			})

			pr.Route("/loans", func(lr chi.Router) {
				lr.Get("/", h.Loan.ListLoans)
				lr.Post("/", h.Loan.CreateLoan)
				lr.Get("/{id}", h.Loan.GetLoan)
				lr.Patch("/{id}", h.Loan.UpdateLoan)
				lr.Delete("/{id}", h.Loan.DeleteLoan)

				lr.Get("/{id}/payments", h.Loan.ListPayments)
				lr.Post("/{id}/payments", h.Loan.AddPayment)
				lr.Delete("/{id}/payments/{paymentID}", h.Loan.DeletePayment)
			})

			pr.Route("/summary", func(sr chi.Router) {
				sr.Get("/monthly", h.Summary.GetMonthlySummary)
				sr.Get("/annual", h.Summary.GetAnnualSummary)
			})

			pr.Route("/predictions", func(sr chi.Router) {
				sr.Get("/monthly", h.Summary.GetMonthlyPrediction)
				sr.Get("/annual", h.Summary.GetAnnualPrediction)
			})
		})
	})
}
