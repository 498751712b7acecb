package summary

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jortega/finanzas/internal/auth"
	"github.com/jortega/finanzas/internal/transport"
)

type ServiceAPI interface {
	MonthlySummary(userID int64, year int, month time.Month) (*MonthlySummary, error)
	AnnualSummary(userID int64, year int) (*AnnualSummary, error)
	MonthlyPrediction(userID int64, year int, month time.Month) (*MonthlyPrediction, error)
	AnnualPrediction(userID int64, year int, budget *float64) (*AnnualPrediction, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(base *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: base,
		Service:     service,
	}
}

func (h *Handler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year, month, ok := yearMonthParams(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid year or month")
		return
	}

	result, err := h.Service.MonthlySummary(user.ID, year, month)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetAnnualSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year, ok := yearParam(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid year")
		return
	}

	result, err := h.Service.AnnualSummary(user.ID, year)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetMonthlyPrediction(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year, month, ok := yearMonthParams(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid year or month")
		return
	}

	result, err := h.Service.MonthlyPrediction(user.ID, year, month)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetAnnualPrediction(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year, ok := yearParam(r)
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid year")
		return
	}

	var budget *float64
	if budgetStr := r.URL.Query().Get("budget"); budgetStr != "" {
		b, err := strconv.ParseFloat(budgetStr, 64)
		if err != nil || b < 0 {
			h.WriteError(w, http.StatusBadRequest, "invalid budget")
			return
		}
		budget = &b
	}

	result, err := h.Service.AnnualPrediction(user.ID, year, budget)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// yearParam reads ?year=, defaulting to the current year.
func yearParam(r *http.Request) (int, bool) {
	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		return time.Now().Year(), true
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1970 || year > 9999 {
		return 0, false
	}
	return year, true
}

// yearMonthParams reads ?year=&month=, defaulting to the current month.
func yearMonthParams(r *http.Request) (int, time.Month, bool) {
	year, ok := yearParam(r)
	if !ok {
		return 0, 0, false
	}

	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		return year, time.Now().Month(), true
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}
