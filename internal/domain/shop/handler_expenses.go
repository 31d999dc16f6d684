package shop

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type expenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Notes       string          `json:"notes"`
}

type expenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" swaggertype:"string"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// @Summary Registrar gasto
// @Tags expenses
// @Accept json
// @Produce json
// @Param payload body expenseRequest true "amount > 0, date YYYY-MM-DD"
// @Success 201 {object} expenseResponse
// @Failure 400 {string} string "datos inválidos"
// @Router /expenses [post]
func createExpenseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req expenseRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		e, err := svc.AddExpense(ctx, ExpenseInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toExpenseResponse(e))
	}
}

// @Summary Listar gastos
// @Tags expenses
// @Produce json
// @Success 200 {array} expenseResponse
// @Router /expenses [get]
func listExpensesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.ListExpenses(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapSlice(items, toExpenseResponse))
	}
}

// @Summary Obtener gasto
// @Tags expenses
// @Produce json
// @Param expenseID path string true "ID del gasto"
// @Success 200 {object} expenseResponse
// @Router /expenses/{expenseID} [get]
func getExpenseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		e, err := svc.GetExpense(ctx, chi.URLParam(r, "expenseID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toExpenseResponse(e))
	}
}

// @Summary Actualizar gasto
// @Tags expenses
// @Accept json
// @Produce json
// @Param expenseID path string true "ID del gasto"
// @Param payload body expenseRequest true "Datos del gasto"
// @Success 200 {object} expenseResponse
// @Router /expenses/{expenseID} [put]
func updateExpenseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req expenseRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		e, err := svc.UpdateExpense(ctx, chi.URLParam(r, "expenseID"), ExpenseInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toExpenseResponse(e))
	}
}

// @Summary Eliminar gasto
// @Tags expenses
// @Param expenseID path string true "ID del gasto"
// @Success 204
// @Router /expenses/{expenseID} [delete]
func deleteExpenseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.DeleteExpense(ctx, chi.URLParam(r, "expenseID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toExpenseResponse(e Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		Date:        e.Date,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
