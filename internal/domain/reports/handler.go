package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/daily", dailyReportHandler(svc))
		rr.Get("/monthly", monthlyReportHandler(svc))
	})
}

type summaryResponse struct {
	Period   string          `json:"period"`
	Income   decimal.Decimal `json:"income" swaggertype:"string"`
	Expenses decimal.Decimal `json:"expenses" swaggertype:"string"`
	Balance  decimal.Decimal `json:"balance" swaggertype:"string"`
}

// dailyReportHandler godoc
// @Summary Resumen financiero del día
// @Description Ingresos (ventas y atendimentos pagos) y gastos de una fecha. Se recalcula completo en cada llamada.
// @Tags reports
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param date query string true "Fecha YYYY-MM-DD"
// @Success 200 {object} summaryResponse
// @Failure 400 {string} string "date inválida"
// @Failure 401 {string} string "unauthorized"
// @Router /reports/daily [get]
func dailyReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sum, err := svc.Daily(ctx, r.URL.Query().Get("date"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSummaryResponse(sum))
	}
}

// monthlyReportHandler godoc
// @Summary Resumen financiero del mes
// @Tags reports
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param year query int true "Año"
// @Param month query int true "Mes 1-12"
// @Success 200 {object} summaryResponse
// @Failure 400 {string} string "year/month inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /reports/monthly [get]
func monthlyReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		year, err1 := strconv.Atoi(r.URL.Query().Get("year"))
		month, err2 := strconv.Atoi(r.URL.Query().Get("month"))
		if err1 != nil || err2 != nil {
			http.Error(w, "year and month must be integers", http.StatusBadRequest)
			return
		}

		sum, err := svc.Monthly(ctx, year, month)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSummaryResponse(sum))
	}
}

func toSummaryResponse(s Summary) summaryResponse {
	return summaryResponse{
		Period:   s.Period,
		Income:   s.Income,
		Expenses: s.Expenses,
		Balance:  s.Balance,
	}
}

func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidPeriod) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
