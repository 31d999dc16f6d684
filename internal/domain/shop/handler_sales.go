package shop

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type saleRequest struct {
	ClientID      string          `json:"client_id"` // opcional
	Products      []SaleLine      `json:"products"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Paid          bool            `json:"paid"`
}

type saleResponse struct {
	ID            string          `json:"id"`
	ClientID      string          `json:"client_id,omitempty"`
	Products      []SaleLine      `json:"products"`
	Date          string          `json:"date"`
	Total         decimal.Decimal `json:"total" swaggertype:"string"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Paid          bool            `json:"paid"`
	CreatedAt     time.Time       `json:"created_at"`
}

// createSaleHandler godoc
// @Summary Registrar venta (caja)
// @Description Fecha = hoy. Descuenta stock (piso 0). Si hay cliente y no está paga, el total va al saldo pendiente. payment_method=pending fuerza paid=false.
// @Tags sales
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body saleRequest true "Líneas de productos, total y forma de pago"
// @Success 201 {object} saleResponse
// @Failure 400 {string} string "datos inválidos"
// @Failure 404 {string} string "cliente o producto no encontrado"
// @Router /sales [post]
func createSaleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req saleRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		sale, err := svc.AddSale(ctx, SaleInput{
			ClientID:      req.ClientID,
			Lines:         req.Products,
			Total:         req.Total,
			PaymentMethod: req.PaymentMethod,
			Paid:          req.Paid,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSaleResponse(sale))
	}
}

// @Summary Listar ventas
// @Tags sales
// @Produce json
// @Success 200 {array} saleResponse
// @Router /sales [get]
func listSalesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		items, err := svc.ListSales(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapSlice(items, toSaleResponse))
	}
}

// @Summary Obtener venta
// @Tags sales
// @Produce json
// @Param saleID path string true "ID de la venta"
// @Success 200 {object} saleResponse
// @Router /sales/{saleID} [get]
func getSaleHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sale, err := svc.GetSale(ctx, chi.URLParam(r, "saleID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSaleResponse(sale))
	}
}

func toSaleResponse(s Sale) saleResponse {
	lines := s.Lines
	if lines == nil {
		lines = []SaleLine{}
	}
	return saleResponse{
		ID:            s.ID,
		ClientID:      s.ClientID,
		Products:      lines,
		Date:          s.Date,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Paid:          s.Paid,
		CreatedAt:     s.CreatedAt,
	}
}
