package shop

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type clientRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Address      string `json:"address"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	Notes        string `json:"notes"`
}

func (req clientRequest) input() ClientInput {
	return ClientInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		Notes:        req.Notes,
	}
}

type clientResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	Address        string          `json:"address"`
	Neighborhood   string          `json:"neighborhood"`
	City           string          `json:"city"`
	PendingBalance decimal.Decimal `json:"pending_balance" swaggertype:"string"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type settleRequest struct {
	Amount        decimal.Decimal `json:"amount" swaggertype:"string"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

type linkResponse struct {
	URL     string `json:"url"`
	Message string `json:"message,omitempty"`
}

// createClientHandler godoc
// @Summary Crear cliente
// @Description Crea un cliente (tutor) con saldo pendiente en cero. name y phone son obligatorios.
// @Tags clients
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body clientRequest true "Datos del cliente"
// @Success 201 {object} clientResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /clients [post]
func createClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req clientRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		c, err := svc.AddClient(ctx, req.input())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toClientResponse(c))
	}
}

// listClientsHandler godoc
// @Summary Listar clientes
// @Tags clients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} clientResponse
// @Failure 401 {string} string "unauthorized"
// @Router /clients [get]
func listClientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		items, err := svc.ListClients(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapSlice(items, toClientResponse))
	}
}

// getClientHandler godoc
// @Summary Obtener cliente
// @Tags clients
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param clientID path string true "ID del cliente"
// @Success 200 {object} clientResponse
// @Failure 404 {string} string "not found"
// @Router /clients/{clientID} [get]
func getClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		c, err := svc.GetClient(ctx, chi.URLParam(r, "clientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toClientResponse(c))
	}
}

// updateClientHandler godoc
// @Summary Actualizar cliente
// @Description Reemplaza los datos de contacto. El saldo pendiente no se edita por esta vía.
// @Tags clients
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param clientID path string true "ID del cliente"
// @Param payload body clientRequest true "Datos del cliente"
// @Success 200 {object} clientResponse
// @Failure 400 {string} string "datos inválidos"
// @Failure 404 {string} string "not found"
// @Router /clients/{clientID} [put]
func updateClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req clientRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		c, err := svc.UpdateClient(ctx, chi.URLParam(r, "clientID"), req.input())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toClientResponse(c))
	}
}

// deleteClientHandler godoc
// @Summary Eliminar cliente
// @Description Falla con 409 si el cliente tiene pets o agendamentos.
// @Tags clients
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param clientID path string true "ID del cliente"
// @Success 204
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "cliente con referencias"
// @Router /clients/{clientID} [delete]
func deleteClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.DeleteClient(ctx, chi.URLParam(r, "clientID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// @Summary Pets del cliente
// @Tags clients
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {array} petResponse
// @Router /clients/{clientID}/pets [get]
func listClientPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		items, err := svc.ListPetsByClient(ctx, chi.URLParam(r, "clientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapSlice(items, toPetResponse))
	}
}

// @Summary Agendamentos del cliente
// @Tags clients
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {array} appointmentResponse
// @Router /clients/{clientID}/appointments [get]
func listClientAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		items, err := svc.ListAppointmentsByClient(ctx, chi.URLParam(r, "clientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapSlice(items, toAppointmentResponse))
	}
}

// @Summary Ventas del cliente
// @Tags clients
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {array} saleResponse
// @Router /clients/{clientID}/sales [get]
func listClientSalesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		items, err := svc.ListSalesByClient(ctx, chi.URLParam(r, "clientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapSlice(items, toSaleResponse))
	}
}

// settleClientHandler godoc
// @Summary Abonar saldo pendiente
// @Description Resta amount del saldo pendiente del cliente. 422 si supera el saldo.
// @Tags clients
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param clientID path string true "ID del cliente"
// @Param payload body settleRequest true "Monto y forma de pago"
// @Success 200 {object} clientResponse
// @Failure 400 {string} string "monto o forma de pago inválidos"
// @Failure 404 {string} string "not found"
// @Failure 422 {string} string "monto mayor al saldo"
// @Router /clients/{clientID}/settle [post]
func settleClientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req settleRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		c, err := svc.SettlePendingPayment(ctx, chi.URLParam(r, "clientID"), req.Amount, req.PaymentMethod)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toClientResponse(c))
	}
}

// @Summary Link de Google Maps con la dirección del cliente
// @Tags clients
// @Produce json
// @Param clientID path string true "ID del cliente"
// @Success 200 {object} linkResponse
// @Failure 404 {string} string "not found"
// @Failure 422 {string} string "cliente sin dirección"
// @Router /clients/{clientID}/map [get]
func clientMapHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		c, err := svc.GetClient(ctx, chi.URLParam(r, "clientID"))
		if err != nil {
			writeError(w, err)
			return
		}
		addr := ClientAddress(c)
		if addr == "" {
			http.Error(w, "client has no address", http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, http.StatusOK, linkResponse{URL: MapsURL(addr)})
	}
}

func toClientResponse(c Client) clientResponse {
	return clientResponse{
		ID:             c.ID,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		Address:        c.Address,
		Neighborhood:   c.Neighborhood,
		City:           c.City,
		PendingBalance: c.PendingBalance,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
