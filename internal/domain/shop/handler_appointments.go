package shop

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createAppointmentRequest struct {
	ClientID   string   `json:"client_id"`
	PetID      string   `json:"pet_id"`
	Date       string   `json:"date"` // YYYY-MM-DD
	Time       string   `json:"time"` // HH:MM
	ServiceIDs []string `json:"services"`
	TaxiDogID  string   `json:"taxi_dog_id"`
	Notes      string   `json:"notes"`
}

type updateAppointmentRequest struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Notes string `json:"notes"`
}

type paymentRequest struct {
	PaymentMethod PaymentMethod `json:"payment_method"`
}

type appointmentResponse struct {
	ID            string            `json:"id"`
	ClientID      string            `json:"client_id"`
	PetID         string            `json:"pet_id"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	ServiceIDs    []string          `json:"services"`
	TaxiDogID     string            `json:"taxi_dog_id,omitempty"`
	Status        AppointmentStatus `json:"status"`
	Price         decimal.Decimal   `json:"price" swaggertype:"string"`
	Paid          bool              `json:"paid"`
	PaymentMethod PaymentMethod     `json:"payment_method,omitempty"`
	Notes         string            `json:"notes"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// createAppointmentHandler godoc
// @Summary Crear agendamento
// @Description Cliente, pet, servicios y taxi dog (opcional) tienen que existir. El precio es la suma de servicios + taxi dog y queda congelado. Estado inicial agendado.
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body createAppointmentRequest true "Datos del agendamento"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "datos inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "cliente, pet, servicio o taxi dog no encontrado"
// @Router /appointments [post]
func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req createAppointmentRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		a, err := svc.AddAppointment(ctx, AppointmentInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar agendamentos
// @Description Un solo filtro a la vez: status, date o client_id. order=desc devuelve el historial (más recientes primero).
// @Tags appointments
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param status query string false "agendado | confirmado | para_retirar | finalizado"
// @Param date query string false "YYYY-MM-DD"
// @Param client_id query string false "ID del cliente"
// @Param order query string false "desc"
// @Success 200 {array} appointmentResponse
// @Failure 400 {string} string "filtro inválido"
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		q := r.URL.Query()
		var (
			items []Appointment
			err   error
		)
		switch {
		case q.Get("status") != "":
			items, err = svc.ListAppointmentsByStatus(ctx, AppointmentStatus(q.Get("status")))
		case q.Get("date") != "":
			items, err = svc.ListAppointmentsByDate(ctx, q.Get("date"))
		case q.Get("client_id") != "":
			items, err = svc.ListAppointmentsByClient(ctx, q.Get("client_id"))
		default:
			items, err = svc.ListAppointments(ctx)
		}
		if err != nil {
			writeError(w, err)
			return
		}

		if strings.EqualFold(q.Get("order"), "desc") {
			SortByDateDesc(items)
		}
		writeJSON(w, http.StatusOK, mapSlice(items, toAppointmentResponse))
	}
}

// @Summary Obtener agendamento
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID del agendamento"
// @Success 200 {object} appointmentResponse
// @Failure 404 {string} string "not found"
// @Router /appointments/{appointmentID} [get]
func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		a, err := svc.GetAppointment(ctx, chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// updateAppointmentHandler godoc
// @Summary Reprogramar agendamento
// @Description Solo cambia fecha, hora y notas. 409 si está finalizado.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID del agendamento"
// @Param payload body updateAppointmentRequest true "Fecha, hora, notas"
// @Success 200 {object} appointmentResponse
// @Failure 400 {string} string "datos inválidos"
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "agendamento finalizado"
// @Router /appointments/{appointmentID} [put]
func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req updateAppointmentRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		a, err := svc.UpdateAppointment(ctx, chi.URLParam(r, "appointmentID"), AppointmentUpdate(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// @Summary Eliminar agendamento
// @Description 409 si está finalizado.
// @Tags appointments
// @Param appointmentID path string true "ID del agendamento"
// @Success 204
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "agendamento finalizado"
// @Router /appointments/{appointmentID} [delete]
func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.DeleteAppointment(ctx, chi.URLParam(r, "appointmentID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// @Summary Confirmar agendamento (agendado -> confirmado)
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID del agendamento"
// @Success 200 {object} appointmentResponse
// @Failure 409 {string} string "transición inválida"
// @Router /appointments/{appointmentID}/confirm [post]
func confirmAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		a, err := svc.ConfirmAppointment(ctx, chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// @Summary Marcar pet listo para retirar
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID del agendamento"
// @Success 200 {object} appointmentResponse
// @Failure 409 {string} string "transición inválida"
// @Router /appointments/{appointmentID}/ready [post]
func readyAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		a, err := svc.MarkAppointmentReady(ctx, chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// finalizeAppointmentHandler godoc
// @Summary Finalizar atendimento
// @Description Pasa a finalizado y registra la forma de pago. Con pending el precio se suma al saldo pendiente del cliente.
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param appointmentID path string true "ID del agendamento"
// @Param payload body paymentRequest true "credit | debit | cash | pix | pending"
// @Success 200 {object} appointmentResponse
// @Failure 400 {string} string "forma de pago inválida"
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "ya finalizado"
// @Router /appointments/{appointmentID}/finalize [post]
func finalizeAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req paymentRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		a, err := svc.FinalizeAppointment(ctx, chi.URLParam(r, "appointmentID"), req.PaymentMethod)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// @Summary Registrar pago del agendamento
// @Description No cambia el estado. Con pending suma el precio al saldo del cliente.
// @Tags appointments
// @Accept json
// @Produce json
// @Param appointmentID path string true "ID del agendamento"
// @Param payload body paymentRequest true "Forma de pago"
// @Success 200 {object} appointmentResponse
// @Router /appointments/{appointmentID}/payment [post]
func registerPaymentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req paymentRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		a, err := svc.RegisterPayment(ctx, chi.URLParam(r, "appointmentID"), req.PaymentMethod)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// @Summary Link de WhatsApp con el recordatorio
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID del agendamento"
// @Success 200 {object} linkResponse
// @Router /appointments/{appointmentID}/reminder [get]
func reminderMessageHandler(svc *Service) http.HandlerFunc {
	return messageLinkHandler(svc, func(a Appointment, c Client, p Pet) string {
		return ReminderMessage(c.Name, p.Name, a.Date, a.Time)
	})
}

// @Summary Link de WhatsApp avisando que el pet está listo
// @Tags appointments
// @Produce json
// @Param appointmentID path string true "ID del agendamento"
// @Success 200 {object} linkResponse
// @Router /appointments/{appointmentID}/ready-message [get]
func readyMessageHandler(svc *Service) http.HandlerFunc {
	return messageLinkHandler(svc, func(_ Appointment, c Client, p Pet) string {
		return PetReadyMessage(c.Name, p.Name)
	})
}

func messageLinkHandler(svc *Service, build func(Appointment, Client, Pet) string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		a, err := svc.GetAppointment(ctx, chi.URLParam(r, "appointmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		c, err := svc.GetClient(ctx, a.ClientID)
		if err != nil {
			writeError(w, err)
			return
		}
		p, err := svc.GetPet(ctx, a.PetID)
		if err != nil {
			writeError(w, err)
			return
		}
		if strings.TrimSpace(c.Phone) == "" {
			writeError(w, errors.Join(ErrInvalidInput, errors.New("client has no phone")))
			return
		}

		msg := build(a, c, p)
		writeJSON(w, http.StatusOK, linkResponse{URL: WhatsAppURL(c.Phone, msg), Message: msg})
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	ids := a.ServiceIDs
	if ids == nil {
		ids = []string{}
	}
	return appointmentResponse{
		ID:            a.ID,
		ClientID:      a.ClientID,
		PetID:         a.PetID,
		Date:          a.Date,
		Time:          a.Time,
		ServiceIDs:    ids,
		TaxiDogID:     a.TaxiDogID,
		Status:        a.Status,
		Price:         a.Price,
		Paid:          a.Paid,
		PaymentMethod: a.PaymentMethod,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
