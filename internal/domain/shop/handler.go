package shop

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta todas las rutas de negocio. El router las monta detrás
// de middleware.RequireUser: el usuario dueño ya viene en el contexto.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/clients", func(cr chi.Router) {
		cr.Post("/", createClientHandler(svc))
		cr.Get("/", listClientsHandler(svc))
		cr.Get("/{clientID}", getClientHandler(svc))
		cr.Put("/{clientID}", updateClientHandler(svc))
		cr.Delete("/{clientID}", deleteClientHandler(svc))

		cr.Get("/{clientID}/pets", listClientPetsHandler(svc))
		cr.Get("/{clientID}/appointments", listClientAppointmentsHandler(svc))
		cr.Get("/{clientID}/sales", listClientSalesHandler(svc))
		cr.Post("/{clientID}/settle", settleClientHandler(svc))
		cr.Get("/{clientID}/map", clientMapHandler(svc))
	})

	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})

	r.Route("/services", func(sr chi.Router) {
		sr.Post("/", createServiceHandler(svc))
		sr.Get("/", listServicesHandler(svc))
		sr.Get("/{serviceID}", getServiceHandler(svc))
		sr.Put("/{serviceID}", updateServiceHandler(svc))
		sr.Delete("/{serviceID}", deleteServiceHandler(svc))
	})

	r.Route("/products", func(pr chi.Router) {
		pr.Post("/", createProductHandler(svc))
		pr.Get("/", listProductsHandler(svc))
		pr.Get("/{productID}", getProductHandler(svc))
		pr.Put("/{productID}", updateProductHandler(svc))
		pr.Delete("/{productID}", deleteProductHandler(svc))
	})

	r.Route("/taxi-dogs", func(tr chi.Router) {
		tr.Post("/", createTaxiDogHandler(svc))
		tr.Get("/", listTaxiDogsHandler(svc))
		tr.Get("/{taxiDogID}", getTaxiDogHandler(svc))
		tr.Put("/{taxiDogID}", updateTaxiDogHandler(svc))
		tr.Delete("/{taxiDogID}", deleteTaxiDogHandler(svc))
	})

	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Put("/{appointmentID}", updateAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))

		ar.Post("/{appointmentID}/confirm", confirmAppointmentHandler(svc))
		ar.Post("/{appointmentID}/ready", readyAppointmentHandler(svc))
		ar.Post("/{appointmentID}/finalize", finalizeAppointmentHandler(svc))
		ar.Post("/{appointmentID}/payment", registerPaymentHandler(svc))
		ar.Get("/{appointmentID}/reminder", reminderMessageHandler(svc))
		ar.Get("/{appointmentID}/ready-message", readyMessageHandler(svc))
	})

	r.Route("/sales", func(sr chi.Router) {
		sr.Post("/", createSaleHandler(svc))
		sr.Get("/", listSalesHandler(svc))
		sr.Get("/{saleID}", getSaleHandler(svc))
	})

	r.Route("/expenses", func(er chi.Router) {
		er.Post("/", createExpenseHandler(svc))
		er.Get("/", listExpensesHandler(svc))
		er.Get("/{expenseID}", getExpenseHandler(svc))
		er.Put("/{expenseID}", updateExpenseHandler(svc))
		er.Delete("/{expenseID}", deleteExpenseHandler(svc))
	})

	r.Get("/profile", getProfileHandler(svc))
	r.Put("/profile", updateProfileHandler(svc))
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

// writeError traduce errores de negocio a status HTTP.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInUse), errors.Is(err, ErrFinalized), errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrExceedsBalance):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func mapSlice[T, R any](items []T, f func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, it := range items {
		out = append(out, f(it))
	}
	return out
}
