package shop

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type petRequest struct {
	OwnerID string           `json:"owner_id"`
	Name    string           `json:"name"`
	Species string           `json:"species"`
	Breed   string           `json:"breed"`
	Age     *int             `json:"age"`
	Weight  *decimal.Decimal `json:"weight" swaggertype:"string"`
	Notes   string           `json:"notes"`
}

func (req petRequest) input() PetInput {
	return PetInput{
		OwnerID: req.OwnerID,
		Name:    req.Name,
		Species: req.Species,
		Breed:   req.Breed,
		Age:     req.Age,
		Weight:  req.Weight,
		Notes:   req.Notes,
	}
}

type petResponse struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"owner_id"`
	Name      string           `json:"name"`
	Species   string           `json:"species"`
	Breed     string           `json:"breed"`
	Age       *int             `json:"age,omitempty"`
	Weight    *decimal.Decimal `json:"weight,omitempty" swaggertype:"string"`
	Notes     string           `json:"notes"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// createPetHandler godoc
// @Summary Crear pet
// @Description El tutor (owner_id) tiene que existir.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body petRequest true "Datos del pet"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "datos inválidos"
// @Failure 404 {string} string "tutor no encontrado"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req petRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		p, err := svc.AddPet(ctx, req.input())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// @Summary Listar pets
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		items, err := svc.ListPets(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapSlice(items, toPetResponse))
	}
}

// @Summary Obtener pet
// @Tags pets
// @Produce json
// @Param petID path string true "ID del pet"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		p, err := svc.GetPet(ctx, chi.URLParam(r, "petID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// @Summary Actualizar pet
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID del pet"
// @Param payload body petRequest true "Datos del pet"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "datos inválidos"
// @Failure 404 {string} string "not found"
// @Router /pets/{petID} [put]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req petRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		p, err := svc.UpdatePet(ctx, chi.URLParam(r, "petID"), req.input())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// @Summary Eliminar pet
// @Description 409 si el pet tiene agendamentos.
// @Tags pets
// @Param petID path string true "ID del pet"
// @Success 204
// @Failure 404 {string} string "not found"
// @Failure 409 {string} string "pet con agendamentos"
// @Router /pets/{petID} [delete]
func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.DeletePet(ctx, chi.URLParam(r, "petID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     p.Breed,
		Age:       p.Age,
		Weight:    p.Weight,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
