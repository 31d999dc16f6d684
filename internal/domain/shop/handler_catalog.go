package shop

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// Catálogo: servicios, productos y tarifas de taxi dog.

type serviceRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Duration    int             `json:"duration"` // minutos
}

type serviceResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Duration    int             `json:"duration"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Stock       int             `json:"stock"`
}

type productResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type taxiDogRequest struct {
	Neighborhood string          `json:"neighborhood"`
	Price        decimal.Decimal `json:"price" swaggertype:"string"`
	Notes        string          `json:"notes"`
}

type taxiDogResponse struct {
	ID           string          `json:"id"`
	Neighborhood string          `json:"neighborhood"`
	Price        decimal.Decimal `json:"price" swaggertype:"string"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// -------------------------
// Services
// -------------------------

// createServiceHandler godoc
// @Summary Crear servicio
// @Tags services
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body serviceRequest true "price > 0, duration > 0"
// @Success 201 {object} serviceResponse
// @Failure 400 {string} string "datos inválidos"
// @Router /services [post]
func createServiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req serviceRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		v, err := svc.AddService(ctx, ServiceInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toServiceResponse(v))
	}
}

// @Summary Listar servicios
// @Tags services
// @Produce json
// @Success 200 {array} serviceResponse
// @Router /services [get]
func listServicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.ListServices(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapSlice(items, toServiceResponse))
	}
}

// @Summary Obtener servicio
// @Tags services
// @Produce json
// @Param serviceID path string true "ID del servicio"
// @Success 200 {object} serviceResponse
// @Router /services/{serviceID} [get]
func getServiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		v, err := svc.GetService(ctx, chi.URLParam(r, "serviceID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toServiceResponse(v))
	}
}

// @Summary Actualizar servicio
// @Tags services
// @Accept json
// @Produce json
// @Param serviceID path string true "ID del servicio"
// @Param payload body serviceRequest true "Datos del servicio"
// @Success 200 {object} serviceResponse
// @Router /services/{serviceID} [put]
func updateServiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req serviceRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		v, err := svc.UpdateService(ctx, chi.URLParam(r, "serviceID"), ServiceInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toServiceResponse(v))
	}
}

// @Summary Eliminar servicio
// @Description 409 si algún agendamento lo usa.
// @Tags services
// @Param serviceID path string true "ID del servicio"
// @Success 204
// @Router /services/{serviceID} [delete]
func deleteServiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.DeleteService(ctx, chi.URLParam(r, "serviceID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// -------------------------
// Products
// -------------------------

// @Summary Crear producto
// @Tags products
// @Accept json
// @Produce json
// @Param payload body productRequest true "price > 0, stock >= 0"
// @Success 201 {object} productResponse
// @Router /products [post]
func createProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req productRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		v, err := svc.AddProduct(ctx, ProductInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toProductResponse(v))
	}
}

// @Summary Listar productos
// @Tags products
// @Produce json
// @Success 200 {array} productResponse
// @Router /products [get]
func listProductsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.ListProducts(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapSlice(items, toProductResponse))
	}
}

// @Summary Obtener producto
// @Tags products
// @Produce json
// @Param productID path string true "ID del producto"
// @Success 200 {object} productResponse
// @Router /products/{productID} [get]
func getProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		v, err := svc.GetProduct(ctx, chi.URLParam(r, "productID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductResponse(v))
	}
}

// @Summary Actualizar producto
// @Tags products
// @Accept json
// @Produce json
// @Param productID path string true "ID del producto"
// @Param payload body productRequest true "Datos del producto"
// @Success 200 {object} productResponse
// @Router /products/{productID} [put]
func updateProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req productRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		v, err := svc.UpdateProduct(ctx, chi.URLParam(r, "productID"), ProductInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductResponse(v))
	}
}

// @Summary Eliminar producto
// @Description 409 si alguna venta lo incluye.
// @Tags products
// @Param productID path string true "ID del producto"
// @Success 204
// @Router /products/{productID} [delete]
func deleteProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.DeleteProduct(ctx, chi.URLParam(r, "productID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// -------------------------
// Taxi dog
// -------------------------

// @Summary Crear tarifa de taxi dog
// @Tags taxi-dogs
// @Accept json
// @Produce json
// @Param payload body taxiDogRequest true "Barrio y precio"
// @Success 201 {object} taxiDogResponse
// @Router /taxi-dogs [post]
func createTaxiDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req taxiDogRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		v, err := svc.AddTaxiDog(ctx, TaxiDogInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTaxiDogResponse(v))
	}
}

// @Summary Listar tarifas de taxi dog
// @Tags taxi-dogs
// @Produce json
// @Success 200 {array} taxiDogResponse
// @Router /taxi-dogs [get]
func listTaxiDogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		items, err := svc.ListTaxiDogs(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, mapSlice(items, toTaxiDogResponse))
	}
}

// @Summary Obtener tarifa de taxi dog
// @Tags taxi-dogs
// @Produce json
// @Param taxiDogID path string true "ID"
// @Success 200 {object} taxiDogResponse
// @Router /taxi-dogs/{taxiDogID} [get]
func getTaxiDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		v, err := svc.GetTaxiDog(ctx, chi.URLParam(r, "taxiDogID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTaxiDogResponse(v))
	}
}

// @Summary Actualizar tarifa de taxi dog
// @Tags taxi-dogs
// @Accept json
// @Produce json
// @Param taxiDogID path string true "ID"
// @Param payload body taxiDogRequest true "Barrio y precio"
// @Success 200 {object} taxiDogResponse
// @Router /taxi-dogs/{taxiDogID} [put]
func updateTaxiDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var req taxiDogRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		v, err := svc.UpdateTaxiDog(ctx, chi.URLParam(r, "taxiDogID"), TaxiDogInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTaxiDogResponse(v))
	}
}

// @Summary Eliminar tarifa de taxi dog
// @Description 409 si algún agendamento la usa.
// @Tags taxi-dogs
// @Param taxiDogID path string true "ID"
// @Success 204
// @Router /taxi-dogs/{taxiDogID} [delete]
func deleteTaxiDogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.DeleteTaxiDog(ctx, chi.URLParam(r, "taxiDogID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toServiceResponse(v GroomingService) serviceResponse {
	return serviceResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		Duration:    v.Duration,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toProductResponse(v Product) productResponse {
	return productResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Price:       v.Price,
		Stock:       v.Stock,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toTaxiDogResponse(v TaxiDog) taxiDogResponse {
	return taxiDogResponse{
		ID:           v.ID,
		Neighborhood: v.Neighborhood,
		Price:        v.Price,
		Notes:        v.Notes,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
