package shop

import "net/http"

type profileRequest struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Logo         string `json:"logo"`
}

type profileResponse struct {
	Name         string `json:"name"`
	BusinessName string `json:"business_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Logo         string `json:"logo"`
}

// getProfileHandler godoc
// @Summary Perfil del negocio
// @Description Si todavía no se guardó, devuelve un perfil vacío.
// @Tags profile
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} profileResponse
// @Failure 401 {string} string "unauthorized"
// @Router /profile [get]
func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		p, err := svc.GetProfile(ctx)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

// @Summary Guardar perfil del negocio
// @Tags profile
// @Accept json
// @Produce json
// @Param payload body profileRequest true "name y business_name obligatorios"
// @Success 200 {object} profileResponse
// @Failure 400 {string} string "datos inválidos"
// @Router /profile [put]
func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req profileRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		p, err := svc.UpdateProfile(ctx, ProfileInput(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProfileResponse(p))
	}
}

func toProfileResponse(p UserProfile) profileResponse {
	return profileResponse{
		Name:         p.Name,
		BusinessName: p.BusinessName,
		Email:        p.Email,
		Phone:        p.Phone,
		Address:      p.Address,
		Logo:         p.Logo,
	}
}
