package adaptor

import (
	"net/http"

	"smartride-portal/internal/gateway"
	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/utils"
)

type ProfileHandler struct {
	base
	service usecase.ProfileService
}

func NewProfileHandler(b base, service usecase.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		base:    b,
		service: service,
	}
}

// Open handles GET /users/{id}?name=&email=&role=
//
// The query carries whatever the opening page already knew about the user;
// it is shown as is and completed from the backend.
func (h *ProfileHandler) Open(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ResponseBadRequest(w, "No user id", nil)
		return
	}

	query := r.URL.Query()
	stub := gateway.UserProfile{
		ID:    id,
		Name:  query.Get("name"),
		Email: query.Get("email"),
		Role:  query.Get("role"),
	}

	utils.ResponseSuccess(w, "success", h.service.OpenProfile(r.Context(), stub))
}
