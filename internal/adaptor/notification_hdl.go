package adaptor

import (
	"net/http"

	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/utils"
)

type NotificationHandler struct {
	base
	service usecase.NotificationService
}

func NewNotificationHandler(b base, service usecase.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		base:    b,
		service: service,
	}
}

// List handles GET /notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized. Please login.")
		return
	}

	feed, err := h.service.List(r.Context(), session.Token)
	if err != nil {
		h.handleServiceError(w, r, err, "list notifications", "Failed to load notifications")
		return
	}
	utils.ResponseSuccess(w, "success", feed)
}

// MarkSeen handles POST /notifications/{id}/seen
func (h *NotificationHandler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized. Please login.")
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid notification ID", nil)
		return
	}

	utils.ResponseSuccess(w, "success", h.service.MarkSeen(r.Context(), session.Token, id))
}
