package wire

import (
	"smartride-portal/internal/adaptor"
	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCommon mounts the overlays shared by every portal.
func wireCommon(
	r chi.Router,
	handler *adaptor.Handler,
	service *usecase.Service,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/users/{id}", handler.Profile.Open)

	r.Get("/chat", handler.Chat.History)
	r.Post("/chat", handler.Chat.Send)
	r.Delete("/chat", handler.Chat.Clear)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(service.Auth, log))

		r.Get("/notifications", handler.Notification.List)
		r.Post("/notifications/{id}/seen", handler.Notification.MarkSeen)
	})
}
