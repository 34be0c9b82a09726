package wire

import (
	"smartride-portal/internal/adaptor"
	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	service *usecase.Service,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/", authHandler.Landing)

	portals := map[string]entity.UserRole{
		"/driver":    entity.RoleDriver,
		"/passenger": entity.RolePassenger,
	}
	for prefix, role := range portals {
		r.Get(prefix+"/login", authHandler.LoginPage(role))
		r.Post(prefix+"/login", authHandler.Login(role))
		r.Get(prefix+"/register", authHandler.RegisterPage(role))
		r.Post(prefix+"/register", authHandler.Register(role))
	}

	// Admins are provisioned by the backend, there is no admin sign up
	r.Get("/admin/login", authHandler.LoginPage(entity.RoleAdmin))
	r.Post("/admin/login", authHandler.Login(entity.RoleAdmin))

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.AuthSession(service.Auth, log)).Post("/logout", authHandler.Logout)
}
