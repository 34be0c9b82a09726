package wire

import (
	"smartride-portal/internal/adaptor"
	"smartride-portal/internal/data/entity"
	"smartride-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	adminHandler *adaptor.AdminHandler,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/admin/dashboard", func(r chi.Router) {
		r.Use(middleware.RequireRole(entity.RoleAdmin, log))

		r.Get("/", adminHandler.Dashboard)
		r.Post("/withdraw", adminHandler.Withdraw)

		// Row actions, answered with a confirmation prompt until confirmed
		r.Post("/users/{id}/block", adminHandler.BlockUser())
		r.Post("/users/{id}/verify", adminHandler.VerifyDriver())
		r.Post("/bookings/{id}/approve", adminHandler.ApproveBooking())
		r.Post("/bookings/{id}/reject", adminHandler.RejectBooking())
		r.Post("/payments/{id}/mark-paid", adminHandler.MarkPaymentPaid())
		r.Post("/rides/{id}/mark-paid", adminHandler.MarkRidePaid())

		// GET /admin/dashboard/{table}?search=&sort=&desc=&page=
		r.Get("/{table}", adminHandler.Table)
		r.Post("/{table}/refresh", adminHandler.Refresh)
		r.Delete("/{table}", adminHandler.Close)
	})
}
