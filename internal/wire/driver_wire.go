package wire

import (
	"smartride-portal/internal/adaptor"
	"smartride-portal/internal/data/entity"
	"smartride-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireDriver(
	r chi.Router,
	driverHandler *adaptor.DriverHandler,
	log *zap.Logger,
) {
	// ==================== DRIVER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(entity.RoleDriver, log))

		r.Get("/driver/dashboard", driverHandler.Dashboard)
		r.Get("/driver/rides", driverHandler.Rides)

		r.Get("/driver/post", driverHandler.PostPage)
		r.Post("/driver/post", driverHandler.PostRide)

		r.Post("/driver/rides/bookings/{bookingId}/approve", driverHandler.Approve)
		r.Post("/driver/rides/bookings/{bookingId}/reject", driverHandler.Reject)
		r.Post("/driver/rides/{rideId}/bookings/{bookingId}/review", driverHandler.Review)

		// Cash payments are confirmed by the driver
		r.Post("/driver/payments/{paymentId}/mark-paid", driverHandler.MarkPaid)
	})
}
