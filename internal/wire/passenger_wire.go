package wire

import (
	"smartride-portal/internal/adaptor"
	"smartride-portal/internal/data/entity"
	"smartride-portal/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePassenger(
	r chi.Router,
	passengerHandler *adaptor.PassengerHandler,
	log *zap.Logger,
) {
	// ==================== PASSENGER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(entity.RolePassenger, log))

		r.Get("/passenger/dashboard", passengerHandler.Dashboard)

		// GET /passenger/search?source=&destination=&date=
		r.Get("/passenger/search", passengerHandler.Search)
		r.Post("/passenger/search/{rideId}/book", passengerHandler.Book)

		r.Get("/passenger/bookings", passengerHandler.Bookings)
		r.Post("/passenger/bookings/{bookingId}/cancel", passengerHandler.Cancel)
		r.Post("/passenger/bookings/{bookingId}/review", passengerHandler.Review)

		r.Get("/passenger/payment/{bookingId}", passengerHandler.PaymentPage)
		r.Post("/passenger/payment/{bookingId}", passengerHandler.Pay)
	})
}
