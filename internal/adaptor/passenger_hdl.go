package adaptor

import (
	"fmt"
	"net/http"

	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/utils"
)

type PassengerHandler struct {
	base
	bookings usecase.BookingService
	reviews  usecase.ReviewService
}

func NewPassengerHandler(b base, bookings usecase.BookingService, reviews usecase.ReviewService) *PassengerHandler {
	return &PassengerHandler{
		base:     b,
		bookings: bookings,
		reviews:  reviews,
	}
}

// Dashboard handles GET /passenger/dashboard
func (h *PassengerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.bookings.PassengerDashboard(r.Context()))
}

// Search handles GET /passenger/search?source=&destination=&date=
func (h *PassengerHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.SearchRidesRequest{
		Source:      query.Get("source"),
		Destination: query.Get("destination"),
		Date:        query.Get("date"),
	}

	rides, err := h.bookings.SearchRides(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "search rides", "Search failed")
		return
	}

	if len(rides) == 0 {
		utils.ResponseSuccess(w, "No rides found for selected route and date.", rides)
		return
	}
	utils.ResponseSuccess(w, "success", rides)
}

// Book handles POST /passenger/search/{rideId}/book
func (h *PassengerHandler) Book(w http.ResponseWriter, r *http.Request) {
	rideID, err := pathID(r, "rideId")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid ride ID", nil)
		return
	}

	req := request.BookRideRequest{Seats: 1}
	if err := decode(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.bookings.BookRide(r.Context(), rideID, &req)
	if err != nil {
		h.handleServiceError(w, r, err, "book ride", "Booking failed")
		return
	}

	utils.ResponseCreated(w, "Booking requested", map[string]any{
		"booking":  booking,
		"redirect": fmt.Sprintf("/passenger/payment/%d", booking.BookingID),
	})
}

// Bookings handles GET /passenger/bookings
func (h *PassengerHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListBookings(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "list bookings", "Failed to fetch bookings")
		return
	}
	utils.ResponseSuccess(w, "success", bookings)
}

// Cancel handles POST /passenger/bookings/{bookingId}/cancel
func (h *PassengerHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	result, err := h.bookings.CancelBooking(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, r, err, "cancel booking", "Cancellation failed!")
		return
	}
	utils.ResponseSuccess(w, result.Message, result.Items)
}

// Review handles POST /passenger/bookings/{bookingId}/review
func (h *PassengerHandler) Review(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		utils.ResponseBadRequest(w, "Booking ID missing.", nil)
		return
	}
	submitReview(&h.base, h.reviews, entity.RolePassenger, w, r, bookingID, nil)
}

// PaymentPage handles GET /passenger/payment/{bookingId}
func (h *PassengerHandler) PaymentPage(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		utils.ResponseBadRequest(w, "Booking ID missing.", nil)
		return
	}

	view, err := h.bookings.PaymentView(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, r, err, "load payment", "Failed to fetch booking or fare details.")
		return
	}
	utils.ResponseSuccess(w, "success", view)
}

// Pay handles POST /passenger/payment/{bookingId}
func (h *PassengerHandler) Pay(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		utils.ResponseBadRequest(w, "Booking ID missing.", nil)
		return
	}

	var req request.PayRequest
	if err := decode(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.bookings.Pay(r.Context(), bookingID, &req)
	if err != nil {
		h.handleServiceError(w, r, err, "pay", "Payment failed. Try again.")
		return
	}
	utils.ResponseSuccess(w, result.Message, result)
}

// submitReview is shared by the passenger and driver review routes.
func submitReview(b *base, reviews usecase.ReviewService, role entity.UserRole, w http.ResponseWriter, r *http.Request, bookingID int64, rideID *int64) {
	var req request.CreateReviewRequest
	if err := decode(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}
	req.BookingID = &bookingID
	if rideID != nil {
		req.RideID = rideID
	}

	review, err := reviews.Submit(r.Context(), role, &req)
	if err != nil {
		b.handleServiceError(w, r, err, "submit review", "Failed to submit review")
		return
	}
	utils.ResponseCreated(w, usecase.ReviewSubmitted, review)
}
