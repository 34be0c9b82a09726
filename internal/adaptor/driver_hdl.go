package adaptor

import (
	"errors"
	"net/http"

	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/utils"

	"go.uber.org/zap"
)

type DriverHandler struct {
	base
	bookings usecase.BookingService
	reviews  usecase.ReviewService
}

func NewDriverHandler(b base, bookings usecase.BookingService, reviews usecase.ReviewService) *DriverHandler {
	return &DriverHandler{
		base:     b,
		bookings: bookings,
		reviews:  reviews,
	}
}

// Dashboard handles GET /driver/dashboard
func (h *DriverHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", h.bookings.DriverDashboard(r.Context()))
}

// Rides handles GET /driver/rides
func (h *DriverHandler) Rides(w http.ResponseWriter, r *http.Request) {
	rides, err := h.bookings.DriverRides(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "list rides", "Failed to load rides")
		return
	}
	utils.ResponseSuccess(w, "success", rides)
}

// PostPage handles GET /driver/post
func (h *DriverHandler) PostPage(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "success", map[string]any{
		"page":   "post-ride",
		"fields": []string{"source", "destination", "date", "time", "seatsTotal", "price"},
	})
}

// PostRide handles POST /driver/post
func (h *DriverHandler) PostRide(w http.ResponseWriter, r *http.Request) {
	var req request.PostRideRequest
	if err := decode(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	ride, err := h.bookings.PostRide(r.Context(), &req)
	if err != nil {
		if errors.Is(err, gateway.ErrForbidden) {
			h.log.Warn("Post ride forbidden", zap.Error(err))
			utils.ResponseForbidden(w, "Forbidden. Only DRIVER can post rides.")
			return
		}
		h.handleServiceError(w, r, err, "post ride", "Failed to post ride")
		return
	}
	utils.ResponseCreated(w, "Ride posted successfully", ride)
}

// Approve handles POST /driver/rides/bookings/{bookingId}/approve
func (h *DriverHandler) Approve(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	result, err := h.bookings.Approve(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, r, err, "approve booking", "Failed to approve booking")
		return
	}
	utils.ResponseSuccess(w, result.Message, result.Items)
}

// Reject handles POST /driver/rides/bookings/{bookingId}/reject
func (h *DriverHandler) Reject(w http.ResponseWriter, r *http.Request) {
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	result, err := h.bookings.Reject(r.Context(), bookingID)
	if err != nil {
		h.handleServiceError(w, r, err, "reject booking", "Failed to reject booking")
		return
	}
	utils.ResponseSuccess(w, result.Message, result.Items)
}

// MarkPaid handles POST /driver/payments/{paymentId}/mark-paid
func (h *DriverHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	paymentID, err := pathID(r, "paymentId")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid payment ID", nil)
		return
	}

	result, err := h.bookings.MarkPaid(r.Context(), paymentID)
	if err != nil {
		h.handleServiceError(w, r, err, "mark payment", "Failed to update payment status")
		return
	}
	utils.ResponseSuccess(w, result.Message, result.Items)
}

// Review handles POST /driver/rides/{rideId}/bookings/{bookingId}/review
func (h *DriverHandler) Review(w http.ResponseWriter, r *http.Request) {
	rideID, err := pathID(r, "rideId")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid ride ID", nil)
		return
	}
	bookingID, err := pathID(r, "bookingId")
	if err != nil {
		utils.ResponseBadRequest(w, "Booking ID missing.", nil)
		return
	}
	submitReview(&h.base, h.reviews, entity.RoleDriver, w, r, bookingID, &rideID)
}
