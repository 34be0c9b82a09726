package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/lifecycle"
	"smartride-portal/pkg/utils"

	"go.uber.org/zap"
)

const ReviewSubmitted = "Thanks, your review has been submitted."

var (
	ErrRatingRange     = userError("Please select a rating between 1 and 5.")
	ErrRevieweeInvalid = userError("revieweeId is invalid. Please contact support.")
	ErrReviewTooEarly  = userError("You can review this trip once it has departed.")
	ErrReviewCancelled = userError("Cancelled bookings cannot be reviewed.")
)

type ReviewService interface {
	// Submit sends a review of the other party of a booking. The reviewee
	// is the driver when role is PASSENGER and the passenger when role is
	// DRIVER; it is looked up from the booking when the form omits it.
	// A booking is reviewable once departed and never when cancelled.
	Submit(ctx context.Context, role entity.UserRole, req *request.CreateReviewRequest) (*gateway.Review, error)
}

type reviewService struct {
	gateway *gateway.Client
	log     *zap.Logger
	now     func() time.Time
}

func NewReviewService(gw *gateway.Client, log *zap.Logger) ReviewService {
	return &reviewService{
		gateway: gw,
		log:     log.With(zap.String("service", "review")),
		now:     time.Now,
	}
}

func (s *reviewService) Submit(ctx context.Context, role entity.UserRole, req *request.CreateReviewRequest) (*gateway.Review, error) {
	// 1. Validate
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrRatingRange
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	// 2. Check the booking and resolve who is being reviewed
	revieweeID, err := s.resolveReviewee(ctx, role, req)
	if err != nil {
		return nil, err
	}

	// 3. Send
	review, err := s.gateway.SubmitReview(ctx, gateway.ReviewPayload{
		RideID:     req.RideID,
		BookingID:  req.BookingID,
		RevieweeID: revieweeID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	})
	if err != nil {
		s.log.Warn("Failed to submit review", zap.Error(err), zap.Int64("reviewee_id", revieweeID))
		return nil, err
	}

	s.log.Info("Review submitted",
		zap.String("role", string(role)),
		zap.Int64("reviewee_id", revieweeID),
		zap.Int("rating", req.Rating))
	return review, nil
}

func (s *reviewService) resolveReviewee(ctx context.Context, role entity.UserRole, req *request.CreateReviewRequest) (int64, error) {
	if req.RevieweeID != nil && *req.RevieweeID <= 0 {
		return 0, ErrRevieweeInvalid
	}

	missing := missingRevieweeError(role)
	if req.BookingID == nil {
		if req.RevieweeID == nil {
			return 0, missing
		}
		return *req.RevieweeID, nil
	}

	booking, err := s.gateway.GetBooking(ctx, *req.BookingID)
	if err != nil {
		s.log.Warn("Failed to fetch booking for review", zap.Error(err), zap.Int64("booking_id", *req.BookingID))
		if req.RevieweeID == nil {
			return 0, missing
		}
		return 0, err
	}

	id := req.RevieweeID
	if id == nil {
		switch role {
		case entity.RolePassenger:
			id = booking.DriverID
		case entity.RoleDriver:
			id = booking.PassengerID
		}
		if id == nil {
			return 0, missing
		}
		if *id <= 0 {
			return 0, ErrRevieweeInvalid
		}
	}

	snap := lifecycle.FromBooking(*booking)
	if !lifecycle.ReviewEligible(snap, s.now()) {
		if lifecycle.StateOf(snap) == lifecycle.StateCancelled {
			return 0, ErrReviewCancelled
		}
		return 0, ErrReviewTooEarly
	}

	if req.RideID == nil && booking.RideID > 0 {
		rideID := booking.RideID
		req.RideID = &rideID
	}
	return *id, nil
}

func missingRevieweeError(role entity.UserRole) error {
	party := "driver"
	if role == entity.RoleDriver {
		party = "passenger"
	}
	return userError(fmt.Sprintf("Cannot open review: %s information is missing. Please refresh the page or contact support.", party))
}
