package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/dto/response"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/lifecycle"
	"smartride-portal/pkg/utils"

	"go.uber.org/zap"
)

// PaymentMethods are offered on the payment page, in display order.
var PaymentMethods = []string{"CASH", "UPI", "CREDIT", "WALLET"}

const upcomingLimit = 5

var (
	ErrNoSeats     = userError("Seats must be greater than 0")
	ErrNotApproved = userError("Driver has not approved this booking yet. Please wait.")
	ErrAlreadyPaid = userError("This booking is already paid.")
	ErrBookingGone = userError("This booking was cancelled.")
	ErrPayClosed   = userError("This booking cannot be paid right now.")
)

const (
	awaitingNotice  = "Your booking request is awaiting driver approval. You will be notified when the driver approves."
	cashPaidMessage = "Booking confirmed! Please pay the driver in cash at ride time. Payment amount: ₹%.2f. Payment status will remain Pending until the driver confirms."
	onlinePaid      = "Payment successful! Amount: ₹%.2f"
)

type BookingService interface {
	// Passenger
	SearchRides(ctx context.Context, req *request.SearchRidesRequest) ([]gateway.Ride, error)
	BookRide(ctx context.Context, rideID int64, req *request.BookRideRequest) (*gateway.Booking, error)
	ListBookings(ctx context.Context) ([]response.BookingView, error)
	CancelBooking(ctx context.Context, bookingID int64) (*response.ActionResult[[]response.BookingView], error)
	PaymentView(ctx context.Context, bookingID int64) (*response.PaymentView, error)
	Pay(ctx context.Context, bookingID int64, req *request.PayRequest) (*response.PayResult, error)
	PassengerDashboard(ctx context.Context) *response.PassengerDashboard

	// Driver
	DriverRides(ctx context.Context) ([]response.DriverRideView, error)
	PostRide(ctx context.Context, req *request.PostRideRequest) (*gateway.Ride, error)
	Approve(ctx context.Context, bookingID int64) (*response.ActionResult[[]response.DriverRideView], error)
	Reject(ctx context.Context, bookingID int64) (*response.ActionResult[[]response.DriverRideView], error)
	MarkPaid(ctx context.Context, paymentID int64) (*response.ActionResult[[]response.DriverRideView], error)
	DriverDashboard(ctx context.Context) *response.DriverDashboard
}

type bookingService struct {
	gateway *gateway.Client
	log     *zap.Logger
	now     func() time.Time
}

func NewBookingService(gw *gateway.Client, log *zap.Logger) BookingService {
	return &bookingService{
		gateway: gw,
		log:     log.With(zap.String("service", "booking")),
		now:     time.Now,
	}
}

// ==================== PASSENGER ====================

func (s *bookingService) SearchRides(ctx context.Context, req *request.SearchRidesRequest) ([]gateway.Ride, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Search validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	rides, err := s.gateway.SearchRides(ctx,
		strings.TrimSpace(req.Source),
		strings.TrimSpace(req.Destination),
		req.Date,
	)
	if err != nil {
		s.log.Warn("Ride search failed", zap.Error(err))
		return nil, err
	}
	return rides, nil
}

func (s *bookingService) BookRide(ctx context.Context, rideID int64, req *request.BookRideRequest) (*gateway.Booking, error) {
	if req.Seats <= 0 {
		return nil, ErrNoSeats
	}

	booking, err := s.gateway.BookRide(ctx, rideID, req.Seats)
	if err != nil {
		s.log.Warn("Booking failed", zap.Error(err), zap.Int64("ride_id", rideID))
		return nil, err
	}

	s.log.Info("Ride booked",
		zap.Int64("ride_id", rideID),
		zap.Int64("booking_id", booking.BookingID),
		zap.Int("seats", req.Seats))
	return booking, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]response.BookingView, error) {
	bookings, err := s.gateway.MyBookings(ctx)
	if err != nil {
		s.log.Warn("Failed to fetch bookings", zap.Error(err))
		return nil, err
	}

	now := s.now()
	views := make([]response.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, response.BookingView{
			Booking:   b,
			Lifecycle: lifecycle.Describe(lifecycle.FromBooking(b), entity.RolePassenger, now),
		})
	}
	return views, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID int64) (*response.ActionResult[[]response.BookingView], error) {
	msg, err := s.gateway.CancelBooking(ctx, bookingID)
	if err != nil {
		s.log.Warn("Cancellation failed", zap.Error(err), zap.Int64("booking_id", bookingID))
		return nil, err
	}
	s.log.Info("Booking cancelled", zap.Int64("booking_id", bookingID))

	if msg == "" {
		msg = "Booking Cancelled!"
	}
	return refetch(ctx, msg, s.ListBookings)
}

// PaymentView loads the booking and replaces its price with the backend's
// current fare estimate.
func (s *bookingService) PaymentView(ctx context.Context, bookingID int64) (*response.PaymentView, error) {
	booking, err := s.gateway.GetBooking(ctx, bookingID)
	if err != nil {
		s.log.Warn("Failed to fetch booking", zap.Error(err), zap.Int64("booking_id", bookingID))
		return nil, err
	}

	estimate, err := s.gateway.FareEstimate(ctx, bookingID)
	if err != nil {
		s.log.Warn("Failed to fetch fare estimate", zap.Error(err), zap.Int64("booking_id", bookingID))
		return nil, err
	}

	fare := estimate.TotalFare
	booking.TotalPrice = &fare

	now := s.now()
	snap := lifecycle.FromBooking(*booking)
	view := &response.PaymentView{
		Booking: response.BookingView{
			Booking:   *booking,
			Lifecycle: lifecycle.Describe(snap, entity.RolePassenger, now),
		},
		Estimate:   estimate,
		TotalPrice: fare,
		CanPay:     lifecycle.Allows(snap, entity.RolePassenger, now, lifecycle.ActionPay),
		Methods:    PaymentMethods,
	}
	if !booking.DriverApproved {
		view.Notice = awaitingNotice
	}
	return view, nil
}

func (s *bookingService) Pay(ctx context.Context, bookingID int64, req *request.PayRequest) (*response.PayResult, error) {
	req.Method = strings.ToUpper(strings.TrimSpace(req.Method))
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Pay validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	view, err := s.PaymentView(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Checked here as well as by the backend.
	booking := view.Booking.Booking
	switch lifecycle.StateOf(lifecycle.FromBooking(booking)) {
	case lifecycle.StateCancelled:
		return nil, ErrBookingGone
	case lifecycle.StatePaid:
		return nil, ErrAlreadyPaid
	}
	if !booking.DriverApproved {
		return nil, ErrNotApproved
	}
	if !view.CanPay {
		return nil, ErrPayClosed
	}

	payment, err := s.gateway.Pay(ctx, bookingID, req.Method)
	if err != nil {
		s.log.Warn("Payment failed", zap.Error(err), zap.Int64("booking_id", bookingID))
		return nil, err
	}

	s.log.Info("Payment submitted",
		zap.Int64("booking_id", bookingID),
		zap.String("method", req.Method))

	format := onlinePaid
	if req.Method == "CASH" {
		format = cashPaidMessage
	}
	return &response.PayResult{
		Message:  fmt.Sprintf(format, view.TotalPrice),
		Payment:  payment,
		Redirect: entity.RolePassenger.DashboardPath(),
	}, nil
}

func (s *bookingService) PassengerDashboard(ctx context.Context) *response.PassengerDashboard {
	dash := &response.PassengerDashboard{
		ByState:  map[string]int{},
		Upcoming: []response.BookingView{},
	}

	views, err := s.ListBookings(ctx)
	if err != nil {
		dash.Error = gateway.Message(err, "Failed to fetch bookings")
		return dash
	}

	now := s.now()
	for _, v := range views {
		dash.Total++
		dash.ByState[string(v.Lifecycle.State)]++
		if v.Lifecycle.AwaitingApproval {
			dash.AwaitingApproval++
		}
		for _, a := range v.Lifecycle.Actions {
			switch a {
			case lifecycle.ActionPay:
				dash.ReadyToPay++
			case lifecycle.ActionReview:
				dash.Reviewable++
			}
		}
		if v.Lifecycle.State != lifecycle.StateCancelled && v.DepartureDatetime.After(now) {
			dash.Upcoming = append(dash.Upcoming, v)
		}
	}

	sort.SliceStable(dash.Upcoming, func(i, j int) bool {
		return dash.Upcoming[i].DepartureDatetime.Before(dash.Upcoming[j].DepartureDatetime.Time)
	})
	if len(dash.Upcoming) > upcomingLimit {
		dash.Upcoming = dash.Upcoming[:upcomingLimit]
	}
	return dash
}

// ==================== DRIVER ====================

func (s *bookingService) DriverRides(ctx context.Context) ([]response.DriverRideView, error) {
	rides, err := s.gateway.MyRides(ctx)
	if err != nil {
		s.log.Warn("Failed to fetch rides", zap.Error(err))
		return nil, err
	}

	now := s.now()
	views := make([]response.DriverRideView, 0, len(rides))
	for _, ride := range rides {
		bookings := make([]response.RideBookingView, 0, len(ride.Bookings))
		for _, b := range ride.Bookings {
			bookings = append(bookings, response.RideBookingView{
				RideBooking: b,
				Lifecycle:   lifecycle.Describe(lifecycle.FromRideBooking(ride.Ride, b), entity.RoleDriver, now),
			})
		}
		views = append(views, response.DriverRideView{Ride: ride.Ride, Bookings: bookings})
	}
	return views, nil
}

func (s *bookingService) PostRide(ctx context.Context, req *request.PostRideRequest) (*gateway.Ride, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Post ride validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	ride, err := s.gateway.PostRide(ctx, gateway.NewRide{
		Source:      strings.TrimSpace(req.Source),
		Destination: strings.TrimSpace(req.Destination),
		Date:        req.Date,
		Time:        req.Time,
		SeatsTotal:  req.SeatsTotal,
		Price:       req.Price,
	})
	if err != nil {
		s.log.Warn("Failed to post ride", zap.Error(err))
		return nil, err
	}

	s.log.Info("Ride posted",
		zap.Int64("ride_id", ride.RideID),
		zap.String("source", ride.Source),
		zap.String("destination", ride.Destination))
	return ride, nil
}

func (s *bookingService) Approve(ctx context.Context, bookingID int64) (*response.ActionResult[[]response.DriverRideView], error) {
	if _, err := s.gateway.ApproveBooking(ctx, bookingID); err != nil {
		s.log.Warn("Failed to approve booking", zap.Error(err), zap.Int64("booking_id", bookingID))
		return nil, err
	}
	s.log.Info("Booking approved", zap.Int64("booking_id", bookingID))
	return refetch(ctx, "Booking approved.", s.DriverRides)
}

func (s *bookingService) Reject(ctx context.Context, bookingID int64) (*response.ActionResult[[]response.DriverRideView], error) {
	if _, err := s.gateway.RejectBooking(ctx, bookingID); err != nil {
		s.log.Warn("Failed to reject booking", zap.Error(err), zap.Int64("booking_id", bookingID))
		return nil, err
	}
	s.log.Info("Booking rejected", zap.Int64("booking_id", bookingID))
	return refetch(ctx, "Booking rejected.", s.DriverRides)
}

// MarkPaid confirms a cash payment the driver has received.
func (s *bookingService) MarkPaid(ctx context.Context, paymentID int64) (*response.ActionResult[[]response.DriverRideView], error) {
	if _, err := s.gateway.SetPaymentStatus(ctx, paymentID, gateway.PaymentCompleted); err != nil {
		s.log.Warn("Failed to update payment status", zap.Error(err), zap.Int64("payment_id", paymentID))
		return nil, err
	}
	s.log.Info("Cash payment confirmed", zap.Int64("payment_id", paymentID))
	return refetch(ctx, "Payment marked as completed!", s.DriverRides)
}

func (s *bookingService) DriverDashboard(ctx context.Context) *response.DriverDashboard {
	dash := &response.DriverDashboard{}

	rides, err := s.DriverRides(ctx)
	if err != nil {
		dash.Error = gateway.Message(err, "Failed to load rides")
		return dash
	}

	now := s.now()
	for _, ride := range rides {
		dash.Rides++
		if ride.DepartureDatetime.After(now) {
			dash.UpcomingRides++
		}
		for _, b := range ride.Bookings {
			if b.Lifecycle.State == lifecycle.StateCancelled {
				continue
			}
			dash.SeatsBooked += b.SeatsBooked
			for _, a := range b.Lifecycle.Actions {
				switch a {
				case lifecycle.ActionApprove:
					dash.PendingRequests++
				case lifecycle.ActionMarkPaid:
					dash.PendingCashPayments++
				}
			}
			if b.Lifecycle.State == lifecycle.StatePaid && b.TotalPrice != nil {
				dash.Earnings += *b.TotalPrice
			}
		}
	}
	return dash
}

// refetch re-reads the list an action changed. The action already
// succeeded, so a failed re-read only loses the list, not the message.
func refetch[T any](ctx context.Context, msg string, list func(context.Context) (T, error)) (*response.ActionResult[T], error) {
	items, err := list(ctx)
	if err != nil {
		var zero T
		return &response.ActionResult[T]{Message: msg, Items: zero}, nil
	}
	return &response.ActionResult[T]{Message: msg, Items: items}, nil
}
