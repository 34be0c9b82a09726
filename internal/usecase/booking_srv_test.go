package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/lifecycle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newBookingService(t *testing.T, routes map[string]http.HandlerFunc) *bookingService {
	t.Helper()
	return NewBookingService(newBackend(t, routes), zap.NewNop()).(*bookingService)
}

func departure(d time.Duration) string {
	return time.Now().Add(d).UTC().Format(time.RFC3339)
}

func TestPayRefusedUntilDriverApproves(t *testing.T) {
	var paid atomic.Int32
	svc := newBookingService(t, map[string]http.HandlerFunc{
		"GET /api/v1/bookings/7": writeJSON(`{"bookingId":7,"bookingStatus":"PENDING","paymentStatus":"PENDING","driverApproved":false}`),
		"GET /api/v1/payments/estimate/7": writeJSON(`{"bookingId":7,"totalFare":250}`),
		"POST /api/v1/payments/pay/7": func(w http.ResponseWriter, r *http.Request) {
			paid.Add(1)
			w.Write([]byte(`{}`))
		},
	})

	_, err := svc.Pay(context.Background(), 7, &request.PayRequest{Method: "upi"})
	require.ErrorIs(t, err, ErrNotApproved)
	assert.Equal(t, "Driver has not approved this booking yet. Please wait.", err.Error())
	assert.Zero(t, paid.Load())
}

func TestPayCashUsesEstimatedFare(t *testing.T) {
	var method string
	svc := newBookingService(t, map[string]http.HandlerFunc{
		"GET /api/v1/bookings/7": writeJSON(`{"bookingId":7,"bookingStatus":"CONFIRMED","paymentStatus":"PENDING","driverApproved":true,"totalPrice":100}`),
		"GET /api/v1/payments/estimate/7": writeJSON(`{"bookingId":7,"totalFare":312.5}`),
		"POST /api/v1/payments/pay/7": func(w http.ResponseWriter, r *http.Request) {
			method = r.URL.Query().Get("paymentMethodStr")
			w.Write([]byte(`{"paymentId":3,"bookingId":7,"amount":312.5,"status":"PENDING"}`))
		},
	})

	res, err := svc.Pay(context.Background(), 7, &request.PayRequest{Method: "cash"})
	require.NoError(t, err)
	assert.Equal(t, "CASH", method)
	assert.Equal(t,
		"Booking confirmed! Please pay the driver in cash at ride time. Payment amount: ₹312.50. Payment status will remain Pending until the driver confirms.",
		res.Message)
	assert.Equal(t, "PENDING", res.Payment.PaymentStatus)
	assert.Equal(t, "/passenger/dashboard", res.Redirect)
}

func TestPayOnlineMessage(t *testing.T) {
	svc := newBookingService(t, map[string]http.HandlerFunc{
		"GET /api/v1/bookings/7":          writeJSON(`{"bookingId":7,"bookingStatus":"CONFIRMED","paymentStatus":"PENDING","driverApproved":true}`),
		"GET /api/v1/payments/estimate/7": writeJSON(`{"totalFare":99}`),
		"POST /api/v1/payments/pay/7":     writeJSON(`{"paymentId":4,"paymentStatus":"COMPLETED"}`),
	})

	res, err := svc.Pay(context.Background(), 7, &request.PayRequest{Method: "WALLET"})
	require.NoError(t, err)
	assert.Equal(t, "Payment successful! Amount: ₹99.00", res.Message)
}

func TestPayServerErrorIsSurfaced(t *testing.T) {
	svc := newBookingService(t, map[string]http.HandlerFunc{
		"GET /api/v1/bookings/7":          writeJSON(`{"bookingId":7,"bookingStatus":"CONFIRMED","paymentStatus":"PENDING","driverApproved":true}`),
		"GET /api/v1/payments/estimate/7": writeJSON(`{"totalFare":99}`),
		"POST /api/v1/payments/pay/7":     writeError(http.StatusBadRequest, `{"error":"Insufficient wallet balance"}`),
	})

	_, err := svc.Pay(context.Background(), 7, &request.PayRequest{Method: "WALLET"})
	require.Error(t, err)
	assert.Equal(t, "Insufficient wallet balance", gateway.Message(err, "Payment failed. Try again."))
}

func TestPayRejectsUnknownMethod(t *testing.T) {
	svc := newBookingService(t, nil)
	_, err := svc.Pay(context.Background(), 7, &request.PayRequest{Method: "BITCOIN"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPayOnlineAfterChoosingCash(t *testing.T) {
	var method string
	svc := newBookingService(t, map[string]http.HandlerFunc{
		"GET /api/v1/bookings/7":          writeJSON(`{"bookingId":7,"bookingStatus":"CONFIRMED","paymentStatus":"PENDING","paymentMethod":"CASH","paymentId":3,"driverApproved":true}`),
		"GET /api/v1/payments/estimate/7": writeJSON(`{"totalFare":140}`),
		"POST /api/v1/payments/pay/7": func(w http.ResponseWriter, r *http.Request) {
			method = r.URL.Query().Get("paymentMethodStr")
			w.Write([]byte(`{"paymentId":3,"paymentStatus":"COMPLETED"}`))
		},
	})

	view, err := svc.PaymentView(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, view.CanPay)

	res, err := svc.Pay(context.Background(), 7, &request.PayRequest{Method: "wallet"})
	require.NoError(t, err)
	assert.Equal(t, "WALLET", method)
	assert.Equal(t, "Payment successful! Amount: ₹140.00", res.Message)
}

func TestPayRefusedWhenPaymentNotPending(t *testing.T) {
	var paid atomic.Int32
	svc := newBookingService(t, map[string]http.HandlerFunc{
		"GET /api/v1/bookings/7":          writeJSON(`{"bookingId":7,"bookingStatus":"CONFIRMED","paymentStatus":"FAILED","driverApproved":true}`),
		"GET /api/v1/payments/estimate/7": writeJSON(`{"totalFare":99}`),
		"POST /api/v1/payments/pay/7": func(w http.ResponseWriter, r *http.Request) {
			paid.Add(1)
			w.Write([]byte(`{}`))
		},
	})

	_, err := svc.Pay(context.Background(), 7, &request.PayRequest{Method: "UPI"})
	require.ErrorIs(t, err, ErrPayClosed)
	assert.Zero(t, paid.Load())
}

func TestBookRideNeedsSeats(t *testing.T) {
	svc := newBookingService(t, nil)
	_, err := svc.BookRide(context.Background(), 1, &request.BookRideRequest{Seats: 0})
	assert.ErrorIs(t, err, ErrNoSeats)
}

func TestCancelRefetchesBookings(t *testing.T) {
	var listed atomic.Int32
	svc := newBookingService(t, map[string]http.HandlerFunc{
		"POST /api/v1/bookings/5/cancel": writeJSON(``),
		"GET /api/v1/bookings/mine": func(w http.ResponseWriter, r *http.Request) {
			listed.Add(1)
			w.Write([]byte(`[{"bookingId":5,"bookingStatus":"CANCELLED","paymentStatus":"PENDING"}]`))
		},
	})

	res, err := svc.CancelBooking(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Booking Cancelled!", res.Message)
	assert.Equal(t, int32(1), listed.Load())
	require.Len(t, res.Items, 1)
	assert.Equal(t, lifecycle.StateCancelled, res.Items[0].Lifecycle.State)
	assert.Empty(t, res.Items[0].Lifecycle.Actions)
}

func TestPassengerDashboardSummarises(t *testing.T) {
	body := fmt.Sprintf(`[
		{"bookingId":1,"bookingStatus":"PENDING","paymentStatus":"PENDING","driverApproved":false,"departureDatetime":%q},
		{"bookingId":2,"bookingStatus":"CONFIRMED","paymentStatus":"PENDING","driverApproved":true,"paymentMethod":"UPI","departureDatetime":%q},
		{"bookingId":3,"bookingStatus":"CONFIRMED","paymentStatus":"COMPLETED","driverApproved":true,"departureDatetime":%q},
		{"bookingId":4,"bookingStatus":"CANCELLED","paymentStatus":"PENDING","departureDatetime":%q}
	]`, departure(48*time.Hour), departure(24*time.Hour), departure(-24*time.Hour), departure(72*time.Hour))

	svc := newBookingService(t, map[string]http.HandlerFunc{
		"GET /api/v1/bookings/mine": writeJSON(body),
	})

	dash := svc.PassengerDashboard(context.Background())
	assert.Empty(t, dash.Error)
	assert.Equal(t, 4, dash.Total)
	assert.Equal(t, map[string]int{"REQUESTED": 1, "APPROVED_UNPAID": 1, "PAID": 1, "CANCELLED": 1}, dash.ByState)
	assert.Equal(t, 1, dash.AwaitingApproval)
	assert.Equal(t, 1, dash.ReadyToPay)
	assert.Equal(t, 1, dash.Reviewable)

	require.Len(t, dash.Upcoming, 2)
	assert.Equal(t, int64(2), dash.Upcoming[0].BookingID)
	assert.Equal(t, int64(1), dash.Upcoming[1].BookingID)
}

func TestPassengerDashboardFetchError(t *testing.T) {
	svc := newBookingService(t, map[string]http.HandlerFunc{
		"GET /api/v1/bookings/mine": writeError(http.StatusInternalServerError, `<html>boom</html>`),
	})

	dash := svc.PassengerDashboard(context.Background())
	assert.Equal(t, "Failed to fetch bookings", dash.Error)
	assert.Zero(t, dash.Total)
}

func TestDriverRidesCarryAffordances(t *testing.T) {
	body := fmt.Sprintf(`[{"rideId":9,"departureDatetime":%q,"bookings":[
		{"bookingId":1,"bookingStatus":"PENDING","paymentStatus":"PENDING","seatsBooked":1},
		{"bookingId":2,"bookingStatus":"CONFIRMED","paymentStatus":"PENDING","paymentMethod":"CASH","paymentId":30,"seatsBooked":2,"totalPrice":400},
		{"bookingId":3,"bookingStatus":"CONFIRMED","paymentStatus":"COMPLETED","paymentMethod":"UPI","paymentId":31,"seatsBooked":1,"totalPrice":200}
	]}]`, departure(24*time.Hour))

	svc := newBookingService(t, map[string]http.HandlerFunc{
		"GET /api/v1/rides/mine": writeJSON(body),
	})

	rides, err := svc.DriverRides(context.Background())
	require.NoError(t, err)
	require.Len(t, rides, 1)
	require.Len(t, rides[0].Bookings, 3)
	assert.Equal(t, []lifecycle.Action{lifecycle.ActionApprove, lifecycle.ActionReject}, rides[0].Bookings[0].Lifecycle.Actions)
	assert.Equal(t, []lifecycle.Action{lifecycle.ActionMarkPaid}, rides[0].Bookings[1].Lifecycle.Actions)
	assert.Empty(t, rides[0].Bookings[2].Lifecycle.Actions)

	dash := svc.DriverDashboard(context.Background())
	assert.Equal(t, 1, dash.Rides)
	assert.Equal(t, 1, dash.UpcomingRides)
	assert.Equal(t, 1, dash.PendingRequests)
	assert.Equal(t, 1, dash.PendingCashPayments)
	assert.Equal(t, 4, dash.SeatsBooked)
	assert.InDelta(t, 200.0, dash.Earnings, 0.001)
}

func TestMarkPaidSendsCompletedStatus(t *testing.T) {
	var status string
	svc := newBookingService(t, map[string]http.HandlerFunc{
		"PATCH /api/v1/payments/30/status": func(w http.ResponseWriter, r *http.Request) {
			status = r.URL.Query().Get("status")
			w.Write([]byte(`{"paymentId":30,"paymentStatus":"COMPLETED"}`))
		},
		"GET /api/v1/rides/mine": writeJSON(`[]`),
	})

	res, err := svc.MarkPaid(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", status)
	assert.Equal(t, "Payment marked as completed!", res.Message)
	assert.Empty(t, res.Items)
}

func TestPostRideForbiddenIsReported(t *testing.T) {
	svc := newBookingService(t, map[string]http.HandlerFunc{
		"POST /api/v1/rides": writeError(http.StatusForbidden, ``),
	})

	_, err := svc.PostRide(context.Background(), &request.PostRideRequest{
		Source: "Pune", Destination: "Mumbai", Date: "2026-11-02", Time: "09:30", SeatsTotal: 3, Price: 450,
	})
	assert.True(t, errors.Is(err, gateway.ErrForbidden))
}

func TestPostRideValidation(t *testing.T) {
	svc := newBookingService(t, nil)
	_, err := svc.PostRide(context.Background(), &request.PostRideRequest{
		Source: "Pune", Destination: "Mumbai", Date: "02/11/2026", Time: "09:30", SeatsTotal: 0, Price: 450,
	})
	assert.ErrorIs(t, err, ErrValidation)
}
