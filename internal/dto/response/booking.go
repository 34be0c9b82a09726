package response

import (
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/lifecycle"
)

// BookingView is a booking with the actions its viewer may take.
type BookingView struct {
	gateway.Booking
	Lifecycle lifecycle.View `json:"lifecycle"`
}

type RideBookingView struct {
	gateway.RideBooking
	Lifecycle lifecycle.View `json:"lifecycle"`
}

type DriverRideView struct {
	gateway.Ride
	Bookings []RideBookingView `json:"bookings"`
}

// ActionResult is returned by every mutating action together with the
// re-fetched list it affected.
type ActionResult[T any] struct {
	Message string `json:"message"`
	Items   T      `json:"items"`
}

type PaymentView struct {
	Booking    BookingView           `json:"booking"`
	Estimate   *gateway.FareEstimate `json:"estimate,omitempty"`
	TotalPrice float64               `json:"totalPrice"`
	CanPay     bool                  `json:"canPay"`
	Notice     string                `json:"notice,omitempty"`
	Methods    []string              `json:"methods"`
}

type PayResult struct {
	Message string           `json:"message"`
	Payment *gateway.Payment `json:"payment,omitempty"`
	// The page moves on to the dashboard after paying.
	Redirect string `json:"redirect"`
}

type PassengerDashboard struct {
	Total            int            `json:"total"`
	ByState          map[string]int `json:"byState"`
	AwaitingApproval int            `json:"awaitingApproval"`
	ReadyToPay       int            `json:"readyToPay"`
	Reviewable       int            `json:"reviewable"`
	Upcoming         []BookingView  `json:"upcoming"`
	Error            string         `json:"error,omitempty"`
}

type DriverDashboard struct {
	Rides               int     `json:"rides"`
	UpcomingRides       int     `json:"upcomingRides"`
	PendingRequests     int     `json:"pendingRequests"`
	PendingCashPayments int     `json:"pendingCashPayments"`
	SeatsBooked         int     `json:"seatsBooked"`
	Earnings            float64 `json:"earnings"`
	Error               string  `json:"error,omitempty"`
}
