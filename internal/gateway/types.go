package gateway

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"smartride-portal/internal/revenue"
)

// Timestamp accepts every date shape the backend emits: RFC 3339, zone-less
// local date-times, epoch milliseconds and placeholders such as "Unknown".
// Unparseable text is kept in Raw with a zero Time.
type Timestamp struct {
	time.Time
	Raw string
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return Timestamp{Time: t}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}
		}
	}
	return Timestamp{Raw: s}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = ParseTimestamp(s)
		return nil
	}
	ms, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*t = Timestamp{Raw: string(data)}
		return nil
	}
	*t = Timestamp{Time: time.UnixMilli(int64(ms))}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		if t.Raw != "" {
			return json.Marshal(t.Raw)
		}
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}

// Before reports whether the timestamp is known and earlier than now.
func (t Timestamp) Before(now time.Time) bool {
	return !t.Time.IsZero() && t.Time.Before(now)
}

// ==================== AUTH ====================

type LoginResponse struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type RegisterPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role"`
	VehicleModel string `json:"vehicleModel,omitempty"`
	LicensePlate string `json:"licensePlate,omitempty"`
	Capacity     *int   `json:"capacity,omitempty"`
}

// ==================== USERS ====================

type UserProfile struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name,omitempty"`
	Email        string     `json:"email,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Role         string     `json:"role,omitempty"`
	VehicleModel string     `json:"vehicleModel,omitempty"`
	LicensePlate string     `json:"licensePlate,omitempty"`
	Capacity     *int       `json:"capacity,omitempty"`
	CreatedAt    *Timestamp `json:"createdAt,omitempty"`
	AvgRating    *float64   `json:"avgRating,omitempty"`
	ReviewCount  *int       `json:"reviewCount,omitempty"`
}

// AdminUser is a row of the admin users table.
type AdminUser struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	Role         string     `json:"role"`
	VehicleModel string     `json:"vehicleModel,omitempty"`
	LicensePlate string     `json:"licensePlate,omitempty"`
	CreatedAt    *Timestamp `json:"createdAt,omitempty"`
	Blocked      bool       `json:"blocked"`
	Verified     bool       `json:"verified"`
}

// UnmarshalJSON also accepts the isBlocked / isVerified spellings.
func (u *AdminUser) UnmarshalJSON(data []byte) error {
	type alias AdminUser
	aux := struct {
		*alias
		IsBlocked  *bool `json:"isBlocked"`
		IsVerified *bool `json:"isVerified"`
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.IsBlocked != nil {
		u.Blocked = *aux.IsBlocked
	}
	if aux.IsVerified != nil {
		u.Verified = *aux.IsVerified
	}
	return nil
}

// ==================== RIDES ====================

type Ride struct {
	RideID            int64     `json:"rideId"`
	DriverID          int64     `json:"driverId"`
	DriverName        string    `json:"driverName"`
	Source            string    `json:"source"`
	Destination       string    `json:"destination"`
	DepartureDatetime Timestamp `json:"departureDatetime"`
	SeatsTotal        int       `json:"seatsTotal"`
	SeatsAvailable    int       `json:"seatsAvailable"`
	Price             float64   `json:"price"`
	VehicleModel      string    `json:"vehicleModel,omitempty"`
	LicensePlate      string    `json:"licensePlate,omitempty"`
}

// RideBooking is a booking as nested under a driver's ride.
type RideBooking struct {
	BookingID     int64    `json:"bookingId"`
	PassengerID   int64    `json:"passengerId"`
	PassengerName string   `json:"passengerName"`
	SeatsBooked   int      `json:"seatsBooked"`
	TotalPrice    *float64 `json:"totalPrice"`
	PaymentID     *int64   `json:"paymentId"`
	PaymentMethod string   `json:"paymentMethod"`
	PaymentStatus string   `json:"paymentStatus"`
	BookingStatus string   `json:"bookingStatus"`
	// Not sent on this endpoint; approval is implied by the booking status.
	DriverApproved bool `json:"driverApproved"`
}

type DriverRide struct {
	Ride
	Bookings []RideBooking `json:"bookings"`
}

// AdminRide keeps every field the admin endpoint sent so revenue can be
// derived from whichever subset is present.
type AdminRide struct {
	DriverRide
	Record revenue.Record `json:"-"`
}

func (r *AdminRide) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &r.DriverRide); err != nil {
		return err
	}
	return json.Unmarshal(data, &r.Record)
}

func (r AdminRide) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.DriverRide)
}

type NewRide struct {
	Source      string  `json:"source"`
	Destination string  `json:"destination"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	SeatsTotal  int     `json:"seatsTotal"`
	Price       float64 `json:"price"`
}

// ==================== BOOKINGS & PAYMENTS ====================

type Booking struct {
	BookingID         int64     `json:"bookingId"`
	RideID            int64     `json:"rideId"`
	Source            string    `json:"source"`
	Destination       string    `json:"destination"`
	DriverID          *int64    `json:"driverId"`
	PassengerID       *int64    `json:"passengerId"`
	DriverName        string    `json:"driverName"`
	PassengerName     string    `json:"passengerName"`
	SeatsBooked       int       `json:"seatsBooked"`
	TotalPrice        *float64  `json:"totalPrice"`
	BookingStatus     string    `json:"bookingStatus"`
	PaymentStatus     string    `json:"paymentStatus"`
	PaymentMethod     string    `json:"paymentMethod"`
	PaymentID         *int64    `json:"paymentId,omitempty"`
	DepartureDatetime Timestamp `json:"departureDatetime"`
	DriverApproved    bool      `json:"driverApproved"`
}

type FareEstimate struct {
	BookingID  int64   `json:"bookingId"`
	RideID     int64   `json:"rideId"`
	DistanceKm float64 `json:"distanceKm"`
	TotalFare  float64 `json:"totalFare"`
}

type Payment struct {
	PaymentID     int64      `json:"paymentId"`
	BookingID     int64      `json:"bookingId"`
	RideID        int64      `json:"rideId"`
	Amount        float64    `json:"amount"`
	PaymentMethod string     `json:"paymentMethod"`
	PaymentStatus string     `json:"paymentStatus"`
	CreatedAt     *Timestamp `json:"createdAt,omitempty"`
	PassengerName string     `json:"passengerName"`
	DriverName    string     `json:"driverName"`
}

// UnmarshalJSON accepts the payment endpoint's "status" spelling too.
func (p *Payment) UnmarshalJSON(data []byte) error {
	type alias Payment
	aux := struct {
		*alias
		Status string `json:"status"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = aux.Status
	}
	return nil
}

// Dispute is a disputed booking as listed for the admin.
type Dispute struct {
	DisputeID     *int64 `json:"disputeId,omitempty"`
	ID            int64  `json:"id"`
	BookingID     *int64 `json:"bookingId,omitempty"`
	RideID        int64  `json:"rideId"`
	PassengerName string `json:"passengerName,omitempty"`
	DriverName    string `json:"driverName,omitempty"`
	Status        string `json:"status,omitempty"`
	BookingStatus string `json:"bookingStatus,omitempty"`
}

// Key is the dispute id, or the booking id when the backend only lists
// disputed bookings.
func (d Dispute) Key() int64 {
	if d.DisputeID != nil {
		return *d.DisputeID
	}
	if d.BookingID != nil {
		return *d.BookingID
	}
	return d.ID
}

func (d Dispute) Booking() int64 {
	if d.BookingID != nil {
		return *d.BookingID
	}
	return d.ID
}

func (d Dispute) State() string {
	if d.Status != "" {
		return d.Status
	}
	return d.BookingStatus
}

type AdminStats struct {
	TotalUsers        int64   `json:"totalUsers"`
	ActiveUsers       int64   `json:"activeUsers"`
	TotalRides        int64   `json:"totalRides"`
	TotalBookings     int64   `json:"totalBookings"`
	TotalPayments     int64   `json:"totalPayments"`
	TotalEarnings     float64 `json:"totalEarnings"`
	CancelledBookings int64   `json:"cancelledBookings"`
	DisputedBookings  int64   `json:"disputedBookings"`
}

// ==================== REVIEWS ====================

type Review struct {
	ID            int64      `json:"id"`
	RideID        *int64     `json:"rideId,omitempty"`
	BookingID     *int64     `json:"bookingId,omitempty"`
	ReviewerID    *int64     `json:"reviewerId,omitempty"`
	RevieweeID    int64      `json:"revieweeId"`
	Rating        int        `json:"rating"`
	Comment       string     `json:"comment,omitempty"`
	CreatedAt     *Timestamp `json:"createdAt,omitempty"`
	ReviewerName  string     `json:"reviewerName,omitempty"`
	ReviewerEmail string     `json:"reviewerEmail,omitempty"`
}

type UserReviews struct {
	AvgRating   *float64 `json:"avgRating"`
	ReviewCount *int     `json:"reviewCount"`
	Reviews     []Review `json:"reviews"`
}

type ReviewPayload struct {
	RideID     *int64 `json:"rideId"`
	BookingID  *int64 `json:"bookingId"`
	RevieweeID int64  `json:"revieweeId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// ==================== NOTIFICATIONS ====================

type Notification struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	RideID    *int64     `json:"rideId,omitempty"`
	BookingID *int64     `json:"bookingId,omitempty"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Channel   string     `json:"channel,omitempty"`
	Seen      bool       `json:"seen"`
	CreatedAt *Timestamp `json:"createdAt,omitempty"`
}
