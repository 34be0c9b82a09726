package response

import (
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/lifecycle"
	"smartride-portal/internal/listview"
)

// Table is one admin table page as rendered.
type Table[R any] struct {
	Resource   string         `json:"resource"`
	Items      []R            `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
	Search     string         `json:"search"`
	SortBy     string         `json:"sortBy"`
	Desc       bool           `json:"desc"`
	Error      string         `json:"error,omitempty"`
	Busy       []string       `json:"busy"`
}

// NewTable renders a view snapshot, turning each row into its display form.
func NewTable[T, R any](resource string, snap listview.Snapshot[T], row func(T) R) Table[R] {
	items := make([]R, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, row(item))
	}
	return Table[R]{
		Resource: resource,
		Items:    items,
		Pagination: PaginationMeta{
			Total:      snap.Total,
			Page:       snap.Page.Page,
			PerPage:    listview.PageSize,
			TotalPages: snap.TotalPages,
		},
		Search: snap.Search,
		SortBy: snap.SortBy,
		Desc:   snap.Desc,
		Error:  snap.Error,
		Busy:   snap.Busy,
	}
}

type UserRow struct {
	gateway.AdminUser
	Actions []string `json:"actions"`
}

type RideRow struct {
	gateway.DriverRide
	Revenue    float64  `json:"revenue"`
	Commission float64  `json:"commission"`
	Actions    []string `json:"actions"`
}

type BookingRow struct {
	gateway.Booking
	Lifecycle lifecycle.View `json:"lifecycle"`
	Actions   []string       `json:"actions"`
}

type PaymentRow struct {
	gateway.Payment
	Actions []string `json:"actions"`
}

type DisputeRow struct {
	DisputeID     int64  `json:"disputeId"`
	BookingID     int64  `json:"bookingId"`
	RideID        int64  `json:"rideId"`
	PassengerName string `json:"passengerName"`
	DriverName    string `json:"driverName"`
	Status        string `json:"status"`
}

type AdminDashboard struct {
	Stats         *gateway.AdminStats `json:"stats,omitempty"`
	StatsError    string              `json:"statsError,omitempty"`
	TotalRevenue  float64             `json:"totalRevenue"`
	Commission    float64             `json:"commission"`
	CommissionPct float64             `json:"commissionPct"`
	RidesError    string              `json:"ridesError,omitempty"`
	Tables        []string            `json:"tables"`
}

// ConfirmPrompt is returned with 409 when an action still needs a yes.
type ConfirmPrompt struct {
	Prompt string `json:"prompt"`
}
