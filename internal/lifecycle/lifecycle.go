// Package lifecycle decides what a user may do with a booking. Everything
// here is a pure function of the booking snapshot, the viewer's role and
// the current time; transitions themselves are made by the backend.
package lifecycle

import (
	"strings"
	"time"

	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/gateway"
)

type State string

const (
	StateRequested      State = "REQUESTED"
	StateApprovedUnpaid State = "APPROVED_UNPAID"
	StatePaid           State = "PAID"
	StateCancelled      State = "CANCELLED"
)

// TagCompletedReviewable marks a confirmed booking whose ride has left.
const TagCompletedReviewable = "COMPLETED_REVIEWABLE"

type Action string

const (
	ActionCancel   Action = "cancel"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionPay      Action = "pay"
	ActionMarkPaid Action = "mark-paid"
	ActionReview   Action = "review"
)

// Backend status strings.
const (
	statusPending   = "PENDING"
	statusConfirmed = "CONFIRMED"
	statusCancelled = "CANCELLED"
	statusRejected  = "REJECTED"
	statusCompleted = "COMPLETED"
	methodCash      = "CASH"
)

// Snapshot is the part of a booking the affordances depend on.
type Snapshot struct {
	BookingStatus  string
	PaymentStatus  string
	PaymentMethod  string
	PaymentID      *int64
	DriverApproved bool
	// Zero when the backend did not know the departure.
	Departure time.Time
}

func FromBooking(b gateway.Booking) Snapshot {
	return Snapshot{
		BookingStatus:  b.BookingStatus,
		PaymentStatus:  b.PaymentStatus,
		PaymentMethod:  b.PaymentMethod,
		PaymentID:      b.PaymentID,
		DriverApproved: b.DriverApproved,
		Departure:      b.DepartureDatetime.Time,
	}
}

func FromRideBooking(ride gateway.Ride, b gateway.RideBooking) Snapshot {
	return Snapshot{
		BookingStatus:  b.BookingStatus,
		PaymentStatus:  b.PaymentStatus,
		PaymentMethod:  b.PaymentMethod,
		PaymentID:      b.PaymentID,
		DriverApproved: b.DriverApproved,
		Departure:      ride.DepartureDatetime.Time,
	}
}

func is(value, want string) bool {
	return strings.EqualFold(strings.TrimSpace(value), want)
}

func (s Snapshot) cancelled() bool {
	return is(s.BookingStatus, statusCancelled) || is(s.BookingStatus, statusRejected)
}

func (s Snapshot) departed(now time.Time) bool {
	return !s.Departure.IsZero() && s.Departure.Before(now)
}

func StateOf(s Snapshot) State {
	switch {
	case s.cancelled():
		return StateCancelled
	case is(s.PaymentStatus, statusCompleted):
		return StatePaid
	case s.DriverApproved:
		return StateApprovedUnpaid
	}
	return StateRequested
}

// AwaitingApproval is shown to passengers in place of the pay button.
func AwaitingApproval(s Snapshot) bool {
	return is(s.PaymentStatus, statusPending) && !s.DriverApproved && !s.cancelled()
}

// ReviewEligible reports whether either party may review the ride.
func ReviewEligible(s Snapshot, now time.Time) bool {
	return s.departed(now) && !s.cancelled()
}

func CompletedReviewable(s Snapshot, now time.Time) bool {
	return s.departed(now) && is(s.BookingStatus, statusConfirmed)
}

// Actions lists the buttons role may press for the booking, in display order.
func Actions(s Snapshot, role entity.UserRole, now time.Time) []Action {
	actions := []Action{}

	cashPending := is(s.PaymentMethod, methodCash) && is(s.PaymentStatus, statusPending) && s.PaymentID != nil

	switch role {
	case entity.RolePassenger:
		// Also offered while a cash payment is pending.
		if is(s.PaymentStatus, statusPending) && s.DriverApproved && !s.cancelled() {
			actions = append(actions, ActionPay)
		}
		if is(s.BookingStatus, statusPending) {
			actions = append(actions, ActionCancel)
		}

	case entity.RoleDriver:
		if is(s.BookingStatus, statusPending) && !s.DriverApproved {
			actions = append(actions, ActionApprove, ActionReject)
		}
		if cashPending {
			actions = append(actions, ActionMarkPaid)
		}

	case entity.RoleAdmin:
		if cashPending {
			actions = append(actions, ActionMarkPaid)
		}
		return actions
	}

	if ReviewEligible(s, now) {
		actions = append(actions, ActionReview)
	}
	return actions
}

// Allows reports whether action is currently offered to role.
func Allows(s Snapshot, role entity.UserRole, now time.Time, action Action) bool {
	for _, a := range Actions(s, role, now) {
		if a == action {
			return true
		}
	}
	return false
}

// View is the lifecycle block attached to every rendered booking.
type View struct {
	State            State    `json:"state"`
	Tag              string   `json:"tag,omitempty"`
	Actions          []Action `json:"actions"`
	AwaitingApproval bool     `json:"awaitingApproval"`
}

func Describe(s Snapshot, role entity.UserRole, now time.Time) View {
	v := View{
		State:   StateOf(s),
		Actions: Actions(s, role, now),
	}
	if CompletedReviewable(s, now) {
		v.Tag = TagCompletedReviewable
	}
	if role == entity.RolePassenger {
		v.AwaitingApproval = AwaitingApproval(s)
	}
	return v
}
