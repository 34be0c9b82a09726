// Package revenue derives ride revenue and platform commission from the
// loosely populated ride records the admin endpoints return.
//
// Different endpoints fill different subsets of fields, so revenue is the
// first answer produced by an ordered list of extractors.
package revenue

import (
	"github.com/spf13/cast"
)

// DefaultCommissionPct is the platform's cut of each ride's revenue.
const DefaultCommissionPct = 10.0

// Record is a ride as decoded from JSON, with every field it carried.
type Record map[string]any

// Extractor reports a revenue figure and whether it applies to the record.
type Extractor func(Record) (float64, bool)

// Chain is the precedence used for displayed totals. Order matters.
var Chain = []Extractor{
	FromServerTotal,
	FromBookings,
	FromFareTimesSeats,
}

// Derive returns the first revenue figure produced by Chain, or zero.
func Derive(r Record) float64 {
	if r == nil {
		return 0
	}
	for _, extract := range Chain {
		if v, ok := extract(r); ok {
			return v
		}
	}
	return 0
}

// Commission sums pct percent of every ride's derived revenue.
func Commission(rides []Record, pct float64) float64 {
	total := 0.0
	for _, r := range rides {
		total += Derive(r) * (pct / 100)
	}
	return total
}

// FromServerTotal uses totalRevenue when the server supplied a numeric one.
func FromServerTotal(r Record) (float64, bool) {
	v, ok := r["totalRevenue"]
	if !ok || v == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FromBookings sums totalPrice (or amount) over the ride's bookings. A zero
// sum does not count as an answer.
func FromBookings(r Record) (float64, bool) {
	bookings := bookingsOf(r)
	if len(bookings) == 0 {
		return 0, false
	}

	sum := 0.0
	for _, b := range bookings {
		item, ok := b.(map[string]any)
		if !ok {
			continue
		}
		price := firstPresent(item, "totalPrice", "amount")
		if f, err := cast.ToFloat64E(price); err == nil {
			sum += f
		}
	}
	if sum == 0 {
		return 0, false
	}
	return sum, true
}

// FromFareTimesSeats multiplies the per-seat fare by the filled seat count,
// taken from seatsFilled, then bookedSeats, then the number of bookings.
func FromFareTimesSeats(r Record) (float64, bool) {
	fare, err := cast.ToFloat64E(firstPresent(r, "fare"))
	if err != nil {
		return 0, false
	}

	var seats float64
	if v := firstPresent(r, "seatsFilled", "bookedSeats"); v != nil {
		seats = cast.ToFloat64(v)
	} else {
		seats = float64(len(bookingsOf(r)))
	}

	if fare > 0 && seats > 0 {
		return fare * seats, true
	}
	return 0, false
}

func bookingsOf(r Record) []any {
	bookings, _ := r["bookings"].([]any)
	return bookings
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
