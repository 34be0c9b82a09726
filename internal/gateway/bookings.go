package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// BookRide requests seats on a ride. The booking starts PENDING.
func (c *Client) BookRide(ctx context.Context, rideID int64, seats int) (*Booking, error) {
	query := url.Values{"seats": []string{strconv.Itoa(seats)}}
	var booking Booking
	if err := c.fetch(ctx, http.MethodPost, c.api(idPath("/bookings/%d", rideID), query), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// MyBookings lists the calling passenger's bookings.
func (c *Client) MyBookings(ctx context.Context) ([]Booking, error) {
	return fetchList[Booking](ctx, c, c.api("/bookings/mine", nil))
}

func (c *Client) GetBooking(ctx context.Context, bookingID int64) (*Booking, error) {
	var booking Booking
	if err := c.fetch(ctx, http.MethodGet, c.api(idPath("/bookings/%d", bookingID), nil), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) CancelBooking(ctx context.Context, bookingID int64) (string, error) {
	return c.send(ctx, http.MethodPost, c.api(idPath("/bookings/%d/cancel", bookingID), nil), nil)
}

func (c *Client) ApproveBooking(ctx context.Context, bookingID int64) (string, error) {
	return c.send(ctx, http.MethodPost, c.api(idPath("/bookings/approve/%d", bookingID), nil), nil)
}

func (c *Client) RejectBooking(ctx context.Context, bookingID int64) (string, error) {
	return c.send(ctx, http.MethodPost, c.api(idPath("/bookings/reject/%d", bookingID), nil), nil)
}
