package gateway

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) SearchRides(ctx context.Context, source, destination, date string) ([]Ride, error) {
	query := url.Values{}
	if source != "" {
		query.Set("source", source)
	}
	if destination != "" {
		query.Set("destination", destination)
	}
	if date != "" {
		query.Set("date", date)
	}
	return fetchList[Ride](ctx, c, c.api("/rides/search", query))
}

// MyRides lists the calling driver's rides with their bookings.
func (c *Client) MyRides(ctx context.Context) ([]DriverRide, error) {
	return fetchList[DriverRide](ctx, c, c.api("/rides/mine", nil))
}

func (c *Client) PostRide(ctx context.Context, ride NewRide) (*Ride, error) {
	var created Ride
	if err := c.fetch(ctx, http.MethodPost, c.api("/rides", nil), ride, &created); err != nil {
		return nil, err
	}
	return &created, nil
}
