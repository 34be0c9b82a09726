package gateway

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats
	if err := c.fetch(ctx, http.MethodGet, c.api("/admin/stats", nil), nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) AdminUsers(ctx context.Context) ([]AdminUser, error) {
	return fetchList[AdminUser](ctx, c, c.api("/admin/users", nil))
}

func (c *Client) AdminRides(ctx context.Context) ([]AdminRide, error) {
	return fetchList[AdminRide](ctx, c, c.api("/admin/rides", nil))
}

func (c *Client) AdminBookings(ctx context.Context) ([]Booking, error) {
	return fetchList[Booking](ctx, c, c.api("/admin/bookings", nil))
}

func (c *Client) AdminPayments(ctx context.Context) ([]Payment, error) {
	return fetchList[Payment](ctx, c, c.api("/admin/payments", nil))
}

func (c *Client) AdminDisputes(ctx context.Context) ([]Dispute, error) {
	return fetchList[Dispute](ctx, c, c.api("/admin/disputes", nil))
}

func (c *Client) BlockUser(ctx context.Context, userID int64) (string, error) {
	return c.send(ctx, http.MethodPut, c.api(idPath("/admin/block-user/%d", userID), nil), nil)
}

func (c *Client) VerifyDriver(ctx context.Context, userID int64) (string, error) {
	return c.send(ctx, http.MethodPut, c.api(idPath("/admin/verify-driver/%d", userID), nil), nil)
}

func (c *Client) AdminSetPaymentStatus(ctx context.Context, paymentID int64, status string) (string, error) {
	query := url.Values{"status": []string{status}}
	return c.send(ctx, http.MethodPatch, c.api(idPath("/admin/payments/%d/status", paymentID), query), nil)
}

func (c *Client) WithdrawCommission(ctx context.Context, amount float64) (string, error) {
	payload := map[string]float64{"amount": amount}
	return c.send(ctx, http.MethodPost, c.api("/admin/withdraw-commission", nil), payload)
}
