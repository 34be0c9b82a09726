package gateway

import (
	"context"
	"net/http"
	"net/url"
)

const PaymentCompleted = "COMPLETED"

func (c *Client) FareEstimate(ctx context.Context, bookingID int64) (*FareEstimate, error) {
	var estimate FareEstimate
	if err := c.fetch(ctx, http.MethodGet, c.api(idPath("/payments/estimate/%d", bookingID), nil), nil, &estimate); err != nil {
		return nil, err
	}
	return &estimate, nil
}

func (c *Client) Pay(ctx context.Context, bookingID int64, method string) (*Payment, error) {
	query := url.Values{"paymentMethodStr": []string{method}}
	var payment Payment
	if err := c.fetch(ctx, http.MethodPost, c.api(idPath("/payments/pay/%d", bookingID), query), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// SetPaymentStatus is the driver-facing status update used to confirm cash.
func (c *Client) SetPaymentStatus(ctx context.Context, paymentID int64, status string) (*Payment, error) {
	query := url.Values{"status": []string{status}}
	var payment Payment
	if err := c.fetch(ctx, http.MethodPatch, c.api(idPath("/payments/%d/status", paymentID), query), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
