package gateway

import (
	"context"
	"net/http"
)

func (c *Client) UserProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	var profile UserProfile
	if err := c.fetch(ctx, http.MethodGet, c.api(idPath("/users/%d", userID), nil), nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UserReviews(ctx context.Context, userID int64) (*UserReviews, error) {
	var reviews UserReviews
	if err := c.fetch(ctx, http.MethodGet, c.api(idPath("/reviews/user/%d", userID), nil), nil, &reviews); err != nil {
		return nil, err
	}
	if reviews.Reviews == nil {
		reviews.Reviews = []Review{}
	}
	return &reviews, nil
}

func (c *Client) SubmitReview(ctx context.Context, payload ReviewPayload) (*Review, error) {
	var review Review
	if err := c.fetch(ctx, http.MethodPost, c.api("/reviews", nil), payload, &review); err != nil {
		return nil, err
	}
	return &review, nil
}
