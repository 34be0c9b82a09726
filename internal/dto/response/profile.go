package response

import "smartride-portal/internal/gateway"

// ProfileResponse is the profile overlay. Either half may fail alone.
type ProfileResponse struct {
	Profile      gateway.UserProfile `json:"profile"`
	Reviews      []gateway.Review    `json:"reviews"`
	ProfileError string              `json:"profileError,omitempty"`
	ReviewsError string              `json:"reviewsError,omitempty"`
}
