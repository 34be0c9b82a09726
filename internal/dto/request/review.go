package request

// CreateReviewRequest is the review form. RevieweeID may be omitted; it is
// then resolved from the booking.
type CreateReviewRequest struct {
	RideID     *int64 `json:"rideId,omitempty"`
	BookingID  *int64 `json:"bookingId,omitempty"`
	RevieweeID *int64 `json:"revieweeId,omitempty"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment" validate:"max=1000"`
}
