package request

type SearchRidesRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Date        string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type BookRideRequest struct {
	Seats int `json:"seats"`
}

type PayRequest struct {
	Method string `json:"method" validate:"required,oneof=CASH UPI CREDIT WALLET"`
}

type PostRideRequest struct {
	Source      string  `json:"source" validate:"required"`
	Destination string  `json:"destination" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string  `json:"time" validate:"required,datetime=15:04"`
	SeatsTotal  int     `json:"seatsTotal" validate:"gte=1"`
	Price       float64 `json:"price" validate:"gt=0"`
}
