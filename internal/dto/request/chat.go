package request

type ChatRequest struct {
	Message string `json:"message" validate:"max=2000"`
}
