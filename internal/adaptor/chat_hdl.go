package adaptor

import (
	"net/http"
	"time"

	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/utils"

	"github.com/google/uuid"
)

// chatCookieTTL keeps a transcript across visits from the same browser.
const chatCookieTTL = 365 * 24 * time.Hour

type ChatHandler struct {
	base
	service usecase.ChatService
}

func NewChatHandler(b base, service usecase.ChatService) *ChatHandler {
	return &ChatHandler{
		base:    b,
		service: service,
	}
}

// historyKey returns the browser's transcript key, issuing one on first use.
func (h *ChatHandler) historyKey(w http.ResponseWriter, r *http.Request) uuid.UUID {
	if key, ok := utils.CookieUUID(r, utils.ChatCookie); ok {
		return key
	}
	key := uuid.New()
	utils.SetCookie(w, utils.ChatCookie, key.String(), time.Now().Add(chatCookieTTL), h.secure)
	return key
}

// History handles GET /chat
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.History(r.Context(), h.historyKey(w, r))
	if err != nil {
		h.handleServiceError(w, r, err, "load chat", "Failed to load chat")
		return
	}
	utils.ResponseSuccess(w, "success", history)
}

// Send handles POST /chat
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req request.ChatRequest
	if err := decode(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	history, err := h.service.Send(r.Context(), h.historyKey(w, r), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "send chat message", "Failed to send message")
		return
	}
	utils.ResponseSuccess(w, "success", history)
}

// Clear handles DELETE /chat
func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	key, ok := utils.CookieUUID(r, utils.ChatCookie)
	if !ok {
		utils.ResponseSuccess(w, "Chat cleared", nil)
		return
	}

	if err := h.service.Clear(r.Context(), key); err != nil {
		h.handleServiceError(w, r, err, "clear chat", "Failed to clear chat")
		return
	}
	utils.ResponseSuccess(w, "Chat cleared", nil)
}
