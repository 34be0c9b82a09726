package response

import (
	"time"

	"smartride-portal/internal/data/entity"
)

type ChatMessageResponse struct {
	Sender    entity.ChatSender `json:"sender"`
	Text      string            `json:"text"`
	IntentID  *string           `json:"intentId,omitempty"`
	Forbidden bool              `json:"forbidden"`
	CreatedAt time.Time         `json:"createdAt"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

func ChatMessageToResponse(m entity.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		Sender:    m.Sender,
		Text:      m.Text,
		IntentID:  m.IntentID,
		Forbidden: m.Forbidden,
		CreatedAt: m.CreatedAt,
	}
}
