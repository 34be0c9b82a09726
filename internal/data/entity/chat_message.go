package entity

import "github.com/google/uuid"

type ChatSender string

const (
	SenderUser ChatSender = "user"
	SenderBot  ChatSender = "bot"
)

type ChatMessage struct {
	BaseSimple
	HistoryKey uuid.UUID  `db:"history_key"`
	Sender     ChatSender `db:"sender"`
	Text       string     `db:"text"`
	IntentID   *string    `db:"intent_id"`
	Forbidden  bool       `db:"forbidden"`
}
