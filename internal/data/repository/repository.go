package repository

import (
	"smartride-portal/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Session SessionRepository
	Chat    ChatRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Session: NewSessionRepository(db, log),
		Chat:    NewChatRepository(db, log),
	}
}
