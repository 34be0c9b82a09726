package repository

import (
	"context"
	"fmt"

	"smartride-portal/internal/data/entity"
	"smartride-portal/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatRepository interface {
	Append(ctx context.Context, msgs ...*entity.ChatMessage) error
	History(ctx context.Context, key uuid.UUID) ([]entity.ChatMessage, error)
	Clear(ctx context.Context, key uuid.UUID) error
}

type chatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewChatRepository(db database.PgxIface, log *zap.Logger) ChatRepository {
	return &chatRepository{
		db:  db,
		log: log.With(zap.String("repository", "chat")),
	}
}

// Append stores the messages in one transaction so a question is never
// saved without its answer.
func (r *chatRepository) Append(ctx context.Context, msgs ...*entity.ChatMessage) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO chat_messages (id, history_key, sender, text, intent_id, forbidden, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, m := range msgs {
		_, err := tx.Exec(ctx, query,
			m.ID,
			m.HistoryKey,
			m.Sender,
			m.Text,
			m.IntentID,
			m.Forbidden,
			m.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to append chat message",
				zap.Error(err),
				zap.String("history_key", m.HistoryKey.String()),
			)
			return fmt.Errorf("failed to append chat message: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit chat messages: %w", err)
	}
	return nil
}

func (r *chatRepository) History(ctx context.Context, key uuid.UUID) ([]entity.ChatMessage, error) {
	query := `
		SELECT id, history_key, sender, text, intent_id, forbidden, created_at
		FROM chat_messages
		WHERE history_key = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, key)
	if err != nil {
		r.log.Error("Failed to load chat history", zap.Error(err))
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	defer rows.Close()

	messages := []entity.ChatMessage{}
	for rows.Next() {
		var m entity.ChatMessage
		if err := rows.Scan(
			&m.ID,
			&m.HistoryKey,
			&m.Sender,
			&m.Text,
			&m.IntentID,
			&m.Forbidden,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat history: %w", err)
	}

	return messages, nil
}

func (r *chatRepository) Clear(ctx context.Context, key uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM chat_messages WHERE history_key = $1`, key)
	if err != nil {
		r.log.Error("Failed to clear chat history", zap.Error(err))
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}
