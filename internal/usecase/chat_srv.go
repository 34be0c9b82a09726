package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"smartride-portal/internal/chatbot"
	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/data/repository"
	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/dto/response"
	"smartride-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatService interface {
	History(ctx context.Context, key uuid.UUID) (*response.ChatHistoryResponse, error)
	Send(ctx context.Context, key uuid.UUID, req *request.ChatRequest) (*response.ChatHistoryResponse, error)
	Clear(ctx context.Context, key uuid.UUID) error
}

type chatService struct {
	repo *repository.Repository
	bot  *chatbot.Bot
	log  *zap.Logger
	now  func() time.Time
}

func NewChatService(repo *repository.Repository, bot *chatbot.Bot, log *zap.Logger) ChatService {
	return &chatService{
		repo: repo,
		bot:  bot,
		log:  log.With(zap.String("service", "chat")),
		now:  time.Now,
	}
}

// History returns the stored transcript. A new transcript starts with the
// welcome message.
func (s *chatService) History(ctx context.Context, key uuid.UUID) (*response.ChatHistoryResponse, error) {
	msgs, err := s.repo.Chat.History(ctx, key)
	if err != nil {
		s.log.Error("Failed to load chat history", zap.Error(err))
		return nil, fmt.Errorf("failed to load chat history")
	}
	if len(msgs) == 0 {
		msgs = []entity.ChatMessage{*s.welcome(key, s.now())}
	}
	return render(msgs), nil
}

func (s *chatService) Send(ctx context.Context, key uuid.UUID, req *request.ChatRequest) (*response.ChatHistoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	text := strings.TrimSpace(req.Message)
	if text == "" {
		return s.History(ctx, key)
	}

	history, err := s.repo.Chat.History(ctx, key)
	if err != nil {
		s.log.Error("Failed to load chat history", zap.Error(err))
		return nil, fmt.Errorf("failed to load chat history")
	}

	now := s.now()
	var fresh []*entity.ChatMessage
	if len(history) == 0 {
		fresh = append(fresh, s.welcome(key, now))
	}

	reply := s.bot.Respond(text)
	intentID := reply.IntentID

	// Distinct timestamps keep the transcript order stable.
	user := &entity.ChatMessage{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now.Add(time.Microsecond)},
		HistoryKey: key,
		Sender:     entity.SenderUser,
		Text:       text,
	}
	bot := &entity.ChatMessage{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now.Add(2 * time.Microsecond)},
		HistoryKey: key,
		Sender:     entity.SenderBot,
		Text:       reply.Reply,
		IntentID:   &intentID,
		Forbidden:  reply.Forbidden,
	}
	fresh = append(fresh, user, bot)

	if err := s.repo.Chat.Append(ctx, fresh...); err != nil {
		s.log.Error("Failed to store chat messages", zap.Error(err))
		return nil, fmt.Errorf("failed to store chat messages")
	}

	s.log.Debug("Chat reply",
		zap.String("intent", reply.IntentID),
		zap.Bool("forbidden", reply.Forbidden))

	for _, m := range fresh {
		history = append(history, *m)
	}
	return render(history), nil
}

func (s *chatService) Clear(ctx context.Context, key uuid.UUID) error {
	if err := s.repo.Chat.Clear(ctx, key); err != nil {
		s.log.Error("Failed to clear chat history", zap.Error(err))
		return fmt.Errorf("failed to clear chat history")
	}
	return nil
}

func (s *chatService) welcome(key uuid.UUID, now time.Time) *entity.ChatMessage {
	return &entity.ChatMessage{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		HistoryKey: key,
		Sender:     entity.SenderBot,
		Text:       chatbot.WelcomeMessage,
	}
}

func render(msgs []entity.ChatMessage) *response.ChatHistoryResponse {
	out := &response.ChatHistoryResponse{
		Messages: make([]response.ChatMessageResponse, 0, len(msgs)),
	}
	for _, m := range msgs {
		out.Messages = append(out.Messages, response.ChatMessageToResponse(m))
	}
	return out
}
