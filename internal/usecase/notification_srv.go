package usecase

import (
	"context"
	"sync"

	"smartride-portal/internal/dto/response"
	"smartride-portal/internal/gateway"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationService interface {
	List(ctx context.Context, session uuid.UUID) (*response.NotificationsResponse, error)
	MarkSeen(ctx context.Context, session uuid.UUID, id int64) *response.NotificationsResponse
	Forget(session uuid.UUID)
}

// feed is one session's last known notifications plus the ids it has
// marked seen locally.
type feed struct {
	items []gateway.Notification
	seen  map[int64]bool
}

type notificationService struct {
	gateway *gateway.Client
	log     *zap.Logger

	mu    sync.Mutex
	feeds map[uuid.UUID]*feed
}

func NewNotificationService(gw *gateway.Client, log *zap.Logger) NotificationService {
	return &notificationService{
		gateway: gw,
		log:     log.With(zap.String("service", "notification")),
		feeds:   make(map[uuid.UUID]*feed),
	}
}

// List fetches the user's notifications. When the backend fails the last
// known list is returned instead, if there is one.
func (s *notificationService) List(ctx context.Context, session uuid.UUID) (*response.NotificationsResponse, error) {
	items, err := s.gateway.MyNotifications(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	f := s.feed(session)
	if err != nil {
		s.log.Warn("Failed to load notifications", zap.Error(err))
		if f.items == nil {
			return nil, err
		}
		return f.render(), nil
	}

	f.items = items
	return f.render(), nil
}

// MarkSeen flips the flag locally first. A failed backend call is logged
// and the flag stays flipped.
func (s *notificationService) MarkSeen(ctx context.Context, session uuid.UUID, id int64) *response.NotificationsResponse {
	s.mu.Lock()
	s.feed(session).seen[id] = true
	s.mu.Unlock()

	if err := s.gateway.MarkNotificationSeen(ctx, id); err != nil {
		s.log.Warn("Failed to mark notification seen", zap.Error(err), zap.Int64("notification_id", id))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed(session).render()
}

func (s *notificationService) Forget(session uuid.UUID) {
	s.mu.Lock()
	delete(s.feeds, session)
	s.mu.Unlock()
}

func (s *notificationService) feed(session uuid.UUID) *feed {
	f, ok := s.feeds[session]
	if !ok {
		f = &feed{seen: map[int64]bool{}}
		s.feeds[session] = f
	}
	return f
}

func (f *feed) render() *response.NotificationsResponse {
	resp := &response.NotificationsResponse{
		Items: make([]gateway.Notification, 0, len(f.items)),
	}
	for _, n := range f.items {
		if f.seen[n.ID] {
			n.Seen = true
		}
		if !n.Seen {
			resp.Unread++
		}
		resp.Items = append(resp.Items, n)
	}
	return resp
}
