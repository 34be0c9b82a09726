package usecase

import (
	"smartride-portal/internal/cache"
	"smartride-portal/internal/chatbot"
	"smartride-portal/internal/data/repository"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/listview"
	"smartride-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	Booking      BookingService
	Admin        AdminService
	Profile      ProfileService
	Review       ReviewService
	Notification NotificationService
	Chat         ChatService
}

func NewService(
	repo *repository.Repository,
	gw *gateway.Client,
	profiles cache.Cache[gateway.UserProfile],
	bot *chatbot.Bot,
	config *utils.Config,
	log *zap.Logger,
	opts ...listview.PollerOption,
) *Service {
	s := &Service{
		Auth:         NewAuthService(repo, gw, config, log),
		Booking:      NewBookingService(gw, log),
		Admin:        NewAdminService(gw, config.Dashboard, log, opts...),
		Profile:      NewProfileService(gw, profiles, log),
		Review:       NewReviewService(gw, log),
		Notification: NewNotificationService(gw, log),
		Chat:         NewChatService(repo, bot, log),
	}

	// Per-session state goes with the session.
	s.Auth.OnLogout(func(token uuid.UUID) {
		s.Admin.Teardown(token)
		s.Notification.Forget(token)
	})
	return s
}
