package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/dto/response"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/listview"
	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Auth         *AuthHandler
	Passenger    *PassengerHandler
	Driver       *DriverHandler
	Admin        *AdminHandler
	Profile      *ProfileHandler
	Notification *NotificationHandler
	Chat         *ChatHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	b := func(name string) base {
		return base{
			auth:   service.Auth,
			log:    log.With(zap.String("handler", name)),
			secure: config.Session.CookieSecure,
		}
	}

	return &Handler{
		Auth:         NewAuthHandler(b("auth"), service.Auth),
		Passenger:    NewPassengerHandler(b("passenger"), service.Booking, service.Review),
		Driver:       NewDriverHandler(b("driver"), service.Booking, service.Review),
		Admin:        NewAdminHandler(b("admin"), service.Admin),
		Profile:      NewProfileHandler(b("profile"), service.Profile),
		Notification: NewNotificationHandler(b("notification"), service.Notification),
		Chat:         NewChatHandler(b("chat"), service.Chat),
	}
}

// base carries what every handler needs to answer errors, including
// ending the session when the backend rejects its token.
type base struct {
	auth   usecase.AuthService
	log    *zap.Logger
	secure bool
}

// handleServiceError maps service and gateway errors onto the response
// envelope. fallback is shown when the backend sent no usable message.
func (b *base) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation, fallback string) {
	var (
		userErr    *usecase.UserError
		confirmErr *usecase.ConfirmationError
		authErr    *gateway.AuthError
	)

	switch {
	case errors.Is(err, usecase.ErrValidation):
		b.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.As(err, &userErr):
		b.log.Warn(operation+" rejected", zap.String("reason", userErr.Message))
		utils.ResponseBadRequest(w, userErr.Message, nil)

	case errors.As(err, &confirmErr):
		utils.ResponseConflict(w, confirmErr.Prompt, response.ConfirmPrompt{Prompt: confirmErr.Prompt})

	case errors.Is(err, listview.ErrBusy):
		utils.ResponseConflict(w, "Action already in progress", nil)

	case errors.Is(err, usecase.ErrUnknownTable), errors.Is(err, usecase.ErrRowNotFound):
		utils.ResponseNotFound(w, err.Error())

	// Login failures are 401s too, but must not end a session.
	case errors.As(err, &authErr):
		b.log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, gateway.Message(err, "Login failed"))

	case errors.Is(err, gateway.ErrUnauthorized):
		b.expireSession(w, r)

	case errors.Is(err, gateway.ErrForbidden):
		b.log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, gateway.Message(err, fallback))

	case errors.Is(err, gateway.ErrNotFound):
		utils.ResponseNotFound(w, gateway.Message(err, fallback))

	case errors.Is(err, gateway.ErrUnavailable):
		b.log.Error("Failed to "+operation+" - backend unavailable", zap.Error(err))
		utils.ResponseBadGateway(w, fallback)

	default:
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			if apiErr.Status >= http.StatusInternalServerError {
				b.log.Error("Failed to "+operation, zap.Error(err))
				utils.ResponseBadGateway(w, gateway.Message(err, fallback))
				return
			}
			b.log.Warn(operation+" failed", zap.Error(err))
			utils.ResponseBadRequest(w, gateway.Message(err, fallback), nil)
			return
		}

		b.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// expireSession ends a session whose backend token was rejected and sends
// the user to their login page.
func (b *base) expireSession(w http.ResponseWriter, r *http.Request) {
	login := "/"
	if session, ok := utils.GetSessionFromContext(r.Context()); ok {
		login = session.Role.LoginPath()
		if err := b.auth.Logout(r.Context(), session.Token); err != nil {
			b.log.Error("Failed to revoke rejected session", zap.Error(err))
		}
		b.log.Info("Backend rejected token, session ended", zap.String("role", string(session.Role)))
	}
	utils.ClearCookie(w, utils.SessionCookie, b.secure)
	utils.ResponseRedirect(w, login, "Unauthorized. Please login.")
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func pathID(r *http.Request, name string) (int64, error) {
	return utils.ParseID(chi.URLParam(r, name))
}

// confirmed reports whether the user already answered the action's
// confirmation prompt, via {"confirm": true} or ?confirm=true.
func confirmed(r *http.Request) bool {
	if ok, err := strconv.ParseBool(r.URL.Query().Get("confirm")); err == nil && ok {
		return true
	}
	var body request.ConfirmRequest
	if err := decode(r, &body); err != nil {
		return false
	}
	return body.Confirm
}

func sessionResponse(r *http.Request) *response.SessionResponse {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		return nil
	}
	resp := response.SessionToResponse(session, time.Now())
	return &resp
}
