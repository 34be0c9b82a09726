package middleware

import (
	"context"
	"net/http"

	"smartride-portal/internal/data/entity"
	"smartride-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionRestorer hydrates a portal session from its token. A missing,
// revoked or expired session is (nil, nil).
type SessionRestorer interface {
	Restore(ctx context.Context, token uuid.UUID) (*entity.Session, error)
}

// OptionalSession puts the caller's session in the request context when
// there is one. Requests without a usable session pass through unchanged.
func OptionalSession(sessions SessionRestorer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetSessionFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := utils.PortalToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			session, err := sessions.Restore(r.Context(), token)
			if err != nil {
				logger.Error("Failed to restore session", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if session == nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetSessionContext(r.Context(), session)))
		})
	}
}

// AuthSession requires a logged in session of any role.
func AuthSession(sessions SessionRestorer, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetSessionFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := utils.PortalToken(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Unauthorized. Please login.")
				return
			}

			session, err := sessions.Restore(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if session == nil {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Unauthorized. Please login.")
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetSessionContext(r.Context(), session)))
		})
	}
}

// RequireRole guards a portal: no session goes to the role's login page,
// a session of another role goes to the landing page. It expects
// OptionalSession to have run.
func RequireRole(role entity.UserRole, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := utils.GetSessionFromContext(r.Context())
			if !ok {
				utils.ResponseRedirect(w, role.LoginPath(), "Please login to continue")
				return
			}

			if session.Role != role {
				logger.Warn("Role mismatch",
					zap.String("required", string(role)),
					zap.String("role", string(session.Role)),
					zap.String("path", r.URL.Path))
				utils.ResponseRedirect(w, "/", "Unauthorized role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
