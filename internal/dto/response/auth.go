package response

import (
	"time"

	"smartride-portal/internal/data/entity"
)

type SessionResponse struct {
	Token      string          `json:"token"`
	Role       entity.UserRole `json:"role"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	IsLoggedIn bool            `json:"isLoggedIn"`
	ExpiresAt  time.Time       `json:"expiresAt"`
	Redirect   string          `json:"redirect,omitempty"`
}

func SessionToResponse(session *entity.Session, now time.Time) SessionResponse {
	return SessionResponse{
		Token:      session.Token.String(),
		Role:       session.Role,
		Name:       session.Name,
		Email:      session.Email,
		IsLoggedIn: session.IsLoggedIn(now),
		ExpiresAt:  session.ExpiresAt,
		Redirect:   session.Role.DashboardPath(),
	}
}

// PortalResponse describes a public page: where it is and who is signed in.
type PortalResponse struct {
	Page    string           `json:"page"`
	Portal  entity.UserRole  `json:"portal,omitempty"`
	Session *SessionResponse `json:"session,omitempty"`
}
