package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is the portal-side login: the backend bearer token plus the
// identity the backend reported for it.
type Session struct {
	BaseSimple
	Token        uuid.UUID  `db:"token"`
	Role         UserRole   `db:"role"`
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	BackendToken string     `db:"backend_token"`
	UserAgent    *string    `db:"user_agent"`
	IPAddress    *string    `db:"ip_address"`
	ExpiresAt    time.Time  `db:"expires_at"`
	RevokedAt    *time.Time `db:"revoked_at"`
}

// IsLoggedIn reports whether the session may still be used at now.
func (s *Session) IsLoggedIn(now time.Time) bool {
	return s != nil && s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
