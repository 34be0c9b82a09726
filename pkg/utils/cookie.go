package utils

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SessionCookie = "smartride_session"
	ChatCookie    = "smartride_chat"
)

// PortalToken reads the portal token from the Authorization header, falling
// back to the session cookie.
func PortalToken(r *http.Request) (uuid.UUID, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return uuid.Nil, false
		}
		token, err := uuid.Parse(strings.TrimSpace(raw))
		return token, err == nil
	}
	return CookieUUID(r, SessionCookie)
}

// CookieUUID parses a uuid-valued cookie.
func CookieUUID(r *http.Request, name string) (uuid.UUID, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(c.Value)
	return id, err == nil
}

func SetCookie(w http.ResponseWriter, name, value string, expires time.Time, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
