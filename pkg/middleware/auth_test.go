package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartride-portal/internal/data/entity"
	"smartride-portal/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSessions map[uuid.UUID]*entity.Session

func (f fakeSessions) Restore(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	if token == failingToken {
		return nil, errors.New("db down")
	}
	return f[token], nil
}

var failingToken = uuid.MustParse("00000000-0000-0000-0000-00000000dead")

func newSession(role entity.UserRole) *entity.Session {
	return &entity.Session{
		Token:        uuid.New(),
		Role:         role,
		BackendToken: "backend-" + string(role),
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

// guarded runs a request through OptionalSession and RequireRole.
func guarded(sessions fakeSessions, role entity.UserRole, req *http.Request) (*httptest.ResponseRecorder, *entity.Session) {
	var seen *entity.Session
	h := OptionalSession(sessions, zap.NewNop())(
		RequireRole(role, zap.NewNop())(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = utils.GetSessionFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func redirectOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var body struct {
		Data struct {
			Redirect string `json:"redirect"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, rec.Header().Get("Location"), body.Data.Redirect)
	return body.Data.Redirect
}

func TestGuardWithoutSessionRedirectsToRoleLogin(t *testing.T) {
	cases := map[entity.UserRole]string{
		entity.RoleDriver:    "/driver/login",
		entity.RolePassenger: "/passenger/login",
		entity.RoleAdmin:     "/admin/login",
	}
	for role, login := range cases {
		rec, _ := guarded(fakeSessions{}, role, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, login, redirectOf(t, rec))
	}
}

func TestGuardRoleMismatchRedirectsHome(t *testing.T) {
	s := newSession(entity.RolePassenger)
	req := httptest.NewRequest(http.MethodGet, "/driver/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+s.Token.String())

	rec, seen := guarded(fakeSessions{s.Token: s}, entity.RoleDriver, req)
	assert.Equal(t, "/", redirectOf(t, rec))
	assert.Nil(t, seen)
}

func TestGuardAcceptsCookieAndSetsBackendToken(t *testing.T) {
	s := newSession(entity.RoleDriver)
	req := httptest.NewRequest(http.MethodGet, "/driver/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookie, Value: s.Token.String()})

	var token string
	h := OptionalSession(fakeSessions{s.Token: s}, zap.NewNop())(
		RequireRole(entity.RoleDriver, zap.NewNop())(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				token, _ = utils.GetTokenFromContext(r.Context())
			})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "backend-DRIVER", token)
}

func TestGuardTreatsUnknownOrBrokenTokenAsAnonymous(t *testing.T) {
	for _, header := range []string{"Bearer " + uuid.NewString(), "Bearer not-a-uuid", "Token abc", "Bearer " + failingToken.String()} {
		req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
		req.Header.Set("Authorization", header)

		rec, _ := guarded(fakeSessions{}, entity.RoleAdmin, req)
		assert.Equal(t, "/admin/login", redirectOf(t, rec), header)
	}
}

func TestAuthSessionRequiresAnyRole(t *testing.T) {
	s := newSession(entity.RolePassenger)
	sessions := fakeSessions{s.Token: s}
	h := AuthSession(sessions, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+failingToken.String())
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+s.Token.String())
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCORSAnswersPreflight(t *testing.T) {
	h := CORS(utils.DefaultCORSOrigin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSOrigins(t *testing.T) {
	tests := []struct {
		name        string
		config      string
		origin      string
		allowOrigin string
		credentials string
	}{
		{"listed origin", "http://localhost:5173, https://portal.smartride.io/", "https://portal.smartride.io", "https://portal.smartride.io", "true"},
		{"unlisted origin", utils.DefaultCORSOrigin, "https://evil.example", "", ""},
		{"no origin header", utils.DefaultCORSOrigin, "", "", ""},
		{"wildcard never carries credentials", "*", "https://evil.example", "*", ""},
		{"listed origin beats wildcard", "*,http://localhost:5173", "http://localhost:5173", "http://localhost:5173", "true"},
		{"empty config", "", "http://localhost:5173", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := CORS(tt.config)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/chat", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.True(t, called)
			assert.Equal(t, tt.allowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.credentials, rec.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, "Origin", rec.Header().Get("Vary"))
		})
	}
}

func TestRecoverReturnsEnvelope(t *testing.T) {
	h := Recover(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Internal server error"}`, rec.Body.String())
}
